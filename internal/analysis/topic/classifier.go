// Package topic routes free-form design questions into a fixed set of
// subject buckets.
package topic

import "strings"

// Bucket labels a design subject the assistant knows how to talk about.
type Bucket string

const (
	Logo     Bucket = "logo"
	Website  Bucket = "website"
	Identity Bucket = "identity"
	Cover    Bucket = "cover"
	Social   Bucket = "social"
	Deck     Bucket = "deck"
	Generic  Bucket = "generic"
)

// Label returns the Arabic display name used inside prompts.
func (b Bucket) Label() string {
	switch b {
	case Logo:
		return "تصميم الشعار"
	case Website:
		return "تصميم الموقع الإلكتروني"
	case Identity:
		return "الهوية البصرية"
	case Cover:
		return "تصميم الغلاف"
	case Social:
		return "تصميم منشورات وسائل التواصل"
	case Deck:
		return "تصميم العروض التقديمية"
	default:
		return "عام"
	}
}

// bucketOrder fixes the priority: the first bucket whose keyword appears in
// the message wins.
var bucketOrder = [...]Bucket{Logo, Website, Identity, Cover, Social, Deck}

var keywords = map[Bucket][]string{
	Logo:     {"شعار", "لوجو"},
	Website:  {"موقع", "ويب"},
	Identity: {"هوية", "براند"},
	Cover:    {"غلاف", "كتاب"},
	Social:   {"منشور", "سوشيال"},
	Deck:     {"عرض", "عروض"},
}

// Classify inspects the message for bucket keywords, checked in priority
// order. No match yields the generic bucket.
func Classify(message string) Bucket {
	normalized := strings.ToLower(strings.TrimSpace(message))
	if normalized == "" {
		return Generic
	}
	for _, bucket := range bucketOrder {
		for _, word := range keywords[bucket] {
			if strings.Contains(normalized, word) {
				return bucket
			}
		}
	}
	return Generic
}
