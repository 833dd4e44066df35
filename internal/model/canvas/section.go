// Package canvas defines the fixed nine-section Business Model Canvas
// the mentor walks a student through.
package canvas

// Section is one block of the canvas. The set is static: nine entries,
// fixed order, immutable at runtime.
type Section struct {
	Key      string `json:"key"`
	Title    string `json:"title"`
	Fallback string `json:"-"`
}

// SectionCount is the number of canvas sections.
const SectionCount = 9

var sections = [SectionCount]Section{
	{Key: "partners", Title: "الشركاء الرئيسيون", Fallback: "من هم الشركاء الرئيسيون الذين تحتاجهم لتنفيذ مشروعك؟"},
	{Key: "activities", Title: "الأنشطة الرئيسية", Fallback: "ما هي الأنشطة الرئيسية التي يجب القيام بها لتقديم قيمة للعملاء؟"},
	{Key: "resources", Title: "الموارد الرئيسية", Fallback: "ما هي الموارد الرئيسية التي تحتاجها لتشغيل المشروع؟"},
	{Key: "value", Title: "القيمة المقترحة", Fallback: "ما هي القيمة المميزة التي يقدمها مشروعك للعملاء؟"},
	{Key: "customers", Title: "شرائح العملاء", Fallback: "من هم العملاء المستهدفون لمشروعك؟"},
	{Key: "channels", Title: "قنوات التوزيع", Fallback: "كيف ستصل إلى عملائك وتقدم لهم خدماتك؟"},
	{Key: "relationships", Title: "علاقات العملاء", Fallback: "كيف ستبني وتحافظ على علاقات مع عملائك؟"},
	{Key: "revenue", Title: "مصادر الإيرادات", Fallback: "كيف ستحقق الإيرادات من مشروعك؟"},
	{Key: "costs", Title: "هيكل التكاليف", Fallback: "ما هي التكاليف الرئيسية التي ستتحملها في مشروعك؟"},
}

// Sections returns the canvas sections in walkthrough order.
func Sections() []Section {
	out := make([]Section, SectionCount)
	copy(out, sections[:])
	return out
}

// SectionAt maps a non-negative progress counter to the active section.
// Progress wraps: any value mod 9 indexes a valid section.
func SectionAt(progress int) Section {
	if progress < 0 {
		progress = 0
	}
	return sections[progress%SectionCount]
}

// TitleFor returns the display title for a section key, falling back to the
// key itself when unknown.
func TitleFor(key string) string {
	for _, s := range sections {
		if s.Key == key {
			return s.Title
		}
	}
	return key
}
