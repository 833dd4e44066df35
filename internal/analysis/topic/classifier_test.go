package topic

import "testing"

func TestClassifyLogoKeyword(t *testing.T) {
	if got := Classify("أريد تصميم شعار لمشروعي"); got != Logo {
		t.Fatalf("expected logo bucket, got %s", got)
	}
}

func TestClassifyPriorityOrder(t *testing.T) {
	// A message matching both logo and website keywords routes to logo,
	// the higher-priority bucket.
	if got := Classify("شعار لموقع المشروع"); got != Logo {
		t.Fatalf("expected logo bucket, got %s", got)
	}
}

func TestClassifyBuckets(t *testing.T) {
	cases := []struct {
		message string
		want    Bucket
	}{
		{"كيف أصمم موقع إلكتروني؟", Website},
		{"أحتاج هوية بصرية كاملة", Identity},
		{"غلاف لكتابي الجديد", Cover},
		{"منشور لإنستغرام", Social},
		{"عرض تقديمي للمستثمرين", Deck},
	}
	for _, tc := range cases {
		if got := Classify(tc.message); got != tc.want {
			t.Fatalf("Classify(%q) = %s, want %s", tc.message, got, tc.want)
		}
	}
}

func TestClassifyNoMatchIsGeneric(t *testing.T) {
	if got := Classify("كيف أبدأ مشروعي الناشئ؟"); got != Generic {
		t.Fatalf("expected generic bucket, got %s", got)
	}
	if got := Classify("   "); got != Generic {
		t.Fatalf("expected generic for blank message, got %s", got)
	}
}
