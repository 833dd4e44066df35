// Package design answers free-form design questions for incubator students,
// routed through a topic classifier with a canned reply per topic when the
// live model is unavailable.
package design

import (
	"context"
	"fmt"
	"log"
	"strings"

	"github.com/threewin/bmc-mentor/backend/internal/analysis/topic"
	"github.com/threewin/bmc-mentor/backend/internal/service/session"
)

// Generator mirrors mentor.Generator; nil disables live generation.
type Generator interface {
	Generate(ctx context.Context, prompt string) (string, error)
}

// Service is the free-form design assistant.
type Service struct {
	sessions  *session.Store
	generator Generator
}

// NewService wires the assistant to the session store and a text generator.
func NewService(sessions *session.Store, generator Generator) *Service {
	return &Service{sessions: sessions, generator: generator}
}

const assistantPromptTemplate = `أنت مساعد ذكي متخصص في التصميم الجرافيكي وتطوير المشاريع لطلاب حاضنة أعمال 3win.
المجال: %s
سؤال الطالب: "%s"

قم بتقديم المساعدة في:
1. نصائح تصميمية عملية
2. أفكار إبداعية مناسبة للمشاريع الناشئة
3. توجهات حول الألوان والخطوط والتخطيط
4. اقتراحات أدوات وبرامج مفيدة
5. أفضل الممارسات في التصميم

إذا كان السؤال ليس عن التصميم، قدم إجابة مفيدة في مجال ريادة الأعمال وتطوير المشاريع.

أجب باللغة العربية بطريقة:
- مهنية وإبداعية
- عملية وقابلة للتطبيق
- مراعية لميزانية الطلاب
- تشجع الإبداع والابتكار

الإجابة:`

const toolsTip = "\n\n💡 *يمكنك استخدام أدوات مثل: Canva, Figma, Adobe Express للبدء*"

var cannedAdvice = map[topic.Bucket]string{
	topic.Logo:     "• اختر ألواناً تعبر عن هوية مشروعك\n• استخدم خطوطاً واضحة وسهلة القراءة\n• اجعل الشعار بسيطاً وقابلاً للتذكر\n• تأكد من وضوح الشعار بمختلف الأحجام\n• فكر في القيمة التي يقدمها مشروعك",
	topic.Website:  "• ركز على تجربة المستخدم البسيطة\n• استخدم ألواناً متناسقة مع الهوية\n• اجعل الموقع سريع التحميل\n• تأكد من توافقه مع الجوال\n• استخدم صوراً عالية الجودة",
	topic.Identity: "• حدد لوحة ألوان ثابتة\n• اختر خطوطاً متناسقة\n• أنشئ دليل هوية مرئية\n• حافظ على الاتساق في جميع المواد\n• فكر في جمهورك المستهدف",
	topic.Cover:    "• اجعل العنوان هو البطل البصري للغلاف\n• استخدم صورة أو خلفية واحدة قوية\n• تجنب ازدحام العناصر\n• تأكد من وضوح الغلاف في الحجم المصغر\n• اختر خطوطاً تناسب موضوع المحتوى",
	topic.Social:   "• التزم بمقاسات كل منصة\n• استخدم ألوان هويتك في كل منشور\n• اجعل الرسالة واحدة وواضحة في كل تصميم\n• أضف شعارك بشكل غير مزعج\n• جرب قوالب جاهزة ثم عدّلها لتناسبك",
	topic.Deck:     "• اعتمد قالباً موحداً لجميع الشرائح\n• شريحة واحدة لكل فكرة رئيسية\n• قلل النصوص واستخدم الرسوم البيانية\n• اختر خطاً كبيراً مقروءاً من بعيد\n• اختم بشريحة تلخص طلبك بوضوح",
}

const genericAdvice = "يمكنني مساعدتك في:\n\n• تصميم الشعار والهوية البصرية\n• تصميم المواقع والتطبيقات\n• تصميم العروض التقديمية\n• تصميم منشورات وسائل التواصل\n• نصائح الألوان والخطوط\n• أدوات التصميم المجانية\n\nما هو نوع التصميم الذي تحتاجه؟"

// Respond classifies the message, asks the model for topic-specific advice
// and falls back to the canned answer for that topic. Both the inbound and
// outbound turns are recorded before returning.
func (s *Service) Respond(ctx context.Context, sessionID, message string) (string, error) {
	s.sessions.GetOrCreate(sessionID)
	if err := s.sessions.RecordUserMessage(sessionID, message); err != nil {
		return "", err
	}

	bucket := topic.Classify(message)
	prompt := fmt.Sprintf(assistantPromptTemplate, bucket.Label(), message)

	text, ok := s.generateLive(ctx, prompt)
	if !ok {
		text = cannedResponse(bucket)
	}

	if err := s.sessions.RecordAssistantMessage(sessionID, text); err != nil {
		return "", err
	}
	return text, nil
}

func (s *Service) generateLive(ctx context.Context, prompt string) (string, bool) {
	if s.generator == nil {
		return "", false
	}
	text, err := s.generator.Generate(ctx, prompt)
	if err != nil {
		log.Printf("[design] generation failed, serving fallback: %v", err)
		return "", false
	}
	return text, true
}

func cannedResponse(bucket topic.Bucket) string {
	var b strings.Builder
	b.WriteString("🎨 **مساعد التصميم الإبداعي**\n\n")
	if advice, ok := cannedAdvice[bucket]; ok {
		fmt.Fprintf(&b, "في مجال %s، أنصحك بـ:\n\n%s", bucket.Label(), advice)
	} else {
		b.WriteString(genericAdvice)
	}
	b.WriteString(toolsTip)
	return b.String()
}

const suggestionsPromptTemplate = `أنت مصمم جرافيكي محترف تقدم استشارات لطلاب حاضنة أعمال 3win.
نوع المشروع: %s

قدم 3 اقتراحات تصميمية إبداعية تشمل:
1. لوحة ألوان مناسبة
2. نمط تصميم مقترح
3. نصائح حول الخطوط
4. أفكار إبداعية للهوية
5. أدوات مجانية مقترحة

أجب باللغة العربية بطريقة إبداعية ومحفزة.`

// Suggestions proposes three design directions for a project type, with a
// deterministic three-style fallback.
func (s *Service) Suggestions(ctx context.Context, projectType string) string {
	prompt := fmt.Sprintf(suggestionsPromptTemplate, projectType)
	if text, ok := s.generateLive(ctx, prompt); ok {
		return text
	}

	return fmt.Sprintf(`🎯 **اقتراحات تصميمية لـ %s**

1. **النمط البسيط والحديث**
   - الألوان: أزرق مهني + أبيض + رمادي
   - الخطوط: sans-serif واضحة
   - ركز على البساطة والوضوح

2. **النمط الإبداعي الجريء**
   - الألوان: ألوان زاهية ومتناقضة
   - الخطوط: مزيج بين classic وmodern
   - شجع على الإبداع والتميز

3. **النمط الاحترافي التقليدي**
   - الألوان: درجات محايدة واحترافية
   - الخطوط: serif كلاسيكية
   - يناسب المشاريع التقليدية

🛠️ **أدوات مجانية**: Canva, Figma, Adobe Color, Google Fonts`, projectType)
}
