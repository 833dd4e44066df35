package mentor

import (
	"context"
	"fmt"
	"strings"

	"github.com/threewin/bmc-mentor/backend/internal/model/canvas"
)

// insufficientData is returned without touching the network when no answer
// has been recorded yet.
const insufficientData = "⚠️ لم يتم جمع بيانات كافية لتوليد ملخص. يرجى إكمال المزيد من الأسئلة."

const summaryClosingTip = "💡 **نصيحة:** يمكنك تحسين نموذج عملك من خلال التركيز على تناسق جميع الأقسام مع بعضها البعض."

const summaryPromptTemplate = `قم بإنشاء ملخص واضح وشامل باللغة العربية لنموذج العمل التجاري للطالب بناءً على البيانات التالية:
%s

الملخص يجب أن:
- يكون باللغة العربية
- يكون منظماً وواضحاً
- يسلط الضوء على النقاط الرئيسية
- يعطي نظرة شاملة عن نموذج العمل`

// FinalSummary synthesizes the recorded answers into one narrative. With no
// answers it returns the insufficient-data notice; on upstream failure it
// falls back to a template that replays every section and answer in the
// order they were recorded.
func (s *Service) FinalSummary(ctx context.Context, sessionID string) (string, error) {
	sess, err := s.sessions.Get(sessionID)
	if err != nil {
		return "", err
	}

	if len(sess.Answers) == 0 {
		return insufficientData, nil
	}

	var data strings.Builder
	for _, a := range sess.Answers {
		fmt.Fprintf(&data, "- %s: %s\n", canvas.TitleFor(a.SectionKey), a.Text)
	}

	prompt := fmt.Sprintf(summaryPromptTemplate, data.String())
	if text, ok := s.generate(ctx, prompt); ok {
		return text, nil
	}

	var fallback strings.Builder
	fallback.WriteString("📊 **ملخص نموذج العمل التجاري**\n\n")
	fallback.WriteString("بناءً على البيانات المقدمة، إليك نظرة عامة على نموذج عملك:\n\n")
	for _, a := range sess.Answers {
		fmt.Fprintf(&fallback, "**%s:** %s\n\n", canvas.TitleFor(a.SectionKey), a.Text)
	}
	fallback.WriteString(summaryClosingTip)
	return fallback.String(), nil
}
