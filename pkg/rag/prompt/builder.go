package prompt

import (
	"fmt"
	"strings"

	"startup-chatbot-be/internal/constant"
	"startup-chatbot-be/pkg/llm"
)

// RefineBuilder assembles the single refinement prompt from named slots:
// persona, conversation history, current query, retrieved ground truth
// and the instruction block. History is rendered chronologically and
// unsummarized; trimming it is the caller's concern, not the builder's.
type RefineBuilder struct {
	query     string
	rawAnswer string
	history   []llm.Message
}

func NewRefineBuilder(query, rawAnswer string, history []llm.Message) *RefineBuilder {
	return &RefineBuilder{
		query:     query,
		rawAnswer: rawAnswer,
		history:   history,
	}
}

func (b *RefineBuilder) Build() string {
	var prompt strings.Builder

	b.writePersona(&prompt)
	b.writeHistory(&prompt)
	b.writeUserQuery(&prompt)
	b.writeGroundTruth(&prompt)
	b.writeInstructions(&prompt)

	return prompt.String()
}

func (b *RefineBuilder) writePersona(prompt *strings.Builder) {
	fmt.Fprintf(prompt, "तुम्ही %s आहात, स्टार्टअप आणि उद्योजकतेसाठी एक मैत्रीपूर्ण आणि उपयुक्त AI सहाय्यक.\n", constant.BotName)
	prompt.WriteString("तुमचे मुख्य उद्दिष्ट म्हणजे दिलेल्या माहितीच्या आधारे स्पष्ट आणि संक्षिप्त उत्तरे देणे.\n")
	prompt.WriteString("तुम्ही फक्त मराठीत उत्तर द्या.\n\n")
}

func (b *RefineBuilder) writeHistory(prompt *strings.Builder) {
	prompt.WriteString("## संभाषण इतिहास (संदर्भासाठी):\n")
	for _, msg := range b.history {
		label := constant.HistoryLabelAssistant
		if msg.Role == constant.ChatMessageRoleUser {
			label = constant.HistoryLabelUser
		}
		fmt.Fprintf(prompt, "%s: %s\n", label, msg.Content)
	}
	prompt.WriteString("\n")
}

func (b *RefineBuilder) writeUserQuery(prompt *strings.Builder) {
	prompt.WriteString("## सध्याचा वापरकर्त्याचा प्रश्न:\n")
	prompt.WriteString(b.query)
	prompt.WriteString("\n\n")
}

func (b *RefineBuilder) writeGroundTruth(prompt *strings.Builder) {
	prompt.WriteString("## ज्ञान आधार माहिती (हा तुमचा मुख्य सत्याचा स्रोत आहे. यावर आधारित उत्तर द्या):\n")
	prompt.WriteString("---\n")
	prompt.WriteString(b.rawAnswer)
	prompt.WriteString("\n---\n\n")
}

func (b *RefineBuilder) writeInstructions(prompt *strings.Builder) {
	prompt.WriteString("## सूचना:\n")
	prompt.WriteString("1. ज्ञान आधार माहितीच्या आधारे, सध्याच्या वापरकर्त्याच्या प्रश्नाचे उत्तर द्या.\n")
	prompt.WriteString("2. प्रश्नाचा संदर्भ समजून घेण्यासाठी संभाषण इतिहास वापरा.\n")
	prompt.WriteString("3. तुमचे उत्तर छोटे, स्पष्ट आणि मैत्रीपूर्ण ठेवा.\n")
	prompt.WriteString("4. फक्त स्टार्टअप, उद्योजकता, व्यवसाय सुरू करणे, फंडिंग, आणि संबंधित विषयांबद्दल प्रश्नांची उत्तरे द्या.\n")
	prompt.WriteString("5. असंबंधित प्रश्नांसाठी, विनम्रपणे नकार द्या आणि संभाषण संबंधित विषयांकडे वळवा.\n")
	fmt.Fprintf(prompt, "6. जर वापरकर्ता तुमचे नाव किंवा ओळख विचारत असेल, तर स्पष्टपणे उत्तर द्या: \"मी %s आहे, तुमचा स्टार्टअप सहाय्यक.\"\n", constant.BotName)
	prompt.WriteString("7. सर्व उत्तरे मराठी भाषेत द्या.")
}
