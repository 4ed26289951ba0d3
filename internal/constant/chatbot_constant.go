package constant

const (
	ChatMessageRoleUser      = "user"
	ChatMessageRoleAssistant = "assistant"

	// BotName is the assistant identity baked into the refinement prompt.
	BotName = "StartupBot"

	// Speaker labels used when rendering conversation history into the prompt.
	HistoryLabelUser      = "वापरकर्ता"
	HistoryLabelAssistant = "सहाय्यक"
)

// Canned Marathi responses. These are the worst-case user-visible outputs:
// a failed dependency degrades to one of these, never to an error page.
const (
	// Retrieval layer.
	AnswerKnowledgeBaseUnavailable = "माफ करा, ज्ञान आधार उपलब्ध नाही. कृपया सिस्टम तपासा."
	AnswerSearchFailed             = "माफ करा, उत्तर शोधताना समस्या आली. कृपया पुन्हा प्रयत्न करा."

	// Generation layer.
	AnswerModelUnavailable = "माफ करा, AI मॉडेल उपलब्ध नाही. कृपया API key तपासा."
	AnswerEmptyGeneration  = "माफ करा, उत्तर मिळाले नाही. कृपया पुन्हा प्रयत्न करा."
	AnswerGenerationFailed = "माफ करा, तांत्रिक समस्या आली आहे. कृपया पुन्हा प्रयत्न करा."

	// Transport layer catch-all.
	AnswerServerError = "माफ करा, सर्वरमध्ये समस्या आली आहे. कृपया पुन्हा प्रयत्न करा."
)
