package entity

// HandleMessageRequest is the body of the assistant message endpoint.
type HandleMessageRequest struct {
	Message string `json:"message"`
}

// CircumstancesRequest is the body of the circumstances question endpoint.
type CircumstancesRequest struct {
	AccidentDescription string `json:"accidentDescription"`
}

// ProviderResponse reports the AI provider configured for this deployment.
type ProviderResponse struct {
	Provider string `json:"provider"`
}

// ErrorResponse is the generic error body of the HTTP API.
type ErrorResponse struct {
	Error   string `json:"error"`
	Message string `json:"message,omitempty"`
}

// DocumentFormat selects the rendering of the official EWYP form.
type DocumentFormat string

const (
	FormatPDF  DocumentFormat = "pdf"
	FormatDOCX DocumentFormat = "docx"
)

// ConversationStateDTO is the API projection of a conversation.
type ConversationStateDTO struct {
	ConversationID     string          `json:"conversationId"`
	Report             *AccidentReport `json:"report"`
	History            []Message       `json:"history"`
	MissingFields      []string        `json:"missingFields"`
	CompletionProgress float64         `json:"completionProgress"`
}
