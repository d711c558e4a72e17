package entity

import (
	"encoding/json"
	"time"
)

type MessageRole string

const (
	MessageRoleUser      MessageRole = "user"
	MessageRoleAssistant MessageRole = "assistant"
)

// Message is a single turn of the conversation transcript.
type Message struct {
	Role    MessageRole `json:"role"`
	Content string      `json:"content"`
}

// ConversationState is the persisted per-conversation assistant state.
// CompletionProgress is derived from MissingFields and the catalog on
// every turn, never mutated independently.
type ConversationState struct {
	ConversationID     string          `json:"conversation_id"`
	Report             *AccidentReport `json:"report"`
	History            []Message       `json:"history"`
	MissingFields      []string        `json:"missing_fields"`
	CompletionProgress float64         `json:"completion_progress"`
	CreatedAt          time.Time       `json:"created_at"`
	UpdatedAt          time.Time       `json:"updated_at"`
}

// NewConversationState creates the initial state for an unseen conversation ID.
func NewConversationState(conversationID string) *ConversationState {
	return &ConversationState{
		ConversationID:     conversationID,
		Report:             &AccidentReport{},
		History:            []Message{},
		MissingFields:      []string{},
		CompletionProgress: 0,
	}
}

// AssistantTurn is the result of one HandleMessage call, returned to the
// HTTP layer as-is.
type AssistantTurn struct {
	Response           string   `json:"response"`
	FollowUpQuestions  []string `json:"followUpQuestions"`
	MissingFields      []string `json:"missingFields"`
	CompletionProgress float64  `json:"completionProgress"`
}

// ExtractionResult is the parsed envelope of a single extraction call.
// Extracted slot values stay raw JSON; the orchestrator coerces them into
// the draft's concrete sub-schemas.
type ExtractionResult struct {
	ExtractedFields   map[string]json.RawMessage `json:"extractedFields"`
	SummaryForUser    string                     `json:"summaryForUser"`
	FollowUpQuestions []string                   `json:"followUpQuestions"`
}

// CircumstancesQuestion is one clarifying question about the accident
// circumstances, proposed for a UI field.
type CircumstancesQuestion struct {
	ID   int    `json:"id"`
	Text string `json:"text"`
}

// CircumstancesResult is the outcome of pure question generation. Unlike
// the extraction flow it carries a textual error for the UI to display.
type CircumstancesResult struct {
	QuestionsCount int                     `json:"questionsCount"`
	Questions      []CircumstancesQuestion `json:"questions"`
	Error          string                  `json:"error,omitempty"`
}

// RequiredField is one entry of the static report-field catalog.
type RequiredField struct {
	Code        string `json:"code"`
	Section     string `json:"section"`
	Label       string `json:"label"`
	Mandatory   bool   `json:"mandatory"`
	Description string `json:"description"`
}

// Catalog sections.
const (
	SectionPersonData   = "PERSON_DATA"
	SectionBusinessData = "BUSINESS_DATA"
	SectionAccidentData = "ACCIDENT_DATA"
	SectionWitnesses    = "WITNESSES"
	SectionAttorneyData = "ATTORNEY_DATA"
	SectionDocuments    = "DOCUMENTS"
)
