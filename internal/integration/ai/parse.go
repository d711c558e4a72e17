package ai

import (
	"encoding/json"
	"strings"

	"github.com/zant/accident-backend/internal/entity"
)

// Canned replies used when the model output cannot be trusted. The user
// always gets some assistant reply; raw errors never reach the chat.
const (
	defaultSummary        = "Dziękuję za informacje."
	parseFallbackSummary  = "Rozumiem. Powiedz mi więcej o wypadku."
	parseFallbackQuestion = "Możesz opisać okoliczności wypadku?"
	offlineQuestion       = "Jakie jest Twoje imię i nazwisko?"
	emptyReplyError       = "Pusty response"
)

// extractFencedPayload returns the content of the first markdown code block
// when the model wrapped its JSON in one, preferring a ```json block. When
// no fence is found the whole reply is returned as-is.
func extractFencedPayload(text string) string {
	if idx := strings.Index(text, "```json"); idx >= 0 {
		rest := text[idx+len("```json"):]
		if end := strings.Index(rest, "```"); end >= 0 {
			return strings.TrimSpace(rest[:end])
		}
		return strings.TrimSpace(rest)
	}
	if idx := strings.Index(text, "```"); idx >= 0 {
		rest := text[idx+3:]
		if end := strings.Index(rest, "```"); end >= 0 {
			return strings.TrimSpace(rest[:end])
		}
		return strings.TrimSpace(rest)
	}
	return strings.TrimSpace(text)
}

// extractionEnvelope is the expected shape of the model reply for the
// slot-filling flow. Every key is optional.
type extractionEnvelope struct {
	ExtractedFields   map[string]json.RawMessage `json:"extractedFields"`
	SummaryForUser    *string                    `json:"summaryForUser"`
	FollowUpQuestions []string                   `json:"followUpQuestions"`
}

// parseExtraction turns a raw model reply into an ExtractionResult. Any
// parse failure degrades to a safe canned result instead of an error.
func parseExtraction(text string) (*entity.ExtractionResult, error) {
	payload := extractFencedPayload(text)

	var envelope extractionEnvelope
	if err := json.Unmarshal([]byte(payload), &envelope); err != nil {
		return nil, err
	}

	result := &entity.ExtractionResult{
		ExtractedFields:   map[string]json.RawMessage{},
		SummaryForUser:    defaultSummary,
		FollowUpQuestions: []string{},
	}

	for key, value := range envelope.ExtractedFields {
		// Draft slots are objects (sections) or arrays (witnesses,
		// documents); a bare scalar in a slot position is dropped.
		trimmed := strings.TrimSpace(string(value))
		if strings.HasPrefix(trimmed, "{") || strings.HasPrefix(trimmed, "[") {
			result.ExtractedFields[key] = value
		}
	}

	if envelope.SummaryForUser != nil && *envelope.SummaryForUser != "" {
		result.SummaryForUser = *envelope.SummaryForUser
	}

	if envelope.FollowUpQuestions != nil {
		result.FollowUpQuestions = envelope.FollowUpQuestions
	}

	return result, nil
}

// parseExtractionFallback is the canned result for unparseable model output.
func parseExtractionFallback() *entity.ExtractionResult {
	return &entity.ExtractionResult{
		ExtractedFields:   map[string]json.RawMessage{},
		SummaryForUser:    parseFallbackSummary,
		FollowUpQuestions: []string{parseFallbackQuestion},
	}
}

// circumstancesEnvelope is the expected shape of the question-generation
// reply. A singular "question" string is tolerated as well.
type circumstancesEnvelope struct {
	QuestionsCount *int              `json:"questions_count"`
	Questions      []json.RawMessage `json:"questions"`
	Question       *string           `json:"question"`
}

type circumstancesQuestion struct {
	ID   *int    `json:"id"`
	Text *string `json:"text"`
}

// parseCircumstances turns a raw model reply into a CircumstancesResult.
// Replies that are not JSON, or JSON without the expected keys, are treated
// as a single plain-text question rather than an error.
func parseCircumstances(text string) *entity.CircumstancesResult {
	payload := extractFencedPayload(text)

	var envelope circumstancesEnvelope
	if err := json.Unmarshal([]byte(payload), &envelope); err != nil {
		return plainTextCircumstances(text)
	}

	if envelope.QuestionsCount == nil && envelope.Questions == nil && envelope.Question == nil {
		// Valid JSON without the expected structure.
		return plainTextCircumstances(text)
	}

	count := 0
	if envelope.QuestionsCount != nil {
		count = *envelope.QuestionsCount
	}

	questions := make([]entity.CircumstancesQuestion, 0, len(envelope.Questions))
	for i, raw := range envelope.Questions {
		var q circumstancesQuestion
		if err := json.Unmarshal(raw, &q); err != nil {
			continue
		}

		id := i + 1
		if q.ID != nil {
			id = *q.ID
		}
		questionText := ""
		if q.Text != nil {
			questionText = *q.Text
		}
		questions = append(questions, entity.CircumstancesQuestion{ID: id, Text: questionText})
	}

	if len(questions) == 0 && envelope.Question != nil {
		questions = append(questions, entity.CircumstancesQuestion{ID: 1, Text: *envelope.Question})
	}

	return &entity.CircumstancesResult{
		QuestionsCount: count,
		Questions:      questions,
	}
}

// plainTextCircumstances converts a free-text model reply into a single
// clarifying question for the UI.
func plainTextCircumstances(text string) *entity.CircumstancesResult {
	trimmed := strings.TrimSpace(text)
	if trimmed == "" {
		return &entity.CircumstancesResult{
			QuestionsCount: 1,
			Questions:      []entity.CircumstancesQuestion{},
			Error:          emptyReplyError,
		}
	}

	return &entity.CircumstancesResult{
		QuestionsCount: 1,
		Questions:      []entity.CircumstancesQuestion{{ID: 1, Text: trimmed}},
	}
}
