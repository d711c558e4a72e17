package ai

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestExtractFencedPayload(t *testing.T) {
	cases := []struct {
		name string
		in   string
		want string
	}{
		{"bare json", `{"a":1}`, `{"a":1}`},
		{"json fence", "Oto wynik:\n```json\n{\"a\":1}\n```\nkoniec", `{"a":1}`},
		{"plain fence", "```\n{\"a\":1}\n```", `{"a":1}`},
		{"unterminated fence", "```json\n{\"a\":1}", `{"a":1}`},
		{"whitespace", "  {\"a\":1}\n", `{"a":1}`},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.want, extractFencedPayload(tc.in))
		})
	}
}

func TestParseExtraction(t *testing.T) {
	raw := `{
		"extractedFields": {"victimData": {"firstName": "Jan", "lastName": "Kowalski"}},
		"summaryForUser": "Zapisałem imię i nazwisko.",
		"followUpQuestions": ["Jaki jest Twój PESEL?"]
	}`

	result, err := parseExtraction(raw)
	require.NoError(t, err)

	assert.Equal(t, "Zapisałem imię i nazwisko.", result.SummaryForUser)
	assert.Equal(t, []string{"Jaki jest Twój PESEL?"}, result.FollowUpQuestions)
	require.Contains(t, result.ExtractedFields, "victimData")
	assert.JSONEq(t, `{"firstName":"Jan","lastName":"Kowalski"}`, string(result.ExtractedFields["victimData"]))
}

func TestParseExtractionDefaults(t *testing.T) {
	result, err := parseExtraction(`{}`)
	require.NoError(t, err)

	assert.Equal(t, defaultSummary, result.SummaryForUser)
	assert.Empty(t, result.FollowUpQuestions)
	assert.Empty(t, result.ExtractedFields)
}

func TestParseExtractionDropsScalarSlots(t *testing.T) {
	result, err := parseExtraction(`{"extractedFields": {"victimData": "Jan Kowalski", "businessData": {"nip": "1234567890"}, "requiredDocuments": ["karta wypadku"]}}`)
	require.NoError(t, err)

	assert.NotContains(t, result.ExtractedFields, "victimData")
	assert.Contains(t, result.ExtractedFields, "businessData")
	assert.Contains(t, result.ExtractedFields, "requiredDocuments")
}

func TestParseExtractionMalformed(t *testing.T) {
	_, err := parseExtraction("Nie rozumiem pytania.")
	require.Error(t, err)

	fallback := parseExtractionFallback()
	assert.Equal(t, "Rozumiem. Powiedz mi więcej o wypadku.", fallback.SummaryForUser)
	assert.Equal(t, []string{"Możesz opisać okoliczności wypadku?"}, fallback.FollowUpQuestions)
	assert.Empty(t, fallback.ExtractedFields)
}

func TestParseCircumstances(t *testing.T) {
	raw := "```json\n" + `{
		"questions_count": 2,
		"questions": [
			{"id": 1, "text": "O której godzinie doszło do wypadku?"},
			{"id": 2, "text": "Gdzie doszło do zdarzenia?"}
		]
	}` + "\n```"

	result := parseCircumstances(raw)

	assert.Empty(t, result.Error)
	assert.Equal(t, 2, result.QuestionsCount)
	require.Len(t, result.Questions, 2)
	assert.Equal(t, 1, result.Questions[0].ID)
	assert.Equal(t, "O której godzinie doszło do wypadku?", result.Questions[0].Text)
}

func TestParseCircumstancesComplete(t *testing.T) {
	result := parseCircumstances(`{"questions_count": 0, "questions": []}`)

	assert.Empty(t, result.Error)
	assert.Equal(t, 0, result.QuestionsCount)
	assert.Empty(t, result.Questions)
}

func TestParseCircumstancesSingularQuestion(t *testing.T) {
	result := parseCircumstances(`{"question": "Gdzie doszło do wypadku?"}`)

	require.Len(t, result.Questions, 1)
	assert.Equal(t, 1, result.Questions[0].ID)
	assert.Equal(t, "Gdzie doszło do wypadku?", result.Questions[0].Text)
}

func TestParseCircumstancesMissingIDs(t *testing.T) {
	result := parseCircumstances(`{"questions": [{"text": "Pytanie pierwsze?"}, {"text": "Pytanie drugie?"}]}`)

	require.Len(t, result.Questions, 2)
	assert.Equal(t, 1, result.Questions[0].ID)
	assert.Equal(t, 2, result.Questions[1].ID)
}

func TestParseCircumstancesPlainText(t *testing.T) {
	result := parseCircumstances("Gdzie dokładnie doszło do wypadku?")

	assert.Empty(t, result.Error)
	assert.Equal(t, 1, result.QuestionsCount)
	require.Len(t, result.Questions, 1)
	assert.Equal(t, 1, result.Questions[0].ID)
	assert.Equal(t, "Gdzie dokładnie doszło do wypadku?", result.Questions[0].Text)
}

func TestParseCircumstancesEmpty(t *testing.T) {
	result := parseCircumstances("   ")

	assert.Equal(t, "Pusty response", result.Error)
	assert.Empty(t, result.Questions)
}
