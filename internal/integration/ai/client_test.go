package ai

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/zant/accident-backend/internal/config"
	"github.com/zant/accident-backend/internal/entity"
	"go.uber.org/zap"
)

type stubProvider struct {
	name       string
	configured bool
	reply      string
	err        error

	lastSystem string
	lastUser   string
}

func (s *stubProvider) Name() string     { return s.name }
func (s *stubProvider) Configured() bool { return s.configured }

func (s *stubProvider) Generate(_ context.Context, systemPrompt, userMessage string) (string, error) {
	s.lastSystem = systemPrompt
	s.lastUser = userMessage
	return s.reply, s.err
}

func TestExtractReportDataOfflineFallback(t *testing.T) {
	provider := &stubProvider{name: config.ProviderPllum, configured: false}
	client := NewClient(provider, zap.NewNop())

	result := client.ExtractReportData(context.Background(), entity.NewConversationState("c-1"), "Złamałem nogę", config.DefaultRequiredFields)

	assert.Equal(t, "Dziękuję za wiadomość. (Tryb offline - PLLUM API nie skonfigurowane)", result.SummaryForUser)
	assert.Equal(t, []string{"Jakie jest Twoje imię i nazwisko?"}, result.FollowUpQuestions)
	assert.Empty(t, result.ExtractedFields)
}

func TestExtractReportDataCallErrorFallsBack(t *testing.T) {
	provider := &stubProvider{name: config.ProviderGemini, configured: true, err: errors.New("boom")}
	client := NewClient(provider, zap.NewNop())

	result := client.ExtractReportData(context.Background(), entity.NewConversationState("c-1"), "Złamałem nogę", nil)

	assert.Equal(t, "Dziękuję za wiadomość. (Tryb offline - GEMINI API nie skonfigurowane)", result.SummaryForUser)
	assert.Equal(t, []string{"Jakie jest Twoje imię i nazwisko?"}, result.FollowUpQuestions)
}

func TestExtractReportDataUnparseableReply(t *testing.T) {
	provider := &stubProvider{name: config.ProviderPllum, configured: true, reply: "Nie rozumiem."}
	client := NewClient(provider, zap.NewNop())

	result := client.ExtractReportData(context.Background(), entity.NewConversationState("c-1"), "cześć", nil)

	assert.Equal(t, "Rozumiem. Powiedz mi więcej o wypadku.", result.SummaryForUser)
	assert.Equal(t, []string{"Możesz opisać okoliczności wypadku?"}, result.FollowUpQuestions)
}

func TestExtractReportDataPromptContents(t *testing.T) {
	provider := &stubProvider{name: config.ProviderPllum, configured: true, reply: "{}"}
	client := NewClient(provider, zap.NewNop())

	state := entity.NewConversationState("c-1")
	state.Report.VictimData = &entity.PersonData{FirstName: "Jan"}

	client.ExtractReportData(context.Background(), state, "Mam na imię Jan", config.DefaultRequiredFields)

	assert.Contains(t, provider.lastUser, "WYMAGANE POLA DO ZEBRANIA:")
	assert.Contains(t, provider.lastUser, "- Imię poszkodowanego (victimData.firstName)")
	// Optional catalog entries stay out of the prompt.
	assert.NotContains(t, provider.lastUser, "businessData.regon")
	assert.Contains(t, provider.lastUser, `"firstName":"Jan"`)
	assert.Contains(t, provider.lastUser, "WIADOMOŚĆ UŻYTKOWNIKA:\nMam na imię Jan")
}

func TestExtractReportDataEmptyDraft(t *testing.T) {
	provider := &stubProvider{name: config.ProviderPllum, configured: true, reply: "{}"}
	client := NewClient(provider, zap.NewNop())

	state := &entity.ConversationState{ConversationID: "c-1"}
	client.ExtractReportData(context.Background(), state, "cześć", nil)

	assert.Contains(t, provider.lastUser, "AKTUALNY STAN ZGŁOSZENIA:\nBrak danych")
}

func TestGenerateCircumstancesQuestionsNoKey(t *testing.T) {
	provider := &stubProvider{name: config.ProviderPllum, configured: false}
	client := NewClient(provider, zap.NewNop())

	result := client.GenerateCircumstancesQuestions(context.Background(), "Złamałem nogę")

	assert.Equal(t, "Nie ustawiono klucza API do modelu Pllum", result.Error)
	assert.Empty(t, result.Questions)
}

func TestGenerateCircumstancesQuestionsCallError(t *testing.T) {
	provider := &stubProvider{name: config.ProviderGemini, configured: true, err: errors.New("timeout")}
	client := NewClient(provider, zap.NewNop())

	result := client.GenerateCircumstancesQuestions(context.Background(), "Złamałem nogę")

	assert.Equal(t, "Wystąpił nieznany błąd podczas odpytania modelu Gemini: timeout", result.Error)
	assert.Empty(t, result.Questions)
}

func TestGenerateCircumstancesQuestionsSuccess(t *testing.T) {
	provider := &stubProvider{
		name:       config.ProviderPllum,
		configured: true,
		reply:      `{"questions_count": 1, "questions": [{"id": 1, "text": "Gdzie doszło do wypadku?"}]}`,
	}
	client := NewClient(provider, zap.NewNop())

	result := client.GenerateCircumstancesQuestions(context.Background(), "Złamałem nogę dzisiaj rano")

	require.Empty(t, result.Error)
	assert.Equal(t, 1, result.QuestionsCount)
	require.Len(t, result.Questions, 1)
	assert.Equal(t, "Gdzie doszło do wypadku?", result.Questions[0].Text)

	assert.Contains(t, provider.lastSystem, "LISTA KONTROLNA")
	assert.Equal(t, "Opis zdarzenia:\nZłamałem nogę dzisiaj rano", provider.lastUser)
}
