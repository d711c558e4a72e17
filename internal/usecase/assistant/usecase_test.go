package assistant

import (
	"context"
	"encoding/json"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/zant/accident-backend/internal/config"
	"github.com/zant/accident-backend/internal/entity"
	"go.uber.org/zap"
)

type fakeConversationRepo struct {
	states  map[string]*entity.ConversationState
	saveErr error
	saves   int
}

func newFakeConversationRepo() *fakeConversationRepo {
	return &fakeConversationRepo{states: map[string]*entity.ConversationState{}}
}

func (f *fakeConversationRepo) LoadOrCreate(_ context.Context, id string) (*entity.ConversationState, error) {
	if state, ok := f.states[id]; ok {
		return state, nil
	}
	return entity.NewConversationState(id), nil
}

func (f *fakeConversationRepo) Get(_ context.Context, id string) (*entity.ConversationState, error) {
	if state, ok := f.states[id]; ok {
		return state, nil
	}
	return nil, entity.ErrConversationNotFound
}

func (f *fakeConversationRepo) Save(_ context.Context, state *entity.ConversationState) error {
	if f.saveErr != nil {
		return f.saveErr
	}
	f.saves++
	f.states[state.ConversationID] = state
	return nil
}

type fakeAIClient struct {
	extraction    *entity.ExtractionResult
	circumstances *entity.CircumstancesResult
	lastMessage   string
}

func (f *fakeAIClient) ExtractReportData(_ context.Context, _ *entity.ConversationState, message string, _ []entity.RequiredField) *entity.ExtractionResult {
	f.lastMessage = message
	return f.extraction
}

func (f *fakeAIClient) GenerateCircumstancesQuestions(_ context.Context, _ string) *entity.CircumstancesResult {
	return f.circumstances
}

func (f *fakeAIClient) ProviderName() string { return "pllum" }

func extractionWith(t *testing.T, fields map[string]string, summary string, questions ...string) *entity.ExtractionResult {
	t.Helper()
	raw := make(map[string]json.RawMessage, len(fields))
	for key, value := range fields {
		raw[key] = json.RawMessage(value)
	}
	return &entity.ExtractionResult{
		ExtractedFields:   raw,
		SummaryForUser:    summary,
		FollowUpQuestions: questions,
	}
}

func newTestUsecase(repo *fakeConversationRepo, ai *fakeAIClient) *AssistantUsecase {
	return NewUsecase(repo, ai, NewCalculator(config.DefaultRequiredFields), zap.NewNop())
}

func TestHandleMessageNewConversation(t *testing.T) {
	repo := newFakeConversationRepo()
	ai := &fakeAIClient{extraction: extractionWith(t,
		map[string]string{"victimData": `{"firstName": "Jan", "lastName": "Kowalski", "pesel": "12345678901"}`},
		"Zapisałem dane.", "Jaki jest Twój adres?")}
	uc := newTestUsecase(repo, ai)

	turn, err := uc.HandleMessage(context.Background(), "c-1", "Jan Kowalski, PESEL 12345678901")
	require.NoError(t, err)

	assert.Equal(t, "Zapisałem dane.", turn.Response)
	assert.Equal(t, []string{"Jaki jest Twój adres?"}, turn.FollowUpQuestions)
	assert.Contains(t, turn.MissingFields, "Adres poszkodowanego")
	assert.NotContains(t, turn.MissingFields, "Imię poszkodowanego")
	assert.NotContains(t, turn.MissingFields, "PESEL poszkodowanego")
	assert.Greater(t, turn.CompletionProgress, float64(0))

	state := repo.states["c-1"]
	require.NotNil(t, state)
	require.Len(t, state.History, 2)
	assert.Equal(t, entity.MessageRoleUser, state.History[0].Role)
	assert.Equal(t, "Jan Kowalski, PESEL 12345678901", state.History[0].Content)
	assert.Equal(t, entity.MessageRoleAssistant, state.History[1].Role)
	assert.Equal(t, "Zapisałem dane.", state.History[1].Content)
	assert.Equal(t, turn.MissingFields, state.MissingFields)
	assert.Equal(t, turn.CompletionProgress, state.CompletionProgress)
}

func TestHandleMessageSecondTurnKeepsEarlierData(t *testing.T) {
	repo := newFakeConversationRepo()
	ai := &fakeAIClient{extraction: extractionWith(t,
		map[string]string{"victimData": `{"firstName": "Jan", "lastName": "Kowalski"}`}, "OK.")}
	uc := newTestUsecase(repo, ai)

	_, err := uc.HandleMessage(context.Background(), "c-1", "Jan Kowalski")
	require.NoError(t, err)

	ai.extraction = extractionWith(t,
		map[string]string{"victimData": `{"pesel": "12345678901"}`}, "Mam PESEL.")

	turn, err := uc.HandleMessage(context.Background(), "c-1", "PESEL 12345678901")
	require.NoError(t, err)

	state := repo.states["c-1"]
	require.NotNil(t, state.Report.VictimData)
	assert.Equal(t, "Jan", state.Report.VictimData.FirstName)
	assert.Equal(t, "Kowalski", state.Report.VictimData.LastName)
	assert.Equal(t, "12345678901", state.Report.VictimData.Pesel)
	assert.Len(t, state.History, 4)
	assert.NotContains(t, turn.MissingFields, "PESEL poszkodowanego")
}

func TestHandleMessageEmptyExtraction(t *testing.T) {
	repo := newFakeConversationRepo()
	ai := &fakeAIClient{extraction: extractionWith(t, nil,
		"Rozumiem. Powiedz mi więcej o wypadku.", "Możesz opisać okoliczności wypadku?")}
	uc := newTestUsecase(repo, ai)

	turn, err := uc.HandleMessage(context.Background(), "c-1", "hmm")
	require.NoError(t, err)

	assert.Equal(t, float64(0), turn.CompletionProgress)
	assert.Equal(t, "Rozumiem. Powiedz mi więcej o wypadku.", turn.Response)
	assert.Equal(t, 1, repo.saves)
}

func TestHandleMessageSaveErrorPropagates(t *testing.T) {
	repo := newFakeConversationRepo()
	repo.saveErr = errors.New("db down")
	ai := &fakeAIClient{extraction: extractionWith(t, nil, "OK.")}
	uc := newTestUsecase(repo, ai)

	_, err := uc.HandleMessage(context.Background(), "c-1", "test")
	require.ErrorContains(t, err, "db down")
}

func TestGetConversationNotFound(t *testing.T) {
	uc := newTestUsecase(newFakeConversationRepo(), &fakeAIClient{})

	_, err := uc.GetConversation(context.Background(), "nope")
	require.ErrorIs(t, err, entity.ErrConversationNotFound)
}

func TestGenerateCircumstancesQuestionsEmptyDescription(t *testing.T) {
	uc := newTestUsecase(newFakeConversationRepo(), &fakeAIClient{})

	result := uc.GenerateCircumstancesQuestions(context.Background(), "   ")

	assert.Equal(t, "Brak opisu zdarzenia!", result.Error)
	assert.Empty(t, result.Questions)
}

func TestGenerateCircumstancesQuestionsDelegates(t *testing.T) {
	ai := &fakeAIClient{circumstances: &entity.CircumstancesResult{
		QuestionsCount: 1,
		Questions:      []entity.CircumstancesQuestion{{ID: 1, Text: "Gdzie?"}},
	}}
	uc := newTestUsecase(newFakeConversationRepo(), ai)

	result := uc.GenerateCircumstancesQuestions(context.Background(), "Złamałem nogę")

	require.Empty(t, result.Error)
	assert.Equal(t, 1, result.QuestionsCount)
}
