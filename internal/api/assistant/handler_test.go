package assistant

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/zant/accident-backend/internal/entity"
)

type fakeUsecase struct {
	turn          *entity.AssistantTurn
	state         *entity.ConversationState
	circumstances *entity.CircumstancesResult
	err           error

	lastConversationID string
	lastMessage        string
	lastDescription    string
}

func (f *fakeUsecase) HandleMessage(_ context.Context, conversationID, message string) (*entity.AssistantTurn, error) {
	f.lastConversationID = conversationID
	f.lastMessage = message
	return f.turn, f.err
}

func (f *fakeUsecase) GetConversation(_ context.Context, conversationID string) (*entity.ConversationState, error) {
	f.lastConversationID = conversationID
	if f.state == nil {
		return nil, entity.ErrConversationNotFound
	}
	return f.state, nil
}

func (f *fakeUsecase) GenerateCircumstancesQuestions(_ context.Context, description string) *entity.CircumstancesResult {
	f.lastDescription = description
	return f.circumstances
}

func (f *fakeUsecase) ProviderName() string { return "pllum" }

func newTestRouter(uc *fakeUsecase) http.Handler {
	r := chi.NewRouter()
	RegisterRoutes(r, NewHandler(uc))
	return r
}

func TestHandleMessageJSONBody(t *testing.T) {
	uc := &fakeUsecase{turn: &entity.AssistantTurn{
		Response:           "Zapisałem dane.",
		FollowUpQuestions:  []string{"Jaki jest Twój adres?"},
		MissingFields:      []string{"Adres poszkodowanego"},
		CompletionProgress: 25,
	}}
	router := newTestRouter(uc)

	req := httptest.NewRequest(http.MethodPost, "/api/assistant/c-1/message",
		strings.NewReader(`{"message": "Jan Kowalski"}`))
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "c-1", uc.lastConversationID)
	assert.Equal(t, "Jan Kowalski", uc.lastMessage)

	var turn entity.AssistantTurn
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &turn))
	assert.Equal(t, "Zapisałem dane.", turn.Response)
	assert.Equal(t, float64(25), turn.CompletionProgress)
}

func TestHandleMessageRawTextBody(t *testing.T) {
	uc := &fakeUsecase{turn: &entity.AssistantTurn{Response: "OK."}}
	router := newTestRouter(uc)

	req := httptest.NewRequest(http.MethodPost, "/api/assistant/c-1/message",
		strings.NewReader("Złamałem nogę dzisiaj rano"))
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "Złamałem nogę dzisiaj rano", uc.lastMessage)
}

func TestGetConversationNotFound(t *testing.T) {
	router := newTestRouter(&fakeUsecase{})

	req := httptest.NewRequest(http.MethodGet, "/api/assistant/missing", nil)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	require.Equal(t, http.StatusNotFound, rec.Code)

	var body entity.ErrorResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	assert.Equal(t, http.StatusText(http.StatusNotFound), body.Error)
}

func TestGetConversationState(t *testing.T) {
	state := entity.NewConversationState("c-7")
	state.CompletionProgress = 50
	router := newTestRouter(&fakeUsecase{state: state})

	req := httptest.NewRequest(http.MethodGet, "/api/assistant/c-7", nil)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)

	var dto entity.ConversationStateDTO
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &dto))
	assert.Equal(t, "c-7", dto.ConversationID)
	assert.Equal(t, float64(50), dto.CompletionProgress)
}

func TestGenerateCircumstancesQuestions(t *testing.T) {
	uc := &fakeUsecase{circumstances: &entity.CircumstancesResult{
		QuestionsCount: 1,
		Questions:      []entity.CircumstancesQuestion{{ID: 1, Text: "Gdzie?"}},
	}}
	router := newTestRouter(uc)

	req := httptest.NewRequest(http.MethodPost, "/api/assistant/circumstances",
		strings.NewReader(`{"accidentDescription": "Złamałem nogę"}`))
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "Złamałem nogę", uc.lastDescription)

	var result entity.CircumstancesResult
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &result))
	assert.Equal(t, 1, result.QuestionsCount)
}

func TestGenerateCircumstancesQuestionsBadBody(t *testing.T) {
	router := newTestRouter(&fakeUsecase{})

	req := httptest.NewRequest(http.MethodPost, "/api/assistant/circumstances",
		strings.NewReader("not json"))
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	require.Equal(t, http.StatusBadRequest, rec.Code)
}
