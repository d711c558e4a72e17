package ai

import (
	"context"
	"strings"

	"github.com/grpc-ecosystem/go-grpc-middleware/logging/zap/ctxzap"
	"go.uber.org/zap"
)

// MockProvider is a canned Provider for local development without API keys.
type MockProvider struct {
	logger *zap.Logger
}

func NewMockProvider(logger *zap.Logger) *MockProvider {
	return &MockProvider{logger: logger}
}

func (m *MockProvider) Name() string { return "mock" }

func (m *MockProvider) Configured() bool { return true }

// Generate answers with a fixed reply matching the prompt family: the
// circumstances audit gets a two-question JSON, everything else gets a
// small extraction envelope.
func (m *MockProvider) Generate(ctx context.Context, systemPrompt, userMessage string) (string, error) {
	ctxzap.Info(ctx, "[MOCK] generating AI reply")

	if strings.Contains(systemPrompt, "LISTA KONTROLNA") {
		return `{
  "questions_count": 2,
  "questions": [
    {"id": 1, "text": "O której godzinie doszło do wypadku?"},
    {"id": 2, "text": "W którym miejscu doszło do zdarzenia?"}
  ]
}`, nil
	}

	return `{
  "extractedFields": {},
  "summaryForUser": "Przyjąłem Twoją wiadomość.",
  "followUpQuestions": ["Podaj datę i miejsce wypadku."]
}`, nil
}
