package ai

import (
	"context"
	"fmt"
	"net/http"

	"github.com/grpc-ecosystem/go-grpc-middleware/logging/zap/ctxzap"
	"github.com/zant/accident-backend/internal/config"
	"github.com/zant/accident-backend/internal/integration/common"
	pkghttp "github.com/zant/accident-backend/pkg/http"
	"go.uber.org/zap"
)

// GeminiProvider talks to the Gemini generateContent endpoint. The API key
// travels as a query parameter, and system and user text are concatenated
// into a single user part (the v1beta API has no system role).
type GeminiProvider struct {
	config    config.GeminiConfig
	connector *pkghttp.Connector
	logger    *zap.Logger
}

func NewGeminiProvider(cfg config.GeminiConfig, logger *zap.Logger) *GeminiProvider {
	return &GeminiProvider{
		connector: common.NewBaseConnector(cfg.HTTPClientConfig, logger),
		config:    cfg,
		logger:    logger,
	}
}

func (p *GeminiProvider) Name() string { return config.ProviderGemini }

func (p *GeminiProvider) Configured() bool { return p.config.APIKey != "" }

type geminiPart struct {
	Text string `json:"text"`
}

type geminiContent struct {
	Role  string       `json:"role"`
	Parts []geminiPart `json:"parts"`
}

type geminiGenerationConfig struct {
	Temperature      float64 `json:"temperature"`
	MaxOutputTokens  int     `json:"maxOutputTokens"`
	ResponseMimeType string  `json:"responseMimeType"`
}

type geminiRequest struct {
	GenerationConfig geminiGenerationConfig `json:"generationConfig"`
	Contents         []geminiContent        `json:"contents"`
}

type geminiResponse struct {
	Candidates []struct {
		Content struct {
			Parts []geminiPart `json:"parts"`
		} `json:"content"`
	} `json:"candidates"`
}

func (p *GeminiProvider) Generate(ctx context.Context, systemPrompt, userMessage string) (string, error) {
	req := &geminiRequest{
		GenerationConfig: geminiGenerationConfig{
			Temperature:      p.config.Temperature,
			MaxOutputTokens:  p.config.MaxTokens,
			ResponseMimeType: "application/json",
		},
		Contents: []geminiContent{
			{
				Role:  "user",
				Parts: []geminiPart{{Text: systemPrompt + "\n\n" + userMessage}},
			},
		},
	}

	endpoint := fmt.Sprintf("/%s:generateContent", p.config.Model)

	ctxzap.Info(ctx, "calling Gemini API", zap.String("model", p.config.Model))

	var resp geminiResponse
	err := p.connector.DoRequest(ctx, http.MethodPost, endpoint, req, &resp,
		pkghttp.WithQueryParam("key", p.config.APIKey))
	if err != nil {
		return "", fmt.Errorf("gemini generate content: %w", err)
	}

	if len(resp.Candidates) == 0 || len(resp.Candidates[0].Content.Parts) == 0 {
		ctxzap.Warn(ctx, "Gemini response contains no candidates")
		return "{}", nil
	}

	text := resp.Candidates[0].Content.Parts[0].Text
	ctxzap.Debug(ctx, "Gemini response content", zap.String("content", text))

	return text, nil
}
