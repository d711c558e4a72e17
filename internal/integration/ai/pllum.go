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

// subscriptionKeyHeader authenticates against the PLLUM API gateway.
const subscriptionKeyHeader = "Ocp-Apim-Subscription-Key"

// PllumProvider talks to the PLLUM chat-completion endpoint (OpenAI-style
// request and response shapes).
type PllumProvider struct {
	config    config.PllumConfig
	connector *pkghttp.Connector
	logger    *zap.Logger
}

func NewPllumProvider(cfg config.PllumConfig, logger *zap.Logger) *PllumProvider {
	return &PllumProvider{
		connector: common.NewBaseConnector(cfg.HTTPClientConfig, logger,
			pkghttp.WithAPIKeyHeader(subscriptionKeyHeader, cfg.APIKey)),
		config: cfg,
		logger: logger,
	}
}

func (p *PllumProvider) Name() string { return config.ProviderPllum }

func (p *PllumProvider) Configured() bool { return p.config.APIKey != "" }

type chatMessage struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

type responseFormat struct {
	Type string `json:"type"`
}

// pllumRequest mirrors the gateway's chat-completion body. The model name is
// carried in the "type" field, a quirk of the PLLUM deployment.
type pllumRequest struct {
	Type           string         `json:"type"`
	Temperature    float64        `json:"temperature"`
	ResponseFormat responseFormat `json:"response_format"`
	Messages       []chatMessage  `json:"messages"`
}

type pllumResponse struct {
	Choices []struct {
		Message struct {
			Content string `json:"content"`
		} `json:"message"`
	} `json:"choices"`
}

func (p *PllumProvider) Generate(ctx context.Context, systemPrompt, userMessage string) (string, error) {
	req := &pllumRequest{
		Type:           p.config.Model,
		Temperature:    p.config.Temperature,
		ResponseFormat: responseFormat{Type: "json_object"},
		Messages: []chatMessage{
			{Role: "system", Content: systemPrompt},
			{Role: "user", Content: userMessage},
		},
	}

	ctxzap.Info(ctx, "calling PLLUM API", zap.String("model", p.config.Model))

	var resp pllumResponse
	if err := p.connector.DoRequest(ctx, http.MethodPost, "/chat/completions", req, &resp); err != nil {
		return "", fmt.Errorf("pllum chat completion: %w", err)
	}

	if len(resp.Choices) == 0 {
		ctxzap.Warn(ctx, "PLLUM response contains no choices")
		return "{}", nil
	}

	content := resp.Choices[0].Message.Content
	ctxzap.Debug(ctx, "PLLUM response content", zap.String("content", content))

	return content, nil
}
