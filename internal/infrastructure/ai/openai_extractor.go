package ai

import (
	"context"
	"net/http"
	"time"

	"github.com/rs/zerolog"
	"github.com/sashabaranov/go-openai"

	"github.com/jhoicas/gestor-notas-api/internal/application/dto"
	"github.com/jhoicas/gestor-notas-api/internal/application/ports"
)

var _ ports.InvoiceExtractor = (*GatewayExtractor)(nil)

// GatewayExtractor lee la foto de la nota con un modelo de visión detrás de una API
// compatible con OpenAI (p. ej. el AI gateway con google/gemini-2.5-flash).
type GatewayExtractor struct {
	client *openai.Client
	model  string
	log    zerolog.Logger
}

// NewGatewayExtractor construye el adaptador. baseURL incluye el /v1.
func NewGatewayExtractor(baseURL, apiKey, model string, timeout time.Duration, log zerolog.Logger) *GatewayExtractor {
	cfg := openai.DefaultConfig(apiKey)
	if baseURL != "" {
		cfg.BaseURL = baseURL
	}
	cfg.HTTPClient = &http.Client{Timeout: timeout}
	return &GatewayExtractor{
		client: openai.NewClientWithConfig(cfg),
		model:  model,
		log:    log,
	}
}

// Extract hace una única llamada; cualquier fallo devuelve la carga por defecto.
func (e *GatewayExtractor) Extract(ctx context.Context, imageURL string) dto.ExtractionDTO {
	resp, err := e.client.CreateChatCompletion(ctx, openai.ChatCompletionRequest{
		Model: e.model,
		Messages: []openai.ChatCompletionMessage{
			{Role: openai.ChatMessageRoleSystem, Content: systemPrompt},
			{
				Role: openai.ChatMessageRoleUser,
				MultiContent: []openai.ChatMessagePart{
					{Type: openai.ChatMessagePartTypeText, Text: userPrompt},
					{Type: openai.ChatMessagePartTypeImageURL, ImageURL: &openai.ChatMessageImageURL{URL: imageURL}},
				},
			},
		},
	})
	if err != nil {
		e.log.Warn().Err(err).Str("model", e.model).Msg("AI gateway request failed, using default payload")
		return dto.DefaultExtraction()
	}
	if len(resp.Choices) == 0 {
		e.log.Warn().Msg("AI gateway returned no choices")
		return dto.DefaultExtraction()
	}

	content := resp.Choices[0].Message.Content
	out, err := parseExtraction(content)
	if err != nil {
		e.log.Warn().Err(err).Str("response", content).Msg("AI response is not valid JSON")
		return dto.DefaultExtraction()
	}
	e.log.Debug().Int("items", len(out.Items)).Str("total", out.TotalValue.String()).Msg("invoice extracted")
	return out
}
