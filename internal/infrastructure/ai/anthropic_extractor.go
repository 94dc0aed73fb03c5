package ai

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/rs/zerolog"

	"github.com/jhoicas/gestor-notas-api/internal/application/dto"
	"github.com/jhoicas/gestor-notas-api/internal/application/ports"
)

// Verificar en tiempo de compilación que AnthropicExtractor implementa InvoiceExtractor.
var _ ports.InvoiceExtractor = (*AnthropicExtractor)(nil)

const (
	anthropicMessagesURL = "https://api.anthropic.com/v1/messages"
	anthropicVersion     = "2023-06-01"
)

// AnthropicExtractor adaptador que implementa InvoiceExtractor usando la API REST de Anthropic.
// Usa net/http de la librería estándar de Go; no requiere el SDK oficial.
type AnthropicExtractor struct {
	apiKey     string
	model      string
	url        string
	httpClient *http.Client
	log        zerolog.Logger
}

// NewAnthropicExtractor construye el adaptador. model suele ser "claude-3-5-haiku-20241022".
func NewAnthropicExtractor(apiKey, model string, timeout time.Duration, log zerolog.Logger) *AnthropicExtractor {
	return &AnthropicExtractor{
		apiKey:     apiKey,
		model:      model,
		url:        anthropicMessagesURL,
		httpClient: &http.Client{Timeout: timeout},
		log:        log,
	}
}

// ── Estructuras internas del protocolo Anthropic Messages API ─────────────────

type anthropicRequest struct {
	Model     string             `json:"model"`
	MaxTokens int                `json:"max_tokens"`
	System    string             `json:"system"`
	Messages  []anthropicMessage `json:"messages"`
}

type anthropicMessage struct {
	Role    string             `json:"role"`
	Content []anthropicContent `json:"content"`
}

type anthropicContent struct {
	Type   string           `json:"type"`
	Text   string           `json:"text,omitempty"`
	Source *anthropicSource `json:"source,omitempty"`
}

type anthropicSource struct {
	Type string `json:"type"`
	URL  string `json:"url"`
}

type anthropicResponse struct {
	Content []struct {
		Type string `json:"type"`
		Text string `json:"text"`
	} `json:"content"`
	Error *struct {
		Type    string `json:"type"`
		Message string `json:"message"`
	} `json:"error"`
}

// Extract nunca devuelve error: los fallos se registran y se usa la carga por defecto.
func (s *AnthropicExtractor) Extract(ctx context.Context, imageURL string) dto.ExtractionDTO {
	out, err := s.extract(ctx, imageURL)
	if err != nil {
		s.log.Warn().Err(err).Str("model", s.model).Msg("anthropic extraction failed, using default payload")
		return dto.DefaultExtraction()
	}
	return out
}

func (s *AnthropicExtractor) extract(ctx context.Context, imageURL string) (dto.ExtractionDTO, error) {
	if s.apiKey == "" {
		return dto.ExtractionDTO{}, fmt.Errorf("AI: ANTHROPIC_API_KEY no configurado")
	}
	payload := anthropicRequest{
		Model:     s.model,
		MaxTokens: 1024,
		System:    systemPrompt,
		Messages: []anthropicMessage{{
			Role: "user",
			Content: []anthropicContent{
				{Type: "image", Source: &anthropicSource{Type: "url", URL: imageURL}},
				{Type: "text", Text: userPrompt},
			},
		}},
	}
	body, err := json.Marshal(payload)
	if err != nil {
		return dto.ExtractionDTO{}, fmt.Errorf("AI: serializar request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, s.url, bytes.NewReader(body))
	if err != nil {
		return dto.ExtractionDTO{}, fmt.Errorf("AI: crear HTTP request: %w", err)
	}
	req.Header.Set("x-api-key", s.apiKey)
	req.Header.Set("anthropic-version", anthropicVersion)
	req.Header.Set("content-type", "application/json")

	resp, err := s.httpClient.Do(req)
	if err != nil {
		if ctx.Err() != nil {
			return dto.ExtractionDTO{}, fmt.Errorf("AI: timeout o cancelación: %w", ctx.Err())
		}
		return dto.ExtractionDTO{}, fmt.Errorf("AI: llamada HTTP fallida: %w", err)
	}
	defer resp.Body.Close()

	rawBody, err := io.ReadAll(io.LimitReader(resp.Body, 256*1024))
	if err != nil {
		return dto.ExtractionDTO{}, fmt.Errorf("AI: leer respuesta: %w", err)
	}

	if resp.StatusCode != http.StatusOK {
		var errResp anthropicResponse
		if jsonErr := json.Unmarshal(rawBody, &errResp); jsonErr == nil && errResp.Error != nil {
			return dto.ExtractionDTO{}, fmt.Errorf("AI: Anthropic error (%s): %s", errResp.Error.Type, errResp.Error.Message)
		}
		return dto.ExtractionDTO{}, fmt.Errorf("AI: Anthropic HTTP %d", resp.StatusCode)
	}

	var anthResp anthropicResponse
	if err := json.Unmarshal(rawBody, &anthResp); err != nil {
		return dto.ExtractionDTO{}, fmt.Errorf("AI: deserializar respuesta Anthropic: %w", err)
	}
	if len(anthResp.Content) == 0 {
		return dto.ExtractionDTO{}, fmt.Errorf("AI: respuesta vacía")
	}
	return parseExtraction(anthResp.Content[0].Text)
}
