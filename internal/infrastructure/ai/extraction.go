package ai

import (
	"bytes"
	"encoding/json"
	"fmt"
	"regexp"
	"strings"

	"github.com/shopspring/decimal"

	"github.com/jhoicas/gestor-notas-api/internal/application/dto"
)

// systemPrompt es común a todos los proveedores: define el JSON que se espera de vuelta.
const systemPrompt = `Você é um assistente especializado em extrair informações de notas fiscais e recibos.
Analise a imagem e extraia as seguintes informações:
1. Número da nota fiscal (se disponível)
2. Data da nota fiscal (formato DD/MM/YYYY)
3. Lista de itens com descrição e valor de cada item
4. Valor total
5. Número de telefone (se disponível na nota)
6. Nome do cliente/contacto (se disponível na nota)

Responda SEMPRE em formato JSON válido com esta estrutura:
{
  "invoiceNumber": "número ou null se não encontrar",
  "invoiceDate": "DD/MM/YYYY ou null se não encontrar",
  "items": [
    {"description": "descrição do item", "value": 0.00}
  ],
  "totalValue": 0.00,
  "phoneNumber": "número de telefone ou null",
  "contactName": "nome do cliente ou null"
}

IMPORTANTE:
- Campos não encontrados: null (valor total 0.00, itens [])
- Retorne APENAS o JSON, sem explicações adicionais
- NUNCA retorne erro, sempre retorne o JSON com os campos que conseguir extrair`

const userPrompt = "Por favor, extraia as informações desta nota fiscal/recibo:"

// jsonBlockRe extrae el primer objeto JSON del texto aunque el modelo lo envuelva en markdown.
var jsonBlockRe = regexp.MustCompile(`(?s)\{.*\}`)

// extractJSON extrae el primer objeto JSON bien formado de un texto libre.
// Estrategia en dos pasos:
//  1. Eliminar bloques de código markdown (```json … ``` o ``` … ```).
//  2. Usar regex para capturar el primer bloque { … }.
func extractJSON(text string) string {
	text = strings.TrimSpace(text)
	if idx := strings.Index(text, "```"); idx != -1 {
		after := text[idx+3:]
		if nl := strings.Index(after, "\n"); nl != -1 {
			after = after[nl+1:]
		}
		if end := strings.LastIndex(after, "```"); end != -1 {
			after = after[:end]
		}
		text = strings.TrimSpace(after)
	}
	if strings.HasPrefix(text, "{") {
		return text
	}
	return strings.TrimSpace(jsonBlockRe.FindString(text))
}

// rawExtraction los campos llegan sin tipar: el modelo a veces devuelve números como
// texto o "null" entre comillas.
type rawExtraction struct {
	InvoiceNumber json.RawMessage `json:"invoiceNumber"`
	InvoiceDate   json.RawMessage `json:"invoiceDate"`
	Items         json.RawMessage `json:"items"`
	TotalValue    json.RawMessage `json:"totalValue"`
	PhoneNumber   json.RawMessage `json:"phoneNumber"`
	ContactName   json.RawMessage `json:"contactName"`
}

type rawItem struct {
	Description json.RawMessage `json:"description"`
	Value       json.RawMessage `json:"value"`
}

// parseExtraction convierte el texto del modelo en el payload. Los campos que falten o
// tengan otro tipo se normalizan (null, 0, []); solo falla si no hay un objeto JSON.
func parseExtraction(text string) (dto.ExtractionDTO, error) {
	clean := extractJSON(text)
	if clean == "" {
		return dto.ExtractionDTO{}, fmt.Errorf("AI: no se encontró JSON en la respuesta del modelo")
	}
	var raw rawExtraction
	if err := json.Unmarshal([]byte(clean), &raw); err != nil {
		return dto.ExtractionDTO{}, fmt.Errorf("AI: parsear JSON de extracción: %w", err)
	}

	out := dto.ExtractionDTO{
		InvoiceNumber: stringOrNil(raw.InvoiceNumber),
		InvoiceDate:   stringOrNil(raw.InvoiceDate),
		TotalValue:    numberOrZero(raw.TotalValue),
		PhoneNumber:   stringOrNil(raw.PhoneNumber),
		ContactName:   stringOrNil(raw.ContactName),
		Items:         []dto.ExtractedItemDTO{},
	}
	var items []rawItem
	if err := json.Unmarshal(raw.Items, &items); err == nil {
		for _, it := range items {
			desc := ""
			if p := stringOrNil(it.Description); p != nil {
				desc = *p
			}
			out.Items = append(out.Items, dto.ExtractedItemDTO{Description: desc, Value: numberOrZero(it.Value)})
		}
	}
	return out, nil
}

// stringOrNil acepta string o número; vacío, null o "null" devuelven nil.
func stringOrNil(raw json.RawMessage) *string {
	raw = bytes.TrimSpace(raw)
	if len(raw) == 0 {
		return nil
	}
	var s string
	if raw[0] == '"' {
		if err := json.Unmarshal(raw, &s); err != nil {
			return nil
		}
	} else if _, err := decimal.NewFromString(string(raw)); err == nil {
		s = string(raw)
	}
	s = strings.TrimSpace(s)
	if s == "" || strings.EqualFold(s, "null") {
		return nil
	}
	return &s
}

// numberOrZero solo acepta números JSON; cualquier otra cosa vale 0.
func numberOrZero(raw json.RawMessage) decimal.Decimal {
	raw = bytes.TrimSpace(raw)
	if len(raw) == 0 || raw[0] == '"' {
		return decimal.Zero
	}
	d, err := decimal.NewFromString(string(raw))
	if err != nil {
		return decimal.Zero
	}
	return d
}
