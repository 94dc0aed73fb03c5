package ai

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestExtractJSON(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want string
	}{
		{"plain", `{"a":1}`, `{"a":1}`},
		{"fenced json", "```json\n{\"a\":1}\n```", `{"a":1}`},
		{"fenced", "```\n{\"a\":1}\n```", `{"a":1}`},
		{"with prose", "Aqui está:\n{\"a\":1}\nObrigado", `{"a":1}`},
		{"nothing", "não consegui ler", ""},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, extractJSON(tt.in))
		})
	}
}

func TestParseExtraction(t *testing.T) {
	text := "```json\n" + `{
		"invoiceNumber": "NF-123",
		"invoiceDate": "15/03/2024",
		"items": [{"description": "Bainha", "value": 12.5}, {"description": "Fecho", "value": "3"}],
		"totalValue": 15.50,
		"phoneNumber": null,
		"contactName": "null"
	}` + "\n```"

	out, err := parseExtraction(text)
	require.NoError(t, err)
	require.NotNil(t, out.InvoiceNumber)
	assert.Equal(t, "NF-123", *out.InvoiceNumber)
	require.NotNil(t, out.InvoiceDate)
	assert.Equal(t, "15/03/2024", *out.InvoiceDate)
	assert.True(t, out.TotalValue.Equal(decimal.RequireFromString("15.5")))
	assert.Nil(t, out.PhoneNumber)
	assert.Nil(t, out.ContactName)
	require.Len(t, out.Items, 2)
	assert.True(t, out.Items[0].Value.Equal(decimal.RequireFromString("12.5")))
	assert.True(t, out.Items[1].Value.IsZero(), "valor en texto se normaliza a 0")
	assert.False(t, out.Defaulted)
}

func TestParseExtraction_Coercion(t *testing.T) {
	out, err := parseExtraction(`{"invoiceNumber": 4567, "totalValue": "abc", "items": "none"}`)
	require.NoError(t, err)
	require.NotNil(t, out.InvoiceNumber)
	assert.Equal(t, "4567", *out.InvoiceNumber)
	assert.True(t, out.TotalValue.IsZero())
	assert.NotNil(t, out.Items)
	assert.Empty(t, out.Items)

	_, err = parseExtraction("sem json")
	assert.Error(t, err)
	_, err = parseExtraction("{roto")
	assert.Error(t, err)
}
