package money

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
)

func TestFormat(t *testing.T) {
	assert.Equal(t, "€ 1000.00", Format(decimal.NewFromInt(1000)))
	assert.Equal(t, "€ 300.00", Format(decimal.RequireFromString("300")))
	assert.Equal(t, "€ 0.10", Format(decimal.RequireFromString("0.1")))
	assert.Equal(t, "€ -12.35", Format(decimal.RequireFromString("-12.345")))
}

func TestCents(t *testing.T) {
	assert.True(t, Cents(decimal.RequireFromString("10.005")).Equal(decimal.RequireFromString("10.01")))
}

func TestFileName(t *testing.T) {
	tests := map[string]string{
		"Pagamentos - Março 2024":            "pagamentos_marco_2024",
		"Completo - 01/03/2024 a 31/03/2024": "completo_01_03_2024_a_31_03_2024",
		"relatorio_pagamentos_2024-03":       "relatorio_pagamentos_2024-03",
		"   ":                                "relatorio",
		"Contactos & Telefones (São João)":   "contactos_telefones_sao_joao",
	}
	for in, want := range tests {
		assert.Equal(t, want, FileName(in), in)
	}
}

func TestParse(t *testing.T) {
	cases := map[string]string{
		"1234.56":    "1234.56",
		"1.234,56":   "1234.56",
		"1,234.56":   "1234.56",
		"€ 12,50":    "12.5",
		"12,5":       "12.5",
		" 80 ":       "80",
		"1 200,00":   "1200",
		"-15,75":     "-15.75",
		"1.234":      "1234",
		"12.345.678": "12345678",
		"-2.500":     "-2500",
		"1.23":       "1.23",
		"0.500":      "0.5",
		"1,234":      "1.234",
	}
	for in, want := range cases {
		got, err := Parse(in)
		if assert.NoError(t, err, in) {
			assert.True(t, got.Equal(decimal.RequireFromString(want)), "%q -> %s", in, got)
		}
	}

	for _, in := range []string{"", "€", "doze", "1,2,3,4x", "1.234.56"} {
		_, err := Parse(in)
		assert.Error(t, err, in)
	}
}
