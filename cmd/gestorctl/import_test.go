package main

import (
	"bytes"
	"strings"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/text/encoding/charmap"
)

func TestReadInvoiceRows(t *testing.T) {
	csvText := "data;numero;valor;contato;telefone\n" +
		"05/03/2024;101;1.234,56;Ana;912345678\n" +
		"\n" +
		"2024-03-07;;80;;\n"

	rows, err := readInvoiceRows(strings.NewReader(csvText), "utf8", ';')
	require.NoError(t, err)
	require.Len(t, rows, 2)

	assert.Equal(t, "2024-03-05", rows[0].DeliveryDate)
	assert.Equal(t, "101", rows[0].InvoiceNumber)
	assert.True(t, rows[0].TotalValue.Equal(decimal.RequireFromString("1234.56")))
	assert.Equal(t, "Ana", rows[0].ContactName)
	assert.Equal(t, "912345678", rows[0].PhoneNumber)

	assert.Equal(t, "2024-03-07", rows[1].DeliveryDate)
	assert.True(t, rows[1].TotalValue.Equal(decimal.NewFromInt(80)))
}

func TestReadInvoiceRows_Latin1(t *testing.T) {
	raw, err := charmap.ISO8859_1.NewEncoder().String("Data,Valor,Contato\n01/03/2024,10,João\n")
	require.NoError(t, err)

	rows, err := readInvoiceRows(bytes.NewReader([]byte(raw)), "latin1", ',')
	require.NoError(t, err)
	require.Len(t, rows, 1)
	assert.Equal(t, "João", rows[0].ContactName)
}

func TestReadInvoiceRows_Errors(t *testing.T) {
	cases := map[string]string{
		"vacío":          "",
		"sin valor":      "data;numero\n01/03/2024;1\n",
		"fecha inválida": "data;valor\n31-03-2024;10\n",
		"valor inválido": "data;valor\n01/03/2024;dez\n",
	}
	for name, in := range cases {
		t.Run(name, func(t *testing.T) {
			_, err := readInvoiceRows(strings.NewReader(in), "utf8", ';')
			assert.Error(t, err)
		})
	}

	_, err := readInvoiceRows(strings.NewReader("data;valor\n"), "ebcdic", ';')
	assert.Error(t, err)
}
