package pdf

import (
	"bytes"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/gestor-notas-api/internal/domain/report"
)

func TestColumnSizes(t *testing.T) {
	cases := map[int][]int{
		2: {6, 6},
		3: {4, 4, 4},
		4: {3, 3, 3, 3},
		5: {3, 3, 2, 2, 2},
		6: {2, 2, 2, 2, 2, 2},
	}
	for n, want := range cases {
		got := columnSizes(n)
		assert.Equal(t, want, got, "n=%d", n)
		sum := 0
		for _, s := range got {
			sum += s
		}
		assert.Equal(t, gridSize, sum)
	}
	assert.Nil(t, columnSizes(0))
}

func TestRender(t *testing.T) {
	r := &report.Report{
		Type:        report.TypeValueOnly,
		Title:       "Apenas Valores - 01/03/2024 a 31/03/2024",
		Heading:     "Relatório de Notas Fiscais",
		PeriodLabel: "Período: 01/03/2024 a 31/03/2024",
		Summary: []report.SummaryLine{
			{Label: "Valor Total", Amount: decimal.NewFromInt(1000), Display: "€ 1000.00", Tone: report.ToneDefault},
			{Label: "Projeção de Ganhos (30%)", Amount: decimal.NewFromInt(300), Display: "€ 300.00", Tone: report.ToneProjected},
			{Label: "Total Bonus Corte & Cose", Amount: decimal.NewFromInt(50), Display: "€ 50.00", Tone: report.ToneBonus},
		},
		Table: report.Table{
			Columns: []string{"Data", "Valor"},
			Rows:    [][]string{{"05/03/2024", "€ 1000.00"}},
		},
		GeneratedAt: time.Date(2024, 4, 1, 10, 0, 0, 0, time.UTC),
	}

	out, err := NewReportRenderer("Gestor de Notas").Render(r)
	require.NoError(t, err)
	assert.True(t, bytes.HasPrefix(out, []byte("%PDF")))

	_, err = NewReportRenderer("x").Render(nil)
	assert.Error(t, err)
}
