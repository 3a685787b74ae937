package exceltime_test

import (
	"testing"
	"time"

	"github.com/jhoicas/bulkledger-api/pkg/exceltime"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseText_Formatos(t *testing.T) {
	want := time.Date(2024, 5, 17, 13, 45, 10, 0, time.UTC)

	got, ok := exceltime.ParseText("2024-05-17 13:45:10")
	require.True(t, ok)
	assert.Equal(t, want, got)

	got, ok = exceltime.ParseText("2024/05/17 13:45:10")
	require.True(t, ok)
	assert.Equal(t, want, got)

	soloFecha, ok := exceltime.ParseText("2024-05-17")
	require.True(t, ok)
	assert.Equal(t, time.Date(2024, 5, 17, 0, 0, 0, 0, time.UTC), soloFecha)
}

func TestParseText_Invalidos(t *testing.T) {
	for _, s := range []string{"", "   ", "no es fecha", "17/05/2024 99:99"} {
		_, ok := exceltime.ParseText(s)
		assert.False(t, ok, "entrada %q no debe parsear", s)
	}
}

func TestParseCell_SerialExcel(t *testing.T) {
	got, ok := exceltime.ParseCell("45000")
	assert.True(t, ok)
	assert.Equal(t, time.Date(2023, 3, 15, 0, 0, 0, 0, time.UTC), got)

	got, ok = exceltime.ParseCell("45000.5")
	assert.True(t, ok)
	assert.Equal(t, 12, got.Hour())
}

func TestParseCell_TextoYBasura(t *testing.T) {
	got, ok := exceltime.ParseCell("2024-05-17 08:30:00")
	assert.True(t, ok)
	assert.Equal(t, time.Date(2024, 5, 17, 8, 30, 0, 0, time.UTC), got)

	for _, s := range []string{"", "-5", "0", "sin fecha"} {
		_, ok := exceltime.ParseCell(s)
		assert.False(t, ok, "entrada %q no debe parsear", s)
	}
}
