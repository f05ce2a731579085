package utils

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRoundWithTwoDecimalPlace(t *testing.T) {
	tests := []struct {
		name string
		in   float64
		want float64
	}{
		{name: "zero", in: 0, want: 0},
		{name: "arredonda para cima", in: 3.456, want: 3.46},
		{name: "arredonda para baixo", in: 3.454, want: 3.45},
		{name: "valor inteiro", in: 5, want: 5},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, RoundWithTwoDecimalPlace(tt.in))
		})
	}
}

func TestParseDate(t *testing.T) {
	date, err := ParseDate("")
	require.NoError(t, err)
	assert.Nil(t, date)

	date, err = ParseDate("2024-01-31")
	require.NoError(t, err)
	assert.Equal(t, time.Date(2024, 1, 31, 0, 0, 0, 0, time.UTC), *date)

	_, err = ParseDate("31/01/2024")
	assert.Error(t, err)

	_, err = ParseDateOnly("2024-02-30")
	assert.Error(t, err)
}

func TestGenerateID(t *testing.T) {
	id, err := GenerateID()
	require.NoError(t, err)
	assert.Len(t, id, idLength)

	other, err := GenerateID()
	require.NoError(t, err)
	assert.NotEqual(t, id, other)
}

func TestIsWholeNumber(t *testing.T) {
	assert.True(t, IsWholeNumber(5))
	assert.False(t, IsWholeNumber(5.5))
}
