package importer

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseAmount(t *testing.T) {
	tests := []struct {
		input string
		want  string
	}{
		{"(123.45)", "-123.45"},
		{"$1,234.50", "1234.50"},
		{"-$167.76", "-167.76"},
		{" 25.99 ", "25.99"},
		{"+12.00", "12.00"},
		{"($1,000.00)", "-1000.00"},
		{"£2,500", "2500.00"},
		{"1 234.00", "1234.00"},
	}
	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			got, err := ParseAmount(tt.input)
			require.NoError(t, err)
			assert.Equal(t, tt.want, got.StringFixed(2))
		})
	}
}

func TestParseAmount_Empty(t *testing.T) {
	for _, in := range []string{"", "   ", "$"} {
		_, err := ParseAmount(in)
		assert.ErrorIs(t, err, ErrEmptyAmount, "input %q", in)
	}
}

func TestParseAmount_Malformed(t *testing.T) {
	_, err := ParseAmount("twelve")
	require.Error(t, err)
	assert.NotErrorIs(t, err, ErrEmptyAmount)
	assert.Contains(t, err.Error(), "parsing amount")
}

func TestParseDate(t *testing.T) {
	tests := []struct {
		input string
		want  time.Time
	}{
		{"2024-03-05", time.Date(2024, 3, 5, 0, 0, 0, 0, time.UTC)},
		{"03/05/2024", time.Date(2024, 3, 5, 0, 0, 0, 0, time.UTC)},
		{"3/5/2024", time.Date(2024, 3, 5, 0, 0, 0, 0, time.UTC)},
		{"25/12/2024", time.Date(2024, 12, 25, 0, 0, 0, 0, time.UTC)},
		{"12-31-2023", time.Date(2023, 12, 31, 0, 0, 0, 0, time.UTC)},
		{"2024/02/29", time.Date(2024, 2, 29, 0, 0, 0, 0, time.UTC)},
	}
	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			assert.True(t, tt.want.Equal(ParseDate(tt.input)), "got %v", ParseDate(tt.input))
		})
	}
}

func TestParseDate_Invalid(t *testing.T) {
	assert.True(t, ParseDate("not-a-date").IsZero())
	assert.True(t, ParseDate("").IsZero())
	assert.True(t, ParseDate("13/13/2024").IsZero())
}

func TestParseDate_ExplicitLayout(t *testing.T) {
	assert.True(t, ParseDate("2024-01-02", "1/2/2006").IsZero())
	assert.Equal(t, 2, ParseDate("01/02/2024", "1/2/2006").Day())
}
