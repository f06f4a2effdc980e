package logger

import (
	"bytes"
	"context"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
)

func TestNew(t *testing.T) {
	log := New(zerolog.InfoLevel)
	assert.Equal(t, zerolog.InfoLevel, log.GetLevel())
}

func TestNewConsole(t *testing.T) {
	buf := &bytes.Buffer{}
	log := NewConsole(buf, zerolog.WarnLevel)

	log.Info().Msg("hidden")
	log.Warn().Str("file", "bofa.csv").Msg("skipped file")

	assert.NotContains(t, buf.String(), "hidden")
	assert.Contains(t, buf.String(), "skipped file")
	assert.Contains(t, buf.String(), "file=")
	assert.Contains(t, buf.String(), "bofa.csv")
}

func TestNewWithWriter(t *testing.T) {
	buf := &bytes.Buffer{}
	log := NewWithWriter(buf)

	log.Info().Str("file", "chase.csv").Msg("test message")

	assert.Contains(t, buf.String(), "test message")
	assert.Contains(t, buf.String(), `"file":"chase.csv"`)
}

func TestFromContext(t *testing.T) {
	buf := &bytes.Buffer{}
	ctx := WithContext(context.Background(), NewWithWriter(buf))

	l := FromContext(ctx)
	l.Info().Msg("test")
	assert.NotZero(t, buf.Len())
}

func TestFromContext_Default(t *testing.T) {
	log := FromContext(context.Background())
	assert.Equal(t, zerolog.Disabled, log.GetLevel())
}
