package logger

import (
	"bytes"
	"encoding/json"
	"errors"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewRejectsUnknownLevel(t *testing.T) {
	_, err := New(Config{Level: "loud"})
	require.Error(t, err)
}

func TestFieldsAreWrittenAsJSON(t *testing.T) {
	var buf bytes.Buffer
	l := &Logger{zl: zerolog.New(&buf)}

	l.With(String("component", "macro")).Warn("series failed",
		String("series", "WTI"),
		Int("attempt", 2),
		Float64("change_rate", -1.25),
		Bool("fallback", true),
		Duration("elapsed", 1500*time.Millisecond),
		Strings("symbols", []string{"SPY", "TLT"}),
		Error(errors.New("boom")),
	)

	var got map[string]interface{}
	require.NoError(t, json.Unmarshal(buf.Bytes(), &got))
	assert.Equal(t, "warn", got["level"])
	assert.Equal(t, "series failed", got["message"])
	assert.Equal(t, "macro", got["component"])
	assert.Equal(t, "WTI", got["series"])
	assert.Equal(t, float64(2), got["attempt"])
	assert.Equal(t, -1.25, got["change_rate"])
	assert.Equal(t, true, got["fallback"])
	assert.Equal(t, float64(1500), got["elapsed"])
	assert.Equal(t, "SPY, TLT", got["symbols"])
	assert.Equal(t, "boom", got["error"])
}

func TestNopDiscards(t *testing.T) {
	assert.NotPanics(t, func() {
		Nop().Error("ignored", Error(errors.New("x")))
	})
}
