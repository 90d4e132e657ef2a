package logger

import (
	"bytes"
	"encoding/json"
	"os"
	"testing"
	"time"

	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewLogger(t *testing.T) {
	logger := newLogger()

	assert.Equal(t, logrus.WarnLevel, logger.GetLevel())
	formatter, ok := logger.Formatter.(*logrus.TextFormatter)
	require.True(t, ok)
	assert.Equal(t, time.RFC3339Nano, formatter.TimestampFormat)
	assert.True(t, formatter.FullTimestamp)
}

func TestFor(t *testing.T) {
	entry := For("registry")
	assert.Equal(t, "registry", entry.Data["component"])
	assert.Equal(t, L.Logger, entry.Logger)
}

func TestSetLogLevel(t *testing.T) {
	original := L.Logger.GetLevel()
	t.Cleanup(func() { L.Logger.SetLevel(original) })

	for _, level := range []string{"debug", "info", "warn", "error"} {
		t.Run(level, func(t *testing.T) {
			require.NoError(t, SetLogLevel(level))
			want, _ := logrus.ParseLevel(level)
			assert.Equal(t, want, L.Logger.GetLevel())
		})
	}

	assert.Error(t, SetLogLevel("loud"))
}

func TestSetLogFormatAndOutput(t *testing.T) {
	originalFormatter := L.Logger.Formatter
	originalLevel := L.Logger.GetLevel()
	t.Cleanup(func() {
		L.Logger.Formatter = originalFormatter
		L.Logger.SetLevel(originalLevel)
		SetLogOutput(os.Stderr)
	})

	var buf bytes.Buffer
	SetLogOutput(&buf)
	SetLogFormat("json")
	require.NoError(t, SetLogLevel("info"))

	For("relocate").WithField("path", "/tmp/x").Info("package staged")

	var entry map[string]interface{}
	require.NoError(t, json.Unmarshal(buf.Bytes(), &entry))
	assert.Equal(t, "info", entry["logLevel"])
	assert.Equal(t, "package staged", entry["message"])
	assert.Equal(t, "relocate", entry["component"])
	assert.Equal(t, "/tmp/x", entry["path"])

	timestamp, ok := entry["timestamp"].(string)
	require.True(t, ok)
	_, err := time.Parse(time.RFC3339Nano, timestamp)
	assert.NoError(t, err)

	SetLogFormat("text")
	assert.IsType(t, &logrus.TextFormatter{}, L.Logger.Formatter)
}
