package logging

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNew_WritesFormattedLineToConsole(t *testing.T) {
	var buf bytes.Buffer
	log, closer, err := New(Options{Level: "debug", Out: &buf})
	require.NoError(t, err)
	defer closer.Close()

	log.WithFields(logrus.Fields{"status": 400, "request_id": "abc"}).Error("process claim failed")

	line := buf.String()
	assert.Contains(t, line, "[ERRO]")
	assert.Contains(t, line, "logging_test.go:")
	assert.Contains(t, line, "process claim failed request_id=abc status=400")
	assert.True(t, strings.HasSuffix(line, "\n"))
}

func TestNew_UnknownLevelFallsBackToInfo(t *testing.T) {
	log, closer, err := New(Options{Level: "chatty"})
	require.NoError(t, err)
	defer closer.Close()
	assert.Equal(t, logrus.InfoLevel, log.GetLevel())
}

func TestNew_AppendsToFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "claimdesk.log")

	log, closer, err := New(Options{Level: "info", File: path})
	require.NoError(t, err)
	log.Info("first")
	log.Debug("hidden")
	require.NoError(t, closer.Close())

	log, closer, err = New(Options{Level: "info", File: path})
	require.NoError(t, err)
	log.Warn("second")
	require.NoError(t, closer.Close())

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	content := string(data)
	assert.Contains(t, content, "first")
	assert.Contains(t, content, "[WARN]")
	assert.NotContains(t, content, "hidden")
}

func TestDiscard(t *testing.T) {
	log := Discard()
	log.Error("nothing to see")
}
