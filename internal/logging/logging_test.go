package logging

import (
	"bytes"
	"testing"

	log "github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseLevel(t *testing.T) {
	lvl, err := ParseLevel("")
	require.NoError(t, err)
	assert.Equal(t, DefaultLevel, lvl)

	lvl, err = ParseLevel("debug")
	require.NoError(t, err)
	assert.Equal(t, log.DebugLevel, lvl)

	lvl, err = ParseLevel("loud")
	require.Error(t, err)
	assert.Equal(t, DefaultLevel, lvl)
}

func TestConfigure(t *testing.T) {
	var buf bytes.Buffer
	logger := log.New()
	Configure(logger, &buf, log.WarnLevel)

	logger.Info("hidden")
	logger.WithField("song", "s1").Warn("load failed")

	out := buf.String()
	assert.NotContains(t, out, "hidden")
	assert.Contains(t, out, `msg="load failed"`)
	assert.Contains(t, out, "song=s1")
	assert.NotContains(t, out, "\x1b[")
}
