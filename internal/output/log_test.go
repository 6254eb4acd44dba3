package output

import (
	"bytes"
	"strings"
	"testing"

	"github.com/charmbracelet/log"
	"github.com/stretchr/testify/assert"
)

// captureLog sets up the logger to write to a buffer and returns the buffer.
func captureLog(cfg LogConfig) *bytes.Buffer {
	var buf bytes.Buffer
	SetupLogging(cfg)
	logger = log.NewWithOptions(&buf, log.Options{
		Level:           logger.GetLevel(),
		ReportTimestamp: cfg.resolveTimestamps(),
		ReportCaller:    cfg.Verbose,
		TimeFormat:      "15:04:05",
	})
	return &buf
}

// resolveTimestamps mirrors SetupLogging.
func (c LogConfig) resolveTimestamps() bool {
	if c.Verbose {
		return true
	}
	if c.Timestamps != nil {
		return *c.Timestamps
	}
	return true
}

func TestSetupLogging_TimestampDefaultOn(t *testing.T) {
	buf := captureLog(LogConfig{})
	logger.Info("test")
	assert.Contains(t, buf.String(), ":")
}

func TestSetupLogging_TimestampExplicitlyDisabled(t *testing.T) {
	buf := captureLog(LogConfig{Timestamps: BoolPtr(false)})
	logger.Info("hello")
	assert.NotRegexp(t, `^\d{1,2}:\d{2}:\d{2}`, strings.TrimSpace(buf.String()))
}

func TestSetupLogging_VerboseEnablesDebugLevel(t *testing.T) {
	buf := captureLog(LogConfig{Verbose: true})
	Debug("debug-msg")
	assert.Contains(t, buf.String(), "debug-msg")
}

func TestSetupLogging_DefaultHidesDebug(t *testing.T) {
	buf := captureLog(LogConfig{})
	Debug("hidden-msg")
	Info("shown-msg")
	assert.NotContains(t, buf.String(), "hidden-msg")
	assert.Contains(t, buf.String(), "shown-msg")
}

func TestScopedLoggers(t *testing.T) {
	buf := captureLog(LogConfig{Timestamps: BoolPtr(false)})

	PackageLogger("core").Info("exported")
	ModuleLogger("x_core_util").Warn("skipped")

	out := buf.String()
	assert.Contains(t, out, "p:")
	assert.Contains(t, out, "core")
	assert.Contains(t, out, "m:")
	assert.Contains(t, out, "x_core_util")
}
