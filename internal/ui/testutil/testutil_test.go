package testutil

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestStripANSI(t *testing.T) {
	assert.Equal(t, "hello world", StripANSI("hello world"))
	assert.Equal(t, "red text", StripANSI("\x1b[31mred\x1b[0m text"))
	assert.Equal(t, "bold green", StripANSI("\x1b[1;32mbold green\x1b[0m"))
	assert.Empty(t, StripANSI(""))
}

func TestNormalizeWhitespace(t *testing.T) {
	assert.Equal(t, "hello world", NormalizeWhitespace("  hello \t\n  world "))
}

func TestMeasureWidth(t *testing.T) {
	assert.Equal(t, 5, MeasureWidth("\x1b[1mhello\x1b[0m"))
	assert.Equal(t, 4, MeasureWidth("日本"))
}

func TestLineHelpers(t *testing.T) {
	out := "first\n\x1b[1msecond\x1b[0m line\nthird\n\n"

	assert.True(t, ContainsLine(out, "third"))
	assert.False(t, ContainsLine(out, "fourth"))
	assert.Equal(t, "third", FindLine(out, "thi"))
	assert.Equal(t, 1, LineIndex(out, "second line"))
	assert.Equal(t, -1, LineIndex(out, "missing"))
	assert.Len(t, SplitLines(out), 3)
}
