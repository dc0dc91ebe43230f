package helpbindings

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sangeetx/sangeetx/internal/ui/action"
	"github.com/sangeetx/sangeetx/internal/ui/testutil"
)

func newTestHelpPopup(contexts []string, height int) (*Model, *testutil.PopupHarness) {
	m := New()
	m.SetContexts(contexts)
	m.SetSize(80, height)
	return &m, testutil.NewPopupHarness(&m)
}

func TestHelpBindings_Close(t *testing.T) {
	for _, key := range []string{"q", "?"} {
		t.Run(key, func(t *testing.T) {
			_, h := newTestHelpPopup([]string{"global"}, 24)
			cmd := h.SendKey(key)
			assert.Equal(t, []action.Action{Close{}}, testutil.CollectActions(cmd))
		})
	}
	t.Run("esc", func(t *testing.T) {
		_, h := newTestHelpPopup([]string{"global"}, 24)
		cmd := h.SendEscape()
		assert.Equal(t, []action.Action{Close{}}, testutil.CollectActions(cmd))
	})
}

func TestHelpBindings_Scroll(t *testing.T) {
	m, h := newTestHelpPopup([]string{"global", "playback", "songs"}, 24)
	require.Positive(t, m.maxScroll())

	h.SendKey("j")
	h.SendDown()
	assert.Equal(t, 2, m.scrollOffset)

	h.SendKey("k")
	assert.Equal(t, 1, m.scrollOffset)

	h.SendWheel(true)
	h.SendWheel(true)
	assert.Equal(t, 0, m.scrollOffset)
	assert.True(t, h.ViewContains("j/k scroll"))
}

func TestHelpBindings_ScrollClamped(t *testing.T) {
	m, h := newTestHelpPopup([]string{"prompt"}, 24)
	h.SendDown()
	h.SendUp()
	h.SendUp()
	assert.Equal(t, 0, m.scrollOffset)
	assert.False(t, h.ViewContains("j/k scroll"))
}

func TestHelpBindings_View(t *testing.T) {
	_, h := newTestHelpPopup([]string{"global", "playback"}, 100)

	assert.True(t, h.ViewContains("Help"))
	assert.True(t, h.ViewContains("Global"))
	assert.True(t, h.ViewContains("Playback"))
	assert.True(t, h.ViewContains("Play/pause"))
	assert.True(t, h.ViewContains("space"))
	assert.True(t, h.ViewContains("close"))
}

func TestHelpBindings_ContextOrder(t *testing.T) {
	_, h := newTestHelpPopup([]string{"lyrics", "global"}, 100)
	view := testutil.StripANSI(h.View())
	assert.Less(t, testutil.LineIndex(view, "Global"), testutil.LineIndex(view, "Lyrics"))
}

func TestHelpBindings_EmptyViewWhenNoSize(t *testing.T) {
	m := New()
	m.SetContexts([]string{"global"})
	assert.Empty(t, m.View())
}
