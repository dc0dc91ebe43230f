package headerbar

import (
	"testing"

	"github.com/charmbracelet/lipgloss"
	"github.com/stretchr/testify/assert"

	"github.com/sangeetx/sangeetx/internal/ui/testutil"
)

func TestRender_Tabs(t *testing.T) {
	got := Render(60, Status{Panel: PanelLyrics})
	plain := testutil.StripANSI(got)

	assert.Contains(t, plain, "SangeetX")
	assert.Contains(t, plain, "Lyrics │ Queue")
	assert.Equal(t, 60, lipgloss.Width(got))
}

func TestRender_Banner(t *testing.T) {
	got := testutil.StripANSI(Render(60, Status{Banner: "server unreachable"}))

	assert.Contains(t, got, "server unreachable [r] retry")
	assert.NotContains(t, got, "Queue")
}

func TestRender_LongBannerTruncated(t *testing.T) {
	got := Render(40, Status{Banner: "the catalog service answered with an unexpected status"})

	assert.Equal(t, 40, lipgloss.Width(got))
	assert.Contains(t, testutil.StripANSI(got), "… [r] retry")
}

func TestRender_Locked(t *testing.T) {
	got := testutil.StripANSI(Render(80, Status{Panel: PanelQueue, Locked: true}))
	assert.Contains(t, got, "tap to enable audio")
}

func TestRender_TooNarrow(t *testing.T) {
	assert.Empty(t, Render(10, Status{}))
}
