package playerbar

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/sangeetx/sangeetx/internal/icons"
	"github.com/sangeetx/sangeetx/internal/playback"
	"github.com/sangeetx/sangeetx/internal/ui/action"
	"github.com/sangeetx/sangeetx/internal/ui/render"
	"github.com/sangeetx/sangeetx/internal/ui/styles"
)

// region identifies what a segment of the control row is.
type region int

const (
	regionNone region = iota
	regionPrev
	regionPlay
	regionNext
	regionInfo
	regionRetry
	regionPosition
	regionProgress
	regionDuration
	regionLike
	regionShuffle
	regionRepeat
	regionMute
	regionVolume
	regionPercent
)

const (
	minBarWidth    = 10
	narrowBarWidth = 3
	volumeWidth    = 10
	minInfoWidth   = 8
	separator      = "  "
)

// segment is a run of cells of the control row. start is set by place.
type segment struct {
	region region
	text   string
	plain  string
	width  int
	start  int
}

func seg(r region, text string, style lipgloss.Style) segment {
	return segment{region: r, text: style.Render(text), plain: text, width: lipgloss.Width(text)}
}

func gap(n int) segment {
	return segment{text: strings.Repeat(" ", n), plain: strings.Repeat(" ", n), width: n}
}

// layout lays the control row out in width cells, dropping the volume
// group and then the mode toggles when space runs out.
func layout(s State, width int) []segment {
	if s.Song == nil {
		t := styles.T()
		return []segment{seg(regionNone, render.TruncateEllipsis("No song selected", width), t.S().Subtle)}
	}
	for _, level := range []int{2, 1, 0} {
		if segs, ok := tryLayout(s, width, level); ok {
			return segs
		}
	}
	segs, _ := tryLayout(s, width, -1)
	return segs
}

// tryLayout builds the row with the given number of optional groups
// (1: mode toggles, 2: also volume). It fails when the progress bar would
// get fewer than minBarWidth cells. level -1 accepts any bar width.
func tryLayout(s State, width, level int) ([]segment, bool) {
	t := styles.T()
	st := t.S()

	head := []segment{
		seg(regionPrev, icons.Previous(), st.Base),
		gap(1),
		seg(regionPlay, icons.PlayPause(s.Playing), st.Playing),
		gap(1),
		seg(regionNext, icons.Next(), st.Base),
		gap(len(separator)),
	}

	var info []segment
	if s.Err != "" {
		info = append(info,
			seg(regionInfo, icons.FormatError(s.Err), st.Error),
			gap(1),
			seg(regionRetry, "[r] retry", st.Warning),
		)
	} else {
		text := render.Sanitize(s.Song.Title)
		if s.Song.ArtistName != "" {
			text += " · " + render.Sanitize(s.Song.ArtistName)
		}
		info = append(info, seg(regionInfo, text, st.Title))
	}

	timing := []segment{
		gap(len(separator)),
		seg(regionPosition, formatDuration(s.Position), st.Muted),
		gap(1),
		{region: regionProgress},
		gap(1),
		seg(regionDuration, formatDuration(s.Duration), st.Muted),
	}

	var tail []segment
	if level >= 1 {
		likeStyle := st.Muted
		if s.Song.IsLiked {
			likeStyle = st.Liked
		}
		shuffleStyle := st.Subtle
		if s.Shuffle {
			shuffleStyle = st.Playing
		}
		repeatStyle := st.Subtle
		if s.Repeat != 0 {
			repeatStyle = st.Playing
		}
		tail = append(tail,
			gap(len(separator)),
			seg(regionLike, icons.Like(s.Song.IsLiked), likeStyle),
			gap(1),
			seg(regionShuffle, icons.Shuffle(), shuffleStyle),
			gap(1),
			seg(regionRepeat, icons.Repeat(s.Repeat.String()), repeatStyle),
		)
	}
	if level >= 2 {
		tail = append(tail,
			gap(len(separator)),
			seg(regionMute, icons.Volume(s.Muted), st.Muted),
			gap(1),
			segment{region: regionVolume, width: volumeWidth},
			gap(1),
			seg(regionPercent, fmt.Sprintf("%3d%%", int(s.Volume*100+0.5)), st.Muted),
		)
	}

	fixed := total(head) + total(timing) + total(tail)
	free := width - fixed
	minBar := minBarWidth
	if level < 0 {
		minBar = narrowBarWidth
	}
	if free < minBar && level >= 0 {
		return nil, false
	}

	// The bar takes what the info does not need, but at least minBar.
	infoNatural := total(info)
	infoWidth := max(0, min(infoNatural, free-minBar))
	if infoWidth < minInfoWidth && infoNatural > infoWidth {
		infoWidth = 0
	}
	if infoWidth < infoNatural {
		info = shrinkInfo(info, infoWidth)
	}
	barWidth := max(free-total(info), 0)

	segs := make([]segment, 0, len(head)+len(info)+len(timing)+len(tail))
	segs = append(segs, head...)
	segs = append(segs, info...)
	segs = append(segs, timing...)
	segs = append(segs, tail...)
	for i := range segs {
		switch segs[i].region { //nolint:exhaustive // sliders only
		case regionProgress:
			segs[i].width = barWidth
			segs[i].text = bar(s.Progress(), barWidth, t.Primary)
		case regionVolume:
			level := s.Volume
			if s.Muted {
				level = 0
			}
			segs[i].text = bar(level, volumeWidth, t.Secondary)
		}
	}
	place(segs)
	return segs, true
}

// shrinkInfo fits the info group into width cells. The retry button is
// kept whole when anything is shown.
func shrinkInfo(info []segment, width int) []segment {
	if width <= 0 {
		return nil
	}
	st := styles.T().S()
	if len(info) == 3 { // error, gap, retry
		retry := info[2]
		msgWidth := width - retry.width - 1
		if msgWidth < 1 {
			return []segment{seg(regionRetry, render.TruncateEllipsis("[r] retry", width), st.Warning)}
		}
		plain := render.TruncateEllipsis(info[0].plain, msgWidth)
		return []segment{seg(regionInfo, plain, st.Error), gap(1), retry}
	}
	plain := render.TruncateEllipsis(info[0].plain, width)
	return []segment{seg(regionInfo, plain, st.Title)}
}

func total(segs []segment) int {
	n := 0
	for _, s := range segs {
		n += s.width
	}
	return n
}

func place(segs []segment) {
	x := 0
	for i := range segs {
		segs[i].start = x
		x += segs[i].width
	}
}

func bar(ratio float64, width int, color lipgloss.Color) string {
	if width <= 0 {
		return ""
	}
	filled := min(int(float64(width)*ratio), width)
	return lipgloss.NewStyle().Foreground(color).Render(strings.Repeat("━", filled)) +
		styles.T().S().Subtle.Render(strings.Repeat("─", width-filled))
}

func renderSegments(segs []segment, width int) string {
	var sb strings.Builder
	for _, s := range segs {
		sb.WriteString(s.text)
	}
	return render.Pad(sb.String(), width)
}

// Hit returns the action for a click at bar-relative cell (x, y), or nil
// when nothing clickable is there.
func Hit(s State, width, x, y int) action.Action {
	ox, oy, inner := controlsOrigin(s, width)
	if y != oy {
		return nil
	}
	cx := x - ox
	for _, sg := range layout(s, inner) {
		if cx < sg.start || cx >= sg.start+sg.width {
			continue
		}
		switch sg.region { //nolint:exhaustive // passive regions fall through to nil
		case regionPrev:
			return playback.Previous{}
		case regionPlay:
			return playback.PlayPause{}
		case regionNext:
			return playback.Next{}
		case regionRetry:
			return playback.Retry{}
		case regionProgress:
			return playback.SeekRatio{X: cx - sg.start, Width: sg.width}
		case regionLike:
			return playback.ToggleLike{}
		case regionShuffle:
			return playback.ToggleShuffle{}
		case regionRepeat:
			return playback.CycleRepeat{}
		case regionMute:
			return playback.ToggleMute{}
		case regionVolume:
			return playback.VolumeRatio{X: cx - sg.start, Width: sg.width}
		}
		return nil
	}
	return nil
}
