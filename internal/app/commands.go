package app

import (
	"context"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/sangeetx/sangeetx/internal/ui/songlist"
)

const catalogTimeout = 15 * time.Second

// WatchServiceEvents returns a command that waits for the next playback
// session event and converts it to a tea.Msg.
func (m Model) WatchServiceEvents() tea.Cmd {
	sub := m.sub
	if sub == nil {
		return nil
	}
	return func() tea.Msg {
		select {
		case e := <-sub.StateChanged:
			return ServiceStateChangedMsg(e)
		case e := <-sub.TrackChanged:
			return ServiceTrackChangedMsg(e)
		case e := <-sub.PositionChanged:
			return ServicePositionMsg(e)
		case e := <-sub.QueueChanged:
			return ServiceQueueChangedMsg(e)
		case e := <-sub.ModeChanged:
			return ServiceModeChangedMsg(e)
		case e := <-sub.LikeChanged:
			return ServiceLikeChangedMsg(e)
		case e := <-sub.PromptChanged:
			return ServicePromptMsg(e)
		case e := <-sub.VolumeChanged:
			return ServiceVolumeMsg(e)
		case e := <-sub.Error:
			return ServiceErrorMsg(e)
		case <-sub.Done:
			return ServiceClosedMsg{}
		}
	}
}

// loadSongs fetches the catalog, or the search results for query.
func (m Model) loadSongs(query string) tea.Cmd {
	catalog := m.catalog
	if catalog == nil {
		return nil
	}
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), catalogTimeout)
		defer cancel()
		var msg songlist.LoadedMsg
		msg.Query = query
		if query == "" {
			msg.Songs, msg.Err = catalog.Songs(ctx)
		} else {
			msg.Songs, msg.Err = catalog.Search(ctx, query)
		}
		return msg
	}
}
