package app

import (
	"github.com/sangeetx/sangeetx/internal/settings"
)

// SaveQueueState persists the queue, its position and the play modes.
func (m Model) SaveQueueState() {
	if m.saver == nil {
		return
	}
	m.saver.SaveQueue(settings.QueueState{
		CurrentIndex: m.snap.Index,
		RepeatMode:   m.snap.Repeat.String(),
		Shuffle:      m.snap.Shuffle,
		Songs:        m.svc.Queue(),
	})
}
