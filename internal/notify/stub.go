//go:build !linux

package notify

import "github.com/gen2brain/beeep"

// beeepNotifier shows notifications through the platform notifier.
// It cannot replace or close a notification, so ids are always 0.
type beeepNotifier struct{}

// New returns a notifier backed by the platform notification service.
func New() (Notifier, error) {
	beeep.AppName = appName
	return beeepNotifier{}, nil
}

func (beeepNotifier) Notify(n Notification) (uint32, error) {
	return 0, beeep.Notify(n.Title, n.Body, n.Icon)
}

func (beeepNotifier) Close(_ uint32) error {
	return nil
}
