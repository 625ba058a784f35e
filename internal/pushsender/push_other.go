//go:build !windows

package pushsender

import (
	"sync"

	"github.com/gen2brain/beeep"

	notify "github.com/jktr/go-toastnotify"
)

var beeepNotify = func(title, message, icon string) error {
	return beeep.Notify(title, message, icon)
}

// pushMu guards beeep.AppName, which beeep reads while notifying.
var pushMu sync.Mutex

func push(appID string, note *notify.Notification) error {
	pushMu.Lock()
	defer pushMu.Unlock()
	beeep.AppName = appID
	return beeepNotify(note.Summary, note.Body, iconOf(note))
}
