//go:build windows

package pushsender

import (
	toast "git.sr.ht/~jackmordaunt/go-toast"

	notify "github.com/jktr/go-toastnotify"
)

func push(appID string, note *notify.Notification) error {
	n := toast.Notification{
		AppID: appID,
		Title: note.Summary,
		Body:  note.Body,
		Icon:  iconOf(note),
	}
	return n.Push()
}
