// Package pushsender shows notifications on hosts without a
// freedesktop notification server. It is fire-and-forget: shown
// notifications can't be closed and no events come back.
package pushsender

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"sync/atomic"

	notify "github.com/jktr/go-toastnotify"
)

// ErrUnsupported is returned by CloseNotification.
var ErrUnsupported = errors.New("pushsender: closing notifications is not supported")

// Sender pushes notifications through the platform toast API.
type Sender struct {
	appID string
	next  atomic.Uint32
}

// New returns a Sender that attributes notifications to appID.
func New(appID string) *Sender {
	return &Sender{appID: appID}
}

// Send shows note and returns a process-local ID.
func (s *Sender) Send(ctx context.Context, note *notify.Notification) (notify.ID, error) {
	if note == nil {
		return 0, notify.ErrNilNotification
	}
	if err := ctx.Err(); err != nil {
		return 0, err
	}
	if err := push(s.appID, note); err != nil {
		return 0, fmt.Errorf("pushsender: %w", err)
	}
	return notify.ID(s.next.Add(1)), nil
}

// CloseNotification always fails with ErrUnsupported.
func (s *Sender) CloseNotification(context.Context, notify.ID) error {
	return ErrUnsupported
}

// iconOf prefers the image hint over the application icon and strips
// the file:// scheme the platform APIs don't expect.
func iconOf(note *notify.Notification) string {
	icon, ok := note.StringHint("image-path")
	if !ok || icon == "" {
		icon = note.AppIcon
	}
	return strings.TrimPrefix(icon, "file://")
}
