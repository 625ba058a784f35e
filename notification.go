package notify

import (
	"time"

	"github.com/godbus/dbus/v5"
)

// A Notification ID, to be used as a handle-like type.
// Servers never hand out zero.
type ID uint32

// Notification holds everything the Notify call needs.
// The zero value is a legal notification, albeit not a particularly
// useful one. You should at least set a Summary.
type Notification struct {
	// May be displayed to the user.
	AppName string
	// Icon name or file:// URI.
	// Spec: http://standards.freedesktop.org/icon-naming-spec/icon-naming-spec-latest.html
	AppIcon string

	// Setting ReplacesID atomically replaces another notification with this ID.
	ReplacesID ID

	Summary string
	// Some servers interpret a subset of markup here, see the
	// "body-markup" capability.
	Body string

	// A user may invoke these on a Notification.
	// Use Notifier to subscribe to these events.
	Actions []Action

	// Extension mechanism for notification metadata.
	// Spec: https://specifications.freedesktop.org/notification-spec/latest/hints.html
	Hints map[string]dbus.Variant

	// Strategy for notification expiration
	Expire Expiry
	// Timeout for the eponymous Expiry strategy
	Timeout time.Duration
}

// Action is a possible reaction to a notification.
// This isn't a map, as ordering of actions is relevant to the server.
type Action struct {
	// Key is reported back in ActionInvoked. The key "default" is
	// invoked when the user clicks the notification body.
	Key string
	// Label displayed to the user.
	Label string
}

// DefaultActionKey is the action invoked by activating the notification itself.
const DefaultActionKey = "default"

// Expiry specifies the policy for time-based notification auto-expiry.
type Expiry int32

const (
	// Server uses the notification server's default expiry behaviour.
	Server Expiry = iota
	// Timeout uses the Timeout field of the Notification.
	Timeout
	// Never expires the notification automatically.
	Never
)

// Urgency levels.
// Spec: https://specifications.freedesktop.org/notification-spec/latest/urgency-levels.html
type Urgency byte

const (
	Low Urgency = iota
	Normal
	Critical
)

func (note *Notification) setHint(key string, value interface{}) *Notification {
	if note.Hints == nil {
		note.Hints = make(map[string]dbus.Variant)
	}
	note.Hints[key] = dbus.MakeVariant(value)
	return note
}

// SetUrgency adds the urgency hint.
func (note *Notification) SetUrgency(urgency Urgency) *Notification {
	return note.setHint("urgency", urgency)
}

// SetCategory adds the category hint, e.g. "im.received".
func (note *Notification) SetCategory(category string) *Notification {
	return note.setHint("category", category)
}

// SetDesktopEntry names the desktop file (without the .desktop suffix)
// of the application sending the notification.
func (note *Notification) SetDesktopEntry(id string) *Notification {
	return note.setHint("desktop-entry", id)
}

// SetImagePath adds an image shown alongside the text. path may be an
// icon name or a file:// URI.
func (note *Notification) SetImagePath(path string) *Notification {
	return note.setHint("image-path", path)
}

// SetResident keeps the notification around after an action is invoked.
func (note *Notification) SetResident(resident bool) *Notification {
	return note.setHint("resident", resident)
}

// SetTransient asks the server to bypass its persistence layer.
func (note *Notification) SetTransient(transient bool) *Notification {
	return note.setHint("transient", transient)
}

// StringHint returns the string value of hint key, if set.
func (note *Notification) StringHint(key string) (string, bool) {
	v, ok := note.Hints[key]
	if !ok {
		return "", false
	}
	s, ok := v.Value().(string)
	return s, ok
}

// flattened as key, label, key, label, ...
func (note *Notification) actionList() []string {
	actions := make([]string, 0, len(note.Actions)*2)
	for _, act := range note.Actions {
		actions = append(actions, act.Key, act.Label)
	}
	return actions
}

func (note *Notification) hintMap() map[string]dbus.Variant {
	if note.Hints == nil {
		return map[string]dbus.Variant{}
	}
	return note.Hints
}

// expire_timeout: -1 leaves it to the server, 0 never expires.
func (note *Notification) expireTimeout() int32 {
	switch note.Expire {
	case Timeout:
		return int32(note.Timeout.Milliseconds())
	case Never:
		return 0
	default:
		return -1
	}
}
