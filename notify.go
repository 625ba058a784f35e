package notify

import (
	"context"
	"errors"
	"fmt"

	"github.com/godbus/dbus/v5"
)

const (
	dbusObjectPath             = "/org/freedesktop/Notifications" // the DBUS object path
	dbusNotificationsInterface = "org.freedesktop.Notifications"  // DBUS Interface
	signalNotificationClosed   = "org.freedesktop.Notifications.NotificationClosed"
	signalActionInvoked        = "org.freedesktop.Notifications.ActionInvoked"
	callGetCapabilities        = "org.freedesktop.Notifications.GetCapabilities"
	callCloseNotification      = "org.freedesktop.Notifications.CloseNotification"
	callNotify                 = "org.freedesktop.Notifications.Notify"
	callGetServerInformation   = "org.freedesktop.Notifications.GetServerInformation"

	channelBufferSize = 10
)

var (
	// ErrInvalidID is returned when closing the zero ID.
	ErrInvalidID = errors.New("notify: notification IDs must be greater than zero")
	// ErrNilNotification is returned by Send when given nothing to send.
	ErrNilNotification = errors.New("notify: nil notification")
)

// Caller is the part of dbus.BusObject used by Client.
type Caller interface {
	CallWithContext(ctx context.Context, method string, flags dbus.Flags, args ...interface{}) *dbus.Call
}

// Client issues method calls on the notification server object.
type Client struct {
	obj Caller
}

// NewClient wraps obj, usually the result of
// conn.Object("org.freedesktop.Notifications", "/org/freedesktop/Notifications").
func NewClient(obj Caller) *Client {
	return &Client{obj: obj}
}

// Dial returns a Client for the notification server on conn.
func Dial(conn *dbus.Conn) *Client {
	return NewClient(conn.Object(dbusNotificationsInterface, dbusObjectPath))
}

// Send shows note and returns the ID the server assigned to it.
// The ID can be used to close the notification and to filter
// Close/Action events in handlers. When ReplacesID is set the server
// returns that same ID.
//
// Spec: org.freedesktop.Notifications.Notify
func (c *Client) Send(ctx context.Context, note *Notification) (ID, error) {
	if note == nil {
		return 0, ErrNilNotification
	}

	call := c.obj.CallWithContext(ctx, callNotify, 0,
		note.AppName,
		uint32(note.ReplacesID),
		note.AppIcon,
		note.Summary,
		note.Body,
		note.actionList(),
		note.hintMap(),
		note.expireTimeout())
	if call.Err != nil {
		return 0, fmt.Errorf("notify: send: %w", call.Err)
	}

	var id uint32
	if err := call.Store(&id); err != nil {
		return 0, fmt.Errorf("notify: send: decode id: %w", err)
	}
	return ID(id), nil
}

// CloseNotification forcefully closes a notification and removes it
// from the user's view. The server answers with a NotificationClosed
// signal carrying DismissedByCall.
//
// Spec: org.freedesktop.Notifications.CloseNotification
func (c *Client) CloseNotification(ctx context.Context, id ID) error {
	if id == 0 {
		return ErrInvalidID
	}
	call := c.obj.CallWithContext(ctx, callCloseNotification, 0, uint32(id))
	if call.Err != nil {
		return fmt.Errorf("notify: close %d: %w", id, call.Err)
	}
	return nil
}

// ServerInfo is returned by GetServerInformation.
type ServerInfo struct {
	Name        string
	Vendor      string
	Version     string
	SpecVersion string
}

// ServerInfo queries the server for vendor, product, and version
// metadata. Prefer Capabilities for feature negotiation.
//
// Spec: org.freedesktop.Notifications.GetServerInformation
func (c *Client) ServerInfo(ctx context.Context) (*ServerInfo, error) {
	call := c.obj.CallWithContext(ctx, callGetServerInformation, 0)
	if call.Err != nil {
		return nil, fmt.Errorf("notify: server info: %w", call.Err)
	}

	ret := ServerInfo{}
	if err := call.Store(&ret.Name, &ret.Vendor, &ret.Version, &ret.SpecVersion); err != nil {
		return nil, fmt.Errorf("notify: server info: %w", err)
	}
	return &ret, nil
}

// Capabilities lists the optional features the server implements,
// such as "actions" or "body-markup".
//
// Spec: org.freedesktop.Notifications.GetCapabilities
func (c *Client) Capabilities(ctx context.Context) ([]string, error) {
	call := c.obj.CallWithContext(ctx, callGetCapabilities, 0)
	if call.Err != nil {
		return nil, fmt.Errorf("notify: capabilities: %w", call.Err)
	}

	var ret []string
	if err := call.Store(&ret); err != nil {
		return nil, fmt.Errorf("notify: capabilities: %w", err)
	}
	return ret, nil
}
