package notify

import (
	"context"
	"fmt"

	"github.com/godbus/dbus/v5"
)

// CloseReason tells why the server closed a notification.
// Spec: NotificationClosed parameters
type CloseReason uint32

const (
	// Notification reached its timeout and expired
	Expired CloseReason = iota + 1

	// A user dismissed the notification
	DismissedByUser

	// caused by org.freedesktop.Notifications.CloseNotification
	DismissedByCall

	// Undefined or reserved reasons
	Unknown
)

func (r CloseReason) String() string {
	switch r {
	case Expired:
		return "Expired"
	case DismissedByUser:
		return "DismissedByUser"
	case DismissedByCall:
		return "ClosedByCall"
	case Unknown:
		return "Unknown"
	default:
		return "Other"
	}
}

// ClosedHandler is called on receipt of a NotificationClosed signal.
type ClosedHandler func(id ID, reason CloseReason)

// ActionHandler is called on receipt of an ActionInvoked signal.
//
// Many servers dismiss notifications around the time an action is
// invoked, so Close and Action events about the same notification
// may arrive in close temporal proximity and in either order.
type ActionHandler func(id ID, key string)

// Notifier is a Client that also listens to the notification signals.
// Handlers are each invoked in a fresh goroutine.
//
// Signal delivery works by subscribing to every signal of the
// notification interface, so handlers see events for notifications
// sent by other applications too. Filter on the IDs returned by Send.
//
// Close should be called before shutting down the underlying
// connection to ensure a clean shutdown.
type Notifier struct {
	*Client

	conn     *dbus.Conn
	signal   chan *dbus.Signal
	ctx      context.Context
	shutdown context.CancelFunc
	onClosed ClosedHandler
	onAction ActionHandler
}

// Option configures a Notifier.
type Option func(*Notifier)

// WithOnAction sets the ActionInvoked handler.
func WithOnAction(h ActionHandler) Option {
	return func(n *Notifier) {
		n.onAction = h
	}
}

// WithOnClosed sets the NotificationClosed handler.
func WithOnClosed(h ClosedHandler) Option {
	return func(n *Notifier) {
		n.onClosed = h
	}
}

// New subscribes to notification signals on conn and starts the
// delivery loop.
func New(conn *dbus.Conn, opts ...Option) (*Notifier, error) {
	ctx, cancel := context.WithCancel(conn.Context())

	n := &Notifier{
		Client:   Dial(conn),
		conn:     conn,
		signal:   make(chan *dbus.Signal, channelBufferSize),
		ctx:      ctx,
		shutdown: cancel,
	}

	for _, opt := range opts {
		opt(n)
	}

	if err := n.conn.AddMatchSignal(
		dbus.WithMatchObjectPath(dbusObjectPath),
		dbus.WithMatchInterface(dbusNotificationsInterface),
	); err != nil {
		cancel()
		return nil, fmt.Errorf("notify: subscribe: %w", err)
	}
	n.conn.Signal(n.signal)

	go n.receiveSignals()

	return n, nil
}

func (n *Notifier) receiveSignals() {
	for {
		select {
		case <-n.ctx.Done():
			return
		case signal, ok := <-n.signal:
			if !ok {
				return
			}
			n.dispatch(signal)
		}
	}
}

// dispatch drops signals whose body doesn't match the interface.
func (n *Notifier) dispatch(signal *dbus.Signal) {
	if signal == nil || len(signal.Body) < 2 {
		return
	}
	id, ok := signal.Body[0].(uint32)
	if !ok {
		return
	}

	switch signal.Name {
	case signalNotificationClosed:
		reason, ok := signal.Body[1].(uint32)
		if ok && n.onClosed != nil {
			go n.onClosed(ID(id), CloseReason(reason))
		}
	case signalActionInvoked:
		key, ok := signal.Body[1].(string)
		if ok && n.onAction != nil {
			go n.onAction(ID(id), key)
		}
	}
}

// Close releases the signal subscription.
func (n *Notifier) Close() error {
	n.shutdown()

	n.conn.RemoveSignal(n.signal)
	if err := n.conn.RemoveMatchSignal(
		dbus.WithMatchObjectPath(dbusObjectPath),
		dbus.WithMatchInterface(dbusNotificationsInterface),
	); err != nil {
		return fmt.Errorf("notify: unsubscribe: %w", err)
	}
	return nil
}
