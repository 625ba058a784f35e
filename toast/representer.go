package toast

import (
	"context"
	"errors"
	"fmt"
	"sync"

	clog "github.com/charmbracelet/log"
	"github.com/godbus/dbus/v5"
	"golang.org/x/time/rate"

	notify "github.com/jktr/go-toastnotify"
	"github.com/jktr/go-toastnotify/internal/desktopentry"
	"github.com/jktr/go-toastnotify/internal/logging"
)

var (
	// ErrNoAppID is returned when Config.AppID is empty.
	ErrNoAppID = errors.New("toast: application id is required")
	// ErrNilToast is returned by the Show methods when given nothing to show.
	ErrNilToast = errors.New("toast: nil toast")
)

// Sender delivers notifications to the platform.
// *notify.Client, *notify.Notifier and *pushsender.Sender implement it.
type Sender interface {
	Send(ctx context.Context, note *notify.Notification) (notify.ID, error)
	CloseNotification(ctx context.Context, id notify.ID) error
}

type capabilityLister interface {
	Capabilities(ctx context.Context) ([]string, error)
}

// Config identifies the application toasts are shown for.
type Config struct {
	// AppID names the desktop entry notifications are routed through.
	AppID string
	// AppName is displayed by the server and used as the entry's Name.
	AppName string
	// IconPath is the default image of TwoLines toasts and the icon
	// of the desktop entry.
	IconPath string
	// SkipSetup leaves the desktop entry alone on construction.
	SkipSetup bool
}

// Option configures a Representer.
type Option func(*Representer)

// WithLogger sets the logger; the default discards.
func WithLogger(l *clog.Logger) Option {
	return func(r *Representer) {
		r.log = l
	}
}

// WithRateLimit caps how fast toasts are shown. Show calls block
// until allowed or their context ends.
func WithRateLimit(perSec float64, burst int) Option {
	return func(r *Representer) {
		if perSec > 0 {
			r.limiter = rate.NewLimiter(rate.Limit(perSec), burst)
		}
	}
}

// WithEventRouting marks a Representer built by New as receiving
// HandleAction and HandleClosed calls from its caller. Without it no
// per-toast state is kept beyond the tag map, since nothing would
// ever release it.
func WithEventRouting() Option {
	return func(r *Representer) {
		r.routed = true
	}
}

// shown is a toast that may still be on screen.
type shown struct {
	tag     string
	info    Info
	actions bound
}

// Representer shows toasts, keeps track of them by tag and turns
// server events into the callbacks of the toast they belong to.
type Representer struct {
	cfg     Config
	sender  Sender
	log     *clog.Logger
	limiter *rate.Limiter
	closer  func() error
	markup  bool
	routed  bool

	// mu is held across Send in display so that the tag lookup, the
	// server call and the bookkeeping are one step for event handlers
	// and concurrent shows.
	mu   sync.Mutex
	tags map[string]notify.ID
	live map[notify.ID]*shown
}

func newRepresenter(cfg Config, opts ...Option) *Representer {
	r := &Representer{
		cfg:  cfg,
		log:  logging.Discard(),
		tags: make(map[string]notify.ID),
		live: make(map[notify.ID]*shown),
	}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// New returns a Representer delivering through sender. Events only
// reach toasts when the caller forwards them to HandleAction and
// HandleClosed and passes WithEventRouting; Connect does that wiring
// for a D-Bus session.
func New(ctx context.Context, sender Sender, cfg Config, opts ...Option) (*Representer, error) {
	r := newRepresenter(cfg, opts...)
	r.sender = sender
	if err := r.init(ctx); err != nil {
		return nil, err
	}
	return r, nil
}

// Connect returns a Representer on the notification server of conn
// with event routing in place. Call Close when done.
func Connect(ctx context.Context, conn *dbus.Conn, cfg Config, opts ...Option) (*Representer, error) {
	r := newRepresenter(cfg, opts...)
	r.routed = true
	n, err := notify.New(conn,
		notify.WithOnAction(r.HandleAction),
		notify.WithOnClosed(r.HandleClosed),
	)
	if err != nil {
		return nil, fmt.Errorf("toast: %w", err)
	}
	r.sender = n
	r.closer = n.Close

	if err := r.init(ctx); err != nil {
		r.release(n.Close)
		return nil, err
	}
	return r, nil
}

// release runs closeFn on a failed construction path, logging what it
// cannot return.
func (r *Representer) release(closeFn func() error) {
	if err := closeFn(); err != nil {
		r.log.Warn("close notifier", "err", err)
	}
}

func (r *Representer) init(ctx context.Context) error {
	if r.cfg.AppID == "" {
		return ErrNoAppID
	}
	if !r.cfg.SkipSetup {
		if _, err := r.Setup(); err != nil {
			return err
		}
	}

	lister, ok := r.sender.(capabilityLister)
	if !ok {
		return nil
	}
	caps, err := lister.Capabilities(ctx)
	if err != nil {
		r.log.Warn("could not query server capabilities", "err", err)
		return nil
	}
	for _, c := range caps {
		if c == "body-markup" {
			r.markup = true
		}
	}
	r.log.Debug("server capabilities", "caps", caps)
	return nil
}

// Setup installs the desktop entry the server associates toasts with,
// unless one already exists. It reports whether it installed one.
func (r *Representer) Setup() (bool, error) {
	path, err := desktopentry.Path(r.cfg.AppID)
	if err != nil {
		return false, fmt.Errorf("toast: %w", err)
	}
	exists, err := desktopentry.Exists(path)
	if err != nil {
		return false, fmt.Errorf("toast: %w", err)
	}
	if exists {
		return false, nil
	}

	err = desktopentry.Install(path, desktopentry.Entry{
		AppID: r.cfg.AppID,
		Name:  r.cfg.AppName,
		Icon:  r.cfg.IconPath,
	})
	if err != nil {
		return false, fmt.Errorf("toast: %w", err)
	}
	r.log.Info("installed desktop entry", "path", path)
	return true, nil
}

func (r *Representer) template() template {
	return template{
		appName:     r.cfg.AppName,
		appID:       r.cfg.AppID,
		defaultIcon: r.cfg.IconPath,
		markup:      r.markup,
	}
}

// ShowTwoLines shows a toast with a title, a line of text and an image.
func (r *Representer) ShowTwoLines(ctx context.Context, n *TwoLines) error {
	if n == nil {
		return ErrNilToast
	}
	note, actions, err := r.template().twoLines(n)
	if err != nil {
		return err
	}
	return r.display(ctx, &n.Info, note, actions)
}

// ShowIncomingCall shows a call toast that stays until acted upon.
func (r *Representer) ShowIncomingCall(ctx context.Context, n *IncomingCall) error {
	if n == nil {
		return ErrNilToast
	}
	note, actions := r.template().incomingCall(n)
	return r.display(ctx, &n.Info, note, actions)
}

func (r *Representer) display(ctx context.Context, info *Info, note *notify.Notification, actions bound) error {
	if r.limiter != nil {
		if err := r.limiter.Wait(ctx); err != nil {
			return fmt.Errorf("toast: rate limit: %w", err)
		}
	}

	r.mu.Lock()
	if info.Tag != "" {
		note.ReplacesID = r.tags[info.Tag]
	}

	id, err := r.sender.Send(ctx, note)
	if err != nil {
		r.mu.Unlock()
		r.fail(info, err)
		return fmt.Errorf("toast: show %q: %w", info.Tag, err)
	}

	if note.ReplacesID != 0 && note.ReplacesID != id {
		delete(r.live, note.ReplacesID)
	}
	if r.routed {
		r.live[id] = &shown{tag: info.Tag, info: *info, actions: actions}
	}
	if info.Tag != "" {
		r.tags[info.Tag] = id
	}
	r.mu.Unlock()

	r.log.Debug("shown", "id", id, "tag", info.Tag, "replaces", note.ReplacesID)
	return nil
}

func (r *Representer) fail(info *Info, err error) {
	ev := FailedEvent{Err: err, Tag: info.Tag}
	var derr dbus.Error
	if errors.As(err, &derr) {
		ev.Code = derr.Name
	}
	r.log.Error("show failed", "tag", info.Tag, "code", ev.Code, "err", err)
	if info.OnFailed != nil {
		info.OnFailed(ev)
	}
}

// Dismiss hides the toast last shown with tag. Empty and unknown tags
// are ignored.
func (r *Representer) Dismiss(ctx context.Context, tag string) error {
	if tag == "" {
		return nil
	}
	r.mu.Lock()
	id, ok := r.tags[tag]
	r.mu.Unlock()
	if !ok {
		return nil
	}

	if err := r.sender.CloseNotification(ctx, id); err != nil {
		return fmt.Errorf("toast: dismiss %q: %w", tag, err)
	}

	r.mu.Lock()
	if r.tags[tag] == id {
		delete(r.tags, tag)
	}
	r.mu.Unlock()
	r.log.Debug("dismissed", "id", id, "tag", tag)
	return nil
}

// Tagged returns the handle currently shown for tag.
func (r *Representer) Tagged(tag string) (notify.ID, bool) {
	r.mu.Lock()
	defer r.mu.Unlock()
	id, ok := r.tags[tag]
	return id, ok
}

// HandleAction routes an ActionInvoked event to the toast's OnActivated.
// Events for notifications this Representer didn't show are ignored.
func (r *Representer) HandleAction(id notify.ID, key string) {
	r.mu.Lock()
	s, ok := r.live[id]
	r.mu.Unlock()
	if !ok {
		return
	}

	act, ok := s.actions[key]
	if !ok {
		act = boundAction{arguments: key}
	}
	r.log.Debug("activated", "id", id, "tag", s.tag, "key", key)
	if s.info.OnActivated != nil {
		s.info.OnActivated(ActivatedEvent{Arguments: act.arguments, ActivationType: act.kind, Tag: s.tag})
	}
}

// HandleClosed routes a NotificationClosed event to the toast's
// OnDismissed and forgets the toast.
func (r *Representer) HandleClosed(id notify.ID, reason notify.CloseReason) {
	r.mu.Lock()
	s, ok := r.live[id]
	if ok {
		delete(r.live, id)
		if s.tag != "" && r.tags[s.tag] == id {
			delete(r.tags, s.tag)
		}
	}
	r.mu.Unlock()
	if !ok {
		return
	}

	ev := DismissedEvent{Reason: dismissalReason(reason), Tag: s.tag}
	r.log.Debug("dismissed by server", "id", id, "tag", s.tag, "reason", ev.Reason)
	if s.info.OnDismissed != nil {
		s.info.OnDismissed(ev)
	}
}

func dismissalReason(reason notify.CloseReason) DismissalReason {
	switch reason {
	case notify.DismissedByUser:
		return UserCanceled
	case notify.DismissedByCall:
		return ApplicationHidden
	case notify.Expired:
		return TimedOut
	default:
		return Other
	}
}

// Close releases the event subscription made by Connect.
func (r *Representer) Close() error {
	if r.closer == nil {
		return nil
	}
	return r.closer()
}
