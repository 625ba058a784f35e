package toast

// Info carries the fields shared by every kind of toast.
type Info struct {
	// AppID overrides the representer's application ID for this toast.
	AppID string
	// Tag names the toast for a later Dismiss. Showing a toast with a
	// tag that is still on screen replaces it in place.
	Tag string

	OnActivated func(ActivatedEvent)
	OnDismissed func(DismissedEvent)
	OnFailed    func(FailedEvent)
}

// TwoLines is a toast with a title, a line of text and an image.
type TwoLines struct {
	Info

	FirstLine  string
	SecondLine string
	// IconPath is resolved to an absolute file:// URI. Empty falls
	// back to the representer's default icon.
	IconPath string
}

// IncomingCall is a toast that stays on screen until answered,
// with caller details and a row of buttons.
type IncomingCall struct {
	Info

	FirstLine  string
	SecondLine string
	// AvatarURL is passed through as given when not blank.
	AvatarURL string
	// DefaultAction is reported as "action=<DefaultAction>" when the
	// toast body is clicked.
	DefaultAction string
	Buttons       []Button
}

// ActivationType says how the application reacts to a button.
// The notification server treats every button alike; the type is
// handed back in ActivatedEvent so the OnActivated callback can act
// on it, e.g. open the arguments of a Protocol button as a URI.
type ActivationType int

const (
	Foreground ActivationType = iota
	Background
	Protocol
)

func (t ActivationType) String() string {
	switch t {
	case Background:
		return "background"
	case Protocol:
		return "protocol"
	default:
		return "foreground"
	}
}

// Button is an action offered on an IncomingCall.
type Button struct {
	Content string
	// IconURL is not forwarded; freedesktop servers only render icon
	// buttons keyed by icon name.
	IconURL        string
	ActivationType ActivationType
	// Arguments are reported in ActivatedEvent when the button is pressed.
	Arguments string
}

// ActivatedEvent is raised when the user clicks the toast or one of its buttons.
type ActivatedEvent struct {
	Arguments      string
	// ActivationType of the pressed button; Foreground for body clicks.
	ActivationType ActivationType
	Tag            string
}

// DismissalReason says why a toast left the screen.
type DismissalReason int

const (
	UserCanceled DismissalReason = iota
	ApplicationHidden
	TimedOut
	Other
)

func (r DismissalReason) String() string {
	switch r {
	case UserCanceled:
		return "UserCanceled"
	case ApplicationHidden:
		return "ApplicationHidden"
	case TimedOut:
		return "TimedOut"
	default:
		return "Other"
	}
}

// DismissedEvent is raised when a toast is closed without activation.
type DismissedEvent struct {
	Reason DismissalReason
	Tag    string
}

// FailedEvent is raised when the notification server refuses a toast.
type FailedEvent struct {
	// Code is the D-Bus error name when the failure came from the bus.
	Code string
	Err  error
	Tag  string
}
