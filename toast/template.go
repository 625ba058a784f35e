package toast

import (
	"fmt"
	"html"
	"net/url"
	"path/filepath"
	"strings"

	notify "github.com/jktr/go-toastnotify"
)

// template carries the representer-wide values a toast is filled with.
type template struct {
	appName     string
	appID       string
	defaultIcon string
	// markup is set when the server parses body markup.
	markup bool
}

// boundAction is what an action key reports on activation.
type boundAction struct {
	arguments string
	kind      ActivationType
}

// bound maps action keys to what they report.
type bound map[string]boundAction

func (tpl template) body(s string) string {
	if tpl.markup {
		return html.EscapeString(s)
	}
	return s
}

func (tpl template) base(info *Info, summary, body string) *notify.Notification {
	appID := info.AppID
	if appID == "" {
		appID = tpl.appID
	}
	note := &notify.Notification{
		AppName: tpl.appName,
		Summary: summary,
		Body:    tpl.body(body),
	}
	note.SetDesktopEntry(appID)
	return note
}

func (tpl template) twoLines(n *TwoLines) (*notify.Notification, bound, error) {
	note := tpl.base(&n.Info, n.FirstLine, n.SecondLine)

	icon := n.IconPath
	if icon == "" {
		icon = tpl.defaultIcon
	}
	if icon != "" {
		uri, err := fileURI(icon)
		if err != nil {
			return nil, nil, err
		}
		note.SetImagePath(uri)
	}

	note.Actions = []notify.Action{{Key: notify.DefaultActionKey, Label: "Open"}}
	return note, bound{notify.DefaultActionKey: {}}, nil
}

func (tpl template) incomingCall(n *IncomingCall) (*notify.Notification, bound) {
	note := tpl.base(&n.Info, n.FirstLine, n.SecondLine)
	note.AppIcon = tpl.defaultIcon
	note.Expire = notify.Never
	note.SetUrgency(notify.Critical).SetResident(true)

	if strings.TrimSpace(n.AvatarURL) != "" {
		note.SetImagePath(n.AvatarURL)
	}

	actions := bound{notify.DefaultActionKey: {arguments: "action=" + n.DefaultAction}}
	note.Actions = append(note.Actions, notify.Action{Key: notify.DefaultActionKey, Label: "Open"})
	for _, b := range n.Buttons {
		key := b.Arguments
		if key == "" {
			key = b.Content
		}
		if _, dup := actions[key]; dup {
			continue
		}
		actions[key] = boundAction{arguments: b.Arguments, kind: b.ActivationType}
		note.Actions = append(note.Actions, notify.Action{Key: key, Label: b.Content})
	}
	return note, actions
}

func fileURI(path string) (string, error) {
	abs, err := filepath.Abs(path)
	if err != nil {
		return "", fmt.Errorf("toast: resolve icon %q: %w", path, err)
	}
	return (&url.URL{Scheme: "file", Path: filepath.ToSlash(abs)}).String(), nil
}
