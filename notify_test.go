package notify

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/godbus/dbus/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type recordedCall struct {
	method string
	args   []interface{}
}

// fakeObject answers every call with body/err and records what it saw.
type fakeObject struct {
	calls []recordedCall
	body  []interface{}
	err   error
}

func (f *fakeObject) CallWithContext(_ context.Context, method string, _ dbus.Flags, args ...interface{}) *dbus.Call {
	f.calls = append(f.calls, recordedCall{method: method, args: args})
	return &dbus.Call{Method: method, Args: args, Body: f.body, Err: f.err}
}

func TestSendMarshalsNotifyArguments(t *testing.T) {
	obj := &fakeObject{body: []interface{}{uint32(42)}}
	c := NewClient(obj)

	note := &Notification{
		AppName:    "app",
		AppIcon:    "mail-unread",
		ReplacesID: 7,
		Summary:    "summary",
		Body:       "body",
		Actions:    []Action{{Key: "default", Label: "Open"}, {Key: "reply", Label: "Reply"}},
		Expire:     Timeout,
		Timeout:    5 * time.Second,
	}
	note.SetUrgency(Critical)

	id, err := c.Send(context.Background(), note)
	require.NoError(t, err)
	assert.Equal(t, ID(42), id)

	require.Len(t, obj.calls, 1)
	call := obj.calls[0]
	assert.Equal(t, callNotify, call.method)
	require.Len(t, call.args, 8)
	assert.Equal(t, "app", call.args[0])
	assert.Equal(t, uint32(7), call.args[1])
	assert.Equal(t, "mail-unread", call.args[2])
	assert.Equal(t, "summary", call.args[3])
	assert.Equal(t, "body", call.args[4])
	assert.Equal(t, []string{"default", "Open", "reply", "Reply"}, call.args[5])
	hints := call.args[6].(map[string]dbus.Variant)
	assert.Equal(t, Critical, hints["urgency"].Value())
	assert.Equal(t, int32(5000), call.args[7])
}

func TestSendSendsEmptyCollectionsForZeroNotification(t *testing.T) {
	obj := &fakeObject{body: []interface{}{uint32(1)}}

	_, err := NewClient(obj).Send(context.Background(), &Notification{Summary: "hi"})
	require.NoError(t, err)

	args := obj.calls[0].args
	assert.Equal(t, []string{}, args[5])
	assert.NotNil(t, args[6])
	assert.Equal(t, int32(-1), args[7])
}

func TestSendRejectsNil(t *testing.T) {
	_, err := NewClient(&fakeObject{}).Send(context.Background(), nil)
	assert.ErrorIs(t, err, ErrNilNotification)
}

func TestSendWrapsRemoteError(t *testing.T) {
	remote := dbus.Error{Name: "org.freedesktop.DBus.Error.ServiceUnknown"}
	c := NewClient(&fakeObject{err: remote})

	_, err := c.Send(context.Background(), &Notification{Summary: "x"})
	require.Error(t, err)

	var got dbus.Error
	require.True(t, errors.As(err, &got))
	assert.Equal(t, remote.Name, got.Name)
}

func TestExpireTimeout(t *testing.T) {
	tests := []struct {
		name string
		note Notification
		want int32
	}{
		{"server default", Notification{}, -1},
		{"never", Notification{Expire: Never, Timeout: time.Second}, 0},
		{"timeout", Notification{Expire: Timeout, Timeout: 1500 * time.Millisecond}, 1500},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, tt.note.expireTimeout())
		})
	}
}

func TestCloseNotification(t *testing.T) {
	obj := &fakeObject{}
	c := NewClient(obj)

	assert.ErrorIs(t, c.CloseNotification(context.Background(), 0), ErrInvalidID)
	assert.Empty(t, obj.calls)

	require.NoError(t, c.CloseNotification(context.Background(), 9))
	require.Len(t, obj.calls, 1)
	assert.Equal(t, callCloseNotification, obj.calls[0].method)
	assert.Equal(t, []interface{}{uint32(9)}, obj.calls[0].args)
}

func TestServerInfo(t *testing.T) {
	obj := &fakeObject{body: []interface{}{"dunst", "knopwob", "1.9.0", "1.2"}}

	info, err := NewClient(obj).ServerInfo(context.Background())
	require.NoError(t, err)
	assert.Equal(t, &ServerInfo{Name: "dunst", Vendor: "knopwob", Version: "1.9.0", SpecVersion: "1.2"}, info)
}

func TestCapabilities(t *testing.T) {
	obj := &fakeObject{body: []interface{}{[]string{"actions", "body", "body-markup"}}}

	caps, err := NewClient(obj).Capabilities(context.Background())
	require.NoError(t, err)
	assert.Equal(t, []string{"actions", "body", "body-markup"}, caps)
	assert.Equal(t, callGetCapabilities, obj.calls[0].method)
}

func TestHintHelpers(t *testing.T) {
	note := &Notification{}
	note.SetDesktopEntry("org.example.App").
		SetImagePath("file:///tmp/a.png").
		SetCategory("im.received").
		SetResident(true)

	entry, ok := note.StringHint("desktop-entry")
	assert.True(t, ok)
	assert.Equal(t, "org.example.App", entry)

	img, _ := note.StringHint("image-path")
	assert.Equal(t, "file:///tmp/a.png", img)
	assert.Equal(t, true, note.Hints["resident"].Value())

	_, ok = note.StringHint("resident")
	assert.False(t, ok, "non-string hint")
	_, ok = note.StringHint("missing")
	assert.False(t, ok)
}
