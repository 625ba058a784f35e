package main

import (
	"bytes"
	"context"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jktr/go-toastnotify/toast"
)

func run(t *testing.T, args ...string) (string, error) {
	t.Helper()
	var out bytes.Buffer
	cmd := newRootCmd()
	cmd.SetOut(&out)
	cmd.SetErr(&out)
	cmd.SetArgs(args)
	err := cmd.ExecuteContext(context.Background())
	return out.String(), err
}

func TestSetupCommand(t *testing.T) {
	data := t.TempDir()
	t.Setenv("XDG_DATA_HOME", data)
	t.Setenv("XDG_CONFIG_HOME", t.TempDir())
	t.Setenv("TOASTNOTIFY_APP_ID", "org.example.Cli")

	want := filepath.Join(data, "applications", "org.example.Cli.desktop")

	out, err := run(t, "setup")
	require.NoError(t, err)
	assert.Contains(t, out, "installed "+want)

	out, err = run(t, "setup")
	require.NoError(t, err)
	assert.Contains(t, out, "already present: "+want)
}

func TestSetupCommandRejectsBadConfig(t *testing.T) {
	t.Setenv("XDG_CONFIG_HOME", t.TempDir())
	t.Setenv("TOASTNOTIFY_BACKEND", "smoke-signals")

	_, err := run(t, "setup")
	assert.ErrorContains(t, err, "config validation failed")
}

func TestShowRequiresTitle(t *testing.T) {
	_, err := run(t, "show", "--body", "x")
	assert.Error(t, err)
}

func TestParseButton(t *testing.T) {
	tests := []struct {
		spec string
		want toast.Button
	}{
		{"Accept=accept", toast.Button{Content: "Accept", Arguments: "accept"}},
		{"Decline=decline,background", toast.Button{Content: "Decline", Arguments: "decline", ActivationType: toast.Background}},
		{"Web=https://example.org,protocol", toast.Button{Content: "Web", Arguments: "https://example.org", ActivationType: toast.Protocol}},
		{"Mute=", toast.Button{Content: "Mute"}},
	}
	for _, tt := range tests {
		got, err := parseButton(tt.spec)
		require.NoError(t, err, tt.spec)
		assert.Equal(t, tt.want, got, tt.spec)
	}

	for _, bad := range []string{"NoEquals", "=args", "X=y,sideways"} {
		_, err := parseButton(bad)
		assert.Error(t, err, bad)
	}
}

func TestWatcher(t *testing.T) {
	var out bytes.Buffer
	w := newWatcher(&out)
	info := w.info("call")

	assert.False(t, w.wait(context.Background(), 10*time.Millisecond))

	go info.OnActivated(toast.ActivatedEvent{Arguments: "accept", ActivationType: toast.Background, Tag: "call"})
	assert.True(t, w.wait(context.Background(), time.Second))

	info.OnDismissed(toast.DismissedEvent{Reason: toast.ApplicationHidden, Tag: "call"})
	info.OnFailed(toast.FailedEvent{Code: "x.Error", Tag: "call"})

	assert.Equal(t, "activated tag=call type=background arguments=\"accept\"\n"+
		"dismissed tag=call reason=ApplicationHidden\n"+
		"failed tag=call code=x.Error\n", out.String())
}
