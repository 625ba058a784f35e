package main

import (
	"context"
	"fmt"
	"io"
	"sync"
	"time"

	"github.com/spf13/cobra"

	"github.com/jktr/go-toastnotify/toast"
)

const defaultTag = "toastctl"

// presentFlags are shared by every command that shows a toast.
type presentFlags struct {
	tag          string
	wait         time.Duration
	dismissAfter time.Duration
}

func (f *presentFlags) register(cmd *cobra.Command) {
	cmd.Flags().StringVar(&f.tag, "tag", "", "tag the toast so it can be dismissed")
	cmd.Flags().DurationVar(&f.wait, "wait", 0, "wait this long for the toast to be activated or dismissed")
	cmd.Flags().DurationVar(&f.dismissAfter, "dismiss-after", 0, "dismiss the toast after this long")
}

// watcher prints toast events and notices the first terminal one.
type watcher struct {
	out  io.Writer
	mu   sync.Mutex
	done chan struct{}
	once sync.Once
}

func newWatcher(out io.Writer) *watcher {
	return &watcher{out: out, done: make(chan struct{})}
}

func (w *watcher) info(tag string) toast.Info {
	return toast.Info{
		Tag:         tag,
		OnActivated: w.activated,
		OnDismissed: w.dismissed,
		OnFailed:    w.failed,
	}
}

func (w *watcher) printf(format string, args ...interface{}) {
	w.mu.Lock()
	defer w.mu.Unlock()
	fmt.Fprintf(w.out, format, args...)
}

func (w *watcher) finish() {
	w.once.Do(func() { close(w.done) })
}

func (w *watcher) activated(ev toast.ActivatedEvent) {
	w.printf("activated tag=%s type=%s arguments=%q\n", ev.Tag, ev.ActivationType, ev.Arguments)
	w.finish()
}

func (w *watcher) dismissed(ev toast.DismissedEvent) {
	w.printf("dismissed tag=%s reason=%s\n", ev.Tag, ev.Reason)
	w.finish()
}

func (w *watcher) failed(ev toast.FailedEvent) {
	w.printf("failed tag=%s code=%s\n", ev.Tag, ev.Code)
	w.finish()
}

// wait blocks until an event arrived, d elapsed or ctx ended.
// It reports whether an event arrived.
func (w *watcher) wait(ctx context.Context, d time.Duration) bool {
	if d <= 0 {
		return false
	}
	timer := time.NewTimer(d)
	defer timer.Stop()
	select {
	case <-w.done:
		return true
	case <-timer.C:
		return false
	case <-ctx.Done():
		return false
	}
}

// present opens a session, shows a toast through show and then
// honours --dismiss-after and --wait.
func present(cmd *cobra.Command, opts *rootOptions, f *presentFlags, show func(context.Context, *toast.Representer, toast.Info) error) error {
	ctx := cmd.Context()
	if ctx == nil {
		ctx = context.Background()
	}

	s, err := opts.open(ctx, cmd, true)
	if err != nil {
		return err
	}
	defer s.close()

	tag := f.tag
	if tag == "" && f.dismissAfter > 0 {
		tag = defaultTag
	}

	w := newWatcher(cmd.OutOrStdout())
	if err := show(ctx, s.rep, w.info(tag)); err != nil {
		return err
	}

	if f.dismissAfter > 0 && !w.wait(ctx, f.dismissAfter) {
		if err := s.rep.Dismiss(ctx, tag); err != nil {
			return err
		}
	}
	w.wait(ctx, f.wait)
	return nil
}
