package main

import (
	"context"
	"log"
	"time"

	"github.com/godbus/dbus/v5"

	"github.com/jktr/go-toastnotify/toast"
)

func main() {
	conn, err := dbus.ConnectSessionBus()
	if err != nil {
		log.Fatal(err)
	}
	defer conn.Close()

	ctx := context.Background()
	rep, err := toast.Connect(ctx, conn, toast.Config{
		AppID:   "org.example.ToastDemo",
		AppName: "toast example app",
	})
	if err != nil {
		log.Fatal(err)
	}
	defer rep.Close()

	done := make(chan struct{}, 1)
	info := toast.Info{
		Tag: "call-1",
		OnActivated: func(ev toast.ActivatedEvent) {
			log.Printf("activated: tag=%s arguments=%q", ev.Tag, ev.Arguments)
			done <- struct{}{}
		},
		OnDismissed: func(ev toast.DismissedEvent) {
			log.Printf("dismissed: tag=%s reason=%s", ev.Tag, ev.Reason)
			done <- struct{}{}
		},
		OnFailed: func(ev toast.FailedEvent) {
			log.Printf("failed: tag=%s code=%s err=%v", ev.Tag, ev.Code, ev.Err)
		},
	}

	err = rep.ShowIncomingCall(ctx, &toast.IncomingCall{
		Info:          info,
		FirstLine:     "Alice",
		SecondLine:    "Incoming call",
		DefaultAction: "show-call",
		Buttons: []toast.Button{
			{Content: "Accept", Arguments: "accept"},
			{Content: "Decline", Arguments: "decline", ActivationType: toast.Background},
		},
	})
	if err != nil {
		log.Fatal(err)
	}

	select {
	case <-done:
	case <-time.After(30 * time.Second):
		if err := rep.Dismiss(ctx, info.Tag); err != nil {
			log.Fatal(err)
		}
		<-done
	}
}
