/*
Package toast shows desktop toasts on behalf of an application and
forwards what happens to them.

A Representer installs the application's desktop entry once, fills
notifications from TwoLines and IncomingCall requests, remembers the
handle of every tagged toast so Dismiss can find it again, and calls
the OnActivated, OnDismissed and OnFailed callbacks of each toast.

	conn, err := dbus.ConnectSessionBus()
	...
	r, err := toast.Connect(ctx, conn, toast.Config{AppID: "org.example.Chat", AppName: "Chat"})
	...
	defer r.Close()
	err = r.ShowTwoLines(ctx, &toast.TwoLines{
		Info:       toast.Info{Tag: "msg-42"},
		FirstLine:  "Alice",
		SecondLine: "Lunch?",
	})
	...
	err = r.Dismiss(ctx, "msg-42")

OnActivated and OnDismissed run on the goroutine the server event was
delivered on. OnFailed runs before the Show method returns.
*/
package toast
