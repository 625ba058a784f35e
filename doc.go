/*
Package notify is a client for the freedesktop.org Desktop Notifications
service, spoken over the D-Bus session bus with godbus.

Client covers the plain method calls: showing a notification, closing it,
and querying the server for its identity and optional capabilities.
Notifier adds a subscription to the ActionInvoked and NotificationClosed
signals and hands them to user-supplied handlers.

The higher level toast package builds on this one to track notifications
by application tag.

See also:
  - https://specifications.freedesktop.org/notification-spec/latest/
  - https://github.com/godbus/dbus
*/
package notify
