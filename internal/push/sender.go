// Package push delivers notifications to a user's device through an external
// provider. Delivery is best-effort: tokens rot and devices go offline, so
// callers treat a send failure as non-fatal.
package push

import "context"

// Message is the payload delivered to one device.
type Message struct {
	Title string
	Body  string
	Data  map[string]string
}

// Sender delivers a message to the device identified by token.
type Sender interface {
	Send(ctx context.Context, token string, msg Message) error
}
