// Package notify delivers reminder and alert messages to the user. It
// stands in for the platform notification subsystem: delivery is
// fire-and-forget, and a failed send is logged by the caller, never
// retried or surfaced.
package notify

import "log"

// Notifier pushes a single notification to the user.
type Notifier interface {
	Send(title, body string) error
}

// LogNotifier writes notifications to the process log. It is the
// fallback when no push transport is configured.
type LogNotifier struct{}

func NewLogNotifier() *LogNotifier {
	return &LogNotifier{}
}

func (n *LogNotifier) Send(title, body string) error {
	log.Printf("[notify] %s: %s", title, body)
	return nil
}
