package service

// Notifier pushes events to a user's live connection (avoids import cycle
// with the ws package). Async results arrive at unpredictable times, so the
// client listens instead of polling.
type Notifier interface {
	NotifyUser(userID string, msgType string, payload interface{})
}
