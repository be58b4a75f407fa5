package secondary

import "context"

// PushDispatcher delivers push notifications. Send makes one attempt;
// callers do not retry.
type PushDispatcher interface {
	Send(ctx context.Context, msg PushMessage) error
}

// PushMessage is a single notification to one destination.
type PushMessage struct {
	Token string
	Title string
	Body  string
}
