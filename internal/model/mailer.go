package model

import "context"

// Mailer delivers transactional email. Delivery failures are reported to
// the dispatcher, never to the request that queued the message.
type Mailer interface {
	SendVerification(ctx context.Context, email, token string) error
}

// MailDispatcher queues mail for delivery outside the request lifecycle.
type MailDispatcher interface {
	DispatchVerification(email, token string)
}
