package ports

import "context"

// Mail is one outgoing email. HTML is optional.
type Mail struct {
	To      string
	Subject string
	Text    string
	HTML    string
}

// Mailer delivers email. Delivery failures are returned, never panicked.
type Mailer interface {
	SendMail(ctx context.Context, mail Mail) error
}

// PushNotification is the payload handed to the push transport for one message.
type PushNotification struct {
	MessageID    string            `json:"messageId"`
	MessageType  string            `json:"messageType"`
	Recipient    string            `json:"recipient"`
	DeviceTokens []string          `json:"deviceTokens"`
	Title        string            `json:"title"`
	Body         string            `json:"body"`
	Data         map[string]string `json:"data"`
}

// PushPublisher hands push notifications to the device fan-out service.
type PushPublisher interface {
	PublishPush(ctx context.Context, push PushNotification) error
}

// PasswordHasher hashes and verifies driver passwords.
type PasswordHasher interface {
	Hash(plain string) (string, error)
	// Verify reports whether plain matches hash. A mismatch is not an error.
	Verify(plain string, hash string) (bool, error)
}
