package service

import "context"

// Mailer sends fire-and-forget transactional email. Implementations must be
// safe to call from goroutines; failures are logged by the caller and never
// fail the triggering operation.
type Mailer interface {
	// SendWelcome mails a self-registered client their campus ID.
	SendWelcome(ctx context.Context, to, name, campusID string) error

	// SendCredentials mails an admin-created account its campus ID and the
	// initial password chosen by the administrator.
	SendCredentials(ctx context.Context, to, name, campusID, password string) error
}
