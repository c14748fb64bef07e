package repositories

import "context"

// EmailCredentials selects the calling context: the server variant carries the
// private access token, the browser variant only the public key.
type EmailCredentials struct {
	PublicKey  string
	PrivateKey string
}

// EmailSender sends a templated transactional email and returns the provider status code.
type EmailSender interface {
	Send(ctx context.Context, serviceID, templateID string, variables map[string]string, creds EmailCredentials) (int, error)
}
