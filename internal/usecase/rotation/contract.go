package rotation

import "context"

// Rotator performs the server-side secret change.
type Rotator interface {
	ChangePassword(ctx context.Context, credential, currentPassword, newPassword string) error
}

// Sessions supplies and retires the stored credential.
type Sessions interface {
	Credential() (string, error)
	Logout() error
}
