// Package identity is the consulted contract of the identity provider.
package identity

import "context"

// User is the authenticated-user snapshot admission needs: a verified email
// plus contact fields copied onto the reservation.
type User struct {
	ID            string
	Email         string
	EmailVerified bool
	Name          string
	Phone         string
}

// Provider looks up an authenticated user by id.
type Provider interface {
	GetUser(ctx context.Context, userID string) (User, error)
}
