package http

import (
	"context"
	"net/http"
	"strings"

	"github.com/golang-jwt/jwt/v5"
)

type guestIDKey struct{}

// Auth validates the Bearer token and stores the authenticated guest id in
// the request context. Tokens are HS256 with the subject claim carrying the
// user id; anything else is a 401.
func Auth(secret []byte) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			header := r.Header.Get("Authorization")
			raw, found := strings.CutPrefix(header, "Bearer ")
			if !found || raw == "" {
				writeError(w, http.StatusUnauthorized, codeAuthRequired, "authentication required")
				return
			}

			token, err := jwt.Parse(raw, func(t *jwt.Token) (any, error) {
				if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
					return nil, jwt.ErrSignatureInvalid
				}
				return secret, nil
			})
			if err != nil || !token.Valid {
				writeError(w, http.StatusUnauthorized, codeAuthRequired, "invalid token")
				return
			}

			sub, err := token.Claims.GetSubject()
			if err != nil || sub == "" {
				writeError(w, http.StatusUnauthorized, codeAuthRequired, "invalid token")
				return
			}

			ctx := context.WithValue(r.Context(), guestIDKey{}, sub)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// GuestID returns the authenticated guest id, or "" when the request was not
// authenticated.
func GuestID(ctx context.Context) string {
	id, _ := ctx.Value(guestIDKey{}).(string)
	return id
}
