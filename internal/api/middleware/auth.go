package middleware

import (
	"context"
	"crypto/subtle"
	"net/http"

	"github.com/adityalohuni/AutoBlog/internal/api"
)

type contextKey string

const AdminUserKey contextKey = "admin_user"

// CredentialValidator checks admin credentials.
type CredentialValidator interface {
	ValidateCredentials(username, password string) error
}

// BasicAuth guards mutating routes with HTTP basic auth against the
// configured admin credentials.
func BasicAuth(validator CredentialValidator) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			username, password, ok := r.BasicAuth()
			if !ok {
				w.Header().Set("WWW-Authenticate", `Basic realm="autoblog"`)
				api.Error(w, http.StatusUnauthorized, "missing credentials")
				return
			}

			if err := validator.ValidateCredentials(username, password); err != nil {
				api.Error(w, http.StatusUnauthorized, "invalid credentials")
				return
			}

			ctx := context.WithValue(r.Context(), AdminUserKey, username)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// GetAdminUser returns the authenticated admin username from context.
func GetAdminUser(ctx context.Context) string {
	user, _ := ctx.Value(AdminUserKey).(string)
	return user
}

// AdminCredentials is the config-backed CredentialValidator.
type AdminCredentials struct {
	Username string
	Password string
}

func (c AdminCredentials) ValidateCredentials(username, password string) error {
	userOK := subtle.ConstantTimeCompare([]byte(username), []byte(c.Username)) == 1
	passOK := subtle.ConstantTimeCompare([]byte(password), []byte(c.Password)) == 1
	if !userOK || !passOK {
		return errInvalidCredentials
	}
	return nil
}

var errInvalidCredentials = credentialError("invalid credentials")

type credentialError string

func (e credentialError) Error() string { return string(e) }
