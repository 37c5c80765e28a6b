package app

import (
	"crypto/subtle"
	"net/http"
	"strings"
)

// RequestHasValidAdminKey reports whether the request carries the configured
// admin bearer token. With no admin key configured, every admin request is
// rejected.
func (app *Application) RequestHasValidAdminKey(r *http.Request) bool {
	auth := r.Header.Get("Authorization")
	token, ok := strings.CutPrefix(auth, "Bearer ")
	if !ok {
		return false
	}
	return app.IsValidAdminKey(token)
}

// IsValidAdminKey compares a bearer token against the configured admin key
// in constant time.
func (app *Application) IsValidAdminKey(token string) bool {
	if app.Config.AdminAPIKey == "" || token == "" {
		return false
	}
	return subtle.ConstantTimeCompare([]byte(token), []byte(app.Config.AdminAPIKey)) == 1
}
