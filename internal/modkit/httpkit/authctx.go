package httpkit

import (
	"net/http"

	perrs "profanity/internal/platform/errors"
	pnet "profanity/internal/platform/net"
)

// User returns the authenticated caller from the request context
func User(r *http.Request) (string, error) {
	uid := pnet.UserID(r.Context())
	if uid == "" {
		return "", perrs.Unauthorizedf("missing bearer token")
	}
	return uid, nil
}
