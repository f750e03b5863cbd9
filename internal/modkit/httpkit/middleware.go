package httpkit

import (
	"compress/flate"
	"net/http"
	"strings"
	"time"

	phttp "profanity/internal/platform/net/http"
	"profanity/internal/platform/net/middleware"
)

// StackOptions tunes CommonStack
type StackOptions struct {
	CORSOrigins []string
	SlowRequest time.Duration
	Timeout     time.Duration
}

// CommonStack returns the baseline middleware for the versioned API
func CommonStack(o StackOptions) []func(http.Handler) http.Handler {
	if o.Timeout <= 0 {
		o.Timeout = 30 * time.Second
	}
	return []func(http.Handler) http.Handler{
		middleware.RequestID(),
		middleware.RealIP(),
		middleware.RecoverJSON,
		middleware.NoCache(),
		middleware.AccessLogZerolog(middleware.AccessLogOptions{Slow: o.SlowRequest, Skip: isHealthCheck}),
		middleware.CORS(middleware.CORSOptions{AllowedOrigins: o.CORSOrigins}),
		middleware.Compress(flate.BestSpeed),
		middleware.StripSlashes(),
		middleware.Timeout(o.Timeout),
	}
}

// isHealthCheck matches the meta health and ready endpoints, which would flood the access log
func isHealthCheck(r *http.Request) bool {
	return strings.HasSuffix(r.URL.Path, "/meta/health") || strings.HasSuffix(r.URL.Path, "/meta/ready")
}

// Auth wires the auth middleware to the platform JSON writer
func Auth(p middleware.AuthPort) func(http.Handler) http.Handler {
	return middleware.Auth(p, phttp.JSON)
}
