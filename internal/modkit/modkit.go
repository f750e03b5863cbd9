// Package modkit provides module wiring and core deps
package modkit

import (
	"context"

	phttp "profanity/internal/platform/net/http"
)

// Module is the common surface for API modules that can mount routes and expose ports
type Module interface {
	MountRoutes(r phttp.Router)
	Ports() any
	Name() string
}

// Starter is implemented by modules with background work or boot steps
type Starter interface {
	Start(ctx context.Context) error
}
