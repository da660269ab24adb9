// Package service implements the RPC-facing handlers (§4.7): the
// glue between the wire messages in package pb and the domain
// packages (ratings, store, catalog, coordinator, auth). Handlers
// translate *apperr.Error into gRPC status here, at the outermost
// layer only.
package service

import (
	"context"

	"github.com/canonical/ratings/auth"
	"github.com/canonical/ratings/catalog"
	"github.com/canonical/ratings/coordinator"
	"github.com/canonical/ratings/store"
)

// displayNamer is the subset of catalog.Client the service layer
// needs for enrichment, narrowed so tests can substitute a fake
// without standing up an HTTP server.
type displayNamer interface {
	DisplayName(ctx context.Context, snapID string) (string, error)
}

var _ displayNamer = (*catalog.Client)(nil)

// categoryUpdater is the subset of coordinator.Coordinator the
// service layer needs for the opportunistic category triggers.
type categoryUpdater interface {
	EnsureCategoriesAsync(snapID string)
}

var _ categoryUpdater = (*coordinator.Coordinator)(nil)

// Deps bundles the dependencies every handler needs, built once at
// startup and shared across the User, App and Chart services.
type Deps struct {
	Store       store.Store
	Codec       *auth.Codec
	Coordinator categoryUpdater
	Catalog     displayNamer
	Caches      *ResponseCaches
}
