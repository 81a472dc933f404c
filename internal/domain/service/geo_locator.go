package service

import (
	"context"

	"onlyoomfs/internal/domain/entity"
)

// GeoLocator resolves a caller's network address to an approximate geographic
// position. Resolution is advisory: callers absorb any error into the unknown
// pair and must never fail registration because of it.
type GeoLocator interface {
	// Locate issues a single lookup for the given address. One call per
	// registration; no retry, no cache.
	Locate(ctx context.Context, addr string) (entity.Coordinates, error)
}
