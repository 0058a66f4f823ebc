// Package geocode resolves listing addresses to coordinates through an
// external lookup service, with a persistent cache so that a fully warmed
// build issues zero external calls.
package geocode

import (
	"context"
	"errors"
	"fmt"

	"github.com/jonathan/listing-site-builder/internal/types"
)

// ErrNotFound means the service definitively knows no location for the
// address. It is cached and never retried.
var ErrNotFound = errors.New("geocode: address not found")

// TransientError wraps rate-limit and availability failures that are worth
// retrying within a build.
type TransientError struct {
	Cause error
}

func (e *TransientError) Error() string {
	return fmt.Sprintf("geocode: transient failure: %v", e.Cause)
}

func (e *TransientError) Unwrap() error {
	return e.Cause
}

// Lookup is the narrow interface the pipeline needs from a geocoding
// provider. Implementations return ErrNotFound for unknown addresses and
// TransientError for conditions worth retrying; retry and rate-limit policy
// belong to the Resolver, not the provider.
type Lookup interface {
	Geocode(ctx context.Context, address string) (*types.Point, error)
}
