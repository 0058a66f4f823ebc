package geocode

import (
	"context"
	"errors"
	"log"
	"time"

	"github.com/jonathan/listing-site-builder/internal/types"
)

// Resolver ties the cache and the external lookup together and owns the
// retry and rate-limit policy. It is not safe for concurrent use; the build
// is a single sequential pass by design, so it never needs to be.
type Resolver struct {
	lookup     Lookup
	store      Store
	delay      time.Duration // fixed sleep between external calls
	maxRetries int           // extra attempts after the first, transient failures only
	verbose    bool

	externalCalls int
	cacheHits     int
}

// ResolverOptions configures a Resolver.
type ResolverOptions struct {
	Delay      time.Duration
	MaxRetries int
	Verbose    bool
}

// DefaultResolverOptions matches the public Nominatim usage policy of at
// most one request per second.
func DefaultResolverOptions() ResolverOptions {
	return ResolverOptions{
		Delay:      time.Second,
		MaxRetries: 2,
	}
}

// NewResolver creates a Resolver over the given lookup and store.
func NewResolver(lookup Lookup, store Store, opts ResolverOptions) *Resolver {
	return &Resolver{
		lookup:     lookup,
		store:      store,
		delay:      opts.Delay,
		maxRetries: opts.MaxRetries,
		verbose:    opts.Verbose,
	}
}

// Resolve returns coordinates for an address, or nil when none can be had.
// Lookup failures are swallowed here: a listing without coordinates just
// loses its map marker, it never aborts the build. Both successes and
// definitive failures are cached so later builds skip the external call.
func (r *Resolver) Resolve(ctx context.Context, address string) *types.Point {
	addr := NormalizeAddress(address)
	if addr == "" {
		return nil
	}

	if point, found := r.store.Get(addr); found {
		r.cacheHits++
		return point
	}

	var point *types.Point
	for attempt := 0; attempt <= r.maxRetries; attempt++ {
		if r.externalCalls > 0 && r.delay > 0 {
			time.Sleep(r.delay)
		}
		r.externalCalls++

		result, err := r.lookup.Geocode(ctx, addr)
		if err == nil {
			point = result
			break
		}

		var transient *TransientError
		if !errors.As(err, &transient) {
			// Not found or a definitive failure: no point retrying.
			if r.verbose && !errors.Is(err, ErrNotFound) {
				log.Printf("[geocode] %s: %v", addr, err)
			}
			break
		}
		if r.verbose {
			log.Printf("[geocode] %s: attempt %d/%d: %v", addr, attempt+1, r.maxRetries+1, err)
		}
	}

	// A nil point here caches the negative result.
	r.store.Put(addr, point)
	return point
}

// ExternalCalls returns how many lookup requests this build issued.
func (r *Resolver) ExternalCalls() int { return r.externalCalls }

// CacheHits returns how many addresses were served from the cache.
func (r *Resolver) CacheHits() int { return r.cacheHits }
