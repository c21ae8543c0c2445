package loader

import (
	"net/http"
	"time"
)

// LoaderBuilderOption is a functional option for configuring a Loader via NewLoader.
type LoaderBuilderOption func(*loader)

// WithWorkers sets the maximum number of pool workers.
//
// Parameters:
//   - n: the worker count, at least 1
//
// Returns:
//   - LoaderBuilderOption: a function that applies the worker count to a loader
func WithWorkers(n int) LoaderBuilderOption {
	return func(l *loader) {
		l.workers = max(n, 1)
	}
}

// WithContentIDs replaces the payload names loaded by LoadContent.
//
// Parameters:
//   - ids: the content IDs, one JSON file each
//
// Returns:
//   - LoaderBuilderOption: a function that applies the IDs to a loader
func WithContentIDs(ids ...string) LoaderBuilderOption {
	return func(l *loader) {
		l.contentIDs = ids
	}
}

// WithNoise sets the edge length and seed of generated textures.
//
// Parameters:
//   - size: the edge length in pixels
//   - seed: the generator seed
//
// Returns:
//   - LoaderBuilderOption: a function that applies the noise settings to a loader
func WithNoise(size int, seed uint64) LoaderBuilderOption {
	return func(l *loader) {
		l.noiseSize = size
		l.seed = seed
	}
}

// WithHTTPClient sets the client used for remote textures.
//
// Parameters:
//   - c: the HTTP client
//
// Returns:
//   - LoaderBuilderOption: a function that applies the client to a loader
func WithHTTPClient(c *http.Client) LoaderBuilderOption {
	return func(l *loader) {
		if c != nil {
			l.webClient = c
		}
	}
}

// WithDebounce sets how long the watcher waits for a burst of edits to settle.
func WithDebounce(d time.Duration) LoaderBuilderOption {
	return func(l *loader) {
		l.debounce = d
	}
}
