package loader

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"os"
	"path/filepath"
	"strings"
)

// sourceBackend opens asset bytes from one kind of location.
// Concrete implementations (fileBackend, httpBackend) handle the transport details.
type sourceBackend interface {
	// Open returns a reader over the asset at location. The caller closes it.
	//
	// Parameters:
	//   - ctx: cancels a pending open
	//   - location: the path or URL of the asset
	//
	// Returns:
	//   - io.ReadCloser: the asset bytes
	//   - error: error if the asset cannot be opened
	Open(ctx context.Context, location string) (io.ReadCloser, error)
}

type fileBackend struct{}

var _ sourceBackend = fileBackend{}

func (fileBackend) Open(_ context.Context, location string) (io.ReadCloser, error) {
	return os.Open(location)
}

type httpBackend struct {
	client *http.Client
}

var _ sourceBackend = &httpBackend{}

func (b *httpBackend) Open(ctx context.Context, location string) (io.ReadCloser, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, location, nil)
	if err != nil {
		return nil, err
	}
	resp, err := b.client.Do(req)
	if err != nil {
		return nil, err
	}
	if resp.StatusCode != http.StatusOK {
		resp.Body.Close()
		return nil, fmt.Errorf("GET %s: %s", location, resp.Status)
	}
	return resp.Body, nil
}

// textureExtensions are the encodings common.DecodeTexture registers.
var textureExtensions = map[string]bool{
	".png":  true,
	".jpg":  true,
	".jpeg": true,
	".bmp":  true,
	".webp": true,
}

// isRemote reports whether a location is an http(s) URL.
func isRemote(location string) bool {
	return strings.HasPrefix(location, "http://") || strings.HasPrefix(location, "https://")
}

// textureExtension returns the lower-case extension of a location, ignoring any URL query.
func textureExtension(location string) string {
	if i := strings.IndexAny(location, "?#"); i >= 0 && isRemote(location) {
		location = location[:i]
	}
	return strings.ToLower(filepath.Ext(location))
}
