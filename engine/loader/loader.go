// package loader fetches the external inputs of the scene: the noise textures sampled by the
// raymarch stage and the four content payloads presented by the bodies. Content directories
// can be watched for edits.
package loader

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"os"
	"path/filepath"
	"runtime"
	"strings"
	"sync"
	"time"

	"github.com/Carmen-Shannon/automation/tools/worker"
	"github.com/Carmen-Shannon/oxy-warp/common"
	"github.com/fsnotify/fsnotify"
)

var (
	// ErrUnsupportedFormat is returned for texture locations whose extension no decoder handles.
	ErrUnsupportedFormat = errors.New("loader: unsupported format")
	// ErrMissingPayload is returned when a content directory lacks a payload file.
	ErrMissingPayload = errors.New("loader: missing payload")
)

// DefaultContentIDs are the payload names, one JSON file each, in body order.
var DefaultContentIDs = []string{"about-me", "interests", "skills", "contact"}

// Textures are the two textures sampled by the raymarch stage.
type Textures struct {
	Noise     *common.TextureStagingData
	BlueNoise *common.TextureStagingData
}

// loader is the implementation of the Loader interface.
type loader struct {
	mu sync.Mutex

	pool    worker.DynamicWorkerPool
	workers int
	taskID  int

	files  sourceBackend
	remote sourceBackend

	contentIDs []string
	noiseSize  int
	seed       uint64
	debounce   time.Duration
	webClient  *http.Client
}

// Loader loads textures and content on a shared worker pool.
type Loader interface {
	// LoadTextures loads the noise and blue noise textures concurrently. An empty location
	// generates the texture instead.
	//
	// Parameters:
	//   - ctx: cancels pending remote fetches
	//   - noise: path or URL of the value noise texture
	//   - blueNoise: path or URL of the blue noise texture
	//
	// Returns:
	//   - Textures: the decoded textures
	//   - error: every failure joined, each naming its location
	LoadTextures(ctx context.Context, noise, blueNoise string) (Textures, error)

	// LoadContent parses one JSON payload per content ID from a directory concurrently.
	//
	// Parameters:
	//   - dir: the content directory
	//
	// Returns:
	//   - map[string]common.Payload: payloads keyed by content ID
	//   - error: every failure joined; missing files wrap ErrMissingPayload
	LoadContent(dir string) (map[string]common.Payload, error)

	// Watch reloads the content of dir after JSON files change and passes complete reloads to
	// onChange. Failed reloads are logged and skipped. Watch returns once the watcher runs;
	// it stops when ctx is done.
	//
	// Parameters:
	//   - ctx: stops the watcher
	//   - dir: the content directory
	//   - onChange: receives each successful reload
	//
	// Returns:
	//   - error: error if the watcher cannot be created or dir cannot be watched
	Watch(ctx context.Context, dir string, onChange func(map[string]common.Payload)) error
}

var _ Loader = &loader{}

// NewLoader creates a new Loader with options applied.
//
// Parameters:
//   - options: a variadic list of LoaderBuilderOption functions to configure the Loader
//
// Returns:
//   - Loader: a new instance of Loader
func NewLoader(options ...LoaderBuilderOption) Loader {
	l := &loader{
		workers:    max(runtime.NumCPU()-1, 1),
		files:      fileBackend{},
		contentIDs: DefaultContentIDs,
		noiseSize:  NoiseSize,
		seed:       1,
		debounce:   100 * time.Millisecond,
		webClient:  &http.Client{Timeout: 30 * time.Second},
	}
	for _, option := range options {
		option(l)
	}
	l.remote = &httpBackend{client: l.webClient}
	l.pool = worker.NewDynamicWorkerPool(l.workers, 256, 1*time.Second)
	return l
}

// run executes every job on the pool and waits for all of them. Workers idle-exit, so a
// WaitGroup is the barrier rather than the pool itself.
func (l *loader) run(jobs []func() error) error {
	errs := make([]error, len(jobs))
	var wg sync.WaitGroup
	for i, job := range jobs {
		wg.Add(1)
		l.mu.Lock()
		id := l.taskID
		l.taskID++
		l.mu.Unlock()
		l.pool.SubmitTask(worker.Task{
			ID: id,
			Do: func() (any, error) {
				defer wg.Done()
				errs[i] = job()
				return nil, errs[i]
			},
		})
	}
	wg.Wait()
	return errors.Join(errs...)
}

func (l *loader) LoadTextures(ctx context.Context, noise, blueNoise string) (Textures, error) {
	var out Textures
	err := l.run([]func() error{
		func() (err error) {
			out.Noise, err = l.texture(ctx, noise, func() *common.TextureStagingData {
				return GenerateNoise(l.noiseSize, l.seed)
			})
			return err
		},
		func() (err error) {
			out.BlueNoise, err = l.texture(ctx, blueNoise, func() *common.TextureStagingData {
				return GenerateDither(l.noiseSize, l.seed+1)
			})
			return err
		},
	})
	if err != nil {
		return Textures{}, err
	}
	common.Logger().Info("textures loaded",
		"noise", describe(noise), "noise_size", out.Noise.Width,
		"blue_noise", describe(blueNoise), "blue_noise_size", out.BlueNoise.Width)
	return out, nil
}

// texture decodes the texture at location, or generates one for an empty location.
func (l *loader) texture(ctx context.Context, location string, generate func() *common.TextureStagingData) (*common.TextureStagingData, error) {
	if location == "" {
		return generate(), nil
	}
	if ext := textureExtension(location); !textureExtensions[ext] {
		return nil, fmt.Errorf("%s: %w %q", location, ErrUnsupportedFormat, ext)
	}
	backend := l.files
	if isRemote(location) {
		backend = l.remote
	}
	rc, err := backend.Open(ctx, location)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", location, err)
	}
	defer rc.Close()
	data, err := common.DecodeTexture(rc)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", location, err)
	}
	return data, nil
}

func describe(location string) string {
	if location == "" {
		return "generated"
	}
	return location
}

func (l *loader) LoadContent(dir string) (map[string]common.Payload, error) {
	payloads := make([]common.Payload, len(l.contentIDs))
	jobs := make([]func() error, len(l.contentIDs))
	for i, id := range l.contentIDs {
		jobs[i] = func() error {
			p, err := readPayload(filepath.Join(dir, id+".json"))
			if err != nil {
				return fmt.Errorf("content %s: %w", id, err)
			}
			payloads[i] = p
			return nil
		}
	}
	if err := l.run(jobs); err != nil {
		return nil, err
	}

	out := make(map[string]common.Payload, len(payloads))
	for i, id := range l.contentIDs {
		out[id] = payloads[i]
	}
	common.Logger().Info("content loaded", "dir", dir, "payloads", len(out))
	return out, nil
}

// readPayload decodes one payload file. Unknown fields are rejected and a name is required.
func readPayload(path string) (common.Payload, error) {
	f, err := os.Open(path)
	if errors.Is(err, os.ErrNotExist) {
		return common.Payload{}, fmt.Errorf("%w: %s", ErrMissingPayload, path)
	}
	if err != nil {
		return common.Payload{}, err
	}
	defer f.Close()
	return decodePayload(f)
}

func decodePayload(r io.Reader) (common.Payload, error) {
	var p common.Payload
	dec := json.NewDecoder(r)
	dec.DisallowUnknownFields()
	if err := dec.Decode(&p); err != nil {
		return common.Payload{}, fmt.Errorf("decode: %w", err)
	}
	if strings.TrimSpace(p.Name) == "" {
		return common.Payload{}, errors.New("decode: payload has no name")
	}
	return p, nil
}

func (l *loader) Watch(ctx context.Context, dir string, onChange func(map[string]common.Payload)) error {
	w, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("loader: watcher: %w", err)
	}
	if err := w.Add(dir); err != nil {
		w.Close()
		return fmt.Errorf("loader: watch %s: %w", dir, err)
	}

	go func() {
		defer w.Close()
		// edits arrive as bursts of events; reload once the burst settles
		timer := time.NewTimer(l.debounce)
		timer.Stop()
		for {
			select {
			case <-ctx.Done():
				timer.Stop()
				return
			case event, ok := <-w.Events:
				if !ok {
					return
				}
				if !strings.EqualFold(filepath.Ext(event.Name), ".json") {
					continue
				}
				if event.Op&(fsnotify.Write|fsnotify.Create|fsnotify.Rename|fsnotify.Remove) == 0 {
					continue
				}
				timer.Reset(l.debounce)
			case err, ok := <-w.Errors:
				if !ok {
					return
				}
				common.Logger().Warn("content watcher", "dir", dir, "err", err)
			case <-timer.C:
				payloads, err := l.LoadContent(dir)
				if err != nil {
					common.Logger().Warn("content reload failed", "dir", dir, "err", err)
					continue
				}
				common.Logger().Info("content reloaded", "dir", dir)
				if onChange != nil {
					onChange(payloads)
				}
			}
		}
	}()
	return nil
}
