package loader

import (
	"bytes"
	"context"
	"encoding/json"
	"image"
	"image/color"
	"image/png"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"sync"
	"testing"
	"time"

	"github.com/Carmen-Shannon/oxy-warp/common"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func encodePNG(t *testing.T, w, h int) []byte {
	t.Helper()
	img := image.NewRGBA(image.Rect(0, 0, w, h))
	img.Set(0, 0, color.RGBA{R: 200, A: 255})
	var buf bytes.Buffer
	require.NoError(t, png.Encode(&buf, img))
	return buf.Bytes()
}

func writeContent(t *testing.T, dir string, ids ...string) {
	t.Helper()
	for _, id := range ids {
		data, err := json.Marshal(common.Payload{Name: id, Description: "about " + id, Skills: []string{"go"}})
		require.NoError(t, err)
		require.NoError(t, os.WriteFile(filepath.Join(dir, id+".json"), data, 0o644))
	}
}

func TestGenerateNoiseShift(t *testing.T) {
	tex := GenerateNoise(64, 7)
	require.Len(t, tex.Pixels, 64*64*4)

	at := func(x, y, c int) byte { return tex.Pixels[((y%64)*64+(x%64))*4+c] }
	for _, p := range [][2]int{{0, 0}, {40, 20}, {63, 63}, {5, 50}} {
		x, y := p[0], p[1]
		assert.Equal(t, at(x, y, 1), at(x+64-37, y+64-17, 0), "green is red shifted at %v", p)
	}

	again := GenerateNoise(64, 7)
	assert.Equal(t, tex.Pixels, again.Pixels, "same seed, same texture")
}

func TestLoadTexturesGenerated(t *testing.T) {
	l := NewLoader(WithNoise(32, 3))
	tex, err := l.LoadTextures(context.Background(), "", "")
	require.NoError(t, err)
	assert.Equal(t, uint32(32), tex.Noise.Width)
	assert.Equal(t, uint32(32), tex.BlueNoise.Height)
	assert.Len(t, tex.BlueNoise.Pixels, 32*32*4)
}

func TestLoadTexturesFromFileAndURL(t *testing.T) {
	dir := t.TempDir()
	local := filepath.Join(dir, "noise2.png")
	require.NoError(t, os.WriteFile(local, encodePNG(t, 8, 4), 0o644))

	body := encodePNG(t, 16, 16)
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/blue-noise.png" {
			http.NotFound(w, r)
			return
		}
		w.Write(body)
	}))
	defer srv.Close()

	l := NewLoader(WithHTTPClient(srv.Client()))
	tex, err := l.LoadTextures(context.Background(), local, srv.URL+"/blue-noise.png?v=2")
	require.NoError(t, err)
	assert.Equal(t, uint32(8), tex.Noise.Width)
	assert.Equal(t, uint32(4), tex.Noise.Height)
	assert.Equal(t, byte(200), tex.Noise.Pixels[0])
	assert.Equal(t, uint32(16), tex.BlueNoise.Width)

	_, err = l.LoadTextures(context.Background(), local, srv.URL+"/missing.png")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "404")
}

func TestLoadTexturesErrors(t *testing.T) {
	l := NewLoader()

	_, err := l.LoadTextures(context.Background(), "noise.tga", "")
	assert.ErrorIs(t, err, ErrUnsupportedFormat)

	missing := filepath.Join(t.TempDir(), "absent.png")
	_, err = l.LoadTextures(context.Background(), missing, "also.gif")
	require.Error(t, err)
	assert.ErrorIs(t, err, os.ErrNotExist)
	assert.ErrorIs(t, err, ErrUnsupportedFormat, "both failures are reported")
	assert.Contains(t, err.Error(), missing)
}

func TestLoadContent(t *testing.T) {
	dir := t.TempDir()
	writeContent(t, dir, DefaultContentIDs...)

	l := NewLoader()
	payloads, err := l.LoadContent(dir)
	require.NoError(t, err)
	require.Len(t, payloads, 4)
	assert.Equal(t, "skills", payloads["skills"].Name)
	assert.Equal(t, []string{"go"}, payloads["contact"].Skills)
}

func TestLoadContentErrors(t *testing.T) {
	tests := []struct {
		name    string
		content string
		missing bool
	}{
		{name: "missing file", missing: true},
		{name: "unknown field", content: `{"name":"a","colour":"red"}`},
		{name: "no name", content: `{"description":"x"}`},
		{name: "not json", content: `name: a`},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			dir := t.TempDir()
			writeContent(t, dir, "about-me", "interests", "skills")
			if !tt.missing {
				require.NoError(t, os.WriteFile(filepath.Join(dir, "contact.json"), []byte(tt.content), 0o644))
			}
			_, err := NewLoader().LoadContent(dir)
			require.Error(t, err)
			assert.Contains(t, err.Error(), "content contact")
			if tt.missing {
				assert.ErrorIs(t, err, ErrMissingPayload)
			}
		})
	}
}

func TestWatchReloads(t *testing.T) {
	dir := t.TempDir()
	writeContent(t, dir, DefaultContentIDs...)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	var mu sync.Mutex
	var got map[string]common.Payload
	l := NewLoader(WithDebounce(10 * time.Millisecond))
	require.NoError(t, l.Watch(ctx, dir, func(p map[string]common.Payload) {
		mu.Lock()
		got = p
		mu.Unlock()
	}))

	edited, err := json.Marshal(common.Payload{Name: "Skills, edited"})
	require.NoError(t, err)
	require.NoError(t, os.WriteFile(filepath.Join(dir, "skills.json"), edited, 0o644))

	assert.Eventually(t, func() bool {
		mu.Lock()
		defer mu.Unlock()
		return got["skills"].Name == "Skills, edited"
	}, 2*time.Second, 10*time.Millisecond)
}

func TestWatchMissingDir(t *testing.T) {
	err := NewLoader().Watch(context.Background(), filepath.Join(t.TempDir(), "nope"), nil)
	assert.Error(t, err)
}
