package engine

import (
	"errors"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/Carmen-Shannon/oxy-warp/common"
	"github.com/Carmen-Shannon/oxy-warp/config"
	"github.com/Carmen-Shannon/oxy-warp/engine/renderer"
	"github.com/Carmen-Shannon/oxy-warp/engine/scene"
	"github.com/Carmen-Shannon/oxy-warp/engine/steering"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type countingScene struct {
	frames  atomic.Int32
	renders atomic.Int32
	fail    atomic.Bool
}

var _ scene.Scene = &countingScene{}

func (c *countingScene) Init(renderer.Renderer, *common.TextureStagingData, *common.TextureStagingData) error {
	return nil
}
func (c *countingScene) Renderer() renderer.Renderer { return nil }
func (c *countingScene) Frame(float32)               { c.frames.Add(1) }
func (c *countingScene) Render() error {
	c.renders.Add(1)
	if c.fail.Load() {
		return errors.New("surface lost")
	}
	return nil
}
func (c *countingScene) Resize(int, int)                       {}
func (c *countingScene) OnScroll(float32)                      {}
func (c *countingScene) OnTouchDrag(float32, float32)          {}
func (c *countingScene) OnPointerMove(float32, float32, bool)  {}
func (c *countingScene) OnCycle(int)                           {}
func (c *countingScene) SetRefreshRate(float32)                {}
func (c *countingScene) SetPayloads(map[string]common.Payload) {}
func (c *countingScene) Outputs() scene.Outputs                { return scene.Outputs{} }
func (c *countingScene) Bodies() [steering.BodyCount]steering.Body {
	return [steering.BodyCount]steering.Body{}
}
func (c *countingScene) Layout() config.Layout { return config.Layout{Scale: 1} }
func (c *countingScene) Release()              {}

// runAsync starts Run and returns a channel closed when it returns.
func runAsync(e Engine) <-chan struct{} {
	done := make(chan struct{})
	go func() {
		e.Run()
		close(done)
	}()
	return done
}

func TestRenderLoopDrivesScene(t *testing.T) {
	s := &countingScene{}
	e := NewEngine(WithScene(s), WithRenderFrameLimit(500))
	assert.Same(t, s, e.Scene())
	done := runAsync(e)

	require.Eventually(t, func() bool { return s.renders.Load() >= 3 }, time.Second, time.Millisecond)
	e.Quit()
	e.Quit()

	select {
	case <-done:
	case <-time.After(time.Second):
		t.Fatal("Run did not return after Quit")
	}
	assert.Equal(t, s.frames.Load(), s.renders.Load(), "every frame is followed by a render")
}

func TestFrameErrorsReachCallback(t *testing.T) {
	s := &countingScene{}
	s.fail.Store(true)

	var mu sync.Mutex
	var got []error
	e := NewEngine(WithScene(s), WithRenderFrameLimit(500), WithErrorCallback(func(err error) {
		mu.Lock()
		got = append(got, err)
		mu.Unlock()
	}))
	done := runAsync(e)

	require.Eventually(t, func() bool {
		mu.Lock()
		defer mu.Unlock()
		return len(got) >= 2
	}, time.Second, time.Millisecond)
	e.Quit()
	<-done

	assert.GreaterOrEqual(t, s.renders.Load(), int32(2), "the loop keeps running after a failed frame")
}

func TestTickCallback(t *testing.T) {
	var ticks atomic.Int32
	e := NewEngine(WithTickRate(200), WithRenderFrameLimit(500))
	e.SetTickCallback(func(float32) { ticks.Add(1) })
	done := runAsync(e)

	require.Eventually(t, func() bool { return ticks.Load() >= 2 }, time.Second, time.Millisecond)
	e.SetTickRate(400)
	e.Quit()
	<-done
}

func TestRenderFrameLimit(t *testing.T) {
	e := NewEngine().(*engine)
	e.SetRenderFrameLimit(50)
	assert.Equal(t, 20*time.Millisecond, e.renderFrameLimit)
	e.SetRenderFrameLimit(0)
	assert.Zero(t, e.renderFrameLimit)

	e.SetTickRate(-1)
	assert.Equal(t, time.Second/60, e.tickRate())
}

func TestTickRateChangeWhileRunning(t *testing.T) {
	var ticks atomic.Int32
	e := NewEngine(WithTickRate(200), WithRenderFrameLimit(500)).(*engine)
	e.SetTickCallback(func(float32) { ticks.Add(1) })
	done := runAsync(e)

	require.Eventually(t, func() bool { return ticks.Load() >= 1 }, time.Second, time.Millisecond)
	e.SetTickRate(100)
	require.Eventually(t, func() bool { return e.tickRate() == 10*time.Millisecond }, time.Second, time.Millisecond)
	e.Quit()
	<-done

	e.SetTickRate(50)
	assert.Equal(t, 20*time.Millisecond, e.tickRate(), "a stopped engine applies the rate directly")
}
