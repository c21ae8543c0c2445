// Command oxy-warp opens a window with the scroll driven warp experience.
package main

import (
	"context"
	"flag"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"runtime"
	"syscall"
	"time"

	"github.com/Carmen-Shannon/oxy-warp/common"
	"github.com/Carmen-Shannon/oxy-warp/config"
	"github.com/Carmen-Shannon/oxy-warp/engine"
	"github.com/Carmen-Shannon/oxy-warp/engine/loader"
	"github.com/Carmen-Shannon/oxy-warp/engine/renderer"
	"github.com/Carmen-Shannon/oxy-warp/engine/scene"
	"github.com/Carmen-Shannon/oxy-warp/engine/window"
)

func init() {
	// GLFW requires the main thread.
	runtime.LockOSThread()
}

func main() {
	var (
		configPath = flag.String("config", "", "TOML or YAML config file")
		content    = flag.String("content", "", "content directory, overrides assets.content")
		compact    = flag.String("compact", "", "force the layout: auto, true or false")
		vsync      = flag.Bool("vsync", true, "wait for vertical blank")
		msaa       = flag.Int("msaa", 0, "swapchain samples, 1 or 4; 0 keeps the config value")
		profile    = flag.Bool("profile", false, "log frame and memory statistics every second")
		logLevel   = flag.String("log-level", "info", "debug, info, warn or error")
	)
	flag.Parse()

	var level slog.Level
	if err := level.UnmarshalText([]byte(*logLevel)); err != nil {
		fmt.Fprintf(os.Stderr, "oxy-warp: %v\n", err)
		os.Exit(2)
	}
	common.SetLogger(slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level})))

	cfg, err := config.Load(*configPath)
	if err != nil {
		fail(err)
	}
	flag.Visit(func(f *flag.Flag) {
		switch f.Name {
		case "content":
			cfg.Assets.Content = *content
		case "compact":
			cfg.Window.Compact = *compact
		case "vsync":
			cfg.Window.VSync = *vsync
		case "msaa":
			cfg.Window.MSAA = *msaa
		}
	})
	if err := cfg.Validate(); err != nil {
		fail(err)
	}

	if err := run(cfg, *profile); err != nil {
		fail(err)
	}
}

func run(cfg *config.Config, profile bool) error {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	l := loader.NewLoader(loader.WithNoise(loader.NoiseSize, cfg.Warp.Seed))
	textures, err := l.LoadTextures(ctx, cfg.Assets.Noise, cfg.Assets.BlueNoise)
	if err != nil {
		return err
	}

	var payloads map[string]common.Payload
	if cfg.Assets.Content != "" {
		if payloads, err = l.LoadContent(cfg.Assets.Content); err != nil {
			return err
		}
	}

	win := window.NewWindow(
		window.WithTitle(cfg.Window.Title),
		window.WithSize(cfg.Window.Width, cfg.Window.Height),
	)

	presentMode := renderer.PresentModeVSync
	if !cfg.Window.VSync {
		presentMode = renderer.PresentModeUncapped
	}
	r := renderer.NewRenderer(renderer.BackendTypeWGPU, win,
		renderer.WithPresentMode(presentMode),
		renderer.WithMSAA(renderer.ParseMSAA(cfg.Window.MSAA)),
	)
	defer r.Release()

	sc := scene.NewScene(
		scene.WithConfig(cfg),
		scene.WithSize(win.Width(), win.Height()),
		scene.WithPayloads(payloads),
		scene.WithOnOutputChange(func(o scene.Outputs) {
			common.Logger().Debug("outputs",
				"dpr", o.DevicePixelRatio,
				"space_scene_active", o.SpaceSceneActive,
				"hovered", o.HoveredIndex(),
			)
		}),
	)
	if err := sc.Init(r, textures.Noise, textures.BlueNoise); err != nil {
		return err
	}
	defer sc.Release()

	if cfg.Assets.Content != "" && cfg.Assets.Watch {
		if err := l.Watch(ctx, cfg.Assets.Content, sc.SetPayloads); err != nil {
			return err
		}
	}

	frameLimit := 0.0
	if !cfg.Window.VSync {
		frameLimit = float64(cfg.Window.FrameLimit)
	}
	eng := engine.NewEngine(
		engine.WithWindow(win),
		engine.WithScene(sc),
		engine.WithProfiling(profile),
		engine.WithTickRate(1),
		engine.WithRenderFrameLimit(frameLimit),
		engine.WithErrorCallback(errorLimiter(time.Second)),
	)
	eng.SetTickCallback(func(float32) {
		o := sc.Outputs()
		common.Logger().Debug("progress", "value", o.Progress, "dpr", o.DevicePixelRatio)
	})

	go func() {
		<-ctx.Done()
		eng.Quit()
	}()

	common.Logger().Info("running",
		"width", win.Width(),
		"height", win.Height(),
		"refresh_hz", win.RefreshRate(),
		"layout_compact", sc.Layout().Compact,
	)
	eng.Run()
	return nil
}

// errorLimiter logs frame errors at most once per interval. Swapchain loss repeats every frame
// until the next resize.
func errorLimiter(interval time.Duration) func(error) {
	var last time.Time
	var dropped int
	return func(err error) {
		now := time.Now()
		if now.Sub(last) < interval {
			dropped++
			return
		}
		common.Logger().Warn("frame failed", "err", err, "suppressed", dropped)
		last, dropped = now, 0
	}
}

func fail(err error) {
	common.Logger().Error("oxy-warp", "err", err)
	os.Exit(1)
}
