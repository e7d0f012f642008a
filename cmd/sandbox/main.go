// Command sandbox opens a window on a textured, lit box that can be orbited with the mouse and tuned from a
// parameter panel drawn in the terminal.
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

	"github.com/Carmen-Shannon/oxy-sandbox/app"
	"github.com/Carmen-Shannon/oxy-sandbox/config"
	"github.com/Carmen-Shannon/oxy-sandbox/engine"
	"github.com/Carmen-Shannon/oxy-sandbox/engine/panel"
	"github.com/Carmen-Shannon/oxy-sandbox/engine/renderer"
	"github.com/Carmen-Shannon/oxy-sandbox/engine/texture"
	"github.com/Carmen-Shannon/oxy-sandbox/engine/window"
	"github.com/schollz/progressbar/v3"
)

func init() {
	// GLFW and the surface must stay on the main OS thread.
	runtime.LockOSThread()
}

func main() {
	if err := run(); err != nil {
		slog.Error("sandbox failed", "error", err)
		os.Exit(1)
	}
}

func run() error {
	// ── Config + logging ────────────────────────────────────────────────
	flags := config.NewFlags(flag.CommandLine)
	flag.Parse()

	cfg, err := config.Load(flags.ConfigPath)
	if err != nil {
		return err
	}
	flags.Apply(&cfg)
	if err := cfg.Validate(); err != nil {
		return err
	}
	level, err := config.ParseLevel(cfg.LogLevel)
	if err != nil {
		return err
	}
	logger := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level}))
	slog.SetDefault(logger)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	// ── Window ──────────────────────────────────────────────────────────
	win, err := window.NewWindow(
		window.WithTitle(cfg.Window.Title),
		window.WithWidth(cfg.Window.Width),
		window.WithHeight(cfg.Window.Height),
	)
	if err != nil {
		return fmt.Errorf("window: %w", err)
	}
	defer win.Close()

	// ── Renderer ────────────────────────────────────────────────────────
	presentMode := renderer.PresentModeUncapped
	if cfg.Window.VSync {
		presentMode = renderer.PresentModeVSync
	}
	r, err := renderer.NewRenderer(win.SurfaceDescriptor(), win.Width(), win.Height(),
		renderer.WithPresentMode(presentMode),
		renderer.WithLogger(logger),
	)
	if err != nil {
		return fmt.Errorf("renderer: %w", err)
	}
	defer r.Release()

	// ── Textures ────────────────────────────────────────────────────────
	bar := progressbar.NewOptions(3,
		progressbar.OptionSetWriter(os.Stderr),
		progressbar.OptionSetDescription("textures"),
		progressbar.OptionClearOnFinish(),
	)
	loader := texture.NewLoader(
		texture.WithFS(os.DirFS(cfg.Textures.Dir)),
		texture.WithWorkers(cfg.Textures.Workers),
		texture.WithMaxDimension(cfg.Textures.MaxDimension),
		texture.WithLogger(logger),
		texture.WithOnSettled(func(*texture.Handle) {
			if !bar.IsFinished() {
				_ = bar.Add(1)
			}
		}),
	)
	defer loader.Close()

	// ── Scene ───────────────────────────────────────────────────────────
	sandbox, err := app.Build(cfg, loader,
		app.WithLogger(logger),
		app.WithViewport(win.Width(), win.Height()),
	)
	if err != nil {
		return err
	}

	// ── Engine ──────────────────────────────────────────────────────────
	eng := engine.NewEngine(sandbox.Scene, r,
		engine.WithFPS(float64(cfg.FPS)),
		engine.WithProfiling(cfg.Profile),
		engine.WithLogger(logger),
	)

	input := app.NewInput(sandbox, eng)
	win.SetResizeCallback(eng.Resize)
	win.SetKeyCallback(input.Key)
	win.SetScrollCallback(input.Scroll)
	win.SetMouseButtonCallback(input.MouseButton)
	win.SetMouseMoveCallback(input.MouseMove)

	if cfg.Panel {
		view := panel.NewTerminalView(sandbox.Panel, os.Stdout, logger)
		defer view.Close()
		eng.SetFrameCallback(func(float32) {
			view.Refresh()
		})
	}

	if cfg.Textures.Watch {
		watcher, err := texture.NewWatcher(cfg.Textures.Dir, sandbox.TextureNames(), func(name string) {
			eng.Post(func() {
				sandbox.ReloadTexture(name)
			})
		}, logger)
		if err != nil {
			logger.Warn("texture watching disabled", "error", err)
		} else {
			defer watcher.Close()
			go watcher.Run(ctx)
		}
	}

	// ── Run ─────────────────────────────────────────────────────────────
	loopDone := make(chan error, 1)
	go func() {
		err := eng.Run(ctx)
		// Wake the message loop so the main thread can return.
		win.RequestClose()
		loopDone <- err
	}()
	go func() {
		<-ctx.Done()
		win.RequestClose()
	}()

	win.ProcessMessages()
	eng.Quit()
	if err := <-loopDone; err != nil {
		return fmt.Errorf("render loop: %w", err)
	}
	logger.Info("sandbox closed", "frames", eng.Frames(), "render_errors", eng.RenderErrors())
	return nil
}
