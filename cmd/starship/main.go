// cmd/starship/main.go
package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gdamore/tcell/v2"

	"github.com/opd-ai/go-starship/pkg/audio"
	"github.com/opd-ai/go-starship/pkg/config"
	"github.com/opd-ai/go-starship/pkg/engine"
	"github.com/opd-ai/go-starship/pkg/event"
	"github.com/opd-ai/go-starship/pkg/logging"
	"github.com/opd-ai/go-starship/pkg/render"
	engorender "github.com/opd-ai/go-starship/pkg/render/engo"
	"github.com/opd-ai/go-starship/pkg/render/terminal"
)

// terminalLogFile keeps log lines off the screen tcell is drawing on
const terminalLogFile = "starship.log"

type options struct {
	configPath string
	renderer   string
	width      int
	height     int
	fullscreen bool
	ticks      int
	logPath    string
	saveConfig string

	// names of the flags given on the command line
	set map[string]bool
}

func parseFlags(args []string, output io.Writer) (*options, error) {
	fs := flag.NewFlagSet("starship", flag.ContinueOnError)
	fs.SetOutput(output)

	opts := &options{set: make(map[string]bool)}
	fs.StringVar(&opts.configPath, "config", "", "Path to a JSON or YAML configuration file")
	fs.StringVar(&opts.renderer, "renderer", config.RendererEngo, "Renderer: 'engo', 'terminal' or 'null'")
	fs.IntVar(&opts.width, "width", 0, "Window width (engo only)")
	fs.IntVar(&opts.height, "height", 0, "Window height (engo only)")
	fs.BoolVar(&opts.fullscreen, "fullscreen", false, "Run in fullscreen mode (engo only)")
	fs.IntVar(&opts.ticks, "ticks", 600, "Ticks to simulate with the null renderer")
	fs.StringVar(&opts.saveConfig, "save-config", "", "Write the effective configuration to this JSON or YAML file and exit")
	fs.StringVar(&opts.logPath, "log", "", "Log destination (default stdout, "+terminalLogFile+" for the terminal renderer)")

	if err := fs.Parse(args); err != nil {
		return nil, err
	}
	fs.Visit(func(f *flag.Flag) { opts.set[f.Name] = true })

	if opts.ticks < 0 {
		return nil, fmt.Errorf("-ticks must not be negative, got %d", opts.ticks)
	}
	return opts, nil
}

// loadConfig layers the configuration: defaults, then the file, then
// STARSHIP_* variables, then explicit flags
func loadConfig(opts *options) (*config.GameConfig, error) {
	var (
		cfg *config.GameConfig
		err error
	)
	if opts.configPath == "" {
		cfg, err = config.LoadConfigFromEnv()
	} else {
		cfg, err = config.LoadConfig(opts.configPath)
		if err == nil {
			err = config.ApplyEnvironmentOverrides(cfg)
		}
	}
	if err != nil {
		return nil, fmt.Errorf("loading configuration: %w", err)
	}

	if opts.set["renderer"] {
		cfg.Renderer = opts.renderer
	}
	if opts.set["width"] {
		cfg.Window.Width = opts.width
	}
	if opts.set["height"] {
		cfg.Window.Height = opts.height
	}
	if opts.set["fullscreen"] {
		cfg.Window.Fullscreen = opts.fullscreen
	}

	if err := config.Validate(cfg); err != nil {
		return nil, fmt.Errorf("command line: %w", err)
	}
	return cfg, nil
}

func newLogger(opts *options, renderer string) *logging.Logger {
	path := opts.logPath
	if path == "" {
		path = "stdout"
		if renderer == config.RendererTerminal {
			path = terminalLogFile
		}
	}
	return logging.NewLogger(logging.WithOutputPaths(path))
}

func pingConfig(cfg *config.GameConfig) audio.PingConfig {
	return audio.PingConfig{
		Frequency:  cfg.Audio.Frequency,
		Duration:   cfg.PingDuration(),
		Volume:     cfg.Audio.Volume,
		SampleRate: cfg.Audio.SampleRate,
	}
}

// startAudio opens the speaker and pings on every sweep revolution. Failure
// leaves the game silent.
func startAudio(ctx context.Context, cfg *config.GameConfig, bus *event.Bus, logger *logging.Logger) func() {
	if !cfg.Audio.Enabled || cfg.Renderer == config.RendererNull {
		return func() {}
	}

	sm := audio.NewSoundManager(pingConfig(cfg), logger)
	if err := sm.Initialize(); err != nil {
		logger.Warn(ctx, "Audio disabled", "error", err.Error())
		return func() {}
	}
	sub := sm.Listen(bus)
	return func() {
		sub.Cancel()
		sm.Cleanup()
	}
}

// runHeadless advances the game ticks times against the null renderer
func runHeadless(ctx context.Context, game *engine.Game, ticks int, logger *logging.Logger) error {
	renderer := render.NewNullRenderer(logger)
	game.Start()
	defer game.Stop()

	const dt = 1.0 / 60
	for i := 0; i < ticks; i++ {
		if err := ctx.Err(); err != nil {
			return err
		}
		game.Update(dt)
		game.Render(renderer)
	}

	state := game.GetGameState()
	status := game.GetStatus()
	logger.Info(ctx, "Headless run finished",
		"ticks", status.Tick,
		"revolutions", state.Revolutions,
		"heading", status.Heading,
		"speed", status.Speed,
		"x", status.Position.X,
		"y", status.Position.Y,
		"collided", status.Collided,
		"frames", renderer.Frames())
	return nil
}

func runTerminal(ctx context.Context, cfg *config.GameConfig, game *engine.Game, logger *logging.Logger) error {
	screen, err := tcell.NewScreen()
	if err != nil {
		return logging.WrapError(err, "creating terminal screen")
	}
	if err := screen.Init(); err != nil {
		return logging.WrapError(err, "initializing terminal screen")
	}
	defer screen.Fini()

	game.Start()
	defer game.Stop()

	err = terminal.NewFrontend(screen, cfg, logger).Run(ctx, game)
	if errors.Is(err, context.Canceled) {
		return nil
	}
	return err
}

func runEngo(cfg *config.GameConfig, game *engine.Game, bus *event.Bus, logger *logging.Logger) {
	// the scene starts and stops the game itself
	scene := engorender.NewGameScene(game, bus, cfg, logger)
	engorender.Run(cfg, scene)
}

func run(args []string) int {
	opts, err := parseFlags(args, os.Stderr)
	if err != nil {
		if errors.Is(err, flag.ErrHelp) {
			return 0
		}
		return 2
	}

	cfg, err := loadConfig(opts)
	if err != nil {
		fmt.Fprintf(os.Stderr, "starship: %v\n", err)
		return 1
	}

	if opts.saveConfig != "" {
		if err := config.SaveConfig(cfg, opts.saveConfig); err != nil {
			fmt.Fprintf(os.Stderr, "starship: %v\n", err)
			return 1
		}
		return 0
	}

	logger := newLogger(opts, cfg.Renderer)
	defer logger.Sync()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	bus := event.NewEventBus()
	started := time.Now()
	game, err := engine.NewGame(ctx, cfg, engine.WithLogger(logger), engine.WithEventBus(bus))
	if err != nil {
		logger.Error(ctx, "Failed to create game", err)
		return 1
	}
	ctx = game.Context()
	logger.Info(ctx, "Game ready",
		"renderer", cfg.Renderer,
		"stars", game.Stars.Len(),
		"obstacles", len(game.Obstacles),
		"setup_ms", time.Since(started).Milliseconds())

	stopAudio := startAudio(ctx, cfg, bus, logger)
	defer stopAudio()

	switch cfg.Renderer {
	case config.RendererNull:
		err = runHeadless(ctx, game, opts.ticks, logger)
	case config.RendererTerminal:
		err = runTerminal(ctx, cfg, game, logger)
	default:
		runEngo(cfg, game, bus, logger)
	}

	if err != nil && !errors.Is(err, context.Canceled) {
		logger.Error(ctx, "Game stopped with error", err)
		return 1
	}
	return 0
}

func main() {
	os.Exit(run(os.Args[1:]))
}
