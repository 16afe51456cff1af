// keyline - Input timeline overlay
//
// Renders recent keyboard and mouse activity as a scrolling timeline:
//
//	keyline run             Run the headless engine (capture + diagnostics)
//	keyline devices         List input devices capture would read
//	keyline dump            Render one demo frame and print its draw list
//	keyline config          Show, create, or locate the config file
//	keyline status          Show configuration and capture availability
package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"keyline/internal/config"
	"keyline/internal/input"
	"keyline/internal/logging"
	"keyline/internal/overlay"
)

func main() {
	if len(os.Args) < 2 {
		usage()
		os.Exit(1)
	}

	switch os.Args[1] {
	case "run":
		cmdRun()
	case "devices":
		cmdDevices()
	case "dump":
		cmdDump()
	case "config":
		cmdConfig()
	case "status":
		cmdStatus()
	case "help", "-h", "--help":
		usage()
	default:
		fmt.Fprintf(os.Stderr, "Unknown command: %s\n\n", os.Args[1])
		usage()
		os.Exit(1)
	}
}

func usage() {
	fmt.Println(`keyline - Input timeline overlay

USAGE:
    keyline <command> [options]

COMMANDS:
    run                 Run the headless engine with live capture
    devices             List input devices capture would read
    dump                Render one demo frame and print its draw list
    config <action>     Manage the config file (show | init | path)
    status              Show configuration and capture availability
    help                Show this help message

The overlay shows a five-second scrolling window of key-press bars on up
to four configurable rows, with click markers annotated by the delay
since the matching key went down.

Linux capture reads /dev/input/event* directly; membership in the
'input' group (or root) is required.

Use keyline-gui for the on-screen overlay window and keyline-tty for a
terminal preview.`)
}

func fatalf(format string, args ...any) {
	fmt.Fprintf(os.Stderr, format+"\n", args...)
	os.Exit(1)
}

func loadConfig(path string) (*config.Config, string) {
	if path == "" {
		path = config.ConfigPath()
	}
	cfg, created, err := config.LoadOrCreate(path)
	if err != nil {
		fatalf("Error loading config: %v", err)
	}
	if created {
		fmt.Fprintf(os.Stderr, "Created default config at %s\n", path)
	}
	return cfg, path
}

func newLogger(cfg *config.Config) *logging.Logger {
	log, err := logging.New(&logging.Config{
		Level:     logging.ParseLevel(cfg.Logging.Level),
		Format:    cfg.Logging.Format,
		Output:    cfg.Logging.Output,
		Component: "keyline",
	})
	if err != nil {
		fatalf("Error opening log output: %v", err)
	}
	return log
}

func cmdRun() {
	fs := flag.NewFlagSet("run", flag.ExitOnError)
	configPath := fs.String("config", "", "Config file path")
	interval := fs.Duration("interval", 5*time.Second, "Diagnostics report interval")
	fs.Parse(os.Args[2:])

	cfg, path := loadConfig(*configPath)
	log := newLogger(cfg)
	defer log.Close()

	ov, err := overlay.New(cfg, log.Logger)
	if err != nil {
		fatalf("Error creating overlay: %v", err)
	}
	defer ov.Dispose()

	src := input.New()
	if ok, reason := src.Available(); !ok {
		fatalf("Capture unavailable: %s", reason)
	}
	if err := ov.StartCapture(context.Background(), src); err != nil {
		fatalf("Error starting capture: %v", err)
	}

	// Hot-reload the config while running.
	loader := config.NewLoader(path)
	if _, err := loader.Load(); err == nil {
		loader.OnChange(func(c *config.Config) {
			if err := ov.Configure(c); err != nil {
				log.Warn("config reload rejected", "err", err)
			}
		})
		if err := loader.Watch(); err != nil {
			log.Warn("config watch unavailable", "err", err)
		}
		defer loader.Close()
	}

	fmt.Printf("keyline running (config: %s), Ctrl-C to stop\n", path)

	sig := make(chan os.Signal, 1)
	signal.Notify(sig, syscall.SIGINT, syscall.SIGTERM)

	ticker := time.NewTicker(*interval)
	defer ticker.Stop()
	frame := time.NewTicker(33 * time.Millisecond)
	defer frame.Stop()

	for {
		select {
		case <-frame.C:
			ov.Tick(input.NowMS())
		case <-ticker.C:
			snap, row, down, valid := ov.Diagnostics()
			log.Info("activity",
				"key_events", snap.KeyEvents,
				"mouse_events", snap.MouseEvents,
				"frames", snap.Frames,
				"last_row", int(row),
				"last_down_ms", down,
				"memo_valid", valid)
		case <-sig:
			fmt.Println("\nStopping...")
			return
		}
	}
}

func cmdDevices() {
	devices, err := input.ListDevices()
	if err != nil {
		fatalf("Error listing devices: %v", err)
	}
	if len(devices) == 0 {
		fmt.Println("No keyboard or mouse devices found.")
		return
	}
	for _, d := range devices {
		mark := " "
		if d.Readable {
			mark = "*"
		}
		fmt.Printf("  %s %-24s %s\n", mark, d.Path, d.Name)
	}
	fmt.Println("\n  * = readable with current permissions")
}

// cmdDump replays a short scripted session through the full pipeline and
// prints the resulting draw list, for inspecting geometry without a window.
func cmdDump() {
	fs := flag.NewFlagSet("dump", flag.ExitOnError)
	configPath := fs.String("config", "", "Config file path")
	verbose := fs.Bool("v", false, "Print every rectangle")
	fs.Parse(os.Args[2:])

	cfg, _ := loadConfig(*configPath)
	ov, err := overlay.New(cfg, nil)
	if err != nil {
		fatalf("Error creating overlay: %v", err)
	}
	defer ov.Dispose()

	sim := input.NewSimulated()
	if err := ov.StartCapture(context.Background(), sim); err != nil {
		fatalf("Error starting capture: %v", err)
	}

	sim.EmitKey(input.CodeW, true)
	time.Sleep(120 * time.Millisecond)
	sim.EmitKey(input.CodeW, false)
	sim.EmitKey(input.CodeA, true)
	time.Sleep(40 * time.Millisecond)
	sim.EmitButton(input.ButtonPrimary, true)
	sim.EmitButton(input.ButtonPrimary, false)
	sim.EmitKey(input.CodeA, false)

	dl := ov.Tick(input.NowMS())

	fmt.Printf("canvas: %dx%d\n", ov.Width(), ov.Height())
	fmt.Printf("rects: %d, glyph runs: %d\n", len(dl.Rects), len(dl.Runs))
	for _, run := range dl.Runs {
		fmt.Printf("  text %-6q at (%.0f, %.0f) scale %.2f\n", run.Text, run.X, run.Y, run.Scale)
	}
	if *verbose {
		for _, r := range dl.Rects {
			fmt.Printf("  rect (%.1f, %.1f) %.1fx%.1f %s a=%.2f\n",
				r.X, r.Y, r.W, r.H, r.Color.Hex(), r.Color.A)
		}
	}
}

func cmdConfig() {
	action := "show"
	if len(os.Args) > 2 {
		action = os.Args[2]
	}

	path := config.ConfigPath()
	switch action {
	case "path":
		fmt.Println(path)
	case "init":
		cfg, created, err := config.LoadOrCreate(path)
		if err != nil {
			fatalf("Error: %v", err)
		}
		if created {
			fmt.Printf("Created %s\n", path)
		} else {
			fmt.Printf("Config already exists at %s\n", path)
		}
		printConfig(cfg)
	case "show":
		cfg, _ := loadConfig("")
		fmt.Printf("# %s\n", path)
		printConfig(cfg)
	default:
		fatalf("Usage: keyline config [show|init|path]")
	}
}

func printConfig(cfg *config.Config) {
	fmt.Printf("width = %d\nheight = %d\nbg_color = %q\nbg_alpha = %.2f\n",
		cfg.Width, cfg.Height, cfg.BgColor, cfg.BgAlpha)
	for _, row := range cfg.Rows {
		fmt.Printf("\n[[rows]]\nkey = %q\ncolor = %q\nenabled = %v\n",
			row.Key, row.Color, row.Enabled)
	}
}

func cmdStatus() {
	path := config.ConfigPath()
	fmt.Printf("Config file:  %s", path)
	if _, err := os.Stat(path); os.IsNotExist(err) {
		fmt.Print(" (not created yet)")
	}
	fmt.Println()

	cfg, _ := loadConfig("")
	enabled := 0
	for _, row := range cfg.Rows {
		if row.Enabled {
			enabled++
		}
	}
	fmt.Printf("Canvas:       %dx%d\n", cfg.Width, cfg.Height)
	fmt.Printf("Rows:         %d configured, %d enabled\n", len(cfg.Rows), enabled)
	for i, row := range cfg.Rows {
		state := "off"
		if row.Enabled {
			state = "on"
		}
		fmt.Printf("  row %d: %-6s %s (%s)\n", i, row.Key, row.Color, state)
	}

	ok, reason := input.New().Available()
	if ok {
		fmt.Printf("Capture:      available (%s)\n", reason)
	} else {
		fmt.Printf("Capture:      NOT available (%s)\n", reason)
	}
}
