package main

import (
	"context"
	"fmt"
	"log"
	"os"
	"os/signal"
	"syscall"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/STRML/tscroll/internal/config"
	"github.com/STRML/tscroll/internal/source"
	"github.com/STRML/tscroll/internal/tui"
)

// Version info - set via ldflags at build time
// go build -ldflags "-X main.Version=v1.0.0 -X main.CommitHash=$(git rev-parse --short HEAD)"
var (
	Version    = "dev"
	CommitHash = "unknown"
)

func printHelp() {
	fmt.Printf(`tscroll - page through very large tables in the terminal

Usage:
  tscroll [command] [options]

Commands:
  view <source>   Open the viewer [default]; without a source, reopens the last one
  info <source>   Print record counts and paging for a source
                    --viewport N   body height in lines (default %d)
  plan            Print the window planned for a scroll offset
                    --viewport N   body height in lines
                    --total N      number of records
                    --scroll N     scroll offset in lines (default 0)
  version         Show version information
  help            Show this help message

Sources:
  seq:<n>                n synthetic rows
  csv:<path>, <path>.csv CSV file with a header row
  sqlite:<path>#<table>  SQLite table, paginated in the database
  docker, docker:all     Docker containers (running, or all)

Options:
  -h, --help            Show this help message
  -v, --version         Show version information
  --row-height <n>      Row height in lines, or "auto" to measure
  --throttle <ms>       Minimum interval between fetches from server sources
  --buffer <f>          Viewports of rows fetched on each side of the visible rows
  --scale <f>           Redraw boundary scale within [0,1]
  --height <len>        Grid height: "auto", or a length such as 20px or 50vh
  --debug               Log every redraw boundary crossing

Keys:
  j/k, ↑/↓         Scroll one row
  ^d/^u            Half page
  pgdn/pgup        Page
  g/G              Top/bottom
  :                Go to row
  /                Filter; esc clears it
  L                Toggle the log panel (l cycles its level)
  m                Re-measure rows
  r                Reload the current window
  q                Quit

Settings are read from ~/.tscroll/config.json.
`, defaultInfoViewport)
}

func main() {
	log.SetOutput(os.Stderr)

	flags, args, err := parseFlags(os.Args[1:])
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}

	cmd := parseCommand(args)

	// Handle commands that don't need configuration
	switch cmd {
	case "help":
		printHelp()
		os.Exit(0)
	case "version":
		fmt.Printf("tscroll %s (%s)\n", Version, CommitHash)
		os.Exit(0)
	}

	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Warning: %v; using defaults\n", err)
		cfg = config.Default()
	}
	if err := flags.apply(cfg); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
	if err := cfg.Validate(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}

	// Create cancellable context for the application
	appCtx, appCancel := context.WithCancel(context.Background())
	defer appCancel()

	// Set up signal handling
	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
	go func() {
		<-sigCh
		appCancel()
	}()

	// Extract subcommand args (everything after the command name)
	cmdArgs := args
	if len(cmdArgs) > 0 && cmdArgs[0] == cmd {
		cmdArgs = cmdArgs[1:]
	}

	switch cmd {
	case "view":
		err = runView(appCtx, cfg, cmdArgs)
	case "plan":
		err = runPlan(os.Stdout, cfg.ToScroller(), cmdArgs)
	case "info":
		err = runInfo(appCtx, os.Stdout, cfg.ToScroller(), cmdArgs)
	}
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

// viewSource picks the source spec to view: the argument, or the last
// source opened.
func viewSource(cfg *config.GlobalConfig, args []string) (string, error) {
	switch len(args) {
	case 0:
		if cfg.LastSource == "" {
			return "", fmt.Errorf("no source given and none opened before; see tscroll help")
		}
		return cfg.LastSource, nil
	case 1:
		return args[0], nil
	default:
		return "", fmt.Errorf("view takes one source, got %d arguments", len(args))
	}
}

// runView opens the source and runs the viewer until it quits.
func runView(ctx context.Context, cfg *config.GlobalConfig, args []string) error {
	spec, err := viewSource(cfg, args)
	if err != nil {
		return err
	}

	src, err := source.Open(ctx, spec)
	if err != nil {
		return fmt.Errorf("failed to open source: %w", err)
	}
	defer src.Close()

	if err := config.RememberSource(spec); err != nil {
		log.Printf("[WARN] [config] failed to remember source: %v", err)
	}

	// From here on log output goes to the in-app log panel
	tui.InitLogging()
	defer log.SetOutput(os.Stderr)
	tui.SetVersionInfo(Version, CommitHash)

	grid := tui.NewGrid(src, tui.GridOptions{
		Height:        cfg.Height,
		MaxHeight:     cfg.MaxHeight,
		RowSeparators: cfg.RowSeparators,
	})
	app := tui.NewAppModel(ctx, grid, cfg.ToScroller())
	p := tea.NewProgram(app, tea.WithAltScreen(), tea.WithMouseCellMotion())

	if _, err := p.Run(); err != nil {
		return fmt.Errorf("error running program: %w", err)
	}
	return nil
}
