package config

import (
	"flag"
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/atomicstack/mux-launcher/internal/app"
	"github.com/atomicstack/mux-launcher/internal/catalog"
)

// Config captures runtime configuration for the application.
type Config struct {
	App     app.Config
	Logging Logging
	Flags   map[string]string
	Args    []string
}

type Logging struct {
	FilePath string
	Trace    bool
}

const (
	envSocketPath  = "MUX_LAUNCHER_SOCKET"
	envWindowID    = "MUX_LAUNCHER_WINDOW"
	envPaneID      = "MUX_LAUNCHER_PANE"
	envTitle       = "MUX_LAUNCHER_TITLE"
	envWidth       = "MUX_LAUNCHER_WIDTH"
	envHeight      = "MUX_LAUNCHER_HEIGHT"
	envDomains     = "MUX_LAUNCHER_DOMAINS"
	envTabs        = "MUX_LAUNCHER_TABS"
	envKeyBindings = "MUX_LAUNCHER_KEY_BINDINGS"
	envCommands    = "MUX_LAUNCHER_COMMANDS"
	envWorkspaces  = "MUX_LAUNCHER_WORKSPACES"
	envFuzzy       = "MUX_LAUNCHER_FUZZY"
	envTrace       = "MUX_LAUNCHER_TRACE"
	envLogFile     = "MUX_LAUNCHER_LOG_FILE"
)

// launchFlag collects repeated -launch arguments of the form
// "label=command" or just "command".
type launchFlag []catalog.FreeEntry

func (l *launchFlag) String() string {
	parts := make([]string, 0, len(*l))
	for _, entry := range *l {
		if entry.Label == "" {
			parts = append(parts, entry.Command)
			continue
		}
		parts = append(parts, entry.Label+"="+entry.Command)
	}
	return strings.Join(parts, ",")
}

func (l *launchFlag) Set(value string) error {
	if strings.TrimSpace(value) == "" {
		return fmt.Errorf("launch entry must not be empty")
	}
	label, command, found := strings.Cut(value, "=")
	if !found {
		*l = append(*l, catalog.FreeEntry{Command: strings.TrimSpace(value)})
		return nil
	}
	command = strings.TrimSpace(command)
	if command == "" {
		return fmt.Errorf("launch entry %q has no command", value)
	}
	*l = append(*l, catalog.FreeEntry{Label: strings.TrimSpace(label), Command: command})
	return nil
}

// Load parses configuration from CLI arguments and environment variables.
func Load() (Config, error) {
	return LoadArgs(os.Args[1:], os.Environ())
}

// LoadArgs allows tests to supply specific args/environment.
func LoadArgs(args []string, environ []string) (Config, error) {
	env := parseEnv(environ)

	fs := flag.NewFlagSet("mux-launcher", flag.ContinueOnError)
	fs.SetOutput(new(strings.Builder))

	socket := fs.String("socket", envOrDefault(env, envSocketPath, ""), "path to the tmux socket (overrides environment detection)")
	windowID := fs.String("window", envOrDefault(env, envWindowID, ""), "window whose tabs populate the catalog (empty uses the current window)")
	paneID := fs.String("pane", envOrDefault(env, envPaneID, ""), "pane that receives the launched action (empty uses the active pane)")
	title := fs.String("title", envOrDefault(env, envTitle, ""), "overlay title")
	width := fs.Int("width", envOrInt(env, envWidth, 0), "desired viewport width in cells (0 uses terminal width)")
	height := fs.Int("height", envOrInt(env, envHeight, 0), "desired viewport height in rows (0 uses terminal height)")
	domains := fs.Bool("domains", envOrBool(env, envDomains, true), "include spawnable domains in the catalog")
	tabs := fs.Bool("tabs", envOrBool(env, envTabs, true), "include the current window's tabs in the catalog")
	keyBindings := fs.Bool("key-bindings", envOrBool(env, envKeyBindings, true), "include key binding shortcuts in the catalog")
	commands := fs.Bool("commands", envOrBool(env, envCommands, true), "include the command palette in the catalog")
	workspaces := fs.Bool("workspaces", envOrBool(env, envWorkspaces, false), "include workspace switching entries in the catalog")
	fuzzy := fs.Bool("fuzzy", envOrBool(env, envFuzzy, false), "start in fuzzy filtering mode and never leave it")
	trace := fs.Bool("trace", envOrBool(env, envTrace, false), "enable verbose JSON trace logging")
	logFile := fs.String("log-file", envOrDefault(env, envLogFile, ""), "path to the log file")

	var free launchFlag
	fs.Var(&free, "launch", "extra launch entry, label=command or a bare command (repeatable)")

	if err := fs.Parse(args); err != nil {
		return Config{}, err
	}

	if *width < 0 {
		return Config{}, fmt.Errorf("width must be >= 0 (got %d)", *width)
	}
	if *height < 0 {
		return Config{}, fmt.Errorf("height must be >= 0 (got %d)", *height)
	}

	var flags catalog.Flags
	if *domains {
		flags |= catalog.IncludeDomains
	}
	if *tabs {
		flags |= catalog.IncludeTabs
	}
	if *keyBindings {
		flags |= catalog.IncludeKeyBindings
	}
	if *commands {
		flags |= catalog.IncludeCommands
	}
	if *workspaces {
		flags |= catalog.IncludeWorkspaces
	}
	if *fuzzy {
		flags |= catalog.Fuzzy
	}

	cfg := Config{
		App: app.Config{
			SocketPath: *socket,
			WindowID:   *windowID,
			PaneID:     *paneID,
			Title:      *title,
			Width:      *width,
			Height:     *height,
			Flags:      flags,
			Free:       []catalog.FreeEntry(free),
		},
		Logging: Logging{
			FilePath: *logFile,
			Trace:    *trace,
		},
		Flags: map[string]string{
			"socket":       *socket,
			"window":       *windowID,
			"pane":         *paneID,
			"title":        *title,
			"width":        strconv.Itoa(*width),
			"height":       strconv.Itoa(*height),
			"domains":      strconv.FormatBool(*domains),
			"tabs":         strconv.FormatBool(*tabs),
			"key-bindings": strconv.FormatBool(*keyBindings),
			"commands":     strconv.FormatBool(*commands),
			"workspaces":   strconv.FormatBool(*workspaces),
			"fuzzy":        strconv.FormatBool(*fuzzy),
			"trace":        strconv.FormatBool(*trace),
			"logFile":      *logFile,
			"launch":       free.String(),
		},
		Args: append([]string(nil), args...),
	}

	return cfg, nil
}

func parseEnv(environ []string) map[string]string {
	values := make(map[string]string, len(environ))
	for _, entry := range environ {
		if entry == "" {
			continue
		}
		parts := strings.SplitN(entry, "=", 2)
		if len(parts) != 2 {
			continue
		}
		values[parts[0]] = parts[1]
	}
	return values
}

func envOrDefault(env map[string]string, key, fallback string) string {
	if v, ok := env[key]; ok {
		return v
	}
	return fallback
}

func envOrInt(env map[string]string, key string, fallback int) int {
	v, ok := env[key]
	if !ok || strings.TrimSpace(v) == "" {
		return fallback
	}
	parsed, err := strconv.Atoi(v)
	if err != nil {
		return fallback
	}
	return parsed
}

func envOrBool(env map[string]string, key string, fallback bool) bool {
	v, ok := env[key]
	if !ok || strings.TrimSpace(v) == "" {
		return fallback
	}
	parsed, err := strconv.ParseBool(v)
	if err != nil {
		return fallback
	}
	return parsed
}

// MustLoad returns configuration or exits.
func MustLoad() Config {
	cfg, err := Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Configuration error: %v\n", err)
		os.Exit(2)
	}
	return cfg
}

// Validate ensures required minimum configuration is present.
func Validate(cfg Config) error {
	if cfg.App.Flags&(catalog.IncludeDomains|catalog.IncludeTabs|catalog.IncludeKeyBindings|catalog.IncludeCommands|catalog.IncludeWorkspaces) == 0 && len(cfg.App.Free) == 0 {
		return fmt.Errorf("nothing to show: every entry source is disabled and no -launch entries were given")
	}
	return nil
}
