/*
Package main runs the phrasematch server, its debug CLI and a demo driver.

phrasematch stores integer-keyed phrases and finds them in free text:
whole-word, case-insensitive occurrences with elastic whitespace, and
phrases that could complete a partially typed fragment.

# Usage

Serve msgpack requests on stdin/stdout:

	phrasematch -patterns patterns.txt

Serve the JSON API and Prometheus metrics instead:

	phrasematch -http :8080 -patterns patterns.yaml -watch

Try queries interactively, or run the sample driver:

	phrasematch -c
	phrasematch -demo

# Configuration

The config file is created with defaults on first run, under the user
config directory (for example ~/.config/phrasematch/config.toml):

	[engine]
	max_rune = 128

	[server]
	max_text = 4096
	max_results = 0
	cache_size = 1024
	http_addr = ""
	metrics = true

	[patterns]
	file = ""
	watch = false

	[cli]
	show_timing = true
	color = true

Flags override the file.
*/
package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/bastiangx/phrasematch/internal/cli"
	"github.com/bastiangx/phrasematch/internal/logger"
	"github.com/bastiangx/phrasematch/internal/utils"
	"github.com/bastiangx/phrasematch/pkg/config"
	"github.com/bastiangx/phrasematch/pkg/dictionary"
	"github.com/bastiangx/phrasematch/pkg/server"
	"github.com/bastiangx/phrasematch/pkg/textmatch"
	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/log"
)

const (
	Version = "0.3.0-beta"
	gh      = "https://github.com/bastiangx/phrasematch"
)

// sigHandler exits on interrupt for the modes blocked on stdin.
func sigHandler() {
	c := make(chan os.Signal, 1)
	signal.Notify(c, os.Interrupt, syscall.SIGTERM)

	go func() {
		<-c
		fmt.Fprintf(os.Stderr, "\nExiting...\n")
		os.Exit(0)
	}()
}

// main only wires packages together and picks the mode.
func main() {
	showVersion := flag.Bool("version", false, "Show current version")
	debugMode := flag.Bool("d", false, "Toggle debug mode")
	cliMode := flag.Bool("c", false, "Run CLI -- useful for testing and debugging")
	demoMode := flag.Bool("demo", false, "Load the sample pattern set, run two queries and exit")
	httpAddr := flag.String("http", "", "Serve the HTTP API on this address instead of IPC")
	patternsFile := flag.String("patterns", "", "Pattern file to load (.txt, .toml, .yaml)")
	watch := flag.Bool("watch", false, "Reload the pattern file when it changes")
	configPath := flag.String("config", "", "Path to config.toml")

	flag.Parse()

	if *showVersion {
		printVersion()
		os.Exit(0)
	}

	logger.Setup(*debugMode)

	cfg, activeConfig, err := config.LoadConfigWithPriority(*configPath)
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}
	if *patternsFile != "" {
		cfg.Patterns.File = *patternsFile
	}
	if *watch {
		cfg.Patterns.Watch = true
	}
	if *httpAddr != "" {
		cfg.Server.HTTPAddr = *httpAddr
	}

	matcher := textmatch.NewSync(textmatch.WithMaxRune(cfg.Engine.MaxRune))
	log.Debugf("Init matcher: maxRune=[%d]", matcher.MaxRune())

	if *demoMode {
		if err := runDemo(matcher, os.Stdout); err != nil {
			log.Fatalf("Demo failed: %v", err)
		}
		return
	}

	patternsPath := loadPatterns(matcher, cfg.Patterns.File)
	if patternsPath != "" && cfg.Patterns.Watch {
		w, err := dictionary.NewWatcher(patternsPath, matcher)
		if err != nil {
			log.Errorf("Cannot watch %s: %v", patternsPath, err)
		} else {
			defer w.Close()
		}
	}

	// CLI is mainly for testing and dbg purposes.
	if *cliMode {
		sigHandler()
		log.SetReportTimestamp(false)
		if err := cli.NewInputHandler(matcher, cfg.CLI).Start(); err != nil {
			log.Fatalf("CLI error: %v", err)
		}
		return
	}

	srv := server.NewServer(matcher, cfg.Server)
	showStartupInfo(activeConfig, patternsPath, matcher.Len(), cfg.Server.HTTPAddr)

	if cfg.Server.HTTPAddr != "" {
		ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
		defer stop()
		handler := server.NewHTTPHandler(srv, cfg.Server.Metrics)
		if err := server.ListenAndServe(ctx, cfg.Server.HTTPAddr, handler); err != nil {
			log.Errorf("HTTP server: %v", err)
		}
		return
	}

	sigHandler()
	log.Debug("spawning IPC")
	if err := srv.Start(); err != nil {
		log.Errorf("Server stopped: %v", err)
	}
}

// loadPatterns applies the pattern file, if one is found, and returns its
// path.
func loadPatterns(m *textmatch.SyncMatcher, userPath string) string {
	pr, err := utils.NewPathResolver()
	if err != nil {
		log.Warnf("Failed to initialize path resolver: %v", err)
		return ""
	}
	path, err := pr.FindPatternsFile(userPath)
	if err != nil {
		if userPath != "" {
			log.Errorf("Pattern file %s not found, starting empty", userPath)
		} else {
			log.Debug("No pattern file, starting empty")
		}
		return ""
	}

	var d dictionary.Diff
	var loadErr error
	m.Update(func(inner *textmatch.Matcher) {
		d, loadErr = dictionary.LoadInto(inner, path)
	})
	if loadErr != nil {
		log.Errorf("Failed to load patterns: %v", loadErr)
		return ""
	}
	log.Debugf("Loaded %s: %s", path, d)
	return path
}

func printVersion() {
	l := log.NewWithOptions(os.Stderr, log.Options{
		ReportCaller:    false,
		ReportTimestamp: false,
		Prefix:          "",
	})

	styles := log.DefaultStyles()
	styles.Values["version"] = lipgloss.NewStyle().Bold(true).
		Foreground(lipgloss.AdaptiveColor{Light: "#575279", Dark: "#e0def4"}).
		Background(lipgloss.AdaptiveColor{Light: "#f2e9e1", Dark: "#26233a"})
	styles.Values["gh"] = lipgloss.NewStyle().Italic(true).
		Foreground(lipgloss.AdaptiveColor{Light: "#575279", Dark: "#e0def4"})
	l.SetStyles(styles)

	l.Print("")
	l.Print("[ phrasematch ] Finds your phrases in any text, even half typed ones")
	l.Print("", "version", Version)
	l.Print("")
	l.Print("use -h or --help to see available options")
	l.Print("Github Repo", "gh", gh)
}

// showStartupInfo displays some basic info about the init process.
func showStartupInfo(configPath, patternsPath string, entries int, httpAddr string) {
	currentLevel := log.GetLevel()
	log.SetLevel(log.InfoLevel)

	println("=============")
	println(" phrasematch ")
	println("=============")
	log.Infof("Version: %s", Version)
	log.Infof("Process ID: [ %d ]", os.Getpid())
	log.Infof("config: ( %s )", config.GetActiveConfigPath(configPath))
	if patternsPath != "" {
		log.Infof("patterns: ( %s ) %s entries", patternsPath, utils.FormatWithCommas(entries))
	}
	if httpAddr != "" {
		log.Infof("http: ( %s )", httpAddr)
	} else {
		log.Info("ipc: stdin/stdout")
	}
	log.Info("status: ready")
	println("=============")
	println("Press Ctrl+C to exit")

	log.SetLevel(currentLevel)
}
