package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"os"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/robottwo/trigline/internal/config"
	"github.com/robottwo/trigline/internal/styles"
	"github.com/robottwo/trigline/internal/tagstore"
	"github.com/robottwo/trigline/pkg/trigger"
	"go.uber.org/zap"
	"golang.org/x/term"
)

var BUILD_VERSION = "dev"

var configPath = flag.String("config", "", "configuration file (default: search XDG and home directories)")
var triggerChar = flag.String("trigger", "", "trigger character to use (default: first configured trigger)")
var dbPath = flag.String("db", "", "tag database for ranked, remembered options (default: static options only)")
var seedDB = flag.Bool("seed", true, "seed the tag database with the configured options")
var acceptFirst = flag.Bool("accept", false, "in pipe mode, print each line with the highlighted option committed")
var logPath = flag.String("log", "", "compressed log file (default: "+defaultLogHint+")")
var logLevel = flag.String("log-level", "info", "log level: debug, info, warn or error")

var helpFlag bool
var versionFlag bool

func init() {
	// Register help flags: -h and --help
	flag.BoolVar(&helpFlag, "h", false, "display help information")
	flag.BoolVar(&helpFlag, "help", false, "display help information")

	// Register version flags: -v and --version
	flag.BoolVar(&versionFlag, "v", false, "display build version")
	flag.BoolVar(&versionFlag, "version", false, "display build version")

	// Register custom zstd sink for compressed logging
	if err := zap.RegisterSink("zstd", newZstdSink); err != nil {
		panic(fmt.Sprintf("failed to register zstd sink: %v", err))
	}
}

// main is the entry point of trigline.
//
// With a terminal on stdin it runs an interactive single-line editor with
// trigger autocomplete; Enter submits the line when no option is
// highlighted. Otherwise it reads lines from stdin, treats the end of each
// line as the caret and prints the session found there.
func main() {
	flag.Parse()

	if versionFlag {
		fmt.Println(BUILD_VERSION)
		return
	}

	if helpFlag {
		printUsage()
		return
	}

	logger, err := initializeLogger()
	if err != nil {
		fmt.Fprintln(os.Stderr, styles.ERROR(fmt.Sprintf("failed to initialize logger: %v", err)))
		os.Exit(1)
	}
	defer func() {
		_ = logger.Sync() // Flush any buffered log entries
	}()

	logger.Info("-------- new trigline session --------", zap.Any("args", os.Args))

	if err := run(context.Background(), logger); err != nil {
		logger.Error("unhandled error", zap.Error(err))
		fmt.Fprintln(os.Stderr, styles.ERROR(err.Error()))
		os.Exit(1)
	}
}

func run(ctx context.Context, logger *zap.Logger) error {
	file, err := config.Load(*configPath)
	if err != nil {
		return err
	}
	logger.Debug("loaded configuration", zap.String("source", file.Source))

	settings, err := selectTrigger(file, *triggerChar)
	if err != nil {
		return err
	}

	cfg, candidates, err := settings.Build()
	if err != nil {
		return fmt.Errorf("trigger %q: %w", settings.Trigger, err)
	}

	src := trigger.Static(candidates)

	var store *tagstore.Store
	if *dbPath != "" {
		store, err = tagstore.Open(*dbPath, logger)
		if err != nil {
			return err
		}
		defer func() {
			if err := store.Close(); err != nil {
				logger.Warn("failed to close tag database", zap.Error(err))
			}
		}()

		if *seedDB {
			if err := store.Seed(ctx, candidates); err != nil {
				return fmt.Errorf("failed to seed tag database: %w", err)
			}
		}
		src = trigger.Remote(store)
	}

	engine, err := trigger.NewEngine(cfg, src, logger)
	if err != nil {
		return err
	}
	if store != nil {
		engine.Subscribe(recordCommits(ctx, store, logger))
	}

	if term.IsTerminal(int(os.Stdin.Fd())) {
		p := tea.NewProgram(newApp(engine, logger))
		_, err := p.Run()
		return err
	}

	return runPipe(os.Stdin, os.Stdout, engine, *acceptFirst)
}

func selectTrigger(file *config.File, char string) (config.TriggerSettings, error) {
	if char != "" {
		return file.Find(char)
	}
	if len(file.Triggers) == 0 {
		return config.TriggerSettings{}, errors.New(file.Source + ": no triggers configured")
	}
	return file.Triggers[0], nil
}

// recordCommits stores every committed option so it ranks higher next time.
func recordCommits(ctx context.Context, store *tagstore.Store, logger *zap.Logger) trigger.Observer {
	return trigger.ObserverFunc(func(s trigger.Snapshot) {
		if s.Event != trigger.EventCommitted {
			return
		}
		if err := store.Record(ctx, s.Committed); err != nil {
			logger.Warn("failed to record option use", zap.String("id", s.Committed.ID), zap.Error(err))
		}
	})
}

func printUsage() {
	// Header
	fmt.Println(styles.HEADING("Usage:") + " trigline [flags]")
	fmt.Println("\nA single-line editor with trigger-character autocomplete.")
	fmt.Println()

	// Flags
	fmt.Println(styles.HEADING("Options:"))

	// We want to group aliases like -h and -help together
	// Map to track which flags we've already printed
	printed := make(map[string]bool)

	flag.VisitAll(func(f *flag.Flag) {
		if printed[f.Name] {
			return
		}

		// Identify aliases based on shared usage strings.
		aliases := []string{f.Name}
		flag.VisitAll(func(p *flag.Flag) {
			if p.Name == f.Name {
				return
			}
			if p.Usage == f.Usage {
				aliases = append(aliases, p.Name)
				printed[p.Name] = true
			}
		})
		printed[f.Name] = true

		names := make([]string, 0, len(aliases))
		for _, name := range aliases {
			names = append(names, "-"+name)
		}
		flagStr := strings.Join(names, ", ")

		// Check if the flag takes an argument
		argName, usage := flag.UnquoteUsage(f)
		if argName != "" {
			flagStr += " <" + argName + ">"
		}

		fmt.Printf("  %-28s %s\n", flagStr, styles.HINT(usage))
	})

	fmt.Println()
	fmt.Println(styles.HEADING("Keys:"))
	fmt.Printf("  %-28s %s\n", "up/down, ctrl+p/ctrl+n", "move the highlight")
	fmt.Printf("  %-28s %s\n", "enter, tab", "insert the highlighted option")
	fmt.Printf("  %-28s %s\n", "esc", "close the options list")
	fmt.Printf("  %-28s %s\n", "ctrl+y, alt+y", "yank killed text, cycle older kills")
	fmt.Printf("  %-28s %s\n", "ctrl+c", "quit")
}
