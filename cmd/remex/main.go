package main

import (
	"context"
	"encoding/json"
	"errors"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"runtime/debug"
	"strings"
	"syscall"
	"time"

	"github.com/mattjoyce/remex/internal/config"
	"github.com/mattjoyce/remex/internal/inspect"
	"github.com/mattjoyce/remex/internal/journal"
	"github.com/mattjoyce/remex/internal/log"
	"github.com/mattjoyce/remex/internal/session"
	"github.com/mattjoyce/remex/internal/staging"
	"github.com/mattjoyce/remex/internal/storage"
	"github.com/mattjoyce/remex/internal/transport"
)

var (
	version   = "0.1.0-dev"
	gitCommit = "unknown"
	buildDate = "unknown"
)

// dialTransport is replaced in tests to reach an in-process executor.
var dialTransport = transport.Dial

func main() {
	os.Exit(runCLI(os.Args[1:]))
}

func runCLI(cliArgs []string) int {
	if len(cliArgs) < 1 {
		printUsage()
		return 1
	}

	cmd := cliArgs[0]
	args := cliArgs[1:]

	switch cmd {
	case "run":
		return runRun(args)
	case "history":
		return runHistory(args)
	case "config":
		return runConfigNoun(args)
	case "version", "--version":
		return runVersion(args)
	case "help", "--help", "-h":
		printUsage()
		return 0
	default:
		fmt.Fprintf(os.Stderr, "Unknown command: %s\n\n", cmd)
		printUsage()
		return 1
	}
}

func printUsage() {
	fmt.Print(`remex - run commands in isolated remote workspaces

Usage:
  remex <command> [flags]

Commands:
  run          Stage files, run a command remotely and fetch results
  history      Show recorded sessions and runs
  config check Validate configuration and integrity
  config lock  Record the config file hash
  version      Show version information

Run:
  remex run [--upload PATH[=ID]]... [--download PATH[=ID]]... [--keep] [--base NAME] -- COMMAND
  {ID} in COMMAND is replaced by the remote path of that transfer.

Use "remex <command> --help" for command flags.
`)
}

// transferSpec is one --upload or --download value.
type transferSpec struct {
	Path       string
	Identifier string
}

type transferFlags []transferSpec

func (f *transferFlags) String() string {
	parts := make([]string, 0, len(*f))
	for _, s := range *f {
		if s.Identifier == "" {
			parts = append(parts, s.Path)
			continue
		}
		parts = append(parts, s.Path+"="+s.Identifier)
	}
	return strings.Join(parts, ",")
}

func (f *transferFlags) Set(v string) error {
	path, id, _ := strings.Cut(v, "=")
	if strings.TrimSpace(path) == "" {
		return fmt.Errorf("empty path in %q", v)
	}
	*f = append(*f, transferSpec{Path: path, Identifier: id})
	return nil
}

func runRun(args []string) int {
	fs := flag.NewFlagSet("run", flag.ContinueOnError)
	configPath := fs.String("config", "", "Path to configuration file or directory")
	address := fs.String("address", "", "Executor address (overrides remote.address)")
	port := fs.Int("port", 0, "Executor port (overrides remote.port)")
	baseName := fs.String("base", "", "Workspace base name (overrides session.base_name)")
	keep := fs.Bool("keep", false, "Keep the remote workspace on exit")
	noJournal := fs.Bool("no-journal", false, "Do not record this session")
	logLevel := fs.String("log-level", "", "Log level (overrides log.level)")
	var uploads, downloads transferFlags
	fs.Var(&uploads, "upload", "Local file to upload before the command, PATH[=ID] (repeatable)")
	fs.Var(&downloads, "download", "Local file to fetch after the command, PATH[=ID] (repeatable)")

	if err := fs.Parse(args); err != nil {
		if errors.Is(err, flag.ErrHelp) {
			return 0
		}
		fmt.Fprintf(os.Stderr, "Flag error: %v\n", err)
		return 1
	}
	command := strings.TrimSpace(strings.Join(fs.Args(), " "))
	if command == "" {
		fmt.Fprintln(os.Stderr, "Usage: remex run [flags] -- COMMAND")
		return 1
	}

	cfg, err := config.LoadOrDefault(*configPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to load config: %v\n", err)
		return 1
	}
	if *address != "" {
		cfg.Remote.Address = *address
	}
	if *port != 0 {
		cfg.Remote.Port = *port
	}
	if *baseName != "" {
		cfg.Session.BaseName = *baseName
	}
	if *keep {
		cfg.Session.KeepOnExit = true
	}
	if *logLevel != "" {
		if err := config.ValidateLogLevel(*logLevel); err != nil {
			fmt.Fprintf(os.Stderr, "Flag error: --log-level %v\n", err)
			return 1
		}
		cfg.Log.Level = strings.ToLower(*logLevel)
	}

	logger := log.New(os.Stderr, cfg.Log.Level, cfg.Log.Format)
	log.Setup(cfg.Log.Level, cfg.Log.Format)

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	remoteStdout, remoteStderr := remoteOutput(os.Stdout, os.Stderr)
	opts := []session.Option{
		session.WithLogger(logger),
		session.WithOutput(remoteStdout, remoteStderr),
	}
	if cfg.Journal.Enabled && !*noJournal {
		db, err := storage.OpenSQLite(ctx, cfg.Journal.Path)
		if err != nil {
			logger.Warn("Journal unavailable, continuing without it", "path", cfg.Journal.Path, "error", err)
		} else {
			defer db.Close()
			opts = append(opts, session.WithJournal(journal.NewStore(db)))
		}
	}

	t, err := dialTransport(transport.Config{
		Target:          cfg.Target(),
		Service:         cfg.Remote.Service,
		MaxMessageBytes: cfg.Remote.MaxMessageBytes,
		RPCTimeout:      cfg.Remote.RPCTimeout,
		Compression:     cfg.Remote.Compression,
		OutputEncoding:  cfg.Remote.OutputEncoding,
		Keepalive:       cfg.Remote.Keepalive,
	}, logger.With("component", "transport"))
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to set up transport: %v\n", err)
		return 1
	}
	defer t.Close()

	exitCode := -1
	report, err := session.Do(ctx, t, session.Options{
		BaseName:   cfg.Session.BaseName,
		KeepOnExit: cfg.Session.KeepOnExit,
		Address:    cfg.Target(),
	}, func(ctx context.Context, e *staging.Executor) error {
		expanded, err := stageTransfers(e, uploads, downloads, command)
		if err != nil {
			return err
		}
		exitCode, err = e.Run(ctx, expanded)
		return err
	}, opts...)

	if report.Outcome == session.OutcomeKept {
		fmt.Fprintf(os.Stderr, "Workspace kept: %s\n", report.Workspace)
	}
	if err != nil {
		var ce *session.WorkspaceCreationError
		if errors.As(err, &ce) && ce.Unreachable() {
			fmt.Fprintf(os.Stderr, "Executor unreachable at %s: %v\n", cfg.Target(), err)
			return 1
		}
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return 1
	}
	return exitCode
}

// stageTransfers registers every transfer on e and returns command with each
// {ID} placeholder replaced by that transfer's remote path.
func stageTransfers(e *staging.Executor, uploads, downloads transferFlags, command string) (string, error) {
	for _, u := range uploads {
		if _, err := e.AddLocalFile(u.Path, u.Identifier); err != nil {
			return "", err
		}
	}
	for _, d := range downloads {
		if _, err := e.AddRemoteFile(d.Path, d.Identifier); err != nil {
			return "", err
		}
	}
	intents := e.Intents()
	if len(intents) == 0 {
		return command, nil
	}
	pairs := make([]string, 0, 2*len(intents))
	for _, in := range intents {
		pairs = append(pairs, "{"+in.Identifier+"}", in.RemotePath)
	}
	return strings.NewReplacer(pairs...).Replace(command), nil
}

func runHistory(args []string) int {
	fs := flag.NewFlagSet("history", flag.ContinueOnError)
	configPath := fs.String("config", "", "Path to configuration file or directory")
	limit := fs.Int("limit", journal.DefaultListLimit, "Maximum number of sessions to show")
	sessionID := fs.String("session", "", "Show a single session")
	jsonOut := fs.Bool("json", false, "Output history as JSON")
	if err := fs.Parse(args); err != nil {
		if errors.Is(err, flag.ErrHelp) {
			return 0
		}
		fmt.Fprintf(os.Stderr, "Flag error: %v\n", err)
		return 1
	}
	if fs.NArg() > 0 {
		fmt.Fprintln(os.Stderr, "Usage: remex history [--limit N] [--session ID] [--json]")
		return 1
	}

	cfg, err := config.LoadOrDefault(*configPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to load config: %v\n", err)
		return 1
	}
	if _, err := os.Stat(cfg.Journal.Path); err != nil {
		fmt.Fprintf(os.Stderr, "No journal at %s\n", cfg.Journal.Path)
		return 1
	}

	ctx := context.Background()
	db, err := storage.OpenSQLite(ctx, cfg.Journal.Path)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to open journal: %v\n", err)
		return 1
	}
	defer db.Close()
	store := journal.NewStore(db)

	var out string
	if *jsonOut {
		out, err = inspect.BuildJSONReport(ctx, store, *limit, *sessionID)
		out += "\n"
	} else {
		out, err = inspect.BuildReport(ctx, store, *limit, *sessionID, terminalTheme(os.Stdout))
	}
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to build history: %v\n", err)
		return 1
	}
	fmt.Print(out)
	return 0
}

type versionInfo struct {
	Version   string `json:"version"`
	Commit    string `json:"commit"`
	BuildTime string `json:"build_time"`
}

func runVersion(args []string) int {
	fs := flag.NewFlagSet("version", flag.ContinueOnError)
	jsonOut := fs.Bool("json", false, "Output version metadata as JSON")
	if err := fs.Parse(args); err != nil {
		fmt.Fprintf(os.Stderr, "Flag error: %v\n", err)
		return 1
	}
	if fs.NArg() > 0 {
		fmt.Fprintln(os.Stderr, "Usage: remex version [--json]")
		return 1
	}

	info := currentVersionInfo()

	if *jsonOut {
		data, err := json.MarshalIndent(info, "", "  ")
		if err != nil {
			fmt.Fprintf(os.Stderr, "Failed to render version JSON: %v\n", err)
			return 1
		}
		fmt.Println(string(data))
		return 0
	}

	fmt.Printf("remex %s\n", info.Version)
	fmt.Printf("commit: %s\n", info.Commit)
	fmt.Printf("built_at: %s\n", info.BuildTime)
	return 0
}

func currentVersionInfo() versionInfo {
	info := versionInfo{
		Version:   strings.TrimSpace(version),
		Commit:    "unknown",
		BuildTime: "unknown",
	}
	if info.Version == "" {
		info.Version = "0.0.0-dev"
	}

	commit := strings.TrimSpace(gitCommit)
	if commit == "" || commit == "unknown" {
		commit = strings.TrimSpace(readBuildSetting("vcs.revision"))
	}
	if commit != "" {
		if len(commit) > 12 {
			commit = commit[:12]
		}
		info.Commit = commit
	}

	built := strings.TrimSpace(buildDate)
	if built == "" || built == "unknown" {
		built = strings.TrimSpace(readBuildSetting("vcs.time"))
	}
	if t, err := time.Parse(time.RFC3339Nano, built); err == nil {
		info.BuildTime = t.UTC().Format(time.RFC3339)
	}
	return info
}

func readBuildSetting(key string) string {
	info, ok := debug.ReadBuildInfo()
	if !ok {
		return ""
	}
	for _, setting := range info.Settings {
		if setting.Key == key {
			return setting.Value
		}
	}
	return ""
}
