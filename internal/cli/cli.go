package cli

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"log"
	"os"
	"path/filepath"
	"strings"
	"text/tabwriter"

	"github.com/amirbrooks/lebron/internal/engine"
	"github.com/amirbrooks/lebron/internal/store"
)

// Exit codes
const (
	ExitOK       = 0
	ExitUsage    = 2
	ExitIO       = 3
	ExitInternal = 10
)

type GlobalFlags struct {
	Root    string
	File    string
	Quiet   bool
	Verbose bool
}

// app carries the process streams so commands can be exercised in tests.
type app struct {
	gf      GlobalFlags
	cfg     store.Config
	exists  bool
	stdin   io.Reader
	stdout  io.Writer
	stderr  io.Writer
	warn    *log.Logger
	verbose *log.Logger
}

func Run(args []string) int {
	return run(args, os.Stdin, os.Stdout, os.Stderr)
}

func run(args []string, stdin io.Reader, stdout, stderr io.Writer) int {
	gf, rest, err := extractGlobalFlags(args)
	if err != nil {
		fmt.Fprintln(stderr, err.Error())
		return ExitUsage
	}

	cfg, exists, err := store.LoadConfig(gf.Root)
	if err != nil {
		fmt.Fprintln(stderr, "lebron: config:", err)
		return ExitInternal
	}
	if gf.File != "" {
		cfg.DataFile = gf.File
	}

	a := &app{
		gf:      gf,
		cfg:     cfg,
		exists:  exists,
		stdin:   stdin,
		stdout:  stdout,
		stderr:  stderr,
		warn:    log.New(stderr, "lebron: ", 0),
		verbose: log.New(io.Discard, "", 0),
	}
	if gf.Verbose {
		a.verbose = log.New(stderr, "lebron: ", log.Ltime)
	}

	if len(rest) == 0 {
		return a.cmdChat()
	}

	cmd := rest[0]
	cmdArgs := rest[1:]
	switch cmd {
	case "help", "--help", "-h":
		printHelp(stdout)
		return ExitOK
	case "chat", "repl":
		return a.cmdChat()
	case "exec", "do":
		return a.cmdExec(cmdArgs)
	case "config", "cfg":
		return a.cmdConfig(cmdArgs)
	case "export":
		return a.cmdExport(cmdArgs)
	default:
		fmt.Fprintf(stderr, "Unknown command: %s\n\n", cmd)
		printHelp(stderr)
		return ExitUsage
	}
}

func printHelp(w io.Writer) {
	fmt.Fprint(w, `lebron — text-command task manager

Usage:
  lebron [global flags] [command] [args]

Global flags:
  --root <path>    Store root (default: ~/.lebron or LEBRON_ROOT)
  --file <path>    Save file for this run (default: data_file from config)
  --quiet
  --verbose        Log applied commands to stderr

Commands:
  (none) | chat        Read commands from stdin until "bye"
  exec <command...>    Run one command, e.g. exec todo read book
  config show
  config set <key> <value>
  export [--format yaml|json]

Chat commands:
  list | find <keyword> | check <yyyy-MM-dd>
  todo <description>
  deadline <description> /by <yyyy-MM-dd[ HHmm]>
  event <description> /from <date> /to <date>
  mark <n> | unmark <n> | delete <n> | undo | hi | bye
`)
}

func extractGlobalFlags(args []string) (GlobalFlags, []string, error) {
	gf := GlobalFlags{}

	// Default root from env or home.
	if env := os.Getenv("LEBRON_ROOT"); env != "" {
		gf.Root = env
	} else {
		home, _ := os.UserHomeDir()
		if home != "" {
			gf.Root = filepath.Join(home, ".lebron")
		} else {
			gf.Root = ".lebron"
		}
	}

	out := make([]string, 0, len(args))
	for i := 0; i < len(args); i++ {
		a := args[i]
		// Global flags end at the first command word so that
		// "exec todo --root" keeps its text.
		if len(out) > 0 {
			out = append(out, a)
			continue
		}
		switch a {
		case "--root":
			if i+1 >= len(args) {
				return gf, nil, errors.New("--root requires a value")
			}
			gf.Root = args[i+1]
			i++
		case "--file":
			if i+1 >= len(args) {
				return gf, nil, errors.New("--file requires a value")
			}
			gf.File = args[i+1]
			i++
		case "--quiet":
			gf.Quiet = true
		case "--verbose":
			gf.Verbose = true
		default:
			out = append(out, a)
		}
	}
	if gf.Quiet && gf.Verbose {
		return gf, nil, errors.New("--quiet and --verbose are mutually exclusive")
	}
	gf.Root = store.ExpandHome(gf.Root)
	return gf, out, nil
}

// openEngine loads the save file. On a load failure the file is moved to
// <file>.bak and the session starts with an empty list.
func (a *app) openEngine() *engine.Engine {
	path := a.cfg.DataPath(a.gf.Root)
	st := store.Open(path)
	tasks, err := st.Load()
	if err != nil {
		a.warn.Printf("could not load tasks from %s: %v", path, err)
		if bak, berr := store.Backup(path); berr != nil {
			a.warn.Printf("could not back up %s: %v", path, berr)
		} else {
			a.warn.Printf("moved unreadable save file to %s", bak)
		}
		tasks = nil
	}
	a.verbose.Printf("loaded %d tasks from %s", len(tasks), path)
	return engine.New(st, tasks, engine.Options{Name: a.cfg.Name, Logger: a.verbose})
}

func (a *app) cmdChat() int {
	eng := a.openEngine()
	if !a.gf.Quiet {
		fmt.Fprintln(a.stdout, eng.Respond("hi"))
	}
	sc := bufio.NewScanner(a.stdin)
	for sc.Scan() {
		line := sc.Text()
		if strings.TrimSpace(line) == "" {
			continue
		}
		res, err := eng.Execute(line)
		fmt.Fprintln(a.stdout, engine.Reply(res, err))
		if res.Exit {
			return ExitOK
		}
	}
	if err := sc.Err(); err != nil {
		fmt.Fprintln(a.stderr, "lebron:", err)
		return ExitIO
	}
	return ExitOK
}

func (a *app) cmdExec(args []string) int {
	line := strings.TrimSpace(strings.Join(args, " "))
	if line == "" {
		fmt.Fprintln(a.stderr, "Usage: lebron exec <command...>")
		return ExitUsage
	}
	eng := a.openEngine()
	res, err := eng.Execute(line)
	if res.Message != "" && !a.gf.Quiet {
		fmt.Fprintln(a.stdout, res.Message)
	}
	if err != nil {
		fmt.Fprintln(a.stderr, engine.Reply(engine.Result{}, err))
		if errors.Is(err, store.ErrSave) {
			return ExitIO
		}
		return ExitUsage
	}
	return ExitOK
}

func (a *app) cmdConfig(args []string) int {
	if len(args) == 0 {
		fmt.Fprintln(a.stderr, "Usage: lebron config <show|set> ...")
		return ExitUsage
	}
	switch args[0] {
	case "show":
		return a.cmdConfigShow()
	case "set":
		return a.cmdConfigSet(args[1:])
	default:
		fmt.Fprintln(a.stderr, "Usage: lebron config <show|set> ...")
		return ExitUsage
	}
}

func (a *app) cmdConfigShow() int {
	cfgPath := filepath.Join(a.gf.Root, store.ConfigFile)
	w := tabwriter.NewWriter(a.stdout, 2, 4, 2, ' ', 0)
	fmt.Fprintln(w, "KEY\tVALUE")
	fmt.Fprintf(w, "root\t%s\n", a.gf.Root)
	if a.exists {
		fmt.Fprintf(w, "config_path\t%s\n", cfgPath)
	} else {
		fmt.Fprintf(w, "config_path\t%s (not found; defaults shown)\n", cfgPath)
	}
	fmt.Fprintf(w, "name\t%s\n", a.cfg.Name)
	fmt.Fprintf(w, "data_file\t%s\n", a.cfg.DataPath(a.gf.Root))
	fmt.Fprintf(w, "export_dir\t%s\n", a.cfg.ExportPath(a.gf.Root))
	_ = w.Flush()
	return ExitOK
}

func (a *app) cmdConfigSet(args []string) int {
	if len(args) < 2 {
		fmt.Fprintln(a.stderr, "Usage: lebron config set <key> <value>")
		return ExitUsage
	}
	key := strings.ToLower(strings.TrimSpace(args[0]))
	value := strings.TrimSpace(strings.Join(args[1:], " "))

	// Reload so a --file override is not written back.
	cfg, _, err := store.LoadConfig(a.gf.Root)
	if err != nil {
		fmt.Fprintln(a.stderr, "config set:", err)
		return ExitInternal
	}
	switch key {
	case "name":
		if value == "" {
			return a.configSetInvalid(key, value)
		}
		cfg.Name = value
	case "data_file":
		if value == "" || strings.HasSuffix(value, string(os.PathSeparator)) {
			return a.configSetInvalid(key, value)
		}
		cfg.DataFile = value
	case "export_dir":
		if value == "none" || value == "null" {
			value = ""
		}
		cfg.ExportDir = value
	default:
		fmt.Fprintln(a.stderr, "Unknown config key:", key)
		fmt.Fprintln(a.stderr, "Allowed keys: name, data_file, export_dir")
		return ExitUsage
	}
	if err := store.SaveConfig(a.gf.Root, cfg); err != nil {
		fmt.Fprintln(a.stderr, "config set:", err)
		return ExitInternal
	}
	if !a.gf.Quiet {
		fmt.Fprintf(a.stdout, "Updated %s\n", key)
	}
	return ExitOK
}

func (a *app) configSetInvalid(key, value string) int {
	fmt.Fprintf(a.stderr, "Invalid value for %s: %q\n", key, value)
	return ExitUsage
}
