package cli

import (
	"encoding/json"
	"errors"
	"flag"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/oklog/ulid/v2"
	"gopkg.in/yaml.v3"

	"github.com/amirbrooks/lebron/internal/store"
	"github.com/amirbrooks/lebron/internal/task"
)

type exportTask struct {
	Index       int    `yaml:"index" json:"index"`
	Type        string `yaml:"type" json:"type"`
	Done        bool   `yaml:"done" json:"done"`
	Description string `yaml:"description" json:"description"`
	By          string `yaml:"by,omitempty" json:"by,omitempty"`
	From        string `yaml:"from,omitempty" json:"from,omitempty"`
	To          string `yaml:"to,omitempty" json:"to,omitempty"`
	Display     string `yaml:"display" json:"display"`
}

type exportPayload struct {
	ID         string       `yaml:"id" json:"id"`
	ExportedAt time.Time    `yaml:"exported_at" json:"exported_at"`
	Source     string       `yaml:"source" json:"source"`
	Tasks      []exportTask `yaml:"tasks" json:"tasks"`
}

func (a *app) cmdExport(args []string) int {
	fs := flag.NewFlagSet("export", flag.ContinueOnError)
	fs.SetOutput(a.stderr)
	format := fs.String("format", "yaml", "Snapshot format (yaml|json)")
	if err := fs.Parse(args); err != nil {
		return ExitUsage
	}
	ext := strings.ToLower(strings.TrimSpace(*format))
	if ext != "yaml" && ext != "json" {
		fmt.Fprintln(a.stderr, "export: invalid --format (use yaml|json)")
		return ExitUsage
	}

	source := a.cfg.DataPath(a.gf.Root)
	tasks, err := store.Open(source).Load()
	if err != nil {
		fmt.Fprintln(a.stderr, "export:", err)
		return ExitIO
	}
	payload := newExportPayload(source, tasks)

	var data []byte
	if ext == "json" {
		data, err = json.MarshalIndent(payload, "", "  ")
	} else {
		data, err = yaml.Marshal(payload)
	}
	if err != nil {
		fmt.Fprintln(a.stderr, "export:", err)
		return ExitInternal
	}
	path, err := writeExportFile(a.cfg.ExportPath(a.gf.Root), "tasks-"+strings.ToLower(payload.ID), ext, data)
	if err != nil {
		fmt.Fprintln(a.stderr, "export:", err)
		return ExitIO
	}
	if !a.gf.Quiet {
		fmt.Fprintf(a.stdout, "Wrote %d tasks to: %s\n", len(tasks), path)
	}
	return ExitOK
}

func newExportPayload(source string, tasks []*task.Task) exportPayload {
	out := exportPayload{
		ID:         ulid.Make().String(),
		ExportedAt: time.Now().UTC(),
		Source:     source,
		Tasks:      make([]exportTask, 0, len(tasks)),
	}
	for i, t := range tasks {
		et := exportTask{
			Index:       i + 1,
			Type:        string(t.Type),
			Done:        t.Done,
			Description: t.Description,
			Display:     t.Render(),
		}
		switch t.Type {
		case task.TypeDeadline:
			et.By = t.By.Original()
		case task.TypeEvent:
			et.From = t.From.Original()
			et.To = t.To.Original()
		}
		out.Tasks = append(out.Tasks, et)
	}
	return out
}

func writeExportFile(dir, base, ext string, data []byte) (string, error) {
	if strings.TrimSpace(dir) == "" {
		return "", errors.New("export directory is empty")
	}
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return "", err
	}
	path := filepath.Join(dir, fmt.Sprintf("%s.%s", base, ext))
	tmp := filepath.Join(dir, fmt.Sprintf(".tmp-%d", time.Now().UTC().UnixNano()))
	if err := os.WriteFile(tmp, data, 0o644); err != nil {
		_ = os.Remove(tmp)
		return "", err
	}
	if err := os.Rename(tmp, path); err != nil {
		_ = os.Remove(tmp)
		return "", err
	}
	return path, nil
}
