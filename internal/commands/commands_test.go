package commands

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"os"
	"path/filepath"
	"reflect"
	"strings"
	"testing"

	"github.com/urfave/cli/v3"

	"github.com/hay-kot/answer/internal/core/answer"
	"github.com/hay-kot/answer/internal/printer"
)

// testApp runs commands against a Flags value without the main Before hook.
type testApp struct {
	t     *testing.T
	flags *Flags
	stdin *os.File
	out   bytes.Buffer
	log   bytes.Buffer
}

func newTestApp(t *testing.T, history bool) *testApp {
	t.Helper()
	a := &testApp{t: t, flags: newTestFlags(t, history)}
	a.flags.ConfigPath = filepath.Join(t.TempDir(), "config.yaml")
	return a
}

func (a *testApp) run(args ...string) error {
	a.t.Helper()
	a.out.Reset()
	a.log.Reset()

	app := &cli.Command{
		Name:           "answer",
		Writer:         &a.out,
		ErrWriter:      &a.log,
		ExitErrHandler: func(context.Context, *cli.Command, error) {},
	}

	set := NewSetCmd(a.flags)
	if a.stdin != nil {
		set.stdin = a.stdin
	}

	app = NewGetCmd(a.flags).Register(app)
	app = set.Register(app)
	app = NewListCmd(a.flags).Register(app)
	app = NewUndoCmd(a.flags).Register(app)
	app = NewDelCmd(a.flags).Register(app)
	app = NewHistoryCmd(a.flags).Register(app)
	app = NewExportCmd(a.flags).Register(app)
	app = NewConfigValidateCmd(a.flags).Register(app)

	ctx := printer.NewContext(context.Background(), printer.New(&a.log))
	return app.Run(ctx, append([]string{"answer"}, args...))
}

func (a *testApp) mustRun(args ...string) string {
	a.t.Helper()
	if err := a.run(args...); err != nil {
		a.t.Fatalf("answer %s: %v", strings.Join(args, " "), err)
	}
	return a.out.String()
}

func (a *testApp) open(name string) *answer.Store {
	a.t.Helper()
	s, err := a.flags.Open(context.Background(), name)
	if err != nil {
		a.t.Fatalf("Open(%q): %v", name, err)
	}
	return s
}

func exitCode(err error) int {
	var ec cli.ExitCoder
	if errors.As(err, &ec) {
		return ec.ExitCode()
	}
	return -1
}

func stdinFile(t *testing.T, content string) *os.File {
	t.Helper()
	path := filepath.Join(t.TempDir(), "stdin")
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("WriteFile: %v", err)
	}
	f, err := os.Open(path)
	if err != nil {
		t.Fatalf("Open: %v", err)
	}
	t.Cleanup(func() { _ = f.Close() })
	return f
}

func TestSetCmd(t *testing.T) {
	t.Run("value from args", func(t *testing.T) {
		a := newTestApp(t, false)
		a.mustRun("set", "greeting", "hello", "world")

		got, ok := a.open("greeting").Get()
		if !ok || got != "hello world" {
			t.Errorf("Get() = %v, %v; want hello world", got, ok)
		}
	})

	t.Run("json values keep their digits", func(t *testing.T) {
		a := newTestApp(t, false)
		a.mustRun("set", "id", "12345678901234567890")
		a.mustRun("set", "ver", "1.10")

		if got, _ := a.open("id").Get(); got != json.Number("12345678901234567890") {
			t.Errorf("id = %#v", got)
		}
		if got := strings.TrimSpace(a.mustRun("get", "ver")); got != "1.10" {
			t.Errorf("get ver = %q, want 1.10", got)
		}
	})

	t.Run("value from stdin", func(t *testing.T) {
		a := newTestApp(t, false)
		a.stdin = stdinFile(t, "[80, 443]\n")
		a.mustRun("set", "ports")

		got, _ := a.open("ports").Get()
		want := []any{json.Number("80"), json.Number("443")}
		if !reflect.DeepEqual(got, want) {
			t.Errorf("ports = %#v, want %#v", got, want)
		}
	})

	t.Run("missing name", func(t *testing.T) {
		a := newTestApp(t, false)
		if err := a.run("set"); err == nil {
			t.Error("expected error without a name")
		}
	})

	t.Run("invalid name", func(t *testing.T) {
		a := newTestApp(t, false)
		err := a.run("set", "../x", "v")
		if !errors.Is(err, answer.ErrInvalidName) {
			t.Errorf("expected ErrInvalidName, got %v", err)
		}
	})
}

func TestGetCmd(t *testing.T) {
	a := newTestApp(t, false)

	err := a.run("get", "lang")
	if code := exitCode(err); code != 1 {
		t.Fatalf("unset get: exit code %d (err %v), want 1", code, err)
	}

	a.mustRun("set", "lang", "en")
	if got := a.mustRun("get", "lang"); got != "en\n" {
		t.Errorf("get = %q, want %q", got, "en\n")
	}
}

func TestPrevCmd(t *testing.T) {
	a := newTestApp(t, false)
	for _, v := range []string{"a", "b", "c"} {
		a.mustRun("set", "lang", v)
	}

	tests := []struct {
		args []string
		want string
	}{
		{[]string{"prev", "lang"}, "c\n"},
		{[]string{"prev", "lang", "0"}, "c\n"},
		{[]string{"prev", "lang", "1"}, "b\n"},
		{[]string{"prev", "lang", "2"}, "a\n"},
	}
	for _, tt := range tests {
		if got := a.mustRun(tt.args...); got != tt.want {
			t.Errorf("answer %s = %q, want %q", strings.Join(tt.args, " "), got, tt.want)
		}
	}

	if code := exitCode(a.run("prev", "lang", "5")); code != 1 {
		t.Errorf("out of range: exit code %d, want 1", code)
	}
	if err := a.run("prev", "lang", "x"); err == nil || exitCode(err) == 1 {
		t.Errorf("non-numeric step: got %v, want parse error", err)
	}
}

func TestUndoRedoEraseCmds(t *testing.T) {
	a := newTestApp(t, false)
	a.mustRun("set", "lang", "en")
	a.mustRun("set", "lang", "fr")

	a.mustRun("undo", "lang")
	s := a.open("lang")
	if got, _ := s.Get(); got != "en" {
		t.Errorf("after undo: %v, want en", got)
	}
	if len(s.Rollback()) != 1 {
		t.Errorf("after undo: rollback %v, want [fr]", s.Rollback())
	}

	a.mustRun("redo", "lang")
	if got, _ := a.open("lang").Get(); got != "fr" {
		t.Errorf("after redo: %v, want fr", got)
	}

	a.mustRun("redo", "lang")
	if n := a.open("lang").Len(); n != 2 {
		t.Errorf("redo with empty rollback changed entries: %d", n)
	}

	a.mustRun("erase", "lang")
	s = a.open("lang")
	if got, _ := s.Get(); got != "en" {
		t.Errorf("after erase: %v, want en", got)
	}
	if len(s.Rollback()) != 0 {
		t.Errorf("erase must not fill rollback: %v", s.Rollback())
	}
}

func TestBackupCmd(t *testing.T) {
	a := newTestApp(t, false)
	a.mustRun("set", "lang", "en")
	a.mustRun("set", "lang", "fr")

	a.mustRun("backup", "lang")

	s := a.open("lang")
	if s.Len() != 2 {
		t.Errorf("entries = %v, want unchanged", s.List())
	}
	if got := s.Rollback(); len(got) != 2 || got[0] != "en" || got[1] != "fr" {
		t.Errorf("persisted rollback = %v, want [en fr]", got)
	}
}

func TestDelCmd(t *testing.T) {
	a := newTestApp(t, false)
	a.mustRun("set", "lang", "en")
	path := a.open("lang").Path()

	a.mustRun("del", "lang")

	if _, err := os.Stat(path); !os.IsNotExist(err) {
		t.Errorf("answer file still exists: %v", err)
	}
	if code := exitCode(a.run("get", "lang")); code != 1 {
		t.Errorf("get after del: exit code %d, want 1", code)
	}
}

func TestDestroyCmd(t *testing.T) {
	t.Run("keeps snapshots by default", func(t *testing.T) {
		a := newTestApp(t, true)
		a.mustRun("set", "lang", "en")

		a.mustRun("destroy", "lang")

		hist, err := a.flags.History("lang")
		if err != nil {
			t.Fatalf("History: %v", err)
		}
		snaps, err := hist.List(context.Background())
		if err != nil {
			t.Fatalf("List: %v", err)
		}
		if len(snaps) != 1 {
			t.Errorf("got %d snapshots, want 1", len(snaps))
		}
	})

	t.Run("history flag discards snapshots", func(t *testing.T) {
		a := newTestApp(t, true)
		a.mustRun("set", "lang", "en")
		a.mustRun("set", "lang", "fr")
		path := a.open("lang").Path()

		a.mustRun("destroy", "--history", "lang")

		if _, err := os.Stat(path); !os.IsNotExist(err) {
			t.Errorf("answer file still exists: %v", err)
		}
		hist, err := a.flags.History("lang")
		if err != nil {
			t.Fatalf("History: %v", err)
		}
		snaps, err := hist.List(context.Background())
		if err != nil {
			t.Fatalf("List: %v", err)
		}
		if len(snaps) != 0 {
			t.Errorf("got %d snapshots, want 0", len(snaps))
		}
	})
}

func TestListCmd_JSON(t *testing.T) {
	a := newTestApp(t, false)
	a.mustRun("set", "lang", "en")
	a.mustRun("set", "lang", "fr")
	a.mustRun("undo", "lang")

	var out struct {
		Entries  []any `json:"entries"`
		Rollback []any `json:"rollback"`
	}
	if err := json.Unmarshal([]byte(a.mustRun("list", "--format", "json", "--rollback", "lang")), &out); err != nil {
		t.Fatalf("decode list output: %v", err)
	}
	if len(out.Entries) != 1 || out.Entries[0] != "en" {
		t.Errorf("entries = %v, want [en]", out.Entries)
	}
	if len(out.Rollback) != 1 || out.Rollback[0] != "fr" {
		t.Errorf("rollback = %v, want [fr]", out.Rollback)
	}
}

func TestHistoryCmd(t *testing.T) {
	a := newTestApp(t, true)
	for _, v := range []string{"a", "b", "c"} {
		a.mustRun("set", "lang", v)
	}

	out := a.mustRun("history", "lang", "2")
	lines := strings.Split(strings.TrimSpace(out), "\n")
	if len(lines) != 3 {
		t.Fatalf("got %d lines, want header + 2:\n%s", len(lines), out)
	}
	if !strings.HasSuffix(strings.TrimSpace(lines[1]), "b") || !strings.HasSuffix(strings.TrimSpace(lines[2]), "c") {
		t.Errorf("unexpected rows:\n%s", out)
	}
}

func TestExportCmd(t *testing.T) {
	a := newTestApp(t, false)
	a.mustRun("set", "db-host", "it's local")

	if got := a.mustRun("export", "db-host", "missing"); got != "DB_HOST='it'\\''s local'\n" {
		t.Errorf("export = %q", got)
	}

	if err := a.run("export", "--strict", "missing"); err == nil {
		t.Error("expected error for unset answer with --strict")
	}
}

func TestConfigValidateCmd(t *testing.T) {
	t.Run("valid", func(t *testing.T) {
		a := newTestApp(t, false)

		var report validationReport
		if err := json.Unmarshal([]byte(a.mustRun("config", "validate", "--format", "json")), &report); err != nil {
			t.Fatalf("decode report: %v", err)
		}
		if !report.Valid || len(report.Errors) != 0 {
			t.Errorf("report = %+v, want valid", report)
		}
		if report.Cwd != a.flags.Config.Cwd {
			t.Errorf("cwd = %q, want %q", report.Cwd, a.flags.Config.Cwd)
		}
	})

	t.Run("invalid", func(t *testing.T) {
		a := newTestApp(t, false)
		a.flags.Config.History.Keep = 0

		err := a.run("config", "validate")
		if code := exitCode(err); code != 1 {
			t.Fatalf("exit code %d (err %v), want 1", code, err)
		}
		if !strings.Contains(a.log.String(), "history.keep") {
			t.Errorf("output does not name the failing field:\n%s", a.log.String())
		}
	})
}

func TestTruncate(t *testing.T) {
	tests := []struct {
		in   string
		n    int
		want string
	}{
		{"short", 10, "short"},
		{"exactly10!", 10, "exactly10!"},
		{"abcdefghijk", 10, "abcdefg..."},
		{"日本語のテキストです", 6, "日本語..."},
	}

	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			if got := truncate(tt.in, tt.n); got != tt.want {
				t.Errorf("truncate(%q, %d) = %q, want %q", tt.in, tt.n, got, tt.want)
			}
		})
	}
}

func TestSaveAnswer(t *testing.T) {
	a := newTestApp(t, false)
	s := a.open("ports")
	ctx := printer.NewContext(context.Background(), printer.New(&a.log))

	for _, raw := range []string{"[80, 443]", "en"} {
		if err := saveAnswer(ctx, s, raw); err != nil {
			t.Fatalf("saveAnswer(%q): %v", raw, err)
		}
	}

	list := a.open("ports").List()
	if len(list) != 2 {
		t.Fatalf("got %d entries, want 2", len(list))
	}
	if _, ok := list[0].([]any); !ok {
		t.Errorf("prompted JSON stored as %T, want []any", list[0])
	}
	if list[1] != "en" {
		t.Errorf("plain answer stored as %#v, want en", list[1])
	}
}
