package cli

import (
	"bytes"
	"encoding/json"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func runCLI(t *testing.T, args []string) (stdout []byte, stderr []byte, err error) {
	t.Helper()
	return runCLIWithInput(t, args, "")
}

func runCLIWithInput(t *testing.T, args []string, stdin string) (stdout []byte, stderr []byte, err error) {
	t.Helper()
	cmd := NewRootCmd()
	var outBuf, errBuf bytes.Buffer
	cmd.SetOut(&outBuf)
	cmd.SetErr(&errBuf)
	cmd.SetIn(strings.NewReader(stdin))
	cmd.SetArgs(args)
	e := cmd.Execute()
	return outBuf.Bytes(), errBuf.Bytes(), e
}

// isolate points config and state at temp dirs so tests never touch ~/.console.
func isolate(t *testing.T) (configPath, dir string) {
	t.Helper()
	root := t.TempDir()
	configPath = filepath.Join(root, "config.yaml")
	dir = filepath.Join(root, "state")
	t.Setenv("CONSOLE_CONFIG", configPath)
	t.Setenv("CONSOLE_DIR", "")
	t.Setenv("CONSOLE_FORMAT", "")
	t.Setenv("CONSOLE_STORE__BACKEND", "")
	return configPath, dir
}

func mustData(t *testing.T, args ...string) map[string]any {
	t.Helper()
	stdout, stderr, err := runCLI(t, args)
	if err != nil {
		t.Fatalf("console %v failed: %v\nstderr:\n%s", args, err, stderr)
	}
	var env map[string]any
	if err := json.Unmarshal(stdout, &env); err != nil {
		t.Fatalf("unmarshal envelope: %v\nstdout:\n%s", err, stdout)
	}
	data, ok := env["data"].(map[string]any)
	if !ok {
		t.Fatalf("expected data object; got %#v", env["data"])
	}
	return data
}

func TestPrefs_SetShowReset_SQLite(t *testing.T) {
	_, dir := isolate(t)

	d := mustData(t, "--dir", dir, "prefs", "show")
	if d["present"] != false || d["effective"] != "expanded" || d["backend"] != "sqlite" {
		t.Fatalf("fresh store: %#v", d)
	}

	mustData(t, "--dir", dir, "prefs", "set", "collapsed")
	d = mustData(t, "--dir", dir, "prefs", "show")
	if d["value"] != "collapsed" || d["effective"] != "collapsed" || d["recognized"] != true {
		t.Fatalf("after set: %#v", d)
	}
	if _, err := os.Stat(filepath.Join(dir, "prefs.sqlite")); err != nil {
		t.Fatalf("expected sqlite file: %v", err)
	}

	mustData(t, "--dir", dir, "prefs", "reset")
	d = mustData(t, "--dir", dir, "prefs", "show")
	if d["present"] != false {
		t.Fatalf("after reset: %#v", d)
	}
}

func TestPrefs_JSONBackendFromEnv(t *testing.T) {
	_, dir := isolate(t)
	t.Setenv("CONSOLE_STORE__BACKEND", "json")

	mustData(t, "--dir", dir, "prefs", "set", "expanded")
	if _, err := os.Stat(filepath.Join(dir, "prefs.json")); err != nil {
		t.Fatalf("expected prefs.json: %v", err)
	}
	d := mustData(t, "--dir", dir, "prefs", "show")
	if d["backend"] != "json" || d["value"] != "expanded" {
		t.Fatalf("show: %#v", d)
	}
}

func TestPrefs_SetRejectsUnknownValue(t *testing.T) {
	_, dir := isolate(t)

	_, stderr, err := runCLI(t, []string{"--dir", dir, "prefs", "set", "Collapsed"})
	var iv invalidValueError
	if !errors.As(err, &iv) {
		t.Fatalf("expected invalidValueError; got %v", err)
	}
	if !strings.Contains(string(stderr), "collapsed|expanded") {
		t.Fatalf("stderr=%q", stderr)
	}
}

func TestLayout_LoadsPersistedPreference(t *testing.T) {
	_, dir := isolate(t)
	mustData(t, "--dir", dir, "prefs", "set", "collapsed")

	d := mustData(t, "--dir", dir, "layout", "--width", "1200")
	snap := d["snapshot"].(map[string]any)
	if snap["state"] != "desktop/collapsed" {
		t.Fatalf("state=%v", snap["state"])
	}
	content := snap["content"].(map[string]any)
	if content["margin"] != float64(60) || content["width"] != float64(1140) {
		t.Fatalf("content=%#v", content)
	}

	// Below the breakpoint the desktop preference is not consulted.
	d = mustData(t, "--dir", dir, "layout", "--width", "767.98")
	snap = d["snapshot"].(map[string]any)
	if snap["state"] != "mobile/hidden" {
		t.Fatalf("state=%v", snap["state"])
	}
}

func TestLayout_TogglePersistsOnDesktop(t *testing.T) {
	_, dir := isolate(t)

	d := mustData(t, "--dir", dir, "layout", "--cols", "96", "--toggle")
	if d["width"] != float64(768) {
		t.Fatalf("width=%v", d["width"])
	}
	if got := d["toggled"].(map[string]any)["state"]; got != "desktop/collapsed" {
		t.Fatalf("toggled state=%v", got)
	}
	p := mustData(t, "--dir", dir, "prefs", "show")
	if p["value"] != "collapsed" {
		t.Fatalf("toggle did not persist: %#v", p)
	}
}

func TestLayout_NoPersistLeavesStoreUntouched(t *testing.T) {
	_, dir := isolate(t)

	mustData(t, "--dir", dir, "--no-persist", "layout", "--width", "1200", "--toggle")
	p := mustData(t, "--dir", dir, "prefs", "show")
	if p["present"] != false {
		t.Fatalf("--no-persist wrote to disk: %#v", p)
	}
}

func TestLayout_FlagValidation(t *testing.T) {
	_, dir := isolate(t)

	for _, args := range [][]string{
		{"--dir", dir, "layout"},
		{"--dir", dir, "layout", "--width", "10", "--cols", "2"},
		{"--dir", dir, "layout", "--width", "-1"},
	} {
		if _, _, err := runCLI(t, args); err == nil {
			t.Fatalf("expected error for %v", args)
		}
	}
}

func TestSimulate_FromStdin(t *testing.T) {
	_, dir := isolate(t)

	script := `
persisted: collapsed
steps:
  - init: 1200
  - resize: 600
  - toggle-mobile
  - navigate
  - advance: 100ms
`
	stdout, stderr, err := runCLIWithInput(t, []string{"--dir", dir, "simulate", "-"}, script)
	if err != nil {
		t.Fatalf("simulate: %v\nstderr:\n%s", err, stderr)
	}
	var env struct {
		Data []struct {
			State string `json:"state"`
			Fired int    `json:"fired"`
		} `json:"data"`
		Meta map[string]any `json:"meta"`
	}
	if err := json.Unmarshal(stdout, &env); err != nil {
		t.Fatalf("unmarshal: %v\n%s", err, stdout)
	}
	want := []string{"desktop/collapsed", "mobile/hidden", "mobile/shown", "mobile/shown", "mobile/hidden"}
	if len(env.Data) != len(want) {
		t.Fatalf("steps=%d", len(env.Data))
	}
	for i, w := range want {
		if env.Data[i].State != w {
			t.Fatalf("step %d state=%s; want %s", i+1, env.Data[i].State, w)
		}
	}
	if env.Data[4].Fired != 1 {
		t.Fatalf("expected deferred close to fire")
	}
	if env.Meta["persisted"] != "collapsed" {
		t.Fatalf("meta=%#v", env.Meta)
	}

	// The scratch store leaves the configured one alone.
	p := mustData(t, "--dir", dir, "prefs", "show")
	if p["present"] != false {
		t.Fatalf("simulate touched the configured store: %#v", p)
	}
}

func TestSimulate_BadScript(t *testing.T) {
	isolate(t)

	_, stderr, err := runCLIWithInput(t, []string{"--no-persist", "simulate", "-"}, "steps:\n  - resize: 500\n")
	if err == nil {
		t.Fatalf("expected error")
	}
	if !strings.Contains(string(stderr), "must start with init") {
		t.Fatalf("stderr=%q", stderr)
	}
}

func TestConfig_InitShowAndEnvOverride(t *testing.T) {
	configPath, dir := isolate(t)

	d := mustData(t, "--dir", dir, "config", "init")
	if d["path"] != configPath {
		t.Fatalf("path=%v", d["path"])
	}
	if _, _, err := runCLI(t, []string{"config", "init"}); err == nil {
		t.Fatalf("expected refusal to overwrite without --force")
	}
	mustData(t, "config", "init", "--force")

	t.Setenv("CONSOLE_NAV_CLOSE_DELAY", "250ms")
	d = mustData(t, "config", "show")
	if d["navCloseDelay"] != "250ms" {
		t.Fatalf("env override ignored: %#v", d)
	}
	sb := d["sidebar"].(map[string]any)
	if sb["width"] != float64(280) || sb["collapsedWidth"] != float64(60) {
		t.Fatalf("sidebar=%#v", sb)
	}
}

func TestRoot_InvalidConfigIsReported(t *testing.T) {
	configPath, _ := isolate(t)
	if err := os.WriteFile(configPath, []byte("sidebar:\n  width: 40\n  collapsed_width: 60\n"), 0o644); err != nil {
		t.Fatal(err)
	}
	_, stderr, err := runCLI(t, []string{"--no-persist", "config", "show"})
	if err == nil {
		t.Fatalf("expected validation error")
	}
	if !strings.Contains(string(stderr), "collapsed_width") {
		t.Fatalf("stderr=%q", stderr)
	}
}

func TestRoot_EDNOutput(t *testing.T) {
	isolate(t)

	stdout, stderr, err := runCLI(t, []string{"--no-persist", "--format", "edn", "layout", "--width", "500"})
	if err != nil {
		t.Fatalf("layout: %v\n%s", err, stderr)
	}
	if !strings.HasPrefix(string(stdout), "{:data {") || !strings.Contains(string(stdout), `:state "mobile/hidden"`) {
		t.Fatalf("stdout=%s", stdout)
	}

	if _, _, err := runCLI(t, []string{"--format", "xml", "config", "show"}); err == nil {
		t.Fatalf("expected unknown format error")
	}
}

func TestConfigInit_ForceRepairsBrokenConfig(t *testing.T) {
	configPath, dir := isolate(t)

	for name, body := range map[string]string{
		"invalid values": "sidebar:\n  width: 40\n  collapsed_width: 60\n",
		"invalid yaml":   "sidebar: [unterminated\n",
	} {
		if err := os.WriteFile(configPath, []byte(body), 0o644); err != nil {
			t.Fatal(err)
		}
		if _, _, err := runCLI(t, []string{"config", "show"}); err == nil {
			t.Fatalf("%s: expected config show to fail", name)
		}

		d := mustData(t, "--dir", dir, "config", "init", "--force")
		if d["path"] != configPath {
			t.Fatalf("%s: path=%v", name, d["path"])
		}
		d = mustData(t, "config", "show")
		if d["stateDir"] != dir {
			t.Fatalf("%s: rewritten config not loaded: %#v", name, d)
		}
	}
}
