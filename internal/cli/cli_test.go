package cli

import (
	"bytes"
	"context"
	"io"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/charmbracelet/log"

	fserrors "github.com/matzehuels/funcstructs/pkg/errors"
	"github.com/matzehuels/funcstructs/pkg/pipeline"
)

// isolate points the config and cache directories at a temp dir.
func isolate(t *testing.T) string {
	t.Helper()
	dir := t.TempDir()
	t.Setenv("XDG_CONFIG_HOME", filepath.Join(dir, "config"))
	t.Setenv("XDG_CACHE_HOME", filepath.Join(dir, "cache"))
	return dir
}

// execute runs the root command with args and returns stdout.
func execute(t *testing.T, args ...string) (string, error) {
	t.Helper()
	prev := statusOut
	statusOut = io.Discard
	t.Cleanup(func() { statusOut = prev })

	c := New(io.Discard, log.InfoLevel)
	root := c.RootCommand()
	var out bytes.Buffer
	root.SetOut(&out)
	root.SetErr(io.Discard)
	root.SetArgs(args)
	err := root.ExecuteContext(context.Background())
	return out.String(), err
}

func TestRootCommandRegistersCommands(t *testing.T) {
	root := New(io.Discard, LogInfo).RootCommand()
	want := []string{"trees", "partitions", "count", "census", "check", "render", "browse", "serve", "cache", "completion"}
	for _, name := range want {
		cmd, _, err := root.Find([]string{name})
		if err != nil || cmd.Name() != name {
			t.Errorf("command %q not registered", name)
		}
	}
}

func TestTreesCommand(t *testing.T) {
	isolate(t)
	out, err := execute(t, "trees", "4")
	if err != nil {
		t.Fatalf("trees 4: %v", err)
	}
	want := "[1 2 3 4]\n[1 2 3 3]\n[1 2 3 2]\n[1 2 2 2]\n"
	if out != want {
		t.Errorf("trees 4 =\n%s\nwant\n%s", out, want)
	}
}

func TestTreesCommandLimitAndFormat(t *testing.T) {
	isolate(t)
	out, err := execute(t, "trees", "5", "--limit", "2", "--format", "brackets")
	if err != nil {
		t.Fatalf("trees 5: %v", err)
	}
	lines := strings.Split(strings.TrimSpace(out), "\n")
	if len(lines) != 2 {
		t.Fatalf("got %d lines, want 2: %q", len(lines), out)
	}
	if lines[0] != "[[[[[]]]]]" {
		t.Errorf("first tree = %q, want the path", lines[0])
	}
}

func TestTreesCommandOutputFile(t *testing.T) {
	dir := isolate(t)
	path := filepath.Join(dir, "trees.jsonl")
	if _, err := execute(t, "trees", "6", "--format", "json", "-o", path); err != nil {
		t.Fatalf("trees 6: %v", err)
	}
	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatal(err)
	}
	if got := strings.Count(string(data), "\n"); got != 20 {
		t.Errorf("wrote %d records, want 20", got)
	}
	if !strings.Contains(string(data), `"kind":"tree"`) {
		t.Errorf("records missing kind: %s", data)
	}
}

func TestPartitionsCommand(t *testing.T) {
	isolate(t)
	out, err := execute(t, "partitions", "7", "3")
	if err != nil {
		t.Fatalf("partitions 7 3: %v", err)
	}
	want := "[3 2 2]\n[3 3 1]\n[4 2 1]\n[5 1 1]\n"
	if out != want {
		t.Errorf("partitions 7 3 =\n%s\nwant\n%s", out, want)
	}
}

func TestPartitionsCommandRejectsTreeFormats(t *testing.T) {
	isolate(t)
	if _, err := execute(t, "partitions", "7", "3", "--format", "parents"); err == nil {
		t.Error("expected error for parents format on partitions")
	}
}

func TestEnumerateBadArgument(t *testing.T) {
	isolate(t)
	_, err := execute(t, "trees", "four")
	if !fserrors.Is(err, fserrors.ErrCodeInvalidArguments) {
		t.Errorf("err = %v, want INVALID_ARGUMENTS", err)
	}
	_, err = execute(t, "trees", "0")
	if !fserrors.Is(err, fserrors.ErrCodeInvalidSize) {
		t.Errorf("err = %v, want INVALID_SIZE", err)
	}
}

func TestConfigOutputDefaults(t *testing.T) {
	dir := isolate(t)
	cfgPath := filepath.Join(dir, "funcstructs.toml")
	cfg := "[output]\nformat = \"json\"\nlimit = 3\n"
	if err := os.WriteFile(cfgPath, []byte(cfg), 0o644); err != nil {
		t.Fatal(err)
	}

	out, err := execute(t, "--config", cfgPath, "trees", "6")
	if err != nil {
		t.Fatalf("trees 6: %v", err)
	}
	lines := strings.Split(strings.TrimSpace(out), "\n")
	if len(lines) != 3 || !strings.HasPrefix(lines[0], "{") {
		t.Errorf("config defaults not applied: %q", out)
	}

	// Flags win over the file.
	out, err = execute(t, "--config", cfgPath, "trees", "3", "--format", "text", "--limit", "0")
	if err != nil {
		t.Fatalf("trees 3: %v", err)
	}
	if out != "[1 2 3]\n[1 2 2]\n" {
		t.Errorf("flags did not override config: %q", out)
	}
}

func TestConfigInvalid(t *testing.T) {
	dir := isolate(t)
	cfgPath := filepath.Join(dir, "bad.toml")
	if err := os.WriteFile(cfgPath, []byte("[output]\nformat = \"xml\"\n"), 0o644); err != nil {
		t.Fatal(err)
	}
	_, err := execute(t, "--config", cfgPath, "trees", "3")
	if !fserrors.Is(err, fserrors.ErrCodeInvalidConfig) {
		t.Errorf("err = %v, want INVALID_CONFIG", err)
	}
}

func TestCountFormulaOnly(t *testing.T) {
	isolate(t)
	tests := []struct {
		args []string
		want string
	}{
		{[]string{"count", "trees", "10", "--formula-only"}, "719\n"},
		{[]string{"count", "partitions", "20", "5", "--formula-only"}, "84\n"},
		{[]string{"count", "TREES", "30", "--formula-only"}, "354426847597\n"},
	}
	for _, tt := range tests {
		out, err := execute(t, tt.args...)
		if err != nil {
			t.Errorf("%v: %v", tt.args, err)
			continue
		}
		if out != tt.want {
			t.Errorf("%v = %q, want %q", tt.args, out, tt.want)
		}
	}
}

func TestCountOptions(t *testing.T) {
	opts, err := countOptions([]string{"partitions", "10", "4"})
	if err != nil {
		t.Fatal(err)
	}
	if opts.Kind != pipeline.KindPartitions || opts.N != 10 || opts.L != 4 {
		t.Errorf("opts = %+v", opts)
	}

	bad := [][]string{
		{"graphs", "4"},
		{"trees", "4", "2"},
		{"partitions", "4"},
		{"partitions", "x", "2"},
	}
	for _, args := range bad {
		if _, err := countOptions(args); err == nil {
			t.Errorf("countOptions(%v) succeeded, want error", args)
		}
	}
}

func TestTreeAt(t *testing.T) {
	tree, err := treeAt(4, 3)
	if err != nil {
		t.Fatal(err)
	}
	if tree.String() != "[1 2 3 2]" {
		t.Errorf("treeAt(4, 3) = %s, want [1 2 3 2]", tree)
	}

	if _, err := treeAt(4, 5); !fserrors.Is(err, fserrors.ErrCodeNotFound) {
		t.Errorf("treeAt(4, 5) err = %v, want NOT_FOUND", err)
	}
	if _, err := treeAt(4, 0); !fserrors.Is(err, fserrors.ErrCodeInvalidArguments) {
		t.Errorf("treeAt(4, 0) err = %v, want INVALID_ARGUMENTS", err)
	}
}

func TestParseInts(t *testing.T) {
	for _, s := range []string{"1,2,3,2", "[1 2 3 2]", " 1, 2, 3, 2 "} {
		got, err := parseInts(s)
		if err != nil {
			t.Errorf("parseInts(%q): %v", s, err)
			continue
		}
		if len(got) != 4 || got[2] != 3 {
			t.Errorf("parseInts(%q) = %v", s, got)
		}
	}
	if _, err := parseInts("1,a"); err == nil {
		t.Error("expected error for non-numeric level")
	}
}

func TestRenderDOTToStdout(t *testing.T) {
	isolate(t)
	out, err := execute(t, "render", "--levels", "1,2,2,3", "--format", "dot", "-o", "-")
	if err != nil {
		t.Fatalf("render: %v", err)
	}
	if !strings.HasPrefix(out, "digraph RootedTree {") {
		t.Errorf("output is not DOT: %q", out)
	}
	// [1 2 2 3] is canonicalized to [1 2 3 2]: node 2 hangs below node 1.
	if !strings.Contains(out, "n1 -> n2;") || !strings.Contains(out, "n0 -> n3;") {
		t.Errorf("unexpected edges:\n%s", out)
	}
}

func TestRenderFromParents(t *testing.T) {
	isolate(t)
	// Root 0 with children 1 and 3; node 2 below node 1.
	out, err := execute(t, "render", "--parents", "0,0,1,0", "--format", "dot", "-o", "-")
	if err != nil {
		t.Fatalf("render: %v", err)
	}
	if !strings.Contains(out, "n1 -> n2;") || !strings.Contains(out, "n0 -> n3;") {
		t.Errorf("unexpected edges:\n%s", out)
	}

	if _, err := execute(t, "render", "--parents", "0,2,1"); !fserrors.Is(err, fserrors.ErrCodeInvalidArguments) {
		t.Errorf("err = %v, want INVALID_ARGUMENTS", err)
	}
}

func TestRenderInvalid(t *testing.T) {
	isolate(t)
	if _, err := execute(t, "render", "4", "--format", "png"); !fserrors.Is(err, fserrors.ErrCodeInvalidFormat) {
		t.Errorf("err = %v, want INVALID_FORMAT", err)
	}
	if _, err := execute(t, "render"); !fserrors.Is(err, fserrors.ErrCodeInvalidArguments) {
		t.Errorf("err = %v, want INVALID_ARGUMENTS", err)
	}
	if _, err := execute(t, "render", "--levels", "1,3"); !fserrors.Is(err, fserrors.ErrCodeInvalidArguments) {
		t.Errorf("err = %v, want INVALID_ARGUMENTS", err)
	}
}

func TestCachePathCommand(t *testing.T) {
	dir := isolate(t)
	out, err := execute(t, "cache", "path")
	if err != nil {
		t.Fatal(err)
	}
	want := filepath.Join(dir, "cache", appName) + "\n"
	if out != want {
		t.Errorf("cache path = %q, want %q", out, want)
	}
}

func TestNewCacheNoCache(t *testing.T) {
	isolate(t)
	c := New(io.Discard, LogInfo)
	c.noCache = true
	store, err := c.newCache(context.Background())
	if err != nil {
		t.Fatal(err)
	}
	defer store.Close()
	if _, hit, _ := store.Get(context.Background(), "k"); hit {
		t.Error("null cache reported a hit")
	}
}

func TestCensusTable(t *testing.T) {
	c := &pipeline.Census{
		Kind: pipeline.KindPartitions,
		Max:  2,
		Rows: []pipeline.CensusRow{
			{N: 1, L: 1, Count: 1, Formula: 1},
			{N: 2, L: 1, Count: 1, Formula: 1},
			{N: 2, L: 2, Count: 2, Formula: 1},
		},
	}
	out := censusTable(c)
	for _, s := range []string{"formula", iconSuccess, iconError} {
		if !strings.Contains(out, s) {
			t.Errorf("table missing %q:\n%s", s, out)
		}
	}
}

func TestHealthURL(t *testing.T) {
	if got := healthURL(":8080"); got != "http://localhost:8080/healthz" {
		t.Errorf("healthURL(:8080) = %q", got)
	}
	if got := healthURL("0.0.0.0:9000"); got != "http://0.0.0.0:9000/healthz" {
		t.Errorf("healthURL(0.0.0.0:9000) = %q", got)
	}
}

func TestCheckCommand(t *testing.T) {
	dir := isolate(t)
	path := filepath.Join(dir, "parts.jsonl")
	if _, err := execute(t, "partitions", "12", "4", "--format", "json", "-o", path); err != nil {
		t.Fatalf("partitions: %v", err)
	}
	if _, err := execute(t, "check", path); err != nil {
		t.Errorf("check of a fresh listing failed: %v", err)
	}

	bad := filepath.Join(dir, "bad.jsonl")
	if err := os.WriteFile(bad, []byte(`{"kind":"partition","index":1,"seq":[3,1]}`+"\n"), 0o644); err != nil {
		t.Fatal(err)
	}
	if _, err := execute(t, "check", bad); !fserrors.Is(err, fserrors.ErrCodeInvalidInput) {
		t.Errorf("err = %v, want INVALID_INPUT", err)
	}
}

func TestCompletionCommand(t *testing.T) {
	isolate(t)
	for _, shell := range []string{"bash", "zsh", "fish", "powershell"} {
		out, err := execute(t, "completion", shell)
		if err != nil {
			t.Fatalf("completion %s: %v", shell, err)
		}
		if !strings.Contains(out, "funcstructs") {
			t.Errorf("completion %s does not mention the program", shell)
		}
	}
	if _, err := execute(t, "completion", "tcsh"); err == nil {
		t.Error("completion tcsh should fail")
	}
}
