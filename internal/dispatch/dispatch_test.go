package dispatch

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/tim-timman/git-tools/internal/discover"
	"github.com/tim-timman/git-tools/internal/log"
)

func testCtx() context.Context {
	return log.WithLogger(context.Background(), log.New(&bytes.Buffer{}, false, false))
}

func mkRepos(t *testing.T, names ...string) []discover.Repo {
	t.Helper()
	root := t.TempDir()
	repos := make([]discover.Repo, len(names))
	for i, name := range names {
		path := filepath.Join(root, name)
		if err := os.MkdirAll(path, 0o755); err != nil {
			t.Fatal(err)
		}
		repos[i] = discover.Repo{Path: path, Rel: name, Depth: 1}
	}
	return repos
}

func TestRunWorkingDirPerRepo(t *testing.T) {
	t.Parallel()
	repos := mkRepos(t, "a", "b", "c")

	results := Run(testCtx(), repos, []string{"-c", "basename \"$PWD\""}, Options{GitPath: "sh"}, nil)
	if len(results) != 3 {
		t.Fatalf("got %d results, want 3", len(results))
	}
	for i, res := range results {
		if res.StartErr != nil {
			t.Fatalf("repo %s: start error %v", repos[i].Rel, res.StartErr)
		}
		if got := strings.TrimSpace(string(res.Stdout)); got != repos[i].Rel {
			t.Errorf("repo %s ran in %q", repos[i].Rel, got)
		}
	}
}

func TestRunFailureIsolation(t *testing.T) {
	t.Parallel()
	repos := mkRepos(t, "one", "two", "three")
	// An unusable working directory means the subprocess cannot start.
	repos[1].Path = filepath.Join(repos[1].Path, "gone")

	results := Run(testCtx(), repos, []string{"-c", "echo ok"}, Options{GitPath: "sh"}, nil)
	if len(results) != 3 {
		t.Fatalf("got %d results, want 3", len(results))
	}
	if results[0].StartErr != nil || results[2].StartErr != nil {
		t.Errorf("healthy repos reported start errors: %v, %v", results[0].StartErr, results[2].StartErr)
	}
	if results[1].StartErr == nil {
		t.Error("repo two should have a start error")
	}
}

func TestRunNonZeroExitIsNotFailure(t *testing.T) {
	t.Parallel()
	repos := mkRepos(t, "a", "b")

	results := Run(testCtx(), repos, []string{"-c", "echo found; exit 1"}, Options{GitPath: "sh"}, nil)
	for _, res := range results {
		if res.StartErr != nil {
			t.Fatalf("start error: %v", res.StartErr)
		}
		if res.ExitCode != 1 {
			t.Errorf("exit code = %d, want 1", res.ExitCode)
		}
		if got := string(res.Stdout); got != "found\n" {
			t.Errorf("stdout = %q, want %q", got, "found\n")
		}
	}
}

func TestRunEmitOrderUnderParallelism(t *testing.T) {
	t.Parallel()
	repos := mkRepos(t, "a", "b", "c", "d")
	// Earlier repos sleep longer, so completion order is reversed.
	script := `case "$(basename "$PWD")" in a) sleep 0.3;; b) sleep 0.2;; c) sleep 0.1;; esac; basename "$PWD"`

	var emitted []string
	Run(testCtx(), repos, []string{"-c", script}, Options{GitPath: "sh", Jobs: 4}, func(res Result) {
		emitted = append(emitted, res.Repo.Rel)
	})
	if got, want := strings.Join(emitted, ","), "a,b,c,d"; got != want {
		t.Errorf("emit order = %s, want %s", got, want)
	}
}

func TestRunSequentialStreams(t *testing.T) {
	t.Parallel()
	repos := mkRepos(t, "a", "b")
	var emitted []string
	results := Run(testCtx(), repos, []string{"-c", "basename \"$PWD\""}, Options{GitPath: "sh"}, func(res Result) {
		emitted = append(emitted, strings.TrimSpace(string(res.Stdout)))
	})
	if len(results) != 2 || len(emitted) != 2 {
		t.Fatalf("results = %d, emitted = %d, want 2 and 2", len(results), len(emitted))
	}
	if emitted[0] != "a" || emitted[1] != "b" {
		t.Errorf("emitted = %v, want [a b]", emitted)
	}
}
