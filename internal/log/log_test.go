package log

import (
	"bytes"
	"context"
	"strings"
	"testing"
)

func TestPrintfQuiet(t *testing.T) {
	t.Parallel()
	var buf bytes.Buffer
	l := New(&buf, false, true)
	l.Printf("hello %s", "world")
	if buf.Len() != 0 {
		t.Errorf("quiet Printf wrote %q, want nothing", buf.String())
	}
}

func TestWarnfFormat(t *testing.T) {
	t.Parallel()
	var buf bytes.Buffer
	l := New(&buf, false, false)
	l.Warnf("skipping %s", "dir")
	if got, want := buf.String(), "WARNING: skipping dir\n"; got != want {
		t.Errorf("Warnf = %q, want %q", got, want)
	}
}

func TestErrorfNotQuieted(t *testing.T) {
	t.Parallel()
	var buf bytes.Buffer
	l := New(&buf, false, true)
	l.Errorf("in repo %s: boom", "a")
	if got, want := buf.String(), "ERROR: in repo a: boom\n"; got != want {
		t.Errorf("Errorf = %q, want %q", got, want)
	}
}

func TestCommandVerboseOnly(t *testing.T) {
	t.Parallel()
	var buf bytes.Buffer
	l := New(&buf, false, false)
	l.Command("git", "grep", "-n", "foo")
	if buf.Len() != 0 {
		t.Errorf("non-verbose Command wrote %q", buf.String())
	}

	l = New(&buf, true, false)
	l.Command("git", "grep", "-n", "foo")
	if got := buf.String(); !strings.Contains(got, "$ git grep -n foo") {
		t.Errorf("verbose Command = %q, want it to contain the command line", got)
	}
}

func TestFromContextFallback(t *testing.T) {
	t.Parallel()
	l := FromContext(context.Background())
	// Must not panic and must not write anywhere visible.
	l.Printf("ignored")
	l.Command("git", "status")
}

func TestFromContextRoundTrip(t *testing.T) {
	t.Parallel()
	var buf bytes.Buffer
	l := New(&buf, true, false)
	ctx := WithLogger(context.Background(), l)
	if got := FromContext(ctx); got != l {
		t.Error("FromContext did not return the attached logger")
	}
}
