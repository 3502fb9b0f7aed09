package gitlog

import (
	"context"
	"errors"
	"os"
	"os/exec"
	"path/filepath"
	"testing"
	"time"

	pterrors "github.com/pagertrace/pagertrace/internal/errors"
)

func TestParseLogLine(t *testing.T) {
	line := "a1b2c3d4e5f6|Jane Dev|jane@example.com|2025-10-10T09:00:00+00:00|fix worker allocation"

	change, ok := parseLogLine(line)
	if !ok {
		t.Fatal("expected line to parse")
	}
	if change.ID != "a1b2c3d4e5f6" {
		t.Errorf("ID = %q", change.ID)
	}
	if change.Author != "Jane Dev" {
		t.Errorf("Author = %q", change.Author)
	}
	if change.AuthorEmail != "jane@example.com" {
		t.Errorf("AuthorEmail = %q", change.AuthorEmail)
	}
	want := time.Date(2025, 10, 10, 9, 0, 0, 0, time.UTC)
	if !change.Timestamp.Equal(want) {
		t.Errorf("Timestamp = %v, want %v", change.Timestamp, want)
	}
	if change.Message != "fix worker allocation" {
		t.Errorf("Message = %q", change.Message)
	}
}

func TestParseLogLineMessageWithPipes(t *testing.T) {
	line := "abc123|Jane Dev|jane@example.com|2025-10-10T09:00:00Z|refactor: split a|b|c handling"

	change, ok := parseLogLine(line)
	if !ok {
		t.Fatal("expected line to parse")
	}
	if change.Message != "refactor: split a|b|c handling" {
		t.Errorf("Message = %q", change.Message)
	}
}

func TestParseLogLineMalformed(t *testing.T) {
	for _, line := range []string{
		"",
		"only|three|fields",
		"abc|Jane|jane@example.com|not-a-date|message",
	} {
		if _, ok := parseLogLine(line); ok {
			t.Errorf("expected %q to be rejected", line)
		}
	}
}

func TestParseLogPreservesOrderAndSkipsJunk(t *testing.T) {
	output := "abc|A|a@x.com|2025-10-10T10:00:00Z|newest\n" +
		"garbage line\n" +
		"def|B|b@x.com|2025-10-10T09:00:00Z|older\n"

	changes := parseLog(output, nil)
	if len(changes) != 2 {
		t.Fatalf("got %d changes, want 2", len(changes))
	}
	if changes[0].ID != "abc" || changes[1].ID != "def" {
		t.Errorf("order not preserved: %v", changes)
	}
}

func TestLocalSourceAgainstRealRepo(t *testing.T) {
	if _, err := exec.LookPath("git"); err != nil {
		t.Skip("git not available")
	}

	tmpDir := t.TempDir()
	run := func(args ...string) {
		t.Helper()
		cmd := exec.Command("git", append([]string{"-C", tmpDir}, args...)...)
		cmd.Env = append(os.Environ(),
			"GIT_AUTHOR_NAME=Test User", "GIT_AUTHOR_EMAIL=test@example.com",
			"GIT_COMMITTER_NAME=Test User", "GIT_COMMITTER_EMAIL=test@example.com",
		)
		if out, err := cmd.CombinedOutput(); err != nil {
			t.Fatalf("git %v: %v\n%s", args, err, out)
		}
	}

	run("init")
	if err := os.WriteFile(filepath.Join(tmpDir, "worker.c"), []byte("int main() {}\n"), 0644); err != nil {
		t.Fatal(err)
	}
	run("add", "worker.c")
	run("commit", "-m", "add worker")

	source := NewLocalSource(tmpDir, nil)
	ctx := context.Background()

	since := time.Now().Add(-time.Hour)
	until := time.Now().Add(time.Hour)
	changes, err := source.ChangesBetween(ctx, since, until)
	if err != nil {
		t.Fatalf("ChangesBetween() error = %v", err)
	}
	if len(changes) != 1 {
		t.Fatalf("got %d changes, want 1", len(changes))
	}
	if changes[0].Message != "add worker" {
		t.Errorf("Message = %q", changes[0].Message)
	}

	detail, err := source.ChangeDetail(ctx, changes[0].ID)
	if err != nil {
		t.Fatalf("ChangeDetail() error = %v", err)
	}
	if detail.Text == "" {
		t.Error("expected non-empty detail text")
	}
}

func TestLocalSourceNotARepo(t *testing.T) {
	if _, err := exec.LookPath("git"); err != nil {
		t.Skip("git not available")
	}

	source := NewLocalSource(t.TempDir(), nil)
	_, err := source.ChangesBetween(context.Background(), time.Now().Add(-time.Hour), time.Now())
	if err == nil {
		t.Fatal("expected error outside a git repo")
	}
	if !errors.Is(err, pterrors.ErrChangeHistoryUnavailable) {
		t.Errorf("error = %v, want ChangeHistoryUnavailable", err)
	}
}

func TestNewGitHubSourceValidatesOwnerRepo(t *testing.T) {
	for _, bad := range []string{"", "noslash", "/repo", "owner/"} {
		if _, err := NewGitHubSource(bad, ""); err == nil {
			t.Errorf("expected %q to be rejected", bad)
		}
	}
	if _, err := NewGitHubSource("owner/repo", ""); err != nil {
		t.Errorf("owner/repo should be accepted: %v", err)
	}
}
