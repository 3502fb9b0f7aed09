package gitlog

import (
	"context"
	"os/exec"
	"strings"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/pagertrace/pagertrace/internal/analysis"
	"github.com/pagertrace/pagertrace/internal/errors"
)

// logFormat asks git for one pipe-delimited line per commit:
// hash|author|email|iso-date|subject
const logFormat = "%H|%an|%ae|%aI|%s"

// LocalSource reads change history from a local working copy by
// shelling out to git. It implements analysis.ChangeSource; git log
// returns commits newest-first, and that ordering is passed through
// untouched.
type LocalSource struct {
	repoPath string
	logger   *logrus.Logger
}

// NewLocalSource creates a ChangeSource over the working copy at
// repoPath.
func NewLocalSource(repoPath string, logger *logrus.Logger) *LocalSource {
	if logger == nil {
		logger = logrus.New()
	}
	return &LocalSource{repoPath: repoPath, logger: logger}
}

// ChangesBetween returns commits in [since, until) newest-first. A
// failing git invocation surfaces as ChangeHistoryUnavailable so the
// analyzer can degrade to an empty change set.
func (s *LocalSource) ChangesBetween(ctx context.Context, since, until time.Time) ([]analysis.Change, error) {
	cmd := exec.CommandContext(ctx, "git", "-C", s.repoPath, "log",
		"--since="+since.Format(time.RFC3339),
		"--until="+until.Format(time.RFC3339),
		"--pretty=format:"+logFormat,
		"--date=iso-strict",
	)

	output, err := cmd.Output()
	if err != nil {
		if exitErr, ok := err.(*exec.ExitError); ok {
			return nil, errors.ChangeHistoryUnavailable(
				"git log failed: "+strings.TrimSpace(string(exitErr.Stderr)), err)
		}
		return nil, errors.ChangeHistoryUnavailable("git log failed", err)
	}

	return parseLog(string(output), s.logger), nil
}

// ChangeDetail returns the stat view of one commit via git show.
func (s *LocalSource) ChangeDetail(ctx context.Context, changeID string) (*analysis.ChangeDetail, error) {
	cmd := exec.CommandContext(ctx, "git", "-C", s.repoPath, "show", "--stat", changeID)

	output, err := cmd.Output()
	if err != nil {
		return nil, errors.ChangeHistoryUnavailable("git show failed for "+changeID, err)
	}

	return &analysis.ChangeDetail{
		ChangeID: changeID,
		Text:     string(output),
	}, nil
}

// parseLog converts git log output to changes, preserving line order.
// Malformed lines are skipped with a debug log rather than failing the
// whole listing.
func parseLog(output string, logger *logrus.Logger) []analysis.Change {
	if logger == nil {
		logger = logrus.New()
	}
	var changes []analysis.Change
	for _, line := range strings.Split(output, "\n") {
		line = strings.TrimSpace(line)
		if line == "" {
			continue
		}
		change, ok := parseLogLine(line)
		if !ok {
			logger.WithField("line", line).Debug("skipping unparseable git log line")
			continue
		}
		changes = append(changes, change)
	}
	return changes
}

func parseLogLine(line string) (analysis.Change, bool) {
	parts := strings.SplitN(line, "|", 5)
	if len(parts) != 5 {
		return analysis.Change{}, false
	}
	ts, err := time.Parse(time.RFC3339, parts[3])
	if err != nil {
		return analysis.Change{}, false
	}
	return analysis.Change{
		ID:          parts[0],
		Author:      parts[1],
		AuthorEmail: parts[2],
		Timestamp:   ts,
		Message:     parts[4],
	}, true
}
