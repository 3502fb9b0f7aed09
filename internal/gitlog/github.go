package gitlog

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/google/go-github/v57/github"
	"golang.org/x/time/rate"

	"github.com/pagertrace/pagertrace/internal/analysis"
	"github.com/pagertrace/pagertrace/internal/errors"
)

// GitHubSource reads change history from the GitHub commits API instead
// of a local working copy. The commits API returns newest-first, which
// is exactly the ordering the correlator expects.
type GitHubSource struct {
	client      *github.Client
	rateLimiter *rate.Limiter
	owner       string
	repo        string
}

// NewGitHubSource creates a ChangeSource for "owner/repo". token may be
// empty for public repositories.
func NewGitHubSource(ownerRepo, token string) (*GitHubSource, error) {
	owner, repo, ok := strings.Cut(ownerRepo, "/")
	if !ok || owner == "" || repo == "" {
		return nil, errors.InvalidInputf("expected owner/repo, got %q", ownerRepo)
	}

	client := github.NewClient(nil)
	if token != "" {
		client = client.WithAuthToken(token)
	}

	return &GitHubSource{
		client:      client,
		rateLimiter: rate.NewLimiter(rate.Limit(5), 1),
		owner:       owner,
		repo:        repo,
	}, nil
}

// ChangesBetween returns commits in [since, until) newest-first.
func (s *GitHubSource) ChangesBetween(ctx context.Context, since, until time.Time) ([]analysis.Change, error) {
	opts := &github.CommitsListOptions{
		Since:       since,
		Until:       until,
		ListOptions: github.ListOptions{PerPage: 100},
	}

	var changes []analysis.Change
	for {
		if err := s.rateLimiter.Wait(ctx); err != nil {
			return nil, fmt.Errorf("rate limiter: %w", err)
		}

		commits, resp, err := s.client.Repositories.ListCommits(ctx, s.owner, s.repo, opts)
		if err != nil {
			return nil, errors.ChangeHistoryUnavailable(
				fmt.Sprintf("list commits for %s/%s", s.owner, s.repo), err)
		}

		for _, commit := range commits {
			changes = append(changes, analysis.Change{
				ID:          commit.GetSHA(),
				Author:      commit.GetCommit().GetAuthor().GetName(),
				AuthorEmail: commit.GetCommit().GetAuthor().GetEmail(),
				Timestamp:   commit.GetCommit().GetAuthor().GetDate().Time,
				Message:     firstLine(commit.GetCommit().GetMessage()),
			})
		}

		if resp.NextPage == 0 {
			break
		}
		opts.Page = resp.NextPage
	}
	return changes, nil
}

// ChangeDetail builds a stat-style summary of one commit from the API.
func (s *GitHubSource) ChangeDetail(ctx context.Context, changeID string) (*analysis.ChangeDetail, error) {
	if err := s.rateLimiter.Wait(ctx); err != nil {
		return nil, fmt.Errorf("rate limiter: %w", err)
	}

	commit, _, err := s.client.Repositories.GetCommit(ctx, s.owner, s.repo, changeID, nil)
	if err != nil {
		return nil, errors.ChangeHistoryUnavailable("get commit "+changeID, err)
	}

	var sb strings.Builder
	fmt.Fprintf(&sb, "commit %s\n", commit.GetSHA())
	fmt.Fprintf(&sb, "Author: %s <%s>\n",
		commit.GetCommit().GetAuthor().GetName(),
		commit.GetCommit().GetAuthor().GetEmail())
	fmt.Fprintf(&sb, "Date:   %s\n\n", commit.GetCommit().GetAuthor().GetDate().Format(time.RFC3339))
	fmt.Fprintf(&sb, "    %s\n\n", commit.GetCommit().GetMessage())

	for _, f := range commit.Files {
		fmt.Fprintf(&sb, " %s | +%d -%d\n", f.GetFilename(), f.GetAdditions(), f.GetDeletions())
	}
	if stats := commit.GetStats(); stats != nil {
		fmt.Fprintf(&sb, " %d files changed, %d insertions(+), %d deletions(-)\n",
			len(commit.Files), stats.GetAdditions(), stats.GetDeletions())
	}

	return &analysis.ChangeDetail{
		ChangeID: changeID,
		Text:     sb.String(),
	}, nil
}

func firstLine(s string) string {
	if i := strings.IndexByte(s, '\n'); i >= 0 {
		return s[:i]
	}
	return s
}
