// Package scm backfills build report fields from the local git repository
// when the CI environment does not provide them.
package scm

import (
	"strings"

	"github.com/buildmon/cli/internal/actions"
	git "github.com/go-git/go-git/v5"
)

// Open returns the repository containing dir, walking up to find the .git
// directory. It returns nil when dir is not inside a repository; running
// outside a checkout is not an error.
func Open(dir string) *git.Repository {
	repo, err := git.PlainOpenWithOptions(dir, &git.PlainOpenOptions{
		DetectDotGit:          true,
		EnableDotGitCommonDir: true,
	})
	if err != nil {
		return nil
	}
	return repo
}

// FillContext fills the Repository and SHA fields of ctx from repo when the
// environment left them empty. Values already present always win.
func FillContext(ctx *actions.Context, repo *git.Repository) {
	if repo == nil {
		return
	}
	if ctx.Repository == "" {
		ctx.Repository = Slug(repo)
	}
	if ctx.SHA == "" {
		ctx.SHA = HeadSHA(repo)
	}
}

// Slug returns the owner/name slug of the origin remote, or an empty string
// when there is no origin or its URL has no recognizable slug
func Slug(repo *git.Repository) string {
	remote, err := repo.Remote("origin")
	if err != nil {
		return ""
	}
	urls := remote.Config().URLs
	if len(urls) == 0 {
		return ""
	}
	return parseSlug(urls[0])
}

// HeadSHA returns the full hash of HEAD, or an empty string for a repository
// with no commits
func HeadSHA(repo *git.Repository) string {
	head, err := repo.Head()
	if err != nil {
		return ""
	}
	return head.Hash().String()
}

// parseSlug extracts owner/name from the common remote URL shapes:
// https://host/owner/name.git, ssh://git@host/owner/name and the scp-like
// git@host:owner/name
func parseSlug(remote string) string {
	remote = strings.TrimSuffix(remote, ".git")

	if i := strings.Index(remote, "://"); i >= 0 {
		rest := remote[i+3:]
		j := strings.Index(rest, "/")
		if j < 0 {
			return ""
		}
		remote = rest[j+1:]
	} else if i := strings.Index(remote, ":"); i >= 0 && strings.Contains(remote[:i], "@") {
		remote = remote[i+1:]
	}

	parts := strings.Split(strings.Trim(remote, "/"), "/")
	if len(parts) < 2 {
		return ""
	}
	return strings.Join(parts[len(parts)-2:], "/")
}
