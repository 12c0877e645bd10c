// Package git wraps the git commands the selector needs: listing branches
// by recency, reading the current branch, and checking one out.
package git

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os/exec"
	"path/filepath"
	"strings"
)

var (
	// ErrGit is returned when a git query cannot run or exits non-zero.
	ErrGit = errors.New("git command failed")
	// ErrCheckoutFailed is returned when git checkout exits non-zero.
	ErrCheckoutFailed = errors.New("git checkout failed")
)

// Client runs git in a single working directory.
type Client struct {
	dir    string
	stdout io.Writer
	stderr io.Writer
	logger *slog.Logger
}

// New returns a Client for the repository at dir. Checkout output goes to
// stdout and stderr.
func New(dir string, stdout, stderr io.Writer, logger *slog.Logger) *Client {
	if logger == nil {
		logger = slog.New(slog.NewTextHandler(io.Discard, nil))
	}
	return &Client{dir: dir, stdout: stdout, stderr: stderr, logger: logger}
}

// branchFormat prints one full ref name per line with no markers, colour,
// or columns, whatever color.branch or column.ui say.
const branchFormat = "--format=%(refname)"

const headsPrefix = "refs/heads/"

// RecentBranches lists local branches, most recently committed first, capped
// at limit entries.
func (c *Client) RecentBranches(ctx context.Context, limit int) ([]string, error) {
	out, err := c.output(ctx, "branch", "--no-color", "--no-column", "--sort=-committerdate", branchFormat)
	if err != nil {
		return nil, err
	}
	return ParseBranches(out, limit), nil
}

// CurrentBranch returns the checked-out branch, or "" on a detached HEAD.
func (c *Client) CurrentBranch(ctx context.Context) (string, error) {
	out, err := c.output(ctx, "branch", "--show-current")
	if err != nil {
		return "", err
	}
	return strings.TrimSpace(out), nil
}

// Checkout switches the working tree to branch, streaming git's own output
// to the user.
func (c *Client) Checkout(ctx context.Context, branch string) error {
	cmd := exec.CommandContext(ctx, "git", "checkout", branch)
	cmd.Dir = c.dir
	cmd.Stdout = c.stdout
	cmd.Stderr = c.stderr

	c.logger.Info("running git", "args", cmd.Args[1:], "dir", c.dir)
	if err := cmd.Run(); err != nil {
		return fmt.Errorf("%w: %v", ErrCheckoutFailed, err)
	}
	return nil
}

// RepoRoot returns the top-level directory of the repository.
func (c *Client) RepoRoot(ctx context.Context) (string, error) {
	out, err := c.output(ctx, "rev-parse", "--show-toplevel")
	if err != nil {
		return "", err
	}
	return filepath.Clean(strings.TrimSpace(out)), nil
}

func (c *Client) output(ctx context.Context, args ...string) (string, error) {
	cmd := exec.CommandContext(ctx, "git", args...)
	cmd.Dir = c.dir
	var stderr bytes.Buffer
	cmd.Stderr = &stderr

	c.logger.Debug("running git", "args", args, "dir", c.dir)
	out, err := cmd.Output()
	if err != nil {
		msg := strings.TrimSpace(stderr.String())
		if msg == "" {
			return "", fmt.Errorf("%w: git %s: %v", ErrGit, strings.Join(args, " "), err)
		}
		return "", fmt.Errorf("%w: git %s: %v: %s", ErrGit, strings.Join(args, " "), err, msg)
	}
	return string(out), nil
}

// ParseBranches turns the output of `git branch --format=%(refname)` into
// branch names. Only refs/heads/ lines are kept, so the detached HEAD
// pseudo-entry is dropped; duplicates are dropped too and at most limit
// names are kept. A limit of 0 or less means no limit.
func ParseBranches(out string, limit int) []string {
	var branches []string
	seen := make(map[string]bool)
	for _, line := range strings.Split(out, "\n") {
		ref := strings.TrimSpace(line)
		if !strings.HasPrefix(ref, headsPrefix) {
			continue
		}
		name := strings.TrimPrefix(ref, headsPrefix)
		if name == "" || seen[name] {
			continue
		}
		seen[name] = true
		branches = append(branches, name)
		if limit > 0 && len(branches) == limit {
			break
		}
	}
	return branches
}
