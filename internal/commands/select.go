package commands

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"

	"github.com/moasq/recent/internal/config"
	"github.com/moasq/recent/internal/selector"
	"github.com/moasq/recent/internal/storage"
	"github.com/moasq/recent/internal/terminal"
	"github.com/spf13/cobra"
)

// branchSource is the part of git.Client the selector flow uses.
type branchSource interface {
	RecentBranches(ctx context.Context, limit int) ([]string, error)
	CurrentBranch(ctx context.Context) (string, error)
	Checkout(ctx context.Context, branch string) error
	RepoRoot(ctx context.Context) (string, error)
}

// session is one run of the selector against a repository.
type session struct {
	cfg     *config.Config
	git     branchSource
	history *storage.HistoryStore // nil disables recording
	in      io.Reader
	out     io.Writer
	guard   selector.Guard
	logger  *slog.Logger
}

func runSelect(cmd *cobra.Command) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}

	logger, closeLog, err := newLogger(logFileFlag)
	if err != nil {
		return err
	}
	defer closeLog()

	guard := terminal.NewRawMode(os.Stdin)
	stop := terminal.RestoreOnSignal(guard, func() {
		os.Stdout.WriteString(terminal.ShowCursor)
	})
	defer stop()

	logger.Debug("config loaded", "path", cfg.Path, "max", cfg.MaxBranches, "window", cfg.VisibleBranches)

	s := &session{
		cfg:    cfg,
		git:    newGitClient(os.Stdout, os.Stderr, logger),
		in:     os.Stdin,
		out:    os.Stdout,
		guard:  guard,
		logger: logger,
	}
	if cfg.ShouldRecord() {
		s.history = storage.NewHistoryStore(cfg.StateDir)
	}
	return s.run(cmd.Context())
}

// run lists branches, runs the menu, and checks out the confirmed branch.
// The terminal is back in its original mode before run returns an error.
func (s *session) run(ctx context.Context) error {
	if ctx == nil {
		ctx = context.Background()
	}

	branches, err := s.git.RecentBranches(ctx, s.cfg.MaxBranches)
	if err != nil {
		return fmt.Errorf("failed to list branches: %w", err)
	}
	if len(branches) == 0 {
		terminal.Info(s.out, "No branches found")
		return nil
	}

	current, err := s.git.CurrentBranch(ctx)
	if err != nil {
		s.logger.Warn("current branch unknown", "error", err)
		current = ""
	}

	list := selector.NewList(branches, current, s.cfg.VisibleBranches)
	sel := selector.New(s.in, s.out, s.guard,
		selector.WithTitle(s.cfg.Title),
		selector.WithLogger(s.logger),
	)

	res, err := sel.Run(ctx, list, func(ctx context.Context, branch string) error {
		fmt.Fprint(s.out, terminal.ClearScreen+"\n")
		fmt.Fprintf(s.out, "\nChecking out branch: %s\n", branch)
		fmt.Fprint(s.out, terminal.ColumnStart)
		return s.git.Checkout(ctx, branch)
	})
	if err != nil {
		s.logger.Error("selector finished with error", "state", res.State, "choice", res.Choice, "error", err)
		return err
	}

	if res.State == selector.StateConfirmed {
		s.logger.Info("checked out", "branch", res.Choice, "from", current)
		s.record(ctx, res.Choice, current)
	}
	return nil
}

func (s *session) record(ctx context.Context, branch, from string) {
	if s.history == nil {
		return
	}
	repo, err := s.git.RepoRoot(ctx)
	if err != nil {
		s.logger.Warn("not recording checkout", "error", err)
		return
	}
	if err := s.history.Append(storage.Entry{Repo: repo, Branch: branch, From: from}); err != nil {
		s.logger.Warn("failed to record checkout", "error", err)
		terminal.Warning(s.out, fmt.Sprintf("Checkout of %s was not recorded: %v", branch, err))
	}
}
