package commands

import (
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/moasq/recent/internal/config"
	"github.com/moasq/recent/internal/git"
)

// loadConfig reads the config file named by --config, or the default one,
// and applies the root command's flag overrides.
func loadConfig() (*config.Config, error) {
	var (
		cfg *config.Config
		err error
	)
	if configFlag != "" {
		cfg, err = config.LoadFromPath(configFlag)
	} else {
		cfg, err = config.Load()
	}
	if err != nil {
		return nil, err
	}

	if err := cfg.ApplyOverrides(config.Overrides{
		MaxBranches:     maxFlag,
		VisibleBranches: windowFlag,
		NoRecord:        noRecordFlag,
	}); err != nil {
		return nil, err
	}
	return cfg, nil
}

// newLogger returns a logger writing to path, or a discarding logger when
// path is empty. The returned close func is always non-nil.
func newLogger(path string) (*slog.Logger, func(), error) {
	if path == "" {
		return slog.New(slog.NewTextHandler(io.Discard, nil)), func() {}, nil
	}

	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return nil, nil, fmt.Errorf("failed to create log dir: %w", err)
	}
	logFile, err := os.OpenFile(path, os.O_APPEND|os.O_WRONLY|os.O_CREATE, 0o644)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to open log file: %w", err)
	}

	handler := slog.NewTextHandler(logFile, &slog.HandlerOptions{
		Level:     slog.LevelDebug,
		AddSource: true,
		ReplaceAttr: func(_ []string, attr slog.Attr) slog.Attr {
			if attr.Key == slog.SourceKey {
				if source, ok := attr.Value.Any().(*slog.Source); ok {
					source.File = filepath.Base(source.File)
				}
			}
			return attr
		},
	})
	return slog.New(handler), func() { logFile.Close() }, nil
}

func newGitClient(stdout, stderr io.Writer, logger *slog.Logger) *git.Client {
	return git.New(dirFlag, stdout, stderr, logger)
}
