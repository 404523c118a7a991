package commands

import (
	"context"
	"fmt"
	"os"
	"path/filepath"

	"github.com/rs/zerolog/log"
	"github.com/urfave/cli/v3"

	"github.com/hay-kot/answer/internal/core/answer"
	"github.com/hay-kot/answer/internal/core/config"
	"github.com/hay-kot/answer/internal/core/validate"
	"github.com/hay-kot/answer/internal/store/jsonfile"
)

type Flags struct {
	LogLevel   string
	LogFile    string
	ConfigPath string
	Cwd        string

	// Config is loaded in the Before hook and available to all commands
	Config *config.Config

	// Backend persists answer documents
	Backend answer.Backend
}

// DefaultConfigPath returns the default config file path using XDG_CONFIG_HOME.
func DefaultConfigPath() string {
	configHome := os.Getenv("XDG_CONFIG_HOME")
	if configHome == "" {
		home, _ := os.UserHomeDir()
		configHome = filepath.Join(home, ".config")
	}
	return filepath.Join(configHome, "answer", "config.yaml")
}

// Open creates the store for name using the loaded config. When history is
// enabled every set is also recorded as a snapshot.
func (f *Flags) Open(ctx context.Context, name string) (*answer.Store, error) {
	if f.Config == nil {
		return nil, fmt.Errorf("configuration not loaded")
	}

	logger := log.With().Str("component", "answer").Logger()
	opts := []answer.Option{
		answer.WithOptions(f.Config.StoreOptions()),
		answer.WithLogger(logger),
	}

	if f.Config.History.Enabled {
		hist, err := f.History(name)
		if err != nil {
			return nil, err
		}
		opts = append(opts, answer.WithObserver(hist.Recorder(ctx)))
	}

	return answer.New(name, f.Backend, opts...)
}

// History returns the snapshot history for name.
func (f *Flags) History(name string) (*jsonfile.HistoryStore, error) {
	if f.Config == nil {
		return nil, fmt.Errorf("configuration not loaded")
	}

	if err := validate.StoreName(name); err != nil {
		return nil, fmt.Errorf("%w: %w", answer.ErrInvalidName, err)
	}

	dir, err := f.Config.HistoryDir(name)
	if err != nil {
		return nil, fmt.Errorf("resolve history directory: %w", err)
	}

	logger := log.With().Str("component", "history").Str("answer", name).Logger()
	return jsonfile.NewHistoryStore(dir, f.Config.History.Keep).WithLogger(logger), nil
}

// nameArg returns the answer name from the first positional argument.
func nameArg(c *cli.Command) (string, error) {
	if c.Args().Len() == 0 {
		return "", fmt.Errorf("answer name required\n\nUsage: %s", c.UsageText)
	}
	return c.Args().First(), nil
}
