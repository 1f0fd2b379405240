package installer

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/sandevgo/bioprep/internal/config"
	"github.com/sandevgo/bioprep/internal/service/ui"
	"github.com/sandevgo/bioprep/pkg/env"
)

var ErrEnvExists = errors.New(".env file already exists")

// SaveEnv writes the Metis settings into dir/.env. An existing file is
// never overwritten.
func SaveEnv(dir string, c config.MetisConfig) (string, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return "", fmt.Errorf("failed to create runtime directory: %w", err)
	}

	envPath := filepath.Join(dir, ".env")
	if _, err := os.Stat(envPath); err == nil {
		return "", fmt.Errorf("%w at %s", ErrEnvExists, envPath)
	} else if !errors.Is(err, fs.ErrNotExist) {
		return "", err
	}

	content, err := env.MarshalEnv(c)
	if err != nil {
		return "", err
	}

	f, err := os.OpenFile(envPath, os.O_WRONLY|os.O_CREATE|os.O_EXCL, 0o600)
	if err != nil {
		return "", err
	}
	if _, err := f.WriteString(content); err != nil {
		_ = f.Close()
		return "", err
	}
	return envPath, f.Close()
}

// SaveEnvStep writes the collected configuration to the runtime .env file.
type SaveEnvStep struct {
	dir   string
	err   error
	saved bool
}

func NewSaveEnvStep(dir string) Step {
	return &SaveEnvStep{dir: dir}
}

func (s *SaveEnvStep) Init() tea.Cmd {
	return func() tea.Msg { return nextMsg{} }
}

func (s *SaveEnvStep) Update(msg tea.Msg, state *InstallState, width, height int) (Step, tea.Cmd) {
	if s.saved {
		return nil, nil
	}
	if s.err != nil {
		return s, nil
	}

	path, err := SaveEnv(s.dir, state.Metis)
	if err != nil {
		s.err = err
		return s, nil
	}
	state.EnvPath = path
	s.saved = true
	return nil, nil
}

func (s *SaveEnvStep) View(state *InstallState) string {
	if s.err != nil {
		return ui.ErrorStyle.Render(fmt.Sprintf("Error: %v", s.err)) + "\n\n(press ctrl+c to quit)\n"
	}
	if s.saved {
		return "Configuration saved successfully!\n"
	}
	return "Saving configuration...\n"
}
