package console

import (
	"errors"
	"io/fs"
	"os"
	"path/filepath"
	"sync"

	"github.com/maxbolgarin/errm"
	"gopkg.in/yaml.v3"

	"github.com/Ishanpathak1/ghanalytics/internal/theme"
)

// ThemeService reads and changes the active color theme.
type ThemeService interface {
	Theme() theme.Theme
	SetTheme(t theme.Theme) error
}

// MemoryThemeService keeps the theme in memory only.
type MemoryThemeService struct {
	mu      sync.RWMutex
	current theme.Theme
}

// NewMemoryThemeService creates a theme service starting at t.
func NewMemoryThemeService(t theme.Theme) *MemoryThemeService {
	if t == "" {
		t = theme.Default
	}
	return &MemoryThemeService{current: t}
}

func (s *MemoryThemeService) Theme() theme.Theme {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.current
}

func (s *MemoryThemeService) SetTheme(t theme.Theme) error {
	if _, err := theme.Parse(string(t)); err != nil {
		return err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	s.current = t
	return nil
}

// FileThemeService persists the theme to a YAML file so the choice
// survives restarts.
type FileThemeService struct {
	mu      sync.RWMutex
	path    string
	current theme.Theme
}

type themeFile struct {
	Theme theme.Theme `yaml:"theme"`
}

// DefaultThemePath returns ~/.ghanalytics/theme.yaml.
func DefaultThemePath() (string, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return "", errm.Wrap(err, "failed to get home directory")
	}
	return filepath.Join(home, ".ghanalytics", "theme.yaml"), nil
}

// NewFileThemeService loads the theme stored at path. A missing file
// yields the default theme.
func NewFileThemeService(path string) (*FileThemeService, error) {
	s := &FileThemeService{path: path, current: theme.Default}

	data, err := os.ReadFile(filepath.Clean(path)) // #nosec G304
	if errors.Is(err, fs.ErrNotExist) {
		return s, nil
	}
	if err != nil {
		return nil, errm.Wrap(err, "failed to read theme file")
	}

	var f themeFile
	if err := yaml.Unmarshal(data, &f); err != nil {
		return nil, errm.Wrap(err, "failed to parse theme file")
	}
	if f.Theme != "" {
		t, err := theme.Parse(string(f.Theme))
		if err != nil {
			return nil, err
		}
		s.current = t
	}
	return s, nil
}

func (s *FileThemeService) Theme() theme.Theme {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.current
}

func (s *FileThemeService) SetTheme(t theme.Theme) error {
	if _, err := theme.Parse(string(t)); err != nil {
		return err
	}

	data, err := yaml.Marshal(themeFile{Theme: t})
	if err != nil {
		return errm.Wrap(err, "failed to marshal theme")
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if err := os.MkdirAll(filepath.Dir(s.path), 0700); err != nil {
		return errm.Wrap(err, "failed to create theme directory")
	}
	if err := os.WriteFile(s.path, data, 0600); err != nil {
		return errm.Wrap(err, "failed to write theme file")
	}
	s.current = t
	return nil
}
