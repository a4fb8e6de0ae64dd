package session

import (
	"encoding/json"
	"fmt"
	"os"
	"sync"

	"github.com/studiowebux/inkpad/internal/config"
	"github.com/studiowebux/inkpad/internal/types"
)

// RecentFilesKey is the key the recent-files list is stored under
const RecentFilesKey = "recentFiles"

// Manager handles the session file
type Manager struct {
	mu      sync.Mutex
	path    string
	session *types.Session
}

// NewManager creates a session manager backed by the configured session file
func NewManager() *Manager {
	return NewManagerAt(config.GetSessionFilePath())
}

// NewManagerAt creates a session manager backed by path
func NewManagerAt(path string) *Manager {
	return &Manager{
		path:    path,
		session: newSession(),
	}
}

func newSession() *types.Session {
	return &types.Session{
		RecentFiles: []string{},
		Lists:       make(map[string][]string),
	}
}

// Load loads the session file. A missing file yields an empty session.
func (m *Manager) Load() error {
	m.mu.Lock()
	defer m.mu.Unlock()

	data, err := os.ReadFile(m.path)
	if err != nil {
		if os.IsNotExist(err) {
			m.session = newSession()
			return nil
		}
		return fmt.Errorf("failed to read session file: %w", err)
	}

	var session types.Session
	if err := json.Unmarshal(data, &session); err != nil {
		return fmt.Errorf("failed to parse session file: %w", err)
	}

	if session.RecentFiles == nil {
		session.RecentFiles = []string{}
	}
	if session.Lists == nil {
		session.Lists = make(map[string][]string)
	}

	m.session = &session
	return nil
}

// SaveSession saves the session to disk
func (m *Manager) SaveSession() error {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.saveLocked()
}

func (m *Manager) saveLocked() error {
	data, err := json.MarshalIndent(m.session, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal session: %w", err)
	}

	if err := os.WriteFile(m.path, data, config.FilePermissions); err != nil {
		return fmt.Errorf("failed to write session file: %w", err)
	}

	return nil
}

// Strings returns a copy of the list stored under key
func (m *Manager) Strings(key string) ([]string, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	var list []string
	if key == RecentFilesKey {
		list = m.session.RecentFiles
	} else {
		list = m.session.Lists[key]
	}
	return append([]string(nil), list...), nil
}

// SetStrings replaces the list stored under key and writes the session file
func (m *Manager) SetStrings(key string, values []string) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	stored := append([]string{}, values...)
	if key == RecentFilesKey {
		m.session.RecentFiles = stored
	} else {
		m.session.Lists[key] = stored
	}
	return m.saveLocked()
}

// Path returns the session file location
func (m *Manager) Path() string {
	return m.path
}
