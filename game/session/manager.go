package session

import (
	"errors"
	"math/rand/v2"
	"strings"
	"sync"

	"go.uber.org/zap"

	"github.com/wricardo/mcp-training/unogame/game/config"
)

// ErrSessionNotFound is returned when no session exists for a join code.
var ErrSessionNotFound = errors.New("session not found")

// Join codes alternate consonants and vowels so they stay pronounceable and
// easy to relay verbally ("kazumo", "ritepa").
const (
	codeLength     = 6
	codeConsonants = "bcdfghjklmnpqrstvwxz"
	codeVowels     = "aeiou"
)

// Manager is the process-wide registry of live sessions, keyed by join code.
type Manager struct {
	rules config.Rules
	log   *zap.Logger

	mu       sync.RWMutex
	sessions map[string]*Session
}

// NewManager creates an empty registry.
func NewManager(rules config.Rules, log *zap.Logger) *Manager {
	return &Manager{
		rules:    rules,
		log:      log,
		sessions: make(map[string]*Session),
	}
}

// Create registers a new empty session under a fresh join code.
func (m *Manager) Create() *Session {
	m.mu.Lock()
	defer m.mu.Unlock()

	id := m.generateCodeLocked()
	s := NewSession(id, m.rules, m.log)
	m.sessions[id] = s

	m.log.Info("created game", zap.String("game", id))
	return s
}

// Get retrieves a session by join code, case-insensitively.
func (m *Manager) Get(id string) (*Session, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	s, ok := m.sessions[strings.ToLower(id)]
	if !ok {
		return nil, ErrSessionNotFound
	}
	return s, nil
}

// Delete removes a session from the registry and closes its connections.
func (m *Manager) Delete(id string) error {
	m.mu.Lock()
	s, ok := m.sessions[strings.ToLower(id)]
	if ok {
		delete(m.sessions, strings.ToLower(id))
	}
	m.mu.Unlock()

	if !ok {
		return ErrSessionNotFound
	}
	s.Close()
	return nil
}

// List returns all registered sessions.
func (m *Manager) List() []*Session {
	m.mu.RLock()
	defer m.mu.RUnlock()

	result := make([]*Session, 0, len(m.sessions))
	for _, s := range m.sessions {
		result = append(result, s)
	}
	return result
}

// Count returns the number of registered sessions.
func (m *Manager) Count() int {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return len(m.sessions)
}

// CollectAbandoned removes every session whose roster is empty and returns
// how many were removed. Run periodically from the sweep routine.
func (m *Manager) CollectAbandoned() int {
	m.mu.Lock()
	defer m.mu.Unlock()

	removed := 0
	for id, s := range m.sessions {
		if s.PlayerCount() == 0 {
			delete(m.sessions, id)
			removed++
			m.log.Warn("removed game because it was abandoned", zap.String("game", id))
		}
	}
	return removed
}

// CloseAll force-closes every session's connections. Used at shutdown.
func (m *Manager) CloseAll() {
	for _, s := range m.List() {
		s.Close()
	}
}

// generateCodeLocked produces a join code that is unique within the
// registry. Requires m.mu to be held for writing.
func (m *Manager) generateCodeLocked() string {
	for {
		code := make([]byte, codeLength)
		for i := range code {
			if i%2 == 0 {
				code[i] = codeConsonants[rand.IntN(len(codeConsonants))]
			} else {
				code[i] = codeVowels[rand.IntN(len(codeVowels))]
			}
		}
		id := string(code)
		if _, exists := m.sessions[id]; !exists {
			return id
		}
	}
}
