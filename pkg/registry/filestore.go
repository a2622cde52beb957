// SPDX-License-Identifier: Apache-2.0

package registry

import (
	"encoding/json"
	"log/slog"
	"os"
	"sort"
	"sync"

	"github.com/sunnydevs-club/parley/pkg/errors"
)

// FileStore keeps the registry in memory and mirrors every mutation to a
// JSON file mapping agent id to model name.
type FileStore struct {
	mu     sync.RWMutex
	path   string
	agents map[string]string
}

// NewFileStore loads the registry from the JSON file at path. A missing or
// malformed file degrades to an empty registry with a logged warning.
func NewFileStore(path string) *FileStore {
	s := &FileStore{
		path:   path,
		agents: make(map[string]string),
	}

	raw, err := os.ReadFile(path)
	if err != nil {
		slog.Warn("agent registry file not loaded, starting empty",
			"path", path, "error", err)
		return s
	}
	if err := json.Unmarshal(raw, &s.agents); err != nil {
		slog.Warn("agent registry file malformed, starting empty",
			"path", path, "error", err)
		s.agents = make(map[string]string)
	}
	return s
}

func (s *FileStore) Get(id string) (Agent, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	model, ok := s.agents[id]
	if !ok {
		return Agent{}, errors.Newf(errors.CodeNotFound, "agent %q not found", id)
	}
	return Agent{ID: id, Model: model}, nil
}

func (s *FileStore) List() ([]Agent, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	agents := make([]Agent, 0, len(s.agents))
	for id, model := range s.agents {
		agents = append(agents, Agent{ID: id, Model: model})
	}
	sort.Slice(agents, func(i, j int) bool { return agents[i].ID < agents[j].ID })
	return agents, nil
}

func (s *FileStore) Create(agent Agent) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.agents[agent.ID]; ok {
		return errors.Newf(errors.CodeAlreadyExists, "agent %q already exists", agent.ID)
	}
	s.agents[agent.ID] = agent.Model
	return s.persist()
}

func (s *FileStore) Update(id, model string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.agents[id]; !ok {
		return errors.Newf(errors.CodeNotFound, "agent %q not found", id)
	}
	if model != "" {
		s.agents[id] = model
	}
	return s.persist()
}

func (s *FileStore) Remove(id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.agents[id]; !ok {
		return errors.Newf(errors.CodeNotFound, "agent %q not found", id)
	}
	delete(s.agents, id)
	return s.persist()
}

// persist writes the whole map; callers hold the write lock.
func (s *FileStore) persist() error {
	raw, err := json.MarshalIndent(s.agents, "", "    ")
	if err != nil {
		return errors.New(errors.CodeStorageError, "encoding agent registry", err)
	}
	if err := os.WriteFile(s.path, raw, 0o644); err != nil {
		return errors.New(errors.CodeStorageError, "writing agent registry", err)
	}
	return nil
}

var _ Store = (*FileStore)(nil)
