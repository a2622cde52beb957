// SPDX-License-Identifier: Apache-2.0

package registry

import (
	"database/sql"

	"github.com/sunnydevs-club/parley/pkg/errors"

	_ "modernc.org/sqlite"
)

const agentTable = "agents"

// SQLiteStore persists the registry in a SQLite database. It satisfies the
// same contract as FileStore for deployments that outgrow a flat JSON file.
type SQLiteStore struct {
	db *sql.DB
}

// OpenSQLiteStore opens (or creates) the database at path and ensures the
// schema exists.
func OpenSQLiteStore(path string) (*SQLiteStore, error) {
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, errors.New(errors.CodeStorageError, "opening registry database", err)
	}
	s := &SQLiteStore{db: db}
	if err := s.ensureSchema(); err != nil {
		db.Close()
		return nil, err
	}
	return s, nil
}

func (s *SQLiteStore) ensureSchema() error {
	_, err := s.db.Exec(`CREATE TABLE IF NOT EXISTS ` + agentTable + ` (
		id TEXT PRIMARY KEY,
		model TEXT NOT NULL
	);`)
	if err != nil {
		return errors.New(errors.CodeStorageError, "creating registry schema", err)
	}
	return nil
}

// Close releases the underlying database handle.
func (s *SQLiteStore) Close() error {
	return s.db.Close()
}

func (s *SQLiteStore) Get(id string) (Agent, error) {
	var agent Agent
	err := s.db.QueryRow(`SELECT id, model FROM `+agentTable+` WHERE id = ?`, id).
		Scan(&agent.ID, &agent.Model)
	if err == sql.ErrNoRows {
		return Agent{}, errors.Newf(errors.CodeNotFound, "agent %q not found", id)
	}
	if err != nil {
		return Agent{}, errors.New(errors.CodeStorageError, "querying agent", err)
	}
	return agent, nil
}

func (s *SQLiteStore) List() ([]Agent, error) {
	rows, err := s.db.Query(`SELECT id, model FROM ` + agentTable + ` ORDER BY id`)
	if err != nil {
		return nil, errors.New(errors.CodeStorageError, "listing agents", err)
	}
	defer rows.Close()

	var agents []Agent
	for rows.Next() {
		var agent Agent
		if err := rows.Scan(&agent.ID, &agent.Model); err != nil {
			return nil, errors.New(errors.CodeStorageError, "scanning agent row", err)
		}
		agents = append(agents, agent)
	}
	if err := rows.Err(); err != nil {
		return nil, errors.New(errors.CodeStorageError, "iterating agent rows", err)
	}
	return agents, nil
}

func (s *SQLiteStore) Create(agent Agent) error {
	if _, err := s.Get(agent.ID); err == nil {
		return errors.Newf(errors.CodeAlreadyExists, "agent %q already exists", agent.ID)
	}
	if _, err := s.db.Exec(
		`INSERT INTO `+agentTable+` (id, model) VALUES (?, ?)`,
		agent.ID, agent.Model,
	); err != nil {
		return errors.New(errors.CodeStorageError, "inserting agent", err)
	}
	return nil
}

func (s *SQLiteStore) Update(id, model string) error {
	if _, err := s.Get(id); err != nil {
		return err
	}
	if model == "" {
		return nil
	}
	if _, err := s.db.Exec(
		`UPDATE `+agentTable+` SET model = ? WHERE id = ?`, model, id,
	); err != nil {
		return errors.New(errors.CodeStorageError, "updating agent", err)
	}
	return nil
}

func (s *SQLiteStore) Remove(id string) error {
	result, err := s.db.Exec(`DELETE FROM `+agentTable+` WHERE id = ?`, id)
	if err != nil {
		return errors.New(errors.CodeStorageError, "deleting agent", err)
	}
	affected, err := result.RowsAffected()
	if err != nil {
		return errors.New(errors.CodeStorageError, "deleting agent", err)
	}
	if affected == 0 {
		return errors.Newf(errors.CodeNotFound, "agent %q not found", id)
	}
	return nil
}

var _ Store = (*SQLiteStore)(nil)
