// SPDX-License-Identifier: Apache-2.0

package registry

// Store is the registry contract. Every mutating call persists the full
// registry synchronously; implementations are safe for concurrent use.
type Store interface {
	// Get returns the agent with the given id, or a NOT_FOUND error.
	Get(id string) (Agent, error)

	// List returns all agents ordered by id.
	List() ([]Agent, error)

	// Create adds a new agent, failing with ALREADY_EXISTS on a duplicate id.
	Create(agent Agent) error

	// Update changes the agent's model. An empty model leaves the record as
	// is but still persists (a bare PUT acts as a touch). Unknown ids fail
	// with NOT_FOUND.
	Update(id, model string) error

	// Remove deletes the agent, failing with NOT_FOUND on unknown ids.
	Remove(id string) error
}
