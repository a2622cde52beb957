// SPDX-License-Identifier: Apache-2.0

// Package httpapi exposes the Parley endpoints consumed by the frontend:
// turn orchestration, agent listing and maintenance, and model listing.
package httpapi

import (
	"net/http"

	"github.com/sunnydevs-club/parley/pkg/errors"
	"github.com/sunnydevs-club/parley/pkg/llm"
	"github.com/sunnydevs-club/parley/pkg/orchestrator"
	"github.com/sunnydevs-club/parley/pkg/registry"
)

// Server holds the handler dependencies. Nothing here is global: the store,
// the orchestrator and the CORS origin are all injected.
type Server struct {
	store         registry.Store
	orch          *orchestrator.Orchestrator
	allowedOrigin string
}

// New creates the API server.
func New(store registry.Store, orch *orchestrator.Orchestrator, allowedOrigin string) *Server {
	return &Server{store: store, orch: orch, allowedOrigin: allowedOrigin}
}

// Handler assembles the route table and the middleware chain.
func (s *Server) Handler() http.Handler {
	mux := http.NewServeMux()

	mux.HandleFunc("HEAD /health_check", s.handleHealthCheck)
	mux.HandleFunc("POST /next_turn", s.handleNextTurn)
	mux.HandleFunc("GET /agent/{id}", s.handleGetAgent)
	mux.HandleFunc("GET /agents", s.handleListAgents)
	mux.HandleFunc("POST /agents", s.handleCreateAgent)
	mux.HandleFunc("PUT /agents/{id}", s.handleUpdateAgent)
	mux.HandleFunc("DELETE /agents/{id}", s.handleRemoveAgent)
	mux.HandleFunc("GET /models", s.handleListModels)

	var handler http.Handler = mux
	handler = tracing(handler)
	handler = logging(handler)
	handler = cors(s.allowedOrigin, handler)
	handler = requestID(handler)
	return handler
}

func (s *Server) handleHealthCheck(w http.ResponseWriter, r *http.Request) {
	writeSuccess(w, nil)
}

func (s *Server) handleNextTurn(w http.ResponseWriter, r *http.Request) {
	var req orchestrator.TurnRequest
	if !decodeBody(w, r, &req) {
		return
	}
	if req.NextSpeakerID == "" {
		writeError(w, r, errors.Newf(errors.CodeInvalidInput, "next_speaker_id is required"))
		return
	}

	result, err := s.orch.NextTurn(r.Context(), req)
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeSuccess(w, result)
}

// AgentList is the payload of GET /agents.
type AgentList struct {
	Total  int              `json:"total"`
	Agents []registry.Agent `json:"agents"`
}

func (s *Server) handleGetAgent(w http.ResponseWriter, r *http.Request) {
	agent, err := s.store.Get(r.PathValue("id"))
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeSuccess(w, agent)
}

func (s *Server) handleListAgents(w http.ResponseWriter, r *http.Request) {
	agents, err := s.store.List()
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeSuccess(w, AgentList{Total: len(agents), Agents: agents})
}

func (s *Server) handleCreateAgent(w http.ResponseWriter, r *http.Request) {
	var req registry.Agent
	if !decodeBody(w, r, &req) {
		return
	}
	if req.ID == "" || req.Model == "" {
		writeError(w, r, errors.Newf(errors.CodeInvalidInput, "agent_id and model_name are required"))
		return
	}
	if err := s.store.Create(req); err != nil {
		writeError(w, r, err)
		return
	}
	writeSuccess(w, req)
}

// agentUpdateRequest carries the optional new model name for PUT.
type agentUpdateRequest struct {
	Model string `json:"model_name"`
}

func (s *Server) handleUpdateAgent(w http.ResponseWriter, r *http.Request) {
	id := r.PathValue("id")

	var req agentUpdateRequest
	if !decodeBody(w, r, &req) {
		return
	}

	if err := s.store.Update(id, req.Model); err != nil {
		writeError(w, r, err)
		return
	}

	agent, err := s.store.Get(id)
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeSuccess(w, agent)
}

func (s *Server) handleRemoveAgent(w http.ResponseWriter, r *http.Request) {
	id := r.PathValue("id")
	if err := s.store.Remove(id); err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, Envelope{
		Status:  "success",
		Message: "agent " + id + " removed",
	})
}

func (s *Server) handleListModels(w http.ResponseWriter, r *http.Request) {
	models, err := llm.Catalog(r.URL.Query().Get("provider_name"))
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeSuccess(w, models)
}
