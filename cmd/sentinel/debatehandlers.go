package main

import (
	"fmt"
	"net/http"

	"github.com/gorilla/mux"
)

const (
	maxStoredDebates  = 100
	debatesKeptOnTrim = 50
)

// DebateAPI exposes the debate engine over HTTP.
type DebateAPI struct {
	engine *DebateEngine
	store  DebateStore
}

// NewDebateAPI creates the debate handler set.
func NewDebateAPI(engine *DebateEngine, store DebateStore) *DebateAPI {
	return &DebateAPI{engine: engine, store: store}
}

// CreateDebate handles POST /api/debates.
func (a *DebateAPI) CreateDebate(w http.ResponseWriter, r *http.Request) {
	var payload struct {
		Article string `json:"article"`
	}
	if err := decodeJSONBody(r, &payload); err != nil || payload.Article == "" {
		respondWithError(w, http.StatusBadRequest, "Missing 'article' field in request")
		return
	}

	state := a.engine.NewDebate(payload.Article)

	// Trim idle sessions so the store never grows without bound
	if ms, ok := a.store.(*MemoryDebateStore); ok {
		if removed := ms.Cleanup(maxStoredDebates, debatesKeptOnTrim); removed > 0 {
			Logger().Info("Cleaned up %d idle debate sessions", removed)
		}
	}

	result, err := a.engine.Step(r.Context(), state.DebateID)
	if err != nil {
		respondWithError(w, http.StatusInternalServerError, fmt.Sprintf("Error processing debate step: %v", err))
		return
	}

	respondWithJSON(w, http.StatusOK, map[string]interface{}{
		"debate_id":        state.DebateID,
		"message":          "Debate created successfully",
		"current_agent":    result.CurrentAgent,
		"next_agent":       result.NextAgent,
		"latest_message":   result.LatestMessage,
		"waiting_for_user": result.WaitingForUser,
	})
}

// NextStep handles GET /api/debates/{id}/next.
func (a *DebateAPI) NextStep(w http.ResponseWriter, r *http.Request) {
	debateID := mux.Vars(r)["id"]
	result, err := a.engine.Step(r.Context(), debateID)
	if err != nil {
		respondWithError(w, http.StatusNotFound, "Debate not found")
		return
	}
	respondWithJSON(w, http.StatusOK, result)
}

// SubmitInput handles POST /api/debates/{id}/input.
func (a *DebateAPI) SubmitInput(w http.ResponseWriter, r *http.Request) {
	debateID := mux.Vars(r)["id"]
	if _, ok := a.store.Get(debateID); !ok {
		respondWithError(w, http.StatusNotFound, "Debate not found")
		return
	}

	var payload struct {
		Input string `json:"input"`
	}
	if err := decodeJSONBody(r, &payload); err != nil || payload.Input == "" {
		respondWithError(w, http.StatusBadRequest, "Missing 'input' field in request")
		return
	}

	result, err := a.engine.SubmitInput(r.Context(), debateID, payload.Input)
	if err != nil {
		respondWithError(w, http.StatusNotFound, "Debate not found")
		return
	}
	respondWithJSON(w, http.StatusOK, result)
}

// Status handles GET /api/debates/{id}.
func (a *DebateAPI) Status(w http.ResponseWriter, r *http.Request) {
	debateID := mux.Vars(r)["id"]
	state, ok := a.store.Get(debateID)
	if !ok {
		respondWithError(w, http.StatusNotFound, "Debate not found")
		return
	}

	respondWithJSON(w, http.StatusOK, map[string]interface{}{
		"debate_id":           state.DebateID,
		"current_agent":       state.CurrentAgent,
		"next_agent":          state.NextAgent,
		"debate_complete":     state.DebateComplete,
		"message_count":       len(state.Messages),
		"summary_available":   state.Summary != "",
		"pro_arguments_count": len(state.ProArguments),
		"con_arguments_count": len(state.ConArguments),
		"facts_checked_count": len(state.FactsChecked),
		"waiting_for_user":    state.CurrentAgent != AgentSupervisor,
	})
}

// Messages handles GET /api/debates/{id}/messages.
func (a *DebateAPI) Messages(w http.ResponseWriter, r *http.Request) {
	debateID := mux.Vars(r)["id"]
	state, ok := a.store.Get(debateID)
	if !ok {
		respondWithError(w, http.StatusNotFound, "Debate not found")
		return
	}

	respondWithJSON(w, http.StatusOK, map[string]interface{}{
		"debate_id":        state.DebateID,
		"messages":         state.Messages,
		"total_messages":   len(state.Messages),
		"current_agent":    state.CurrentAgent,
		"next_agent":       state.NextAgent,
		"debate_complete":  state.DebateComplete,
		"waiting_for_user": state.CurrentAgent != AgentSupervisor,
	})
}

// Summary handles GET /api/debates/{id}/summary.
func (a *DebateAPI) Summary(w http.ResponseWriter, r *http.Request) {
	debateID := mux.Vars(r)["id"]
	state, ok := a.store.Get(debateID)
	if !ok {
		respondWithError(w, http.StatusNotFound, "Debate not found")
		return
	}

	userContributions := 0
	for _, m := range state.Messages {
		if m.Type == "human" && m.Name == "user" {
			userContributions++
		}
	}

	respondWithJSON(w, http.StatusOK, map[string]interface{}{
		"debate_id":           state.DebateID,
		"article_length":      len(state.Article),
		"total_messages":      len(state.Messages),
		"pro_arguments_count": len(state.ProArguments),
		"con_arguments_count": len(state.ConArguments),
		"facts_checked_count": len(state.FactsChecked),
		"user_contributions":  userContributions,
		"debate_complete":     state.DebateComplete,
		"debate_duration":     fmt.Sprintf("%d turns", len(state.Messages)),
	})
}

// DeleteDebate handles DELETE /api/debates/{id}.
func (a *DebateAPI) DeleteDebate(w http.ResponseWriter, r *http.Request) {
	debateID := mux.Vars(r)["id"]
	if _, ok := a.store.Get(debateID); !ok {
		respondWithError(w, http.StatusNotFound, "Debate not found")
		return
	}

	a.store.Delete(debateID)
	respondWithJSON(w, http.StatusOK, map[string]string{
		"debate_id": debateID,
		"message":   "Debate successfully deleted",
	})
}
