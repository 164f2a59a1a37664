package main

import (
	"context"
	"fmt"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestDetectUserIntent(t *testing.T) {
	cases := []struct {
		input string
		want  UserIntent
	}{
		{"I'm done with this", IntentEndDebate},
		{"that is wrong", IntentDisagree},
		{"can you provide evidence for that?", IntentRequestEvidence},
		{"please clarify your last point", IntentClarify},
		{"also consider the economic impact", IntentAddInformation},
		{"why did this happen?", IntentAskQuestion},
		{"interesting take", IntentGeneralComment},
	}
	for _, tc := range cases {
		t.Run(tc.input, func(t *testing.T) {
			require.Equal(t, tc.want, DetectUserIntent(tc.input))
		})
	}
}

func TestMemoryDebateStoreCRUD(t *testing.T) {
	store := NewMemoryDebateStore()
	require.Zero(t, store.Count())

	state := &DebateState{DebateID: "d1", Article: "a"}
	store.Put(state)
	require.Equal(t, 1, store.Count())

	got, ok := store.Get("d1")
	require.True(t, ok)
	require.Equal(t, "a", got.Article)

	store.Delete("d1")
	_, ok = store.Get("d1")
	require.False(t, ok)
}

func TestMemoryDebateStoreCleanup(t *testing.T) {
	store := NewMemoryDebateStore()
	for i := 0; i < 120; i++ {
		msgs := make([]DebateMessage, i)
		store.Put(&DebateState{DebateID: fmt.Sprintf("d%d", i), Messages: msgs})
	}

	removed := store.Cleanup(100, 50)
	require.Equal(t, 70, removed)
	require.Equal(t, 50, store.Count())

	// The most active sessions survive
	_, ok := store.Get("d119")
	require.True(t, ok)
	_, ok = store.Get("d0")
	require.False(t, ok)
}

func TestMemoryDebateStoreCleanupUnderLimit(t *testing.T) {
	store := NewMemoryDebateStore()
	store.Put(&DebateState{DebateID: "d1"})
	require.Zero(t, store.Cleanup(100, 50))
	require.Equal(t, 1, store.Count())
}

func newTestEngine(llm Completer) (*DebateEngine, *MemoryDebateStore) {
	store := NewMemoryDebateStore()
	return NewDebateEngine(llm, nil, store), store
}

func TestDebateFirstStepRoutesToReader(t *testing.T) {
	llm := &stubCompleter{reply: "analysis"}
	engine, _ := newTestEngine(llm)

	state := engine.NewDebate("Some article text.")
	result, err := engine.Step(context.Background(), state.DebateID)
	require.NoError(t, err)

	require.Equal(t, AgentSupervisor, result.CurrentAgent)
	require.Equal(t, AgentReader, result.NextAgent)
	require.False(t, result.DebateComplete)
	require.False(t, result.WaitingForUser)
	// No LLM call needed to open the debate
	require.Zero(t, llm.calls)
}

func TestDebateReaderProducesSummary(t *testing.T) {
	llm := &stubCompleter{reply: "The article argues X."}
	engine, store := newTestEngine(llm)

	state := engine.NewDebate("Some article text.")
	_, err := engine.Step(context.Background(), state.DebateID)
	require.NoError(t, err)

	result, err := engine.Step(context.Background(), state.DebateID)
	require.NoError(t, err)
	require.Equal(t, AgentReader, result.CurrentAgent)
	require.Equal(t, AgentSupervisor, result.NextAgent)
	require.True(t, result.WaitingForUser)

	stored, _ := store.Get(state.DebateID)
	require.Equal(t, "The article argues X.", stored.Summary)
}

func TestDebateEndWordCompletesDebate(t *testing.T) {
	llm := &stubCompleter{reply: "ok"}
	engine, store := newTestEngine(llm)

	state := engine.NewDebate("Article.")
	engine.Step(context.Background(), state.DebateID)

	result, err := engine.SubmitInput(context.Background(), state.DebateID, "done")
	require.NoError(t, err)
	require.True(t, result.DebateComplete)

	stored, _ := store.Get(state.DebateID)
	require.True(t, stored.DebateComplete)
	last := stored.Messages[len(stored.Messages)-1]
	require.Equal(t, AgentSupervisor, last.Name)
	require.Contains(t, last.Content, "debate has ended")
}

func TestDebateStepAfterCompleteIsIdempotent(t *testing.T) {
	llm := &stubCompleter{reply: "ok"}
	engine, _ := newTestEngine(llm)

	state := engine.NewDebate("Article.")
	engine.Step(context.Background(), state.DebateID)
	engine.SubmitInput(context.Background(), state.DebateID, "stop")

	result, err := engine.Step(context.Background(), state.DebateID)
	require.NoError(t, err)
	require.True(t, result.DebateComplete)
	require.Equal(t, "Debate is already complete", result.Message)
}

func TestDebateEvidenceRequestRoutesToFactChecker(t *testing.T) {
	llm := &stubCompleter{reply: "Let us hear from the panel."}
	engine, store := newTestEngine(llm)

	state := engine.NewDebate("Article.")
	state.Summary = "summary"
	state.CurrentAgent = AgentProWriter
	store.Put(state)

	result, err := engine.SubmitInput(context.Background(), state.DebateID, "show me some proof")
	require.NoError(t, err)
	require.Equal(t, AgentFactChecker, result.NextAgent)
}

func TestDebateDisagreeWithProRoutesToCon(t *testing.T) {
	llm := &stubCompleter{reply: "Noted."}
	engine, store := newTestEngine(llm)

	state := engine.NewDebate("Article.")
	state.Summary = "summary"
	state.CurrentAgent = AgentProWriter
	store.Put(state)

	result, err := engine.SubmitInput(context.Background(), state.DebateID, "I disagree with that")
	require.NoError(t, err)
	require.Equal(t, AgentConWriter, result.NextAgent)
}

func TestDebateStepUnknownID(t *testing.T) {
	llm := &stubCompleter{reply: "ok"}
	engine, _ := newTestEngine(llm)

	_, err := engine.Step(context.Background(), "missing")
	require.Error(t, err)
}

func TestDebateFactCheckerRecordsResults(t *testing.T) {
	llm := &stubCompleter{reply: "The pro argument is Supported by the evidence."}
	engine, store := newTestEngine(llm)

	state := engine.NewDebate("Article.")
	state.Summary = "summary"
	state.ProArguments = []string{"argument one"}
	state.NextAgent = AgentFactChecker
	store.Put(state)

	result, err := engine.Step(context.Background(), state.DebateID)
	require.NoError(t, err)
	require.Equal(t, AgentFactChecker, result.CurrentAgent)

	stored, _ := store.Get(state.DebateID)
	require.Equal(t, true, stored.FactsChecked["fact_check_1"])
}
