package main

import (
	"context"
	"fmt"
	"sort"
	"strings"
	"sync"

	"github.com/google/uuid"
)

// UserIntent classifies what a debate participant wants from their input.
type UserIntent string

const (
	IntentGeneralComment  UserIntent = "general_comment"
	IntentDisagree        UserIntent = "disagree"
	IntentRequestEvidence UserIntent = "request_evidence"
	IntentClarify         UserIntent = "clarify"
	IntentAddInformation  UserIntent = "add_information"
	IntentAskQuestion     UserIntent = "ask_question"
	IntentChallengeFact   UserIntent = "challenge_fact"
	IntentEndDebate       UserIntent = "end_debate"
)

// Agent names used in debate routing.
const (
	AgentSupervisor  = "supervisor"
	AgentReader      = "reader"
	AgentProWriter   = "pro_writer"
	AgentConWriter   = "con_writer"
	AgentFactChecker = "fact_checker"
)

// DebateMessage is one entry in a debate's conversation history.
type DebateMessage struct {
	Type    string `json:"type"`
	Name    string `json:"name"`
	Content string `json:"content"`
}

// DebateState holds the full mutable state of one debate session.
type DebateState struct {
	DebateID           string                 `json:"debate_id"`
	Article            string                 `json:"article"`
	Messages           []DebateMessage        `json:"messages"`
	Summary            string                 `json:"summary,omitempty"`
	ProArguments       []string               `json:"pro_arguments"`
	ConArguments       []string               `json:"con_arguments"`
	FactsChecked       map[string]interface{} `json:"facts_checked"`
	CurrentAgent       string                 `json:"current_agent,omitempty"`
	NextAgent          string                 `json:"next_agent,omitempty"`
	DebateComplete     bool                   `json:"debate_complete"`
	UserInput          string                 `json:"user_input,omitempty"`
	UserIntent         UserIntent             `json:"user_intent,omitempty"`
	LastMentionedTopic string                 `json:"last_mentioned_topic,omitempty"`
}

// DebateStore abstracts session storage so handlers never touch a global
// map directly.
type DebateStore interface {
	Get(id string) (*DebateState, bool)
	Put(state *DebateState)
	Delete(id string)
	Count() int
	All() []*DebateState
}

// MemoryDebateStore is the in-process DebateStore implementation.
type MemoryDebateStore struct {
	mu      sync.RWMutex
	debates map[string]*DebateState
}

// NewMemoryDebateStore creates an empty in-memory session store.
func NewMemoryDebateStore() *MemoryDebateStore {
	return &MemoryDebateStore{debates: make(map[string]*DebateState)}
}

func (s *MemoryDebateStore) Get(id string) (*DebateState, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	state, ok := s.debates[id]
	return state, ok
}

func (s *MemoryDebateStore) Put(state *DebateState) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.debates[state.DebateID] = state
}

func (s *MemoryDebateStore) Delete(id string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.debates, id)
}

func (s *MemoryDebateStore) Count() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.debates)
}

func (s *MemoryDebateStore) All() []*DebateState {
	s.mu.RLock()
	defer s.mu.RUnlock()
	all := make([]*DebateState, 0, len(s.debates))
	for _, state := range s.debates {
		all = append(all, state)
	}
	return all
}

// Cleanup trims the store once it exceeds maxDebates sessions, keeping
// the keepCount most active ones by message count.
func (s *MemoryDebateStore) Cleanup(maxDebates, keepCount int) int {
	s.mu.Lock()
	defer s.mu.Unlock()

	if len(s.debates) <= maxDebates {
		return 0
	}

	sorted := make([]*DebateState, 0, len(s.debates))
	for _, state := range s.debates {
		sorted = append(sorted, state)
	}
	sort.Slice(sorted, func(i, j int) bool {
		return len(sorted[i].Messages) < len(sorted[j].Messages)
	})

	removed := 0
	for _, state := range sorted {
		if len(s.debates) <= keepCount {
			break
		}
		delete(s.debates, state.DebateID)
		removed++
	}
	return removed
}

var endDebateWords = []string{"done", "exit", "quit", "stop", "end"}

func containsAny(text string, needles []string) bool {
	for _, n := range needles {
		if strings.Contains(text, n) {
			return true
		}
	}
	return false
}

// DetectUserIntent classifies free-form user input with keyword rules.
// Rules are checked in priority order and the first match wins.
func DetectUserIntent(input string) UserIntent {
	input = strings.ToLower(input)

	if containsAny(input, endDebateWords) {
		return IntentEndDebate
	}
	if containsAny(input, []string{"disagree", "incorrect", "wrong", "not true", "false", "mistaken"}) {
		return IntentDisagree
	}
	if containsAny(input, []string{"evidence", "proof", "source", "citation", "verify", "fact check", "support this"}) {
		return IntentRequestEvidence
	}
	if containsAny(input, []string{"clarify", "explain", "what do you mean", "don't understand", "confused", "unclear"}) {
		return IntentClarify
	}
	if containsAny(input, []string{"also", "addition", "add", "moreover", "furthermore", "consider", "point out"}) {
		return IntentAddInformation
	}
	if strings.Contains(input, "?") || containsAny(input, []string{"who", "what", "where", "when", "why", "how"}) {
		return IntentAskQuestion
	}
	if containsAny(input, []string{"actually", "in fact", "the truth is", "that's not accurate", "that's incorrect"}) {
		return IntentChallengeFact
	}
	return IntentGeneralComment
}

// DebateEngine drives multi-agent debates over an article.
type DebateEngine struct {
	llm       Completer
	factCheck *FactCheckClient
	store     DebateStore
	broadcast func(debateID string, msg DebateMessage)
}

// NewDebateEngine creates a debate engine. factCheck may be nil.
func NewDebateEngine(llm Completer, factCheck *FactCheckClient, store DebateStore) *DebateEngine {
	return &DebateEngine{llm: llm, factCheck: factCheck, store: store}
}

// SetBroadcast registers a callback invoked for every new debate message.
func (e *DebateEngine) SetBroadcast(fn func(debateID string, msg DebateMessage)) {
	e.broadcast = fn
}

// NewDebate creates and stores a fresh debate session for an article.
func (e *DebateEngine) NewDebate(article string) *DebateState {
	state := &DebateState{
		DebateID: uuid.New().String(),
		Article:  article,
		Messages: []DebateMessage{{
			Type:    "human",
			Name:    "system",
			Content: "Let's begin a debate about the article.",
		}},
		ProArguments: []string{},
		ConArguments: []string{},
		FactsChecked: map[string]interface{}{},
		NextAgent:    AgentSupervisor,
	}
	e.store.Put(state)
	return state
}

// appendMessage records a message and notifies any stream listeners.
func (e *DebateEngine) appendMessage(state *DebateState, msg DebateMessage) {
	state.Messages = append(state.Messages, msg)
	if e.broadcast != nil {
		e.broadcast(state.DebateID, msg)
	}
}

// recentContext renders the last few messages for prompt context.
func recentContext(state *DebateState) string {
	msgs := state.Messages
	if len(msgs) > 5 {
		msgs = msgs[len(msgs)-5:]
	}
	var b strings.Builder
	for _, m := range msgs {
		fmt.Fprintf(&b, "%s: %s\n", m.Name, m.Content)
	}
	return b.String()
}

// complete asks the LLM for an agent turn, degrading gracefully so one
// upstream failure never stalls the debate.
func (e *DebateEngine) complete(ctx context.Context, agent, system, user string) string {
	out, err := e.llm.Complete(ctx, system, user)
	if err != nil {
		Logger().Warning("Debate agent %s failed: %v", agent, err)
		return fmt.Sprintf("[Error generating %s response. Continuing debate...]", agent)
	}
	return strings.TrimSpace(out)
}

// runSupervisor advances routing and emits a supervisor message.
func (e *DebateEngine) runSupervisor(ctx context.Context, state *DebateState) {
	if state.UserIntent == IntentEndDebate {
		state.DebateComplete = true
		e.appendMessage(state, DebateMessage{
			Type:    "ai",
			Name:    AgentSupervisor,
			Content: "The debate has ended. Thank you for participating!",
		})
		return
	}

	// Nothing analyzed yet, hand off to the reader
	if state.Summary == "" {
		e.appendMessage(state, DebateMessage{
			Type:    "ai",
			Name:    AgentSupervisor,
			Content: "Let's begin by having our reader analyze the article in detail.",
		})
		state.CurrentAgent = AgentSupervisor
		state.NextAgent = AgentReader
		return
	}

	var prompt string
	switch {
	case state.UserIntent != "" && state.UserInput != "":
		desc := strings.ReplaceAll(string(state.UserIntent), "_", " ")
		prompt = fmt.Sprintf("The user has provided a %s: '%s'\nWhich agent should respond to this?", desc, state.UserInput)
	case state.CurrentAgent != "":
		prompt = fmt.Sprintf("The %s just finished. Which agent should go next?", state.CurrentAgent)
	default:
		prompt = "Let's start the debate. Which agent should go first?"
	}
	prompt += "\n\nRecent discussion:\n" + recentContext(state)

	message := e.complete(ctx, AgentSupervisor, supervisorPrompt, prompt)
	e.appendMessage(state, DebateMessage{Type: "ai", Name: AgentSupervisor, Content: message})

	state.NextAgent = e.routeNext(state, message)
	state.UserInput = ""
	state.UserIntent = ""
	state.CurrentAgent = AgentSupervisor
}

// routeNext picks the next agent from user intent first, then textual
// hints in the supervisor's message, then the standard rotation.
func (e *DebateEngine) routeNext(state *DebateState, supervisorMessage string) string {
	lower := strings.ToLower(supervisorMessage)
	current := state.CurrentAgent

	if state.UserIntent != "" {
		switch state.UserIntent {
		case IntentRequestEvidence, IntentChallengeFact:
			return AgentFactChecker
		case IntentDisagree:
			switch current {
			case AgentProWriter:
				return AgentConWriter
			case AgentConWriter:
				return AgentProWriter
			default:
				return AgentConWriter
			}
		case IntentClarify:
			if current != "" && current != AgentSupervisor {
				return current
			}
			return AgentReader
		}
	}

	switch {
	case strings.Contains(lower, "reader"), strings.Contains(lower, "article"):
		return AgentReader
	case strings.Contains(lower, "pro writer"), strings.Contains(lower, "in favor"):
		return AgentProWriter
	case strings.Contains(lower, "con writer"), strings.Contains(lower, "against"):
		return AgentConWriter
	case strings.Contains(lower, "fact check"), strings.Contains(lower, "verify"):
		return AgentFactChecker
	}

	if state.UserIntent == "" {
		switch current {
		case AgentReader:
			return AgentProWriter
		case AgentProWriter:
			return AgentConWriter
		case AgentConWriter:
			return AgentFactChecker
		case AgentFactChecker:
			return AgentProWriter
		}
	}
	return AgentReader
}

// runReader analyzes the article and stores the summary.
func (e *DebateEngine) runReader(ctx context.Context, state *DebateState) {
	var content string
	if state.Article == "" {
		content = "No article provided for analysis."
	} else {
		content = e.complete(ctx, AgentReader, readerPrompt,
			"Please analyze this article: "+state.Article)
	}

	state.Summary = content
	e.appendMessage(state, DebateMessage{Type: "ai", Name: AgentReader, Content: content})
	state.CurrentAgent = AgentReader
	state.NextAgent = AgentSupervisor
	state.LastMentionedTopic = "article analysis"
}

// intentGuidance adds per-intent instructions for a debating agent.
func intentGuidance(state *DebateState) string {
	if state.UserIntent == "" || state.UserInput == "" {
		return ""
	}
	guidance := fmt.Sprintf("\n\nThe user has said: '%s'", state.UserInput)
	switch state.UserIntent {
	case IntentDisagree:
		guidance += "\nPlease address their disagreement while maintaining your position."
	case IntentRequestEvidence:
		guidance += "\nPlease provide evidence for your claims."
	case IntentClarify:
		guidance += "\nPlease clarify your position in simpler terms."
	}
	return guidance
}

// runProWriter argues in favor of the article.
func (e *DebateEngine) runProWriter(ctx context.Context, state *DebateState) {
	var content string
	if state.Summary == "" {
		content = "I need an article summary to form arguments."
	} else {
		prompt := fmt.Sprintf("Here's the article summary: %s\n\nPlease provide arguments IN FAVOR of the viewpoints in the article.", state.Summary)
		prompt += intentGuidance(state)
		prompt += "\n\nRecent discussion:\n" + recentContext(state)
		content = e.complete(ctx, AgentProWriter, proWriterPrompt, prompt)
	}

	state.ProArguments = append(state.ProArguments, content)
	e.appendMessage(state, DebateMessage{Type: "ai", Name: AgentProWriter, Content: content})
	state.CurrentAgent = AgentProWriter
	state.NextAgent = AgentSupervisor
	state.LastMentionedTopic = "arguments in favor"
}

// runConWriter argues against the article.
func (e *DebateEngine) runConWriter(ctx context.Context, state *DebateState) {
	var content string
	if state.Summary == "" {
		content = "I need an article summary to form counter-arguments."
	} else {
		lastPro := ""
		if len(state.ProArguments) > 0 {
			lastPro = state.ProArguments[len(state.ProArguments)-1]
		}
		prompt := fmt.Sprintf("Here's the article summary: %s\n\nThe pro writer argued: %s\n\nPlease provide arguments AGAINST the viewpoints in the article.", state.Summary, lastPro)
		prompt += intentGuidance(state)
		prompt += "\n\nRecent discussion:\n" + recentContext(state)
		content = e.complete(ctx, AgentConWriter, conWriterPrompt, prompt)
	}

	state.ConArguments = append(state.ConArguments, content)
	e.appendMessage(state, DebateMessage{Type: "ai", Name: AgentConWriter, Content: content})
	state.CurrentAgent = AgentConWriter
	state.NextAgent = AgentSupervisor
	state.LastMentionedTopic = "arguments against"
}

// runFactChecker verifies the latest arguments from both sides.
func (e *DebateEngine) runFactChecker(ctx context.Context, state *DebateState) {
	lastPro, lastCon := "", ""
	if len(state.ProArguments) > 0 {
		lastPro = state.ProArguments[len(state.ProArguments)-1]
	}
	if len(state.ConArguments) > 0 {
		lastCon = state.ConArguments[len(state.ConArguments)-1]
	}

	var content string
	if lastPro == "" && lastCon == "" {
		content = "No arguments to fact check yet."
	} else {
		prompt := fmt.Sprintf("Please fact check these arguments:\n\nPro: %s\n\nCon: %s", lastPro, lastCon)
		if state.UserIntent != "" && state.UserInput != "" {
			prompt += fmt.Sprintf("\n\nThe user has said: '%s'", state.UserInput)
			switch state.UserIntent {
			case IntentChallengeFact:
				prompt += "\nPlease address their challenge to your fact check."
			case IntentRequestEvidence:
				prompt += "\nPlease provide additional evidence for your fact check."
			}
		}
		if e.factCheck != nil {
			if matches, err := e.factCheck.Lookup(ctx, lastPro); err == nil && len(matches) > 0 {
				prompt += fmt.Sprintf("\n\nPublished fact checks found: %d related claim reviews exist.", len(matches))
			}
		}
		content = e.complete(ctx, AgentFactChecker, factCheckerPrompt, prompt)
	}

	e.appendMessage(state, DebateMessage{Type: "ai", Name: AgentFactChecker, Content: content})

	key := fmt.Sprintf("fact_check_%d", len(state.FactsChecked)+1)
	lower := strings.ToLower(content)
	switch {
	case strings.Contains(lower, "unsupported"):
		state.FactsChecked[key] = false
	case strings.Contains(lower, "supported"):
		state.FactsChecked[key] = true
	default:
		state.FactsChecked[key] = "inconclusive"
	}

	state.CurrentAgent = AgentFactChecker
	state.NextAgent = AgentSupervisor
	state.LastMentionedTopic = "fact checking"
}

// StepResult is returned after each debate step.
type StepResult struct {
	DebateID       string         `json:"debate_id"`
	CurrentAgent   string         `json:"current_agent,omitempty"`
	NextAgent      string         `json:"next_agent,omitempty"`
	LatestMessage  *DebateMessage `json:"latest_message"`
	DebateComplete bool           `json:"debate_complete"`
	WaitingForUser bool           `json:"waiting_for_user"`
	Message        string         `json:"message,omitempty"`
}

// Step runs one debate step for the given session. Stepping a finished
// debate is a no-op that reports completion.
func (e *DebateEngine) Step(ctx context.Context, debateID string) (*StepResult, error) {
	state, ok := e.store.Get(debateID)
	if !ok {
		return nil, fmt.Errorf("debate not found")
	}

	if state.DebateComplete {
		return &StepResult{
			DebateID:       debateID,
			Message:        "Debate is already complete",
			DebateComplete: true,
			CurrentAgent:   state.CurrentAgent,
			LatestMessage:  latestMessage(state),
		}, nil
	}

	agent := state.NextAgent
	if agent == "" {
		agent = AgentSupervisor
	}

	switch agent {
	case AgentReader:
		e.runReader(ctx, state)
	case AgentProWriter:
		e.runProWriter(ctx, state)
	case AgentConWriter:
		e.runConWriter(ctx, state)
	case AgentFactChecker:
		e.runFactChecker(ctx, state)
	default:
		e.runSupervisor(ctx, state)
	}

	e.store.Put(state)

	return &StepResult{
		DebateID:       debateID,
		CurrentAgent:   state.CurrentAgent,
		NextAgent:      state.NextAgent,
		LatestMessage:  latestMessage(state),
		DebateComplete: state.DebateComplete,
		WaitingForUser: state.CurrentAgent != AgentSupervisor,
	}, nil
}

// SubmitInput records user input, classifies it, and runs the follow-up
// step.
func (e *DebateEngine) SubmitInput(ctx context.Context, debateID, input string) (*StepResult, error) {
	state, ok := e.store.Get(debateID)
	if !ok {
		return nil, fmt.Errorf("debate not found")
	}

	if state.DebateComplete {
		return &StepResult{
			DebateID:       debateID,
			Message:        "Debate is already complete",
			DebateComplete: true,
		}, nil
	}

	trimmed := strings.ToLower(strings.TrimSpace(input))
	isEndWord := false
	for _, w := range endDebateWords {
		if trimmed == w {
			isEndWord = true
			break
		}
	}

	if isEndWord {
		state.UserIntent = IntentEndDebate
		state.UserInput = input
	} else {
		state.UserIntent = DetectUserIntent(input)
		state.UserInput = input
		e.appendMessage(state, DebateMessage{Type: "human", Name: "user", Content: input})
	}
	state.NextAgent = AgentSupervisor
	e.store.Put(state)

	return e.Step(ctx, debateID)
}

func latestMessage(state *DebateState) *DebateMessage {
	if len(state.Messages) == 0 {
		return nil
	}
	msg := state.Messages[len(state.Messages)-1]
	return &msg
}
