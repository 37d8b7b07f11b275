// Package usecase owns the conversation-state core: the collection of
// conversations, the active-conversation pointer, the sample-mode gate and
// the single in-flight request flag. Every operation is a total function;
// rejected inputs are silent no-ops reported through a bool, never a panic
// or an error the caller must branch on.
package usecase

import (
	"context"
	"errors"
	"log/slog"
	"sort"
	"strings"
	"time"

	"chatterpal/internal/domain"
	"chatterpal/internal/integrations/agent"
)

// User-visible fallback strings. These are part of the UX contract and must
// not be reworded.
const (
	fallbackEmptyReply  = "Sorry, I could not process that. Can you try again?"
	fallbackAgentError  = "Oops, something went wrong. Let me try again!"
	fallbackUnreachable = "Oops, could not reach your friend. Try again?"
)

// AgentClient is the remote-agent collaborator consumed by ChatService.
type AgentClient interface {
	Invoke(ctx context.Context, prompt, agentID string, session agent.Session) (agent.Result, error)
}

// Store persists the full conversation collection for one slot.
type Store interface {
	Load(ctx context.Context) ([]domain.Conversation, error)
	Save(ctx context.Context, convos []domain.Conversation) error
}

// SendRequest describes an agent invocation prepared by BeginSend or
// BeginRetry and finished by FinishSend.
type SendRequest struct {
	ConversationID string
	Prompt         string
}

// ChatService holds the chat client state and applies every mutation as a
// whole-collection replace. It is event-loop-local: all mutating methods
// must be called from a single goroutine. Invoke is the only method safe to
// call concurrently, it touches construction-time fields only.
type ChatService struct {
	store   Store
	agent   AgentClient
	agentID string
	log     *slog.Logger

	conversations []domain.Conversation
	samples       []domain.Conversation
	activeID      string
	sampleMode    bool
	inFlight      bool
	draft         string
}

// Seams for deterministic tests.
var (
	newID   = domain.NewID
	timeNow = time.Now
)

// NewChatService wires the state core to its collaborators.
func NewChatService(st Store, ag AgentClient, agentID string, logger *slog.Logger) (*ChatService, error) {
	if st == nil {
		return nil, errors.New("usecase: store must not be nil")
	}
	if ag == nil {
		return nil, errors.New("usecase: agent client must not be nil")
	}
	if strings.TrimSpace(agentID) == "" {
		return nil, errors.New("usecase: agent id must not be empty")
	}
	if logger == nil {
		logger = slog.Default()
	}
	return &ChatService{
		store:   st,
		agent:   ag,
		agentID: agentID,
		log:     logger,
		samples: domain.SampleConversations(),
	}, nil
}

// Load replaces the live collection from the store and points the active
// conversation at the most recently updated entry. Store problems degrade
// to an empty collection; they are logged, never surfaced.
func (s *ChatService) Load(ctx context.Context) {
	convos, err := s.store.Load(ctx)
	if err != nil {
		s.log.Warn("loading conversations failed, starting empty", "err", err)
		convos = nil
	}
	s.conversations = convos
	s.activeID = mostRecentlyUpdatedID(convos)
}

// NewConversation creates an empty conversation at the front of the live
// collection, makes it active and clears the draft. No-op in sample mode.
func (s *ChatService) NewConversation() bool {
	if s.sampleMode {
		return false
	}
	now := timeNow()
	c := domain.Conversation{
		ID:        newID(),
		Title:     domain.DefaultTitle,
		Messages:  domain.MessageList{},
		CreatedAt: now,
		UpdatedAt: now,
	}
	s.conversations = append([]domain.Conversation{c}, s.conversations...)
	s.activeID = c.ID
	s.draft = ""
	s.persist()
	return true
}

// DeleteConversation removes id from the live collection. When the active
// conversation is removed, the most recently updated survivor becomes
// active. No-op when id is unknown or sample mode is on.
func (s *ChatService) DeleteConversation(id string) bool {
	if s.sampleMode {
		return false
	}
	remaining := make([]domain.Conversation, 0, len(s.conversations))
	found := false
	for _, c := range s.conversations {
		if c.ID == id {
			found = true
			continue
		}
		remaining = append(remaining, c)
	}
	if !found {
		return false
	}
	s.conversations = remaining
	if s.activeID == id {
		s.activeID = mostRecentlyUpdatedID(remaining)
	}
	s.persist()
	return true
}

// SelectConversation activates id if it exists in the visible collection.
func (s *ChatService) SelectConversation(id string) bool {
	for _, c := range s.visible() {
		if c.ID == id {
			s.activeID = id
			return true
		}
	}
	return false
}

// BeginSend performs the synchronous half of sending: input rejection, the
// auto-created conversation, the user-message append, the once-only title
// derivation, and raising the in-flight flag. The returned request must be
// resolved with FinishSend exactly once.
func (s *ChatService) BeginSend(text string) (SendRequest, bool) {
	text = strings.TrimSpace(text)
	if text == "" || s.inFlight || s.sampleMode {
		return SendRequest{}, false
	}

	now := timeNow()
	idx := s.findLive(s.activeID)
	if idx < 0 {
		c := domain.Conversation{
			ID:        newID(),
			Title:     domain.Truncate(text, domain.TitleLimit),
			Messages:  domain.MessageList{},
			CreatedAt: now,
			UpdatedAt: now,
		}
		s.conversations = append([]domain.Conversation{c}, s.conversations...)
		s.activeID = c.ID
		idx = 0
	}

	userMsg := domain.Message{
		ID:        newID(),
		Role:      domain.RoleUser,
		Content:   text,
		Timestamp: now,
	}

	next := make([]domain.Conversation, len(s.conversations))
	copy(next, s.conversations)
	c := next[idx]
	if len(c.Messages) == 0 {
		c.Title = domain.Truncate(text, domain.TitleLimit)
	}
	c.Messages = append(append(domain.MessageList{}, c.Messages...), userMsg)
	c.UpdatedAt = now
	next[idx] = c
	s.conversations = next

	s.draft = ""
	s.inFlight = true
	s.persist()
	return SendRequest{ConversationID: c.ID, Prompt: text}, true
}

// BeginRetry truncates the active conversation back to its last user
// message, discarding every trailing assistant message, and prepares a
// re-send of that message's original content. No duplicate user message is
// appended. No-op when there is no user message to retry.
func (s *ChatService) BeginRetry() (SendRequest, bool) {
	if s.sampleMode || s.inFlight {
		return SendRequest{}, false
	}
	idx := s.findLive(s.activeID)
	if idx < 0 {
		return SendRequest{}, false
	}
	msgs := s.conversations[idx].Messages
	last := -1
	for i := len(msgs) - 1; i >= 0; i-- {
		if msgs[i].Role == domain.RoleUser {
			last = i
			break
		}
	}
	if last < 0 {
		return SendRequest{}, false
	}

	next := make([]domain.Conversation, len(s.conversations))
	copy(next, s.conversations)
	c := next[idx]
	c.Messages = append(domain.MessageList{}, msgs[:last+1]...)
	next[idx] = c
	s.conversations = next

	s.inFlight = true
	s.persist()
	return SendRequest{ConversationID: c.ID, Prompt: msgs[last].Content}, true
}

// Invoke calls the remote agent for a prepared request, correlating the
// conversation as the agent-side session. Safe to run off the event loop.
func (s *ChatService) Invoke(ctx context.Context, req SendRequest) (agent.Result, error) {
	return s.agent.Invoke(ctx, req.Prompt, s.agentID, agent.Session{SessionID: req.ConversationID})
}

// FinishSend resolves an in-flight request with the agent outcome and
// appends the assistant message: the extracted reply on success, the
// reported error string on failure, or a fixed fallback for an empty
// reply, a blank error, or a transport failure. The in-flight flag clears
// on every path.
func (s *ChatService) FinishSend(convID string, res agent.Result, err error) {
	defer func() {
		s.inFlight = false
	}()

	var content string
	var isErr bool
	switch {
	case err != nil:
		content = fallbackUnreachable
		isErr = true
	case res.Success:
		content = agent.ExtractText(res.Response)
		if content == "" {
			content = fallbackEmptyReply
		}
	default:
		content = res.Error
		if content == "" {
			content = fallbackAgentError
		}
		isErr = true
	}

	idx := s.findLive(convID)
	if idx < 0 {
		// Conversation deleted while the request was in flight; drop the reply.
		return
	}

	now := timeNow()
	reply := domain.Message{
		ID:        newID(),
		Role:      domain.RoleAssistant,
		Content:   content,
		Timestamp: now,
		Error:     isErr,
	}

	next := make([]domain.Conversation, len(s.conversations))
	copy(next, s.conversations)
	c := next[idx]
	c.Messages = append(append(domain.MessageList{}, c.Messages...), reply)
	c.UpdatedAt = now
	next[idx] = c
	s.conversations = next
	s.persist()
}

// Send is the synchronous composition of BeginSend, Invoke and FinishSend
// for callers without an event loop.
func (s *ChatService) Send(ctx context.Context, text string) bool {
	req, ok := s.BeginSend(text)
	if !ok {
		return false
	}
	res, err := s.Invoke(ctx, req)
	s.FinishSend(req.ConversationID, res, err)
	return true
}

// Retry is the synchronous composition of BeginRetry, Invoke and FinishSend.
func (s *ChatService) Retry(ctx context.Context) bool {
	req, ok := s.BeginRetry()
	if !ok {
		return false
	}
	res, err := s.Invoke(ctx, req)
	s.FinishSend(req.ConversationID, res, err)
	return true
}

// SetSampleMode toggles the read-only demo view. Turning it on activates
// the first sample conversation in declared order; turning it off reloads
// the live collection from the store.
func (s *ChatService) SetSampleMode(ctx context.Context, on bool) {
	s.sampleMode = on
	if on {
		s.activeID = ""
		if len(s.samples) > 0 {
			s.activeID = s.samples[0].ID
		}
		return
	}
	s.Load(ctx)
}

// Visible returns the currently displayed collection, most recently
// updated first.
func (s *ChatService) Visible() []domain.Conversation {
	src := s.visible()
	out := make([]domain.Conversation, len(src))
	copy(out, src)
	sort.SliceStable(out, func(i, j int) bool {
		return out[i].UpdatedAt.After(out[j].UpdatedAt)
	})
	return out
}

// Active returns a copy of the active conversation, or nil when none is
// active in the visible collection.
func (s *ChatService) Active() *domain.Conversation {
	for _, c := range s.visible() {
		if c.ID == s.activeID {
			out := c
			out.Messages = append(domain.MessageList{}, c.Messages...)
			return &out
		}
	}
	return nil
}

func (s *ChatService) ActiveID() string { return s.activeID }

func (s *ChatService) InFlight() bool { return s.inFlight }

func (s *ChatService) SampleMode() bool { return s.sampleMode }

func (s *ChatService) Draft() string { return s.draft }

func (s *ChatService) SetDraft(text string) { s.draft = text }

func (s *ChatService) visible() []domain.Conversation {
	if s.sampleMode {
		return s.samples
	}
	return s.conversations
}

func (s *ChatService) findLive(id string) int {
	if id == "" {
		return -1
	}
	for i, c := range s.conversations {
		if c.ID == id {
			return i
		}
	}
	return -1
}

// persist mirrors the live collection to storage. Sample data is never
// written; write failures are logged and swallowed, the in-memory state
// stays authoritative for the session.
func (s *ChatService) persist() {
	if s.sampleMode {
		return
	}
	if err := s.store.Save(context.Background(), s.conversations); err != nil {
		s.log.Warn("saving conversations failed", "err", err)
	}
}

func mostRecentlyUpdatedID(convos []domain.Conversation) string {
	id := ""
	var best time.Time
	for _, c := range convos {
		if id == "" || c.UpdatedAt.After(best) {
			id = c.ID
			best = c.UpdatedAt
		}
	}
	return id
}
