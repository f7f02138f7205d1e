package generator

import (
	"context"
	"errors"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"
)

var (
	// ErrEmptyInput is returned for blank submissions; nothing is appended.
	ErrEmptyInput = errors.New("message is empty")
	// ErrBusy is returned while a completion is in flight; nothing is appended.
	ErrBusy = errors.New("a reply is already being generated")
)

const (
	// Greeting opens every conversation.
	Greeting = "Hello! I'm your assistant for building the perfect landing page for your startup. Tell me about your project: what problem do you solve, and for whom?"
	// FailureReply is appended when the completion gateway fails.
	FailureReply = "Sorry, a technical problem occurred. Please try again."
)

// State of the conversation.
type State int

const (
	StateIdle State = iota
	StateAwaitingCompletion
)

func (s State) String() string {
	if s == StateAwaitingCompletion {
		return "awaiting_completion"
	}
	return "idle"
}

// Turn is what one submission produced.
type Turn struct {
	User       ConversationMessage
	Assistant  ConversationMessage
	Extraction Extraction
}

// Session 持有一次会话的消息日志和状态；同一时间只允许一个请求在途。
type Session struct {
	ID string

	mu      sync.Mutex
	agent   *Agent
	state   State
	history []ConversationMessage
	now     func() time.Time
}

// NewSession creates a session whose log starts with the greeting.
func NewSession(id string, agent *Agent) *Session {
	s := &Session{
		ID:    id,
		agent: agent,
		now:   time.Now,
	}
	s.history = append(s.history, s.message(SenderAssistant, Greeting, true))
	return s
}

// Submit appends the user turn, asks the model, and appends its reply. On a
// gateway error the failure reply is appended and the error returned with
// the turn; current is never modified here.
func (s *Session) Submit(ctx context.Context, text string, current *ContentModel) (Turn, error) {
	if strings.TrimSpace(text) == "" {
		return Turn{}, ErrEmptyInput
	}

	s.mu.Lock()
	if s.state == StateAwaitingCompletion {
		s.mu.Unlock()
		return Turn{}, ErrBusy
	}
	user := s.message(SenderUser, text, false)
	s.history = append(s.history, user)
	s.state = StateAwaitingCompletion
	log := append([]ConversationMessage(nil), s.history...)
	s.mu.Unlock()

	ex, err := s.agent.Generate(ctx, log, current)

	s.mu.Lock()
	defer s.mu.Unlock()
	s.state = StateIdle
	if err != nil {
		reply := s.message(SenderAssistant, FailureReply, true)
		s.history = append(s.history, reply)
		return Turn{User: user, Assistant: reply}, err
	}
	reply := s.message(SenderAssistant, ex.DisplayText, false)
	s.history = append(s.history, reply)
	return Turn{User: user, Assistant: reply, Extraction: ex}, nil
}

// Messages returns a copy of the log in insertion order.
func (s *Session) Messages() []ConversationMessage {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]ConversationMessage(nil), s.history...)
}

func (s *Session) State() State {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.state
}

func (s *Session) message(sender Sender, text string, local bool) ConversationMessage {
	return ConversationMessage{
		ID:        uuid.NewString(),
		Text:      text,
		Sender:    sender,
		Timestamp: s.now(),
		Local:     local,
	}
}
