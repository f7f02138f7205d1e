// Package studio owns one user's working state: the conversation, the page on
// display, the record it is saved as, and the cached list of saved pages.
package studio

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"landing_page_studio/generator"
	"landing_page_studio/pages"
)

var (
	// ErrNoContent is returned by edits when no page is on display.
	ErrNoContent = errors.New("no landing page to edit")
	// ErrInvalidContent wraps content model validation failures.
	ErrInvalidContent = errors.New("invalid landing page content")
)

// View is the screen the user is looking at.
type View string

const (
	ViewChat    View = "chat"
	ViewPreview View = "preview"
)

// Notice is a transient, dismissable message for the user.
type Notice struct {
	Level   string    `json:"level"`
	Message string    `json:"message"`
	At      time.Time `json:"at"`
}

// Snapshot is a read-only copy of the studio state.
type Snapshot struct {
	SessionID string                          `json:"session_id"`
	View      View                            `json:"view"`
	State     string                          `json:"state"`
	Content   *generator.ContentModel         `json:"content"`
	CurrentID string                          `json:"current_id,omitempty"`
	Unsaved   bool                            `json:"unsaved"`
	Messages  []generator.ConversationMessage `json:"messages"`
	Pages     []pages.Record                  `json:"pages"`
	Notices   []Notice                        `json:"notices,omitempty"`
}

// Studio is the single owner of session state; every mutation goes through it.
type Studio struct {
	conv   *generator.Session
	store  pages.Store
	logger *slog.Logger

	mu        sync.Mutex
	view      View
	content   *generator.ContentModel
	currentID string
	unsaved   bool
	records   []pages.Record
	notices   []Notice
}

func New(conv *generator.Session, store pages.Store, logger *slog.Logger) (*Studio, error) {
	if conv == nil {
		return nil, errors.New("conversation session required")
	}
	if store == nil {
		return nil, errors.New("page store required")
	}
	if logger == nil {
		logger = slog.Default()
	}
	return &Studio{
		conv:   conv,
		store:  store,
		logger: logger.With("session", conv.ID),
		view:   ViewChat,
	}, nil
}

// Submit sends text to the conversation. A valid payload becomes the page on
// display and is saved. ErrEmptyInput and ErrBusy are returned untouched;
// a gateway failure becomes a notice and the returned turn carries the
// failure reply.
func (s *Studio) Submit(ctx context.Context, text string) (generator.Turn, error) {
	s.mu.Lock()
	current := s.content
	if current != nil {
		c := current.Clone()
		current = &c
	}
	s.mu.Unlock()

	turn, err := s.conv.Submit(ctx, text, current)
	if errors.Is(err, generator.ErrEmptyInput) || errors.Is(err, generator.ErrBusy) {
		return turn, err
	}
	if err != nil {
		s.logger.Error("completion failed", "error", err)
		s.notify("error", "The assistant could not answer: "+err.Error())
		return turn, err
	}

	content, ok := turn.Extraction.Valid()
	if !ok {
		return turn, nil
	}
	if turn.Extraction.Coerced != "" {
		s.notify("warning", fmt.Sprintf("Unknown theme %q replaced by default.", turn.Extraction.Coerced))
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	s.content = &content
	s.view = ViewPreview
	// a failed save leaves the page on display, flagged unsaved
	_ = s.saveLocked(ctx)
	return turn, nil
}

// OnNewContentModel publishes model as the page on display and saves it:
// create when nothing is current, update otherwise.
func (s *Studio) OnNewContentModel(ctx context.Context, model generator.ContentModel) error {
	model.Theme = generator.NormalizeTheme(string(model.Theme))
	if err := model.Validate(); err != nil {
		return fmt.Errorf("%w: %v", ErrInvalidContent, err)
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	c := model.Clone()
	s.content = &c
	return s.saveLocked(ctx)
}

// Edit replaces the page on display with a user-edited version.
func (s *Studio) Edit(ctx context.Context, model generator.ContentModel) error {
	s.mu.Lock()
	hasContent := s.content != nil
	s.mu.Unlock()
	if !hasContent {
		return ErrNoContent
	}
	return s.OnNewContentModel(ctx, model)
}

// SetTheme changes only the theme of the page on display.
func (s *Studio) SetTheme(ctx context.Context, theme string) error {
	t, ok := generator.ParseTheme(theme)
	if !ok {
		return fmt.Errorf("%w: unknown theme %q", ErrInvalidContent, theme)
	}
	s.mu.Lock()
	if s.content == nil {
		s.mu.Unlock()
		return ErrNoContent
	}
	model := s.content.Clone()
	s.mu.Unlock()

	model.Theme = t
	return s.OnNewContentModel(ctx, model)
}

// Select loads a saved page by id and shows it.
func (s *Studio) Select(ctx context.Context, id string) error {
	rec, err := s.store.Get(ctx, id)
	if err != nil {
		if !errors.Is(err, pages.ErrNotFound) {
			s.logger.Error("load landing page failed", "id", id, "error", err)
			s.notify("error", "Could not load the landing page: "+err.Error())
		}
		return err
	}
	s.SelectRecord(rec)
	return nil
}

// SelectRecord adopts rec as the current page.
func (s *Studio) SelectRecord(rec pages.Record) {
	content := rec.Content()
	s.mu.Lock()
	defer s.mu.Unlock()
	s.currentID = rec.ID
	s.content = &content
	s.unsaved = false
	s.view = ViewPreview
}

// New starts a fresh page. The conversation log is kept for the session.
func (s *Studio) New() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.currentID = ""
	s.content = nil
	s.unsaved = false
	s.view = ViewChat
}

// SetView switches between the chat and the preview.
func (s *Studio) SetView(v View) error {
	if v != ViewChat && v != ViewPreview {
		return fmt.Errorf("unknown view %q", v)
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	s.view = v
	return nil
}

// Delete removes a saved page. There is no undo.
func (s *Studio) Delete(ctx context.Context, id string) error {
	if err := s.store.Delete(ctx, id); err != nil {
		if !errors.Is(err, pages.ErrNotFound) {
			s.logger.Error("delete landing page failed", "id", id, "error", err)
			s.notify("error", "Could not delete the landing page: "+err.Error())
		}
		return err
	}
	s.logger.Info("landing page deleted", "id", id)

	s.mu.Lock()
	defer s.mu.Unlock()
	if s.currentID == id {
		s.currentID = ""
		s.unsaved = s.content != nil
	}
	s.refreshLocked(ctx)
	return nil
}

// Refresh reloads the cached list of saved pages.
func (s *Studio) Refresh(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.refreshLocked(ctx)
}

// Snapshot copies the state and drains pending notices.
func (s *Studio) Snapshot() Snapshot {
	s.mu.Lock()
	defer s.mu.Unlock()
	snap := Snapshot{
		SessionID: s.conv.ID,
		View:      s.view,
		State:     s.conv.State().String(),
		CurrentID: s.currentID,
		Unsaved:   s.unsaved,
		Messages:  s.conv.Messages(),
		Pages:     append([]pages.Record(nil), s.records...),
		Notices:   s.notices,
	}
	if s.content != nil {
		c := s.content.Clone()
		snap.Content = &c
	}
	s.notices = nil
	return snap
}

// Content returns the page on display, if any.
func (s *Studio) Content() (generator.ContentModel, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.content == nil {
		return generator.ContentModel{}, false
	}
	return s.content.Clone(), true
}

// saveLocked persists s.content. On failure the page stays on display,
// flagged unsaved, and the next save retries.
func (s *Studio) saveLocked(ctx context.Context) error {
	fields := pages.FieldsFromContent(*s.content)

	var (
		rec pages.Record
		err error
	)
	if s.currentID == "" {
		rec, err = s.store.Create(ctx, fields)
	} else {
		rec, err = s.store.Update(ctx, s.currentID, fields)
	}
	if err != nil {
		s.unsaved = true
		s.logger.Error("save landing page failed", "id", s.currentID, "error", err)
		s.notifyLocked("error", "Could not save the landing page: "+err.Error())
		return err
	}

	s.currentID = rec.ID
	s.unsaved = false
	s.logger.Info("landing page saved", "id", rec.ID, "company", rec.CompanyName)
	s.refreshLocked(ctx)
	return nil
}

func (s *Studio) refreshLocked(ctx context.Context) error {
	recs, err := s.store.List(ctx)
	if err != nil {
		s.logger.Warn("refresh landing pages failed", "error", err)
		s.notifyLocked("warning", "Could not refresh saved pages: "+err.Error())
		return err
	}
	s.records = recs
	return nil
}

func (s *Studio) notify(level, msg string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.notifyLocked(level, msg)
}

func (s *Studio) notifyLocked(level, msg string) {
	s.notices = append(s.notices, Notice{Level: level, Message: msg, At: time.Now()})
}
