// Package mcp exposes the journal and the comfort provider over the Model
// Context Protocol.
package mcp

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"tableflip.dev/haeuso/pkg/app"
	"tableflip.dev/haeuso/pkg/comfort"
	"tableflip.dev/haeuso/pkg/emotion"
	"tableflip.dev/haeuso/pkg/entry"
	"tableflip.dev/haeuso/pkg/timeutil"
)

// Service adapts app.Service to the shapes the MCP tools return.
type Service struct {
	App *app.Service
}

var errNoApp = errors.New("journal is not configured")

// EntryDTO is a transport-friendly projection of an entry.
type EntryDTO struct {
	ID               string `json:"id"`
	Date             string `json:"date"`
	Emotion          string `json:"emotion"`
	EmotionLabel     string `json:"emotionLabel"`
	EmotionSymbol    string `json:"emotionSymbol"`
	CreatedISO       string `json:"createdAt"`
	ExpiresISO       string `json:"expiresAt"`
	ExpiresIn        string `json:"expiresIn"`
	ExpiresInSeconds int64  `json:"expiresInSeconds"`
}

// ReflectResult is returned by the reflect tool.
type ReflectResult struct {
	Category  string    `json:"category"`
	Message   string    `json:"message"`
	Resources []string  `json:"resources"`
	Entry     *EntryDTO `json:"entry,omitempty"`
	Warning   string    `json:"warning,omitempty"`
}

// UndoResult is returned by delete_entry and undo_delete.
type UndoResult struct {
	Entry      *EntryDTO `json:"entry,omitempty"`
	Restored   bool      `json:"restored"`
	UndoBefore string    `json:"undoBefore,omitempty"`
}

// NewService wraps a.
func NewService(a *app.Service) *Service {
	return &Service{App: a}
}

// Reflect gets a reply for content and records the entry.
func (s *Service) Reflect(ctx context.Context, content, em string) (*ReflectResult, error) {
	if s.App == nil {
		return nil, errNoApp
	}
	parsed := emotion.Default
	if strings.TrimSpace(em) != "" {
		var err error
		if parsed, err = emotion.Parse(em); err != nil {
			return nil, err
		}
	}
	r, err := s.App.Reflect(ctx, content, parsed)
	if r.Response.Category == "" {
		return nil, err
	}
	res := &ReflectResult{
		Category:  string(r.Response.Category),
		Message:   r.Response.Message,
		Resources: r.Response.Resources,
	}
	if r.Entry.ID != "" {
		dto := s.toDTO(r.Entry)
		res.Entry = &dto
	}
	if err != nil {
		res.Warning = fmt.Sprintf("entry was not saved: %v", err)
	}
	return res, nil
}

// ListEntries returns the active entries, most recent first.
func (s *Service) ListEntries(ctx context.Context) ([]EntryDTO, error) {
	if s.App == nil {
		return nil, errNoApp
	}
	all, err := s.App.Entries(ctx)
	if err != nil {
		return nil, err
	}
	out := make([]EntryDTO, 0, len(all))
	for _, e := range all {
		out = append(out, s.toDTO(e))
	}
	return out, nil
}

// DeleteEntry removes id and reports until when it can be restored.
func (s *Service) DeleteEntry(ctx context.Context, id string) (*UndoResult, error) {
	if s.App == nil {
		return nil, errNoApp
	}
	id = strings.TrimSpace(id)
	if id == "" {
		return nil, errors.New("id is required")
	}
	e, err := s.App.Delete(ctx, id)
	if err != nil && e.ID == "" {
		return nil, err
	}
	dto := s.toDTO(e)
	res := &UndoResult{Entry: &dto}
	if _, deadline, ok := s.App.Pending(); ok {
		res.UndoBefore = entry.FormatTime(deadline)
	}
	return res, err
}

// UndoDelete restores the most recently deleted entry if its window is
// still open.
func (s *Service) UndoDelete(ctx context.Context) (*UndoResult, error) {
	if s.App == nil {
		return nil, errNoApp
	}
	e, ok, err := s.App.Undo(ctx)
	if err != nil {
		return nil, err
	}
	if !ok {
		return &UndoResult{}, nil
	}
	dto := s.toDTO(e)
	return &UndoResult{Entry: &dto, Restored: true}, nil
}

// Insight summarizes the active entries over period, e.g. "7d" or "30d".
func (s *Service) Insight(ctx context.Context, period string) (comfort.Insight, error) {
	if s.App == nil {
		return comfort.Insight{}, errNoApp
	}
	days, err := timeutil.ParsePeriod(period)
	if err != nil {
		return comfort.Insight{}, err
	}
	return s.App.Insight(ctx, days)
}

func (s *Service) toDTO(e entry.Entry) EntryDTO {
	left := e.Remaining(s.App.Now())
	return EntryDTO{
		ID:               e.ID,
		Date:             e.Date,
		Emotion:          string(e.Emotion),
		EmotionLabel:     e.Emotion.Label(),
		EmotionSymbol:    e.Emotion.Glyph().Symbol,
		CreatedISO:       entry.FormatTime(e.CreatedAt.Time),
		ExpiresISO:       entry.FormatTime(e.ExpiresAt.Time),
		ExpiresIn:        timeutil.Remaining(left),
		ExpiresInSeconds: int64(left / time.Second),
	}
}
