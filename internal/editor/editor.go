// Package editor builds new articles and issues from drafts. Saves are
// simulated: results are logged and announced, never written back to the
// catalog.
package editor

import (
	"context"
	"fmt"
	"log/slog"
	"path"
	"strings"
	"sync"
	"time"

	validation "github.com/go-ozzo/ozzo-validation/v4"
	"github.com/google/uuid"

	"github.com/starford/techhub/internal/apperr"
	"github.com/starford/techhub/internal/models"
	"github.com/starford/techhub/internal/sse"
)

const maxTitleRunes = 200

// Default delays.
const (
	DefaultAutosaveDelay = 500 * time.Millisecond
	DefaultUploadDelay   = time.Second
)

// ArticleLookup resolves existing articles for edits.
type ArticleLookup interface {
	Article(id string) (models.Article, error)
}

// Publisher receives change notifications.
type Publisher interface {
	Publish(event sse.Event)
	PublishChange(typ string, data map[string]any)
}

// Config tunes the simulated latencies.
type Config struct {
	AutosaveDelay time.Duration
	UploadDelay   time.Duration
}

// ArticleDraft is the editor state of an article. ID is set when editing an
// existing article.
type ArticleDraft struct {
	ID      string         `json:"id,omitempty"`
	Title   string         `json:"title"`
	Content models.Content `json:"content"`
	Author  string         `json:"author"`
	Tags    []string       `json:"tags"`
}

// Validate checks the draft title.
func (d ArticleDraft) Validate() error {
	return validation.ValidateStruct(&d,
		validation.Field(&d.Title, validation.Required, validation.RuneLength(1, maxTitleRunes)),
	)
}

// IssueDraft is a new technical issue as submitted by a user.
type IssueDraft struct {
	Title       string          `json:"title"`
	Description string          `json:"description"`
	Solution    string          `json:"solution"`
	Tags        []string        `json:"tags"`
	Status      models.Status   `json:"status"`
	Priority    models.Priority `json:"priority"`
}

// Validate checks required fields and enumerations.
func (d IssueDraft) Validate() error {
	return validation.ValidateStruct(&d,
		validation.Field(&d.Title, validation.Required, validation.RuneLength(1, maxTitleRunes)),
		validation.Field(&d.Description, validation.Required),
		validation.Field(&d.Status, validation.In(anyOf(models.Statuses)...)),
		validation.Field(&d.Priority, validation.In(anyOf(models.Priorities)...)),
	)
}

func anyOf[T any](xs []T) []any {
	out := make([]any, len(xs))
	for i, x := range xs {
		out[i] = x
	}
	return out
}

// Service runs the simulated save operations.
type Service struct {
	articles ArticleLookup
	pub      Publisher
	logger   *slog.Logger
	cfg      Config
	now      func() time.Time

	mu      sync.Mutex
	closed  bool
	done    chan struct{}
	pending sync.WaitGroup
}

// New creates a Service. A nil publisher discards notifications.
func New(articles ArticleLookup, pub Publisher, logger *slog.Logger, cfg Config) *Service {
	if pub == nil {
		pub = nopPublisher{}
	}
	if logger == nil {
		logger = slog.Default()
	}
	if cfg.AutosaveDelay <= 0 {
		cfg.AutosaveDelay = DefaultAutosaveDelay
	}
	if cfg.UploadDelay <= 0 {
		cfg.UploadDelay = DefaultUploadDelay
	}
	return &Service{
		articles: articles,
		pub:      pub,
		logger:   logger,
		cfg:      cfg,
		now:      time.Now,
		done:     make(chan struct{}),
	}
}

// PublishArticle builds the published form of d. A draft without an ID gets
// a fresh one; a draft with an ID must name a known article and keeps its
// identity, creation time and view count.
func (s *Service) PublishArticle(ctx context.Context, d ArticleDraft) (models.Article, error) {
	if err := ctx.Err(); err != nil {
		return models.Article{}, err
	}
	if err := d.Validate(); err != nil {
		return models.Article{}, fmt.Errorf("%w: %v", apperr.ErrInvalid, err)
	}

	now := s.now()
	a := models.Article{
		ID:         uuid.NewString(),
		Title:      d.Title,
		Content:    d.Content,
		Author:     d.Author,
		Tags:       NormalizeTags(d.Tags),
		CreateTime: now,
		UpdateTime: now,
	}
	if d.ID != "" {
		existing, err := s.articles.Article(d.ID)
		if err != nil {
			return models.Article{}, err
		}
		a.ID = existing.ID
		a.CreateTime = existing.CreateTime
		a.Views = existing.Views
		if a.Author == "" {
			a.Author = existing.Author
		}
	}

	s.logger.Info("article published",
		slog.String("id", a.ID),
		slog.String("title", a.Title),
		slog.Any("tags", a.Tags),
		slog.Bool("edit", d.ID != ""),
	)
	s.pub.PublishChange(sse.TypeArticlePublished, map[string]any{"id": a.ID, "title": a.Title})
	return a, nil
}

// AutoSave records d after the autosave delay without blocking the caller.
// Saves of successive drafts are not ordered. After Close it does nothing.
func (s *Service) AutoSave(d ArticleDraft) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.closed {
		return
	}
	s.pending.Add(1)
	go func() {
		defer s.pending.Done()
		t := time.NewTimer(s.cfg.AutosaveDelay)
		defer t.Stop()
		select {
		case <-t.C:
		case <-s.done:
		}
		s.logger.Info("draft autosaved",
			slog.String("id", d.ID),
			slog.String("title", d.Title),
			slog.Int("tags", len(d.Tags)),
		)
		s.pub.Publish(sse.Event{Type: sse.TypeArticleAutosaved, Data: map[string]any{
			"id":       d.ID,
			"title":    d.Title,
			"saved_at": s.now(),
		}})
	}()
}

// UploadImage simulates an image upload and returns the URL it would be
// served from. Nothing is stored.
func (s *Service) UploadImage(ctx context.Context, name string, size int64) (string, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return "", fmt.Errorf("%w: file name is required", apperr.ErrInvalid)
	}
	if size < 0 {
		return "", fmt.Errorf("%w: negative size", apperr.ErrInvalid)
	}

	t := time.NewTimer(s.cfg.UploadDelay)
	defer t.Stop()
	select {
	case <-ctx.Done():
		return "", ctx.Err()
	case <-t.C:
	}

	url := "/uploads/" + uuid.NewString() + strings.ToLower(path.Ext(name))
	s.logger.Info("upload accepted",
		slog.String("name", name),
		slog.Int64("size", size),
		slog.String("url", url),
	)
	return url, nil
}

// CreateIssue builds a new issue from d. Status and priority default to open
// and medium.
func (s *Service) CreateIssue(ctx context.Context, d IssueDraft) (models.Issue, error) {
	if err := ctx.Err(); err != nil {
		return models.Issue{}, err
	}
	if err := d.Validate(); err != nil {
		return models.Issue{}, fmt.Errorf("%w: %v", apperr.ErrInvalid, err)
	}
	if d.Status == "" {
		d.Status = models.StatusOpen
	}
	if d.Priority == "" {
		d.Priority = models.PriorityMedium
	}

	is := models.Issue{
		ID:          uuid.NewString(),
		Title:       d.Title,
		Description: d.Description,
		Solution:    d.Solution,
		Tags:        NormalizeTags(d.Tags),
		CreateTime:  s.now(),
		Status:      d.Status,
		Priority:    d.Priority,
	}
	s.logger.Info("issue created",
		slog.String("id", is.ID),
		slog.String("title", is.Title),
		slog.String("status", string(is.Status)),
		slog.String("priority", string(is.Priority)),
	)
	s.pub.PublishChange(sse.TypeIssueCreated, map[string]any{"id": is.ID, "title": is.Title})
	return is, nil
}

// Close fires pending auto-saves immediately and waits for them.
func (s *Service) Close() {
	s.mu.Lock()
	if !s.closed {
		s.closed = true
		close(s.done)
	}
	s.mu.Unlock()
	s.pending.Wait()
}

type nopPublisher struct{}

func (nopPublisher) Publish(sse.Event)                   {}
func (nopPublisher) PublishChange(string, map[string]any) {}
