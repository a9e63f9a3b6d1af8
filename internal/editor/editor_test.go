package editor

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/starford/techhub/internal/apperr"
	"github.com/starford/techhub/internal/models"
	"github.com/starford/techhub/internal/sse"
)

type stubArticles map[string]models.Article

func (s stubArticles) Article(id string) (models.Article, error) {
	a, ok := s[id]
	if !ok {
		return models.Article{}, fmt.Errorf("%w: %s", apperr.ErrNotFound, id)
	}
	return a, nil
}

type recordingPublisher struct {
	mu     sync.Mutex
	events []sse.Event
}

func (p *recordingPublisher) Publish(e sse.Event) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.events = append(p.events, e)
}

func (p *recordingPublisher) PublishChange(typ string, data map[string]any) {
	p.Publish(sse.Event{Type: typ, Data: data})
}

func (p *recordingPublisher) types() []string {
	p.mu.Lock()
	defer p.mu.Unlock()
	out := make([]string, len(p.events))
	for i, e := range p.events {
		out[i] = e.Type
	}
	return out
}

func newService(t *testing.T, cfg Config) (*Service, *recordingPublisher, *bytes.Buffer) {
	t.Helper()
	var buf bytes.Buffer
	pub := &recordingPublisher{}
	known := stubArticles{"1": {
		ID:         "1",
		Title:      "old",
		Author:     "张三",
		Views:      42,
		CreateTime: time.Date(2024, 3, 15, 8, 0, 0, 0, time.UTC),
	}}
	s := New(known, pub, slog.New(slog.NewJSONHandler(&buf, nil)), cfg)
	t.Cleanup(s.Close)
	return s, pub, &buf
}

func TestPublishNewArticle(t *testing.T) {
	s, pub, logs := newService(t, Config{})
	a, err := s.PublishArticle(context.Background(), ArticleDraft{
		Title:   "Go 1.23",
		Content: models.RawContent("# Go\nrange over func"),
		Tags:    []string{" Go ", "", "Backend", "Go"},
	})
	if err != nil {
		t.Fatalf("PublishArticle: %v", err)
	}
	if a.ID == "" || a.ID == "1" {
		t.Errorf("id = %q, want fresh", a.ID)
	}
	if strings.Join(a.Tags, ",") != "Go,Backend" {
		t.Errorf("tags = %v", a.Tags)
	}
	if a.Views != 0 || a.CreateTime.IsZero() || !a.CreateTime.Equal(a.UpdateTime) {
		t.Errorf("article = %+v", a)
	}
	if got := pub.types(); len(got) != 1 || got[0] != sse.TypeArticlePublished {
		t.Errorf("events = %v", got)
	}
	if !strings.Contains(logs.String(), `"msg":"article published"`) {
		t.Errorf("logs = %s", logs.String())
	}
}

func TestPublishEditKeepsIdentity(t *testing.T) {
	s, _, _ := newService(t, Config{})
	a, err := s.PublishArticle(context.Background(), ArticleDraft{ID: "1", Title: "new"})
	if err != nil {
		t.Fatalf("PublishArticle: %v", err)
	}
	if a.ID != "1" || a.Views != 42 || a.Author != "张三" || a.Title != "new" {
		t.Errorf("article = %+v", a)
	}
	if !a.UpdateTime.After(a.CreateTime) {
		t.Errorf("update %v not after create %v", a.UpdateTime, a.CreateTime)
	}
}

func TestPublishEditUnknown(t *testing.T) {
	s, _, _ := newService(t, Config{})
	_, err := s.PublishArticle(context.Background(), ArticleDraft{ID: "nope", Title: "x"})
	if !errors.Is(err, apperr.ErrNotFound) {
		t.Errorf("err = %v, want ErrNotFound", err)
	}
}

func TestPublishValidation(t *testing.T) {
	s, pub, _ := newService(t, Config{})
	cases := []ArticleDraft{
		{Title: ""},
		{Title: strings.Repeat("题", maxTitleRunes+1)},
	}
	for _, d := range cases {
		if _, err := s.PublishArticle(context.Background(), d); !errors.Is(err, apperr.ErrInvalid) {
			t.Errorf("title %d runes: err = %v", len([]rune(d.Title)), err)
		}
	}
	if _, err := s.PublishArticle(context.Background(), ArticleDraft{Title: strings.Repeat("题", maxTitleRunes)}); err != nil {
		t.Errorf("max length title rejected: %v", err)
	}
	if n := len(pub.types()); n != 1 {
		t.Errorf("events = %d, want 1", n)
	}
}

func TestAutoSaveAfterDelay(t *testing.T) {
	s, pub, _ := newService(t, Config{AutosaveDelay: 20 * time.Millisecond})
	s.AutoSave(ArticleDraft{Title: "draft"})
	if n := len(pub.types()); n != 0 {
		t.Fatalf("saved before delay: %d events", n)
	}

	deadline := time.Now().Add(2 * time.Second)
	for len(pub.types()) == 0 {
		if time.Now().After(deadline) {
			t.Fatal("autosave never fired")
		}
		time.Sleep(5 * time.Millisecond)
	}
	if got := pub.types()[0]; got != sse.TypeArticleAutosaved {
		t.Errorf("event = %s", got)
	}
}

func TestCloseFlushesPendingAutoSaves(t *testing.T) {
	s, pub, _ := newService(t, Config{AutosaveDelay: time.Hour})
	s.AutoSave(ArticleDraft{Title: "a"})
	s.AutoSave(ArticleDraft{Title: "b"})
	s.Close()
	if n := len(pub.types()); n != 2 {
		t.Errorf("events after close = %d, want 2", n)
	}
	s.AutoSave(ArticleDraft{Title: "late"})
	s.Close()
	if n := len(pub.types()); n != 2 {
		t.Errorf("autosave after close recorded: %d", n)
	}
}

func TestUploadImage(t *testing.T) {
	s, _, _ := newService(t, Config{UploadDelay: time.Millisecond})
	url, err := s.UploadImage(context.Background(), "Diagram.PNG", 1024)
	if err != nil {
		t.Fatalf("UploadImage: %v", err)
	}
	if !strings.HasPrefix(url, "/uploads/") || !strings.HasSuffix(url, ".png") {
		t.Errorf("url = %q", url)
	}
	if _, err := s.UploadImage(context.Background(), " ", 1); !errors.Is(err, apperr.ErrInvalid) {
		t.Errorf("empty name err = %v", err)
	}
}

func TestUploadImageCanceled(t *testing.T) {
	s, _, _ := newService(t, Config{UploadDelay: time.Hour})
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Millisecond)
	defer cancel()
	if _, err := s.UploadImage(ctx, "a.png", 1); !errors.Is(err, context.DeadlineExceeded) {
		t.Errorf("err = %v, want deadline exceeded", err)
	}
}

func TestCreateIssueDefaults(t *testing.T) {
	s, pub, _ := newService(t, Config{})
	is, err := s.CreateIssue(context.Background(), IssueDraft{
		Title:       "构建失败",
		Description: "OOM",
		Tags:        []string{"Build", "Build"},
	})
	if err != nil {
		t.Fatalf("CreateIssue: %v", err)
	}
	if is.Status != models.StatusOpen || is.Priority != models.PriorityMedium {
		t.Errorf("defaults = %s/%s", is.Status, is.Priority)
	}
	if len(is.Tags) != 1 || is.ID == "" {
		t.Errorf("issue = %+v", is)
	}
	if got := pub.types(); len(got) != 1 || got[0] != sse.TypeIssueCreated {
		t.Errorf("events = %v", got)
	}
}

func TestCreateIssueValidation(t *testing.T) {
	s, _, _ := newService(t, Config{})
	cases := map[string]IssueDraft{
		"no title":       {Description: "d"},
		"no description": {Title: "t"},
		"bad status":     {Title: "t", Description: "d", Status: "closed"},
		"bad priority":   {Title: "t", Description: "d", Priority: "urgent"},
	}
	for name, d := range cases {
		if _, err := s.CreateIssue(context.Background(), d); !errors.Is(err, apperr.ErrInvalid) {
			t.Errorf("%s: err = %v", name, err)
		}
	}
	if _, err := s.CreateIssue(context.Background(), IssueDraft{
		Title: "t", Description: "d", Status: models.StatusResolved, Priority: models.PriorityHigh,
	}); err != nil {
		t.Errorf("valid enums rejected: %v", err)
	}
}
