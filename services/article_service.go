package services

import (
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"journal-craft/config"
	"journal-craft/models"
	"journal-craft/repositories"
)

// ErrInvalidArticleShape is returned by ImportArticle when the payload does
// not look like an article export.
var ErrInvalidArticleShape = errors.New("invalid article format")

// ArticleStore keeps the working draft under a fixed storage key. Saves are
// debounced: rapid successive edits coalesce into one backend write. The
// storage backend is injected, so the renderer and orchestrator stay free of
// any persistence dependency.
type ArticleStore struct {
	repo       repositories.DraftRepository
	logger     *zap.Logger
	storageKey string
	debounce   time.Duration

	mu      sync.Mutex
	pending *models.Article
	timer   *time.Timer
}

func NewArticleStore(repo repositories.DraftRepository, logger *zap.Logger, storageKey string, debounce time.Duration) *ArticleStore {
	return &ArticleStore{
		repo:       repo,
		logger:     logger,
		storageKey: storageKey,
		debounce:   debounce,
	}
}

// Load returns the stored draft, or a fresh default article when nothing has
// been saved yet.
func (s *ArticleStore) Load() (*models.Article, error) {
	s.mu.Lock()
	if s.pending != nil {
		article := s.pending
		s.mu.Unlock()
		return article, nil
	}
	s.mu.Unlock()

	article, err := s.repo.Load(s.storageKey)
	if errors.Is(err, repositories.ErrDraftNotFound) {
		return DefaultArticle(), nil
	}
	return article, err
}

// Save schedules a debounced write of the draft. The latest snapshot wins.
func (s *ArticleStore) Save(article *models.Article) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.pending = article
	if s.debounce <= 0 {
		s.flushLocked()
		return
	}
	if s.timer != nil {
		s.timer.Stop()
	}
	s.timer = time.AfterFunc(s.debounce, func() {
		s.mu.Lock()
		defer s.mu.Unlock()
		s.flushLocked()
	})
}

// Flush writes any pending draft immediately. Called on shutdown and before
// export so the backend never lags a scheduled save.
func (s *ArticleStore) Flush() {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.timer != nil {
		s.timer.Stop()
		s.timer = nil
	}
	s.flushLocked()
}

func (s *ArticleStore) flushLocked() {
	if s.pending == nil {
		return
	}
	if err := s.repo.Save(s.storageKey, s.pending); err != nil {
		s.logger.Error("saving draft", zap.String("key", s.storageKey), zap.Error(err))
		return
	}
	s.pending = nil
}

// Reset discards the stored draft and returns a fresh default article.
func (s *ArticleStore) Reset() (*models.Article, error) {
	s.mu.Lock()
	s.pending = nil
	if s.timer != nil {
		s.timer.Stop()
		s.timer = nil
	}
	s.mu.Unlock()

	if err := s.repo.Delete(s.storageKey); err != nil && !errors.Is(err, repositories.ErrDraftNotFound) {
		return nil, err
	}
	return DefaultArticle(), nil
}

// ImportArticle parses an exported article JSON blob, accepting it only when
// the basic structural shape is present: id, metadata, abstract and a
// list-typed sections field.
func (s *ArticleStore) ImportArticle(data []byte) (*models.Article, error) {
	var shape map[string]json.RawMessage
	if err := json.Unmarshal(data, &shape); err != nil {
		return nil, ErrInvalidArticleShape
	}
	for _, field := range []string{"id", "metadata", "abstract", "sections"} {
		if _, ok := shape[field]; !ok {
			return nil, fmt.Errorf("%w: missing %s", ErrInvalidArticleShape, field)
		}
	}
	var sections []json.RawMessage
	if err := json.Unmarshal(shape["sections"], &sections); err != nil {
		return nil, fmt.Errorf("%w: sections must be a list", ErrInvalidArticleShape)
	}

	var article models.Article
	if err := json.Unmarshal(data, &article); err != nil {
		return nil, ErrInvalidArticleShape
	}
	return &article, nil
}

// DefaultArticle builds the starter draft: empty metadata, the journal's
// standard section skeleton and the current year.
func DefaultArticle() *models.Article {
	now := time.Now().UTC().Format(time.RFC3339)

	sections := make([]models.ArticleSection, len(config.DefaultSections))
	for i, title := range config.DefaultSections {
		sections[i] = models.ArticleSection{
			ID:          uuid.NewString(),
			Title:       title,
			Subsections: []models.ArticleSubsection{},
			Tables:      []models.TableData{},
			Order:       i,
		}
	}

	return &models.Article{
		ID:       uuid.NewString(),
		Status:   models.StatusDraft,
		Language: models.LanguageTR,
		Metadata: models.ArticleMetadata{
			JournalName: config.JournalName,
			Volume:      "",
			Issue:       "",
			Year:        fmt.Sprintf("%d", time.Now().Year()),
			Authors:     []models.Author{},
		},
		Abstract: models.AbstractSection{
			KeywordsEnglish: []string{},
			KeywordsTurkish: []string{},
		},
		Sections:  sections,
		CreatedAt: now,
		UpdatedAt: now,
	}
}

// ExportFilename derives a safe attachment filename from the draft's
// Turkish title: Turkish letters and spaces survive, everything else is
// stripped, capped at 50 runes, with a fixed fallback.
func ExportFilename(article *models.Article) string {
	name := sanitizeName(article.Metadata.TitleTurkish)
	if name == "" {
		name = "makale"
	}
	return name
}

func sanitizeName(title string) string {
	var b strings.Builder
	for _, r := range title {
		switch {
		case r >= 'a' && r <= 'z', r >= 'A' && r <= 'Z', r >= '0' && r <= '9':
			b.WriteRune(r)
		case strings.ContainsRune("ğüşıöçĞÜŞİÖÇ -", r):
			b.WriteRune(r)
		}
	}
	runes := []rune(b.String())
	if len(runes) > 50 {
		runes = runes[:50]
	}
	return strings.TrimSpace(string(runes))
}
