package repositories

import (
	"encoding/json"
	"os"
	"path/filepath"
	"sync"

	"journal-craft/models"
)

// fileDraftRepository keeps every draft in one JSON file, keyed by storage
// key. Writes go through a temp file rename so a crash never leaves a
// half-written store behind.
type fileDraftRepository struct {
	path string
	mu   sync.Mutex
}

func NewFileDraftRepository(path string) DraftRepository {
	return &fileDraftRepository{path: path}
}

func (r *fileDraftRepository) Load(key string) (*models.Article, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	drafts, err := r.readAll()
	if err != nil {
		return nil, err
	}
	raw, ok := drafts[key]
	if !ok {
		return nil, ErrDraftNotFound
	}

	var article models.Article
	if err := json.Unmarshal(raw, &article); err != nil {
		return nil, err
	}
	return &article, nil
}

func (r *fileDraftRepository) Save(key string, article *models.Article) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	drafts, err := r.readAll()
	if err != nil {
		return err
	}
	raw, err := json.Marshal(article)
	if err != nil {
		return err
	}
	drafts[key] = raw
	return r.writeAll(drafts)
}

func (r *fileDraftRepository) Delete(key string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	drafts, err := r.readAll()
	if err != nil {
		return err
	}
	if _, ok := drafts[key]; !ok {
		return ErrDraftNotFound
	}
	delete(drafts, key)
	return r.writeAll(drafts)
}

func (r *fileDraftRepository) readAll() (map[string]json.RawMessage, error) {
	data, err := os.ReadFile(r.path)
	if os.IsNotExist(err) {
		return map[string]json.RawMessage{}, nil
	}
	if err != nil {
		return nil, err
	}

	drafts := map[string]json.RawMessage{}
	if len(data) > 0 {
		if err := json.Unmarshal(data, &drafts); err != nil {
			return nil, err
		}
	}
	return drafts, nil
}

func (r *fileDraftRepository) writeAll(drafts map[string]json.RawMessage) error {
	if err := os.MkdirAll(filepath.Dir(r.path), 0o755); err != nil {
		return err
	}
	data, err := json.MarshalIndent(drafts, "", "  ")
	if err != nil {
		return err
	}
	tmp := r.path + ".tmp"
	if err := os.WriteFile(tmp, data, 0o644); err != nil {
		return err
	}
	return os.Rename(tmp, r.path)
}
