package repositories

import (
	"encoding/json"
	"sync"

	"journal-craft/models"
)

// memoryDraftRepository is the in-memory backend used in tests and for
// ephemeral deployments. Articles are stored as marshaled snapshots so a
// caller mutating its copy never leaks into the store.
type memoryDraftRepository struct {
	mu     sync.RWMutex
	drafts map[string][]byte
}

func NewMemoryDraftRepository() DraftRepository {
	return &memoryDraftRepository{drafts: map[string][]byte{}}
}

func (r *memoryDraftRepository) Load(key string) (*models.Article, error) {
	r.mu.RLock()
	raw, ok := r.drafts[key]
	r.mu.RUnlock()
	if !ok {
		return nil, ErrDraftNotFound
	}

	var article models.Article
	if err := json.Unmarshal(raw, &article); err != nil {
		return nil, err
	}
	return &article, nil
}

func (r *memoryDraftRepository) Save(key string, article *models.Article) error {
	raw, err := json.Marshal(article)
	if err != nil {
		return err
	}
	r.mu.Lock()
	r.drafts[key] = raw
	r.mu.Unlock()
	return nil
}

func (r *memoryDraftRepository) Delete(key string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.drafts[key]; !ok {
		return ErrDraftNotFound
	}
	delete(r.drafts, key)
	return nil
}
