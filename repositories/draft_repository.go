package repositories

import (
	"encoding/json"
	"errors"
	"time"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"journal-craft/models"
)

// ErrDraftNotFound is returned when no draft exists under the given key.
var ErrDraftNotFound = errors.New("draft not found")

// DraftRepository is the storage backend of the ArticleStore. One draft per
// storage key, last write wins.
type DraftRepository interface {
	Load(key string) (*models.Article, error)
	Save(key string, article *models.Article) error
	Delete(key string) error
}

// Draft is the database row: the article is stored as a JSON payload so the
// schema never chases the article shape.
type Draft struct {
	Key       string    `gorm:"primarykey;column:key"`
	Payload   []byte    `gorm:"column:payload"`
	UpdatedAt time.Time `gorm:"column:updated_at"`
}

type draftRepository struct {
	db *gorm.DB
}

// NewDraftRepository returns the postgres-backed draft store. The drafts
// table is migrated on construction.
func NewDraftRepository(db *gorm.DB) (DraftRepository, error) {
	if err := db.AutoMigrate(&Draft{}); err != nil {
		return nil, err
	}
	return &draftRepository{db: db}, nil
}

func (r *draftRepository) Load(key string) (*models.Article, error) {
	var draft Draft
	err := r.db.First(&draft, "key = ?", key).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrDraftNotFound
	}
	if err != nil {
		return nil, err
	}

	var article models.Article
	if err := json.Unmarshal(draft.Payload, &article); err != nil {
		return nil, err
	}
	return &article, nil
}

func (r *draftRepository) Save(key string, article *models.Article) error {
	payload, err := json.Marshal(article)
	if err != nil {
		return err
	}
	draft := Draft{Key: key, Payload: payload, UpdatedAt: time.Now()}
	return r.db.Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "key"}},
		DoUpdates: clause.AssignmentColumns([]string{"payload", "updated_at"}),
	}).Create(&draft).Error
}

func (r *draftRepository) Delete(key string) error {
	return r.db.Delete(&Draft{}, "key = ?", key).Error
}
