package repositories

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"journal-craft/models"
)

func sampleArticle(title string) *models.Article {
	return &models.Article{
		ID: "sample",
		Metadata: models.ArticleMetadata{
			TitleTurkish: title,
			TitleEnglish: "Title",
			Authors:      []models.Author{{Name: "Yazar"}},
		},
	}
}

// Both lightweight backends must satisfy the same contract.
func repoUnderTest(t *testing.T, kind string) DraftRepository {
	t.Helper()
	switch kind {
	case "memory":
		return NewMemoryDraftRepository()
	case "file":
		return NewFileDraftRepository(filepath.Join(t.TempDir(), "drafts.json"))
	default:
		t.Fatalf("unknown backend %q", kind)
		return nil
	}
}

func TestDraftRepositoryContract(t *testing.T) {
	for _, kind := range []string{"memory", "file"} {
		t.Run(kind, func(t *testing.T) {
			repo := repoUnderTest(t, kind)

			_, err := repo.Load("missing")
			assert.ErrorIs(t, err, ErrDraftNotFound)

			require.NoError(t, repo.Save("key", sampleArticle("İlk")))
			loaded, err := repo.Load("key")
			require.NoError(t, err)
			assert.Equal(t, "İlk", loaded.Metadata.TitleTurkish)

			// Overwrite wins.
			require.NoError(t, repo.Save("key", sampleArticle("İkinci")))
			loaded, err = repo.Load("key")
			require.NoError(t, err)
			assert.Equal(t, "İkinci", loaded.Metadata.TitleTurkish)

			// Keys are independent.
			require.NoError(t, repo.Save("other", sampleArticle("Diğer")))
			loaded, err = repo.Load("key")
			require.NoError(t, err)
			assert.Equal(t, "İkinci", loaded.Metadata.TitleTurkish)

			require.NoError(t, repo.Delete("key"))
			_, err = repo.Load("key")
			assert.ErrorIs(t, err, ErrDraftNotFound)
			assert.ErrorIs(t, repo.Delete("key"), ErrDraftNotFound)
		})
	}
}

func TestMemoryRepositoryIsolatesSnapshots(t *testing.T) {
	repo := NewMemoryDraftRepository()
	article := sampleArticle("Özgün")
	require.NoError(t, repo.Save("key", article))

	// Mutating the caller's copy must not leak into the store.
	article.Metadata.TitleTurkish = "Değişti"

	loaded, err := repo.Load("key")
	require.NoError(t, err)
	assert.Equal(t, "Özgün", loaded.Metadata.TitleTurkish)
}

func TestFileRepositoryPersistsAcrossInstances(t *testing.T) {
	path := filepath.Join(t.TempDir(), "drafts.json")

	first := NewFileDraftRepository(path)
	require.NoError(t, first.Save("key", sampleArticle("Kalıcı")))

	second := NewFileDraftRepository(path)
	loaded, err := second.Load("key")
	require.NoError(t, err)
	assert.Equal(t, "Kalıcı", loaded.Metadata.TitleTurkish)

	// No stray temp file left behind.
	_, err = os.Stat(path + ".tmp")
	assert.True(t, os.IsNotExist(err))
}

func TestFileRepositoryCreatesParentDir(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "deep", "drafts.json")
	repo := NewFileDraftRepository(path)

	require.NoError(t, repo.Save("key", sampleArticle("Yeni")))
	_, err := os.Stat(path)
	assert.NoError(t, err)
}
