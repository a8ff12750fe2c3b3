package views

import (
	"testing"
	"time"

	"github.com/brightfold/studio-backend/internal/models"
	"github.com/brightfold/studio-backend/internal/repository"
	"github.com/brightfold/studio-backend/internal/testutil"
	"github.com/brightfold/studio-backend/pkg/logger"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func setupCounter(t *testing.T) (*Counter, *testutil.TestDatabase, *testutil.TestRedis) {
	require.NoError(t, logger.Init(false))

	testDB := testutil.SetupTestDatabase(t)
	t.Cleanup(func() { testDB.Teardown(t) })
	testutil.CleanDatabase(t, testDB.DB)

	testRedis := testutil.SetupTestRedis(t)
	t.Cleanup(func() { testRedis.Teardown(t) })

	counter, err := NewCounter(testRedis.URL, repository.NewArticleRepository(testDB.DB), time.Hour)
	require.NoError(t, err)
	t.Cleanup(counter.Stop)

	return counter, testDB, testRedis
}

func createArticle(t *testing.T, testDB *testutil.TestDatabase, slug string) *models.Article {
	article := &models.Article{
		Title:  "Article " + slug,
		Slug:   slug,
		Status: models.ArticlePublished,
	}
	require.NoError(t, testDB.DB.Create(article).Error)
	return article
}

func TestCounter_RecordAndFlush(t *testing.T) {
	counter, testDB, _ := setupCounter(t)

	first := createArticle(t, testDB, "first")
	second := createArticle(t, testDB, "second")

	counter.Record(first.ID)
	counter.Record(first.ID)
	counter.Record(first.ID)
	counter.Record(second.ID)

	counter.Flush()

	// Fresh destination per query: reusing the struct would carry the
	// first row's primary key into the second query's conditions.
	var storedFirst models.Article
	require.NoError(t, testDB.DB.First(&storedFirst, "id = ?", first.ID).Error)
	assert.EqualValues(t, 3, storedFirst.ViewCount)

	var storedSecond models.Article
	require.NoError(t, testDB.DB.First(&storedSecond, "id = ?", second.ID).Error)
	assert.EqualValues(t, 1, storedSecond.ViewCount)
}

func TestCounter_StopWithoutStartFlushes(t *testing.T) {
	counter, testDB, testRedis := setupCounter(t)

	article := createArticle(t, testDB, "stopped")
	counter.Record(article.ID)

	// Stop must not hang when the background flusher never ran, and
	// still drains pending counts.
	counter.Stop()

	var stored models.Article
	require.NoError(t, testDB.DB.First(&stored, "id = ?", article.ID).Error)
	assert.EqualValues(t, 1, stored.ViewCount)
	assert.False(t, testRedis.Server.Exists(keyPrefix+article.ID.String()))
}

func TestCounter_StartThenStopFlushes(t *testing.T) {
	counter, testDB, _ := setupCounter(t)

	article := createArticle(t, testDB, "lifecycle")

	counter.Start()
	counter.Record(article.ID)
	counter.Record(article.ID)
	counter.Stop()

	var stored models.Article
	require.NoError(t, testDB.DB.First(&stored, "id = ?", article.ID).Error)
	assert.EqualValues(t, 2, stored.ViewCount)
}

func TestCounter_FlushDrainsPendingKeys(t *testing.T) {
	counter, testDB, testRedis := setupCounter(t)

	article := createArticle(t, testDB, "drained")
	counter.Record(article.ID)
	counter.Flush()

	assert.False(t, testRedis.Server.Exists(keyPrefix+article.ID.String()))

	// A second flush with nothing pending must not double count.
	counter.Flush()

	var stored models.Article
	require.NoError(t, testDB.DB.First(&stored, "id = ?", article.ID).Error)
	assert.EqualValues(t, 1, stored.ViewCount)
}

func TestCounter_FlushAccumulates(t *testing.T) {
	counter, testDB, _ := setupCounter(t)

	article := createArticle(t, testDB, "accumulated")

	counter.Record(article.ID)
	counter.Flush()
	counter.Record(article.ID)
	counter.Record(article.ID)
	counter.Flush()

	var stored models.Article
	require.NoError(t, testDB.DB.First(&stored, "id = ?", article.ID).Error)
	assert.EqualValues(t, 3, stored.ViewCount)
}

func TestCounter_IgnoresUnknownKeys(t *testing.T) {
	counter, testDB, testRedis := setupCounter(t)

	article := createArticle(t, testDB, "known")
	counter.Record(article.ID)

	// Garbage in the keyspace must not break the flush.
	require.NoError(t, testRedis.Server.Set(keyPrefix+"not-a-uuid", "5"))
	require.NoError(t, testRedis.Server.Set(keyPrefix+uuid.NewString(), "oops"))

	counter.Flush()

	var stored models.Article
	require.NoError(t, testDB.DB.First(&stored, "id = ?", article.ID).Error)
	assert.EqualValues(t, 1, stored.ViewCount)
}

func TestNewCounter_BadURL(t *testing.T) {
	require.NoError(t, logger.Init(false))

	_, err := NewCounter("not-a-redis-url", nil, time.Minute)
	assert.Error(t, err)
}
