package service

import (
	"errors"
	"time"

	"github.com/brightfold/studio-backend/internal/models"
	"github.com/brightfold/studio-backend/internal/repository"
	"github.com/brightfold/studio-backend/internal/utils"
	"github.com/brightfold/studio-backend/pkg/logger"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

var (
	ErrArticleNotFound = errors.New("article not found")
	ErrInvalidStatus   = errors.New("invalid status")
	ErrInvalidIntent   = errors.New("invalid search intent")
	ErrTitleRequired   = errors.New("title is required")
)

type ArticleService struct {
	articleRepo *repository.ArticleRepository
}

func NewArticleService(articleRepo *repository.ArticleRepository) *ArticleService {
	return &ArticleService{articleRepo: articleRepo}
}

// prepare validates the workflow fields and recomputes the derived
// columns (word count, reading time, SEO score) before any save.
func (s *ArticleService) prepare(article *models.Article) error {
	if article.Title == "" {
		return ErrTitleRequired
	}
	if article.Status == "" {
		article.Status = models.ArticleDraft
	}
	if !models.ValidArticleStatus(article.Status) {
		return ErrInvalidStatus
	}
	if !models.ValidSearchIntent(article.SearchIntent) {
		return ErrInvalidIntent
	}

	if article.Status == models.ArticlePublished && article.PublishedAt == nil {
		now := time.Now()
		article.PublishedAt = &now
	}

	article.WordCount = utils.CountWords(article.Content)
	article.ReadingTime = utils.ReadingTime(article.WordCount)
	article.SEOScore = utils.SEOScore(utils.SEOInput{
		Content:         article.Content,
		MetaTitle:       article.MetaTitle,
		MetaDescription: article.MetaDescription,
		PrimaryKeyword:  article.PrimaryKeyword,
		WordCount:       article.WordCount,
	})

	return nil
}

func (s *ArticleService) Create(article *models.Article) error {
	if err := s.prepare(article); err != nil {
		return err
	}

	err := createWithUniqueSlug(article.Slug, article.Title, s.articleRepo.SlugExists, func(slug string) error {
		article.Slug = slug
		return s.articleRepo.Create(article)
	})
	if err != nil {
		logger.Log.Error("Failed to create article",
			zap.String("slug", article.Slug),
			zap.Error(err),
		)
		return err
	}

	logger.Log.Info("Article created",
		zap.String("article_id", article.ID.String()),
		zap.String("slug", article.Slug),
		zap.Int("seo_score", article.SEOScore),
	)
	return nil
}

func (s *ArticleService) Update(id uuid.UUID, updated *models.Article) (*models.Article, error) {
	existing, err := s.articleRepo.GetByID(id)
	if err != nil {
		return nil, err
	}
	if existing == nil {
		return nil, ErrArticleNotFound
	}

	updated.ID = existing.ID
	updated.CreatedAt = existing.CreatedAt
	updated.ViewCount = existing.ViewCount
	// A payload that omits published_at must not reset the publish date
	// of an already-published article.
	if updated.PublishedAt == nil {
		updated.PublishedAt = existing.PublishedAt
	}

	if err := s.prepare(updated); err != nil {
		return nil, err
	}

	slug, err := uniqueSlug(updated.Slug, updated.Title, existing.Slug, s.articleRepo.SlugExists)
	if err != nil {
		return nil, err
	}
	updated.Slug = slug

	if err := s.articleRepo.Save(updated); err != nil {
		return nil, err
	}
	return updated, nil
}

func (s *ArticleService) Delete(id uuid.UUID) error {
	existing, err := s.articleRepo.GetByID(id)
	if err != nil {
		return err
	}
	if existing == nil {
		return ErrArticleNotFound
	}
	return s.articleRepo.Delete(id)
}

// GetBySlug returns the article, applying the visibility filter for
// non-admin callers. Invisible content is indistinguishable from
// absent content.
func (s *ArticleService) GetBySlug(slug string, isAdmin bool) (*models.Article, error) {
	article, err := s.articleRepo.GetBySlug(slug)
	if err != nil {
		return nil, err
	}
	if article == nil {
		return nil, ErrArticleNotFound
	}
	if !isAdmin && !article.IsVisible(time.Now()) {
		return nil, ErrArticleNotFound
	}
	return article, nil
}

func (s *ArticleService) List(opts repository.ListOptions, isAdmin bool) ([]models.Article, int64, error) {
	opts.PublicOnly = !isAdmin
	return s.articleRepo.List(opts)
}
