package handler_test

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/brightfold/studio-backend/internal/handler"
	"github.com/brightfold/studio-backend/internal/middleware"
	"github.com/brightfold/studio-backend/internal/models"
	"github.com/brightfold/studio-backend/internal/repository"
	"github.com/brightfold/studio-backend/internal/service"
	"github.com/brightfold/studio-backend/internal/testutil"
	"github.com/brightfold/studio-backend/internal/utils"
	"github.com/brightfold/studio-backend/pkg/logger"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/suite"
)

// ArticleHandlerIntegrationTestSuite exercises the article routes the
// way the router wires them: optional auth on reads, admin on writes.
type ArticleHandlerIntegrationTestSuite struct {
	suite.Suite
	testDB         *testutil.TestDatabase
	articleService *service.ArticleService
	router         *gin.Engine
}

func (s *ArticleHandlerIntegrationTestSuite) SetupSuite() {
	gin.SetMode(gin.TestMode)
	logger.Init(false)

	s.testDB = testutil.SetupTestDatabase(s.T())

	articleRepo := repository.NewArticleRepository(s.testDB.DB)
	s.articleService = service.NewArticleService(articleRepo)
	articleHandler := handler.NewArticleHandler(s.articleService, nil, nil)

	s.router = gin.New()

	public := s.router.Group("/api")
	public.Use(middleware.OptionalAuthMiddleware(testJWTSecret))
	{
		public.GET("/articles", articleHandler.List)
		public.GET("/articles/:slug", articleHandler.Get)
	}

	admin := s.router.Group("/api")
	admin.Use(middleware.AuthMiddleware(testJWTSecret), middleware.AdminMiddleware())
	{
		admin.POST("/articles", articleHandler.Create)
		admin.PUT("/articles/:id", articleHandler.Update)
		admin.DELETE("/articles/:id", articleHandler.Delete)
	}
}

func (s *ArticleHandlerIntegrationTestSuite) TearDownSuite() {
	s.testDB.Teardown(s.T())
}

func (s *ArticleHandlerIntegrationTestSuite) SetupTest() {
	testutil.CleanDatabase(s.T(), s.testDB.DB)
}

func (s *ArticleHandlerIntegrationTestSuite) request(method, path string, body any, token string) *httptest.ResponseRecorder {
	var buf *bytes.Buffer
	if body != nil {
		bodyBytes, _ := json.Marshal(body)
		buf = bytes.NewBuffer(bodyBytes)
	} else {
		buf = bytes.NewBuffer(nil)
	}

	req, _ := http.NewRequest(method, path, buf)
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	w := httptest.NewRecorder()
	s.router.ServeHTTP(w, req)
	return w
}

func (s *ArticleHandlerIntegrationTestSuite) tokenFor(role models.Role) string {
	user, err := testutil.CreateTestUser("Role Holder", uuid.NewString()+"@example.com", "Pass1234567", role)
	s.Require().NoError(err)
	s.Require().NoError(s.testDB.DB.Create(user).Error)

	token, err := utils.GenerateToken(user, testJWTSecret, time.Hour)
	s.Require().NoError(err)
	return token
}

func (s *ArticleHandlerIntegrationTestSuite) seedArticle(title string, status models.ArticleStatus) *models.Article {
	article := &models.Article{Title: title, Status: status}
	s.Require().NoError(s.articleService.Create(article))
	return article
}

func (s *ArticleHandlerIntegrationTestSuite) TestList_PublicSeesOnlyPublished() {
	s.seedArticle("Published Piece", models.ArticlePublished)
	s.seedArticle("Draft Piece", models.ArticleDraft)

	w := s.request(http.MethodGet, "/api/articles", nil, "")
	s.Require().Equal(http.StatusOK, w.Code)

	var response struct {
		Articles []models.Article `json:"articles"`
		Total    int64            `json:"total"`
	}
	s.Require().NoError(json.Unmarshal(w.Body.Bytes(), &response))
	s.Require().Len(response.Articles, 1)
	assert.Equal(s.T(), "published-piece", response.Articles[0].Slug)
	assert.EqualValues(s.T(), 1, response.Total)
}

func (s *ArticleHandlerIntegrationTestSuite) TestList_AdminSeesDrafts() {
	s.seedArticle("Published Piece", models.ArticlePublished)
	s.seedArticle("Draft Piece", models.ArticleDraft)

	w := s.request(http.MethodGet, "/api/articles", nil, s.tokenFor(models.RoleAdmin))
	s.Require().Equal(http.StatusOK, w.Code)

	var response struct {
		Articles []models.Article `json:"articles"`
	}
	s.Require().NoError(json.Unmarshal(w.Body.Bytes(), &response))
	assert.Len(s.T(), response.Articles, 2)
}

func (s *ArticleHandlerIntegrationTestSuite) TestGet_DraftHiddenFromPublic() {
	draft := s.seedArticle("Hidden Draft", models.ArticleDraft)

	w := s.request(http.MethodGet, "/api/articles/"+draft.Slug, nil, "")
	assert.Equal(s.T(), http.StatusNotFound, w.Code)

	// A logged-in non-admin is still public traffic.
	w = s.request(http.MethodGet, "/api/articles/"+draft.Slug, nil, s.tokenFor(models.RoleUser))
	assert.Equal(s.T(), http.StatusNotFound, w.Code)

	w = s.request(http.MethodGet, "/api/articles/"+draft.Slug, nil, s.tokenFor(models.RoleAdmin))
	assert.Equal(s.T(), http.StatusOK, w.Code)
}

func (s *ArticleHandlerIntegrationTestSuite) TestCreate_RequiresAdmin() {
	body := map[string]string{"title": "New Article", "status": "Published"}

	w := s.request(http.MethodPost, "/api/articles", body, "")
	assert.Equal(s.T(), http.StatusUnauthorized, w.Code)

	w = s.request(http.MethodPost, "/api/articles", body, s.tokenFor(models.RoleUser))
	assert.Equal(s.T(), http.StatusForbidden, w.Code)

	w = s.request(http.MethodPost, "/api/articles", body, s.tokenFor(models.RoleAdmin))
	assert.Equal(s.T(), http.StatusCreated, w.Code)

	var response struct {
		Article models.Article `json:"article"`
	}
	s.Require().NoError(json.Unmarshal(w.Body.Bytes(), &response))
	assert.Equal(s.T(), "new-article", response.Article.Slug)
	assert.NotNil(s.T(), response.Article.PublishedAt)
}

func (s *ArticleHandlerIntegrationTestSuite) TestCreate_ValidationError() {
	w := s.request(http.MethodPost, "/api/articles",
		map[string]string{"title": "Bad Status", "status": "live"},
		s.tokenFor(models.RoleAdmin))

	assert.Equal(s.T(), http.StatusBadRequest, w.Code)
}

func (s *ArticleHandlerIntegrationTestSuite) TestUpdate_UnknownID() {
	w := s.request(http.MethodPut, "/api/articles/"+uuid.NewString(),
		map[string]string{"title": "Whatever"},
		s.tokenFor(models.RoleAdmin))

	assert.Equal(s.T(), http.StatusNotFound, w.Code)
}

func (s *ArticleHandlerIntegrationTestSuite) TestDelete() {
	article := s.seedArticle("Doomed", models.ArticlePublished)
	adminToken := s.tokenFor(models.RoleAdmin)

	w := s.request(http.MethodDelete, "/api/articles/"+article.ID.String(), nil, adminToken)
	assert.Equal(s.T(), http.StatusOK, w.Code)

	w = s.request(http.MethodGet, "/api/articles/"+article.Slug, nil, adminToken)
	assert.Equal(s.T(), http.StatusNotFound, w.Code)
}

func TestArticleHandlerIntegrationTestSuite(t *testing.T) {
	suite.Run(t, new(ArticleHandlerIntegrationTestSuite))
}
