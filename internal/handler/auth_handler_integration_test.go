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
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/suite"
)

const testJWTSecret = "test-secret-key"

// AuthHandlerIntegrationTestSuite drives the auth routes through the
// real router, middleware included.
type AuthHandlerIntegrationTestSuite struct {
	suite.Suite
	testDB      *testutil.TestDatabase
	authService *service.AuthService
	router      *gin.Engine
}

func (s *AuthHandlerIntegrationTestSuite) SetupSuite() {
	gin.SetMode(gin.TestMode)
	logger.Init(false)

	s.testDB = testutil.SetupTestDatabase(s.T())

	userRepo := repository.NewUserRepository(s.testDB.DB)
	s.authService = service.NewAuthService(userRepo, testJWTSecret, 1*time.Hour, "development")
	authHandler := handler.NewAuthHandler(s.authService, nil)

	s.router = gin.New()
	auth := s.router.Group("/api/auth")
	{
		auth.POST("/register", authHandler.Register)
		auth.POST("/login", authHandler.Login)
		auth.POST("/google", authHandler.GoogleLogin)

		protected := auth.Group("")
		protected.Use(middleware.AuthMiddleware(testJWTSecret), middleware.AdminMiddleware())
		{
			protected.GET("/users", authHandler.GetUsers)
			protected.PUT("/users/:id/role", authHandler.UpdateRole)
		}
	}
}

func (s *AuthHandlerIntegrationTestSuite) TearDownSuite() {
	s.testDB.Teardown(s.T())
}

func (s *AuthHandlerIntegrationTestSuite) SetupTest() {
	testutil.CleanDatabase(s.T(), s.testDB.DB)
}

func (s *AuthHandlerIntegrationTestSuite) postJSON(path string, body any, token string) *httptest.ResponseRecorder {
	return s.doJSON(http.MethodPost, path, body, token)
}

func (s *AuthHandlerIntegrationTestSuite) doJSON(method, path string, body any, token string) *httptest.ResponseRecorder {
	bodyBytes, _ := json.Marshal(body)
	req, _ := http.NewRequest(method, path, bytes.NewBuffer(bodyBytes))
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	w := httptest.NewRecorder()
	s.router.ServeHTTP(w, req)
	return w
}

// adminToken seeds an admin and returns a signed token for them.
func (s *AuthHandlerIntegrationTestSuite) adminToken() (*models.User, string) {
	admin, err := testutil.DefaultAdminUser()
	s.Require().NoError(err)
	s.Require().NoError(s.testDB.DB.Create(admin).Error)

	token, err := utils.GenerateToken(admin, testJWTSecret, time.Hour)
	s.Require().NoError(err)
	return admin, token
}

func (s *AuthHandlerIntegrationTestSuite) TestRegisterSuccess() {
	w := s.postJSON("/api/auth/register", map[string]string{
		"name":     "New User",
		"email":    "newuser@example.com",
		"password": "SecurePass123",
	}, "")

	assert.Equal(s.T(), http.StatusCreated, w.Code)

	var response map[string]interface{}
	s.Require().NoError(json.Unmarshal(w.Body.Bytes(), &response))
	assert.Equal(s.T(), true, response["success"])
	assert.NotEmpty(s.T(), response["token"])

	user := response["user"].(map[string]interface{})
	assert.Equal(s.T(), "New User", user["name"])
	assert.Equal(s.T(), "newuser@example.com", user["email"])
	assert.Equal(s.T(), "user", user["role"])

	var tokenCookie *http.Cookie
	for _, cookie := range w.Result().Cookies() {
		if cookie.Name == "token" {
			tokenCookie = cookie
		}
	}
	s.Require().NotNil(tokenCookie, "register should set a session cookie")
	assert.True(s.T(), tokenCookie.HttpOnly)
	assert.Equal(s.T(), http.SameSiteLaxMode, tokenCookie.SameSite)
	assert.False(s.T(), tokenCookie.Secure, "cookie is not Secure outside production")
}

func (s *AuthHandlerIntegrationTestSuite) TestRegisterDuplicateEmail() {
	existing, err := testutil.DefaultTestUser()
	s.Require().NoError(err)
	s.Require().NoError(s.testDB.DB.Create(existing).Error)

	w := s.postJSON("/api/auth/register", map[string]string{
		"name":     "Different Name",
		"email":    "test@example.com",
		"password": "SecurePass123",
	}, "")

	assert.Equal(s.T(), http.StatusConflict, w.Code)

	var response map[string]interface{}
	json.Unmarshal(w.Body.Bytes(), &response)
	assert.Contains(s.T(), response["message"], "already registered")
}

func (s *AuthHandlerIntegrationTestSuite) TestRegisterInvalidInput() {
	testCases := []struct {
		name    string
		reqBody map[string]string
	}{
		{
			name:    "Missing fields",
			reqBody: map[string]string{"email": "test@example.com"},
		},
		{
			name: "Invalid email",
			reqBody: map[string]string{
				"name":     "Test User",
				"email":    "invalid-email",
				"password": "Pass123456",
			},
		},
		{
			name: "Short password",
			reqBody: map[string]string{
				"name":     "Test User",
				"email":    "test@example.com",
				"password": "short",
			},
		},
	}

	for _, tc := range testCases {
		s.Run(tc.name, func() {
			w := s.postJSON("/api/auth/register", tc.reqBody, "")
			assert.Equal(s.T(), http.StatusBadRequest, w.Code)
		})
	}
}

func (s *AuthHandlerIntegrationTestSuite) TestLoginSuccess() {
	user, err := testutil.DefaultTestUser()
	s.Require().NoError(err)
	s.Require().NoError(s.testDB.DB.Create(user).Error)

	w := s.postJSON("/api/auth/login", map[string]string{
		"email":    "test@example.com",
		"password": "Test123456",
	}, "")

	assert.Equal(s.T(), http.StatusOK, w.Code)

	var response map[string]interface{}
	s.Require().NoError(json.Unmarshal(w.Body.Bytes(), &response))
	assert.Equal(s.T(), true, response["success"])
	assert.NotEmpty(s.T(), response["token"])
	assert.NotEmpty(s.T(), w.Result().Cookies())

	got := response["user"].(map[string]interface{})
	assert.Equal(s.T(), "test@example.com", got["email"])
}

func (s *AuthHandlerIntegrationTestSuite) TestLoginWrongPassword() {
	user, err := testutil.DefaultTestUser()
	s.Require().NoError(err)
	s.Require().NoError(s.testDB.DB.Create(user).Error)

	w := s.postJSON("/api/auth/login", map[string]string{
		"email":    "test@example.com",
		"password": "WrongPass123",
	}, "")

	assert.Equal(s.T(), http.StatusUnauthorized, w.Code)

	var response map[string]interface{}
	json.Unmarshal(w.Body.Bytes(), &response)
	assert.Equal(s.T(), "invalid credentials", response["message"])
}

func (s *AuthHandlerIntegrationTestSuite) TestLoginUnknownEmail() {
	w := s.postJSON("/api/auth/login", map[string]string{
		"email":    "nobody@example.com",
		"password": "SomePass123",
	}, "")

	assert.Equal(s.T(), http.StatusUnauthorized, w.Code)
}

func (s *AuthHandlerIntegrationTestSuite) TestGoogleLogin_InvalidToken() {
	w := s.postJSON("/api/auth/google", map[string]string{
		"id_token": "not-a-jwt",
	}, "")

	assert.Equal(s.T(), http.StatusUnauthorized, w.Code)
}

func (s *AuthHandlerIntegrationTestSuite) TestGetUsers_RequiresAdmin() {
	user, err := testutil.DefaultTestUser()
	s.Require().NoError(err)
	s.Require().NoError(s.testDB.DB.Create(user).Error)

	// No token at all.
	w := s.doJSON(http.MethodGet, "/api/auth/users", nil, "")
	assert.Equal(s.T(), http.StatusUnauthorized, w.Code)

	// Valid token for a non-admin.
	userToken, err := utils.GenerateToken(user, testJWTSecret, time.Hour)
	s.Require().NoError(err)
	w = s.doJSON(http.MethodGet, "/api/auth/users", nil, userToken)
	assert.Equal(s.T(), http.StatusForbidden, w.Code)

	// Admin sees the account list.
	_, adminToken := s.adminToken()
	w = s.doJSON(http.MethodGet, "/api/auth/users", nil, adminToken)
	assert.Equal(s.T(), http.StatusOK, w.Code)

	var response map[string]interface{}
	s.Require().NoError(json.Unmarshal(w.Body.Bytes(), &response))
	users := response["users"].([]interface{})
	assert.Len(s.T(), users, 2)
	for _, u := range users {
		fields := u.(map[string]interface{})
		assert.NotContains(s.T(), fields, "password_hash")
	}
}

func (s *AuthHandlerIntegrationTestSuite) TestUpdateRole_Promote() {
	user, err := testutil.DefaultTestUser()
	s.Require().NoError(err)
	s.Require().NoError(s.testDB.DB.Create(user).Error)

	_, adminToken := s.adminToken()

	w := s.doJSON(http.MethodPut, "/api/auth/users/"+user.ID.String()+"/role",
		map[string]string{"role": "admin"}, adminToken)

	assert.Equal(s.T(), http.StatusOK, w.Code)

	var stored models.User
	s.Require().NoError(s.testDB.DB.First(&stored, "id = ?", user.ID).Error)
	assert.Equal(s.T(), models.RoleAdmin, stored.Role)
}

func (s *AuthHandlerIntegrationTestSuite) TestUpdateRole_SelfDemotionRefused() {
	admin, adminToken := s.adminToken()

	w := s.doJSON(http.MethodPut, "/api/auth/users/"+admin.ID.String()+"/role",
		map[string]string{"role": "user"}, adminToken)

	assert.Equal(s.T(), http.StatusForbidden, w.Code)

	var stored models.User
	s.Require().NoError(s.testDB.DB.First(&stored, "id = ?", admin.ID).Error)
	assert.Equal(s.T(), models.RoleAdmin, stored.Role, "role must be unchanged")
}

func (s *AuthHandlerIntegrationTestSuite) TestAuth_CookieTransport() {
	_, adminToken := s.adminToken()

	req, _ := http.NewRequest(http.MethodGet, "/api/auth/users", nil)
	req.AddCookie(&http.Cookie{Name: "token", Value: adminToken})
	w := httptest.NewRecorder()
	s.router.ServeHTTP(w, req)

	assert.Equal(s.T(), http.StatusOK, w.Code, "cookie token should work like the bearer header")
}

func TestAuthHandlerIntegrationTestSuite(t *testing.T) {
	suite.Run(t, new(AuthHandlerIntegrationTestSuite))
}
