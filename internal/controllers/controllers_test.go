package controllers

import (
	"bytes"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"

	"folio-be/internal/entities"
	"folio-be/internal/middleware"
	"folio-be/internal/repository"
	"folio-be/internal/service"
	"folio-be/internal/token"
)

// In-memory repositories so the full request path (router, controllers,
// services) runs without a database.

type memUserRepo struct {
	usersByEmail map[string]*entities.User
	usersByID    map[string]*entities.User
	nextID       int
}

func newMemUserRepo() *memUserRepo {
	return &memUserRepo{
		usersByEmail: make(map[string]*entities.User),
		usersByID:    make(map[string]*entities.User),
	}
}

func (m *memUserRepo) Create(email, passwordHash, fullName string, balance float64) (*entities.User, error) {
	m.nextID++
	user := &entities.User{
		ID:           fmt.Sprintf("user-%d", m.nextID),
		Email:        email,
		PasswordHash: passwordHash,
		FullName:     fullName,
		Balance:      balance,
		CreatedAt:    time.Now(),
	}
	m.usersByEmail[email] = user
	m.usersByID[user.ID] = user
	return user, nil
}

func (m *memUserRepo) FindByEmail(email string) (*entities.User, error) {
	if user, ok := m.usersByEmail[email]; ok {
		return user, nil
	}
	return nil, repository.ErrNotFound
}

func (m *memUserRepo) FindByID(id string) (*entities.User, error) {
	if user, ok := m.usersByID[id]; ok {
		return user, nil
	}
	return nil, repository.ErrNotFound
}

func (m *memUserRepo) UpdateBalance(id string, balance float64) error {
	if user, ok := m.usersByID[id]; ok {
		user.Balance = balance
	}
	return nil
}

type memPortfolioRepo struct {
	holdingsByUser map[string][]*entities.Holding
	failWith       error
	nextID         int
}

func newMemPortfolioRepo() *memPortfolioRepo {
	return &memPortfolioRepo{holdingsByUser: make(map[string][]*entities.Holding)}
}

func (m *memPortfolioRepo) FindByUserID(userID string) ([]*entities.Holding, error) {
	return m.holdingsByUser[userID], nil
}

func (m *memPortfolioRepo) ReplaceForUser(userID string, holdings []*entities.Holding) error {
	if m.failWith != nil {
		return m.failWith
	}
	stored := make([]*entities.Holding, len(holdings))
	for i, h := range holdings {
		m.nextID++
		copied := *h
		copied.ID = fmt.Sprintf("holding-%d", m.nextID)
		copied.UserID = userID
		copied.CreatedAt = time.Now()
		copied.UpdatedAt = time.Now()
		stored[i] = &copied
	}
	m.holdingsByUser[userID] = stored
	return nil
}

type testEnv struct {
	router        *gin.Engine
	portfolioRepo *memPortfolioRepo
}

func newTestEnv(t *testing.T, production bool) *testEnv {
	t.Helper()
	gin.SetMode(gin.TestMode)

	userRepo := newMemUserRepo()
	portfolioRepo := newMemPortfolioRepo()
	tokenService := token.NewTokenService("test-secret", 7*24*time.Hour)

	authService := service.NewAuthService(userRepo, tokenService)
	portfolioService := service.NewPortfolioService(portfolioRepo, nil)

	healthCheck := func() (time.Time, error) { return time.Now(), nil }
	authController := NewAuthController(authService, healthCheck, true, true, production)
	portfolioController := NewPortfolioController(portfolioService, production)

	router := gin.New()
	router.Use(middleware.CORS())
	api := router.Group("/api")
	api.Any("/auth", authController.Handle)
	api.Any("/portfolio", portfolioController.Handle)

	return &testEnv{router: router, portfolioRepo: portfolioRepo}
}

func (e *testEnv) do(t *testing.T, method, path string, body interface{}) *httptest.ResponseRecorder {
	t.Helper()
	var reader *bytes.Reader
	if body != nil {
		data, err := json.Marshal(body)
		if err != nil {
			t.Fatalf("marshal body: %v", err)
		}
		reader = bytes.NewReader(data)
	} else {
		reader = bytes.NewReader(nil)
	}

	req := httptest.NewRequest(method, path, reader)
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	e.router.ServeHTTP(w, req)
	return w
}

func decode(t *testing.T, w *httptest.ResponseRecorder) map[string]interface{} {
	t.Helper()
	var body map[string]interface{}
	if err := json.Unmarshal(w.Body.Bytes(), &body); err != nil {
		t.Fatalf("decode response %q: %v", w.Body.String(), err)
	}
	return body
}

func TestCORSPreflight(t *testing.T) {
	env := newTestEnv(t, false)

	for _, path := range []string{"/api/auth", "/api/portfolio"} {
		w := env.do(t, http.MethodOptions, path, nil)
		if w.Code != http.StatusOK {
			t.Fatalf("%s preflight status=%d want 200", path, w.Code)
		}
		if w.Body.Len() != 0 {
			t.Fatalf("%s preflight body=%q want empty", path, w.Body.String())
		}
		if got := w.Header().Get("Access-Control-Allow-Origin"); got == "" {
			t.Fatalf("%s missing Allow-Origin header", path)
		}
	}
}

func TestCORSHeadersOnEveryResponse(t *testing.T) {
	env := newTestEnv(t, false)

	w := env.do(t, http.MethodGet, "/api/portfolio?userId=user-1", nil)
	if got := w.Header().Get("Access-Control-Allow-Origin"); got != "*" {
		t.Fatalf("Allow-Origin=%q want *", got)
	}
	if got := w.Header().Get("Access-Control-Allow-Credentials"); got != "true" {
		t.Fatalf("Allow-Credentials=%q want true", got)
	}
}

func TestAuthHealthProbe(t *testing.T) {
	env := newTestEnv(t, false)

	w := env.do(t, http.MethodGet, "/api/auth", nil)
	if w.Code != http.StatusOK {
		t.Fatalf("status=%d want 200", w.Code)
	}
	body := decode(t, w)
	if body["success"] != true || body["database"] != "connected" {
		t.Fatalf("unexpected health body: %v", body)
	}
	endpoints, _ := body["endpoints"].([]interface{})
	if len(endpoints) != 4 {
		t.Fatalf("endpoints=%v want 4 entries", body["endpoints"])
	}
}

func TestAuthUnrecognizedAction(t *testing.T) {
	env := newTestEnv(t, false)

	w := env.do(t, http.MethodPost, "/api/auth", gin.H{"action": "deleteEverything"})
	if w.Code != http.StatusBadRequest {
		t.Fatalf("status=%d want 400", w.Code)
	}
	if body := decode(t, w); body["success"] != false {
		t.Fatalf("success=%v want false", body["success"])
	}
}

func TestAuthMethodNotAllowed(t *testing.T) {
	env := newTestEnv(t, false)

	w := env.do(t, http.MethodPut, "/api/auth", gin.H{"action": "login"})
	if w.Code != http.StatusMethodNotAllowed {
		t.Fatalf("status=%d want 405", w.Code)
	}
}

func TestPortfolioMethodNotAllowed(t *testing.T) {
	env := newTestEnv(t, false)

	w := env.do(t, http.MethodDelete, "/api/portfolio", nil)
	if w.Code != http.StatusMethodNotAllowed {
		t.Fatalf("status=%d want 405", w.Code)
	}
}

func TestPortfolioFetchMissingUserID(t *testing.T) {
	env := newTestEnv(t, false)

	w := env.do(t, http.MethodGet, "/api/portfolio", nil)
	if w.Code != http.StatusBadRequest {
		t.Fatalf("status=%d want 400", w.Code)
	}
}

func TestInternalErrorDetailGatedOnProduction(t *testing.T) {
	replaceBody := gin.H{
		"userId": "user-1",
		"portfolio": []gin.H{{
			"productId": "X", "productName": "Acme",
			"quantity": 10, "avgBuyPrice": 5.0, "totalInvested": 50.0,
		}},
	}

	env := newTestEnv(t, false)
	env.portfolioRepo.failWith = fmt.Errorf("connection reset")
	w := env.do(t, http.MethodPost, "/api/portfolio", replaceBody)
	if w.Code != http.StatusInternalServerError {
		t.Fatalf("status=%d want 500", w.Code)
	}
	if body := decode(t, w); body["error"] == nil {
		t.Fatalf("development response should carry error detail: %v", body)
	}

	prodEnv := newTestEnv(t, true)
	prodEnv.portfolioRepo.failWith = fmt.Errorf("connection reset")
	w = prodEnv.do(t, http.MethodPost, "/api/portfolio", replaceBody)
	if w.Code != http.StatusInternalServerError {
		t.Fatalf("status=%d want 500", w.Code)
	}
	body := decode(t, w)
	if body["error"] != nil {
		t.Fatalf("production response must not carry error detail: %v", body)
	}
	if body["message"] != "Internal server error" {
		t.Fatalf("message=%v want generic", body["message"])
	}
}

// TestFullScenario walks the documented end-to-end flow: register, duplicate
// register, failed login, balance update, portfolio replace and fetch.
func TestFullScenario(t *testing.T) {
	env := newTestEnv(t, false)

	// Register alice
	w := env.do(t, http.MethodPost, "/api/auth", gin.H{
		"action": "register", "email": "alice@example.com",
		"password": "secret1", "fullName": "Alice A",
	})
	if w.Code != http.StatusOK {
		t.Fatalf("register status=%d body=%s", w.Code, w.Body.String())
	}
	reg := decode(t, w)
	if reg["token"] == nil || reg["token"] == "" {
		t.Fatalf("register returned no token: %v", reg)
	}
	user, _ := reg["user"].(map[string]interface{})
	if user["balance"] != 10000.0 {
		t.Fatalf("balance=%v want 10000", user["balance"])
	}
	userID, _ := user["id"].(string)
	if userID == "" {
		t.Fatalf("no user id in %v", reg)
	}

	// Re-register same email
	w = env.do(t, http.MethodPost, "/api/auth", gin.H{
		"action": "register", "email": "alice@example.com",
		"password": "another1", "fullName": "Alice Again",
	})
	if w.Code != http.StatusBadRequest {
		t.Fatalf("duplicate register status=%d want 400", w.Code)
	}

	// Login with wrong password
	w = env.do(t, http.MethodPost, "/api/auth", gin.H{
		"action": "login", "email": "alice@example.com", "password": "wrong1",
	})
	if w.Code != http.StatusUnauthorized {
		t.Fatalf("bad login status=%d want 401", w.Code)
	}

	// Update balance to 5000, read it back
	w = env.do(t, http.MethodPost, "/api/auth", gin.H{
		"action": "updateBalance", "userId": userID, "balance": 5000,
	})
	if w.Code != http.StatusOK {
		t.Fatalf("updateBalance status=%d body=%s", w.Code, w.Body.String())
	}
	w = env.do(t, http.MethodPost, "/api/auth", gin.H{
		"action": "getUserData", "userId": userID,
	})
	if w.Code != http.StatusOK {
		t.Fatalf("getUserData status=%d body=%s", w.Code, w.Body.String())
	}
	if data := decode(t, w); data["balance"] != 5000.0 {
		t.Fatalf("balance=%v want 5000", data["balance"])
	}

	// Replace portfolio with one holding, fetch it back
	w = env.do(t, http.MethodPost, "/api/portfolio", gin.H{
		"userId": userID,
		"portfolio": []gin.H{{
			"productId": "X", "productName": "Acme",
			"quantity": 10, "avgBuyPrice": 5.0, "totalInvested": 50.0,
		}},
	})
	if w.Code != http.StatusOK {
		t.Fatalf("replace status=%d body=%s", w.Code, w.Body.String())
	}

	w = env.do(t, http.MethodGet, "/api/portfolio?userId="+userID, nil)
	if w.Code != http.StatusOK {
		t.Fatalf("fetch status=%d body=%s", w.Code, w.Body.String())
	}
	var holdings []map[string]interface{}
	if err := json.Unmarshal(w.Body.Bytes(), &holdings); err != nil {
		t.Fatalf("decode holdings %q: %v", w.Body.String(), err)
	}
	if len(holdings) != 1 {
		t.Fatalf("holdings=%v want exactly 1", holdings)
	}
	h := holdings[0]
	if h["productId"] != "X" || h["productName"] != "Acme" ||
		h["quantity"] != 10.0 || h["avgBuyPrice"] != 5.0 || h["totalInvested"] != 50.0 {
		t.Fatalf("unexpected holding: %v", h)
	}
}
