package handlers

import (
	"bytes"
	"database/sql"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/davemarr/asset-inventory/internal/middleware"
	"github.com/davemarr/asset-inventory/internal/repo"
	"golang.org/x/crypto/bcrypt"
)

var userCols = []string{"id", "username", "email", "password_hash", "role", "created_at"}

const testSecret = "test-secret"

func newAuthHandler(db *sql.DB) *AuthHandler {
	return &AuthHandler{
		Users:       repo.NewUserRepo(db),
		Secret:      []byte(testSecret),
		TokenExpiry: time.Hour,
	}
}

func hashOf(t *testing.T, password string) string {
	t.Helper()
	h, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.MinCost)
	if err != nil {
		t.Fatalf("bcrypt: %v", err)
	}
	return string(h)
}

func loginRequest(username, password string) *http.Request {
	body, _ := json.Marshal(map[string]string{"username": username, "password": password})
	req := httptest.NewRequest("POST", "/api/auth/login", bytes.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	return req
}

func TestAuthHandler_Login(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock.New: %v", err)
	}
	defer db.Close()

	mock.ExpectQuery(`FROM users WHERE username = \$1`).
		WithArgs("admin").
		WillReturnRows(sqlmock.NewRows(userCols).
			AddRow(1, "admin", "admin@assetmanagement.com", hashOf(t, "admin123"), "admin", time.Now()))

	h := newAuthHandler(db)
	rr := httptest.NewRecorder()
	h.Login(rr, loginRequest("admin", "admin123"))

	if rr.Code != http.StatusOK {
		t.Fatalf("Login status: got %d, want 200; body %s", rr.Code, rr.Body.String())
	}
	var out struct {
		Token string                 `json:"token"`
		User  map[string]interface{} `json:"user"`
	}
	if err := json.NewDecoder(rr.Body).Decode(&out); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	if out.Token == "" {
		t.Error("expected a token")
	}
	if out.User["role"] != "admin" {
		t.Errorf("unexpected user: %v", out.User)
	}
	if _, leaked := out.User["password_hash"]; leaked {
		t.Error("password hash leaked in login response")
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Errorf("expectations: %v", err)
	}
}

func TestAuthHandler_Login_WrongPassword(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock.New: %v", err)
	}
	defer db.Close()

	mock.ExpectQuery(`FROM users WHERE username = \$1`).
		WithArgs("admin").
		WillReturnRows(sqlmock.NewRows(userCols).
			AddRow(1, "admin", "admin@assetmanagement.com", hashOf(t, "admin123"), "admin", time.Now()))

	h := newAuthHandler(db)
	rr := httptest.NewRecorder()
	h.Login(rr, loginRequest("admin", "wrong"))

	if rr.Code != http.StatusUnauthorized {
		t.Errorf("Login status: got %d, want 401", rr.Code)
	}
	var out map[string]string
	if err := json.NewDecoder(rr.Body).Decode(&out); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	if out["error"] != "Invalid credentials" {
		t.Errorf("unexpected error body: %v", out)
	}
}

func TestAuthHandler_Login_UnknownUser(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock.New: %v", err)
	}
	defer db.Close()

	mock.ExpectQuery(`FROM users WHERE username = \$1`).
		WithArgs("ghost").
		WillReturnError(sql.ErrNoRows)

	h := newAuthHandler(db)
	rr := httptest.NewRecorder()
	h.Login(rr, loginRequest("ghost", "whatever"))

	if rr.Code != http.StatusUnauthorized {
		t.Errorf("Login status: got %d, want 401", rr.Code)
	}
}

// TestAuthHandler_Verify runs the handler behind the Auth middleware, the way
// it is routed, so the context claims come from a real token.
func TestAuthHandler_Verify(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock.New: %v", err)
	}
	defer db.Close()

	// Login first to obtain a token.
	mock.ExpectQuery(`FROM users WHERE username = \$1`).
		WithArgs("admin").
		WillReturnRows(sqlmock.NewRows(userCols).
			AddRow(1, "admin", "admin@assetmanagement.com", hashOf(t, "admin123"), "admin", time.Now()))
	// Verify re-fetches the user by id.
	mock.ExpectQuery(`FROM users WHERE id = \$1`).
		WithArgs(1).
		WillReturnRows(sqlmock.NewRows(userCols).
			AddRow(1, "admin", "admin@assetmanagement.com", hashOf(t, "admin123"), "admin", time.Now()))

	h := newAuthHandler(db)

	rr := httptest.NewRecorder()
	h.Login(rr, loginRequest("admin", "admin123"))
	if rr.Code != http.StatusOK {
		t.Fatalf("login: got %d", rr.Code)
	}
	var loginOut struct {
		Token string `json:"token"`
	}
	if err := json.NewDecoder(rr.Body).Decode(&loginOut); err != nil {
		t.Fatalf("decode login: %v", err)
	}

	verify := middleware.Auth([]byte(testSecret))(http.HandlerFunc(h.Verify))
	req := httptest.NewRequest("GET", "/api/auth/verify", nil)
	req.Header.Set("Authorization", "Bearer "+loginOut.Token)
	rr = httptest.NewRecorder()
	verify.ServeHTTP(rr, req)

	if rr.Code != http.StatusOK {
		t.Fatalf("Verify status: got %d, want 200; body %s", rr.Code, rr.Body.String())
	}
	var out struct {
		User struct {
			Username string `json:"username"`
			Role     string `json:"role"`
		} `json:"user"`
	}
	if err := json.NewDecoder(rr.Body).Decode(&out); err != nil {
		t.Fatalf("decode verify: %v", err)
	}
	if out.User.Username != "admin" || out.User.Role != "admin" {
		t.Errorf("unexpected user: %+v", out.User)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Errorf("expectations: %v", err)
	}
}

func TestAuthHandler_Verify_DeletedUser(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock.New: %v", err)
	}
	defer db.Close()

	mock.ExpectQuery(`FROM users WHERE username = \$1`).
		WithArgs("admin").
		WillReturnRows(sqlmock.NewRows(userCols).
			AddRow(1, "admin", "admin@assetmanagement.com", hashOf(t, "admin123"), "admin", time.Now()))
	mock.ExpectQuery(`FROM users WHERE id = \$1`).
		WithArgs(1).
		WillReturnError(sql.ErrNoRows)

	h := newAuthHandler(db)

	rr := httptest.NewRecorder()
	h.Login(rr, loginRequest("admin", "admin123"))
	var loginOut struct {
		Token string `json:"token"`
	}
	if err := json.NewDecoder(rr.Body).Decode(&loginOut); err != nil {
		t.Fatalf("decode login: %v", err)
	}

	verify := middleware.Auth([]byte(testSecret))(http.HandlerFunc(h.Verify))
	req := httptest.NewRequest("GET", "/api/auth/verify", nil)
	req.Header.Set("Authorization", "Bearer "+loginOut.Token)
	rr = httptest.NewRecorder()
	verify.ServeHTTP(rr, req)

	if rr.Code != http.StatusUnauthorized {
		t.Errorf("Verify status: got %d, want 401", rr.Code)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Errorf("expectations: %v", err)
	}
}
