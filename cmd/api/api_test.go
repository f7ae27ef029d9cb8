package main

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/davemarr/asset-inventory/internal/config"
	"golang.org/x/crypto/bcrypt"
)

var userCols = []string{"id", "username", "email", "password_hash", "role", "created_at"}

func testConfig() config.Config {
	return config.Config{
		JWTSecret:      "test-secret-for-integration",
		JWTExpireHours: 24,
	}
}

func login(t *testing.T, srv *httptest.Server, username, password string) string {
	t.Helper()
	body, _ := json.Marshal(map[string]string{"username": username, "password": password})
	resp, err := http.Post(srv.URL+"/api/auth/login", "application/json", bytes.NewReader(body))
	if err != nil {
		t.Fatalf("login request: %v", err)
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("login status: got %d, want 200", resp.StatusCode)
	}
	var out struct {
		Token string `json:"token"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&out); err != nil || out.Token == "" {
		t.Fatalf("login response: %v", err)
	}
	return out.Token
}

func expectLogin(t *testing.T, mock sqlmock.Sqlmock, id int, username, password, role string) {
	t.Helper()
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.MinCost)
	if err != nil {
		t.Fatalf("bcrypt: %v", err)
	}
	mock.ExpectQuery(`FROM users WHERE username = \$1`).
		WithArgs(username).
		WillReturnRows(sqlmock.NewRows(userCols).
			AddRow(id, username, username+"@assetmanagement.com", string(hash), role, time.Now()))
}

// TestAPI_LoginThenListAssets builds the full router with a sqlmock-backed DB,
// logs in to get a JWT, then calls GET /api/assets with the token.
func TestAPI_LoginThenListAssets(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock.New: %v", err)
	}
	defer db.Close()

	expectLogin(t, mock, 1, "admin", "admin123", "admin")
	mock.ExpectQuery(`FROM assets ORDER BY created_at DESC`).
		WillReturnRows(sqlmock.NewRows([]string{
			"id", "name", "type", "serial_number", "manufacturer", "model", "status",
			"location", "assigned_to", "purchase_date", "warranty_expiry",
			"ip_address", "mac_address", "notes", "created_at", "updated_at",
		}).AddRow(1, "web-01", "server", "SN-1001", "Dell", "R740", "active",
			"DC1", "", "", "", "", "", "", time.Now(), time.Now()))

	srv := httptest.NewServer(newRouter(db, testConfig()))
	defer srv.Close()

	token := login(t, srv, "admin", "admin123")

	req, _ := http.NewRequest("GET", srv.URL+"/api/assets", nil)
	req.Header.Set("Authorization", "Bearer "+token)
	resp, err := srv.Client().Do(req)
	if err != nil {
		t.Fatalf("assets request: %v", err)
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("GET /api/assets status: got %d, want 200", resp.StatusCode)
	}
	var assets []struct {
		ID     int    `json:"id"`
		Name   string `json:"name"`
		Status string `json:"status"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&assets); err != nil {
		t.Fatalf("decode assets: %v", err)
	}
	if len(assets) != 1 || assets[0].Name != "web-01" {
		t.Errorf("unexpected assets: %+v", assets)
	}

	if err := mock.ExpectationsWereMet(); err != nil {
		t.Errorf("expectations: %v", err)
	}
}

// TestAPI_DeleteRequiresAdmin verifies the role gate: a technician token on
// DELETE gets 403 before any store access happens.
func TestAPI_DeleteRequiresAdmin(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock.New: %v", err)
	}
	defer db.Close()

	expectLogin(t, mock, 2, "technician", "tech123", "technician")

	srv := httptest.NewServer(newRouter(db, testConfig()))
	defer srv.Close()

	token := login(t, srv, "technician", "tech123")

	req, _ := http.NewRequest("DELETE", srv.URL+"/api/assets/1", nil)
	req.Header.Set("Authorization", "Bearer "+token)
	resp, err := srv.Client().Do(req)
	if err != nil {
		t.Fatalf("delete request: %v", err)
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusForbidden {
		t.Errorf("DELETE status: got %d, want 403", resp.StatusCode)
	}
	var out map[string]string
	if err := json.NewDecoder(resp.Body).Decode(&out); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	if out["error"] != "Insufficient permissions" {
		t.Errorf("unexpected body: %v", out)
	}

	if err := mock.ExpectationsWereMet(); err != nil {
		t.Errorf("expectations: %v", err)
	}
}

// TestAPI_AssetsRequireAuth ensures data endpoints reject unauthenticated requests.
func TestAPI_AssetsRequireAuth(t *testing.T) {
	db, _, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock.New: %v", err)
	}
	defer db.Close()

	srv := httptest.NewServer(newRouter(db, testConfig()))
	defer srv.Close()

	resp, err := http.Get(srv.URL + "/api/assets")
	if err != nil {
		t.Fatalf("assets request: %v", err)
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusUnauthorized {
		t.Errorf("GET /api/assets without token: got %d, want 401", resp.StatusCode)
	}
}

// TestAPI_Health is a quick smoke test for the unauthenticated health endpoint.
func TestAPI_Health(t *testing.T) {
	db, _, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock.New: %v", err)
	}
	defer db.Close()

	srv := httptest.NewServer(newRouter(db, testConfig()))
	defer srv.Close()

	resp, err := http.Get(srv.URL + "/api/health")
	if err != nil {
		t.Fatalf("health request: %v", err)
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		t.Errorf("GET /api/health status: got %d, want 200", resp.StatusCode)
	}
	var out map[string]string
	if err := json.NewDecoder(resp.Body).Decode(&out); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	if out["status"] != "ok" {
		t.Errorf("unexpected body: %v", out)
	}
}

// TestAPI_Ready checks that /ready pings the DB and returns 200 when reachable.
func TestAPI_Ready(t *testing.T) {
	db, mock, err := sqlmock.New(sqlmock.MonitorPingsOption(true))
	if err != nil {
		t.Fatalf("sqlmock.New: %v", err)
	}
	defer db.Close()
	mock.ExpectPing()

	srv := httptest.NewServer(newRouter(db, testConfig()))
	defer srv.Close()

	resp, err := http.Get(srv.URL + "/ready")
	if err != nil {
		t.Fatalf("ready request: %v", err)
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		t.Errorf("GET /ready status: got %d, want 200", resp.StatusCode)
	}
}
