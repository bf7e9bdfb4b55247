package routes

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"regexp"
	"strconv"
	"testing"
	"time"

	"github.com/fireguard/cms-api/controllers"
	"github.com/fireguard/cms-api/initializers"
	"github.com/fireguard/cms-api/models"
	"github.com/fireguard/cms-api/utils"
	"github.com/gin-gonic/gin"
)

const (
	adminUser   = "admin"
	adminPass   = "admin-password"
	editorUser  = "editor"
	editorPass  = "editor-password"
	testSecret  = "test-secret"
	jsonContent = "application/json"
)

var nonWord = regexp.MustCompile(`[^A-Za-z0-9]+`)

type testServer struct {
	t      *testing.T
	router *gin.Engine
}

// newTestServer wires the router to a private in-memory database with one
// admin and one editor account.
func newTestServer(t *testing.T) *testServer {
	t.Helper()
	gin.SetMode(gin.TestMode)

	initializers.Config = initializers.AppConfig{
		Environment:       "test",
		JWTSecret:         testSecret,
		BuilderSessionTTL: time.Hour,
	}

	dsn := "file:" + nonWord.ReplaceAllString(t.Name(), "_") + "?mode=memory&cache=shared"
	db, err := initializers.OpenDB("sqlite", dsn)
	if err != nil {
		t.Fatalf("open db: %v", err)
	}
	sqlDB, err := db.DB()
	if err != nil {
		t.Fatalf("sql db: %v", err)
	}
	sqlDB.SetMaxOpenConns(1)
	t.Cleanup(func() { _ = sqlDB.Close() })

	if err := initializers.Migrate(db); err != nil {
		t.Fatalf("migrate: %v", err)
	}
	initializers.DB = db

	if err := initializers.SeedAdmin(adminUser, adminPass); err != nil {
		t.Fatalf("seed admin: %v", err)
	}
	hashed, err := utils.HashPassword(editorPass)
	if err != nil {
		t.Fatalf("hash: %v", err)
	}
	if err := db.Create(&models.User{Username: editorUser, Password: hashed, Role: models.RoleEditor}).Error; err != nil {
		t.Fatalf("create editor: %v", err)
	}

	controllers.ConfigureBuilder(time.Hour)
	controllers.SetPublisher(nil)
	t.Cleanup(controllers.ShutdownBuilder)

	return &testServer{t: t, router: NewRouter()}
}

func (s *testServer) do(method, path string, body any, cookie *http.Cookie) *httptest.ResponseRecorder {
	s.t.Helper()

	var reader *bytes.Reader
	switch b := body.(type) {
	case nil:
		reader = bytes.NewReader(nil)
	case string:
		reader = bytes.NewReader([]byte(b))
	default:
		raw, err := json.Marshal(b)
		if err != nil {
			s.t.Fatalf("marshal body: %v", err)
		}
		reader = bytes.NewReader(raw)
	}

	req := httptest.NewRequest(method, path, reader)
	if body != nil {
		req.Header.Set("Content-Type", jsonContent)
	}
	if cookie != nil {
		req.AddCookie(cookie)
	}
	w := httptest.NewRecorder()
	s.router.ServeHTTP(w, req)
	return w
}

func (s *testServer) login(username, password string) *http.Cookie {
	s.t.Helper()
	w := s.do(http.MethodPost, "/api/login", gin.H{"username": username, "password": password}, nil)
	if w.Code != http.StatusOK {
		s.t.Fatalf("login %s: status %d body %s", username, w.Code, w.Body.String())
	}
	for _, c := range w.Result().Cookies() {
		if c.Name == "fg_session" {
			return c
		}
	}
	s.t.Fatalf("login %s: no session cookie", username)
	return nil
}

func (s *testServer) admin() *http.Cookie  { return s.login(adminUser, adminPass) }
func (s *testServer) editor() *http.Cookie { return s.login(editorUser, editorPass) }

func expectStatus(t *testing.T, w *httptest.ResponseRecorder, want int) {
	t.Helper()
	if w.Code != want {
		t.Fatalf("status = %d, want %d; body: %s", w.Code, want, w.Body.String())
	}
}

func decode[T any](t *testing.T, w *httptest.ResponseRecorder) T {
	t.Helper()
	var out T
	if err := json.Unmarshal(w.Body.Bytes(), &out); err != nil {
		t.Fatalf("decode %s: %v", w.Body.String(), err)
	}
	return out
}

func itoa(id uint) string {
	return strconv.FormatUint(uint64(id), 10)
}
