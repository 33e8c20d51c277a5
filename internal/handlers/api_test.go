package handlers_test

import (
	"bytes"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"jokehub/internal/db"
	"jokehub/internal/middleware"
	"jokehub/internal/models"
	"jokehub/internal/router"
	"jokehub/internal/utils"

	"github.com/gin-contrib/sessions"
	"github.com/gin-contrib/sessions/cookie"
	"github.com/gin-gonic/gin"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

func setupServer(t *testing.T) *gin.Engine {
	t.Helper()
	gin.SetMode(gin.TestMode)

	gdb, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		TranslateError: true,
		Logger:         logger.Default.LogMode(logger.Silent),
	})
	if err != nil {
		t.Fatalf("Failed to open test database: %v", err)
	}
	sqlDB, err := gdb.DB()
	if err != nil {
		t.Fatalf("Failed to get sql.DB: %v", err)
	}
	sqlDB.SetMaxOpenConns(1)
	if err := db.Migrate(gdb); err != nil {
		t.Fatalf("Failed to migrate test database: %v", err)
	}
	db.DB = gdb

	// The process cache outlives each test database; drop the keys the
	// handlers under test may have populated in an earlier test.
	cache := utils.GetCache()
	cache.Delete("categories:active")
	for id := 0; id <= 10; id++ {
		for page := 1; page <= 3; page++ {
			cache.Delete(fmt.Sprintf("jokes:list:cat:%d:page:%d", id, page))
		}
	}

	r := gin.New()
	store := cookie.NewStore([]byte("test_secret"))
	r.Use(sessions.Sessions("jokehub_session", store))
	r.Use(middleware.LoadUser())
	router.RegisterRoutes(r)
	return r
}

// client is one browser-like identity: it carries session cookies
// between requests.
type client struct {
	t       *testing.T
	engine  *gin.Engine
	cookies []*http.Cookie
}

func newClient(t *testing.T, engine *gin.Engine) *client {
	return &client{t: t, engine: engine}
}

func (cl *client) do(method, path string, body interface{}) *httptest.ResponseRecorder {
	cl.t.Helper()

	var reader *bytes.Reader
	if body != nil {
		payload, err := json.Marshal(body)
		if err != nil {
			cl.t.Fatalf("Failed to marshal request body: %v", err)
		}
		reader = bytes.NewReader(payload)
	} else {
		reader = bytes.NewReader(nil)
	}

	req := httptest.NewRequest(method, path, reader)
	req.Header.Set("Content-Type", "application/json")
	for _, c := range cl.cookies {
		req.AddCookie(c)
	}

	w := httptest.NewRecorder()
	cl.engine.ServeHTTP(w, req)

	if fresh := w.Result().Cookies(); len(fresh) > 0 {
		cl.cookies = fresh
	}
	return w
}

func decode(t *testing.T, w *httptest.ResponseRecorder) map[string]interface{} {
	t.Helper()
	var body map[string]interface{}
	if err := json.Unmarshal(w.Body.Bytes(), &body); err != nil {
		t.Fatalf("Failed to decode response %q: %v", w.Body.String(), err)
	}
	return body
}

func createAdmin(t *testing.T, email, password string) *models.User {
	t.Helper()
	hash, err := utils.HashPassword(password)
	if err != nil {
		t.Fatalf("Failed to hash password: %v", err)
	}
	admin := models.User{Username: "moderator", Email: email, Password: hash, IsAdmin: true}
	if err := db.DB.Create(&admin).Error; err != nil {
		t.Fatalf("Failed to create admin: %v", err)
	}
	return &admin
}

func createCategory(t *testing.T, name, slug string) *models.Category {
	t.Helper()
	category := models.Category{Name: name, Slug: slug, IsActive: true}
	if err := db.DB.Create(&category).Error; err != nil {
		t.Fatalf("Failed to create category: %v", err)
	}
	return &category
}

// TestSubmitReviewPublishFlow walks the whole lifecycle over HTTP:
// register, submit, moderate, read, like.
func TestSubmitReviewPublishFlow(t *testing.T) {
	engine := setupServer(t)
	category := createCategory(t, "Học đường", "hoc-duong")
	createAdmin(t, "mod@example.com", "secret123")

	member := newClient(t, engine)
	adminClient := newClient(t, engine)
	visitor := newClient(t, engine)

	// Register a member; the session cookie comes back with the response.
	w := member.do("POST", "/api/auth/register", gin.H{
		"username": "tranvana",
		"email":    "a@example.com",
		"password": "secret123",
	})
	if w.Code != http.StatusCreated {
		t.Fatalf("Register: expected 201, got %d: %s", w.Code, w.Body.String())
	}

	// A too-short title is rejected with the offending field named.
	w = member.do("POST", "/api/jokes", gin.H{
		"title":       "1234",
		"content":     "Nội dung truyện cười dài hơn hai mươi ký tự.",
		"category_id": category.ID,
	})
	if w.Code != http.StatusBadRequest {
		t.Fatalf("Short title: expected 400, got %d", w.Code)
	}
	if body := decode(t, w); body["field"] != "title" {
		t.Errorf("Expected field 'title' in error, got %v", body["field"])
	}

	w = member.do("POST", "/api/jokes", gin.H{
		"title":       "Thầy giáo hỏi bài",
		"content":     "Nội dung truyện cười dài hơn hai mươi ký tự.",
		"category_id": category.ID,
	})
	if w.Code != http.StatusCreated {
		t.Fatalf("Submit: expected 201, got %d: %s", w.Code, w.Body.String())
	}
	submitted := decode(t, w)["joke"].(map[string]interface{})
	if submitted["status"] != models.StatusPending {
		t.Errorf("Expected pending status, got %v", submitted["status"])
	}
	jokeID := uint(submitted["id"].(float64))

	// Pending submissions are invisible to the public.
	w = visitor.do("GET", "/api/jokes", nil)
	if w.Code != http.StatusOK {
		t.Fatalf("List: expected 200, got %d", w.Code)
	}
	if body := decode(t, w); body["total"].(float64) != 0 {
		t.Errorf("Expected empty public list before approval, got total %v", body["total"])
	}

	// Same for the detail endpoint: anonymous fetches of a pending joke
	// look exactly like a missing id, while the author still sees it.
	w = visitor.do("GET", fmt.Sprintf("/api/jokes/%d", jokeID), nil)
	if w.Code != http.StatusNotFound {
		t.Fatalf("Anonymous pending detail: expected 404, got %d: %s", w.Code, w.Body.String())
	}
	w = member.do("GET", fmt.Sprintf("/api/jokes/%d", jokeID), nil)
	if w.Code != http.StatusOK {
		t.Fatalf("Author pending detail: expected 200, got %d", w.Code)
	}
	if own := decode(t, w)["joke"].(map[string]interface{}); own["status"] != models.StatusPending {
		t.Errorf("Expected the author to see pending status, got %v", own["status"])
	}

	// Moderation requires the admin capability.
	w = member.do("POST", fmt.Sprintf("/api/admin/jokes/%d/approve", jokeID), nil)
	if w.Code != http.StatusForbidden {
		t.Fatalf("Member approve: expected 403, got %d", w.Code)
	}
	w = visitor.do("POST", fmt.Sprintf("/api/admin/jokes/%d/approve", jokeID), nil)
	if w.Code != http.StatusUnauthorized {
		t.Fatalf("Anonymous approve: expected 401, got %d", w.Code)
	}

	w = adminClient.do("POST", "/api/auth/login", gin.H{
		"email":    "mod@example.com",
		"password": "secret123",
	})
	if w.Code != http.StatusOK {
		t.Fatalf("Admin login: expected 200, got %d: %s", w.Code, w.Body.String())
	}
	w = adminClient.do("POST", fmt.Sprintf("/api/admin/jokes/%d/approve", jokeID), nil)
	if w.Code != http.StatusOK {
		t.Fatalf("Approve: expected 200, got %d: %s", w.Code, w.Body.String())
	}

	// Approval invalidates the cached empty page.
	w = visitor.do("GET", "/api/jokes", nil)
	body := decode(t, w)
	if body["total"].(float64) != 1 {
		t.Fatalf("Expected the approved joke in the public list, got total %v", body["total"])
	}

	// Detail counts the visit and records the member's reading history.
	w = member.do("GET", fmt.Sprintf("/api/jokes/%d", jokeID), nil)
	if w.Code != http.StatusOK {
		t.Fatalf("Detail: expected 200, got %d", w.Code)
	}
	detail := decode(t, w)["joke"].(map[string]interface{})
	if detail["view_count"].(float64) != 1 {
		t.Errorf("Expected view count 1, got %v", detail["view_count"])
	}
	var history int64
	db.DB.Model(&models.ReadingHistory{}).Where("joke_id = ?", jokeID).Count(&history)
	if history != 1 {
		t.Errorf("Expected a reading history row, got %d", history)
	}

	// Like toggle, both directions.
	w = member.do("POST", fmt.Sprintf("/api/jokes/%d/like", jokeID), nil)
	body = decode(t, w)
	if body["liked"] != true || body["like_count"].(float64) != 1 {
		t.Errorf("Expected liked=true count=1, got %v", body)
	}
	w = member.do("POST", fmt.Sprintf("/api/jokes/%d/like", jokeID), nil)
	body = decode(t, w)
	if body["liked"] != false || body["like_count"].(float64) != 0 {
		t.Errorf("Expected liked=false count=0, got %v", body)
	}

	// Anonymous users cannot like.
	w = visitor.do("POST", fmt.Sprintf("/api/jokes/%d/like", jokeID), nil)
	if w.Code != http.StatusUnauthorized {
		t.Errorf("Anonymous like: expected 401, got %d", w.Code)
	}
}

func TestRejectFlow(t *testing.T) {
	engine := setupServer(t)
	category := createCategory(t, "Công sở", "cong-so")
	createAdmin(t, "mod@example.com", "secret123")

	member := newClient(t, engine)
	adminClient := newClient(t, engine)

	w := member.do("POST", "/api/auth/register", gin.H{
		"username": "tranvanb",
		"email":    "b@example.com",
		"password": "secret123",
	})
	if w.Code != http.StatusCreated {
		t.Fatalf("Register: expected 201, got %d", w.Code)
	}
	w = member.do("POST", "/api/jokes", gin.H{
		"title":       "Sếp và nhân viên",
		"content":     "Một câu chuyện dài về sếp và nhân viên công sở.",
		"category_id": category.ID,
	})
	if w.Code != http.StatusCreated {
		t.Fatalf("Submit: expected 201, got %d", w.Code)
	}
	jokeID := uint(decode(t, w)["joke"].(map[string]interface{})["id"].(float64))

	w = adminClient.do("POST", "/api/auth/login", gin.H{
		"email":    "mod@example.com",
		"password": "secret123",
	})
	if w.Code != http.StatusOK {
		t.Fatalf("Admin login: expected 200, got %d", w.Code)
	}

	w = adminClient.do("POST", fmt.Sprintf("/api/admin/jokes/%d/reject", jokeID), gin.H{
		"reason": "Trùng lặp nội dung",
	})
	if w.Code != http.StatusOK {
		t.Fatalf("Reject: expected 200, got %d: %s", w.Code, w.Body.String())
	}
	joke := decode(t, w)["joke"].(map[string]interface{})
	if joke["status"] != models.StatusRejected {
		t.Errorf("Expected rejected status, got %v", joke["status"])
	}
	if joke["rejection_reason"] != "Trùng lặp nội dung" {
		t.Errorf("Expected the supplied reason, got %v", joke["rejection_reason"])
	}

	// The author sees their own rejected submission via the status filter.
	var author models.User
	db.DB.Where("email = ?", "b@example.com").First(&author)
	w = member.do("GET", fmt.Sprintf("/api/jokes?author_id=%d&status=rejected", author.ID), nil)
	if total := decode(t, w)["total"].(float64); total != 1 {
		t.Errorf("Expected the author to see 1 rejected joke, got %v", total)
	}

	// The status filter is ignored for other people's identities.
	stranger := newClient(t, engine)
	w = stranger.do("GET", fmt.Sprintf("/api/jokes?author_id=%d&status=rejected", author.ID), nil)
	if total := decode(t, w)["total"].(float64); total != 0 {
		t.Errorf("Expected an anonymous viewer to see 0 jokes, got %v", total)
	}
}

// Moving a joke between categories must drop the cached list pages of
// both the old and the new category.
func TestEditInvalidatesOldCategoryCache(t *testing.T) {
	engine := setupServer(t)
	school := createCategory(t, "Học đường", "hoc-duong")
	office := createCategory(t, "Công sở", "cong-so")
	createAdmin(t, "mod@example.com", "secret123")

	member := newClient(t, engine)
	adminClient := newClient(t, engine)
	visitor := newClient(t, engine)

	w := member.do("POST", "/api/auth/register", gin.H{
		"username": "tranvand",
		"email":    "d@example.com",
		"password": "secret123",
	})
	if w.Code != http.StatusCreated {
		t.Fatalf("Register: expected 201, got %d", w.Code)
	}
	w = member.do("POST", "/api/jokes", gin.H{
		"title":       "Thầy giáo hỏi bài",
		"content":     "Nội dung truyện cười dài hơn hai mươi ký tự.",
		"category_id": school.ID,
	})
	if w.Code != http.StatusCreated {
		t.Fatalf("Submit: expected 201, got %d", w.Code)
	}
	jokeID := uint(decode(t, w)["joke"].(map[string]interface{})["id"].(float64))

	w = adminClient.do("POST", "/api/auth/login", gin.H{
		"email":    "mod@example.com",
		"password": "secret123",
	})
	if w.Code != http.StatusOK {
		t.Fatalf("Admin login: expected 200, got %d", w.Code)
	}
	w = adminClient.do("POST", fmt.Sprintf("/api/admin/jokes/%d/approve", jokeID), nil)
	if w.Code != http.StatusOK {
		t.Fatalf("Approve: expected 200, got %d", w.Code)
	}

	// Warm the old category's cached first page.
	w = visitor.do("GET", fmt.Sprintf("/api/jokes?category_id=%d", school.ID), nil)
	if total := decode(t, w)["total"].(float64); total != 1 {
		t.Fatalf("Expected 1 joke in the old category, got %v", total)
	}

	w = adminClient.do("PUT", fmt.Sprintf("/api/admin/jokes/%d", jokeID), gin.H{
		"category_id": office.ID,
	})
	if w.Code != http.StatusOK {
		t.Fatalf("Edit: expected 200, got %d: %s", w.Code, w.Body.String())
	}

	w = visitor.do("GET", fmt.Sprintf("/api/jokes?category_id=%d", school.ID), nil)
	if total := decode(t, w)["total"].(float64); total != 0 {
		t.Errorf("Expected the old category's list to be refreshed, got total %v", total)
	}
	w = visitor.do("GET", fmt.Sprintf("/api/jokes?category_id=%d", office.ID), nil)
	if total := decode(t, w)["total"].(float64); total != 1 {
		t.Errorf("Expected the joke in the new category, got total %v", total)
	}
}

func TestSessionEndpoint(t *testing.T) {
	engine := setupServer(t)

	visitor := newClient(t, engine)
	w := visitor.do("GET", "/api/session", nil)
	if w.Code != http.StatusOK {
		t.Fatalf("Session: expected 200, got %d", w.Code)
	}
	if body := decode(t, w); body["user"] != nil {
		t.Errorf("Expected null user for anonymous session, got %v", body["user"])
	}

	member := newClient(t, engine)
	w = member.do("POST", "/api/auth/register", gin.H{
		"username": "tranvanc",
		"email":    "c@example.com",
		"password": "secret123",
	})
	if w.Code != http.StatusCreated {
		t.Fatalf("Register: expected 201, got %d", w.Code)
	}

	w = member.do("GET", "/api/session", nil)
	body := decode(t, w)
	user, ok := body["user"].(map[string]interface{})
	if !ok {
		t.Fatalf("Expected a user object, got %v", body["user"])
	}
	if user["username"] != "tranvanc" {
		t.Errorf("Expected username tranvanc, got %v", user["username"])
	}
	if _, leaked := user["password"]; leaked {
		t.Error("Password must never appear in responses")
	}

	w = member.do("POST", "/api/auth/logout", nil)
	if w.Code != http.StatusNoContent {
		t.Fatalf("Logout: expected 204, got %d", w.Code)
	}
	w = member.do("GET", "/api/session", nil)
	if body := decode(t, w); body["user"] != nil {
		t.Errorf("Expected null user after logout, got %v", body["user"])
	}
}
