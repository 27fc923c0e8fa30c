package handlers_test

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"log"
	"net/http"
	"net/http/httptest"
	"os"
	"sync/atomic"
	"testing"

	"kursus/internal/handlers"
	"kursus/internal/middleware"
	"kursus/internal/models"
	"kursus/internal/repositories"
	"kursus/internal/services"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"github.com/spf13/viper"
	"github.com/stretchr/testify/assert"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

var dbSeq atomic.Int64

// setupApp builds the full app against a fresh in-memory SQLite database,
// mirroring the wiring in main.NewApp.
func setupApp() (*fiber.App, *services.AuthService, *gorm.DB, error) {
	viper.SetDefault("JWT_SECRET", "test_jwt_secret")
	viper.AutomaticEnv()
	jwtSecret := viper.GetString("JWT_SECRET")

	// A unique name per setup keeps tests from sharing state
	dsn := fmt.Sprintf("file:integration%d?mode=memory&cache=shared", dbSeq.Add(1))
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{})
	if err != nil {
		return nil, nil, nil, fmt.Errorf("failed to connect to in-memory database: %w", err)
	}
	if err := repositories.Migrate(db); err != nil {
		return nil, nil, nil, fmt.Errorf("failed to migrate database: %w", err)
	}

	userRepo := repositories.NewGORMUserRepository(db)
	courseRepo := repositories.NewGORMCourseRepository(db)
	blogRepo := repositories.NewGORMBlogRepository(db)
	orderRepo := repositories.NewGORMOrderRepository(db)
	enrollmentRepo := repositories.NewGORMEnrollmentRepository(db)
	verificationRepo := repositories.NewGORMVerificationRepository(db)

	authService := services.NewAuthService(userRepo, jwtSecret)
	courseService := services.NewCourseService(courseRepo)
	blogService := services.NewBlogService(blogRepo)
	paymentService := services.NewPaymentService(orderRepo, courseRepo, enrollmentRepo, verificationRepo, nil) // nil publisher

	authHandler := handlers.NewAuthHandler(authService)
	courseHandler := handlers.NewCourseHandler(courseService)
	blogHandler := handlers.NewBlogHandler(blogService)
	paymentHandler := handlers.NewPaymentHandler(paymentService)

	app := fiber.New()

	api := app.Group("/api")
	authHandler.RegisterRoutes(api)
	courseHandler.RegisterRoutes(api)
	blogHandler.RegisterPublicRoutes(api)

	protected := api.Group("", middleware.AuthRequired(authService))
	paymentHandler.RegisterRoutes(protected)
	blogHandler.RegisterProtectedRoutes(protected)

	admin := protected.Group("/admin", middleware.AdminRequired(userRepo))
	blogHandler.RegisterAdminRoutes(admin)

	return app, authService, db, nil
}

// TestMain runs setup and teardown for all tests
func TestMain(m *testing.M) {
	// Suppress logging during tests for cleaner output
	log.SetOutput(io.Discard)
	code := m.Run()
	os.Exit(code)
}

// request performs a JSON request against the app, optionally with a bearer
// token, and decodes the response body into a generic map.
func request(t *testing.T, app *fiber.App, method, path string, body interface{}, token string) (int, map[string]interface{}) {
	t.Helper()
	var reader io.Reader
	if body != nil {
		jsonBody, err := json.Marshal(body)
		assert.NoError(t, err)
		reader = bytes.NewReader(jsonBody)
	}
	req := httptest.NewRequest(method, path, reader)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	resp, err := app.Test(req, -1) // -1 for no timeout
	assert.NoError(t, err)
	defer resp.Body.Close()

	raw, err := io.ReadAll(resp.Body)
	assert.NoError(t, err)
	var decoded map[string]interface{}
	if len(raw) > 0 && raw[0] == '{' {
		assert.NoError(t, json.Unmarshal(raw, &decoded))
	}
	return resp.StatusCode, decoded
}

// registerAndLogin creates an account through the API and returns its token.
func registerAndLogin(t *testing.T, app *fiber.App, username, email, password string) string {
	t.Helper()
	status, body := request(t, app, http.MethodPost, "/api/register", map[string]string{
		"username": username,
		"email":    email,
		"password": password,
	}, "")
	assert.Equal(t, http.StatusOK, status)
	assert.Equal(t, "User registered successfully", body["message"])

	status, body = request(t, app, http.MethodPost, "/api/login", map[string]string{
		"email":    email,
		"password": password,
	}, "")
	assert.Equal(t, http.StatusOK, status)
	token, _ := body["token"].(string)
	assert.NotEmpty(t, token)
	return token
}

func seedCourse(t *testing.T, db *gorm.DB, title string, price, discount float64) string {
	t.Helper()
	course := models.Course{
		Title:    title,
		Price:    price,
		Discount: discount,
		Rating:   4.5,
	}
	assert.NoError(t, repositories.NewGORMCourseRepository(db).Create(&course))
	return course.ID
}

func TestRegisterAndLogin(t *testing.T) {
	app, authService, _, err := setupApp()
	assert.NoError(t, err)

	token := registerAndLogin(t, app, "alice", "a@x.com", "secret1")

	// The token round-trips to the stored identity
	claims, err := authService.ValidateToken(token)
	assert.NoError(t, err)
	assert.Equal(t, models.RoleUser, claims.Role)

	// Login returns the public user projection, never the password hash
	status, body := request(t, app, http.MethodPost, "/api/login", map[string]string{
		"email":    "a@x.com",
		"password": "secret1",
	}, "")
	assert.Equal(t, http.StatusOK, status)
	user, ok := body["user"].(map[string]interface{})
	assert.True(t, ok)
	assert.Equal(t, "alice", user["username"])
	assert.Equal(t, models.RoleUser, user["role"])
	assert.NotContains(t, user, "password")
	assert.NotContains(t, user, "Password")

	// Duplicate registration is rejected
	status, _ = request(t, app, http.MethodPost, "/api/register", map[string]string{
		"username": "alice",
		"email":    "a@x.com",
		"password": "secret1",
	}, "")
	assert.Equal(t, http.StatusConflict, status)

	// Wrong password and unknown email are both unauthorized
	status, _ = request(t, app, http.MethodPost, "/api/login", map[string]string{
		"email":    "a@x.com",
		"password": "wrong",
	}, "")
	assert.Equal(t, http.StatusUnauthorized, status)
	status, _ = request(t, app, http.MethodPost, "/api/login", map[string]string{
		"email":    "nobody@x.com",
		"password": "secret1",
	}, "")
	assert.Equal(t, http.StatusUnauthorized, status)
}

func TestPurchaseFlow(t *testing.T) {
	app, _, db, err := setupApp()
	assert.NoError(t, err)

	courseID := seedCourse(t, db, "Go Basics", 100.00, 20)
	token := registerAndLogin(t, app, "buyer", "buyer@x.com", "secret1")

	// The catalog shows the discounted course
	req := httptest.NewRequest(http.MethodGet, "/api/courses", nil)
	resp, err := app.Test(req, -1)
	assert.NoError(t, err)
	var courses []models.Course
	assert.NoError(t, json.NewDecoder(resp.Body).Decode(&courses))
	resp.Body.Close()
	assert.Len(t, courses, 1)
	assert.Equal(t, courseID, courses[0].ID)

	// Course detail formats price and rating to fixed decimals
	status, body := request(t, app, http.MethodGet, "/api/courses/"+courseID, nil, "")
	assert.Equal(t, http.StatusOK, status)
	assert.Equal(t, "100.00", body["price"])
	assert.Equal(t, "4.5", body["rating"])
	assert.Equal(t, "Expert Instructor", body["instructor_name"])
	assert.Equal(t, "Flexible", body["duration"])

	// A pending order
	status, body = request(t, app, http.MethodPost, "/api/orders", map[string]string{
		"course_id":      courseID,
		"payment_method": "credit_card",
	}, token)
	assert.Equal(t, http.StatusOK, status)
	pendingOrderID, _ := body["order_id"].(string)
	assert.NotEmpty(t, pendingOrderID)

	// Verification issues a 6-digit code
	status, body = request(t, app, http.MethodPost, "/api/payments/verify", map[string]interface{}{
		"courseId":      courseID,
		"paymentMethod": "credit_card",
		"amount":        80.00,
	}, token)
	assert.Equal(t, http.StatusOK, status)
	code, _ := body["verificationCode"].(string)
	assert.Len(t, code, 6)

	// First completion succeeds
	status, body = request(t, app, http.MethodPost, "/api/payments/complete", map[string]interface{}{
		"courseId":      courseID,
		"paymentMethod": "credit_card",
		"amount":        80.00,
	}, token)
	assert.Equal(t, http.StatusOK, status)
	assert.Equal(t, true, body["success"])
	completedOrderID, _ := body["orderId"].(string)
	assert.NotEmpty(t, completedOrderID)

	// Second completion is rejected
	status, body = request(t, app, http.MethodPost, "/api/payments/complete", map[string]interface{}{
		"courseId":      courseID,
		"paymentMethod": "credit_card",
		"amount":        80.00,
	}, token)
	assert.Equal(t, http.StatusBadRequest, status)
	assert.Equal(t, "You have already purchased this course", body["error"])

	// The enrollment counter moved once and the enrollment record exists
	var course models.Course
	assert.NoError(t, db.First(&course, "id = ?", courseID).Error)
	assert.Equal(t, 1, course.TotalEnrolled)
	var enrollments int64
	assert.NoError(t, db.Model(&models.Enrollment{}).Where("course_id = ?", courseID).Count(&enrollments).Error)
	assert.Equal(t, int64(1), enrollments)

	// Order detail computes the discounted amount for the owner
	status, body = request(t, app, http.MethodGet, "/api/orders/"+completedOrderID, nil, token)
	assert.Equal(t, http.StatusOK, status)
	assert.Equal(t, "80.00", body["amount"])
	assert.Equal(t, "Go Basics", body["course_title"])

	// A different user cannot read the order
	otherToken := registerAndLogin(t, app, "other", "other@x.com", "secret1")
	status, _ = request(t, app, http.MethodGet, "/api/orders/"+completedOrderID, nil, otherToken)
	assert.Equal(t, http.StatusNotFound, status)
}

func TestAuthRequired(t *testing.T) {
	app, _, _, err := setupApp()
	assert.NoError(t, err)

	// Missing, malformed, and invalid tokens are all 401
	status, _ := request(t, app, http.MethodPost, "/api/orders", map[string]string{"course_id": "x"}, "")
	assert.Equal(t, http.StatusUnauthorized, status)

	status, _ = request(t, app, http.MethodPost, "/api/orders", map[string]string{"course_id": "x"}, "garbage.token.value")
	assert.Equal(t, http.StatusUnauthorized, status)

	req := httptest.NewRequest(http.MethodPost, "/api/orders", bytes.NewReader([]byte(`{}`)))
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Token abc")
	resp, err := app.Test(req, -1)
	assert.NoError(t, err)
	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
	resp.Body.Close()
}

func TestAdminGate(t *testing.T) {
	app, authService, db, err := setupApp()
	assert.NoError(t, err)

	registerAndLogin(t, app, "pleb", "pleb@x.com", "secret1")
	var pleb models.User
	assert.NoError(t, db.First(&pleb, "email = ?", "pleb@x.com").Error)

	// A forged token claiming the admin role does not help: the role is
	// re-read from the store.
	forged, err := authService.IssueToken(pleb.ID, models.RoleAdmin)
	assert.NoError(t, err)
	status, _ := request(t, app, http.MethodGet, "/api/admin/blogs", nil, forged)
	assert.Equal(t, http.StatusForbidden, status)

	// A valid token for a user that no longer resolves is 404
	ghost, err := authService.IssueToken(uuid.New().String(), models.RoleAdmin)
	assert.NoError(t, err)
	status, _ = request(t, app, http.MethodGet, "/api/admin/blogs", nil, ghost)
	assert.Equal(t, http.StatusNotFound, status)

	// Promote the user in the store; the same old token now passes, since
	// only the store role counts.
	assert.NoError(t, db.Model(&models.User{}).Where("id = ?", pleb.ID).Update("role", models.RoleAdmin).Error)
	status, _ = request(t, app, http.MethodGet, "/api/admin/blogs", nil, forged)
	assert.Equal(t, http.StatusOK, status)

	// Admin CMS create works once the store role is right
	status, body := request(t, app, http.MethodPost, "/api/admin/blogs", map[string]string{
		"title":   "From the desk of the admin",
		"content": "quarterly update",
		"status":  "published",
	}, forged)
	assert.Equal(t, http.StatusOK, status)
	assert.Equal(t, true, body["success"])
	assert.NotEmpty(t, body["blogId"])
}

func TestBlogAuthorOnly(t *testing.T) {
	app, _, db, err := setupApp()
	assert.NoError(t, err)

	authorToken := registerAndLogin(t, app, "author", "author@x.com", "secret1")
	intruderToken := registerAndLogin(t, app, "intruder", "intruder@x.com", "secret1")

	// Author publishes a post
	status, body := request(t, app, http.MethodPost, "/api/blogs", map[string]string{
		"title":    "Launch notes",
		"content":  "We shipped.",
		"status":   "published",
		"category": "news",
	}, authorToken)
	assert.Equal(t, http.StatusOK, status)
	blogID, _ := body["blogId"].(string)
	assert.NotEmpty(t, blogID)

	// And keeps a draft
	status, body = request(t, app, http.MethodPost, "/api/blogs", map[string]string{
		"title":   "Unfinished thoughts",
		"content": "wip",
	}, authorToken)
	assert.Equal(t, http.StatusOK, status)
	draftID, _ := body["blogId"].(string)

	// Public feed shows only the published post
	req := httptest.NewRequest(http.MethodGet, "/api/blogs", nil)
	resp, err := app.Test(req, -1)
	assert.NoError(t, err)
	var feed []models.Blog
	assert.NoError(t, json.NewDecoder(resp.Body).Decode(&feed))
	resp.Body.Close()
	assert.Len(t, feed, 1)
	assert.Equal(t, blogID, feed[0].ID)
	assert.Equal(t, "author", feed[0].AuthorName)

	// The draft is hidden from the public single-post route too
	status, _ = request(t, app, http.MethodGet, "/api/blogs/"+draftID, nil, "")
	assert.Equal(t, http.StatusNotFound, status)

	// A non-author cannot update or delete; both read as not-found
	status, _ = request(t, app, http.MethodPut, "/api/blogs/"+blogID, map[string]string{
		"title":   "Hijacked",
		"content": "rewritten",
	}, intruderToken)
	assert.Equal(t, http.StatusNotFound, status)
	status, _ = request(t, app, http.MethodDelete, "/api/blogs/"+blogID, nil, intruderToken)
	assert.Equal(t, http.StatusNotFound, status)

	// The post is untouched
	var blog models.Blog
	assert.NoError(t, db.First(&blog, "id = ?", blogID).Error)
	assert.Equal(t, "Launch notes", blog.Title)

	// The author can do both
	status, _ = request(t, app, http.MethodPut, "/api/blogs/"+blogID, map[string]string{
		"title":   "Launch notes, amended",
		"content": "We shipped, then fixed.",
		"status":  "published",
	}, authorToken)
	assert.Equal(t, http.StatusOK, status)
	status, _ = request(t, app, http.MethodDelete, "/api/blogs/"+blogID, nil, authorToken)
	assert.Equal(t, http.StatusOK, status)
	status, _ = request(t, app, http.MethodGet, "/api/blogs/"+blogID, nil, "")
	assert.Equal(t, http.StatusNotFound, status)

	// Admin listing still sees the remaining draft
	assert.NoError(t, db.Model(&models.User{}).Where("email = ?", "author@x.com").Update("role", models.RoleAdmin).Error)
	req = httptest.NewRequest(http.MethodGet, "/api/admin/blogs", nil)
	req.Header.Set("Authorization", "Bearer "+authorToken)
	resp, err = app.Test(req, -1)
	assert.NoError(t, err)
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	var all []models.Blog
	assert.NoError(t, json.NewDecoder(resp.Body).Decode(&all))
	resp.Body.Close()
	assert.Len(t, all, 1)
	assert.Equal(t, draftID, all[0].ID)
}
