package controllers_test

import (
	"bytes"
	"encoding/json"
	"io"
	"mime/multipart"
	"net/http/httptest"
	"strconv"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/glebarez/sqlite"
	"github.com/golang-jwt/jwt/v4"
	"gorm.io/gorm"

	"github.com/Sharmake123/som-election-platform/config"
	"github.com/Sharmake123/som-election-platform/models"
	"github.com/Sharmake123/som-election-platform/routes"
	"github.com/Sharmake123/som-election-platform/storage"
)

// setupTest swaps the global DB for an in-memory SQLite instance with the
// full schema and returns the real route table over it.
func setupTest(t *testing.T) *gin.Engine {
	t.Helper()
	gin.SetMode(gin.TestMode)

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{TranslateError: true})
	if err != nil {
		t.Fatalf("Failed to open test database: %v", err)
	}
	sqlDB, err := db.DB()
	if err != nil {
		t.Fatalf("Failed to get sql.DB: %v", err)
	}
	// A single connection keeps every query on the same :memory: database.
	sqlDB.SetMaxOpenConns(1)

	err = db.AutoMigrate(
		&models.User{},
		&models.Election{},
		&models.Candidate{},
		&models.Vote{},
		&models.Message{},
	)
	if err != nil {
		t.Fatalf("Failed to migrate test database: %v", err)
	}

	config.DB = db
	config.JWTSecret = []byte("test-secret")
	config.UploadsDir = t.TempDir()
	storage.Photos = &storage.DiskStore{Dir: config.UploadsDir}

	return routes.SetupRouter()
}

func createUser(t *testing.T, username string, role models.Role, status models.UserStatus) *models.User {
	t.Helper()

	hashed, err := models.HashPassword("password123")
	if err != nil {
		t.Fatalf("Failed to hash password: %v", err)
	}
	user := &models.User{
		Username:   username,
		Email:      username + "@example.com",
		Password:   hashed,
		Mobile:     "07" + username,
		NationalID: "NID-" + username,
		DOB:        "1990-01-01",
		Photo:      models.DefaultPhoto,
		Role:       role,
		Status:     status,
	}
	if err := config.DB.Create(user).Error; err != nil {
		t.Fatalf("Failed to create test user: %v", err)
	}
	return user
}

func tokenFor(t *testing.T, user *models.User) string {
	t.Helper()

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{
		"user_id": user.ID,
		"exp":     time.Now().Add(time.Hour).Unix(),
	})
	signed, err := token.SignedString(config.JWTSecret)
	if err != nil {
		t.Fatalf("Failed to sign test token: %v", err)
	}
	return signed
}

func createElection(t *testing.T, name string, start, end time.Time) *models.Election {
	t.Helper()

	election := &models.Election{
		Name:      name,
		Position:  "President",
		StartDate: start,
		EndDate:   end,
	}
	if err := config.DB.Create(election).Error; err != nil {
		t.Fatalf("Failed to create test election: %v", err)
	}
	return election
}

// activeElection spans an hour either side of now.
func activeElection(t *testing.T, name string) *models.Election {
	t.Helper()
	return createElection(t, name, time.Now().Add(-time.Hour), time.Now().Add(time.Hour))
}

func createCandidate(t *testing.T, fullName string, electionID uint) *models.Candidate {
	t.Helper()

	candidate := &models.Candidate{
		FullName:   fullName,
		Email:      fullName + "@example.com",
		Photo:      models.DefaultPhoto,
		ElectionID: electionID,
	}
	if err := config.DB.Create(candidate).Error; err != nil {
		t.Fatalf("Failed to create test candidate: %v", err)
	}
	return candidate
}

func castVote(t *testing.T, userID, electionID, candidateID uint) {
	t.Helper()

	vote := &models.Vote{UserID: userID, ElectionID: electionID, CandidateID: candidateID}
	if err := config.DB.Create(vote).Error; err != nil {
		t.Fatalf("Failed to create test vote: %v", err)
	}
}

func doJSON(t *testing.T, router *gin.Engine, method, path string, body interface{}, token string) *httptest.ResponseRecorder {
	t.Helper()

	var reader io.Reader
	if body != nil {
		data, err := json.Marshal(body)
		if err != nil {
			t.Fatalf("Failed to marshal request body: %v", err)
		}
		reader = bytes.NewReader(data)
	}

	req := httptest.NewRequest(method, path, reader)
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	return w
}

// multipartForm builds a multipart body from fields plus an optional file
// part named "photo".
func multipartForm(t *testing.T, fields map[string]string, photoName, photoType string, photoData []byte) (*bytes.Buffer, string) {
	t.Helper()

	var buf bytes.Buffer
	writer := multipart.NewWriter(&buf)
	for key, value := range fields {
		if err := writer.WriteField(key, value); err != nil {
			t.Fatalf("Failed to write form field: %v", err)
		}
	}
	if photoName != "" {
		header := make(map[string][]string)
		header["Content-Disposition"] = []string{`form-data; name="photo"; filename="` + photoName + `"`}
		header["Content-Type"] = []string{photoType}
		part, err := writer.CreatePart(header)
		if err != nil {
			t.Fatalf("Failed to create photo part: %v", err)
		}
		if _, err := part.Write(photoData); err != nil {
			t.Fatalf("Failed to write photo data: %v", err)
		}
	}
	writer.Close()
	return &buf, writer.FormDataContentType()
}

func doMultipart(t *testing.T, router *gin.Engine, method, path string, body *bytes.Buffer, contentType, token string) *httptest.ResponseRecorder {
	t.Helper()

	req := httptest.NewRequest(method, path, body)
	req.Header.Set("Content-Type", contentType)
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	return w
}

func itoa(id uint) string {
	return strconv.FormatUint(uint64(id), 10)
}

func decodeBody(t *testing.T, w *httptest.ResponseRecorder, dest interface{}) {
	t.Helper()
	if err := json.Unmarshal(w.Body.Bytes(), dest); err != nil {
		t.Fatalf("Failed to decode response %q: %v", w.Body.String(), err)
	}
}

func messageOf(t *testing.T, w *httptest.ResponseRecorder) string {
	t.Helper()
	var body struct {
		Message string `json:"message"`
	}
	decodeBody(t, w, &body)
	return body.Message
}

func expectStatus(t *testing.T, w *httptest.ResponseRecorder, want int) {
	t.Helper()
	if w.Code != want {
		t.Fatalf("Status = %d, want %d (body: %s)", w.Code, want, w.Body.String())
	}
}
