package controllers_test

import (
	"net/http"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/Sharmake123/som-election-platform/config"
	"github.com/Sharmake123/som-election-platform/models"
)

func TestShowcaseCandidates(t *testing.T) {
	router := setupTest(t)
	election := activeElection(t, "Showcase Election")

	// Four candidates with staggered creation times; only the newest three
	// appear, newest first.
	names := []string{"oldest", "older", "newer", "newest"}
	base := time.Now().Add(-time.Hour)
	for i, name := range names {
		candidate := createCandidate(t, name, election.ID)
		config.DB.Model(candidate).Update("created_at", base.Add(time.Duration(i)*time.Minute))
	}

	// Public endpoint, no token.
	w := doJSON(t, router, "GET", "/api/candidates/showcase", nil, "")
	expectStatus(t, w, http.StatusOK)

	var candidates []models.Candidate
	decodeBody(t, w, &candidates)
	if len(candidates) != 3 {
		t.Fatalf("showcase length = %d, want 3", len(candidates))
	}
	wantOrder := []string{"newest", "newer", "older"}
	for i, want := range wantOrder {
		if candidates[i].FullName != want {
			t.Errorf("showcase[%d] = %q, want %q", i, candidates[i].FullName, want)
		}
	}
}

func TestGetCandidatePublic(t *testing.T) {
	router := setupTest(t)
	election := activeElection(t, "Detail Election")
	candidate := createCandidate(t, "detail-candidate", election.ID)

	w := doJSON(t, router, "GET", "/api/candidates/"+itoa(candidate.ID), nil, "")
	expectStatus(t, w, http.StatusOK)

	var body models.Candidate
	decodeBody(t, w, &body)
	if body.FullName != "detail-candidate" {
		t.Errorf("fullName = %q", body.FullName)
	}
	if body.Election == nil || body.Election.Name != "Detail Election" {
		t.Errorf("election not included: %+v", body.Election)
	}

	w = doJSON(t, router, "GET", "/api/candidates/9999", nil, "")
	expectStatus(t, w, http.StatusNotFound)
}

func TestListCandidatesAdminOnly(t *testing.T) {
	router := setupTest(t)
	admin := createUser(t, "cand-admin", models.RoleAdmin, models.StatusVerified)
	voter := createUser(t, "cand-voter", models.RoleVoter, models.StatusVerified)
	election := activeElection(t, "Election")
	createCandidate(t, "one", election.ID)

	w := doJSON(t, router, "GET", "/api/candidates", nil, tokenFor(t, voter))
	expectStatus(t, w, http.StatusForbidden)

	w = doJSON(t, router, "GET", "/api/candidates", nil, tokenFor(t, admin))
	expectStatus(t, w, http.StatusOK)

	var candidates []models.Candidate
	decodeBody(t, w, &candidates)
	if len(candidates) != 1 {
		t.Errorf("candidates length = %d, want 1", len(candidates))
	}
}

func TestCandidatesForElection(t *testing.T) {
	router := setupTest(t)
	voter := createUser(t, "fe-voter", models.RoleVoter, models.StatusVerified)
	electionA := activeElection(t, "Election A")
	electionB := activeElection(t, "Election B")
	createCandidate(t, "in-a", electionA.ID)
	createCandidate(t, "in-b", electionB.ID)

	w := doJSON(t, router, "GET", "/api/candidates/election/"+itoa(electionA.ID), nil, tokenFor(t, voter))
	expectStatus(t, w, http.StatusOK)

	var candidates []models.Candidate
	decodeBody(t, w, &candidates)
	if len(candidates) != 1 || candidates[0].FullName != "in-a" {
		t.Errorf("candidates = %+v, want only in-a", candidates)
	}
}

func TestCreateCandidate(t *testing.T) {
	router := setupTest(t)
	admin := createUser(t, "create-admin", models.RoleAdmin, models.StatusVerified)
	election := activeElection(t, "Election")

	fields := map[string]string{
		"fullName": "Amina Hassan",
		"email":    "amina@example.com",
		"election": itoa(election.ID),
		"bio":      "Community organizer",
	}
	body, contentType := multipartForm(t, fields, "", "", nil)
	w := doMultipart(t, router, "POST", "/api/candidates", body, contentType, tokenFor(t, admin))
	expectStatus(t, w, http.StatusCreated)

	var created models.Candidate
	decodeBody(t, w, &created)
	if created.Photo != models.DefaultPhoto {
		t.Errorf("photo = %q, want default placeholder", created.Photo)
	}

	// Duplicate email is a conflict.
	body, contentType = multipartForm(t, fields, "", "", nil)
	w = doMultipart(t, router, "POST", "/api/candidates", body, contentType, tokenFor(t, admin))
	expectStatus(t, w, http.StatusBadRequest)
	if got := messageOf(t, w); got != "Candidate with this email already exists" {
		t.Errorf("message = %q", got)
	}
}

func TestCreateCandidateMissingFields(t *testing.T) {
	router := setupTest(t)
	admin := createUser(t, "missing-admin", models.RoleAdmin, models.StatusVerified)

	body, contentType := multipartForm(t, map[string]string{"fullName": "No Email"}, "", "", nil)
	w := doMultipart(t, router, "POST", "/api/candidates", body, contentType, tokenFor(t, admin))
	expectStatus(t, w, http.StatusBadRequest)
	if got := messageOf(t, w); got != "Please provide full name, email, and election" {
		t.Errorf("message = %q", got)
	}
}

func TestCreateCandidateRejectsNonImage(t *testing.T) {
	router := setupTest(t)
	admin := createUser(t, "photo-admin", models.RoleAdmin, models.StatusVerified)
	election := activeElection(t, "Election")

	fields := map[string]string{
		"fullName": "Bad Upload",
		"email":    "bad-upload@example.com",
		"election": itoa(election.ID),
	}
	body, contentType := multipartForm(t, fields, "resume.pdf", "application/pdf", []byte("%PDF"))
	w := doMultipart(t, router, "POST", "/api/candidates", body, contentType, tokenFor(t, admin))
	expectStatus(t, w, http.StatusBadRequest)
	if got := messageOf(t, w); got != "Images only!" {
		t.Errorf("message = %q", got)
	}
}

func TestCandidatePhotoLifecycle(t *testing.T) {
	router := setupTest(t)
	admin := createUser(t, "life-admin", models.RoleAdmin, models.StatusVerified)
	election := activeElection(t, "Election")
	token := tokenFor(t, admin)

	fields := map[string]string{
		"fullName": "Pictured",
		"email":    "pictured@example.com",
		"election": itoa(election.ID),
	}
	body, contentType := multipartForm(t, fields, "portrait.png", "image/png", []byte("png-bytes"))
	w := doMultipart(t, router, "POST", "/api/candidates", body, contentType, token)
	expectStatus(t, w, http.StatusCreated)

	var created models.Candidate
	decodeBody(t, w, &created)
	if created.Photo == models.DefaultPhoto {
		t.Fatal("expected a stored photo, got the placeholder")
	}
	firstPhoto := filepath.Join(config.UploadsDir, created.Photo)
	if _, err := os.Stat(firstPhoto); err != nil {
		t.Fatalf("photo file not stored: %v", err)
	}

	// Replacing the photo removes the old file.
	body, contentType = multipartForm(t, nil, "portrait2.jpg", "image/jpeg", []byte("jpg-bytes"))
	w = doMultipart(t, router, "PUT", "/api/candidates/"+itoa(created.ID), body, contentType, token)
	expectStatus(t, w, http.StatusOK)

	var updated models.Candidate
	decodeBody(t, w, &updated)
	if updated.Photo == created.Photo {
		t.Error("photo reference unchanged after replacement")
	}
	if _, err := os.Stat(firstPhoto); !os.IsNotExist(err) {
		t.Error("old photo file should be removed after replacement")
	}

	// Deleting the candidate removes the current file.
	secondPhoto := filepath.Join(config.UploadsDir, updated.Photo)
	w = doJSON(t, router, "DELETE", "/api/candidates/"+itoa(created.ID), nil, token)
	expectStatus(t, w, http.StatusOK)
	if _, err := os.Stat(secondPhoto); !os.IsNotExist(err) {
		t.Error("photo file should be removed with the candidate")
	}
}

func TestDeleteCandidateDefaultPhoto(t *testing.T) {
	router := setupTest(t)
	admin := createUser(t, "defphoto-admin", models.RoleAdmin, models.StatusVerified)
	election := activeElection(t, "Election")
	candidate := createCandidate(t, "plain", election.ID)

	// Seed a placeholder file; deletion must not touch it.
	placeholder := filepath.Join(config.UploadsDir, models.DefaultPhoto)
	if err := os.WriteFile(placeholder, []byte("placeholder"), 0o644); err != nil {
		t.Fatalf("Failed to write placeholder: %v", err)
	}

	w := doJSON(t, router, "DELETE", "/api/candidates/"+itoa(candidate.ID), nil, tokenFor(t, admin))
	expectStatus(t, w, http.StatusOK)

	if _, err := os.Stat(placeholder); err != nil {
		t.Error("default placeholder must survive candidate deletion")
	}
}

func TestUpdateCandidateEmailConflict(t *testing.T) {
	router := setupTest(t)
	admin := createUser(t, "conflict-admin", models.RoleAdmin, models.StatusVerified)
	election := activeElection(t, "Election")
	createCandidate(t, "taken", election.ID)
	candidate := createCandidate(t, "renamer", election.ID)

	body, contentType := multipartForm(t, map[string]string{"email": "taken@example.com"}, "", "", nil)
	w := doMultipart(t, router, "PUT", "/api/candidates/"+itoa(candidate.ID), body, contentType, tokenFor(t, admin))
	expectStatus(t, w, http.StatusBadRequest)
	if got := messageOf(t, w); got != "A candidate with this email already exists" {
		t.Errorf("message = %q", got)
	}
}
