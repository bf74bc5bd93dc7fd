package controllers

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/Sharmake123/som-election-platform/config"
	"github.com/Sharmake123/som-election-platform/models"
	"github.com/Sharmake123/som-election-platform/storage"
)

// showcaseLimit is how many recent candidates the public homepage preview
// shows.
const showcaseLimit = 3

// ListCandidates returns all candidates with their election (admin only).
func ListCandidates(c *gin.Context) {
	var candidates []models.Candidate
	if err := config.DB.Preload("Election").Find(&candidates).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"message": "Server Error"})
		return
	}
	c.JSON(http.StatusOK, candidates)
}

// ShowcaseCandidates returns the most recently added candidates, newest
// first. Public, no authentication.
func ShowcaseCandidates(c *gin.Context) {
	var candidates []models.Candidate
	err := config.DB.Order("created_at DESC").Limit(showcaseLimit).Find(&candidates).Error
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"message": "Server Error"})
		return
	}
	c.JSON(http.StatusOK, candidates)
}

// GetCandidate returns one candidate with its election. Public.
func GetCandidate(c *gin.Context) {
	var candidate models.Candidate
	if err := config.DB.Preload("Election").First(&candidate, c.Param("id")).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"message": "Candidate not found"})
		return
	}
	c.JSON(http.StatusOK, candidate)
}

// CandidatesForElection returns the candidates standing in one election.
func CandidatesForElection(c *gin.Context) {
	var candidates []models.Candidate
	err := config.DB.Where("election_id = ?", c.Param("electionId")).Find(&candidates).Error
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"message": "Server Error"})
		return
	}
	c.JSON(http.StatusOK, candidates)
}

// CreateCandidate adds a candidate (admin only). Multipart form with an
// optional photo; the default placeholder applies when none is sent.
func CreateCandidate(c *gin.Context) {
	fullName := c.PostForm("fullName")
	email := c.PostForm("email")
	electionField := c.PostForm("election")
	bio := c.PostForm("bio")

	if fullName == "" || email == "" || electionField == "" {
		c.JSON(http.StatusBadRequest, gin.H{"message": "Please provide full name, email, and election"})
		return
	}

	electionID, err := strconv.ParseUint(electionField, 10, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"message": "Invalid election"})
		return
	}
	var election models.Election
	if err := config.DB.First(&election, electionID).Error; err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"message": "Invalid election"})
		return
	}

	var existing models.Candidate
	if err := config.DB.Where("email = ?", email).First(&existing).Error; err == nil {
		c.JSON(http.StatusBadRequest, gin.H{"message": "Candidate with this email already exists"})
		return
	}

	photo := models.DefaultPhoto
	if file, err := c.FormFile("photo"); err == nil {
		if err := storage.ValidatePhoto(file); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"message": err.Error()})
			return
		}
		photo, err = storage.Photos.Save(file)
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"message": "Failed to save photo"})
			return
		}
	}

	candidate := models.Candidate{
		FullName:   fullName,
		Email:      email,
		ElectionID: uint(electionID),
		Bio:        bio,
		Photo:      photo,
	}
	if err := config.DB.Create(&candidate).Error; err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			c.JSON(http.StatusBadRequest, gin.H{"message": "Candidate with this email already exists"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"message": "Server error while creating candidate."})
		return
	}

	c.JSON(http.StatusCreated, candidate)
}

// UpdateCandidate applies a partial update (admin only). A replacement
// photo triggers best-effort removal of the old file.
func UpdateCandidate(c *gin.Context) {
	var candidate models.Candidate
	if err := config.DB.First(&candidate, c.Param("id")).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"message": "Candidate not found"})
		return
	}

	if email := c.PostForm("email"); email != "" {
		var existing models.Candidate
		err := config.DB.Where("email = ? AND id <> ?", email, candidate.ID).First(&existing).Error
		if err == nil {
			c.JSON(http.StatusBadRequest, gin.H{"message": "A candidate with this email already exists"})
			return
		}
		candidate.Email = email
	}
	if fullName := c.PostForm("fullName"); fullName != "" {
		candidate.FullName = fullName
	}
	if electionField := c.PostForm("election"); electionField != "" {
		electionID, err := strconv.ParseUint(electionField, 10, 64)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"message": "Invalid election"})
			return
		}
		var election models.Election
		if err := config.DB.First(&election, electionID).Error; err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"message": "Invalid election"})
			return
		}
		candidate.ElectionID = uint(electionID)
	}
	if bio := c.PostForm("bio"); bio != "" {
		candidate.Bio = bio
	}

	if file, err := c.FormFile("photo"); err == nil {
		if err := storage.ValidatePhoto(file); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"message": err.Error()})
			return
		}
		name, err := storage.Photos.Save(file)
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"message": "Failed to save photo"})
			return
		}
		storage.Photos.Remove(candidate.Photo)
		candidate.Photo = name
	}

	if err := config.DB.Save(&candidate).Error; err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			c.JSON(http.StatusBadRequest, gin.H{"message": "A candidate with this email already exists"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"message": "Server Error"})
		return
	}

	c.JSON(http.StatusOK, candidate)
}

// DeleteCandidate removes a candidate and, best-effort, its photo file.
func DeleteCandidate(c *gin.Context) {
	var candidate models.Candidate
	if err := config.DB.First(&candidate, c.Param("id")).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"message": "Candidate not found"})
		return
	}

	storage.Photos.Remove(candidate.Photo)

	if err := config.DB.Delete(&candidate).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"message": "Server Error"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Candidate removed"})
}
