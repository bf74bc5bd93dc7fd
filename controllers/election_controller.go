package controllers

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/Sharmake123/som-election-platform/config"
	"github.com/Sharmake123/som-election-platform/models"
)

// ListElections returns every election with its status computed from the
// current time. Status can flip between two reads without any write.
func ListElections(c *gin.Context) {
	var elections []models.Election
	if err := config.DB.Find(&elections).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"message": "Server Error"})
		return
	}

	now := models.Now()
	for i := range elections {
		elections[i].Status = elections[i].StatusAt(now)
	}
	c.JSON(http.StatusOK, elections)
}

// CreateElection creates an election (admin only).
func CreateElection(c *gin.Context) {
	var input struct {
		Name      string    `json:"name" binding:"required"`
		Position  string    `json:"position" binding:"required"`
		StartDate time.Time `json:"startDate" binding:"required"`
		EndDate   time.Time `json:"endDate" binding:"required"`
	}
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"message": "Invalid data"})
		return
	}
	if input.EndDate.Before(input.StartDate) {
		c.JSON(http.StatusBadRequest, gin.H{"message": "End date must not be before start date"})
		return
	}

	election := models.Election{
		Name:      input.Name,
		Position:  input.Position,
		StartDate: input.StartDate,
		EndDate:   input.EndDate,
	}
	if err := config.DB.Create(&election).Error; err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"message": "Invalid data"})
		return
	}

	election.Status = election.StatusAt(models.Now())
	c.JSON(http.StatusCreated, election)
}

// UpdateElection applies a partial update to an election (admin only).
func UpdateElection(c *gin.Context) {
	var election models.Election
	if err := config.DB.First(&election, c.Param("id")).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"message": "Election not found"})
		return
	}

	var input struct {
		Name      string     `json:"name"`
		Position  string     `json:"position"`
		StartDate *time.Time `json:"startDate"`
		EndDate   *time.Time `json:"endDate"`
	}
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"message": "Invalid data"})
		return
	}

	if input.Name != "" {
		election.Name = input.Name
	}
	if input.Position != "" {
		election.Position = input.Position
	}
	if input.StartDate != nil {
		election.StartDate = *input.StartDate
	}
	if input.EndDate != nil {
		election.EndDate = *input.EndDate
	}
	if election.EndDate.Before(election.StartDate) {
		c.JSON(http.StatusBadRequest, gin.H{"message": "End date must not be before start date"})
		return
	}

	if err := config.DB.Save(&election).Error; err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"message": "Invalid data"})
		return
	}

	election.Status = election.StatusAt(models.Now())
	c.JSON(http.StatusOK, election)
}

// DeleteElection removes an election; its candidates and votes go with it
// via the schema's cascade rules.
func DeleteElection(c *gin.Context) {
	var election models.Election
	if err := config.DB.First(&election, c.Param("id")).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"message": "Election not found"})
		return
	}

	if err := config.DB.Delete(&election).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"message": "Server Error"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Election removed"})
}
