package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/Sharmake123/som-election-platform/config"
	"github.com/Sharmake123/som-election-platform/models"
)

// CreateMessage accepts a public contact-form submission.
func CreateMessage(c *gin.Context) {
	var input struct {
		Name    string `json:"name" binding:"required"`
		Email   string `json:"email" binding:"required,email"`
		Subject string `json:"subject" binding:"required"`
		Message string `json:"message" binding:"required"`
	}
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"message": err.Error()})
		return
	}

	message := models.Message{
		Name:    input.Name,
		Email:   input.Email,
		Subject: input.Subject,
		Body:    input.Message,
	}
	if err := config.DB.Create(&message).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"message": "Server Error"})
		return
	}

	c.JSON(http.StatusCreated, message)
}

// ListMessages returns all submissions, newest first (admin only).
func ListMessages(c *gin.Context) {
	var messages []models.Message
	if err := config.DB.Order("created_at DESC").Find(&messages).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"message": "Server Error"})
		return
	}
	c.JSON(http.StatusOK, messages)
}
