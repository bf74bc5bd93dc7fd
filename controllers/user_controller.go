package controllers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/Sharmake123/som-election-platform/config"
	"github.com/Sharmake123/som-election-platform/models"
)

// ListUsers returns all users. The password hash never leaves the model's
// json:"-" field.
func ListUsers(c *gin.Context) {
	var users []models.User
	if err := config.DB.Find(&users).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"message": "Server Error"})
		return
	}
	c.JSON(http.StatusOK, users)
}

// CreateUser lets an admin create an account directly. Unlike
// self-registration, status defaults to Verified.
func CreateUser(c *gin.Context) {
	var input struct {
		Username   string            `json:"username" binding:"required"`
		Email      string            `json:"email" binding:"required,email"`
		Password   string            `json:"password" binding:"required,min=6"`
		Mobile     string            `json:"mobile" binding:"required"`
		NationalID string            `json:"nationalId" binding:"required"`
		DOB        string            `json:"dob" binding:"required"`
		Role       models.Role       `json:"role"`
		Status     models.UserStatus `json:"status"`
	}
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"message": err.Error()})
		return
	}

	var existing models.User
	if err := config.DB.Where("email = ?", input.Email).First(&existing).Error; err == nil {
		c.JSON(http.StatusBadRequest, gin.H{"message": "User already exists"})
		return
	}

	hashed, err := models.HashPassword(input.Password)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"message": "Failed to hash password"})
		return
	}

	role := input.Role
	if role == "" {
		role = models.RoleVoter
	}
	status := input.Status
	if status == "" {
		status = models.StatusVerified
	}

	user := models.User{
		Username:   input.Username,
		Email:      input.Email,
		Password:   hashed,
		Mobile:     input.Mobile,
		NationalID: input.NationalID,
		DOB:        input.DOB,
		Photo:      models.DefaultPhoto,
		Role:       role,
		Status:     status,
	}
	if err := config.DB.Create(&user).Error; err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			c.JSON(http.StatusBadRequest, gin.H{"message": "User already exists"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"message": "Server Error"})
		return
	}

	c.JSON(http.StatusCreated, gin.H{
		"id":       user.ID,
		"username": user.Username,
		"email":    user.Email,
		"role":     user.Role,
		"status":   user.Status,
	})
}

// UpdateUser applies a partial admin edit, rehashing the password when one
// is supplied.
func UpdateUser(c *gin.Context) {
	var user models.User
	if err := config.DB.First(&user, c.Param("id")).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"message": "User not found"})
		return
	}

	var input struct {
		Username   string            `json:"username"`
		Email      string            `json:"email"`
		Password   string            `json:"password"`
		Mobile     string            `json:"mobile"`
		NationalID string            `json:"nationalId"`
		DOB        string            `json:"dob"`
		Role       models.Role       `json:"role"`
		Status     models.UserStatus `json:"status"`
	}
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"message": err.Error()})
		return
	}

	if input.Username != "" {
		user.Username = input.Username
	}
	if input.Email != "" {
		user.Email = input.Email
	}
	if input.Mobile != "" {
		user.Mobile = input.Mobile
	}
	if input.NationalID != "" {
		user.NationalID = input.NationalID
	}
	if input.DOB != "" {
		user.DOB = input.DOB
	}
	if input.Role != "" {
		user.Role = input.Role
	}
	if input.Status != "" {
		user.Status = input.Status
	}
	if input.Password != "" {
		hashed, err := models.HashPassword(input.Password)
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"message": "Failed to hash password"})
			return
		}
		user.Password = hashed
	}

	if err := config.DB.Save(&user).Error; err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			c.JSON(http.StatusBadRequest, gin.H{"message": "User already exists"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"message": "Server Error"})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"id":       user.ID,
		"username": user.Username,
		"email":    user.Email,
		"role":     user.Role,
		"status":   user.Status,
	})
}

// VerifyUser marks a user Verified. Legacy single-purpose alias for
// UpdateUser with the status field.
func VerifyUser(c *gin.Context) {
	var user models.User
	if err := config.DB.First(&user, c.Param("id")).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"message": "User not found"})
		return
	}

	user.Status = models.StatusVerified
	if err := config.DB.Save(&user).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"message": "Server Error"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "User has been verified"})
}

// DeleteUser removes a user; their votes go with them via the cascade.
func DeleteUser(c *gin.Context) {
	var user models.User
	if err := config.DB.First(&user, c.Param("id")).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"message": "User not found"})
		return
	}

	if err := config.DB.Delete(&user).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"message": "Server Error"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "User removed"})
}
