package controllers

import (
	"errors"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v4"
	"gorm.io/gorm"

	"github.com/Sharmake123/som-election-platform/config"
	"github.com/Sharmake123/som-election-platform/middleware"
	"github.com/Sharmake123/som-election-platform/models"
	"github.com/Sharmake123/som-election-platform/storage"
)

// tokenLifetime is the fixed validity window of issued bearer tokens.
const tokenLifetime = 30 * 24 * time.Hour

func generateToken(userID uint) (string, error) {
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{
		"user_id": userID,
		"exp":     models.Now().Add(tokenLifetime).Unix(),
	})
	return token.SignedString(config.JWTSecret)
}

// Register creates a voter account and signs the new user in.
func Register(c *gin.Context) {
	var input struct {
		Username   string `json:"username" binding:"required"`
		Email      string `json:"email" binding:"required,email"`
		Password   string `json:"password" binding:"required,min=6"`
		Mobile     string `json:"mobile" binding:"required"`
		NationalID string `json:"nationalId" binding:"required"`
		DOB        string `json:"dob" binding:"required"`
	}
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"message": err.Error()})
		return
	}

	var existing models.User
	err := config.DB.
		Where("email = ? OR username = ? OR national_id = ?", input.Email, input.Username, input.NationalID).
		First(&existing).Error
	if err == nil {
		c.JSON(http.StatusBadRequest, gin.H{"message": "User with given details already exists"})
		return
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		c.JSON(http.StatusInternalServerError, gin.H{"message": "Server Error"})
		return
	}

	hashed, err := models.HashPassword(input.Password)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"message": "Failed to hash password"})
		return
	}

	user := models.User{
		Username:   input.Username,
		Email:      input.Email,
		Password:   hashed,
		Mobile:     input.Mobile,
		NationalID: input.NationalID,
		DOB:        input.DOB,
		Photo:      models.DefaultPhoto,
		Role:       models.RoleVoter,
		Status:     models.StatusPending,
	}
	if err := config.DB.Create(&user).Error; err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			c.JSON(http.StatusBadRequest, gin.H{"message": "User with given details already exists"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"message": "Server Error"})
		return
	}

	tokenString, err := generateToken(user.ID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"message": "Failed to generate token"})
		return
	}

	c.JSON(http.StatusCreated, gin.H{
		"id":       user.ID,
		"username": user.Username,
		"email":    user.Email,
		"role":     user.Role,
		"photo":    user.Photo,
		"token":    tokenString,
	})
}

// Login authenticates by username or email and issues a token.
func Login(c *gin.Context) {
	var input struct {
		Username string `json:"username" binding:"required"`
		Password string `json:"password" binding:"required"`
	}
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"message": err.Error()})
		return
	}

	var user models.User
	err := config.DB.
		Where("username = ? OR email = ?", input.Username, input.Username).
		First(&user).Error
	if err != nil || !user.MatchPassword(input.Password) {
		c.JSON(http.StatusUnauthorized, gin.H{"message": "Invalid credentials"})
		return
	}

	tokenString, err := generateToken(user.ID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"message": "Failed to generate token"})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"id":       user.ID,
		"username": user.Username,
		"email":    user.Email,
		"role":     user.Role,
		"photo":    user.Photo,
		"token":    tokenString,
	})
}

func profileResponse(user *models.User) gin.H {
	return gin.H{
		"id":         user.ID,
		"username":   user.Username,
		"email":      user.Email,
		"role":       user.Role,
		"photo":      user.Photo,
		"mobile":     user.Mobile,
		"nationalId": user.NationalID,
		"dob":        user.DOB,
		"status":     user.Status,
		"createdAt":  user.CreatedAt,
	}
}

// GetProfile returns the authenticated user's own profile.
func GetProfile(c *gin.Context) {
	user := middleware.CurrentUser(c)
	c.JSON(http.StatusOK, profileResponse(user))
}

// UpdateProfile lets a user change their own contact details and photo.
// Role and status are off-limits here, whatever the caller's role.
func UpdateProfile(c *gin.Context) {
	user := middleware.CurrentUser(c)

	if c.PostForm("role") != "" || c.PostForm("status") != "" {
		c.JSON(http.StatusForbidden, gin.H{"message": "You are not authorized to change role or status."})
		return
	}

	if username := c.PostForm("username"); username != "" {
		user.Username = username
	}
	if email := c.PostForm("email"); email != "" {
		user.Email = email
	}
	if mobile := c.PostForm("mobile"); mobile != "" {
		user.Mobile = mobile
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
		storage.Photos.Remove(user.Photo)
		user.Photo = name
	}

	if err := config.DB.Save(user).Error; err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			c.JSON(http.StatusBadRequest, gin.H{"message": "User with given details already exists"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"message": "Server Error"})
		return
	}

	c.JSON(http.StatusOK, profileResponse(user))
}

// UpdatePassword changes the authenticated user's password after checking
// the current one.
func UpdatePassword(c *gin.Context) {
	user := middleware.CurrentUser(c)

	var input struct {
		CurrentPassword string `json:"currentPassword" binding:"required"`
		NewPassword     string `json:"newPassword" binding:"required,min=6"`
	}
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"message": err.Error()})
		return
	}

	if !user.MatchPassword(input.CurrentPassword) {
		c.JSON(http.StatusUnauthorized, gin.H{"message": "Invalid current password"})
		return
	}

	hashed, err := models.HashPassword(input.NewPassword)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"message": "Failed to hash password"})
		return
	}
	user.Password = hashed

	if err := config.DB.Save(user).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"message": "Server Error"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Password updated successfully"})
}

// ResetPassword is the self-service recovery flow: knowledge of national
// ID plus mobile number stands in for identity proof.
func ResetPassword(c *gin.Context) {
	var input struct {
		NationalID  string `json:"nationalId" binding:"required"`
		Mobile      string `json:"mobile" binding:"required"`
		NewPassword string `json:"newPassword" binding:"required,min=6"`
	}
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"message": err.Error()})
		return
	}

	var user models.User
	err := config.DB.
		Where("national_id = ? AND mobile = ?", input.NationalID, input.Mobile).
		First(&user).Error
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{"message": "No user found with these details. Please check your National ID and Mobile Number."})
		return
	}

	hashed, err := models.HashPassword(input.NewPassword)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"message": "Failed to hash password"})
		return
	}
	user.Password = hashed

	if err := config.DB.Save(&user).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"message": "Server Error"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Password has been reset successfully. You can now login."})
}
