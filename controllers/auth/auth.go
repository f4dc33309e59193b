package authControllers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"

	"github.com/TMDT-Web/TMDT-Web-Project-sub000/auth"
	"github.com/TMDT-Web/TMDT-Web-Project-sub000/config"
	"github.com/TMDT-Web/TMDT-Web-Project-sub000/models"
)

type RegisterInput struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required,min=8"`
	Name     string `json:"name" binding:"required"`
	Phone    string `json:"phone"`
}

type LoginInput struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required"`
}

// POST /api/v1/auth/register
func Register(db *gorm.DB, cfg *config.Config) gin.HandlerFunc {
	return func(c *gin.Context) {
		var input RegisterInput
		if err := c.ShouldBindJSON(&input); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid input: " + err.Error()})
			return
		}

		var existing models.User
		if err := db.Where("email = ?", input.Email).First(&existing).Error; err == nil {
			c.JSON(http.StatusConflict, gin.H{"error": "Email is already registered"})
			return
		}

		hash, err := bcrypt.GenerateFromPassword([]byte(input.Password), bcrypt.DefaultCost)
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to hash password"})
			return
		}

		userID := uuid.NewString()
		user := models.User{
			ID:           userID,
			Email:        input.Email,
			PasswordHash: string(hash),
			Name:         input.Name,
			Phone:        input.Phone,
			Provider:     "local",
			Role:         models.RoleUser,
			Cart:         models.Cart{UserID: userID},
			Reward:       models.RewardPoint{UserID: userID},
		}
		if err := db.Create(&user).Error; err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to create user"})
			return
		}

		token, err := auth.IssueToken(cfg.JWTSecret, &user)
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Token generation failed"})
			return
		}
		c.JSON(http.StatusCreated, gin.H{"token": token, "user": user})
	}
}

// POST /api/v1/auth/login
func Login(db *gorm.DB, cfg *config.Config) gin.HandlerFunc {
	return func(c *gin.Context) {
		var input LoginInput
		if err := c.ShouldBindJSON(&input); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid input: " + err.Error()})
			return
		}

		var user models.User
		if err := db.Where("email = ?", input.Email).First(&user).Error; err != nil {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "Invalid email or password"})
			return
		}
		if bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(input.Password)) != nil {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "Invalid email or password"})
			return
		}
		if user.Role == models.RoleStaff && !user.Approved {
			c.JSON(http.StatusForbidden, gin.H{"error": "Pending approval by admin"})
			return
		}

		token, err := auth.IssueToken(cfg.JWTSecret, &user)
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Token generation failed"})
			return
		}
		c.JSON(http.StatusOK, gin.H{"token": token, "user": user})
	}
}

// POST /api/v1/auth/google
func GoogleLogin(db *gorm.DB, cfg *config.Config, verifier *auth.GoogleVerifier) gin.HandlerFunc {
	return func(c *gin.Context) {
		var input struct {
			IDToken string `json:"id_token" binding:"required"`
		}
		if err := c.ShouldBindJSON(&input); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request payload"})
			return
		}

		info, err := verifier.VerifyIDToken(c.Request.Context(), input.IDToken)
		if err != nil {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "Invalid Google ID token"})
			return
		}

		var user models.User
		err = db.Where("email = ?", info.Email).First(&user).Error
		switch {
		case errors.Is(err, gorm.ErrRecordNotFound):
			userID := uuid.NewString()
			role := models.RoleUser
			if info.Email == cfg.SuperAdminEmail {
				role = models.RoleAdmin
			}
			user = models.User{
				ID:       userID,
				Email:    info.Email,
				Name:     info.Name,
				Picture:  info.Picture,
				Provider: "google",
				Role:     role,
				Cart:     models.Cart{UserID: userID},
				Reward:   models.RewardPoint{UserID: userID},
			}
			if err := db.Create(&user).Error; err != nil {
				c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to create user"})
				return
			}
		case err == nil:
			// Refresh the profile on every login.
			db.Model(&user).Updates(models.User{Name: info.Name, Picture: info.Picture})
		default:
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Database error"})
			return
		}

		token, err := auth.IssueToken(cfg.JWTSecret, &user)
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Token generation failed"})
			return
		}
		c.JSON(http.StatusOK, gin.H{"token": token, "user": user})
	}
}
