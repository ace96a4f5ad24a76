package handlers

import (
	"net/http"
	"time"

	"election-service/internal/ports/models"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"
	"golang.org/x/crypto/bcrypt"
)

// AuthHandler issues admin tokens. The admin credential comes from
// deployment configuration; the engine has no user store, all voters
// are identified by externally authenticated addresses.
type AuthHandler struct {
	adminEmail        string
	adminPasswordHash string
	jwtSecret         string
	jwtExpire         time.Duration
}

func NewAuthHandler(adminEmail, adminPasswordHash, jwtSecret string, jwtExpire time.Duration) *AuthHandler {
	return &AuthHandler{
		adminEmail:        adminEmail,
		adminPasswordHash: adminPasswordHash,
		jwtSecret:         jwtSecret,
		jwtExpire:         jwtExpire,
	}
}

// @Summary Admin login
// @Description Authenticate the election administrator and issue a JWT
// @Tags auth
// @Accept json
// @Produce json
// @Param request body models.LoginRequest true "Credentials"
// @Success 200 {object} models.LoginResponse
// @Failure 400 {object} map[string]string
// @Failure 401 {object} map[string]string
// @Router /auth/login [post]
func (h *AuthHandler) Login(c *gin.Context) {
	var req models.LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	if req.Email != h.adminEmail || h.adminPasswordHash == "" {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "invalid credentials"})
		return
	}
	if err := bcrypt.CompareHashAndPassword([]byte(h.adminPasswordHash), []byte(req.Password)); err != nil {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "invalid credentials"})
		return
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{
		"sub": h.adminEmail,
		"exp": time.Now().Add(h.jwtExpire).Unix(),
	})
	tokenString, err := token.SignedString([]byte(h.jwtSecret))
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, models.LoginResponse{Token: tokenString})
}
