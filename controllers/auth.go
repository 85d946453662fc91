// controllers/auth.go
package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"barbershop-backend/config"
	"barbershop-backend/utils"
)

type LoginInput struct {
	Role     string `json:"role" binding:"required,oneof=admin barber"`
	Password string `json:"password" binding:"required"`
}

// AuthController issues tokens for the shared admin and barber sessions.
type AuthController struct {
	Auth config.AuthConfig
	JWT  config.JWTConfig
}

func (ac *AuthController) Login(c *gin.Context) {
	var input LoginInput
	if err := c.ShouldBindJSON(&input); err != nil {
		utils.RespondWithError(c, http.StatusBadRequest, "Invalid input")
		return
	}

	hash := ac.Auth.AdminPasswordHash
	if input.Role == utils.RoleBarber {
		hash = ac.Auth.BarberPasswordHash
	}
	if hash == "" || !utils.CheckPasswordHash(input.Password, hash) {
		utils.RespondWithError(c, http.StatusUnauthorized, "Invalid credentials")
		return
	}

	token, err := utils.GenerateToken(input.Role, ac.JWT.Secret, ac.JWT.ExpirationHours)
	if err != nil {
		utils.RespondWithError(c, http.StatusInternalServerError, "Failed to generate token")
		return
	}

	expiryHours := ac.JWT.ExpirationHours
	if expiryHours <= 0 {
		expiryHours = 24
	}
	c.SetCookie("token", token, expiryHours*3600, "/", "", true, true)

	c.JSON(http.StatusOK, gin.H{
		"token": token,
		"role":  input.Role,
	})
}

func (ac *AuthController) Me(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"role": c.GetString("role")})
}
