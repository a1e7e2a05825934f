package api

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"mandalart/internal/service"
	"mandalart/internal/util"
)

type AuthHandler struct {
	authService *service.AuthService
	locale      string
}

func NewAuthHandler(authService *service.AuthService, locale string) *AuthHandler {
	return &AuthHandler{authService: authService, locale: locale}
}

// Login handles POST /login. Unknown emails auto-register.
func (h *AuthHandler) Login(c *gin.Context) {
	var req struct {
		Email    string `json:"email"`
		Password string `json:"password"`
	}

	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request"})
		return
	}

	user, token, err := h.authService.Login(c.Request.Context(), req.Email, req.Password)
	if err != nil {
		writeError(c, h.locale, err)
		return
	}

	c.SetCookie(util.TokenCookie, token, int(util.TokenTTL.Seconds()), "/", "", false, true)
	c.JSON(http.StatusOK, gin.H{"user": user})
}

// Logout handles POST /logout.
func (h *AuthHandler) Logout(c *gin.Context) {
	c.SetCookie(util.TokenCookie, "", -1, "/", "", false, true)
	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}

// Me handles GET /me.
func (h *AuthHandler) Me(c *gin.Context) {
	token := util.ExtractToken(c.Request)
	user, err := h.authService.CurrentUser(c.Request.Context(), token)
	if err != nil {
		writeError(c, h.locale, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"user": user})
}
