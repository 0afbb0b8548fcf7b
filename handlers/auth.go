package handlers

import (
	"net/http"

	"flynext/models"
	"flynext/services/user"
	"flynext/utils"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

type AuthHandler struct {
	Users user.UserService
}

func setAuthCookie(c *gin.Context, name, value string, maxAge int) {
	c.SetSameSite(http.SameSiteStrictMode)
	c.SetCookie(name, value, maxAge, "/", "", true, true)
}

func clearAuthCookies(c *gin.Context) {
	setAuthCookie(c, utils.AccessTokenCookie, "", -1)
	setAuthCookie(c, utils.RefreshTokenCookie, "", -1)
}

// RegisterHandler handles POST /api/auth/register.
func (h *AuthHandler) RegisterHandler(c *gin.Context) {
	var req models.RegisterRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.JSONError(c, http.StatusBadRequest, "Invalid request body", err.Error())
		return
	}
	u, err := h.Users.Register(c.Request.Context(), req)
	if err != nil {
		fail(c, err)
		return
	}
	getLogger(c).Info("user registered", zap.String("userId", u.ID), zap.String("role", u.Role))
	c.JSON(http.StatusCreated, gin.H{"user": u})
}

// LoginHandler handles POST /api/auth/login. Visitors just drop their cookies.
func (h *AuthHandler) LoginHandler(c *gin.Context) {
	var req models.LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.JSONError(c, http.StatusBadRequest, "Invalid request body", err.Error())
		return
	}
	if req.IsVisitor {
		clearAuthCookies(c)
		c.JSON(http.StatusOK, gin.H{"message": "Continuing as visitor"})
		return
	}

	res, err := h.Users.Login(c.Request.Context(), req.Email, req.Password)
	if err != nil {
		fail(c, err)
		return
	}
	setAuthCookie(c, utils.AccessTokenCookie, res.AccessToken, int(utils.AccessTokenTTL().Seconds()))
	setAuthCookie(c, utils.RefreshTokenCookie, res.RefreshToken, int(utils.RefreshTokenTTL().Seconds()))
	c.JSON(http.StatusOK, res)
}

// LogoutHandler handles POST /api/auth/logout.
func (h *AuthHandler) LogoutHandler(c *gin.Context) {
	clearAuthCookies(c)
	c.JSON(http.StatusOK, gin.H{"message": "Logged out"})
}

// RefreshHandler handles POST /api/auth/refresh and reissues the access cookie.
func (h *AuthHandler) RefreshHandler(c *gin.Context) {
	refresh, _ := c.Cookie(utils.RefreshTokenCookie)
	res, err := h.Users.Refresh(c.Request.Context(), refresh)
	if err != nil {
		fail(c, err)
		return
	}
	setAuthCookie(c, utils.AccessTokenCookie, res.AccessToken, int(utils.AccessTokenTTL().Seconds()))
	c.JSON(http.StatusOK, res)
}

// GetProfileHandler handles GET /api/user/profile.
func (h *AuthHandler) GetProfileHandler(c *gin.Context) {
	p, err := h.Users.GetProfile(c.Request.Context(), currentUserID(c))
	if err != nil {
		fail(c, err)
		return
	}
	c.JSON(http.StatusOK, p)
}

// UpdateProfileHandler handles PATCH /api/user/profile.
func (h *AuthHandler) UpdateProfileHandler(c *gin.Context) {
	var req models.ProfileUpdate
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.JSONError(c, http.StatusBadRequest, "Invalid request body", err.Error())
		return
	}
	p, err := h.Users.UpdateProfile(c.Request.Context(), currentUserID(c), req)
	if err != nil {
		fail(c, err)
		return
	}
	c.JSON(http.StatusOK, p)
}

// UpdateFCMTokenHandler handles PUT /api/user/profile/fcm-token.
func (h *AuthHandler) UpdateFCMTokenHandler(c *gin.Context) {
	var req struct {
		Token string `json:"token" binding:"required"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.JSONError(c, http.StatusBadRequest, "token is required", err.Error())
		return
	}
	if err := h.Users.UpdateFCMToken(c.Request.Context(), currentUserID(c), req.Token); err != nil {
		fail(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Device token updated"})
}
