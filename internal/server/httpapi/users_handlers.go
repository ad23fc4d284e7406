package httpapi

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/dpatil-neu/skycatalog/internal/common"
)

type createUserRequest struct {
	FullName string `json:"full_name" binding:"required"`
	Username string `json:"username" binding:"required"`
	Password string `json:"password" binding:"required"`
}

type loginRequest struct {
	Username string `json:"username" binding:"required"`
	Password string `json:"password" binding:"required"`
}

type updatePasswordRequest struct {
	Password string `json:"password" binding:"required"`
}

func (s *Server) createUser(c *gin.Context) {
	var req createUserRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		detail(c, http.StatusBadRequest, "full_name, username and password are required")
		return
	}

	user, err := s.users.Register(c.Request.Context(), req.FullName, req.Username, req.Password)
	if err != nil {
		if errors.Is(err, common.ErrorAlreadyExists) {
			detail(c, http.StatusBadRequest, "Username already registered")
			return
		}
		detail(c, http.StatusInternalServerError, "Internal error")
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"username":  user.Username,
		"full_name": user.FullName,
		"plan":      user.Plan,
	})
}

func (s *Server) login(c *gin.Context) {
	var req loginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		detail(c, http.StatusBadRequest, "username and password are required")
		return
	}

	token, err := s.users.Login(c.Request.Context(), req.Username, req.Password)
	if err != nil {
		if errors.Is(err, common.ErrorUnauthorized) {
			detail(c, http.StatusUnauthorized, "Invalid credentials")
			return
		}
		detail(c, http.StatusInternalServerError, "Internal error")
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"access_token": token,
		"token_type":   "bearer",
	})
}

func (s *Server) updatePassword(c *gin.Context) {
	var req updatePasswordRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		detail(c, http.StatusBadRequest, "password is required")
		return
	}

	username := c.GetString(usernameKey)
	if err := s.users.UpdatePassword(c.Request.Context(), username, req.Password); err != nil {
		if errors.Is(err, common.ErrorNotFound) {
			detail(c, http.StatusNotFound, "User not found")
			return
		}
		detail(c, http.StatusInternalServerError, "Internal error")
		return
	}

	c.JSON(http.StatusOK, gin.H{"detail": "Password updated"})
}

func (s *Server) userDetails(c *gin.Context) {
	username := c.GetString(usernameKey)

	user, err := s.users.Details(c.Request.Context(), username)
	if err != nil {
		if errors.Is(err, common.ErrorNotFound) {
			detail(c, http.StatusNotFound, "User not found")
			return
		}
		detail(c, http.StatusInternalServerError, "Internal error")
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"username":   user.Username,
		"full_name":  user.FullName,
		"plan":       user.Plan,
		"created_at": user.CreatedAt,
	})
}

func (s *Server) upgradePlan(c *gin.Context) {
	username := c.GetString(usernameKey)

	plan, err := s.users.UpgradePlan(c.Request.Context(), username)
	if err != nil {
		if errors.Is(err, common.ErrorNotFound) {
			detail(c, http.StatusNotFound, "User not found")
			return
		}
		detail(c, http.StatusInternalServerError, "Internal error")
		return
	}

	c.JSON(http.StatusOK, gin.H{"plan": plan})
}
