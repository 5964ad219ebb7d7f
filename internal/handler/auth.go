package handler

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/user/moviebox/internal/middleware"
	"github.com/user/moviebox/internal/utils"
	"gorm.io/gorm"
)

type registerInput struct {
	Username string `json:"username" binding:"required,max=150"`
	Password string `json:"password" binding:"required"`
	Email    string `json:"email" binding:"omitempty,email"`
}

type loginInput struct {
	Username string `json:"username" binding:"required"`
	Password string `json:"password" binding:"required"`
}

// Register 用户注册，成功后直接签发访问令牌
func (h *Handler) Register(c *gin.Context) {
	var input registerInput
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, utils.ValidationErrors(err))
		return
	}

	user, err := h.Repos.User.Create(input.Username, input.Password, input.Email)
	if err != nil {
		// 用户名唯一约束冲突按字段错误返回
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			c.JSON(http.StatusBadRequest, utils.FieldErrors{
				"username": {"A user with that username already exists."},
			})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "服务器内部错误"})
		return
	}

	token, err := middleware.GenerateToken(user.ID, user.Username, h.Config.AppSecret, h.Config.JWTExpiry)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "服务器内部错误"})
		return
	}

	c.JSON(http.StatusCreated, gin.H{"access_token": token})
}

// Login 用户名密码换取访问令牌
func (h *Handler) Login(c *gin.Context) {
	var input loginInput
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, utils.ValidationErrors(err))
		return
	}

	user, err := h.Repos.User.FindByUsername(input.Username)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "服务器内部错误"})
		return
	}
	if user == nil || !h.Repos.User.CheckPassword(user, input.Password) {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Invalid username or password"})
		return
	}

	token, err := middleware.GenerateToken(user.ID, user.Username, h.Config.AppSecret, h.Config.JWTExpiry)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "服务器内部错误"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"access_token": token})
}
