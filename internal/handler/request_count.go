package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

// RequestCount 获取累计请求数
func (h *Handler) RequestCount(c *gin.Context) {
	count, err := h.Repos.RequestCount.Get()
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "服务器内部错误"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"requests": count})
}

// ResetRequestCount 请求计数清零
func (h *Handler) ResetRequestCount(c *gin.Context) {
	if err := h.Repos.RequestCount.Reset(); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "服务器内部错误"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "request count reset successfully"})
}
