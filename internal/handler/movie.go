package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

// MovieList 代理第三方目录的影片列表，响应体原样透传
func (h *Handler) MovieList(c *gin.Context) {
	body, err := h.Catalog.FetchMovies()
	if err != nil {
		c.JSON(http.StatusBadGateway, gin.H{"error": err.Error()})
		return
	}

	c.Data(http.StatusOK, "application/json", body)
}
