package middleware

import (
	"log"

	"github.com/gin-gonic/gin"
	"github.com/user/moviebox/internal/repository"
)

// CountRequests 请求计数中间件，每个 API 请求计数加一
// 计数失败只记日志，不影响请求本身
func CountRequests(repo *repository.RequestCountRepository) gin.HandlerFunc {
	return func(c *gin.Context) {
		if err := repo.Increment(); err != nil {
			log.Printf("请求计数失败: %v", err)
		}
		c.Next()
	}
}
