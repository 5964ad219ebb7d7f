package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"
	"github.com/user/moviebox/internal/middleware"
	"github.com/user/moviebox/internal/model"
	"github.com/user/moviebox/internal/service"
	"github.com/user/moviebox/internal/utils"
)

// 电影描述符的独立校验器，错误需要按电影逐条收集
var movieValidate = validator.New()

type movieInput struct {
	UUID        string `json:"uuid" validate:"required,uuid"`
	Title       string `json:"title" validate:"required,max=255"`
	Description string `json:"description" validate:"required"`
	Genres      string `json:"genres" validate:"omitempty,max=255"`
}

type createCollectionInput struct {
	Title       string        `json:"title" binding:"required,max=255"`
	Description string        `json:"description" binding:"required"`
	Movies      *[]movieInput `json:"movies" binding:"required"`
}

type updateCollectionInput struct {
	Title       *string       `json:"title" binding:"omitempty,max=255"`
	Description *string       `json:"description"`
	Movies      *[]movieInput `json:"movies"`
}

// CollectionList 列出当前用户的全部收藏集及其最爱类型统计
func (h *Handler) CollectionList(c *gin.Context) {
	userID := middleware.GetUserID(c)

	collections, err := h.Repos.Collection.ListByUser(userID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "服务器内部错误"})
		return
	}

	serialized := make([]gin.H, 0, len(collections))
	for _, collection := range collections {
		serialized = append(serialized, serializeCollection(collection))
	}

	c.JSON(http.StatusOK, gin.H{
		"is_success": true,
		"data": gin.H{
			"collections":      serialized,
			"favourite_genres": service.ComputeFavoriteGenres(collections),
		},
	})
}

// CollectionCreate 创建收藏集
func (h *Handler) CollectionCreate(c *gin.Context) {
	userID := middleware.GetUserID(c)

	var input createCollectionInput
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, utils.ValidationErrors(err))
		return
	}

	if movieErrors := validateMovies(*input.Movies); len(movieErrors) > 0 {
		c.JSON(http.StatusBadRequest, gin.H{"movies": movieErrors})
		return
	}

	collection, err := h.Repos.Collection.Create(
		userID, input.Title, input.Description, toModelMovies(*input.Movies))
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "服务器内部错误"})
		return
	}

	c.JSON(http.StatusCreated, gin.H{"collection_uuid": collection.UUID})
}

// CollectionRetrieve 按 uuid 获取收藏集详情
func (h *Handler) CollectionRetrieve(c *gin.Context) {
	collection, ok := h.findOwnedCollection(c)
	if !ok {
		return
	}

	c.JSON(http.StatusOK, serializeCollection(collection))
}

// CollectionUpdate 按 uuid 更新收藏集
// title/description 支持部分更新；传入 movies 列表时整体替换关联电影
func (h *Handler) CollectionUpdate(c *gin.Context) {
	collection, ok := h.findOwnedCollection(c)
	if !ok {
		return
	}

	var input updateCollectionInput
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, utils.ValidationErrors(err))
		return
	}

	var movies *[]model.Movie
	if input.Movies != nil {
		if movieErrors := validateMovies(*input.Movies); len(movieErrors) > 0 {
			c.JSON(http.StatusBadRequest, gin.H{"movies": movieErrors})
			return
		}
		converted := toModelMovies(*input.Movies)
		movies = &converted
	}

	if err := h.Repos.Collection.Update(collection, input.Title, input.Description, movies); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "服务器内部错误"})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message":         "Collection is updated successfully",
		"collection_uuid": collection.UUID,
	})
}

// CollectionDelete 按 uuid 删除收藏集，电影记录保留
func (h *Handler) CollectionDelete(c *gin.Context) {
	collection, ok := h.findOwnedCollection(c)
	if !ok {
		return
	}

	if err := h.Repos.Collection.Delete(collection); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "服务器内部错误"})
		return
	}

	c.JSON(http.StatusNoContent, gin.H{"message": "Collection is deleted successfully"})
}

// findOwnedCollection 解析路径 uuid 并限定属主
// uuid 非法、记录不存在、属主不符一律按 404 返回，不向非属主泄露存在性
func (h *Handler) findOwnedCollection(c *gin.Context) (*model.Collection, bool) {
	collectionUUID := c.Param("uuid")
	if _, err := uuid.Parse(collectionUUID); err != nil {
		c.JSON(http.StatusNotFound, gin.H{"detail": "Not found."})
		return nil, false
	}

	collection, err := h.Repos.Collection.FindByUUIDAndUser(collectionUUID, middleware.GetUserID(c))
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "服务器内部错误"})
		return nil, false
	}
	if collection == nil {
		c.JSON(http.StatusNotFound, gin.H{"detail": "Not found."})
		return nil, false
	}

	return collection, true
}

// serializeCollection 收藏集的对外表示，movies 只写不回显
func serializeCollection(collection *model.Collection) gin.H {
	return gin.H{
		"title":       collection.Title,
		"description": collection.Description,
		"uuid":        collection.UUID,
	}
}

// validateMovies 逐个校验电影描述符，错误按电影聚合
// 任何一个电影非法则整个请求被拒绝，不允许部分成功
func validateMovies(movies []movieInput) []gin.H {
	var movieErrors []gin.H
	for _, movie := range movies {
		if err := movieValidate.Struct(movie); err != nil {
			movieErrors = append(movieErrors, gin.H{
				"uuid":   movie.UUID,
				"errors": utils.ValidationErrors(err),
			})
		}
	}
	return movieErrors
}

func toModelMovies(movies []movieInput) []model.Movie {
	result := make([]model.Movie, 0, len(movies))
	for _, movie := range movies {
		result = append(result, model.Movie{
			UUID:        movie.UUID,
			Title:       movie.Title,
			Description: movie.Description,
			Genres:      movie.Genres,
		})
	}
	return result
}
