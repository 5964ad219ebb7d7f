package repository

import (
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/user/moviebox/internal/model"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type CollectionRepository struct {
	db     *gorm.DB
	movies *MovieRepository
}

func NewCollectionRepository(db *gorm.DB) *CollectionRepository {
	return &CollectionRepository{db: db, movies: NewMovieRepository(db)}
}

// ListByUser 获取用户的全部收藏集（含关联电影，用于类型统计）
func (r *CollectionRepository) ListByUser(userID int) ([]*model.Collection, error) {
	var collections []*model.Collection
	err := r.db.Preload("Movies").
		Where("user_id = ?", userID).
		Order("id ASC").
		Find(&collections).Error
	return collections, err
}

// FindByUUIDAndUser 按 uuid 查找属于指定用户的收藏集
// 不存在或属主不符都返回 nil，调用方统一按 404 处理
func (r *CollectionRepository) FindByUUIDAndUser(collectionUUID string, userID int) (*model.Collection, error) {
	var collection model.Collection
	err := r.db.Preload("Movies").
		Where("uuid = ? AND user_id = ?", collectionUUID, userID).
		First(&collection).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}

	return &collection, nil
}

// Create 在单个事务内创建收藏集并关联电影
// 每个电影按 uuid 取或建，重复关联幂等；任何一步失败整体回滚
func (r *CollectionRepository) Create(userID int, title, description string, movies []model.Movie) (*model.Collection, error) {
	collection := &model.Collection{
		// uuid 由服务端生成，不接受客户端传入
		UUID:        uuid.NewString(),
		UserID:      userID,
		Title:       title,
		Description: description,
		CreatedAt:   time.Now(),
		UpdatedAt:   time.Now(),
	}

	err := r.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(collection).Error; err != nil {
			return err
		}
		return r.linkMovies(tx, collection, movies)
	})
	if err != nil {
		return nil, err
	}

	return collection, nil
}

// Update 在单个事务内部分更新收藏集
// movies 为 nil 时不触碰关联关系；非 nil（包括空列表）时整体替换关联集合
func (r *CollectionRepository) Update(collection *model.Collection, title, description *string, movies *[]model.Movie) error {
	return r.db.Transaction(func(tx *gorm.DB) error {
		updates := map[string]interface{}{"updated_at": time.Now()}
		if title != nil {
			updates["title"] = *title
			collection.Title = *title
		}
		if description != nil {
			updates["description"] = *description
			collection.Description = *description
		}
		if err := tx.Model(collection).Updates(updates).Error; err != nil {
			return err
		}

		if movies == nil {
			return nil
		}

		// 先清空既有关联，再逐个取或建后重新关联
		if err := tx.Model(collection).Association("Movies").Clear(); err != nil {
			return err
		}
		return r.linkMovies(tx, collection, *movies)
	})
}

// Delete 删除收藏集，仅级联关联关系，电影记录保持不动
func (r *CollectionRepository) Delete(collection *model.Collection) error {
	return r.db.Select(clause.Associations).Delete(collection).Error
}

// CountByUser 统计用户收藏集数量
func (r *CollectionRepository) CountByUser(userID int) (int64, error) {
	var count int64
	err := r.db.Model(&model.Collection{}).Where("user_id = ?", userID).Count(&count).Error
	return count, err
}

// linkMovies 取或建每个电影并挂到收藏集上，请求内重复 uuid 只处理一次
func (r *CollectionRepository) linkMovies(tx *gorm.DB, collection *model.Collection, movies []model.Movie) error {
	seen := make(map[string]bool, len(movies))
	for i := range movies {
		if seen[movies[i].UUID] {
			continue
		}
		seen[movies[i].UUID] = true

		movie, err := r.movies.GetOrCreate(tx, &movies[i])
		if err != nil {
			return err
		}
		if err := tx.Model(collection).Association("Movies").Append(movie); err != nil {
			return err
		}
	}
	return nil
}
