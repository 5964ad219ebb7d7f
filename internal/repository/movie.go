package repository

import (
	"errors"

	"github.com/user/moviebox/internal/model"
	"gorm.io/gorm"
)

type MovieRepository struct {
	db *gorm.DB
}

func NewMovieRepository(db *gorm.DB) *MovieRepository {
	return &MovieRepository{db: db}
}

// GetOrCreate 按 uuid 查找电影，不存在则用传入字段创建
// 已存在的记录不会被覆盖（defaults 仅在首次创建时生效）
// tx 为 nil 时使用默认连接，否则在调用方事务内执行
func (r *MovieRepository) GetOrCreate(tx *gorm.DB, in *model.Movie) (*model.Movie, error) {
	if tx == nil {
		tx = r.db
	}

	var movie model.Movie
	err := tx.Where("uuid = ?", in.UUID).First(&movie).Error
	if err == nil {
		return &movie, nil
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, err
	}

	movie = model.Movie{
		UUID:        in.UUID,
		Title:       in.Title,
		Description: in.Description,
		Genres:      in.Genres,
	}
	if err := tx.Create(&movie).Error; err != nil {
		// 并发创建同一 uuid 时会撞唯一约束，回读既有记录
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			if err2 := tx.Where("uuid = ?", in.UUID).First(&movie).Error; err2 == nil {
				return &movie, nil
			}
		}
		return nil, err
	}

	return &movie, nil
}

// FindByUUID 根据 uuid 查找电影
func (r *MovieRepository) FindByUUID(uuid string) (*model.Movie, error) {
	var movie model.Movie
	err := r.db.Where("uuid = ?", uuid).First(&movie).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}

	return &movie, nil
}

// Count 获取电影总数
func (r *MovieRepository) Count() (int64, error) {
	var count int64
	err := r.db.Model(&model.Movie{}).Count(&count).Error
	return count, err
}
