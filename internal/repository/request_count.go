package repository

import (
	"github.com/user/moviebox/internal/model"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// 计数器固定使用主键 1 的单例行
const requestCountID = 1

type RequestCountRepository struct {
	db *gorm.DB
}

func NewRequestCountRepository(db *gorm.DB) *RequestCountRepository {
	return &RequestCountRepository{db: db}
}

// Get 读取当前计数，单例行不存在时先创建
func (r *RequestCountRepository) Get() (int64, error) {
	rc, err := r.getOrCreate()
	if err != nil {
		return 0, err
	}
	return rc.Count, nil
}

// Increment 计数加一
// 用单条 UPDATE 完成自增，避免读-改-写在并发下丢更新
func (r *RequestCountRepository) Increment() error {
	if _, err := r.getOrCreate(); err != nil {
		return err
	}
	return r.db.Model(&model.RequestCount{}).
		Where("id = ?", requestCountID).
		UpdateColumn("count", gorm.Expr("count + ?", 1)).Error
}

// Reset 计数清零
func (r *RequestCountRepository) Reset() error {
	if _, err := r.getOrCreate(); err != nil {
		return err
	}
	return r.db.Model(&model.RequestCount{}).
		Where("id = ?", requestCountID).
		UpdateColumn("count", 0).Error
}

func (r *RequestCountRepository) getOrCreate() (*model.RequestCount, error) {
	rc := &model.RequestCount{ID: requestCountID}
	err := r.db.Clauses(clause.OnConflict{DoNothing: true}).
		Where("id = ?", requestCountID).
		FirstOrCreate(rc).Error
	if err != nil {
		return nil, err
	}
	return rc, nil
}
