package repository

import (
	"fmt"

	"github.com/user/moviebox/internal/model"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
)

// InitDB 初始化数据库连接
func InitDB(databaseURL string) (*gorm.DB, error) {
	db, err := gorm.Open(postgres.Open(databaseURL), &gorm.Config{
		// 把驱动层的唯一约束冲突翻译成 gorm.ErrDuplicatedKey
		TranslateError: true,
	})
	if err != nil {
		return nil, fmt.Errorf("无法连接数据库: %w", err)
	}

	sqlDB, err := db.DB()
	if err != nil {
		return nil, fmt.Errorf("获取底层连接池失败: %w", err)
	}

	// 设置连接池
	sqlDB.SetMaxOpenConns(25)
	sqlDB.SetMaxIdleConns(5)

	return db, nil
}

// AutoMigrate 执行自动建表/迁移
func AutoMigrate(db *gorm.DB) error {
	return db.AutoMigrate(
		&model.User{},
		&model.Movie{},
		&model.Collection{},
		&model.RequestCount{},
	)
}

// Repositories 仓库集合
type Repositories struct {
	DB           *gorm.DB
	User         *UserRepository
	Movie        *MovieRepository
	Collection   *CollectionRepository
	RequestCount *RequestCountRepository
}

// NewRepositories 创建仓库集合
func NewRepositories(db *gorm.DB) *Repositories {
	return &Repositories{
		DB:           db,
		User:         NewUserRepository(db),
		Movie:        NewMovieRepository(db),
		Collection:   NewCollectionRepository(db),
		RequestCount: NewRequestCountRepository(db),
	}
}
