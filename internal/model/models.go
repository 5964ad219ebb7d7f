package model

import (
	"time"
)

// User 用户模型
type User struct {
	ID           int       `json:"id" db:"id"`
	Username     string    `json:"username" db:"username" gorm:"size:150;uniqueIndex;not null"`
	Email        string    `json:"email" db:"email"`
	PasswordHash string    `json:"-" db:"password_hash"`
	CreatedAt    time.Time `json:"created_at" db:"created_at"`
}

// Movie 电影模型（第三方目录同步的影片信息）
type Movie struct {
	ID          int    `json:"-" db:"id"`
	UUID        string `json:"uuid" db:"uuid" gorm:"type:uuid;uniqueIndex;not null"`
	Title       string `json:"title" db:"title" gorm:"size:255;not null"`
	Description string `json:"description" db:"description" gorm:"type:text"`
	// Genres 逗号分隔的类型串，如 "comedy,drama"，可为空
	Genres      string `json:"genres" db:"genres" gorm:"size:255"`
}

// Collection 收藏集模型，属于唯一的用户，与电影是多对多关系
type Collection struct {
	ID          int       `json:"-" db:"id"`
	UUID        string    `json:"uuid" db:"uuid" gorm:"type:uuid;uniqueIndex;not null"`
	UserID      int       `json:"-" db:"user_id" gorm:"index;not null"`
	Title       string    `json:"title" db:"title" gorm:"size:255;not null"`
	Description string    `json:"description" db:"description" gorm:"type:text"`
	Movies      []Movie   `json:"-" db:"movies" gorm:"many2many:collection_movies;constraint:OnDelete:CASCADE"`
	CreatedAt   time.Time `json:"created_at" db:"created_at"`
	UpdatedAt   time.Time `json:"updated_at" db:"updated_at"`
}

// RequestCount 请求计数单例（固定主键 1）
type RequestCount struct {
	ID    int   `json:"id" db:"id" gorm:"primaryKey"`
	Count int64 `json:"count" db:"count" gorm:"not null;default:0"`
}
