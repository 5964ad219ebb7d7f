package handler

import (
	"github.com/user/moviebox/internal/config"
	"github.com/user/moviebox/internal/repository"
	"github.com/user/moviebox/internal/service"
)

// Handler HTTP 处理器
type Handler struct {
	Repos   *repository.Repositories
	Config  *config.Config
	Catalog *service.CatalogService
}

// NewHandler 创建处理器
func NewHandler(repos *repository.Repositories, cfg *config.Config) *Handler {
	return &Handler{
		Repos:   repos,
		Config:  cfg,
		Catalog: service.NewCatalogService(cfg),
	}
}
