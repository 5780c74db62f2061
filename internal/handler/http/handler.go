package http

import (
	"github.com/elgohr-update/syncing-server/internal/config"
	"github.com/elgohr-update/syncing-server/internal/logger"
	"github.com/elgohr-update/syncing-server/internal/service"
)

type Handler struct {
	services *service.Services
	cfg      config.App

	logger *logger.Logger
}

func NewHandler(services *service.Services, cfg config.App, logger *logger.Logger) *Handler {
	logger.Info().Msg("http handler created")
	return &Handler{
		services: services,
		cfg:      cfg,
		logger:   logger,
	}
}
