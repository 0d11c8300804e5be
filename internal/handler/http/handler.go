package http

import (
	"github.com/cardify/cardify-server/internal/logger"
	"github.com/cardify/cardify-server/internal/service"
	"github.com/go-playground/validator/v10"
)

type Handler struct {
	services *service.Services
	validate *validator.Validate

	logger *logger.Logger
}

func NewHandler(services *service.Services, logger *logger.Logger) *Handler {
	logger.Info().Msg("http handler created")
	return &Handler{
		services: services,
		validate: validator.New(),
		logger:   logger,
	}
}
