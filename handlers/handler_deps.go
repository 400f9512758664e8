package handlers

import (
	"github.com/go-playground/validator/v10"
	"github.com/sirupsen/logrus"

	"portfolio/api-server/config"
	"portfolio/api-server/internal/auth"
	"portfolio/api-server/manager"
	"portfolio/api-server/mediastore"
)

// ApplicationHandler holds shared dependencies for handlers.
type ApplicationHandler struct {
	Manager  *manager.Manager
	Media    mediastore.MediaStore
	Auth     *auth.TokenAuth
	Logger   *logrus.Logger
	Validate *validator.Validate
	Cfg      *config.Config
}

// NewApplicationHandler creates an ApplicationHandler with the given
// dependencies.
func NewApplicationHandler(mgr *manager.Manager, media mediastore.MediaStore, tokenAuth *auth.TokenAuth, logger *logrus.Logger, cfg *config.Config) *ApplicationHandler {
	return &ApplicationHandler{
		Manager:  mgr,
		Media:    media,
		Auth:     tokenAuth,
		Logger:   logger,
		Validate: validator.New(),
		Cfg:      cfg,
	}
}
