package setup

import (
	"github.com/strand-dev/strand/internal/config"
	"github.com/strand-dev/strand/internal/handler"
	"github.com/strand-dev/strand/internal/middleware"
	"github.com/strand-dev/strand/internal/service"
	"github.com/strand-dev/strand/internal/storage/mongodb"
	"github.com/strand-dev/strand/internal/utils"
)

// Dependencies struct to hold all initialized dependencies.
type Dependencies struct {
	Storage *mongodb.Storage
	Handler *handler.Handler
	Auth    *middleware.Auth
	Config  *config.Config
}

// SetupDependencies initializes all dependencies required for the application.
func SetupDependencies(cfg *config.Config) (*Dependencies, error) {
	storage, err := mongodb.New(cfg.Public)
	if err != nil {
		return nil, err
	}

	thread := service.NewThread(storage, &utils.ThreadTextValidator{MaxLen: cfg.Public.MaxThreadLen})
	feed := service.NewFeed(storage, cfg.Public.PostsPerPage, cfg.Public.MaxPageSize)
	engagement := service.NewEngagement(storage)
	user := service.NewUser(storage, &utils.UsernameValidator{})
	community := service.NewCommunity(storage)

	h, err := handler.New(thread, feed, engagement, user, community, storage, cfg)
	if err != nil {
		storage.Cleanup()
		return nil, err
	}

	return &Dependencies{
		Storage: storage,
		Handler: h,
		Auth:    middleware.NewAuth(cfg.JwtKey()),
		Config:  cfg,
	}, nil
}
