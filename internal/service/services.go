package service

import (
	"github.com/cardify/cardify-server/internal/config"
	"github.com/cardify/cardify-server/internal/logger"
	"github.com/cardify/cardify-server/internal/store"
)

type Services struct {
	AuthService    AuthService
	UserService    UserService
	DeckService    DeckService
	CardService    CardService
	SocialService  SocialService
	AppInfoService AppInfoService
}

func NewServices(repos *store.Repositories, cfg config.StructuredConfig, logger *logger.Logger) (*Services, error) {
	appInfo, err := NewAppInfoService(cfg.App, logger)
	if err != nil {
		return nil, err
	}

	return &Services{
		AuthService:    NewAuthService(repos.UserRepository, cfg.App, logger),
		UserService:    NewUserService(repos, logger),
		DeckService:    NewDeckService(repos, logger),
		CardService:    NewCardService(repos, logger),
		SocialService:  NewSocialService(repos, logger),
		AppInfoService: appInfo,
	}, nil
}
