package service

import (
	"github.com/MKhiriev/go-auth-service/internal/config"
	"github.com/MKhiriev/go-auth-service/internal/logger"
	"github.com/MKhiriev/go-auth-service/internal/store"
)

type Services struct {
	AuthService    AuthService
	UserService    UserService
	AppInfoService AppInfoService
}

func NewServices(storages *store.Storages, cfg *config.StructuredConfig, logger *logger.Logger) (*Services, error) {
	appInfoService, err := NewAppInfoService(storages.UserRepository, storages.SessionRepository, storages, cfg.App, logger)
	if err != nil {
		return nil, err
	}

	return &Services{
		AuthService:    NewAuthService(storages.UserRepository, storages.SessionRepository, cfg.Auth, logger),
		UserService:    NewUserService(storages.UserRepository, storages.SessionRepository, storages.PreferencesRepository, logger),
		AppInfoService: appInfoService,
	}, nil
}
