package service

import (
	"context"

	"github.com/MKhiriev/go-auth-service/internal/config"
	"github.com/MKhiriev/go-auth-service/internal/logger"
	"github.com/MKhiriev/go-auth-service/internal/store"
	"github.com/MKhiriev/go-auth-service/models"
)

type appInfoService struct {
	appName    string
	appVersion string

	userRepository    store.UserRepository
	sessionRepository store.SessionRepository
	pinger            StoragePinger

	logger *logger.Logger
}

// NewAppInfoService constructs an AppInfoService exposing the operational
// endpoints: health, info, service-wide stats, and session cleanup.
func NewAppInfoService(userRepository store.UserRepository, sessionRepository store.SessionRepository, pinger StoragePinger, cfg config.App, logger *logger.Logger) (AppInfoService, error) {
	if cfg.Version == "" {
		return nil, ErrVersionIsNotSpecified
	}

	return &appInfoService{
		appName:           cfg.Name,
		appVersion:        cfg.Version,
		userRepository:    userRepository,
		sessionRepository: sessionRepository,
		pinger:            pinger,
		logger:            logger,
	}, nil
}

// Health reports service liveness. Database connectivity is probed with a
// ping; the service itself is always reported, so a broken database shows
// up as status "degraded" rather than a dropped connection.
func (s *appInfoService) Health(ctx context.Context) models.HealthResponse {
	log := logger.FromContext(ctx)

	health := models.HealthResponse{
		Success:  true,
		Status:   "healthy",
		Database: "connected",
	}

	if err := s.pinger.Ping(ctx); err != nil {
		log.Err(err).Msg("database ping failed")
		health.Success = false
		health.Status = "degraded"
		health.Database = "error"
	}

	return health
}

// AppInfo returns the service identity.
func (s *appInfoService) AppInfo(ctx context.Context) models.InfoResponse {
	return models.InfoResponse{
		Success: true,
		Name:    s.appName,
		Version: s.appVersion,
	}
}

// ServiceStats aggregates user counts and the active-session count across
// the whole service.
func (s *appInfoService) ServiceStats(ctx context.Context) (models.ServiceStats, error) {
	log := logger.FromContext(ctx)

	stats, err := s.userRepository.CountUsers(ctx)
	if err != nil {
		log.Err(err).Msg("user count failed")
		return models.ServiceStats{}, err
	}

	activeSessions, err := s.sessionRepository.CountActiveSessions(ctx)
	if err != nil {
		log.Err(err).Msg("session count failed")
		return models.ServiceStats{}, err
	}
	stats.Sessions.Active = activeSessions

	return stats, nil
}

// CleanupSessions removes expired session rows — for one user when userID
// is non-nil, system-wide otherwise — and returns the number removed.
func (s *appInfoService) CleanupSessions(ctx context.Context, userID *int64) (int64, error) {
	log := logger.FromContext(ctx)

	removed, err := s.sessionRepository.CleanupExpiredSessions(ctx, userID)
	if err != nil {
		log.Err(err).Msg("session cleanup failed")
		return 0, err
	}

	return removed, nil
}
