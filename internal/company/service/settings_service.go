package service

import (
	"context"

	"go.uber.org/zap"

	"coilworks/internal/config"
	"coilworks/internal/domain"
	"coilworks/internal/dto"
	apperrors "coilworks/internal/errors"
)

type Repository interface {
	Find(ctx context.Context) (*domain.CompanyProfile, error)
	Save(ctx context.Context, profile domain.CompanyProfile) error
}

// SettingsService serves the storefront's public settings: the stored company
// profile, with configured values filling any empty field.
type SettingsService struct {
	repo     Repository
	defaults config.StorefrontConfig
	logger   *zap.Logger
}

func NewService(repo Repository, defaults config.StorefrontConfig, logger *zap.Logger) *SettingsService {
	return &SettingsService{repo: repo, defaults: defaults, logger: logger}
}

// Settings never fails: when the profile cannot be read the configured
// defaults are served.
func (s *SettingsService) Settings(ctx context.Context) dto.SettingsResponse {
	profile := domain.CompanyProfile{}
	stored, err := s.repo.Find(ctx)
	if err == nil {
		profile = *stored
	} else if _, ok := apperrors.IsNotFoundError(err); !ok {
		s.logger.Warn("loading company profile failed, serving defaults", zap.Error(err))
	}

	social := map[string]string{}
	for name, pair := range map[string][2]string{
		"facebook":  {profile.Facebook, s.defaults.Facebook},
		"instagram": {profile.Instagram, s.defaults.Instagram},
		"linkedin":  {profile.LinkedIn, s.defaults.LinkedIn},
		"youtube":   {profile.YouTube, s.defaults.YouTube},
	} {
		if url := firstNonEmpty(pair[0], pair[1]); url != "" {
			social[name] = url
		}
	}

	return dto.SettingsResponse{
		SupportEmail: firstNonEmpty(profile.SupportEmail, s.defaults.SupportEmail),
		Social:       social,
	}
}

func (s *SettingsService) UpdateProfile(ctx context.Context, req dto.CompanyProfileRequest) (dto.SettingsResponse, error) {
	profile := domain.CompanyProfile{
		SupportEmail: req.SupportEmail,
		Facebook:     req.Facebook,
		Instagram:    req.Instagram,
		LinkedIn:     req.LinkedIn,
		YouTube:      req.YouTube,
	}
	if err := s.repo.Save(ctx, profile); err != nil {
		return dto.SettingsResponse{}, err
	}

	s.logger.Info("company profile updated")
	return s.Settings(ctx), nil
}

func firstNonEmpty(values ...string) string {
	for _, v := range values {
		if v != "" {
			return v
		}
	}
	return ""
}
