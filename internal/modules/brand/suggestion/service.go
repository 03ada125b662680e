package suggestion

import (
	"context"

	"github.com/brandhub/core/internal/models"
	"github.com/brandhub/core/internal/modules/brand/profile"
	"github.com/brandhub/core/internal/pkg/session"
	"go.uber.org/zap"
)

type Service struct {
	profiles *profile.Service
	log      *zap.Logger
}

func NewService(profiles *profile.Service, log *zap.Logger) *Service {
	if log == nil {
		log = zap.NewNop()
	}
	return &Service{profiles: profiles, log: log}
}

// Diff loads the profile and compares it with s.
func (s *Service) Diff(ctx context.Context, profileID string, sug *Suggestions) ([]Change, error) {
	p, err := s.profiles.Get(ctx, profileID)
	if err != nil {
		return nil, err
	}
	if p == nil {
		return nil, profile.ErrNotFound
	}
	return Diff(p, sug), nil
}

// Accept merges the chosen paths (or all differing ones) and saves the profile.
func (s *Service) Accept(ctx context.Context, sess *session.Session, profileID string, dto *AcceptDTO) (*models.BusinessProfile, []string, error) {
	var applied []string
	p, err := s.profiles.Update(ctx, sess, profileID, func(p *models.BusinessProfile) error {
		if dto.All {
			applied = AcceptAll(p, &dto.Suggestions)
			return nil
		}
		var err error
		applied, err = Accept(p, &dto.Suggestions, dto.Paths)
		return err
	})
	if err != nil {
		return nil, nil, err
	}
	s.log.Info("suggestions accepted", zap.String("profile_id", profileID), zap.Strings("paths", applied))
	return p, applied, nil
}
