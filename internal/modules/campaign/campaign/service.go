package campaign

import (
	"context"
	"strings"
	"time"

	"github.com/brandhub/core/internal/models"
	"go.uber.org/zap"
	"gorm.io/datatypes"
)

// ProfileLookup confirms a profile exists; *profile.Service satisfies it.
type ProfileLookup interface {
	Get(ctx context.Context, id string) (*models.BusinessProfile, error)
}

type Service struct {
	repo     Repository
	profiles ProfileLookup
	log      *zap.Logger
	now      func() time.Time
}

func NewService(repo Repository, profiles ProfileLookup, log *zap.Logger) *Service {
	if log == nil {
		log = zap.NewNop()
	}
	return &Service{repo: repo, profiles: profiles, log: log, now: time.Now}
}

// Create persists a finished campaign.
func (s *Service) Create(ctx context.Context, c *models.Campaign) error {
	c.EnsureID()
	c.Touch(s.now())
	if err := s.repo.Create(ctx, c); err != nil {
		s.log.Error("campaign save failed",
			zap.String("id", c.ID),
			zap.String("profile_id", c.ProfileID),
			zap.Error(err),
		)
		return err
	}
	s.log.Info("campaign saved",
		zap.String("id", c.ID),
		zap.String("profile_id", c.ProfileID),
		zap.String("shape", c.Shape()),
		zap.Int("posts", len(c.GeneratedCopy)),
	)
	return nil
}

// ImportLegacy stores a campaign in the single-shot {strategy, scripts, visuals}
// shape for profileID.
func (s *Service) ImportLegacy(ctx context.Context, profileID string, dto *ImportLegacyDTO) (*models.Campaign, error) {
	if strings.TrimSpace(dto.Goal) == "" {
		return nil, ErrGoalRequired
	}
	if err := s.requireProfile(ctx, profileID); err != nil {
		return nil, err
	}
	c := &models.Campaign{
		ProfileID:     profileID,
		Goal:          strings.TrimSpace(dto.Goal),
		TargetOutcome: dto.TargetOutcome,
		DurationDays:  dto.DurationDays,
		Strategy:      dto.Strategy,
		Scripts:       rawJSON(dto.Scripts),
		Visuals:       rawJSON(dto.Visuals),
	}
	c.ID = strings.TrimSpace(dto.ID)
	if err := s.Create(ctx, c); err != nil {
		return nil, err
	}
	return c, nil
}

func rawJSON(raw []byte) datatypes.JSON {
	if len(raw) == 0 || string(raw) == "null" {
		return nil
	}
	return datatypes.JSON(raw)
}

func (s *Service) requireProfile(ctx context.Context, profileID string) error {
	if s.profiles == nil {
		return nil
	}
	p, err := s.profiles.Get(ctx, profileID)
	if err != nil {
		return err
	}
	if p == nil {
		return ErrProfileNotFound
	}
	return nil
}

// Get returns ErrNotFound for an unknown id.
func (s *Service) Get(ctx context.Context, id string) (*models.Campaign, error) {
	c, err := s.repo.FindByID(ctx, id)
	if err != nil {
		s.log.Error("campaign fetch failed", zap.String("id", id), zap.Error(err))
		return nil, err
	}
	if c == nil {
		return nil, ErrNotFound
	}
	return c, nil
}

// ListByProfile returns every campaign for the profile, newest first.
func (s *Service) ListByProfile(ctx context.Context, profileID string) ([]models.Campaign, error) {
	items, err := s.repo.ListByProfile(ctx, profileID)
	if err != nil {
		s.log.Error("campaign list failed", zap.String("profile_id", profileID), zap.Error(err))
		return nil, err
	}
	return items, nil
}

func (s *Service) Delete(ctx context.Context, id string) error {
	deleted, err := s.repo.Delete(ctx, id)
	if err != nil {
		s.log.Error("campaign delete failed", zap.String("id", id), zap.Error(err))
		return err
	}
	if !deleted {
		return ErrNotFound
	}
	return nil
}

// Export renders the campaign as markdown or an HTML document.
func (s *Service) Export(ctx context.Context, id, format string) (string, error) {
	c, err := s.Get(ctx, id)
	if err != nil {
		return "", err
	}
	switch format {
	case "", FormatMarkdown:
		return RenderMarkdown(c), nil
	case FormatHTML:
		return RenderHTML(c)
	default:
		return "", ErrUnknownFormat
	}
}
