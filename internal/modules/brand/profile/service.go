package profile

import (
	"context"
	"fmt"
	"time"

	"github.com/brandhub/core/internal/models"
	"github.com/brandhub/core/internal/pkg/session"
	"go.uber.org/zap"
)

type Service struct {
	repo Repository
	log  *zap.Logger
	now  func() time.Time
}

func NewService(repo Repository, log *zap.Logger) *Service {
	if log == nil {
		log = zap.NewNop()
	}
	return &Service{repo: repo, log: log, now: time.Now}
}

// Save upserts the whole aggregate and makes it the session's current profile.
func (s *Service) Save(ctx context.Context, sess *session.Session, p *models.BusinessProfile) (*models.BusinessProfile, error) {
	if err := normalizeProfile(p); err != nil {
		return nil, err
	}
	p.EnsureID()

	existing, err := s.repo.FindByID(ctx, p.ID)
	if err != nil {
		s.log.Error("profile lookup before save failed", zap.String("id", p.ID), zap.Error(err))
		return nil, fmt.Errorf("save profile: %w", err)
	}
	if existing != nil {
		p.CreatedAt = existing.CreatedAt
	}
	p.Touch(s.now())

	if err := s.repo.Upsert(ctx, p); err != nil {
		s.log.Error("profile save failed", zap.String("id", p.ID), zap.Error(err))
		return nil, fmt.Errorf("save profile: %w", err)
	}
	if err := sess.SetCurrentProfileID(ctx, p.ID); err != nil {
		s.log.Error("record current profile failed", zap.String("id", p.ID), zap.Error(err))
		return nil, fmt.Errorf("record current profile: %w", err)
	}
	return p, nil
}

// Get returns (nil, nil) when no profile has id.
func (s *Service) Get(ctx context.Context, id string) (*models.BusinessProfile, error) {
	p, err := s.repo.FindByID(ctx, id)
	if err != nil {
		s.log.Error("profile fetch failed", zap.String("id", id), zap.Error(err))
		return nil, err
	}
	return p, nil
}

// List returns every profile, oldest first.
func (s *Service) List(ctx context.Context) ([]models.BusinessProfile, error) {
	items, err := s.repo.FindAll(ctx)
	if err != nil {
		s.log.Error("profile list failed", zap.Error(err))
		return nil, err
	}
	return items, nil
}

// GetAll returns every profile keyed by id.
func (s *Service) GetAll(ctx context.Context) (map[string]*models.BusinessProfile, error) {
	items, err := s.List(ctx)
	if err != nil {
		return nil, err
	}
	out := make(map[string]*models.BusinessProfile, len(items))
	for i := range items {
		out[items[i].ID] = &items[i]
	}
	return out, nil
}

// GetCurrent resolves the session's profile. Lookup failures degrade to the next
// fallback: the remembered id, then the oldest stored profile, then the seeded
// default.
func (s *Service) GetCurrent(ctx context.Context, sess *session.Session) *models.BusinessProfile {
	if id, err := sess.CurrentProfileID(ctx); err != nil {
		s.log.Warn("read current profile id failed", zap.Error(err))
	} else if id != "" {
		if p, err := s.repo.FindByID(ctx, id); err != nil {
			s.log.Warn("fetch current profile failed", zap.String("id", id), zap.Error(err))
		} else if p != nil {
			return p
		}
	}

	if items, err := s.repo.FindAll(ctx); err != nil {
		s.log.Warn("fetch first profile failed", zap.Error(err))
	} else if len(items) > 0 {
		first := items[0]
		if err := sess.SetCurrentProfileID(ctx, first.ID); err != nil {
			s.log.Warn("record current profile failed", zap.String("id", first.ID), zap.Error(err))
		}
		return &first
	}

	def := DefaultProfile()
	saved, err := s.Save(ctx, sess, def)
	if err != nil {
		s.log.Warn("seed default profile failed", zap.Error(err))
		return def
	}
	return saved
}

// Select points the session at id. Returns ErrNotFound for an unknown id.
func (s *Service) Select(ctx context.Context, sess *session.Session, id string) (*models.BusinessProfile, error) {
	p, err := s.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	if p == nil {
		return nil, ErrNotFound
	}
	if err := sess.SetCurrentProfileID(ctx, p.ID); err != nil {
		s.log.Error("record current profile failed", zap.String("id", id), zap.Error(err))
		return nil, err
	}
	return p, nil
}

// Delete removes the profile and clears the session pointer if it named it.
func (s *Service) Delete(ctx context.Context, sess *session.Session, id string) (bool, error) {
	deleted, err := s.repo.Delete(ctx, id)
	if err != nil {
		s.log.Error("profile delete failed", zap.String("id", id), zap.Error(err))
		return false, err
	}
	if err := sess.ForgetProfile(ctx, id); err != nil {
		s.log.Warn("clear current profile failed", zap.String("id", id), zap.Error(err))
	}
	return deleted, nil
}

// Update loads id, applies fn and saves the result.
func (s *Service) Update(ctx context.Context, sess *session.Session, id string, fn func(p *models.BusinessProfile) error) (*models.BusinessProfile, error) {
	p, err := s.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	if p == nil {
		return nil, ErrNotFound
	}
	if err := fn(p); err != nil {
		return nil, err
	}
	return s.Save(ctx, sess, p)
}
