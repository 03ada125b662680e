package wizard

import (
	"context"
	"time"

	"github.com/brandhub/core/internal/models"
	"github.com/brandhub/core/internal/modules/brand/profile"
	"github.com/brandhub/core/internal/pkg/session"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

// ProfileSource resolves the profile a wizard runs against.
type ProfileSource interface {
	Get(ctx context.Context, id string) (*models.BusinessProfile, error)
	GetCurrent(ctx context.Context, sess *session.Session) *models.BusinessProfile
}

type Service struct {
	store     Store
	profiles  ProfileSource
	gen       Generator
	campaigns CampaignSaver
	log       *zap.Logger
	now       func() time.Time
}

func NewService(store Store, profiles ProfileSource, gen Generator, campaigns CampaignSaver, log *zap.Logger) *Service {
	if log == nil {
		log = zap.NewNop()
	}
	return &Service{
		store:     store,
		profiles:  profiles,
		gen:       gen,
		campaigns: campaigns,
		log:       log,
		now:       time.Now,
	}
}

// Start opens a wizard for profileID, or for the session's current profile
// when profileID is empty.
func (s *Service) Start(ctx context.Context, sess *session.Session, profileID string) (*State, error) {
	var p *models.BusinessProfile
	if profileID == "" {
		p = s.profiles.GetCurrent(ctx, sess)
	} else {
		var err error
		if p, err = s.profiles.Get(ctx, profileID); err != nil {
			return nil, err
		}
		if p == nil {
			return nil, profile.ErrNotFound
		}
	}

	st := NewState(uuid.NewString(), sessionID(sess), p.ID, s.now())
	if err := s.store.Save(ctx, st); err != nil {
		s.log.Error("wizard save failed", zap.String("wizard_id", st.ID), zap.Error(err))
		return nil, err
	}
	return st, nil
}

func sessionID(sess *session.Session) string {
	if sess == nil {
		return ""
	}
	return sess.ID
}

// Get returns ErrNotFound for expired wizards and wizards of other sessions.
func (s *Service) Get(ctx context.Context, sess *session.Session, id string) (*State, error) {
	st, err := s.store.Load(ctx, id)
	if err != nil {
		return nil, err
	}
	if st.SessionID != "" && st.SessionID != sessionID(sess) {
		return nil, ErrNotFound
	}
	return st, nil
}

// apply loads the wizard and its profile, runs fn and stores the result. The
// state is stored even when fn fails so partial input such as the brief
// survives; fn must leave the stage untouched on failure.
func (s *Service) apply(ctx context.Context, sess *session.Session, id string, fn func(st *State, p *models.BusinessProfile) error) (*State, error) {
	st, err := s.Get(ctx, sess, id)
	if err != nil {
		return nil, err
	}
	p, err := s.profiles.Get(ctx, st.ProfileID)
	if err != nil {
		return nil, err
	}
	if p == nil {
		return nil, profile.ErrNotFound
	}

	opErr := fn(st, p)
	if opErr != nil {
		s.log.Warn("wizard action failed",
			zap.String("wizard_id", id),
			zap.Stringer("stage", st.Stage),
			zap.Error(opErr),
		)
	}
	st.UpdatedAt = s.now()
	if err := s.store.Save(ctx, st); err != nil {
		s.log.Error("wizard save failed", zap.String("wizard_id", id), zap.Error(err))
		return nil, err
	}
	return st, opErr
}

func (s *Service) SubmitBrief(ctx context.Context, sess *session.Session, id string, brief models.Brief) (*State, error) {
	return s.apply(ctx, sess, id, func(st *State, p *models.BusinessProfile) error {
		return st.SubmitBrief(ctx, s.gen, p, brief)
	})
}

func (s *Service) UpdateStrategy(ctx context.Context, sess *session.Session, id string, index int, strategy models.PersonaStrategy) (*State, error) {
	return s.apply(ctx, sess, id, func(st *State, _ *models.BusinessProfile) error {
		return st.UpdateStrategy(index, strategy)
	})
}

func (s *Service) AddStrategy(ctx context.Context, sess *session.Session, id, personaRef string) (*State, error) {
	return s.apply(ctx, sess, id, func(st *State, p *models.BusinessProfile) error {
		return st.AddStrategy(p, personaRef)
	})
}

func (s *Service) RemoveStrategy(ctx context.Context, sess *session.Session, id string, index int) (*State, error) {
	return s.apply(ctx, sess, id, func(st *State, _ *models.BusinessProfile) error {
		return st.RemoveStrategy(index)
	})
}

func (s *Service) ApproveStrategies(ctx context.Context, sess *session.Session, id string) (*State, error) {
	return s.apply(ctx, sess, id, func(st *State, p *models.BusinessProfile) error {
		return st.ApproveStrategies(ctx, s.gen, p)
	})
}

func (s *Service) Back(ctx context.Context, sess *session.Session, id string) (*State, error) {
	return s.apply(ctx, sess, id, func(st *State, _ *models.BusinessProfile) error {
		return st.Back()
	})
}

func (s *Service) GenerateCopy(ctx context.Context, sess *session.Session, id string) (*State, error) {
	return s.apply(ctx, sess, id, func(st *State, p *models.BusinessProfile) error {
		return st.GenerateCopy(ctx, s.gen, p)
	})
}

func (s *Service) EditPost(ctx context.Context, sess *session.Session, id string, index int, edit PostEdit) (*State, error) {
	return s.apply(ctx, sess, id, func(st *State, _ *models.BusinessProfile) error {
		return st.EditPost(index, edit)
	})
}

func (s *Service) RegeneratePost(ctx context.Context, sess *session.Session, id string, index int) (*State, error) {
	return s.apply(ctx, sess, id, func(st *State, p *models.BusinessProfile) error {
		return st.RegeneratePost(ctx, s.gen, p, index)
	})
}

func (s *Service) ApprovePost(ctx context.Context, sess *session.Session, id string, index int) (*State, error) {
	return s.apply(ctx, sess, id, func(st *State, _ *models.BusinessProfile) error {
		return st.ApprovePost(ctx, s.campaigns, index, s.now())
	})
}

func (s *Service) ApproveAll(ctx context.Context, sess *session.Session, id string) (*State, error) {
	return s.apply(ctx, sess, id, func(st *State, _ *models.BusinessProfile) error {
		return st.ApproveAll(ctx, s.campaigns, s.now())
	})
}
