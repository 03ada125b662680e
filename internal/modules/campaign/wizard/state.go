// Package wizard drives the four-stage campaign builder: brief, persona
// strategy, content calendar and copy review. State is a plain value; every
// transition that needs the model goes through a Generator, and the finished
// campaign is handed to a CampaignSaver.
package wizard

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/brandhub/core/internal/models"
	"github.com/brandhub/core/internal/modules/brand/profile"
	"github.com/brandhub/core/internal/modules/campaign/campaign"
	"github.com/brandhub/core/internal/modules/campaign/generate"
)

type Stage int

const (
	StageBrief Stage = iota + 1
	StagePersonaStrategy
	StageContentCalendar
	StageCopyReview
)

func (s Stage) String() string {
	switch s {
	case StageBrief:
		return "brief"
	case StagePersonaStrategy:
		return "persona_strategy"
	case StageContentCalendar:
		return "content_calendar"
	case StageCopyReview:
		return "copy_review"
	}
	return fmt.Sprintf("stage(%d)", int(s))
}

var (
	ErrNotFound             = errors.New("wizard not found")
	ErrCompleted            = errors.New("wizard is completed, the campaign can no longer change")
	ErrInvalidTransition    = errors.New("action not allowed at this stage")
	ErrGoalRequired         = errors.New("goal is required")
	ErrStrategiesIncomplete = errors.New("every persona strategy needs a key message, a platform, a desired emotion, an immediate action and an intent level")
	ErrIndexOutOfRange      = errors.New("index out of range")
	ErrPersonaNotFound      = errors.New("persona not found on profile")
	ErrNoPlannedPosts       = errors.New("content calendar has no posts")
)

// Generator produces each stage's output; *generate.Service satisfies it.
type Generator interface {
	PersonaStrategy(ctx context.Context, p *models.BusinessProfile, brief models.Brief) ([]models.PersonaStrategy, error)
	ContentCalendar(ctx context.Context, p *models.BusinessProfile, brief models.Brief, approved []models.PersonaStrategy) (*models.ContentCalendar, error)
	Copywriter(ctx context.Context, p *models.BusinessProfile, persona *models.Persona, post models.PlannedPost) (*generate.CopyResult, error)
}

// CampaignSaver persists the finished campaign.
type CampaignSaver interface {
	Create(ctx context.Context, c *models.Campaign) error
}

// State is one wizard run. Posts carry the approved set in their Approved flag.
type State struct {
	ID                string                   `json:"id"`
	SessionID         string                   `json:"-"`
	ProfileID         string                   `json:"profile_id"`
	Stage             Stage                    `json:"stage"`
	Brief             models.Brief             `json:"brief"`
	PersonaStrategies []models.PersonaStrategy `json:"persona_strategies"`
	ContentCalendar   *models.ContentCalendar  `json:"content_calendar,omitempty"`
	Posts             []models.GeneratedCopy   `json:"posts"`
	CurrentPost       int                      `json:"current_post"`
	Completed         bool                     `json:"completed"`
	CampaignID        string                   `json:"campaign_id,omitempty"`
	CreatedAt         time.Time                `json:"created_at"`
	UpdatedAt         time.Time                `json:"updated_at"`
}

// sessionState carries SessionID through the store, which the API never shows.
type sessionState struct {
	*State
	SessionID string `json:"session_id"`
}

func NewState(id, sessionID, profileID string, now time.Time) *State {
	return &State{
		ID:                id,
		SessionID:         sessionID,
		ProfileID:         profileID,
		Stage:             StageBrief,
		PersonaStrategies: []models.PersonaStrategy{},
		Posts:             []models.GeneratedCopy{},
		CreatedAt:         now,
		UpdatedAt:         now,
	}
}

func (s *State) require(stage Stage) error {
	if s.Completed {
		return ErrCompleted
	}
	if s.Stage != stage {
		return fmt.Errorf("%w: wizard is at %s, need %s", ErrInvalidTransition, s.Stage, stage)
	}
	return nil
}

// SubmitBrief moves 1 → 2. A failed generation leaves the wizard on the brief.
func (s *State) SubmitBrief(ctx context.Context, gen Generator, p *models.BusinessProfile, brief models.Brief) error {
	if err := s.require(StageBrief); err != nil {
		return err
	}
	brief.Goal = strings.TrimSpace(brief.Goal)
	s.Brief = brief
	if brief.Goal == "" {
		return ErrGoalRequired
	}
	strategies, err := gen.PersonaStrategy(ctx, p, brief)
	if err != nil {
		return err
	}
	s.PersonaStrategies = strategies
	s.Stage = StagePersonaStrategy
	return nil
}

// StrategiesValid reports whether the list can be approved: it is non-empty and
// every entry has the fields the calendar stage needs.
func StrategiesValid(list []models.PersonaStrategy) bool {
	if len(list) == 0 {
		return false
	}
	for _, st := range list {
		if blank(st.KeyMessage) || len(st.Platforms) == 0 || blank(st.DesiredEmotion) ||
			blank(st.ImmediateAction) || blank(st.ActionIntentLevel) {
			return false
		}
	}
	return true
}

func blank(s string) bool { return strings.TrimSpace(s) == "" }

func (s *State) UpdateStrategy(index int, st models.PersonaStrategy) error {
	if err := s.require(StagePersonaStrategy); err != nil {
		return err
	}
	if index < 0 || index >= len(s.PersonaStrategies) {
		return ErrIndexOutOfRange
	}
	if st.Platforms == nil {
		st.Platforms = []string{}
	}
	s.PersonaStrategies[index] = st
	return nil
}

// AddStrategy appends an empty strategy for one of the profile's personas,
// matched by id or name.
func (s *State) AddStrategy(p *models.BusinessProfile, personaRef string) error {
	if err := s.require(StagePersonaStrategy); err != nil {
		return err
	}
	var persona *models.Persona
	for i := range p.Personas {
		if p.Personas[i].ID == personaRef {
			persona = &p.Personas[i]
			break
		}
	}
	if persona == nil {
		persona = profile.FindPersona(p, personaRef)
	}
	if persona == nil {
		return ErrPersonaNotFound
	}
	s.PersonaStrategies = append(s.PersonaStrategies, models.PersonaStrategy{
		PersonaID:      persona.ID,
		PersonaName:    persona.Name,
		Platforms:      []string{},
		ContentPillars: []string{},
	})
	return nil
}

func (s *State) RemoveStrategy(index int) error {
	if err := s.require(StagePersonaStrategy); err != nil {
		return err
	}
	if index < 0 || index >= len(s.PersonaStrategies) {
		return ErrIndexOutOfRange
	}
	s.PersonaStrategies = append(s.PersonaStrategies[:index], s.PersonaStrategies[index+1:]...)
	return nil
}

// ApproveStrategies moves 2 → 3 once StrategiesValid holds.
func (s *State) ApproveStrategies(ctx context.Context, gen Generator, p *models.BusinessProfile) error {
	if err := s.require(StagePersonaStrategy); err != nil {
		return err
	}
	if !StrategiesValid(s.PersonaStrategies) {
		return ErrStrategiesIncomplete
	}
	cal, err := gen.ContentCalendar(ctx, p, s.Brief, s.PersonaStrategies)
	if err != nil {
		return err
	}
	s.ContentCalendar = cal
	s.Stage = StageContentCalendar
	return nil
}

// Back moves the stage pointer from 2 to 1 or 3 to 2. No data is dropped.
func (s *State) Back() error {
	if s.Completed {
		return ErrCompleted
	}
	switch s.Stage {
	case StagePersonaStrategy:
		s.Stage = StageBrief
	case StageContentCalendar:
		s.Stage = StagePersonaStrategy
	default:
		return fmt.Errorf("%w: cannot go back from %s", ErrInvalidTransition, s.Stage)
	}
	return nil
}

// GenerateCopy moves 3 → 4 with one copywriter call per planned post, in
// order. The first failure discards every result and keeps the wizard on 3.
func (s *State) GenerateCopy(ctx context.Context, gen Generator, p *models.BusinessProfile) error {
	if err := s.require(StageContentCalendar); err != nil {
		return err
	}
	if s.ContentCalendar == nil || len(s.ContentCalendar.Posts) == 0 {
		return ErrNoPlannedPosts
	}
	posts := make([]models.GeneratedCopy, 0, len(s.ContentCalendar.Posts))
	for i, planned := range s.ContentCalendar.Posts {
		out, err := gen.Copywriter(ctx, p, personaFor(p, planned.Persona), planned)
		if err != nil {
			return fmt.Errorf("post %d of %d: %w", i+1, len(s.ContentCalendar.Posts), err)
		}
		posts = append(posts, copyFrom(planned, out))
	}
	s.Posts = posts
	s.CurrentPost = 0
	s.Stage = StageCopyReview
	return nil
}

func personaFor(p *models.BusinessProfile, name string) *models.Persona {
	if persona := profile.FindPersona(p, name); persona != nil {
		return persona
	}
	return &models.Persona{Name: name}
}

func copyFrom(planned models.PlannedPost, out *generate.CopyResult) models.GeneratedCopy {
	return models.GeneratedCopy{
		PostID:          planned.PostID,
		Day:             planned.Day,
		Platform:        planned.Platform,
		Format:          planned.Format,
		Persona:         planned.Persona,
		Hook:            out.Hook,
		Script:          out.Script,
		Hashtags:        out.Hashtags,
		VisualDirection: out.VisualDirection,
	}
}

// PostEdit overwrites the given fields of one post.
type PostEdit struct {
	Hook            *string   `json:"hook"`
	Script          *string   `json:"script"`
	Hashtags        *[]string `json:"hashtags"`
	VisualDirection *string   `json:"visual_direction"`
}

func (s *State) post(index int) (*models.GeneratedCopy, error) {
	if err := s.require(StageCopyReview); err != nil {
		return nil, err
	}
	if index < 0 || index >= len(s.Posts) {
		return nil, ErrIndexOutOfRange
	}
	return &s.Posts[index], nil
}

func (s *State) EditPost(index int, edit PostEdit) error {
	post, err := s.post(index)
	if err != nil {
		return err
	}
	if edit.Hook != nil {
		post.Hook = *edit.Hook
	}
	if edit.Script != nil {
		post.Script = *edit.Script
	}
	if edit.Hashtags != nil {
		post.Hashtags = *edit.Hashtags
	}
	if edit.VisualDirection != nil {
		post.VisualDirection = *edit.VisualDirection
	}
	post.Edited = true
	return nil
}

// RegeneratePost rewrites one post. The fresh copy is unedited and needs
// approving again.
func (s *State) RegeneratePost(ctx context.Context, gen Generator, p *models.BusinessProfile, index int) error {
	post, err := s.post(index)
	if err != nil {
		return err
	}
	planned := s.plannedFor(index)
	out, err := gen.Copywriter(ctx, p, personaFor(p, planned.Persona), planned)
	if err != nil {
		return err
	}
	*post = copyFrom(planned, out)
	return nil
}

func (s *State) plannedFor(index int) models.PlannedPost {
	if s.ContentCalendar != nil && index < len(s.ContentCalendar.Posts) {
		return s.ContentCalendar.Posts[index]
	}
	p := s.Posts[index]
	return models.PlannedPost{PostID: p.PostID, Day: p.Day, Platform: p.Platform, Format: p.Format, Persona: p.Persona}
}

// ApprovePost approves one post and moves the viewer to the next unapproved
// one. Approving the last outstanding post saves the campaign.
func (s *State) ApprovePost(ctx context.Context, saver CampaignSaver, index int, now time.Time) error {
	post, err := s.post(index)
	if err != nil {
		return err
	}
	post.Approved = true
	if next, ok := s.nextUnapproved(index); ok {
		s.CurrentPost = next
		return nil
	}
	return s.finalize(ctx, saver, now)
}

// ApproveAll approves every remaining post and saves the campaign.
func (s *State) ApproveAll(ctx context.Context, saver CampaignSaver, now time.Time) error {
	if err := s.require(StageCopyReview); err != nil {
		return err
	}
	for i := range s.Posts {
		s.Posts[i].Approved = true
	}
	return s.finalize(ctx, saver, now)
}

func (s *State) nextUnapproved(from int) (int, bool) {
	n := len(s.Posts)
	for step := 1; step <= n; step++ {
		i := (from + step) % n
		if !s.Posts[i].Approved {
			return i, true
		}
	}
	return 0, false
}

// ApprovedCount is the size of the approved set.
func (s *State) ApprovedCount() int {
	n := 0
	for _, p := range s.Posts {
		if p.Approved {
			n++
		}
	}
	return n
}

// finalize persists the campaign. On failure the approvals stay so the caller
// can retry by approving again.
func (s *State) finalize(ctx context.Context, saver CampaignSaver, now time.Time) error {
	posts := make([]models.GeneratedCopy, len(s.Posts))
	copy(posts, s.Posts)
	c := &models.Campaign{
		ProfileID:         s.ProfileID,
		Goal:              s.Brief.Goal,
		TargetOutcome:     s.Brief.TargetOutcome,
		DurationDays:      s.Brief.DurationDays,
		PersonaStrategies: s.PersonaStrategies,
		ContentCalendar:   s.ContentCalendar,
		GeneratedCopy:     posts,
		Status:            models.CampaignStatusApproved,
	}
	c.ID = s.ID
	c.CreatedAt = now
	// the campaign id is the wizard id, so a duplicate means an earlier
	// attempt already stored it
	if err := saver.Create(ctx, c); err != nil && !errors.Is(err, campaign.ErrDuplicate) {
		return fmt.Errorf("save campaign: %w", err)
	}
	s.Completed = true
	s.CampaignID = c.ID
	return nil
}
