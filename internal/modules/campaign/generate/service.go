package generate

import (
	"context"
	"fmt"
	"strings"

	"github.com/brandhub/core/internal/models"
	"github.com/brandhub/core/internal/pkg/llm"
	"github.com/brandhub/core/internal/pkg/tracing"
	"go.opentelemetry.io/otel/attribute"
	"go.uber.org/zap"
)

// Service runs one LLM call per stage. Malformed or partial replies are
// defaulted to empty values; only transport failures are errors.
type Service struct {
	ai  llm.Client
	log *zap.Logger
}

func NewService(ai llm.Client, log *zap.Logger) *Service {
	if log == nil {
		log = zap.NewNop()
	}
	return &Service{ai: ai, log: log}
}

// Generate validates req for its stage and dispatches it.
func (s *Service) Generate(ctx context.Context, req *Request) (interface{}, error) {
	if err := req.validate(); err != nil {
		return nil, err
	}
	switch req.Stage {
	case StagePersonaStrategy:
		out, err := s.PersonaStrategy(ctx, req.Profile, *req.Brief)
		if err != nil {
			return nil, err
		}
		return &PersonaStrategyResult{PersonaStrategies: out}, nil
	case StageContentCalendar:
		return s.ContentCalendar(ctx, req.Profile, *req.Brief, req.ApprovedStrategies)
	default:
		return s.Copywriter(ctx, req.Profile, req.Persona, *req.PostStrategy)
	}
}

func (s *Service) PersonaStrategy(ctx context.Context, p *models.BusinessProfile, brief models.Brief) ([]models.PersonaStrategy, error) {
	var out PersonaStrategyResult
	if err := s.complete(ctx, StagePersonaStrategy, personaStrategyPrompt(p, brief), &out); err != nil {
		return nil, err
	}
	strategies := out.PersonaStrategies
	if strategies == nil {
		strategies = []models.PersonaStrategy{}
	}
	for i := range strategies {
		st := &strategies[i]
		st.Platforms = nonNil(st.Platforms)
		st.ContentPillars = nonNil(st.ContentPillars)
		if st.PersonaID == "" {
			for _, persona := range p.Personas {
				if strings.EqualFold(persona.Name, st.PersonaName) {
					st.PersonaID = persona.ID
					break
				}
			}
		}
	}
	return strategies, nil
}

func (s *Service) ContentCalendar(ctx context.Context, p *models.BusinessProfile, brief models.Brief, approved []models.PersonaStrategy) (*models.ContentCalendar, error) {
	var out models.ContentCalendar
	if err := s.complete(ctx, StageContentCalendar, contentCalendarPrompt(p, brief, approved), &out); err != nil {
		return nil, err
	}
	if out.Posts == nil {
		out.Posts = []models.PlannedPost{}
	}
	seen := make(map[string]bool, len(out.Posts))
	for i := range out.Posts {
		post := &out.Posts[i]
		if post.PostID == "" || seen[post.PostID] {
			post.PostID = fmt.Sprintf("post-%d", i+1)
		}
		seen[post.PostID] = true
	}
	return &out, nil
}

func (s *Service) Copywriter(ctx context.Context, p *models.BusinessProfile, persona *models.Persona, post models.PlannedPost) (*CopyResult, error) {
	var out CopyResult
	if err := s.complete(ctx, StageCopywriter, copywriterPrompt(p, persona, post), &out); err != nil {
		return nil, err
	}
	out.Hashtags = nonNil(out.Hashtags)
	return &out, nil
}

func (s *Service) complete(ctx context.Context, stage, prompt string, out interface{}) (err error) {
	if s.ai == nil {
		return llm.ErrNoProvider
	}
	ctx, span := tracing.Start(ctx, "generate."+stage, attribute.String("stage", stage))
	defer func() { tracing.End(span, err) }()

	raw, err := s.ai.Complete(ctx, systemPrompt, prompt)
	if err != nil {
		s.log.Error("generation failed", zap.String("stage", stage), zap.Error(err))
		return err
	}
	if decodeErr := llm.DecodeJSON(raw, out); decodeErr != nil {
		s.log.Warn("generation returned malformed JSON, using empty result",
			zap.String("stage", stage),
			zap.Int("reply_len", len(raw)),
		)
	}
	return nil
}

func nonNil(list []string) []string {
	if list == nil {
		return []string{}
	}
	return list
}
