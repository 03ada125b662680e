package upload

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"mime"
	"net/http"
	"path"
	"strings"
	"time"

	"github.com/brandhub/core/internal/models"
	"github.com/brandhub/core/internal/modules/brand/profile"
	"github.com/brandhub/core/internal/modules/brand/suggestion"
	"github.com/brandhub/core/internal/pkg/llm"
	"github.com/brandhub/core/internal/pkg/objectstore"
	"github.com/brandhub/core/internal/pkg/session"
	"github.com/brandhub/core/internal/pkg/textextract"
	"github.com/brandhub/core/internal/pkg/tracing"
	"github.com/google/uuid"
	"go.opentelemetry.io/otel/attribute"
	"go.uber.org/zap"
)

const keyPrefix = "brand-uploads"

type Options struct {
	MaxBytes     int64
	ExtractChars int
	FetchTimeout time.Duration
}

func (o Options) withDefaults() Options {
	if o.MaxBytes <= 0 {
		o.MaxBytes = 20 << 20
	}
	if o.ExtractChars <= 0 {
		o.ExtractChars = 10000
	}
	if o.FetchTimeout <= 0 {
		o.FetchTimeout = 30 * time.Second
	}
	return o
}

type Service struct {
	store    objectstore.Store
	profiles *profile.Service
	ai       llm.Client
	http     *http.Client
	opts     Options
	log      *zap.Logger
}

func NewService(store objectstore.Store, profiles *profile.Service, ai llm.Client, opts Options, log *zap.Logger) *Service {
	if log == nil {
		log = zap.NewNop()
	}
	opts = opts.withDefaults()
	return &Service{
		store:    store,
		profiles: profiles,
		ai:       ai,
		http:     &http.Client{Timeout: opts.FetchTimeout},
		opts:     opts,
		log:      log,
	}
}

// Upload stores a brand document and, when a profile id is given, records its
// metadata on that profile.
func (s *Service) Upload(ctx context.Context, sess *session.Session, in UploadInput) (*UploadResult, error) {
	if in.Size > s.opts.MaxBytes {
		return nil, ErrTooLarge
	}
	if in.FileType != "" && !validFileType(in.FileType) {
		return nil, ErrInvalidFileType
	}
	data, err := readLimited(in.Body, s.opts.MaxBytes)
	if err != nil {
		return nil, err
	}
	kind, err := textextract.Detect(in.FileName, in.ContentType, data)
	if err != nil {
		return nil, err
	}

	owner := in.ProfileID
	if owner == "" {
		owner = "unassigned"
	}
	key := path.Join(keyPrefix, owner, uuid.NewString()+extensionFor(kind))
	contentType := contentTypeFor(kind)
	url, err := s.store.Put(ctx, key, bytes.NewReader(data), int64(len(data)), contentType)
	if err != nil {
		s.log.Error("store upload failed", zap.String("key", key), zap.Error(err))
		return nil, err
	}

	name := path.Base(strings.ReplaceAll(in.FileName, "\\", "/"))
	if in.ProfileID != "" {
		_, err = s.profiles.Update(ctx, sess, in.ProfileID, func(p *models.BusinessProfile) error {
			p.UploadedFiles = append(p.UploadedFiles, models.UploadedFile{
				Name:       name,
				URL:        url,
				FileType:   in.FileType,
				Size:       int64(len(data)),
				UploadedAt: time.Now().UTC().Format(time.RFC3339),
			})
			return nil
		})
		if err != nil {
			_ = s.store.Delete(ctx, key)
			return nil, err
		}
	}

	s.log.Info("brand document uploaded",
		zap.String("profile_id", in.ProfileID),
		zap.String("kind", string(kind)),
		zap.Int("size", len(data)),
	)
	return &UploadResult{
		FileURL:  url,
		Name:     name,
		Kind:     string(kind),
		Size:     int64(len(data)),
		FileType: in.FileType,
	}, nil
}

// Process downloads the file at req.FileURL, extracts its text and asks the
// model for profile suggestions shaped by req.FileType.
func (s *Service) Process(ctx context.Context, req ProcessRequest) (_ *suggestion.Suggestions, err error) {
	if !validFileType(req.FileType) {
		return nil, ErrInvalidFileType
	}
	if s.ai == nil {
		return nil, llm.ErrNoProvider
	}
	ctx, span := tracing.Start(ctx, "upload.process",
		attribute.String("file_type", req.FileType),
		attribute.String("profile_id", req.ProfileID),
	)
	defer func() { tracing.End(span, err) }()

	data, contentType, err := s.fetch(ctx, req.FileURL)
	if err != nil {
		return nil, err
	}
	kind, err := textextract.Detect(req.FileURL, contentType, data)
	if err != nil {
		return nil, err
	}
	text, err := textextract.Extract(kind, data)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", textextract.ErrUnsupported, err)
	}
	text = textextract.Truncate(text, s.opts.ExtractChars)

	var owner *models.BusinessProfile
	if req.ProfileID != "" {
		owner, err = s.profiles.Get(ctx, req.ProfileID)
		if err != nil {
			s.log.Warn("load profile for extraction failed", zap.String("profile_id", req.ProfileID), zap.Error(err))
		}
	}

	raw, err := s.ai.Complete(ctx, extractionSystemPrompt, buildExtractionPrompt(req.FileType, text, owner))
	if err != nil {
		s.log.Error("brand extraction failed", zap.String("file_type", req.FileType), zap.Error(err))
		return nil, err
	}

	var out suggestion.Suggestions
	if err := llm.DecodeJSON(raw, &out); err != nil {
		s.log.Warn("brand extraction returned malformed JSON", zap.String("file_type", req.FileType), zap.Error(err))
		return &suggestion.Suggestions{}, nil
	}
	restrictToFileType(&out, req.FileType)
	return &out, nil
}

// fetch reads a stored object directly when the URL is one of ours, else
// downloads it over HTTP.
func (s *Service) fetch(ctx context.Context, rawURL string) ([]byte, string, error) {
	rawURL = strings.TrimSpace(rawURL)
	if s.store != nil {
		if key, ok := s.store.KeyFromURL(rawURL); ok {
			rc, err := s.store.Open(ctx, key)
			if err != nil {
				if errors.Is(err, objectstore.ErrNotFound) {
					return nil, "", fmt.Errorf("%w: %s not found", ErrFetch, key)
				}
				return nil, "", fmt.Errorf("%w: %v", ErrFetch, err)
			}
			defer rc.Close()
			data, err := readLimited(rc, s.opts.MaxBytes)
			return data, mime.TypeByExtension(path.Ext(key)), err
		}
	}

	if !strings.HasPrefix(rawURL, "http://") && !strings.HasPrefix(rawURL, "https://") {
		return nil, "", fmt.Errorf("%w: unsupported url %q", ErrFetch, rawURL)
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, rawURL, nil)
	if err != nil {
		return nil, "", fmt.Errorf("%w: %v", ErrFetch, err)
	}
	resp, err := s.http.Do(req)
	if err != nil {
		return nil, "", fmt.Errorf("%w: %v", ErrFetch, err)
	}
	defer resp.Body.Close()
	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return nil, "", fmt.Errorf("%w: status %d", ErrFetch, resp.StatusCode)
	}
	if resp.ContentLength > s.opts.MaxBytes {
		return nil, "", ErrTooLarge
	}
	data, err := readLimited(resp.Body, s.opts.MaxBytes)
	return data, resp.Header.Get("Content-Type"), err
}

func readLimited(r io.Reader, limit int64) ([]byte, error) {
	data, err := io.ReadAll(io.LimitReader(r, limit+1))
	if err != nil {
		return nil, fmt.Errorf("read file: %w", err)
	}
	if int64(len(data)) > limit {
		return nil, ErrTooLarge
	}
	return data, nil
}

// restrictToFileType drops fields the document type is not meant to supply.
func restrictToFileType(s *suggestion.Suggestions, fileType string) {
	switch fileType {
	case FileTypeBusinessInfo:
		s.BrandIdentity, s.Voice, s.ContentRules = nil, nil, nil
		s.Personas, s.Audience = nil, nil
	case FileTypeBrandVoice:
		s.BusinessName, s.Niche, s.OwnerName = nil, nil, nil
		s.Locations, s.Services, s.Business, s.Programs = nil, nil, nil, nil
		s.Personas, s.Audience = nil, nil
	case FileTypePersonaResearch:
		s.BusinessName, s.Niche, s.OwnerName = nil, nil, nil
		s.Locations, s.Services, s.Business, s.Programs = nil, nil, nil, nil
		s.BrandIdentity, s.Voice, s.ContentRules = nil, nil, nil
	}
}

func extensionFor(kind textextract.Kind) string {
	return "." + string(kind)
}

func contentTypeFor(kind textextract.Kind) string {
	switch kind {
	case textextract.KindPDF:
		return "application/pdf"
	case textextract.KindDOCX:
		return "application/vnd.openxmlformats-officedocument.wordprocessingml.document"
	default:
		return "text/plain; charset=utf-8"
	}
}
