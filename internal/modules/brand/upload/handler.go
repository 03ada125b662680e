package upload

import (
	"errors"
	"net/http"

	"github.com/brandhub/core/internal/middleware"
	"github.com/brandhub/core/internal/modules/brand/profile"
	"github.com/brandhub/core/internal/pkg/llm"
	"github.com/brandhub/core/internal/pkg/response"
	"github.com/brandhub/core/internal/pkg/textextract"
	"github.com/gin-gonic/gin"
)

// multipart framing allowance on top of the file limit
const formOverhead = 1 << 20

type Handler struct {
	svc *Service
}

func NewHandler(svc *Service) *Handler {
	return &Handler{svc: svc}
}

func (h *Handler) RegisterRoutes(rg *gin.RouterGroup) {
	rg.POST("/uploads", h.upload)
	rg.POST("/process-brand-upload", h.process)
}

// POST /uploads — multipart "file", optional "profileId" and "fileType"
func (h *Handler) upload(c *gin.Context) {
	c.Request.Body = http.MaxBytesReader(c.Writer, c.Request.Body, h.svc.opts.MaxBytes+formOverhead)
	fh, err := c.FormFile("file")
	if err != nil {
		var maxErr *http.MaxBytesError
		if errors.As(err, &maxErr) {
			response.PayloadTooLarge(c, ErrTooLarge.Error())
			return
		}
		response.BadRequest(c, "file is required")
		return
	}
	f, err := fh.Open()
	if err != nil {
		response.BadRequest(c, err.Error())
		return
	}
	defer f.Close()

	res, err := h.svc.Upload(c.Request.Context(), middleware.CurrentSession(c), UploadInput{
		ProfileID:   c.PostForm("profileId"),
		FileType:    c.PostForm("fileType"),
		FileName:    fh.Filename,
		ContentType: fh.Header.Get("Content-Type"),
		Size:        fh.Size,
		Body:        f,
	})
	if err != nil {
		writeError(c, err)
		return
	}
	response.Created(c, res)
}

// POST /process-brand-upload
func (h *Handler) process(c *gin.Context) {
	var req ProcessRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, err.Error())
		return
	}
	out, err := h.svc.Process(c.Request.Context(), req)
	if err != nil {
		writeError(c, err)
		return
	}
	response.OK(c, gin.H{"suggestions": out})
}

func writeError(c *gin.Context, err error) {
	var llmErr *llm.Error
	switch {
	case errors.Is(err, ErrTooLarge):
		response.PayloadTooLarge(c, err.Error())
	case errors.Is(err, ErrInvalidFileType):
		response.BadRequest(c, err.Error())
	case errors.Is(err, textextract.ErrUnsupported):
		response.UnprocessableEntity(c, err.Error())
	case errors.Is(err, profile.ErrNotFound):
		response.NotFoundMsg(c, err.Error())
	case errors.Is(err, ErrFetch), errors.Is(err, llm.ErrNoProvider), errors.As(err, &llmErr):
		response.BadGateway(c, err)
	default:
		response.InternalError(c, err)
	}
}
