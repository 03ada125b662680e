package upload

import (
	"errors"
	"io"
)

// File types accepted by process-brand-upload.
const (
	FileTypeBusinessInfo    = "business_info"
	FileTypeBrandVoice      = "brand_voice"
	FileTypePersonaResearch = "persona_research"
)

var (
	ErrTooLarge        = errors.New("file exceeds the upload size limit")
	ErrInvalidFileType = errors.New("fileType must be business_info, brand_voice or persona_research")
	ErrFetch           = errors.New("could not download file")
)

func validFileType(t string) bool {
	switch t {
	case FileTypeBusinessInfo, FileTypeBrandVoice, FileTypePersonaResearch:
		return true
	}
	return false
}

// ProcessRequest is the process-brand-upload body.
type ProcessRequest struct {
	FileURL   string `json:"fileUrl"   binding:"required"`
	FileType  string `json:"fileType"  binding:"required"`
	ProfileID string `json:"profileId"`
}

// UploadInput describes one multipart file.
type UploadInput struct {
	ProfileID   string
	FileType    string
	FileName    string
	ContentType string
	Size        int64
	Body        io.Reader
}

type UploadResult struct {
	FileURL  string `json:"fileUrl"`
	Name     string `json:"name"`
	Kind     string `json:"kind"`
	Size     int64  `json:"size"`
	FileType string `json:"fileType,omitempty"`
}
