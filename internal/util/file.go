package util

import (
	"mime"
	"path/filepath"
	"strings"

	"github.com/google/uuid"
)

// BaseMimeType strips parameters such as "; charset=utf-8".
func BaseMimeType(contentType string) string {
	mediaType, _, err := mime.ParseMediaType(contentType)
	if err != nil {
		return strings.ToLower(strings.TrimSpace(contentType))
	}
	return mediaType
}

// MimeAllowed reports whether contentType is in the allow-list.
func MimeAllowed(contentType string, allowed []string) bool {
	mt := BaseMimeType(contentType)
	for _, a := range allowed {
		if strings.EqualFold(mt, a) {
			return true
		}
	}
	return false
}

// AttachmentName generates the stored name for an uploaded file, keeping its extension.
func AttachmentName(original string) string {
	ext := strings.ToLower(filepath.Ext(filepath.Base(original)))
	return AttachmentField + "-" + uuid.New().String() + ext
}
