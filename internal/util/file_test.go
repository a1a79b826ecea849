package util

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestMimeAllowed(t *testing.T) {
	allowed := []string{"image/png", "application/pdf"}

	assert.True(t, MimeAllowed("image/png", allowed))
	assert.True(t, MimeAllowed("Application/PDF", allowed))
	assert.True(t, MimeAllowed("application/pdf; name=x.pdf", allowed))
	assert.False(t, MimeAllowed("text/plain", allowed))
	assert.False(t, MimeAllowed("", allowed))
}

func TestAttachmentName(t *testing.T) {
	name := AttachmentName("../../Report.PDF")
	assert.True(t, strings.HasPrefix(name, "attachments-"))
	assert.True(t, strings.HasSuffix(name, ".pdf"))
	assert.NotContains(t, name, "/")
	assert.NotEqual(t, name, AttachmentName("Report.pdf"))
}
