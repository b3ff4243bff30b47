package drive

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestExportTarget(t *testing.T) {
	var tests = []struct {
		mimeType   string
		exportMime string
		ext        string
		ok         bool
	}{
		{"application/vnd.google-apps.document", mimeDocx, ".docx", true},
		{"application/vnd.google-apps.spreadsheet", mimeXlsx, ".xlsx", true},
		{"application/vnd.google-apps.presentation", mimePDF, ".pdf", true},
		{"application/vnd.google-apps.drawing", mimePDF, ".pdf", true},
		{"application/pdf", "", "", false},
		{"text/plain", "", "", false},
		{"", "", "", false},
	}

	for _, tt := range tests {
		t.Run(tt.mimeType, func(t *testing.T) {
			exportMime, ext, ok := ExportTarget(tt.mimeType)
			assert.Equal(t, tt.ok, ok)
			assert.Equal(t, tt.exportMime, exportMime)
			assert.Equal(t, tt.ext, ext)
		})
	}
}
