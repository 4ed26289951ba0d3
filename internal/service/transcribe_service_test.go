package service

import (
	"mime/multipart"
	"net/textproto"
	"testing"

	"github.com/stretchr/testify/assert"
)

func audioHeader(filename, contentType string, size int64) *multipart.FileHeader {
	header := textproto.MIMEHeader{}
	if contentType != "" {
		header.Set("Content-Type", contentType)
	}
	return &multipart.FileHeader{
		Filename: filename,
		Header:   header,
		Size:     size,
	}
}

func TestValidateAudioFile(t *testing.T) {
	tests := []struct {
		name    string
		header  *multipart.FileHeader
		wantErr bool
	}{
		{"webm upload", audioHeader("clip.webm", "audio/webm", 1024), false},
		{"browser webm labeled video", audioHeader("clip.webm", "video/webm;codecs=opus", 1024), false},
		{"wav upload", audioHeader("clip.wav", "audio/wav", 1024), false},
		{"missing content type", audioHeader("clip.mp3", "", 1024), false},
		{"uppercase extension", audioHeader("CLIP.OGG", "audio/ogg", 1024), false},
		{"nil header", nil, true},
		{"empty file", audioHeader("clip.webm", "audio/webm", 0), true},
		{"oversized file", audioHeader("clip.webm", "audio/webm", maxAudioSizeBytes + 1), true},
		{"executable extension", audioHeader("clip.exe", "audio/webm", 1024), true},
		{"no extension", audioHeader("clip", "audio/webm", 1024), true},
		{"text content type", audioHeader("clip.webm", "text/html", 1024), true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := validateAudioFile(tt.header)
			if tt.wantErr {
				assert.ErrorIs(t, err, ErrInvalidAudioFile)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}
