package service

import (
	"context"
	"errors"
	"fmt"
	"io"
	"mime/multipart"
	"path/filepath"
	"strings"

	"startup-chatbot-be/internal/dto"
	"startup-chatbot-be/internal/pkg/logger"
	"startup-chatbot-be/pkg/speech"
)

// ErrInvalidAudioFile is returned when the upload fails validation
// before any API call is made.
var ErrInvalidAudioFile = errors.New("invalid audio file")

const maxAudioSizeBytes = 10 * 1024 * 1024

var allowedAudioExtensions = map[string]bool{
	".wav":  true,
	".mp3":  true,
	".webm": true,
	".ogg":  true,
	".m4a":  true,
}

var allowedAudioMimePrefixes = []string{
	"audio/",
	"video/webm", // browser recorders label opus audio this way
}

type ITranscribeService interface {
	Transcribe(ctx context.Context, fileHeader *multipart.FileHeader) (*dto.TranscribeResponse, error)
}

type TranscribeService struct {
	speech    *speech.Client
	telemetry ITelemetryService
	log       logger.ILogger
}

func NewTranscribeService(speechClient *speech.Client, telemetry ITelemetryService, log logger.ILogger) ITranscribeService {
	return &TranscribeService{
		speech:    speechClient,
		telemetry: telemetry,
		log:       log,
	}
}

func (s *TranscribeService) Transcribe(ctx context.Context, fileHeader *multipart.FileHeader) (*dto.TranscribeResponse, error) {
	if err := validateAudioFile(fileHeader); err != nil {
		return nil, err
	}

	file, err := fileHeader.Open()
	if err != nil {
		return nil, fmt.Errorf("%w: cannot open upload", ErrInvalidAudioFile)
	}
	defer file.Close()

	audio, err := io.ReadAll(file)
	if err != nil {
		return nil, fmt.Errorf("%w: cannot read upload", ErrInvalidAudioFile)
	}

	transcript, err := s.speech.Recognize(ctx, audio)
	if err != nil {
		s.telemetry.TrackTranscription(false)
		s.log.Error("TranscribeService", "Speech recognition failed", map[string]interface{}{
			"filename": fileHeader.Filename,
			"error":    err.Error(),
		})
		return nil, err
	}

	s.telemetry.TrackTranscription(true)
	return &dto.TranscribeResponse{Transcript: transcript}, nil
}

func validateAudioFile(fileHeader *multipart.FileHeader) error {
	if fileHeader == nil || fileHeader.Size == 0 {
		return fmt.Errorf("%w: empty upload", ErrInvalidAudioFile)
	}
	if fileHeader.Size > maxAudioSizeBytes {
		return fmt.Errorf("%w: file exceeds 10MB limit", ErrInvalidAudioFile)
	}

	ext := strings.ToLower(filepath.Ext(fileHeader.Filename))
	if !allowedAudioExtensions[ext] {
		return fmt.Errorf("%w: unsupported extension %q", ErrInvalidAudioFile, ext)
	}

	contentType := fileHeader.Header.Get("Content-Type")
	if contentType != "" {
		ok := false
		for _, prefix := range allowedAudioMimePrefixes {
			if strings.HasPrefix(contentType, prefix) {
				ok = true
				break
			}
		}
		if !ok {
			return fmt.Errorf("%w: unsupported content type %q", ErrInvalidAudioFile, contentType)
		}
	}
	return nil
}
