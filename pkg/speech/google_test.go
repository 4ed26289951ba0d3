package speech

import (
	"context"
	"encoding/base64"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRecognize(t *testing.T) {
	audio := []byte{0x1a, 0x45, 0xdf, 0xa3} // webm magic

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/speech:recognize", r.URL.Path)
		assert.Equal(t, "test-key", r.URL.Query().Get("key"))

		var req recognizeRequest
		require.NoError(t, json.NewDecoder(r.Body).Decode(&req))
		assert.Equal(t, "WEBM_OPUS", req.Config.Encoding)
		assert.Equal(t, 48000, req.Config.SampleRateHertz)
		assert.Equal(t, "mr-IN", req.Config.LanguageCode)
		assert.True(t, req.Config.EnableAutomaticPunctuation)
		assert.Equal(t, base64.StdEncoding.EncodeToString(audio), req.Audio.Content)

		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"results":[{"alternatives":[{"transcript":"नमस्कार"}]}]}`))
	}))
	defer srv.Close()

	c := NewClient("test-key")
	c.BaseURL = srv.URL

	transcript, err := c.Recognize(context.Background(), audio)
	require.NoError(t, err)
	assert.Equal(t, "नमस्कार", transcript)
}

func TestRecognizeNoResults(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.Write([]byte(`{}`))
	}))
	defer srv.Close()

	c := NewClient("test-key")
	c.BaseURL = srv.URL

	transcript, err := c.Recognize(context.Background(), []byte("audio"))
	require.NoError(t, err)
	assert.Empty(t, transcript)
}

func TestRecognizeAPIError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusForbidden)
		w.Write([]byte(`{"error":{"message":"key invalid"}}`))
	}))
	defer srv.Close()

	c := NewClient("bad-key")
	c.BaseURL = srv.URL

	_, err := c.Recognize(context.Background(), []byte("audio"))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "403")
}
