package speech

import (
	"bytes"
	"context"
	"encoding/base64"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"
)

const defaultBaseURL = "https://speech.googleapis.com/v1"

// Client calls Google Cloud Speech-to-Text for Marathi audio. The
// recognition settings are fixed for the browser recorder output:
// WEBM_OPUS at 48kHz.
type Client struct {
	ApiKey  string
	BaseURL string
	Client  *http.Client
}

func NewClient(apiKey string) *Client {
	return &Client{
		ApiKey:  apiKey,
		BaseURL: defaultBaseURL,
		Client:  &http.Client{Timeout: 60 * time.Second},
	}
}

type recognitionConfig struct {
	Encoding                   string `json:"encoding"`
	SampleRateHertz            int    `json:"sampleRateHertz"`
	LanguageCode               string `json:"languageCode"`
	EnableAutomaticPunctuation bool   `json:"enableAutomaticPunctuation"`
}

type recognitionAudio struct {
	Content string `json:"content"` // base64 audio bytes
}

type recognizeRequest struct {
	Config recognitionConfig `json:"config"`
	Audio  recognitionAudio  `json:"audio"`
}

type recognizeResponse struct {
	Results []struct {
		Alternatives []struct {
			Transcript string `json:"transcript"`
		} `json:"alternatives"`
	} `json:"results"`
}

// Recognize returns the best-effort transcript for the given audio, or
// an empty string when the API produced no result.
func (c *Client) Recognize(ctx context.Context, audio []byte) (string, error) {
	payload := recognizeRequest{
		Config: recognitionConfig{
			Encoding:                   "WEBM_OPUS",
			SampleRateHertz:            48000,
			LanguageCode:               "mr-IN",
			EnableAutomaticPunctuation: true,
		},
		Audio: recognitionAudio{
			Content: base64.StdEncoding.EncodeToString(audio),
		},
	}
	payloadJson, err := json.Marshal(payload)
	if err != nil {
		return "", err
	}

	endpoint := fmt.Sprintf("%s/speech:recognize?key=%s", c.BaseURL, c.ApiKey)
	req, err := http.NewRequestWithContext(ctx, "POST", endpoint, bytes.NewBuffer(payloadJson))
	if err != nil {
		return "", err
	}
	req.Header.Set("Content-Type", "application/json")

	res, err := c.Client.Do(req)
	if err != nil {
		return "", err
	}
	defer res.Body.Close()

	resBody, err := io.ReadAll(res.Body)
	if err != nil {
		return "", err
	}

	if res.StatusCode != http.StatusOK {
		return "", fmt.Errorf("speech api error, code %d, body %s", res.StatusCode, string(resBody))
	}

	var recognizeRes recognizeResponse
	if err := json.Unmarshal(resBody, &recognizeRes); err != nil {
		return "", err
	}

	if len(recognizeRes.Results) == 0 || len(recognizeRes.Results[0].Alternatives) == 0 {
		return "", nil
	}
	return recognizeRes.Results[0].Alternatives[0].Transcript, nil
}
