package obfuscate

import (
	"encoding/base64"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type payload struct {
	Text      string `json:"text"`
	SessionId string `json:"session_id"`
}

func TestEncodeDecodeRoundtrip(t *testing.T) {
	in := payload{Text: "स्टार्टअप नोंदणी कशी करावी?", SessionId: "abc-123"}

	encoded, err := Encode(in)
	require.NoError(t, err)

	// The wire form must be plain base64 over JSON so any client can build it.
	raw, err := base64.StdEncoding.DecodeString(encoded)
	require.NoError(t, err)
	assert.Contains(t, string(raw), `"session_id":"abc-123"`)

	var out payload
	require.NoError(t, Decode(encoded, &out))
	assert.Equal(t, in, out)
}

func TestDecodeRejectsGarbage(t *testing.T) {
	var out payload
	assert.Error(t, Decode("not-base64!!!", &out))

	notJSON := base64.StdEncoding.EncodeToString([]byte("plain text"))
	assert.Error(t, Decode(notJSON, &out))
}
