// Package obfuscate implements the reversible base64(JSON) envelope used
// by the /api/v1/secure routes. This hides payloads from casual
// inspection only: it is not encryption and provides no confidentiality
// or integrity. Nothing in the core may rely on it as a security
// boundary.
package obfuscate

import (
	"encoding/base64"
	"encoding/json"
	"fmt"
)

// Encode marshals v to JSON and base64-encodes it.
func Encode(v interface{}) (string, error) {
	data, err := json.Marshal(v)
	if err != nil {
		return "", fmt.Errorf("marshal payload: %w", err)
	}
	return base64.StdEncoding.EncodeToString(data), nil
}

// Decode reverses Encode into the given target.
func Decode(encoded string, v interface{}) error {
	data, err := base64.StdEncoding.DecodeString(encoded)
	if err != nil {
		return fmt.Errorf("decode payload: %w", err)
	}
	if err := json.Unmarshal(data, v); err != nil {
		return fmt.Errorf("unmarshal payload: %w", err)
	}
	return nil
}
