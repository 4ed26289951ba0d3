package dto

// SecureRequest and SecureResponse carry the base64 envelope used by the
// obfuscated endpoints. The inner payload is a QueryRequest / QueryResponse.
type SecureRequest struct {
	Data string `json:"data" validate:"required"`
}

type SecureResponse struct {
	Data string `json:"data"`
}
