package dto

type QueryRequest struct {
	Text      string `json:"text" validate:"required"`
	SessionId string `json:"session_id"`
	CsrfToken string `json:"csrf_token"`
}

type QueryResponse struct {
	Answer           string   `json:"answer"`
	SimilarQuestions []string `json:"similar_questions"`
	SessionId        string   `json:"session_id"`
}

type CSRFTokenResponse struct {
	CsrfToken string `json:"csrf_token"`
	SessionId string `json:"session_id"`
}
