package dto

type TranscribeResponse struct {
	Transcript string `json:"transcript"`
}
