package dto

const (
	TelemetryKindLLM           = "llm"
	TelemetryKindTranscription = "transcription"
)

// TelemetryEvent is published on the in-process bus and folded into the
// Prometheus counters by the consumer.
type TelemetryEvent struct {
	Kind    string `json:"kind"`
	Success bool   `json:"success"`
}
