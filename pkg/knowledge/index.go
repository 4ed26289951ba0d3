package knowledge

import (
	"context"
	"encoding/csv"
	"os"
	"strings"

	"startup-chatbot-be/internal/pkg/logger"
	"startup-chatbot-be/pkg/embedding"
)

// Entry is one question/answer pair with the precomputed embedding of
// its question.
type Entry struct {
	Question  string
	Answer    string
	Embedding []float32
}

// Index is the in-memory knowledge base snapshot. Built once at startup
// and never mutated afterwards, so concurrent readers need no locking.
// A failed load yields an unavailable index, not a nil pointer: callers
// check Available() and degrade to a canned answer.
type Index struct {
	entries   []Entry
	available bool
}

// Unavailable returns the degraded index used when the dataset or the
// embedding provider could not be initialized.
func Unavailable() *Index {
	return &Index{}
}

// NewIndex builds an index directly from entries. Used in tests and by Load.
func NewIndex(entries []Entry) *Index {
	return &Index{entries: entries, available: len(entries) > 0}
}

func (ix *Index) Available() bool { return ix.available }
func (ix *Index) Len() int        { return len(ix.entries) }

// Entries exposes the snapshot in original dataset order. Callers must
// treat the slice as read-only.
func (ix *Index) Entries() []Entry { return ix.entries }

// Load reads the question/answer CSV and embeds every question through
// the provider. Rows missing either field are dropped. Any failure is
// logged and produces an unavailable index; startup continues.
func Load(ctx context.Context, csvPath string, provider embedding.EmbeddingProvider, log logger.ILogger) *Index {
	if provider == nil {
		log.Error("knowledge", "No embedding provider configured, knowledge base disabled", nil)
		return Unavailable()
	}

	rows, err := readQuestionAnswerCSV(csvPath)
	if err != nil {
		log.Error("knowledge", "Failed to load knowledge base CSV", map[string]interface{}{
			"path":  csvPath,
			"error": err.Error(),
		})
		return Unavailable()
	}
	if len(rows) == 0 {
		log.Error("knowledge", "Knowledge base CSV has no usable rows", map[string]interface{}{
			"path": csvPath,
		})
		return Unavailable()
	}

	entries := make([]Entry, 0, len(rows))
	for _, row := range rows {
		res, err := provider.Generate(ctx, row.Question, embedding.TaskTypeDocument)
		if err != nil {
			log.Error("knowledge", "Failed to embed knowledge base question", map[string]interface{}{
				"question": row.Question,
				"error":    err.Error(),
			})
			return Unavailable()
		}
		entries = append(entries, Entry{
			Question:  row.Question,
			Answer:    row.Answer,
			Embedding: res.Embedding.Values,
		})
	}

	log.Info("knowledge", "Knowledge base loaded", map[string]interface{}{
		"entries": len(entries),
	})
	return NewIndex(entries)
}

type qaRow struct {
	Question string
	Answer   string
}

func readQuestionAnswerCSV(path string) ([]qaRow, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer file.Close()

	reader := csv.NewReader(file)
	reader.FieldsPerRecord = -1 // tolerate ragged rows, we validate per-row

	records, err := reader.ReadAll()
	if err != nil {
		return nil, err
	}
	if len(records) == 0 {
		return nil, nil
	}

	// Locate question/answer columns from the header row.
	questionCol, answerCol := -1, -1
	for i, name := range records[0] {
		switch strings.ToLower(strings.TrimSpace(name)) {
		case "question":
			questionCol = i
		case "answer":
			answerCol = i
		}
	}
	if questionCol < 0 || answerCol < 0 {
		// No header: assume two columns, first row included as data.
		questionCol, answerCol = 0, 1
	} else {
		records = records[1:]
	}

	rows := make([]qaRow, 0, len(records))
	for _, record := range records {
		if len(record) <= questionCol || len(record) <= answerCol {
			continue
		}
		question := strings.TrimSpace(record[questionCol])
		answer := strings.TrimSpace(record[answerCol])
		if question == "" || answer == "" {
			continue
		}
		rows = append(rows, qaRow{Question: question, Answer: answer})
	}
	return rows, nil
}
