package retrieval

import (
	"context"
	"math"
	"sort"

	"startup-chatbot-be/internal/constant"
	"startup-chatbot-be/internal/pkg/logger"
	"startup-chatbot-be/pkg/embedding"
	"startup-chatbot-be/pkg/knowledge"
)

// topK covers the answer plus up to three alternative questions.
const topK = 4

// Result is what retrieval hands to the refinement stage: the raw answer
// of the closest entry, and the question strings of the next-best
// entries as suggestions.
type Result struct {
	Answer      string
	Suggestions []string
}

// Retriever ranks knowledge entries by cosine similarity against the
// query embedding. Read-only over the shared index, safe for concurrent
// use.
type Retriever struct {
	index    *knowledge.Index
	provider embedding.EmbeddingProvider
	log      logger.ILogger
}

func NewRetriever(index *knowledge.Index, provider embedding.EmbeddingProvider, log logger.ILogger) *Retriever {
	return &Retriever{
		index:    index,
		provider: provider,
		log:      log,
	}
}

// Retrieve never fails: an unavailable index or a broken embedding call
// degrades to a canned answer with no suggestions.
func (r *Retriever) Retrieve(ctx context.Context, query string) Result {
	if r.provider == nil || !r.index.Available() {
		return Result{Answer: constant.AnswerKnowledgeBaseUnavailable}
	}

	queryRes, err := r.provider.Generate(ctx, query, embedding.TaskTypeQuery)
	if err != nil {
		r.log.Error("retrieval", "Query embedding failed", map[string]interface{}{
			"error": err.Error(),
		})
		return Result{Answer: constant.AnswerSearchFailed}
	}
	queryVec := queryRes.Embedding.Values

	entries := r.index.Entries()
	ranked := make([]int, len(entries))
	scores := make([]float64, len(entries))
	for i := range entries {
		ranked[i] = i
		scores[i] = CosineSimilarity(queryVec, entries[i].Embedding)
	}

	// Stable sort keeps dataset order on equal scores.
	sort.SliceStable(ranked, func(a, b int) bool {
		return scores[ranked[a]] > scores[ranked[b]]
	})

	limit := topK
	if len(ranked) < limit {
		limit = len(ranked)
	}

	result := Result{Answer: entries[ranked[0]].Answer}
	for _, idx := range ranked[1:limit] {
		result.Suggestions = append(result.Suggestions, entries[idx].Question)
	}
	return result
}

// CosineSimilarity returns the normalized dot product of two vectors in
// [-1, 1]. Mismatched lengths or zero vectors score 0.
func CosineSimilarity(a, b []float32) float64 {
	if len(a) != len(b) || len(a) == 0 {
		return 0
	}
	var dot, normA, normB float64
	for i := range a {
		dot += float64(a[i]) * float64(b[i])
		normA += float64(a[i]) * float64(a[i])
		normB += float64(b[i]) * float64(b[i])
	}
	if normA == 0 || normB == 0 {
		return 0
	}
	return dot / (math.Sqrt(normA) * math.Sqrt(normB))
}
