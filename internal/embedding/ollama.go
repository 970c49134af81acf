// Package embedding provides the optional semantic-similarity capability used
// to refine heuristic confidence scores when no remote credential is set.
package embedding

import (
	"context"
	"fmt"
	"log/slog"
	"math"

	"github.com/tmc/langchaingo/llms/ollama"

	"github.com/FAKE-SURYA/smartrecruitai-app/internal/common"
)

// OllamaProvider implements recommend.SimilarityProvider against a local
// Ollama embedding model.
type OllamaProvider struct {
	llm *ollama.LLM
	log *slog.Logger
}

func NewOllamaProvider(baseURL, model string, log *slog.Logger) (*OllamaProvider, error) {
	if model == "" {
		model = "nomic-embed-text:latest"
	}
	if log == nil {
		log = slog.Default()
	}
	emb, err := ollama.New(ollama.WithModel(model), ollama.WithServerURL(baseURL))
	if err != nil {
		return nil, common.WrapError(err, "initialize embedder")
	}
	return &OllamaProvider{llm: emb, log: log}, nil
}

// Similarities embeds the resume text and every candidate title in one batch
// and returns the raw cosine similarity per title.
func (p *OllamaProvider) Similarities(ctx context.Context, text string, titles []string) (map[string]float64, error) {
	if len(titles) == 0 {
		return map[string]float64{}, nil
	}

	inputs := make([]string, 0, len(titles)+1)
	inputs = append(inputs, text)
	inputs = append(inputs, titles...)

	vecs, err := p.llm.CreateEmbedding(ctx, inputs)
	if err != nil {
		return nil, common.WrapError(err, "create embeddings")
	}
	if len(vecs) != len(inputs) {
		return nil, fmt.Errorf("got %d embeddings for %d inputs", len(vecs), len(inputs))
	}

	out := make(map[string]float64, len(titles))
	for i, t := range titles {
		out[t] = cosine(vecs[0], vecs[i+1])
	}
	return out, nil
}

func cosine(a, b []float32) float64 {
	var dot, normA, normB float64
	n := len(a)
	if len(b) < n {
		n = len(b)
	}
	for i := 0; i < n; i++ {
		dot += float64(a[i]) * float64(b[i])
		normA += float64(a[i]) * float64(a[i])
		normB += float64(b[i]) * float64(b[i])
	}
	if normA == 0 || normB == 0 {
		return 0
	}
	return dot / (math.Sqrt(normA) * math.Sqrt(normB))
}
