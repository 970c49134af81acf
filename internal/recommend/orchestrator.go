package recommend

import (
	"context"
	"log/slog"
	"time"
)

// RemoteRecommender is the remote chat-completion path. An error means the
// caller should fall back to the heuristic; no partial results are returned.
type RemoteRecommender interface {
	Recommend(ctx context.Context, text string) (Result, error)
}

// SimilarityProvider computes a raw semantic similarity between the resume
// text and each candidate title. Optional capability; the orchestrator works
// without one.
type SimilarityProvider interface {
	Similarities(ctx context.Context, text string, titles []string) (map[string]float64, error)
}

// Source identifies which path produced a Result.
type Source string

const (
	SourceRemote    Source = "llm"
	SourceHeuristic Source = "heuristic"
)

// Orchestrator picks the execution path per request: remote when a client is
// configured, the heuristic otherwise.
type Orchestrator struct {
	remote     RemoteRecommender
	similarity SimilarityProvider
	log        *slog.Logger
}

func NewOrchestrator(remote RemoteRecommender, similarity SimilarityProvider, log *slog.Logger) *Orchestrator {
	if log == nil {
		log = slog.Default()
	}
	return &Orchestrator{remote: remote, similarity: similarity, log: log}
}

// Recommend never fails: every remote or similarity failure degrades to the
// deterministic heuristic output for the same text.
func (o *Orchestrator) Recommend(ctx context.Context, text string) (Result, Source) {
	if o.remote != nil {
		start := time.Now()
		res, err := o.remote.Recommend(ctx, text)
		if err == nil {
			o.log.Info("recommend.remote.ok",
				"titles", len(res.RecommendedTitles),
				"elapsed_ms", time.Since(start).Milliseconds(),
			)
			return res, SourceRemote
		}
		o.log.Warn("recommend.remote.fallback",
			"error", err,
			"elapsed_ms", time.Since(start).Milliseconds(),
		)
		return Heuristic(text), SourceHeuristic
	}

	res := Heuristic(text)
	if o.similarity != nil {
		o.refineScores(ctx, text, &res)
	}
	return res, SourceHeuristic
}

// refineScores replaces the heuristic's fixed scores with min-max normalized
// semantic similarities in [0.5, 0.98]. Failures leave the result untouched.
func (o *Orchestrator) refineScores(ctx context.Context, text string, res *Result) {
	sims, err := o.similarity.Similarities(ctx, text, res.RecommendedTitles)
	if err != nil {
		o.log.Debug("recommend.similarity.skipped", "error", err)
		return
	}

	minS, maxS := 0.0, 0.0
	first := true
	for _, t := range res.RecommendedTitles {
		s, ok := sims[t]
		if !ok {
			o.log.Debug("recommend.similarity.skipped", "missing_title", t)
			return
		}
		if first {
			minS, maxS = s, s
			first = false
			continue
		}
		if s < minS {
			minS = s
		}
		if s > maxS {
			maxS = s
		}
	}
	if first {
		return
	}

	scores := make(map[string]float64, len(res.RecommendedTitles))
	for _, t := range res.RecommendedTitles {
		norm := 0.5 + 0.48*((sims[t]-minS)/(maxS-minS+1e-9))
		scores[t] = round2(norm)
	}
	res.ConfidenceScores = scores
}
