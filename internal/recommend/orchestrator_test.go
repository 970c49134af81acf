package recommend_test

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/FAKE-SURYA/smartrecruitai-app/internal/recommend"
)

type fakeRemote struct {
	res recommend.Result
	err error
}

func (f fakeRemote) Recommend(ctx context.Context, text string) (recommend.Result, error) {
	return f.res, f.err
}

type fakeSimilarity struct {
	sims map[string]float64
	err  error
}

func (f fakeSimilarity) Similarities(ctx context.Context, text string, titles []string) (map[string]float64, error) {
	return f.sims, f.err
}

func TestOrchestratorRemoteSuccess(t *testing.T) {
	want := recommend.Result{
		RecommendedTitles: []string{"Platform Engineer"},
		ConfidenceScores:  map[string]float64{"Platform Engineer": 0.93},
		Highlights:        []string{"Kubernetes at scale"},
		Explanation:       "Infra heavy resume.",
	}
	orch := recommend.NewOrchestrator(fakeRemote{res: want}, nil, nil)

	res, source := orch.Recommend(context.Background(), "kubernetes terraform")
	assert.Equal(t, recommend.SourceRemote, source)
	assert.Equal(t, want, res)
}

func TestOrchestratorRemoteFailureFallsBack(t *testing.T) {
	text := "Experienced in Python, Flask, AWS and React"
	orch := recommend.NewOrchestrator(fakeRemote{err: errors.New("upstream boom")}, nil, nil)

	res, source := orch.Recommend(context.Background(), text)
	assert.Equal(t, recommend.SourceHeuristic, source)
	assert.Equal(t, recommend.Heuristic(text), res)
}

func TestOrchestratorNoRemoteUsesHeuristic(t *testing.T) {
	text := "python and react"
	orch := recommend.NewOrchestrator(nil, nil, nil)

	res, source := orch.Recommend(context.Background(), text)
	assert.Equal(t, recommend.SourceHeuristic, source)
	assert.Equal(t, recommend.Heuristic(text), res)
}

func TestOrchestratorSimilarityRescoring(t *testing.T) {
	text := "Experienced in Python, Flask, AWS and React"
	sims := map[string]float64{
		"Backend Engineer / Python Developer": 0.8,
		"Frontend Engineer / React Developer": 0.2,
		"Cloud Engineer / DevOps Engineer":    0.5,
	}
	orch := recommend.NewOrchestrator(nil, fakeSimilarity{sims: sims}, nil)

	res, source := orch.Recommend(context.Background(), text)
	require.Equal(t, recommend.SourceHeuristic, source)
	require.Equal(t, []string{
		"Backend Engineer / Python Developer",
		"Frontend Engineer / React Developer",
		"Cloud Engineer / DevOps Engineer",
	}, res.RecommendedTitles)
	assert.Equal(t, 0.98, res.ConfidenceScores["Backend Engineer / Python Developer"])
	assert.Equal(t, 0.5, res.ConfidenceScores["Frontend Engineer / React Developer"])
	assert.Equal(t, 0.74, res.ConfidenceScores["Cloud Engineer / DevOps Engineer"])
}

func TestOrchestratorSimilarityFailureKeepsHeuristicScores(t *testing.T) {
	text := "python and aws"
	orch := recommend.NewOrchestrator(nil, fakeSimilarity{err: errors.New("embedder down")}, nil)

	res, _ := orch.Recommend(context.Background(), text)
	assert.Equal(t, recommend.Heuristic(text).ConfidenceScores, res.ConfidenceScores)
}

func TestOrchestratorSimilarityMissingTitleKeepsHeuristicScores(t *testing.T) {
	text := "python and aws"
	sims := map[string]float64{"Backend Engineer / Python Developer": 0.9}
	orch := recommend.NewOrchestrator(nil, fakeSimilarity{sims: sims}, nil)

	res, _ := orch.Recommend(context.Background(), text)
	assert.Equal(t, recommend.Heuristic(text).ConfidenceScores, res.ConfidenceScores)
}
