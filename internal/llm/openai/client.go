package openai

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/FAKE-SURYA/smartrecruitai-app/internal/llm"
	"github.com/FAKE-SURYA/smartrecruitai-app/internal/recommend"
)

// maxResumeChars bounds how much resume text goes into the prompt.
const maxResumeChars = 6000

const systemPrompt = "You are a helpful assistant that extracts job title recommendations from resumes and returns a JSON object."

// Recommend implements recommend.RemoteRecommender over chat/completions.
// A single attempt is made; every failure mode (transport, non-2xx, missing
// choices, unparseable or mis-shaped JSON) comes back as an error so the
// orchestrator can fall back to the heuristic.
func (c *Client) Recommend(ctx context.Context, text string) (recommend.Result, error) {
	rid := uuid.New().String()
	start := time.Now()

	if len(text) > maxResumeChars {
		text = text[:maxResumeChars]
	}

	c.log.Info("llm.recommend.start",
		"req_id", rid,
		"model", c.cfg.Model,
		"temp", c.cfg.Temperature,
		"text_len", len(text),
	)

	body := llm.ChatRequest{
		Model: c.cfg.Model,
		Messages: []llm.ChatMessage{
			{Role: "system", Content: systemPrompt},
			{Role: "user", Content: buildUserPrompt(text)},
		},
		MaxTokens:   c.cfg.MaxTokens,
		Temperature: c.cfg.Temperature,
	}

	endpoint := strings.TrimRight(c.cfg.BaseURL, "/") + "/chat/completions"
	headers := map[string]string{"Authorization": "Bearer " + c.cfg.APIKey}

	raw, _, err := llm.SendJSON(ctx, c.http, endpoint, body, headers, c.log)
	if err != nil {
		c.log.Error("llm.recommend.http_error",
			"req_id", rid, "error", err,
			"elapsed_ms", time.Since(start).Milliseconds(),
		)
		return recommend.Result{}, err
	}

	var cc llm.ChatResponse
	if err := json.Unmarshal(raw, &cc); err != nil {
		c.log.Error("llm.recommend.decode_error",
			"req_id", rid, "error", err, "raw_bytes", len(raw),
			"elapsed_ms", time.Since(start).Milliseconds(),
		)
		return recommend.Result{}, fmt.Errorf("decode chat response: %w", err)
	}
	if len(cc.Choices) == 0 {
		c.log.Error("llm.recommend.no_choices",
			"req_id", rid,
			"elapsed_ms", time.Since(start).Milliseconds(),
		)
		return recommend.Result{}, fmt.Errorf("no choices in chat response")
	}
	content := cc.Choices[0].Message.Content

	candidate, ok := llm.FindJSONValue(content)
	if !ok {
		c.log.Error("llm.recommend.no_json",
			"req_id", rid, "content_len", len(content),
			"elapsed_ms", time.Since(start).Milliseconds(),
		)
		return recommend.Result{}, fmt.Errorf("no JSON object in reply")
	}

	res, err := recommend.ParseResultPayload(candidate)
	if err != nil {
		c.log.Error("llm.recommend.invalid_payload",
			"req_id", rid, "error", err,
			"elapsed_ms", time.Since(start).Milliseconds(),
		)
		return recommend.Result{}, fmt.Errorf("invalid result payload: %w", err)
	}

	c.log.Info("llm.recommend.ok",
		"req_id", rid,
		"titles", len(res.RecommendedTitles),
		"tokens_total", cc.Usage.TotalTokens,
		"elapsed_ms", time.Since(start).Milliseconds(),
	)
	return res, nil
}

func buildUserPrompt(text string) string {
	var b strings.Builder
	b.WriteString("Given the following resume text, return a JSON object with keys: ")
	b.WriteString("'recommended_titles' (list of strings), 'confidence_scores' (map title->float between 0 and 1), ")
	b.WriteString("'highlights' (list of strings), and 'explanation' (string).\n\n")
	b.WriteString("Resume:\n")
	b.WriteString(text)
	return b.String()
}
