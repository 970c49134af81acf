package recommend

import (
	"bytes"
	"encoding/json"
	"fmt"

	"github.com/santhosh-tekuri/jsonschema/v5"
)

// BuildResultJSONSchema returns a JSON-Schema (draft 2020-12 subset) as a
// generic map. It is embedded in the remote prompt and used locally to check
// field types, not just key presence, before trusting remote output.
func BuildResultJSONSchema() map[string]any {
	return map[string]any{
		"type": "object",
		"properties": map[string]any{
			"recommended_titles": map[string]any{
				"type":     "array",
				"items":    map[string]any{"type": "string", "minLength": 1},
				"minItems": 1,
			},
			"confidence_scores": map[string]any{
				"type": "object",
				"additionalProperties": map[string]any{
					"type":    "number",
					"minimum": 0.0,
					"maximum": 1.0,
				},
			},
			"highlights": map[string]any{
				"type":  "array",
				"items": map[string]any{"type": "string"},
			},
			"explanation": map[string]any{"type": "string"},
		},
		"required": []string{"recommended_titles", "confidence_scores", "highlights", "explanation"},
	}
}

// ValidateJSONAgainstSchema validates "data" against "schemaMap".
func ValidateJSONAgainstSchema(schemaMap map[string]any, data []byte) error {
	b, err := json.Marshal(schemaMap)
	if err != nil {
		return fmt.Errorf("marshal schema: %w", err)
	}
	compiler := jsonschema.NewCompiler()
	if err := compiler.AddResource("schema.json", bytes.NewReader(b)); err != nil {
		return fmt.Errorf("add schema: %w", err)
	}
	schema, err := compiler.Compile("schema.json")
	if err != nil {
		return fmt.Errorf("compile schema: %w", err)
	}
	var v any
	if err := json.Unmarshal(data, &v); err != nil {
		return fmt.Errorf("unmarshal data: %w", err)
	}
	if err := schema.Validate(v); err != nil {
		return fmt.Errorf("json does not match schema: %w", err)
	}
	return nil
}

// ParseResultPayload validates a raw JSON object against the result schema
// plus the titles/scores key-set invariant, and decodes it into a Result.
func ParseResultPayload(data []byte) (Result, error) {
	if err := ValidateJSONAgainstSchema(BuildResultJSONSchema(), data); err != nil {
		return Result{}, err
	}

	var res Result
	if err := json.Unmarshal(data, &res); err != nil {
		return Result{}, fmt.Errorf("unmarshal result: %w", err)
	}

	if len(res.ConfidenceScores) != len(res.RecommendedTitles) {
		return Result{}, fmt.Errorf("confidence_scores has %d keys for %d titles",
			len(res.ConfidenceScores), len(res.RecommendedTitles))
	}
	for _, t := range res.RecommendedTitles {
		if _, ok := res.ConfidenceScores[t]; !ok {
			return Result{}, fmt.Errorf("confidence_scores missing title %q", t)
		}
	}
	return res, nil
}
