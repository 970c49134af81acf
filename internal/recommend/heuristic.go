package recommend

import (
	"math"
	"regexp"
	"sort"
	"strings"
)

// HeuristicExplanation is the fixed explanation attached to heuristic results.
const HeuristicExplanation = "Heuristic fallback used. Set OPENAI_API_KEY to enable richer LLM output."

const maxHighlightTokens = 20

var wordRe = regexp.MustCompile(`\w+`)

// keyword buckets, evaluated in fixed order
var buckets = []struct {
	title    string
	keywords []string
}{
	{"Backend Engineer / Python Developer", []string{"python", "django", "flask"}},
	{"Frontend Engineer / React Developer", []string{"react", "javascript", "vue", "frontend"}},
	{"Cloud Engineer / DevOps Engineer", []string{"aws", "azure", "gcp", "cloud", "devops"}},
	{"Machine Learning Engineer / Data Scientist", []string{"machine", "learning", "nlp", "data", "tensorflow", "pytorch"}},
}

const fallbackTitle = "Software Engineer (General)"

// Heuristic classifies the text with keyword buckets only. It never fails and
// performs no external calls.
func Heuristic(text string) Result {
	keywords := tokenSet(text)

	var titles []string
	for _, b := range buckets {
		for _, k := range b.keywords {
			if _, ok := keywords[k]; ok {
				titles = append(titles, b.title)
				break
			}
		}
	}
	if len(titles) == 0 {
		titles = []string{fallbackTitle}
	}

	scores := make(map[string]float64, len(titles))
	for i, t := range titles {
		scores[t] = round2(0.7 + 0.2*float64(i)/float64(max(1, len(titles)-1)))
	}

	return Result{
		RecommendedTitles: titles,
		ConfidenceScores:  scores,
		Highlights:        []string{skillsHighlight(keywords)},
		Explanation:       HeuristicExplanation,
	}
}

func tokenSet(text string) map[string]struct{} {
	tokens := wordRe.FindAllString(strings.ToLower(text), -1)
	set := make(map[string]struct{}, len(tokens))
	for _, t := range tokens {
		set[t] = struct{}{}
	}
	return set
}

func skillsHighlight(keywords map[string]struct{}) string {
	var sample []string
	for k := range keywords {
		if len(k) > 3 {
			sample = append(sample, k)
		}
	}
	sort.Strings(sample)
	if len(sample) > maxHighlightTokens {
		sample = sample[:maxHighlightTokens]
	}
	return "Detected skills sample: " + strings.Join(sample, ", ")
}

func round2(v float64) float64 {
	return math.Round(v*100) / 100
}
