// Command analyze runs the recommendation pipeline once for a local resume
// file and prints the result as JSON.
package main

import (
	"bytes"
	"context"
	"encoding/json"
	"flag"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/joho/godotenv"

	"github.com/FAKE-SURYA/smartrecruitai-app/internal/common"
	"github.com/FAKE-SURYA/smartrecruitai-app/internal/extract"
	"github.com/FAKE-SURYA/smartrecruitai-app/internal/llm/openai"
	"github.com/FAKE-SURYA/smartrecruitai-app/internal/recommend"
)

func main() {
	_ = godotenv.Load()

	resumePath := flag.String("resume", "", "Path to resume file (pdf, docx or txt)")
	outPath := flag.String("out", "", "Path to write JSON output (optional)")
	quiet := flag.Bool("quiet", false, "Suppress pipeline logs")
	flag.Parse()

	if strings.TrimSpace(*resumePath) == "" {
		exitErr("resume path is required")
	}

	logLevel := slog.LevelInfo
	if *quiet {
		logLevel = slog.LevelError
	}
	log := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: logLevel}))

	data, err := os.ReadFile(*resumePath)
	if err != nil {
		exitErr(fmt.Sprintf("read resume: %v", err))
	}

	text := extract.NewFileExtractor(log).Extract(filepath.Base(*resumePath), data)

	cfg := common.LoadConfig()
	var remote recommend.RemoteRecommender
	if cfg.LLM.APIKey != "" {
		remote = openai.NewClient(openai.Config{
			APIKey:      cfg.LLM.APIKey,
			BaseURL:     cfg.LLM.BaseURL,
			Model:       cfg.LLM.Model,
			Temperature: cfg.LLM.Temperature,
			MaxTokens:   cfg.LLM.MaxTokens,
			Timeout:     cfg.LLM.Timeout,
		}, log)
	}

	ctx, cancel := common.WithTimeout(context.Background(), cfg.LLM.Timeout+5*time.Second)
	defer cancel()

	orch := recommend.NewOrchestrator(remote, nil, log)
	res, source := orch.Recommend(ctx, text)

	raw, err := json.Marshal(struct {
		Source string `json:"source"`
		recommend.Result
	}{Source: string(source), Result: res})
	if err != nil {
		exitErr(fmt.Sprintf("encode result: %v", err))
	}

	pretty, err := prettyJSON(raw)
	if err != nil {
		exitErr(fmt.Sprintf("format json: %v", err))
	}

	if *outPath != "" {
		if err := os.WriteFile(*outPath, pretty, 0o644); err != nil {
			exitErr(fmt.Sprintf("write output: %v", err))
		}
	}

	if _, err := os.Stdout.Write(pretty); err != nil {
		exitErr(fmt.Sprintf("write stdout: %v", err))
	}
	_, _ = os.Stdout.Write([]byte("\n"))
}

func prettyJSON(raw []byte) ([]byte, error) {
	var buf bytes.Buffer
	if err := json.Indent(&buf, raw, "", "  "); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

func exitErr(msg string) {
	_, _ = fmt.Fprintln(os.Stderr, msg)
	os.Exit(1)
}
