package qna

import (
	"context"
	"encoding/json"
	"fmt"
	"regexp"
	"strings"
	"time"

	"github.com/indusnlp/shuddhi/internal/logger"
)

// Record is one generated question-answer pair. MCQ records carry
// Options, CorrectAnswer, and Explanation; other types carry Answer.
type Record struct {
	Type          string   `json:"type"`
	Question      string   `json:"question"`
	Options       []string `json:"options,omitempty"`
	CorrectAnswer string   `json:"correct_answer,omitempty"`
	Answer        string   `json:"answer,omitempty"`
	Explanation   string   `json:"explanation,omitempty"`
}

// Config controls generation.
type Config struct {
	// NumQuestions is the total number of records to produce.
	NumQuestions int
	// BatchSize is the number of questions requested per model call.
	BatchSize int
	// ChunkSize is the number of runes of source text per batch.
	ChunkSize int
	// MaxRetries bounds attempts per batch before it is skipped.
	MaxRetries int
	// RetryDelay is the pause between failed attempts.
	RetryDelay time.Duration
}

// DefaultConfig returns sensible defaults.
func DefaultConfig() Config {
	return Config{
		NumQuestions: 25,
		BatchSize:    25,
		ChunkSize:    6000,
		MaxRetries:   3,
		RetryDelay:   2 * time.Second,
	}
}

// Generator produces question-answer pairs from source text.
type Generator struct {
	provider Provider
	cfg      Config
}

// NewGenerator creates a Generator backed by the given provider.
func NewGenerator(provider Provider, cfg Config) (*Generator, error) {
	if provider == nil {
		return nil, fmt.Errorf("qna: provider required")
	}
	if cfg.NumQuestions < 1 {
		cfg.NumQuestions = 1
	}
	if cfg.BatchSize < 1 {
		cfg.BatchSize = 1
	}
	if cfg.ChunkSize < 1 {
		cfg.ChunkSize = 6000
	}
	if cfg.MaxRetries < 1 {
		cfg.MaxRetries = 1
	}
	return &Generator{provider: provider, cfg: cfg}, nil
}

// Generate produces up to NumQuestions records from text. Batches that
// fail after retries are skipped; duplicate questions are dropped. An
// error is returned only when the text is empty, the context ends, or
// no batch produced anything.
func (g *Generator) Generate(ctx context.Context, text string) ([]Record, error) {
	if strings.TrimSpace(text) == "" {
		return nil, fmt.Errorf("qna: input text is empty")
	}

	runes := []rune(text)
	chunkSize := g.cfg.ChunkSize
	if chunkSize > len(runes) {
		chunkSize = len(runes)
	}

	numBatches := (g.cfg.NumQuestions + g.cfg.BatchSize - 1) / g.cfg.BatchSize

	var records []Record
	seen := make(map[string]struct{})

	for batch := 0; batch < numBatches; batch++ {
		if err := ctx.Err(); err != nil {
			return records, err
		}

		// Sliding window over the source text, wrapping at the end.
		start := (batch * chunkSize) % len(runes)
		end := start + chunkSize
		if end > len(runes) {
			end = len(runes)
		}
		chunk := string(runes[start:end])

		parsed := g.generateBatch(ctx, chunk)
		if parsed == nil {
			continue
		}

		for _, rec := range parsed {
			q := strings.TrimSpace(rec.Question)
			if q == "" {
				continue
			}
			key := normalizeQuestion(q)
			if _, dup := seen[key]; dup {
				continue
			}
			seen[key] = struct{}{}
			records = append(records, rec)
			if len(records) >= g.cfg.NumQuestions {
				return records, nil
			}
		}
	}

	if len(records) == 0 {
		return nil, fmt.Errorf("qna: no records could be generated")
	}
	return records, nil
}

// generateBatch runs one model call with retries. A nil return means
// the batch is skipped.
func (g *Generator) generateBatch(ctx context.Context, chunk string) []Record {
	prompt := buildPrompt(chunk, g.cfg.BatchSize)

	for attempt := 1; attempt <= g.cfg.MaxRetries; attempt++ {
		raw, err := g.provider.Complete(ctx, prompt)
		if err == nil {
			if parsed := ParseResponse(raw); parsed != nil {
				return parsed
			}
			err = fmt.Errorf("unparseable response")
		}
		logger.Warn("qna batch attempt failed",
			"provider", g.provider.Name(),
			"attempt", attempt,
			"error", err)

		if attempt < g.cfg.MaxRetries && g.cfg.RetryDelay > 0 {
			select {
			case <-ctx.Done():
				return nil
			case <-time.After(g.cfg.RetryDelay):
			}
		}
	}
	return nil
}

const promptTemplate = `You are an expert educational AI that generates detailed, high-quality academic Q&A.

TASK:
Generate %d unique and non-repetitive Question-Answer pairs from the given Hindi or bilingual text.

Distribute evenly among these 5 types:
1. Multiple Choice Questions (MCQs)
2. Objective Questions (True/False, Fill in the Blanks, Match the Following)
3. Summarization Questions
4. Chain of Thought Questions
5. Logical Reasoning Questions

OUTPUT RULES:
- Return a valid JSON array only, no markdown, no text.
- Each object must follow one of these schemas:

For MCQs:
{
  "type": "MCQ",
  "question": "string (Hindi or bilingual)",
  "options": ["Option A", "Option B", "Option C", "Option D"],
  "correct_answer": "string (exactly one of the options)",
  "explanation": "3-6 sentence explanation"
}

For other types:
{
  "type": "Objective" | "Summarization" | "Chain of Thought" | "Logical Reasoning",
  "question": "string",
  "answer": "detailed 4-8 sentence answer"
}

RULES:
- Avoid exact duplicates.
- Maintain conceptual variety.
- Output clean JSON only.

Text:

%s`

func buildPrompt(chunk string, n int) string {
	return fmt.Sprintf(promptTemplate, n, chunk)
}

var (
	codeFenceRe     = regexp.MustCompile("```[a-zA-Z]*")
	trailingCommaRe = regexp.MustCompile(`,(\s*[\]}])`)
	spaceRunRe      = regexp.MustCompile(`\s+`)
)

// ParseResponse extracts and parses a JSON array of records from raw
// model output. Markdown code fences are stripped, the outermost array
// is isolated, and trailing commas are repaired. Returns nil when no
// valid array can be recovered.
func ParseResponse(raw string) []Record {
	if raw == "" {
		return nil
	}

	raw = codeFenceRe.ReplaceAllString(raw, "")

	start := strings.Index(raw, "[")
	end := strings.LastIndex(raw, "]")
	if start == -1 || end <= start {
		return nil
	}
	text := strings.TrimSpace(raw[start : end+1])

	var records []Record
	if err := json.Unmarshal([]byte(text), &records); err == nil {
		return records
	}

	repaired := trailingCommaRe.ReplaceAllString(text, "$1")
	if err := json.Unmarshal([]byte(repaired), &records); err != nil {
		logger.Debug("qna response parse failed", "error", err)
		return nil
	}
	return records
}

// normalizeQuestion is the dedupe key: lower-cased with whitespace
// runs collapsed.
func normalizeQuestion(q string) string {
	return spaceRunRe.ReplaceAllString(strings.ToLower(q), " ")
}

// FormatText renders records in the numbered plain-text layout used
// for the <name>_QA.txt output file.
func FormatText(records []Record) string {
	var b strings.Builder
	for i, rec := range records {
		answer := rec.Explanation
		if answer == "" {
			answer = rec.Answer
		}
		fmt.Fprintf(&b, "%d. %s\n%s\n\n", i+1, rec.Question, answer)
	}
	return strings.TrimRight(b.String(), "\n") + "\n"
}
