package judge

import (
	"context"
	"fmt"
	"log"
	"sort"
	"strconv"
	"strings"
	"time"

	"github.com/jacobduba/sd18-isu/internal/constants"
	"github.com/jacobduba/sd18-isu/internal/models"
	"golang.org/x/sync/errgroup"
)

const systemPrompt = "You are a code search judge. " +
	"Rate how well a code snippet matches a natural language description. " +
	"Respond with ONLY a single integer from 0 to 10. No explanation, no punctuation."

// Judge asks an external LLM for a second-opinion relevance score per snippet.
// This is the most failure-prone stage of the pipeline, so every failure path
// terminates in the fallback score; Evaluate and Rank never return an error.
type Judge struct {
	llm         LLM
	model       string
	temperature float64
	maxAttempts int
	backoff     time.Duration
	concurrency int
}

type Options struct {
	Temperature float64
	MaxAttempts int
	Backoff     time.Duration
	Concurrency int // >1 enables bounded parallel judge calls
}

func New(llm LLM, model string, opt Options) *Judge {
	if opt.MaxAttempts <= 0 {
		opt.MaxAttempts = constants.JudgeMaxAttempts
	}
	if opt.Backoff <= 0 {
		opt.Backoff = constants.JudgeRetryBackoff
	}
	if opt.Concurrency <= 0 {
		opt.Concurrency = 1
	}
	return &Judge{
		llm:         llm,
		model:       model,
		temperature: opt.Temperature,
		maxAttempts: opt.MaxAttempts,
		backoff:     opt.Backoff,
		concurrency: opt.Concurrency,
	}
}

func scoringPrompt(query, snippet string) []Message {
	return []Message{
		{Role: "system", Content: systemPrompt},
		{Role: "user", Content: fmt.Sprintf(
			"Description:\n%s\n\nCode snippet:\n%s\n\nScore (0-10):", query, snippet,
		)},
	}
}

// Evaluate scores one snippet against the query, in [0, 10]. Transient
// failures (transport error, empty or non-numeric content, judge-reported
// error) are retried up to the attempt bound with a fixed backoff; when all
// attempts are exhausted the fallback score is returned.
func (j *Judge) Evaluate(ctx context.Context, query, snippet string) float64 {
	req := CompletionRequest{
		Model:       j.model,
		Messages:    scoringPrompt(query, snippet),
		Temperature: j.temperature,
	}

	for attempt := 1; attempt <= j.maxAttempts; attempt++ {
		score, err := j.tryOnce(ctx, req)
		if err == nil {
			return clamp(score)
		}
		log.Printf("judge: attempt %d/%d failed: %v", attempt, j.maxAttempts, err)
		if attempt < j.maxAttempts {
			select {
			case <-time.After(j.backoff):
			case <-ctx.Done():
				return constants.JudgeFallbackScore
			}
		}
	}
	return constants.JudgeFallbackScore
}

func (j *Judge) tryOnce(ctx context.Context, req CompletionRequest) (float64, error) {
	resp, err := j.llm.Completion(ctx, req)
	if err != nil {
		return 0, err
	}
	if len(resp.Choices) == 0 {
		return 0, fmt.Errorf("empty response")
	}
	content := strings.TrimSpace(resp.Choices[0].Message.Content)
	if content == "" {
		return 0, fmt.Errorf("empty content")
	}
	score, err := strconv.ParseFloat(content, 64)
	if err != nil {
		return 0, fmt.Errorf("non-numeric content %q", content)
	}
	return score, nil
}

func clamp(score float64) float64 {
	if score < constants.JudgeMinScore {
		return constants.JudgeMinScore
	}
	if score > constants.JudgeMaxScore {
		return constants.JudgeMaxScore
	}
	return score
}

// Rank evaluates every snippet independently (one judge call per snippet) and
// returns them sorted by score descending. Snippets with equal scores keep
// their original relative order, so the final ordering depends only on scores,
// never on call-completion order.
func (j *Judge) Rank(ctx context.Context, query string, snippets []string) []models.ScoredSnippet {
	scores := make([]float64, len(snippets))
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(j.concurrency)
	for i, snippet := range snippets {
		g.Go(func() error {
			scores[i] = j.Evaluate(gctx, query, snippet)
			return nil
		})
	}
	_ = g.Wait() // Evaluate never errors

	ranked := make([]models.ScoredSnippet, len(snippets))
	for i, snippet := range snippets {
		ranked[i] = models.ScoredSnippet{Snippet: snippet, Score: scores[i]}
	}
	sort.SliceStable(ranked, func(a, b int) bool { return ranked[a].Score > ranked[b].Score })
	return ranked
}
