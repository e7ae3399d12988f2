package constants

import "time"

const (
	// DefaultEmbedURL is the UniXcoder encoder service endpoint.
	DefaultEmbedURL = "http://localhost:8000/embed"

	// DefaultJudgeURL is the chat-completion service used for re-ranking.
	DefaultJudgeURL   = "http://localhost:11434"
	DefaultJudgeModel = "llama3"

	// MaxInputTokens is the encoder's input limit; longer text is truncated, not rejected.
	MaxInputTokens = 512

	// EncoderMode is the tokenization mode passed to the encoder service.
	EncoderMode = "<encoder-only>"

	DefaultTopK = 10

	// Judge retry policy: a transient failure is retried up to JudgeMaxAttempts
	// with JudgeRetryBackoff between attempts, then the fallback score applies.
	JudgeMaxAttempts   = 3
	JudgeRetryBackoff  = time.Second
	JudgeFallbackScore = 0.0

	JudgeMinScore = 0.0
	JudgeMaxScore = 10.0
)
