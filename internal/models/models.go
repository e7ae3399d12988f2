package models

// CorpusRecord is one (code, documentation) pair from the CodeSearchNet dataset.
// Records are immutable once ingested.
type CorpusRecord struct {
	ID                  int64    `json:"id"`
	RepositoryName      string   `json:"repository_name"`
	FuncPathInRepo      string   `json:"func_path_in_repository"`
	FuncName            string   `json:"func_name"`
	WholeFuncString     string   `json:"whole_func_string"`
	Language            string   `json:"language"`
	FuncCodeString      string   `json:"func_code_string"`
	FuncCodeTokens      []string `json:"func_code_tokens"`
	FuncDocString       string   `json:"func_documentation_string"`
	FuncDocStringTokens []string `json:"func_documentation_string_tokens"`
	SplitName           string   `json:"split_name"`
	FuncCodeURL         string   `json:"func_code_url"`
}

// EmbeddingEntry is the persisted unit of the index: the snippet text to display
// plus the L2-normalized documentation embedding it is retrieved by.
type EmbeddingEntry struct {
	ID      int64
	Snippet string
	Vector  []float32
}

// ScoredSnippet pairs a snippet with a ranking score. Depending on the stage the
// score is a dot-product similarity in [-1, 1] or a judge score in [0, 10].
type ScoredSnippet struct {
	ID      int64   `json:"id,omitempty"`
	Snippet string  `json:"snippet"`
	Score   float64 `json:"score"`
}

// SearchResponse is what the presentation layer renders. Unavailable is set when
// the query could not be answered at all (encoder down, store unreadable); an
// empty Results with Unavailable false means the corpus simply had no matches.
type SearchResponse struct {
	Query       string          `json:"query"`
	Results     []ScoredSnippet `json:"results"`
	Unavailable bool            `json:"unavailable"`
	Reason      string          `json:"reason,omitempty"`
}

// Index progress and stages
type IndexStage string

const (
	IndexStageLoad  IndexStage = "load"
	IndexStageEmbed IndexStage = "embed"
	IndexStageStore IndexStage = "store"
	IndexStageDone  IndexStage = "done"
)

// IndexProgress represents streaming progress updates for corpus indexing
type IndexProgress struct {
	Stage           IndexStage
	TotalRecords    int
	SkippedRecords  int
	EmbeddedRecords int
	FailedRecords   int
	Message         string
	Percent         float32
}
