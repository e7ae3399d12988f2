package embeddings

import (
	"bytes"
	"encoding/json"
	"fmt"
	"net/http"

	"github.com/jacobduba/sd18-isu/internal/constants"
)

// ApiEmbedder talks to the UniXcoder encoder service. The service tokenizes
// each sentence up to max_length (truncating, never rejecting) and returns the
// aggregate embedding per sentence. Vectors are normalized before they leave
// this package.
type ApiEmbedder struct {
	url    string
	client *http.Client
}

func NewApi(url string) *ApiEmbedder {
	return &ApiEmbedder{url: url, client: &http.Client{}}
}

func (e *ApiEmbedder) ModelName() string { return "api" }

func (e *ApiEmbedder) EmbedTexts(texts []string) ([][]float32, error) {
	return e.embedRequest(texts)
}

func (e *ApiEmbedder) EmbedQuery(text string) ([]float32, error) {
	embeddings, err := e.embedRequest([]string{text})
	if err != nil {
		return nil, err
	}
	return embeddings[0], nil
}

type embedRequest struct {
	Sentences []string `json:"sentences"`
	MaxLength int      `json:"max_length"`
	Mode      string   `json:"mode"`
}

func (e *ApiEmbedder) embedRequest(texts []string) ([][]float32, error) {
	request := &embedRequest{
		Sentences: texts,
		MaxLength: constants.MaxInputTokens,
		Mode:      constants.EncoderMode,
	}
	body, err := json.Marshal(request)
	if err != nil {
		return nil, err
	}
	response, err := e.client.Post(e.url, "application/json", bytes.NewReader(body))
	if err != nil {
		return nil, err
	}
	defer func() { _ = response.Body.Close() }()
	if response.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("encoder service returned %s", response.Status)
	}
	var embeddings [][]float32
	if err := json.NewDecoder(response.Body).Decode(&embeddings); err != nil {
		return nil, err
	}
	if len(embeddings) != len(texts) {
		return nil, fmt.Errorf("encoder returned %d vectors for %d sentences", len(embeddings), len(texts))
	}
	for i := range embeddings {
		Normalize(embeddings[i])
	}
	return embeddings, nil
}
