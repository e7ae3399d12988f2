package judge

import "context"

// MockLLM returns a fixed completion for every request. This allows running
// the pipeline without external judge access.
type MockLLM struct {
	Content string
}

func (m *MockLLM) Completion(
	ctx context.Context,
	req CompletionRequest,
) (CompletionResponse, error) {
	content := m.Content
	if content == "" {
		content = "5"
	}
	return CompletionResponse{
		Choices: []Choice{{Message: ResponseMessage{Content: content}}},
	}, nil
}
