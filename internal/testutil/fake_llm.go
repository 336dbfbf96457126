package testutil

import (
	"context"
	"sync"

	"github.com/alexanderramin/scholia/internal/llm"
)

// FakeLLMClient replays canned responses in order and records every
// request. Once the responses run out the last one repeats.
type FakeLLMClient struct {
	mu        sync.Mutex
	Responses []string
	Err       error
	Requests  []llm.GenerateRequest
	Down      bool
}

func NewFakeLLMClient(responses ...string) *FakeLLMClient {
	return &FakeLLMClient{Responses: responses}
}

func (f *FakeLLMClient) Generate(_ context.Context, req llm.GenerateRequest) (*llm.GenerateResponse, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.Requests = append(f.Requests, req)
	if f.Err != nil {
		return nil, f.Err
	}
	if len(f.Responses) == 0 {
		return &llm.GenerateResponse{Model: "fake"}, nil
	}
	idx := len(f.Requests) - 1
	if idx >= len(f.Responses) {
		idx = len(f.Responses) - 1
	}
	return &llm.GenerateResponse{Text: f.Responses[idx], Model: "fake"}, nil
}

func (f *FakeLLMClient) Available(context.Context) bool {
	return !f.Down
}

func (f *FakeLLMClient) Calls() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return len(f.Requests)
}
