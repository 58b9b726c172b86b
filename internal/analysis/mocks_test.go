package analysis_test

import (
	"context"
	"encoding/json"

	"wiw3ch.app/matchmaker/common/llm"
)

type mockLLMClient struct {
	chatJSON   string
	chatErr    error
	completeFn func(ctx context.Context, req llm.Request) (string, *llm.Response, error)
	lastReq    llm.Request
}

func (m *mockLLMClient) Chat(_ context.Context, req llm.Request, result any) (*llm.Response, error) {
	m.lastReq = req
	if m.chatErr != nil {
		return nil, m.chatErr
	}
	if err := json.Unmarshal([]byte(m.chatJSON), result); err != nil {
		return nil, err
	}
	return &llm.Response{}, nil
}

func (m *mockLLMClient) Complete(ctx context.Context, req llm.Request) (string, *llm.Response, error) {
	m.lastReq = req
	if m.completeFn != nil {
		return m.completeFn(ctx, req)
	}
	return "", &llm.Response{}, nil
}

func (m *mockLLMClient) Model() string {
	return "mock-model"
}
