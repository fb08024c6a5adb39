package rag

import (
	"context"
	"fmt"

	"github.com/futig/ragdesk/internal/entity"
	"github.com/grpc-ecosystem/go-grpc-middleware/logging/zap/ctxzap"
	"go.uber.org/zap"
)

// MockConnector answers locally so the UI can be exercised without a backend
type MockConnector struct {
	logger *zap.Logger
}

func NewMockConnector(logger *zap.Logger) *MockConnector {
	return &MockConnector{
		logger: logger,
	}
}

func (m *MockConnector) IndexDocument(ctx context.Context, file *entity.FileData) error {
	ctxzap.Info(ctx, "[MOCK] indexing document in RAG",
		zap.String("filename", file.Filename),
		zap.Int64("size", file.Size()),
	)
	return nil
}

func (m *MockConnector) Query(ctx context.Context, prompt string) (string, error) {
	ctxzap.Info(ctx, "[MOCK] querying RAG", zap.String("prompt", prompt))

	answer := fmt.Sprintf("**Mock answer**\n\nYou asked:\n\n> %s\n\n"+
		"No RAG backend is configured, set `ENABLE_MOCKS=false` to use the real service.", prompt)
	return answer, nil
}
