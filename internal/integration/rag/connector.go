package rag

import (
	"context"
	"fmt"
	"mime/multipart"
	"net/http"

	"github.com/futig/ragdesk/internal/config"
	"github.com/futig/ragdesk/internal/entity"
	"github.com/futig/ragdesk/internal/integration/common"
	pkghttp "github.com/futig/ragdesk/pkg/http"
	"github.com/grpc-ecosystem/go-grpc-middleware/logging/zap/ctxzap"
	"go.uber.org/zap"
)

// IndexFormField is the multipart field the backend reads the document from
const IndexFormField = "pdf"

type Connector struct {
	config    config.RAGConnectorConfig
	connector *pkghttp.Connector
	logger    *zap.Logger
}

func NewConnector(
	cfg config.RAGConnectorConfig,
	logger *zap.Logger,
) *Connector {
	return &Connector{
		connector: common.NewBaseConnector(cfg.HTTPClientConfig, logger),
		config:    cfg,
		logger:    logger,
	}
}

// IndexDocument uploads a document for indexing
// POST {index_endpoint} with multipart/form-data, field "pdf".
// Any 2xx is success, the body is ignored.
func (c *Connector) IndexDocument(ctx context.Context, file *entity.FileData) error {
	ctxzap.Info(ctx, "indexing document in RAG service",
		zap.String("filename", file.Filename),
		zap.Int64("size", file.Size()),
	)

	prepareBody := func(writer *multipart.Writer) error {
		part, err := writer.CreateFormFile(IndexFormField, file.Filename)
		if err != nil {
			return fmt.Errorf("create form file: %w", err)
		}

		if _, err := part.Write(file.Content); err != nil {
			return fmt.Errorf("write file content: %w", err)
		}
		return nil
	}

	err := c.connector.DoMultipartRequest(ctx, http.MethodPost, c.config.IndexEndpoint, prepareBody, nil)
	if err != nil {
		ctxzap.Error(ctx, "failed to index document", zap.Error(err))
		return fmt.Errorf("%w: index document: %w", entity.ErrTransport, err)
	}

	ctxzap.Info(ctx, "document indexed successfully")
	return nil
}

// Query asks a question against the indexed document
// POST {query_endpoint} with {"prompt": ...}, returns the "answer" field verbatim.
func (c *Connector) Query(ctx context.Context, prompt string) (string, error) {
	ctxzap.Info(ctx, "querying RAG service", zap.Int("prompt_length", len(prompt)))

	var resp entity.RAGQueryResponse
	err := c.connector.DoRequest(ctx, http.MethodPost, c.config.QueryEndpoint, &entity.RAGQueryRequest{Prompt: prompt}, &resp)
	if err != nil {
		ctxzap.Error(ctx, "failed to query RAG service", zap.Error(err))
		return "", fmt.Errorf("%w: query: %w", entity.ErrTransport, err)
	}

	ctxzap.Info(ctx, "query answered", zap.Int("answer_length", len(resp.Answer)))
	return resp.Answer, nil
}
