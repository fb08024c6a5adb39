package http

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func newTestConnector(t *testing.T, handler http.HandlerFunc, opts ...HttpOpts) *Connector {
	t.Helper()
	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)

	return NewConnector(&ConnectorConfig{BaseURL: srv.URL + "/", Logger: zap.NewNop()}, opts...)
}

func TestDoRequest_JSONRoundTrip(t *testing.T) {
	conn := newTestConnector(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)
		assert.Equal(t, "/query", r.URL.Path)
		assert.Equal(t, "application/json", r.Header.Get("Content-Type"))

		var body map[string]string
		require.NoError(t, json.NewDecoder(r.Body).Decode(&body))
		assert.Equal(t, "hello", body["prompt"])

		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"answer":"world"}`))
	}, WithRequestLogging())

	var resp struct {
		Answer string `json:"answer"`
	}
	err := conn.DoRequest(context.Background(), http.MethodPost, "/query", map[string]string{"prompt": "hello"}, &resp)
	require.NoError(t, err)
	assert.Equal(t, "world", resp.Answer)
}

func TestDoRequest_NonSuccessStatus(t *testing.T) {
	for _, status := range []int{http.StatusBadRequest, http.StatusNotFound, http.StatusInternalServerError, http.StatusBadGateway} {
		conn := newTestConnector(t, func(w http.ResponseWriter, r *http.Request) {
			http.Error(w, "boom", status)
		})

		err := conn.DoRequest(context.Background(), http.MethodPost, "/query", map[string]string{}, nil)

		var httpErr *HTTPError
		require.ErrorAs(t, err, &httpErr)
		assert.Equal(t, status, httpErr.StatusCode)
		assert.Equal(t, "boom", httpErr.Message)
	}
}

func TestDoRequest_NetworkError(t *testing.T) {
	srv := httptest.NewServer(http.NotFoundHandler())
	url := srv.URL
	srv.Close()

	conn := NewConnector(&ConnectorConfig{BaseURL: url, Logger: zap.NewNop()})
	err := conn.DoRequest(context.Background(), http.MethodGet, "/", nil, nil)

	var netErr *NetworkError
	require.ErrorAs(t, err, &netErr)
}

func TestDoRequest_Timeout(t *testing.T) {
	conn := newTestConnector(t, func(w http.ResponseWriter, r *http.Request) {
		select {
		case <-time.After(time.Second):
		case <-r.Context().Done():
		}
	}, WithRequestTimeout(50*time.Millisecond))

	err := conn.DoRequest(context.Background(), http.MethodGet, "/slow", nil, nil)

	var netErr *NetworkError
	require.ErrorAs(t, err, &netErr)
}

func TestDoRequest_UndecodableBody(t *testing.T) {
	conn := newTestConnector(t, func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte("<html>not json</html>"))
	})

	var resp map[string]any
	err := conn.DoRequest(context.Background(), http.MethodPost, "/query", nil, &resp)

	var decodeErr *DecodeError
	require.ErrorAs(t, err, &decodeErr)
}

func TestDoMultipartRequest(t *testing.T) {
	conn := newTestConnector(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/indexing", r.URL.Path)
		assert.Equal(t, "Bearer secret", r.Header.Get("Authorization"))

		file, header, err := r.FormFile("pdf")
		require.NoError(t, err)
		defer file.Close()

		content, err := io.ReadAll(file)
		require.NoError(t, err)
		assert.Equal(t, "report.pdf", header.Filename)
		assert.Equal(t, []byte("%PDF-1.4"), content)

		w.WriteHeader(http.StatusCreated)
	}, WithAuthToken("secret"), WithRequestLogging())

	err := conn.DoMultipartRequest(context.Background(), http.MethodPost, "/indexing", func(mw *multipart.Writer) error {
		part, err := mw.CreateFormFile("pdf", "report.pdf")
		if err != nil {
			return err
		}
		_, err = part.Write([]byte("%PDF-1.4"))
		return err
	}, nil)
	require.NoError(t, err)
}

func TestDoMultipartRequest_PrepareFails(t *testing.T) {
	called := false
	conn := newTestConnector(t, func(w http.ResponseWriter, r *http.Request) {
		called = true
	})

	sentinel := errors.New("cannot read file")
	err := conn.DoMultipartRequest(context.Background(), http.MethodPost, "/indexing", func(*multipart.Writer) error {
		return sentinel
	}, nil)

	require.ErrorIs(t, err, sentinel)
	assert.False(t, called)
}

func TestWithAuthToken_EmptyTokenAddsNoHeader(t *testing.T) {
	conn := newTestConnector(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Empty(t, r.Header.Get("Authorization"))
	}, WithAuthToken(""))

	require.NoError(t, conn.DoRequest(context.Background(), http.MethodGet, "/", nil, nil))
}
