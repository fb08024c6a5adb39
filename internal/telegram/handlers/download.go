package handlers

import (
	"context"
	"crypto/tls"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"time"

	"github.com/futig/ragdesk/internal/entity"
)

const downloadTimeout = 60 * time.Second

// FileLocator resolves a Telegram file id to a download URL.
// *tgbotapi.BotAPI implements it.
type FileLocator interface {
	GetFileDirectURL(fileID string) (string, error)
}

// FileDownloader fetches user files from the Telegram file server
type FileDownloader struct {
	files   FileLocator
	client  *http.Client
	maxSize int64
}

// NewFileDownloader creates a downloader refusing files above maxSize bytes.
// A nil client selects a TLS 1.2+ client with a download timeout.
func NewFileDownloader(files FileLocator, client *http.Client, maxSize int64) *FileDownloader {
	if client == nil {
		client = &http.Client{
			Timeout: downloadTimeout,
			Transport: &http.Transport{
				Proxy: http.ProxyFromEnvironment,
				TLSClientConfig: &tls.Config{
					MinVersion: tls.VersionTLS12,
				},
			},
		}
	}
	return &FileDownloader{files: files, client: client, maxSize: maxSize}
}

// Fetch downloads the file behind fileID
func (d *FileDownloader) Fetch(ctx context.Context, fileID string) ([]byte, error) {
	fileURL, err := d.files.GetFileDirectURL(fileID)
	if err != nil {
		return nil, fmt.Errorf("get file info: %w", err)
	}

	parsedURL, err := url.Parse(fileURL)
	if err != nil {
		return nil, fmt.Errorf("invalid file URL: %w", err)
	}
	// the URL carries the bot token
	if parsedURL.Scheme != "https" {
		return nil, fmt.Errorf("insecure URL scheme: %s (expected https)", parsedURL.Scheme)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, fileURL, nil)
	if err != nil {
		return nil, fmt.Errorf("create request: %w", err)
	}

	resp, err := d.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("download file: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("unexpected status code: %d", resp.StatusCode)
	}

	data, err := io.ReadAll(io.LimitReader(resp.Body, d.maxSize+1))
	if err != nil {
		return nil, fmt.Errorf("read file data: %w", err)
	}
	if int64(len(data)) > d.maxSize {
		return nil, fmt.Errorf("%w: more than %d bytes", entity.ErrFileTooLarge, d.maxSize)
	}

	return data, nil
}
