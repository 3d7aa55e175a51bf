package notifications

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"os"
	"path/filepath"
	"strings"
)

const userAgent = "DiscoProwl-Go/1.0"

// Transport delivers a payload to one notification channel.
type Transport interface {
	Name() string
	Send(ctx context.Context, payload Payload) error
}

func post(ctx context.Context, client *http.Client, endpoint, contentType string, body io.Reader, headers map[string]string) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, endpoint, body)
	if err != nil {
		return fmt.Errorf("build request: %w", err)
	}
	req.Header.Set("User-Agent", userAgent)
	req.Header.Set("Content-Type", contentType)
	for key, value := range headers {
		if value != "" {
			req.Header.Set(key, value)
		}
	}

	resp, err := client.Do(req)
	if err != nil {
		return fmt.Errorf("send request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		detail, _ := io.ReadAll(io.LimitReader(resp.Body, 2048))
		return fmt.Errorf("returned %d: %s", resp.StatusCode, strings.TrimSpace(string(detail)))
	}
	_, _ = io.Copy(io.Discard, resp.Body)
	return nil
}

// multipartBody assembles form fields and file parts. Files are keyed by
// form field name and read from disk.
type multipartBody struct {
	buf    bytes.Buffer
	writer *multipart.Writer
}

func newMultipartBody() *multipartBody {
	mb := &multipartBody{}
	mb.writer = multipart.NewWriter(&mb.buf)
	return mb
}

func (m *multipartBody) field(name, value string) error {
	return m.writer.WriteField(name, value)
}

func (m *multipartBody) file(field, path string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("read attachment %s: %w", path, err)
	}
	part, err := m.writer.CreateFormFile(field, filepath.Base(path))
	if err != nil {
		return fmt.Errorf("create form file: %w", err)
	}
	_, err = part.Write(data)
	return err
}

func (m *multipartBody) finish() (io.Reader, string, error) {
	if err := m.writer.Close(); err != nil {
		return nil, "", fmt.Errorf("close multipart body: %w", err)
	}
	return &m.buf, m.writer.FormDataContentType(), nil
}
