package api

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"os"
	"path/filepath"
	"sort"

	"golang.org/x/sync/errgroup"
)

const (
	uploadPath         = "/api/v1/upload/"
	uploadMultiplePath = "/api/v1/upload/multiple"
)

// UploadFile posts the file at filePath as multipart field "file" with
// form as extra fields.
func (c *Client) UploadFile(ctx context.Context, filePath string, form map[string]string) (*Envelope, error) {
	return c.upload(ctx, uploadPath, "file", filePath, form)
}

// UploadFiles uploads each file concurrently as field "files". Results are
// in input order. The first failure cancels the remaining uploads.
func (c *Client) UploadFiles(ctx context.Context, filePaths []string, form map[string]string) ([]*Envelope, error) {
	results := make([]*Envelope, len(filePaths))

	g, gctx := errgroup.WithContext(ctx)
	for i, p := range filePaths {
		g.Go(func() error {
			env, err := c.upload(gctx, uploadMultiplePath, "files", p, form)
			if err != nil {
				return err
			}
			results[i] = env
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	return results, nil
}

// DeleteFile removes an uploaded file.
func (c *Client) DeleteFile(ctx context.Context, fileID string) (*Envelope, error) {
	return c.Delete(ctx, "/api/v1/upload/"+fileID)
}

// FileInfo returns metadata of an uploaded file.
func (c *Client) FileInfo(ctx context.Context, fileID string) (*Envelope, error) {
	return c.Get(ctx, "/api/v1/upload/info/"+fileID, nil)
}

func (c *Client) upload(ctx context.Context, path, field, filePath string, form map[string]string) (*Envelope, error) {
	f, err := os.Open(filePath)
	if err != nil {
		return nil, fmt.Errorf("open upload: %w", err)
	}
	defer func() { _ = f.Close() }()

	var buf bytes.Buffer
	mw := multipart.NewWriter(&buf)

	keys := make([]string, 0, len(form))
	for k := range form {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	for _, k := range keys {
		if err := mw.WriteField(k, form[k]); err != nil {
			return nil, fmt.Errorf("write form field %s: %w", k, err)
		}
	}

	part, err := mw.CreateFormFile(field, filepath.Base(filePath))
	if err != nil {
		return nil, fmt.Errorf("create form file: %w", err)
	}
	if _, err := io.Copy(part, f); err != nil {
		return nil, fmt.Errorf("copy upload %s: %w", filePath, err)
	}
	if err := mw.Close(); err != nil {
		return nil, fmt.Errorf("close multipart writer: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+path, &buf)
	if err != nil {
		return nil, fmt.Errorf("build upload request: %w", err)
	}
	req.Header.Set("Content-Type", mw.FormDataContentType())

	data, err := c.do(ctx, req)
	if err != nil {
		return nil, err
	}
	return decodeEnvelope(data)
}
