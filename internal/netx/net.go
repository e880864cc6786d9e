// Package netx talks to object storage through pre-signed URLs and derives
// durable object references from them.
package netx

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/dmitrijs2005/postdesk/internal/common"
	"github.com/go-resty/resty/v2"
)

// Uploader performs direct PUTs of raw bytes to pre-signed URLs. It never
// sends the API key: the signed URL is the only credential.
type Uploader struct {
	http *resty.Client
}

// NewUploader returns an Uploader; a zero timeout keeps the transport default.
func NewUploader(timeout time.Duration) *Uploader {
	c := resty.New()
	if timeout > 0 {
		c.SetTimeout(timeout)
	}
	return NewUploaderWithClient(c)
}

// NewUploaderWithClient wraps an existing resty client.
func NewUploaderWithClient(c *resty.Client) *Uploader {
	c.SetPreRequestHook(applyContentLength)
	return &Uploader{http: c}
}

// applyContentLength copies an explicit Content-Length header onto the raw
// request. Object stores reject chunked PUTs to signed URLs.
func applyContentLength(_ *resty.Client, r *http.Request) error {
	if r.ContentLength > 0 {
		return nil
	}
	if v := r.Header.Get("Content-Length"); v != "" {
		if n, err := strconv.ParseInt(v, 10, 64); err == nil {
			r.ContentLength = n
		}
	}
	return nil
}

// Put uploads body to url with the given content type. size may be zero when
// unknown. Any transport failure or non-2xx response wraps common.ErrUpload.
func (u *Uploader) Put(ctx context.Context, url string, body io.Reader, size int64, contentType string) error {
	req := u.http.R().
		SetContext(ctx).
		SetHeader("Content-Type", contentType).
		SetBody(body)
	if size > 0 {
		req.SetHeader("Content-Length", strconv.FormatInt(size, 10))
	}

	resp, err := req.Put(url)
	if err != nil {
		return fmt.Errorf("%w: %w", common.ErrUpload, err)
	}
	if !resp.IsSuccess() {
		return fmt.Errorf("%w: %s; body: %s", common.ErrUpload, resp.Status(), strings.TrimSpace(string(resp.Body())))
	}
	return nil
}

// StripQuery drops the query string of a signed URL. The remainder names the
// stored object; the query is a transient credential and is never kept.
func StripQuery(signedURL string) string {
	ref, _, _ := strings.Cut(signedURL, "?")
	return ref
}

// ObjectKey returns the object key of a stored reference: everything after
// the host of an absolute URL, without the query string. References that are
// already bare keys are returned without a leading slash.
func ObjectKey(ref string) string {
	ref = StripQuery(strings.TrimSpace(ref))
	if _, rest, ok := strings.Cut(ref, "://"); ok {
		_, path, found := strings.Cut(rest, "/")
		if !found {
			return ""
		}
		return path
	}
	return strings.TrimPrefix(ref, "/")
}

// MediaURL resolves a stored reference for display: absolute URLs are kept,
// bare keys are joined onto base.
func MediaURL(ref, base string) string {
	if ref == "" || strings.Contains(ref, "://") || base == "" {
		return ref
	}
	return strings.TrimRight(base, "/") + "/" + strings.TrimLeft(ref, "/")
}
