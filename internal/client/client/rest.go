package client

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/dmitrijs2005/postdesk/internal/client/models"
	"github.com/dmitrijs2005/postdesk/internal/common"
	"github.com/dmitrijs2005/postdesk/internal/logging"
	"github.com/go-resty/resty/v2"
	"github.com/goccy/go-json"
	"github.com/google/uuid"
)

const (
	pathCategories = "/categories"
	pathPreviews   = "/posts/preview"
	pathSearch     = "/posts/search/"
	pathPosts      = "/posts/"
	pathPost       = "/posts/{id}/"
	pathPresign    = "/posts/generate-presigned-url/"
)

// Options configures a RESTClient.
type Options struct {
	BaseURL string
	APIKey  string
	Timeout time.Duration
	Logger  logging.Logger
}

// RESTClient implements Client over HTTP.
type RESTClient struct {
	http   *resty.Client
	apiKey string
	log    logging.Logger
}

var _ Client = (*RESTClient)(nil)

func NewRESTClient(opts Options) *RESTClient {
	return NewRESTClientWithHTTP(resty.New(), opts)
}

// NewRESTClientWithHTTP builds a RESTClient on top of an existing resty client.
func NewRESTClientWithHTTP(h *resty.Client, opts Options) *RESTClient {
	log := opts.Logger
	if log == nil {
		log = logging.Nop()
	}

	h.SetBaseURL(opts.BaseURL).
		SetHeader("Accept", "application/json").
		SetJSONMarshaler(json.Marshal).
		SetJSONUnmarshaler(json.Unmarshal)
	if opts.Timeout > 0 {
		h.SetTimeout(opts.Timeout)
	}

	c := &RESTClient{http: h, apiKey: opts.APIKey, log: log}
	h.OnBeforeRequest(c.tagRequest)
	h.OnAfterResponse(c.logResponse)
	return c
}

func (c *RESTClient) tagRequest(_ *resty.Client, r *resty.Request) error {
	if r.Header.Get(common.RequestIDHeaderName) == "" {
		r.SetHeader(common.RequestIDHeaderName, uuid.NewString())
	}
	return nil
}

func (c *RESTClient) logResponse(_ *resty.Client, resp *resty.Response) error {
	c.log.Debug(resp.Request.Context(), "api call",
		"method", resp.Request.Method,
		"url", resp.Request.URL,
		"status", resp.StatusCode(),
		"request_id", resp.Request.Header.Get(common.RequestIDHeaderName),
		"elapsed", resp.Time(),
	)
	return nil
}

// request starts a read-only call.
func (c *RESTClient) request(ctx context.Context) *resty.Request {
	return c.http.R().SetContext(ctx)
}

// authorized starts a mutating call; only these carry the API key.
func (c *RESTClient) authorized(ctx context.Context) *resty.Request {
	r := c.request(ctx)
	if c.apiKey != "" {
		r.SetHeader(common.APIKeyHeaderName, c.apiKey)
	}
	return r
}

// mapError classifies a resty outcome. kind is the taxonomy sentinel of the
// calling operation.
func (c *RESTClient) mapError(op string, kind error, resp *resty.Response, err error) error {
	if err != nil {
		if errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) {
			return fmt.Errorf("%s: %w: %w", op, kind, err)
		}
		return fmt.Errorf("%s: %w: %w: %w", op, kind, ErrUnavailable, err)
	}
	if resp.IsSuccess() {
		return nil
	}
	return &APIError{
		Op:         op,
		StatusCode: resp.StatusCode(),
		Message:    serverMessage(resp.Body()),
		Kind:       kind,
	}
}

func (c *RESTClient) ListCategories(ctx context.Context) ([]models.Category, error) {
	resp, err := c.request(ctx).Get(pathCategories)
	if err := c.mapError("list categories", common.ErrFetch, resp, err); err != nil {
		return nil, err
	}

	var out []models.Category
	if err := decodeList(resp.Body(), &out); err != nil {
		return nil, fmt.Errorf("list categories: %w: %w", common.ErrFetch, err)
	}
	return out, nil
}

func (c *RESTClient) ListPreviews(ctx context.Context, page, pageSize int) (*models.PreviewPage, error) {
	resp, err := c.request(ctx).
		SetQueryParam("page", strconv.Itoa(page)).
		SetQueryParam("page_size", strconv.Itoa(pageSize)).
		Get(pathPreviews)
	if err := c.mapError("list previews", common.ErrFetch, resp, err); err != nil {
		return nil, err
	}

	out := &models.PreviewPage{}
	if body := resp.Body(); len(strings.TrimSpace(string(body))) > 0 {
		if err := json.Unmarshal(body, out); err != nil {
			return nil, fmt.Errorf("list previews: %w: %w", common.ErrFetch, err)
		}
	}
	if out.Results == nil {
		out.Results = []models.PostPreview{}
	}
	return out, nil
}

// Search runs an unpaginated filtered search. The search text is also sent as
// a tags[] value so that posts tagged with the term match.
func (c *RESTClient) Search(ctx context.Context, q models.SearchQuery) ([]models.PostPreview, error) {
	r := c.request(ctx)
	if s := strings.TrimSpace(q.Search); s != "" {
		r.SetQueryParam("search", s)
		r.QueryParam.Add("tags[]", s)
	}
	if q.CategoryID != 0 {
		r.SetQueryParam("category", strconv.FormatInt(q.CategoryID, 10))
	}
	for _, t := range q.Tags {
		r.QueryParam.Add("tags[]", t)
	}

	resp, err := r.Get(pathSearch)
	if err := c.mapError("search posts", common.ErrFetch, resp, err); err != nil {
		return nil, err
	}

	out := []models.PostPreview{}
	if err := decodeList(resp.Body(), &out); err != nil {
		return nil, fmt.Errorf("search posts: %w: %w", common.ErrFetch, err)
	}
	return out, nil
}

func (c *RESTClient) GetPost(ctx context.Context, id models.ID) (*models.Post, error) {
	if id == "" {
		return nil, fmt.Errorf("get post: %w: %w", common.ErrFetch, ErrMissingID)
	}

	resp, err := c.request(ctx).SetPathParam("id", id.String()).Get(pathPost)
	if err := c.mapError("get post", common.ErrFetch, resp, err); err != nil {
		return nil, err
	}

	out := &models.Post{}
	if err := json.Unmarshal(resp.Body(), out); err != nil {
		return nil, fmt.Errorf("get post: %w: %w", common.ErrFetch, err)
	}
	return out, nil
}

func (c *RESTClient) CreatePost(ctx context.Context, p *models.PostPayload) (*models.Post, error) {
	resp, err := c.authorized(ctx).
		SetMultipartFields(multipartFields(p, false)...).
		Post(pathPosts)
	if err := c.mapError("create post", common.ErrMutation, resp, err); err != nil {
		return nil, err
	}
	return c.decodePost(ctx, "create post", resp.Body())
}

func (c *RESTClient) UpdatePost(ctx context.Context, id models.ID, p *models.PostPayload) (*models.Post, error) {
	if id == "" {
		return nil, fmt.Errorf("update post: %w: %w", common.ErrMutation, ErrMissingID)
	}

	resp, err := c.authorized(ctx).
		SetPathParam("id", id.String()).
		SetMultipartFields(multipartFields(p, true)...).
		Put(pathPost)
	if err := c.mapError("update post", common.ErrMutation, resp, err); err != nil {
		return nil, err
	}
	return c.decodePost(ctx, "update post", resp.Body())
}

// DeletePost succeeds only on 200 or 204.
func (c *RESTClient) DeletePost(ctx context.Context, id models.ID) error {
	if id == "" {
		return fmt.Errorf("delete post: %w: %w", common.ErrMutation, ErrMissingID)
	}

	resp, err := c.authorized(ctx).SetPathParam("id", id.String()).Delete(pathPost)
	if err := c.mapError("delete post", common.ErrMutation, resp, err); err != nil {
		return err
	}
	switch resp.StatusCode() {
	case http.StatusOK, http.StatusNoContent:
		return nil
	default:
		return &APIError{
			Op:         "delete post",
			StatusCode: resp.StatusCode(),
			Message:    "unexpected status " + resp.Status(),
			Kind:       common.ErrMutation,
		}
	}
}

type presignRequest struct {
	FileName string `json:"file_name"`
	FileType string `json:"file_type"`
}

type presignResponse struct {
	URL string `json:"url"`
}

// PresignUpload asks the API for a URL that accepts one PUT of fileName.
func (c *RESTClient) PresignUpload(ctx context.Context, fileName, fileType string) (string, error) {
	resp, err := c.authorized(ctx).
		SetHeader("Content-Type", "application/json").
		SetBody(presignRequest{FileName: fileName, FileType: fileType}).
		Post(pathPresign)
	if err := c.mapError("presign upload", common.ErrSigning, resp, err); err != nil {
		return "", err
	}

	var out presignResponse
	if err := json.Unmarshal(resp.Body(), &out); err != nil {
		return "", fmt.Errorf("presign upload: %w: %w", common.ErrSigning, err)
	}
	if strings.TrimSpace(out.URL) == "" {
		return "", fmt.Errorf("presign upload: %w: empty url in response", common.ErrSigning)
	}
	return out.URL, nil
}

// multipartFields encodes p as form fields. On update, empty collections and
// a missing video are sent as a single empty value so the server clears them.
func multipartFields(p *models.PostPayload, update bool) []*resty.MultipartField {
	if p == nil {
		p = &models.PostPayload{}
	}

	fields := []*resty.MultipartField{
		value(models.FieldTitle, p.Title),
		value(models.FieldBody, p.Body),
	}

	for _, t := range p.Tags {
		fields = append(fields, value(models.FieldTags, t))
	}
	if update && len(p.Tags) == 0 {
		fields = append(fields, value(models.FieldTags, ""))
	}

	for _, id := range p.CategoryIDs {
		fields = append(fields, value(models.FieldCategoryIDs, strconv.FormatInt(id, 10)))
	}
	if update && len(p.CategoryIDs) == 0 {
		fields = append(fields, value(models.FieldCategoryIDs, ""))
	}

	switch {
	case p.Image == models.ImageReplace && p.ImageFile != nil:
		fields = append(fields, &resty.MultipartField{
			Param:       models.FieldFeaturedImage,
			FileName:    p.ImageFile.Name,
			ContentType: p.ImageFile.ContentType,
			Reader:      p.ImageFile.Reader,
		})
	case p.Image == models.ImageClear && update:
		fields = append(fields, value(models.FieldFeaturedImage, ""))
	}

	if p.VideoKey != "" {
		fields = append(fields, value(models.FieldFeaturedVideo, p.VideoKey))
	} else if update {
		fields = append(fields, value(models.FieldFeaturedVideo, ""))
	}

	return fields
}

func value(param, v string) *resty.MultipartField {
	return &resty.MultipartField{
		Param:       param,
		ContentType: "text/plain; charset=utf-8",
		Reader:      strings.NewReader(v),
	}
}

// decodeList accepts either a bare JSON array or an object with a "results"
// array. An empty body decodes to nothing.
func decodeList[T any](body []byte, out *[]T) error {
	trimmed := strings.TrimSpace(string(body))
	if trimmed == "" || trimmed == "null" {
		return nil
	}
	if trimmed[0] == '[' {
		return json.Unmarshal(body, out)
	}

	var wrapped struct {
		Results []T `json:"results"`
	}
	if err := json.Unmarshal(body, &wrapped); err != nil {
		return err
	}
	if wrapped.Results != nil {
		*out = wrapped.Results
	}
	return nil
}

// decodePost returns the post echoed by a create/update call. An empty or
// non-JSON body yields an empty post; JSON that is not a post is an error.
func (c *RESTClient) decodePost(ctx context.Context, op string, body []byte) (*models.Post, error) {
	out := &models.Post{}
	body = bytes.TrimSpace(body)
	if len(body) == 0 {
		return out, nil
	}
	if !json.Valid(body) {
		c.log.Warn(ctx, "response body is not json, post not echoed", "op", op, "size", len(body))
		return out, nil
	}
	if err := json.Unmarshal(body, out); err != nil {
		return nil, fmt.Errorf("%s: %w: decode response: %w", op, common.ErrMutation, err)
	}
	return out, nil
}
