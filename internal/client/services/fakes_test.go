package services

import (
	"context"
	"sync"

	"github.com/dmitrijs2005/postdesk/internal/client/client"
	"github.com/dmitrijs2005/postdesk/internal/client/models"
)

/*************
 * Fake API client
 *************/

type fakeClient struct {
	mu sync.Mutex

	categories    []models.Category
	categoriesErr error

	// previews is consulted per call; previewsHook, when set, runs first.
	previews     map[int]*models.PreviewPage
	previewsErr  error
	previewsHook func(page int)

	searchResults []models.PostPreview
	searchErr     error

	post    *models.Post
	postErr error

	createErr error
	updateErr error
	deleteErr error

	previewCalls []int
	searchCalls  []models.SearchQuery
	getCalls     []models.ID
	createCalls  []*models.PostPayload
	updateCalls  []models.ID
	updateBodies []*models.PostPayload
	deleteCalls  []models.ID
}

var _ client.Client = (*fakeClient)(nil)

func (f *fakeClient) ListCategories(ctx context.Context) ([]models.Category, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.categories, f.categoriesErr
}

func (f *fakeClient) ListPreviews(ctx context.Context, page, pageSize int) (*models.PreviewPage, error) {
	f.mu.Lock()
	hook := f.previewsHook
	f.previewCalls = append(f.previewCalls, page)
	f.mu.Unlock()

	if hook != nil {
		hook(page)
	}

	f.mu.Lock()
	defer f.mu.Unlock()
	if f.previewsErr != nil {
		return nil, f.previewsErr
	}
	if p, ok := f.previews[page]; ok {
		return p, nil
	}
	return &models.PreviewPage{Results: []models.PostPreview{}}, nil
}

func (f *fakeClient) Search(ctx context.Context, q models.SearchQuery) ([]models.PostPreview, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.searchCalls = append(f.searchCalls, q)
	return f.searchResults, f.searchErr
}

func (f *fakeClient) GetPost(ctx context.Context, id models.ID) (*models.Post, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.getCalls = append(f.getCalls, id)
	return f.post, f.postErr
}

func (f *fakeClient) CreatePost(ctx context.Context, p *models.PostPayload) (*models.Post, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.createCalls = append(f.createCalls, p)
	if f.createErr != nil {
		return nil, f.createErr
	}
	return &models.Post{ID: "new", Title: p.Title}, nil
}

func (f *fakeClient) UpdatePost(ctx context.Context, id models.ID, p *models.PostPayload) (*models.Post, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.updateCalls = append(f.updateCalls, id)
	f.updateBodies = append(f.updateBodies, p)
	if f.updateErr != nil {
		return nil, f.updateErr
	}
	return &models.Post{ID: id, Title: p.Title}, nil
}

func (f *fakeClient) DeletePost(ctx context.Context, id models.ID) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.deleteCalls = append(f.deleteCalls, id)
	return f.deleteErr
}

func (f *fakeClient) PresignUpload(ctx context.Context, fileName, fileType string) (string, error) {
	return "https://bucket.s3.amazonaws.com/videos/" + fileName + "?X-Amz-Signature=abc", nil
}

func (f *fakeClient) mutations() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return len(f.createCalls) + len(f.updateCalls)
}

func previews(ids ...string) []models.PostPreview {
	out := make([]models.PostPreview, 0, len(ids))
	for _, id := range ids {
		out = append(out, models.PostPreview{ID: models.ID(id), Title: "post " + id})
	}
	return out
}
