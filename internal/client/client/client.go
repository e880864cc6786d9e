package client

import (
	"context"

	"github.com/dmitrijs2005/postdesk/internal/client/models"
)

// Client is the contract of the blog REST API as seen by PostDesk.
type Client interface {
	ListCategories(ctx context.Context) ([]models.Category, error)
	ListPreviews(ctx context.Context, page, pageSize int) (*models.PreviewPage, error)
	Search(ctx context.Context, q models.SearchQuery) ([]models.PostPreview, error)
	GetPost(ctx context.Context, id models.ID) (*models.Post, error)
	CreatePost(ctx context.Context, p *models.PostPayload) (*models.Post, error)
	UpdatePost(ctx context.Context, id models.ID, p *models.PostPayload) (*models.Post, error)
	DeletePost(ctx context.Context, id models.ID) error
	PresignUpload(ctx context.Context, fileName, fileType string) (string, error)
}
