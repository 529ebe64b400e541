package media

import (
	"context"
	"errors"

	common_models "go-yacht-cms/internal/common/models"
)

type MediaService interface {
	RegisterMedia(ctx context.Context, file *MediaFile) error
	ListForItem(ctx context.Context, kind common_models.ContentKind, itemID string) ([]*MediaFile, error)
	GetMediaURLs(ctx context.Context, kind common_models.ContentKind, itemID, collection string) ([]string, error)
	GetFirstMediaURL(ctx context.Context, kind common_models.ContentKind, itemID, collection string) (string, error)
	DeleteMedia(ctx context.Context, id string) error
}

type MediaServiceImpl struct {
	Repo MediaRepository
}

func NewMediaService(repo MediaRepository) MediaService {
	return &MediaServiceImpl{Repo: repo}
}

func (s *MediaServiceImpl) RegisterMedia(ctx context.Context, file *MediaFile) error {
	if file.URL == "" || file.Collection == "" {
		return errors.New("media url and collection are required")
	}
	if !file.ItemKind.Valid() {
		return errors.New("unknown item kind")
	}
	return s.Repo.Save(ctx, file)
}

func (s *MediaServiceImpl) ListForItem(ctx context.Context, kind common_models.ContentKind, itemID string) ([]*MediaFile, error) {
	return s.Repo.FindByItem(ctx, kind, itemID)
}

// GetMediaURLs returns the collection's URLs in the user-assigned order.
func (s *MediaServiceImpl) GetMediaURLs(ctx context.Context, kind common_models.ContentKind, itemID, collection string) ([]string, error) {
	files, err := s.Repo.FindByCollection(ctx, kind, itemID, collection)
	if err != nil {
		return nil, err
	}

	urls := make([]string, 0, len(files))
	for _, f := range files {
		urls = append(urls, f.URL)
	}
	return urls, nil
}

func (s *MediaServiceImpl) GetFirstMediaURL(ctx context.Context, kind common_models.ContentKind, itemID, collection string) (string, error) {
	urls, err := s.GetMediaURLs(ctx, kind, itemID, collection)
	if err != nil {
		return "", err
	}
	if len(urls) == 0 {
		return "", nil
	}
	return urls[0], nil
}

func (s *MediaServiceImpl) DeleteMedia(ctx context.Context, id string) error {
	return s.Repo.Delete(ctx, id)
}
