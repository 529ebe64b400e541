package brand

import (
	"context"
	"errors"

	"go-yacht-cms/pkg/utils"
)

type BrandService interface {
	CreateBrand(ctx context.Context, b *Brand) error
	GetBrand(ctx context.Context, id string) (*Brand, error)
	ListBrands(ctx context.Context) ([]Brand, error)
	DeleteBrand(ctx context.Context, id string) error
	CreateModel(ctx context.Context, m *Model) error
	GetModel(ctx context.Context, id string) (*Model, error)
	ListModels(ctx context.Context, brandID string) ([]Model, error)
	DeleteModel(ctx context.Context, id string) error
	BrandRef(ctx context.Context, id string) *Ref
	ModelRef(ctx context.Context, id string) *Ref
}

type BrandServiceImpl struct {
	Repo BrandRepository
}

func NewBrandService(repo BrandRepository) BrandService {
	return &BrandServiceImpl{Repo: repo}
}

func (s *BrandServiceImpl) CreateBrand(ctx context.Context, b *Brand) error {
	if b.Name == "" {
		return errors.New("brand name is required")
	}
	b.Slug = utils.Slugify(b.Name)
	return s.Repo.CreateBrand(ctx, b)
}

func (s *BrandServiceImpl) GetBrand(ctx context.Context, id string) (*Brand, error) {
	return s.Repo.GetBrand(ctx, id)
}

func (s *BrandServiceImpl) ListBrands(ctx context.Context) ([]Brand, error) {
	return s.Repo.ListBrands(ctx)
}

func (s *BrandServiceImpl) DeleteBrand(ctx context.Context, id string) error {
	return s.Repo.DeleteBrand(ctx, id)
}

func (s *BrandServiceImpl) CreateModel(ctx context.Context, m *Model) error {
	if m.Name == "" {
		return errors.New("model name is required")
	}
	if m.BrandID.IsZero() {
		return errors.New("model brand is required")
	}
	m.Slug = utils.Slugify(m.Name)
	return s.Repo.CreateModel(ctx, m)
}

func (s *BrandServiceImpl) GetModel(ctx context.Context, id string) (*Model, error) {
	return s.Repo.GetModel(ctx, id)
}

func (s *BrandServiceImpl) ListModels(ctx context.Context, brandID string) ([]Model, error) {
	return s.Repo.ListModels(ctx, brandID)
}

func (s *BrandServiceImpl) DeleteModel(ctx context.Context, id string) error {
	return s.Repo.DeleteModel(ctx, id)
}

// BrandRef resolves the denormalized payload snapshot. The slug is re-derived
// from the name rather than trusted from storage. Missing brands yield nil.
func (s *BrandServiceImpl) BrandRef(ctx context.Context, id string) *Ref {
	if id == "" {
		return nil
	}
	b, err := s.Repo.GetBrand(ctx, id)
	if err != nil {
		return nil
	}
	return &Ref{ID: b.ID.Hex(), Name: b.Name, Slug: utils.Slugify(b.Name)}
}

func (s *BrandServiceImpl) ModelRef(ctx context.Context, id string) *Ref {
	if id == "" {
		return nil
	}
	m, err := s.Repo.GetModel(ctx, id)
	if err != nil {
		return nil
	}
	return &Ref{ID: m.ID.Hex(), Name: m.Name, Slug: utils.Slugify(m.Name)}
}
