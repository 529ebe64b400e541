package language

import (
	"context"
	"errors"
)

type LanguageService interface {
	CreateLanguage(ctx context.Context, lang *Language) error
	ListLanguages(ctx context.Context) ([]Language, error)
	ListActiveLanguages(ctx context.Context) ([]Language, error)
	DefaultLanguage(ctx context.Context) (*Language, error)
	UpdateLanguage(ctx context.Context, id string, updates map[string]interface{}) error
	DeleteLanguage(ctx context.Context, id string) error
}

type LanguageServiceImpl struct {
	Repo LanguageRepository
}

func NewLanguageService(repo LanguageRepository) LanguageService {
	return &LanguageServiceImpl{Repo: repo}
}

func (s *LanguageServiceImpl) CreateLanguage(ctx context.Context, lang *Language) error {
	if lang.Code == "" || lang.Name == "" {
		return errors.New("language code and name are required")
	}
	if _, err := s.Repo.FindByCode(ctx, lang.Code); err == nil {
		return errors.New("language with this code already exists")
	}
	return s.Repo.Create(ctx, lang)
}

func (s *LanguageServiceImpl) ListLanguages(ctx context.Context) ([]Language, error) {
	return s.Repo.List(ctx)
}

func (s *LanguageServiceImpl) ListActiveLanguages(ctx context.Context) ([]Language, error) {
	return s.Repo.ListActive(ctx)
}

// DefaultLanguage returns the canonical language. With no explicit default
// the first active language wins.
func (s *LanguageServiceImpl) DefaultLanguage(ctx context.Context) (*Language, error) {
	langs, err := s.Repo.ListActive(ctx)
	if err != nil {
		return nil, err
	}
	if len(langs) == 0 {
		return nil, errors.New("no languages configured")
	}
	for i := range langs {
		if langs[i].IsDefault {
			return &langs[i], nil
		}
	}
	return &langs[0], nil
}

func (s *LanguageServiceImpl) UpdateLanguage(ctx context.Context, id string, updates map[string]interface{}) error {
	return s.Repo.Update(ctx, id, updates)
}

func (s *LanguageServiceImpl) DeleteLanguage(ctx context.Context, id string) error {
	return s.Repo.Delete(ctx, id)
}
