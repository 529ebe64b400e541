package sync

import (
	"context"
	"errors"
	"testing"

	common_models "go-yacht-cms/internal/common/models"
	"go-yacht-cms/internal/features/content"
	"go-yacht-cms/internal/features/language"
	"go-yacht-cms/internal/features/schema"
	"go-yacht-cms/internal/features/site"
	"go-yacht-cms/internal/features/translator"

	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.uber.org/zap"
)

type fakeSiteService struct {
	site.SiteService
	sites   []site.SyncSite
	results map[string]string
}

func (f *fakeSiteService) ListActiveSites(ctx context.Context) ([]site.SyncSite, error) {
	return f.sites, nil
}

func (f *fakeSiteService) ListSites(ctx context.Context) ([]site.SyncSite, error) {
	return f.sites, nil
}

func (f *fakeSiteService) RecordSyncResult(ctx context.Context, id string, result string) error {
	if f.results == nil {
		f.results = map[string]string{}
	}
	f.results[id] = result
	return nil
}

type fakeContentRepo struct {
	content.ContentRepository
	published    map[common_models.ContentKind][]content.ContentItem
	deleted      map[common_models.ContentKind][]content.ContentItem
	brandFilters map[common_models.ContentKind][][]primitive.ObjectID
}

func (f *fakeContentRepo) ListPublished(ctx context.Context, kind common_models.ContentKind, brandIDs []primitive.ObjectID) ([]content.ContentItem, error) {
	if f.brandFilters == nil {
		f.brandFilters = map[common_models.ContentKind][][]primitive.ObjectID{}
	}
	f.brandFilters[kind] = append(f.brandFilters[kind], brandIDs)
	return f.published[kind], nil
}

func (f *fakeContentRepo) ListDeleted(ctx context.Context, kind common_models.ContentKind) ([]content.ContentItem, error) {
	return f.deleted[kind], nil
}

type fakeSchemaService struct {
	schema.FieldSchemaService
	fields map[common_models.ContentKind][]schema.FieldSchema
}

func (f *fakeSchemaService) ListFields(ctx context.Context, kind common_models.ContentKind) ([]schema.FieldSchema, error) {
	return f.fields[kind], nil
}

func (f *fakeSchemaService) BuildFieldConfig(ctx context.Context, kind common_models.ContentKind) ([]schema.FieldConfigDoc, error) {
	var docs []schema.FieldConfigDoc
	for _, fs := range f.fields[kind] {
		docs = append(docs, schema.FieldConfigDoc{FieldKey: fs.Key, FieldType: string(fs.Type)})
	}
	return docs, nil
}

type fakeLanguageService struct {
	language.LanguageService
	langs []language.Language
}

func (f *fakeLanguageService) ListActiveLanguages(ctx context.Context) ([]language.Language, error) {
	return f.langs, nil
}

type fakeProgressStore struct {
	results   []SiteResult
	progress  []int
	sites     []string
	completed bool
	total     int
}

func (f *fakeProgressStore) Init(ctx context.Context, token string, total int) error {
	f.total = total
	return nil
}

func (f *fakeProgressStore) SetCurrentSite(ctx context.Context, token, siteName string) error {
	f.sites = append(f.sites, siteName)
	return nil
}

func (f *fakeProgressStore) AppendResult(ctx context.Context, token string, result SiteResult, progress int) error {
	f.results = append(f.results, result)
	f.progress = append(f.progress, progress)
	return nil
}

func (f *fakeProgressStore) Complete(ctx context.Context, token string) error {
	f.completed = true
	return nil
}

func (f *fakeProgressStore) Get(ctx context.Context, token string) (*SyncProgress, error) {
	return &SyncProgress{Token: token, Results: f.results, Completed: f.completed}, nil
}

func (f *fakeProgressStore) EnsureIndexes(ctx context.Context) error { return nil }

type fakeSiteClient struct {
	configErr map[string]error
	batches   map[string][][]ItemDoc
}

func (f *fakeSiteClient) PushConfig(ctx context.Context, target *site.SyncSite, fields []schema.FieldConfigDoc) error {
	if f.configErr != nil {
		return f.configErr[target.Name]
	}
	return nil
}

func (f *fakeSiteClient) PushContent(ctx context.Context, target *site.SyncSite, items []ItemDoc) (*SyncResponse, error) {
	if f.batches == nil {
		f.batches = map[string][][]ItemDoc{}
	}
	f.batches[target.Name] = append(f.batches[target.Name], items)

	resp := &SyncResponse{}
	for _, item := range items {
		resp.Imported++
		resp.Results = append(resp.Results, ItemResult{ExternalID: item.ExternalID, Success: true})
	}
	return resp, nil
}

func newTestService(sites []site.SyncSite, repo *fakeContentRepo, client *fakeSiteClient, statusRepo *fakeStatusRepo, progress *fakeProgressStore) (*SyncServiceImpl, *fakeSiteService) {
	siteSvc := &fakeSiteService{sites: sites}
	svc := &SyncServiceImpl{
		SiteService:     siteSvc,
		ContentRepo:     repo,
		SchemaService:   &fakeSchemaService{fields: map[common_models.ContentKind][]schema.FieldSchema{}},
		LanguageService: &fakeLanguageService{langs: testLanguages()},
		StatusRepo:      statusRepo,
		Progress:        progress,
		Client:          client,
		Builder:         NewPayloadBuilder(&fakeMediaService{}, &fakeBrandService{}, translator.Noop{}, zap.NewNop()),
		Logger:          zap.NewNop(),
	}
	return svc, siteSvc
}

func publishedYacht(title string) content.ContentItem {
	return content.ContentItem{
		ID:    primitive.NewObjectID(),
		Kind:  common_models.ContentKindYacht,
		State: common_models.ContentStatePublished,
		Title: map[string]string{"en": title},
	}
}

func TestRunIsolatesSiteFailures(t *testing.T) {
	sites := []site.SyncSite{
		{ID: primitive.NewObjectID(), Name: "S1", IsActive: true},
		{ID: primitive.NewObjectID(), Name: "S2", IsActive: true},
		{ID: primitive.NewObjectID(), Name: "S3", IsActive: true},
	}
	repo := &fakeContentRepo{
		published: map[common_models.ContentKind][]content.ContentItem{
			common_models.ContentKindYacht: {publishedYacht("Blue Horizon")},
		},
	}
	client := &fakeSiteClient{
		configErr: map[string]error{"S2": errors.New("connection refused")},
	}
	progress := &fakeProgressStore{}
	svc, siteSvc := newTestService(sites, repo, client, &fakeStatusRepo{}, progress)

	svc.run(context.Background(), "tok", sites)

	if len(progress.results) != 3 {
		t.Fatalf("results = %d, want 3", len(progress.results))
	}
	wantOrder := []string{"S1", "S2", "S3"}
	for i, res := range progress.results {
		if res.Site != wantOrder[i] {
			t.Errorf("result %d site = %s, want %s", i, res.Site, wantOrder[i])
		}
	}
	if !progress.results[0].Success || progress.results[1].Success || !progress.results[2].Success {
		t.Errorf("success flags = %v %v %v, want true false true",
			progress.results[0].Success, progress.results[1].Success, progress.results[2].Success)
	}
	if !progress.completed {
		t.Error("run did not complete progress record")
	}
	if len(siteSvc.results) != 3 {
		t.Errorf("recorded %d site results, want 3", len(siteSvc.results))
	}
	// The failed site never received content.
	if len(client.batches["S2"]) != 0 {
		t.Error("content pushed to site with failed config push")
	}
	if len(client.batches["S1"]) == 0 || len(client.batches["S3"]) == 0 {
		t.Error("healthy sites did not receive content")
	}
}

func TestRunProgressGrowsMonotonically(t *testing.T) {
	sites := []site.SyncSite{
		{ID: primitive.NewObjectID(), Name: "S1"},
		{ID: primitive.NewObjectID(), Name: "S2"},
		{ID: primitive.NewObjectID(), Name: "S3"},
	}
	progress := &fakeProgressStore{}
	svc, _ := newTestService(sites, &fakeContentRepo{}, &fakeSiteClient{}, &fakeStatusRepo{}, progress)

	svc.run(context.Background(), "tok", sites)

	last := -1
	for i, pct := range progress.progress {
		if pct < last {
			t.Errorf("progress shrank at step %d: %d -> %d", i, last, pct)
		}
		last = pct
	}
	if last != 100 {
		t.Errorf("final progress = %d, want 100", last)
	}
}

func TestRunAppliesBrandFilterToYachtsOnly(t *testing.T) {
	filter := []primitive.ObjectID{primitive.NewObjectID()}
	sites := []site.SyncSite{
		{ID: primitive.NewObjectID(), Name: "S1", BrandFilter: filter},
	}
	repo := &fakeContentRepo{}
	svc, _ := newTestService(sites, repo, &fakeSiteClient{}, &fakeStatusRepo{}, &fakeProgressStore{})

	svc.run(context.Background(), "tok", sites)

	yachtCalls := repo.brandFilters[common_models.ContentKindYacht]
	if len(yachtCalls) != 1 || len(yachtCalls[0]) != 1 || yachtCalls[0][0] != filter[0] {
		t.Errorf("yacht brand filter = %v, want %v", yachtCalls, filter)
	}
	newsCalls := repo.brandFilters[common_models.ContentKindNews]
	if len(newsCalls) != 1 || newsCalls[0] != nil {
		t.Errorf("news brand filter = %v, want nil", newsCalls)
	}
}

func TestRunSkipsUnchangedItems(t *testing.T) {
	target := site.SyncSite{ID: primitive.NewObjectID(), Name: "S1"}
	item := publishedYacht("Blue Horizon")
	repo := &fakeContentRepo{
		published: map[common_models.ContentKind][]content.ContentItem{
			common_models.ContentKindYacht: {item},
		},
	}

	builder := NewPayloadBuilder(&fakeMediaService{}, &fakeBrandService{}, translator.Noop{}, zap.NewNop())
	hash := HashItemDoc(builder.Build(context.Background(), &item, nil, testLanguages()))

	statusRepo := &fakeStatusRepo{
		statuses: map[string]*SyncStatus{
			item.ID.Hex(): {Status: StatusSynced, ContentHash: hash},
		},
	}
	client := &fakeSiteClient{}
	svc, _ := newTestService([]site.SyncSite{target}, repo, client, statusRepo, &fakeProgressStore{})

	svc.run(context.Background(), "tok", []site.SyncSite{target})

	if len(client.batches["S1"]) != 0 {
		t.Error("unchanged item was pushed again")
	}
}

func TestRunPushesDeletedItemsAsTombstones(t *testing.T) {
	target := site.SyncSite{ID: primitive.NewObjectID(), Name: "S1"}
	gone := publishedYacht("Sold Away")
	gone.Deleted = true
	repo := &fakeContentRepo{
		deleted: map[common_models.ContentKind][]content.ContentItem{
			common_models.ContentKindYacht: {gone},
		},
	}
	client := &fakeSiteClient{}
	svc, _ := newTestService([]site.SyncSite{target}, repo, client, &fakeStatusRepo{}, &fakeProgressStore{})

	svc.run(context.Background(), "tok", []site.SyncSite{target})

	batches := client.batches["S1"]
	if len(batches) == 0 || len(batches[0]) != 1 {
		t.Fatalf("batches = %v, want one batch with one item", batches)
	}
	if !batches[0][0].Deleted {
		t.Error("deleted item pushed without tombstone flag")
	}
}

func TestStartRunRefusesConcurrentRuns(t *testing.T) {
	svc, _ := newTestService(nil, &fakeContentRepo{}, &fakeSiteClient{}, &fakeStatusRepo{}, &fakeProgressStore{})
	svc.running = 1

	if _, err := svc.StartRun(context.Background(), ""); !errors.Is(err, ErrRunInProgress) {
		t.Errorf("err = %v, want ErrRunInProgress", err)
	}
}

func TestNarrowLanguages(t *testing.T) {
	all := []language.Language{
		{Code: "en", IsDefault: true},
		{Code: "sl"},
		{Code: "de"},
	}

	got := narrowLanguages(all, []string{"sl"})
	if len(got) != 1 || got[0].Code != "sl" {
		t.Errorf("narrowed = %v, want [sl]", got)
	}

	if got := narrowLanguages(all, nil); len(got) != 3 {
		t.Errorf("empty subset should keep all languages, got %d", len(got))
	}

	// An unknown subset falls back to the full set rather than syncing nothing.
	if got := narrowLanguages(all, []string{"fr"}); len(got) != 3 {
		t.Errorf("unknown subset should fall back to all, got %d", len(got))
	}
}
