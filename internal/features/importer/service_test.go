package importer

import (
	"context"
	"testing"

	"go-yacht-cms/internal/features/brand"
	"go-yacht-cms/internal/features/schema"
	"go-yacht-cms/internal/features/sync"

	"go.uber.org/zap"
)

type memStore struct {
	nextID      int64
	posts       map[string]*ImportedPost // keyed by external_id
	legacy      map[string]*ImportedPost
	meta        map[int64]map[string]string
	attachments map[string]int64
	terms       map[string]int64 // taxonomy|name
	assignments map[int64]map[string][]int64
	fields      map[string]RegisteredField
	updates     int
	upserts     int
}

func newMemStore() *memStore {
	return &memStore{
		posts:       map[string]*ImportedPost{},
		legacy:      map[string]*ImportedPost{},
		meta:        map[int64]map[string]string{},
		attachments: map[string]int64{},
		terms:       map[string]int64{},
		assignments: map[int64]map[string][]int64{},
		fields:      map[string]RegisteredField{},
	}
}

func (m *memStore) Enabled() bool                      { return true }
func (m *memStore) EnsureSchema(context.Context) error { return nil }

func (m *memStore) RegisterField(ctx context.Context, field RegisteredField) error {
	m.fields[field.FieldKey] = field
	return nil
}

func (m *memStore) FindPost(ctx context.Context, externalID, slug string) (*ImportedPost, error) {
	if p, ok := m.posts[externalID]; ok {
		return p, nil
	}
	if p, ok := m.legacy[externalID]; ok {
		return p, nil
	}
	for _, p := range m.posts {
		if slug != "" && p.Slug == slug {
			return p, nil
		}
	}
	return nil, nil
}

func (m *memStore) UpsertPost(ctx context.Context, post *ImportedPost) (int64, error) {
	m.upserts++
	if existing, ok := m.posts[post.ExternalID]; ok {
		existing.Kind = post.Kind
		existing.Slug = post.Slug
		existing.Deleted = post.Deleted
		return existing.ID, nil
	}
	m.nextID++
	stored := *post
	stored.ID = m.nextID
	m.posts[post.ExternalID] = &stored
	return stored.ID, nil
}

func (m *memStore) UpdatePost(ctx context.Context, post *ImportedPost) error {
	m.updates++
	for key, p := range m.posts {
		if p.ID == post.ID {
			delete(m.posts, key)
			break
		}
	}
	for key, p := range m.legacy {
		if p.ID == post.ID {
			delete(m.legacy, key)
			break
		}
	}
	stored := *post
	m.posts[post.ExternalID] = &stored
	return nil
}

func (m *memStore) MarkPostDeleted(ctx context.Context, postID int64) error {
	for _, p := range m.posts {
		if p.ID == postID {
			p.Deleted = true
		}
	}
	return nil
}

func (m *memStore) SetMeta(ctx context.Context, postID int64, key, value string) error {
	if m.meta[postID] == nil {
		m.meta[postID] = map[string]string{}
	}
	m.meta[postID][key] = value
	return nil
}

func (m *memStore) FindOrCreateAttachment(ctx context.Context, sourceURL string) (int64, error) {
	if id, ok := m.attachments[sourceURL]; ok {
		return id, nil
	}
	m.nextID++
	m.attachments[sourceURL] = m.nextID
	return m.nextID, nil
}

func (m *memStore) FindOrCreateTerm(ctx context.Context, taxonomy, name, slug string) (int64, error) {
	key := taxonomy + "|" + name
	if id, ok := m.terms[key]; ok {
		return id, nil
	}
	m.nextID++
	m.terms[key] = m.nextID
	return m.nextID, nil
}

func (m *memStore) ReplaceTermAssignments(ctx context.Context, postID int64, taxonomy string, termIDs []int64) error {
	if m.assignments[postID] == nil {
		m.assignments[postID] = map[string][]int64{}
	}
	m.assignments[postID][taxonomy] = termIDs
	return nil
}

func yachtDoc(externalID string) sync.ItemDoc {
	return sync.ItemDoc{
		ExternalID: externalID,
		Kind:       "yacht",
		Slug:       "blue-horizon",
		Translations: map[string]sync.TranslationDoc{
			"en": {Title: "Blue Horizon", CustomFields: map[string]interface{}{"length": "14"}},
		},
		Media: map[string]interface{}{
			"gallery": []interface{}{"https://cdn/a.jpg", "https://cdn/b.jpg"},
		},
		Brand: &brand.Ref{Name: "Beneteau", Slug: "beneteau"},
	}
}

func TestImportIsIdempotent(t *testing.T) {
	store := newMemStore()
	svc := NewImporterService(store, zap.NewNop())

	doc := yachtDoc("yacht-abc123")
	for i := 0; i < 3; i++ {
		resp, err := svc.ImportItems(context.Background(), []sync.ItemDoc{doc})
		if err != nil {
			t.Fatalf("pass %d: %v", i, err)
		}
		if resp.Imported != 1 || resp.Failed != 0 {
			t.Fatalf("pass %d: imported=%d failed=%d", i, resp.Imported, resp.Failed)
		}
	}

	if len(store.posts) != 1 {
		t.Errorf("posts = %d, want 1 after repeated pushes", len(store.posts))
	}
	// Repeated pushes reuse attachment rows keyed by source URL.
	if len(store.attachments) != 2 {
		t.Errorf("attachments = %d, want 2", len(store.attachments))
	}
	if len(store.terms) != 1 {
		t.Errorf("terms = %d, want 1", len(store.terms))
	}
}

func TestImportStoresLocalePrefixedMeta(t *testing.T) {
	store := newMemStore()
	svc := NewImporterService(store, zap.NewNop())

	doc := yachtDoc("yacht-abc123")
	doc.Translations["sl"] = sync.TranslationDoc{
		Title:        "Modri horizont",
		CustomFields: map[string]interface{}{"length": "14", "video_url_2": ""},
	}

	if _, err := svc.ImportItems(context.Background(), []sync.ItemDoc{doc}); err != nil {
		t.Fatal(err)
	}

	meta := store.meta[store.posts["yacht-abc123"].ID]
	if meta["en_title"] != "Blue Horizon" {
		t.Errorf("en_title = %q", meta["en_title"])
	}
	if meta["sl_title"] != "Modri horizont" {
		t.Errorf("sl_title = %q", meta["sl_title"])
	}
	if meta["sl_length"] != "14" {
		t.Errorf("sl_length = %q", meta["sl_length"])
	}
	// Cleared repeater slots are written as empty, not dropped.
	if v, ok := meta["sl_video_url_2"]; !ok || v != "" {
		t.Errorf("sl_video_url_2 = %q, %v; want explicit empty", v, ok)
	}
}

func TestImportAdoptsLegacyRows(t *testing.T) {
	store := newMemStore()
	store.nextID = 10
	store.legacy["old-key-77"] = &ImportedPost{ID: 10, ExternalID: "", LegacyExternalID: "old-key-77", Slug: "blue-horizon"}
	svc := NewImporterService(store, zap.NewNop())

	// New-style push carries the legacy key as its external id because the
	// master kept it during migration.
	doc := yachtDoc("old-key-77")
	if _, err := svc.ImportItems(context.Background(), []sync.ItemDoc{doc}); err != nil {
		t.Fatal(err)
	}

	if store.updates != 1 {
		t.Errorf("updates = %d, want 1 (legacy row adopted, not duplicated)", store.updates)
	}
	if store.upserts != 0 {
		t.Errorf("upserts = %d, want 0", store.upserts)
	}
	adopted := store.posts["old-key-77"]
	if adopted == nil || adopted.ID != 10 {
		t.Fatalf("legacy row not adopted: %+v", adopted)
	}
}

func TestImportMatchesBySlugAsLastResort(t *testing.T) {
	store := newMemStore()
	store.nextID = 20
	store.posts["stale-external"] = &ImportedPost{ID: 20, ExternalID: "stale-external", Slug: "blue-horizon"}
	svc := NewImporterService(store, zap.NewNop())

	doc := yachtDoc("yacht-fresh")
	if _, err := svc.ImportItems(context.Background(), []sync.ItemDoc{doc}); err != nil {
		t.Fatal(err)
	}

	if store.updates != 1 {
		t.Errorf("updates = %d, want 1 (slug match rewrites the row)", store.updates)
	}
	if got := store.posts["yacht-fresh"]; got == nil || got.ID != 20 {
		t.Fatalf("slug-matched row not rewritten: %+v", got)
	}
}

func TestImportDeletedTombstone(t *testing.T) {
	store := newMemStore()
	svc := NewImporterService(store, zap.NewNop())

	doc := yachtDoc("yacht-abc123")
	if _, err := svc.ImportItems(context.Background(), []sync.ItemDoc{doc}); err != nil {
		t.Fatal(err)
	}

	doc.Deleted = true
	resp, err := svc.ImportItems(context.Background(), []sync.ItemDoc{doc})
	if err != nil {
		t.Fatal(err)
	}
	if resp.Imported != 1 {
		t.Errorf("imported = %d, want 1", resp.Imported)
	}
	if !store.posts["yacht-abc123"].Deleted {
		t.Error("post not tombstoned")
	}

	// A tombstone for an item never imported here is a no-op, not an error.
	unknown := yachtDoc("yacht-never-seen")
	unknown.Deleted = true
	resp, err = svc.ImportItems(context.Background(), []sync.ItemDoc{unknown})
	if err != nil || resp.Failed != 0 {
		t.Errorf("unknown tombstone: err=%v failed=%d", err, resp.Failed)
	}
}

func TestImportReassignsTermsEveryPush(t *testing.T) {
	store := newMemStore()
	svc := NewImporterService(store, zap.NewNop())

	doc := yachtDoc("yacht-abc123")
	if _, err := svc.ImportItems(context.Background(), []sync.ItemDoc{doc}); err != nil {
		t.Fatal(err)
	}

	postID := store.posts["yacht-abc123"].ID
	if got := store.assignments[postID][TaxonomyBrand]; len(got) != 1 {
		t.Fatalf("brand assignments = %v, want one term", got)
	}

	// Dropping the brand upstream removes the assignment remotely.
	doc.Brand = nil
	if _, err := svc.ImportItems(context.Background(), []sync.ItemDoc{doc}); err != nil {
		t.Fatal(err)
	}
	if got := store.assignments[postID][TaxonomyBrand]; len(got) != 0 {
		t.Errorf("brand assignments after removal = %v, want none", got)
	}
}

func TestApplyConfigRegistersFields(t *testing.T) {
	store := newMemStore()
	svc := NewImporterService(store, zap.NewNop())

	fields := []schema.FieldConfigDoc{
		{FieldKey: "length", FieldType: "number", Label: "Length (m)"},
		{FieldKey: "fuel_type", FieldType: "select", Label: "Fuel type"},
	}
	if err := svc.ApplyConfig(context.Background(), fields); err != nil {
		t.Fatal(err)
	}

	if len(store.fields) != 2 {
		t.Fatalf("registered %d fields, want 2", len(store.fields))
	}
	if store.fields["length"].FieldType != "number" {
		t.Errorf("length field type = %q", store.fields["length"].FieldType)
	}
}
