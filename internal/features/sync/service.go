package sync

import (
	"context"
	"errors"
	"fmt"
	"sync/atomic"

	common_models "go-yacht-cms/internal/common/models"
	"go-yacht-cms/internal/features/content"
	"go-yacht-cms/internal/features/language"
	"go-yacht-cms/internal/features/schema"
	"go-yacht-cms/internal/features/site"

	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.uber.org/zap"
)

// ErrRunInProgress is returned when a run is requested while another one is
// still draining. Runs are strictly single-flight: overlapping pushes to the
// same remote would interleave and corrupt the per-site result order.
var ErrRunInProgress = errors.New("a sync run is already in progress")

var syncedKinds = []common_models.ContentKind{
	common_models.ContentKindYacht,
	common_models.ContentKindNews,
}

type SyncService interface {
	// StartRun kicks off a background run over all active sites, or a
	// single site when siteID is non-empty, and returns the progress token.
	StartRun(ctx context.Context, siteID string) (string, error)
	// RunBlocking performs a full run synchronously. Used by the scheduler.
	RunBlocking(ctx context.Context, token string) error
	GetProgress(ctx context.Context, token string) (*SyncProgress, error)
	ListStatus(ctx context.Context, siteID string, status Status, limit int64) ([]SyncStatus, error)
	StatusSummary(ctx context.Context) ([]StatusSummary, error)
}

type SyncServiceImpl struct {
	SiteService     site.SiteService
	ContentRepo     content.ContentRepository
	SchemaService   schema.FieldSchemaService
	LanguageService language.LanguageService
	StatusRepo      SyncStatusRepository
	Progress        ProgressStore
	Client          SiteClient
	Builder         PayloadBuilder
	Logger          *zap.Logger

	running int32
}

func NewSyncService(
	siteService site.SiteService,
	contentRepo content.ContentRepository,
	schemaService schema.FieldSchemaService,
	languageService language.LanguageService,
	statusRepo SyncStatusRepository,
	progress ProgressStore,
	client SiteClient,
	builder PayloadBuilder,
	logger *zap.Logger,
) SyncService {
	return &SyncServiceImpl{
		SiteService:     siteService,
		ContentRepo:     contentRepo,
		SchemaService:   schemaService,
		LanguageService: languageService,
		StatusRepo:      statusRepo,
		Progress:        progress,
		Client:          client,
		Builder:         builder,
		Logger:          logger,
	}
}

func (s *SyncServiceImpl) StartRun(ctx context.Context, siteID string) (string, error) {
	if !atomic.CompareAndSwapInt32(&s.running, 0, 1) {
		return "", ErrRunInProgress
	}

	token := primitive.NewObjectID().Hex()

	sites, err := s.resolveSites(ctx, siteID)
	if err != nil {
		atomic.StoreInt32(&s.running, 0)
		return "", err
	}
	if err := s.Progress.Init(ctx, token, len(sites)); err != nil {
		atomic.StoreInt32(&s.running, 0)
		return "", err
	}

	// Run detached from the request context so a disconnected admin client
	// does not abort pushes mid-site.
	go func() {
		defer atomic.StoreInt32(&s.running, 0)
		s.run(context.Background(), token, sites)
	}()

	return token, nil
}

func (s *SyncServiceImpl) RunBlocking(ctx context.Context, token string) error {
	if !atomic.CompareAndSwapInt32(&s.running, 0, 1) {
		return ErrRunInProgress
	}
	defer atomic.StoreInt32(&s.running, 0)

	sites, err := s.resolveSites(ctx, "")
	if err != nil {
		return err
	}
	if err := s.Progress.Init(ctx, token, len(sites)); err != nil {
		return err
	}
	s.run(ctx, token, sites)
	return nil
}

func (s *SyncServiceImpl) resolveSites(ctx context.Context, siteID string) ([]site.SyncSite, error) {
	if siteID != "" {
		target, err := s.SiteService.GetSite(ctx, siteID)
		if err != nil {
			return nil, err
		}
		return []site.SyncSite{*target}, nil
	}
	return s.SiteService.ListActiveSites(ctx)
}

// run walks the sites strictly in order. One site's failure is recorded and
// the loop moves on; it never aborts the run.
func (s *SyncServiceImpl) run(ctx context.Context, token string, sites []site.SyncSite) {
	log := s.Logger.With(zap.String("run_token", token))
	log.Info("sync run started", zap.Int("sites", len(sites)))

	langs, err := s.LanguageService.ListActiveLanguages(ctx)
	if err != nil {
		log.Error("failed to load languages, aborting run", zap.Error(err))
		_ = s.Progress.Complete(ctx, token)
		return
	}

	for i, target := range sites {
		if err := s.Progress.SetCurrentSite(ctx, token, target.Name); err != nil {
			log.Warn("progress update failed", zap.Error(err))
		}

		result := s.syncSite(ctx, &target, langs, log.With(zap.String("site", target.Name)))

		pct := (i + 1) * 100 / len(sites)
		if err := s.Progress.AppendResult(ctx, token, result, pct); err != nil {
			log.Warn("progress update failed", zap.Error(err))
		}
		if err := s.SiteService.RecordSyncResult(ctx, target.ID.Hex(), result.Message); err != nil {
			log.Warn("failed to record site result", zap.Error(err))
		}
	}

	if err := s.Progress.Complete(ctx, token); err != nil {
		log.Warn("failed to mark run completed", zap.Error(err))
	}
	log.Info("sync run finished")
}

// syncSite pushes to a single remote: field configuration first, then
// content per kind. A config failure is terminal for the site because the
// remote cannot map fields it has never seen.
func (s *SyncServiceImpl) syncSite(ctx context.Context, target *site.SyncSite, allLangs []language.Language, log *zap.Logger) SiteResult {
	langs := narrowLanguages(allLangs, target.Languages)

	for _, kind := range syncedKinds {
		fields, err := s.SchemaService.BuildFieldConfig(ctx, kind)
		if err != nil {
			log.Error("failed to build field config", zap.String("kind", string(kind)), zap.Error(err))
			return SiteResult{Site: target.Name, Success: false, Message: fmt.Sprintf("config build failed: %v", err)}
		}
		if err := s.Client.PushConfig(ctx, target, fields); err != nil {
			log.Error("config push failed", zap.String("kind", string(kind)), zap.Error(err))
			return SiteResult{Site: target.Name, Success: false, Message: fmt.Sprintf("config push failed: %v", err)}
		}
	}

	var imported, failed, skipped int
	for _, kind := range syncedKinds {
		i, f, sk, err := s.syncKind(ctx, target, kind, langs, log)
		imported += i
		failed += f
		skipped += sk
		if err != nil {
			log.Error("content push failed", zap.String("kind", string(kind)), zap.Error(err))
			return SiteResult{
				Site:    target.Name,
				Success: false,
				Message: fmt.Sprintf("content push failed: %v", err),
			}
		}
	}

	msg := fmt.Sprintf("synced %d items, %d failed, %d unchanged", imported, failed, skipped)
	log.Info("site sync done",
		zap.Int("imported", imported),
		zap.Int("failed", failed),
		zap.Int("skipped", skipped),
	)
	return SiteResult{Site: target.Name, Success: failed == 0, Message: msg}
}

func (s *SyncServiceImpl) syncKind(ctx context.Context, target *site.SyncSite, kind common_models.ContentKind, langs []language.Language, log *zap.Logger) (imported, failed, skipped int, err error) {
	fields, err := s.SchemaService.ListFields(ctx, kind)
	if err != nil {
		return 0, 0, 0, err
	}

	// The brand restriction applies to yachts only; news flows to every
	// site unfiltered.
	var brandIDs []primitive.ObjectID
	if kind == common_models.ContentKindYacht {
		brandIDs = target.BrandFilter
	}

	published, err := s.ContentRepo.ListPublished(ctx, kind, brandIDs)
	if err != nil {
		return 0, 0, 0, err
	}
	deleted, err := s.ContentRepo.ListDeleted(ctx, kind)
	if err != nil {
		return 0, 0, 0, err
	}
	items := append(published, deleted...)

	var docs []ItemDoc
	hashes := map[string]string{}
	ids := map[string]primitive.ObjectID{}

	for i := range items {
		item := &items[i]
		doc := s.Builder.Build(ctx, item, fields, langs)
		hash := HashItemDoc(doc)

		if s.isUnchanged(ctx, target.ID, kind, item.ID, hash) {
			skipped++
			continue
		}

		docs = append(docs, *doc)
		hashes[doc.ExternalID] = hash
		ids[doc.ExternalID] = item.ID
	}

	if len(docs) == 0 {
		return 0, 0, skipped, nil
	}

	resp, err := s.Client.PushContent(ctx, target, docs)
	if err != nil {
		for _, doc := range docs {
			if markErr := s.StatusRepo.MarkFailed(ctx, target.ID, kind, ids[doc.ExternalID], err.Error()); markErr != nil {
				log.Warn("failed to record sync failure", zap.Error(markErr))
			}
		}
		return 0, len(docs), skipped, err
	}

	for _, res := range resp.Results {
		contentID, ok := ids[res.ExternalID]
		if !ok {
			continue
		}
		if res.Success {
			imported++
			if markErr := s.StatusRepo.MarkSynced(ctx, target.ID, kind, contentID, hashes[res.ExternalID]); markErr != nil {
				log.Warn("failed to record sync success", zap.Error(markErr))
			}
		} else {
			failed++
			if markErr := s.StatusRepo.MarkFailed(ctx, target.ID, kind, contentID, res.Message); markErr != nil {
				log.Warn("failed to record sync failure", zap.Error(markErr))
			}
		}
	}

	return imported, failed, skipped, nil
}

// isUnchanged skips an item whose last successful push carried the same
// fingerprint. Pending rows keep the old hash, so any real edit invalidates
// the comparison.
func (s *SyncServiceImpl) isUnchanged(ctx context.Context, siteID primitive.ObjectID, kind common_models.ContentKind, contentID primitive.ObjectID, hash string) bool {
	status, err := s.StatusRepo.Get(ctx, siteID, kind, contentID)
	if err != nil || status == nil {
		return false
	}
	return status.Status == StatusSynced && status.ContentHash == hash
}

func (s *SyncServiceImpl) GetProgress(ctx context.Context, token string) (*SyncProgress, error) {
	return s.Progress.Get(ctx, token)
}

func (s *SyncServiceImpl) ListStatus(ctx context.Context, siteID string, status Status, limit int64) ([]SyncStatus, error) {
	oid, err := primitive.ObjectIDFromHex(siteID)
	if err != nil {
		return nil, errors.New("invalid site id")
	}
	return s.StatusRepo.ListBySite(ctx, oid, status, limit)
}

func (s *SyncServiceImpl) StatusSummary(ctx context.Context) ([]StatusSummary, error) {
	sites, err := s.SiteService.ListSites(ctx)
	if err != nil {
		return nil, err
	}

	summaries := make([]StatusSummary, 0, len(sites))
	for _, target := range sites {
		pending, err := s.StatusRepo.CountByStatus(ctx, target.ID, StatusPending)
		if err != nil {
			return nil, err
		}
		synced, err := s.StatusRepo.CountByStatus(ctx, target.ID, StatusSynced)
		if err != nil {
			return nil, err
		}
		failed, err := s.StatusRepo.CountByStatus(ctx, target.ID, StatusFailed)
		if err != nil {
			return nil, err
		}
		summaries = append(summaries, StatusSummary{
			SiteID:  target.ID.Hex(),
			Site:    target.Name,
			Pending: pending,
			Synced:  synced,
			Failed:  failed,
		})
	}
	return summaries, nil
}

// narrowLanguages filters the active language set to the site's subset.
// An empty subset means the site takes every language.
func narrowLanguages(all []language.Language, codes []string) []language.Language {
	if len(codes) == 0 {
		return all
	}
	allowed := map[string]bool{}
	for _, c := range codes {
		allowed[c] = true
	}
	var out []language.Language
	for _, l := range all {
		if allowed[l.Code] {
			out = append(out, l)
		}
	}
	if len(out) == 0 {
		return all
	}
	return out
}
