package service

import (
	"context"
	"errors"
	"strings"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
	"golang.org/x/sync/errgroup"

	"corpusapi/internal/compare"
	"corpusapi/internal/fingerprint"
	"corpusapi/internal/logging"
	"corpusapi/internal/model"
	"corpusapi/internal/repository"
	"corpusapi/internal/storage"
)

// ExistsResult is the payload of a successful Exists.
type ExistsResult struct {
	Exists bool `json:"exists"`
}

// UploadResult is the payload of a successful Upload.
type UploadResult struct {
	Success bool `json:"success"`
}

// DownloadResult is the payload of a successful Download.
type DownloadResult struct {
	Content string `json:"content"`
}

// ListResult is the payload of a successful List.
type ListResult struct {
	Files []model.DocumentPreview `json:"files"`
}

// CorpusService defines the five corpus operations.
// Store and lookup failures are returned as *Failure. Compare may also return
// the context error when the request is cancelled mid-computation.
type CorpusService interface {
	// Exists reports whether a document with the fingerprint is stored.
	Exists(ctx context.Context, fingerprint string) (*ExistsResult, error)

	// Upload stores content under fingerprint. Re-uploading stored content fails with ErrAlreadyExists.
	Upload(ctx context.Context, fingerprint, content string) (*UploadResult, error)

	// Download returns the content stored under fingerprint.
	Download(ctx context.Context, fingerprint string) (*DownloadResult, error)

	// Compare computes similarity metrics between two stored documents.
	Compare(ctx context.Context, fingerprint1, fingerprint2 string) (*model.ComparisonResult, error)

	// List returns a preview of every stored document.
	List(ctx context.Context) (*ListResult, error)
}

type corpusService struct {
	repo    repository.DocumentRepository
	archive storage.Storage
}

// NewCorpusService constructs a new CorpusService. archive may be nil to disable content archiving.
func NewCorpusService(repo repository.DocumentRepository, archive storage.Storage) CorpusService {
	return &corpusService{repo: repo, archive: archive}
}

const tracerName = "corpusapi/internal/service"

// dbFailure logs a store failure and converts it into ErrDBError.
func dbFailure(ctx context.Context, op string, err error, fps ...string) *Failure {
	logging.Ctx(ctx).Error().Err(err).
		Str("op", op).
		Strs("fingerprints", fps).
		Bool("backend", repository.IsBackend(err)).
		Msg("document store failure")
	return fail(ErrDBError, err, fps...)
}

// Stored fingerprints are always well-formed hashes, so a malformed one is
// answered without a store round trip.
func wellFormed(fp string) bool {
	return fingerprint.Valid(fp)
}

func (s *corpusService) Exists(ctx context.Context, fp string) (*ExistsResult, error) {
	if !wellFormed(fp) {
		return &ExistsResult{Exists: false}, nil
	}
	ok, err := s.repo.Exists(ctx, fp)
	if err != nil {
		return nil, dbFailure(ctx, "exists", err, fp)
	}
	return &ExistsResult{Exists: ok}, nil
}

func (s *corpusService) Upload(ctx context.Context, fp, content string) (*UploadResult, error) {
	if !wellFormed(fp) {
		return nil, fail(ErrHashMismatch, nil, fp)
	}
	exists, err := s.repo.Exists(ctx, fp)
	if err != nil {
		return nil, dbFailure(ctx, "upload", err, fp)
	}
	if exists {
		return nil, fail(ErrAlreadyExists, nil, fp)
	}

	err = s.repo.Insert(ctx, fp, content)
	switch {
	case errors.Is(err, repository.ErrHashMismatch):
		return nil, fail(ErrHashMismatch, nil, fp)
	case errors.Is(err, repository.ErrDuplicate):
		// another upload of the same content committed between our check and insert
		logging.Ctx(ctx).Info().Str("fingerprint", fp).Msg("concurrent upload already stored document")
		return nil, fail(ErrAlreadyExists, err, fp)
	case err != nil:
		return nil, dbFailure(ctx, "upload", err, fp)
	}

	s.archiveContent(ctx, fp, content)
	return &UploadResult{Success: true}, nil
}

// archiveContent copies stored content to the archive. Failures are logged only:
// the document table already holds the content.
func (s *corpusService) archiveContent(ctx context.Context, fp, content string) {
	if s.archive == nil {
		return
	}
	_, err := s.archive.Put(ctx, storage.DocumentKey(fp), strings.NewReader(content), storage.PutObjectOptions{
		Size:        int64(len(content)),
		ContentType: "text/plain; charset=utf-8",
		Metadata:    map[string]string{"fingerprint": fp},
	})
	if err != nil {
		logging.Ctx(ctx).Warn().Err(err).Str("fingerprint", fp).Msg("archive copy failed")
	}
}

func (s *corpusService) Download(ctx context.Context, fp string) (*DownloadResult, error) {
	if !wellFormed(fp) {
		return nil, fail(ErrNotFound, nil, fp)
	}
	exists, err := s.repo.Exists(ctx, fp)
	if err != nil {
		return nil, dbFailure(ctx, "download", err, fp)
	}
	if !exists {
		return nil, fail(ErrNotFound, nil, fp)
	}

	content, err := s.repo.GetContent(ctx, fp)
	if errors.Is(err, repository.ErrNotFound) {
		return nil, fail(ErrNotFound, err, fp)
	}
	if err != nil {
		return nil, dbFailure(ctx, "download", err, fp)
	}
	return &DownloadResult{Content: content}, nil
}

func (s *corpusService) Compare(ctx context.Context, fp1, fp2 string) (*model.ComparisonResult, error) {
	ctx, span := otel.Tracer(tracerName).Start(ctx, "CorpusService.Compare", trace.WithAttributes(
		attribute.String("corpus.fingerprint1", fp1),
		attribute.String("corpus.fingerprint2", fp2),
	))
	defer span.End()

	fps := [2]string{fp1, fp2}

	var (
		found   [2]bool
		lookErr [2]error
		g       errgroup.Group
	)
	for i, fp := range fps {
		if !wellFormed(fp) {
			continue
		}
		g.Go(func() error {
			found[i], lookErr[i] = s.repo.Exists(ctx, fp)
			return nil
		})
	}
	_ = g.Wait()

	var missing []string
	for i, fp := range fps {
		if lookErr[i] == nil && !found[i] {
			missing = append(missing, fp)
		}
	}
	if len(missing) > 0 {
		if err := errors.Join(lookErr[0], lookErr[1]); err != nil {
			logging.Ctx(ctx).Error().Err(err).Strs("fingerprints", fps[:]).Msg("document store failure during compare")
		}
		span.SetStatus(codes.Error, "not found")
		return nil, fail(ErrNotFound, nil, missing...)
	}
	if err := errors.Join(lookErr[0], lookErr[1]); err != nil {
		span.RecordError(err)
		return nil, dbFailure(ctx, "compare", err, fp1, fp2)
	}

	var contents [2]string
	eg, ectx := errgroup.WithContext(ctx)
	for i, fp := range fps {
		eg.Go(func() error {
			c, err := s.repo.GetContent(ectx, fp)
			contents[i] = c
			return err
		})
	}
	if err := eg.Wait(); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, fail(ErrNotFound, err, fp1, fp2)
		}
		span.RecordError(err)
		return nil, dbFailure(ctx, "compare", err, fp1, fp2)
	}

	res, err := compare.Compare(ctx, contents[0], contents[1])
	if err != nil {
		span.RecordError(err)
		return nil, err
	}
	span.SetAttributes(
		attribute.Int("corpus.levenshtein_distance", res.LevenshteinDistance),
		attribute.Float64("corpus.simple_similarity", res.SimpleSimilarity),
	)
	return &res, nil
}

func (s *corpusService) List(ctx context.Context) (*ListResult, error) {
	docs, err := s.repo.ListAll(ctx)
	if err != nil {
		return nil, dbFailure(ctx, "list", err)
	}

	files := make([]model.DocumentPreview, 0, len(docs))
	for _, d := range docs {
		files = append(files, d.Preview())
	}
	return &ListResult{Files: files}, nil
}
