package report

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"time"

	"github.com/nakliye-kontrol-api/internal/domain"
	"github.com/nakliye-kontrol-api/internal/pkg/id"
)

// GeneratePDFRequest is the payload of the PDF generation endpoint. Data
// carries the rows the client selected for the period; Deposits may be empty.
type GeneratePDFRequest struct {
	Data     []domain.NakliyeRecord    `json:"data"`
	Deposits []domain.YatanTutarRecord `json:"deposits"`
	Period   string                    `json:"period"`
}

// GeneratedFile points a client at a short-lived download.
type GeneratedFile struct {
	Success     bool   `json:"success"`
	FileID      string `json:"file_id"`
	DownloadURL string `json:"download_url"`
	Filename    string `json:"filename"`
}

type Service interface {
	GeneratePDF(ctx context.Context, req GeneratePDFRequest) (*GeneratedFile, error)
	GenerateBackup(ctx context.Context) (*GeneratedFile, error)
	// Download streams a generated file exactly once: a successful fetch
	// removes both the object and its metadata row.
	Download(ctx context.Context, fileID string) ([]byte, *domain.TempFile, error)
}

// Renderer turns an HTML document into PDF bytes. Implementations must fail
// with domain.ErrRenderer on any backend problem rather than return a
// partial document.
type Renderer interface {
	Render(ctx context.Context, html string) ([]byte, error)
}

type objectStore interface {
	Upload(ctx context.Context, key string, r io.Reader, contentType string) error
	Download(ctx context.Context, key string) (io.ReadCloser, error)
	Delete(ctx context.Context, key string) error
}

type tempFileStore interface {
	Put(ctx context.Context, f *domain.TempFile) error
	Get(ctx context.Context, fileID string) (*domain.TempFile, error)
	Delete(ctx context.Context, fileID string) error
}

type nakliyeStore interface {
	Scan(ctx context.Context) ([]domain.NakliyeRecord, error)
}

type depositStore interface {
	Scan(ctx context.Context) ([]domain.YatanTutarRecord, error)
}

type service struct {
	renderer  Renderer
	objects   objectStore
	tempFiles tempFileStore
	nakliye   nakliyeStore
	deposits  depositStore

	baseURL string
	ttl     time.Duration

	// renderSem bounds concurrent renders so slow wkhtmltopdf runs cannot
	// pile up and exhaust the process.
	renderSem chan struct{}
}

type ServiceDeps struct {
	Renderer     Renderer
	ObjectStore  objectStore
	TempFileRepo tempFileStore
	NakliyeRepo  nakliyeStore
	DepositRepo  depositStore

	PublicBaseURL string
	TempFileTTL   time.Duration
	RenderWorkers int
}

func NewService(deps ServiceDeps) Service {
	workers := deps.RenderWorkers
	if workers < 1 {
		workers = 1
	}
	return &service{
		renderer:  deps.Renderer,
		objects:   deps.ObjectStore,
		tempFiles: deps.TempFileRepo,
		nakliye:   deps.NakliyeRepo,
		deposits:  deps.DepositRepo,
		baseURL:   deps.PublicBaseURL,
		ttl:       deps.TempFileTTL,
		renderSem: make(chan struct{}, workers),
	}
}

func (s *service) GeneratePDF(ctx context.Context, req GeneratePDFRequest) (*GeneratedFile, error) {
	if len(req.Data) == 0 {
		return nil, fmt.Errorf("rapor için en az bir kayıt gerekli: %w", domain.ErrBadRequest)
	}

	html, err := BuildReportHTML(req.Data, req.Deposits, req.Period)
	if err != nil {
		return nil, err
	}

	pdf, err := s.render(ctx, html)
	if err != nil {
		return nil, err
	}

	filename := fmt.Sprintf("Nakliye_Raporu_%s.pdf", sanitizePeriod(req.Period))
	return s.stash(ctx, pdf, filename, "application/pdf", ".pdf")
}

func (s *service) GenerateBackup(ctx context.Context) (*GeneratedFile, error) {
	nakliye, err := s.nakliye.Scan(ctx)
	if err != nil {
		return nil, err
	}
	deposits, err := s.deposits.Scan(ctx)
	if err != nil {
		return nil, err
	}

	backup := Backup{
		SchemaVersion: backupSchemaVersion,
		GeneratedAt:   time.Now().UTC(),
		Nakliye:       nakliye,
		YatanTutar:    deposits,
	}
	data, err := json.MarshalIndent(backup, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("marshal backup: %w", err)
	}

	filename := fmt.Sprintf("Nakliye_Yedek_%s.json", time.Now().UTC().Format("2006-01-02"))
	return s.stash(ctx, data, filename, "application/json", ".json")
}

func (s *service) Download(ctx context.Context, fileID string) ([]byte, *domain.TempFile, error) {
	f, err := s.tempFiles.Get(ctx, fileID)
	if err != nil {
		return nil, nil, err
	}
	rc, err := s.objects.Download(ctx, f.Object)
	if err != nil {
		return nil, nil, fmt.Errorf("temp file gone: %w", domain.ErrNotFound)
	}
	defer rc.Close()
	data, err := io.ReadAll(rc)
	if err != nil {
		return nil, nil, err
	}

	// One-shot semantics: the file is unreachable after a successful read.
	if err := s.tempFiles.Delete(ctx, fileID); err != nil {
		return nil, nil, err
	}
	if err := s.objects.Delete(ctx, f.Object); err != nil {
		// The metadata row is gone so the object is already unreachable;
		// the orphan will be caught by bucket lifecycle rules.
		return data, f, nil
	}
	return data, f, nil
}

// render runs the renderer under the worker semaphore.
func (s *service) render(ctx context.Context, html string) ([]byte, error) {
	select {
	case s.renderSem <- struct{}{}:
		defer func() { <-s.renderSem }()
	case <-ctx.Done():
		return nil, fmt.Errorf("render queue wait: %w", domain.ErrRenderer)
	}
	return s.renderer.Render(ctx, html)
}

// stash uploads the generated bytes and records the temp-file row.
func (s *service) stash(ctx context.Context, data []byte, filename, contentType, ext string) (*GeneratedFile, error) {
	now := time.Now().UTC()
	fileID := id.New() + ext
	key := "tmp/" + fileID

	if err := s.objects.Upload(ctx, key, bytes.NewReader(data), contentType); err != nil {
		return nil, err
	}
	f := &domain.TempFile{
		FileID:      fileID,
		Object:      key,
		Filename:    filename,
		ContentType: contentType,
		Size:        int64(len(data)),
		CreatedAt:   now,
		ExpiresAt:   now.Add(s.ttl).Unix(),
	}
	if err := s.tempFiles.Put(ctx, f); err != nil {
		return nil, err
	}
	return &GeneratedFile{
		Success:     true,
		FileID:      fileID,
		DownloadURL: fmt.Sprintf("%s/api/download-temp/%s", s.baseURL, fileID),
		Filename:    filename,
	}, nil
}

// sanitizePeriod keeps period labels filesystem- and header-safe.
func sanitizePeriod(period string) string {
	if period == "" {
		return "rapor"
	}
	out := make([]rune, 0, len(period))
	for _, r := range period {
		switch {
		case r >= 'a' && r <= 'z', r >= 'A' && r <= 'Z', r >= '0' && r <= '9', r == '-', r == '_':
			out = append(out, r)
		default:
			out = append(out, '_')
		}
	}
	return string(out)
}
