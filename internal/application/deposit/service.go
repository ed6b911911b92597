package deposit

import (
	"context"
	"sort"
	"time"

	"github.com/nakliye-kontrol-api/internal/domain"
	"github.com/nakliye-kontrol-api/internal/pkg/id"
)

const (
	DefaultLimit = 100
	MaxLimit     = 500
)

type Service interface {
	Create(ctx context.Context, req domain.CreateYatanTutarRequest) (*domain.YatanTutarRecord, error)
	List(ctx context.Context, skip, limit int) ([]domain.YatanTutarRecord, error)
	Get(ctx context.Context, recordID string) (*domain.YatanTutarRecord, error)
	Update(ctx context.Context, recordID string, req domain.UpdateYatanTutarRequest) (*domain.YatanTutarRecord, error)
	Delete(ctx context.Context, recordID string) error
}

type depositStore interface {
	Put(ctx context.Context, rec *domain.YatanTutarRecord) error
	Get(ctx context.Context, id string) (*domain.YatanTutarRecord, error)
	Scan(ctx context.Context) ([]domain.YatanTutarRecord, error)
	Update(ctx context.Context, id string, updates map[string]interface{}) error
	HardDelete(ctx context.Context, id string) error
}

type service struct {
	repo depositStore
}

func NewService(repo depositStore) Service {
	return &service{repo: repo}
}

func (s *service) Create(ctx context.Context, req domain.CreateYatanTutarRequest) (*domain.YatanTutarRecord, error) {
	rec := &domain.YatanTutarRecord{
		ID:             id.New(),
		Tutar:          req.Tutar,
		YatmaTarihi:    req.YatmaTarihi,
		DonemBaslangic: req.DonemBaslangic,
		DonemBitis:     req.DonemBitis,
		Aciklama:       req.Aciklama,
		CreatedAt:      time.Now().UTC(),
	}
	if err := s.repo.Put(ctx, rec); err != nil {
		return nil, err
	}
	return rec, nil
}

func (s *service) List(ctx context.Context, skip, limit int) ([]domain.YatanTutarRecord, error) {
	records, err := s.repo.Scan(ctx)
	if err != nil {
		return nil, err
	}
	// Newest deposit first.
	sort.Slice(records, func(i, j int) bool {
		return records[i].YatmaTarihi.After(records[j].YatmaTarihi)
	})
	if skip < 0 {
		skip = 0
	}
	if limit <= 0 {
		limit = DefaultLimit
	}
	if limit > MaxLimit {
		limit = MaxLimit
	}
	if skip >= len(records) {
		return []domain.YatanTutarRecord{}, nil
	}
	end := skip + limit
	if end > len(records) {
		end = len(records)
	}
	return records[skip:end], nil
}

func (s *service) Get(ctx context.Context, recordID string) (*domain.YatanTutarRecord, error) {
	return s.repo.Get(ctx, recordID)
}

func (s *service) Update(ctx context.Context, recordID string, req domain.UpdateYatanTutarRequest) (*domain.YatanTutarRecord, error) {
	updates := map[string]interface{}{}
	if req.Tutar != nil {
		updates["tutar"] = *req.Tutar
	}
	if req.YatmaTarihi != nil {
		updates["yatma_tarihi"] = *req.YatmaTarihi
	}
	if req.DonemBaslangic != nil {
		updates["donem_baslangic"] = *req.DonemBaslangic
	}
	if req.DonemBitis != nil {
		updates["donem_bitis"] = *req.DonemBitis
	}
	if req.Aciklama != nil {
		updates["aciklama"] = *req.Aciklama
	}
	if len(updates) == 0 {
		return nil, domain.ErrBadRequest
	}
	if _, err := s.repo.Get(ctx, recordID); err != nil {
		return nil, err
	}
	if err := s.repo.Update(ctx, recordID, updates); err != nil {
		return nil, err
	}
	return s.repo.Get(ctx, recordID)
}

func (s *service) Delete(ctx context.Context, recordID string) error {
	if _, err := s.repo.Get(ctx, recordID); err != nil {
		return err
	}
	return s.repo.HardDelete(ctx, recordID)
}
