package shipment

import (
	"context"
	"sort"
	"strings"
	"time"

	"github.com/nakliye-kontrol-api/internal/domain"
	"github.com/nakliye-kontrol-api/internal/pkg/id"
)

// Listing windows are capped server-side so a runaway limit cannot pull the
// whole table into one response.
const (
	DefaultLimit = 100
	MaxLimit     = 500
)

type Service interface {
	Create(ctx context.Context, req domain.CreateNakliyeRequest) (*domain.NakliyeRecord, error)
	List(ctx context.Context, skip, limit int) ([]domain.NakliyeRecord, error)
	Get(ctx context.Context, recordID string) (*domain.NakliyeRecord, error)
	Update(ctx context.Context, recordID string, req domain.UpdateNakliyeRequest) (*domain.NakliyeRecord, error)
	Delete(ctx context.Context, recordID string) error
	Search(ctx context.Context, query string, skip, limit int) ([]domain.NakliyeRecord, error)
}

type nakliyeStore interface {
	Put(ctx context.Context, rec *domain.NakliyeRecord) error
	Get(ctx context.Context, id string) (*domain.NakliyeRecord, error)
	Scan(ctx context.Context) ([]domain.NakliyeRecord, error)
	Search(ctx context.Context, query string) ([]domain.NakliyeRecord, error)
	Update(ctx context.Context, id string, updates map[string]interface{}) error
	HardDelete(ctx context.Context, id string) error
}

type service struct {
	repo nakliyeStore
}

func NewService(repo nakliyeStore) Service {
	return &service{repo: repo}
}

func (s *service) Create(ctx context.Context, req domain.CreateNakliyeRequest) (*domain.NakliyeRecord, error) {
	rec := &domain.NakliyeRecord{
		ID:          id.New(),
		Tarih:       req.Tarih,
		SiraNo:      req.SiraNo,
		Musteri:     req.Musteri,
		IrsaliyeNo:  req.IrsaliyeNo,
		Kod:         req.Kod,
		Ithalat:     req.Ithalat,
		Ihracat:     req.Ihracat,
		Bos:         req.Bos,
		BosTasima:   req.BosTasima,
		Reefer:      req.Reefer,
		Bekleme:     req.Bekleme,
		Geceleme:    req.Geceleme,
		Pazar:       req.Pazar,
		Harcirah:    req.Harcirah,
		Toplam:      req.Toplam,
		Sistem:      req.Sistem,
		Yatan:       req.Yatan,
		YatanTarihi: req.YatanTarihi,
		CreatedAt:   time.Now().UTC(),
	}
	rec.SearchText = searchText(rec)
	if err := s.repo.Put(ctx, rec); err != nil {
		return nil, err
	}
	return rec, nil
}

func (s *service) List(ctx context.Context, skip, limit int) ([]domain.NakliyeRecord, error) {
	records, err := s.repo.Scan(ctx)
	if err != nil {
		return nil, err
	}
	return window(records, skip, limit), nil
}

func (s *service) Get(ctx context.Context, recordID string) (*domain.NakliyeRecord, error) {
	return s.repo.Get(ctx, recordID)
}

func (s *service) Update(ctx context.Context, recordID string, req domain.UpdateNakliyeRequest) (*domain.NakliyeRecord, error) {
	updates := updateMap(req)
	if len(updates) == 0 {
		return nil, domain.ErrBadRequest
	}

	current, err := s.repo.Get(ctx, recordID)
	if err != nil {
		return nil, err
	}
	merged := applyUpdates(*current, req)
	updates["search_text"] = searchText(&merged)

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

func (s *service) Search(ctx context.Context, query string, skip, limit int) ([]domain.NakliyeRecord, error) {
	records, err := s.repo.Search(ctx, query)
	if err != nil {
		return nil, err
	}
	return window(records, skip, limit), nil
}

// window orders by tarih descending and applies skip/limit bounds.
func window(records []domain.NakliyeRecord, skip, limit int) []domain.NakliyeRecord {
	sort.Slice(records, func(i, j int) bool {
		return records[i].Tarih.After(records[j].Tarih)
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
		return []domain.NakliyeRecord{}
	}
	end := skip + limit
	if end > len(records) {
		end = len(records)
	}
	return records[skip:end]
}

// searchText is the lowercased join of the four searchable fields; the store
// filters on it with contains() to get case-insensitive substring matching.
// Fields are joined with the unit separator, which no query string can
// contain, so a match never straddles a field boundary.
func searchText(rec *domain.NakliyeRecord) string {
	return strings.ToLower(strings.Join([]string{
		rec.Musteri, rec.SiraNo, rec.Kod, rec.IrsaliyeNo,
	}, "\x1f"))
}

func updateMap(req domain.UpdateNakliyeRequest) map[string]interface{} {
	updates := map[string]interface{}{}
	if req.Tarih != nil {
		updates["tarih"] = *req.Tarih
	}
	if req.SiraNo != nil {
		updates["sira_no"] = *req.SiraNo
	}
	if req.Musteri != nil {
		updates["musteri"] = *req.Musteri
	}
	if req.IrsaliyeNo != nil {
		updates["irsaliye_no"] = *req.IrsaliyeNo
	}
	if req.Kod != nil {
		updates["kod"] = *req.Kod
	}
	if req.Ithalat != nil {
		updates["ithalat"] = *req.Ithalat
	}
	if req.Ihracat != nil {
		updates["ihracat"] = *req.Ihracat
	}
	if req.Bos != nil {
		updates["bos"] = *req.Bos
	}
	if req.BosTasima != nil {
		updates["bos_tasima"] = *req.BosTasima
	}
	if req.Reefer != nil {
		updates["reefer"] = *req.Reefer
	}
	if req.Bekleme != nil {
		updates["bekleme"] = *req.Bekleme
	}
	if req.Geceleme != nil {
		updates["geceleme"] = *req.Geceleme
	}
	if req.Pazar != nil {
		updates["pazar"] = *req.Pazar
	}
	if req.Harcirah != nil {
		updates["harcirah"] = *req.Harcirah
	}
	if req.Toplam != nil {
		updates["toplam"] = *req.Toplam
	}
	if req.Sistem != nil {
		updates["sistem"] = *req.Sistem
	}
	if req.Yatan != nil {
		updates["yatan"] = *req.Yatan
	}
	if req.YatanTarihi != nil {
		updates["yatan_tarihi"] = *req.YatanTarihi
	}
	return updates
}

func applyUpdates(rec domain.NakliyeRecord, req domain.UpdateNakliyeRequest) domain.NakliyeRecord {
	if req.Musteri != nil {
		rec.Musteri = *req.Musteri
	}
	if req.SiraNo != nil {
		rec.SiraNo = *req.SiraNo
	}
	if req.Kod != nil {
		rec.Kod = *req.Kod
	}
	if req.IrsaliyeNo != nil {
		rec.IrsaliyeNo = *req.IrsaliyeNo
	}
	return rec
}
