package report

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/nakliye-kontrol-api/internal/domain"
)

// --- mocks ---

type mockRenderer struct{ mock.Mock }

func (m *mockRenderer) Render(ctx context.Context, html string) ([]byte, error) {
	args := m.Called(ctx, html)
	if b, _ := args.Get(0).([]byte); b != nil {
		return b, args.Error(1)
	}
	return nil, args.Error(1)
}

type mockObjectStore struct{ mock.Mock }

func (m *mockObjectStore) Upload(ctx context.Context, key string, r io.Reader, contentType string) error {
	return m.Called(ctx, key, r, contentType).Error(0)
}

func (m *mockObjectStore) Download(ctx context.Context, key string) (io.ReadCloser, error) {
	args := m.Called(ctx, key)
	if rc, _ := args.Get(0).(io.ReadCloser); rc != nil {
		return rc, args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *mockObjectStore) Delete(ctx context.Context, key string) error {
	return m.Called(ctx, key).Error(0)
}

type mockTempFileStore struct{ mock.Mock }

func (m *mockTempFileStore) Put(ctx context.Context, f *domain.TempFile) error {
	return m.Called(ctx, f).Error(0)
}

func (m *mockTempFileStore) Get(ctx context.Context, fileID string) (*domain.TempFile, error) {
	args := m.Called(ctx, fileID)
	if f, _ := args.Get(0).(*domain.TempFile); f != nil {
		return f, args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *mockTempFileStore) Delete(ctx context.Context, fileID string) error {
	return m.Called(ctx, fileID).Error(0)
}

type mockNakliyeScanner struct{ mock.Mock }

func (m *mockNakliyeScanner) Scan(ctx context.Context) ([]domain.NakliyeRecord, error) {
	args := m.Called(ctx)
	return args.Get(0).([]domain.NakliyeRecord), args.Error(1)
}

type mockDepositScanner struct{ mock.Mock }

func (m *mockDepositScanner) Scan(ctx context.Context) ([]domain.YatanTutarRecord, error) {
	args := m.Called(ctx)
	return args.Get(0).([]domain.YatanTutarRecord), args.Error(1)
}

type reportFixture struct {
	renderer  *mockRenderer
	objects   *mockObjectStore
	tempFiles *mockTempFileStore
	nakliye   *mockNakliyeScanner
	deposits  *mockDepositScanner
}

func newReportService() (Service, *reportFixture) {
	f := &reportFixture{
		renderer:  new(mockRenderer),
		objects:   new(mockObjectStore),
		tempFiles: new(mockTempFileStore),
		nakliye:   new(mockNakliyeScanner),
		deposits:  new(mockDepositScanner),
	}
	svc := NewService(ServiceDeps{
		Renderer:      f.renderer,
		ObjectStore:   f.objects,
		TempFileRepo:  f.tempFiles,
		NakliyeRepo:   f.nakliye,
		DepositRepo:   f.deposits,
		PublicBaseURL: "https://api.example.com",
		TempFileTTL:   30 * time.Minute,
		RenderWorkers: 2,
	})
	return svc, f
}

// --- totals ---

func TestComputeTotals(t *testing.T) {
	shipments := []domain.NakliyeRecord{
		{Toplam: 1000, Sistem: 900},
		{Toplam: 500, Sistem: 450},
	}
	deposits := []domain.YatanTutarRecord{
		{Tutar: 800},
		{Tutar: 200},
	}

	got := ComputeTotals(shipments, deposits)
	assert.Equal(t, 1500.0, got.TotalAmount)
	assert.Equal(t, 1350.0, got.TotalSystem)
	assert.Equal(t, 1000.0, got.TotalDeposit)
	assert.Equal(t, 500.0, got.Difference)
}

func TestComputeTotals_Empty(t *testing.T) {
	got := ComputeTotals(nil, nil)
	assert.Zero(t, got.TotalAmount)
	assert.Zero(t, got.Difference)
}

// --- HTML ---

func TestBuildReportHTML_OmitsDepositSectionWhenEmpty(t *testing.T) {
	shipments := []domain.NakliyeRecord{{
		Tarih: time.Date(2025, 3, 5, 0, 0, 0, 0, time.UTC),
		SiraNo: "S-1", Musteri: "Arkas", IrsaliyeNo: "IRS-1", Toplam: 100,
	}}

	html, err := BuildReportHTML(shipments, nil, "Mart 2025")
	require.NoError(t, err)
	assert.Contains(t, html, "Mart 2025")
	assert.Contains(t, html, "05.03.2025")
	assert.Contains(t, html, "Arkas")
	assert.NotContains(t, html, "Yatan Tutarlar")
}

func TestBuildReportHTML_WithDeposits(t *testing.T) {
	shipments := []domain.NakliyeRecord{{Toplam: 100}}
	deposits := []domain.YatanTutarRecord{{
		Tutar:          60,
		YatmaTarihi:    time.Date(2025, 3, 10, 0, 0, 0, 0, time.UTC),
		DonemBaslangic: time.Date(2025, 3, 1, 0, 0, 0, 0, time.UTC),
		DonemBitis:     time.Date(2025, 3, 9, 0, 0, 0, 0, time.UTC),
		Aciklama:       "ilk ödeme",
	}}

	html, err := BuildReportHTML(shipments, deposits, "Mart 2025")
	require.NoError(t, err)
	assert.Contains(t, html, "Yatan Tutarlar")
	assert.Contains(t, html, "60.00")
	assert.Contains(t, html, "40.00") // fark
}

func TestBuildReportHTML_EscapesUserContent(t *testing.T) {
	shipments := []domain.NakliyeRecord{{Musteri: `<script>alert("x")</script>`}}
	html, err := BuildReportHTML(shipments, nil, "p")
	require.NoError(t, err)
	assert.NotContains(t, html, "<script>")
}

// --- GeneratePDF ---

func TestGeneratePDF_EmptyDataRejected(t *testing.T) {
	svc, f := newReportService()
	_, err := svc.GeneratePDF(context.Background(), GeneratePDFRequest{Period: "Mart"})
	assert.ErrorIs(t, err, domain.ErrBadRequest)
	f.renderer.AssertNotCalled(t, "Render", mock.Anything, mock.Anything)
}

func TestGeneratePDF_StashesAndReturnsDownloadURL(t *testing.T) {
	svc, f := newReportService()
	f.renderer.On("Render", mock.Anything, mock.AnythingOfType("string")).
		Return([]byte("%PDF-1.4"), nil)
	f.objects.On("Upload", mock.Anything, mock.AnythingOfType("string"), mock.Anything, "application/pdf").
		Return(nil)

	var stored *domain.TempFile
	f.tempFiles.On("Put", mock.Anything, mock.AnythingOfType("*domain.TempFile")).
		Run(func(args mock.Arguments) {
			stored = args.Get(1).(*domain.TempFile)
		}).Return(nil)

	got, err := svc.GeneratePDF(context.Background(), GeneratePDFRequest{
		Data:   []domain.NakliyeRecord{{Musteri: "Arkas", Toplam: 100}},
		Period: "Mart 2025",
	})
	require.NoError(t, err)
	assert.True(t, got.Success)
	assert.Equal(t, "Nakliye_Raporu_Mart_2025.pdf", got.Filename)
	assert.True(t, strings.HasSuffix(got.FileID, ".pdf"))
	assert.Equal(t, "https://api.example.com/api/download-temp/"+got.FileID, got.DownloadURL)

	require.NotNil(t, stored)
	assert.Equal(t, "tmp/"+got.FileID, stored.Object)
	assert.Equal(t, int64(len("%PDF-1.4")), stored.Size)
	assert.Greater(t, stored.ExpiresAt, time.Now().Unix())
}

func TestGeneratePDF_RendererFailure(t *testing.T) {
	svc, f := newReportService()
	f.renderer.On("Render", mock.Anything, mock.AnythingOfType("string")).
		Return(nil, domain.ErrRenderer)

	_, err := svc.GeneratePDF(context.Background(), GeneratePDFRequest{
		Data: []domain.NakliyeRecord{{Toplam: 1}},
	})
	assert.ErrorIs(t, err, domain.ErrRenderer)
	f.objects.AssertNotCalled(t, "Upload", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
}

// --- GenerateBackup ---

func TestGenerateBackup_SnapshotsBothLedgers(t *testing.T) {
	svc, f := newReportService()
	f.nakliye.On("Scan", mock.Anything).Return([]domain.NakliyeRecord{
		{ID: "n1", Musteri: "Arkas", SearchText: "arkas"},
	}, nil)
	f.deposits.On("Scan", mock.Anything).Return([]domain.YatanTutarRecord{
		{ID: "d1", Tutar: 100},
	}, nil)

	var uploaded []byte
	f.objects.On("Upload", mock.Anything, mock.AnythingOfType("string"), mock.Anything, "application/json").
		Run(func(args mock.Arguments) {
			uploaded, _ = io.ReadAll(args.Get(2).(io.Reader))
		}).Return(nil)
	f.tempFiles.On("Put", mock.Anything, mock.AnythingOfType("*domain.TempFile")).Return(nil)

	got, err := svc.GenerateBackup(context.Background())
	require.NoError(t, err)
	assert.True(t, got.Success)
	assert.True(t, strings.HasPrefix(got.Filename, "Nakliye_Yedek_"))

	var backup map[string]json.RawMessage
	require.NoError(t, json.Unmarshal(uploaded, &backup))
	assert.Contains(t, backup, "nakliye_kayitlari")
	assert.Contains(t, backup, "yatan_tutarlar")
	// Storage-internal attributes never leak into the snapshot.
	assert.NotContains(t, string(uploaded), "search_text")
}

// --- Download ---

func TestDownload_OneShot(t *testing.T) {
	svc, f := newReportService()
	tf := &domain.TempFile{
		FileID:      "f1.pdf",
		Object:      "tmp/f1.pdf",
		Filename:    "Nakliye_Raporu.pdf",
		ContentType: "application/pdf",
	}
	f.tempFiles.On("Get", mock.Anything, "f1.pdf").Return(tf, nil)
	f.objects.On("Download", mock.Anything, "tmp/f1.pdf").
		Return(io.NopCloser(bytes.NewReader([]byte("%PDF"))), nil)
	f.tempFiles.On("Delete", mock.Anything, "f1.pdf").Return(nil)
	f.objects.On("Delete", mock.Anything, "tmp/f1.pdf").Return(nil)

	data, got, err := svc.Download(context.Background(), "f1.pdf")
	require.NoError(t, err)
	assert.Equal(t, []byte("%PDF"), data)
	assert.Equal(t, tf, got)
	f.tempFiles.AssertCalled(t, "Delete", mock.Anything, "f1.pdf")
	f.objects.AssertCalled(t, "Delete", mock.Anything, "tmp/f1.pdf")
}

func TestDownload_UnknownFile(t *testing.T) {
	svc, f := newReportService()
	f.tempFiles.On("Get", mock.Anything, "ghost").Return(nil, domain.ErrNotFound)

	_, _, err := svc.Download(context.Background(), "ghost")
	assert.ErrorIs(t, err, domain.ErrNotFound)
	f.objects.AssertNotCalled(t, "Download", mock.Anything, mock.Anything)
}

func TestDownload_ObjectGoneMapsToNotFound(t *testing.T) {
	svc, f := newReportService()
	tf := &domain.TempFile{FileID: "f1", Object: "tmp/f1"}
	f.tempFiles.On("Get", mock.Anything, "f1").Return(tf, nil)
	f.objects.On("Download", mock.Anything, "tmp/f1").
		Return(nil, io.ErrUnexpectedEOF)

	_, _, err := svc.Download(context.Background(), "f1")
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestSanitizePeriod(t *testing.T) {
	assert.Equal(t, "rapor", sanitizePeriod(""))
	assert.Equal(t, "Mart_2025", sanitizePeriod("Mart 2025"))
	assert.Equal(t, "a-b_c", sanitizePeriod("a-b/c"))
}
