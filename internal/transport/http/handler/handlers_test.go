package handler

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/nakliye-kontrol-api/internal/application/report"
	"github.com/nakliye-kontrol-api/internal/domain"
)

// --- mocks ---

type mockAccountSvc struct{ mock.Mock }

func (m *mockAccountSvc) Register(ctx context.Context, req domain.RegisterRequest) (*domain.User, error) {
	args := m.Called(ctx, req)
	if u, _ := args.Get(0).(*domain.User); u != nil {
		return u, args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *mockAccountSvc) Login(ctx context.Context, req domain.LoginRequest) (string, *domain.User, error) {
	args := m.Called(ctx, req)
	if u, _ := args.Get(1).(*domain.User); u != nil {
		return args.String(0), u, args.Error(2)
	}
	return "", nil, args.Error(2)
}

func (m *mockAccountSvc) Verify(ctx context.Context, identifier, code string) error {
	return m.Called(ctx, identifier, code).Error(0)
}

func (m *mockAccountSvc) ForgotPassword(ctx context.Context, identifier string) error {
	return m.Called(ctx, identifier).Error(0)
}

func (m *mockAccountSvc) ResetPassword(ctx context.Context, req domain.ResetPasswordRequest) error {
	return m.Called(ctx, req).Error(0)
}

func (m *mockAccountSvc) ResendVerification(ctx context.Context, identifier string) error {
	return m.Called(ctx, identifier).Error(0)
}

func (m *mockAccountSvc) CurrentUser(ctx context.Context, subject string) (*domain.User, error) {
	args := m.Called(ctx, subject)
	if u, _ := args.Get(0).(*domain.User); u != nil {
		return u, args.Error(1)
	}
	return nil, args.Error(1)
}

type mockNakliyeSvc struct{ mock.Mock }

func (m *mockNakliyeSvc) Create(ctx context.Context, req domain.CreateNakliyeRequest) (*domain.NakliyeRecord, error) {
	args := m.Called(ctx, req)
	if r, _ := args.Get(0).(*domain.NakliyeRecord); r != nil {
		return r, args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *mockNakliyeSvc) List(ctx context.Context, skip, limit int) ([]domain.NakliyeRecord, error) {
	args := m.Called(ctx, skip, limit)
	return args.Get(0).([]domain.NakliyeRecord), args.Error(1)
}

func (m *mockNakliyeSvc) Get(ctx context.Context, recordID string) (*domain.NakliyeRecord, error) {
	args := m.Called(ctx, recordID)
	if r, _ := args.Get(0).(*domain.NakliyeRecord); r != nil {
		return r, args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *mockNakliyeSvc) Update(ctx context.Context, recordID string, req domain.UpdateNakliyeRequest) (*domain.NakliyeRecord, error) {
	args := m.Called(ctx, recordID, req)
	if r, _ := args.Get(0).(*domain.NakliyeRecord); r != nil {
		return r, args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *mockNakliyeSvc) Delete(ctx context.Context, recordID string) error {
	return m.Called(ctx, recordID).Error(0)
}

func (m *mockNakliyeSvc) Search(ctx context.Context, query string, skip, limit int) ([]domain.NakliyeRecord, error) {
	args := m.Called(ctx, query, skip, limit)
	return args.Get(0).([]domain.NakliyeRecord), args.Error(1)
}

type mockDepositSvc struct{ mock.Mock }

func (m *mockDepositSvc) Create(ctx context.Context, req domain.CreateYatanTutarRequest) (*domain.YatanTutarRecord, error) {
	args := m.Called(ctx, req)
	if r, _ := args.Get(0).(*domain.YatanTutarRecord); r != nil {
		return r, args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *mockDepositSvc) List(ctx context.Context, skip, limit int) ([]domain.YatanTutarRecord, error) {
	args := m.Called(ctx, skip, limit)
	return args.Get(0).([]domain.YatanTutarRecord), args.Error(1)
}

func (m *mockDepositSvc) Get(ctx context.Context, recordID string) (*domain.YatanTutarRecord, error) {
	args := m.Called(ctx, recordID)
	if r, _ := args.Get(0).(*domain.YatanTutarRecord); r != nil {
		return r, args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *mockDepositSvc) Update(ctx context.Context, recordID string, req domain.UpdateYatanTutarRequest) (*domain.YatanTutarRecord, error) {
	args := m.Called(ctx, recordID, req)
	if r, _ := args.Get(0).(*domain.YatanTutarRecord); r != nil {
		return r, args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *mockDepositSvc) Delete(ctx context.Context, recordID string) error {
	return m.Called(ctx, recordID).Error(0)
}

type mockReportSvc struct{ mock.Mock }

func (m *mockReportSvc) GeneratePDF(ctx context.Context, req report.GeneratePDFRequest) (*report.GeneratedFile, error) {
	args := m.Called(ctx, req)
	if f, _ := args.Get(0).(*report.GeneratedFile); f != nil {
		return f, args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *mockReportSvc) GenerateBackup(ctx context.Context) (*report.GeneratedFile, error) {
	args := m.Called(ctx)
	if f, _ := args.Get(0).(*report.GeneratedFile); f != nil {
		return f, args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *mockReportSvc) Download(ctx context.Context, fileID string) ([]byte, *domain.TempFile, error) {
	args := m.Called(ctx, fileID)
	if f, _ := args.Get(1).(*domain.TempFile); f != nil {
		return args.Get(0).([]byte), f, args.Error(2)
	}
	return nil, nil, args.Error(2)
}

// withChiParam injects a chi URL param into the request context.
func withChiParam(r *http.Request, key, value string) *http.Request {
	rctx := chi.NewRouteContext()
	rctx.URLParams.Add(key, value)
	return r.WithContext(context.WithValue(r.Context(), chi.RouteCtxKey, rctx))
}

// --- auth ---

func TestAuthRegister_InvalidBody(t *testing.T) {
	h := NewAuthHandler(&mockAccountSvc{})
	r := httptest.NewRequest(http.MethodPost, "/api/auth/register", bytes.NewBufferString("not-json"))
	rr := httptest.NewRecorder()
	h.Register(rr, r)
	assert.Equal(t, http.StatusUnprocessableEntity, rr.Code)
}

func TestAuthRegister_ValidationFailure(t *testing.T) {
	h := NewAuthHandler(&mockAccountSvc{})
	body, _ := json.Marshal(domain.RegisterRequest{Email: "a@b.com"}) // missing password, full_name
	r := httptest.NewRequest(http.MethodPost, "/api/auth/register", bytes.NewReader(body))
	rr := httptest.NewRecorder()
	h.Register(rr, r)
	assert.Equal(t, http.StatusUnprocessableEntity, rr.Code)
}

func TestAuthRegister_DuplicateIs400(t *testing.T) {
	svc := &mockAccountSvc{}
	svc.On("Register", mock.Anything, mock.Anything).Return(nil, domain.ErrConflict)
	h := NewAuthHandler(svc)

	body, _ := json.Marshal(domain.RegisterRequest{
		Email: "a@b.com", Password: "secret1", FullName: "Ali Veli",
	})
	r := httptest.NewRequest(http.MethodPost, "/api/auth/register", bytes.NewReader(body))
	rr := httptest.NewRecorder()
	h.Register(rr, r)
	assert.Equal(t, http.StatusBadRequest, rr.Code)
}

func TestAuthRegister_HappyPath(t *testing.T) {
	svc := &mockAccountSvc{}
	svc.On("Register", mock.Anything, mock.Anything).
		Return(&domain.User{UserID: "u1", Email: "a@b.com", FullName: "Ali Veli"}, nil)
	h := NewAuthHandler(svc)

	body, _ := json.Marshal(domain.RegisterRequest{
		Email: "a@b.com", Password: "secret1", FullName: "Ali Veli",
	})
	r := httptest.NewRequest(http.MethodPost, "/api/auth/register", bytes.NewReader(body))
	rr := httptest.NewRecorder()
	h.Register(rr, r)

	assert.Equal(t, http.StatusOK, rr.Code)
	var resp UserEnvelope
	require.NoError(t, json.NewDecoder(rr.Body).Decode(&resp))
	assert.Equal(t, "a@b.com", resp.User.Email)
	svc.AssertExpectations(t)
}

func TestAuthLogin_ReturnsBearerToken(t *testing.T) {
	svc := &mockAccountSvc{}
	svc.On("Login", mock.Anything, mock.Anything).
		Return("tok123", &domain.User{UserID: "u1"}, nil)
	h := NewAuthHandler(svc)

	body, _ := json.Marshal(domain.LoginRequest{Identifier: "a@b.com", Password: "secret1"})
	r := httptest.NewRequest(http.MethodPost, "/api/auth/login", bytes.NewReader(body))
	rr := httptest.NewRecorder()
	h.Login(rr, r)

	assert.Equal(t, http.StatusOK, rr.Code)
	var resp TokenEnvelope
	require.NoError(t, json.NewDecoder(rr.Body).Decode(&resp))
	assert.Equal(t, "tok123", resp.AccessToken)
	assert.Equal(t, "bearer", resp.TokenType)
}

func TestAuthLogin_BadCredentials(t *testing.T) {
	svc := &mockAccountSvc{}
	svc.On("Login", mock.Anything, mock.Anything).Return("", nil, domain.ErrUnauthorized)
	h := NewAuthHandler(svc)

	body, _ := json.Marshal(domain.LoginRequest{Identifier: "a@b.com", Password: "wrong"})
	r := httptest.NewRequest(http.MethodPost, "/api/auth/login", bytes.NewReader(body))
	rr := httptest.NewRecorder()
	h.Login(rr, r)
	assert.Equal(t, http.StatusUnauthorized, rr.Code)
}

func TestAuthVerify_UnknownCodeIs400(t *testing.T) {
	svc := &mockAccountSvc{}
	svc.On("Verify", mock.Anything, "a@b.com", "000000").Return(domain.ErrNotFound)
	h := NewAuthHandler(svc)

	body, _ := json.Marshal(domain.VerifyRequest{Identifier: "a@b.com", Code: "000000"})
	r := httptest.NewRequest(http.MethodPost, "/api/auth/verify", bytes.NewReader(body))
	rr := httptest.NewRecorder()
	h.Verify(rr, r)
	assert.Equal(t, http.StatusBadRequest, rr.Code)
}

func TestAuthVerify_ExpiredCodeIs400(t *testing.T) {
	svc := &mockAccountSvc{}
	svc.On("Verify", mock.Anything, "a@b.com", "123456").Return(domain.ErrExpired)
	h := NewAuthHandler(svc)

	body, _ := json.Marshal(domain.VerifyRequest{Identifier: "a@b.com", Code: "123456"})
	r := httptest.NewRequest(http.MethodPost, "/api/auth/verify", bytes.NewReader(body))
	rr := httptest.NewRecorder()
	h.Verify(rr, r)
	assert.Equal(t, http.StatusBadRequest, rr.Code)
}

func TestAuthForgotPassword_Always200(t *testing.T) {
	svc := &mockAccountSvc{}
	svc.On("ForgotPassword", mock.Anything, "ghost@b.com").Return(nil)
	h := NewAuthHandler(svc)

	body, _ := json.Marshal(domain.ForgotPasswordRequest{Identifier: "ghost@b.com"})
	r := httptest.NewRequest(http.MethodPost, "/api/auth/forgot-password", bytes.NewReader(body))
	rr := httptest.NewRecorder()
	h.ForgotPassword(rr, r)
	assert.Equal(t, http.StatusOK, rr.Code)
}

func TestAuthMe_NoSubject(t *testing.T) {
	h := NewAuthHandler(&mockAccountSvc{})
	rr := httptest.NewRecorder()
	h.Me(rr, httptest.NewRequest(http.MethodGet, "/api/auth/me", nil))
	assert.Equal(t, http.StatusUnauthorized, rr.Code)
}

// --- nakliye ---

func TestNakliyeCreate_HappyPath(t *testing.T) {
	svc := &mockNakliyeSvc{}
	svc.On("Create", mock.Anything, mock.Anything).
		Return(&domain.NakliyeRecord{ID: "r1", Musteri: "Arkas"}, nil)
	h := NewNakliyeHandler(svc)

	body, _ := json.Marshal(domain.CreateNakliyeRequest{
		Tarih:      time.Date(2025, 3, 5, 0, 0, 0, 0, time.UTC),
		SiraNo:     "S-1",
		Musteri:    "Arkas",
		IrsaliyeNo: "IRS-1",
	})
	r := httptest.NewRequest(http.MethodPost, "/api/nakliye", bytes.NewReader(body))
	rr := httptest.NewRecorder()
	h.Create(rr, r)

	assert.Equal(t, http.StatusOK, rr.Code)
	var rec domain.NakliyeRecord
	require.NoError(t, json.NewDecoder(rr.Body).Decode(&rec))
	assert.Equal(t, "r1", rec.ID)
}

func TestNakliyeCreate_MissingRequiredFields(t *testing.T) {
	h := NewNakliyeHandler(&mockNakliyeSvc{})
	body, _ := json.Marshal(map[string]string{"musteri": "Arkas"})
	r := httptest.NewRequest(http.MethodPost, "/api/nakliye", bytes.NewReader(body))
	rr := httptest.NewRecorder()
	h.Create(rr, r)
	assert.Equal(t, http.StatusUnprocessableEntity, rr.Code)
}

func TestNakliyeGet_NotFound(t *testing.T) {
	svc := &mockNakliyeSvc{}
	svc.On("Get", mock.Anything, "missing").Return(nil, domain.ErrNotFound)
	h := NewNakliyeHandler(svc)

	r := withChiParam(httptest.NewRequest(http.MethodGet, "/api/nakliye/missing", nil), "id", "missing")
	rr := httptest.NewRecorder()
	h.Get(rr, r)
	assert.Equal(t, http.StatusNotFound, rr.Code)
}

func TestNakliyeList_PassesPagination(t *testing.T) {
	svc := &mockNakliyeSvc{}
	svc.On("List", mock.Anything, 5, 20).Return([]domain.NakliyeRecord{}, nil)
	h := NewNakliyeHandler(svc)

	r := httptest.NewRequest(http.MethodGet, "/api/nakliye?skip=5&limit=20", nil)
	rr := httptest.NewRecorder()
	h.List(rr, r)
	assert.Equal(t, http.StatusOK, rr.Code)
	svc.AssertExpectations(t)
}

func TestNakliyeUpdate_EmptyPayloadIs400(t *testing.T) {
	svc := &mockNakliyeSvc{}
	svc.On("Update", mock.Anything, "r1", mock.Anything).Return(nil, domain.ErrBadRequest)
	h := NewNakliyeHandler(svc)

	r := withChiParam(httptest.NewRequest(http.MethodPut, "/api/nakliye/r1", bytes.NewBufferString("{}")), "id", "r1")
	rr := httptest.NewRecorder()
	h.Update(rr, r)
	assert.Equal(t, http.StatusBadRequest, rr.Code)
}

func TestNakliyeSearch_EmptyQueryRejected(t *testing.T) {
	h := NewNakliyeHandler(&mockNakliyeSvc{})
	r := withChiParam(httptest.NewRequest(http.MethodGet, "/api/nakliye/search/%20", nil), "query", " ")
	rr := httptest.NewRecorder()
	h.Search(rr, r)
	assert.Equal(t, http.StatusBadRequest, rr.Code)
}

func TestNakliyeSearch_ReturnsMatches(t *testing.T) {
	svc := &mockNakliyeSvc{}
	svc.On("Search", mock.Anything, "arkas", 0, 0).
		Return([]domain.NakliyeRecord{{ID: "r1"}}, nil)
	h := NewNakliyeHandler(svc)

	r := withChiParam(httptest.NewRequest(http.MethodGet, "/api/nakliye/search/arkas", nil), "query", "arkas")
	rr := httptest.NewRecorder()
	h.Search(rr, r)

	assert.Equal(t, http.StatusOK, rr.Code)
	var recs []domain.NakliyeRecord
	require.NoError(t, json.NewDecoder(rr.Body).Decode(&recs))
	require.Len(t, recs, 1)
}

func TestNakliyeDelete_ReturnsConfirmation(t *testing.T) {
	svc := &mockNakliyeSvc{}
	svc.On("Delete", mock.Anything, "r1").Return(nil)
	h := NewNakliyeHandler(svc)

	r := withChiParam(httptest.NewRequest(http.MethodDelete, "/api/nakliye/r1", nil), "id", "r1")
	rr := httptest.NewRecorder()
	h.Delete(rr, r)

	assert.Equal(t, http.StatusOK, rr.Code)
	var resp MessageEnvelope
	require.NoError(t, json.NewDecoder(rr.Body).Decode(&resp))
	assert.Contains(t, resp.Message, "silindi")
}

// --- yatan-tutar ---

func TestYatanTutarCreate_Returns200(t *testing.T) {
	svc := &mockDepositSvc{}
	svc.On("Create", mock.Anything, mock.Anything).
		Return(&domain.YatanTutarRecord{ID: "d1", Tutar: 2500}, nil)
	h := NewYatanTutarHandler(svc)

	body, _ := json.Marshal(domain.CreateYatanTutarRequest{
		Tutar:          2500,
		YatmaTarihi:    time.Date(2025, 4, 15, 0, 0, 0, 0, time.UTC),
		DonemBaslangic: time.Date(2025, 4, 1, 0, 0, 0, 0, time.UTC),
		DonemBitis:     time.Date(2025, 4, 14, 0, 0, 0, 0, time.UTC),
	})
	r := httptest.NewRequest(http.MethodPost, "/api/yatan-tutar", bytes.NewReader(body))
	rr := httptest.NewRecorder()
	h.Create(rr, r)

	assert.Equal(t, http.StatusOK, rr.Code)
	var rec domain.YatanTutarRecord
	require.NoError(t, json.NewDecoder(rr.Body).Decode(&rec))
	assert.Equal(t, "d1", rec.ID)
}

// --- reports ---

func TestGeneratePDF_EmptyDataIs400(t *testing.T) {
	svc := &mockReportSvc{}
	svc.On("GeneratePDF", mock.Anything, mock.Anything).Return(nil, domain.ErrBadRequest)
	h := NewReportHandler(svc)

	r := httptest.NewRequest(http.MethodPost, "/api/generate-pdf-qr", bytes.NewBufferString(`{"data":[]}`))
	rr := httptest.NewRecorder()
	h.GeneratePDF(rr, r)
	assert.Equal(t, http.StatusBadRequest, rr.Code)
}

func TestGeneratePDF_ReturnsDownloadPointer(t *testing.T) {
	svc := &mockReportSvc{}
	svc.On("GeneratePDF", mock.Anything, mock.Anything).Return(&report.GeneratedFile{
		Success: true, FileID: "f1.pdf",
		DownloadURL: "https://api.example.com/api/download-temp/f1.pdf",
		Filename:    "Nakliye_Raporu_Mart.pdf",
	}, nil)
	h := NewReportHandler(svc)

	r := httptest.NewRequest(http.MethodPost, "/api/generate-pdf-qr",
		bytes.NewBufferString(`{"data":[{"musteri":"Arkas"}],"period":"Mart"}`))
	rr := httptest.NewRecorder()
	h.GeneratePDF(rr, r)

	assert.Equal(t, http.StatusOK, rr.Code)
	var resp report.GeneratedFile
	require.NoError(t, json.NewDecoder(rr.Body).Decode(&resp))
	assert.True(t, resp.Success)
	assert.Equal(t, "f1.pdf", resp.FileID)
}

func TestDownloadTemp_SetsAttachmentHeaders(t *testing.T) {
	svc := &mockReportSvc{}
	svc.On("Download", mock.Anything, "f1.pdf").Return([]byte("%PDF"), &domain.TempFile{
		FileID: "f1.pdf", Filename: "Nakliye_Raporu.pdf", ContentType: "application/pdf",
	}, nil)
	h := NewReportHandler(svc)

	r := withChiParam(httptest.NewRequest(http.MethodGet, "/api/download-temp/f1.pdf", nil), "fileID", "f1.pdf")
	rr := httptest.NewRecorder()
	h.DownloadTemp(rr, r)

	assert.Equal(t, http.StatusOK, rr.Code)
	assert.Equal(t, "application/pdf", rr.Header().Get("Content-Type"))
	assert.Contains(t, rr.Header().Get("Content-Disposition"), "Nakliye_Raporu.pdf")
	assert.Equal(t, "%PDF", rr.Body.String())
}

func TestDownloadTemp_SecondFetchIs404(t *testing.T) {
	svc := &mockReportSvc{}
	svc.On("Download", mock.Anything, "gone.pdf").Return(nil, nil, domain.ErrNotFound)
	h := NewReportHandler(svc)

	r := withChiParam(httptest.NewRequest(http.MethodGet, "/api/download-temp/gone.pdf", nil), "fileID", "gone.pdf")
	rr := httptest.NewRecorder()
	h.DownloadTemp(rr, r)
	assert.Equal(t, http.StatusNotFound, rr.Code)
}
