package http

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"os"
	"testing"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/TioMeko/Property-Management/internal/domain"
	"github.com/TioMeko/Property-Management/internal/service"
	apperrors "github.com/TioMeko/Property-Management/pkg/errors"
	"github.com/TioMeko/Property-Management/pkg/middleware"
)

// --- Mocks ---

type mockPaymentRepo struct {
	mock.Mock
}

func (m *mockPaymentRepo) Create(ctx context.Context, payment *domain.Payment) error {
	args := m.Called(ctx, payment)
	return args.Error(0)
}

func (m *mockPaymentRepo) GetByID(ctx context.Context, id string) (*domain.Payment, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Payment), args.Error(1)
}

func (m *mockPaymentRepo) ListByTenant(ctx context.Context, tenantID string) ([]domain.Payment, error) {
	args := m.Called(ctx, tenantID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Payment), args.Error(1)
}

func (m *mockPaymentRepo) UpdateStatus(ctx context.Context, id, status string) (*domain.Payment, error) {
	args := m.Called(ctx, id, status)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Payment), args.Error(1)
}

type mockNoticeRepo struct {
	mock.Mock
}

func (m *mockNoticeRepo) Create(ctx context.Context, notice *domain.Notice) error {
	args := m.Called(ctx, notice)
	return args.Error(0)
}

func (m *mockNoticeRepo) ListActive(ctx context.Context) ([]domain.Notice, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Notice), args.Error(1)
}

func (m *mockNoticeRepo) Deactivate(ctx context.Context, id string) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

type mockLeaseRepo struct {
	mock.Mock
}

func (m *mockLeaseRepo) Create(ctx context.Context, lease *domain.Lease) error {
	args := m.Called(ctx, lease)
	return args.Error(0)
}

func (m *mockLeaseRepo) GetActiveByTenant(ctx context.Context, tenantID string) (*domain.Lease, error) {
	args := m.Called(ctx, tenantID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Lease), args.Error(1)
}

func (m *mockLeaseRepo) ListByTenant(ctx context.Context, tenantID string) ([]domain.Lease, error) {
	args := m.Called(ctx, tenantID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Lease), args.Error(1)
}

func (m *mockLeaseRepo) UpdateStatus(ctx context.Context, id, status string) (*domain.Lease, error) {
	args := m.Called(ctx, id, status)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Lease), args.Error(1)
}

// --- Test Helpers ---

const testTenantID = "5d7b73c5-98a4-4b4c-8f2c-1f3a9f3e9a01"

func newTestLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{Level: slog.LevelError}))
}

func fakeVerifier(token string) (*middleware.Claims, error) {
	if token == "tenant-token" {
		return &middleware.Claims{UserID: testTenantID, Role: domain.RoleTenant, Name: "Maria"}, nil
	}
	if token == "landlord-token" {
		return &middleware.Claims{UserID: "landlord-1", Role: domain.RoleLandlord, Name: "Ana"}, nil
	}
	return nil, apperrors.InvalidToken(errors.New("unknown test token"))
}

func fakeLookup(ctx context.Context, userID string) (*middleware.Identity, error) {
	role := domain.RoleTenant
	if userID == "landlord-1" {
		role = domain.RoleLandlord
	}
	return &middleware.Identity{ID: userID, Role: role, Name: "Maria", Email: "maria@example.com"}, nil
}

func setupTenantRouter(paymentRepo *mockPaymentRepo, noticeRepo *mockNoticeRepo, leaseRepo *mockLeaseRepo) http.Handler {
	logger := newTestLogger()
	tenantSvc := service.NewTenantService(paymentRepo, noticeRepo, logger)
	leaseSvc := service.NewLeaseService(leaseRepo, logger)
	handler := NewTenantHandler(tenantSvc, leaseSvc, logger)

	r := chi.NewRouter()
	r.Route("/api/v1/tenant", func(r chi.Router) {
		r.Use(middleware.Authenticate(fakeVerifier, fakeLookup, logger))
		r.Use(middleware.RequireRole(domain.RoleTenant))

		r.Get("/summary", handler.Summary)
		r.Get("/lease", handler.Lease)
	})
	return r
}

// --- Summary endpoint ---

func TestSummaryEndpoint_Success(t *testing.T) {
	paymentRepo := new(mockPaymentRepo)
	noticeRepo := new(mockNoticeRepo)
	leaseRepo := new(mockLeaseRepo)
	router := setupTenantRouter(paymentRepo, noticeRepo, leaseRepo)

	due := time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC)
	paymentRepo.On("ListByTenant", mock.Anything, testTenantID).Return([]domain.Payment{
		{ID: "p1", TenantID: testTenantID, Status: domain.PaymentStatusOverdue, Amount: 100},
		{ID: "p2", TenantID: testTenantID, Status: domain.PaymentStatusPending, Date: due, Amount: 200},
	}, nil)
	noticeRepo.On("ListActive", mock.Anything).Return([]domain.Notice{}, nil)

	req := httptest.NewRequest(http.MethodGet, "/api/v1/tenant/summary", nil)
	req.Header.Set("Authorization", "Bearer tenant-token")
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)

	// The dashboard consumes the bare summary object, no envelope.
	var body map[string]json.RawMessage
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	for _, key := range []string{"nextDueDate", "nextDueAmount", "overdueAmount", "totalDue", "notices"} {
		assert.Contains(t, body, key)
	}
	assert.NotContains(t, body, "data")

	var summary domain.TenantSummary
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &summary))
	require.NotNil(t, summary.NextDueDate)
	assert.True(t, due.Equal(*summary.NextDueDate))
	assert.Equal(t, int64(200), summary.NextDueAmount)
	assert.Equal(t, int64(100), summary.OverdueAmount)
	assert.Equal(t, int64(300), summary.TotalDue)
	assert.Empty(t, summary.Notices)
}

func TestSummaryEndpoint_Unauthorized(t *testing.T) {
	router := setupTenantRouter(new(mockPaymentRepo), new(mockNoticeRepo), new(mockLeaseRepo))

	req := httptest.NewRequest(http.MethodGet, "/api/v1/tenant/summary", nil)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusUnauthorized, rec.Code)
	assert.JSONEq(t, `{"message":"Unauthorized"}`, rec.Body.String())
}

func TestSummaryEndpoint_LandlordForbidden(t *testing.T) {
	router := setupTenantRouter(new(mockPaymentRepo), new(mockNoticeRepo), new(mockLeaseRepo))

	req := httptest.NewRequest(http.MethodGet, "/api/v1/tenant/summary", nil)
	req.Header.Set("Authorization", "Bearer landlord-token")
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusForbidden, rec.Code)
	assert.JSONEq(t, `{"message":"Forbidden"}`, rec.Body.String())
}

// --- Lease endpoint ---

func TestLeaseEndpoint_NoActiveLease(t *testing.T) {
	paymentRepo := new(mockPaymentRepo)
	noticeRepo := new(mockNoticeRepo)
	leaseRepo := new(mockLeaseRepo)
	router := setupTenantRouter(paymentRepo, noticeRepo, leaseRepo)

	leaseRepo.On("GetActiveByTenant", mock.Anything, testTenantID).Return(nil, apperrors.ErrNotFound)

	req := httptest.NewRequest(http.MethodGet, "/api/v1/tenant/lease", nil)
	req.Header.Set("Authorization", "Bearer tenant-token")
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestLeaseEndpoint_Success(t *testing.T) {
	paymentRepo := new(mockPaymentRepo)
	noticeRepo := new(mockNoticeRepo)
	leaseRepo := new(mockLeaseRepo)
	router := setupTenantRouter(paymentRepo, noticeRepo, leaseRepo)

	lease := &domain.Lease{
		ID:            "lease-1",
		TenantID:      testTenantID,
		Unit:          "4B",
		StartDate:     time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC),
		EndDate:       time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC),
		RentAmount:    150000,
		DepositAmount: 150000,
		Status:        domain.LeaseStatusActive,
	}
	leaseRepo.On("GetActiveByTenant", mock.Anything, testTenantID).Return(lease, nil)

	req := httptest.NewRequest(http.MethodGet, "/api/v1/tenant/lease", nil)
	req.Header.Set("Authorization", "Bearer tenant-token")
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)

	var body struct {
		Data domain.LeaseSummary `json:"data"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	assert.Equal(t, "4B", body.Data.Unit)
	assert.Equal(t, int64(150000), body.Data.Rent)
	assert.Equal(t, domain.LeaseStatusActive, body.Data.Status)
}
