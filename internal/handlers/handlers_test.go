package handlers

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"github.com/ternarybob/arbor"
	"github.com/ternarybob/propcast/internal/interfaces"
	"github.com/ternarybob/propcast/internal/models"
	"github.com/ternarybob/propcast/internal/services/curves"
	"github.com/ternarybob/propcast/internal/services/projection"
	"github.com/ternarybob/propcast/internal/worker"
)

// mockProjectionService implements interfaces.ProjectionService for testing
type mockProjectionService struct {
	mock.Mock
}

func (m *mockProjectionService) Project(ctx context.Context, req models.ProjectionRequest) (*models.ProjectionResult, error) {
	args := m.Called(ctx, req)
	result, _ := args.Get(0).(*models.ProjectionResult)
	return result, args.Error(1)
}

func (m *mockProjectionService) ProjectReport(ctx context.Context, req models.ProjectionRequest) (*models.ProjectionReport, error) {
	args := m.Called(ctx, req)
	report, _ := args.Get(0).(*models.ProjectionReport)
	return report, args.Error(1)
}

func (m *mockProjectionService) HandoverPrice(listingPrice float64, handoverYear int, annualGrowthRate *float64) (float64, error) {
	args := m.Called(listingPrice, handoverYear, annualGrowthRate)
	return args.Get(0).(float64), args.Error(1)
}

func (m *mockProjectionService) PriceAfterHandover(ctx context.Context, locality, propertyType string, priceAtHandover float64, handoverYear, yearsAfter int) (float64, error) {
	args := m.Called(ctx, locality, propertyType, priceAtHandover, handoverYear, yearsAfter)
	return args.Get(0).(float64), args.Error(1)
}

// mockCurveService implements interfaces.CurveService for testing
type mockCurveService struct {
	mock.Mock
}

func (m *mockCurveService) Lookup(ctx context.Context, locality, propertyType string) models.ProjectionCurve {
	args := m.Called(ctx, locality, propertyType)
	return args.Get(0).(models.ProjectionCurve)
}

func (m *mockCurveService) Generation() uint64 {
	return 0
}

func (m *mockCurveService) Get(ctx context.Context, locality, propertyType string) (*models.ProjectionCurve, error) {
	args := m.Called(ctx, locality, propertyType)
	curve, _ := args.Get(0).(*models.ProjectionCurve)
	return curve, args.Error(1)
}

func (m *mockCurveService) List(ctx context.Context) []models.ProjectionCurve {
	args := m.Called(ctx)
	return args.Get(0).([]models.ProjectionCurve)
}

func (m *mockCurveService) Save(ctx context.Context, curve *models.ProjectionCurve) error {
	return m.Called(ctx, curve).Error(0)
}

func (m *mockCurveService) Delete(ctx context.Context, locality, propertyType string) error {
	return m.Called(ctx, locality, propertyType).Error(0)
}

func (m *mockCurveService) Reload(ctx context.Context) error {
	return m.Called(ctx).Error(0)
}

var (
	_ interfaces.ProjectionService = (*mockProjectionService)(nil)
	_ interfaces.CurveService      = (*mockCurveService)(nil)
)

func decodeBody(t *testing.T, rec *httptest.ResponseRecorder) map[string]interface{} {
	t.Helper()
	var body map[string]interface{}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	return body
}

func newProjectionHandler(svc *mockProjectionService) *ProjectionHandler {
	return NewProjectionHandler(svc, worker.NewPool(arbor.NewNoOpLogger(), 2), 3, arbor.NewNoOpLogger())
}

func marinaCurve() models.ProjectionCurve {
	return models.ProjectionCurve{
		Locality:     "Marina",
		PropertyType: "Apartment",
		Basis:        models.YieldBasisDirectPercentage,
		Points: []models.ProjectionPoint{
			{AppreciationPercent: 5, Yield: 7},
			{AppreciationPercent: 9, Yield: 7.5},
		},
	}
}

func TestProjectionHandler_Project(t *testing.T) {
	svc := &mockProjectionService{}
	handler := newProjectionHandler(svc)

	svc.On("ProjectReport", mock.Anything, mock.MatchedBy(func(req models.ProjectionRequest) bool {
		return req.Locality == "Marina" && req.Principal == 1_000_000 && req.Financing.Mode == models.FinancingMortgage
	})).Return(&models.ProjectionReport{Locality: "Marina", FutureValue: 1_335_700, BreakEvenYear: 4}, nil)

	body := `{"locality":"Marina","property_type":"Apartment","principal":1000000,"horizon_years":3,"financing":{"mode":"mortgage"},"usage":"rental"}`
	req := httptest.NewRequest(http.MethodPost, "/api/projections", strings.NewReader(body))
	rec := httptest.NewRecorder()

	handler.ProjectHandler(rec, req)

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "application/json", rec.Header().Get("Content-Type"))
	got := decodeBody(t, rec)
	assert.Equal(t, 1_335_700.0, got["future_value"])
	assert.Equal(t, 4.0, got["break_even_year"])
	svc.AssertExpectations(t)
}

func TestProjectionHandler_Errors(t *testing.T) {
	tests := []struct {
		name       string
		method     string
		body       string
		serviceErr error
		wantStatus int
	}{
		{name: "wrong method", method: http.MethodGet, wantStatus: http.StatusMethodNotAllowed},
		{name: "malformed body", method: http.MethodPost, body: `{"principal":`, wantStatus: http.StatusBadRequest},
		{name: "unknown field", method: http.MethodPost, body: `{"principle":5}`, wantStatus: http.StatusBadRequest},
		{
			name:       "validation error",
			method:     http.MethodPost,
			body:       `{"principal":0}`,
			serviceErr: &projection.ValidationError{Field: "principal", Reason: "failed gt=0"},
			wantStatus: http.StatusBadRequest,
		},
		{
			name:       "internal error",
			method:     http.MethodPost,
			body:       `{"principal":5}`,
			serviceErr: errors.New("disk on fire"),
			wantStatus: http.StatusInternalServerError,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svc := &mockProjectionService{}
			if tt.serviceErr != nil {
				svc.On("ProjectReport", mock.Anything, mock.Anything).Return(nil, tt.serviceErr)
			}
			handler := newProjectionHandler(svc)

			req := httptest.NewRequest(tt.method, "/api/projections", strings.NewReader(tt.body))
			rec := httptest.NewRecorder()
			handler.ProjectHandler(rec, req)

			assert.Equal(t, tt.wantStatus, rec.Code)
			got := decodeBody(t, rec)
			assert.Equal(t, "error", got["status"])
			if tt.wantStatus == http.StatusInternalServerError {
				assert.Equal(t, "Internal server error", got["error"], "internal errors are not leaked")
			}
			if tt.serviceErr == nil {
				svc.AssertNotCalled(t, "ProjectReport", mock.Anything, mock.Anything)
			}
		})
	}
}

func TestProjectionHandler_Batch(t *testing.T) {
	svc := &mockProjectionService{}
	svc.On("ProjectReport", mock.Anything, mock.MatchedBy(func(req models.ProjectionRequest) bool {
		return req.Locality == "Marina"
	})).Return(&models.ProjectionReport{Locality: "Marina", FutureValue: 1_335_700}, nil)
	svc.On("ProjectReport", mock.Anything, mock.MatchedBy(func(req models.ProjectionRequest) bool {
		return req.Locality == "JVC"
	})).Return(&models.ProjectionReport{Locality: "JVC", FutureValue: 1_200_000}, nil)
	svc.On("ProjectReport", mock.Anything, mock.Anything).
		Return(nil, &projection.ValidationError{Field: "principal", Reason: "failed gt=0"})
	handler := newProjectionHandler(svc)

	body := `{"requests":[{"locality":"Marina","principal":1},{"locality":"Broken","principal":0},{"locality":"JVC","principal":1}]}`
	rec := httptest.NewRecorder()
	handler.BatchHandler(rec, httptest.NewRequest(http.MethodPost, "/api/projections/batch", strings.NewReader(body)))
	require.Equal(t, http.StatusOK, rec.Code)

	var got struct {
		Results []BatchItem `json:"results"`
		Count   int         `json:"count"`
		Failed  int         `json:"failed"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &got))
	require.Len(t, got.Results, 3)
	assert.Equal(t, 3, got.Count)
	assert.Equal(t, 1, got.Failed)
	assert.Equal(t, "Marina", got.Results[0].Report.Locality)
	assert.Nil(t, got.Results[1].Report)
	assert.Contains(t, got.Results[1].Error, "principal")
	assert.Equal(t, "JVC", got.Results[2].Report.Locality)

	t.Run("rejects empty and oversized batches", func(t *testing.T) {
		for _, body := range []string{
			`{"requests":[]}`,
			`{"requests":[{},{},{},{}]}`,
		} {
			rec := httptest.NewRecorder()
			handler.BatchHandler(rec, httptest.NewRequest(http.MethodPost, "/api/projections/batch", strings.NewReader(body)))
			assert.Equal(t, http.StatusBadRequest, rec.Code, body)
		}
	})
}

func TestHandoverHandler_Price(t *testing.T) {
	svc := &mockProjectionService{}
	svc.On("HandoverPrice", 1_000_000.0, 2028, (*float64)(nil)).Return(1_210_000.004, nil)
	handler := NewHandoverHandler(svc, arbor.NewNoOpLogger())

	req := httptest.NewRequest(http.MethodPost, "/api/handover/price", strings.NewReader(`{"listing_price":1000000,"handover_year":2028}`))
	rec := httptest.NewRecorder()
	handler.PriceHandler(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)
	got := decodeBody(t, rec)
	assert.Equal(t, 1_210_000.0, got["handover_price"])
	svc.AssertExpectations(t)
}

func TestHandoverHandler_PriceExplicitZeroGrowth(t *testing.T) {
	svc := &mockProjectionService{}
	svc.On("HandoverPrice", 1_000_000.0, 2028, mock.MatchedBy(func(rate *float64) bool {
		return rate != nil && *rate == 0
	})).Return(1_200_000.0, nil)
	handler := NewHandoverHandler(svc, arbor.NewNoOpLogger())

	req := httptest.NewRequest(http.MethodPost, "/api/handover/price",
		strings.NewReader(`{"listing_price":1000000,"handover_year":2028,"annual_growth_rate":0}`))
	rec := httptest.NewRecorder()
	handler.PriceHandler(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, 1_200_000.0, decodeBody(t, rec)["handover_price"])
	svc.AssertExpectations(t)
}

func TestHandoverHandler_RejectsOutOfRangeYear(t *testing.T) {
	service := projection.NewService(projection.NewEngine(arbor.NewNoOpLogger()), &mockCurveService{}, arbor.NewNoOpLogger())
	handler := NewHandoverHandler(service, arbor.NewNoOpLogger())

	rec := httptest.NewRecorder()
	handler.PriceHandler(rec, httptest.NewRequest(http.MethodPost, "/api/handover/price",
		strings.NewReader(`{"listing_price":1000000,"handover_year":300002026}`)))
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Contains(t, decodeBody(t, rec)["error"], "handover_year")

	rec = httptest.NewRecorder()
	handler.ResaleHandler(rec, httptest.NewRequest(http.MethodPost, "/api/handover/resale",
		strings.NewReader(`{"locality":"Marina","property_type":"Apartment","price_at_handover":1000000,"handover_year":-5,"years_after":1}`)))
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestHandoverHandler_Resale(t *testing.T) {
	svc := &mockProjectionService{}
	svc.On("PriceAfterHandover", mock.Anything, "Marina", "Apartment", 1_000_000.0, 2028, 2).Return(1_066_900.0, nil)
	svc.On("PriceAfterHandover", mock.Anything, "Marina", "Apartment", 1_000_000.0, 2028, -1).
		Return(0.0, &projection.ValidationError{Field: "years_after", Reason: "must not be negative"})
	handler := NewHandoverHandler(svc, arbor.NewNoOpLogger())

	req := httptest.NewRequest(http.MethodPost, "/api/handover/resale",
		strings.NewReader(`{"locality":"Marina","property_type":"Apartment","price_at_handover":1000000,"handover_year":2028,"years_after":2}`))
	rec := httptest.NewRecorder()
	handler.ResaleHandler(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, 1_066_900.0, decodeBody(t, rec)["resale_price"])

	req = httptest.NewRequest(http.MethodPost, "/api/handover/resale",
		strings.NewReader(`{"locality":"Marina","property_type":"Apartment","price_at_handover":1000000,"handover_year":2028,"years_after":-1}`))
	rec = httptest.NewRecorder()
	handler.ResaleHandler(rec, req)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestCurveHandler_ListAndLookup(t *testing.T) {
	svc := &mockCurveService{}
	svc.On("List", mock.Anything).Return([]models.ProjectionCurve{marinaCurve()})
	svc.On("Lookup", mock.Anything, "Marina", "Apartment").Return(marinaCurve())
	svc.On("Lookup", mock.Anything, "Nowhere", "Castle").Return(curves.DefaultCurve())
	handler := NewCurveHandler(svc, arbor.NewNoOpLogger())

	rec := httptest.NewRecorder()
	handler.ListHandler(rec, httptest.NewRequest(http.MethodGet, "/api/curves", nil))
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, 1.0, decodeBody(t, rec)["count"])

	rec = httptest.NewRecorder()
	handler.LookupHandler(rec, httptest.NewRequest(http.MethodGet, "/api/curves/lookup?locality=Marina&property_type=Apartment", nil))
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, false, decodeBody(t, rec)["fallback"])

	rec = httptest.NewRecorder()
	handler.LookupHandler(rec, httptest.NewRequest(http.MethodGet, "/api/curves/lookup?locality=Nowhere&property_type=Castle", nil))
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, true, decodeBody(t, rec)["fallback"])
}

func TestCurveHandler_Save(t *testing.T) {
	svc := &mockCurveService{}
	svc.On("Save", mock.Anything, mock.MatchedBy(func(c *models.ProjectionCurve) bool {
		return c.Locality == "Marina" && len(c.Points) == 2
	})).Return(nil).Once()
	handler := NewCurveHandler(svc, arbor.NewNoOpLogger())

	payload, err := json.Marshal(marinaCurve())
	require.NoError(t, err)

	rec := httptest.NewRecorder()
	handler.SaveHandler(rec, httptest.NewRequest(http.MethodPut, "/api/curves", strings.NewReader(string(payload))))
	assert.Equal(t, http.StatusOK, rec.Code)

	invalid := marinaCurve()
	invalid.Basis = "monthly"
	payload, err = json.Marshal(invalid)
	require.NoError(t, err)

	rec = httptest.NewRecorder()
	handler.SaveHandler(rec, httptest.NewRequest(http.MethodPut, "/api/curves", strings.NewReader(string(payload))))
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	svc.AssertNumberOfCalls(t, "Save", 1)
}

func TestCurveHandler_Delete(t *testing.T) {
	svc := &mockCurveService{}
	svc.On("Delete", mock.Anything, "Marina", "Apartment").Return(nil)
	svc.On("Delete", mock.Anything, "Nowhere", "Castle").Return(interfaces.ErrCurveNotFound)
	handler := NewCurveHandler(svc, arbor.NewNoOpLogger())

	tests := []struct {
		query      string
		wantStatus int
	}{
		{query: "locality=Marina&property_type=Apartment", wantStatus: http.StatusOK},
		{query: "locality=Nowhere&property_type=Castle", wantStatus: http.StatusNotFound},
		{query: "locality=Marina", wantStatus: http.StatusBadRequest},
	}

	for _, tt := range tests {
		t.Run(tt.query, func(t *testing.T) {
			rec := httptest.NewRecorder()
			handler.DeleteHandler(rec, httptest.NewRequest(http.MethodDelete, "/api/curves?"+tt.query, nil))
			assert.Equal(t, tt.wantStatus, rec.Code)
		})
	}
}

func TestAPIHandler(t *testing.T) {
	svc := &mockCurveService{}
	svc.On("List", mock.Anything).Return([]models.ProjectionCurve{marinaCurve(), curves.DefaultCurve()})
	handler := NewAPIHandler(svc, arbor.NewNoOpLogger())

	rec := httptest.NewRecorder()
	handler.HealthHandler(rec, httptest.NewRequest(http.MethodGet, "/api/health", nil))
	require.Equal(t, http.StatusOK, rec.Code)
	body := decodeBody(t, rec)
	assert.Equal(t, "ok", body["status"])
	assert.Equal(t, 2.0, body["curves"])

	rec = httptest.NewRecorder()
	handler.VersionHandler(rec, httptest.NewRequest(http.MethodGet, "/api/version", nil))
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, decodeBody(t, rec), "version")

	rec = httptest.NewRecorder()
	handler.NotFoundHandler(rec, httptest.NewRequest(http.MethodGet, "/api/nope", nil))
	assert.Equal(t, http.StatusNotFound, rec.Code)
	assert.Equal(t, "/api/nope", decodeBody(t, rec)["path"])
}

func TestCurveHandler_Reload(t *testing.T) {
	svc := &mockCurveService{}
	svc.On("Reload", mock.Anything).Return(nil).Once()
	svc.On("Reload", mock.Anything).Return(errors.New("storage offline")).Once()
	svc.On("List", mock.Anything).Return([]models.ProjectionCurve{marinaCurve()})
	handler := NewCurveHandler(svc, arbor.NewNoOpLogger())

	rec := httptest.NewRecorder()
	handler.ReloadHandler(rec, httptest.NewRequest(http.MethodPost, "/api/curves/reload", nil))
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, 1.0, decodeBody(t, rec)["curves"])

	rec = httptest.NewRecorder()
	handler.ReloadHandler(rec, httptest.NewRequest(http.MethodPost, "/api/curves/reload", nil))
	assert.Equal(t, http.StatusInternalServerError, rec.Code)
}
