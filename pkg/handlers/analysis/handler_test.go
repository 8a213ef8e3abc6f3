package analysis

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/de-tools/fin-atlas/pkg/models/api"
	"github.com/de-tools/fin-atlas/pkg/models/domain"
	"github.com/de-tools/fin-atlas/pkg/services/analysis"
	"github.com/de-tools/fin-atlas/pkg/services/benchmark"
	"github.com/de-tools/fin-atlas/pkg/services/comparison"
	"github.com/de-tools/fin-atlas/pkg/services/extraction"
	"github.com/go-chi/chi/v5"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

type mockAnalyzer struct {
	mock.Mock
}

func (m *mockAnalyzer) Analyze(ctx context.Context, req analysis.Request) (*domain.Analysis, error) {
	args := m.Called(ctx, req)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Analysis), args.Error(1)
}

type mockComparator struct {
	mock.Mock
}

func (m *mockComparator) Compare(
	ctx context.Context,
	companyRatios map[domain.BenchmarkMetric]float64,
	categoryID int,
) (*domain.IndustryComparison, error) {
	args := m.Called(ctx, companyRatios, categoryID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.IndustryComparison), args.Error(1)
}

type mockExtractStore struct {
	mock.Mock
}

func (m *mockExtractStore) Add(ctx context.Context, extracts []domain.RawFinancialExtract) error {
	args := m.Called(ctx, extracts)
	return args.Error(0)
}

func (m *mockExtractStore) List(ctx context.Context, companyID, period string) ([]domain.RawFinancialExtract, error) {
	args := m.Called(ctx, companyID, period)
	return args.Get(0).([]domain.RawFinancialExtract), args.Error(1)
}

func intPtr(v int) *int {
	return &v
}

func testRepository(t *testing.T) benchmark.Repository {
	t.Helper()
	repo, err := benchmark.New(domain.BenchmarkDataset{
		DefaultCode: "T",
		Categories: []domain.Category{
			{ID: 2, Code: "E", Name: "製造業", Level: domain.LevelMajor},
			{ID: 8, Code: "T", Name: "その他", Level: domain.LevelMajor},
			{ID: 21, Code: "E09", Name: "食料品製造業", Level: domain.LevelMiddle, ParentID: intPtr(2)},
		},
		Benchmarks: []domain.IndustryBenchmarkData{
			{
				Category:    domain.Category{ID: 2},
				Values:      map[domain.BenchmarkMetric]float64{domain.BenchmarkReturnOnAssets: 4.8},
				SampleSize:  1200,
				DataYear:    2023,
				LastUpdated: time.Date(2024, 3, 1, 0, 0, 0, 0, time.UTC),
			},
			{
				Category: domain.Category{ID: 8},
				Values:   map[domain.BenchmarkMetric]float64{domain.BenchmarkReturnOnAssets: 3.5},
			},
		},
	})
	require.NoError(t, err)
	return repo
}

type fixture struct {
	analyzer   *mockAnalyzer
	comparator *mockComparator
	store      *mockExtractStore
	router     http.Handler
}

func newFixture(t *testing.T) *fixture {
	t.Helper()
	f := &fixture{
		analyzer:   new(mockAnalyzer),
		comparator: new(mockComparator),
		store:      new(mockExtractStore),
	}
	h := NewHandler(Dependencies{
		Analyzer:   f.analyzer,
		Comparator: f.comparator,
		Benchmarks: testRepository(t),
		Extractors: extraction.NewDefaultRegistry(func() time.Time {
			return time.Date(2024, 5, 1, 0, 0, 0, 0, time.UTC)
		}),
		Store:  f.store,
		Policy: domain.NullPropagate,
	})
	logger := zerolog.New(zerolog.NewTestWriter(t))
	r := chi.NewRouter()
	r.Use(func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, req *http.Request) {
			next.ServeHTTP(w, req.WithContext(logger.WithContext(req.Context())))
		})
	})
	h.Routes(r)
	f.router = r
	return f
}

func (f *fixture) do(method, path, body string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(method, path, strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()
	f.router.ServeHTTP(rec, req)
	return rec
}

func decodeBody[T any](t *testing.T, rec *httptest.ResponseRecorder) T {
	t.Helper()
	var v T
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&v))
	return v
}

func TestAnalyze(t *testing.T) {
	const validBody = `{
		"companyId": "c-1",
		"period": "2023",
		"categoryId": 2,
		"extracts": [{"source": "MANUAL", "confidence": 1, "values": {"totalAssets": 1000, "netIncome": 50}}]
	}`

	tests := []struct {
		name           string
		body           string
		setupMock      func(m *mockAnalyzer)
		expectedStatus int
	}{
		{
			name:           "invalid json",
			body:           `{"companyId":`,
			setupMock:      func(m *mockAnalyzer) {},
			expectedStatus: http.StatusBadRequest,
		},
		{
			name:           "missing period",
			body:           `{"companyId": "c-1"}`,
			setupMock:      func(m *mockAnalyzer) {},
			expectedStatus: http.StatusBadRequest,
		},
		{
			name:           "invalid source",
			body:           `{"companyId": "c-1", "period": "2023", "extracts": [{"source": "FAX"}]}`,
			setupMock:      func(m *mockAnalyzer) {},
			expectedStatus: http.StatusBadRequest,
		},
		{
			name: "nothing to analyze",
			body: `{"companyId": "c-1", "period": "2023"}`,
			setupMock: func(m *mockAnalyzer) {
				m.On("Analyze", mock.Anything, mock.Anything).Return(nil, analysis.ErrNoExtracts)
			},
			expectedStatus: http.StatusNotFound,
		},
		{
			name: "pipeline failure",
			body: validBody,
			setupMock: func(m *mockAnalyzer) {
				m.On("Analyze", mock.Anything, mock.Anything).Return(nil, fmt.Errorf("connection refused"))
			},
			expectedStatus: http.StatusInternalServerError,
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			f := newFixture(t)
			tc.setupMock(f.analyzer)

			rec := f.do(http.MethodPost, "/analysis", tc.body)

			assert.Equal(t, tc.expectedStatus, rec.Code)
			resp := decodeBody[api.ErrorResponse](t, rec)
			assert.False(t, resp.Success)
			assert.NotEmpty(t, resp.Error)
			f.analyzer.AssertExpectations(t)
		})
	}

	t.Run("success renders defaulted ratios as null", func(t *testing.T) {
		f := newFixture(t)
		f.analyzer.On("Analyze", mock.Anything, mock.MatchedBy(func(req analysis.Request) bool {
			return req.CompanyID == "c-1" &&
				req.CategoryID != nil && *req.CategoryID == 2 &&
				len(req.Extracts) == 1 &&
				req.Extracts[0].Source == domain.SourceManual &&
				req.Extracts[0].Values["totalAssets"] == json.Number("1000")
		})).Return(&domain.Analysis{
			ID:        "a-1",
			CompanyID: "c-1",
			Period:    "2023",
			Ratios: domain.FinancialRatios{
				Profitability: domain.Profitability{ROA: 5},
				Defaulted:     []domain.Metric{domain.MetricROE},
			},
			ComparisonUnavailable: comparison.ErrNoBenchmark.Error(),
		}, nil)

		rec := f.do(http.MethodPost, "/analysis", validBody)

		require.Equal(t, http.StatusOK, rec.Code)
		resp := decodeBody[api.Analysis](t, rec)
		assert.Equal(t, "a-1", resp.Id)
		values := map[string]*float64{}
		for _, r := range resp.Ratios {
			values[r.Metric] = r.Value
		}
		require.NotNil(t, values["roa"])
		assert.Equal(t, 5.0, *values["roa"])
		assert.Nil(t, values["roe"])
		assert.Nil(t, resp.Comparison)
		assert.Equal(t, comparison.ErrNoBenchmark.Error(), resp.ComparisonUnavailable)
		f.analyzer.AssertExpectations(t)
	})
}

func TestCompareWithIndustry(t *testing.T) {
	result := &domain.IndustryComparison{
		RequestedCategoryID: 21,
		Fallback:            true,
		Benchmark: domain.IndustryBenchmarkData{
			Category:   domain.Category{ID: 2, Code: "E", Name: "製造業", Level: domain.LevelMajor},
			SampleSize: 1200,
			DataYear:   2023,
		},
		Metrics: map[domain.BenchmarkMetric]domain.ComparisonResult{
			domain.BenchmarkReturnOnAssets: {CompanyValue: 6.25, IndustryAverage: 4.8, Ranking: domain.RankingExcellent},
		},
		Order:        []domain.BenchmarkMetric{domain.BenchmarkReturnOnAssets},
		OverallScore: 100,
	}

	tests := []struct {
		name           string
		body           string
		setupMock      func(m *mockComparator)
		expectedStatus int
		expectedError  string
	}{
		{
			name:           "missing financial data",
			body:           `{"categoryId": 21}`,
			setupMock:      func(m *mockComparator) {},
			expectedStatus: http.StatusBadRequest,
			expectedError:  msgMissingComparisonInput,
		},
		{
			name:           "missing category",
			body:           `{"financialData": {"returnOnAssets": 6.25}}`,
			setupMock:      func(m *mockComparator) {},
			expectedStatus: http.StatusBadRequest,
			expectedError:  msgMissingComparisonInput,
		},
		{
			name: "no benchmark",
			body: `{"financialData": {"returnOnAssets": 6.25}, "categoryId": 999}`,
			setupMock: func(m *mockComparator) {
				m.On("Compare", mock.Anything, mock.Anything, 999).Return(nil, comparison.ErrNoBenchmark)
			},
			expectedStatus: http.StatusNotFound,
			expectedError:  msgNoBenchmark,
		},
		{
			name: "comparison failure",
			body: `{"financialData": {"returnOnAssets": 6.25}, "categoryId": 21}`,
			setupMock: func(m *mockComparator) {
				m.On("Compare", mock.Anything, mock.Anything, 21).Return(nil, fmt.Errorf("boom"))
			},
			expectedStatus: http.StatusInternalServerError,
			expectedError:  msgComparisonFailed,
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			f := newFixture(t)
			tc.setupMock(f.comparator)

			rec := f.do(http.MethodPost, "/industry-comparison", tc.body)

			assert.Equal(t, tc.expectedStatus, rec.Code)
			assert.Equal(t, tc.expectedError, decodeBody[api.ErrorResponse](t, rec).Error)
			f.comparator.AssertExpectations(t)
		})
	}

	t.Run("success", func(t *testing.T) {
		f := newFixture(t)
		f.comparator.On("Compare", mock.Anything,
			map[domain.BenchmarkMetric]float64{domain.BenchmarkReturnOnAssets: 6.25}, 21).
			Return(result, nil)

		rec := f.do(http.MethodPost, "/industry-comparison", `{"financialData": {"returnOnAssets": 6.25}, "categoryId": 21}`)

		require.Equal(t, http.StatusOK, rec.Code)
		resp := decodeBody[api.IndustryComparisonResponse](t, rec)
		assert.True(t, resp.Success)
		require.NotNil(t, resp.Comparison)
		assert.Equal(t, 100, resp.Comparison.OverallScore)
		assert.Equal(t, "excellent", resp.Comparison.Metrics["returnOnAssets"].Ranking)
		require.NotNil(t, resp.BenchmarkInfo)
		assert.Equal(t, 21, resp.BenchmarkInfo.RequestedCategoryId)
		assert.Equal(t, "E", resp.BenchmarkInfo.Category.Code)
		assert.True(t, resp.BenchmarkInfo.Fallback)
		f.comparator.AssertExpectations(t)
	})
}

func TestListCategories(t *testing.T) {
	tests := []struct {
		name           string
		path           string
		expectedStatus int
		expectedCodes  []string
	}{
		{"all", "/categories", http.StatusOK, []string{"E", "T", "E09"}},
		{"by level", "/categories?level=major", http.StatusOK, []string{"E", "T"}},
		{"by level and parent", "/categories?level=middle&parentId=2", http.StatusOK, []string{"E09"}},
		{"children of parent", "/categories?parentId=2", http.StatusOK, []string{"E09"}},
		{"no match", "/categories?level=minor", http.StatusOK, []string{}},
		{"invalid level", "/categories?level=sector", http.StatusBadRequest, nil},
		{"invalid parent", "/categories?parentId=food", http.StatusBadRequest, nil},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			f := newFixture(t)

			rec := f.do(http.MethodGet, tc.path, "")

			require.Equal(t, tc.expectedStatus, rec.Code)
			if tc.expectedCodes == nil {
				return
			}
			codes := []string{}
			for _, c := range decodeBody[[]api.Category](t, rec) {
				codes = append(codes, c.Code)
			}
			assert.Equal(t, tc.expectedCodes, codes)
		})
	}
}

func TestListChildren(t *testing.T) {
	f := newFixture(t)

	rec := f.do(http.MethodGet, "/categories/2/children", "")
	require.Equal(t, http.StatusOK, rec.Code)
	children := decodeBody[[]api.Category](t, rec)
	require.Len(t, children, 1)
	assert.Equal(t, "E09", children[0].Code)
	require.NotNil(t, children[0].ParentId)
	assert.Equal(t, 2, *children[0].ParentId)

	assert.Equal(t, http.StatusNotFound, f.do(http.MethodGet, "/categories/999/children", "").Code)
	assert.Equal(t, http.StatusBadRequest, f.do(http.MethodGet, "/categories/abc/children", "").Code)
}

func TestGetBenchmark(t *testing.T) {
	f := newFixture(t)

	rec := f.do(http.MethodGet, "/benchmarks/2", "")
	require.Equal(t, http.StatusOK, rec.Code)
	b := decodeBody[api.Benchmark](t, rec)
	assert.Equal(t, 4.8, b.Values["returnOnAssets"])
	assert.Equal(t, "2024-03-01", b.LastUpdated)

	assert.Equal(t, http.StatusNotFound, f.do(http.MethodGet, "/benchmarks/21", "").Code)

	rec = f.do(http.MethodGet, "/benchmarks/21?resolve=true", "")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "E", decodeBody[api.Benchmark](t, rec).Category.Code)
}

func multipartBody(t *testing.T, fields map[string]string, fileName, content string) (*bytes.Buffer, string) {
	t.Helper()
	var buf bytes.Buffer
	w := multipart.NewWriter(&buf)
	for k, v := range fields {
		require.NoError(t, w.WriteField(k, v))
	}
	if fileName != "" {
		part, err := w.CreateFormFile("file", fileName)
		require.NoError(t, err)
		_, err = part.Write([]byte(content))
		require.NoError(t, err)
	}
	require.NoError(t, w.Close())
	return &buf, w.FormDataContentType()
}

func TestUploadDocument(t *testing.T) {
	fields := map[string]string{"companyId": "c-1", "period": "2023", "documentType": "pl"}

	tests := []struct {
		name           string
		fields         map[string]string
		fileName       string
		content        string
		setupMock      func(m *mockExtractStore)
		expectedStatus int
	}{
		{
			name:     "csv is extracted and stored",
			fields:   fields,
			fileName: "pl.csv",
			content:  "売上高,\"12,500,000\"\n営業利益,750000\n",
			setupMock: func(m *mockExtractStore) {
				m.On("Add", mock.Anything, mock.MatchedBy(func(ex []domain.RawFinancialExtract) bool {
					return len(ex) == 1 &&
						ex[0].CompanyID == "c-1" &&
						ex[0].Source == domain.SourceAPI &&
						ex[0].Values["sales"] == "12,500,000"
				})).Return(nil)
			},
			expectedStatus: http.StatusCreated,
		},
		{
			name:           "unsupported extension",
			fields:         fields,
			fileName:       "scan.png",
			content:        "not an image",
			setupMock:      func(m *mockExtractStore) {},
			expectedStatus: http.StatusUnsupportedMediaType,
		},
		{
			name:           "missing company",
			fields:         map[string]string{"period": "2023"},
			fileName:       "pl.csv",
			content:        "売上高,1000\n",
			setupMock:      func(m *mockExtractStore) {},
			expectedStatus: http.StatusBadRequest,
		},
		{
			name:           "missing file",
			fields:         fields,
			setupMock:      func(m *mockExtractStore) {},
			expectedStatus: http.StatusBadRequest,
		},
		{
			name:     "store failure",
			fields:   fields,
			fileName: "pl.csv",
			content:  "売上高,1000\n",
			setupMock: func(m *mockExtractStore) {
				m.On("Add", mock.Anything, mock.Anything).Return(fmt.Errorf("disk full"))
			},
			expectedStatus: http.StatusInternalServerError,
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			f := newFixture(t)
			tc.setupMock(f.store)
			body, contentType := multipartBody(t, tc.fields, tc.fileName, tc.content)
			req := httptest.NewRequest(http.MethodPost, "/documents", body)
			req.Header.Set("Content-Type", contentType)
			rec := httptest.NewRecorder()

			f.router.ServeHTTP(rec, req)

			assert.Equal(t, tc.expectedStatus, rec.Code)
			if rec.Code == http.StatusCreated {
				ex := decodeBody[api.Extract](t, rec)
				assert.Equal(t, "API", ex.Source)
				assert.Equal(t, "pl", ex.DocumentType)
				assert.Equal(t, "pl.csv", ex.FileName)
			}
			f.store.AssertExpectations(t)
		})
	}
}
