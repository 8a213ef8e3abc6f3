package server

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	handlers "github.com/de-tools/fin-atlas/pkg/handlers/analysis"
	"github.com/de-tools/fin-atlas/pkg/models/api"
	"github.com/de-tools/fin-atlas/pkg/models/domain"
	"github.com/de-tools/fin-atlas/pkg/services/analysis"
	"github.com/de-tools/fin-atlas/pkg/services/benchmark"
	"github.com/de-tools/fin-atlas/pkg/services/comparison"
	"github.com/de-tools/fin-atlas/pkg/services/extraction"
	"github.com/de-tools/fin-atlas/pkg/services/normalize"
	"github.com/de-tools/fin-atlas/pkg/services/ratio"
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

// newTestServer wires the real pipeline over the embedded benchmark dataset.
func newTestServer(t *testing.T, analyzer analysis.Service) *httptest.Server {
	t.Helper()
	logger := zerolog.New(zerolog.NewTestWriter(t))
	ctx := logger.WithContext(context.Background())

	repo, err := benchmark.Load(ctx, benchmark.NewEmbeddedLoader())
	require.NoError(t, err)
	cmp, err := comparison.NewComparator(repo, comparison.DefaultSettings())
	require.NoError(t, err)
	if analyzer == nil {
		analyzer, err = analysis.NewService(normalize.NewNormalizer(), ratio.NewEngine(), cmp, nil)
		require.NoError(t, err)
	}

	router := ConfigureRouter(Config{
		Addr:            ":8080",
		ShutdownTimeout: 10 * time.Second,
		Dependencies: Dependencies{
			Handlers: handlers.Dependencies{
				Analyzer:   analyzer,
				Comparator: cmp,
				Benchmarks: repo,
				Extractors: extraction.NewDefaultRegistry(nil),
				Policy:     domain.NullPropagate,
			},
			Logger: logger,
		},
	})
	ts := httptest.NewServer(router)
	t.Cleanup(ts.Close)
	return ts
}

func TestWebAPI_Endpoints(t *testing.T) {
	ts := newTestServer(t, nil)

	tests := []struct {
		name           string
		method         string
		path           string
		body           string
		expectedStatus int
		check          func(t *testing.T, body []byte)
	}{
		{
			name:           "health",
			method:         http.MethodGet,
			path:           "/healthz",
			expectedStatus: http.StatusOK,
		},
		{
			name:           "major categories",
			method:         http.MethodGet,
			path:           "/api/v1/categories?level=major",
			expectedStatus: http.StatusOK,
			check: func(t *testing.T, body []byte) {
				var categories []api.Category
				require.NoError(t, json.Unmarshal(body, &categories))
				assert.NotEmpty(t, categories)
				for _, c := range categories {
					assert.Equal(t, "major", c.Level)
				}
			},
		},
		{
			name:           "analysis end to end",
			method:         http.MethodPost,
			path:           "/api/v1/analysis",
			body:           `{"companyId":"c-1","period":"2023","extracts":[{"source":"MANUAL","confidence":1,"values":{"totalAssets":1000,"totalEquity":400,"netIncome":50,"sales":800}}]}`,
			expectedStatus: http.StatusOK,
			check: func(t *testing.T, body []byte) {
				var a api.Analysis
				require.NoError(t, json.Unmarshal(body, &a))
				values := map[string]*float64{}
				for _, r := range a.Ratios {
					values[r.Metric] = r.Value
				}
				require.NotNil(t, values["roa"])
				assert.Equal(t, 5.0, *values["roa"])
				assert.Nil(t, values["currentRatio"])
				assert.Equal(t, "MANUAL", a.Provenance["totalAssets"])
				assert.Equal(t, "no industry category given", a.ComparisonUnavailable)
			},
		},
		{
			name:           "unknown route",
			method:         http.MethodGet,
			path:           "/api/v1/workspaces",
			expectedStatus: http.StatusNotFound,
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			req, err := http.NewRequest(tc.method, ts.URL+tc.path, strings.NewReader(tc.body))
			require.NoError(t, err)
			resp, err := http.DefaultClient.Do(req)
			require.NoError(t, err, "Failed to send request")
			defer resp.Body.Close()

			assert.Equal(t, tc.expectedStatus, resp.StatusCode, "Status code mismatch")

			body, err := io.ReadAll(resp.Body)
			require.NoError(t, err, "Failed to read response body")
			if tc.check != nil {
				tc.check(t, body)
			}
		})
	}
}

func TestWebAPI_RecoversFromPanics(t *testing.T) {
	analyzer := new(mockAnalyzer)
	analyzer.On("Analyze", mock.Anything, mock.Anything).Run(func(mock.Arguments) {
		panic("unexpected")
	})
	ts := newTestServer(t, analyzer)

	resp, err := http.Post(ts.URL+"/api/v1/analysis", "application/json",
		strings.NewReader(`{"companyId":"c-1","period":"2023"}`))
	require.NoError(t, err)
	defer resp.Body.Close()

	assert.Equal(t, http.StatusInternalServerError, resp.StatusCode)
}

func TestNewWebAPI_DefaultShutdownTimeout(t *testing.T) {
	w := NewWebAPI(Config{Addr: ":0", Dependencies: Dependencies{Logger: zerolog.Nop()}})

	assert.Equal(t, defaultShutdownTimeout, w.shutdownTimeout)
	assert.Equal(t, ":0", w.server.Addr)
}
