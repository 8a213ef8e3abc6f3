package analysis

import (
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"strconv"
	"time"

	"github.com/de-tools/fin-atlas/pkg/adapters"
	"github.com/de-tools/fin-atlas/pkg/models/api"
	"github.com/de-tools/fin-atlas/pkg/models/domain"
	"github.com/de-tools/fin-atlas/pkg/services/analysis"
	"github.com/de-tools/fin-atlas/pkg/services/benchmark"
	"github.com/de-tools/fin-atlas/pkg/services/comparison"
	"github.com/de-tools/fin-atlas/pkg/services/extraction"
	"github.com/go-chi/chi/v5"
	"github.com/rs/zerolog"
)

const (
	maxUploadSize = 20 << 20 // 20 MiB

	msgMissingComparisonInput = "財務データと業種IDが必要です"
	msgNoBenchmark            = "指定された業種の業界平均データが見つかりません"
	msgComparisonFailed       = "同業種比較の計算に失敗しました"
	msgServerError            = "サーバーエラーが発生しました"
)

type Dependencies struct {
	Analyzer   analysis.Service
	Comparator comparison.Comparator
	Benchmarks benchmark.Repository
	Extractors extraction.Registry
	// Store is optional; uploads are not persisted when it is nil.
	Store  analysis.ExtractStore
	Policy domain.MissingValuePolicy
}

type Handler struct {
	deps Dependencies
	now  func() time.Time
}

func NewHandler(deps Dependencies) *Handler {
	return &Handler{deps: deps, now: time.Now}
}

func writeJSON(w http.ResponseWriter, r *http.Request, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		zerolog.Ctx(r.Context()).Error().
			Err(err).
			Msg("failed to encode response")
	}
}

func writeError(w http.ResponseWriter, r *http.Request, status int, msg string) {
	writeJSON(w, r, status, api.ErrorResponse{Success: false, Error: msg})
}

// decode keeps JSON numbers as json.Number so raw extract values reach the
// normalizer without float rounding.
func decode(body io.Reader, v any) error {
	dec := json.NewDecoder(body)
	dec.UseNumber()
	return dec.Decode(v)
}

func (h *Handler) Analyze(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	logger := zerolog.Ctx(ctx)

	var req api.AnalysisRequest
	if err := decode(r.Body, &req); err != nil {
		writeError(w, r, http.StatusBadRequest, "invalid request body")
		return
	}
	if req.CompanyId == "" || req.Period == "" {
		writeError(w, r, http.StatusBadRequest, "companyId and period are required")
		return
	}

	now := h.now().UTC()
	extracts, err := adapters.MapExtractsApiToDomain(req.Extracts, req.CompanyId, req.Period, now)
	if err != nil {
		writeError(w, r, http.StatusBadRequest, err.Error())
		return
	}
	previous, err := adapters.MapExtractsApiToDomain(req.PreviousExtracts, req.CompanyId, req.PreviousPeriod, now)
	if err != nil {
		writeError(w, r, http.StatusBadRequest, err.Error())
		return
	}

	result, err := h.deps.Analyzer.Analyze(ctx, analysis.Request{
		CompanyID:        req.CompanyId,
		Period:           req.Period,
		PreviousPeriod:   req.PreviousPeriod,
		CategoryID:       req.CategoryId,
		EmployeeCount:    req.EmployeeCount,
		Extracts:         extracts,
		PreviousExtracts: previous,
		Persist:          req.Persist,
	})
	if errors.Is(err, analysis.ErrNoExtracts) {
		writeError(w, r, http.StatusNotFound, err.Error())
		return
	}
	if err != nil {
		logger.Error().
			Err(err).
			Str("company_id", req.CompanyId).
			Msg("analysis failed")
		writeError(w, r, http.StatusInternalServerError, msgServerError)
		return
	}

	writeJSON(w, r, http.StatusOK, adapters.MapAnalysisDomainToApi(result, h.deps.Policy))
}

func (h *Handler) CompareWithIndustry(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	logger := zerolog.Ctx(ctx)

	var req api.IndustryComparisonRequest
	if err := decode(r.Body, &req); err != nil {
		writeError(w, r, http.StatusBadRequest, msgMissingComparisonInput)
		return
	}
	if len(req.FinancialData) == 0 || req.CategoryId == nil {
		writeError(w, r, http.StatusBadRequest, msgMissingComparisonInput)
		return
	}

	result, err := h.deps.Comparator.Compare(ctx, adapters.MapFinancialDataApiToDomain(req.FinancialData), *req.CategoryId)
	if errors.Is(err, comparison.ErrNoBenchmark) {
		writeError(w, r, http.StatusNotFound, msgNoBenchmark)
		return
	}
	if err != nil {
		logger.Error().
			Err(err).
			Int("category_id", *req.CategoryId).
			Msg("industry comparison failed")
		writeError(w, r, http.StatusInternalServerError, msgComparisonFailed)
		return
	}

	writeJSON(w, r, http.StatusOK, api.IndustryComparisonResponse{
		Success:       true,
		Comparison:    adapters.MapComparisonDomainToApi(result),
		BenchmarkInfo: adapters.MapBenchmarkInfoDomainToApi(result),
	})
}

func (h *Handler) ListCategories(w http.ResponseWriter, r *http.Request) {
	query := r.URL.Query()

	var parentID *int
	if raw := query.Get("parentId"); raw != "" {
		id, err := strconv.Atoi(raw)
		if err != nil {
			writeError(w, r, http.StatusBadRequest, "invalid parentId")
			return
		}
		parentID = &id
	}

	var categories []domain.Category
	level := domain.CategoryLevel(query.Get("level"))
	switch {
	case level == "" && parentID == nil:
		categories = h.deps.Benchmarks.Categories()
	case level == "":
		categories = h.deps.Benchmarks.Children(*parentID)
	case !level.Valid():
		writeError(w, r, http.StatusBadRequest, "level must be one of major, middle, minor")
		return
	default:
		categories = h.deps.Benchmarks.ByLevel(level, parentID)
	}

	writeJSON(w, r, http.StatusOK, adapters.MapCategoriesDomainToApi(categories))
}

func (h *Handler) ListChildren(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.Atoi(chi.URLParam(r, "id"))
	if err != nil {
		writeError(w, r, http.StatusBadRequest, "invalid category id")
		return
	}
	if _, ok := h.deps.Benchmarks.Category(id); !ok {
		writeError(w, r, http.StatusNotFound, "category not found")
		return
	}
	writeJSON(w, r, http.StatusOK, adapters.MapCategoriesDomainToApi(h.deps.Benchmarks.Children(id)))
}

// GetBenchmark returns the row stored for a category. With ?resolve=true it
// walks up the tree the way a comparison does.
func (h *Handler) GetBenchmark(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.Atoi(chi.URLParam(r, "id"))
	if err != nil {
		writeError(w, r, http.StatusBadRequest, "invalid category id")
		return
	}

	if r.URL.Query().Get("resolve") == "true" {
		res := h.deps.Benchmarks.Resolve(id)
		writeJSON(w, r, http.StatusOK, adapters.MapBenchmarkDomainToApi(res.Benchmark))
		return
	}

	b, ok := h.deps.Benchmarks.GetBenchmark(id)
	if !ok {
		writeError(w, r, http.StatusNotFound, msgNoBenchmark)
		return
	}
	writeJSON(w, r, http.StatusOK, adapters.MapBenchmarkDomainToApi(*b))
}

// UploadDocument extracts raw values from a multipart upload and, when a store
// is configured, keeps them for later analysis runs.
func (h *Handler) UploadDocument(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	logger := zerolog.Ctx(ctx)

	r.Body = http.MaxBytesReader(w, r.Body, maxUploadSize)
	if err := r.ParseMultipartForm(maxUploadSize); err != nil {
		writeError(w, r, http.StatusBadRequest, "invalid multipart form")
		return
	}
	companyID := r.FormValue("companyId")
	period := r.FormValue("period")
	if companyID == "" || period == "" {
		writeError(w, r, http.StatusBadRequest, "companyId and period are required")
		return
	}

	file, header, err := r.FormFile("file")
	if err != nil {
		writeError(w, r, http.StatusBadRequest, "file is required")
		return
	}
	defer func() {
		if err := file.Close(); err != nil {
			logger.Warn().Err(err).Msg("failed to close uploaded file")
		}
	}()
	content, err := io.ReadAll(file)
	if err != nil {
		writeError(w, r, http.StatusBadRequest, "failed to read file")
		return
	}

	extract, err := h.deps.Extractors.Extract(ctx, extraction.Document{
		Name:      header.Filename,
		Type:      domain.DocumentType(r.FormValue("documentType")),
		Content:   content,
		CompanyID: companyID,
		Period:    period,
	})
	if errors.Is(err, extraction.ErrUnsupportedDocument) {
		writeError(w, r, http.StatusUnsupportedMediaType, err.Error())
		return
	}
	if err != nil {
		logger.Warn().
			Err(err).
			Str("file", header.Filename).
			Msg("extraction failed")
		writeError(w, r, http.StatusUnprocessableEntity, "failed to extract financial data")
		return
	}

	if h.deps.Store != nil {
		if err := h.deps.Store.Add(ctx, []domain.RawFinancialExtract{extract}); err != nil {
			logger.Error().Err(err).Str("extract_id", extract.ID).Msg("failed to store extract")
			writeError(w, r, http.StatusInternalServerError, msgServerError)
			return
		}
	}

	writeJSON(w, r, http.StatusCreated, adapters.MapExtractDomainToApi(extract))
}

// Routes mounts the handler's endpoints on r.
func (h *Handler) Routes(r chi.Router) {
	r.Post("/analysis", h.Analyze)
	r.Post("/industry-comparison", h.CompareWithIndustry)
	r.Post("/documents", h.UploadDocument)
	r.Get("/categories", h.ListCategories)
	r.Get("/categories/{id}/children", h.ListChildren)
	r.Get("/benchmarks/{id}", h.GetBenchmark)
}
