/*
handlers.go - HTTP API handlers for the attendance analyzer

PURPOSE:
  Exposes the attendance pipeline via REST API. Handles multipart upload,
  workbook decoding, JSON serialization, and delegates the analysis to the
  attendance package.

ENDPOINTS:
  Analysis:
    POST   /api/upload        Analyze an .xlsx upload (form: file, month)
    POST   /api/export        Same input, returns an .xlsx report

  Run log:
    GET    /api/runs          Recent analyses (metadata only)
    GET    /api/runs/{id}     One analysis

  Scenarios:
    GET    /api/scenarios           List demo datasets
    POST   /api/scenarios/{id}/run  Analyze a demo dataset (?month=YYYY-MM)

REQUEST FLOW:
  1. Parse multipart form (size-limited)
  2. Decode first sheet into raw rows
  3. attendance.Process
  4. Record run metadata (failures are logged, not returned)
  5. Serialize response

ERROR HANDLING:
  Errors are returned as JSON with appropriate HTTP status:
  - 400: No file uploaded, unreadable workbook, bad form
  - 404: Unknown run or scenario
  - 413: Upload over the configured limit
  - 500: Internal errors

SECURITY NOTE:
  No authentication. Uploaded rows are processed in memory and dropped at
  the end of the request.

SEE ALSO:
  - dto.go: Request/response data structures
  - scenarios.go: Demo datasets
  - server.go: Router setup and middleware
*/
package api

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"github.com/warp/attendance-analyzer/attendance"
	"github.com/warp/attendance-analyzer/sheet"
	"github.com/warp/attendance-analyzer/store/sqlite"
)

const (
	// RunIDHeader carries the run-log id of an analyzed upload.
	RunIDHeader = "X-Analysis-Run-ID"

	xlsxContentType = "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"
	multipartMemory = 8 << 20
)

// =============================================================================
// HANDLER CONTEXT
// =============================================================================

// Handler holds all dependencies for HTTP handlers.
type Handler struct {
	Store          *sqlite.Store
	Logger         *slog.Logger
	MaxUploadBytes int64
}

// NewHandler creates a new handler with the given store.
func NewHandler(store *sqlite.Store, logger *slog.Logger, maxUploadBytes int64) *Handler {
	if logger == nil {
		logger = slog.Default()
	}
	return &Handler{
		Store:          store,
		Logger:         logger,
		MaxUploadBytes: maxUploadBytes,
	}
}

// upload is a decoded analysis request.
type upload struct {
	FileName  string
	Rows      []attendance.RawRow
	Month     string
	MonthSent bool
}

// =============================================================================
// ANALYSIS HANDLERS
// =============================================================================

// Upload analyzes an attendance workbook.
func (h *Handler) Upload(w http.ResponseWriter, r *http.Request) {
	up, ok := h.readUpload(w, r)
	if !ok {
		return
	}

	res := attendance.Process(up.Rows, up.Month)
	if id := h.recordRun(r.Context(), up, res); id != "" {
		w.Header().Set(RunIDHeader, id)
	}

	writeJSON(w, http.StatusOK, toAnalysisResponse(res, up.MonthSent))
}

// Export analyzes an attendance workbook and returns the report as .xlsx.
func (h *Handler) Export(w http.ResponseWriter, r *http.Request) {
	up, ok := h.readUpload(w, r)
	if !ok {
		return
	}

	res := attendance.Process(up.Rows, up.Month)

	var buf bytes.Buffer
	if err := sheet.WriteReport(&buf, res); err != nil {
		writeError(w, http.StatusInternalServerError, "Failed to build report", err)
		return
	}
	if id := h.recordRun(r.Context(), up, res); id != "" {
		w.Header().Set(RunIDHeader, id)
	}

	w.Header().Set("Content-Type", xlsxContentType)
	w.Header().Set("Content-Disposition", `attachment; filename="attendance-report.xlsx"`)
	w.Header().Set("Content-Length", strconv.Itoa(buf.Len()))
	w.WriteHeader(http.StatusOK)
	w.Write(buf.Bytes())
}

// readUpload parses the multipart request. On failure it has already
// written the error response.
func (h *Handler) readUpload(w http.ResponseWriter, r *http.Request) (upload, bool) {
	if h.MaxUploadBytes > 0 {
		r.Body = http.MaxBytesReader(w, r.Body, h.MaxUploadBytes)
	}

	if err := r.ParseMultipartForm(multipartMemory); err != nil {
		var tooLarge *http.MaxBytesError
		switch {
		case errors.As(err, &tooLarge):
			writeError(w, http.StatusRequestEntityTooLarge, "Upload too large", err)
		case errors.Is(err, http.ErrNotMultipart):
			writeError(w, http.StatusBadRequest, "No file uploaded", nil)
		default:
			writeError(w, http.StatusBadRequest, "Invalid form data", err)
		}
		return upload{}, false
	}

	file, header, err := r.FormFile("file")
	if err != nil {
		writeError(w, http.StatusBadRequest, "No file uploaded", nil)
		return upload{}, false
	}
	defer file.Close()

	rows, err := sheet.ReadWorkbook(file)
	if err != nil {
		h.Logger.Warn("rejected workbook", slog.String("file", header.Filename), slog.Any("error", err))
		writeErrorCode(w, http.StatusBadRequest, "Unreadable workbook", "invalid_workbook", err)
		return upload{}, false
	}

	up := upload{FileName: header.Filename, Rows: rows}
	if values, ok := r.MultipartForm.Value["month"]; ok && len(values) > 0 {
		up.Month = values[0]
		up.MonthSent = true
	}
	return up, true
}

// recordRun stores run metadata and returns its id, or "" if it could not
// be stored. The analysis itself never fails because of the run log.
func (h *Handler) recordRun(ctx context.Context, up upload, res attendance.Result) string {
	if h.Store == nil {
		return ""
	}
	st := attendance.Summarize(res.Records)
	run := sqlite.AnalysisRun{
		ID:            uuid.NewString(),
		FileName:      up.FileName,
		SelectedMonth: up.Month,
		RowCount:      st.Rows,
		EmployeeCount: st.Employees,
		LeaveCount:    st.LeaveDays,
		UnparsedDates: st.UnparsedDates,
		Months:        res.AvailableMonths,
	}
	if err := h.Store.SaveRun(ctx, run); err != nil {
		h.Logger.Error("failed to record analysis run", slog.Any("error", err))
		return ""
	}

	h.Logger.Info("analysis completed",
		slog.String("run_id", run.ID),
		slog.Int("rows", st.Rows),
		slog.Int("employees", st.Employees),
		slog.Int("unparsed_dates", st.UnparsedDates),
		slog.String("month", up.Month),
	)
	return run.ID
}

// =============================================================================
// RUN LOG HANDLERS
// =============================================================================

// ListRuns returns recent analysis runs, newest first.
func (h *Handler) ListRuns(w http.ResponseWriter, r *http.Request) {
	limit := 50
	if s := r.URL.Query().Get("limit"); s != "" {
		n, err := strconv.Atoi(s)
		if err != nil || n < 0 {
			writeError(w, http.StatusBadRequest, "Invalid limit", err)
			return
		}
		limit = n
	}

	runs, err := h.Store.ListRuns(r.Context(), limit)
	if err != nil {
		writeError(w, http.StatusInternalServerError, "Failed to list runs", err)
		return
	}

	dtos := make([]RunDTO, len(runs))
	for i, run := range runs {
		dtos[i] = toRunDTO(run)
	}
	writeJSON(w, http.StatusOK, dtos)
}

// GetRun returns one analysis run.
func (h *Handler) GetRun(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")

	run, err := h.Store.GetRun(r.Context(), id)
	if errors.Is(err, sqlite.ErrRunNotFound) {
		writeError(w, http.StatusNotFound, "Run not found", nil)
		return
	}
	if err != nil {
		writeError(w, http.StatusInternalServerError, "Failed to get run", err)
		return
	}

	writeJSON(w, http.StatusOK, toRunDTO(*run))
}

// =============================================================================
// HELPERS
// =============================================================================

func writeJSON(w http.ResponseWriter, status int, data any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(data)
}

func writeError(w http.ResponseWriter, status int, message string, err error) {
	writeErrorCode(w, status, message, "", err)
}

func writeErrorCode(w http.ResponseWriter, status int, message, code string, err error) {
	resp := ErrorResponse{Error: message, Code: code}
	if err != nil {
		resp.Details = err.Error()
	}
	writeJSON(w, status, resp)
}

func strPtr(s string) *string {
	return &s
}
