/*
handlers_test.go - Unit tests for API handlers

Tests for:
- Upload: response shape, month selection, client errors
- Export: report workbook download
- Run log: metadata recorded per upload, listing, lookup
*/
package api

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"log/slog"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/warp/attendance-analyzer/sheet"
	"github.com/warp/attendance-analyzer/store/sqlite"
	"github.com/xuri/excelize/v2"
)

// =============================================================================
// TEST SETUP
// =============================================================================

func setupTestHandler(t *testing.T) *Handler {
	store, err := sqlite.New(":memory:")
	require.NoError(t, err)
	t.Cleanup(func() { store.Close() })

	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	return NewHandler(store, logger, 1<<20)
}

func setupTestServer(t *testing.T) (*Handler, http.Handler) {
	h := setupTestHandler(t)
	return h, NewRouter(h, []string{"http://localhost:3000"})
}

// attendanceWorkbook has one Saturday serial row, one Monday leave and one
// February weekday.
func attendanceWorkbook(t *testing.T) []byte {
	t.Helper()
	f := excelize.NewFile()
	defer f.Close()

	rows := [][]any{
		{"Employee Name", "Date", "In-Time", "Out-Time"},
		{"Asha", 45311, 0.375, 0.75},
		{"Raj", "2024-01-22", nil, "18:00"},
		{"Asha", "2024-02-05", "09:00", "17:30"},
	}
	for i, values := range rows {
		axis, err := excelize.CoordinatesToCellName(1, i+1)
		require.NoError(t, err)
		require.NoError(t, f.SetSheetRow("Sheet1", axis, &values))
	}
	buf, err := f.WriteToBuffer()
	require.NoError(t, err)
	return buf.Bytes()
}

func multipartRequest(t *testing.T, path string, file []byte, month *string) *http.Request {
	t.Helper()
	var body bytes.Buffer
	mw := multipart.NewWriter(&body)
	if file != nil {
		fw, err := mw.CreateFormFile("file", "attendance.xlsx")
		require.NoError(t, err)
		_, err = fw.Write(file)
		require.NoError(t, err)
	}
	if month != nil {
		require.NoError(t, mw.WriteField("month", *month))
	}
	require.NoError(t, mw.Close())

	req := httptest.NewRequest(http.MethodPost, path, &body)
	req.Header.Set("Content-Type", mw.FormDataContentType())
	return req
}

func serve(router http.Handler, req *http.Request) *httptest.ResponseRecorder {
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)
	return rec
}

func findReport(t *testing.T, reports []EmployeeReportDTO, name string) EmployeeReportDTO {
	t.Helper()
	for _, r := range reports {
		if r.EmployeeName == name {
			return r
		}
	}
	t.Fatalf("no report for %q", name)
	return EmployeeReportDTO{}
}

// =============================================================================
// UPLOAD
// =============================================================================

func TestUpload_WithMonth(t *testing.T) {
	// GIVEN: a workbook spanning January and February
	h, router := setupTestServer(t)

	// WHEN: uploading with month 2024-01
	rec := serve(router, multipartRequest(t, "/api/upload", attendanceWorkbook(t), strPtr("2024-01")))

	// THEN: both views are computed
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())

	var keys map[string]json.RawMessage
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &keys))
	assert.Len(t, keys, 4)
	for _, k := range []string{"availableMonths", "overallEmployees", "monthlyEmployees", "selectedMonth"} {
		assert.Contains(t, keys, k)
	}

	var resp AnalysisResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.Equal(t, []string{"2024-01", "2024-02"}, resp.AvailableMonths)
	require.NotNil(t, resp.SelectedMonth)
	assert.Equal(t, "2024-01", *resp.SelectedMonth)

	asha := findReport(t, resp.OverallEmployees, "Asha")
	assert.Equal(t, 17.5, asha.TotalWorkedHours)
	assert.Equal(t, 12.5, asha.TotalExpectedHours)
	assert.Equal(t, 140.0, asha.Productivity)
	assert.Equal(t, 2, asha.AllowedLeaves)
	require.Len(t, asha.DailyBreakdown, 2)
	assert.Equal(t, "2024-01-20", asha.DailyBreakdown[0].Date)
	require.NotNil(t, asha.DailyBreakdown[0].InTime)
	assert.Equal(t, "09:00", *asha.DailyBreakdown[0].InTime)

	raj := findReport(t, resp.OverallEmployees, "Raj")
	assert.Equal(t, 1, raj.LeavesUsed)
	assert.Equal(t, 0.0, raj.Productivity)
	assert.Nil(t, raj.DailyBreakdown[0].InTime)
	assert.True(t, raj.DailyBreakdown[0].IsLeave)

	require.Len(t, resp.MonthlyEmployees, 2)
	ashaJan := findReport(t, resp.MonthlyEmployees, "Asha")
	assert.Len(t, ashaJan.DailyBreakdown, 1)
	assert.Equal(t, 225.0, ashaJan.Productivity)

	// AND: run metadata is recorded
	runID := rec.Header().Get(RunIDHeader)
	require.NotEmpty(t, runID)
	run, err := h.Store.GetRun(context.Background(), runID)
	require.NoError(t, err)
	assert.Equal(t, "attendance.xlsx", run.FileName)
	assert.Equal(t, "2024-01", run.SelectedMonth)
	assert.Equal(t, 3, run.RowCount)
	assert.Equal(t, 2, run.EmployeeCount)
	assert.Equal(t, 1, run.LeaveCount)
}

func TestUpload_WithoutMonth(t *testing.T) {
	_, router := setupTestServer(t)

	rec := serve(router, multipartRequest(t, "/api/upload", attendanceWorkbook(t), nil))

	require.Equal(t, http.StatusOK, rec.Code)
	var raw map[string]any
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &raw))
	assert.Nil(t, raw["selectedMonth"])
	assert.Equal(t, []any{}, raw["monthlyEmployees"])
	assert.Len(t, raw["overallEmployees"], 2)
}

func TestUpload_UnmatchedMonthIsEmpty(t *testing.T) {
	_, router := setupTestServer(t)

	rec := serve(router, multipartRequest(t, "/api/upload", attendanceWorkbook(t), strPtr("2019-07")))

	require.Equal(t, http.StatusOK, rec.Code)
	var resp AnalysisResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.NotNil(t, resp.MonthlyEmployees)
	assert.Empty(t, resp.MonthlyEmployees)
	assert.Len(t, resp.OverallEmployees, 2)
}

func TestUpload_NoFile(t *testing.T) {
	_, router := setupTestServer(t)

	tests := []struct {
		name string
		req  *http.Request
	}{
		{"multipart without file", multipartRequest(t, "/api/upload", nil, strPtr("2024-01"))},
		{"not multipart", httptest.NewRequest(http.MethodPost, "/api/upload", bytes.NewBufferString(`{}`))},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := serve(router, tt.req)

			assert.Equal(t, http.StatusBadRequest, rec.Code)
			var resp ErrorResponse
			require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
			assert.Equal(t, "No file uploaded", resp.Error)
		})
	}
}

func TestUpload_UnreadableWorkbook(t *testing.T) {
	h, router := setupTestServer(t)

	rec := serve(router, multipartRequest(t, "/api/upload", []byte("plain text, not xlsx"), nil))

	assert.Equal(t, http.StatusBadRequest, rec.Code)
	var resp ErrorResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.Equal(t, "invalid_workbook", resp.Code)

	runs, err := h.Store.ListRuns(context.Background(), 0)
	require.NoError(t, err)
	assert.Empty(t, runs, "rejected uploads are not recorded")
}

// =============================================================================
// EXPORT
// =============================================================================

func TestExport_ReturnsWorkbook(t *testing.T) {
	_, router := setupTestServer(t)

	rec := serve(router, multipartRequest(t, "/api/export", attendanceWorkbook(t), strPtr("2024-02")))

	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	assert.Equal(t, xlsxContentType, rec.Header().Get("Content-Type"))
	assert.Contains(t, rec.Header().Get("Content-Disposition"), "attendance-report.xlsx")
	assert.NotEmpty(t, rec.Header().Get(RunIDHeader))

	f, err := excelize.OpenReader(rec.Body)
	require.NoError(t, err)
	defer f.Close()
	assert.Equal(t, []string{sheet.SheetOverall, sheet.SheetMonthly, sheet.SheetDaily}, f.GetSheetList())

	monthly, err := f.GetRows(sheet.SheetMonthly)
	require.NoError(t, err)
	require.Len(t, monthly, 2, "header plus Asha's February row")
	assert.Equal(t, "Asha", monthly[1][0])
}

// =============================================================================
// RUN LOG
// =============================================================================

func TestRuns_ListAndGet(t *testing.T) {
	_, router := setupTestServer(t)

	first := serve(router, multipartRequest(t, "/api/upload", attendanceWorkbook(t), nil))
	require.Equal(t, http.StatusOK, first.Code)

	rec := serve(router, httptest.NewRequest(http.MethodGet, "/api/runs", nil))
	require.Equal(t, http.StatusOK, rec.Code)
	var runs []RunDTO
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &runs))
	require.Len(t, runs, 1)
	assert.Equal(t, first.Header().Get(RunIDHeader), runs[0].ID)
	assert.Nil(t, runs[0].SelectedMonth)
	assert.Equal(t, []string{"2024-01", "2024-02"}, runs[0].Months)

	rec = serve(router, httptest.NewRequest(http.MethodGet, "/api/runs/"+runs[0].ID, nil))
	assert.Equal(t, http.StatusOK, rec.Code)

	rec = serve(router, httptest.NewRequest(http.MethodGet, "/api/runs/nope", nil))
	assert.Equal(t, http.StatusNotFound, rec.Code)

	rec = serve(router, httptest.NewRequest(http.MethodGet, "/api/runs?limit=abc", nil))
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestHealth(t *testing.T) {
	_, router := setupTestServer(t)

	rec := serve(router, httptest.NewRequest(http.MethodGet, "/api/health", nil))

	assert.Equal(t, http.StatusOK, rec.Code)
}
