package server

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strconv"
	"strings"

	"github.com/go-chi/chi/v5/middleware"
	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/sells-group/decline-cli/internal/engine"
	"github.com/sells-group/decline-cli/internal/export"
	"github.com/sells-group/decline-cli/internal/importer"
	"github.com/sells-group/decline-cli/internal/model"
)

const xlsxContentType = "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"

const maxMultipartMemory = 32 << 20

// AnalyzeRequest is the body of POST /v1/analyze and /v1/analyze/xlsx.
type AnalyzeRequest struct {
	Records      []model.ProductionRecord `json:"records"`
	ActivePoints *int                     `json:"active_points,omitempty"`
}

// AnalyzeResponse is returned by POST /v1/analyze and /v1/upload.
type AnalyzeResponse struct {
	AnalysisID  string        `json:"analysis_id"`
	RecordCount int           `json:"record_count"`
	ActiveCount int           `json:"active_count"`
	Bundle      *model.Bundle `json:"bundle"`
}

func (s *Server) handleHealth(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

func (s *Server) handleAnalyze(w http.ResponseWriter, r *http.Request) {
	series, ok := decodeAnalyze(w, r)
	if !ok {
		return
	}
	s.respond(w, r, series)
}

func (s *Server) handleAnalyzeXLSX(w http.ResponseWriter, r *http.Request) {
	series, ok := decodeAnalyze(w, r)
	if !ok {
		return
	}

	b, ok := s.compute(w, r, series)
	if !ok {
		return
	}

	f, err := export.BuildWorkbook(series, b, export.WorkbookOptions{Language: s.language})
	if err != nil {
		zap.L().Error("build workbook failed", zap.Error(err))
		writeError(w, http.StatusInternalServerError, "failed to build workbook")
		return
	}

	w.Header().Set("Content-Type", xlsxContentType)
	w.Header().Set("Content-Disposition", fmt.Sprintf(`attachment; filename="decline-%s.xlsx"`, uuid.NewString()))
	w.WriteHeader(http.StatusOK)
	if err := f.Write(w); err != nil {
		zap.L().Warn("write workbook response failed", zap.Error(err))
	}
}

func (s *Server) handleUpload(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseMultipartForm(maxMultipartMemory); err != nil {
		if isTooLarge(err) {
			writeError(w, http.StatusRequestEntityTooLarge, "request body too large")
			return
		}
		writeError(w, http.StatusBadRequest, "invalid multipart form")
		return
	}

	file, header, err := r.FormFile("file")
	if err != nil {
		writeError(w, http.StatusBadRequest, "file is required")
		return
	}
	defer file.Close() //nolint:errcheck

	series, err := importer.LoadReader(r.Context(), header.Filename, file, s.importOpts)
	if err != nil {
		zap.L().Warn("upload import failed", zap.String("file", header.Filename), zap.Error(err))
		writeError(w, http.StatusUnprocessableEntity, importMessage(err))
		return
	}

	if raw := strings.TrimSpace(r.FormValue("active_points")); raw != "" {
		n, err := strconv.Atoi(raw)
		if err != nil || n < 0 {
			writeError(w, http.StatusBadRequest, "active_points must be a non-negative integer")
			return
		}
		series = importer.SetActiveLast(series, n)
	}

	s.respond(w, r, series)
}

// respond computes the bundle and writes the JSON analysis response.
func (s *Server) respond(w http.ResponseWriter, r *http.Request, series []model.ProductionRecord) {
	b, ok := s.compute(w, r, series)
	if !ok {
		return
	}
	writeJSON(w, http.StatusOK, AnalyzeResponse{
		AnalysisID:  uuid.NewString(),
		RecordCount: len(series),
		ActiveCount: len(model.ActiveRecords(series)),
		Bundle:      b,
	})
}

func (s *Server) compute(w http.ResponseWriter, r *http.Request, series []model.ProductionRecord) (*model.Bundle, bool) {
	b, err := s.engine.Compute(series)
	if err != nil {
		if errors.Is(err, engine.ErrTooManyRecords) || errors.Is(err, engine.ErrDuplicateYear) {
			writeError(w, http.StatusUnprocessableEntity, err.Error())
			return nil, false
		}
		zap.L().Error("compute failed",
			zap.String("request_id", middleware.GetReqID(r.Context())),
			zap.Error(err),
		)
		writeError(w, http.StatusInternalServerError, "compute failed")
		return nil, false
	}
	return b, true
}

func decodeAnalyze(w http.ResponseWriter, r *http.Request) ([]model.ProductionRecord, bool) {
	var req AnalyzeRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		if isTooLarge(err) {
			writeError(w, http.StatusRequestEntityTooLarge, "request body too large")
			return nil, false
		}
		writeError(w, http.StatusBadRequest, "invalid request body")
		return nil, false
	}

	series := req.Records
	if req.ActivePoints != nil {
		if *req.ActivePoints < 0 {
			writeError(w, http.StatusBadRequest, "active_points must be a non-negative integer")
			return nil, false
		}
		series = importer.SetActiveLast(series, *req.ActivePoints)
	}
	return series, true
}

func importMessage(err error) string {
	switch {
	case errors.Is(err, importer.ErrUnsupportedFile):
		return "unsupported file type; use .xlsx or .csv"
	case errors.Is(err, importer.ErrNoData):
		return "file contains no production rows"
	default:
		return "could not read production file"
	}
}

func isTooLarge(err error) bool {
	var mbe *http.MaxBytesError
	return errors.As(err, &mbe)
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		zap.L().Warn("encode response failed", zap.Error(err))
	}
}

func writeError(w http.ResponseWriter, status int, msg string) {
	writeJSON(w, status, map[string]string{"error": msg})
}
