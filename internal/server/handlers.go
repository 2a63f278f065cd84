package server

import (
	"encoding/json"
	"errors"
	"io"
	"net/http"

	"github.com/sirupsen/logrus"

	"github.com/jonathan/credibility-report/internal/observability"
	"github.com/jonathan/credibility-report/internal/session"
	"github.com/jonathan/credibility-report/internal/types"
)

// ResultsPath is where the client navigates after a successful submission.
const ResultsPath = "/results"

// maxUploadSize bounds a submitted document.
const maxUploadSize = 32 << 20

// SubmitResponse is returned by the analyze endpoints.
type SubmitResponse struct {
	Status   string `json:"status"`
	Redirect string `json:"redirect"`
}

func (s *Server) handleAnalyzeURL(w http.ResponseWriter, r *http.Request) {
	var req types.AnalyzeURLRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		s.errorResponse(w, http.StatusBadRequest, "Invalid JSON body")
		return
	}
	if err := req.Validate(); err != nil {
		s.validationResponse(w, &ErrValidation{Field: "url", Message: "A valid article URL is required"})
		return
	}

	raw, err := s.analyzer.SubmitURL(r.Context(), req.URL, req.Purpose)
	s.finishSubmission(w, r, raw, err)
}

func (s *Server) handleAnalyzeText(w http.ResponseWriter, r *http.Request) {
	var req types.AnalyzeTextRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		s.errorResponse(w, http.StatusBadRequest, "Invalid JSON body")
		return
	}
	if err := req.Validate(); err != nil {
		s.validationResponse(w, &ErrValidation{Field: "text", Message: "Text input is too short. Provide at least 100 characters."})
		return
	}

	raw, err := s.analyzer.SubmitText(r.Context(), req.Text, req.Purpose)
	s.finishSubmission(w, r, raw, err)
}

func (s *Server) handleAnalyzeFile(w http.ResponseWriter, r *http.Request) {
	r.Body = http.MaxBytesReader(w, r.Body, maxUploadSize)
	if err := r.ParseMultipartForm(maxUploadSize); err != nil {
		s.errorResponse(w, http.StatusBadRequest, "Invalid multipart upload")
		return
	}

	file, header, err := r.FormFile("file")
	if err != nil {
		s.errorResponse(w, http.StatusBadRequest, "Missing uploaded file under form field 'file'.")
		return
	}
	defer func() { _ = file.Close() }()

	req := types.AnalyzeFileRequest{Filename: header.Filename, Size: header.Size, Purpose: r.FormValue("purpose")}
	if err := req.Validate(); err != nil {
		s.validationResponse(w, &ErrValidation{Field: "file", Message: "Uploaded file is empty."})
		return
	}

	raw, err := s.analyzer.SubmitFile(r.Context(), req.Filename, file, req.Purpose)
	s.finishSubmission(w, r, raw, err)
}

// validationResponse rejects a submission that failed request validation.
func (s *Server) validationResponse(w http.ResponseWriter, err *ErrValidation) {
	observability.Log.WithField("field", err.Field).Info("submission rejected")
	s.errorResponse(w, HTTPStatus(err), err.Message)
}

// finishSubmission stores a new report for the session, replacing any previous one.
func (s *Server) finishSubmission(w http.ResponseWriter, r *http.Request, raw []byte, err error) {
	if err != nil {
		status := HTTPStatus(err)
		observability.Log.WithError(err).WithField("status", status).Warn("analysis submission failed")
		s.errorResponse(w, status, err.Error())
		return
	}

	id := s.sessionID(w, r)
	if err := s.sessionStore(id).Set(r.Context(), session.ReportKey, raw); err != nil {
		observability.Log.WithError(err).Error("failed to store report")
		s.errorResponse(w, http.StatusInternalServerError, "Failed to store report")
		return
	}
	s.resetPage(id)

	observability.Log.WithFields(logrus.Fields{"session": id, "bytes": len(raw)}).Info("report stored")
	s.jsonResponse(w, http.StatusOK, SubmitResponse{Status: "ok", Redirect: ResultsPath})
}

// decodeBody decodes an optional JSON body; an empty body leaves dst untouched.
func decodeBody(r *http.Request, dst any) error {
	err := json.NewDecoder(r.Body).Decode(dst)
	if err == nil || errors.Is(err, io.EOF) {
		return nil
	}
	return err
}
