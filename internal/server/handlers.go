package server

import (
	"errors"
	"io"
	"net/http"
	"os"
	"path/filepath"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/clearuse/clearuse/internal/alternatives"
	"github.com/clearuse/clearuse/internal/extract"
	"github.com/clearuse/clearuse/internal/model"
)

// checkRequest carries the form fields of a check upload.
type checkRequest struct {
	CourseType      string `validate:"required"`
	InstitutionType string `validate:"required"`
}

// handleCheck accepts a multipart upload and runs the full check on it.
// Fields: "file" (required), "course_type" and "institution_type" (optional,
// defaulting from configuration).
func (s *Server) handleCheck(w http.ResponseWriter, r *http.Request) {
	log := zerolog.Ctx(r.Context())

	r.Body = http.MaxBytesReader(w, r.Body, s.cfg.Server.MaxUploadBytes)
	if err := r.ParseMultipartForm(s.cfg.Server.MaxUploadBytes); err != nil {
		var maxErr *http.MaxBytesError
		if errors.As(err, &maxErr) {
			writeError(w, http.StatusRequestEntityTooLarge, "too_large", "upload exceeds size limit")
			return
		}
		writeError(w, http.StatusBadRequest, "bad_request", "expected multipart form data")
		return
	}

	req := checkRequest{
		CourseType:      formValue(r, "course_type", "courseType", s.cfg.Context.CourseType),
		InstitutionType: formValue(r, "institution_type", "institutionType", s.cfg.Context.InstitutionType),
	}
	if err := s.validate.Struct(req); err != nil {
		writeError(w, http.StatusBadRequest, "validation", "course_type and institution_type are required")
		return
	}

	course, err := model.ParseCourseType(req.CourseType)
	if err != nil {
		writeError(w, http.StatusBadRequest, "validation", err.Error())
		return
	}
	institution, err := model.ParseInstitutionType(req.InstitutionType)
	if err != nil {
		writeError(w, http.StatusBadRequest, "validation", err.Error())
		return
	}

	file, header, err := r.FormFile("file")
	if err != nil {
		writeError(w, http.StatusBadRequest, "validation", "file field is required")
		return
	}
	defer func() { _ = file.Close() }()

	if _, ok := extract.DetectKind(header.Filename); !ok {
		writeError(w, http.StatusBadRequest, "unsupported_type", "unsupported file type: "+filepath.Ext(header.Filename))
		return
	}

	path, err := s.saveUpload(file, header.Filename)
	if err != nil {
		log.Error().Err(err).Msg("upload.save")
		writeError(w, http.StatusInternalServerError, "internal", "could not store upload")
		return
	}
	defer func() { _ = os.Remove(path) }()

	report, err := s.checker.CheckFile(r.Context(), path, model.UsageContext{
		Course:      course,
		Institution: institution,
	})
	if err != nil {
		log.Error().Err(err).Str("file", header.Filename).Msg("check.failed")
		writeError(w, http.StatusUnprocessableEntity, "check_failed", err.Error())
		return
	}

	// The stored path is transient; report the upload's original name only.
	report.Path = ""
	report.FileName = header.Filename
	report.Source.Path = ""
	report.Source.FileName = header.Filename

	writeSuccess(w, http.StatusOK, report)
}

// handleSources lists cataloged open-content sources, optionally filtered
// by ?type=image|document.
func (s *Server) handleSources(w http.ResponseWriter, r *http.Request) {
	catalog := alternatives.AllSources()

	switch r.URL.Query().Get("type") {
	case "":
		writeSuccess(w, http.StatusOK, catalog)
	case "image":
		writeSuccess(w, http.StatusOK, map[string][]model.AlternativeSource{"images": catalog["images"]})
	case "document":
		writeSuccess(w, http.StatusOK, map[string][]model.AlternativeSource{"documents": catalog["documents"]})
	default:
		writeError(w, http.StatusBadRequest, "validation", "type must be image or document")
	}
}

func (s *Server) handleHealthz(w http.ResponseWriter, r *http.Request) {
	writeSuccess(w, http.StatusOK, map[string]string{"status": "ok"})
}

// saveUpload writes the uploaded file next to a random prefix, preserving
// the extension so type detection still works.
func (s *Server) saveUpload(src io.Reader, name string) (string, error) {
	dir := s.cfg.Server.UploadDir
	if dir == "" {
		dir = os.TempDir()
	}
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return "", err
	}

	path := filepath.Join(dir, uuid.NewString()+filepath.Ext(name))
	dst, err := os.Create(path)
	if err != nil {
		return "", err
	}
	defer func() { _ = dst.Close() }()

	if _, err := io.Copy(dst, src); err != nil {
		_ = os.Remove(path)
		return "", err
	}
	return path, nil
}

// formValue returns the first non-empty value among the given keys, then
// the fallback. Both snake_case and camelCase field names are accepted.
func formValue(r *http.Request, keys ...string) string {
	fallback := keys[len(keys)-1]
	for _, key := range keys[:len(keys)-1] {
		if v := r.FormValue(key); v != "" {
			return v
		}
	}
	return fallback
}
