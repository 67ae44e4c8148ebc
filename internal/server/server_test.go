package server

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"io"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"os"
	"strings"
	"testing"

	"github.com/rs/zerolog"

	"github.com/clearuse/clearuse/internal/model"
)

type stubChecker struct {
	lastPath  string
	lastUsage model.UsageContext
	report    *model.Report
	err       error
}

func (c *stubChecker) CheckFile(ctx context.Context, path string, usage model.UsageContext) (*model.Report, error) {
	c.lastPath = path
	c.lastUsage = usage
	if c.err != nil {
		return nil, c.err
	}
	if c.report != nil {
		return c.report, nil
	}
	return &model.Report{Path: path}, nil
}

func newTestServer(t *testing.T, checker Checker) *Server {
	t.Helper()
	cfg := model.DefaultConfig()
	cfg.Server.UploadDir = t.TempDir()
	return New(cfg, zerolog.Nop(), checker)
}

func multipartBody(t *testing.T, filename, content string, fields map[string]string) (*bytes.Buffer, string) {
	t.Helper()
	buf := &bytes.Buffer{}
	mw := multipart.NewWriter(buf)
	if filename != "" {
		fw, err := mw.CreateFormFile("file", filename)
		if err != nil {
			t.Fatalf("CreateFormFile: %v", err)
		}
		if _, err := io.WriteString(fw, content); err != nil {
			t.Fatalf("write file part: %v", err)
		}
	}
	for k, v := range fields {
		if err := mw.WriteField(k, v); err != nil {
			t.Fatalf("WriteField(%s): %v", k, err)
		}
	}
	if err := mw.Close(); err != nil {
		t.Fatalf("close writer: %v", err)
	}
	return buf, mw.FormDataContentType()
}

func TestHealthz(t *testing.T) {
	srv := newTestServer(t, &stubChecker{})

	req := httptest.NewRequest(http.MethodGet, "/healthz", nil)
	rec := httptest.NewRecorder()
	srv.Router().ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", rec.Code)
	}
	if rec.Header().Get("X-Request-Id") == "" {
		t.Error("expected X-Request-Id header to be set")
	}

	var resp struct {
		Data map[string]string `json:"data"`
	}
	if err := json.NewDecoder(rec.Body).Decode(&resp); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if resp.Data["status"] != "ok" {
		t.Errorf("status = %q, want ok", resp.Data["status"])
	}
}

func TestRequestIDEchoed(t *testing.T) {
	srv := newTestServer(t, &stubChecker{})

	req := httptest.NewRequest(http.MethodGet, "/healthz", nil)
	req.Header.Set("X-Request-Id", "req-123")
	rec := httptest.NewRecorder()
	srv.Router().ServeHTTP(rec, req)

	if got := rec.Header().Get("X-Request-Id"); got != "req-123" {
		t.Errorf("X-Request-Id = %q, want req-123", got)
	}
}

func TestCheckUpload(t *testing.T) {
	checker := &stubChecker{
		report: &model.Report{
			Verdict: model.FairUseVerdict{CanUse: true},
		},
	}
	srv := newTestServer(t, checker)

	body, contentType := multipartBody(t, "notes.txt", "public domain text", map[string]string{
		"course_type":      "in-person",
		"institution_type": "k-12",
	})
	req := httptest.NewRequest(http.MethodPost, "/api/check", body)
	req.Header.Set("Content-Type", contentType)
	rec := httptest.NewRecorder()
	srv.Router().ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200, body: %s", rec.Code, rec.Body.String())
	}

	if checker.lastUsage.Course != model.CourseInPerson {
		t.Errorf("course = %q, want %q", checker.lastUsage.Course, model.CourseInPerson)
	}
	if checker.lastUsage.Institution != model.InstitutionK12 {
		t.Errorf("institution = %q, want %q", checker.lastUsage.Institution, model.InstitutionK12)
	}
	if !strings.HasSuffix(checker.lastPath, ".txt") {
		t.Errorf("stored upload should keep the extension, got %q", checker.lastPath)
	}
	if _, err := os.Stat(checker.lastPath); !os.IsNotExist(err) {
		t.Errorf("upload should be removed after the check, stat err = %v", err)
	}

	var resp struct {
		Data model.Report `json:"data"`
	}
	if err := json.NewDecoder(rec.Body).Decode(&resp); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if resp.Data.FileName != "notes.txt" {
		t.Errorf("file_name = %q, want notes.txt", resp.Data.FileName)
	}
	if resp.Data.Path != "" {
		t.Errorf("path should not leak the stored location, got %q", resp.Data.Path)
	}
	if !resp.Data.Verdict.CanUse {
		t.Error("expected can_use = true in response")
	}
}

func TestCheckDefaultsContext(t *testing.T) {
	checker := &stubChecker{}
	srv := newTestServer(t, checker)

	body, contentType := multipartBody(t, "notes.txt", "text", nil)
	req := httptest.NewRequest(http.MethodPost, "/api/check", body)
	req.Header.Set("Content-Type", contentType)
	rec := httptest.NewRecorder()
	srv.Router().ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200, body: %s", rec.Code, rec.Body.String())
	}
	if checker.lastUsage.Course != model.CourseOnline {
		t.Errorf("course = %q, want configured default %q", checker.lastUsage.Course, model.CourseOnline)
	}
	if checker.lastUsage.Institution != model.InstitutionPublicUniversity {
		t.Errorf("institution = %q, want configured default %q", checker.lastUsage.Institution, model.InstitutionPublicUniversity)
	}
}

func TestCheckValidation(t *testing.T) {
	tests := []struct {
		name     string
		filename string
		fields   map[string]string
		wantCode string
	}{
		{"missing file", "", nil, "validation"},
		{"unsupported extension", "payload.exe", nil, "unsupported_type"},
		{"bad course type", "notes.txt", map[string]string{"course_type": "carrier-pigeon"}, "validation"},
		{"bad institution type", "notes.txt", map[string]string{"institution_type": "pirate-academy"}, "validation"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			srv := newTestServer(t, &stubChecker{})

			body, contentType := multipartBody(t, tt.filename, "x", tt.fields)
			req := httptest.NewRequest(http.MethodPost, "/api/check", body)
			req.Header.Set("Content-Type", contentType)
			rec := httptest.NewRecorder()
			srv.Router().ServeHTTP(rec, req)

			if rec.Code != http.StatusBadRequest {
				t.Fatalf("status = %d, want 400, body: %s", rec.Code, rec.Body.String())
			}
			var resp struct {
				Error struct {
					Code string `json:"code"`
				} `json:"error"`
			}
			if err := json.NewDecoder(rec.Body).Decode(&resp); err != nil {
				t.Fatalf("decode: %v", err)
			}
			if resp.Error.Code != tt.wantCode {
				t.Errorf("error code = %q, want %q", resp.Error.Code, tt.wantCode)
			}
		})
	}
}

func TestCheckNotMultipart(t *testing.T) {
	srv := newTestServer(t, &stubChecker{})

	req := httptest.NewRequest(http.MethodPost, "/api/check", strings.NewReader("plain body"))
	rec := httptest.NewRecorder()
	srv.Router().ServeHTTP(rec, req)

	if rec.Code != http.StatusBadRequest {
		t.Fatalf("status = %d, want 400", rec.Code)
	}
}

func TestCheckFailure(t *testing.T) {
	srv := newTestServer(t, &stubChecker{err: errors.New("extraction failed")})

	body, contentType := multipartBody(t, "notes.txt", "text", nil)
	req := httptest.NewRequest(http.MethodPost, "/api/check", body)
	req.Header.Set("Content-Type", contentType)
	rec := httptest.NewRecorder()
	srv.Router().ServeHTTP(rec, req)

	if rec.Code != http.StatusUnprocessableEntity {
		t.Fatalf("status = %d, want 422, body: %s", rec.Code, rec.Body.String())
	}
}

func TestSources(t *testing.T) {
	srv := newTestServer(t, &stubChecker{})

	req := httptest.NewRequest(http.MethodGet, "/api/sources", nil)
	rec := httptest.NewRecorder()
	srv.Router().ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", rec.Code)
	}
	var resp struct {
		Data map[string][]model.AlternativeSource `json:"data"`
	}
	if err := json.NewDecoder(rec.Body).Decode(&resp); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if len(resp.Data["images"]) == 0 {
		t.Error("expected image sources in catalog")
	}
	if len(resp.Data["documents"]) == 0 {
		t.Error("expected document sources in catalog")
	}
}

func TestSourcesTypeFilter(t *testing.T) {
	srv := newTestServer(t, &stubChecker{})

	req := httptest.NewRequest(http.MethodGet, "/api/sources?type=document", nil)
	rec := httptest.NewRecorder()
	srv.Router().ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", rec.Code)
	}
	var resp struct {
		Data map[string][]model.AlternativeSource `json:"data"`
	}
	if err := json.NewDecoder(rec.Body).Decode(&resp); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if len(resp.Data["documents"]) == 0 {
		t.Error("expected document sources")
	}
	if _, ok := resp.Data["images"]; ok {
		t.Error("image sources should be filtered out")
	}

	req = httptest.NewRequest(http.MethodGet, "/api/sources?type=spreadsheet", nil)
	rec = httptest.NewRecorder()
	srv.Router().ServeHTTP(rec, req)
	if rec.Code != http.StatusBadRequest {
		t.Errorf("status = %d, want 400 for unknown type", rec.Code)
	}
}

func TestCheckCamelCaseFields(t *testing.T) {
	checker := &stubChecker{}
	srv := newTestServer(t, checker)

	body, contentType := multipartBody(t, "notes.txt", "text", map[string]string{
		"courseType":      "hybrid",
		"institutionType": "community college",
	})
	req := httptest.NewRequest(http.MethodPost, "/api/check", body)
	req.Header.Set("Content-Type", contentType)
	rec := httptest.NewRecorder()
	srv.Router().ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200, body: %s", rec.Code, rec.Body.String())
	}
	if checker.lastUsage.Course != model.CourseHybrid {
		t.Errorf("course = %q, want %q", checker.lastUsage.Course, model.CourseHybrid)
	}
	if checker.lastUsage.Institution != model.InstitutionCommunityCollege {
		t.Errorf("institution = %q, want %q", checker.lastUsage.Institution, model.InstitutionCommunityCollege)
	}
}
