package model

import "fmt"

// SourceInfo is the best-effort provenance record the extractors produce.
// Every field is optional: a failed extraction degrades a field to its zero
// value, never the whole analysis to an error.
type SourceInfo struct {
	Path        string      `json:"path"`
	FileName    string      `json:"file_name"`
	FileType    string      `json:"file_type"` // raw extension: jpg, pdf, docx, ...
	ContentType ContentType `json:"content_type"`
	FileSize    int64       `json:"file_size,omitempty"`

	Author  string `json:"author,omitempty"`
	Title   string `json:"title,omitempty"`
	Subject string `json:"subject,omitempty"`
	Date    string `json:"date,omitempty"`

	// Image-only fields.
	Width          int    `json:"width,omitempty"`
	Height         int    `json:"height,omitempty"`
	Format         string `json:"format,omitempty"`
	PerceptualHash string `json:"perceptual_hash,omitempty"` // dHash hex, for duplicate detection

	// Document-only fields.
	PageCount  *int   `json:"page_count,omitempty"`
	TextSample string `json:"text_sample,omitempty"` // leading text, scanned for notices

	// Provenance signals harvested from metadata or text.
	OriginalURL      string   `json:"original_url,omitempty"`
	CopyrightFields  []string `json:"copyright_fields,omitempty"` // raw rights/license metadata values
	CopyrightNotices []string `json:"copyright_notices,omitempty"`
	Citations        []string `json:"citations,omitempty"`
	URLs             []string `json:"urls,omitempty"`

	// Warnings carries extraction degradations ("no EXIF data", "PDF text
	// layer unreadable") so the caller can surface them on the report.
	Warnings []string `json:"warnings,omitempty"`
}

// Dimensions returns "WxH" or "" when unknown.
func (s SourceInfo) Dimensions() string {
	if s.Width <= 0 || s.Height <= 0 {
		return ""
	}
	return fmt.Sprintf("%dx%d", s.Width, s.Height)
}
