package extract

import (
	"fmt"
	"strings"

	"github.com/ledongthuc/pdf"

	"github.com/clearuse/clearuse/internal/model"
)

// pdfSamplePages is how many leading pages feed the text sample. License
// and copyright statements live on title and imprint pages.
const pdfSamplePages = 3

// extractPDF fills src from a PDF file: page count, document info metadata
// and a text sample from the leading pages. The parser panics on some
// malformed files, so the whole pass is recovered and degrades to a warning.
func extractPDF(path string, src *model.SourceInfo) (err error) {
	defer func() {
		if r := recover(); r != nil {
			src.Warnings = append(src.Warnings, fmt.Sprintf("pdf parse failed: %v", r))
			err = nil
		}
	}()

	f, reader, err := pdf.Open(path)
	if err != nil {
		src.Warnings = append(src.Warnings, "could not open pdf: "+err.Error())
		return nil
	}
	defer f.Close()

	pages := reader.NumPage()
	src.PageCount = model.IntPtr(pages)

	readPDFInfo(reader, src)

	var sample strings.Builder
	for i := 1; i <= pages && i <= pdfSamplePages; i++ {
		page := reader.Page(i)
		if page.V.IsNull() {
			continue
		}
		text, err := page.GetPlainText(nil)
		if err != nil {
			src.Warnings = append(src.Warnings, fmt.Sprintf("pdf page %d unreadable: %v", i, err))
			continue
		}
		sample.WriteString(text)
		sample.WriteString("\n")
		if sample.Len() >= textSampleLimit {
			break
		}
	}
	src.TextSample = clampSample(sample.String())

	return nil
}

// readPDFInfo copies the document information dictionary into src.
func readPDFInfo(reader *pdf.Reader, src *model.SourceInfo) {
	info := reader.Trailer().Key("Info")
	if info.IsNull() {
		return
	}

	if v := strings.TrimSpace(info.Key("Author").Text()); v != "" {
		src.Author = v
	}
	if v := strings.TrimSpace(info.Key("Title").Text()); v != "" {
		src.Title = v
	}
	if v := strings.TrimSpace(info.Key("Subject").Text()); v != "" {
		src.Subject = v
	}
	if v := strings.TrimSpace(info.Key("CreationDate").Text()); v != "" {
		src.Date = v
	}

	// Some producers stash rights statements in nonstandard info keys.
	for _, key := range []string{"Copyright", "Rights", "License"} {
		if v := strings.TrimSpace(info.Key(key).Text()); v != "" {
			src.CopyrightFields = append(src.CopyrightFields, v)
		}
	}
}
