package extract

import (
	"fmt"
	"os"
	"path/filepath"
	"regexp"
	"strings"

	"github.com/clearuse/clearuse/internal/model"
)

// textSampleLimit caps how much extracted text is kept for license scanning.
const textSampleLimit = 5000

var imageExts = map[string]bool{
	".jpg":  true,
	".jpeg": true,
	".png":  true,
	".gif":  true,
	".bmp":  true,
	".webp": true,
}

var documentExts = map[string]bool{
	".pdf":  true,
	".docx": true,
	".doc":  true,
	".txt":  true,
	".html": true,
	".htm":  true,
	".md":   true,
}

// DetectKind maps a file path to a content type by extension. The boolean
// reports whether the extension is supported at all.
func DetectKind(path string) (model.ContentType, bool) {
	ext := strings.ToLower(filepath.Ext(path))
	switch {
	case imageExts[ext]:
		return model.ContentImage, true
	case documentExts[ext]:
		return model.ContentDocument, true
	default:
		return "", false
	}
}

// Extractor reads local files and produces SourceInfo records for the
// resolver. Malformed content never fails extraction outright: whatever
// could not be read degrades into a warning on the record.
type Extractor struct{}

// NewExtractor creates a new extractor.
func NewExtractor() *Extractor {
	return &Extractor{}
}

// FromFile extracts source info from a local file. It errors only when the
// file cannot be read or has an unsupported extension.
func (e *Extractor) FromFile(path string) (model.SourceInfo, error) {
	kind, ok := DetectKind(path)
	if !ok {
		return model.SourceInfo{}, fmt.Errorf("unsupported file type: %s", filepath.Ext(path))
	}

	fi, err := os.Stat(path)
	if err != nil {
		return model.SourceInfo{}, fmt.Errorf("stat %s: %w", path, err)
	}

	src := model.SourceInfo{
		Path:        path,
		FileName:    filepath.Base(path),
		FileType:    strings.TrimPrefix(strings.ToLower(filepath.Ext(path)), "."),
		ContentType: kind,
		FileSize:    fi.Size(),
	}

	switch kind {
	case model.ContentImage:
		err = e.extractImage(path, &src)
	case model.ContentDocument:
		err = e.extractDocument(path, &src)
	}
	if err != nil {
		return src, err
	}

	harvestText(&src)
	return src, nil
}

// extractDocument routes a document file to the right parser.
func (e *Extractor) extractDocument(path string, src *model.SourceInfo) error {
	switch src.FileType {
	case "pdf":
		return extractPDF(path, src)
	case "docx":
		return extractDOCX(path, src)
	case "html", "htm":
		return extractHTML(path, src)
	default:
		// doc, txt, md: best effort plain text.
		return extractPlainText(path, src)
	}
}

var (
	urlRe = regexp.MustCompile(`https?://[^\s<>"'\)\]]+`)

	// Inline author-year citations, e.g. "(Smith, 2019)" or
	// "(Smith et al., 2019)".
	citationRe = regexp.MustCompile(`\(([A-Z][A-Za-z'\-]+(?:\s+(?:et al\.|&\s+[A-Z][A-Za-z'\-]+))?),?\s*((?:19|20)\d{2})\)`)

	referenceHeadings = []string{"references", "bibliography", "works cited"}
)

// harvestText mines the text sample for copyright notices, citations and
// URLs. These feed the resolver and show up in reports as evidence.
func harvestText(src *model.SourceInfo) {
	if src.TextSample == "" {
		return
	}
	text := src.TextSample

	scanSeen := make(map[string]bool)
	for _, n := range src.CopyrightNotices {
		scanSeen[n] = true
	}
	for _, line := range strings.Split(text, "\n") {
		lower := strings.ToLower(line)
		if strings.Contains(lower, "copyright") || strings.Contains(lower, "©") || strings.Contains(lower, "(c)") {
			notice := strings.TrimSpace(line)
			if notice != "" && len(notice) <= 200 && !scanSeen[notice] {
				scanSeen[notice] = true
				src.CopyrightNotices = append(src.CopyrightNotices, notice)
			}
		}
	}

	for _, m := range citationRe.FindAllStringSubmatch(text, -1) {
		citation := m[1] + ", " + m[2]
		if !containsString(src.Citations, citation) {
			src.Citations = append(src.Citations, citation)
		}
	}
	lower := strings.ToLower(text)
	for _, heading := range referenceHeadings {
		if strings.Contains(lower, heading) {
			if !containsString(src.Citations, "Reference section present") {
				src.Citations = append(src.Citations, "Reference section present")
			}
			break
		}
	}

	for _, u := range urlRe.FindAllString(text, -1) {
		u = strings.TrimRight(u, ".,;")
		if !containsString(src.URLs, u) {
			src.URLs = append(src.URLs, u)
		}
		if len(src.URLs) >= 20 {
			break
		}
	}
}

// isHTTPURL reports whether s is a bare http(s) URL, nothing more.
func isHTTPURL(s string) bool {
	if !strings.HasPrefix(s, "http://") && !strings.HasPrefix(s, "https://") {
		return false
	}
	return urlRe.FindString(s) == s
}

func containsString(list []string, s string) bool {
	for _, v := range list {
		if v == s {
			return true
		}
	}
	return false
}

// clampSample truncates extracted text to the sample limit.
func clampSample(text string) string {
	text = strings.TrimSpace(text)
	if len(text) > textSampleLimit {
		return text[:textSampleLimit]
	}
	return text
}
