package extract

import (
	"bytes"
	"fmt"
	"image"
	_ "image/gif"
	_ "image/jpeg"
	_ "image/png"
	"os"
	"strings"

	"github.com/bep/imagemeta"
	"github.com/corona10/goimagehash"
	_ "golang.org/x/image/bmp"
	_ "golang.org/x/image/webp"

	"github.com/clearuse/clearuse/internal/model"
)

// wantedTags maps (source, tag-name) → true for every metadata tag worth
// reading. Everything else is skipped during decode.
var wantedTags = map[imagemeta.Source]map[string]bool{
	imagemeta.IPTC: {
		"CopyrightNotice": true,
		"Credit":          true,
		"Byline":          true,
		"Source":          true,
		"ObjectName":      true,
	},
	imagemeta.EXIF: {
		"Copyright":        true,
		"Artist":           true,
		"ImageDescription": true,
	},
	imagemeta.XMP: {
		"WebStatement": true,
		"UsageTerms":   true,
		"License":      true,
		"Rights":       true,
		"Creator":      true,
		"Title":        true,
	},
}

// extractImage fills src from an image file: dimensions and format via a
// config decode, rights metadata via EXIF/IPTC/XMP, and a difference hash
// for duplicate detection. Metadata and hash failures degrade to warnings.
func (e *Extractor) extractImage(path string, src *model.SourceInfo) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("read %s: %w", path, err)
	}

	cfg, format, err := image.DecodeConfig(bytes.NewReader(data))
	if err != nil {
		src.Warnings = append(src.Warnings, "could not decode image dimensions: "+err.Error())
	} else {
		src.Width = cfg.Width
		src.Height = cfg.Height
		src.Format = format
	}

	if err := decodeImageMeta(data, src); err != nil {
		src.Warnings = append(src.Warnings, "could not read image metadata: "+err.Error())
	}

	if img, _, err := image.Decode(bytes.NewReader(data)); err == nil {
		if hash, err := goimagehash.DifferenceHash(img); err == nil {
			src.PerceptualHash = hash.ToString()
		}
	}

	return nil
}

// decodeImageMeta pulls rights-related EXIF/IPTC/XMP tags into src.
func decodeImageMeta(data []byte, src *model.SourceInfo) error {
	_, err := imagemeta.Decode(imagemeta.Options{
		R:       bytes.NewReader(data),
		Sources: imagemeta.EXIF | imagemeta.IPTC | imagemeta.XMP,
		ShouldHandleTag: func(ti imagemeta.TagInfo) bool {
			if tags, ok := wantedTags[ti.Source]; ok {
				return tags[ti.Tag]
			}
			return false
		},
		HandleTag: func(ti imagemeta.TagInfo) error {
			s := tagValueString(ti.Value)
			if s == "" {
				return nil
			}
			switch ti.Tag {
			case "Artist", "Byline", "Creator":
				if src.Author == "" {
					src.Author = s
				}
				src.CopyrightFields = append(src.CopyrightFields, s)
			case "ObjectName", "Title":
				if src.Title == "" {
					src.Title = s
				}
			case "ImageDescription":
				if src.Subject == "" {
					src.Subject = s
				}
			case "Copyright", "CopyrightNotice", "Rights":
				src.CopyrightNotices = append(src.CopyrightNotices, s)
				src.CopyrightFields = append(src.CopyrightFields, s)
			case "Credit", "Source":
				// Agencies and exporters often put the source page URL
				// here; it feeds the host classification.
				if src.OriginalURL == "" && isHTTPURL(s) {
					src.OriginalURL = s
				}
				src.CopyrightFields = append(src.CopyrightFields, s)
			default:
				// WebStatement, UsageTerms, License.
				src.CopyrightFields = append(src.CopyrightFields, s)
			}
			return nil
		},
	})
	return err
}

// tagValueString extracts a string from a tag value. XMP values may arrive
// as string, []string or []any.
func tagValueString(v any) string {
	switch val := v.(type) {
	case string:
		return strings.TrimSpace(val)
	case []string:
		if len(val) > 0 {
			return strings.TrimSpace(val[0])
		}
	case []any:
		if len(val) > 0 {
			if s, ok := val[0].(string); ok {
				return strings.TrimSpace(s)
			}
		}
	}
	return ""
}
