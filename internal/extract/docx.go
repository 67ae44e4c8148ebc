package extract

import (
	"archive/zip"
	"encoding/xml"
	"fmt"
	"strings"

	"github.com/clearuse/clearuse/internal/model"
)

// docx files are zip archives: paragraph text lives in word/document.xml,
// author and title metadata in docProps/core.xml.

type docxBody struct {
	Paragraphs []struct {
		Runs []struct {
			Text []string `xml:"t"`
		} `xml:"r"`
	} `xml:"body>p"`
}

type docxCoreProps struct {
	Creator     string `xml:"creator"`
	Title       string `xml:"title"`
	Subject     string `xml:"subject"`
	Created     string `xml:"created"`
	Description string `xml:"description"`
}

// extractDOCX fills src from a Word document. Archive and XML problems
// degrade to warnings.
func extractDOCX(path string, src *model.SourceInfo) error {
	zr, err := zip.OpenReader(path)
	if err != nil {
		src.Warnings = append(src.Warnings, "could not open docx archive: "+err.Error())
		return nil
	}
	defer zr.Close()

	for _, f := range zr.File {
		switch f.Name {
		case "word/document.xml":
			if err := readDocxBody(f, src); err != nil {
				src.Warnings = append(src.Warnings, "docx body unreadable: "+err.Error())
			}
		case "docProps/core.xml":
			if err := readDocxProps(f, src); err != nil {
				src.Warnings = append(src.Warnings, "docx properties unreadable: "+err.Error())
			}
		}
	}

	return nil
}

func readDocxBody(f *zip.File, src *model.SourceInfo) error {
	rc, err := f.Open()
	if err != nil {
		return err
	}
	defer rc.Close()

	var body docxBody
	if err := xml.NewDecoder(rc).Decode(&body); err != nil {
		return fmt.Errorf("decode document.xml: %w", err)
	}

	var sample strings.Builder
	paragraphs := 0
	for _, p := range body.Paragraphs {
		var line strings.Builder
		for _, r := range p.Runs {
			for _, t := range r.Text {
				line.WriteString(t)
			}
		}
		if text := strings.TrimSpace(line.String()); text != "" {
			sample.WriteString(text)
			sample.WriteString("\n")
			paragraphs++
		}
		if sample.Len() >= textSampleLimit {
			break
		}
	}

	src.TextSample = clampSample(sample.String())
	src.PageCount = model.IntPtr(estimatePages(paragraphs))
	return nil
}

func readDocxProps(f *zip.File, src *model.SourceInfo) error {
	rc, err := f.Open()
	if err != nil {
		return err
	}
	defer rc.Close()

	var props docxCoreProps
	if err := xml.NewDecoder(rc).Decode(&props); err != nil {
		return fmt.Errorf("decode core.xml: %w", err)
	}

	if v := strings.TrimSpace(props.Creator); v != "" {
		src.Author = v
	}
	if v := strings.TrimSpace(props.Title); v != "" {
		src.Title = v
	}
	if v := strings.TrimSpace(props.Subject); v != "" {
		src.Subject = v
	}
	if v := strings.TrimSpace(props.Created); v != "" {
		src.Date = v
	}
	if v := strings.TrimSpace(props.Description); v != "" {
		src.CopyrightFields = append(src.CopyrightFields, v)
	}
	return nil
}

// estimatePages approximates a page count from paragraph density. Word
// files do not record pagination in the archive itself.
func estimatePages(paragraphs int) int {
	const paragraphsPerPage = 15
	pages := paragraphs / paragraphsPerPage
	if paragraphs%paragraphsPerPage != 0 || pages == 0 {
		pages++
	}
	return pages
}
