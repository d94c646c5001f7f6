// Package ingestion turns uploaded resumes into clean text and narrows them
// to the sections that describe hands-on work.
package ingestion

import (
	"bytes"
	"errors"
	"encoding/xml"
	"fmt"
	"strings"
	"unicode"

	"github.com/ledongthuc/pdf"
	"github.com/nguyenthenguyen/docx"
)

// Media types understood by ExtractText.
const (
	MediaTypePDF  = "application/pdf"
	MediaTypeDOC  = "application/msword"
	MediaTypeDOCX = "application/vnd.openxmlformats-officedocument.wordprocessingml.document"
	MediaTypeText = "text/plain"
)

var (
	// ErrUnsupportedType is returned for media types with no extractor.
	ErrUnsupportedType = errors.New("unsupported file type")
	// ErrNoText is returned when a document yields no readable text.
	ErrNoText = errors.New("no text could be extracted")
)

// ExtractText returns the cleaned text of a resume document.
func ExtractText(mediaType string, data []byte) (string, error) {
	base, _, _ := strings.Cut(mediaType, ";")
	base = strings.ToLower(strings.TrimSpace(base))

	var (
		text string
		err  error
	)
	switch base {
	case MediaTypeText:
		text = string(data)
	case MediaTypePDF:
		text, err = extractPDFText(data)
	case MediaTypeDOCX:
		text, err = extractDocxText(data)
	case MediaTypeDOC:
		text = extractLegacyDocText(data)
	default:
		return "", fmt.Errorf("%w: %s", ErrUnsupportedType, mediaType)
	}
	if err != nil {
		return "", err
	}

	text = CleanText(text)
	if text == "" {
		return "", ErrNoText
	}
	return text, nil
}

func extractPDFText(data []byte) (text string, err error) {
	// the pdf reader panics on some malformed cross-reference tables
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("failed to read pdf: %v", r)
		}
	}()

	reader, err := pdf.NewReader(bytes.NewReader(data), int64(len(data)))
	if err != nil {
		return "", fmt.Errorf("failed to read pdf: %w", err)
	}

	var sb strings.Builder
	for i := 1; i <= reader.NumPage(); i++ {
		page := reader.Page(i)
		if page.V.IsNull() {
			continue
		}
		rows, err := page.GetTextByRow()
		if err != nil {
			continue
		}
		for _, row := range rows {
			for j, word := range row.Content {
				if j > 0 {
					sb.WriteByte(' ')
				}
				sb.WriteString(word.S)
			}
			sb.WriteByte('\n')
		}
	}
	return sb.String(), nil
}

func extractDocxText(data []byte) (string, error) {
	doc, err := docx.ReadDocxFromMemory(bytes.NewReader(data), int64(len(data)))
	if err != nil {
		return "", fmt.Errorf("failed to parse docx: %w", err)
	}
	defer func() { _ = doc.Close() }()

	return docxXMLToText(doc.Editable().GetContent()), nil
}

// docxXMLToText flattens WordprocessingML to one line per paragraph.
// Only run text (w:t) is kept; tabs become spaces and breaks newlines.
func docxXMLToText(content string) string {
	dec := xml.NewDecoder(strings.NewReader(content))
	dec.Strict = false
	dec.Entity = xml.HTMLEntity

	var (
		sb     strings.Builder
		inText int
		inTabs bool
	)
	for {
		tok, err := dec.Token()
		if err != nil {
			break
		}
		switch t := tok.(type) {
		case xml.StartElement:
			switch t.Name.Local {
			case "t":
				inText++
			case "tabs":
				inTabs = true
			case "tab":
				if !inTabs {
					sb.WriteByte(' ')
				}
			case "br", "cr":
				sb.WriteByte('\n')
			}
		case xml.EndElement:
			switch t.Name.Local {
			case "t":
				if inText > 0 {
					inText--
				}
			case "tabs":
				inTabs = false
			case "p":
				sb.WriteByte('\n')
			}
		case xml.CharData:
			if inText > 0 {
				sb.Write(t)
			}
		}
	}
	return sb.String()
}

// extractLegacyDocText recovers printable runs from a binary Word file.
// It is lossy but enough for skill extraction.
func extractLegacyDocText(data []byte) string {
	var (
		sb  strings.Builder
		run []rune
	)
	flush := func() {
		if len(run) >= 4 {
			sb.WriteString(string(run))
			sb.WriteByte('\n')
		}
		run = run[:0]
	}
	for _, b := range data {
		r := rune(b)
		if r == '\r' || r == '\n' {
			flush()
			continue
		}
		if r < 128 && (unicode.IsPrint(r) || r == '\t') {
			run = append(run, r)
			continue
		}
		flush()
	}
	flush()
	return sb.String()
}
