package workflow

import (
	"fmt"
	"path/filepath"
	"strings"

	"github.com/gabriel-vasile/mimetype"
)

// Accepted resume media types.
const (
	MediaTypePDF  = "application/pdf"
	MediaTypeDOC  = "application/msword"
	MediaTypeDOCX = "application/vnd.openxmlformats-officedocument.wordprocessingml.document"
)

// DefaultMaxDocumentBytes caps the size of a staged document.
const DefaultMaxDocumentBytes int64 = 10 << 20

// AllowedMediaTypes is the document allow-list.
var AllowedMediaTypes = []string{MediaTypePDF, MediaTypeDOC, MediaTypeDOCX}

var extensionMediaTypes = map[string]string{
	".pdf":  MediaTypePDF,
	".doc":  MediaTypeDOC,
	".docx": MediaTypeDOCX,
}

// Document is a staged resume. It is immutable once accepted.
type Document struct {
	Name      string
	MediaType string
	data      []byte
}

// NewDocument copies data into a Document. When mediaType is empty it is
// sniffed from the content, then guessed from the file extension.
func NewDocument(name string, data []byte, mediaType string) Document {
	mediaType = strings.TrimSpace(mediaType)
	if mediaType == "" {
		mediaType = detectMediaType(name, data)
	}
	return Document{
		Name:      name,
		MediaType: mediaType,
		data:      append([]byte(nil), data...),
	}
}

// Data returns a copy of the document bytes.
func (d Document) Data() []byte {
	return append([]byte(nil), d.data...)
}

// Size returns the document size in bytes.
func (d Document) Size() int64 {
	return int64(len(d.data))
}

// Info returns the document metadata without its content.
func (d Document) Info() DocumentInfo {
	return DocumentInfo{Name: d.Name, MediaType: d.MediaType, Size: d.Size()}
}

// DocumentInfo describes a staged document.
type DocumentInfo struct {
	Name      string `json:"name"`
	MediaType string `json:"media_type"`
	Size      int64  `json:"size"`
}

// IsAllowedMediaType reports whether mediaType is on the allow-list.
// Parameters such as "; charset=" are ignored.
func IsAllowedMediaType(mediaType string) bool {
	base, _, _ := strings.Cut(mediaType, ";")
	base = strings.ToLower(strings.TrimSpace(base))
	for _, allowed := range AllowedMediaTypes {
		if base == allowed {
			return true
		}
	}
	return false
}

func validateDocument(doc Document, maxBytes int64) error {
	if doc.Size() == 0 {
		return &InputError{Field: StageDocument, Message: "file is empty"}
	}
	if maxBytes > 0 && doc.Size() > maxBytes {
		return &InputError{Field: StageDocument, Message: fmt.Sprintf("file is larger than %d KB", maxBytes>>10)}
	}
	if !IsAllowedMediaType(doc.MediaType) {
		return &InputError{Field: StageDocument, Message: "only PDF, DOC, and DOCX files are allowed"}
	}
	return nil
}

func detectMediaType(name string, data []byte) string {
	if len(data) > 0 {
		detected := mimetype.Detect(data)
		for _, allowed := range AllowedMediaTypes {
			if detected.Is(allowed) {
				return allowed
			}
		}
	}
	if mt, ok := extensionMediaTypes[strings.ToLower(filepath.Ext(name))]; ok {
		return mt
	}
	if len(data) > 0 {
		return mimetype.Detect(data).String()
	}
	return ""
}
