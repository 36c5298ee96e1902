package extract

import (
	"fmt"
	"path/filepath"
	"strings"
	"unicode/utf8"

	"github.com/pkg/errors"
)

// maxFileSize bounds attachment ingestion.
const maxFileSize = 10 * 1024 * 1024

// Kind classifies an extracted attachment.
type Kind string

const (
	KindText     Kind = "text"
	KindCode     Kind = "code"
	KindPDF      Kind = "pdf"
	KindDocument Kind = "document"
)

// Result is the text distilled from an uploaded file, handed to the
// attachment surface before a turn is sent. The conversation engine never
// consumes it directly.
type Result struct {
	Kind     Kind   `json:"kind"`
	Language string `json:"language,omitempty"`
	Content  string `json:"content"`
	FileName string `json:"fileName"`
	ByteSize int    `json:"byteSize"`
}

var codeExtensions = map[string]bool{
	"js": true, "jsx": true, "ts": true, "tsx": true,
	"py": true, "java": true, "cpp": true, "c": true, "go": true,
	"css": true, "html": true, "json": true, "xml": true, "sql": true,
}

// Process turns an uploaded file into plain text. Oversized input and
// unsupported extensions fail with a descriptive error surfaced to the user
// at the attachment point.
func Process(fileName string, data []byte) (*Result, error) {
	if len(data) > maxFileSize {
		return nil, errors.Errorf("file %q exceeds the 10 MB limit (%s)", fileName, FormatSize(int64(len(data))))
	}

	ext := strings.ToLower(strings.TrimPrefix(filepath.Ext(fileName), "."))
	switch {
	case ext == "txt" || ext == "md":
		return textResult(KindText, "", fileName, data)
	case codeExtensions[ext]:
		return textResult(KindCode, ext, fileName, data)
	case ext == "pdf":
		return extractPDF(fileName, data)
	case ext == "doc" || ext == "docx":
		return extractWord(fileName, data)
	default:
		return nil, errors.Errorf("unsupported file type: %s", ext)
	}
}

func textResult(kind Kind, language, fileName string, data []byte) (*Result, error) {
	if !utf8.Valid(data) {
		return nil, errors.Errorf("file %q is not valid text", fileName)
	}
	return &Result{
		Kind:     kind,
		Language: language,
		Content:  string(data),
		FileName: fileName,
		ByteSize: len(data),
	}, nil
}

// FormatSize renders a byte count for display, e.g. "1.5 MB".
func FormatSize(bytes int64) string {
	if bytes == 0 {
		return "0 Bytes"
	}
	units := []string{"Bytes", "KB", "MB", "GB"}
	size := float64(bytes)
	i := 0
	for size >= 1024 && i < len(units)-1 {
		size /= 1024
		i++
	}
	return fmt.Sprintf("%.2f %s", size, units[i])
}
