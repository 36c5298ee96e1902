package extract

import (
	"bytes"
	"strings"

	"github.com/ledongthuc/pdf"
	"github.com/pkg/errors"
)

// extractPDF pulls the plain text of every page, one page per line. The
// parser panics on some malformed files, so that is converted to an error
// here instead of taking down the upload handler.
func extractPDF(fileName string, data []byte) (result *Result, err error) {
	defer func() {
		if r := recover(); r != nil {
			result = nil
			err = errors.Errorf("reading pdf %q: %v", fileName, r)
		}
	}()

	reader, err := pdf.NewReader(bytes.NewReader(data), int64(len(data)))
	if err != nil {
		return nil, errors.Wrapf(err, "reading pdf %q", fileName)
	}

	var b strings.Builder
	for i := 1; i <= reader.NumPage(); i++ {
		page := reader.Page(i)
		if page.V.IsNull() {
			continue
		}
		text, err := page.GetPlainText(nil)
		if err != nil {
			return nil, errors.Wrapf(err, "extracting page %d of %q", i, fileName)
		}
		b.WriteString(text)
		b.WriteString("\n")
	}

	return &Result{
		Kind:     KindPDF,
		Content:  b.String(),
		FileName: fileName,
		ByteSize: len(data),
	}, nil
}
