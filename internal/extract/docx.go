package extract

import (
	"archive/zip"
	"bytes"
	"encoding/xml"
	"io"
	"strings"

	"github.com/pkg/errors"
)

// extractWord flattens the main document part of a Word archive into plain
// text, one paragraph per line. A .docx is a zip of WordprocessingML; only
// the text runs are kept, everything else (styling, tables, media) is
// dropped. Legacy binary .doc files fail at the zip check with a readable
// error.
func extractWord(fileName string, data []byte) (*Result, error) {
	archive, err := zip.NewReader(bytes.NewReader(data), int64(len(data)))
	if err != nil {
		return nil, errors.Wrapf(err, "opening word file %q", fileName)
	}

	var doc *zip.File
	for _, f := range archive.File {
		if f.Name == "word/document.xml" {
			doc = f
			break
		}
	}
	if doc == nil {
		return nil, errors.Errorf("word file %q has no document part", fileName)
	}

	rc, err := doc.Open()
	if err != nil {
		return nil, errors.Wrapf(err, "opening document part of %q", fileName)
	}
	defer rc.Close()

	text, err := flattenDocumentXML(rc)
	if err != nil {
		return nil, errors.Wrapf(err, "parsing document part of %q", fileName)
	}

	return &Result{
		Kind:     KindDocument,
		Content:  text,
		FileName: fileName,
		ByteSize: len(data),
	}, nil
}

// flattenDocumentXML collects the character data of <w:t> runs, ends each
// <w:p> paragraph with a newline, and turns explicit tabs and breaks into
// whitespace.
func flattenDocumentXML(r io.Reader) (string, error) {
	decoder := xml.NewDecoder(r)
	var b strings.Builder
	inText := false
	for {
		tok, err := decoder.Token()
		if err == io.EOF {
			break
		}
		if err != nil {
			return "", err
		}
		switch t := tok.(type) {
		case xml.StartElement:
			switch t.Name.Local {
			case "t":
				inText = true
			case "tab":
				b.WriteString("\t")
			case "br", "cr":
				b.WriteString("\n")
			}
		case xml.EndElement:
			switch t.Name.Local {
			case "t":
				inText = false
			case "p":
				b.WriteString("\n")
			}
		case xml.CharData:
			if inText {
				b.Write(t)
			}
		}
	}
	return b.String(), nil
}
