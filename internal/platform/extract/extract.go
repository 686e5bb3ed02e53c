package extract

import (
	"archive/zip"
	"bytes"
	"encoding/xml"
	"errors"
	"fmt"
	"io"
	"path/filepath"
	"strings"
	"unicode/utf8"

	"github.com/gabriel-vasile/mimetype"
	pdf "github.com/ledongthuc/pdf"
)

type Kind string

const (
	KindUnknown Kind = ""
	KindPDF     Kind = "pdf"
	KindDOCX    Kind = "docx"
	KindDOC     Kind = "doc"
	KindText    Kind = "text"
)

const (
	MIMEPDF  = "application/pdf"
	MIMEText = "text/plain"
	MIMEDOC  = "application/msword"
	MIMEDOCX = "application/vnd.openxmlformats-officedocument.wordprocessingml.document"
)

var (
	ErrUnsupported = errors.New("unsupported file type")
	ErrEmpty       = errors.New("empty file")
	ErrNoText      = errors.New("no text extracted")
)

// Detect decides what a file is. Content sniffing wins; the declared MIME type
// and the file extension are only consulted when the bytes are inconclusive.
func Detect(name string, declaredMIME string, data []byte) Kind {
	ext := strings.ToLower(filepath.Ext(name))
	declared := strings.ToLower(strings.TrimSpace(declaredMIME))
	if i := strings.IndexByte(declared, ';'); i >= 0 {
		declared = strings.TrimSpace(declared[:i])
	}

	if len(data) > 0 {
		m := mimetype.Detect(data)
		switch {
		case m.Is(MIMEPDF):
			return KindPDF
		case m.Is(MIMEDOCX):
			return KindDOCX
		case m.Is(MIMEDOC):
			return KindDOC
		case m.Is("application/zip") && isWordZip(data):
			return KindDOCX
		}
	}

	switch {
	case declared == MIMEPDF || ext == ".pdf":
		return KindPDF
	case declared == MIMEDOCX || ext == ".docx":
		return KindDOCX
	case declared == MIMEDOC || ext == ".doc":
		return KindDOC
	}

	if len(data) > 0 && mimetype.Detect(data).Is(MIMEText) {
		return KindText
	}
	if declared == MIMEText || ext == ".txt" || ext == ".md" {
		return KindText
	}
	return KindUnknown
}

// Text extracts readable text from a PDF, DOCX or plain text file.
func Text(name string, declaredMIME string, data []byte) (string, error) {
	if len(data) == 0 {
		return "", fmt.Errorf("%w: %s", ErrEmpty, name)
	}
	switch kind := Detect(name, declaredMIME, data); kind {
	case KindPDF:
		return extractPDF(data)
	case KindDOCX:
		return extractDOCX(data)
	case KindText:
		return collapseWhitespace(PlainText(data)), nil
	default:
		return "", fmt.Errorf("%w: name=%s kind=%s mime=%s", ErrUnsupported, name, kind, declaredMIME)
	}
}

// PlainText returns data as a valid UTF-8 string with surrounding space trimmed.
func PlainText(data []byte) string {
	s := string(data)
	if !utf8.ValidString(s) {
		s = strings.ToValidUTF8(s, "\ufffd")
	}
	return strings.TrimSpace(strings.TrimPrefix(s, "\ufeff"))
}

func isPDF(b []byte) bool {
	return len(b) >= 5 && string(b[:5]) == "%PDF-"
}

func extractPDF(data []byte) (string, error) {
	if !isPDF(data) {
		return "", fmt.Errorf("file claims pdf but missing %%PDF header")
	}
	r, err := pdf.NewReader(bytes.NewReader(data), int64(len(data)))
	if err != nil {
		return "", fmt.Errorf("pdf reader: %w", err)
	}
	plain, err := r.GetPlainText()
	if err != nil {
		return "", fmt.Errorf("pdf plaintext: %w", err)
	}
	b, err := io.ReadAll(plain)
	if err != nil {
		return "", fmt.Errorf("pdf read: %w", err)
	}
	s := collapseWhitespace(string(b))
	if s == "" {
		return "", fmt.Errorf("%w: pdf has no text layer", ErrNoText)
	}
	return s, nil
}

func isWordZip(data []byte) bool {
	zr, err := zip.NewReader(bytes.NewReader(data), int64(len(data)))
	if err != nil {
		return false
	}
	return findZipFile(zr, "word/document.xml") != nil
}

// extractDOCX reads word/document.xml. Runs inside a paragraph are joined
// as-is, so a word split across runs stays whole; paragraphs are separated by
// a single space.
func extractDOCX(data []byte) (string, error) {
	zr, err := zip.NewReader(bytes.NewReader(data), int64(len(data)))
	if err != nil {
		return "", fmt.Errorf("file claims docx but is not a valid zip container: %w", err)
	}
	f := findZipFile(zr, "word/document.xml")
	if f == nil {
		return "", fmt.Errorf("docx is missing word/document.xml")
	}
	rc, err := f.Open()
	if err != nil {
		return "", err
	}
	b, err := io.ReadAll(rc)
	_ = rc.Close()
	if err != nil {
		return "", err
	}
	s := collapseWhitespace(docxText(b))
	if s == "" {
		return "", fmt.Errorf("%w: docx has no text runs", ErrNoText)
	}
	return s, nil
}

func findZipFile(zr *zip.Reader, name string) *zip.File {
	for _, f := range zr.File {
		if f.Name == name {
			return f
		}
	}
	return nil
}

func docxText(xmlBytes []byte) string {
	dec := xml.NewDecoder(bytes.NewReader(xmlBytes))
	var out strings.Builder
	for {
		tok, err := dec.Token()
		if err != nil {
			break
		}
		switch el := tok.(type) {
		case xml.StartElement:
			switch el.Name.Local {
			case "t":
				var v string
				if err := dec.DecodeElement(&v, &el); err == nil {
					out.WriteString(v)
				}
			case "tab", "br", "cr":
				out.WriteString(" ")
			}
		case xml.EndElement:
			if el.Name.Local == "p" {
				out.WriteString("\n")
			}
		}
	}
	return out.String()
}

func collapseWhitespace(s string) string {
	s = strings.ReplaceAll(s, "\u00a0", " ")
	return strings.Join(strings.Fields(s), " ")
}
