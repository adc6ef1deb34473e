// Package textsource turns uploaded resume documents into plain text.
package textsource

import (
	"archive/zip"
	"bytes"
	"encoding/xml"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"regexp"
	"strings"
	"unicode/utf8"

	"github.com/PuerkitoBio/goquery"
	"github.com/ledongthuc/pdf"
)

// UnsupportedFormatError is returned for file extensions without an extractor.
type UnsupportedFormatError struct {
	Ext string
}

func (e *UnsupportedFormatError) Error() string {
	return fmt.Sprintf("unsupported file format %q: use pdf, docx, html, txt or md", e.Ext)
}

// ExtractError wraps a failure of a specific extractor.
type ExtractError struct {
	Format string
	Cause  error
}

func (e *ExtractError) Error() string {
	return fmt.Sprintf("extract %s text: %v", e.Format, e.Cause)
}

func (e *ExtractError) Unwrap() error {
	return e.Cause
}

var (
	reSpaces   = regexp.MustCompile(`[ \t\r\f\v\x{00A0}]+`)
	reNewlines = regexp.MustCompile(`\s*\n\s*`)
)

// ReadFile reads path and extracts its text.
func ReadFile(path string) (string, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return "", err
	}
	return Extract(filepath.Base(path), data)
}

// Extract returns the plain text of data. The format is chosen by the extension of name.
func Extract(name string, data []byte) (string, error) {
	ext := strings.ToLower(filepath.Ext(name))

	var (
		text string
		err  error
	)
	switch ext {
	case ".pdf":
		text, err = fromPDF(data)
	case ".docx":
		text, err = fromDocx(data)
	case ".html", ".htm":
		text, err = fromHTML(data)
	case ".txt", ".md", ".text", "":
		text, err = fromPlain(data)
	default:
		return "", &UnsupportedFormatError{Ext: ext}
	}
	if err != nil {
		return "", &ExtractError{Format: strings.TrimPrefix(ext, "."), Cause: err}
	}

	return Normalize(text), nil
}

// Normalize collapses horizontal whitespace and blank lines.
func Normalize(s string) string {
	s = reSpaces.ReplaceAllString(s, " ")
	s = reNewlines.ReplaceAllString(s, "\n")
	return strings.TrimSpace(s)
}

func fromPlain(data []byte) (string, error) {
	if !utf8.Valid(data) {
		return "", errors.New("text is not valid utf-8")
	}
	return string(data), nil
}

func fromPDF(data []byte) (string, error) {
	r, err := pdf.NewReader(bytes.NewReader(data), int64(len(data)))
	if err != nil {
		return "", err
	}

	rs, err := r.GetPlainText()
	if err != nil {
		return "", err
	}

	var buf bytes.Buffer
	if _, err := io.Copy(&buf, rs); err != nil {
		return "", err
	}
	return buf.String(), nil
}

func fromHTML(data []byte) (string, error) {
	doc, err := goquery.NewDocumentFromReader(bytes.NewReader(data))
	if err != nil {
		return "", err
	}

	doc.Find("script, style, noscript").Remove()
	doc.Find("br, p, li, h1, h2, h3, h4, h5, h6, div, tr").Each(func(_ int, s *goquery.Selection) {
		s.AppendHtml("\n")
	})

	return doc.Find("body").Text(), nil
}

func fromDocx(data []byte) (string, error) {
	zr, err := zip.NewReader(bytes.NewReader(data), int64(len(data)))
	if err != nil {
		return "", err
	}

	for _, f := range zr.File {
		if f.Name != "word/document.xml" {
			continue
		}

		rc, err := f.Open()
		if err != nil {
			return "", err
		}
		defer rc.Close()

		return docxText(rc)
	}

	return "", errors.New("no word/document.xml found in docx")
}

func docxText(r io.Reader) (string, error) {
	var (
		b      strings.Builder
		inText bool
	)

	dec := xml.NewDecoder(r)
	for {
		tok, err := dec.Token()
		if errors.Is(err, io.EOF) {
			return b.String(), nil
		}
		if err != nil {
			return "", err
		}

		switch el := tok.(type) {
		case xml.StartElement:
			switch el.Name.Local {
			case "t":
				inText = true
			case "tab":
				b.WriteString("\t")
			case "br":
				b.WriteString("\n")
			}
		case xml.EndElement:
			switch el.Name.Local {
			case "t":
				inText = false
			case "p":
				b.WriteString("\n")
			}
		case xml.CharData:
			if inText {
				b.Write(el)
			}
		}
	}
}
