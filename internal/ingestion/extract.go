// Package ingestion turns uploaded resume documents into clean plain text.
package ingestion

import (
	"archive/zip"
	"bytes"
	"encoding/xml"
	"io"
	"path/filepath"
	"strings"

	"github.com/PuerkitoBio/goquery"
	"github.com/gen2brain/go-fitz"
)

// MaxDocumentBytes caps how much of a single document is read.
const MaxDocumentBytes = 16 << 20

// Format is a supported resume document format.
type Format string

// Supported formats.
const (
	FormatPDF     Format = "pdf"
	FormatDOCX    Format = "docx"
	FormatHTML    Format = "html"
	FormatText    Format = "text"
	FormatUnknown Format = "unknown"
)

// DetectFormat picks a format from the file extension.
func DetectFormat(filename string) Format {
	switch strings.ToLower(filepath.Ext(filename)) {
	case ".pdf":
		return FormatPDF
	case ".docx":
		return FormatDOCX
	case ".html", ".htm":
		return FormatHTML
	case ".txt", ".md", ".text":
		return FormatText
	default:
		return FormatUnknown
	}
}

// ExtractText returns the cleaned text of a document. Unsupported, corrupt or
// empty documents yield "".
func ExtractText(filename string, r io.Reader) string {
	format := DetectFormat(filename)
	if format == FormatUnknown {
		return ""
	}

	data, err := io.ReadAll(io.LimitReader(r, MaxDocumentBytes))
	if err != nil || len(data) == 0 {
		return ""
	}

	var text string
	switch format {
	case FormatPDF:
		text = extractPDF(data)
	case FormatDOCX:
		text = extractDOCX(data)
	case FormatHTML:
		text = extractHTML(data)
	case FormatText:
		text = string(bytes.ToValidUTF8(data, nil))
	}
	return CleanText(text)
}

func extractPDF(data []byte) string {
	doc, err := fitz.NewFromMemory(data)
	if err != nil {
		return ""
	}
	defer func() { _ = doc.Close() }()

	var sb strings.Builder
	for n := 0; n < doc.NumPage(); n++ {
		page, err := doc.Text(n)
		if err != nil {
			continue
		}
		sb.WriteString(page)
		sb.WriteString("\n")
	}
	return sb.String()
}

// extractDOCX reads paragraph text from word/document.xml.
func extractDOCX(data []byte) string {
	zr, err := zip.NewReader(bytes.NewReader(data), int64(len(data)))
	if err != nil {
		return ""
	}

	for _, f := range zr.File {
		if f.Name != "word/document.xml" {
			continue
		}
		rc, err := f.Open()
		if err != nil {
			return ""
		}
		defer func() { _ = rc.Close() }()
		return documentXMLText(rc)
	}
	return ""
}

func documentXMLText(r io.Reader) string {
	dec := xml.NewDecoder(r)
	var sb strings.Builder
	inText := false

	for {
		tok, err := dec.Token()
		if err != nil {
			// io.EOF or a truncated document; keep what was read
			break
		}
		switch t := tok.(type) {
		case xml.StartElement:
			switch t.Name.Local {
			case "t":
				inText = true
			case "tab":
				sb.WriteString("\t")
			case "br", "cr":
				sb.WriteString("\n")
			}
		case xml.EndElement:
			switch t.Name.Local {
			case "t":
				inText = false
			case "p":
				sb.WriteString("\n")
			}
		case xml.CharData:
			if inText {
				sb.Write(t)
			}
		}
	}
	return sb.String()
}

const htmlBlockSelector = "p, div, br, li, tr, h1, h2, h3, h4, h5, h6, section, article, header, footer"

func extractHTML(data []byte) string {
	doc, err := goquery.NewDocumentFromReader(bytes.NewReader(data))
	if err != nil {
		return ""
	}

	doc.Find("script, style, noscript, nav").Remove()
	doc.Find(htmlBlockSelector).Each(func(_ int, s *goquery.Selection) {
		s.AfterHtml("\n")
	})
	return doc.Find("body").Text()
}
