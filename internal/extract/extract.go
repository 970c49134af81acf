// Package extract turns uploaded resume files into plain text, dispatching
// on the filename extension.
package extract

import (
	"bytes"
	"log/slog"
	"strings"
	"unicode/utf8"

	"github.com/ledongthuc/pdf"
	"github.com/nguyenthenguyen/docx"

	"github.com/FAKE-SURYA/smartrecruitai-app/constants"
)

// FileExtractor is the default TextExtractor.
type FileExtractor struct {
	log *slog.Logger
}

func NewFileExtractor(log *slog.Logger) *FileExtractor {
	if log == nil {
		log = slog.Default()
	}
	return &FileExtractor{log: log}
}

// Extract produces best-effort plain text for the given upload. PDF pages and
// DOCX paragraphs that cannot be read are skipped, not fatal; unrecognized
// extensions are decoded as UTF-8 with invalid sequences dropped.
func (e *FileExtractor) Extract(filename string, data []byte) string {
	switch constants.MapExtToFormat(extOf(filename)) {
	case constants.PDF:
		return e.extractPDF(filename, data)
	case constants.DOCX:
		return e.extractDocx(filename, data)
	default:
		return decodeUTF8(data)
	}
}

func (e *FileExtractor) extractPDF(filename string, data []byte) (text string) {
	// The pdf library panics on some malformed inputs; a corrupt upload must
	// degrade to empty text, not take the request down.
	defer func() {
		if r := recover(); r != nil {
			e.log.Warn("extract.pdf.panic", "filename", filename, "cause", r)
			text = ""
		}
	}()

	reader, err := pdf.NewReader(bytes.NewReader(data), int64(len(data)))
	if err != nil {
		e.log.Warn("extract.pdf.open_failed", "filename", filename, "error", err)
		return ""
	}

	var pages []string
	numPages := reader.NumPage()
	for i := 1; i <= numPages; i++ {
		page := reader.Page(i)
		if page.V.IsNull() {
			continue
		}
		pageText, err := page.GetPlainText(nil)
		if err != nil {
			e.log.Warn("extract.pdf.page_skipped", "filename", filename, "page", i, "error", err)
			continue
		}
		pages = append(pages, pageText)
	}
	return strings.Join(pages, "\n")
}

func (e *FileExtractor) extractDocx(filename string, data []byte) (text string) {
	defer func() {
		if r := recover(); r != nil {
			e.log.Warn("extract.docx.panic", "filename", filename, "cause", r)
			text = ""
		}
	}()

	doc, err := docx.ReadDocxFromMemory(bytes.NewReader(data), int64(len(data)))
	if err != nil {
		e.log.Warn("extract.docx.open_failed", "filename", filename, "error", err)
		return ""
	}
	defer doc.Close()

	return paragraphText(doc.Editable().GetContent())
}

// paragraphText strips the WordprocessingML markup down to paragraph texts
// joined with newlines. The docx library hands back raw document XML.
func paragraphText(content string) string {
	var (
		b       strings.Builder
		inTag   bool
		wrote   bool
		lastPar bool
	)
	for i := 0; i < len(content); i++ {
		c := content[i]
		switch {
		case c == '<':
			inTag = true
			// paragraph boundaries become newlines
			if strings.HasPrefix(content[i:], "</w:p>") {
				lastPar = true
			}
		case c == '>':
			inTag = false
			if lastPar && wrote {
				b.WriteByte('\n')
				wrote = false
			}
			lastPar = false
		case !inTag:
			b.WriteByte(c)
			wrote = true
		}
	}
	return strings.TrimRight(b.String(), "\n")
}

// decodeUTF8 keeps only valid UTF-8 sequences from the raw bytes.
func decodeUTF8(data []byte) string {
	if utf8.Valid(data) {
		return string(data)
	}
	var b strings.Builder
	b.Grow(len(data))
	for len(data) > 0 {
		r, size := utf8.DecodeRune(data)
		if r != utf8.RuneError || size > 1 {
			b.WriteRune(r)
		}
		data = data[size:]
	}
	return b.String()
}

func extOf(filename string) string {
	if idx := strings.LastIndexByte(filename, '.'); idx >= 0 {
		return filename[idx:]
	}
	return ""
}
