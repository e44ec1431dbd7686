package extraction

import (
	"archive/zip"
	"bytes"
	"context"
	"fmt"
	"io"
	"path/filepath"
	"regexp"
	"strings"
	"unicode/utf8"

	"github.com/ledongthuc/pdf"
	"go.uber.org/zap"

	"github.com/jonathan/resume-matcher/internal/logger"
)

// BlobStore is the storage collaborator documents are read from
type BlobStore interface {
	// Get returns the raw bytes stored under key
	Get(ctx context.Context, key string) ([]byte, error)
	// Delete removes the object under key, reporting whether it existed
	Delete(ctx context.Context, key string) (bool, error)
}

// Extractor converts stored documents into plain text based on the
// storage key suffix.
type Extractor struct {
	store BlobStore
	log   *zap.Logger
}

// NewExtractor creates an Extractor reading from the given store
func NewExtractor(store BlobStore, log *zap.Logger) *Extractor {
	return &Extractor{store: store, log: logger.NopIfNil(log)}
}

var xmlTagPattern = regexp.MustCompile(`<[^>]+>`)

// Extract returns the plain text of the document stored under key.
// The format is inferred from the key suffix (pdf, doc, docx, txt); any
// other suffix fails with UnsupportedFormatError before any I/O.
func (e *Extractor) Extract(ctx context.Context, key string) (string, error) {
	suffix := strings.ToLower(filepath.Ext(key))
	switch suffix {
	case ".pdf", ".doc", ".docx", ".txt":
	default:
		return "", &UnsupportedFormatError{Key: key, Suffix: suffix}
	}

	data, err := e.store.Get(ctx, key)
	if err != nil {
		return "", &ExtractionError{Key: key, Message: "blob read failed", Cause: err}
	}

	var text string
	switch suffix {
	case ".pdf":
		text, err = e.extractPDF(data)
	case ".doc", ".docx":
		text, err = extractWordXML(data)
	case ".txt":
		text, err = decodeUTF8(data)
	}
	if err != nil {
		return "", &ExtractionError{Key: key, Message: "text extraction failed", Cause: err}
	}

	e.log.Debug("extracted document text",
		zap.String("key", key),
		zap.Int("chars", len(text)))
	return strings.TrimSpace(text), nil
}

// extractPDF concatenates per-page text in page order, one page per line.
// A page that fails to extract contributes an empty string rather than
// failing the document.
func (e *Extractor) extractPDF(data []byte) (text string, err error) {
	// The pdf library panics on some malformed files; keep that inside
	// the extraction boundary.
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("pdf reader panic: %v", r)
		}
	}()

	reader, err := pdf.NewReader(bytes.NewReader(data), int64(len(data)))
	if err != nil {
		return "", fmt.Errorf("open pdf: %w", err)
	}

	pages := make([]string, 0, reader.NumPage())
	for i := 1; i <= reader.NumPage(); i++ {
		page := reader.Page(i)
		if page.V.IsNull() {
			pages = append(pages, "")
			continue
		}
		pageText, pageErr := page.GetPlainText(nil)
		if pageErr != nil {
			e.log.Warn("pdf page extraction failed, skipping page",
				zap.Int("page", i), zap.Error(pageErr))
			pageText = ""
		}
		pages = append(pages, pageText)
	}

	return strings.Join(pages, "\n"), nil
}

// extractWordXML pulls text out of the docx zip container by stripping the
// markup from word/document.xml. Legacy .doc files that are really zip
// containers are handled the same way; true binary .doc files fail.
func extractWordXML(data []byte) (string, error) {
	zr, err := zip.NewReader(bytes.NewReader(data), int64(len(data)))
	if err != nil {
		return "", fmt.Errorf("open word container: %w", err)
	}

	var docXML []byte
	for _, f := range zr.File {
		if f.Name != "word/document.xml" {
			continue
		}
		rc, err := f.Open()
		if err != nil {
			return "", fmt.Errorf("open document.xml: %w", err)
		}
		docXML, err = io.ReadAll(rc)
		_ = rc.Close()
		if err != nil {
			return "", fmt.Errorf("read document.xml: %w", err)
		}
		break
	}
	if len(docXML) == 0 {
		return "", fmt.Errorf("no document.xml found in container")
	}

	xml := string(docXML)
	xml = strings.ReplaceAll(xml, "</w:p>", "\n")
	xml = strings.ReplaceAll(xml, "<w:tab/>", "\t")
	return normalizeWhitespace(xmlTagPattern.ReplaceAllString(xml, " ")), nil
}

func decodeUTF8(data []byte) (string, error) {
	if !utf8.Valid(data) {
		return "", fmt.Errorf("document is not valid UTF-8")
	}
	return string(data), nil
}

// normalizeWhitespace collapses runs of spaces and tabs within each line
// while preserving line breaks.
func normalizeWhitespace(s string) string {
	lines := strings.Split(s, "\n")
	out := make([]string, 0, len(lines))
	for _, line := range lines {
		line = strings.Join(strings.Fields(line), " ")
		if line != "" {
			out = append(out, line)
		}
	}
	return strings.Join(out, "\n")
}
