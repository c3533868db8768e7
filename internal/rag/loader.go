package rag

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/ledongthuc/pdf"
)

// MaxDocumentBytes caps how much of a linked document is downloaded.
const MaxDocumentBytes = 32 << 20

// ErrNoText is returned when a document yields no extractable text.
var ErrNoText = errors.New("rag: document has no extractable text")

// DocumentLoader fetches the plain text behind a link.
type DocumentLoader interface {
	Load(ctx context.Context, url string) (string, error)
}

// PDFLinkLoader downloads a PDF over HTTP and extracts its text page by page.
type PDFLinkLoader struct {
	client *http.Client
}

// NewPDFLinkLoader returns a loader using client, or a client with a one minute
// timeout when client is nil.
func NewPDFLinkLoader(client *http.Client) *PDFLinkLoader {
	if client == nil {
		client = &http.Client{Timeout: time.Minute}
	}
	return &PDFLinkLoader{client: client}
}

func (l *PDFLinkLoader) Load(ctx context.Context, url string) (string, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return "", fmt.Errorf("failed to build request: %w", err)
	}
	req.Header.Set("Accept", "application/pdf")

	resp, err := l.client.Do(req)
	if err != nil {
		return "", fmt.Errorf("failed to download document: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return "", fmt.Errorf("failed to download document: %s", resp.Status)
	}

	data, err := io.ReadAll(io.LimitReader(resp.Body, MaxDocumentBytes+1))
	if err != nil {
		return "", fmt.Errorf("failed to read document: %w", err)
	}
	if len(data) > MaxDocumentBytes {
		return "", fmt.Errorf("document exceeds %d bytes", MaxDocumentBytes)
	}
	return ExtractPDFText(data)
}

// ExtractPDFText returns the text of every page in data, one page per line block.
func ExtractPDFText(data []byte) (text string, err error) {
	// The reader panics on some malformed cross-reference tables.
	defer func() {
		if r := recover(); r != nil {
			text, err = "", fmt.Errorf("failed to parse PDF: %v", r)
		}
	}()

	r, err := pdf.NewReader(bytes.NewReader(data), int64(len(data)))
	if err != nil {
		return "", fmt.Errorf("failed to open PDF: %w", err)
	}

	var buf strings.Builder
	for i := 1; i <= r.NumPage(); i++ {
		p := r.Page(i)
		if p.V.IsNull() {
			continue
		}
		pageText, err := p.GetPlainText(nil)
		if err != nil {
			return "", fmt.Errorf("failed to extract text from page %d: %w", i, err)
		}
		buf.WriteString(pageText)
		buf.WriteString("\n")
	}

	out := strings.TrimSpace(buf.String())
	if out == "" {
		return "", ErrNoText
	}
	return out, nil
}
