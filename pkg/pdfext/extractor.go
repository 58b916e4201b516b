package pdfext

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/pdfcpu/pdfcpu/pkg/api"
	"github.com/pdfcpu/pdfcpu/pkg/pdfcpu/model"
)

// Extractor pulls text content out of PDF documents using pdfcpu.
// pdfcpu works on files, so uploads are staged through a temp directory.
type Extractor struct {
	tempDir string
}

func NewExtractor() *Extractor {
	tempDir := filepath.Join(os.TempDir(), "mcq-writer-pdf")
	os.MkdirAll(tempDir, 0755)

	return &Extractor{
		tempDir: tempDir,
	}
}

// ExtractText extracts all text from raw PDF bytes, concatenated in
// page order.
func (e *Extractor) ExtractText(ctx context.Context, pdfContent []byte) (string, error) {
	tempFile := filepath.Join(e.tempDir, fmt.Sprintf("upload_%d.pdf", os.Getpid()))
	if err := os.WriteFile(tempFile, pdfContent, 0644); err != nil {
		return "", fmt.Errorf("failed to write temp PDF file: %w", err)
	}
	defer os.Remove(tempFile)

	conf := model.NewDefaultConfiguration()
	pdfCtx, err := api.ReadContextFile(tempFile)
	if err != nil {
		return "", fmt.Errorf("failed to read PDF context: %w", err)
	}
	pageCount := pdfCtx.PageCount

	outDir := filepath.Join(e.tempDir, fmt.Sprintf("pages_%d", os.Getpid()))
	os.MkdirAll(outDir, 0755)
	defer os.RemoveAll(outDir)

	if err := api.ExtractContentFile(tempFile, outDir, nil, conf); err != nil {
		return "", fmt.Errorf("failed to extract PDF content: %w", err)
	}

	// pdfcpu writes one content file per page; stitch them back together
	// in page order.
	pageTexts := make(map[int]string)
	files, _ := os.ReadDir(outDir)
	for _, file := range files {
		if file.IsDir() {
			continue
		}
		content, err := os.ReadFile(filepath.Join(outDir, file.Name()))
		if err != nil {
			continue
		}
		var pageNum int
		if _, err := fmt.Sscanf(file.Name(), "Content_page_%d", &pageNum); err == nil {
			pageTexts[pageNum] = string(content)
		} else if _, err := fmt.Sscanf(file.Name(), "page_%d", &pageNum); err == nil {
			pageTexts[pageNum] = string(content)
		}
	}

	var fullText strings.Builder
	for pageNum := 1; pageNum <= pageCount; pageNum++ {
		text, ok := pageTexts[pageNum]
		if !ok || text == "" {
			continue
		}
		if fullText.Len() > 0 {
			fullText.WriteString("\n\n")
		}
		fullText.WriteString(text)
	}

	return fullText.String(), nil
}

// PageCount returns the number of pages without extracting text.
func (e *Extractor) PageCount(ctx context.Context, pdfContent []byte) (int, error) {
	tempFile := filepath.Join(e.tempDir, fmt.Sprintf("meta_%d.pdf", os.Getpid()))
	if err := os.WriteFile(tempFile, pdfContent, 0644); err != nil {
		return 0, fmt.Errorf("failed to write temp PDF file: %w", err)
	}
	defer os.Remove(tempFile)

	pdfCtx, err := api.ReadContextFile(tempFile)
	if err != nil {
		return 0, fmt.Errorf("failed to read PDF context: %w", err)
	}
	return pdfCtx.PageCount, nil
}
