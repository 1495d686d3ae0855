package report

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/exec"
	"path/filepath"
	"strings"
	"time"

	"github.com/chromedp/cdproto/page"
	"github.com/chromedp/chromedp"
)

var ErrChromeNotFound = errors.New("chrome/chromium not found")

const pdfTimeout = 60 * time.Second

var chromeBinaries = []string{
	"google-chrome",
	"google-chrome-stable",
	"chromium",
	"chromium-browser",
	"headless-shell",
}

// GeneratePDF prints an HTML report to PDF with headless Chrome. The PDF is
// written next to the HTML file.
func GeneratePDF(ctx context.Context, htmlPath string) (string, error) {
	if !chromeAvailable() {
		return "", ErrChromeNotFound
	}

	abs, err := filepath.Abs(htmlPath)
	if err != nil {
		return "", fmt.Errorf("resolve %s: %w", htmlPath, err)
	}

	ctx, cancel := context.WithTimeout(ctx, pdfTimeout)
	defer cancel()
	allocCtx, cancelAlloc := chromedp.NewExecAllocator(ctx, chromedp.DefaultExecAllocatorOptions[:]...)
	defer cancelAlloc()
	browserCtx, cancelBrowser := chromedp.NewContext(allocCtx)
	defer cancelBrowser()

	var pdf []byte
	err = chromedp.Run(browserCtx,
		chromedp.Navigate("file://"+filepath.ToSlash(abs)),
		chromedp.ActionFunc(func(ctx context.Context) error {
			data, _, err := page.PrintToPDF().
				WithPrintBackground(true).
				WithLandscape(true).
				Do(ctx)
			if err != nil {
				return err
			}
			pdf = data
			return nil
		}),
	)
	if err != nil {
		return "", fmt.Errorf("chromedp: %w", err)
	}

	pdfPath := strings.TrimSuffix(htmlPath, filepath.Ext(htmlPath)) + ".pdf"
	if err := os.WriteFile(pdfPath, pdf, 0o644); err != nil {
		return "", fmt.Errorf("write %s: %w", pdfPath, err)
	}
	return pdfPath, nil
}

func chromeAvailable() bool {
	for _, bin := range chromeBinaries {
		if _, err := exec.LookPath(bin); err == nil {
			return true
		}
	}
	return false
}
