package pdf

import (
	"context"
	"net/url"
	"os/exec"
	"time"

	"github.com/chromedp/cdproto/page"
	"github.com/chromedp/chromedp"
)

const renderTimeout = 20 * time.Second

// ChromeProvider prints the HTML ticket through a headless browser.
type ChromeProvider struct {
	execPath string
}

func NewChrome(execPath string) *ChromeProvider {
	return &ChromeProvider{execPath: execPath}
}

func (p *ChromeProvider) Name() string { return "chrome" }

// FindChrome probes for a usable browser binary. An explicit path wins;
// otherwise the usual names are tried on PATH.
func FindChrome(configured string) (string, bool) {
	if configured != "" {
		if _, err := exec.LookPath(configured); err == nil {
			return configured, true
		}
		return "", false
	}
	for _, name := range []string{"google-chrome", "google-chrome-stable", "chromium", "chromium-browser"} {
		if path, err := exec.LookPath(name); err == nil {
			return path, true
		}
	}
	return "", false
}

func (p *ChromeProvider) RenderTicket(ctx context.Context, data TicketData) (RenderResult, error) {
	html, err := renderTicketHTML(data)
	if err != nil {
		return RenderResult{}, err
	}

	ctx, cancel := context.WithTimeout(ctx, renderTimeout)
	defer cancel()

	opts := append(chromedp.DefaultExecAllocatorOptions[:],
		chromedp.ExecPath(p.execPath),
		chromedp.NoSandbox,
	)
	allocCtx, cancelAlloc := chromedp.NewExecAllocator(ctx, opts...)
	defer cancelAlloc()
	browserCtx, cancelBrowser := chromedp.NewContext(allocCtx)
	defer cancelBrowser()

	var pdfBytes []byte
	err = chromedp.Run(browserCtx,
		chromedp.Navigate("data:text/html,"+url.PathEscape(string(html))),
		chromedp.WaitReady("body"),
		chromedp.ActionFunc(func(ctx context.Context) error {
			var err error
			pdfBytes, _, err = page.PrintToPDF().
				WithPrintBackground(true).
				WithPaperWidth(8.27).
				WithPaperHeight(11.69).
				Do(ctx)
			return err
		}),
	)
	if err != nil {
		return RenderResult{}, err
	}
	return RenderResult{
		Data:        pdfBytes,
		ContentType: "application/pdf",
		Filename:    "ticket-" + data.TicketCode + ".pdf",
	}, nil
}
