package pdf

import (
	"context"
	"errors"
	"os"
	"time"

	"github.com/chromedp/cdproto/page"
	"github.com/chromedp/cdproto/runtime"
	"github.com/chromedp/chromedp"
)

const (
	// EngineChrome names the headless Chrome converter.
	EngineChrome = "chrome"

	defaultChromeTimeout = 60 * time.Second
	defaultLoadWait      = 10 * time.Second
	shutdownGrace        = 5 * time.Second
)

// waitForAssets resolves once the document has loaded and every <img> has
// either loaded or failed.
const waitForAssets = `new Promise(resolve => {
  const images = () => Promise.all(Array.from(document.images)
    .filter(img => !img.complete)
    .map(img => new Promise(done => { img.onload = img.onerror = done; })));
  const ready = () => images().then(() => resolve(true));
  if (document.readyState === 'complete') { ready(); } else { window.addEventListener('load', ready); }
})`

// ChromeOptions configures the headless Chrome converter.
type ChromeOptions struct {
	// ExecPath overrides browser discovery.
	ExecPath string
	// NoSandbox passes --no-sandbox, needed when running as root in containers.
	NoSandbox bool
	// Timeout bounds one conversion including browser launch.
	Timeout time.Duration
	// LoadWait bounds how long external resources may take to load. Once it
	// elapses the page is printed as is.
	LoadWait time.Duration
}

// ChromeConverter prints HTML with headless Chrome over the DevTools
// protocol. A fresh browser is launched for each conversion.
type ChromeConverter struct {
	opts ChromeOptions
}

// NewChromeConverter returns a converter with defaults applied.
func NewChromeConverter(opts ChromeOptions) *ChromeConverter {
	if opts.Timeout <= 0 {
		opts.Timeout = defaultChromeTimeout
	}
	if opts.LoadWait <= 0 {
		opts.LoadWait = defaultLoadWait
	}
	return &ChromeConverter{opts: opts}
}

// Options returns the effective configuration.
func (c *ChromeConverter) Options() ChromeOptions { return c.opts }

func (c *ChromeConverter) allocatorOptions() []chromedp.ExecAllocatorOption {
	opts := append(chromedp.DefaultExecAllocatorOptions[:],
		chromedp.Flag("disable-gpu", true),
		chromedp.Flag("disable-dev-shm-usage", true),
		chromedp.Flag("disable-extensions", true),
	)
	if c.opts.NoSandbox {
		opts = append(opts, chromedp.NoSandbox)
	}
	if c.opts.ExecPath != "" {
		opts = append(opts, chromedp.ExecPath(c.opts.ExecPath))
	}
	return opts
}

// HTMLToPDF implements Converter.
func (c *ChromeConverter) HTMLToPDF(ctx context.Context, html string) ([]byte, error) {
	if ctx == nil {
		ctx = context.Background()
	}
	ctx, cancel := context.WithTimeout(ctx, c.opts.Timeout)
	defer cancel()

	allocCtx, allocCancel := chromedp.NewExecAllocator(ctx, c.allocatorOptions()...)
	browserCtx, browserCancel := chromedp.NewContext(allocCtx)

	// Cancelling the allocator can block while Chrome child processes exit;
	// kill the browser if that takes longer than the grace period.
	defer func() {
		var proc *os.Process
		if cc := chromedp.FromContext(browserCtx); cc != nil && cc.Browser != nil {
			proc = cc.Browser.Process()
		}
		done := make(chan struct{})
		go func() {
			browserCancel()
			allocCancel()
			close(done)
		}()
		select {
		case <-done:
		case <-time.After(shutdownGrace):
			if proc != nil {
				_ = proc.Kill()
			}
		}
	}()

	if err := chromedp.Run(browserCtx); err != nil {
		return nil, engineError(EngineChrome, "launch", err)
	}

	err := chromedp.Run(browserCtx,
		chromedp.Navigate("about:blank"),
		chromedp.ActionFunc(func(ctx context.Context) error {
			tree, err := page.GetFrameTree().Do(ctx)
			if err != nil {
				return err
			}
			return page.SetDocumentContent(tree.Frame.ID, html).Do(ctx)
		}),
		chromedp.ActionFunc(c.waitLoaded),
	)
	if err != nil {
		return nil, engineError(EngineChrome, "load", err)
	}

	var pdf []byte
	err = chromedp.Run(browserCtx, chromedp.ActionFunc(func(ctx context.Context) error {
		data, _, err := page.PrintToPDF().
			WithPaperWidth(A4WidthInches).
			WithPaperHeight(A4HeightInches).
			WithPrintBackground(PrintBackground).
			WithScale(Scale).
			Do(ctx)
		pdf = data
		return err
	}))
	if err != nil {
		return nil, engineError(EngineChrome, "print", err)
	}
	return pdf, nil
}

func (c *ChromeConverter) waitLoaded(ctx context.Context) error {
	waitCtx, cancel := context.WithTimeout(ctx, c.opts.LoadWait)
	defer cancel()

	var ready bool
	err := chromedp.Evaluate(waitForAssets, &ready, func(p *runtime.EvaluateParams) *runtime.EvaluateParams {
		return p.WithAwaitPromise(true)
	}).Do(waitCtx)
	if errors.Is(err, context.DeadlineExceeded) && ctx.Err() == nil {
		return nil
	}
	return err
}
