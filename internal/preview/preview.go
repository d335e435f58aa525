package preview

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/go-rod/rod"
	"github.com/go-rod/rod/lib/launcher"
	"github.com/go-rod/rod/lib/proto"

	"github.com/kayz/slidesmith/internal/config"
)

// Renderer captures PNG screenshots of assembled slide HTML through a
// headless browser, for eyeballing layout without a frontend.
type Renderer struct {
	cfg config.PreviewConfig
}

func NewRenderer(cfg config.PreviewConfig) *Renderer {
	return &Renderer{cfg: cfg}
}

// Render writes the assembled HTML to a temp file, loads it in headless
// Chrome and captures a screenshot. It returns the PNG path.
func (r *Renderer) Render(assembled, variantID string) (string, error) {
	dir := r.cfg.Dir
	if dir == "" {
		dir = os.TempDir()
	}
	if err := os.MkdirAll(dir, 0755); err != nil {
		return "", fmt.Errorf("create preview dir: %w", err)
	}

	htmlPath := filepath.Join(dir, fmt.Sprintf("%s-%d.html", variantID, time.Now().UnixNano()))
	if err := os.WriteFile(htmlPath, []byte(assembled), 0644); err != nil {
		return "", fmt.Errorf("write preview html: %w", err)
	}
	defer os.Remove(htmlPath)

	controlURL, err := launcher.New().Headless(true).Launch()
	if err != nil {
		return "", fmt.Errorf("launch browser: %w", err)
	}
	browser := rod.New().ControlURL(controlURL)
	if err := browser.Connect(); err != nil {
		return "", fmt.Errorf("connect browser: %w", err)
	}
	defer browser.Close()

	page, err := browser.Page(proto.TargetCreateTarget{URL: "file://" + htmlPath})
	if err != nil {
		return "", fmt.Errorf("open page: %w", err)
	}
	if err := page.WaitLoad(); err != nil {
		return "", fmt.Errorf("wait for page load: %w", err)
	}

	width, height := r.cfg.Width, r.cfg.Height
	if width <= 0 {
		width = 1280
	}
	if height <= 0 {
		height = 720
	}
	if err := page.SetViewport(&proto.EmulationSetDeviceMetricsOverride{
		Width:             width,
		Height:            height,
		DeviceScaleFactor: 1,
	}); err != nil {
		return "", fmt.Errorf("set viewport: %w", err)
	}

	shot, err := page.Screenshot(false, &proto.PageCaptureScreenshot{
		Format: proto.PageCaptureScreenshotFormatPng,
	})
	if err != nil {
		return "", fmt.Errorf("capture screenshot: %w", err)
	}

	pngPath := filepath.Join(dir, fmt.Sprintf("%s-%d.png", variantID, time.Now().UnixNano()))
	if err := os.WriteFile(pngPath, shot, 0644); err != nil {
		return "", fmt.Errorf("write preview png: %w", err)
	}
	return pngPath, nil
}
