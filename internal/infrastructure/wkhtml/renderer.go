package wkhtml

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"os/exec"
	"strings"
	"time"

	"github.com/nakliye-kontrol-api/internal/config"
	"github.com/nakliye-kontrol-api/internal/domain"
)

// Renderer converts an HTML document to PDF bytes by shelling out to
// wkhtmltopdf. Reading from stdin and writing to stdout keeps the
// filesystem out of the hot path.
type Renderer struct {
	binPath string
	timeout time.Duration
}

func NewRenderer(cfg *config.Config) *Renderer {
	return &Renderer{
		binPath: cfg.WkhtmltopdfPath,
		timeout: time.Duration(cfg.RenderTimeoutSeconds) * time.Second,
	}
}

// Render produces PDF bytes for the given HTML. A missing binary, a non-zero
// exit or a timeout all surface as domain.ErrRenderer so callers can report
// a renderer failure distinctly instead of returning a partial document.
func (r *Renderer) Render(ctx context.Context, html string) ([]byte, error) {
	ctx, cancel := context.WithTimeout(ctx, r.timeout)
	defer cancel()

	cmd := exec.CommandContext(ctx, r.binPath, "--quiet", "--encoding", "utf-8", "-", "-")
	cmd.Stdin = strings.NewReader(html)

	var stdout, stderr bytes.Buffer
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr

	if err := cmd.Run(); err != nil {
		if errors.Is(ctx.Err(), context.DeadlineExceeded) {
			return nil, fmt.Errorf("render timed out after %s: %w", r.timeout, domain.ErrRenderer)
		}
		return nil, fmt.Errorf("wkhtmltopdf failed: %s: %w", firstLine(stderr.String()), domain.ErrRenderer)
	}
	if stdout.Len() == 0 {
		return nil, fmt.Errorf("wkhtmltopdf produced no output: %w", domain.ErrRenderer)
	}
	return stdout.Bytes(), nil
}

func firstLine(s string) string {
	s = strings.TrimSpace(s)
	if i := strings.IndexByte(s, '\n'); i >= 0 {
		return s[:i]
	}
	return s
}
