package installer

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"os"

	"haxeget/internal/logger"
)

// progressWriter reports download progress to out every time another tenth of
// the expected size (or another MiB when the size is unknown) has arrived.
type progressWriter struct {
	out      io.Writer
	total    int64
	written  int64
	reported int64
}

func (p *progressWriter) Write(b []byte) (int, error) {
	p.written += int64(len(b))
	if p.out == nil {
		return len(b), nil
	}

	if p.total > 0 {
		step := p.written * 10 / p.total
		if step > p.reported {
			p.reported = step
			_, _ = fmt.Fprintf(p.out, "\r%3d%% [%d/%d bytes]", step*10, p.written, p.total)
		}
	} else if mib := p.written >> 20; mib > p.reported {
		p.reported = mib
		_, _ = fmt.Fprintf(p.out, "\r%d MiB", mib)
	}
	return len(b), nil
}

func (p *progressWriter) finish() {
	if p.out != nil {
		_, _ = fmt.Fprintln(p.out)
	}
}

// downloadFile downloads the content located at the specified URL and saves it to the destination path.
// Progress is reported to progress when it is non-nil. A failed download leaves no partial file behind.
func downloadFile(ctx context.Context, client *http.Client, userAgent, url, destPath string, progress io.Writer) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return err
	}
	if userAgent != "" {
		req.Header.Set("User-Agent", userAgent)
	}

	resp, err := client.Do(req)
	if err != nil {
		// Wrap and return the error with context
		return fmt.Errorf("failed to GET %s: %w", url, err)
	}
	defer func() {
		if cerr := resp.Body.Close(); cerr != nil {
			logger.Warn("[WARN] Failed to close response body: %s\n", cerr)
		}
	}()

	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("failed to GET %s: HTTP status %d", url, resp.StatusCode)
	}

	out, err := os.Create(destPath)
	if err != nil {
		return fmt.Errorf("failed to create file %s: %w", destPath, err)
	}

	pw := &progressWriter{out: progress, total: resp.ContentLength}
	_, err = io.Copy(out, io.TeeReader(resp.Body, pw))
	pw.finish()
	if cerr := out.Close(); err == nil {
		err = cerr
	}
	if err != nil {
		_ = os.Remove(destPath)
		return fmt.Errorf("failed to write %s: %w", destPath, err)
	}

	logger.Debug("[DEBUG] Downloaded %s to: %s\n", url, destPath)
	return nil
}
