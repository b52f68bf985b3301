package tui

import (
	"context"
	"fmt"
	"image"
	"image/color"
	_ "image/gif"
	_ "image/jpeg"
	_ "image/png"
	"io"
	"log/slog"
	"net/http"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
)

const (
	imageTimeout  = 10 * time.Second
	imageMaxBytes = 8 << 20
	imageCols     = 24
)

// fetchImage loads url in the background and renders it as half blocks.
// Best effort: any failure yields no message, so the previous image stays.
func fetchImage(client *http.Client, url string, cols int, log *slog.Logger) tea.Cmd {
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), imageTimeout)
		defer cancel()

		img, err := downloadImage(ctx, client, url)
		if err != nil {
			log.Debug("header image skipped", "url", url, "err", err)
			return nil
		}
		return imageLoadedMsg{art: renderHalfBlocks(img, cols)}
	}
}

func downloadImage(ctx context.Context, client *http.Client, url string) (image.Image, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, fmt.Errorf("build request: %w", err)
	}
	resp, err := client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("get: %w", err)
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("get: status %d", resp.StatusCode)
	}
	img, _, err := image.Decode(io.LimitReader(resp.Body, imageMaxBytes))
	if err != nil {
		return nil, fmt.Errorf("decode: %w", err)
	}
	return img, nil
}

// renderHalfBlocks scales img to cols cells wide; each cell shows two
// vertically stacked pixels using ▀ with foreground and background colours.
func renderHalfBlocks(img image.Image, cols int) string {
	b := img.Bounds()
	if b.Dx() == 0 || b.Dy() == 0 || cols <= 0 {
		return ""
	}
	if cols > b.Dx() {
		cols = b.Dx()
	}
	rows := b.Dy() * cols / b.Dx()
	if rows < 2 {
		rows = 2
	}
	rows -= rows % 2

	at := func(x, y int) color.Color {
		return img.At(b.Min.X+x*b.Dx()/cols, b.Min.Y+y*b.Dy()/rows)
	}

	var sb strings.Builder
	for y := 0; y < rows; y += 2 {
		for x := 0; x < cols; x++ {
			cell := lipgloss.NewStyle().
				Foreground(lipgloss.Color(hex(at(x, y)))).
				Background(lipgloss.Color(hex(at(x, y+1))))
			sb.WriteString(cell.Render("▀"))
		}
		if y+2 < rows {
			sb.WriteByte('\n')
		}
	}
	return sb.String()
}

func hex(c color.Color) string {
	r, g, b, _ := c.RGBA()
	return fmt.Sprintf("#%02x%02x%02x", r>>8, g>>8, b>>8)
}
