package video

import (
	"fmt"
	"image"
	"image/color"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"golang.org/x/image/draw"
)

// Screen is the terminal video surface: it holds the latest painted frame
// or a status message, and renders either into a cell grid.
type Screen struct {
	status string
	frame  *image.RGBA
	seq    uint64

	// last render, reused while neither the frame nor the size changes
	cacheSeq  uint64
	cacheW    int
	cacheH    int
	cacheView string
}

// SetStatus shows msg instead of video. An empty msg shows the last frame.
func (s *Screen) SetStatus(msg string) {
	s.status = msg
}

// Paint replaces the current frame and clears any status message.
func (s *Screen) Paint(frame *image.RGBA) {
	s.frame = frame
	s.status = ""
	s.seq++
}

// Status returns the current message.
func (s *Screen) Status() string { return s.status }

// Frame returns the last painted frame, or nil.
func (s *Screen) Frame() *image.RGBA { return s.frame }

// View renders the screen into w×h cells. Frames use half-block cells, so
// each cell shows two vertically stacked pixels.
func (s *Screen) View(w, h int) string {
	if w <= 0 || h <= 0 {
		return ""
	}
	if s.status != "" || s.frame == nil {
		msg := s.status
		if msg == "" {
			msg = StatusLoading
		}
		return lipgloss.Place(w, h, lipgloss.Center, lipgloss.Center,
			lipgloss.NewStyle().Foreground(lipgloss.Color("#FFFFFF")).Render(msg))
	}

	if s.cacheSeq == s.seq && s.cacheW == w && s.cacheH == h {
		return s.cacheView
	}
	s.cacheView = renderHalfBlocks(s.frame, w, h)
	s.cacheSeq, s.cacheW, s.cacheH = s.seq, w, h
	return s.cacheView
}

// renderHalfBlocks scales img to fit w×(2h) pixels keeping its aspect
// ratio and paints each cell as '▀' with the top pixel as foreground and
// the bottom pixel as background.
func renderHalfBlocks(img *image.RGBA, w, h int) string {
	fw, fh := fit(img.Bounds().Dx(), img.Bounds().Dy(), w, h*2)
	if fw == 0 || fh == 0 {
		return ""
	}
	scaled := image.NewRGBA(image.Rect(0, 0, fw, fh))
	draw.ApproxBiLinear.Scale(scaled, scaled.Bounds(), img, img.Bounds(), draw.Src, nil)

	padX := (w - fw) / 2
	lines := make([]string, 0, h)
	for y := 0; y < fh; y += 2 {
		var sb strings.Builder
		sb.WriteString(strings.Repeat(" ", padX))
		for x := 0; x < fw; x++ {
			top := scaled.RGBAAt(x, y)
			bot := top
			if y+1 < fh {
				bot = scaled.RGBAAt(x, y+1)
			}
			sb.WriteString(lipgloss.NewStyle().
				Foreground(hex(top)).
				Background(hex(bot)).
				Render("▀"))
		}
		lines = append(lines, sb.String())
	}
	return lipgloss.PlaceVertical(h, lipgloss.Center, strings.Join(lines, "\n"))
}

// fit returns the largest size with the source aspect ratio inside maxW×maxH.
func fit(srcW, srcH, maxW, maxH int) (int, int) {
	if srcW <= 0 || srcH <= 0 || maxW <= 0 || maxH <= 0 {
		return 0, 0
	}
	w := maxW
	h := srcH * maxW / srcW
	if h > maxH {
		h = maxH
		w = srcW * maxH / srcH
	}
	if w < 1 {
		w = 1
	}
	if h < 1 {
		h = 1
	}
	return w, h
}

func hex(c color.RGBA) lipgloss.Color {
	return lipgloss.Color(fmt.Sprintf("#%02X%02X%02X", c.R, c.G, c.B))
}
