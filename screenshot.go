package courtboard

import (
	"bytes"
	"errors"
	"fmt"
	"image"
	"image/png"
	"os"
	"path/filepath"
	"strings"
	"unicode"

	"github.com/hajimehoshi/ebiten/v2"
	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
)

// ExportPrefix starts every exported file name.
const ExportPrefix = "TennisTactics_"

var errNotRunning = errors.New("surface is not running")

// CaptureImage renders the court canvas (court, guidance, strokes and
// pieces, nothing else) and returns it as PNG bytes. Only valid while the
// game loop runs.
func (s *Surface) CaptureImage() ([]byte, error) {
	if !s.running {
		return nil, &ExportError{Op: "capture", Err: errNotRunning}
	}
	s.ensureFonts()
	img, err := readNRGBA(s.renderStage())
	if err != nil {
		return nil, &ExportError{Op: "capture", Err: err}
	}
	var buf bytes.Buffer
	if err := png.Encode(&buf, img); err != nil {
		return nil, &ExportError{Op: "encode", Err: err}
	}
	return buf.Bytes(), nil
}

// Export writes the court canvas to the export directory and returns the
// file path. Failures are logged and returned; the session continues.
func (s *Surface) Export() (string, error) {
	path, err := s.export()
	if err != nil {
		s.logger.Error("export failed", "err", err)
		s.setStatus("Export failed: %v", err)
		return "", err
	}
	s.logger.Info("exported court", "path", path, "scenario", s.board.ScenarioRef())
	s.setStatus("Saved %s", path)
	return path, nil
}

func (s *Surface) export() (string, error) {
	data, err := s.CaptureImage()
	if err != nil {
		return "", err
	}
	dir := s.cfg.ExportDir
	if dir != "" {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return "", &ExportError{Op: "mkdir", Err: err}
		}
	}
	path := filepath.Join(dir, ExportFileName(s.board.scenario.Name))
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return "", &ExportError{Op: "write", Err: err}
	}
	return path, nil
}

// ExportFileName returns the file name an export of the named scenario is
// written to.
func ExportFileName(scenario string) string {
	return ExportPrefix + sanitizeLabel(scenario) + ".png"
}

// readNRGBA reads the pixels of img and converts them from premultiplied
// RGBA to straight-alpha NRGBA. Ebitengine panics when pixels are read
// outside the game loop; that panic is returned as an error.
func readNRGBA(img *ebiten.Image) (out *image.NRGBA, err error) {
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("read pixels: %v", r)
		}
	}()
	bounds := img.Bounds()
	w, h := bounds.Dx(), bounds.Dy()
	pixels := make([]byte, 4*w*h)
	img.ReadPixels(pixels)
	return unpremultiply(pixels, w, h), nil
}

// unpremultiply converts premultiplied RGBA bytes to an NRGBA image.
func unpremultiply(pixels []byte, w, h int) *image.NRGBA {
	img := image.NewNRGBA(image.Rect(0, 0, w, h))
	for i := 0; i+3 < len(pixels) && i+3 < len(img.Pix); i += 4 {
		r, g, b, a := pixels[i], pixels[i+1], pixels[i+2], pixels[i+3]
		if a > 0 && a < 255 {
			r = uint8(min(int(r)*255/int(a), 255))
			g = uint8(min(int(g)*255/int(a), 255))
			b = uint8(min(int(b)*255/int(a), 255))
		}
		img.Pix[i] = r
		img.Pix[i+1] = g
		img.Pix[i+2] = b
		img.Pix[i+3] = a
	}
	return img
}

// stripMarks removes combining marks after canonical decomposition, so
// "Revés" becomes "Reves".
var stripMarks = transform.Chain(norm.NFD, runes.Remove(runes.In(unicode.Mn)), norm.NFC)

// sanitizeLabel turns a scenario name into a file-safe ASCII label.
// Accents are dropped, runs of other unsafe characters become a single
// underscore, and an empty result falls back to "unlabeled".
func sanitizeLabel(label string) string {
	if folded, _, err := transform.String(stripMarks, label); err == nil {
		label = folded
	}
	var b strings.Builder
	b.Grow(len(label))
	pending := false
	for _, r := range strings.TrimSpace(label) {
		switch {
		case r >= 'a' && r <= 'z', r >= 'A' && r <= 'Z',
			r >= '0' && r <= '9', r == '-', r == '.':
			if pending && b.Len() > 0 {
				b.WriteByte('_')
			}
			pending = false
			b.WriteRune(r)
		default:
			pending = true
		}
	}
	if b.Len() == 0 {
		return "unlabeled"
	}
	return b.String()
}
