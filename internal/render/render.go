package render

import (
	"fmt"
	"image"
	_ "image/gif"  // register decoder
	_ "image/jpeg" // register decoder
	_ "image/png"  // register decoder
	"io"
	"log/slog"
	"os"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/x/ansi/kitty"
	"github.com/charmbracelet/x/term"
	"github.com/gabriel-vasile/mimetype"
	"golang.org/x/image/draw"

	"github.com/five82/e6viu/internal/errs"
)

// Mode selects how images are drawn.
type Mode string

const (
	ModeAuto   Mode = "auto"
	ModeKitty  Mode = "kitty"
	ModeBlocks Mode = "blocks"
)

const (
	fallbackCols = 80
	fallbackRows = 24
	// rows kept free below the image for the info and prompt lines
	reservedRows = 4
)

var supportedTypes = []string{"image/png", "image/jpeg", "image/gif"}

// ParseMode validates a renderer name. Empty means auto.
func ParseMode(s string) (Mode, error) {
	switch m := Mode(strings.ToLower(strings.TrimSpace(s))); m {
	case "":
		return ModeAuto, nil
	case ModeAuto, ModeKitty, ModeBlocks:
		return m, nil
	default:
		return "", fmt.Errorf("unknown renderer %q (want auto, kitty or blocks)", s)
	}
}

// KittySupported reports whether the environment looks like a kitty terminal.
func KittySupported(getenv func(string) string) bool {
	if getenv == nil {
		getenv = os.Getenv
	}
	return strings.Contains(getenv("TERM"), "kitty") || getenv("KITTY_WINDOW_ID") != ""
}

// Options configure a Renderer.
type Options struct {
	Mode   Mode
	Getenv func(string) string
	// Size returns the terminal size in cells. Defaults to the size of stdout.
	Size   func() (cols, rows int)
	Logger *slog.Logger
}

// Renderer draws image files to a terminal writer.
type Renderer struct {
	out  io.Writer
	mode Mode
	size func() (int, int)
	log  *slog.Logger
	lg   *lipgloss.Renderer
}

// New builds a Renderer writing to out. ModeAuto is resolved here.
func New(out io.Writer, opts Options) *Renderer {
	mode := opts.Mode
	if mode == "" || mode == ModeAuto {
		mode = ModeBlocks
		if KittySupported(opts.Getenv) {
			mode = ModeKitty
		}
	}
	size := opts.Size
	if size == nil {
		size = stdoutSize
	}
	logger := opts.Logger
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}
	return &Renderer{
		out:  out,
		mode: mode,
		size: size,
		log:  logger,
		lg:   lipgloss.NewRenderer(out),
	}
}

// Mode returns the resolved drawing mode.
func (r *Renderer) Mode() Mode { return r.mode }

// Render draws the image stored at path.
func (r *Renderer) Render(path string) error {
	img, err := decode(path)
	if err != nil {
		return err
	}
	cols, rows := r.size()
	if cols <= 0 || rows <= 0 {
		cols, rows = fallbackCols, fallbackRows
	}
	b := img.Bounds()
	c, h := fit(b.Dx(), b.Dy(), cols, max(rows-reservedRows, 1))
	r.log.Debug("rendering image", "mode", r.mode, "width", b.Dx(), "height", b.Dy(), "cols", c, "rows", h)

	switch r.mode {
	case ModeKitty:
		err = kitty.EncodeGraphics(r.out, img, &kitty.Options{
			Action:       kitty.TransmitAndPut,
			Transmission: kitty.Direct,
			Format:       kitty.PNG,
			Chunk:        true,
			Quite:        2,
			Columns:      c,
			Rows:         h,
		})
		if err == nil {
			_, err = io.WriteString(r.out, "\n")
		}
	default:
		_, err = io.WriteString(r.out, r.blocks(img, c, h))
	}
	if err != nil {
		return fmt.Errorf("%w: draw %s: %w", errs.ErrIO, path, err)
	}
	return nil
}

func decode(path string) (image.Image, error) {
	mime, err := mimetype.DetectFile(path)
	if err != nil {
		return nil, fmt.Errorf("%w: sniff %s: %w", errs.ErrIO, path, err)
	}
	if !mimetype.EqualsAny(mime.String(), supportedTypes...) {
		return nil, fmt.Errorf("%w: unsupported content type %s", errs.ErrRender, mime.String())
	}
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("%w: open %s: %w", errs.ErrIO, path, err)
	}
	defer func() { _ = f.Close() }()
	img, _, err := image.Decode(f)
	if err != nil {
		return nil, fmt.Errorf("%w: decode %s: %w", errs.ErrRender, path, err)
	}
	return img, nil
}

// fit returns the largest cell box that keeps the image aspect ratio within
// cols x rows, assuming a cell is twice as tall as it is wide.
func fit(w, h, cols, rows int) (int, int) {
	if w <= 0 || h <= 0 {
		return 1, 1
	}
	c := cols
	r := (c*h + w) / (2 * w)
	if r > rows {
		r = rows
		c = (2*r*w + h/2) / h
	}
	return max(c, 1), max(r, 1)
}

// blocks renders img as cols x rows cells of upper half blocks, each cell
// carrying two vertically stacked pixels.
func (r *Renderer) blocks(img image.Image, cols, rows int) string {
	dst := image.NewRGBA(image.Rect(0, 0, cols, rows*2))
	draw.ApproxBiLinear.Scale(dst, dst.Bounds(), img, img.Bounds(), draw.Src, nil)

	var sb strings.Builder
	for y := 0; y < rows; y++ {
		for x := 0; x < cols; x++ {
			top := hex(dst.RGBAAt(x, 2*y))
			bottom := hex(dst.RGBAAt(x, 2*y+1))
			style := r.lg.NewStyle().
				Foreground(lipgloss.Color(top)).
				Background(lipgloss.Color(bottom))
			sb.WriteString(style.Render("▀"))
		}
		sb.WriteByte('\n')
	}
	return sb.String()
}

func hex(c interface{ RGBA() (r, g, b, a uint32) }) string {
	r, g, b, _ := c.RGBA()
	return fmt.Sprintf("#%02x%02x%02x", r>>8, g>>8, b>>8)
}

func stdoutSize() (int, int) {
	cols, rows, err := term.GetSize(os.Stdout.Fd())
	if err != nil {
		return fallbackCols, fallbackRows
	}
	return cols, rows
}
