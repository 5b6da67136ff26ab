package cli

import (
	"fmt"
	"image"
	"image/png"
	"io"
	"math/rand/v2"
	"os"

	"github.com/spf13/cobra"
	"golang.org/x/image/draw"

	"github.com/dshills/gutterview/internal/host"
	"github.com/dshills/gutterview/internal/logging"
	"github.com/dshills/gutterview/internal/renderer/backend"
	"github.com/dshills/gutterview/internal/renderer/metrics"
)

type renderFlags struct {
	output   string
	width    int
	height   int
	scroll   int
	line     int
	theme    string
	fontSize int
	mode     string
	check    bool
	steps    int
	seed     uint64
}

func newRenderCommand(opts *rootOptions) *cobra.Command {
	flags := &renderFlags{}

	cmd := &cobra.Command{
		Use:   "render [FILE]",
		Short: "Render a view of a file to PNG",
		Long: `Render the gutter and text of FILE as they would appear in a window of
the given size, scrolled by the given number of pixels. Without FILE an
empty document is rendered.

With --check, a random script of scrolls, cursor moves and edits is played
against the view first, and after every step the incrementally painted
pixels are compared with a full repaint.`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			path := ""
			if len(args) == 1 {
				path = args[0]
			}
			return runRender(cmd, opts, flags, path)
		},
	}

	cmd.Flags().StringVarP(&flags.output, "output", "o", "gutterview.png", "output PNG path, - for stdout")
	cmd.Flags().IntVar(&flags.width, "width", 640, "image width in pixels")
	cmd.Flags().IntVar(&flags.height, "height", 480, "image height in pixels")
	cmd.Flags().IntVar(&flags.scroll, "scroll", 0, "scroll offset in pixels")
	cmd.Flags().IntVar(&flags.line, "line", 0, "1-based line to place the cursor on and reveal")
	cmd.Flags().StringVar(&flags.theme, "theme", "", "theme name (overrides config)")
	cmd.Flags().IntVar(&flags.fontSize, "font-size", 0, "font size 10-20 (overrides config)")
	cmd.Flags().StringVar(&flags.mode, "mode", "", "line numbers: absolute, relative, hybrid (overrides config)")
	cmd.Flags().BoolVar(&flags.check, "check", false, "verify incremental repaints against full repaints")
	cmd.Flags().IntVar(&flags.steps, "steps", 200, "number of --check steps")
	cmd.Flags().Uint64Var(&flags.seed, "seed", 1, "random seed for --check")

	return cmd
}

func runRender(cmd *cobra.Command, opts *rootOptions, flags *renderFlags, path string) error {
	logger := logging.FromContext(cmd.Context())

	cfg := opts.settings()
	if flags.theme != "" {
		cfg.Editor.Theme = flags.theme
	}
	if flags.fontSize != 0 {
		cfg.Editor.FontSize = flags.fontSize
	}
	if flags.mode != "" {
		cfg.Gutter.Mode = flags.mode
	}
	if err := cfg.Validate(); err != nil {
		return err
	}
	if flags.width <= 0 || flags.height <= 0 {
		return fmt.Errorf("image size %dx%d must be positive", flags.width, flags.height)
	}

	m, err := metrics.GoMono(float64(cfg.Editor.FontSize))
	if err != nil {
		return err
	}
	doc, err := loadDocument(path, m.LineHeight())
	if err != nil {
		return err
	}
	hostOpts, err := hostOptions(cfg, cfg.Gutter.Margin, logger)
	if err != nil {
		return err
	}

	gutterImg := backend.NewImage(image.Point{}, m.FontFace())
	textImg := backend.NewImage(image.Point{}, m.FontFace())
	ta := host.New(doc, gutterImg, textImg, m, image.Pt(flags.width, flags.height), hostOpts...)

	if flags.check {
		if err := runCheck(cmd.OutOrStdout(), ta, gutterImg, textImg, flags); err != nil {
			return err
		}
	}

	if flags.line > 0 {
		ta.SetCurrentLine(flags.line - 1)
	}
	ta.ScrollBy(flags.scroll - ta.ScrollOffset())
	ta.Paint()

	out := compose(ta, gutterImg, textImg)
	if err := writePNG(flags.output, cmd.OutOrStdout(), out); err != nil {
		return err
	}

	logger.Info("rendered",
		logging.FieldPath, flags.output,
		logging.FieldBlocks, doc.BlockCount(),
		logging.FieldWidth, ta.LeftMargin())
	return nil
}

// runCheck plays a random script against ta, verifying every step.
func runCheck(w io.Writer, ta *host.TextArea, gutterImg, textImg *backend.Image, flags *renderFlags) error {
	rng := rand.New(rand.NewPCG(flags.seed, flags.seed^0x9e3779b97f4a7c15))
	lh := ta.Document().LineHeight()
	size := ta.ContentsRect().Size()

	ta.Paint()
	for step := 1; step <= flags.steps; step++ {
		n := ta.Document().BlockCount()
		var action string
		switch rng.IntN(10) {
		case 0, 1, 2, 3, 4:
			dy := rng.IntN(8*lh+1) - 4*lh
			action = fmt.Sprintf("scroll %d", dy)
			ta.ScrollBy(dy)
		case 5, 6:
			line := rng.IntN(n)
			action = fmt.Sprintf("cursor %d", line+1)
			ta.SetCurrentLine(line)
		case 7:
			at := rng.IntN(n + 1)
			action = fmt.Sprintf("insert at %d", at+1)
			_ = ta.Insert(at, "")
		case 8:
			if n > 1 {
				at := rng.IntN(n)
				action = fmt.Sprintf("remove %d", at+1)
				_ = ta.Remove(at, at)
			}
		case 9:
			action = "resize"
			ta.Resize(image.Pt(size.X, max(lh, size.Y-rng.IntN(size.Y/2+1))))
		}
		ta.Paint()
		if err := ta.VerifyImages(gutterImg, textImg); err != nil {
			return fmt.Errorf("%w: step %d (%s): %w", ErrCheckFailed, step, action, err)
		}
	}
	ta.Resize(size)

	fmt.Fprintf(w, "check passed: %d steps, seed %d\n", flags.steps, flags.seed)
	return nil
}

// compose draws the gutter and text surfaces into one frame image.
func compose(ta *host.TextArea, gutterImg, textImg *backend.Image) *image.RGBA {
	frame := ta.ContentsRect()
	out := image.NewRGBA(frame)
	draw.Draw(out, frame, image.NewUniform(ta.Theme().Background), image.Point{}, draw.Src)
	draw.Draw(out, ta.Gutter().Geometry(), gutterImg.RGBA(), image.Point{}, draw.Src)
	draw.Draw(out, ta.TextRect(), textImg.RGBA(), image.Point{}, draw.Src)
	return out
}

func writePNG(path string, stdout io.Writer, img image.Image) error {
	if path == "-" {
		return png.Encode(stdout, img)
	}
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	if err := png.Encode(f, img); err != nil {
		f.Close()
		return fmt.Errorf("encoding %s: %w", path, err)
	}
	return f.Close()
}
