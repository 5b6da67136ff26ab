package cli

import (
	"context"
	"image"
	"io"
	"os"
	"path/filepath"

	"github.com/charmbracelet/log"
	"github.com/mattn/go-isatty"
	"github.com/spf13/cobra"

	"github.com/dshills/gutterview/internal/config"
	"github.com/dshills/gutterview/internal/host"
	"github.com/dshills/gutterview/internal/logging"
	"github.com/dshills/gutterview/internal/renderer/backend"
	"github.com/dshills/gutterview/internal/renderer/gutter"
	"github.com/dshills/gutterview/internal/renderer/metrics"
	"github.com/dshills/gutterview/internal/renderer/statusline"
	"github.com/dshills/gutterview/internal/renderer/theme"
)

// Terminal layout is in cells.
const (
	cellMargin  = 1
	cellPadding = 1
	wheelLines  = 3
)

func newViewCommand(opts *rootOptions) *cobra.Command {
	var logFile string

	cmd := &cobra.Command{
		Use:   "view [FILE]",
		Short: "Open FILE in the terminal viewer",
		Long: `Open FILE in an interactive terminal viewer.

Keys: Up/Down move the cursor, PgUp/PgDn scroll by a page, Home/End jump
to the first or last line, the mouse wheel scrolls, t cycles the theme,
m cycles the line number mode, q or Esc quits.

With --config, edits to the config file are applied while viewing.`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if !isatty.IsTerminal(os.Stdout.Fd()) && !isatty.IsCygwinTerminal(os.Stdout.Fd()) {
				return ErrNotTerminal
			}
			path := ""
			if len(args) == 1 {
				path = args[0]
			}

			// The screen owns the terminal, so logs go to a file or nowhere.
			logger := logging.FromContext(cmd.Context()).With()
			logger.SetOutput(io.Discard)
			if logFile != "" {
				f, err := os.OpenFile(logFile, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o600)
				if err != nil {
					return err
				}
				defer f.Close()
				logger.SetOutput(f)
			}

			term, err := backend.NewTerminal()
			if err != nil {
				return err
			}
			if err := term.Init(); err != nil {
				return err
			}
			defer term.Shutdown()

			v, err := newViewer(term, opts.settings(), path, logger)
			if err != nil {
				return err
			}

			ctx, cancel := context.WithCancel(cmd.Context())
			defer cancel()
			if opts.configPath != "" {
				go v.watchConfig(ctx, opts.configPath)
			}
			v.run()
			return nil
		},
	}

	cmd.Flags().StringVar(&logFile, "log-file", "", "append logs to this file while the viewer runs")
	return cmd
}

// configReload is posted to the event loop when the config file changes.
type configReload struct {
	cfg *config.Config
	err error
}

// viewer is the interactive terminal front end of a TextArea.
type viewer struct {
	term   *backend.Terminal
	ta     *host.TextArea
	status *statusline.StatusLine
	bar    *backend.Region
	logger *log.Logger
}

func newViewer(term *backend.Terminal, cfg *config.Config, path string, logger *log.Logger) (*viewer, error) {
	m := metrics.Cells()
	doc, err := loadDocument(path, m.LineHeight())
	if err != nil {
		return nil, err
	}
	opts, err := hostOptions(cfg, cellMargin, logger)
	if err != nil {
		return nil, err
	}
	opts = append(opts, host.WithTextPadding(cellPadding))

	w, h := term.Size()
	frame := image.Pt(w, max(h-1, 0))
	th, _ := cfg.Theme()

	v := &viewer{
		term:   term,
		status: statusline.New(th),
		bar:    term.Region(image.Rect(0, frame.Y, w, frame.Y+1)),
		logger: logger,
	}
	v.ta = host.New(doc,
		term.Region(image.Rectangle{}),
		term.Region(image.Rectangle{}),
		m, frame, opts...)

	name := "[New File]"
	if path != "" {
		name = filepath.Base(path)
	}
	v.status.SetFilename(name)
	v.paint()
	return v, nil
}

func (v *viewer) watchConfig(ctx context.Context, path string) {
	err := config.Watch(ctx, path, func(cfg *config.Config, err error) {
		_ = v.term.Interrupt(configReload{cfg: cfg, err: err})
	})
	if err != nil {
		v.logger.Warn("config watch stopped", logging.FieldPath, path, logging.FieldError, err)
	}
}

// run processes events until the user quits.
func (v *viewer) run() {
	for {
		ev, ok := v.term.PollEvent()
		if !ok || v.handle(ev) {
			return
		}
		v.paint()
	}
}

// handle applies one event. Returns true to quit.
func (v *viewer) handle(ev backend.Event) bool {
	ta := v.ta
	switch ev.Type {
	case backend.EventKey:
		switch ev.Key {
		case backend.KeyEscape, backend.KeyCtrlC, backend.KeyCtrlQ:
			return true
		case backend.KeyUp:
			ta.SetCursor(ta.CurrentLine()-1, ta.CurrentColumn())
		case backend.KeyDown:
			ta.SetCursor(ta.CurrentLine()+1, ta.CurrentColumn())
		case backend.KeyPageUp:
			ta.ScrollPages(-1)
		case backend.KeyPageDown:
			ta.ScrollPages(1)
		case backend.KeyHome:
			ta.SetCurrentLine(0)
		case backend.KeyEnd:
			ta.SetCurrentLine(ta.Document().BlockCount() - 1)
		case backend.KeyRune:
			switch ev.Rune {
			case 'q':
				return true
			case 't':
				v.cycleTheme()
			case 'm':
				mode := ta.Gutter().Config().Mode + 1
				if mode > gutter.LineNumberHybrid {
					mode = gutter.LineNumberAbsolute
				}
				ta.SetLineNumberMode(mode)
			}
		}

	case backend.EventMouse:
		switch ev.MouseButton {
		case backend.MouseWheelUp:
			ta.ScrollLines(-wheelLines)
		case backend.MouseWheelDown:
			ta.ScrollLines(wheelLines)
		case backend.MouseLeft:
			v.click(ev.MouseX, ev.MouseY)
		}

	case backend.EventResize:
		h := max(ev.Height-1, 0)
		v.bar.SetRect(image.Rect(0, h, ev.Width, h+1))
		ta.Resize(image.Pt(ev.Width, h))
		v.term.Sync()

	case backend.EventInterrupt:
		if r, ok := ev.Data.(configReload); ok {
			v.reload(r)
		}
	}
	return false
}

// click moves the cursor to the line under a click in the gutter or text.
func (v *viewer) click(x, y int) {
	if !image.Pt(x, y).In(v.ta.ContentsRect()) {
		return
	}
	b, ok := v.ta.Viewport().BlockAt(y - v.ta.ContentsRect().Min.Y)
	if !ok {
		return
	}
	col := max(x-v.ta.TextRect().Min.X-cellPadding, 0)
	v.ta.SetCursor(b.Index, col)
}

func (v *viewer) cycleTheme() {
	names := theme.Names()
	next := 0
	for i, n := range names {
		if n == v.ta.Theme().Name {
			next = (i + 1) % len(names)
		}
	}
	th, err := theme.Lookup(names[next])
	if err != nil {
		return
	}
	v.setTheme(th)
}

func (v *viewer) setTheme(th theme.Theme) {
	v.ta.SetTheme(th)
	v.status.SetTheme(th)
}

func (v *viewer) reload(r configReload) {
	if r.err != nil {
		v.logger.Warn("config reload failed", logging.FieldError, r.err)
		v.status.SetMessage("config: "+r.err.Error(), statusline.MessageError)
		return
	}
	v.status.ClearMessage()

	if th, err := r.cfg.Theme(); err == nil {
		v.setTheme(th)
	}
	if mode, err := r.cfg.LineNumberMode(); err == nil {
		v.ta.SetLineNumberMode(mode)
	}
	v.logger.Info("config reloaded",
		logging.FieldTheme, r.cfg.Editor.Theme,
		logging.FieldMode, r.cfg.Gutter.Mode)
}

func (v *viewer) paint() {
	v.ta.Paint()
	v.status.SetPosition(v.ta.CurrentLine()+1, v.ta.CurrentColumn()+1)
	v.status.SetTotalLines(v.ta.Document().BlockCount())
	v.status.SetScrollPercent(v.ta.ScrollPercent())
	v.status.Render(v.bar, v.bar.Bounds())
	v.placeCursor()
	v.term.Show()
}

// placeCursor shows the terminal cursor at the text cursor, or hides it
// when the cursor line is scrolled out or folded.
func (v *viewer) placeCursor() {
	row, ok := v.ta.Viewport().BlockRect(v.ta.CurrentLine())
	text := v.ta.TextRect()
	p := image.Pt(text.Min.X+cellPadding+v.ta.DisplayColumn(), text.Min.Y+row.Min.Y)
	if !ok || !p.In(text) {
		v.term.HideCursor()
		return
	}
	v.term.ShowCursor(p.X, p.Y)
}
