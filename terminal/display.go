// Package terminal renders a marquee's LED grid as terminal cells with
// tcell and feeds typed keys into its text input.
package terminal

import (
	"context"
	"fmt"
	"time"

	"github.com/gdamore/tcell/v2"

	"github.com/phanxgames/marquee"
)

const (
	ledOn  = '●'
	ledOff = '·'
)

// Config controls layout and pacing of the terminal display.
type Config struct {
	// OriginX and OriginY place grid cell (0, 0) on the screen.
	OriginX, OriginY int
	// Hz is the tick rate used by Run.
	Hz int
	// MaxInput caps the edit buffer in runes; 0 uses the marquee's
	// MaxTextLength.
	MaxInput int
	OnStyle  tcell.Style
	OffStyle tcell.Style
}

// DefaultConfig returns a display drawing the grid from the top-left
// corner at 60 ticks per second.
func DefaultConfig() Config {
	return Config{
		OriginX:  0,
		OriginY:  0,
		Hz:       60,
		OnStyle:  tcell.StyleDefault.Foreground(tcell.ColorRed).Bold(true),
		OffStyle: tcell.StyleDefault.Foreground(tcell.ColorDarkGray),
	}
}

// Display binds one terminal cell to each LED and draws a status and
// input line under the grid.
type Display struct {
	screen tcell.Screen
	m      *marquee.Marquee
	cfg    Config
	input  *marquee.TextInput
	lit    int
}

// ledHandle is the terminal side of one LED.
type ledHandle struct {
	d      *Display
	x, y   int
	on     bool
	primed bool
}

// SetVisible implements marquee.LightHandle. The cell is only rewritten
// when its state changes.
func (h *ledHandle) SetVisible(v bool) {
	if h.primed && v == h.on {
		return
	}
	wasOn := h.primed && h.on
	h.on, h.primed = v, true
	if v {
		h.d.screen.SetContent(h.x, h.y, ledOn, nil, h.d.cfg.OnStyle)
		h.d.lit++
		return
	}
	h.d.screen.SetContent(h.x, h.y, ledOff, nil, h.d.cfg.OffStyle)
	if wasOn {
		h.d.lit--
	}
}

// New binds every LED of m to a cell of screen. The screen must already
// be initialized.
func New(screen tcell.Screen, m *marquee.Marquee, cfg Config) *Display {
	if cfg.Hz <= 0 {
		cfg.Hz = 60
	}
	maxInput := cfg.MaxInput
	if maxInput == 0 {
		maxInput = m.Config().MaxTextLength
	}
	d := &Display{
		screen: screen,
		m:      m,
		cfg:    cfg,
		input:  marquee.NewTextInput(maxInput),
	}
	m.Grid().BindAll(func(c *marquee.LightCell) marquee.LightHandle {
		return &ledHandle{d: d, x: cfg.OriginX + c.Col, y: cfg.OriginY + c.Row}
	})
	return d
}

// Input returns the edit buffer.
func (d *Display) Input() *marquee.TextInput {
	return d.input
}

// Lit returns the number of LED cells currently drawn lit.
func (d *Display) Lit() int {
	return d.lit
}

// HandleEvent applies one terminal event. It returns false when the user
// asked to quit.
func (d *Display) HandleEvent(ev tcell.Event) bool {
	switch ev := ev.(type) {
	case *tcell.EventKey:
		switch ev.Key() {
		case tcell.KeyEscape, tcell.KeyCtrlC:
			return false
		case tcell.KeyEnter:
			text := d.input.Commit()
			d.m.Commit(text)
			marquee.Logger().Debug("terminal: commit", "text", text)
		case tcell.KeyBackspace, tcell.KeyBackspace2:
			d.input.Backspace()
		case tcell.KeyRune:
			d.input.Insert(ev.Rune())
		}
	case *tcell.EventResize:
		d.screen.Sync()
	}
	return true
}

// Draw writes the status and input lines and shows the screen. LED cells
// are written by the grid sync during marquee.Update.
func (d *Display) Draw() {
	base := d.cfg.OriginY + d.m.Grid().Height()
	d.drawLine(base, fmt.Sprintf("%q  %s", d.m.Text(), d.m.Stats()), tcell.StyleDefault)
	d.drawLine(base+1, "> "+d.input.String()+"_", tcell.StyleDefault.Bold(true))
	d.screen.Show()
}

func (d *Display) drawLine(y int, s string, style tcell.Style) {
	w, _ := d.screen.Size()
	x := d.cfg.OriginX
	for _, r := range s {
		if x >= w {
			break
		}
		d.screen.SetContent(x, y, r, nil, style)
		x++
	}
	for ; x < w; x++ {
		d.screen.SetContent(x, y, ' ', nil, style)
	}
}

// Step advances the marquee one tick and redraws.
func (d *Display) Step(dt float64) {
	d.m.Update(dt)
	d.Draw()
}

// Run polls terminal events on a goroutine and ticks the marquee at
// cfg.Hz until the user quits or ctx ends. It does not finalize the
// screen.
func (d *Display) Run(ctx context.Context) error {
	ticker := time.NewTicker(time.Second / time.Duration(d.cfg.Hz))
	defer ticker.Stop()
	dt := 1 / float64(d.cfg.Hz)

	events := make(chan tcell.Event, 100)
	go func() {
		defer close(events)
		for {
			ev := d.screen.PollEvent()
			if ev == nil {
				return
			}
			select {
			case events <- ev:
			case <-ctx.Done():
				return
			}
		}
	}()

	d.Draw()
	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case ev, ok := <-events:
			if !ok || !d.HandleEvent(ev) {
				return nil
			}
		case <-ticker.C:
			d.Step(dt)
		}
	}
}
