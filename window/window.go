// Package window shows a marquee in a desktop window with Ebitengine. Each
// LED is drawn as a filled circle that fades between on and off.
package window

import (
	"fmt"
	"image/color"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/ebitenutil"
	"github.com/hajimehoshi/ebiten/v2/inpututil"
	"github.com/hajimehoshi/ebiten/v2/vector"
	"github.com/tanema/gween"
	"github.com/tanema/gween/ease"

	"github.com/phanxgames/marquee"
)

// RunConfig configures the window opened by Run.
type RunConfig struct {
	Title         string
	Width, Height int
	ShowFPS       bool
	// Fade is the LED on/off transition time in seconds; 0 switches
	// instantly.
	Fade       float32
	Background color.RGBA
	LEDOn      color.RGBA
	LEDOff     color.RGBA
	// OnTick, when set, runs after every marquee tick. A non-nil error
	// ends the game loop with that error.
	OnTick func(m *marquee.Marquee) error
}

// DefaultRunConfig returns a 1280×400 window with red LEDs.
func DefaultRunConfig() RunConfig {
	return RunConfig{
		Title:      "Marquee",
		Width:      1280,
		Height:     400,
		Fade:       0.06,
		Background: color.RGBA{8, 8, 12, 255},
		LEDOn:      color.RGBA{255, 48, 24, 255},
		LEDOff:     color.RGBA{40, 10, 10, 255},
	}
}

const (
	margin    = 16
	statusH   = 40
	ledFill   = 0.42 // LED radius as a fraction of the cell spacing
	repeatLag = 30   // ticks before backspace repeats
)

// ledHandle is the window side of one LED. Visibility changes start a
// brightness tween so LEDs glow on and fade off.
type ledHandle struct {
	col, row   int
	on         bool
	brightness float32
	tween      *gween.Tween
	fade       float32
}

// SetVisible implements marquee.LightHandle.
func (h *ledHandle) SetVisible(v bool) {
	if v == h.on {
		return
	}
	h.on = v
	target := float32(0)
	if v {
		target = 1
	}
	if h.fade <= 0 {
		h.brightness, h.tween = target, nil
		return
	}
	h.tween = gween.New(h.brightness, target, h.fade, ease.OutQuad)
}

func (h *ledHandle) update(dt float32) {
	if h.tween == nil {
		return
	}
	v, done := h.tween.Update(dt)
	h.brightness = v
	if done {
		h.tween = nil
	}
}

// layout maps grid cells to window pixels.
type layout struct {
	spacing float32
	x0, y0  float32
}

func computeLayout(gridW, gridH, winW, winH int) layout {
	availW := float32(winW - 2*margin)
	availH := float32(winH - 2*margin - statusH)
	sp := availW / float32(gridW)
	if h := availH / float32(gridH); h < sp {
		sp = h
	}
	usedW := sp * float32(gridW)
	return layout{
		spacing: sp,
		x0:      (float32(winW)-usedW)/2 + sp/2,
		y0:      margin + sp/2,
	}
}

func (l layout) center(col, row int) (float32, float32) {
	return l.x0 + float32(col)*l.spacing, l.y0 + float32(row)*l.spacing
}

// game adapts a Marquee to ebiten.Game.
type game struct {
	m       *marquee.Marquee
	cfg     RunConfig
	input   *marquee.TextInput
	leds    []*ledHandle
	layout  layout
	runeBuf []rune
}

func newGame(m *marquee.Marquee, cfg RunConfig) *game {
	g := &game{
		m:      m,
		cfg:    cfg,
		input:  marquee.NewTextInput(m.Config().MaxTextLength),
		layout: computeLayout(m.Grid().Width(), m.Grid().Height(), cfg.Width, cfg.Height),
	}
	m.Grid().BindAll(func(c *marquee.LightCell) marquee.LightHandle {
		h := &ledHandle{col: c.Col, row: c.Row, fade: cfg.Fade}
		g.leds = append(g.leds, h)
		return h
	})
	return g
}

// Update reads typed keys, ticks the marquee and advances LED fades.
func (g *game) Update() error {
	if inpututil.IsKeyJustPressed(ebiten.KeyEscape) {
		return ebiten.Termination
	}
	g.runeBuf = ebiten.AppendInputChars(g.runeBuf[:0])
	for _, r := range g.runeBuf {
		g.input.Insert(r)
	}
	if d := inpututil.KeyPressDuration(ebiten.KeyBackspace); d == 1 || (d > repeatLag && d%4 == 0) {
		g.input.Backspace()
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyEnter) || inpututil.IsKeyJustPressed(ebiten.KeyNumpadEnter) {
		g.m.Commit(g.input.Commit())
	}

	dt := 1.0 / float64(ebiten.TPS())
	g.m.Update(dt)
	for _, h := range g.leds {
		h.update(float32(dt))
	}
	if g.cfg.OnTick != nil {
		return g.cfg.OnTick(g.m)
	}
	return nil
}

// Draw paints every LED and the status line.
func (g *game) Draw(screen *ebiten.Image) {
	screen.Fill(g.cfg.Background)
	r := g.layout.spacing * ledFill
	for _, h := range g.leds {
		x, y := g.layout.center(h.col, h.row)
		vector.DrawFilledCircle(screen, x, y, r, lerpColor(g.cfg.LEDOff, g.cfg.LEDOn, h.brightness), true)
	}

	status := fmt.Sprintf("> %s_\n%q  %s", g.input.String(), g.m.Text(), g.m.Stats())
	if g.cfg.ShowFPS {
		status += fmt.Sprintf("  FPS %.1f", ebiten.ActualFPS())
	}
	ebitenutil.DebugPrintAt(screen, status, margin, g.cfg.Height-statusH)
}

// Layout keeps a fixed logical size.
func (g *game) Layout(_, _ int) (int, int) {
	return g.cfg.Width, g.cfg.Height
}

func lerpColor(a, b color.RGBA, t float32) color.RGBA {
	if t < 0 {
		t = 0
	} else if t > 1 {
		t = 1
	}
	mix := func(x, y uint8) uint8 { return uint8(float32(x) + (float32(y)-float32(x))*t) }
	return color.RGBA{mix(a.R, b.R), mix(a.G, b.G), mix(a.B, b.B), mix(a.A, b.A)}
}

// Run opens a window and drives m from Ebitengine's game loop until the
// window closes or Escape is pressed.
func Run(m *marquee.Marquee, cfg RunConfig) error {
	if cfg.Width <= 0 || cfg.Height <= 0 {
		return fmt.Errorf("window: invalid size %dx%d", cfg.Width, cfg.Height)
	}
	ebiten.SetWindowTitle(cfg.Title)
	ebiten.SetWindowSize(cfg.Width, cfg.Height)
	err := ebiten.RunGame(newGame(m, cfg))
	if err == ebiten.Termination {
		return nil
	}
	return err
}
