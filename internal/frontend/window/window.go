// Package window runs an emulation in a desktop window using ebiten.
package window

import (
	"context"
	"fmt"
	"time"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/inpututil"
	"github.com/retroenv/retrochip8/internal/session"
	"github.com/retroenv/retrochip8/internal/vm"
	"github.com/retroenv/retrogolib/log"
)

// DefaultScale is the default window size multiplier of the display.
const DefaultScale = 10

const bytesPerPixel = 4

// Pixel colors as RGBA.
var (
	foreground = [bytesPerPixel]byte{0xE0, 0xE0, 0xE0, 0xFF}
	background = [bytesPerPixel]byte{0x10, 0x10, 0x10, 0xFF}
)

// keys maps the keypad index to the ebiten key, matching input.Layout.
var keys = [vm.KeyCount]ebiten.Key{
	0x0: ebiten.KeyX,
	0x1: ebiten.Key1,
	0x2: ebiten.Key2,
	0x3: ebiten.Key3,
	0x4: ebiten.KeyQ,
	0x5: ebiten.KeyW,
	0x6: ebiten.KeyE,
	0x7: ebiten.KeyA,
	0x8: ebiten.KeyS,
	0x9: ebiten.KeyD,
	0xA: ebiten.KeyZ,
	0xB: ebiten.KeyC,
	0xC: ebiten.Key4,
	0xD: ebiten.KeyR,
	0xE: ebiten.KeyF,
	0xF: ebiten.KeyV,
}

// Beeper plays the sound timer tone.
type Beeper interface {
	SetActive(active bool)
}

// Frontend shows the display in a scaled window.
type Frontend struct {
	logger *log.Logger
	beeper Beeper
	scale  int
	title  string
}

// New returns a new window frontend.
func New(logger *log.Logger, beeper Beeper, scale int, title string) *Frontend {
	if scale <= 0 {
		scale = DefaultScale
	}
	return &Frontend{
		logger: logger,
		beeper: beeper,
		scale:  scale,
		title:  title,
	}
}

// Run opens the window and runs the session until the window is closed,
// Escape is pressed, the context is cancelled or the program faults.
// F5 restarts the program.
func (f *Frontend) Run(ctx context.Context, s *session.Session) error {
	ebiten.SetWindowSize(vm.DisplayWidth*f.scale, vm.DisplayHeight*f.scale)
	ebiten.SetWindowTitle(f.title)
	ebiten.SetWindowResizable(true)

	g := &game{
		ctx:     ctx,
		session: s,
		beeper:  f.beeper,
		pixels:  make([]byte, vm.DisplayWidth*vm.DisplayHeight*bytesPerPixel),
		dirty:   true,
	}
	defer f.beeper.SetActive(false)

	if err := ebiten.RunGame(g); err != nil {
		return fmt.Errorf("running window: %w", err)
	}
	if err := ctx.Err(); err != nil {
		return fmt.Errorf("running window: %w", err)
	}
	return nil
}

// game implements ebiten.Game.
type game struct {
	ctx     context.Context
	session *session.Session
	beeper  Beeper

	last   time.Time
	pixels []byte
	image  *ebiten.Image
	dirty  bool
}

func (g *game) Update() error {
	if ebiten.IsWindowBeingClosed() || inpututil.IsKeyJustPressed(ebiten.KeyEscape) || g.ctx.Err() != nil {
		return ebiten.Termination
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyF5) {
		g.session.Restart()
		g.dirty = true
	}

	latch := g.session.Input()
	for key, ebitenKey := range keys {
		latch.Set(key, ebiten.IsKeyPressed(ebitenKey))
	}

	now := time.Now()
	elapsed := time.Second / time.Duration(ebiten.TPS())
	if !g.last.IsZero() {
		elapsed = now.Sub(g.last)
	}
	g.last = now

	result, err := g.session.Frame(elapsed)
	g.beeper.SetActive(g.session.Machine().SoundActive())
	if err != nil {
		return fmt.Errorf("running frame: %w", err)
	}
	if result.Redraw {
		g.dirty = true
	}
	return nil
}

func (g *game) Draw(screen *ebiten.Image) {
	if g.image == nil {
		g.image = ebiten.NewImage(vm.DisplayWidth, vm.DisplayHeight)
	}
	if g.dirty {
		fillPixels(g.pixels, g.session.Machine().Display())
		g.image.WritePixels(g.pixels)
		g.dirty = false
	}
	screen.DrawImage(g.image, nil)
}

func (g *game) Layout(_, _ int) (int, int) {
	return vm.DisplayWidth, vm.DisplayHeight
}

// fillPixels converts the display into RGBA pixel data.
func fillPixels(pixels []byte, d *vm.Display) {
	rows := d.Rows()
	for y := range rows {
		for x, set := range rows[y] {
			color := background
			if set {
				color = foreground
			}
			copy(pixels[(y*vm.DisplayWidth+x)*bytesPerPixel:], color[:])
		}
	}
}
