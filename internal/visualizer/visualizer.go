// Package visualizer is an optional, non-pixel-accurate terminal debug
// view. It has nothing to do with the emulation core: it consumes the
// core's optional VBlank hook and reads VRAM tile bytes directly off
// the bus, the same way any external rasterizer would. The core runs
// correctly with no visualizer attached at all.
package visualizer

import (
	"fmt"

	"github.com/gdamore/tcell/v2"
	"github.com/kayvane/dmgcore/emulator"
)

const (
	tileBytes   = 16
	tileCount   = 384
	tilesPerRow = 32

	vramBase = 0x8000
)

// shadeChars goes from darkest to lightest.
var shadeChars = []rune{'█', '▓', '▒', '░'}

// Terminal renders a coarse per-tile "ink density" view of VRAM tile
// data on every VBlank. It is not a pixel-accurate PPU output — this
// core's PPU only tracks timing and mode bits, so there is no
// framebuffer to present.
type Terminal struct {
	screen tcell.Screen
	emu    *emulator.Emulator
}

// NewTerminal initializes a tcell screen and registers itself as the
// emulator's VBlank hook.
func NewTerminal(emu *emulator.Emulator) (*Terminal, error) {
	screen, err := tcell.NewScreen()
	if err != nil {
		return nil, fmt.Errorf("visualizer: failed to initialize terminal: %w", err)
	}
	if err := screen.Init(); err != nil {
		return nil, fmt.Errorf("visualizer: failed to initialize terminal: %w", err)
	}

	t := &Terminal{screen: screen, emu: emu}
	screen.SetStyle(tcell.StyleDefault.Background(tcell.ColorBlack).Foreground(tcell.ColorWhite))
	emu.OnVBlank(t.render)

	return t, nil
}

// Close tears down the terminal screen.
func (t *Terminal) Close() {
	t.screen.Fini()
}

// render draws one cell per VRAM tile, shaded by how many bits of the
// tile's 16 raw bytes are set — a crude stand-in for a real rasterizer,
// since pixel emission is explicitly out of scope for this core.
func (t *Terminal) render() {
	t.screen.Clear()
	bus := t.emu.Bus()

	for tile := 0; tile < tileCount; tile++ {
		density := 0
		base := uint16(vramBase + tile*tileBytes)
		for i := 0; i < tileBytes; i++ {
			density += popcount(bus.Read8(base + uint16(i)))
		}

		shade := shadeIndex(density)
		x := tile % tilesPerRow
		y := tile / tilesPerRow
		t.screen.SetContent(x, y, shadeChars[shade], nil, tcell.StyleDefault)
	}

	t.screen.Show()
}

// shadeIndex buckets a tile's bit-density (0..128) into one of the four
// shades, darkest for the densest tiles.
func shadeIndex(density int) int {
	switch {
	case density > 96:
		return 0
	case density > 64:
		return 1
	case density > 32:
		return 2
	default:
		return 3
	}
}

func popcount(b uint8) int {
	n := 0
	for b != 0 {
		n += int(b & 1)
		b >>= 1
	}
	return n
}
