// Package emulator wires the register file, memory bus, PPU timing
// engine, gamepad surface, and real-time pacer into the single
// cooperative run loop: decode → execute → sample interrupts → advance
// PPU → pace → repeat. Interrupts are sampled inside cpu.CPU.Step at the
// end of each instruction, so an interrupt the PPU requests during a
// tick is dispatched at the end of the following instruction.
package emulator

import (
	"fmt"
	"log/slog"

	"github.com/kayvane/dmgcore/cpu"
	"github.com/kayvane/dmgcore/gamepad"
	"github.com/kayvane/dmgcore/memory"
	"github.com/kayvane/dmgcore/ppu"
	"github.com/kayvane/dmgcore/timing"
)

// Emulator is the root object: one CPU, one bus, one PPU, one pacer,
// single-threaded and non-suspending.
type Emulator struct {
	cpu     *cpu.CPU
	bus     *memory.Bus
	ppu     *ppu.PPU
	pad     *gamepad.Gamepad
	pacer   *timing.Pacer
	paced   bool
	running bool
}

// New returns an Emulator with no ROM loaded. Call LoadROM before Run.
func New() *Emulator {
	pad := gamepad.New()
	bus := memory.New(pad)
	e := &Emulator{
		cpu:   cpu.New(bus),
		bus:   bus,
		ppu:   ppu.New(bus),
		pad:   pad,
		pacer: timing.New(),
		paced: true,
	}
	return e
}

// LoadROM installs the cartridge image. rom must be exactly
// memory.ROMSize bytes.
func (e *Emulator) LoadROM(rom []byte) error {
	if err := e.bus.LoadROM(rom); err != nil {
		return fmt.Errorf("emulator: %w", err)
	}
	return nil
}

// SetButton forwards a button press/release to the gamepad surface.
// The emulator never writes to the gamepad itself.
func (e *Emulator) SetButton(b gamepad.Button, pressed bool) {
	e.pad.SetButton(b, pressed)
}

// OnVBlank registers the optional frame-completion hook, called with no
// payload on entering VBlank. Run/RunFrame work correctly with no hook
// registered.
func (e *Emulator) OnVBlank(hook func()) {
	e.ppu.OnVBlank(hook)
}

// DisablePacing turns off the real-time pacer, for headless/batch runs
// (e.g. tests) that want to run as fast as possible.
func (e *Emulator) DisablePacing() {
	e.paced = false
}

// CPU exposes the underlying CPU for diagnostics (PC/SP/IME/Halted).
func (e *Emulator) CPU() *cpu.CPU { return e.cpu }

// Bus exposes the underlying memory bus, mainly so a frame-completion
// hook can read VRAM/OAM directly.
func (e *Emulator) Bus() *memory.Bus { return e.bus }

// Step retires exactly one CPU instruction (or interrupt dispatch, or
// HALT wait-cycle), advances the PPU by the same number of cycles, and
// paces wall time against it. It converts the two CPU panic kinds into
// an ordinary error.
func (e *Emulator) Step() (cycles int, err error) {
	defer func() {
		if r := recover(); r != nil {
			switch v := r.(type) {
			case error:
				err = v
			default:
				err = fmt.Errorf("emulator: unrecoverable panic: %v", v)
			}
		}
	}()

	cycles = e.cpu.Step()
	e.ppu.Tick(cycles)
	if e.paced {
		e.pacer.Pace(cycles)
	}
	return cycles, nil
}

// RunFrame retires instructions until one full PPU frame
// (timing.CyclesPerFrame cycles) has elapsed, or an error occurs.
func (e *Emulator) RunFrame() error {
	var total int
	for total < timing.CyclesPerFrame {
		cycles, err := e.Step()
		if err != nil {
			return err
		}
		total += cycles
	}
	return nil
}

// Run drives RunFrame in a loop until RunFrame returns an error, which
// Run logs via slog and returns, or until Stop is called, after which
// Run returns nil at the end of the current frame.
func (e *Emulator) Run() error {
	e.running = true
	for e.running {
		if err := e.RunFrame(); err != nil {
			slog.Error("emulation halted", "error", err)
			e.running = false
			return err
		}
	}
	return nil
}

// Stop requests that Run return after the current frame.
func (e *Emulator) Stop() {
	e.running = false
}
