// Command dmgcore runs the DMG CPU core against a ROM file.
package main

import (
	"errors"
	"log/slog"
	"os"

	"github.com/urfave/cli"

	"github.com/kayvane/dmgcore/emulator"
	"github.com/kayvane/dmgcore/internal/visualizer"
)

func main() {
	app := cli.NewApp()
	app.Name = "dmgcore"
	app.Usage = "dmgcore [options] <ROM file>"
	app.Version = "1.0.0"
	app.Flags = []cli.Flag{
		cli.StringFlag{
			Name:  "rom",
			Usage: "path to the 32 KiB ROM file",
		},
		cli.StringFlag{
			Name:  "log-level",
			Usage: "debug, info, warn, or error",
			Value: "info",
		},
		cli.BoolFlag{
			Name:  "visualize",
			Usage: "attach the optional terminal tile-data visualizer",
		},
	}
	app.Action = run

	if err := app.Run(os.Args); err != nil {
		slog.Error("dmgcore exited with an error", "error", err)
		os.Exit(1)
	}
}

func run(c *cli.Context) error {
	configureLogging(c.String("log-level"))

	romPath := c.String("rom")
	if romPath == "" {
		if c.NArg() > 0 {
			romPath = c.Args().Get(0)
		} else {
			cli.ShowAppHelp(c)
			return errors.New("dmgcore: no ROM path provided")
		}
	}

	rom, err := os.ReadFile(romPath)
	if err != nil {
		return err
	}

	emu := emulator.New()
	if err := emu.LoadROM(rom); err != nil {
		return err
	}

	if c.Bool("visualize") {
		term, err := visualizer.NewTerminal(emu)
		if err != nil {
			return err
		}
		defer term.Close()
	}

	return emu.Run()
}

func configureLogging(level string) {
	var lvl slog.Level
	if err := lvl.UnmarshalText([]byte(level)); err != nil {
		lvl = slog.LevelInfo
	}
	slog.SetLogLoggerLevel(lvl)
}
