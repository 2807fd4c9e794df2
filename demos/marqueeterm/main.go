// marqueeterm draws the LED sign in the terminal. Type a message and press
// Enter to send it; Escape or Ctrl-C quits. Pass -sound to beep on
// commits and recycles.
package main

import (
	"context"
	"flag"
	"log"
	"log/slog"
	"os"
	"os/signal"

	"github.com/gdamore/tcell/v2"

	"github.com/phanxgames/marquee"
	"github.com/phanxgames/marquee/chime"
	"github.com/phanxgames/marquee/terminal"
)

func main() {
	configPath := flag.String("config", "", "JSON config file")
	text := flag.String("text", "", "initial text (overrides config)")
	hz := flag.Int("hz", 30, "tick rate")
	sound := flag.Bool("sound", false, "beep on commits and recycles")
	logPath := flag.String("log", "", "write debug logs to this file")
	flag.Parse()

	if *logPath != "" {
		f, err := os.Create(*logPath)
		if err != nil {
			log.Fatal(err)
		}
		defer f.Close()
		marquee.SetLogger(slog.New(slog.NewTextHandler(f, &slog.HandlerOptions{Level: slog.LevelDebug})))
	}

	cfg := marquee.DefaultConfig()
	if *configPath != "" {
		var err error
		if cfg, err = marquee.LoadConfigFile(*configPath); err != nil {
			log.Fatal(err)
		}
	}
	if *text != "" {
		cfg.InitialText = *text
	}

	m, err := marquee.New(cfg, nil)
	if err != nil {
		log.Fatal(err)
	}

	if *sound {
		c := chime.New()
		if err := c.Init(); err != nil {
			// Non-fatal, the sign runs without sound
			marquee.Logger().Warn("audio initialization failed", "err", err)
		}
		defer c.Close()
		m.SetEntityStore(c)
	}

	screen, err := tcell.NewScreen()
	if err != nil {
		log.Fatal(err)
	}
	if err := screen.Init(); err != nil {
		log.Fatal(err)
	}
	defer screen.Fini()

	dc := terminal.DefaultConfig()
	dc.Hz = *hz
	d := terminal.New(screen, m, dc)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()
	if err := d.Run(ctx); err != nil && err != context.Canceled {
		screen.Fini()
		log.Fatal(err)
	}
}
