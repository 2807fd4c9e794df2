// marquee opens a window showing a 101×25 LED sign. Type a message and
// press Enter to send it to the sign; Escape quits.
//
// With -headless the sign runs without a window for -ticks ticks and the
// final LED frame is printed to stdout.
package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"log/slog"
	"os"
	"os/signal"

	"github.com/yohamta/donburi"

	"github.com/phanxgames/marquee"
	"github.com/phanxgames/marquee/chime"
	"github.com/phanxgames/marquee/ecs"
	"github.com/phanxgames/marquee/window"
)

const (
	windowTitle = "Marquee"
	screenW     = 1280
	screenH     = 400
)

func main() {
	configPath := flag.String("config", "", "JSON config file")
	text := flag.String("text", "", "initial text (overrides config)")
	headless := flag.Bool("headless", false, "run without a window")
	ticks := flag.Uint64("ticks", 120, "headless tick count (0 = until interrupted)")
	hz := flag.Int("hz", 60, "headless tick rate")
	scriptPath := flag.String("script", "", "JSON script of commits for headless runs")
	verbose := flag.Bool("v", false, "debug logging to stderr")
	debug := flag.Bool("debug", false, "enable debug checks")
	sound := flag.Bool("sound", false, "beep on commits and recycles")
	flag.Parse()

	if *verbose {
		marquee.SetLogger(slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: slog.LevelDebug})))
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
	m.SetDebugMode(*debug)

	world := donburi.NewWorld()
	store := ecs.NewDonburiStore(world)
	var stores []marquee.EntityStore
	stores = append(stores, store)
	if *sound {
		c := chime.New()
		if err := c.Init(); err != nil {
			log.Printf("audio initialization failed: %v", err)
		}
		defer c.Close()
		stores = append(stores, c)
	}
	m.SetEntityStore(marquee.MultiStore(stores...))
	ecs.LifecycleEventType.Subscribe(world, func(_ donburi.World, ev marquee.Event) {
		if ev.Type == marquee.EventGlyphSkipped {
			log.Printf("glyph %q skipped: %v", ev.AssetID, ev.Err)
		}
	})

	drain := func(*marquee.Marquee) error {
		ecs.LifecycleEventType.ProcessEvents(world)
		return nil
	}

	if !*headless {
		rc := window.DefaultRunConfig()
		rc.Title = windowTitle
		rc.Width, rc.Height = screenW, screenH
		rc.ShowFPS = *debug
		rc.OnTick = drain
		if err := window.Run(m, rc); err != nil {
			log.Fatal(err)
		}
		return
	}

	hc := marquee.HeadlessConfig{
		Hz:     *hz,
		Ticks:  *ticks,
		OnTick: drain,
	}
	if *scriptPath != "" {
		data, err := os.ReadFile(*scriptPath)
		if err != nil {
			log.Fatal(err)
		}
		if hc.Script, err = marquee.LoadScript(data); err != nil {
			log.Fatal(err)
		}
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()
	if err := marquee.RunHeadless(ctx, m, hc); err != nil && err != context.Canceled {
		log.Fatal(err)
	}
	fmt.Print(m.Lit())
	fmt.Printf("%s  entities %d\n", m.Stats(), store.Len())
}
