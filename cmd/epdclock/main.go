// Copyright 2026 The Quillreader Authors. All rights reserved.
// Use of this source code is governed under the Apache License, Version 2.0
// that can be found in the LICENSE file.

// epdclock draws a digital clock on a GDEQ0426T82 e-paper panel.
//
// The clock redraws once per minute through a partial refresh; a cron
// schedule (daily by default) runs a full refresh to clear accumulated
// ghosting. With -sim the panel is simulated and mirrored to a browser,
// with -term it is rendered to the terminal.
package main

import (
	"flag"
	"fmt"
	"image"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/robfig/cron/v3"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"periph.io/x/conn/v3/gpio"
	"periph.io/x/conn/v3/gpio/gpioreg"
	"periph.io/x/conn/v3/spi"
	"periph.io/x/conn/v3/spi/spireg"
	"periph.io/x/host/v3"

	"github.com/quillreader/display/epdsim"
	"github.com/quillreader/display/gdeq0426"
	"github.com/quillreader/display/pipeline"
	"github.com/quillreader/display/termview"
)

func main() {
	var (
		configPath = flag.String("config", "epdclock.yaml", "path to config file")
		sim        = flag.Bool("sim", false, "use the simulated panel with a browser preview")
		term       = flag.Bool("term", false, "render the panel to the terminal")
		once       = flag.Bool("once", false, "draw once, put the panel to sleep and exit")
	)
	flag.Parse()

	zerolog.TimeFieldFormat = time.RFC3339
	log.Logger = log.Output(zerolog.ConsoleWriter{Out: os.Stdout, TimeFormat: time.Kitchen})

	cfg, err := LoadConfig(*configPath)
	if err != nil {
		log.Fatal().Err(err).Str("path", *configPath).Msg("loading config failed")
	}

	panel, cleanup, err := openPanel(cfg, *sim, *term)
	if err != nil {
		log.Fatal().Err(err).Msg("opening panel failed")
	}
	defer cleanup()

	rot := pipeline.Rotate0
	if cfg.Rotation == 270 {
		rot = pipeline.Rotate270
	}
	p := pipeline.New(panel, pipeline.Config{Rotation: rot, Log: &log.Logger})
	defer p.Close()

	b := p.Bounds()
	face, err := newClockFace(b.Dx(), b.Dy(), cfg.FontPath)
	if err != nil {
		log.Fatal().Err(err).Str("font", cfg.FontPath).Msg("loading font failed")
	}

	completed := make(chan pipeline.Mode, 4)
	p.OnRefreshComplete(func(m pipeline.Mode) { completed <- m })

	redraw := func(mode pipeline.Mode) {
		img := face.Render(time.Now())
		p.BeginFrame()
		p.DrawImage(image.Point{}, img)
		p.EndFrame()
		p.RequestRefresh(mode)
	}

	// Initial frame goes out as a full refresh.
	redraw(pipeline.Full)
	log.Info().Stringer("mode", <-completed).Msg("refresh done")

	if *once {
		if err := p.Sleep(); err != nil {
			log.Error().Err(err).Msg("panel sleep failed")
		}
		return
	}

	c := cron.New()
	if _, err := c.AddFunc(cfg.RedrawCron, func() { redraw(pipeline.Partial) }); err != nil {
		log.Fatal().Err(err).Str("schedule", cfg.RedrawCron).Msg("bad redraw schedule")
	}
	if _, err := c.AddFunc(cfg.FullRefreshCron, func() { p.RequestRefresh(pipeline.Full) }); err != nil {
		log.Fatal().Err(err).Str("schedule", cfg.FullRefreshCron).Msg("bad full refresh schedule")
	}
	c.Start()

	log.Info().
		Str("redraw", cfg.RedrawCron).
		Str("full_refresh", cfg.FullRefreshCron).
		Msg("epdclock running")

	go func() {
		for m := range completed {
			log.Debug().Stringer("mode", m).Msg("refresh done")
		}
	}()

	ch := make(chan os.Signal, 1)
	signal.Notify(ch, syscall.SIGINT, syscall.SIGTERM)
	s := <-ch
	log.Info().Str("signal", s.String()).Msg("shutting down")

	c.Stop()
	if err := p.Sleep(); err != nil {
		log.Error().Err(err).Msg("panel sleep failed")
	}
}

// openPanel selects the display backend. The returned cleanup releases
// whatever the backend holds open.
func openPanel(cfg *Config, sim, term bool) (pipeline.Panel, func(), error) {
	switch {
	case sim:
		panel := epdsim.New(gdeq0426.GDEQ0426T82.Width, gdeq0426.GDEQ0426T82.Height)
		srv := epdsim.NewServer(panel, &log.Logger)
		go func() {
			log.Info().Str("addr", cfg.Listen).Msg("preview server starting")
			if err := http.ListenAndServe(cfg.Listen, srv); err != nil {
				log.Fatal().Err(err).Msg("preview server crashed")
			}
		}()
		return panel, func() {}, nil

	case term:
		d := termview.New(&termview.Opts{
			Width:  gdeq0426.GDEQ0426T82.Width,
			Height: gdeq0426.GDEQ0426T82.Height,
		})
		return d, func() { _ = d.Halt() }, nil

	default:
		if _, err := host.Init(); err != nil {
			return nil, nil, err
		}
		port, err := spireg.Open(cfg.SPIPort)
		if err != nil {
			return nil, nil, err
		}
		opts := gdeq0426.GDEQ0426T82
		opts.Log = &log.Logger
		dev, err := openDev(port, cfg.Pins, &opts)
		if err != nil {
			port.Close()
			return nil, nil, err
		}
		if err := dev.Init(); err != nil {
			port.Close()
			return nil, nil, err
		}
		return dev, func() { _ = port.Close() }, nil
	}
}

// openDev wires the driver with the default HAT pinout, or with the pins
// named in the config when any are set.
func openDev(port spi.Port, pins PinConfig, opts *gdeq0426.Opts) (*gdeq0426.Dev, error) {
	if pins == (PinConfig{}) {
		return gdeq0426.NewHat(port, opts)
	}

	dc, err := pinByName(pins.DC)
	if err != nil {
		return nil, err
	}
	cs, err := pinByName(pins.CS)
	if err != nil {
		return nil, err
	}
	rst, err := pinByName(pins.RST)
	if err != nil {
		return nil, err
	}
	busy, err := pinByName(pins.Busy)
	if err != nil {
		return nil, err
	}
	return gdeq0426.New(port, dc, cs, rst, busy, opts)
}

func pinByName(name string) (gpio.PinIO, error) {
	p := gpioreg.ByName(name)
	if p == nil {
		return nil, fmt.Errorf("no pin named %q", name)
	}
	return p, nil
}
