package main

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/atomicstack/quelthalas/internal/app"
	"github.com/atomicstack/quelthalas/internal/config"
	"github.com/atomicstack/quelthalas/internal/logging"
	"github.com/atomicstack/quelthalas/internal/logging/events"
	"golang.org/x/term"
)

func main() {
	runtimeCfg := config.MustLoad()
	if err := config.Validate(runtimeCfg); err != nil {
		fmt.Fprintf(os.Stderr, "Configuration error: %v\n", err)
		os.Exit(2)
	}
	logging.Configure(runtimeCfg.Logging.FilePath)
	logging.SetTraceEnabled(runtimeCfg.Logging.Trace)

	tty := collectTTYDetails()
	events.App.Start(startupTracePayload(runtimeCfg, tty))
	if tty.Detected == nil {
		err := errors.New("no terminal on stdin, stdout or stderr")
		logging.Error(err)
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}

	if err := app.Run(runtimeCfg.App); err != nil {
		logging.Error(err)
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

// startupTracePayload records how the toolkit was configured and what
// terminal it found.
func startupTracePayload(cfg config.Config, tty ttyDetails) map[string]interface{} {
	flags := make(map[string]interface{}, len(cfg.Flags)+2)
	for k, v := range cfg.Flags {
		flags[k] = v
	}
	flags["trace"] = cfg.Logging.Trace
	flags["logFile"] = cfg.Logging.FilePath
	return map[string]interface{}{
		"argv":     cfg.Args,
		"flags":    flags,
		"config":   cfg,
		"theme":    themeSource(cfg.App.ThemePath),
		"mouse":    cfg.App.Mouse,
		"viewport": resolveViewport(cfg.App, tty),
		"tty":      tty,
	}
}

// themeSource names the token file in use, or "default".
func themeSource(path string) string {
	if path == "" {
		return "default"
	}
	if abs, err := filepath.Abs(path); err == nil {
		return abs
	}
	return path
}

type viewport struct {
	Width  int    `json:"width"`
	Height int    `json:"height"`
	Source string `json:"source"`
}

// resolveViewport reports the canvas size the UI starts with: explicit
// flags win, then the first terminal found, then the UI default.
func resolveViewport(cfg app.Config, tty ttyDetails) viewport {
	vp := viewport{Width: cfg.Width, Height: cfg.Height, Source: "flags"}
	if vp.Width > 0 && vp.Height > 0 {
		return vp
	}
	if d := tty.Detected; d != nil {
		vp.Source = d.Source
		if vp.Width == 0 {
			vp.Width = d.Width
		}
		if vp.Height == 0 {
			vp.Height = d.Height
		}
		return vp
	}
	vp.Source = "default"
	if vp.Width == 0 {
		vp.Width = 80
	}
	if vp.Height == 0 {
		vp.Height = 24
	}
	return vp
}

type ttyDetails struct {
	Detected *ttyDetected     `json:"detected,omitempty"`
	Probes   []ttyProbeResult `json:"probes"`
}

type ttyDetected struct {
	Source string `json:"source"`
	Width  int    `json:"width"`
	Height int    `json:"height"`
}

type ttyProbeResult struct {
	Name       string `json:"name"`
	IsTerminal bool   `json:"is_terminal"`
	Width      int    `json:"width,omitempty"`
	Height     int    `json:"height,omitempty"`
	Error      string `json:"error,omitempty"`
}

func probeTTY(name string, f *os.File) ttyProbeResult {
	res := ttyProbeResult{Name: name}
	fd := int(f.Fd())
	if fd < 0 || !term.IsTerminal(fd) {
		return res
	}
	res.IsTerminal = true
	w, h, err := term.GetSize(fd)
	if err != nil {
		res.Error = err.Error()
		return res
	}
	res.Width, res.Height = w, h
	return res
}

// collectTTYDetails probes the standard descriptors. The first one with a
// readable size is the detected terminal.
func collectTTYDetails() ttyDetails {
	var out ttyDetails
	for _, p := range []ttyProbeResult{
		probeTTY("stdin", os.Stdin),
		probeTTY("stdout", os.Stdout),
		probeTTY("stderr", os.Stderr),
	} {
		if out.Detected == nil && p.IsTerminal && p.Error == "" {
			out.Detected = &ttyDetected{Source: p.Name, Width: p.Width, Height: p.Height}
		}
		out.Probes = append(out.Probes, p)
	}
	return out
}
