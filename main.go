// main.go - Dual screen presenter demo entry point

/*
 ██▓ ███▄    █ ▄▄▄█████▓ █    ██  ██▓▄▄▄█████▓ ██▓ ▒█████   ███▄    █    ▓█████  ███▄    █   ▄████  ██▓ ███▄    █ ▓█████
▓██▒ ██ ▀█   █ ▓  ██▒ ▓▒ ██  ▓██▒▓██▒▓  ██▒ ▓▒▓██▒▒██▒  ██▒ ██ ▀█   █    ▓█   ▀  ██ ▀█   █  ██▒ ▀█▒▓██▒ ██ ▀█   █ ▓█   ▀
▒██▒▓██  ▀█ ██▒▒ ▓██░ ▒░▓██  ▒██░▒██▒▒ ▓██░ ▒░▒██▒▒██░  ██▒▓██  ▀█ ██▒   ▒███   ▓██  ▀█ ██▒▒██░▄▄▄░▒██▒▓██  ▀█ ██▒▒███
░██░▓██▒  ▐▌██▒░ ▓██▓ ░ ▓▓█  ░██░░██░░ ▓██▓ ░ ░██░▒██   ██░▓██▒  ▐▌██▒   ▒▓█  ▄ ▓██▒  ▐▌██▒░▓█  ██▓░██░▓██▒  ▐▌██▒▒▓█  ▄
░██░▒██░   ▓██░  ▒██▒ ░ ▒▒█████▓ ░██░  ▒██▒ ░ ░██░░ ████▓▒░▒██░   ▓██░   ░▒████▒▒██░   ▓██░░▒▓███▀▒░██░▒██░   ▓██░░▒████▒
░▓  ░ ▒░   ▒ ▒   ▒ ░░   ░▒▓▒ ▒ ▒ ░▓    ▒ ░░   ░▓  ░ ▒░▒░▒░ ░ ▒░   ▒ ▒    ░░ ▒░ ░░ ▒░   ▒ ▒  ░▒   ▒ ░▓  ░ ▒░   ▒ ▒ ░░ ▒░ ░
 ▒ ░░ ░░   ░ ▒░    ░    ░░▒░ ░ ░  ▒ ░    ░     ▒ ░  ░ ▒ ▒░ ░ ░░   ░ ▒░    ░ ░  ░░ ░░   ░ ▒░  ░   ░  ▒ ░░ ░░   ░ ▒░ ░ ░  ░
 ▒ ░   ░   ░ ░   ░       ░░░ ░ ░  ▒ ░  ░       ▒ ░░ ░ ░ ▒     ░   ░ ░       ░      ░   ░ ░ ░ ░   ░  ▒ ░   ░   ░ ░    ░
 ░           ░             ░      ░            ░      ░ ░           ░       ░  ░         ░       ░  ░           ░    ░  ░

(c) 2024 - 2026 Zayn Otley
https://github.com/IntuitionAmiga/IntuitionEngine
License: GPLv3 or later
*/

package main

import (
	"flag"
	"fmt"
	"io"
	"log/slog"
	"os"
	"strconv"
	"strings"
)

func boilerPlate() {
	fmt.Println("\n\033[38;2;255;20;147m▓█████▄  █    ██  ▄▄▄       ██▓         ██████  ▄████▄   ██▀███  ▓█████ ▓█████  ███▄    █\033[0m")
	fmt.Println("\033[38;2;255;110;147m▒██▀ ██▌ ██  ▓██▒▒████▄    ▓██▒       ▒██    ▒ ▒██▀ ▀█  ▓██ ▒ ██▒▓█   ▀ ▓█   ▀  ██ ▀█   █\033[0m")
	fmt.Println("\033[38;2;255;200;147m░▓█▄   ▌▓▓█  ░██░░██▄▄▄▄██ ▒██░       ░ ▓██▄   ▒▓█    ▄ ▓██ ░▄█ ▒▒███   ▒███   ▓██  ▀█ ██▒\033[0m")
	fmt.Println("\033[38;2;255;255;147m░▒████▓ ▒▒█████▓  ▓█   ▓██▒░██████▒   ▒██████▒▒▒ ▓███▀ ░░██▓ ▒██▒░▒████▒░▒████▒▒██░   ▓██░\033[0m")
	fmt.Println("\nPresenter for emulated dual-screen handheld framebuffers.")
	fmt.Println("(c) 2024 - 2026 Zayn Otley")
	fmt.Println("https://github.com/IntuitionAmiga/IntuitionEngine")
	fmt.Println("License: GPLv3 or later")
}

func main() {
	var (
		backendName  string
		topFormat    string
		bottomFormat string
		fillColor    string
		bgColor      string
		pngPath      string
		scale        int
		frames       uint64
		stats        bool
		strict       bool
		debug        bool
		showFeatures bool
	)

	flagSet := flag.NewFlagSet(os.Args[0], flag.ContinueOnError)
	flagSet.SetOutput(io.Discard)
	flagSet.StringVar(&backendName, "backend", "ebiten", "Presentation backend: ebiten, fbdev, opengl, offscreen, null")
	flagSet.StringVar(&topFormat, "top-format", "rgb565", "Top screen pattern format: rgba8, rgb8, rgb565, rgb5a1, rgba4")
	flagSet.StringVar(&bottomFormat, "bottom-format", "rgba8", "Bottom screen pattern format")
	flagSet.StringVar(&fillColor, "fill", "", "Enable bottom screen color fill with r,g,b")
	flagSet.StringVar(&bgColor, "bg", "0,0,0", "Background clear color r,g,b")
	flagSet.StringVar(&pngPath, "png", "", "Offscreen: write the last presented frame as PNG")
	flagSet.IntVar(&scale, "scale", 2, "Window scale")
	flagSet.Uint64Var(&frames, "frames", 0, "Stop after N frames (0 runs until closed)")
	flagSet.BoolVar(&stats, "stats", false, "Show frame timing on the terminal")
	flagSet.BoolVar(&strict, "strict", false, "Panic on framebuffer contract violations")
	flagSet.BoolVar(&debug, "debug", false, "Debug logging")
	flagSet.BoolVar(&showFeatures, "features", false, "Print compiled features and exit")

	flagSet.Usage = func() {
		flagSet.SetOutput(os.Stdout)
		fmt.Println("Usage: ./dualscreen [-backend ebiten|fbdev|opengl|offscreen|null] [-fill r,g,b] [-frames N] [-png out.png]")
		flagSet.PrintDefaults()
	}

	if err := flagSet.Parse(os.Args[1:]); err != nil {
		if err == flag.ErrHelp {
			os.Exit(0)
		}
		fmt.Printf("Error: %v\n", err)
		os.Exit(1)
	}

	if showFeatures {
		printFeatures()
		return
	}

	boilerPlate()
	if debug {
		SetLogger(newConsoleLogger(slog.LevelDebug))
	}

	backendType, err := parseBackendName(backendName)
	if err != nil {
		fmt.Printf("Error: %v\n", err)
		os.Exit(1)
	}
	run, ok := hostRunners[backendName]
	if !ok {
		fmt.Printf("Error: backend %q not compiled into this build (see -features)\n", backendName)
		os.Exit(1)
	}
	top, err := parsePixelFormat(topFormat)
	if err != nil {
		fmt.Printf("Error: -top-format: %v\n", err)
		os.Exit(1)
	}
	bottom, err := parsePixelFormat(bottomFormat)
	if err != nil {
		fmt.Printf("Error: -bottom-format: %v\n", err)
		os.Exit(1)
	}
	bg, err := parseColorTriple(bgColor)
	if err != nil {
		fmt.Printf("Error: -bg: %v\n", err)
		os.Exit(1)
	}

	mem := NewMemoryMap()
	gpu := NewPatternGPU(mem, top, bottom)
	if fillColor != "" {
		fill, err := parseColorTriple(fillColor)
		if err != nil {
			fmt.Printf("Error: -fill: %v\n", err)
			os.Exit(1)
		}
		gpu.SetColorFill(SCREEN_BOTTOM, ColorFill{
			Enabled: true,
			R:       unitToByte(fill[0]),
			G:       unitToByte(fill[1]),
			B:       unitToByte(fill[2]),
		})
	}

	device, err := NewGraphicsDevice(backendType)
	if err != nil {
		fmt.Printf("Failed to initialize video: %v\n", err)
		os.Exit(1)
	}
	presenter, err := NewPresentationBackend(backendType, device, mem, PresenterConfig{
		ClearColor: bg,
		Strict:     strict,
	})
	if err != nil {
		fmt.Printf("Failed to initialize video: %v\n", err)
		os.Exit(1)
	}

	gpu.Start()
	err = run(presenter, device, HostOptions{
		Scale:   scale,
		Frames:  frames,
		PNGPath: pngPath,
		Stats:   stats,
	})
	gpu.Stop()
	if err != nil {
		fmt.Printf("Error: %v\n", err)
		os.Exit(1)
	}
}

func parsePixelFormat(name string) (PixelFormat, error) {
	for f := PixelFormatRGBA8; f <= PixelFormatRGBA4; f++ {
		if strings.EqualFold(name, f.String()) {
			return f, nil
		}
	}
	return 0, fmt.Errorf("unknown pixel format %q", name)
}

// parseColorTriple reads "r,g,b" with 0-255 components into unit floats.
func parseColorTriple(value string) ([3]float32, error) {
	var out [3]float32
	parts := strings.Split(value, ",")
	if len(parts) != 3 {
		return out, fmt.Errorf("want r,g,b, got %q", value)
	}
	for i, p := range parts {
		v, err := strconv.ParseUint(strings.TrimSpace(p), 0, 8)
		if err != nil {
			return out, fmt.Errorf("component %d: %w", i, err)
		}
		out[i] = float32(v) / 255
	}
	return out, nil
}
