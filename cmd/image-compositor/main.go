package main

import (
	"encoding/json"
	"flag"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/sirupsen/logrus"

	imagecompositor "github.com/brushwork/image-compositor"
	"github.com/brushwork/image-compositor/internal/config"
	"github.com/brushwork/image-compositor/internal/utils"
	"github.com/brushwork/image-compositor/pkg/codec"
	"github.com/brushwork/image-compositor/pkg/mask"
	"github.com/brushwork/image-compositor/pkg/overlay"
	"github.com/brushwork/image-compositor/pkg/scaler"
	"github.com/brushwork/image-compositor/pkg/types"
)

func main() {
	var op, imagePath, maskPath, tilePath, boxSpec, outDir, format, configPath string
	var factor float64
	var maxDim, width, height int
	var debug, verbose bool

	flag.StringVar(&op, "op", "", "operation: fit|extract|stitch|mask|upscale|probe")
	flag.StringVar(&imagePath, "image", "", "input image path")
	flag.StringVar(&maskPath, "mask", "", "stroke mask image path (op=mask)")
	flag.StringVar(&tilePath, "tile", "", "generated tile image path (op=stitch)")
	flag.StringVar(&boxSpec, "box", "", "bounding box as left,top,width,height")
	flag.StringVar(&outDir, "out", "", "output directory (default from config)")
	flag.StringVar(&format, "format", "", "output format override: png|jpg|webp")
	flag.StringVar(&configPath, "config", "", "config file path")
	flag.Float64Var(&factor, "factor", 0, "upscale factor, 0 picks the tiered default (op=upscale)")
	flag.IntVar(&maxDim, "max-dim", 0, "upscale dimension ceiling, 0 uses the default (op=upscale)")
	flag.IntVar(&width, "width", 0, "source width when no -image is given (op=upscale)")
	flag.IntVar(&height, "height", 0, "source height when no -image is given (op=upscale)")
	flag.BoolVar(&debug, "debug", false, "write mask stages and fit overlays")
	flag.BoolVar(&verbose, "verbose", false, "debug level logging")
	flag.Parse()

	if configPath == "" {
		configPath = config.GetEnv("IMAGE_COMPOSITOR_CONFIG", "")
	}
	cfg, err := config.Load(configPath)
	if err != nil {
		logrus.Fatalf("Failed to load config: %v", err)
	}
	setupLogging(cfg, verbose)

	if outDir == "" {
		outDir = cfg.Output.Dir
	}
	if format == "" {
		format = cfg.Output.Format
	}
	if debug {
		cfg.Debug.Enabled = true
	}

	if op == "" {
		logrus.Fatalf("usage: %s -op fit|extract|stitch|mask|upscale|probe -image input.png [-box l,t,w,h] [-out dir]",
			filepath.Base(os.Args[0]))
	}

	engineConfig := &imagecompositor.Config{OutputFormat: format}
	if cfg.Debug.Enabled {
		engineConfig.Observer = mask.NewDebugObserver(cfg.Debug.StageDir)
	}
	engine := imagecompositor.NewWithConfig(engineConfig)

	switch op {
	case "fit":
		err = runFit(engine, imagePath, boxSpec, outDir, cfg.Debug.Enabled)
	case "extract":
		err = runExtract(engine, imagePath, boxSpec, outDir, format)
	case "stitch":
		err = runStitch(engine, imagePath, tilePath, boxSpec, outDir, format)
	case "mask":
		err = runMask(engine, imagePath, maskPath, outDir)
	case "upscale":
		err = runUpscale(imagePath, width, height, factor, maxDim)
	case "probe":
		err = runProbe(imagePath)
	default:
		logrus.Fatalf("Unknown operation: %s (use fit, extract, stitch, mask, upscale or probe)", op)
	}
	if err != nil {
		logrus.Fatalf("Operation %s failed: %v", op, err)
	}
}

func setupLogging(cfg *config.Config, verbose bool) {
	if cfg.Log.Format == "json" {
		logrus.SetFormatter(&logrus.JSONFormatter{})
	}

	level, err := logrus.ParseLevel(cfg.Log.Level)
	if err != nil {
		level = logrus.InfoLevel
	}
	if verbose {
		level = logrus.DebugLevel
	}
	logrus.SetLevel(level)
}

// runFit snaps a box to the nearest supported ratio. With an input image
// the box is validated against it first and a debug overlay can be drawn.
func runFit(engine *imagecompositor.Engine, imagePath, boxSpec, outDir string, debug bool) error {
	box, err := parseBox(boxSpec)
	if err != nil {
		return err
	}

	if imagePath != "" {
		data, err := readImageFile("image", imagePath)
		if err != nil {
			return err
		}
		if err := engine.ValidateBounds(data, box); err != nil {
			return err
		}
	}

	fit := engine.FitToSupportedRatio(box)
	if err := printJSON(fit); err != nil {
		return err
	}

	if debug && imagePath != "" {
		img, err := codec.Load(imagePath)
		if err != nil {
			return err
		}
		if err := utils.EnsureDir(outDir); err != nil {
			return err
		}
		path := utils.OutputFilename(imagePath, outDir, "_fit", "png")
		if err := codec.Save(overlay.DrawFit(img, box, fit), path); err != nil {
			return err
		}
		logrus.Infof("Wrote fit overlay %s", path)
	}
	return nil
}

func runExtract(engine *imagecompositor.Engine, imagePath, boxSpec, outDir, format string) error {
	box, err := parseBox(boxSpec)
	if err != nil {
		return err
	}
	data, err := readImageFile("image", imagePath)
	if err != nil {
		return err
	}

	result, err := engine.ExtractBoundingBox(data, box)
	if err != nil {
		return err
	}

	if err := utils.EnsureDir(outDir); err != nil {
		return err
	}
	suffix := "_tile_" + utils.SanitizeFilename(result.Fit.AspectRatio)
	path := utils.OutputFilename(imagePath, outDir, suffix, format)
	if err := os.WriteFile(path, result.Tile, 0o644); err != nil {
		return err
	}

	logrus.WithFields(logrus.Fields{
		"ratio": result.Fit.AspectRatio,
		"tier":  result.Fit.Tier,
	}).Infof("Wrote tile %s", path)
	return printJSON(result.Fit)
}

func runStitch(engine *imagecompositor.Engine, imagePath, tilePath, boxSpec, outDir, format string) error {
	box, err := parseBox(boxSpec)
	if err != nil {
		return err
	}
	data, err := readImageFile("image", imagePath)
	if err != nil {
		return err
	}
	tile, err := readImageFile("tile", tilePath)
	if err != nil {
		return err
	}

	composite, err := engine.StitchTileBack(data, tile, box)
	if err != nil {
		return err
	}

	if err := utils.EnsureDir(outDir); err != nil {
		return err
	}
	path := utils.OutputFilename(imagePath, outDir, "_composite", format)
	if err := os.WriteFile(path, composite, 0o644); err != nil {
		return err
	}
	logrus.Infof("Wrote composite %s", path)
	return nil
}

func runMask(engine *imagecompositor.Engine, imagePath, maskPath, outDir string) error {
	data, err := readImageFile("image", imagePath)
	if err != nil {
		return err
	}
	strokes, err := readImageFile("mask", maskPath)
	if err != nil {
		return err
	}

	combined, err := engine.CombineMaskWithBackground(data, strokes)
	if err != nil {
		return err
	}

	if err := utils.EnsureDir(outDir); err != nil {
		return err
	}
	path := utils.OutputFilename(imagePath, outDir, "_masked", "png")
	if err := os.WriteFile(path, combined, 0o644); err != nil {
		return err
	}
	logrus.Infof("Wrote masked image %s", path)
	return nil
}

func runUpscale(imagePath string, width, height int, factor float64, maxDim int) error {
	if imagePath != "" {
		data, err := readImageFile("image", imagePath)
		if err != nil {
			return err
		}
		meta, err := codec.Probe(data)
		if err != nil {
			return err
		}
		width, height = meta.Width, meta.Height
	}
	if width <= 0 || height <= 0 {
		return fmt.Errorf("source dimensions required: pass -image or -width and -height")
	}

	var calc types.DimensionCalculation
	if factor > 0 {
		calc = scaler.UpscaleWithFactor(width, height, factor, maxDim)
	} else {
		calc = scaler.OptimalUpscale(width, height, maxDim)
	}
	return printJSON(calc)
}

// probeReport is the per-file output of the probe operation.
type probeReport struct {
	File string         `json:"file"`
	Size string         `json:"size"`
	Meta codec.Metadata `json:"meta"`
}

// runProbe reports metadata for a single image or, given a directory,
// for every image file under it.
func runProbe(imagePath string) error {
	if imagePath == "" {
		return fmt.Errorf("input image required: pass -image")
	}

	paths := []string{imagePath}
	if utils.DirExists(imagePath) {
		var err error
		paths, err = utils.ListImageFiles(imagePath)
		if err != nil {
			return err
		}
		if len(paths) == 0 {
			return fmt.Errorf("no image files under %s", imagePath)
		}
	}

	reports := make([]probeReport, 0, len(paths))
	for _, path := range paths {
		data, err := os.ReadFile(path)
		if err != nil {
			return err
		}
		meta, err := codec.Probe(data)
		if err != nil {
			return fmt.Errorf("probe %s: %w", path, err)
		}
		reports = append(reports, probeReport{
			File: path,
			Size: utils.FormatFileSize(int64(len(data))),
			Meta: meta,
		})
	}

	if len(reports) == 1 {
		return printJSON(reports[0])
	}
	return printJSON(reports)
}

// parseBox parses "left,top,width,height" into a bounding box.
func parseBox(spec string) (types.BoundingBox, error) {
	if spec == "" {
		return types.BoundingBox{}, fmt.Errorf("bounding box required: pass -box left,top,width,height")
	}

	parts := strings.Split(spec, ",")
	if len(parts) != 4 {
		return types.BoundingBox{}, fmt.Errorf("box must be left,top,width,height")
	}

	vals := make([]float64, 4)
	for i, part := range parts {
		v, err := strconv.ParseFloat(strings.TrimSpace(part), 64)
		if err != nil {
			return types.BoundingBox{}, fmt.Errorf("invalid box value %q", part)
		}
		vals[i] = v
	}
	return types.BoundingBox{Left: vals[0], Top: vals[1], Width: vals[2], Height: vals[3]}, nil
}

func readImageFile(flagName, path string) ([]byte, error) {
	if path == "" {
		return nil, fmt.Errorf("input file required: pass -%s", flagName)
	}
	if !utils.FileExists(path) {
		return nil, fmt.Errorf("input file not found: %s", path)
	}
	return os.ReadFile(path)
}

func printJSON(v any) error {
	out, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return err
	}
	fmt.Println(string(out))
	return nil
}
