/*
NAME
  main.go

DESCRIPTION
  main.go is vqmetrics' CLI: it reads a reference raw-video file and a
  distorted file, computes the requested metrics between them, and writes
  a scorecard in the requested format.

LICENSE
  Copyright (C) 2026 the vqmetrics contributors.
*/

// Command vqmetrics computes video quality metrics (PSNR, APSNR, SSIM,
// MS-SSIM, PSNR-HVS, CIEDE2000) between a reference video and a
// distorted video.
package main

import (
	"flag"
	"fmt"
	"os"
	"strings"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"gopkg.in/natefinch/lumberjack.v2"

	"github.com/ausocean/vqmetrics/decode"
	"github.com/ausocean/vqmetrics/engine"
	"github.com/ausocean/vqmetrics/frame"
	"github.com/ausocean/vqmetrics/metrics"
	"github.com/ausocean/vqmetrics/metrics/ciede2000"
	"github.com/ausocean/vqmetrics/metrics/psnr"
	"github.com/ausocean/vqmetrics/metrics/psnrhvs"
	"github.com/ausocean/vqmetrics/metrics/ssim"
	"github.com/ausocean/vqmetrics/report"
)

type config struct {
	reference string
	distorted string
	width     int
	height    int
	bitDepth  int
	chroma    string
	metricSet string
	format    string
	logFile   string
}

// validate checks every flag's invariant and names the offending field,
// in the style of revid's Config.Validate.
func (c *config) validate() error {
	if c.reference == "" {
		return invalidField("reference", "must be set")
	}
	if c.distorted == "" {
		return invalidField("distorted", "must be set")
	}
	if c.width <= 0 {
		return invalidField("width", "must be positive")
	}
	if c.height <= 0 {
		return invalidField("height", "must be positive")
	}
	if c.bitDepth < 8 || c.bitDepth > 16 {
		return invalidField("bitDepth", "must be between 8 and 16")
	}
	switch c.chroma {
	case "400", "420", "422", "444":
	default:
		return invalidField("chroma", "must be one of 400, 420, 422, 444")
	}
	switch c.format {
	case "text", "json", "csv", "markdown":
	default:
		return invalidField("format", "must be one of text, json, csv, markdown")
	}
	return nil
}

func invalidField(field, reason string) error {
	return fmt.Errorf("invalid %s: %s", field, reason)
}

func main() {
	cfg := parseFlags()
	if err := cfg.validate(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		flag.Usage()
		os.Exit(2)
	}

	log := newLogger(cfg.logFile)
	defer log.Sync()

	if err := run(cfg, log); err != nil {
		log.Error("run failed", zap.Error(err))
		os.Exit(1)
	}
}

func parseFlags() *config {
	cfg := &config{}
	flag.StringVar(&cfg.reference, "reference", "", "path to the reference raw video")
	flag.StringVar(&cfg.distorted, "distorted", "", "path to the distorted raw video")
	flag.IntVar(&cfg.width, "width", 0, "frame width in pixels")
	flag.IntVar(&cfg.height, "height", 0, "frame height in pixels")
	flag.IntVar(&cfg.bitDepth, "bit-depth", 8, "sample bit depth (8-16)")
	flag.StringVar(&cfg.chroma, "chroma", "420", "chroma sampling: 400, 420, 422, 444")
	flag.StringVar(&cfg.metricSet, "metrics", "psnr,ssim", "comma-separated metrics: psnr,apsnr,ssim,msssim,psnrhvs,ciede2000")
	flag.StringVar(&cfg.format, "format", "text", "output format: text, json, csv, markdown")
	flag.StringVar(&cfg.logFile, "log-file", "", "rotate logs to this path instead of stderr")
	flag.Parse()
	return cfg
}

// newLogger builds a zap production logger; when logFile is set, its
// sink is a lumberjack rotator instead of stderr.
func newLogger(logFile string) *zap.Logger {
	if logFile == "" {
		l, _ := zap.NewProduction()
		return l
	}
	rotator := &lumberjack.Logger{
		Filename:   logFile,
		MaxSize:    50,
		MaxBackups: 5,
		MaxAge:     28,
	}
	encoderCfg := zap.NewProductionEncoderConfig()
	encoder := zapcore.NewJSONEncoder(encoderCfg)
	core := zapcore.NewCore(encoder, zapcore.AddSync(rotator), zap.InfoLevel)
	return zap.New(core, zap.AddCaller())
}

func chromaSampling(s string) frame.Sampling {
	switch s {
	case "400":
		return frame.Sampling400
	case "422":
		return frame.Sampling422
	case "444":
		return frame.Sampling444
	default:
		return frame.Sampling420
	}
}

func run(cfg *config, log *zap.Logger) error {
	details := decode.VideoDetails{
		Width:          cfg.width,
		Height:         cfg.height,
		BitDepth:       cfg.bitDepth,
		ChromaSampling: chromaSampling(cfg.chroma),
	}

	refFile, err := os.Open(cfg.reference)
	if err != nil {
		return fmt.Errorf("opening reference: %w", err)
	}
	defer refFile.Close()
	distFile, err := os.Open(cfg.distorted)
	if err != nil {
		return fmt.Errorf("opening distorted: %w", err)
	}
	defer distFile.Close()

	want := wantSet(cfg.metricSet)
	sc := report.Scorecard{Reference: cfg.reference, Distorted: cfg.distorted}
	chromaWeight := details.ChromaSampling.Weight()

	if details.BitDepth > 8 {
		dec1 := decode.NewRawDecoder[uint16](refFile, details)
		dec2 := decode.NewRawDecoder[uint16](distFile, details)
		if err := computeAll16(dec1, dec2, details, chromaWeight, want, &sc, log); err != nil {
			return err
		}
	} else {
		dec1 := decode.NewRawDecoder[uint8](refFile, details)
		dec2 := decode.NewRawDecoder[uint8](distFile, details)
		if err := computeAll8(dec1, dec2, details, chromaWeight, want, &sc, log); err != nil {
			return err
		}
	}

	return writeScorecard(cfg, sc)
}

func wantSet(spec string) func(string) bool {
	parts := strings.Split(spec, ",")
	set := make(map[string]bool, len(parts))
	for _, p := range parts {
		set[strings.TrimSpace(p)] = true
	}
	return func(name string) bool { return set[name] }
}

func computeAll8(dec1, dec2 decode.Decoder[uint8], details decode.VideoDetails, chromaWeight float64, want func(string) bool, sc *report.Scorecard, log *zap.Logger) error {
	if want("psnr") || want("apsnr") {
		results, err := engine.Run(dec1, dec2, func(f1, f2 *frame.Frame[uint8]) (psnr.FrameResult, error) {
			return psnr.Frame8(f1, f2, details.BitDepth)
		}, engine.Options{Logger: log})
		if err != nil {
			return asRunError(err)
		}
		p, a, err := psnr.Aggregate(results)
		if err != nil {
			return err
		}
		if want("psnr") {
			sc.PSNR = &p
		}
		if want("apsnr") {
			sc.APSNR = &a
		}
	}
	if want("ssim") {
		results, err := engine.Run(dec1, dec2, func(f1, f2 *frame.Frame[uint8]) (ssim.FrameResult, error) {
			return ssim.Frame8(f1, f2, details.BitDepth)
		}, engine.Options{Logger: log})
		if err != nil {
			return asRunError(err)
		}
		p, err := ssim.Aggregate(results, chromaWeight)
		if err != nil {
			return err
		}
		sc.SSIM = &p
	}
	if want("msssim") {
		results, err := engine.Run(dec1, dec2, func(f1, f2 *frame.Frame[uint8]) (ssim.FrameTriple, error) {
			return ssim.Frame8MS(f1, f2, details.BitDepth)
		}, engine.Options{Logger: log})
		if err != nil {
			return asRunError(err)
		}
		p, err := ssim.AggregateMS(results, chromaWeight)
		if err != nil {
			return err
		}
		sc.MSSSIM = &p
	}
	if want("psnrhvs") {
		results, err := engine.Run(dec1, dec2, func(f1, f2 *frame.Frame[uint8]) (psnrhvs.FrameResult, error) {
			return psnrhvs.Frame8(f1, f2, details.BitDepth)
		}, engine.Options{Logger: log})
		if err != nil {
			return asRunError(err)
		}
		p, err := psnrhvs.Aggregate(results, chromaWeight)
		if err != nil {
			return err
		}
		sc.PSNRHVS = &p
	}
	if want("ciede2000") {
		results, err := engine.Run(dec1, dec2, func(f1, f2 *frame.Frame[uint8]) (ciede2000.FrameResult, error) {
			return ciede2000.Frame8(f1, f2, details.BitDepth, ciede2000.Options{})
		}, engine.Options{Logger: log})
		if err != nil {
			return asRunError(err)
		}
		score, err := ciede2000.Aggregate(results)
		if err != nil {
			return err
		}
		sc.CIEDE2000 = &score
	}
	return nil
}

func computeAll16(dec1, dec2 decode.Decoder[uint16], details decode.VideoDetails, chromaWeight float64, want func(string) bool, sc *report.Scorecard, log *zap.Logger) error {
	if want("psnr") || want("apsnr") {
		results, err := engine.Run(dec1, dec2, func(f1, f2 *frame.Frame[uint16]) (psnr.FrameResult, error) {
			return psnr.Frame16(f1, f2, details.BitDepth)
		}, engine.Options{Logger: log})
		if err != nil {
			return asRunError(err)
		}
		p, a, err := psnr.Aggregate(results)
		if err != nil {
			return err
		}
		if want("psnr") {
			sc.PSNR = &p
		}
		if want("apsnr") {
			sc.APSNR = &a
		}
	}
	if want("ssim") {
		results, err := engine.Run(dec1, dec2, func(f1, f2 *frame.Frame[uint16]) (ssim.FrameResult, error) {
			return ssim.Frame16(f1, f2, details.BitDepth)
		}, engine.Options{Logger: log})
		if err != nil {
			return asRunError(err)
		}
		p, err := ssim.Aggregate(results, chromaWeight)
		if err != nil {
			return err
		}
		sc.SSIM = &p
	}
	if want("msssim") {
		results, err := engine.Run(dec1, dec2, func(f1, f2 *frame.Frame[uint16]) (ssim.FrameTriple, error) {
			return ssim.Frame16MS(f1, f2, details.BitDepth)
		}, engine.Options{Logger: log})
		if err != nil {
			return asRunError(err)
		}
		p, err := ssim.AggregateMS(results, chromaWeight)
		if err != nil {
			return err
		}
		sc.MSSSIM = &p
	}
	if want("psnrhvs") {
		results, err := engine.Run(dec1, dec2, func(f1, f2 *frame.Frame[uint16]) (psnrhvs.FrameResult, error) {
			return psnrhvs.Frame16(f1, f2, details.BitDepth)
		}, engine.Options{Logger: log})
		if err != nil {
			return asRunError(err)
		}
		p, err := psnrhvs.Aggregate(results, chromaWeight)
		if err != nil {
			return err
		}
		sc.PSNRHVS = &p
	}
	if want("ciede2000") {
		results, err := engine.Run(dec1, dec2, func(f1, f2 *frame.Frame[uint16]) (ciede2000.FrameResult, error) {
			return ciede2000.Frame16(f1, f2, details.BitDepth, ciede2000.Options{})
		}, engine.Options{Logger: log})
		if err != nil {
			return asRunError(err)
		}
		score, err := ciede2000.Aggregate(results)
		if err != nil {
			return err
		}
		sc.CIEDE2000 = &score
	}
	return nil
}

func asRunError(err error) error {
	if _, ok := err.(*metrics.Error); ok {
		return err
	}
	return fmt.Errorf("running engine: %w", err)
}

func writeScorecard(cfg *config, sc report.Scorecard) error {
	switch cfg.format {
	case "json":
		return report.WriteJSON(os.Stdout, sc)
	case "csv":
		return report.WriteCSV(os.Stdout, sc)
	case "markdown":
		return report.WriteMarkdown(os.Stdout, sc)
	default:
		return report.WriteText(os.Stdout, sc)
	}
}
