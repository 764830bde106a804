/*
NAME
  report.go

DESCRIPTION
  report.go formats vqmetrics' results for the CLI: a combined scorecard
  across whichever metrics were requested, rendered as text, JSON, CSV or
  Markdown.

LICENSE
  Copyright (C) 2026 the vqmetrics contributors.
*/

// Package report formats vqmetrics' per-video results for human and
// machine consumption, and renders an optional per-frame score chart.
package report

import (
	"encoding/csv"
	"encoding/json"
	"fmt"
	"io"
	"strconv"

	"github.com/ausocean/vqmetrics/metrics"
)

// Scorecard is the combined result of whichever metrics a run computed;
// zero-valued fields mean that metric was not requested.
type Scorecard struct {
	Reference string          `json:"reference"`
	Distorted string          `json:"distorted"`
	PSNR      *metrics.Planar `json:"psnr,omitempty"`
	APSNR     *metrics.Planar `json:"apsnr,omitempty"`
	SSIM      *metrics.Planar `json:"ssim,omitempty"`
	MSSSIM    *metrics.Planar `json:"msssim,omitempty"`
	PSNRHVS   *metrics.Planar `json:"psnr_hvs,omitempty"`
	CIEDE2000 *float64        `json:"ciede2000,omitempty"`
}

// WriteText renders the scorecard as human-readable text.
func WriteText(w io.Writer, sc Scorecard) error {
	fmt.Fprintf(w, "reference: %s\n", sc.Reference)
	fmt.Fprintf(w, "distorted: %s\n", sc.Distorted)
	writePlanar := func(name string, p *metrics.Planar) {
		if p == nil {
			return
		}
		fmt.Fprintf(w, "%-8s y=%.4f u=%.4f v=%.4f avg=%.4f\n", name, p.Y, p.U, p.V, p.Avg)
	}
	writePlanar("psnr", sc.PSNR)
	writePlanar("apsnr", sc.APSNR)
	writePlanar("ssim", sc.SSIM)
	writePlanar("msssim", sc.MSSSIM)
	writePlanar("psnrhvs", sc.PSNRHVS)
	if sc.CIEDE2000 != nil {
		fmt.Fprintf(w, "ciede2000 %.4f\n", *sc.CIEDE2000)
	}
	return nil
}

// WriteJSON renders the scorecard as indented JSON.
func WriteJSON(w io.Writer, sc Scorecard) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(sc)
}

// WriteCSV renders the scorecard as a single CSV row with a header,
// suitable for appending one row per comparison to a running log.
func WriteCSV(w io.Writer, sc Scorecard) error {
	cw := csv.NewWriter(w)
	defer cw.Flush()

	header := []string{"reference", "distorted",
		"psnr_y", "psnr_u", "psnr_v", "psnr_avg",
		"apsnr_y", "apsnr_u", "apsnr_v", "apsnr_avg",
		"ssim_y", "ssim_u", "ssim_v", "ssim_avg",
		"msssim_y", "msssim_u", "msssim_v", "msssim_avg",
		"psnrhvs_y", "psnrhvs_u", "psnrhvs_v", "psnrhvs_avg",
		"ciede2000",
	}
	if err := cw.Write(header); err != nil {
		return err
	}

	row := []string{sc.Reference, sc.Distorted}
	row = append(row, planarCells(sc.PSNR)...)
	row = append(row, planarCells(sc.APSNR)...)
	row = append(row, planarCells(sc.SSIM)...)
	row = append(row, planarCells(sc.MSSSIM)...)
	row = append(row, planarCells(sc.PSNRHVS)...)
	if sc.CIEDE2000 != nil {
		row = append(row, strconv.FormatFloat(*sc.CIEDE2000, 'f', 4, 64))
	} else {
		row = append(row, "")
	}
	return cw.Write(row)
}

func planarCells(p *metrics.Planar) []string {
	if p == nil {
		return []string{"", "", "", ""}
	}
	f := func(v float64) string { return strconv.FormatFloat(v, 'f', 4, 64) }
	return []string{f(p.Y), f(p.U), f(p.V), f(p.Avg)}
}

// WriteMarkdown renders the scorecard as a Markdown table, one row per
// metric.
func WriteMarkdown(w io.Writer, sc Scorecard) error {
	fmt.Fprintf(w, "# %s vs %s\n\n", sc.Reference, sc.Distorted)
	fmt.Fprintln(w, "| metric | Y | U | V | avg |")
	fmt.Fprintln(w, "|---|---|---|---|---|")
	row := func(name string, p *metrics.Planar) {
		if p == nil {
			return
		}
		fmt.Fprintf(w, "| %s | %.4f | %.4f | %.4f | %.4f |\n", name, p.Y, p.U, p.V, p.Avg)
	}
	row("PSNR", sc.PSNR)
	row("APSNR", sc.APSNR)
	row("SSIM", sc.SSIM)
	row("MS-SSIM", sc.MSSSIM)
	row("PSNR-HVS", sc.PSNRHVS)
	if sc.CIEDE2000 != nil {
		fmt.Fprintf(w, "| CIEDE2000 | - | - | - | %.4f |\n", *sc.CIEDE2000)
	}
	return nil
}
