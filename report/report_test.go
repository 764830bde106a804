/*
NAME
  report_test.go

LICENSE
  Copyright (C) 2026 the vqmetrics contributors.
*/

package report

import (
	"bytes"
	"encoding/csv"
	"encoding/json"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/ausocean/vqmetrics/metrics"
)

func sampleScorecard() Scorecard {
	psnr := metrics.Planar{Y: 42.1, U: 44.2, V: 45.3, Avg: 42.8}
	ciede := 96.5
	return Scorecard{
		Reference: "ref.yuv",
		Distorted: "dist.yuv",
		PSNR:      &psnr,
		CIEDE2000: &ciede,
	}
}

func TestWriteTextIncludesRequestedMetrics(t *testing.T) {
	var buf bytes.Buffer
	if err := WriteText(&buf, sampleScorecard()); err != nil {
		t.Fatalf("WriteText() error = %v", err)
	}
	out := buf.String()
	for _, want := range []string{"reference: ref.yuv", "distorted: dist.yuv", "psnr", "ciede2000 96.5000"} {
		if !strings.Contains(out, want) {
			t.Errorf("WriteText() output missing %q:\n%s", want, out)
		}
	}
	for _, absent := range []string{"apsnr ", "ssim ", "msssim "} {
		if strings.Contains(out, absent) {
			t.Errorf("WriteText() output unexpectedly contains %q (metric not requested):\n%s", absent, out)
		}
	}
}

func TestWriteJSONRoundTrips(t *testing.T) {
	sc := sampleScorecard()
	var buf bytes.Buffer
	if err := WriteJSON(&buf, sc); err != nil {
		t.Fatalf("WriteJSON() error = %v", err)
	}

	var got Scorecard
	if err := json.Unmarshal(buf.Bytes(), &got); err != nil {
		t.Fatalf("json.Unmarshal() error = %v", err)
	}
	if diff := cmp.Diff(sc, got); diff != "" {
		t.Errorf("round-tripped Scorecard mismatch (-want +got):\n%s", diff)
	}
}

func TestWriteJSONOmitsUnsetMetrics(t *testing.T) {
	sc := sampleScorecard()
	var buf bytes.Buffer
	if err := WriteJSON(&buf, sc); err != nil {
		t.Fatalf("WriteJSON() error = %v", err)
	}
	for _, absent := range []string{`"apsnr"`, `"ssim"`, `"msssim"`, `"psnr_hvs"`} {
		if strings.Contains(buf.String(), absent) {
			t.Errorf("WriteJSON() output unexpectedly contains %q", absent)
		}
	}
}

func TestWriteCSVHasHeaderAndOneDataRow(t *testing.T) {
	var buf bytes.Buffer
	if err := WriteCSV(&buf, sampleScorecard()); err != nil {
		t.Fatalf("WriteCSV() error = %v", err)
	}
	r := csv.NewReader(&buf)
	rows, err := r.ReadAll()
	if err != nil {
		t.Fatalf("csv.ReadAll() error = %v", err)
	}
	if len(rows) != 2 {
		t.Fatalf("len(rows) = %d, want 2 (header + one data row)", len(rows))
	}
	wantHeader := []string{"reference", "distorted",
		"psnr_y", "psnr_u", "psnr_v", "psnr_avg",
		"apsnr_y", "apsnr_u", "apsnr_v", "apsnr_avg",
		"ssim_y", "ssim_u", "ssim_v", "ssim_avg",
		"msssim_y", "msssim_u", "msssim_v", "msssim_avg",
		"psnrhvs_y", "psnrhvs_u", "psnrhvs_v", "psnrhvs_avg",
		"ciede2000",
	}
	if diff := cmp.Diff(wantHeader, rows[0]); diff != "" {
		t.Errorf("CSV header mismatch (-want +got):\n%s", diff)
	}
	if rows[1][0] != "ref.yuv" || rows[1][1] != "dist.yuv" {
		t.Errorf("CSV data row = %v, want reference/distorted in first two cells", rows[1])
	}
	if rows[1][2] != "42.1000" {
		t.Errorf("CSV psnr_y cell = %q, want 42.1000", rows[1][2])
	}
	// apsnr was never requested, so its four cells must be empty.
	for i := 6; i < 10; i++ {
		if rows[1][i] != "" {
			t.Errorf("CSV cell %d = %q, want empty (apsnr not requested)", i, rows[1][i])
		}
	}
}

func TestWriteMarkdownOnlyIncludesRequestedRows(t *testing.T) {
	var buf bytes.Buffer
	if err := WriteMarkdown(&buf, sampleScorecard()); err != nil {
		t.Fatalf("WriteMarkdown() error = %v", err)
	}
	out := buf.String()
	if !strings.Contains(out, "| PSNR |") {
		t.Errorf("WriteMarkdown() missing PSNR row:\n%s", out)
	}
	if !strings.Contains(out, "| CIEDE2000 |") {
		t.Errorf("WriteMarkdown() missing CIEDE2000 row:\n%s", out)
	}
	if strings.Contains(out, "| SSIM |") {
		t.Errorf("WriteMarkdown() unexpectedly includes SSIM row (not requested):\n%s", out)
	}
}
