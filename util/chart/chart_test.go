package chart

import (
	"bytes"
	"testing"
)

var pngSignature = []byte("\x89PNG\r\n\x1a\n")

func TestRenderBarChart(t *testing.T) {
	r := NewBarRenderer()

	img, err := r.RenderBarChart([]string{"Administrator", "User"}, []float64{2, 1})
	if err != nil {
		t.Fatalf("RenderBarChart() err = %v", err)
	}
	if !bytes.HasPrefix(img, pngSignature) {
		t.Fatal("rendered image is not a PNG")
	}
}

func TestRenderBarChartEmpty(t *testing.T) {
	r := NewBarRenderer()

	// An empty chart is still a valid image.
	img, err := r.RenderBarChart(nil, nil)
	if err != nil {
		t.Fatalf("RenderBarChart() err = %v", err)
	}
	if len(img) == 0 {
		t.Fatal("empty chart rendered zero bytes")
	}
	if !bytes.HasPrefix(img, pngSignature) {
		t.Fatal("rendered image is not a PNG")
	}
}
