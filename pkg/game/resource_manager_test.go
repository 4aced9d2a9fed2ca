package game

import (
	"bytes"
	"image"
	"image/color"
	"image/png"
	"testing"
	"testing/fstest"

	"github.com/google/go-cmp/cmp"
)

// encodePNG 生成一张纯色 PNG
func encodePNG(t *testing.T, w, h int) []byte {
	t.Helper()
	img := image.NewRGBA(image.Rect(0, 0, w, h))
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			img.Set(x, y, color.RGBA{R: 200, A: 255})
		}
	}
	var buf bytes.Buffer
	if err := png.Encode(&buf, img); err != nil {
		t.Fatalf("png.Encode: %v", err)
	}
	return buf.Bytes()
}

func TestScanCardAssets(t *testing.T) {
	data := encodePNG(t, 2, 2)
	source := fstest.MapFS{
		"back.png": {Data: data},
		"2C.png":   {Data: data},
		"10H.png":  {Data: data},
		"AS.txt":   {Data: []byte("not a card")},
	}

	report := ScanCardAssets(source, "back", []string{"2C", "AS", "10H", "KD"})

	want := CardAssetReport{
		Available: []string{"2C", "10H"},
		Missing:   []string{"AS", "KD"},
		HasBack:   true,
	}
	if diff := cmp.Diff(want, report); diff != "" {
		t.Errorf("ScanCardAssets mismatch (-want +got):\n%s", diff)
	}
}

func TestScanCardAssets_NoBackNoSource(t *testing.T) {
	report := ScanCardAssets(fstest.MapFS{}, "back", []string{"2C"})
	if report.HasBack {
		t.Error("HasBack should be false for an empty directory")
	}

	report = ScanCardAssets(nil, "back", []string{"2C", "3C"})
	if report.HasBack || len(report.Available) != 0 || len(report.Missing) != 2 {
		t.Errorf("nil source report = %+v", report)
	}
}

func TestDecodeCardImage_ScalesToCardSize(t *testing.T) {
	img, err := DecodeCardImage(encodePNG(t, 72, 96), 108, 144)
	if err != nil {
		t.Fatalf("DecodeCardImage: %v", err)
	}
	if b := img.Bounds(); b.Dx() != 108 || b.Dy() != 144 {
		t.Errorf("size = %dx%d, want 108x144", b.Dx(), b.Dy())
	}

	// 中心像素颜色保持不变
	r, _, _, a := img.At(54, 72).RGBA()
	if r>>8 < 198 || r>>8 > 202 || a>>8 != 255 {
		t.Errorf("centre pixel r=%d a=%d, want ~200/255", r>>8, a>>8)
	}
}

func TestDecodeCardImage_SameSizeUnchanged(t *testing.T) {
	img, err := DecodeCardImage(encodePNG(t, 10, 20), 10, 20)
	if err != nil {
		t.Fatalf("DecodeCardImage: %v", err)
	}
	if b := img.Bounds(); b.Dx() != 10 || b.Dy() != 20 {
		t.Errorf("size = %dx%d, want 10x20", b.Dx(), b.Dy())
	}
}

func TestDecodeCardImage_Corrupted(t *testing.T) {
	if _, err := DecodeCardImage([]byte("garbage"), 10, 10); err == nil {
		t.Error("expected decode error")
	}
}

func TestProceduralLabel(t *testing.T) {
	tests := map[string]string{
		"7H":  "7♥",
		"10S": "10♠",
		"QD":  "Q♦",
		"AC":  "A♣",
		"JX":  "JX",
		"":    "",
	}
	for in, want := range tests {
		if got := ProceduralLabel(in); got != want {
			t.Errorf("ProceduralLabel(%q) = %q, want %q", in, got, want)
		}
	}
}

func TestSuitColor(t *testing.T) {
	red := color.RGBA{R: 200, A: 255}
	for _, id := range []string{"7H", "KD"} {
		if SuitColor(id) != red {
			t.Errorf("SuitColor(%s) should be red", id)
		}
	}
	for _, id := range []string{"7S", "KC", ""} {
		if SuitColor(id) != color.Black {
			t.Errorf("SuitColor(%s) should be black", id)
		}
	}
}

func TestResourceManager_LoadWithoutSource(t *testing.T) {
	rm := NewResourceManager(nil, "back", 10, 10)
	if _, err := rm.LoadCardImages([]string{"2C"}); err == nil {
		t.Error("expected ErrMissingBackImage without a card directory")
	}
	if rm.BackImage() != nil {
		t.Error("back image should be nil before loading")
	}
	if len(rm.Available()) != 0 {
		t.Error("no identifiers should be available")
	}
}
