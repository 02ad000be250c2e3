package imageutil

import (
	"image"
	"image/color"
	"math"
	"os"
	"path/filepath"
	"testing"
)

func TestNewRGBAImage(t *testing.T) {
	img := NewRGBAImage(100, 50)
	if img.Width() != 100 {
		t.Errorf("Expected width 100, got %d", img.Width())
	}
	if img.Height() != 50 {
		t.Errorf("Expected height 50, got %d", img.Height())
	}
}

func TestRGBAImageGetSetRGB(t *testing.T) {
	img := NewRGBAImage(10, 10)
	c := RGB{R: 100, G: 150, B: 200}
	img.SetRGB(5, 5, c)

	got := img.GetRGB(5, 5)
	if got != c {
		t.Errorf("Expected %v, got %v", c, got)
	}
}

func TestRGBAImageClone(t *testing.T) {
	img := NewRGBAImage(10, 10)
	img.SetRGB(5, 5, RGB{R: 255, G: 0, B: 0})

	clone := img.Clone()
	if clone.GetRGB(5, 5) != img.GetRGB(5, 5) {
		t.Error("Clone should have same pixel values")
	}

	// Modify clone, original should be unchanged
	clone.SetRGB(5, 5, RGB{R: 0, G: 255, B: 0})
	if img.GetRGB(5, 5).G != 0 {
		t.Error("Modifying clone should not affect original")
	}
}

func TestOpaqueRebasesBounds(t *testing.T) {
	nrgba := image.NewNRGBA(image.Rect(5, 7, 9, 10))
	nrgba.SetNRGBA(5, 7, color.NRGBA{R: 10, G: 20, B: 30, A: 255})
	gray := image.NewGray(image.Rect(-2, 3, 2, 6))
	gray.SetGray(-2, 3, color.Gray{Y: 77})

	testCases := []struct {
		name string
		src  image.Image
		want RGB
	}{
		{"nrgba", nrgba, RGB{10, 20, 30}},
		{"gray", gray, RGB{77, 77, 77}},
	}
	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			img := Opaque(tc.src)
			if img.Bounds().Min != (image.Point{}) {
				t.Errorf("Expected bounds at origin, got %v", img.Bounds())
			}
			if img.Width() != tc.src.Bounds().Dx() || img.Height() != tc.src.Bounds().Dy() {
				t.Errorf("Expected %v, got %dx%d", tc.src.Bounds().Size(), img.Width(), img.Height())
			}
			if got := img.GetRGB(0, 0); got != tc.want {
				t.Errorf("Expected first pixel %v, got %v", tc.want, got)
			}
		})
	}
}

func TestOpaqueKeepsStoredColor(t *testing.T) {
	nrgba := image.NewNRGBA(image.Rect(0, 0, 3, 1))
	nrgba.SetNRGBA(0, 0, color.NRGBA{R: 255, G: 255, B: 255, A: 0})
	nrgba.SetNRGBA(1, 0, color.NRGBA{R: 10, G: 200, B: 30, A: 128})
	nrgba.SetNRGBA(2, 0, color.NRGBA{R: 1, G: 2, B: 3, A: 255})

	deep := image.NewNRGBA64(image.Rect(0, 0, 1, 1))
	deep.SetNRGBA64(0, 0, color.NRGBA64{R: 0xffff, G: 0x8000, B: 0x0100, A: 0})

	paletted := image.NewPaletted(image.Rect(0, 0, 1, 1), color.Palette{
		color.NRGBA{R: 200, G: 100, B: 50, A: 0},
	})

	testCases := []struct {
		name string
		src  image.Image
		want []RGB
	}{
		{"nrgba", nrgba, []RGB{{255, 255, 255}, {10, 200, 30}, {1, 2, 3}}},
		{"nrgba64", deep, []RGB{{255, 128, 1}}},
		{"paletted", paletted, []RGB{{200, 100, 50}}},
	}
	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			img := Opaque(tc.src)
			for x, want := range tc.want {
				if got := img.GetRGB(x, 0); got != want {
					t.Errorf("Pixel %d: expected %v, got %v", x, want, got)
				}
				if a := img.RGBAAt(x, 0).A; a != 255 {
					t.Errorf("Pixel %d: expected opaque, got alpha %d", x, a)
				}
			}
		})
	}
	if nrgba.NRGBAAt(0, 0).A != 0 {
		t.Error("Opaque should not modify its input")
	}
}

func TestLanczos3Kernel(t *testing.T) {
	testCases := []struct {
		t    float64
		want float64
	}{
		{0, 1},
		{1, 0},
		{2, 0},
		{3, 0},
		{4, 0},
		{-1, 0},
	}
	for _, tc := range testCases {
		if got := lanczos3(tc.t); math.Abs(got-tc.want) > 1e-12 {
			t.Errorf("lanczos3(%v): expected %v, got %v", tc.t, tc.want, got)
		}
	}
	if lanczos3(0.5) <= 0 {
		t.Error("Expected a positive main lobe")
	}
	if lanczos3(1.5) >= 0 {
		t.Error("Expected a negative first side lobe")
	}
	if lanczos3(0.7) != lanczos3(-0.7) {
		t.Error("Expected the kernel to be symmetric")
	}
}

func TestResize(t *testing.T) {
	img := CreateGradientImage(100, 100)
	for _, interp := range []Interpolation{
		InterpolationLanczos3, InterpolationArea,
		InterpolationLinear, InterpolationNearest,
	} {
		t.Run(interp.String(), func(t *testing.T) {
			resized := Resize(img, 51, 26, interp)
			if resized.Width() != 51 || resized.Height() != 26 {
				t.Errorf("Expected 51x26, got %dx%d", resized.Width(), resized.Height())
			}
		})
	}
}

func TestResizeLanczosKeepsSolidColor(t *testing.T) {
	testCases := []struct {
		name       string
		srcW, srcH int
		dstW, dstH int
		color      RGB
	}{
		{"upscale white", 20, 40, 11, 21, RGB{255, 255, 255}},
		{"downscale black", 200, 100, 31, 16, RGB{0, 0, 0}},
		{"upscale grey", 3, 3, 40, 40, RGB{128, 64, 32}},
	}
	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			img := CreateSolidImage(tc.srcW, tc.srcH, tc.color)
			resized := Resize(img, tc.dstW, tc.dstH, InterpolationLanczos3)
			for y := 0; y < tc.dstH; y++ {
				for x := 0; x < tc.dstW; x++ {
					if got := resized.GetRGB(x, y); got != tc.color {
						t.Fatalf("Pixel (%d,%d): expected %v, got %v", x, y, tc.color, got)
					}
				}
			}
		})
	}
}

func TestParseInterpolation(t *testing.T) {
	for _, name := range []string{"lanczos3", "area", "linear", "nearest"} {
		interp, ok := ParseInterpolation(name)
		if !ok || interp.String() != name {
			t.Errorf("Expected %q to round trip, got %v (%v)", name, interp, ok)
		}
	}
	if _, ok := ParseInterpolation("bicubic"); ok {
		t.Error("Expected unknown interpolation to be rejected")
	}
}

func TestFlatten(t *testing.T) {
	img := NewRGBAImage(2, 1)
	img.SetRGBA(0, 0, color.RGBA{R: 50, G: 40, B: 30, A: 100})

	Flatten(img)
	got := img.RGBAAt(0, 0)
	if got != (color.RGBA{R: 50, G: 40, B: 30, A: 255}) {
		t.Errorf("Expected premultiplied color made opaque, got %v", got)
	}
	if img.RGBAAt(1, 0).A != 255 {
		t.Error("Expected transparent pixel to become opaque black")
	}
}

func TestInvert(t *testing.T) {
	img := CreateColorBarsImage(16, 4)
	img.SetRGB(0, 0, RGB{R: 1, G: 128, B: 254})

	inverted := Invert(img)
	for y := 0; y < img.Height(); y++ {
		for x := 0; x < img.Width(); x++ {
			c := img.GetRGB(x, y)
			want := RGB{R: 255 - c.R, G: 255 - c.G, B: 255 - c.B}
			if got := inverted.GetRGB(x, y); got != want {
				t.Fatalf("Pixel (%d,%d): expected %v, got %v", x, y, want, got)
			}
			if inverted.RGBAAt(x, y).A != 255 {
				t.Fatalf("Pixel (%d,%d): expected alpha to stay opaque", x, y)
			}
		}
	}
	if img.GetRGB(0, 0) != (RGB{R: 1, G: 128, B: 254}) {
		t.Error("Invert should not modify its input")
	}
}

func TestDecode(t *testing.T) {
	src := CreateColorBarsImage(24, 6)
	data, err := EncodePNG(src.RGBA)
	if err != nil {
		t.Fatalf("Failed to encode: %v", err)
	}

	img, format, err := Decode(data)
	if err != nil {
		t.Fatalf("Failed to decode: %v", err)
	}
	if format != "png" {
		t.Errorf("Expected png, got %q", format)
	}
	if CalculateMSE(src, img) != 0 {
		t.Error("Decoded image differs from the encoded one")
	}

	if _, _, err := Decode([]byte("definitely not an image")); err == nil {
		t.Error("Expected an error for malformed data")
	}
}

func TestDecodeTransparentKeepsStoredColor(t *testing.T) {
	src := image.NewNRGBA(image.Rect(0, 0, 4, 4))
	for i := 0; i < len(src.Pix); i += 4 {
		src.Pix[i], src.Pix[i+1], src.Pix[i+2], src.Pix[i+3] = 255, 255, 255, 0
	}
	data, err := EncodePNG(src)
	if err != nil {
		t.Fatalf("Failed to encode: %v", err)
	}
	img, _, err := Decode(data)
	if err != nil {
		t.Fatalf("Failed to decode: %v", err)
	}
	want := color.RGBA{R: 255, G: 255, B: 255, A: 255}
	if got := img.RGBAAt(2, 2); got != want {
		t.Errorf("Expected %v, got %v", want, got)
	}
}

func TestLoadSaveImage(t *testing.T) {
	tmpDir := t.TempDir()
	img := CreateCheckerboardImage(20, 20, 5)

	path := filepath.Join(tmpDir, "checker.png")
	if err := SavePNG(img.RGBA, path); err != nil {
		t.Fatalf("Failed to save: %v", err)
	}
	if _, err := os.Stat(path); err != nil {
		t.Fatalf("Expected file to exist: %v", err)
	}

	loaded, err := LoadImage(path)
	if err != nil {
		t.Fatalf("Failed to load: %v", err)
	}
	if maxDiff := CalculateMaxDiff(img, loaded); maxDiff != 0 {
		t.Errorf("Expected identical pixels, max diff %d", maxDiff)
	}

	if _, err := LoadImage(filepath.Join(tmpDir, "missing.png")); err == nil {
		t.Error("Expected an error for a missing file")
	}
}

func TestCalculateMSE(t *testing.T) {
	img1 := CreateSolidImage(10, 10, RGB{R: 100, G: 100, B: 100})
	img2 := CreateSolidImage(10, 10, RGB{R: 110, G: 100, B: 100})

	if mse := CalculateMSE(img1, img1); mse != 0 {
		t.Errorf("Expected MSE 0 for identical images, got %f", mse)
	}
	// Only R differs by 10: 100 / 3 channels
	if mse := CalculateMSE(img1, img2); math.Abs(mse-100.0/3) > 1e-9 {
		t.Errorf("Expected MSE %f, got %f", 100.0/3, mse)
	}
	if d := CalculateMaxDiff(img1, img2); d != 10 {
		t.Errorf("Expected max diff 10, got %d", d)
	}
	if mse := CalculateMSE(img1, NewRGBAImage(5, 5)); mse != math.MaxFloat64 {
		t.Errorf("Expected MaxFloat64 for mismatched sizes, got %f", mse)
	}
}
