package imaging

import (
	"bytes"
	"image"
	"image/jpeg"
	"image/png"
	"testing"
)

// encodeTestImage produces an encoded image of the given size.
func encodeTestImage(t *testing.T, w, h int, encode func(*bytes.Buffer, image.Image) error) []byte {
	t.Helper()
	img := image.NewRGBA(image.Rect(0, 0, w, h))
	var buf bytes.Buffer
	if err := encode(&buf, img); err != nil {
		t.Fatalf("encoding test image: %v", err)
	}
	return buf.Bytes()
}

func encodePNG(buf *bytes.Buffer, img image.Image) error {
	return png.Encode(buf, img)
}

func encodeJPEG(buf *bytes.Buffer, img image.Image) error {
	return jpeg.Encode(buf, img, nil)
}

func TestProcessSmallImagePassesThrough(t *testing.T) {
	data := encodeTestImage(t, 100, 50, encodePNG)

	result, err := Process(data)
	if err != nil {
		t.Fatalf("Process() error: %v", err)
	}
	if result.MIME != "image/jpeg" {
		t.Errorf("MIME = %q, want image/jpeg", result.MIME)
	}

	img, _, err := image.Decode(bytes.NewReader(result.Data))
	if err != nil {
		t.Fatalf("decoding result: %v", err)
	}
	if img.Bounds().Dx() != 100 || img.Bounds().Dy() != 50 {
		t.Errorf("dimensions = %dx%d, want 100x50", img.Bounds().Dx(), img.Bounds().Dy())
	}
}

func TestProcessDownscalesLargeImage(t *testing.T) {
	data := encodeTestImage(t, 2048, 1024, encodeJPEG)

	result, err := Process(data)
	if err != nil {
		t.Fatalf("Process() error: %v", err)
	}

	img, _, err := image.Decode(bytes.NewReader(result.Data))
	if err != nil {
		t.Fatalf("decoding result: %v", err)
	}
	if img.Bounds().Dx() != MaxDimension {
		t.Errorf("width = %d, want %d", img.Bounds().Dx(), MaxDimension)
	}
	if img.Bounds().Dy() != MaxDimension/2 {
		t.Errorf("height = %d, want %d", img.Bounds().Dy(), MaxDimension/2)
	}
}

func TestProcessDownscalesPortraitImage(t *testing.T) {
	data := encodeTestImage(t, 500, 2000, encodeJPEG)

	result, err := Process(data)
	if err != nil {
		t.Fatalf("Process() error: %v", err)
	}

	img, _, err := image.Decode(bytes.NewReader(result.Data))
	if err != nil {
		t.Fatalf("decoding result: %v", err)
	}
	if img.Bounds().Dy() != MaxDimension {
		t.Errorf("height = %d, want %d", img.Bounds().Dy(), MaxDimension)
	}
	if img.Bounds().Dx() != MaxDimension/4 {
		t.Errorf("width = %d, want %d", img.Bounds().Dx(), MaxDimension/4)
	}
}

func TestProcessRejectsNonImageData(t *testing.T) {
	if _, err := Process([]byte("this is not an image at all")); err == nil {
		t.Error("Process() accepted plain text")
	}
}

func TestProcessRejectsDisallowedFormat(t *testing.T) {
	// A GIF header is a real image format but not an accepted one.
	gif := []byte("GIF89a\x01\x00\x01\x00\x00\x00\x00;")
	if _, err := Process(gif); err == nil {
		t.Error("Process() accepted a GIF")
	}
}
