package vision

import (
	"bytes"
	"image"
	"image/png"
	"testing"

	"pricefinder/search-api/internal/domain/search"
	"pricefinder/search-api/utils/platformerrors"
)

func encodePNG(t *testing.T, width, height int) []byte {
	t.Helper()
	var buf bytes.Buffer
	if err := png.Encode(&buf, image.NewRGBA(image.Rect(0, 0, width, height))); err != nil {
		t.Fatalf("failed to encode test image: %v", err)
	}
	return buf.Bytes()
}

func TestValidateImageAcceptsUsablePNG(t *testing.T) {
	if err := ValidateImage(encodePNG(t, 20, 20)); err != nil {
		t.Errorf("unexpected error for a 20x20 png: %v", err)
	}
}

func TestValidateImageAcceptsMinimumDimensions(t *testing.T) {
	if err := ValidateImage(encodePNG(t, 10, 10)); err != nil {
		t.Errorf("unexpected error for a 10x10 png: %v", err)
	}
}

func TestValidateImageRejectsTooSmall(t *testing.T) {
	err := ValidateImage(encodePNG(t, 1, 1))
	if err == nil {
		t.Fatal("expected an error for a 1x1 image")
	}
	if !platformerrors.IsErrorType(err, platformerrors.ErrorTypeValidation) {
		t.Errorf("expected a validation error, got %v", err)
	}
}

func TestValidateImageRejectsGarbage(t *testing.T) {
	if err := ValidateImage([]byte("definitely not an image")); err == nil {
		t.Error("expected an error for non-image bytes")
	}
}

func TestValidateImageRejectsEmpty(t *testing.T) {
	if err := ValidateImage(nil); err == nil {
		t.Error("expected an error for empty input")
	}
}

func TestValidateImageRejectsOversized(t *testing.T) {
	data := make([]byte, search.MaxImageBytes+1)
	if err := ValidateImage(data); err == nil {
		t.Error("expected an error for an oversized upload")
	}
}

func TestDetectFormat(t *testing.T) {
	if got := detectFormat(encodePNG(t, 10, 10)); got != "png" {
		t.Errorf("detectFormat = %q, want png", got)
	}
	if got := detectFormat([]byte("junk")); got != "" {
		t.Errorf("detectFormat on junk = %q, want empty", got)
	}
}
