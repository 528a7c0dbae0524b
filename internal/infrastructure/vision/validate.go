package vision

import (
	"bytes"
	"fmt"
	"image"

	// Register decoders for the accepted upload formats.
	_ "image/gif"
	_ "image/jpeg"
	_ "image/png"

	_ "golang.org/x/image/bmp"
	_ "golang.org/x/image/webp"

	"pricefinder/search-api/internal/domain/search"
	"pricefinder/search-api/utils/platformerrors"
)

const minDimension = 10

var acceptedFormats = map[string]bool{
	"jpeg": true,
	"png":  true,
	"gif":  true,
	"bmp":  true,
	"webp": true,
}

// ValidateImage checks size, format and minimum dimensions of an uploaded
// image without decoding the full pixel data.
func ValidateImage(data []byte) error {
	if len(data) == 0 {
		return platformerrors.NewError(
			platformerrors.LayerInfrastructure,
			platformerrors.ErrorTypeValidation,
			"image is empty",
			nil,
		)
	}
	if len(data) > search.MaxImageBytes {
		return platformerrors.NewError(
			platformerrors.LayerInfrastructure,
			platformerrors.ErrorTypeValidation,
			fmt.Sprintf("image exceeds %d bytes", search.MaxImageBytes),
			nil,
		)
	}

	cfg, format, err := image.DecodeConfig(bytes.NewReader(data))
	if err != nil {
		return platformerrors.NewError(
			platformerrors.LayerInfrastructure,
			platformerrors.ErrorTypeValidation,
			"image format is not recognized",
			err,
		)
	}
	if !acceptedFormats[format] {
		return platformerrors.NewError(
			platformerrors.LayerInfrastructure,
			platformerrors.ErrorTypeValidation,
			fmt.Sprintf("image format %q is not accepted", format),
			nil,
		)
	}
	if cfg.Width < minDimension || cfg.Height < minDimension {
		return platformerrors.NewError(
			platformerrors.LayerInfrastructure,
			platformerrors.ErrorTypeValidation,
			fmt.Sprintf("image is too small (%dx%d, minimum %dx%d)", cfg.Width, cfg.Height, minDimension, minDimension),
			nil,
		)
	}
	return nil
}

// detectFormat returns the registered format name of the image, or "" when it
// cannot be decoded.
func detectFormat(data []byte) string {
	_, format, err := image.DecodeConfig(bytes.NewReader(data))
	if err != nil {
		return ""
	}
	return format
}
