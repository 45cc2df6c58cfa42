// Package codec converts between encoded image bytes and pixels.
//
// The engine's public surface moves images as encoded bytes; this package
// is the one place where bytes are decoded and results are re-encoded.
package codec

import (
	"bytes"
	"encoding/base64"
	"fmt"
	"image"
	"image/color"
	"image/jpeg"
	"image/png"
	"os"
	"path/filepath"
	"strings"

	"github.com/chai2010/webp"
	"github.com/disintegration/imaging"
	_ "golang.org/x/image/webp"
)

// DefaultJPEGQuality is applied to all JPEG output.
const DefaultJPEGQuality = 95

// Metadata describes an encoded image without decoding its pixel data.
type Metadata struct {
	Width    int    `json:"width"`
	Height   int    `json:"height"`
	Format   string `json:"format"`
	Channels int    `json:"channels"`
	HasAlpha bool   `json:"has_alpha"`
}

// Decode decodes encoded image bytes. The registered decoders run first,
// then an explicit WebP attempt for streams image.Decode rejects.
func Decode(data []byte) (image.Image, error) {
	if len(data) == 0 {
		return nil, fmt.Errorf("empty image data")
	}

	if img, _, err := image.Decode(bytes.NewReader(data)); err == nil {
		return img, nil
	}
	if img, err := webp.Decode(bytes.NewReader(data)); err == nil {
		return img, nil
	}

	return nil, fmt.Errorf("image: unknown or unsupported format")
}

// Probe reads dimensions and pixel layout from encoded image bytes
// without decoding the full image.
func Probe(data []byte) (Metadata, error) {
	if len(data) == 0 {
		return Metadata{}, fmt.Errorf("empty image data")
	}

	if cfg, format, err := image.DecodeConfig(bytes.NewReader(data)); err == nil {
		channels, hasAlpha := channelLayout(cfg.ColorModel)
		return Metadata{
			Width:    cfg.Width,
			Height:   cfg.Height,
			Format:   format,
			Channels: channels,
			HasAlpha: hasAlpha,
		}, nil
	}

	if width, height, hasAlpha, err := webp.GetInfo(data); err == nil {
		channels := 3
		if hasAlpha {
			channels = 4
		}
		return Metadata{
			Width:    width,
			Height:   height,
			Format:   "webp",
			Channels: channels,
			HasAlpha: hasAlpha,
		}, nil
	}

	return Metadata{}, fmt.Errorf("image: unknown or unsupported format")
}

// Encode serializes an image to the named format. Supported formats are
// "png", "jpg"/"jpeg" and "webp"; WebP output is lossless.
func Encode(img image.Image, format string) ([]byte, error) {
	if img == nil {
		return nil, fmt.Errorf("nil image")
	}

	var buf bytes.Buffer
	switch strings.ToLower(format) {
	case "png":
		enc := png.Encoder{CompressionLevel: png.BestCompression}
		if err := enc.Encode(&buf, img); err != nil {
			return nil, err
		}
	case "jpg", "jpeg":
		if err := jpeg.Encode(&buf, img, &jpeg.Options{Quality: DefaultJPEGQuality}); err != nil {
			return nil, err
		}
	case "webp":
		if err := webp.Encode(&buf, img, &webp.Options{Lossless: true}); err != nil {
			return nil, err
		}
	default:
		return nil, fmt.Errorf("unsupported format: %s", format)
	}
	return buf.Bytes(), nil
}

// EncodeForTransport serializes an image and wraps it in standard base64
// for transfer across a network boundary.
func EncodeForTransport(img image.Image, format string) (string, error) {
	data, err := Encode(img, format)
	if err != nil {
		return "", err
	}
	return base64.StdEncoding.EncodeToString(data), nil
}

// Load reads an image from a file path with WebP support.
func Load(path string) (image.Image, error) {
	if img, err := imaging.Open(path); err == nil {
		return img, nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	return Decode(data)
}

// Save writes an image to a file, routed by extension: ".webp" is written
// lossless, ".jpg"/".jpeg" at DefaultJPEGQuality, the rest through the
// imaging library's own extension handling.
func Save(img image.Image, path string) error {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".webp":
		f, err := os.Create(path)
		if err != nil {
			return err
		}
		defer f.Close()
		return webp.Encode(f, img, &webp.Options{Lossless: true})
	case ".jpg", ".jpeg":
		return imaging.Save(img, path, imaging.JPEGQuality(DefaultJPEGQuality))
	default:
		return imaging.Save(img, path)
	}
}

// channelLayout maps a color model to its channel count and alpha
// presence. An opaque truecolor PNG still decodes through RGBAModel, so
// the RGBA family reports four channels as decoded. Models without a
// dedicated case fall back to the same layout.
func channelLayout(m color.Model) (channels int, hasAlpha bool) {
	switch m {
	case color.GrayModel, color.Gray16Model:
		return 1, false
	case color.YCbCrModel:
		return 3, false
	case color.CMYKModel:
		return 4, false
	case color.RGBAModel, color.RGBA64Model, color.NRGBAModel, color.NRGBA64Model, color.NYCbCrAModel:
		return 4, true
	default:
		return 4, true
	}
}
