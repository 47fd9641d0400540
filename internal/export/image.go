// Package export encodes traversal results for clients: projection images
// and thumbnails, control polygons as SVG or draw commands, and reports.
package export

import (
	"encoding/json"
	"fmt"
	"image"
	"image/png"
	"io"
	"strings"

	"github.com/disintegration/gift"

	"github.com/phytogl/phytogl/internal/projection"
)

// ImageKind selects which projection buffer becomes an image.
type ImageKind string

const (
	KindColor ImageKind = "color"
	KindDepth ImageKind = "depth"
)

func ParseImageKind(s string) (ImageKind, error) {
	switch ImageKind(strings.ToLower(s)) {
	case "", KindColor:
		return KindColor, nil
	case KindDepth:
		return KindDepth, nil
	}
	return "", fmt.Errorf("unknown image kind %q", s)
}

// ProjectionImage renders the chosen buffer of a merged projection.
func ProjectionImage(res *projection.Result, kind ImageKind) image.Image {
	if kind == KindDepth {
		return res.DepthImage()
	}
	return res.Image()
}

// Thumbnail scales img to fit within width x height, keeping its aspect.
func Thumbnail(img image.Image, width, height int) image.Image {
	g := gift.New(gift.ResizeToFit(width, height, gift.LinearResampling))
	dst := image.NewRGBA(g.Bounds(img.Bounds()))
	g.Draw(dst, img)
	return dst
}

// WritePNG encodes img, optionally shrunk to a thumbnail when thumb > 0.
func WritePNG(w io.Writer, img image.Image, thumb int) error {
	if thumb > 0 {
		img = Thumbnail(img, thumb, thumb)
	}
	if err := png.Encode(w, img); err != nil {
		return fmt.Errorf("encode png: %w", err)
	}
	return nil
}

// WriteJSON writes v as indented JSON followed by a newline.
func WriteJSON(w io.Writer, v any) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	if err := enc.Encode(v); err != nil {
		return fmt.Errorf("encode json: %w", err)
	}
	return nil
}

// SanitizeName keeps ASCII letters, digits, '-' and '_' of a download name.
func SanitizeName(name, fallback string) string {
	if name == "" {
		return fallback
	}
	return strings.Map(func(r rune) rune {
		if (r >= 'a' && r <= 'z') || (r >= 'A' && r <= 'Z') || (r >= '0' && r <= '9') || r == '-' || r == '_' {
			return r
		}
		return '-'
	}, name)
}
