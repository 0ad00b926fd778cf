// Package images compresses admin uploads into responsive size variants.
// Failures here never fail the upload; the caller logs and carries on
// without the derived variants.
package images

import (
	"fmt"
	"image"
	"image/jpeg"
	"image/png"
	"os"
	"path/filepath"
	"strings"

	"golang.org/x/image/draw"
)

// Variant is one responsive target size.
type Variant struct {
	Name   string
	Width  int
	Suffix string
}

// Variants are the sizes we derive from every upload. Desktop keeps the
// base filename so existing links don't change.
var Variants = []Variant{
	{Name: "mobile", Width: 640, Suffix: "-mobile"},
	{Name: "tablet", Width: 1024, Suffix: "-tablet"},
	{Name: "desktop", Width: 1920, Suffix: ""},
}

const jpegQuality = 85

// Result reports the generated files, keyed by variant name, as filenames
// relative to the upload directory.
type Result struct {
	Variants  map[string]string
	MainImage string
}

// Process reads the uploaded file at inputPath, writes the resized
// variants next to it using baseFilename, and deletes the original.
// Smaller-than-target originals are never upscaled.
func Process(inputPath, baseFilename string) (*Result, error) {
	f, err := os.Open(inputPath)
	if err != nil {
		return nil, fmt.Errorf("images: open %s: %w", inputPath, err)
	}
	src, format, err := image.Decode(f)
	f.Close()
	if err != nil {
		return nil, fmt.Errorf("images: decode %s: %w", inputPath, err)
	}

	// Everything that isn't PNG gets re-encoded as JPEG.
	ext := "jpg"
	if format == "png" {
		ext = "png"
	}

	outputDir := filepath.Dir(inputPath)
	originalWidth := src.Bounds().Dx()

	result := &Result{Variants: map[string]string{}}
	for _, v := range Variants {
		// Skip variants that would only upscale
		if v.Width >= originalWidth && v.Name != "desktop" {
			continue
		}

		filename := fmt.Sprintf("%s%s.%s", baseFilename, v.Suffix, ext)
		outPath := filepath.Join(outputDir, filename)

		img := src
		if originalWidth > v.Width {
			img = resize(src, v.Width)
		}
		if err := encode(outPath, img, ext); err != nil {
			return nil, err
		}
		result.Variants[v.Name] = filename
	}

	for _, name := range []string{"desktop", "tablet", "mobile"} {
		if f, ok := result.Variants[name]; ok {
			result.MainImage = f
			break
		}
	}

	// The raw upload is replaced by its processed variants
	os.Remove(inputPath)

	return result, nil
}

func resize(src image.Image, width int) image.Image {
	b := src.Bounds()
	height := b.Dy() * width / b.Dx()
	dst := image.NewRGBA(image.Rect(0, 0, width, height))
	draw.CatmullRom.Scale(dst, dst.Bounds(), src, b, draw.Over, nil)
	return dst
}

func encode(path string, img image.Image, ext string) error {
	out, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("images: create %s: %w", path, err)
	}
	defer out.Close()

	if ext == "png" {
		if err := png.Encode(out, img); err != nil {
			return fmt.Errorf("images: encode %s: %w", path, err)
		}
		return nil
	}
	if err := jpeg.Encode(out, img, &jpeg.Options{Quality: jpegQuality}); err != nil {
		return fmt.Errorf("images: encode %s: %w", path, err)
	}
	return nil
}

// SafeBaseName strips everything but word characters and dashes from a
// filename, for use as the variant base.
func SafeBaseName(original string) string {
	name := strings.TrimSuffix(original, filepath.Ext(original))
	var b strings.Builder
	for _, r := range name {
		switch {
		case r >= 'a' && r <= 'z', r >= 'A' && r <= 'Z', r >= '0' && r <= '9', r == '-', r == '_':
			b.WriteRune(r)
		}
	}
	return b.String()
}
