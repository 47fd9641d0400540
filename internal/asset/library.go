package asset

import (
	"errors"
	"fmt"
	"image"
	_ "image/jpeg"
	"image/png"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/h2non/filetype"
	"golang.org/x/image/draw"

	"github.com/phytogl/phytogl/internal/typeid"
)

var (
	ErrNotFound          = errors.New("asset not found")
	ErrInvalidName       = errors.New("invalid asset name")
	ErrUnsupportedFormat = errors.New("only PNG and JPEG images are supported")
)

// DefaultTextureSize bounds the longest edge of textures handed to the
// projection engine.
const DefaultTextureSize = 256

// Library resolves texture file names against an asset directory.
type Library struct {
	dir     string
	maxSize int
}

func NewLibrary(dir string, maxSize int) *Library {
	if maxSize <= 0 {
		maxSize = DefaultTextureSize
	}
	return &Library{dir: dir, maxSize: maxSize}
}

func (l *Library) Dir() string { return l.dir }

// Path maps an asset name (or a "/assets/" URL) to its file path.
func (l *Library) Path(name string) (string, error) {
	name = strings.TrimPrefix(name, "/assets/")
	if name == "" || name != filepath.Base(name) || name == "." || name == ".." {
		return "", fmt.Errorf("%w: %q", ErrInvalidName, name)
	}
	return filepath.Join(l.dir, name), nil
}

// Texture decodes a stored image and shrinks it to the library's size bound.
func (l *Library) Texture(name string) (image.Image, error) {
	path, err := l.Path(name)
	if err != nil {
		return nil, err
	}
	f, err := os.Open(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil, fmt.Errorf("%w: %s", ErrNotFound, name)
		}
		return nil, fmt.Errorf("open texture: %w", err)
	}
	defer f.Close()

	if _, err := Sniff(f); err != nil {
		return nil, err
	}
	if _, err := f.Seek(0, io.SeekStart); err != nil {
		return nil, fmt.Errorf("rewind texture: %w", err)
	}
	img, _, err := image.Decode(f)
	if err != nil {
		return nil, fmt.Errorf("decode texture %s: %w", name, err)
	}
	return Downsample(img, l.maxSize), nil
}

// Store encodes img as PNG under a fresh asset id and returns the id.
func (l *Library) Store(img image.Image) (string, error) {
	if err := os.MkdirAll(l.dir, 0755); err != nil {
		return "", fmt.Errorf("create asset dir: %w", err)
	}
	id := typeid.NewAssetID()
	path := filepath.Join(l.dir, id+".png")
	out, err := os.Create(path)
	if err != nil {
		return "", fmt.Errorf("create asset file: %w", err)
	}
	if err := png.Encode(out, img); err != nil {
		out.Close()
		os.Remove(path)
		return "", fmt.Errorf("encode png: %w", err)
	}
	return id, out.Close()
}

// Remove deletes the file of a stored asset.
func (l *Library) Remove(assetID string) error {
	if err := typeid.Validate(assetID, typeid.PrefixAsset); err != nil {
		return fmt.Errorf("%w: %v", ErrInvalidName, err)
	}
	path, err := l.Path(assetID + ".png")
	if err != nil {
		return err
	}
	if err := os.Remove(path); err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return fmt.Errorf("%w: %s", ErrNotFound, assetID)
		}
		return err
	}
	return nil
}

// Sniff reads the header of r and returns "png" or "jpg".
func Sniff(r io.Reader) (string, error) {
	header := make([]byte, 261)
	n, err := io.ReadFull(r, header)
	if err != nil && !errors.Is(err, io.ErrUnexpectedEOF) {
		return "", fmt.Errorf("read header: %w", err)
	}
	kind, err := filetype.Match(header[:n])
	if err != nil {
		return "", fmt.Errorf("match header: %w", err)
	}
	switch kind.Extension {
	case "png", "jpg":
		return kind.Extension, nil
	}
	return "", ErrUnsupportedFormat
}

// Downsample scales img so that its longest edge is at most size pixels.
func Downsample(img image.Image, size int) image.Image {
	b := img.Bounds()
	w, h := b.Dx(), b.Dy()
	if w <= size && h <= size {
		return img
	}
	if w >= h {
		h = max(1, h*size/w)
		w = size
	} else {
		w = max(1, w*size/h)
		h = size
	}
	dst := image.NewRGBA(image.Rect(0, 0, w, h))
	draw.BiLinear.Scale(dst, dst.Bounds(), img, b, draw.Src, nil)
	return dst
}
