package sprite

import (
	"bytes"
	"errors"
	"fmt"
	"image"
	"image/gif"
	"io"

	"github.com/milk9111/deskpet/companion"
	"golang.org/x/image/draw"
)

var ErrNoFrames = errors.New("sprite: gif has no frames")

// DecodeGIF composites every frame of an animated GIF onto its logical screen
// and scales each result to size with nearest-neighbour sampling.
func DecodeGIF(r io.Reader, size companion.Size) ([]image.Image, error) {
	g, err := gif.DecodeAll(r)
	if err != nil {
		return nil, err
	}
	if len(g.Image) == 0 {
		return nil, ErrNoFrames
	}

	bounds := image.Rect(0, 0, g.Config.Width, g.Config.Height)
	if bounds.Empty() {
		bounds = g.Image[0].Bounds()
	}
	canvas := image.NewRGBA(bounds)
	var previous *image.RGBA

	frames := make([]image.Image, 0, len(g.Image))
	for i, src := range g.Image {
		disposal := byte(0)
		if i < len(g.Disposal) {
			disposal = g.Disposal[i]
		}
		if disposal == gif.DisposalPrevious {
			previous = cloneRGBA(canvas)
		}

		draw.Draw(canvas, src.Bounds(), src, src.Bounds().Min, draw.Over)
		frames = append(frames, scale(canvas, size))

		switch disposal {
		case gif.DisposalBackground:
			draw.Draw(canvas, src.Bounds(), image.Transparent, image.Point{}, draw.Src)
		case gif.DisposalPrevious:
			if previous != nil {
				copy(canvas.Pix, previous.Pix)
			}
		}
	}
	return frames, nil
}

func scale(src *image.RGBA, size companion.Size) *image.RGBA {
	dst := image.NewRGBA(image.Rect(0, 0, size.W, size.H))
	draw.NearestNeighbor.Scale(dst, dst.Bounds(), src, src.Bounds(), draw.Src, nil)
	return dst
}

func cloneRGBA(src *image.RGBA) *image.RGBA {
	dst := image.NewRGBA(src.Bounds())
	copy(dst.Pix, src.Pix)
	return dst
}

// Loader reads the raw bytes of a sprite by path.
type Loader func(path string) ([]byte, error)

// LoadRegistry decodes each named GIF at size into a frame registry. The first
// failure names the animation and path it came from.
func LoadRegistry(load Loader, paths map[string]string, size companion.Size) (*companion.Registry, error) {
	reg := companion.NewRegistry()
	for name, path := range paths {
		if path == "" {
			continue
		}
		b, err := load(path)
		if err != nil {
			return nil, fmt.Errorf("sprite: load %s (%s): %w", name, path, err)
		}
		frames, err := DecodeGIF(bytes.NewReader(b), size)
		if err != nil {
			return nil, fmt.Errorf("sprite: decode %s (%s): %w", name, path, err)
		}
		if err := reg.Register(name, frames); err != nil {
			return nil, fmt.Errorf("sprite: register %s: %w", name, err)
		}
	}
	return reg, nil
}
