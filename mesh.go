package courtboard

import (
	"image/color"

	"github.com/hajimehoshi/ebiten/v2"
)

// --- White pixel singleton (no sync.Once: the surface is single-threaded) ---

var whitePixelImage *ebiten.Image

// ensureWhitePixel returns a lazily-initialized 1x1 white pixel image.
// Used as the source of untextured polygon fills.
func ensureWhitePixel() *ebiten.Image {
	if whitePixelImage == nil {
		whitePixelImage = ebiten.NewImage(1, 1)
		whitePixelImage.Fill(color.RGBA{R: 255, G: 255, B: 255, A: 255})
	}
	return whitePixelImage
}

// buildPolygonFan generates vertices and indices for a fan-triangulated
// convex polygon filled with c. N vertices, 3*(N-2) indices. Vertex colors
// are premultiplied.
func buildPolygonFan(points []Vec2, c Color) ([]ebiten.Vertex, []uint16) {
	n := len(points)
	if n < 3 {
		return nil, nil
	}

	verts := make([]ebiten.Vertex, n)
	inds := make([]uint16, (n-2)*3)

	r := float32(c.R * c.A)
	g := float32(c.G * c.A)
	b := float32(c.B * c.A)
	a := float32(c.A)
	for i, p := range points {
		v := &verts[i]
		v.DstX = float32(p.X)
		v.DstY = float32(p.Y)
		// Center of the white pixel.
		v.SrcX = 0.5
		v.SrcY = 0.5
		v.ColorR = r
		v.ColorG = g
		v.ColorB = b
		v.ColorA = a
	}

	// Fan triangulation: vertex 0 is the hub.
	for i := 0; i < n-2; i++ {
		inds[i*3+0] = 0
		inds[i*3+1] = uint16(i + 1)
		inds[i*3+2] = uint16(i + 2)
	}

	return verts, inds
}

// fanTrianglesOptions matches the premultiplied vertex colors of
// buildPolygonFan.
func fanTrianglesOptions() *ebiten.DrawTrianglesOptions {
	return &ebiten.DrawTrianglesOptions{
		AntiAlias:      true,
		ColorScaleMode: ebiten.ColorScaleModePremultipliedAlpha,
	}
}

// fillPolygon fills a convex polygon on dst.
func fillPolygon(dst *ebiten.Image, points []Vec2, c Color) {
	verts, inds := buildPolygonFan(points, c)
	if verts == nil {
		return
	}
	dst.DrawTriangles(verts, inds, ensureWhitePixel(), fanTrianglesOptions())
}
