package courtboard

import "math"

// Segment is a straight piece of a polyline, from (X0, Y0) to (X1, Y1).
type Segment struct {
	X0, Y0, X1, Y1 float64
}

// Length returns the segment length.
func (s Segment) Length() float64 {
	return math.Hypot(s.X1-s.X0, s.Y1-s.Y0)
}

// polylineSegments splits a flat x,y sequence into consecutive segments.
// A trailing odd value is ignored.
func polylineSegments(points []float64) []Segment {
	n := len(points) / 2
	if n < 2 {
		return nil
	}
	segs := make([]Segment, 0, n-1)
	for i := 0; i < n-1; i++ {
		segs = append(segs, Segment{
			X0: points[i*2], Y0: points[i*2+1],
			X1: points[i*2+2], Y1: points[i*2+3],
		})
	}
	return segs
}

// dashSegments returns the "on" pieces of a polyline stroked with a canvas
// style dash pattern. The pattern carries over from one segment to the next.
// An odd pattern is repeated to make it even; an empty, negative or all-zero
// pattern yields the solid polyline.
func dashSegments(points []float64, dash []float64) []Segment {
	segs := polylineSegments(points)
	var total float64
	for _, d := range dash {
		if d < 0 {
			return segs
		}
		total += d
	}
	if len(dash) == 0 || total == 0 {
		return segs
	}
	if len(dash)%2 == 1 {
		dash = append(append([]float64(nil), dash...), dash...)
	}

	var out []Segment
	di := 0
	rem := dash[0]
	on := true
	for _, seg := range segs {
		length := seg.Length()
		if length == 0 {
			continue
		}
		ux := (seg.X1 - seg.X0) / length
		uy := (seg.Y1 - seg.Y0) / length
		pos := 0.0
		for pos < length {
			if rem <= 0 {
				di = (di + 1) % len(dash)
				rem = dash[di]
				on = di%2 == 0
				continue
			}
			step := math.Min(rem, length-pos)
			if on {
				out = append(out, Segment{
					X0: seg.X0 + ux*pos, Y0: seg.Y0 + uy*pos,
					X1: seg.X0 + ux*(pos+step), Y1: seg.Y0 + uy*(pos+step),
				})
			}
			pos += step
			rem -= step
		}
	}
	return out
}

// arrowHead returns the triangle of an arrow pointer at the end of the
// segment (x0,y0)-(x1,y1): the tip at (x1,y1), then the two base corners.
// length runs along the segment, width across it. A zero-length segment
// points along +X.
func arrowHead(x0, y0, x1, y1, length, width float64) [3]Vec2 {
	dx := x1 - x0
	dy := y1 - y0
	d := math.Hypot(dx, dy)
	ux, uy := 1.0, 0.0
	if d > 0 {
		ux = dx / d
		uy = dy / d
	}
	bx := x1 - ux*length
	by := y1 - uy*length
	px := -uy * width / 2
	py := ux * width / 2
	return [3]Vec2{
		{X: x1, Y: y1},
		{X: bx + px, Y: by + py},
		{X: bx - px, Y: by - py},
	}
}

// lastSegment returns the final segment of a flat point sequence, used to
// orient the arrow pointer.
func lastSegment(points []float64) (Segment, bool) {
	n := len(points)
	if n < 4 {
		return Segment{}, false
	}
	return Segment{X0: points[n-4], Y0: points[n-3], X1: points[n-2], Y1: points[n-1]}, true
}

// roundRectPoints outlines a rounded rectangle clockwise from the top edge.
// The radius is clamped to half the shorter side; each corner arc uses
// segments steps.
func roundRectPoints(x, y, w, h, r float64, segments int) []Vec2 {
	r = math.Max(0, math.Min(r, math.Min(w, h)/2))
	if r == 0 || segments < 1 {
		return []Vec2{{X: x, Y: y}, {X: x + w, Y: y}, {X: x + w, Y: y + h}, {X: x, Y: y + h}}
	}
	corners := [4]struct {
		cx, cy, start float64
	}{
		{x + w - r, y + r, -math.Pi / 2}, // top-right
		{x + w - r, y + h - r, 0},        // bottom-right
		{x + r, y + h - r, math.Pi / 2},  // bottom-left
		{x + r, y + r, math.Pi},          // top-left
	}
	pts := make([]Vec2, 0, 4*(segments+1))
	for _, c := range corners {
		for i := 0; i <= segments; i++ {
			a := c.start + float64(i)/float64(segments)*math.Pi/2
			pts = append(pts, Vec2{X: c.cx + r*math.Cos(a), Y: c.cy + r*math.Sin(a)})
		}
	}
	return pts
}
