package snap

import (
	"math"

	"github.com/zooyer/wallframe/core"
)

// Grid 网格吸附，Size <= 0 时不吸附
type Grid struct {
	Size   float64
	Origin core.Point
}

// Snap 各轴取最近网格线
func (g Grid) Snap(p core.Point) core.Point {
	if g.Size <= 0 {
		return p
	}

	return core.Point{
		X: g.Origin.X + math.Round((p.X-g.Origin.X)/g.Size)*g.Size,
		Y: g.Origin.Y + math.Round((p.Y-g.Origin.Y)/g.Size)*g.Size,
	}
}

// Ortho 线段 anchor->p 与水平/垂直方向夹角不超过 toleranceDeg 时投影到该轴
func Ortho(anchor, p core.Point, toleranceDeg float64) core.Point {
	if toleranceDeg <= 0 {
		return p
	}

	dx, dy := p.X-anchor.X, p.Y-anchor.Y
	if dx == 0 && dy == 0 {
		return p
	}

	angle := math.Atan2(math.Abs(dy), math.Abs(dx)) * 180 / math.Pi
	switch {
	case angle <= toleranceDeg:
		return core.Point{X: p.X, Y: anchor.Y}
	case 90-angle <= toleranceDeg:
		return core.Point{X: anchor.X, Y: p.Y}
	}

	return p
}

// Close 靠近首点时返回首点本身，保证闭合判定成立
func Close(first, p core.Point, radius float64) (core.Point, bool) {
	if radius > 0 && first.Distance(p) <= radius {
		return first, true
	}

	return p, false
}

// Snapper 依次执行网格、正交、闭合吸附
type Snapper struct {
	Grid           Grid
	OrthoTolerance float64 // 度
	CloseRadius    float64
}

// Apply 对即将追加到 points 末尾的新点做吸附
func (s Snapper) Apply(points []core.Point, p core.Point) core.Point {
	p = s.Grid.Snap(p)
	if len(points) == 0 {
		return p
	}

	p = Ortho(points[len(points)-1], p, s.OrthoTolerance)
	if len(points) >= 3 {
		p, _ = Close(points[0], p, s.CloseRadius)
	}

	return p
}

// ApplyAll 对整条折线逐点吸附
func (s Snapper) ApplyAll(points []core.Point) []core.Point {
	out := make([]core.Point, 0, len(points))
	for _, p := range points {
		out = append(out, s.Apply(out, p))
	}

	return out
}
