package offset

import (
	"math"

	"github.com/jbeda/geom"
	"github.com/zooyer/wallframe/core"
)

// Direction 偏移方向
type Direction int

const (
	Outer Direction = 1  // 远离环内部
	Inner Direction = -1 // 朝向环内部
)

func (d Direction) String() string {
	if d == Inner {
		return "inner"
	}

	return "outer"
}

// 平分线长度或边长低于该值视为退化
const degenerate = 1e-9

// MiterPolicy 尖角斜接长度限制：cos(半角) <= MinCosHalf 时斜接长度取 Limit × distance
type MiterPolicy struct {
	MinCosHalf float64 `yaml:"min_cos_half" validate:"gte=0,lt=1"`
	Limit      float64 `yaml:"limit" validate:"gt=0"`
}

var DefaultMiterPolicy = MiterPolicy{MinCosHalf: 0.1, Limit: 2}

type options struct {
	policy MiterPolicy
}

type Option func(*options)

// WithMiterPolicy 替换默认的尖角限制
func WithMiterPolicy(policy MiterPolicy) Option {
	return func(o *options) {
		o.policy = policy
	}
}

// Offset 计算折线/多边形的平行偏移(斜接)，返回点数与输入相同。
// 首尾重合时按闭合环处理，环的绕向不影响 Outer/Inner 的含义。
func Offset(points []core.Point, distance float64, dir Direction, opts ...Option) []core.Point {
	o := options{policy: DefaultMiterPolicy}
	for _, opt := range opts {
		opt(&o)
	}

	if len(points) < 2 {
		return append([]core.Point(nil), points...)
	}

	var (
		closed = core.IsClosed(points) && len(points) > 3
		pts    = points
		sign   = float64(dir)
	)

	if closed {
		pts = points[:len(points)-1]
		// 正面积环的左法线指向内部
		if core.SignedArea(pts) > 0 {
			sign = -sign
		}
	}

	n := len(pts)
	out := make([]core.Point, 0, len(points))
	for i := 0; i < n; i++ {
		var prev, next geom.Coord
		cur := coord(pts[i])

		switch {
		case closed:
			prev, next = coord(pts[(i-1+n)%n]), coord(pts[(i+1)%n])
		case i == 0:
			prev, next = cur, coord(pts[1])
		case i == n-1:
			prev, next = coord(pts[i-1]), cur
		default:
			prev, next = coord(pts[i-1]), coord(pts[i+1])
		}

		shift := vertexShift(prev, cur, next, distance, o.policy)
		out = append(out, point(cur.Plus(shift.Times(sign))))
	}

	if closed {
		out = append(out, out[0])
	}

	return out
}

// vertexShift 计算单个顶点的偏移向量(未乘方向符号)
func vertexShift(prev, cur, next geom.Coord, distance float64, policy MiterPolicy) geom.Coord {
	dir1, ok1 := unit(cur.Minus(prev))
	dir2, ok2 := unit(next.Minus(cur))

	switch {
	case !ok1 && !ok2:
		return geom.Coord{}
	case !ok1:
		return normal(dir2).Times(distance)
	case !ok2:
		return normal(dir1).Times(distance)
	}

	n1, n2 := normal(dir1), normal(dir2)
	bisector, ok := unit(n1.Plus(n2))
	if !ok {
		// 180° 折返，退化为单边法线
		return n1.Times(distance)
	}

	cosHalf := math.Sqrt((1 + dot(dir1, dir2)) / 2)
	miter := distance / cosHalf
	if cosHalf <= policy.MinCosHalf {
		miter = policy.Limit * distance
	}

	return bisector.Times(miter)
}

// normal 左法线 (-z, x)
func normal(d geom.Coord) geom.Coord {
	return geom.Coord{X: -d.Y, Y: d.X}
}

func unit(v geom.Coord) (geom.Coord, bool) {
	if v.Magnitude() < degenerate {
		return geom.Coord{}, false
	}

	return v.Unit(), true
}

func dot(a, b geom.Coord) float64 {
	return a.X*b.X + a.Y*b.Y
}

func coord(p core.Point) geom.Coord {
	return geom.Coord{X: p.X, Y: p.Y}
}

func point(c geom.Coord) core.Point {
	return core.Point{X: c.X, Y: c.Y}
}
