package wall

import (
	"github.com/zooyer/wallframe/core"
	"github.com/zooyer/wallframe/offset"
)

// 高度差低于该值(米)的楼层段不输出
const minSpan = 1e-9

// span 单个楼层段的竖向范围(米)
type span struct {
	bottom, top float64
	eave        float64 // 名义层顶标高，仅 hasEave 时有效
	hasEave     bool
}

// Generate 由外周、边属性、建物/墙体参数和比例生成分层线框。
// 点数少于 3 或比例无效时返回空结果。
func Generate(in Input) Geometry {
	if len(in.Points) < 3 || !in.Scale.Valid() || in.Building.FloorHeight <= 0 {
		return Geometry{}
	}

	var (
		palette    = in.Palette.orDefault()
		base       = Project(in.Points, float64(in.Scale))
		total      = max(in.Building.TotalFloors, 1)
		height     = in.Building.FloorHeight / 1000
		roof       = in.Building.RoofHeight / 1000
		centerline = in.Wall.Mode == Centerline && in.Wall.Thickness > 0
		outer      []core.Point
		inner      []core.Point
	)

	if centerline {
		policy := in.Miter
		if policy == (offset.MiterPolicy{}) {
			policy = offset.DefaultMiterPolicy
		}
		half := in.Wall.Thickness / 2 / 1000
		outer = offset.Offset(base, half, offset.Outer, offset.WithMiterPolicy(policy))
		inner = offset.Offset(base, half, offset.Inner, offset.WithMiterPolicy(policy))
	}

	var g Geometry
	for i := 0; i < len(base)-1; i++ {
		attr := in.Edges.Resolve(i, total)
		for f := attr.StartFloor; f <= attr.EndFloor; f++ {
			s := floorSpan(f, attr.EndFloor, height, roof)
			if s.top-s.bottom <= minSpan {
				continue
			}

			e := emitter{geometry: &g, palette: palette, edge: i, floor: f, span: s}
			e.quad(base[i], base[i+1])
			if centerline {
				e.face(outer[i], outer[i+1])
				e.face(inner[i], inner[i+1])
				e.connectors(outer[i], outer[i+1], inner[i], inner[i+1])
			} else {
				e.face(base[i], base[i+1])
			}
		}
	}

	return g
}

// Project 图纸坐标平移到重心并换算为场景米：1 / (scale × 1000)
func Project(points []core.Point, pxPerMM float64) []core.Point {
	var (
		center = core.Centroid(points)
		k      = 1 / (pxPerMM * 1000)
		out    = make([]core.Point, len(points))
	)

	for i, p := range points {
		out[i] = p.Sub(center).Scale(k)
	}

	return out
}

func floorSpan(floor, endFloor int, height, roof float64) span {
	s := span{
		bottom: float64(floor-1) * height,
		top:    float64(floor) * height,
	}
	if floor == endFloor {
		s.top += roof
		if roof > 0 {
			s.eave, s.hasEave = float64(floor)*height, true
		}
	}

	return s
}

type emitter struct {
	geometry *Geometry
	palette  Palette
	edge     int
	floor    int
	span     span
}

// at 平面点 (x, z) 提升到标高 y
func at(p core.Point, y float64) core.Point3D {
	return core.Point3D{X: p.X, Y: y, Z: p.Y}
}

func (e emitter) segment(p0, p1 core.Point3D, color Color, kind Kind) {
	e.geometry.Segments = append(e.geometry.Segments, Segment{
		P0:    p0,
		P1:    p1,
		Color: color,
		Kind:  kind,
		Edge:  e.edge,
		Floor: e.floor,
	})
}

func (e emitter) quad(p1, p2 core.Point) {
	lo, hi := e.span.bottom, e.span.top
	e.geometry.Quads = append(e.geometry.Quads, Quad{
		Corners: [4]core.Point3D{at(p1, lo), at(p2, lo), at(p2, hi), at(p1, hi)},
		Color:   e.palette.Floor(e.floor),
		Opacity: e.palette.Opacity,
		Edge:    e.edge,
		Floor:   e.floor,
	})
}

// face 一个墙面上的竖边、顶边、底边和檐口线
func (e emitter) face(p1, p2 core.Point) {
	var (
		lo, hi  = e.span.bottom, e.span.top
		color   = e.palette.Floor(e.floor)
		neutral = e.palette.Neutral
	)

	e.segment(at(p1, lo), at(p1, hi), color, Vertical)
	e.segment(at(p2, lo), at(p2, hi), color, Vertical)
	e.segment(at(p1, hi), at(p2, hi), color, Top)
	e.segment(at(p1, lo), at(p2, lo), neutral, Bottom)
	if e.span.hasEave {
		e.segment(at(p1, e.span.eave), at(p2, e.span.eave), neutral, Eave)
	}
}

// connectors 外墙面到内墙面的四个角连接：左上、右上、左下、右下
func (e emitter) connectors(o1, o2, i1, i2 core.Point) {
	lo, hi := e.span.bottom, e.span.top
	neutral := e.palette.Neutral

	e.segment(at(o1, hi), at(i1, hi), neutral, Connector)
	e.segment(at(o2, hi), at(i2, hi), neutral, Connector)
	e.segment(at(o1, lo), at(i1, lo), neutral, Connector)
	e.segment(at(o2, lo), at(i2, lo), neutral, Connector)
}
