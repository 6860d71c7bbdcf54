package dxf

import "github.com/zooyer/wallframe/core"

type LWPolyline struct {
	BaseEntity
	Vertices []core.Point
	Closed   bool // 组码 70 第 1 位
}

func init() {
	Register("LWPOLYLINE", func() Entity { return &LWPolyline{BaseEntity: BaseEntity{TypeName: "LWPOLYLINE"}} })
}

func (l *LWPolyline) Parse(s *Scanner) error {
	var x float64
	for {
		t := s.LastTag
		switch t.Code {
		case 8:
			l.LayerName = t.AsString()
		case 70:
			l.Closed = t.AsInt()&1 == 1
		case 10:
			x = t.AsFloat()
		case 20:
			l.Vertices = append(l.Vertices, core.Point{X: x, Y: t.AsFloat()})
		}
		if !s.Next() || s.LastTag.Code == 0 {
			break
		}
	}
	return s.Err()
}

// Points 闭合多段线在末尾补上首点
func (l *LWPolyline) Points() []core.Point {
	points := append([]core.Point(nil), l.Vertices...)
	if l.Closed && len(points) > 2 && !core.IsClosed(points) {
		points = append(points, points[0])
	}
	return points
}

func (l *LWPolyline) BBox() core.BBox {
	return core.Bounds(l.Vertices)
}
