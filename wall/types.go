package wall

import (
	"math"

	"github.com/zooyer/wallframe/core"
	"github.com/zooyer/wallframe/footprint"
	"github.com/zooyer/wallframe/offset"
	"github.com/zooyer/wallframe/scale"
)

// BuildingConfig 建物竖向参数，单位毫米
type BuildingConfig struct {
	FloorHeight float64 `yaml:"floor_height" validate:"gt=0"`
	TotalFloors int     `yaml:"total_floors" validate:"min=1"`
	RoofHeight  float64 `yaml:"roof_height" validate:"gte=0"`
}

// DefaultBuilding 层高 2.8m，2 层，屋顶 1m
var DefaultBuilding = BuildingConfig{FloorHeight: 2800, TotalFloors: 2, RoofHeight: 1000}

// DimensionMode 图纸线代表墙的哪个位置
type DimensionMode string

const (
	Actual     DimensionMode = "actual"     // 画线即外墙面
	Centerline DimensionMode = "centerline" // 画线即墙厚中心
)

// WallConfig 墙体参数，Thickness 单位毫米，仅 Centerline 模式必填
type WallConfig struct {
	Mode      DimensionMode `yaml:"mode" validate:"oneof=actual centerline"`
	Thickness float64       `yaml:"thickness" validate:"gte=0,required_if=Mode centerline"`
}

var DefaultWall = WallConfig{Mode: Actual}

// Kind 线框边类别
type Kind int

const (
	Vertical  Kind = iota // 竖向边
	Top                   // 楼层顶边(楼层色)
	Bottom                // 楼层底边(中性色)
	Eave                  // 檐口线(中性色)
	Connector             // 内外墙面连接(中性色)
)

func (k Kind) String() string {
	switch k {
	case Vertical:
		return "vertical"
	case Top:
		return "top"
	case Bottom:
		return "bottom"
	case Eave:
		return "eave"
	case Connector:
		return "connector"
	}

	return "unknown"
}

// Color 十六进制颜色，如 #64748b
type Color string

// Segment 带颜色的线框边，场景坐标(米)
type Segment struct {
	P0, P1 core.Point3D
	Color  Color
	Kind   Kind
	Edge   int // 来源边序号
	Floor  int
}

// Quad 半透明填充面，顶点顺序：起点底、终点底、终点顶、起点顶
type Quad struct {
	Corners [4]core.Point3D
	Color   Color
	Opacity float64
	Edge    int
	Floor   int
}

// Geometry 生成结果快照，每次输入变化重新生成
type Geometry struct {
	Segments []Segment
	Quads    []Quad
}

func (g Geometry) Empty() bool {
	return len(g.Segments) == 0 && len(g.Quads) == 0
}

// Bounds 所有图元的三维包围盒
func (g Geometry) Bounds() (lo, hi core.Point3D) {
	lo = core.Point3D{X: math.MaxFloat64, Y: math.MaxFloat64, Z: math.MaxFloat64}
	hi = core.Point3D{X: -math.MaxFloat64, Y: -math.MaxFloat64, Z: -math.MaxFloat64}

	expand := func(p core.Point3D) {
		lo = core.Point3D{X: math.Min(lo.X, p.X), Y: math.Min(lo.Y, p.Y), Z: math.Min(lo.Z, p.Z)}
		hi = core.Point3D{X: math.Max(hi.X, p.X), Y: math.Max(hi.Y, p.Y), Z: math.Max(hi.Z, p.Z)}
	}
	for _, s := range g.Segments {
		expand(s.P0)
		expand(s.P1)
	}
	for _, q := range g.Quads {
		for _, c := range q.Corners {
			expand(c)
		}
	}

	if g.Empty() {
		return core.Point3D{}, core.Point3D{}
	}

	return lo, hi
}

// Top 最高点标高(米)
func (g Geometry) Top() float64 {
	_, hi := g.Bounds()
	return hi.Y
}

// Input 生成器的全部输入
type Input struct {
	Points   []core.Point
	Edges    footprint.Edges
	Building BuildingConfig
	Wall     WallConfig
	Scale    scale.Factor
	Miter    offset.MiterPolicy // 零值取 offset.DefaultMiterPolicy
	Palette  Palette            // 零值取 DefaultPalette
}
