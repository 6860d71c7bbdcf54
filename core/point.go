package core

import (
	"math"

	"github.com/zooyer/golib/xmath"
)

// Epsilon 首尾点重合判定精度(图纸坐标单位)
const Epsilon = 1e-4

// Point 图纸平面上的点(图纸像素坐标)
type Point struct {
	X, Y float64
}

// Point3D 场景坐标点，Y 轴向上，单位米
type Point3D struct {
	X, Y, Z float64
}

// BBox 代表包围盒
type BBox struct {
	Min, Max Point
}

func (p Point) Sub(q Point) Point {
	return Point{X: p.X - q.X, Y: p.Y - q.Y}
}

func (p Point) Add(q Point) Point {
	return Point{X: p.X + q.X, Y: p.Y + q.Y}
}

func (p Point) Scale(s float64) Point {
	return Point{X: p.X * s, Y: p.Y * s}
}

// Distance 两点间欧氏距离
func (p Point) Distance(q Point) float64 {
	return math.Hypot(p.X-q.X, p.Y-q.Y)
}

// Equal 在 epsilon 精度内比较两点
func (p Point) Equal(q Point, epsilon float64) bool {
	return xmath.Equal(p.X, q.X, epsilon) && xmath.Equal(p.Y, q.Y, epsilon)
}

// Width 包围盒宽度
func (b BBox) Width() float64 {
	return b.Max.X - b.Min.X
}

// Height 包围盒高度
func (b BBox) Height() float64 {
	return b.Max.Y - b.Min.Y
}

// Center 包围盒中心
func (b BBox) Center() Point {
	return Point{X: (b.Min.X + b.Max.X) / 2, Y: (b.Min.Y + b.Max.Y) / 2}
}

// Contains 判断点是否在包围盒内(含边界)
func (b BBox) Contains(p Point) bool {
	return p.X >= b.Min.X && p.X <= b.Max.X && p.Y >= b.Min.Y && p.Y <= b.Max.Y
}
