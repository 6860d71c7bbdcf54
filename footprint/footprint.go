package footprint

import (
	"math"

	"github.com/zooyer/wallframe/core"
)

// Footprint 建物外周折线，值类型，所有操作返回新值
type Footprint struct {
	points  []core.Point
	drawing bool
}

// New 由已有点序构造(导入/识别结果)
func New(points []core.Point) Footprint {
	return Footprint{points: clone(points)}
}

// Points 返回点序副本
func (f Footprint) Points() []core.Point {
	return clone(f.points)
}

func (f Footprint) Len() int {
	return len(f.points)
}

// Drawing 是否正在绘制中
func (f Footprint) Drawing() bool {
	return f.drawing
}

// Closed 首尾重合即闭合
func (f Footprint) Closed() bool {
	return core.IsClosed(f.points)
}

// EdgeCount 边数，边 i 连接顶点 i 与 i+1
func (f Footprint) EdgeCount() int {
	return max(len(f.points)-1, 0)
}

// Add 追加顶点并进入绘制状态
func (f Footprint) Add(p core.Point) Footprint {
	return Footprint{points: append(clone(f.points), p), drawing: true}
}

// Undo 删除最后一个顶点
func (f Footprint) Undo() Footprint {
	if len(f.points) == 0 {
		return f
	}

	return Footprint{points: clone(f.points[:len(f.points)-1]), drawing: f.drawing}
}

// Finish 结束绘制，点序不变
func (f Footprint) Finish() Footprint {
	return Footprint{points: f.points, drawing: false}
}

// Clear 清空
func (f Footprint) Clear() Footprint {
	return Footprint{}
}

// Replace 整体替换点序
func (f Footprint) Replace(points []core.Point) Footprint {
	return Footprint{points: clone(points)}
}

// Stats 外周统计
type Stats struct {
	Bounds    core.BBox
	Perimeter float64 // 图纸单位
	Area      float64 // 图纸单位²，不闭合时为 0
}

func (f Footprint) Stats() Stats {
	s := Stats{
		Bounds:    core.Bounds(core.Distinct(f.points)),
		Perimeter: core.Length(f.points),
	}
	if f.Closed() {
		s.Area = math.Abs(core.SignedArea(f.points))
	}

	return s
}

func clone(points []core.Point) []core.Point {
	if len(points) == 0 {
		return nil
	}

	return append([]core.Point(nil), points...)
}
