package dxf

import (
	"math"
	"sort"
	"strings"

	"github.com/zooyer/wallframe/core"
)

// 块嵌套层数上限，防止块相互引用时无限递归
const maxDepth = 16

// Measurement 一条线性标注：被测两点与标注值(mm)
type Measurement struct {
	Start, End core.Point
	Value      float64
}

// DimValue 标注显示值：有覆盖文字时取文字中的数字，否则按样式精度四舍五入
func (d *Document) DimValue(dim *Dimension) float64 {
	if dim.Overridden() {
		return dim.CleanValue()
	}

	precision := 0 // 默认取整
	if style, ok := d.DimStyles[strings.ToUpper(dim.StyleName)]; ok {
		precision = style.Precision
	}

	p := math.Pow(10, float64(precision))

	return math.Round(dim.ActualMeasurement*p) / p
}

func matchLayer(entity Entity, layer string) bool {
	return layer == "" || strings.EqualFold(entity.Layer(), layer)
}

func apply(parent *Insert, p core.Point) core.Point {
	if parent == nil {
		return p
	}
	return parent.Transform(p)
}

// walk 遍历实体，块引用展开为块内实体，parent 为累积后的插入变换
func (d *Document) walk(entity Entity, parent *Insert, depth int, visit func(Entity, *Insert)) {
	if entity == nil || depth > maxDepth {
		return
	}

	visit(entity, parent)

	insert, ok := entity.(*Insert)
	if !ok {
		return
	}

	block, exists := d.Blocks[strings.ToUpper(insert.BlockName)]
	if !exists {
		return
	}

	if parent != nil {
		insert = parent.Combine(insert)
	}

	for _, sub := range block.Entities {
		d.walk(sub, insert, depth+1, visit)
	}
}

// Measurements 图层上的线性标注，图层为空时取全部
func (d *Document) Measurements(layer string) (measurements []Measurement) {
	for _, entity := range d.Entities {
		d.walk(entity, nil, 0, func(e Entity, parent *Insert) {
			dim, ok := e.(*Dimension)
			if !ok || !dim.Linear() || !matchLayer(dim, layer) {
				return
			}

			start, end := apply(parent, dim.MeasureStart), apply(parent, dim.MeasureEnd)
			if start.Distance(end) < core.Epsilon {
				return
			}

			measurements = append(measurements, Measurement{
				Start: start,
				End:   end,
				Value: d.DimValue(dim),
			})
		})
	}

	return
}

// Outlines 图层上的外周折线：多段线直接取用，散线按端点首尾相连。
// 结果闭合的在前，同类按面积从大到小排列
func (d *Document) Outlines(layer string) [][]core.Point {
	var (
		outlines [][]core.Point
		lines    [][2]core.Point
	)

	for _, entity := range d.Entities {
		d.walk(entity, nil, 0, func(e Entity, parent *Insert) {
			if !matchLayer(e, layer) {
				return
			}

			switch e := e.(type) {
			case *LWPolyline:
				points := e.Points()
				if len(points) < 2 {
					return
				}
				for i := range points {
					points[i] = apply(parent, points[i])
				}
				outlines = append(outlines, points)
			case *Line:
				start, end := apply(parent, e.Start), apply(parent, e.End)
				if start.Distance(end) < core.Epsilon {
					return
				}
				lines = append(lines, [2]core.Point{start, end})
			}
		})
	}

	outlines = append(outlines, chain(lines)...)

	// 闭合外周优先，其次按面积
	sort.SliceStable(outlines, func(i, j int) bool {
		ci, cj := core.IsClosed(outlines[i]), core.IsClosed(outlines[j])
		if ci != cj {
			return ci
		}
		return math.Abs(core.SignedArea(outlines[i])) > math.Abs(core.SignedArea(outlines[j]))
	})

	return outlines
}

// chain 把共端点的线段连成折线，回到起点时闭合
func chain(lines [][2]core.Point) (chains [][]core.Point) {
	used := make([]bool, len(lines))

	// next 找到一端与 p 重合的未用线段，返回另一端
	next := func(p core.Point) (core.Point, bool) {
		for i, l := range lines {
			if used[i] {
				continue
			}
			switch {
			case l[0].Equal(p, core.Epsilon):
				used[i] = true
				return l[1], true
			case l[1].Equal(p, core.Epsilon):
				used[i] = true
				return l[0], true
			}
		}
		return core.Point{}, false
	}

	for i, l := range lines {
		if used[i] {
			continue
		}
		used[i] = true

		points := []core.Point{l[0], l[1]}
		for !points[len(points)-1].Equal(points[0], core.Epsilon) {
			p, ok := next(points[len(points)-1])
			if !ok {
				break
			}
			points = append(points, p)
		}

		// 未闭合时再向起点方向延伸
		if !core.IsClosed(points) {
			for {
				p, ok := next(points[0])
				if !ok {
					break
				}
				points = append([]core.Point{p}, points...)
				if core.IsClosed(points) {
					break
				}
			}
		}

		if core.IsClosed(points) {
			points[len(points)-1] = points[0]
		}
		chains = append(chains, points)
	}

	return
}
