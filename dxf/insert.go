package dxf

import (
	"math"

	"github.com/zooyer/wallframe/core"
)

type Insert struct {
	BaseEntity
	BlockName      string
	InsertionPoint core.Point
	Scale          core.Point
	Rotation       float64
}

func init() {
	Register("INSERT", func() Entity {
		return &Insert{
			BaseEntity: BaseEntity{TypeName: "INSERT"},
			Scale:      core.Point{X: 1, Y: 1}, // 默认缩放为 1
		}
	})
}

func (i *Insert) Parse(scanner *Scanner) error {
	hasAttributes := false

	for {
		tag := scanner.LastTag
		switch tag.Code {
		case 2:
			i.BlockName = tag.AsString()
		case 8:
			i.LayerName = tag.AsString()
		case 10:
			i.InsertionPoint.X = tag.AsFloat()
		case 20:
			i.InsertionPoint.Y = tag.AsFloat()
		case 41:
			i.Scale.X = tag.AsFloat()
		case 42:
			i.Scale.Y = tag.AsFloat()
		case 50:
			i.Rotation = tag.AsFloat()
		case 66:
			hasAttributes = tag.AsInt() == 1
		}

		if !scanner.Next() || scanner.LastTag.Code == 0 {
			break
		}
	}

	// 跟随的 ATTRIB 与外周无关，跳过直到 SEQEND
	if hasAttributes {
		for !scanner.LastTag.Is("SEQEND") {
			if !scanner.Next() {
				return scanner.Err()
			}
		}
		scanner.Next() // 消耗掉 SEQEND 后的组码
	}
	return scanner.Err()
}

func (i *Insert) BBox() core.BBox {
	// 需要结合 Block 定义计算，这里先返回插入点
	return core.BBox{Min: i.InsertionPoint, Max: i.InsertionPoint}
}

// Transform 将块内局部坐标点转换到父级坐标：缩放 -> 旋转 -> 平移
func (i *Insert) Transform(p core.Point) core.Point {
	rad := i.Rotation * math.Pi / 180.0
	cos, sin := math.Cos(rad), math.Sin(rad)

	tx := p.X * i.Scale.X
	ty := p.Y * i.Scale.Y

	return core.Point{
		X: tx*cos - ty*sin + i.InsertionPoint.X,
		Y: tx*sin + ty*cos + i.InsertionPoint.Y,
	}
}

// Combine 合并嵌套块的变换，child 位于 i 所引用的块内
func (i *Insert) Combine(child *Insert) *Insert {
	return &Insert{
		BaseEntity:     child.BaseEntity,
		BlockName:      child.BlockName,
		Rotation:       i.Rotation + child.Rotation,
		Scale:          core.Point{X: i.Scale.X * child.Scale.X, Y: i.Scale.Y * child.Scale.Y},
		InsertionPoint: i.Transform(child.InsertionPoint),
	}
}
