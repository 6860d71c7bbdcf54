package footprint

import (
	"maps"
	"slices"
)

// EdgeAttribute 边上墙体所在楼层范围(含两端)
type EdgeAttribute struct {
	StartFloor int `yaml:"start_floor"`
	EndFloor   int `yaml:"end_floor"`
}

// Field 标识刚被编辑的字段，用于冲突时决定修正哪一端
type Field int

const (
	StartFloor Field = iota
	EndFloor
)

// FullHeight 缺省属性：全部楼层
func FullHeight(totalFloors int) EdgeAttribute {
	return EdgeAttribute{StartFloor: 1, EndFloor: max(totalFloors, 1)}
}

// Normalize 修正非法范围，从不拒绝：
// 起始层高于结束层时，编辑起始层则抬高结束层，编辑结束层则降低起始层。
func (a EdgeAttribute) Normalize(edited Field) EdgeAttribute {
	a.StartFloor = max(a.StartFloor, 1)
	a.EndFloor = max(a.EndFloor, 1)
	if a.StartFloor > a.EndFloor {
		if edited == StartFloor {
			a.EndFloor = a.StartFloor
		} else {
			a.StartFloor = a.EndFloor
		}
	}

	return a
}

// Floors 楼层数
func (a EdgeAttribute) Floors() int {
	return a.EndFloor - a.StartFloor + 1
}

// Edges 稀疏的边属性表，未设置的边取 FullHeight
type Edges struct {
	attrs map[int]EdgeAttribute
}

// Get 返回显式设置的属性
func (e Edges) Get(edge int) (EdgeAttribute, bool) {
	a, ok := e.attrs[edge]
	return a, ok
}

// Len 显式设置的条目数
func (e Edges) Len() int {
	return len(e.attrs)
}

// Indexes 已设置的边序号(升序)
func (e Edges) Indexes() []int {
	return slices.Sorted(maps.Keys(e.attrs))
}

// Resolve 取边属性并夹紧到 [1, totalFloors]
func (e Edges) Resolve(edge, totalFloors int) EdgeAttribute {
	totalFloors = max(totalFloors, 1)

	a, ok := e.attrs[edge]
	if !ok {
		return FullHeight(totalFloors)
	}

	a.StartFloor = min(max(a.StartFloor, 1), totalFloors)
	a.EndFloor = min(max(a.EndFloor, a.StartFloor), totalFloors)

	return a
}

// Set 写入属性，edited 为刚编辑的字段
func (e Edges) Set(edge int, attr EdgeAttribute, edited Field) Edges {
	attrs := e.clone()
	attrs[edge] = attr.Normalize(edited)

	return Edges{attrs: attrs}
}

// SetFloor 只修改一个字段，未设置的边以 FullHeight 为基础
func (e Edges) SetFloor(edge int, field Field, floor, totalFloors int) Edges {
	a, ok := e.attrs[edge]
	if !ok {
		a = FullHeight(totalFloors)
	}

	if field == StartFloor {
		a.StartFloor = floor
	} else {
		a.EndFloor = floor
	}

	return e.Set(edge, a, field)
}

// Reset 恢复为全部楼层
func (e Edges) Reset(edge int) Edges {
	if _, ok := e.attrs[edge]; !ok {
		return e
	}

	attrs := e.clone()
	delete(attrs, edge)

	return Edges{attrs: attrs}
}

// Truncate 删除序号 >= count 的条目
func (e Edges) Truncate(count int) Edges {
	attrs := e.clone()
	for edge := range attrs {
		if edge >= count || edge < 0 {
			delete(attrs, edge)
		}
	}

	return Edges{attrs: attrs}
}

func (e Edges) clone() map[int]EdgeAttribute {
	attrs := make(map[int]EdgeAttribute, len(e.attrs)+1)
	maps.Copy(attrs, e.attrs)

	return attrs
}
