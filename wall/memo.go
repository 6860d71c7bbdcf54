package wall

import (
	"bytes"
	"encoding/binary"
	"math"
	"slices"
	"sync"

	"github.com/cespare/xxhash/v2"
	"github.com/zooyer/wallframe/metrics"
)

// Memo 缓存最近一次生成结果，输入完全相同时直接返回
type Memo struct {
	mu       sync.Mutex
	key      uint64
	encoded  []byte
	valid    bool
	last     Geometry
	registry *metrics.Registry
}

// NewMemo registry 可为 nil
func NewMemo(registry *metrics.Registry) *Memo {
	return &Memo{registry: registry}
}

// Generate 同 Generate(in)，命中时不重算。返回值为副本，调用方可随意修改
func (m *Memo) Generate(in Input) Geometry {
	encoded := encode(in)
	key := xxhash.Sum64(encoded)

	m.mu.Lock()
	defer m.mu.Unlock()

	// 摘要相同后再比对完整编码，排除碰撞
	if m.valid && m.key == key && bytes.Equal(m.encoded, encoded) {
		m.registry.ObserveHit()
		return m.last.clone()
	}

	g := Generate(in)
	m.key, m.encoded, m.valid, m.last = key, encoded, true, g.clone()
	m.registry.ObserveMiss(len(g.Segments), len(g.Quads))

	return g
}

// Reset 丢弃缓存
func (m *Memo) Reset() {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.valid, m.encoded, m.last = false, nil, Geometry{}
}

func (g Geometry) clone() Geometry {
	return Geometry{Segments: slices.Clone(g.Segments), Quads: slices.Clone(g.Quads)}
}

// Digest 输入元组的 xxhash 摘要
func Digest(in Input) uint64 {
	return xxhash.Sum64(encode(in))
}

// encode 输入元组的定长二进制编码
func encode(in Input) []byte {
	var (
		buf []byte
		f   = func(v float64) { buf = binary.LittleEndian.AppendUint64(buf, math.Float64bits(v)) }
		n   = func(v int) { buf = binary.LittleEndian.AppendUint64(buf, uint64(int64(v))) }
		s   = func(v string) { n(len(v)); buf = append(buf, v...) }
	)

	n(len(in.Points))
	for _, p := range in.Points {
		f(p.X)
		f(p.Y)
	}

	edges := in.Edges.Indexes()
	n(len(edges))
	for _, i := range edges {
		a, _ := in.Edges.Get(i)
		n(i)
		n(a.StartFloor)
		n(a.EndFloor)
	}

	f(in.Building.FloorHeight)
	n(in.Building.TotalFloors)
	f(in.Building.RoofHeight)
	s(string(in.Wall.Mode))
	f(in.Wall.Thickness)
	f(float64(in.Scale))
	f(in.Miter.MinCosHalf)
	f(in.Miter.Limit)

	n(len(in.Palette.Floors))
	for _, c := range in.Palette.Floors {
		s(string(c))
	}
	s(string(in.Palette.Neutral))
	f(in.Palette.Opacity)

	return buf
}
