package offset

import (
	"math"
	"slices"
	"testing"

	"github.com/leanovate/gopter"
	"github.com/leanovate/gopter/gen"
	"github.com/leanovate/gopter/prop"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/zooyer/wallframe/core"
)

const tolerance = 1e-9

func square(s float64) []core.Point {
	return []core.Point{{X: 0, Y: 0}, {X: s, Y: 0}, {X: s, Y: s}, {X: 0, Y: s}, {X: 0, Y: 0}}
}

func rect(w, h float64) []core.Point {
	return []core.Point{{X: 0, Y: 0}, {X: w, Y: 0}, {X: w, Y: h}, {X: 0, Y: h}, {X: 0, Y: 0}}
}

// polygon 正多边形，首尾闭合
func polygon(n int, r, phase float64) []core.Point {
	points := make([]core.Point, 0, n+1)
	for i := 0; i < n; i++ {
		a := phase + 2*math.Pi*float64(i)/float64(n)
		points = append(points, core.Point{X: r * math.Cos(a), Y: r * math.Sin(a)})
	}

	return append(points, points[0])
}

func reversed(points []core.Point) []core.Point {
	out := slices.Clone(points)
	slices.Reverse(out)
	return out
}

func near(a, b []core.Point, epsilon float64) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if !a[i].Equal(b[i], epsilon) {
			return false
		}
	}

	return true
}

func TestOffset_Square(t *testing.T) {
	const s, d = 10.0, 1.5

	out := Offset(square(s), d, Outer)
	require.Len(t, out, 5)

	want := []core.Point{{X: -d, Y: -d}, {X: s + d, Y: -d}, {X: s + d, Y: s + d}, {X: -d, Y: s + d}, {X: -d, Y: -d}}
	assert.True(t, near(out, want, tolerance), "got %v", out)

	// 每条外边到原边的垂直距离为 d，角点沿对角线偏移 d√2
	assert.InDelta(t, d, -out[0].Y, tolerance)
	assert.InDelta(t, d, out[1].X-s, tolerance)
	for i := 0; i < 4; i++ {
		assert.InDelta(t, d*math.Sqrt2, out[i].Distance(square(s)[i]), tolerance)
	}
	assert.Equal(t, out[0], out[4])
}

func TestOffset_Inner(t *testing.T) {
	out := Offset(square(10), 2, Inner)
	want := []core.Point{{X: 2, Y: 2}, {X: 8, Y: 2}, {X: 8, Y: 8}, {X: 2, Y: 8}, {X: 2, Y: 2}}
	assert.True(t, near(out, want, tolerance), "got %v", out)
}

func TestOffset_WindingInvariance(t *testing.T) {
	ccw := square(10)
	cw := reversed(ccw)
	require.Negative(t, core.SignedArea(cw))

	a := Offset(ccw, 1, Outer)
	b := reversed(Offset(cw, 1, Outer))
	assert.True(t, near(a, b, tolerance), "ccw %v cw %v", a, b)
}

func TestOffset_OpenPolyline(t *testing.T) {
	line := []core.Point{{X: 0, Y: 0}, {X: 10, Y: 0}, {X: 10, Y: 10}}
	out := Offset(line, 1, Outer)
	require.Len(t, out, 3)

	// 端点只用相邻边法线
	assert.True(t, out[0].Equal(core.Point{X: 0, Y: 1}, tolerance), "start %v", out[0])
	assert.True(t, out[2].Equal(core.Point{X: 9, Y: 10}, tolerance), "end %v", out[2])
	// 中间点使用斜接
	assert.True(t, out[1].Equal(core.Point{X: 9, Y: 1}, tolerance), "corner %v", out[1])

	// 两点折线整体平移
	seg := Offset([]core.Point{{X: 0, Y: 0}, {X: 0, Y: 5}}, 2, Inner)
	assert.True(t, near(seg, []core.Point{{X: 2, Y: 0}, {X: 2, Y: 5}}, tolerance), "got %v", seg)
}

func TestOffset_Reversal(t *testing.T) {
	// 折返点平分线为零，退化为单边法线
	line := []core.Point{{X: 0, Y: 0}, {X: 10, Y: 0}, {X: 0, Y: 0}}
	out := Offset(line, 1, Outer)
	require.Len(t, out, 3)

	assert.True(t, out[1].Equal(core.Point{X: 10, Y: 1}, tolerance), "got %v", out[1])
	for _, p := range out {
		assert.False(t, math.IsNaN(p.X) || math.IsNaN(p.Y))
	}
}

func TestOffset_SharpCornerClamp(t *testing.T) {
	line := []core.Point{{X: 0, Y: 0}, {X: 10, Y: 0}, {X: 0, Y: 1}}
	const d = 1.0

	out := Offset(line, d, Outer)
	assert.InDelta(t, 2*d, out[1].Distance(line[1]), tolerance)

	// 放宽限制后按真实斜接长度计算
	cosHalf := math.Sqrt((1 - 10/math.Sqrt(101)) / 2)
	out = Offset(line, d, Outer, WithMiterPolicy(MiterPolicy{MinCosHalf: 0.01, Limit: 2}))
	assert.InDelta(t, d/cosHalf, out[1].Distance(line[1]), 1e-6)
}

func TestOffset_Degenerate(t *testing.T) {
	assert.Empty(t, Offset(nil, 1, Outer))

	single := []core.Point{{X: 3, Y: 4}}
	assert.Equal(t, single, Offset(single, 1, Outer))

	// 重复点不产生 NaN
	dup := []core.Point{{X: 0, Y: 0}, {X: 0, Y: 0}, {X: 10, Y: 0}}
	out := Offset(dup, 1, Outer)
	require.Len(t, out, 3)
	for _, p := range out {
		assert.False(t, math.IsNaN(p.X) || math.IsNaN(p.Y), "got %v", out)
	}
	assert.True(t, out[1].Equal(core.Point{X: 0, Y: 1}, tolerance))
}

func TestOffset_Properties(t *testing.T) {
	parameters := gopter.DefaultTestParameters()
	parameters.MinSuccessfulTests = 200

	properties := gopter.NewProperties(parameters)

	properties.Property("outer then inner restores a convex polygon", prop.ForAll(
		func(n int, r, phase, d float64) bool {
			p := polygon(n, r, phase)
			back := Offset(Offset(p, d, Outer), d, Inner)
			return near(back, p, 1e-7)
		},
		gen.IntRange(3, 16),
		gen.Float64Range(1, 1000),
		gen.Float64Range(0, 2*math.Pi),
		gen.Float64Range(0.01, 50),
	))

	properties.Property("outer offset ignores winding", prop.ForAll(
		func(w, h, d float64) bool {
			p := rect(w, h)
			return near(Offset(p, d, Outer), reversed(Offset(reversed(p), d, Outer)), 1e-9)
		},
		gen.Float64Range(0.5, 500),
		gen.Float64Range(0.5, 500),
		gen.Float64Range(0.01, 50),
	))

	properties.Property("outer offset grows a rectangle by 2d per side", prop.ForAll(
		func(w, h, d float64) bool {
			b := core.Bounds(Offset(rect(w, h), d, Outer))
			return math.Abs(b.Width()-(w+2*d)) < 1e-9 && math.Abs(b.Height()-(h+2*d)) < 1e-9
		},
		gen.Float64Range(0.5, 500),
		gen.Float64Range(0.5, 500),
		gen.Float64Range(0.01, 50),
	))

	properties.TestingRun(t)
}
