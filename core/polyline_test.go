package core

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func square(s float64) []Point {
	return []Point{{0, 0}, {s, 0}, {s, s}, {0, s}, {0, 0}}
}

func TestIsClosed(t *testing.T) {
	assert.True(t, IsClosed(square(10)))
	assert.True(t, IsClosed([]Point{{0, 0}, {1, 0}, {1, 1}, {0.00005, 0}}))
	assert.False(t, IsClosed([]Point{{0, 0}, {1, 0}, {1, 1}}))
	assert.False(t, IsClosed([]Point{{0, 0}}))
	assert.False(t, IsClosed(nil))
}

func TestSignedArea(t *testing.T) {
	ccw := square(10)
	assert.InDelta(t, 100, SignedArea(ccw), 1e-9)

	cw := []Point{{0, 0}, {0, 10}, {10, 10}, {10, 0}, {0, 0}}
	assert.InDelta(t, -100, SignedArea(cw), 1e-9)

	// 不闭合的点序同样按环计算
	assert.InDelta(t, 100, SignedArea(ccw[:4]), 1e-9)
	assert.Zero(t, SignedArea([]Point{{0, 0}, {1, 1}}))
}

func TestCentroid(t *testing.T) {
	c := Centroid(square(10))
	assert.InDelta(t, 5, c.X, 1e-9)
	assert.InDelta(t, 5, c.Y, 1e-9)

	assert.Equal(t, Point{}, Centroid(nil))
}

func TestBoundsAndLength(t *testing.T) {
	b := Bounds([]Point{{3, -1}, {-2, 4}, {0, 0}})
	assert.Equal(t, Point{X: -2, Y: -1}, b.Min)
	assert.Equal(t, Point{X: 3, Y: 4}, b.Max)
	assert.Equal(t, 5.0, b.Width())
	assert.True(t, b.Contains(Point{X: 0, Y: 0}))
	assert.False(t, b.Contains(Point{X: 4, Y: 0}))

	assert.InDelta(t, 40, Length(square(10)), 1e-9)
}
