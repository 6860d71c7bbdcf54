package core

import "math"

// IsClosed 首尾点在 Epsilon 内重合即视为闭合环
func IsClosed(points []Point) bool {
	if len(points) < 2 {
		return false
	}

	return points[0].Equal(points[len(points)-1], Epsilon)
}

// Distinct 去掉闭合环末尾重复的首点
func Distinct(points []Point) []Point {
	if IsClosed(points) {
		return points[:len(points)-1]
	}

	return points
}

// SignedArea 鞋带公式计算有向面积，逆时针为正
func SignedArea(ring []Point) float64 {
	ring = Distinct(ring)
	if len(ring) < 3 {
		return 0
	}

	area := 0.0
	n := len(ring)
	for i := 0; i < n; i++ {
		j := (i + 1) % n
		area += ring[i].X * ring[j].Y
		area -= ring[j].X * ring[i].Y
	}

	return area / 2
}

// Centroid 顶点平均值(闭合环不重复计算首点)
func Centroid(points []Point) Point {
	points = Distinct(points)
	if len(points) == 0 {
		return Point{}
	}

	var sumX, sumY float64
	for _, p := range points {
		sumX += p.X
		sumY += p.Y
	}

	return Point{X: sumX / float64(len(points)), Y: sumY / float64(len(points))}
}

// Bounds 计算点集包围盒
func Bounds(points []Point) BBox {
	if len(points) == 0 {
		return BBox{}
	}

	miX, miY := math.MaxFloat64, math.MaxFloat64
	maX, maY := -math.MaxFloat64, -math.MaxFloat64
	for _, p := range points {
		miX = math.Min(miX, p.X)
		miY = math.Min(miY, p.Y)
		maX = math.Max(maX, p.X)
		maY = math.Max(maY, p.Y)
	}

	return BBox{Min: Point{X: miX, Y: miY}, Max: Point{X: maX, Y: maY}}
}

// Length 折线总长
func Length(points []Point) float64 {
	total := 0.0
	for i := 1; i < len(points); i++ {
		total += points[i-1].Distance(points[i])
	}

	return total
}
