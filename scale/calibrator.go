package scale

import "github.com/zooyer/wallframe/core"

// Calibrator 两点标定状态，值类型，所有操作返回新值
type Calibrator struct {
	points []core.Point
}

// AddPoint 追加标定点，最多保留最近两个
func (c Calibrator) AddPoint(p core.Point) Calibrator {
	points := append(append([]core.Point(nil), c.points...), p)
	if len(points) > 2 {
		points = points[len(points)-2:]
	}

	return Calibrator{points: points}
}

// Points 当前已选标定点
func (c Calibrator) Points() []core.Point {
	return append([]core.Point(nil), c.points...)
}

// Ready 是否已有两个点
func (c Calibrator) Ready() bool {
	return len(c.points) == 2
}

// PixelDistance 两点间像素距离，不足两点时为 0
func (c Calibrator) PixelDistance() float64 {
	if !c.Ready() {
		return 0
	}

	return c.points[0].Distance(c.points[1])
}

// Confirm 输入实际距离(毫米)得到比例系数，失败时原状态不变
func (c Calibrator) Confirm(mm float64) (Factor, Calibrator, error) {
	if !c.Ready() {
		return 0, c, ErrIncomplete
	}

	f, err := FromMeasurement(c.points[0], c.points[1], mm)
	if err != nil {
		return 0, c, err
	}

	return f, Calibrator{}, nil
}

// Cancel 放弃进行中的标定
func (c Calibrator) Cancel() Calibrator {
	return Calibrator{}
}
