package scale

import (
	"errors"
	"fmt"
	"math"
	"strconv"
	"strings"

	"github.com/zooyer/wallframe/core"
)

// ReferencePxPerMM 96 DPI 下每毫米像素数
const ReferencePxPerMM = 3.78

var (
	ErrInvalidDistance = errors.New("scale: real distance must be a positive number")
	ErrIncomplete      = errors.New("scale: two calibration points required")
	ErrInvalidRatio    = errors.New("scale: ratio must be positive")
	ErrZeroLength      = errors.New("scale: calibration points coincide")
)

// Factor 比例系数，像素/毫米
type Factor float64

// Valid 仅正的有限值有效
func (f Factor) Valid() bool {
	return f > 0 && !math.IsInf(float64(f), 0) && !math.IsNaN(float64(f))
}

// Preset 常用图纸比例
type Preset struct {
	Ratio float64
	Label string
}

var Presets = []Preset{
	{Ratio: 50, Label: "1:50"},
	{Ratio: 100, Label: "1:100"},
	{Ratio: 200, Label: "1:200"},
	{Ratio: 250, Label: "1:250"},
}

// Factor 预设比例对应的像素/毫米
func (p Preset) Factor() Factor {
	f, _ := FromRatio(p.Ratio)
	return f
}

// FromRatio 1:ratio 图纸比例换算
func FromRatio(ratio float64) (Factor, error) {
	if !(ratio > 0) || math.IsInf(ratio, 0) {
		return 0, fmt.Errorf("%w: %v", ErrInvalidRatio, ratio)
	}

	return Factor(ReferencePxPerMM / ratio), nil
}

// FromMeasurement 由图纸上一条已知实长的线段直接标定
func FromMeasurement(start, end core.Point, mm float64) (Factor, error) {
	if err := checkDistance(mm); err != nil {
		return 0, err
	}

	px := start.Distance(end)
	if px <= 0 {
		return 0, ErrZeroLength
	}

	return Factor(px / mm), nil
}

// ParseDistance 解析用户输入的实际距离(毫米)
func ParseDistance(text string) (float64, error) {
	mm, err := strconv.ParseFloat(strings.TrimSpace(text), 64)
	if err != nil {
		return 0, fmt.Errorf("%w: %q", ErrInvalidDistance, text)
	}
	if err = checkDistance(mm); err != nil {
		return 0, err
	}

	return mm, nil
}

func checkDistance(mm float64) error {
	if math.IsNaN(mm) || math.IsInf(mm, 0) || mm <= 0 {
		return fmt.Errorf("%w: %v", ErrInvalidDistance, mm)
	}

	return nil
}
