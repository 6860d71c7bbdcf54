package dxf

import (
	"regexp"
	"strconv"
	"strings"

	"github.com/zooyer/wallframe/core"
)

var (
	reFormat = regexp.MustCompile(`\\[A-Z].*?;`)
	reNumber = regexp.MustCompile(`[0-9.]+`)
)

type Dimension struct {
	BaseEntity
	DimType           int        // 组码 70 (区分标注类型)
	StyleName         string     // 组码 3 (标注样式名称，用于关联 TABLES)
	ActualMeasurement float64    // 组码 42
	Text              string     // 组码 1
	Angle             float64    // 组码 50
	TextMidPoint      core.Point // 组码 11
	DefPoint          core.Point // 组码 10 (标注线起点)
	MeasureStart      core.Point // 组码 13 (被测量的起点)
	MeasureEnd        core.Point // 组码 14 (被测量的终点)
}

func init() {
	Register("DIMENSION", func() Entity {
		return &Dimension{BaseEntity: BaseEntity{TypeName: "DIMENSION"}}
	})
}

func (d *Dimension) Parse(scanner *Scanner) error {
	for {
		tag := scanner.LastTag
		switch tag.Code {
		case 8:
			d.LayerName = tag.AsString()
		case 3:
			d.StyleName = strings.ToUpper(tag.AsString())
		case 1:
			d.Text = tag.AsString()
		case 42:
			d.ActualMeasurement = tag.AsFloat()
		case 50:
			d.Angle = tag.AsFloat()
		case 10:
			d.DefPoint.X = tag.AsFloat()
		case 20:
			d.DefPoint.Y = tag.AsFloat()
		case 11:
			d.TextMidPoint.X = tag.AsFloat()
		case 21:
			d.TextMidPoint.Y = tag.AsFloat()
		case 13:
			d.MeasureStart.X = tag.AsFloat()
		case 23:
			d.MeasureStart.Y = tag.AsFloat()
		case 14:
			d.MeasureEnd.X = tag.AsFloat()
		case 24:
			d.MeasureEnd.Y = tag.AsFloat()
		case 70:
			// 只需要低 3 位来判定类型
			d.DimType = tag.AsInt() & 0x07
		}
		if !scanner.Next() || scanner.LastTag.Code == 0 {
			break
		}
	}
	return scanner.Err()
}

func (d *Dimension) BBox() core.BBox {
	return core.Bounds([]core.Point{d.DefPoint, d.TextMidPoint, d.MeasureStart, d.MeasureEnd})
}

// Linear 转角/对齐标注才有可用的两个测量点
func (d *Dimension) Linear() bool {
	return d.DimType == 0 || d.DimType == 1
}

// Overridden 标注文字被手动覆盖
func (d *Dimension) Overridden() bool {
	return d.Text != "" && !strings.Contains(d.Text, "<>")
}

// CleanValue 从覆盖文字中提取数值
func (d *Dimension) CleanValue() float64 {
	cleanText := reFormat.ReplaceAllString(d.Text, "")
	if match := reNumber.FindString(cleanText); match != "" {
		parsed, _ := strconv.ParseFloat(match, 64)
		return parsed
	}
	return d.ActualMeasurement
}
