// Package wallframe 由建物外周折线生成分层墙体线框。
//
// Document 是不可变的规划状态：外周、边属性、建筑参数、墙体参数与比例系数。
// 所有修改操作返回新的 Document，接收者保持不变。
package wallframe

import (
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/zooyer/wallframe/config"
	"github.com/zooyer/wallframe/core"
	"github.com/zooyer/wallframe/footprint"
	"github.com/zooyer/wallframe/offset"
	"github.com/zooyer/wallframe/scale"
	"github.com/zooyer/wallframe/wall"
)

var (
	ErrEdgeIndex     = errors.New("wallframe: edge index out of range")
	ErrInvalidScale  = errors.New("wallframe: scale factor must be positive")
	ErrUnknownPreset = errors.New("wallframe: unknown scale preset")
)

type Document struct {
	id         uuid.UUID
	footprint  footprint.Footprint
	edges      footprint.Edges
	building   wall.BuildingConfig
	wall       wall.WallConfig
	scale      scale.Factor
	calibrator scale.Calibrator
	miter      offset.MiterPolicy
	palette    wall.Palette
}

// New 缺省参数的空文档，比例未设置
func New() Document {
	return NewFromConfig(config.Default())
}

// NewFromConfig 以配置初始化，配置中的比例(若有)直接生效
func NewFromConfig(cfg config.Config) Document {
	d := Document{
		id:       uuid.New(),
		building: cfg.Building,
		wall:     cfg.Wall,
		miter:    cfg.Miter,
		palette:  cfg.Palette,
	}
	if f, ok := cfg.Scale.Factor(); ok {
		d.scale = f
	}

	return d
}

func (d Document) ID() uuid.UUID { return d.id }

func (d Document) Points() []core.Point { return d.footprint.Points() }

func (d Document) Footprint() footprint.Footprint { return d.footprint }

func (d Document) Edges() footprint.Edges { return d.edges }

func (d Document) Building() wall.BuildingConfig { return d.building }

func (d Document) Wall() wall.WallConfig { return d.wall }

// Scale 比例系数，未标定时为 0
func (d Document) Scale() scale.Factor { return d.scale }

func (d Document) Calibrator() scale.Calibrator { return d.calibrator }

// EdgeAttribute 边 i 的有效楼层范围
func (d Document) EdgeAttribute(edge int) (footprint.EdgeAttribute, error) {
	if err := d.checkEdge(edge); err != nil {
		return footprint.EdgeAttribute{}, err
	}

	return d.edges.Resolve(edge, d.building.TotalFloors), nil
}

// Stats 外周包围盒、周长与面积(图纸单位)
func (d Document) Stats() footprint.Stats {
	return d.footprint.Stats()
}

func (d Document) checkEdge(edge int) error {
	if edge < 0 || edge >= d.footprint.EdgeCount() {
		return fmt.Errorf("%w: %d (edges: %d)", ErrEdgeIndex, edge, d.footprint.EdgeCount())
	}

	return nil
}

// AddVertex 追加外周顶点
func (d Document) AddVertex(p core.Point) Document {
	d.footprint = d.footprint.Add(p)
	return d
}

// UndoLastVertex 删除最后一个顶点，并丢弃已不存在的边的属性
func (d Document) UndoLastVertex() Document {
	d.footprint = d.footprint.Undo()
	d.edges = d.edges.Truncate(d.footprint.EdgeCount())
	return d
}

// Finish 结束绘制
func (d Document) Finish() Document {
	d.footprint = d.footprint.Finish()
	return d
}

// Clear 清空外周与边属性，比例与参数保留
func (d Document) Clear() Document {
	d.footprint = d.footprint.Clear()
	d.edges = footprint.Edges{}
	return d
}

// ReplaceFootprint 换入导入或识别得到的整条外周
func (d Document) ReplaceFootprint(points []core.Point) Document {
	d.footprint = d.footprint.Replace(points)
	d.edges = d.edges.Truncate(d.footprint.EdgeCount())
	return d
}

// SetEdgeAttribute 写入边属性，非法范围按 edited 自动修正
func (d Document) SetEdgeAttribute(edge int, attr footprint.EdgeAttribute, edited footprint.Field) (Document, error) {
	if err := d.checkEdge(edge); err != nil {
		return d, err
	}

	d.edges = d.edges.Set(edge, attr, edited)
	return d, nil
}

// SetEdgeFloor 只修改边的起始层或结束层
func (d Document) SetEdgeFloor(edge int, field footprint.Field, floor int) (Document, error) {
	if err := d.checkEdge(edge); err != nil {
		return d, err
	}

	d.edges = d.edges.SetFloor(edge, field, floor, d.building.TotalFloors)
	return d, nil
}

// ResetEdgeAttribute 恢复为全部楼层
func (d Document) ResetEdgeAttribute(edge int) (Document, error) {
	if err := d.checkEdge(edge); err != nil {
		return d, err
	}

	d.edges = d.edges.Reset(edge)
	return d, nil
}

// SetBuilding 校验后替换建筑参数。
// 已存的边属性不改写，超出新总层数的部分在 Resolve 时夹紧
func (d Document) SetBuilding(building wall.BuildingConfig) (Document, error) {
	if err := config.Validate(building); err != nil {
		return d, err
	}

	d.building = building
	return d, nil
}

// SetWallConfig 校验后替换墙体参数
func (d Document) SetWallConfig(cfg wall.WallConfig) (Document, error) {
	if err := config.Validate(cfg); err != nil {
		return d, err
	}

	d.wall = cfg
	return d, nil
}

// SetScale 直接设置比例系数
func (d Document) SetScale(f scale.Factor) (Document, error) {
	if !f.Valid() {
		return d, fmt.Errorf("%w: %v", ErrInvalidScale, float64(f))
	}

	d.scale = f
	return d, nil
}

// SetScaleFromRatio 按 1:ratio 设置比例
func (d Document) SetScaleFromRatio(ratio float64) (Document, error) {
	f, err := scale.FromRatio(ratio)
	if err != nil {
		return d, err
	}

	return d.SetScale(f)
}

// SetScaleFromPreset 按预设标签(如 "1:100")设置比例
func (d Document) SetScaleFromPreset(label string) (Document, error) {
	for _, p := range scale.Presets {
		if p.Label == label {
			return d.SetScale(p.Factor())
		}
	}

	return d, fmt.Errorf("%w: %q", ErrUnknownPreset, label)
}

// AddCalibrationPoint 选取标定点，最多保留最近两个
func (d Document) AddCalibrationPoint(p core.Point) Document {
	d.calibrator = d.calibrator.AddPoint(p)
	return d
}

// ConfirmRealDistance 以两标定点的实际距离(毫米)确定比例，失败时文档不变
func (d Document) ConfirmRealDistance(mm float64) (Document, error) {
	f, calibrator, err := d.calibrator.Confirm(mm)
	if err != nil {
		return d, err
	}

	d.scale, d.calibrator = f, calibrator
	return d, nil
}

// ConfirmRealDistanceText 同 ConfirmRealDistance，输入为用户文本
func (d Document) ConfirmRealDistanceText(text string) (Document, error) {
	mm, err := scale.ParseDistance(text)
	if err != nil {
		return d, err
	}

	return d.ConfirmRealDistance(mm)
}

// CalibrateFromMeasurement 用图纸标注线直接标定
func (d Document) CalibrateFromMeasurement(start, end core.Point, mm float64) (Document, error) {
	f, err := scale.FromMeasurement(start, end, mm)
	if err != nil {
		return d, err
	}

	d.scale, d.calibrator = f, scale.Calibrator{}
	return d, nil
}

// CancelCalibration 放弃进行中的标定，已有比例不变
func (d Document) CancelCalibration() Document {
	d.calibrator = d.calibrator.Cancel()
	return d
}

// Input 生成器输入快照
func (d Document) Input() wall.Input {
	return wall.Input{
		Points:   d.footprint.Points(),
		Edges:    d.edges,
		Building: d.building,
		Wall:     d.wall,
		Scale:    d.scale,
		Miter:    d.miter,
		Palette:  d.palette,
	}
}

// Geometry 当前文档的墙体线框
func (d Document) Geometry() wall.Geometry {
	return wall.Generate(d.Input())
}
