package config

import (
	"errors"
	"fmt"
	"os"

	"github.com/go-playground/validator/v10"
	"github.com/zooyer/wallframe/offset"
	"github.com/zooyer/wallframe/scale"
	"github.com/zooyer/wallframe/snap"
	"github.com/zooyer/wallframe/wall"
	"gopkg.in/yaml.v3"
)

var validate = validator.New()

// ErrInvalid 配置校验失败
var ErrInvalid = errors.New("config: invalid")

// ScaleConfig 图纸比例，PxPerMM 优先于 Ratio
type ScaleConfig struct {
	Ratio   float64 `yaml:"ratio" validate:"omitempty,gt=0"`
	PxPerMM float64 `yaml:"px_per_mm" validate:"omitempty,gt=0"`
}

// Factor 未配置时 ok 为 false
func (s ScaleConfig) Factor() (scale.Factor, bool) {
	if s.PxPerMM > 0 {
		return scale.Factor(s.PxPerMM), true
	}
	if f, err := scale.FromRatio(s.Ratio); err == nil {
		return f, true
	}

	return 0, false
}

// SnapConfig 吸附参数，单位为图纸坐标
type SnapConfig struct {
	Grid           float64 `yaml:"grid" validate:"gte=0"`
	OrthoTolerance float64 `yaml:"ortho_tolerance" validate:"gte=0,lt=45"`
	CloseRadius    float64 `yaml:"close_radius" validate:"gte=0"`
}

func (s SnapConfig) Snapper() snap.Snapper {
	return snap.Snapper{
		Grid:           snap.Grid{Size: s.Grid},
		OrthoTolerance: s.OrthoTolerance,
		CloseRadius:    s.CloseRadius,
	}
}

// DXFConfig 从 DXF 读取外周时使用的图层
type DXFConfig struct {
	Layer     string `yaml:"layer"`
	DimLayer  string `yaml:"dim_layer"`
	Calibrate bool   `yaml:"calibrate"` // 用第一条标注自动标定
}

type Config struct {
	Building wall.BuildingConfig `yaml:"building"`
	Wall     wall.WallConfig     `yaml:"wall"`
	Scale    ScaleConfig         `yaml:"scale"`
	Miter    offset.MiterPolicy  `yaml:"miter"`
	Palette  wall.Palette        `yaml:"palette"`
	Snap     SnapConfig          `yaml:"snap"`
	DXF      DXFConfig           `yaml:"dxf"`
}

// Default 未配置项的缺省值
func Default() Config {
	return Config{
		Building: wall.DefaultBuilding,
		Wall:     wall.DefaultWall,
		Miter:    offset.DefaultMiterPolicy,
		Palette:  wall.DefaultPalette,
	}
}

// Load 读取 YAML 配置文件
func Load(filename string) (Config, error) {
	data, err := os.ReadFile(filename)
	if err != nil {
		return Config{}, err
	}

	return Parse(data)
}

// Parse 在缺省值之上解析 YAML 并校验
func Parse(data []byte) (Config, error) {
	cfg := Default()
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return Config{}, fmt.Errorf("config: parse: %w", err)
	}
	if err := Validate(cfg); err != nil {
		return Config{}, err
	}

	return cfg, nil
}

// Validate 按 validate 标签校验任意配置结构体
func Validate(v any) error {
	err := validate.Struct(v)
	if err == nil {
		return nil
	}

	var fields validator.ValidationErrors
	if !errors.As(err, &fields) {
		return err
	}

	// 只返回第一个错误
	e := fields[0]
	switch e.Tag() {
	case "required", "required_if":
		return fmt.Errorf("%w: %s is required", ErrInvalid, e.Namespace())
	case "gt":
		return fmt.Errorf("%w: %s must be greater than %s (got %v)", ErrInvalid, e.Namespace(), e.Param(), e.Value())
	case "gte", "min":
		return fmt.Errorf("%w: %s must be at least %s (got %v)", ErrInvalid, e.Namespace(), e.Param(), e.Value())
	case "lt", "lte", "max":
		return fmt.Errorf("%w: %s must be below %s (got %v)", ErrInvalid, e.Namespace(), e.Param(), e.Value())
	case "oneof":
		return fmt.Errorf("%w: %s must be one of [%s] (got %v)", ErrInvalid, e.Namespace(), e.Param(), e.Value())
	default:
		return fmt.Errorf("%w: %s failed %s", ErrInvalid, e.Namespace(), e.Tag())
	}
}
