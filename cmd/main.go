package main

import (
	"errors"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/ncruces/zenity"
	"github.com/zooyer/golib/xos"
	"github.com/zooyer/wallframe"
	"github.com/zooyer/wallframe/config"
	"github.com/zooyer/wallframe/core"
	"github.com/zooyer/wallframe/dxf"
	"github.com/zooyer/wallframe/metrics"
	"github.com/zooyer/wallframe/wall"
)

var (
	titleStyle = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("#3b82f6"))
	labelStyle = lipgloss.NewStyle().Width(12).Foreground(lipgloss.Color("#64748b"))
	okStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("#22c55e"))
	errStyle   = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("#ef4444"))
)

var logger = slog.New(slog.NewTextHandler(os.Stderr, nil))

func init() {
	if strings.HasPrefix(filepath.Base(os.Args[0]), "___go_build_") {
		os.Args = append(os.Args, "cmd/testdata/外周图纸.dxf")
	}

	if len(os.Args) >= 2 {
		return
	}

	// 未拖入文件时弹出选择框
	filename, err := zenity.SelectFile(
		zenity.Title("选择建物外周 DXF 图纸"),
		zenity.FileFilters{{Name: "DXF 图纸", Patterns: []string{"*.dxf"}, CaseFold: true}},
	)
	if err != nil {
		fmt.Println("请把DXF文件拖入该程序上执行！")
		xos.PauseExit()
		os.Exit(1)
	}
	os.Args = append(os.Args, filename)
}

// loadConfig 第二个参数为 YAML 配置，缺省时用默认值
func loadConfig() (config.Config, error) {
	if len(os.Args) < 3 {
		return config.Default(), nil
	}

	return config.Load(os.Args[2])
}

// calibrate 配置未给比例时：优先用图纸标注，其次询问首条边的实际长度，都不行则按 1 图纸单位 = 1mm
func calibrate(d wallframe.Document, doc *dxf.Document, cfg config.Config) wallframe.Document {
	if d.Scale().Valid() {
		return d
	}

	if cfg.DXF.Calibrate {
		for _, m := range doc.Measurements(cfg.DXF.DimLayer) {
			next, err := d.CalibrateFromMeasurement(m.Start, m.End, m.Value)
			if err != nil {
				logger.Warn("skip dimension", "value", m.Value, "error", err)
				continue
			}
			logger.Info("calibrated from dimension", "value", m.Value, "px_per_mm", float64(next.Scale()))
			return next
		}
	}

	points := d.Points()
	if len(points) >= 2 {
		d = d.AddCalibrationPoint(points[0]).AddCalibrationPoint(points[1])
		text, err := zenity.Entry(
			fmt.Sprintf("第 1 条边图纸长度 %.2f，请输入实际长度(毫米)：", d.Calibrator().PixelDistance()),
			zenity.Title("比例标定"),
		)
		if err == nil {
			next, err := d.ConfirmRealDistanceText(text)
			if err == nil {
				return next
			}
			logger.Warn("invalid real distance", "text", text, "error", err)
		} else if !errors.Is(err, zenity.ErrCanceled) {
			logger.Warn("entry dialog unavailable", "error", err)
		}
		d = d.CancelCalibration()
	}

	d, _ = d.SetScale(1)
	logger.Warn("no scale given, assuming drawing units are millimetres")

	return d
}

// reportMetrics 输出本次运行收集到的指标
func reportMetrics(logger *slog.Logger, registry *metrics.Registry) {
	families, err := registry.Gatherer().Gather()
	if err != nil {
		logger.Warn("gather metrics", "error", err)
		return
	}

	for _, mf := range families {
		logger.Info("metric", "name", mf.GetName(), "series", len(mf.GetMetric()))
	}
}

func row(label string, value any) string {
	return labelStyle.Render(label) + fmt.Sprint(value)
}

func main() {
	defer xos.PauseExit()

	cfg, err := loadConfig()
	if err != nil {
		fmt.Println(errStyle.Render("配置错误: " + err.Error()))
		return
	}

	doc, err := dxf.Open(os.Args[1])
	if err != nil {
		panic(err)
	}

	// 1. 提取外周：取面积最大的一条
	outlines := doc.Outlines(cfg.DXF.Layer)
	if len(outlines) == 0 {
		fmt.Println(errStyle.Render(fmt.Sprintf("图层 %q 上没有找到外周线", cfg.DXF.Layer)))
		return
	}
	logger.Info("outlines found", "layer", cfg.DXF.Layer, "count", len(outlines))

	points := cfg.Snap.Snapper().ApplyAll(outlines[0])
	logger.Info("footprint", "points", len(points), "closed", core.IsClosed(points))

	// 2. 建立规划文档并标定比例
	d := wallframe.NewFromConfig(cfg).ReplaceFootprint(points)
	d = calibrate(d, doc, cfg)

	// 3. 生成墙体线框
	var (
		registry = metrics.NewRegistry()
		memo     = wall.NewMemo(registry)
		geometry = memo.Generate(d.Input())
	)
	if geometry.Empty() {
		fmt.Println(errStyle.Render("外周不足以生成墙体(至少 3 个点)"))
		return
	}

	reportMetrics(logger, registry)

	// 4. 打印汇总
	var (
		stats    = d.Stats()
		factor   = float64(d.Scale())
		lo, hi   = geometry.Bounds()
		building = d.Building()
	)
	fmt.Println(titleStyle.Render("墙体线框 " + d.ID().String()))
	fmt.Println(row("顶点", d.Footprint().Len()))
	fmt.Println(row("闭合", renderBool(d.Footprint().Closed())))
	fmt.Println(row("比例", fmt.Sprintf("%.4f px/mm", factor)))
	fmt.Println(row("周长", fmt.Sprintf("%.0f mm", stats.Perimeter/factor)))
	fmt.Println(row("面积", fmt.Sprintf("%.2f m²", stats.Area/factor/factor/1e6)))
	fmt.Println(row("楼层", fmt.Sprintf("%d × %.0f mm + 屋顶 %.0f mm", building.TotalFloors, building.FloorHeight, building.RoofHeight)))
	fmt.Println(row("墙体", fmt.Sprintf("%s %.0f mm", d.Wall().Mode, d.Wall().Thickness)))
	fmt.Println(row("线段", len(geometry.Segments)))
	fmt.Println(row("面片", len(geometry.Quads)))
	fmt.Println(row("范围", fmt.Sprintf("%.2f × %.2f × %.2f m", hi.X-lo.X, hi.Z-lo.Z, hi.Y-lo.Y)))
	fmt.Println()

	// 5. 写入各边楼层表
	const header = "边,长度(mm),起始层,结束层,墙高(mm)\n"
	var filename = strings.TrimSuffix(os.Args[1], filepath.Ext(os.Args[1])) + ".csv"
	if err = os.WriteFile(filename, []byte(header), 0644); err != nil {
		panic(err)
	}

	for edge := 0; edge < d.Footprint().EdgeCount(); edge++ {
		attr, err := d.EdgeAttribute(edge)
		if err != nil {
			panic(err)
		}

		var (
			length = core.Length(points[edge:edge+2]) / factor
			height = float64(attr.Floors())*building.FloorHeight + building.RoofHeight
		)

		var line = fmt.Sprintf("%d,%.0f,%d,%d,%.0f\n", edge+1, length, attr.StartFloor, attr.EndFloor, height)
		if err = xos.AppendFile(filename, []byte(line), 0644); err != nil {
			panic(err)
		}
	}

	fmt.Println(okStyle.Render("写入文件: " + filename))
}

func renderBool(b bool) string {
	if b {
		return "✅"
	}

	return "❌"
}
