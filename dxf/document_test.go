package dxf

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/zooyer/wallframe/core"
)

// lines 组码与值逐行拼接
func lines(pairs ...string) string {
	return strings.Join(pairs, "\n") + "\n"
}

var sample = lines(
	"0", "SECTION", "2", "TABLES",
	"0", "TABLE", "2", "DIMSTYLE", "70", "1",
	"0", "DIMSTYLE", "2", "iso", "271", "1", "40", "1",
	"0", "ENDTAB",
	"0", "ENDSEC",

	"0", "SECTION", "2", "BLOCKS",
	"0", "BLOCK", "8", "0", "2", "ROOM", "70", "0", "10", "0", "20", "0",
	"0", "LWPOLYLINE", "8", "OUTLINE", "90", "4", "70", "1",
	"10", "0", "20", "0",
	"10", "1000", "20", "0",
	"10", "1000", "20", "500",
	"10", "0", "20", "500",
	"0", "ENDBLK",
	"0", "ENDSEC",

	"0", "SECTION", "2", "ENTITIES",
	"0", "INSERT", "8", "0", "2", "ROOM", "10", "100", "20", "200", "41", "2", "42", "2",
	"0", "LINE", "8", "WALL", "10", "0", "20", "0", "11", "10", "21", "0",
	"0", "LINE", "8", "WALL", "10", "10", "20", "10", "11", "10", "21", "0",
	"0", "LINE", "8", "WALL", "10", "10", "20", "10", "11", "0", "21", "0",
	"0", "DIMENSION", "8", "DIM", "3", "ISO", "70", "32", "42", "1000.04",
	"13", "0", "23", "0", "14", "378", "24", "0",
	"0", "DIMENSION", "8", "DIM", "3", "ISO", "70", "0", "1", `\A1;1200`, "42", "1199.7",
	"13", "0", "23", "0", "14", "0", "24", "450",
	"0", "ENDSEC",
	"0", "EOF",
)

func TestLoad(t *testing.T) {
	doc, err := Load(strings.NewReader(sample))
	require.NoError(t, err)

	require.Contains(t, doc.DimStyles, "ISO")
	assert.Equal(t, 1, doc.DimStyles["ISO"].Precision)
	assert.Equal(t, 1.0, doc.DimStyles["ISO"].Scale)

	require.Contains(t, doc.Blocks, "ROOM")
	require.Len(t, doc.Blocks["ROOM"].Entities, 1)
	poly, ok := doc.Blocks["ROOM"].Entities[0].(*LWPolyline)
	require.True(t, ok)
	assert.True(t, poly.Closed)
	assert.Len(t, poly.Vertices, 4)
	assert.Len(t, poly.Points(), 5)

	require.Len(t, doc.Entities, 6)
	assert.Equal(t, "INSERT", doc.Entities[0].Type())
	assert.Equal(t, "WALL", doc.Entities[1].Layer())

	dim, ok := doc.Entities[4].(*Dimension)
	require.True(t, ok)
	// 70 组码只取低 3 位
	assert.Equal(t, 0, dim.DimType)
	assert.True(t, dim.Linear())
}

func TestLoad_Truncated(t *testing.T) {
	doc, err := Load(strings.NewReader(lines("0", "SECTION", "2", "ENTITIES", "0", "LINE")))
	require.NoError(t, err)
	assert.Len(t, doc.Entities, 1)

	_, err = Load(strings.NewReader(lines("0", "SECTION", "2", "ENTITIES", "0", "LINE", "8")))
	assert.Error(t, err)
}

func TestOpen(t *testing.T) {
	filename := filepath.Join(t.TempDir(), "plan.dxf")
	require.NoError(t, os.WriteFile(filename, []byte(sample), 0644))

	doc, err := Open(filename)
	require.NoError(t, err)
	assert.Len(t, doc.Entities, 6)

	_, err = Open(filepath.Join(t.TempDir(), "missing.dxf"))
	assert.ErrorIs(t, err, os.ErrNotExist)
}

func TestDocument_Outlines(t *testing.T) {
	doc, err := Load(strings.NewReader(sample))
	require.NoError(t, err)

	// 块内多段线经插入变换：缩放 2 倍后平移
	outlines := doc.Outlines("outline")
	require.Len(t, outlines, 1)
	assert.Equal(t, []core.Point{
		{X: 100, Y: 200}, {X: 2100, Y: 200}, {X: 2100, Y: 1200}, {X: 100, Y: 1200}, {X: 100, Y: 200},
	}, outlines[0])

	// 散线首尾相连成闭合三角形
	walls := doc.Outlines("WALL")
	require.Len(t, walls, 1)
	assert.Len(t, walls[0], 4)
	assert.True(t, core.IsClosed(walls[0]))
	assert.InDelta(t, 50, abs(core.SignedArea(walls[0])), 1e-9)

	// 不限图层时按面积从大到小
	all := doc.Outlines("")
	require.Len(t, all, 2)
	assert.Equal(t, outlines[0], all[0])
}

func TestDocument_Measurements(t *testing.T) {
	doc, err := Load(strings.NewReader(sample))
	require.NoError(t, err)

	ms := doc.Measurements("DIM")
	require.Len(t, ms, 2)

	// 按样式精度保留 1 位
	assert.Equal(t, 1000.0, ms[0].Value)
	assert.Equal(t, core.Point{X: 378}, ms[0].End)

	// 覆盖文字优先
	assert.Equal(t, 1200.0, ms[1].Value)

	assert.Empty(t, doc.Measurements("OTHER"))
}

func TestChain_Open(t *testing.T) {
	chains := chain([][2]core.Point{
		{{X: 10, Y: 0}, {X: 20, Y: 0}},
		{{X: 0, Y: 0}, {X: 10, Y: 0}},
		{{X: 50, Y: 50}, {X: 60, Y: 50}},
	})

	require.Len(t, chains, 2)
	assert.Equal(t, []core.Point{{X: 0}, {X: 10}, {X: 20}}, chains[0])
	assert.Len(t, chains[1], 2)
}

func TestInsert_Combine(t *testing.T) {
	parent := &Insert{InsertionPoint: core.Point{X: 100}, Scale: core.Point{X: 2, Y: 2}, Rotation: 90}
	child := &Insert{InsertionPoint: core.Point{X: 10}, Scale: core.Point{X: 1, Y: 1}}

	combined := parent.Combine(child)
	p := combined.Transform(core.Point{X: 1})
	q := parent.Transform(child.Transform(core.Point{X: 1}))
	assert.True(t, p.Equal(q, 1e-9), "%v != %v", p, q)
}

func abs(v float64) float64 {
	if v < 0 {
		return -v
	}
	return v
}

func TestDocument_OutlinesClosedFirst(t *testing.T) {
	doc, err := Load(strings.NewReader(lines(
		"0", "SECTION", "2", "ENTITIES",
		// 未闭合的大折线，隐含的封闭面积远大于真实外周
		"0", "LWPOLYLINE", "8", "OUTLINE", "90", "3", "70", "0",
		"10", "0", "20", "0", "10", "100000", "20", "0", "10", "100000", "20", "100000",
		"0", "LWPOLYLINE", "8", "OUTLINE", "90", "4", "70", "1",
		"10", "0", "20", "0", "10", "10", "20", "0", "10", "10", "20", "10", "10", "0", "20", "10",
		"0", "ENDSEC",
	)))
	require.NoError(t, err)

	outlines := doc.Outlines("OUTLINE")
	require.Len(t, outlines, 2)
	assert.True(t, core.IsClosed(outlines[0]))
	assert.Len(t, outlines[0], 5)
	assert.False(t, core.IsClosed(outlines[1]))
}
