package dxf

import (
	"io"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestScanner_Basic(t *testing.T) {
	// 模拟一个简单的 DXF 片段
	scanner := NewScanner(strings.NewReader("0\nSECTION\n2\nHEADER\n0\nENDSEC\n"))

	expected := []Tag{
		{0, "SECTION"},
		{2, "HEADER"},
		{0, "ENDSEC"},
	}

	for i, exp := range expected {
		require.True(t, scanner.Next(), "第 %d 步读取失败: %v", i, scanner.Err())
		assert.Equal(t, exp, scanner.LastTag, "第 %d 步", i)
	}

	assert.False(t, scanner.Next())
	assert.True(t, scanner.Done())
	assert.NoError(t, scanner.Err())
}

func TestScanner_WindowsLineEndings(t *testing.T) {
	scanner := NewScanner(strings.NewReader("  0\r\nLINE\r\n  8\r\n OUTLINE\r\n"))

	require.True(t, scanner.Next())
	assert.Equal(t, Tag{0, "LINE"}, scanner.LastTag)
	require.True(t, scanner.Next())
	assert.Equal(t, 8, scanner.LastTag.Code)
	// 值开头的空格保留，AsString 才去掉
	assert.Equal(t, " OUTLINE", scanner.LastTag.Value)
	assert.Equal(t, "OUTLINE", scanner.LastTag.AsString())
}

func TestScanner_InvalidCode(t *testing.T) {
	scanner := NewScanner(strings.NewReader("0\nSECTION\nabc\nHEADER\n"))

	require.True(t, scanner.Next())
	assert.False(t, scanner.Next())
	require.Error(t, scanner.Err())
	assert.Contains(t, scanner.Err().Error(), "line 3")
}

func TestScanner_MissingValue(t *testing.T) {
	scanner := NewScanner(strings.NewReader("0\nSECTION\n2\n"))

	require.True(t, scanner.Next())
	assert.False(t, scanner.Next())
	assert.ErrorIs(t, scanner.Err(), io.ErrUnexpectedEOF)
}

func TestTag(t *testing.T) {
	assert.Equal(t, 12.5, Tag{10, " 12.5"}.AsFloat())
	assert.Equal(t, 3, Tag{70, "3 "}.AsInt())
	assert.Zero(t, Tag{70, "x"}.AsInt())
	assert.True(t, Tag{0, "endsec"}.Is("ENDSEC"))
	assert.False(t, Tag{2, "ENDSEC"}.Is("ENDSEC"))
}
