package dxf

import (
	"bufio"
	"fmt"
	"io"
	"strconv"
	"strings"
)

// Scanner 逐对读取组码/值
type Scanner struct {
	reader  *bufio.Reader
	LastTag Tag
	line    int
	done    bool
	err     error
}

func NewScanner(r io.Reader) *Scanner {
	return &Scanner{
		reader: bufio.NewReader(r),
	}
}

func (s *Scanner) Next() bool {
	if s.done {
		return false
	}
	if !s.next() {
		s.done = true
		return false
	}
	return true
}

// Done 输入已读完或出错
func (s *Scanner) Done() bool {
	return s.done
}

func (s *Scanner) next() bool {
	// 1. 读取 Code 行，跳过空行
	var codeStr string
	for codeStr == "" {
		codeLine, err := s.reader.ReadString('\n')
		if err != nil && (err != io.EOF || strings.TrimSpace(codeLine) == "") {
			if err != io.EOF {
				s.err = err
			}
			return false
		}
		s.line++
		codeStr = strings.TrimSpace(codeLine)
	}

	code, err := strconv.Atoi(codeStr)
	if err != nil {
		s.err = fmt.Errorf("dxf: line %d: invalid group code %q", s.line, codeStr)
		return false
	}

	// 2. 读取 Value 行
	valueLine, err := s.reader.ReadString('\n')
	if err != nil && (err != io.EOF || valueLine == "") {
		// Value 行缺失说明文件不完整
		s.err = fmt.Errorf("dxf: line %d: missing value for group code %d: %w", s.line+1, code, io.ErrUnexpectedEOF)
		return false
	}
	s.line++

	// 去掉行尾的换行符，但保留 Value 开头的空格（DXF 规范要求）
	s.LastTag = Tag{Code: code, Value: strings.TrimRight(valueLine, "\r\n")}
	return true
}

func (s *Scanner) Err() error {
	return s.err
}
