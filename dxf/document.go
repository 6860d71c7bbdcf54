package dxf

import (
	"io"
	"os"
	"strings"
)

type DimStyle struct {
	Name      string
	Precision int     // 组码 271 DIMDEC，显示的小数位数
	Scale     float64 // 组码 40 DIMSCALE，全局比例
}

type Block struct {
	Name     string
	Entities []Entity
}

// Document 从图纸读取的块、实体与标注样式
type Document struct {
	Blocks    map[string]*Block
	Entities  []Entity
	DimStyles map[string]*DimStyle
}

// header 读取到下一个 0 组码为止，返回组码 2 的名称
func header(scanner *Scanner) (name string, ok bool) {
	for ok = scanner.Next(); ok && scanner.LastTag.Code != 0; ok = scanner.Next() {
		if scanner.LastTag.Code == 2 {
			name = strings.ToUpper(scanner.LastTag.AsString())
		}
	}
	return
}

func (d *Document) parseBlocks(scanner *Scanner) {
	var currentBlock *Block
	if !scanner.Next() {
		return
	}

	for {
		tag := scanner.LastTag
		switch {
		case tag.Is("ENDSEC"):
			return
		case tag.Is("BLOCK"):
			name, ok := header(scanner)
			currentBlock = &Block{Name: name}
			d.Blocks[name] = currentBlock
			if !ok {
				return
			}
			continue
		case tag.Is("ENDBLK"):
			currentBlock = nil
		case tag.Code == 0 && currentBlock != nil:
			if ent := CreateEntity(strings.ToUpper(tag.AsString())); ent != nil {
				ent.Parse(scanner)
				currentBlock.Entities = append(currentBlock.Entities, ent)
				if scanner.Done() {
					return
				}
				continue
			}
		}
		if !scanner.Next() {
			return
		}
	}
}

func (d *Document) parseEntities(scanner *Scanner) {
	for {
		tag := scanner.LastTag
		if tag.Is("ENDSEC") {
			break
		}
		if tag.Code == 0 {
			if ent := CreateEntity(strings.ToUpper(tag.AsString())); ent != nil {
				ent.Parse(scanner)
				d.Entities = append(d.Entities, ent)
				if scanner.Done() {
					break
				}
				continue
			}
		}
		if !scanner.Next() {
			break
		}
	}
}

func (d *Document) parseTables(scanner *Scanner) {
	for scanner.Next() {
		tag := scanner.LastTag
		if tag.Is("ENDSEC") {
			break
		}
		if tag.Is("TABLE") {
			scanner.Next()
			if strings.EqualFold(scanner.LastTag.AsString(), "DIMSTYLE") {
				d.parseDimStyles(scanner)
			}
		}
	}
}

func (d *Document) parseDimStyles(scanner *Scanner) {
	for {
		tag := scanner.LastTag
		if tag.Is("ENDTAB") {
			break
		}

		if tag.Is("DIMSTYLE") {
			style := &DimStyle{Scale: 1.0} // 默认为 1.0，防止乘法归零
			for scanner.Next() {
				t := scanner.LastTag
				if t.Code == 0 {
					break
				}
				switch t.Code {
				case 2:
					style.Name = strings.ToUpper(t.AsString())
				case 271:
					style.Precision = t.AsInt()
				case 40:
					style.Scale = t.AsFloat()
				}
			}
			if style.Name != "" {
				d.DimStyles[style.Name] = style
			}
			if scanner.Done() {
				break
			}
			continue
		}

		if !scanner.Next() {
			break
		}
	}
}

func Open(filename string) (doc *Document, err error) {
	file, err := os.Open(filename)
	if err != nil {
		return
	}

	defer func() {
		if e := file.Close(); e != nil && err == nil {
			err = e
		}
	}()

	return Load(file)
}

func Load(reader io.Reader) (doc *Document, err error) {
	var (
		scanner  = NewScanner(reader)
		document = &Document{
			Blocks:    make(map[string]*Block),
			Entities:  make([]Entity, 0, 256),
			DimStyles: make(map[string]*DimStyle),
		}
	)

	for scanner.Next() {
		if !scanner.LastTag.Is("SECTION") {
			continue
		}
		if !scanner.Next() {
			break
		}
		switch strings.ToUpper(scanner.LastTag.AsString()) {
		case "TABLES":
			document.parseTables(scanner)
		case "BLOCKS":
			document.parseBlocks(scanner)
		case "ENTITIES":
			document.parseEntities(scanner)
		}
	}

	return document, scanner.Err()
}
