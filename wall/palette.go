package wall

// Palette 楼层配色
type Palette struct {
	Floors  []Color `yaml:"floors" validate:"omitempty,dive,hexcolor"`
	Neutral Color   `yaml:"neutral" validate:"omitempty,hexcolor"`
	Opacity float64 `yaml:"opacity" validate:"gte=0,lte=1"`
}

var DefaultPalette = Palette{
	Floors: []Color{
		"#3b82f6",
		"#22c55e",
		"#f59e0b",
		"#ef4444",
		"#a855f7",
		"#06b6d4",
	},
	Neutral: "#64748b",
	Opacity: 0.15,
}

// Floor 第 floor 层(从 1 开始)的颜色，超出后循环
func (p Palette) Floor(floor int) Color {
	if len(p.Floors) == 0 {
		return p.Neutral
	}

	i := (floor - 1) % len(p.Floors)
	if i < 0 {
		i += len(p.Floors)
	}

	return p.Floors[i]
}

func (p Palette) orDefault() Palette {
	if len(p.Floors) == 0 && p.Neutral == "" && p.Opacity == 0 {
		return DefaultPalette
	}

	return p
}
