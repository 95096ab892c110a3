package render

import (
	"fmt"
	"image/color"
	"strings"
)

// ParseHexColor は "#RRGGBB" または "#RGB" 形式の色指定をパースします。
// 設定ファイルや CLI フラグから渡された不正な値はエラーとして返すのだ。
func ParseHexColor(s string) (color.NRGBA, error) {
	hex := strings.TrimPrefix(strings.TrimSpace(s), "#")

	var r, g, b uint8
	switch len(hex) {
	case 6:
		if _, err := fmt.Sscanf(hex, "%02x%02x%02x", &r, &g, &b); err != nil {
			return color.NRGBA{}, fmt.Errorf("render: 色指定 '%s' をパースできませんでした: %w", s, err)
		}
	case 3:
		if _, err := fmt.Sscanf(hex, "%1x%1x%1x", &r, &g, &b); err != nil {
			return color.NRGBA{}, fmt.Errorf("render: 色指定 '%s' をパースできませんでした: %w", s, err)
		}
		r, g, b = r*17, g*17, b*17
	default:
		return color.NRGBA{}, fmt.Errorf("render: 色指定 '%s' は #RRGGBB 形式ではありません", s)
	}

	return color.NRGBA{R: r, G: g, B: b, A: 0xff}, nil
}
