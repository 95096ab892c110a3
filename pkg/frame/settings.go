package frame

import (
	"fmt"
	"image/color"

	"github.com/shouni/go-storeshot-kit/pkg/render"
)

// ShadowSettings はベゼル外周のドロップシャドウのパラメータです。
type ShadowSettings struct {
	Offset  int     `yaml:"offset"`  // 右下方向へのオフセット (px)
	Blur    float64 `yaml:"blur"`    // ガウスぼかしのシグマ
	Opacity float64 `yaml:"opacity"` // 0.0〜1.0
}

// IndicatorSettings はホームインジケーター（画面下部のピル）の形状です。
type IndicatorSettings struct {
	Width  float64 `yaml:"width"`  // ピルの幅 (px)
	Height float64 `yaml:"height"` // ピルの高さ (px)
	Bottom float64 `yaml:"bottom"` // フレーム下端からの距離 (px)
	Color  string  `yaml:"color"`
}

// Settings は 1 回のフレーム合成の幾何設定です。呼び出しごとに不変で、
// デフォルト値 → YAML 設定 → CLI フラグの順に上書きして確定します。
type Settings struct {
	// ImageBorderRadius はスクリーンショット自体の角丸半径です。
	// 0 の場合は角を丸めずそのまま合成します。
	ImageBorderRadius float64 `yaml:"image_border_radius"`
	// FrameBorderRadius はベゼル外周の角丸半径です。
	FrameBorderRadius float64 `yaml:"frame_border_radius"`

	// EdgeMargin が正の場合、上下左右すべての余白としてオフセットより優先されます。
	EdgeMargin int `yaml:"edge_margin"`
	OffsetLeft int `yaml:"offset_left"`
	OffsetTop  int `yaml:"offset_top"`

	Shadow        ShadowSettings    `yaml:"shadow"`
	HomeIndicator IndicatorSettings `yaml:"home_indicator"`

	// 画面ベッド（スクリーンショットの下敷き）の縦グラデーション
	BedTopColor    string `yaml:"bed_top_color"`
	BedBottomColor string `yaml:"bed_bottom_color"`

	// ベゼル本体の縦グラデーションとハイライトリム
	BezelTopColor    string  `yaml:"bezel_top_color"`
	BezelBottomColor string  `yaml:"bezel_bottom_color"`
	RimColor         string  `yaml:"rim_color"`
	RimWidth         float64 `yaml:"rim_width"`
}

// DefaultSettings は推奨されるデフォルト設定を返すヘルパー関数です。
func DefaultSettings() Settings {
	return Settings{
		ImageBorderRadius: 60,
		FrameBorderRadius: 90,
		OffsetLeft:        30,
		OffsetTop:         30,
		Shadow: ShadowSettings{
			Offset:  8,
			Blur:    12,
			Opacity: 0.45,
		},
		HomeIndicator: IndicatorSettings{
			Width:  320,
			Height: 12,
			Bottom: 16,
			Color:  "#e8e8e8",
		},
		BedTopColor:      "#3a3a3c",
		BedBottomColor:   "#1c1c1e",
		BezelTopColor:    "#4a4a4c",
		BezelBottomColor: "#0f0f10",
		RimColor:         "#ffffff",
		RimWidth:         3,
	}
}

// Margins は横・縦の余白を返します。EdgeMargin が設定されていれば
// 左右・上下オフセットの両方を差し置いて採用されるのだ。
func (s Settings) Margins() (int, int) {
	if s.EdgeMargin > 0 {
		return s.EdgeMargin, s.EdgeMargin
	}
	return s.OffsetLeft, s.OffsetTop
}

// palette は検証済みのフレーム描画色の一式です。
type palette struct {
	bedTop, bedBottom     color.NRGBA
	bezelTop, bezelBottom color.NRGBA
	rim, indicator        color.NRGBA
}

// Validate は設定中のすべての色指定を検証します。色は YAML 設定ファイル経由で
// ユーザーから渡されるため、不正な値は描画を始める前の設定エラーとして返すのだ。
func (s Settings) Validate() error {
	_, err := s.resolvePalette()
	return err
}

// resolvePalette は色指定をまとめてパースします。エラーには YAML のキー名を
// 含めて、設定ファイルのどの項目を直せばよいか分かるようにします。
func (s Settings) resolvePalette() (palette, error) {
	var p palette
	for _, c := range []struct {
		key  string
		spec string
		dst  *color.NRGBA
	}{
		{"bed_top_color", s.BedTopColor, &p.bedTop},
		{"bed_bottom_color", s.BedBottomColor, &p.bedBottom},
		{"bezel_top_color", s.BezelTopColor, &p.bezelTop},
		{"bezel_bottom_color", s.BezelBottomColor, &p.bezelBottom},
		{"rim_color", s.RimColor, &p.rim},
		{"home_indicator.color", s.HomeIndicator.Color, &p.indicator},
	} {
		parsed, err := render.ParseHexColor(c.spec)
		if err != nil {
			return p, fmt.Errorf("frame: %s: %w", c.key, err)
		}
		*c.dst = parsed
	}
	return p, nil
}
