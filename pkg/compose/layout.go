package compose

import (
	"fmt"
	"math"

	"github.com/shouni/go-storeshot-kit/pkg/render"
)

// Style はタイトル帯の文字スタイルです。
type Style struct {
	FontSize     float64 `yaml:"font_size"`
	Color        string  `yaml:"color"`
	ShadowColor  string  `yaml:"shadow_color"`
	ShadowOffset int     `yaml:"shadow_offset"` // 右下方向 (px)。負値も絶対値で帯の高さに効く
	TitleSpacing int     `yaml:"title_spacing"` // タイトル帯と画像列の間隔 (px)
}

// DefaultStyle は推奨されるデフォルトのタイトルスタイルを返します。
func DefaultStyle() Style {
	return Style{
		FontSize:     96,
		Color:        "#ffffff",
		ShadowColor:  "#000000",
		ShadowOffset: 4,
		TitleSpacing: 40,
	}
}

// Validate はタイトル色と影色の指定を検証します。描画時にも同じパースが
// 走りますが、設定段階で弾けばバッチを始める前に設定エラーにできるのだ。
func (s Style) Validate() error {
	if _, err := render.ParseHexColor(s.Color); err != nil {
		return fmt.Errorf("compose: color: %w", err)
	}
	if _, err := render.ParseHexColor(s.ShadowColor); err != nil {
		return fmt.Errorf("compose: shadow_color: %w", err)
	}
	return nil
}

// pad はタイトル上下の内側余白です。影のはみ出し分も高さに織り込みます。
func (s Style) pad() float64 {
	off := s.ShadowOffset
	if off < 0 {
		off = -off
	}
	return math.Ceil(s.FontSize*0.2) + float64(off)
}

// lineHeight は 1 行分の高さです。
func (s Style) lineHeight() float64 {
	return s.FontSize * 1.2
}

// TitleHeight は実際に描画する行数に対するタイトルレイヤーの高さ (px) を返します。
func (s Style) TitleHeight(lines int) int {
	return int(math.Ceil(s.lineHeight()*float64(lines) + 2*s.pad()))
}

// Layout は 1 回の結合処理で使い回すキャンバス座標系です。
// 画像セットと設定から一度だけ導出し、以後の配置計算はすべてここを参照します。
type Layout struct {
	CanvasW int
	CanvasH int
	// ImageW / ImageH は先頭枠の「拡縮前」の寸法です。配置の割り当て単位には
	// 常にこちらを使うことで、拡縮率を変えても間隔の見た目が揺れないのだ。
	ImageW    int
	ImageH    int
	TitleBand int // タイトル帯の高さ (TitleSpacing 込み)
	Quarter   int // CanvasW / 4
	Spacing   int
}

// NewLayout は背景寸法・拡縮前の画像寸法・スタイルからレイアウトを導出します。
// キャンバスは背景より小さくならず、4 枚 + 5 間隔より小さくもなりません。
func NewLayout(bgW, bgH, imageW, imageH, spacing, titleLines int, style Style) Layout {
	band := style.TitleHeight(titleLines) + style.TitleSpacing

	canvasW := 4*imageW + 5*spacing
	if bgW > canvasW {
		canvasW = bgW
	}
	canvasH := imageH + band + 2*spacing
	if bgH > canvasH {
		canvasH = bgH
	}

	return Layout{
		CanvasW:   canvasW,
		CanvasH:   canvasH,
		ImageW:    imageW,
		ImageH:    imageH,
		TitleBand: band,
		Quarter:   canvasW / 4,
		Spacing:   spacing,
	}
}

// SlotLeft は幅 width の要素を枠 slot (0 始まり) に水平配置したときの左端を返します。
// centerInQuarters ならキャンバスを 4 等分した各区画の中央へ、そうでなければ
// 拡縮前の画像幅を割り当て単位に、左から固定間隔で並べた位置の中央へ置きます。
func (l Layout) SlotLeft(slot, width int, centerInQuarters bool) int {
	if centerInQuarters {
		return slot*l.Quarter + (l.Quarter-width)/2
	}
	alloc := l.Spacing + slot*(l.ImageW+l.Spacing)
	return alloc + (l.ImageW-width)/2
}

// TitleTop は高さ titleH のタイトルレイヤーをタイトル帯の中で垂直センタリング
// した上端を返します。帯より高いレイヤーでも上端は帯の先頭から下がりません。
func (l Layout) TitleTop(titleH int) int {
	offset := int(math.Round(float64(l.TitleBand-titleH) / 2))
	if offset < 0 {
		offset = 0
	}
	return l.Spacing + offset
}

// ImageTop は画像列の上端（タイトル帯の直下）を返します。
func (l Layout) ImageTop() int {
	return l.Spacing + l.TitleBand
}
