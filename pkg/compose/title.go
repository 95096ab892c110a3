package compose

import (
	"fmt"
	"image"
	"strings"
	"unicode/utf8"

	"github.com/disintegration/imaging"
	"github.com/fogleman/gg"
	"golang.org/x/image/font"
	"golang.org/x/image/font/gofont/gobold"
	"golang.org/x/image/font/opentype"

	"github.com/shouni/go-storeshot-kit/pkg/render"
)

// charWidthRatio はフォントサイズに対する平均文字幅の見積もりです。
// 折り返し判定は実測ではなくこの固定比率で行います（原典のヒューリスティック）。
const charWidthRatio = 0.6

// WrapTitle はタイトル文字列を最大 maxLines 行（1 または 2）に分割します。
//
// 明示的な改行（生の改行、またはエスケープされた `\n` の 2 文字）があれば
// それを最優先のハード分割とし、最大 2 セグメントまで採用します。
// 改行が無い場合は幅から概算した 1 行あたりの最大文字数を超えたときだけ、
// 単語を貪欲に 1 行目へ詰めて残りを 2 行目へ送ります。語を捨てたり
// 並べ替えたりはしません。
//
// maxLines が 1 の場合は折り返し自体を行いません。明示改行の 2 セグメント目は
// 破棄し、長すぎるテキストは 1 行のまま幅からはみ出すことを許容します。
func WrapTitle(text string, fontSize float64, width, maxLines int) []string {
	normalized := strings.ReplaceAll(text, `\n`, "\n")

	if strings.Contains(normalized, "\n") {
		parts := strings.SplitN(normalized, "\n", 2)
		line1 := strings.TrimSpace(parts[0])
		line2 := strings.TrimSpace(strings.ReplaceAll(parts[1], "\n", " "))
		if maxLines <= 1 || line2 == "" {
			return []string{line1}
		}
		return []string{line1, line2}
	}

	text = strings.TrimSpace(normalized)
	if maxLines <= 1 {
		return []string{text}
	}

	maxChars := int(float64(width) / (fontSize * charWidthRatio))
	if utf8.RuneCountInString(text) <= maxChars {
		return []string{text}
	}

	words := strings.Fields(text)
	var packed []string
	length := 0
	i := 0
	for ; i < len(words); i++ {
		wlen := utf8.RuneCountInString(words[i])
		add := wlen
		if len(packed) > 0 {
			add++ // 区切りのスペース分
		}
		// 先頭の 1 語は上限超過でも必ず 1 行目に置くのだ
		if len(packed) > 0 && length+add > maxChars {
			break
		}
		packed = append(packed, words[i])
		length += add
	}

	if i >= len(words) {
		return []string{strings.Join(packed, " ")}
	}
	return []string{strings.Join(packed, " "), strings.Join(words[i:], " ")}
}

// TitleRenderer はタイトルレイヤーを描画します。フォントフェイスは
// 結合処理 1 回につき 1 度だけ構築して使い回します。
type TitleRenderer struct {
	style Style
	face  font.Face
}

// NewTitleRenderer は内蔵の Go Bold フェイスでレンダラーを初期化します。
func NewTitleRenderer(style Style) (*TitleRenderer, error) {
	ft, err := opentype.Parse(gobold.TTF)
	if err != nil {
		return nil, fmt.Errorf("compose: タイトルフォントのパースに失敗しました: %w", err)
	}
	face, err := opentype.NewFace(ft, &opentype.FaceOptions{
		Size:    style.FontSize,
		DPI:     72,
		Hinting: font.HintingFull,
	})
	if err != nil {
		return nil, fmt.Errorf("compose: タイトルフォントフェイスの生成に失敗しました: %w", err)
	}
	return &TitleRenderer{style: style, face: face}, nil
}

// Render は 1 枠分のタイトルレイヤーを描画し、レイヤーとその高さを返します。
// 高さは実際に描画した行数から導出されるため、呼び出し側はタイトル帯の中で
// 正確にセンタリングできます。各行は影（オフセット分ずらした複製）を先に敷き、
// その上に本体色を width/2 基準の中央揃えで描きます。
func (r *TitleRenderer) Render(text string, width, maxLines int) (*image.NRGBA, int, error) {
	lines := WrapTitle(text, r.style.FontSize, width, maxLines)
	height := r.style.TitleHeight(len(lines))

	mainColor, err := render.ParseHexColor(r.style.Color)
	if err != nil {
		return nil, 0, err
	}
	shadowColor, err := render.ParseHexColor(r.style.ShadowColor)
	if err != nil {
		return nil, 0, err
	}

	dc := gg.NewContext(width, height)
	dc.SetFontFace(r.face)

	lineH := r.style.lineHeight()
	pad := r.style.pad()
	cx := float64(width) / 2
	off := float64(r.style.ShadowOffset)

	for i, line := range lines {
		cy := pad + lineH*float64(i) + lineH/2
		if r.style.ShadowOffset != 0 {
			dc.SetColor(shadowColor)
			dc.DrawStringAnchored(line, cx+off, cy+off, 0.5, 0.5)
		}
		dc.SetColor(mainColor)
		dc.DrawStringAnchored(line, cx, cy, 0.5, 0.5)
	}

	return imaging.Clone(dc.Image()), height, nil
}
