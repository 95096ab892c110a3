// Package frame は生のスクリーンショットを合成デバイスベゼル（角丸・影・
// ホームインジケーター）で包むフレーム合成ステージです。パイプラインの葉であり、
// 他ステージへの依存を持ちません。
package frame

import (
	"context"
	"image"
	"image/color"
	"image/draw"

	"github.com/disintegration/imaging"
	"github.com/fogleman/gg"

	"github.com/shouni/go-storeshot-kit/pkg/domain"
	"github.com/shouni/go-storeshot-kit/pkg/render"
)

// Framer は 1 枚のスクリーンショットをベゼル付き画像へ変換します。
// 設定は呼び出しごとに不変で、同じ入力と設定からは常に同じ出力が得られます。
type Framer struct {
	svc      *render.Service
	settings Settings
	palette  palette
}

// NewFramer はラスターサービスと確定済みの設定を注入して Framer を生成します。
// 色指定は構築時に一度だけ検証し、不正な値は設定エラーとして返します。
func NewFramer(svc *render.Service, settings Settings) (*Framer, error) {
	pal, err := settings.resolvePalette()
	if err != nil {
		return nil, err
	}
	return &Framer{svc: svc, settings: settings, palette: pal}, nil
}

// FrameFile は入力ファイルを読み込み、フレーム合成して出力パスへ保存します。
// 読めない入力はパス名入りのエラーとして返し、バッチ側で 1 件の失敗として扱われます。
func (f *Framer) FrameFile(ctx context.Context, inPath, outPath string, device domain.Device) error {
	src, err := f.svc.Load(ctx, inPath)
	if err != nil {
		return err
	}
	framed := f.Frame(src, device)
	return f.svc.SavePNG(ctx, outPath, framed)
}

// Frame はスクリーンショットをベゼルで包んだ画像を返します。
// 出力キャンバスは常に (幅+2×余白, 高さ+2×余白) ちょうどになります。
func (f *Framer) Frame(src image.Image, device domain.Device) *image.NRGBA {
	s := f.settings
	b := src.Bounds()
	w, h := b.Dx(), b.Dy()
	marginX, marginY := s.Margins()
	canvasW, canvasH := w+2*marginX, h+2*marginY

	// 1. 画面ベッド: スクリーンショットと同じ角丸の下敷きグラデーション。
	//    角丸で欠けた縁から背景が透けないようにするための最下層なのだ。
	canvas := f.drawBed(canvasW, canvasH, marginX, marginY, w, h)

	// 2. スクリーンショット本体。角丸半径が指定されていればマスクで角を落とす。
	shot := src
	if s.ImageBorderRadius > 0 {
		shot = roundCorners(src, s.ImageBorderRadius)
	}
	canvas = imaging.Overlay(canvas, shot, image.Pt(marginX, marginY), 1.0)

	// 3. ベゼル層は最後に重ねる。影のにじみが画面の縁に掛かるのを許しつつ、
	//    画面の平坦部はマスクで必ず透過させているのだ。
	bezel := f.drawBezel(canvasW, canvasH, marginX, marginY, w, h, device)
	canvas = imaging.Overlay(canvas, bezel, image.Pt(0, 0), 1.0)

	return canvas
}

// drawBed は画面領域に敷く縦グラデーションの角丸矩形レイヤーを描きます。
func (f *Framer) drawBed(canvasW, canvasH, marginX, marginY, w, h int) *image.NRGBA {
	s := f.settings
	dc := gg.NewContext(canvasW, canvasH)

	grad := gg.NewLinearGradient(0, float64(marginY), 0, float64(marginY+h))
	grad.AddColorStop(0, f.palette.bedTop)
	grad.AddColorStop(1, f.palette.bedBottom)
	dc.SetFillStyle(grad)
	dc.DrawRoundedRectangle(float64(marginX), float64(marginY), float64(w), float64(h), s.ImageBorderRadius)
	dc.Fill()

	return imaging.Clone(dc.Image())
}

// drawBezel はベゼル層（影 + グラデーション本体 + リム + ホームインジケーター）を
// 組み立てます。影と本体は画面領域をくり抜いた上で、リムとピルをその上に描きます。
func (f *Framer) drawBezel(canvasW, canvasH, marginX, marginY, w, h int, device domain.Device) *image.NRGBA {
	s := f.settings
	fw, fh := float64(canvasW), float64(canvasH)

	layer := imaging.New(canvasW, canvasH, color.NRGBA{})

	// 影: ベゼル外形の黒いシルエットをぼかし、右下へオフセットして敷く
	if s.Shadow.Opacity > 0 {
		sil := gg.NewContext(canvasW, canvasH)
		sil.SetRGBA(0, 0, 0, s.Shadow.Opacity)
		sil.DrawRoundedRectangle(0, 0, fw, fh, s.FrameBorderRadius)
		sil.Fill()
		shadow := imaging.Blur(sil.Image(), s.Shadow.Blur)
		layer = imaging.Overlay(layer, shadow, image.Pt(s.Shadow.Offset, s.Shadow.Offset), 1.0)
	}

	// 本体: 縦グラデーションの角丸矩形
	body := gg.NewContext(canvasW, canvasH)
	grad := gg.NewLinearGradient(0, 0, 0, fh)
	grad.AddColorStop(0, f.palette.bezelTop)
	grad.AddColorStop(1, f.palette.bezelBottom)
	body.SetFillStyle(grad)
	body.DrawRoundedRectangle(0, 0, fw, fh, s.FrameBorderRadius)
	body.Fill()
	layer = imaging.Overlay(layer, body.Image(), image.Pt(0, 0), 1.0)

	// 画面領域のくり抜き: ベゼルのピクセルがスクリーンショットへ重ならない不変条件
	inv := invertedScreenMask(canvasW, canvasH, marginX, marginY, w, h, s.ImageBorderRadius)
	punched := image.NewNRGBA(image.Rect(0, 0, canvasW, canvasH))
	draw.DrawMask(punched, punched.Bounds(), layer, image.Point{}, inv, image.Point{}, draw.Over)

	// リムとホームインジケーターはくり抜きの影響を受けない最前面の要素なのだ
	top := gg.NewContextForImage(punched)
	if s.RimWidth > 0 {
		rim := f.palette.rim
		top.SetRGBA255(int(rim.R), int(rim.G), int(rim.B), 56) // 控えめなハイライト
		top.SetLineWidth(s.RimWidth)
		top.DrawRoundedRectangle(s.RimWidth/2, s.RimWidth/2, fw-s.RimWidth, fh-s.RimWidth, s.FrameBorderRadius)
		top.Stroke()
	}
	if device.HasHomeIndicator() && s.HomeIndicator.Width > 0 {
		ind := s.HomeIndicator
		top.SetColor(f.palette.indicator)
		top.DrawRoundedRectangle((fw-ind.Width)/2, fh-ind.Bottom-ind.Height, ind.Width, ind.Height, ind.Height/2)
		top.Fill()
	}

	return imaging.Clone(top.Image())
}

// roundCorners は destination-in 合成でスクリーンショットの角を丸めます。
// マスクが不透明な場所のピクセルだけが残ります。
func roundCorners(src image.Image, radius float64) *image.NRGBA {
	b := src.Bounds()
	w, h := b.Dx(), b.Dy()

	mdc := gg.NewContext(w, h)
	mdc.SetRGB(1, 1, 1)
	mdc.DrawRoundedRectangle(0, 0, float64(w), float64(h), radius)
	mdc.Fill()
	mask := mdc.AsMask()

	out := image.NewNRGBA(image.Rect(0, 0, w, h))
	draw.DrawMask(out, out.Bounds(), src, b.Min, mask, image.Point{}, draw.Over)
	return out
}

// invertedScreenMask は画面領域（角丸矩形）の外側だけを残す反転アルファマスクを返します。
func invertedScreenMask(canvasW, canvasH, marginX, marginY, w, h int, radius float64) *image.Alpha {
	mdc := gg.NewContext(canvasW, canvasH)
	mdc.SetRGB(1, 1, 1)
	mdc.DrawRoundedRectangle(float64(marginX), float64(marginY), float64(w), float64(h), radius)
	mdc.Fill()
	mask := mdc.AsMask()

	for i := range mask.Pix {
		mask.Pix[i] = 0xff - mask.Pix[i]
	}
	return mask
}
