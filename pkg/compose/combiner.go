// Package compose はフレーム合成済みの 4 枚を背景の上に並べ、ロケール別の
// タイトル文言を載せた 1 枚のコンポジットを作る結合ステージです。
package compose

import (
	"context"
	"fmt"
	"image"
	"log/slog"
	"math"

	"github.com/disintegration/imaging"

	"github.com/shouni/go-storeshot-kit/pkg/domain"
	"github.com/shouni/go-storeshot-kit/pkg/render"
	"github.com/shouni/go-storeshot-kit/pkg/scan"
)

// Options は 1 回の結合処理（1 デバイス × 1 ロケール）の入力一式です。
type Options struct {
	BackgroundPath string
	FramedRoot     string
	OutputRoot     string
	Spacing        int
	Device         domain.Device
	Locale         string

	// Titles が nil の場合は翻訳データからロードします。
	Titles *domain.TitleSet
	Style  Style

	// CenterInQuarters はキャンバスを 4 等分した各区画の中央へ配置するモードです。
	CenterInQuarters bool

	// ScaleFactors はデバイス種別ごとにフレーム済み画像へ掛ける拡縮率です。
	// 未指定 (0) は等倍として扱います。
	ScaleFactors map[domain.Device]float64
}

// TitleProvider はロケールからタイトル文言を解決するインターフェースです。
type TitleProvider interface {
	Titles(locale string) domain.TitleSet
}

// Combiner は結合ステージの本体です。
type Combiner struct {
	svc    *render.Service
	titles TitleProvider
}

// NewCombiner はラスターサービスとタイトルプロバイダを注入して Combiner を生成します。
func NewCombiner(svc *render.Service, titles TitleProvider) *Combiner {
	return &Combiner{svc: svc, titles: titles}
}

// Combine は 4 枠を 1 枚に合成し、出力先のパスを返します。
func (c *Combiner) Combine(ctx context.Context, opts Options) (string, error) {
	// 1. 対象枠の解決。0 枚は探索失敗、4 枚未満はパイプライン異常としてエラー。
	slots, err := scan.SlotImages(opts.FramedRoot, opts.Device, opts.Locale)
	if err != nil {
		return "", err
	}
	if len(slots) == 0 {
		return "", fmt.Errorf("compose: %s/%s のフレーム済み画像が見つかりませんでした", opts.Device, opts.Locale)
	}

	originals := make([]image.Image, domain.SlotCount)
	for i := 0; i < domain.SlotCount; i++ {
		path, ok := slots[i+1]
		if !ok {
			return "", fmt.Errorf("compose: %s/%s の slot_%d が欠けています (4 枠すべて必要です)", opts.Device, opts.Locale, i+1)
		}
		img, err := c.svc.Load(ctx, path)
		if err != nil {
			return "", err
		}
		originals[i] = img
	}

	// 2. デバイス別拡縮率の適用。配置の割り当て計算は拡縮前の寸法で行い、
	//    実際のピクセル配置だけを拡縮後の画像で行うのだ。
	factor := opts.ScaleFactors[opts.Device]
	if factor <= 0 {
		factor = 1.0
	}
	scaled := make([]image.Image, domain.SlotCount)
	for i, img := range originals {
		if factor == 1.0 {
			scaled[i] = img
			continue
		}
		b := img.Bounds()
		sw := int(math.Round(float64(b.Dx()) * factor))
		sh := int(math.Round(float64(b.Dy()) * factor))
		scaled[i] = imaging.Resize(img, sw, sh, imaging.Lanczos)
	}

	// 3. キャンバス座標系の導出
	bg, err := c.svc.Load(ctx, opts.BackgroundPath)
	if err != nil {
		return "", err
	}
	bgBounds := bg.Bounds()
	first := originals[0].Bounds()
	layout := NewLayout(
		bgBounds.Dx(), bgBounds.Dy(),
		first.Dx(), first.Dy(),
		opts.Spacing, opts.Device.TitleLines(), opts.Style,
	)

	// 4. 背景はキャンバスがはみ出すときだけ引き伸ばす（縮小はしない）
	canvas := imaging.Clone(bg)
	if layout.CanvasW > bgBounds.Dx() || layout.CanvasH > bgBounds.Dy() {
		canvas = imaging.Resize(bg, layout.CanvasW, layout.CanvasH, imaging.Lanczos)
	}

	// 5. タイトル文言の解決とレイヤー描画
	var titles domain.TitleSet
	if opts.Titles != nil {
		titles = *opts.Titles
	} else {
		titles = c.titles.Titles(opts.Locale)
	}
	renderer, err := NewTitleRenderer(opts.Style)
	if err != nil {
		return "", err
	}

	titleWidth := layout.ImageW
	if opts.CenterInQuarters {
		titleWidth = layout.Quarter
	}

	// 6. タイトル → 画像の順に重ねる。互いに重ならない配置なので
	//    8 レイヤー間の順序は見た目に影響しないのだ。
	for i := 0; i < domain.SlotCount; i++ {
		layer, titleH, err := renderer.Render(titles[i], titleWidth, opts.Device.TitleLines())
		if err != nil {
			return "", err
		}
		left := layout.SlotLeft(i, titleWidth, opts.CenterInQuarters)
		canvas = imaging.Overlay(canvas, layer, image.Pt(left, layout.TitleTop(titleH)), 1.0)
	}
	for i, img := range scaled {
		left := layout.SlotLeft(i, img.Bounds().Dx(), opts.CenterInQuarters)
		canvas = imaging.Overlay(canvas, img, image.Pt(left, layout.ImageTop()), 1.0)
	}

	// 7. 保存
	out := scan.CombinedPath(opts.OutputRoot, opts.Device, opts.Locale)
	if err := c.svc.SavePNG(ctx, out, canvas); err != nil {
		return "", err
	}

	slog.Info("コンポジットを書き出したのだ",
		"device", opts.Device.String(),
		"locale", opts.Locale,
		"canvas_w", layout.CanvasW,
		"canvas_h", layout.CanvasH,
		"output", out,
	)
	return out, nil
}
