// Package split は結合済みコンポジットをストア掲載サイズへ変換し、
// 4 等分の枠画像へ切り出す分割ステージです。
package split

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

// MinDimension は入力コンポジットの最小辺長です。これ未満の入力は
// 上流パイプラインの欠陥なので、通常の失敗とは区別して即エラーにします。
const MinDimension = 1000

// Options は 1 回の分割処理（1 デバイス × 1 ロケール）の入力一式です。
type Options struct {
	CombinedRoot string
	OutputRoot   string
	Device       domain.Device
	Locale       string
}

// Splitter は分割ステージの本体です。
type Splitter struct {
	svc *render.Service
}

// NewSplitter はラスターサービスを注入して Splitter を生成します。
func NewSplitter(svc *render.Service) *Splitter {
	return &Splitter{svc: svc}
}

// Split はデバイスの全ストア掲載サイズについて、コンポジットをリサイズ・
// クロップし、ちょうど目標解像度の枠画像 4 枚ずつを書き出します。
func (s *Splitter) Split(ctx context.Context, opts Options) error {
	combined, err := s.svc.Load(ctx, scan.CombinedPath(opts.CombinedRoot, opts.Device, opts.Locale))
	if err != nil {
		return err
	}

	b := combined.Bounds()
	if b.Dx() < MinDimension || b.Dy() < MinDimension {
		return fmt.Errorf("split: コンポジットが %dx%d しかありません (最小 %dx%d)。上流のステージを確認してください",
			b.Dx(), b.Dy(), MinDimension, MinDimension)
	}

	for _, target := range domain.TargetsFor(opts.Device) {
		if err := s.splitTo(ctx, combined, target, opts); err != nil {
			return err
		}
	}
	return nil
}

// splitTo は 1 つの掲載サイズ分の切り出しを行います。
func (s *Splitter) splitTo(ctx context.Context, combined image.Image, target domain.DeviceConfig, opts Options) error {
	b := combined.Bounds()

	// 1. 幅がちょうど 4×目標幅になるよう、アスペクト比を保ってリサイズ
	resizedW := domain.SlotCount * target.Width
	resizedH := int(math.Round(float64(resizedW) * float64(b.Dy()) / float64(b.Dx())))
	resized := imaging.Resize(combined, resizedW, resizedH, imaging.Lanczos)

	// 2. 高さの調整はクロップのみ。余剰は必ず下端から削り、上端は動かさない。
	//    目標より低い場合は埋め合わせせず、明示的なエラーとして弾くのだ。
	switch {
	case resizedH > target.Height:
		resized = imaging.Crop(resized, image.Rect(0, 0, resizedW, target.Height))
	case resizedH < target.Height:
		return fmt.Errorf("split: %s のリサイズ後の高さ %d が目標 %d に足りません (コンポジットのアスペクト比を確認してください)",
			target.Label, resizedH, target.Height)
	}

	// 3. 幅 target.Width の縦ストリップ 4 枚へ、左から隙間も重なりもなく切り出す
	h := resized.Bounds().Dy()
	for i := 0; i < domain.SlotCount; i++ {
		strip := imaging.Crop(resized, image.Rect(i*target.Width, 0, (i+1)*target.Width, h))
		out := scan.SlotOutputPath(opts.OutputRoot, target.Label, opts.Locale, i+1)
		if err := s.svc.SavePNG(ctx, out, strip); err != nil {
			return err
		}
	}

	slog.Info("ストア掲載サイズへ切り出したのだ",
		"label", target.Label,
		"locale", opts.Locale,
		"width", target.Width,
		"height", target.Height,
	)
	return nil
}
