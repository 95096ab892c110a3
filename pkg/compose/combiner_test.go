package compose

import (
	"context"
	"fmt"
	"image/color"
	"os"
	"path/filepath"
	"testing"

	"github.com/disintegration/imaging"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/shouni/go-storeshot-kit/pkg/domain"
	"github.com/shouni/go-storeshot-kit/pkg/render"
)

// stubTitles は翻訳ロードを介さない固定タイトルのプロバイダなのだ。
type stubTitles struct{}

func (stubTitles) Titles(locale string) domain.TitleSet {
	return domain.TitleSet{"One", "Two", "Three", "Four"}
}

// テスト用のフレーム済みツリー（slot_1..slot_4/framed.png）を組み立てるヘルパー
func writeFramedTree(t *testing.T, root string, device domain.Device, locale string, slots int, w, h int) {
	t.Helper()
	for i := 1; i <= slots; i++ {
		dir := filepath.Join(root, device.String(), locale, fmt.Sprintf("slot_%d", i))
		require.NoError(t, os.MkdirAll(dir, 0o755))
		img := imaging.New(w, h, color.NRGBA{R: 0x80, G: 0x80, B: 0x80, A: 0xff})
		require.NoError(t, imaging.Save(img, filepath.Join(dir, "framed.png")))
	}
}

func writeBackground(t *testing.T, dir string, w, h int) string {
	t.Helper()
	path := filepath.Join(dir, "background.png")
	img := imaging.New(w, h, color.NRGBA{R: 0x10, G: 0x10, B: 0x40, A: 0xff})
	require.NoError(t, imaging.Save(img, path))
	return path
}

func baseOptions(t *testing.T, framedRoot string) Options {
	t.Helper()
	return Options{
		BackgroundPath: writeBackground(t, t.TempDir(), 100, 50),
		FramedRoot:     framedRoot,
		OutputRoot:     t.TempDir(),
		Spacing:        20,
		Device:         domain.DeviceIPad,
		Locale:         "en",
		Style: Style{
			FontSize:     32,
			Color:        "#ffffff",
			ShadowColor:  "#000000",
			ShadowOffset: 2,
			TitleSpacing: 10,
		},
	}
}

func TestCombiner_Combine(t *testing.T) {
	ctx := context.Background()
	svc := render.NewService(2)
	combiner := NewCombiner(svc, stubTitles{})

	t.Run("4 枠のコンポジットを期待どおりの寸法で書き出すのだ", func(t *testing.T) {
		framedRoot := t.TempDir()
		writeFramedTree(t, framedRoot, domain.DeviceIPad, "en", 4, 200, 400)
		opts := baseOptions(t, framedRoot)

		out, err := combiner.Combine(ctx, opts)
		require.NoError(t, err)

		got, err := imaging.Open(out)
		require.NoError(t, err)

		layout := NewLayout(100, 50, 200, 400, 20, domain.DeviceIPad.TitleLines(), opts.Style)
		assert.Equal(t, layout.CanvasW, got.Bounds().Dx())
		assert.Equal(t, layout.CanvasH, got.Bounds().Dy())

		// キャンバスは背景以上のサイズという不変条件なのだ
		assert.GreaterOrEqual(t, got.Bounds().Dx(), 100)
		assert.GreaterOrEqual(t, got.Bounds().Dy(), 50)
	})

	t.Run("画像が 1 枚も無いロケールはエラーなのだ", func(t *testing.T) {
		framedRoot := t.TempDir()
		require.NoError(t, os.MkdirAll(filepath.Join(framedRoot, "ipad", "en"), 0o755))
		opts := baseOptions(t, framedRoot)

		_, err := combiner.Combine(ctx, opts)
		assert.Error(t, err)
	})

	t.Run("4 枠に満たない場合はパイプライン異常としてエラーなのだ", func(t *testing.T) {
		framedRoot := t.TempDir()
		writeFramedTree(t, framedRoot, domain.DeviceIPad, "en", 3, 200, 400)
		opts := baseOptions(t, framedRoot)

		_, err := combiner.Combine(ctx, opts)
		require.Error(t, err)
		assert.Contains(t, err.Error(), "slot_4")
	})

	t.Run("明示タイトルが翻訳データより優先されるのだ", func(t *testing.T) {
		framedRoot := t.TempDir()
		writeFramedTree(t, framedRoot, domain.DeviceIPad, "en", 4, 200, 400)
		opts := baseOptions(t, framedRoot)
		explicit := domain.TitleSet{"A", "B", "C", "D"}
		opts.Titles = &explicit

		_, err := combiner.Combine(ctx, opts)
		require.NoError(t, err)
	})

	t.Run("拡縮率を掛けてもキャンバス寸法は拡縮前の画像で決まるのだ", func(t *testing.T) {
		framedRoot := t.TempDir()
		writeFramedTree(t, framedRoot, domain.DeviceIPad, "en", 4, 200, 400)
		opts := baseOptions(t, framedRoot)
		opts.ScaleFactors = map[domain.Device]float64{domain.DeviceIPad: 0.5}

		out, err := combiner.Combine(ctx, opts)
		require.NoError(t, err)

		got, err := imaging.Open(out)
		require.NoError(t, err)
		layout := NewLayout(100, 50, 200, 400, 20, domain.DeviceIPad.TitleLines(), opts.Style)
		assert.Equal(t, layout.CanvasW, got.Bounds().Dx())
		assert.Equal(t, layout.CanvasH, got.Bounds().Dy())
	})
}

func TestCombiner_Combine_BackgroundNotResizedDown(t *testing.T) {
	ctx := context.Background()
	svc := render.NewService(2)
	combiner := NewCombiner(svc, stubTitles{})

	framedRoot := t.TempDir()
	writeFramedTree(t, framedRoot, domain.DeviceIPad, "en", 4, 100, 200)
	opts := baseOptions(t, framedRoot)

	// 背景がレイアウトの最小寸法より大きい場合、キャンバスは背景サイズのままなのだ
	opts.BackgroundPath = writeBackground(t, t.TempDir(), 3000, 2000)

	out, err := combiner.Combine(ctx, opts)
	require.NoError(t, err)

	got, err := imaging.Open(out)
	require.NoError(t, err)
	assert.Equal(t, 3000, got.Bounds().Dx())
	assert.Equal(t, 2000, got.Bounds().Dy())

	// 背景の画素がそのまま残っているのだ（引き伸ばしなし）
	r, _, b, _ := got.At(2999, 1999).RGBA()
	assert.Equal(t, uint32(0x10), r>>8)
	assert.Equal(t, uint32(0x40), b>>8)
}
