package cmd

import (
	"log/slog"

	"github.com/spf13/cobra"

	"github.com/shouni/go-storeshot-kit/internal/config"
	"github.com/shouni/go-storeshot-kit/internal/runner"
	"github.com/shouni/go-storeshot-kit/pkg/batch"
	"github.com/shouni/go-storeshot-kit/pkg/domain"
	"github.com/shouni/go-storeshot-kit/pkg/frame"
	"github.com/shouni/go-storeshot-kit/pkg/render"
)

// frameCmd は、生スクリーンショットをデバイスベゼルで包む最初のステージなのだ。
var frameCmd = &cobra.Command{
	Use:   "frame",
	Short: "スクリーンショットをデバイスベゼルで包むのだ。",
	Long: `screenshots/<device>/<locale>/slot_N/ のキャプチャにベゼル（角丸・影・
ホームインジケーター）を合成して、フレーム済みツリーへ書き出すのだ。
他ステージに依存しない葉のステージで、何度実行しても同じ結果になるのだよ。`,
	RunE: frameCommand,
}

// init は、frame コマンド固有の幾何フラグを定義するのだ。
func init() {
	defaults := frame.DefaultSettings()
	f := frameCmd.Flags()
	f.IntVar(&opts.EdgeMargin, "edge-margin", defaults.EdgeMargin, "上下左右すべてに適用する余白 (px)。指定するとオフセットより優先なのだ。")
	f.Float64Var(&opts.ImageRadius, "image-radius", defaults.ImageBorderRadius, "スクリーンショット自体の角丸半径なのだ。")
	f.Float64Var(&opts.FrameRadius, "frame-radius", defaults.FrameBorderRadius, "ベゼル外周の角丸半径なのだ。")
}

// frameCommand は、frame サブコマンドの実行ロジック本体なのだ。
func frameCommand(cmd *cobra.Command, args []string) error {
	ctx := cmd.Context()

	// 1. デバイス種別の検証。未知の値は何も処理せず即エラーなのだ
	device, err := domain.ParseDevice(opts.Device)
	if err != nil {
		return err
	}

	// 2. 環境変数 → YAML → 明示フラグの順で設定を確定させるのだ
	cfg := config.LoadConfig()
	cfg.Options = opts
	settings, err := config.LoadSettings(opts.SettingsFile)
	if err != nil {
		return err
	}
	if cmd.Flags().Changed("edge-margin") {
		settings.Frame.EdgeMargin = opts.EdgeMargin
	}
	if cmd.Flags().Changed("image-radius") {
		settings.Frame.ImageBorderRadius = opts.ImageRadius
	}
	if cmd.Flags().Changed("frame-radius") {
		settings.Frame.FrameBorderRadius = opts.FrameRadius
	}

	slog.Info("フレーム合成モードを起動するのだ！",
		"device", device.String(),
		"locale", opts.Locale,
		"input", cfg.ScreenshotsDir,
		"output", cfg.FramedDir)

	// 3. ステージの組み立てと実行。色の検証は Framer 構築時に済ませるのだ
	svc := render.NewService(opts.MaxWorkers)
	framer, err := frame.NewFramer(svc, settings.Frame)
	if err != nil {
		return err
	}
	b := batch.NewRunner(config.DefaultFrameChunkSize, opts.Interval)
	return runner.NewFrameRunner(cfg, framer, b).Run(ctx, device, opts.Locale)
}
