package cmd

import (
	"os"

	"github.com/spf13/cobra"

	"github.com/shouni/go-storeshot-kit/internal/config"
	"github.com/shouni/go-storeshot-kit/pkg/domain"
	"github.com/shouni/go-storeshot-kit/pkg/render"
)

// opts は全サブコマンドで共有する実行時パラメータなのだ。
var opts config.Options

var rootCmd = &cobra.Command{
	Use:   "storeshot",
	Short: "App Store 用スクリーンショットのバッチ生成ツールなのだ。",
	Long: `生のデバイスキャプチャから App Store 提出用のマーケティング画像を一括生成するのだ。
frame（ベゼル合成）→ combine（背景 + タイトル結合）→ split（掲載サイズへ分割）の
3 ステージを、この順で個別に実行するのだよ。`,
	SilenceUsage:      true,
	PersistentPreRunE: validateAppFlags,
}

// validateAppFlags はフラグの使い方の誤りを実行前に弾くのだ。実行時エラーと違って
// 使い方の誤りにはコマンドの Usage を添えて返すのだよ。
func validateAppFlags(cmd *cobra.Command, args []string) error {
	if _, err := domain.ParseDevice(opts.Device); err != nil {
		cmd.SilenceUsage = false
		cmd.Root().SilenceUsage = false
		return err
	}
	return nil
}

// addAppFlags は、アプリケーション全般に適用されるグローバルフラグを定義するのだ。
func addAppFlags(cmd *cobra.Command) {
	// --- 対象の絞り込み ---
	cmd.PersistentFlags().StringVarP(&opts.Device, "device", "d", config.DefaultDevice.String(), "対象デバイス種別 (iphone / ipad) なのだ。")
	cmd.PersistentFlags().StringVarP(&opts.Locale, "locale", "l", "", "処理対象を 1 ロケールに絞るのだ（空なら検出した全ロケール）。")

	// --- スタイル・実行制御 ---
	cmd.PersistentFlags().StringVarP(&opts.SettingsFile, "settings", "s", "", "幾何・スタイル上書き用の YAML 設定ファイルなのだ。")
	cmd.PersistentFlags().DurationVar(&opts.Interval, "interval", 0, "バッチアイテムの起動間隔なのだ（0 で制限なし）。")
	cmd.PersistentFlags().IntVar(&opts.MaxWorkers, "max-workers", render.DefaultMaxWorkers, "画像エンコード/デコードの内部並列上限なのだ。")
}

// Execute は、アプリケーションのメインエントリポイントなのだ。
// main.go から呼び出されて、cobra のコマンドライン解析を開始するのだよ。
func Execute() {
	addAppFlags(rootCmd)
	rootCmd.AddCommand(frameCmd, combineCmd, splitCmd)

	if err := rootCmd.Execute(); err != nil {
		// バッチの失敗件数や設定エラーはここへ集約されて非ゼロ終了になるのだ
		os.Exit(1)
	}
}
