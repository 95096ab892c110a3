package cmd

import (
	"log/slog"

	"github.com/spf13/cobra"

	"github.com/shouni/go-storeshot-kit/internal/config"
	"github.com/shouni/go-storeshot-kit/internal/runner"
	"github.com/shouni/go-storeshot-kit/pkg/batch"
	"github.com/shouni/go-storeshot-kit/pkg/domain"
	"github.com/shouni/go-storeshot-kit/pkg/render"
	"github.com/shouni/go-storeshot-kit/pkg/split"
)

// splitCmd は、コンポジットをストア掲載サイズの枠画像へ切り出す最終ステージなのだ。
var splitCmd = &cobra.Command{
	Use:   "split",
	Short: "コンポジットをストア掲載サイズの枠画像へ切り出すのだ。",
	Long: `combine ステージのコンポジットを掲載サイズの 4 倍幅へリサイズし、
高さを下端クロップで合わせた上で、ちょうど目標解像度の slot_1〜slot_4 に
切り出すのだ。iPhone は 2 サイズ、iPad は 1 サイズへ書き出すのだよ。`,
	RunE: splitCommand,
}

// splitCommand は、split サブコマンドの実行ロジック本体なのだ。
func splitCommand(cmd *cobra.Command, args []string) error {
	ctx := cmd.Context()

	device, err := domain.ParseDevice(opts.Device)
	if err != nil {
		return err
	}

	cfg := config.LoadConfig()
	cfg.Options = opts

	slog.Info("分割モードを起動するのだ！",
		"device", device.String(),
		"locale", opts.Locale,
		"input", cfg.CombinedDir,
		"output", cfg.StoreDir)

	svc := render.NewService(opts.MaxWorkers)
	splitter := split.NewSplitter(svc)
	b := batch.NewRunner(config.DefaultSplitChunkSize, opts.Interval)
	return runner.NewSplitRunner(cfg, splitter, b).Run(ctx, device, opts.Locale)
}
