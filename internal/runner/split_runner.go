package runner

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/shouni/go-storeshot-kit/internal/config"
	"github.com/shouni/go-storeshot-kit/pkg/batch"
	"github.com/shouni/go-storeshot-kit/pkg/domain"
	"github.com/shouni/go-storeshot-kit/pkg/scan"
	"github.com/shouni/go-storeshot-kit/pkg/split"
)

// SplitRunner は、ロケールごとの分割処理を束ねるバッチオーケストレーターなのだ。
type SplitRunner struct {
	cfg      *config.Config
	splitter *split.Splitter
	batch    *batch.Runner
}

// NewSplitRunner は、SplitRunner の新しいインスタンスを生成して返す。
func NewSplitRunner(cfg *config.Config, splitter *split.Splitter, b *batch.Runner) *SplitRunner {
	return &SplitRunner{cfg: cfg, splitter: splitter, batch: b}
}

// Run は対象ロケールのコンポジットをストア掲載サイズへ切り出すのだ。
// locale が空なら、結合済みツリーから検出した全ロケールを処理するのだ。
func (r *SplitRunner) Run(ctx context.Context, device domain.Device, locale string) error {
	var locales []string
	if locale != "" {
		locales = []string{locale}
	} else {
		var err error
		locales, err = scan.Locales(r.cfg.CombinedDir, device)
		if err != nil {
			return err
		}
	}
	if len(locales) == 0 {
		return fmt.Errorf("runner: %s の結合済みロケールが見つかりませんでした ('%s' 配下を確認してください)",
			device, r.cfg.CombinedDir)
	}

	slog.Info("分割処理を開始するのだ", "device", device.String(), "locales", len(locales))
	summary := r.batch.Process(ctx, locales, func(ctx context.Context, loc string) error {
		return r.splitter.Split(ctx, split.Options{
			CombinedRoot: r.cfg.CombinedDir,
			OutputRoot:   r.cfg.StoreDir,
			Device:       device,
			Locale:       loc,
		})
	})

	slog.Info("分割処理が完了したのだ", "total", summary.Total, "failed", summary.Failed())
	return summary.Err()
}
