package runner

import (
	"context"
	"fmt"
	"log/slog"
	"sort"

	"github.com/shouni/go-storeshot-kit/internal/config"
	"github.com/shouni/go-storeshot-kit/pkg/batch"
	"github.com/shouni/go-storeshot-kit/pkg/domain"
	"github.com/shouni/go-storeshot-kit/pkg/frame"
	"github.com/shouni/go-storeshot-kit/pkg/scan"
)

// FrameRunner は、生スクリーンショットのツリー全体へフレーム合成を適用する
// バッチオーケストレーターなのだ。ワークアイテムは 1 ファイル単位で、
// チャンクごとに並列処理されるのだ。
type FrameRunner struct {
	cfg    *config.Config
	framer *frame.Framer
	batch  *batch.Runner
}

// NewFrameRunner は、FrameRunner の新しいインスタンスを生成して返す。
func NewFrameRunner(cfg *config.Config, framer *frame.Framer, b *batch.Runner) *FrameRunner {
	return &FrameRunner{cfg: cfg, framer: framer, batch: b}
}

// frameJob は 1 ファイル分の入出力パスの対応なのだ。
type frameJob struct {
	in  string
	out string
}

// Run は対象ロケールの全スクリーンショットをフレーム合成するのだ。
// locale が空なら検出された全ロケールを処理するのだ。
func (r *FrameRunner) Run(ctx context.Context, device domain.Device, locale string) error {
	locales, err := r.resolveLocales(device, locale)
	if err != nil {
		return err
	}

	// 1. ワークアイテムの収集。アイテム名は device/locale/slot_N で揃えるのだ
	jobs := make(map[string]frameJob)
	var items []string
	for _, loc := range locales {
		slots, err := scan.SlotImages(r.cfg.ScreenshotsDir, device, loc)
		if err != nil {
			// 1 ロケールの走査失敗で残りのロケールを道連れにしないのだ
			slog.Warn("走査に失敗したロケールをスキップするのだ", "device", device.String(), "locale", loc, "error", err)
			continue
		}
		if len(slots) == 0 {
			slog.Warn("スクリーンショットが見つからないロケールをスキップするのだ", "device", device.String(), "locale", loc)
			continue
		}

		nums := make([]int, 0, len(slots))
		for n := range slots {
			nums = append(nums, n)
		}
		sort.Ints(nums)
		for _, n := range nums {
			item := fmt.Sprintf("%s/%s/slot_%d", device, loc, n)
			jobs[item] = frameJob{
				in:  slots[n],
				out: scan.FramedPath(r.cfg.FramedDir, device, loc, n),
			}
			items = append(items, item)
		}
	}

	if len(items) == 0 {
		return fmt.Errorf("runner: %s のスクリーンショットが 1 枚も見つかりませんでした ('%s' 配下を確認してください)",
			device, r.cfg.ScreenshotsDir)
	}

	// 2. チャンク並列でフレーム合成を実行するのだ
	slog.Info("フレーム合成を開始するのだ", "device", device.String(), "count", len(items))
	summary := r.batch.Process(ctx, items, func(ctx context.Context, item string) error {
		job := jobs[item]
		return r.framer.FrameFile(ctx, job.in, job.out, device)
	})

	slog.Info("フレーム合成が完了したのだ", "total", summary.Total, "failed", summary.Failed())
	return summary.Err()
}

// resolveLocales は --locale の指定があればそれだけを、無ければ入力ツリーから
// 検出した全ロケールを返すのだ。
func (r *FrameRunner) resolveLocales(device domain.Device, locale string) ([]string, error) {
	if locale != "" {
		return []string{locale}, nil
	}
	return scan.Locales(r.cfg.ScreenshotsDir, device)
}
