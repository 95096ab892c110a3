package runner

import (
	"context"
	"fmt"
	"log/slog"
	"strings"

	"github.com/shouni/go-storeshot-kit/internal/config"
	"github.com/shouni/go-storeshot-kit/pkg/batch"
	"github.com/shouni/go-storeshot-kit/pkg/compose"
	"github.com/shouni/go-storeshot-kit/pkg/domain"
	"github.com/shouni/go-storeshot-kit/pkg/scan"
)

// CombineRunner は、ロケールごとの結合処理を束ねるバッチオーケストレーターなのだ。
// ワークアイテムは 1 ロケール単位なのだ。
type CombineRunner struct {
	cfg      *config.Config
	combiner *compose.Combiner
	batch    *batch.Runner

	// template はロケール以外を確定させた結合オプションの雛形なのだ
	template compose.Options
}

// NewCombineRunner は、CombineRunner の新しいインスタンスを生成して返す。
func NewCombineRunner(cfg *config.Config, combiner *compose.Combiner, b *batch.Runner, template compose.Options) *CombineRunner {
	return &CombineRunner{cfg: cfg, combiner: combiner, batch: b, template: template}
}

// Run は対象ロケールのコンポジットを生成するのだ。
// locale が空なら、フレーム済みツリーから検出した全ロケールを処理するのだ。
func (r *CombineRunner) Run(ctx context.Context, device domain.Device, locale string) error {
	var locales []string
	if locale != "" {
		locales = []string{locale}
	} else {
		var err error
		locales, err = scan.Locales(r.cfg.FramedDir, device)
		if err != nil {
			return err
		}
	}
	if len(locales) == 0 {
		return fmt.Errorf("runner: %s のフレーム済みロケールが見つかりませんでした ('%s' 配下を確認してください)",
			device, r.cfg.FramedDir)
	}

	slog.Info("結合処理を開始するのだ", "device", device.String(), "locales", len(locales))
	summary := r.batch.Process(ctx, locales, func(ctx context.Context, loc string) error {
		opts := r.template
		opts.Device = device
		opts.Locale = loc
		_, err := r.combiner.Combine(ctx, opts)
		return err
	})

	slog.Info("結合処理が完了したのだ", "total", summary.Total, "failed", summary.Failed())
	return summary.Err()
}

// ParseExplicitTitles は --titles のカンマ区切り文字列を TitleSet に変換するのだ。
// 空文字列なら nil（翻訳データを使う）を返すのだ。
func ParseExplicitTitles(s string) *domain.TitleSet {
	if strings.TrimSpace(s) == "" {
		return nil
	}
	parts := strings.Split(s, ",")
	m := make(map[string]string, len(parts))
	for i, p := range parts {
		if i >= domain.SlotCount {
			break
		}
		m[domain.SlotKey(i+1)] = strings.TrimSpace(p)
	}
	ts := domain.NewTitleSet(m)
	return &ts
}
