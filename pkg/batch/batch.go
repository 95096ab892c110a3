// Package batch は 3 つのステージ（frame / combine / split）が共有する
// チャンク型の並列バッチ実行基盤です。チャンク内は並列、チャンク間は直列で、
// 1 件の失敗が兄弟や後続チャンクを巻き込まない「最後にまとめて失敗する」方式なのだ。
package batch

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"golang.org/x/sync/errgroup"
	"golang.org/x/time/rate"
)

const defaultRateBurst = 2

// ItemError は 1 件分の失敗を、対象アイテム名と原因のペアで保持します。
type ItemError struct {
	Item string
	Err  error
}

// Summary はバッチ全体の実行結果です。
type Summary struct {
	Total  int
	Errors []ItemError
}

// Failed は失敗件数を返します。
func (s Summary) Failed() int {
	return len(s.Errors)
}

// Err は 1 件でも失敗があれば集約エラーを返し、全件成功なら nil を返します。
// プロセスの終了コードはこの値で決まるのだ。
func (s Summary) Err() error {
	if len(s.Errors) == 0 {
		return nil
	}
	return fmt.Errorf("batch: %d/%d 件の処理に失敗しました (最初の失敗: %s: %v)",
		len(s.Errors), s.Total, s.Errors[0].Item, s.Errors[0].Err)
}

// Runner は固定サイズのチャンク単位でワークアイテムを処理します。
// チャンク N+1 は、チャンク N の全アイテムが完了（成功・失敗を問わず）するまで
// 開始されません。これが同時デコードされる大きなビットマップの数を抑えます。
type Runner struct {
	ChunkSize int
	// Interval が 0 より大きい場合、アイテムの起動間隔に流量制限をかけます。
	// 0 なら制限なしとして動くのだ。
	Interval time.Duration
}

// NewRunner はチャンクサイズを指定して Runner を生成します。
func NewRunner(chunkSize int, interval time.Duration) *Runner {
	if chunkSize <= 0 {
		chunkSize = 1
	}
	return &Runner{ChunkSize: chunkSize, Interval: interval}
}

// Process は items をチャンクごとに並列処理し、結果サマリーを返します。
// fn のエラーはアイテム境界で捕捉・記録され、決して兄弟の処理を中断しません。
func (r *Runner) Process(ctx context.Context, items []string, fn func(ctx context.Context, item string) error) Summary {
	summary := Summary{Total: len(items)}

	var limiter *rate.Limiter
	if r.Interval > 0 {
		limiter = rate.NewLimiter(rate.Every(r.Interval), defaultRateBurst)
	}

	for start := 0; start < len(items); start += r.ChunkSize {
		end := start + r.ChunkSize
		if end > len(items) {
			end = len(items)
		}
		chunk := items[start:end]

		// チャンク内の失敗はインデックスで回収する（errgroup には返さない）のだ
		chunkErrs := make([]error, len(chunk))
		var eg errgroup.Group

		for i, item := range chunk {
			i, item := i, item
			eg.Go(func() error {
				if limiter != nil {
					if err := limiter.Wait(ctx); err != nil {
						chunkErrs[i] = err
						return nil
					}
				}
				if err := fn(ctx, item); err != nil {
					slog.Error("バッチアイテムの処理に失敗したのだ", "item", item, "error", err)
					chunkErrs[i] = err
				}
				return nil
			})
		}

		// チャンクの全アイテムが完了するまで待つバリアなのだ
		_ = eg.Wait()

		for i, err := range chunkErrs {
			if err != nil {
				summary.Errors = append(summary.Errors, ItemError{Item: chunk[i], Err: err})
			}
		}
	}

	return summary
}
