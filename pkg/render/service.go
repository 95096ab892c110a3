package render

import (
	"context"
	"fmt"
	"image"
	"os"
	"path/filepath"

	"github.com/disintegration/imaging"
	"golang.org/x/sync/semaphore"
)

// DefaultMaxWorkers はビットマップのデコード/エンコードを同時に実行する上限です。
// バッチ側のファンアウトとは独立に、ホストのコアを食い潰さないための内部上限なのだ。
const DefaultMaxWorkers = 4

// Service はビットマップの読み書きを一手に引き受けるラスターサービスです。
// グローバル設定に頼らず、構築時に並列上限を固定して各ステージへ注入します。
// デコード済み画像のキャッシュは持ちません（ピークメモリを抑えるため）。
type Service struct {
	sem *semaphore.Weighted
}

// NewService は並列上限を指定して Service を生成します。
// maxWorkers が 0 以下の場合は DefaultMaxWorkers を採用します。
func NewService(maxWorkers int) *Service {
	if maxWorkers <= 0 {
		maxWorkers = DefaultMaxWorkers
	}
	return &Service{sem: semaphore.NewWeighted(int64(maxWorkers))}
}

// Load はビットマップファイルを読み込みます。
// 壊れたファイルや読めないファイルは、必ず対象パスを含むエラーとして返すのだ。
func (s *Service) Load(ctx context.Context, path string) (image.Image, error) {
	if err := s.sem.Acquire(ctx, 1); err != nil {
		return nil, err
	}
	defer s.sem.Release(1)

	img, err := imaging.Open(path)
	if err != nil {
		return nil, fmt.Errorf("render: 画像 '%s' の読み込みに失敗しました: %w", path, err)
	}
	return img, nil
}

// SavePNG は画像を PNG として保存します。出力ディレクトリは遅延かつ冪等に作成します
// （既に存在していてもエラーにならないため、別ロケールへの並行書き込みと衝突しません）。
func (s *Service) SavePNG(ctx context.Context, path string, img image.Image) error {
	if err := s.sem.Acquire(ctx, 1); err != nil {
		return err
	}
	defer s.sem.Release(1)

	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("render: 出力ディレクトリの作成に失敗しました: %w", err)
	}
	if err := imaging.Save(img, path); err != nil {
		return fmt.Errorf("render: 画像 '%s' の保存に失敗しました: %w", path, err)
	}
	return nil
}
