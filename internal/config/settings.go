package config

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/shouni/go-storeshot-kit/pkg/compose"
	"github.com/shouni/go-storeshot-kit/pkg/frame"
)

// Settings はフレーム幾何とタイトルスタイルの上書き設定です。
// デフォルト値の上へ YAML を重ね、さらに明示された CLI フラグが最後に勝ちます。
type Settings struct {
	Frame frame.Settings `yaml:"frame"`
	Title compose.Style  `yaml:"title"`
}

// DefaultSettings は YAML もフラグも無い場合の確定済み設定を返します。
func DefaultSettings() Settings {
	return Settings{
		Frame: frame.DefaultSettings(),
		Title: compose.DefaultStyle(),
	}
}

// LoadSettings はデフォルト設定の上へ YAML ファイルを重ねて返します。
// path が空の場合はデフォルトのまま返します。指定されたのに読めない・
// パースできないファイルは設定エラー（即時失敗）なのだ。
func LoadSettings(path string) (Settings, error) {
	s := DefaultSettings()
	if path == "" {
		return s, nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return s, fmt.Errorf("config: 設定ファイル '%s' を読めませんでした: %w", path, err)
	}
	if err := yaml.Unmarshal(data, &s); err != nil {
		return s, fmt.Errorf("config: 設定ファイル '%s' のパースに失敗しました: %w", path, err)
	}

	// 色指定は YAML 経由のユーザー入力なので、1 件も処理を始める前に検証するのだ
	if err := s.Frame.Validate(); err != nil {
		return s, fmt.Errorf("config: 設定ファイル '%s' の色指定が不正です: %w", path, err)
	}
	if err := s.Title.Validate(); err != nil {
		return s, fmt.Errorf("config: 設定ファイル '%s' の色指定が不正です: %w", path, err)
	}
	return s, nil
}
