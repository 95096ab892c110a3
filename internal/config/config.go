package config

import (
	"time"

	"github.com/shouni/go-utils/envutil"

	"github.com/shouni/go-storeshot-kit/pkg/domain"
)

// デフォルト値の定義なのだ
const (
	DefaultScreenshotsDir  = "screenshots"       // 生スクリーンショットの入力ツリー
	DefaultFramedDir       = "output/framed"     // フレーム合成ステージの出力先なのだ
	DefaultCombinedDir     = "output/combined"   // 結合ステージの出力先なのだ
	DefaultStoreDir        = "output/store"      // 分割ステージの出力先なのだ
	DefaultTranslationsDir = "translations"      // ロケール別タイトル JSON の置き場
	DefaultBackgroundFile  = "background.png"    // 結合の背景画像
	DefaultDevice          = domain.DeviceIPhone // デバイス未指定時の既定値
	DefaultSpacing         = 60                  // 画像間・外周の間隔 (px)

	// チャンクサイズはステージごとの 1 件あたりメモリコストを反映している。
	// フレーム合成は 1 枚ずつで軽いので大きめ、結合・分割は巨大なキャンバスを
	// 扱うので小さめなのだ。
	DefaultFrameChunkSize   = 8
	DefaultCombineChunkSize = 4
	DefaultSplitChunkSize   = 4

	// フレーム済み画像へ掛けるデバイス別の拡縮率
	DefaultIPhoneScale = 0.82
	DefaultIPadScale   = 0.77
)

// Config はアプリケーション全体のパス設定を保持する構造体なのだ。
type Config struct {
	ScreenshotsDir  string
	FramedDir       string
	CombinedDir     string
	StoreDir        string
	TranslationsDir string
	BackgroundFile  string

	Options Options
}

// LoadConfig は環境変数から設定を読み込み、構造体を返すのだ！
func LoadConfig() *Config {
	return &Config{
		ScreenshotsDir:  envutil.GetEnv("STORESHOT_SCREENSHOTS_DIR", DefaultScreenshotsDir),
		FramedDir:       envutil.GetEnv("STORESHOT_FRAMED_DIR", DefaultFramedDir),
		CombinedDir:     envutil.GetEnv("STORESHOT_COMBINED_DIR", DefaultCombinedDir),
		StoreDir:        envutil.GetEnv("STORESHOT_STORE_DIR", DefaultStoreDir),
		TranslationsDir: envutil.GetEnv("STORESHOT_TRANSLATIONS_DIR", DefaultTranslationsDir),
		BackgroundFile:  envutil.GetEnv("STORESHOT_BACKGROUND", DefaultBackgroundFile),
	}
}

// Options は CLI フラグから渡される実行時のパラメータなのだ。
type Options struct {
	// 対象の絞り込み
	Device string // --device
	Locale string // --locale

	// スタイル・幾何の上書き設定ファイル
	SettingsFile string // --settings

	// 実行制御
	Interval   time.Duration // --interval: バッチアイテムの起動間隔 (0 で制限なし)
	MaxWorkers int           // --max-workers: ラスターサービスの内部並列上限

	// フレーム合成関連
	EdgeMargin  int     // --edge-margin
	ImageRadius float64 // --image-radius
	FrameRadius float64 // --frame-radius

	// 結合関連
	Background       string  // --background
	Spacing          int     // --spacing
	FontSize         float64 // --font-size
	TitleColor       string  // --title-color
	ShadowColor      string  // --shadow-color
	ShadowOffset     int     // --shadow-offset
	TitleSpacing     int     // --title-spacing
	CenterInQuarters bool    // --center-in-quarters
	IPhoneScale      float64 // --scale-iphone
	IPadScale        float64 // --scale-ipad
	Titles           string  // --titles: カンマ区切りの明示タイトル（翻訳より優先）
}
