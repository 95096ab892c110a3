// Package i18n はロケールごとの翻訳 JSON からタイトル文言を読み込みます。
// 翻訳の不備は常にローカルで回復し（英語へのフォールバック → プレースホルダ）、
// パイプライン全体を止めることはありません。
package i18n

import (
	"encoding/json"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"time"

	"github.com/patrickmn/go-cache"

	"github.com/shouni/go-storeshot-kit/pkg/domain"
)

const (
	// FallbackLocale はロケールの翻訳ファイルが無い場合に参照するロケールです。
	FallbackLocale = "en"

	defaultCacheExpiration = 30 * time.Minute
	cacheCleanupInterval   = 1 * time.Hour
)

// Loader は翻訳ディレクトリからタイトル文言を解決します。
// パース済みのファイルはロケール単位でキャッシュされるため、
// 複数デバイスを処理する 1 回の実行で同じファイルを二度読みしません。
type Loader struct {
	dir   string
	cache *cache.Cache
}

// NewLoader は翻訳ディレクトリを指定して Loader を生成します。
func NewLoader(dir string) *Loader {
	return &Loader{
		dir:   dir,
		cache: cache.New(defaultCacheExpiration, cacheCleanupInterval),
	}
}

// Titles はロケールの TitleSet を返します。常に 4 エントリが埋まった状態で返り、
// 失敗してもエラーにはなりません（欠けはプレースホルダで補完）。
func (l *Loader) Titles(locale string) domain.TitleSet {
	m := l.load(locale)
	if m == nil && locale != FallbackLocale {
		m = l.load(FallbackLocale)
	}
	return domain.NewTitleSet(m)
}

// load は 1 ロケール分の翻訳マップを読み込みます。見つからない・壊れている場合は
// 警告ログを出して nil を返すのだ（呼び出し側でフォールバックする）。
func (l *Loader) load(locale string) map[string]string {
	if v, ok := l.cache.Get(locale); ok {
		m, _ := v.(map[string]string)
		return m
	}

	path := filepath.Join(l.dir, fmt.Sprintf("%s.json", locale))
	data, err := os.ReadFile(path)
	if err != nil {
		slog.Warn("翻訳ファイルが読めなかったのだ。フォールバックするのだ",
			"locale", locale,
			"path", path,
			"error", err,
		)
		l.cache.Set(locale, map[string]string(nil), cache.DefaultExpiration)
		return nil
	}

	var m map[string]string
	if err := json.Unmarshal(data, &m); err != nil {
		slog.Warn("翻訳ファイルのデコードに失敗したのだ。フォールバックするのだ",
			"locale", locale,
			"path", path,
			"error", err,
		)
		l.cache.Set(locale, map[string]string(nil), cache.DefaultExpiration)
		return nil
	}

	l.cache.Set(locale, m, cache.DefaultExpiration)
	return m
}
