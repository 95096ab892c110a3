package i18n

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/shouni/go-storeshot-kit/pkg/domain"
)

// テスト用の翻訳ディレクトリを組み立てるヘルパー
func writeTranslation(t *testing.T, dir, locale, content string) {
	t.Helper()
	if err := os.WriteFile(filepath.Join(dir, locale+".json"), []byte(content), 0o644); err != nil {
		t.Fatalf("failed to write translation file: %v", err)
	}
}

func TestLoader_Titles(t *testing.T) {
	t.Run("部分的な翻訳はプレースホルダで補完されるのだ", func(t *testing.T) {
		dir := t.TempDir()
		writeTranslation(t, dir, "fr", `{"slot_1": "Découvrez", "slot_3": "Partagez"}`)

		ts := NewLoader(dir).Titles("fr")
		want := domain.TitleSet{"Découvrez", "Screenshot 2", "Partagez", "Screenshot 4"}
		if ts != want {
			t.Errorf("Titles(fr) = %v, want %v", ts, want)
		}
	})

	t.Run("ロケールのファイルが無ければ en へフォールバックするのだ", func(t *testing.T) {
		dir := t.TempDir()
		writeTranslation(t, dir, "en", `{"slot_1": "Discover", "slot_2": "Organize", "slot_3": "Share", "slot_4": "Enjoy"}`)

		ts := NewLoader(dir).Titles("de")
		want := domain.TitleSet{"Discover", "Organize", "Share", "Enjoy"}
		if ts != want {
			t.Errorf("Titles(de) = %v, want %v", ts, want)
		}
	})

	t.Run("en も無ければ全枠プレースホルダになるのだ", func(t *testing.T) {
		ts := NewLoader(t.TempDir()).Titles("ja")
		for i, title := range ts {
			if title != domain.PlaceholderTitle(i+1) {
				t.Errorf("slot %d = %q, want placeholder", i+1, title)
			}
		}
	})

	t.Run("壊れた JSON は警告してフォールバックするのだ（実行は止めない）", func(t *testing.T) {
		dir := t.TempDir()
		writeTranslation(t, dir, "it", `{not json`)
		writeTranslation(t, dir, "en", `{"slot_1": "Discover"}`)

		ts := NewLoader(dir).Titles("it")
		if ts[0] != "Discover" {
			t.Errorf("slot 1 = %q, want en fallback", ts[0])
		}
	})

	t.Run("同じロケールの二度目はキャッシュから返るのだ", func(t *testing.T) {
		dir := t.TempDir()
		writeTranslation(t, dir, "fr", `{"slot_1": "Un"}`)
		loader := NewLoader(dir)

		first := loader.Titles("fr")

		// ファイルを消してもキャッシュ済みの内容で解決できるのだ
		if err := os.Remove(filepath.Join(dir, "fr.json")); err != nil {
			t.Fatal(err)
		}
		second := loader.Titles("fr")
		if first != second {
			t.Errorf("cached result differs: %v vs %v", first, second)
		}
	})
}
