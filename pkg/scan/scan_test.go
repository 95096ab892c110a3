package scan

import (
	"fmt"
	"image"
	"os"
	"path/filepath"
	"testing"

	"github.com/disintegration/imaging"

	"github.com/shouni/go-storeshot-kit/pkg/domain"
)

// テスト用の入力ツリー（device/locale/slot_N/capture.png）を組み立てるヘルパー
func writeSlotImage(t *testing.T, root string, device domain.Device, locale string, slot int, name string) string {
	t.Helper()
	dir := filepath.Join(root, device.String(), locale, fmt.Sprintf("slot_%d", slot))
	if err := os.MkdirAll(dir, 0o755); err != nil {
		t.Fatal(err)
	}
	path := filepath.Join(dir, name)
	img := image.NewNRGBA(image.Rect(0, 0, 4, 4))
	if err := imaging.Save(img, path); err != nil {
		t.Fatal(err)
	}
	return path
}

func TestLocales(t *testing.T) {
	t.Run("ロケールディレクトリをソート済みで列挙するのだ", func(t *testing.T) {
		root := t.TempDir()
		for _, loc := range []string{"ja", "en", "fr"} {
			if err := os.MkdirAll(filepath.Join(root, "iphone", loc), 0o755); err != nil {
				t.Fatal(err)
			}
		}

		locales, err := Locales(root, domain.DeviceIPhone)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		want := []string{"en", "fr", "ja"}
		if len(locales) != len(want) {
			t.Fatalf("locales = %v, want %v", locales, want)
		}
		for i := range want {
			if locales[i] != want[i] {
				t.Errorf("locales[%d] = %q, want %q", i, locales[i], want[i])
			}
		}
	})

	t.Run("ツリーが無ければパス名入りのエラーなのだ", func(t *testing.T) {
		_, err := Locales(filepath.Join(t.TempDir(), "nope"), domain.DeviceIPad)
		if err == nil {
			t.Error("expected error, got nil")
		}
	})
}

func TestSlotImages(t *testing.T) {
	t.Run("slot_N ディレクトリの最初のビットマップを拾うのだ", func(t *testing.T) {
		root := t.TempDir()
		writeSlotImage(t, root, domain.DeviceIPhone, "en", 1, "capture.png")
		writeSlotImage(t, root, domain.DeviceIPhone, "en", 3, "zz.png")

		slots, err := SlotImages(root, domain.DeviceIPhone, "en")
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if len(slots) != 2 {
			t.Fatalf("slots = %v, want 2 entries", slots)
		}
		if _, ok := slots[1]; !ok {
			t.Error("slot 1 missing")
		}
		if _, ok := slots[3]; !ok {
			t.Error("slot 3 missing")
		}
	})

	t.Run("slot 規約に合わないディレクトリや画像以外は無視するのだ", func(t *testing.T) {
		root := t.TempDir()
		writeSlotImage(t, root, domain.DeviceIPad, "en", 2, "shot.png")
		if err := os.MkdirAll(filepath.Join(root, "ipad", "en", "notes"), 0o755); err != nil {
			t.Fatal(err)
		}
		if err := os.WriteFile(filepath.Join(root, "ipad", "en", "slot_2", "readme.txt"), []byte("x"), 0o644); err != nil {
			t.Fatal(err)
		}

		slots, err := SlotImages(root, domain.DeviceIPad, "en")
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if len(slots) != 1 {
			t.Errorf("slots = %v, want only slot_2", slots)
		}
	})
}

func TestOutputPaths(t *testing.T) {
	t.Run("出力パスは規約どおりの階層になるのだ", func(t *testing.T) {
		got := FramedPath("out", domain.DeviceIPhone, "fr", 2)
		want := filepath.Join("out", "iphone", "fr", "slot_2", "framed.png")
		if got != want {
			t.Errorf("FramedPath = %q, want %q", got, want)
		}

		got = CombinedPath("out", domain.DeviceIPad, "en")
		want = filepath.Join("out", "ipad", "en", "combined.png")
		if got != want {
			t.Errorf("CombinedPath = %q, want %q", got, want)
		}

		got = SlotOutputPath("store", "iphone-6.5", "ja", 4)
		want = filepath.Join("store", "iphone-6.5", "ja", "slot_4.png")
		if got != want {
			t.Errorf("SlotOutputPath = %q, want %q", got, want)
		}
	})
}
