// Package scan は screenshots/<device>/<locale>/slot_N/ というディレクトリ規約から
// 処理対象を発見する入力スキャナーです。規約はあくまでデフォルトの発見手段であり、
// デバイス種別はここから先のコアロジックへ常に明示的な引数として渡されます。
package scan

import (
	"fmt"
	"os"
	"path/filepath"
	"regexp"
	"sort"
	"strconv"
	"strings"

	"github.com/shouni/go-storeshot-kit/pkg/domain"
)

const (
	// FramedFileName はフレーム合成ステージが出力するファイル名です。
	FramedFileName = "framed.png"
	// CombinedFileName は結合ステージが出力するファイル名です。
	CombinedFileName = "combined.png"
)

// SlotDirRegex は枠ディレクトリ (slot_1 等) に一致します
var SlotDirRegex = regexp.MustCompile(`^slot_([1-9][0-9]*)$`)

// imageExts はビットマップとして扱う拡張子の集合です。
var imageExts = map[string]struct{}{
	".png":  {},
	".jpg":  {},
	".jpeg": {},
}

// Locales は root/<device>/ 直下のロケールディレクトリ名をソート済みで返します。
func Locales(root string, device domain.Device) ([]string, error) {
	dir := filepath.Join(root, device.String())
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, fmt.Errorf("scan: ロケールディレクトリ '%s' を読めませんでした: %w", dir, err)
	}

	var locales []string
	for _, e := range entries {
		if e.IsDir() && !strings.HasPrefix(e.Name(), ".") {
			locales = append(locales, e.Name())
		}
	}
	sort.Strings(locales)
	return locales, nil
}

// SlotImages は root/<device>/<locale>/slot_N/ 配下のビットマップを
// 枠番号 → ファイルパス のマップとして返します。枠ディレクトリの中の
// 最初のビットマップ 1 枚だけを採用します。
func SlotImages(root string, device domain.Device, locale string) (map[int]string, error) {
	dir := filepath.Join(root, device.String(), locale)
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, fmt.Errorf("scan: ロケール '%s' のディレクトリ '%s' を読めませんでした: %w", locale, dir, err)
	}

	slots := make(map[int]string)
	for _, e := range entries {
		if !e.IsDir() {
			continue
		}
		m := SlotDirRegex.FindStringSubmatch(e.Name())
		if m == nil {
			continue
		}
		slot, _ := strconv.Atoi(m[1])

		path, err := firstImageIn(filepath.Join(dir, e.Name()))
		if err != nil {
			return nil, err
		}
		if path != "" {
			slots[slot] = path
		}
	}
	return slots, nil
}

// firstImageIn はディレクトリ内で名前順に最初のビットマップを返します。
// 見つからない場合は空文字列を返します（枠が空なのは呼び出し側の判断事項）。
func firstImageIn(dir string) (string, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return "", fmt.Errorf("scan: 枠ディレクトリ '%s' を読めませんでした: %w", dir, err)
	}

	names := make([]string, 0, len(entries))
	for _, e := range entries {
		if e.IsDir() {
			continue
		}
		if _, ok := imageExts[strings.ToLower(filepath.Ext(e.Name()))]; ok {
			names = append(names, e.Name())
		}
	}
	if len(names) == 0 {
		return "", nil
	}
	sort.Strings(names)
	return filepath.Join(dir, names[0]), nil
}

// FramedPath はフレーム合成済み画像の規約上の出力先を返します。
// 入力ツリーの locale/slot の階層を写し取り、末端ファイル名だけを固定します。
func FramedPath(framedRoot string, device domain.Device, locale string, slot int) string {
	return filepath.Join(framedRoot, device.String(), locale, fmt.Sprintf("slot_%d", slot), FramedFileName)
}

// CombinedPath は結合済みコンポジットの規約上の出力先を返します。
func CombinedPath(combinedRoot string, device domain.Device, locale string) string {
	return filepath.Join(combinedRoot, device.String(), locale, CombinedFileName)
}

// SlotOutputPath は分割ステージの 1 枠分の出力先を返します。
func SlotOutputPath(storeRoot, label, locale string, slot int) string {
	return filepath.Join(storeRoot, label, locale, fmt.Sprintf("slot_%d.png", slot))
}
