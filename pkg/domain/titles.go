package domain

import "fmt"

// TitleSet は 1 ロケール分のタイトル文言（slot_1..slot_4 の順）を保持します。
// 欠けている枠は必ずプレースホルダで埋まっているのが不変条件です。
type TitleSet [SlotCount]string

// PlaceholderTitle は翻訳データに枠の文言が無い場合の代替文字列を返します。
// n は 1 始まりの枠番号です。
func PlaceholderTitle(n int) string {
	return fmt.Sprintf("Screenshot %d", n)
}

// SlotKey は翻訳 JSON のキー名 (slot_1 等) を返します。n は 1 始まりです。
func SlotKey(n int) string {
	return fmt.Sprintf("slot_%d", n)
}

// NewTitleSet はキー slot_1..slot_4 のマップから TitleSet を組み立てます。
// 欠けているキーや空文字列はプレースホルダで補完するのだ。
func NewTitleSet(m map[string]string) TitleSet {
	var ts TitleSet
	for i := 0; i < SlotCount; i++ {
		if v, ok := m[SlotKey(i+1)]; ok && v != "" {
			ts[i] = v
			continue
		}
		ts[i] = PlaceholderTitle(i + 1)
	}
	return ts
}
