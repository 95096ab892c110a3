package domain

import (
	"fmt"
	"strings"
)

// SlotCount は 1 ロケールあたりのスクリーンショット枠の数です。
// App Store の掲載枠に合わせて 4 固定で、これより少ない入力はエラーになります。
const SlotCount = 4

// Device は対象デバイス種別（iphone / ipad）を表します。
type Device string

const (
	DeviceIPhone Device = "iphone"
	DeviceIPad   Device = "ipad"
)

// ParseDevice は CLI フラグなどで渡された文字列をデバイス種別に変換するのだ。
// 未知の値は設定エラーとして即座に弾くのだ。
func ParseDevice(s string) (Device, error) {
	switch Device(strings.ToLower(strings.TrimSpace(s))) {
	case DeviceIPhone:
		return DeviceIPhone, nil
	case DeviceIPad:
		return DeviceIPad, nil
	default:
		return "", fmt.Errorf("domain: 未対応のデバイス種別です: %q (iphone / ipad のみ)", s)
	}
}

// String は Device の文字列表現を返します。
func (d Device) String() string {
	return string(d)
}

// TitleLines はタイトル帯で使う最大行数を返します。
// iPhone は縦長でタイトル幅が狭いため 2 行、iPad は 1 行です。
func (d Device) TitleLines() int {
	if d == DeviceIPad {
		return 1
	}
	return 2
}

// HasHomeIndicator はベゼル下部にホームインジケーターを描くかどうかを返します。
func (d Device) HasHomeIndicator() bool {
	return d == DeviceIPhone
}

// DeviceConfig はストア掲載 1 サイズ分の出力解像度と出力先ラベルを保持します。
type DeviceConfig struct {
	Width  int    `json:"width"`
	Height int    `json:"height"`
	Label  string `json:"label"` // 出力先フォルダ名 (例: "iphone-6.5")
}

// deviceCatalog はデバイス種別ごとに必要なストア掲載サイズの固定カタログです。
// iPhone は 6.5 インチ / 6.7 インチの 2 サイズ、iPad は 12.9 インチの 1 サイズ。
var deviceCatalog = map[Device][]DeviceConfig{
	DeviceIPhone: {
		{Width: 1242, Height: 2688, Label: "iphone-6.5"},
		{Width: 1290, Height: 2796, Label: "iphone-6.7"},
	},
	DeviceIPad: {
		{Width: 2048, Height: 2732, Label: "ipad-12.9"},
	},
}

// TargetsFor は指定デバイスのストア掲載サイズ一覧を返します。
// 呼び出し元による変更を防ぐため、防御的コピーを返すのだ。
func TargetsFor(d Device) []DeviceConfig {
	src := deviceCatalog[d]
	configs := make([]DeviceConfig, len(src))
	copy(configs, src)
	return configs
}
