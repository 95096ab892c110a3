package domain

import "testing"

func TestParseDevice(t *testing.T) {
	t.Run("iphone と ipad を正しくパースできるのだ", func(t *testing.T) {
		cases := map[string]Device{
			"iphone": DeviceIPhone,
			"IPHONE": DeviceIPhone,
			" ipad ": DeviceIPad,
			"iPad":   DeviceIPad,
		}
		for input, want := range cases {
			got, err := ParseDevice(input)
			if err != nil {
				t.Errorf("ParseDevice(%q): unexpected error: %v", input, err)
			}
			if got != want {
				t.Errorf("ParseDevice(%q) = %q, want %q", input, got, want)
			}
		}
	})

	t.Run("未知のデバイス種別はエラーになるのだ", func(t *testing.T) {
		for _, input := range []string{"", "android", "watch"} {
			if _, err := ParseDevice(input); err == nil {
				t.Errorf("ParseDevice(%q): expected error, got nil", input)
			}
		}
	})
}

func TestDevice_TitleLines(t *testing.T) {
	if got := DeviceIPhone.TitleLines(); got != 2 {
		t.Errorf("iphone lines = %d, want 2", got)
	}
	if got := DeviceIPad.TitleLines(); got != 1 {
		t.Errorf("ipad lines = %d, want 1", got)
	}
}

func TestTargetsFor(t *testing.T) {
	t.Run("iPhone は 2 サイズ、iPad は 1 サイズなのだ", func(t *testing.T) {
		if got := TargetsFor(DeviceIPhone); len(got) != 2 {
			t.Errorf("iphone targets = %d, want 2", len(got))
		}
		if got := TargetsFor(DeviceIPad); len(got) != 1 {
			t.Errorf("ipad targets = %d, want 1", len(got))
		}
	})

	t.Run("返り値を書き換えてもカタログは汚れないのだ", func(t *testing.T) {
		first := TargetsFor(DeviceIPhone)
		first[0].Width = 1
		if again := TargetsFor(DeviceIPhone); again[0].Width == 1 {
			t.Error("catalog was mutated through the returned slice")
		}
	})
}
