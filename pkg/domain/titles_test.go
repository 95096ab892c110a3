package domain

import "testing"

func TestNewTitleSet(t *testing.T) {
	t.Run("欠けた枠はプレースホルダで埋まるのだ", func(t *testing.T) {
		// fr の翻訳に slot_1 と slot_3 しか無いケース
		ts := NewTitleSet(map[string]string{
			"slot_1": "Découvrez",
			"slot_3": "Partagez",
		})

		want := TitleSet{"Découvrez", "Screenshot 2", "Partagez", "Screenshot 4"}
		if ts != want {
			t.Errorf("NewTitleSet = %v, want %v", ts, want)
		}
	})

	t.Run("nil マップでも 4 エントリすべて埋まるのだ", func(t *testing.T) {
		ts := NewTitleSet(nil)
		for i, title := range ts {
			if title != PlaceholderTitle(i+1) {
				t.Errorf("slot %d = %q, want %q", i+1, title, PlaceholderTitle(i+1))
			}
		}
	})

	t.Run("空文字列はプレースホルダ扱いなのだ", func(t *testing.T) {
		ts := NewTitleSet(map[string]string{"slot_2": ""})
		if ts[1] != "Screenshot 2" {
			t.Errorf("slot 2 = %q, want placeholder", ts[1])
		}
	})
}
