package domain

import (
	"testing"
)

func TestNewProject(t *testing.T) {
	p := NewProject()

	if len(p.Scenes) != 1 {
		t.Fatalf("初期プロジェクトのシーン数が1ではありません: %d", len(p.Scenes))
	}
	if p.Mode != ModeImage {
		t.Errorf("初期モードの期待値 %q, 実際の値 %q", ModeImage, p.Mode)
	}
	if p.StylePreset.Name != DefaultStylePreset().Name {
		t.Errorf("初期スタイルが既定値ではありません: %q", p.StylePreset.Name)
	}
}

func TestProject_Clone(t *testing.T) {
	original := NewProject()
	copied := original.Clone()

	copied.Scenes[0].Description = "changed"
	if original.Scenes[0].Description == "changed" {
		t.Error("Cloneのシーン編集が元のプロジェクトへ波及しています")
	}
}

func TestProject_AppendScene(t *testing.T) {
	p := NewProject()
	grown := p.AppendScene()

	if len(grown.Scenes) != 2 {
		t.Fatalf("追加後のシーン数の期待値 2, 実際の値 %d", len(grown.Scenes))
	}
	if grown.Scenes[1] != (Scene{}) {
		t.Errorf("追加されたシーンが空ではありません: %+v", grown.Scenes[1])
	}
	if len(p.Scenes) != 1 {
		t.Error("AppendSceneが元のプロジェクトを変更しています")
	}
}

func TestProject_RemoveScene(t *testing.T) {
	t.Run("最後の1件は削除できないこと", func(t *testing.T) {
		p := NewProject()
		result, ok := p.RemoveScene(0)
		if ok {
			t.Error("シーンが1件のときの削除が拒否されませんでした")
		}
		if len(result.Scenes) != 1 {
			t.Errorf("削除拒否後のシーン数の期待値 1, 実際の値 %d", len(result.Scenes))
		}
	})

	t.Run("途中のシーンを削除できること", func(t *testing.T) {
		p := NewProject().AppendScene().AppendScene()
		p.Scenes[1].Description = "second"
		p.Scenes[2].Description = "third"

		result, ok := p.RemoveScene(1)
		if !ok {
			t.Fatal("削除できるはずのシーンで false が返りました")
		}
		if len(result.Scenes) != 2 {
			t.Fatalf("削除後のシーン数の期待値 2, 実際の値 %d", len(result.Scenes))
		}
		if result.Scenes[1].Description != "third" {
			t.Errorf("削除後に残るシーンの期待値 'third', 実際の値 %q", result.Scenes[1].Description)
		}
	})

	t.Run("範囲外のindexは何もしないこと", func(t *testing.T) {
		p := NewProject().AppendScene()
		if _, ok := p.RemoveScene(5); ok {
			t.Error("範囲外indexの削除が成功扱いになっています")
		}
	})
}

func TestProject_ReplaceScene(t *testing.T) {
	p := NewProject()
	replaced := p.ReplaceScene(0, Scene{Description: "new"})

	if replaced.Scenes[0].Description != "new" {
		t.Errorf("置き換え後の描写の期待値 'new', 実際の値 %q", replaced.Scenes[0].Description)
	}
	if p.Scenes[0].Description == "new" {
		t.Error("ReplaceSceneが元のプロジェクトを変更しています")
	}

	// 範囲外は無視されること
	same := p.ReplaceScene(9, Scene{Description: "ignored"})
	if len(same.Scenes) != len(p.Scenes) {
		t.Error("範囲外indexの置き換えでシーン数が変化しました")
	}
}

func TestClampSceneIndex(t *testing.T) {
	cases := []struct {
		name     string
		index    int
		length   int
		expected int
	}{
		{"範囲内はそのまま", 1, 3, 1},
		{"負数は0へ", -1, 3, 0},
		{"上限超えは末尾へ", 5, 3, 2},
		{"長さ0でも0", 2, 0, 0},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if got := ClampSceneIndex(tc.index, tc.length); got != tc.expected {
				t.Errorf("期待値 %d, 実際の値 %d", tc.expected, got)
			}
		})
	}
}

func TestMode_AudiencePhrase(t *testing.T) {
	cases := map[Mode]string{
		ModeImage: "still-image generation",
		ModeVideo: "video generation",
		ModeStory: "narrative writing",
	}
	for mode, expected := range cases {
		if got := mode.AudiencePhrase(); got != expected {
			t.Errorf("モード %q の期待値 %q, 実際の値 %q", mode, expected, got)
		}
	}

	// 未知のモードは画像向けへフォールバックすること
	if got := Mode("unknown").AudiencePhrase(); got != "still-image generation" {
		t.Errorf("未知モードのフォールバックが想定と異なります: %q", got)
	}
}

func TestMode_Valid(t *testing.T) {
	for _, mode := range Modes() {
		if !mode.Valid() {
			t.Errorf("定義済みモード %q が無効と判定されました", mode)
		}
	}
	if Mode("picture").Valid() {
		t.Error("未定義のモードが有効と判定されました")
	}
}
