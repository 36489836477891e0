package store

import (
	"errors"
	"math/rand"
	"os"
	"path/filepath"
	"reflect"
	"testing"

	"github.com/shouni/go-prompt-studio/pkg/domain"
)

func newTestStore(t *testing.T) *ProjectStore {
	t.Helper()
	return NewProjectStore(filepath.Join(t.TempDir(), "project.json"))
}

func TestProjectStore_SaveAndLoad(t *testing.T) {
	s := newTestStore(t)

	project := domain.NewProject()
	project.Name = "雪原の旅 ❄️"
	project.Mode = domain.ModeVideo
	project.CharacterSceneCap = "A lone traveler with 鋭い eyes"
	project.IsNSFW = true
	project.Scenes[0].Mood = "Melancholic, 静寂"
	project.GeneratedPrompt = "final prompt text"

	if err := s.Save(project); err != nil {
		t.Fatalf("保存に失敗しました: %v", err)
	}

	loaded, err := s.Load()
	if err != nil {
		t.Fatalf("読み込みに失敗しました: %v", err)
	}

	if loaded.Name != project.Name {
		t.Errorf("Nameの期待値 %q, 実際の値 %q", project.Name, loaded.Name)
	}
	if loaded.Mode != domain.ModeVideo {
		t.Errorf("Modeの期待値 %q, 実際の値 %q", domain.ModeVideo, loaded.Mode)
	}
	if loaded.CharacterSceneCap != project.CharacterSceneCap {
		t.Errorf("CAPの期待値 %q, 実際の値 %q", project.CharacterSceneCap, loaded.CharacterSceneCap)
	}
	if !loaded.IsNSFW {
		t.Error("IsNSFWが復元されていません")
	}
	if len(loaded.Scenes) != len(project.Scenes) {
		t.Fatalf("シーン数の期待値 %d, 実際の値 %d", len(project.Scenes), len(loaded.Scenes))
	}
	if loaded.Scenes[0].Mood != project.Scenes[0].Mood {
		t.Errorf("Moodの期待値 %q, 実際の値 %q", project.Scenes[0].Mood, loaded.Scenes[0].Mood)
	}
	if loaded.GeneratedPrompt != project.GeneratedPrompt {
		t.Errorf("GeneratedPromptの期待値 %q, 実際の値 %q", project.GeneratedPrompt, loaded.GeneratedPrompt)
	}
}

// randomText は絵文字・和文・制御文字・引用符を混ぜたテキストを生成します。
func randomText(r *rand.Rand) string {
	pool := []rune(`abz ABZ 019 雪月花 こんにちは世界 🎬🎥✨ "quoted" \back\ ラストシーン	改行→
←ここまで`)
	runes := make([]rune, r.Intn(32))
	for i := range runes {
		runes[i] = pool[r.Intn(len(pool))]
	}
	return string(runes)
}

func randomProject(r *rand.Rand) domain.Project {
	modes := domain.Modes()
	project := domain.Project{
		ID:   randomText(r),
		Name: randomText(r),
		Mode: modes[r.Intn(len(modes))],
		StylePreset: domain.StylePreset{
			Name:   randomText(r),
			Prompt: randomText(r),
		},
		CharacterSceneCap: randomText(r),
		IsNSFW:            r.Intn(2) == 0,
		GeneratedPrompt:   randomText(r),
	}
	for i := 0; i < 1+r.Intn(4); i++ {
		project.Scenes = append(project.Scenes, domain.Scene{
			Description: randomText(r),
			Action:      randomText(r),
			Mood:        randomText(r),
			CTA:         randomText(r),
			CameraAngle: randomText(r),
		})
	}
	return project
}

func TestProjectStore_RoundTripProperty(t *testing.T) {
	// シードを固定した擬似ランダムなプロジェクト群で往復の忠実性を確かめる
	r := rand.New(rand.NewSource(1))

	for i := 0; i < 50; i++ {
		s := newTestStore(t)
		project := randomProject(r)

		if err := s.Save(project); err != nil {
			t.Fatalf("%d件目の保存に失敗しました: %v\n%+v", i, err, project)
		}
		loaded, err := s.Load()
		if err != nil {
			t.Fatalf("%d件目の読み込みに失敗しました: %v\n%+v", i, err, project)
		}
		if !reflect.DeepEqual(loaded, project) {
			t.Errorf("%d件目の往復で構造が一致しません:\n保存: %+v\n復元: %+v", i, project, loaded)
		}
	}
}

func TestProjectStore_Load_NotFound(t *testing.T) {
	s := newTestStore(t)

	if _, err := s.Load(); !errors.Is(err, ErrNotFound) {
		t.Errorf("ErrNotFoundが期待されましたが、実際のエラー: %v", err)
	}
}

func TestProjectStore_Load_CorruptData(t *testing.T) {
	cases := []struct {
		name string
		data string
	}{
		{"壊れたJSON", `{"id": "p1", "name":`},
		{"未知のフィールド", `{"id":"p1","name":"x","mode":"image","stylePreset":{"name":"s","prompt":"p"},"characterSceneCap":"","isNsfw":false,"scenes":[{"description":"","action":"","mood":"","cta":"","cameraAngle":""}],"extraField":true}`},
		{"シーンが空", `{"id":"p1","name":"x","mode":"image","stylePreset":{"name":"s","prompt":"p"},"characterSceneCap":"","isNsfw":false,"scenes":[]}`},
		{"不明なモード", `{"id":"p1","name":"x","mode":"hologram","stylePreset":{"name":"s","prompt":"p"},"characterSceneCap":"","isNsfw":false,"scenes":[{"description":"d","action":"","mood":"","cta":"","cameraAngle":""}]}`},
		{"本体の後ろに余分なデータ", `{"id":"p1","name":"x","mode":"image","stylePreset":{"name":"s","prompt":"p"},"characterSceneCap":"","isNsfw":false,"scenes":[{"description":"d","action":"","mood":"","cta":"","cameraAngle":""}]}` + "\n" + `{"junk":true}`},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			s := newTestStore(t)
			if err := os.WriteFile(s.Path(), []byte(tc.data), 0644); err != nil {
				t.Fatalf("テストデータの書き込みに失敗しました: %v", err)
			}

			if _, err := s.Load(); !errors.Is(err, ErrCorruptData) {
				t.Errorf("ErrCorruptDataが期待されましたが、実際のエラー: %v", err)
			}
		})
	}
}

func TestProjectStore_Load_ExternallyCorrupted(t *testing.T) {
	s := newTestStore(t)

	if err := s.Save(domain.NewProject()); err != nil {
		t.Fatalf("保存に失敗しました: %v", err)
	}

	// 保存後のファイルへ外部から末尾にゴミを書き足す
	f, err := os.OpenFile(s.Path(), os.O_APPEND|os.O_WRONLY, 0644)
	if err != nil {
		t.Fatalf("ファイルを開けません: %v", err)
	}
	if _, err := f.WriteString("\n{\"junk\":true}"); err != nil {
		t.Fatalf("追記に失敗しました: %v", err)
	}
	if err := f.Close(); err != nil {
		t.Fatalf("クローズに失敗しました: %v", err)
	}

	if _, err := s.Load(); !errors.Is(err, ErrCorruptData) {
		t.Errorf("ErrCorruptDataが期待されましたが、実際のエラー: %v", err)
	}
}

func TestProjectStore_Save_Overwrite(t *testing.T) {
	s := newTestStore(t)

	first := domain.NewProject()
	first.Name = "first"
	if err := s.Save(first); err != nil {
		t.Fatalf("1回目の保存に失敗しました: %v", err)
	}

	second := domain.NewProject()
	second.Name = "second"
	if err := s.Save(second); err != nil {
		t.Fatalf("2回目の保存に失敗しました: %v", err)
	}

	loaded, err := s.Load()
	if err != nil {
		t.Fatalf("読み込みに失敗しました: %v", err)
	}
	if loaded.Name != "second" {
		t.Errorf("上書き後の期待値 'second', 実際の値 %q", loaded.Name)
	}

	// 一時ファイルが残っていないこと
	if _, err := os.Stat(s.Path() + ".tmp"); !os.IsNotExist(err) {
		t.Error("保存後に一時ファイルが残っています")
	}
}

func TestProjectStore_Save_CreatesDirectory(t *testing.T) {
	dir := t.TempDir()
	s := NewProjectStore(filepath.Join(dir, "nested", "deep", "project.json"))

	if err := s.Save(domain.NewProject()); err != nil {
		t.Fatalf("ディレクトリを含む保存に失敗しました: %v", err)
	}
	if _, err := s.Load(); err != nil {
		t.Errorf("保存直後の読み込みに失敗しました: %v", err)
	}
}
