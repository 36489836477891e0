package domain

// Mode は生成ターゲットとなるメディア種別です。
// プロンプト合成時の言い回し（オーディエンス句）の選択に使われます。
type Mode string

const (
	ModeImage Mode = "image"
	ModeVideo Mode = "video"
	ModeStory Mode = "story"
)

// Modes は選択可能な全モードを定義順で返します。
func Modes() []Mode {
	return []Mode{ModeImage, ModeVideo, ModeStory}
}

// Valid は m が閉じた列挙に含まれるかを判定します。
func (m Mode) Valid() bool {
	switch m {
	case ModeImage, ModeVideo, ModeStory:
		return true
	}
	return false
}

// AudiencePhrase は、最終プロンプトの指示文に埋め込むオーディエンス句を返します。
// 未知のモードは画像向けの句にフォールバックします。
func (m Mode) AudiencePhrase() string {
	switch m {
	case ModeVideo:
		return "video generation"
	case ModeStory:
		return "narrative writing"
	default:
		return "still-image generation"
	}
}

// StylePreset はカタログに登録された画風・文体の定義です。
// プロジェクトへは値コピーで取り込むため、カタログ側の変更が
// 保存済みプロジェクトへ波及することはありません。
type StylePreset struct {
	Name   string `json:"name"`
	Prompt string `json:"prompt"`
}

// Scene は1つのシーン（ショット）の記述です。全フィールドが任意入力で、
// 空文字列も有効な値です。識別子は持たず、所属シーケンス内の位置が同一性になります。
type Scene struct {
	Description string `json:"description"`
	Action      string `json:"action"`
	Mood        string `json:"mood"`
	CTA         string `json:"cta"`
	CameraAngle string `json:"cameraAngle"`
}

// Project は保存・生成の単位となるトップレベルのレコードです。
// Scenes は常に1件以上を維持します。
type Project struct {
	ID                string      `json:"id"`
	Name              string      `json:"name"`
	Mode              Mode        `json:"mode"`
	StylePreset       StylePreset `json:"stylePreset"`
	CharacterSceneCap string      `json:"characterSceneCap"`
	IsNSFW            bool        `json:"isNsfw"`
	Scenes            []Scene     `json:"scenes"`
	GeneratedPrompt   string      `json:"generatedPrompt,omitempty"`
}

// NewProject は既定のシーンを1つ持つ初期状態のプロジェクトを返します。
func NewProject() Project {
	return Project{
		ID:                "1",
		Name:              "My Awesome Project",
		Mode:              ModeImage,
		StylePreset:       DefaultStylePreset(),
		CharacterSceneCap: "A lone wanderer in a futuristic city.",
		Scenes: []Scene{{
			Description: "The wanderer stands on a rooftop overlooking the neon-lit city at night, rain pouring down.",
			Action:      "Looking down at the streets below.",
			Mood:        "Melancholic, contemplative",
			CameraAngle: "High-angle shot, looking down over the shoulder.",
		}},
	}
}

// Clone はシーン列まで複製した防御的コピーを返します。
// 参照共有によるその場書き換えを避け、置き換え方式の更新を支えるためのものです。
func (p Project) Clone() Project {
	copied := p
	copied.Scenes = make([]Scene, len(p.Scenes))
	copy(copied.Scenes, p.Scenes)
	return copied
}

// AppendScene は末尾に空のシーンを追加した新しいプロジェクトを返します。
func (p Project) AppendScene() Project {
	copied := p.Clone()
	copied.Scenes = append(copied.Scenes, Scene{})
	return copied
}

// RemoveScene は index のシーンを取り除いた新しいプロジェクトを返します。
// シーンが1件しか残っていない場合と範囲外の場合は何もせず false を返します。
func (p Project) RemoveScene(index int) (Project, bool) {
	if len(p.Scenes) <= 1 || index < 0 || index >= len(p.Scenes) {
		return p, false
	}
	copied := p.Clone()
	copied.Scenes = append(copied.Scenes[:index], copied.Scenes[index+1:]...)
	return copied, true
}

// ReplaceScene は index のシーンを丸ごと差し替えた新しいプロジェクトを返します。
// 範囲外の index は無視されます。
func (p Project) ReplaceScene(index int, scene Scene) Project {
	if index < 0 || index >= len(p.Scenes) {
		return p
	}
	copied := p.Clone()
	copied.Scenes[index] = scene
	return copied
}

// SceneAt は index のシーンを返します。index は有効範囲に丸め込まれます。
func (p Project) SceneAt(index int) Scene {
	return p.Scenes[ClampSceneIndex(index, len(p.Scenes))]
}

// ClampSceneIndex は index を [0, length) の範囲に丸め込みます。
// length が 0 以下でも 0 を返すため、呼び出し側で空チェックは不要です。
func ClampSceneIndex(index, length int) int {
	if index < 0 || length <= 0 {
		return 0
	}
	if index >= length {
		return length - 1
	}
	return index
}
