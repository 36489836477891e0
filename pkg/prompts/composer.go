// Package prompts は、プロジェクトとシーンから生成APIへ送る
// リクエストペイロードを決定論的に合成します。ネットワークアクセスは
// 一切行わず、同じ入力からは常に同じリクエストが得られます。
package prompts

import (
	_ "embed"
	"fmt"
	"strings"
	"text/template"

	"github.com/shouni/go-prompt-studio/pkg/domain"
)

// Op は生成APIに対する操作種別です。エラーメッセージの出し分けに使われます。
type Op string

const (
	OpEnhance           Op = "enhance"
	OpCompleteCharacter Op = "complete_character"
	OpFinalPrompt       Op = "final_prompt"
)

// 操作ごとのサンプリング温度です。創造性を求める操作ほど高く設定します。
const (
	TemperatureEnhance           = float32(0.8)
	TemperatureCompleteCharacter = float32(0.85)
	TemperatureFinalPrompt       = float32(0.9)
)

// Request は生成APIへ送る1回分の要求ペイロードです。
type Request struct {
	Op          Op
	Instruction string // システムレベルの指示文
	UserPrompt  string // ユーザーターンの本文
	Temperature float32
}

const enhanceInstruction = `You are a world-class creative director and scriptwriter. Your task is to take a user's brief scene idea and expand it into a rich, vivid, and highly detailed cinematic description. Focus on sensory details, atmosphere, lighting, camera movement hints, and character emotion. The output should be a single, well-written paragraph that can be used directly in a professional script or as a foundation for an AI image generator prompt. Do not add any conversational text or labels. Only output the enhanced description.`

const completeCharacterInstruction = `You are a master character designer and creative writer for Hollywood films. A user will provide a character or setting concept. Your task is to expand upon it with vivid, evocative, and professional-level details. Focus on appearance, attire, posture, expression, and subtle hints about their personality or backstory that bring them to life. The output should seamlessly continue or enrich the user's input. Only provide the additional descriptive text that completes the idea. Do NOT repeat the user's original text. Do not add conversational fluff or labels like "Here is the expanded description:". If the user input is 'A beautiful woman with a mysterious air', a great continuation would be 'in a sleek black dress that accentuates her silhouette, full lips painted a vivid red, sharp eyes hiding an enigmatic depth'.`

const nsfwClause = "The theme is mature and intended for an adult audience. Incorporate elements that are suggestive, dark, or provocative as appropriate for the narrative, while respecting creative boundaries."

//go:embed final_prompt.md
var finalPromptContent string

var finalPromptTmpl = template.Must(template.New("final_prompt").Parse(finalPromptContent))

// finalPromptData は final_prompt.md テンプレートへ流し込むデータです。
// 空のフィールドは空のまま描画され、見出しが省略されることはありません。
type finalPromptData struct {
	StyleName         string
	StylePrompt       string
	Mood              string
	CameraAngle       string
	CharacterSceneCap string
	Description       string
	Action            string
	CTA               string
	MaturityClause    string
}

// ComposeEnhance は、短いシーン案を1段落の映画的な描写へ拡張させる
// リクエストを合成します。brief はそのまま引用符付きで埋め込まれます。
// 空の brief を弾くかどうかの方針は呼び出し側が持ちます。
func ComposeEnhance(brief string) Request {
	return Request{
		Op:          OpEnhance,
		Instruction: enhanceInstruction,
		UserPrompt:  fmt.Sprintf(`Enhance this scene idea: "%s"`, brief),
		Temperature: TemperatureEnhance,
	}
}

// ComposeCharacterCompletion は、キャラクター・舞台設定の続きを書かせる
// リクエストを合成します。応答は既存テキストの繰り返しではなく続きであり、
// 適用時は「既存テキスト + 半角スペース1つ + 応答」と連結する契約です。
func ComposeCharacterCompletion(current string) Request {
	return Request{
		Op:          OpCompleteCharacter,
		Instruction: completeCharacterInstruction,
		UserPrompt:  fmt.Sprintf(`Based on this concept, continue and expand the description: "%s"`, current),
		Temperature: TemperatureCompleteCharacter,
	}
}

// ComposeFinalPrompt は、プロジェクト設定とアクティブシーンを固定の構造
// テンプレートに流し込み、最終プロンプト生成用のリクエストを合成します。
// 成年向けの一文は IsNSFW が真のときだけ丸ごと含まれます。
func ComposeFinalPrompt(project domain.Project, scene domain.Scene) (Request, error) {
	maturity := ""
	if project.IsNSFW {
		maturity = nsfwClause
	}

	data := finalPromptData{
		StyleName:         project.StylePreset.Name,
		StylePrompt:       project.StylePreset.Prompt,
		Mood:              scene.Mood,
		CameraAngle:       scene.CameraAngle,
		CharacterSceneCap: project.CharacterSceneCap,
		Description:       scene.Description,
		Action:            scene.Action,
		CTA:               scene.CTA,
		MaturityClause:    maturity,
	}

	var sb strings.Builder
	if err := finalPromptTmpl.Execute(&sb, data); err != nil {
		return Request{}, fmt.Errorf("最終プロンプトテンプレートの実行に失敗しました: %w", err)
	}

	instruction := fmt.Sprintf(
		"You are an expert Hollywood scriptwriter and AI prompt engineer. Your task is to generate a single, highly detailed, and evocative prompt for an AI built for %s. Combine all the provided elements into a cohesive, vivid, and long-form paragraph. The prompt should be a masterpiece of descriptive language, ready to produce a stunning visual or narrative. Do not output anything other than the final prompt.",
		project.Mode.AudiencePhrase(),
	)

	return Request{
		Op:          OpFinalPrompt,
		Instruction: instruction,
		UserPrompt:  sb.String(),
		Temperature: TemperatureFinalPrompt,
	}, nil
}
