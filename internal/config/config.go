package config

import (
	"time"

	"github.com/shouni/go-utils/envutil"
)

// デフォルト値の定義なのだ
const (
	DefaultModel        = "gemini-2.5-flash"
	DefaultImageModel   = "gemini-3-pro-image-preview"
	DefaultProjectFile  = "data/project.json" // 固定スロット（単一JSONファイル）の既定パス
	DefaultHTTPTimeout  = 30 * time.Second
	DefaultRateInterval = 10 * time.Second
	DefaultOutputImage  = "output/final_prompt.png"
)

// Config はアプリケーション全体の環境設定（APIキーやモデル名）を保持する構造体なのだ。
type Config struct {
	GeminiAPIKey string
	GeminiModel  string
	ImageModel   string

	Options StudioOptions
}

// LoadConfig は環境変数から設定を読み込み、構造体を返すのだ！
func LoadConfig() *Config {
	return &Config{
		GeminiAPIKey: envutil.GetEnv("GEMINI_API_KEY", ""),
		GeminiModel:  envutil.GetEnv("GEMINI_MODEL", DefaultModel),
		ImageModel:   envutil.GetEnv("IMAGE_GEMINI_MODEL", DefaultImageModel),
	}
}

// StudioOptions は CLI フラグから渡される実行時のパラメータなのだ。
type StudioOptions struct {
	ProjectFile string // --project-file: 保存スロットのパス
	SceneIndex  int    // --scene: アクティブシーン番号（1始まり）
	OutputImage string // --output-image: render の保存先（ローカル or gs://...）

	// AI挙動設定
	AIModel    string // --model: テキスト生成用のGeminiモデル
	ImageModel string // --image-model: 画像生成用のGeminiモデル

	// 実行制御
	HTTPTimeout  time.Duration // --http-timeout
	RateInterval time.Duration // --rate-interval: batch 時の呼び出し間隔
}
