// Package render は、生成済みの最終プロンプトを Gemini の画像モデルで
// 1枚の静止画に仕上げる工程です。画像モード専用の後段であり、
// プロンプト合成・保存の各層からは独立しています。
package render

import (
	"bytes"
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/patrickmn/go-cache"
	imagedom "github.com/shouni/gemini-image-kit/pkg/domain"
	imagekit "github.com/shouni/gemini-image-kit/pkg/generator"
	"github.com/shouni/go-gemini-client/pkg/gemini"
	"github.com/shouni/go-http-kit/pkg/httpkit"
	"github.com/shouni/go-remote-io/pkg/gcsfactory"
	"github.com/shouni/go-remote-io/pkg/remoteio"
	"google.golang.org/genai"
)

const (
	defaultCacheExpiration = 5 * time.Minute
	cacheCleanupInterval   = 15 * time.Minute
	defaultTTL             = 5 * time.Minute

	// 画像生成は構図の再現性を優先して低温度で呼び出します。
	defaultImageTemperature = float32(0.2)

	// StillAspectRatio は静止画1枚の推奨アスペクト比です。
	StillAspectRatio = "16:9"

	negativePrompt = "text overlays, watermark, logo, signature, low quality, blurry"
)

// Renderer は最終プロンプトを画像化して保存します。
type Renderer struct {
	generator imagekit.ImageGenerator
	writer    remoteio.OutputWriter
}

// New は Renderer を構築します。Gemini クライアント・画像コア・
// 入出力（ローカル or GCS）をここで一括初期化します。
func New(ctx context.Context, apiKey, imageModel string, httpTimeout time.Duration) (*Renderer, error) {
	aiClient, err := gemini.NewClient(ctx, gemini.Config{
		APIKey:      apiKey,
		Temperature: genai.Ptr(defaultImageTemperature),
	})
	if err != nil {
		return nil, fmt.Errorf("AIクライアントの初期化に失敗しました: %w", err)
	}

	rioFactory, err := gcsfactory.NewGCSClientFactory(ctx)
	if err != nil {
		return nil, fmt.Errorf("入出力ファクトリの初期化に失敗しました: %w", err)
	}
	reader, err := rioFactory.NewInputReader()
	if err != nil {
		return nil, err
	}
	writer, err := rioFactory.NewOutputWriter()
	if err != nil {
		return nil, err
	}

	httpClient := httpkit.New(httpTimeout)
	imgCache := cache.New(defaultCacheExpiration, cacheCleanupInterval)

	core, err := imagekit.NewGeminiImageCore(aiClient, reader, httpClient, imgCache, defaultTTL)
	if err != nil {
		return nil, fmt.Errorf("GeminiImageCore の初期化に失敗しました: %w", err)
	}
	generator, err := imagekit.NewGeminiGenerator(imageModel, core)
	if err != nil {
		return nil, fmt.Errorf("GeminiGenerator の初期化に失敗しました: %w", err)
	}

	return &Renderer{generator: generator, writer: writer}, nil
}

// Render は prompt を1枚の静止画として生成し、outputPath へ保存します。
// スタイルプリセットの記述子はシステムプロンプトとして添えます。
func (r *Renderer) Render(ctx context.Context, prompt, stylePrompt, outputPath string) (string, error) {
	if prompt == "" {
		return "", fmt.Errorf("画像化するプロンプトがありません。先に generate を実行してください")
	}

	slog.Info("画像生成を開始します", "output", outputPath)
	startTime := time.Now()

	resp, err := r.generator.GenerateMangaPanel(ctx, imagedom.ImageGenerationRequest{
		Prompt:         prompt,
		SystemPrompt:   stylePrompt,
		NegativePrompt: negativePrompt,
		AspectRatio:    StillAspectRatio,
	})
	if err != nil {
		return "", fmt.Errorf("画像の生成に失敗しました: %w", err)
	}

	if err := r.writer.Write(ctx, outputPath, bytes.NewReader(resp.Data), resp.MimeType); err != nil {
		return "", fmt.Errorf("画像の保存に失敗しました: %w", err)
	}

	slog.Info("画像生成が完了しました", "output", outputPath, "duration", time.Since(startTime).Round(time.Millisecond))
	return outputPath, nil
}
