package cmd

import (
	"fmt"
	"log/slog"

	"github.com/shouni/go-prompt-studio/pkg/domain"
	"github.com/shouni/go-prompt-studio/pkg/render"

	"github.com/spf13/cobra"
)

// renderCmd は、生成済みの最終プロンプトを画像モデルで静止画にするのだ。
var renderCmd = &cobra.Command{
	Use:   "render",
	Short: "生成済みプロンプトから静止画を生成するのだ。",
	Long: `generate で保存された最終プロンプトを Gemini の画像モデルに渡し、
1枚の静止画として --output-image のパス（ローカル or gs://...）へ保存するのだ。
画像モードのプロジェクト専用なのだよ。`,
	Example: "  prompt-studio render -o output/hero_shot.png",
	RunE:    renderCommand,
}

func renderCommand(cmd *cobra.Command, args []string) error {
	ctx := cmd.Context()
	cfg := loadAppConfig()
	if err := requireAPIKey(cfg); err != nil {
		return err
	}

	st, err := newStudio(cfg)
	if err != nil {
		return err
	}
	project := st.Project()

	if project.Mode != domain.ModeImage {
		return fmt.Errorf("render は画像モード専用なのだ（現在のモード: %s）", project.Mode)
	}
	if project.GeneratedPrompt == "" {
		return fmt.Errorf("生成済みプロンプトが無いのだ。先に generate を実行するのだよ")
	}

	renderer, err := render.New(ctx, cfg.GeminiAPIKey, cfg.ImageModel, cfg.Options.HTTPTimeout)
	if err != nil {
		return err
	}

	slog.Info("静止画の生成を開始するのだ！", "image_model", cfg.ImageModel, "output", cfg.Options.OutputImage)
	path, err := renderer.Render(ctx, project.GeneratedPrompt, project.StylePreset.Prompt, cfg.Options.OutputImage)
	if err != nil {
		return fmt.Errorf("静止画の生成に失敗したのだ: %w", err)
	}

	slog.Info("静止画が完成したのだ！", "path", path)
	return nil
}
