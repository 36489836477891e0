package cmd

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/shouni/go-prompt-studio/pkg/studio"

	"github.com/spf13/cobra"
)

// generateCmd は、プロジェクト設定とアクティブシーンから最終プロンプトを生成するのだ。
var generateCmd = &cobra.Command{
	Use:   "generate",
	Short: "アクティブシーンから最終プロンプトを生成するのだ。",
	Long: `スタイル・ムード・カメラ・CAP・シーン描写をひとつの構造テンプレートに
まとめて Gemini へ送り、完成された1段落のプロンプトを受け取るのだ。
結果はプロジェクトに保存され、標準出力にも表示されるのだよ。`,
	Example: "  prompt-studio generate -s 1 > prompt.txt",
	RunE:    generateCommand,
}

func generateCommand(cmd *cobra.Command, args []string) error {
	cfg := loadAppConfig()
	if err := requireAPIKey(cfg); err != nil {
		return err
	}

	st, err := newStudio(cfg)
	if err != nil {
		return err
	}

	slog.Info("最終プロンプトの生成を開始するのだ！", "scene", st.ActiveIndex()+1, "model", cfg.GeminiModel)

	// 生成を待つ間、ステータス文言をくるくる回すのだ
	statusCtx, stopStatus := context.WithCancel(cmd.Context())
	rotator := studio.NewStatusRotator()
	go rotator.Run(statusCtx, studio.DefaultStatusInterval, func(message string) {
		slog.Info(message)
	})

	prompt, err := st.GeneratePrompt(cmd.Context())
	stopStatus()
	if err != nil {
		return err
	}

	if err := st.Save(); err != nil {
		return err
	}

	fmt.Println(prompt)
	return nil
}

// batchCmd は、全シーン分の最終プロンプトをまとめて生成するのだ。
var batchCmd = &cobra.Command{
	Use:   "batch",
	Short: "全シーンの最終プロンプトを並行生成するのだ。",
	Long: `プロジェクト内のすべてのシーンについて最終プロンプトを生成するのだ。
API呼び出しは --rate-interval の間隔でレート制御しつつ並行実行されるのだよ。
結果は標準出力にシーン順で表示され、プロジェクト本体は変更されないのだ。`,
	RunE: batchCommand,
}

func batchCommand(cmd *cobra.Command, args []string) error {
	cfg := loadAppConfig()
	if err := requireAPIKey(cfg); err != nil {
		return err
	}

	st, err := newStudio(cfg)
	if err != nil {
		return err
	}

	total := len(st.Project().Scenes)
	slog.Info("全シーンの一括生成を開始するのだ！", "scenes", total, "interval", cfg.Options.RateInterval)

	results, err := st.GenerateAllScenes(cmd.Context(), cfg.Options.RateInterval)
	if err != nil {
		return err
	}

	for i, prompt := range results {
		fmt.Printf("=== Scene %d ===\n%s\n\n", i+1, prompt)
	}

	slog.Info("一括生成が完了したのだ！", "scenes", total)
	return nil
}
