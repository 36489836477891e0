package cmd

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/shouni/go-prompt-studio/internal/config"
	"github.com/shouni/go-prompt-studio/pkg/generation"
	"github.com/shouni/go-prompt-studio/pkg/store"
	"github.com/shouni/go-prompt-studio/pkg/studio"

	"github.com/spf13/cobra"
)

// opts は全コマンド共通の実行時パラメータなのだ。
var opts config.StudioOptions

var rootCmd = &cobra.Command{
	Use:   "prompt-studio",
	Short: "AI生成向けのプロンプトを組み立てるスタジオなのだ。",
	Long: `プロジェクト（スタイル・キャラクター設定・シーン群）を編集し、
Gemini を使ってシーン描写の拡張・キャラクター補完・最終プロンプト生成を行うツールなのだ。
プロジェクトは1つの固定スロット（JSONファイル）に保存されるのだよ。`,
	SilenceUsage: true,
}

// addAppFlags は、アプリケーション全般に適用されるグローバルフラグを定義するのだ。
func addAppFlags(cmd *cobra.Command) {
	cmd.PersistentFlags().StringVarP(&opts.ProjectFile, "project-file", "f", config.DefaultProjectFile, "プロジェクトの保存スロット（JSONファイル）のパスなのだ。")
	cmd.PersistentFlags().IntVarP(&opts.SceneIndex, "scene", "s", 1, "操作対象のシーン番号（1始まり）なのだ。")
	cmd.PersistentFlags().StringVar(&opts.AIModel, "model", "", "使用する Gemini モデル名なのだ（未指定なら環境変数か既定値）。")
	cmd.PersistentFlags().StringVar(&opts.ImageModel, "image-model", "", "画像生成に使う Gemini モデル名なのだ。")
	cmd.PersistentFlags().StringVarP(&opts.OutputImage, "output-image", "o", config.DefaultOutputImage, "render の保存先（ローカル or gs://...）なのだ。")
	cmd.PersistentFlags().DurationVar(&opts.HTTPTimeout, "http-timeout", config.DefaultHTTPTimeout, "Webリクエストのタイムアウトなのだ。")
	cmd.PersistentFlags().DurationVar(&opts.RateInterval, "rate-interval", config.DefaultRateInterval, "batch 実行時のAPI呼び出し間隔なのだ。")
}

// loadAppConfig は環境変数とフラグをマージした設定を返すのだ。
func loadAppConfig() *config.Config {
	cfg := config.LoadConfig()
	if opts.AIModel != "" {
		cfg.GeminiModel = opts.AIModel
	}
	if opts.ImageModel != "" {
		cfg.ImageModel = opts.ImageModel
	}
	cfg.Options = opts
	return cfg
}

// requireAPIKey はネットワークを使うコマンドの実行前チェックなのだ。
func requireAPIKey(cfg *config.Config) error {
	if cfg.GeminiAPIKey == "" {
		return fmt.Errorf("エラー: 環境変数 GEMINI_API_KEY が設定されていません。Gemini APIの利用には必須なのだ")
	}
	return nil
}

// newStudio は保存スロットとクライアントを束ねたコントローラを組み立てるのだ。
// スロットに保存済みデータがあれば読み込み、無ければ既定プロジェクトで始めるのだ。
func newStudio(cfg *config.Config) (*studio.Studio, error) {
	slots := store.NewProjectStore(cfg.Options.ProjectFile)
	svc := generation.NewGeminiTextService(cfg.GeminiAPIKey, cfg.GeminiModel)

	st := studio.New(svc, slots)
	if err := st.Load(); err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return st, nil
		}
		return nil, err
	}

	// フラグで指定されたシーン番号（1始まり）をアクティブにするのだ
	st.SelectScene(cfg.Options.SceneIndex - 1)
	return st, nil
}

func init() {
	addAppFlags(rootCmd)
	rootCmd.AddCommand(
		initCmd,
		showCmd,
		presetsCmd,
		setCmd,
		sceneCmd,
		enhanceCmd,
		completeCmd,
		generateCmd,
		batchCmd,
		renderCmd,
	)
}

// Execute は、アプリケーションのメインエントリポイントなのだ。
// main.go から呼び出されて、cobra のコマンドライン解析を開始するのだよ。
func Execute() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := rootCmd.ExecuteContext(ctx); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
