package cmd

import (
	"fmt"
	"log/slog"

	"github.com/spf13/cobra"
)

// enhanceCmd は、アクティブシーンの短い描写をAIで映画的な1段落へ拡張するのだ。
var enhanceCmd = &cobra.Command{
	Use:   "enhance",
	Short: "アクティブシーンの描写をAIで拡張するのだ。",
	Long: `--scene で指定したシーンの描写（description）を、感覚的・雰囲気重視の
映画的な1段落へ書き換えるのだ。描写が空のシーンでは何もしないのだよ。`,
	RunE: enhanceCommand,
}

func enhanceCommand(cmd *cobra.Command, args []string) error {
	cfg := loadAppConfig()
	if err := requireAPIKey(cfg); err != nil {
		return err
	}

	st, err := newStudio(cfg)
	if err != nil {
		return err
	}

	slog.Info("シーン描写の拡張を開始するのだ！", "scene", st.ActiveIndex()+1, "model", cfg.GeminiModel)
	changed, err := st.EnhanceActiveScene(cmd.Context())
	if err != nil {
		return err
	}
	if !changed {
		return fmt.Errorf("シーン %d の描写が空なので拡張できないのだ", st.ActiveIndex()+1)
	}

	if err := st.Save(); err != nil {
		return err
	}

	fmt.Println(st.ActiveScene().Description)
	return nil
}

// completeCmd は、CAP（キャラクター・舞台設定）の続きをAIに書かせるのだ。
var completeCmd = &cobra.Command{
	Use:   "complete",
	Short: "キャラクター・舞台設定（CAP）の続きをAIに書かせるのだ。",
	Long: `CAPの既存テキストはそのまま残し、AIが書いた続きを半角スペース1つを
挟んで末尾に追記するのだ。置き換えではないのだよ。`,
	RunE: completeCommand,
}

func completeCommand(cmd *cobra.Command, args []string) error {
	cfg := loadAppConfig()
	if err := requireAPIKey(cfg); err != nil {
		return err
	}

	st, err := newStudio(cfg)
	if err != nil {
		return err
	}

	slog.Info("キャラクター描写の補完を開始するのだ！", "model", cfg.GeminiModel)
	changed, err := st.CompleteCharacter(cmd.Context())
	if err != nil {
		return err
	}
	if !changed {
		return fmt.Errorf("CAPが空なので補完できないのだ。先に set --cap で設定するのだよ")
	}

	if err := st.Save(); err != nil {
		return err
	}

	fmt.Println(st.Project().CharacterSceneCap)
	return nil
}
