package cmd

import (
	"fmt"
	"log/slog"

	"github.com/spf13/cobra"
)

// sceneCmd は、シーンの追加・削除・編集をまとめる親コマンドなのだ。
var sceneCmd = &cobra.Command{
	Use:   "scene",
	Short: "シーンの追加・削除・編集を行うのだ。",
}

var sceneAddCmd = &cobra.Command{
	Use:   "add",
	Short: "末尾に空のシーンを追加するのだ。",
	RunE:  sceneAddCommand,
}

var sceneRemoveCmd = &cobra.Command{
	Use:   "remove",
	Short: "--scene で指定したシーンを削除するのだ。",
	Long:  `シーンが1つしか無いときは削除できないのだ。アクティブシーンは削除後の範囲に収まるよう調整されるのだよ。`,
	RunE:  sceneRemoveCommand,
}

var sceneSetCmd = &cobra.Command{
	Use:     "set",
	Short:   "--scene で指定したシーンのフィールドを置き換えるのだ。",
	Example: `  prompt-studio scene set -s 2 --mood "Tense, electric" --camera "Low-angle tracking shot"`,
	RunE:    sceneSetCommand,
}

var sceneFlags struct {
	description string
	action      string
	mood        string
	cta         string
	camera      string
}

func init() {
	sceneSetCmd.Flags().StringVar(&sceneFlags.description, "description", "", "シーンの描写なのだ。")
	sceneSetCmd.Flags().StringVar(&sceneFlags.action, "action", "", "シーン内の主要なアクションなのだ。")
	sceneSetCmd.Flags().StringVar(&sceneFlags.mood, "mood", "", "ムード・雰囲気なのだ。")
	sceneSetCmd.Flags().StringVar(&sceneFlags.cta, "cta", "", "コール・トゥ・アクション（テーマ）なのだ。")
	sceneSetCmd.Flags().StringVar(&sceneFlags.camera, "camera", "", "カメラアングルなのだ。")

	sceneCmd.AddCommand(sceneAddCmd, sceneRemoveCmd, sceneSetCmd)
}

func sceneAddCommand(cmd *cobra.Command, args []string) error {
	cfg := loadAppConfig()
	st, err := newStudio(cfg)
	if err != nil {
		return err
	}

	st.AddScene()
	if err := st.Save(); err != nil {
		return err
	}

	slog.Info("シーンを追加したのだ！", "scene", st.ActiveIndex()+1, "total", len(st.Project().Scenes))
	return nil
}

func sceneRemoveCommand(cmd *cobra.Command, args []string) error {
	cfg := loadAppConfig()
	st, err := newStudio(cfg)
	if err != nil {
		return err
	}

	index := cfg.Options.SceneIndex - 1
	if !st.RemoveScene(index) {
		return fmt.Errorf("シーン %d は削除できないのだ（最後の1つは残す必要があるのだよ）", cfg.Options.SceneIndex)
	}
	if err := st.Save(); err != nil {
		return err
	}

	slog.Info("シーンを削除したのだ！", "removed", cfg.Options.SceneIndex, "total", len(st.Project().Scenes))
	return nil
}

func sceneSetCommand(cmd *cobra.Command, args []string) error {
	cfg := loadAppConfig()
	st, err := newStudio(cfg)
	if err != nil {
		return err
	}

	// シーンはレコードごと置き換える方式なのだ
	scene := st.ActiveScene()
	if cmd.Flags().Changed("description") {
		scene.Description = sceneFlags.description
	}
	if cmd.Flags().Changed("action") {
		scene.Action = sceneFlags.action
	}
	if cmd.Flags().Changed("mood") {
		scene.Mood = sceneFlags.mood
	}
	if cmd.Flags().Changed("cta") {
		scene.CTA = sceneFlags.cta
	}
	if cmd.Flags().Changed("camera") {
		scene.CameraAngle = sceneFlags.camera
	}
	st.ReplaceActiveScene(scene)

	if err := st.Save(); err != nil {
		return err
	}

	slog.Info("シーンを更新したのだ！", "scene", st.ActiveIndex()+1)
	return nil
}
