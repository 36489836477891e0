package cmd

import (
	"fmt"
	"log/slog"

	"github.com/shouni/go-prompt-studio/pkg/domain"
	"github.com/shouni/go-prompt-studio/pkg/store"
	"github.com/shouni/go-prompt-studio/pkg/studio"

	"github.com/spf13/cobra"
)

// initCmd は、既定のシーンを1つ持つ新しいプロジェクトでスロットを初期化するのだ。
var initCmd = &cobra.Command{
	Use:   "init",
	Short: "新しいプロジェクトで保存スロットを初期化するのだ。",
	Long:  `既定のシーンを1つ持つ初期状態のプロジェクトを作り、保存スロットへ書き込むのだ。既存の保存データは上書きされるのだよ。`,
	RunE:  initCommand,
}

func initCommand(cmd *cobra.Command, args []string) error {
	cfg := loadAppConfig()
	slots := store.NewProjectStore(cfg.Options.ProjectFile)

	project := domain.NewProject()
	if err := slots.Save(project); err != nil {
		return err
	}

	slog.Info("プロジェクトを初期化したのだ！", "name", project.Name, "slot", slots.Path())
	return nil
}

// showCmd は、保存されているプロジェクトの内容を表示するのだ。
var showCmd = &cobra.Command{
	Use:   "show",
	Short: "プロジェクトの現在の内容を表示するのだ。",
	Long:  `保存スロットからプロジェクトを読み込み、設定・シーン一覧・直近の生成結果を表示するのだ。生成結果は標準出力に出るので、パイプやリダイレクトでそのまま再利用できるのだよ。`,
	RunE:  showCommand,
}

func showCommand(cmd *cobra.Command, args []string) error {
	cfg := loadAppConfig()
	st, err := newStudio(cfg)
	if err != nil {
		return err
	}

	printProject(st)
	return nil
}

// printProject はプロジェクトの要約を標準出力へ書き出すのだ。
func printProject(st *studio.Studio) {
	project := st.Project()

	fmt.Printf("Project: %s (mode=%s, style=%q, nsfw=%t)\n", project.Name, project.Mode, project.StylePreset.Name, project.IsNSFW)
	fmt.Printf("CAP: %s\n", project.CharacterSceneCap)
	for i, scene := range project.Scenes {
		marker := " "
		if i == st.ActiveIndex() {
			marker = "*"
		}
		fmt.Printf("%s Scene %d: %s\n", marker, i+1, scene.Description)
		if scene.Action != "" {
			fmt.Printf("    Action: %s\n", scene.Action)
		}
		if scene.Mood != "" {
			fmt.Printf("    Mood: %s\n", scene.Mood)
		}
		if scene.CTA != "" {
			fmt.Printf("    CTA: %s\n", scene.CTA)
		}
		if scene.CameraAngle != "" {
			fmt.Printf("    Camera: %s\n", scene.CameraAngle)
		}
	}
	if project.GeneratedPrompt != "" {
		fmt.Printf("\n--- Generated Prompt ---\n%s\n", project.GeneratedPrompt)
	}
}

// presetsCmd は、選択可能なスタイル・キャラクターのカタログを表示するのだ。
var presetsCmd = &cobra.Command{
	Use:   "presets",
	Short: "スタイルとキャラクターのプリセット一覧を表示するのだ。",
	RunE:  presetsCommand,
}

func presetsCommand(cmd *cobra.Command, args []string) error {
	fmt.Println("Style Presets:")
	for i, preset := range domain.StylePresets() {
		marker := " "
		if i == 0 {
			marker = "*" // 先頭がカタログ未ヒット時の既定値なのだ
		}
		fmt.Printf("%s %s: %s\n", marker, preset.Name, preset.Prompt)
	}

	fmt.Println("\nCharacter Presets:")
	for _, preset := range domain.CharacterPresets() {
		fmt.Printf("  %s: %s\n", preset.Name, preset.Description)
	}
	return nil
}

// setCmd は、プロジェクトレベルの設定フィールドを置き換えるのだ。
var setCmd = &cobra.Command{
	Use:   "set",
	Short: "プロジェクト設定（名前・モード・スタイルなど）を更新するのだ。",
	Long: `指定したフラグのフィールドだけを置き換えて保存するのだ。
モードは image / video / story、スタイルとキャラクターテンプレートは presets コマンドの名前で指定するのだよ。`,
	Example: `  prompt-studio set --name "Neon Nights" --mode video --style "Cyberpunk Noir"`,
	RunE:    setCommand,
}

var setFlags struct {
	name      string
	mode      string
	style     string
	cap       string
	capPreset string
	nsfw      bool
}

func init() {
	setCmd.Flags().StringVar(&setFlags.name, "name", "", "プロジェクト名なのだ。")
	setCmd.Flags().StringVar(&setFlags.mode, "mode", "", "生成モード（image / video / story）なのだ。")
	setCmd.Flags().StringVar(&setFlags.style, "style", "", "スタイルプリセット名なのだ。")
	setCmd.Flags().StringVar(&setFlags.cap, "cap", "", "キャラクター・舞台設定の概要（CAP）なのだ。")
	setCmd.Flags().StringVar(&setFlags.capPreset, "cap-preset", "", "キャラクターテンプレート名からCAPを設定するのだ。")
	setCmd.Flags().BoolVar(&setFlags.nsfw, "nsfw", false, "成年向けフラグなのだ。")
}

func setCommand(cmd *cobra.Command, args []string) error {
	cfg := loadAppConfig()
	st, err := newStudio(cfg)
	if err != nil {
		return err
	}

	if cmd.Flags().Changed("name") {
		st.SetName(setFlags.name)
	}
	if cmd.Flags().Changed("mode") {
		mode := domain.Mode(setFlags.mode)
		if !mode.Valid() {
			return fmt.Errorf("不明なモードなのだ: %q (image / video / story から選ぶのだ)", setFlags.mode)
		}
		st.SetMode(mode)
	}
	if cmd.Flags().Changed("style") {
		st.SetStylePreset(setFlags.style)
	}
	if cmd.Flags().Changed("cap-preset") {
		preset, found := findCharacterPreset(setFlags.capPreset)
		if !found {
			return fmt.Errorf("キャラクターテンプレートが見つからないのだ: %q", setFlags.capPreset)
		}
		st.SetCharacterCap(preset.Description)
	}
	if cmd.Flags().Changed("cap") {
		st.SetCharacterCap(setFlags.cap)
	}
	if cmd.Flags().Changed("nsfw") {
		st.SetNSFW(setFlags.nsfw)
	}

	if err := st.Save(); err != nil {
		return err
	}
	slog.Info("プロジェクト設定を更新したのだ！")
	return nil
}

// findCharacterPreset は名前でキャラクターテンプレートを引き当てるのだ。
func findCharacterPreset(name string) (domain.CharacterPreset, bool) {
	for _, preset := range domain.CharacterPresets() {
		if preset.Name == name {
			return preset, true
		}
	}
	return domain.CharacterPreset{}, false
}
