// Package studio は、編集中のプロジェクトと操作状態を1か所で所有する
// コントローラです。フィールド編集はすべてレコード置き換え方式で行い、
// 生成・永続化の各操作をプロンプト合成層とクライアント層へ接続します。
package studio

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"golang.org/x/sync/errgroup"
	"golang.org/x/time/rate"

	"github.com/shouni/go-prompt-studio/pkg/domain"
	"github.com/shouni/go-prompt-studio/pkg/generation"
	"github.com/shouni/go-prompt-studio/pkg/prompts"
	"github.com/shouni/go-prompt-studio/pkg/store"
)

// ErrBusy は別の生成操作が進行中であることを示します。
// 操作側の制御無効化に相当する助言的な排他であり、データ層の保証ではありません。
var ErrBusy = errors.New("別の生成処理が実行中です")

const batchRateBurst = 1

// Studio はプロジェクト本体・アクティブシーン番号・実行中フラグ・
// エラーバナーを所有するコントローラです。1つの論理スレッドから
// 操作される前提で、ロックは持ちません。
type Studio struct {
	project     domain.Project
	activeIndex int

	svc   generation.TextService
	slots *store.ProjectStore

	enhancing  bool
	completing bool
	generating bool
	banner     string
}

// New は既定プロジェクトを持つコントローラを生成します。
func New(svc generation.TextService, slots *store.ProjectStore) *Studio {
	return &Studio{
		project: domain.NewProject(),
		svc:     svc,
		slots:   slots,
	}
}

// Project は現在のプロジェクトの複製を返します。
func (s *Studio) Project() domain.Project {
	return s.project.Clone()
}

// SetProject はプロジェクト全体を差し替え、アクティブ番号を丸め込みます。
func (s *Studio) SetProject(project domain.Project) {
	s.project = project.Clone()
	s.activeIndex = domain.ClampSceneIndex(s.activeIndex, len(s.project.Scenes))
}

// ActiveIndex は現在のアクティブシーン番号を返します。
func (s *Studio) ActiveIndex() int {
	return s.activeIndex
}

// ActiveScene はアクティブシーンの値コピーを返します。
func (s *Studio) ActiveScene() domain.Scene {
	return s.project.SceneAt(s.activeIndex)
}

// SelectScene はアクティブシーンを切り替えます。範囲外は丸め込まれます。
func (s *Studio) SelectScene(index int) {
	s.activeIndex = domain.ClampSceneIndex(index, len(s.project.Scenes))
}

// Banner は直近の操作エラーの利用者向けメッセージを返します。
// 次の操作が始まるとクリアされます。
func (s *Studio) Banner() string {
	return s.banner
}

// Busy はいずれかの生成操作が進行中かどうかを返します。
func (s *Studio) Busy() bool {
	return s.enhancing || s.completing || s.generating
}

// --- フィールド編集（すべて置き換え方式） ---

// SetName はプロジェクト名を更新します。
func (s *Studio) SetName(name string) {
	copied := s.project.Clone()
	copied.Name = name
	s.project = copied
}

// SetMode は生成モードを更新します。閉じた列挙に無い値は無視されます。
func (s *Studio) SetMode(mode domain.Mode) {
	if !mode.Valid() {
		return
	}
	copied := s.project.Clone()
	copied.Mode = mode
	s.project = copied
}

// SetStylePreset は名前でカタログを引き、プリセットを値コピーで取り込みます。
// 見つからない場合は先頭エントリへフォールバックします。
func (s *Studio) SetStylePreset(name string) {
	preset, ok := domain.StylePresetByName(name)
	if !ok {
		slog.Debug("スタイルプリセットが見つからないため既定値を使います", "requested", name, "fallback", preset.Name)
	}
	copied := s.project.Clone()
	copied.StylePreset = preset
	s.project = copied
}

// SetCharacterCap はキャラクター・舞台設定の概要（CAP）を更新します。
func (s *Studio) SetCharacterCap(cap string) {
	copied := s.project.Clone()
	copied.CharacterSceneCap = cap
	s.project = copied
}

// SetNSFW は成年向けフラグを更新します。
func (s *Studio) SetNSFW(nsfw bool) {
	copied := s.project.Clone()
	copied.IsNSFW = nsfw
	s.project = copied
}

// ReplaceActiveScene はアクティブシーンをレコードごと差し替えます。
func (s *Studio) ReplaceActiveScene(scene domain.Scene) {
	s.project = s.project.ReplaceScene(s.activeIndex, scene)
}

// AddScene は末尾に空シーンを追加し、それをアクティブにします。
func (s *Studio) AddScene() {
	s.project = s.project.AppendScene()
	s.activeIndex = len(s.project.Scenes) - 1
}

// RemoveScene は index のシーンを取り除きます。最後の1件は取り除けず、
// その場合は false を返してプロジェクトには触れません。
func (s *Studio) RemoveScene(index int) bool {
	removed, ok := s.project.RemoveScene(index)
	if !ok {
		return false
	}
	s.project = removed
	if s.activeIndex >= index && s.activeIndex > 0 {
		s.activeIndex--
	}
	s.activeIndex = domain.ClampSceneIndex(s.activeIndex, len(s.project.Scenes))
	return true
}

// --- 生成操作 ---

// EnhanceActiveScene はアクティブシーンの描写をAIで1段落の映画的な記述へ
// 拡張します。描写が空のときは呼び出しを見送り false を返します。
func (s *Studio) EnhanceActiveScene(ctx context.Context) (bool, error) {
	scene := s.ActiveScene()
	if scene.Description == "" {
		return false, nil
	}
	if s.Busy() {
		return false, ErrBusy
	}

	s.enhancing = true
	s.banner = ""
	defer func() { s.enhancing = false }()

	text, err := s.svc.GenerateText(ctx, prompts.ComposeEnhance(scene.Description))
	if err != nil {
		s.banner = bannerMessage(err)
		return false, err
	}

	scene.Description = text
	s.ReplaceActiveScene(scene)
	return true, nil
}

// CompleteCharacter はCAPの続きをAIに書かせ、既存テキストへ半角スペース
// 1つを挟んで追記します。置き換えは行いません。CAPが空のときは見送ります。
func (s *Studio) CompleteCharacter(ctx context.Context) (bool, error) {
	current := s.project.CharacterSceneCap
	if current == "" {
		return false, nil
	}
	if s.Busy() {
		return false, ErrBusy
	}

	s.completing = true
	s.banner = ""
	defer func() { s.completing = false }()

	text, err := s.svc.GenerateText(ctx, prompts.ComposeCharacterCompletion(current))
	if err != nil {
		s.banner = bannerMessage(err)
		return false, err
	}

	s.SetCharacterCap(current + " " + text)
	return true, nil
}

// GeneratePrompt はプロジェクト設定とアクティブシーンから最終プロンプトを
// 生成し、Project.GeneratedPrompt へ書き戻します。
func (s *Studio) GeneratePrompt(ctx context.Context) (string, error) {
	if s.Busy() {
		return "", ErrBusy
	}

	s.generating = true
	s.banner = ""
	defer func() { s.generating = false }()

	req, err := prompts.ComposeFinalPrompt(s.project, s.ActiveScene())
	if err != nil {
		s.banner = bannerMessage(err)
		return "", err
	}

	text, err := s.svc.GenerateText(ctx, req)
	if err != nil {
		s.banner = bannerMessage(err)
		return "", err
	}

	copied := s.project.Clone()
	copied.GeneratedPrompt = text
	s.project = copied
	return text, nil
}

// GenerateAllScenes は全シーン分の最終プロンプトをレートリミッタ越しに
// 並行生成し、シーン順のスライスで返します。プロジェクト本体は変更しません。
func (s *Studio) GenerateAllScenes(ctx context.Context, interval time.Duration) ([]string, error) {
	if s.Busy() {
		return nil, ErrBusy
	}

	s.generating = true
	s.banner = ""
	defer func() { s.generating = false }()

	project := s.project.Clone()
	limiter := rate.NewLimiter(rate.Every(interval), batchRateBurst)
	results := make([]string, len(project.Scenes))

	eg, egCtx := errgroup.WithContext(ctx)
	for i, scene := range project.Scenes {
		i, scene := i, scene
		eg.Go(func() error {
			if err := limiter.Wait(egCtx); err != nil {
				return err
			}

			req, err := prompts.ComposeFinalPrompt(project, scene)
			if err != nil {
				return err
			}

			slog.Info("シーンのプロンプト生成を開始します", "scene", i+1, "total", len(project.Scenes))
			text, err := s.svc.GenerateText(egCtx, req)
			if err != nil {
				return fmt.Errorf("シーン %d の生成に失敗しました: %w", i+1, err)
			}
			results[i] = text
			return nil
		})
	}

	if err := eg.Wait(); err != nil {
		s.banner = bannerMessage(err)
		return nil, err
	}
	return results, nil
}

// --- 永続化 ---

// Save は現在のプロジェクトを固定スロットへスナップショット保存します。
func (s *Studio) Save() error {
	s.banner = ""
	if err := s.slots.Save(s.project); err != nil {
		s.banner = bannerMessage(err)
		return err
	}
	return nil
}

// Load は固定スロットからプロジェクトを復元します。成功するとアクティブ
// シーンは先頭へ戻ります。失敗してもメモリ上のプロジェクトは変化しません。
func (s *Studio) Load() error {
	s.banner = ""
	project, err := s.slots.Load()
	if err != nil {
		s.banner = bannerMessage(err)
		return err
	}
	s.project = project
	s.activeIndex = 0
	return nil
}

// bannerMessage は err をバナー表示用の1行メッセージへ変換します。
// ServiceError は操作単位の文言をそのまま使います。
func bannerMessage(err error) string {
	var svcErr *generation.ServiceError
	if errors.As(err, &svcErr) {
		return svcErr.Message
	}
	return err.Error()
}
