package store

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/shouni/go-prompt-studio/pkg/domain"
)

// 保存スロットに対する操作結果を区別するためのセンチネルエラー群です。
var (
	// ErrNotFound はスロットに保存データが存在しないことを示します。
	ErrNotFound = errors.New("保存されたプロジェクトが見つかりません")
	// ErrCorruptData は保存データが Project の形に復元できないことを示します。
	ErrCorruptData = errors.New("保存データの解析に失敗しました")
	// ErrStorage はスロットへの書き込みに失敗したことを示します。
	ErrStorage = errors.New("プロジェクトの保存に失敗しました")
)

// ProjectStore はプロジェクト1件を固定スロット（単一のJSONファイル）へ
// 読み書きする永続化アダプタです。バージョン管理もマイグレーションも行わず、
// 保存は常に全構造のスナップショット上書き（last-write-wins）です。
type ProjectStore struct {
	path string
}

// NewProjectStore は path をスロットとするストアを生成します。
func NewProjectStore(path string) *ProjectStore {
	return &ProjectStore{path: path}
}

// Path はスロットのファイルパスを返します。
func (s *ProjectStore) Path() string {
	return s.path
}

// Save はプロジェクト全体をJSONとして書き込みます。
// 一時ファイルへ書いてから rename する原子的な上書きです。
func (s *ProjectStore) Save(project domain.Project) error {
	data, err := json.MarshalIndent(project, "", "  ")
	if err != nil {
		return fmt.Errorf("%w: %v", ErrStorage, err)
	}

	dir := filepath.Dir(s.path)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return fmt.Errorf("%w: %v", ErrStorage, err)
	}

	tempPath := s.path + ".tmp"
	if err := os.WriteFile(tempPath, data, 0644); err != nil {
		return fmt.Errorf("%w: %v", ErrStorage, err)
	}
	if err := os.Rename(tempPath, s.path); err != nil {
		os.Remove(tempPath)
		return fmt.Errorf("%w: %v", ErrStorage, err)
	}
	return nil
}

// Load はスロットからプロジェクトを復元します。
// データが無ければ ErrNotFound、Projectの形に合わなければ ErrCorruptData を返します。
// 成功時は直近に保存した値と構造的に等しいプロジェクトが得られます。
func (s *ProjectStore) Load() (domain.Project, error) {
	data, err := os.ReadFile(s.path)
	if err != nil {
		if os.IsNotExist(err) {
			return domain.Project{}, ErrNotFound
		}
		return domain.Project{}, fmt.Errorf("%w: %v", ErrCorruptData, err)
	}

	project, err := decodeProject(data)
	if err != nil {
		return domain.Project{}, err
	}
	return project, nil
}

// decodeProject はJSONバイト列をProjectへ復元し、形の検証を行います。
// 未知のフィールドや不変条件の破れは黙って受け入れず ErrCorruptData として報告します。
func decodeProject(data []byte) (domain.Project, error) {
	dec := json.NewDecoder(bytes.NewReader(data))
	dec.DisallowUnknownFields()

	var project domain.Project
	if err := dec.Decode(&project); err != nil {
		return domain.Project{}, fmt.Errorf("%w: %v", ErrCorruptData, err)
	}
	if dec.More() {
		return domain.Project{}, fmt.Errorf("%w: 本体の後ろに余分なデータがあります", ErrCorruptData)
	}
	if len(project.Scenes) == 0 {
		return domain.Project{}, fmt.Errorf("%w: シーンが1件もありません", ErrCorruptData)
	}
	if !project.Mode.Valid() {
		return domain.Project{}, fmt.Errorf("%w: 不明なモードです: %q", ErrCorruptData, project.Mode)
	}
	return project, nil
}
