// Package generation は、合成済みリクエストをホスト型の生成テキストAPIへ
// 送信する薄いクライアント層です。リトライもバックオフも行わず、1回の
// 呼び出しは完了するか ServiceError で失敗するかのどちらかです。
package generation

import (
	"context"
	"strings"
	"sync"

	"github.com/shouni/go-gemini-client/gemini"
	"google.golang.org/genai"

	"github.com/shouni/go-prompt-studio/pkg/prompts"
)

// TextService は、合成済みリクエスト1件を1回のAPI呼び出しで実行する契約です。
type TextService interface {
	// GenerateText は応答の本文テキストを前後の空白を除去して返します。
	GenerateText(ctx context.Context, req prompts.Request) (string, error)
}

// ServiceError は生成API呼び出しの失敗を操作単位のメッセージ付きで表します。
// 通信・認証・応答不正のいずれであっても、境界で一様にこの型へ変換されます。
type ServiceError struct {
	Op      prompts.Op
	Message string
	Err     error
}

func (e *ServiceError) Error() string {
	return e.Message
}

func (e *ServiceError) Unwrap() error {
	return e.Err
}

// opMessages は呼び出し箇所ごとの利用者向けメッセージです。
// どの段階で失敗したかを表示側が区別できるよう、操作ごとに文言を分けています。
var opMessages = map[prompts.Op]string{
	prompts.OpEnhance:           "シーン描写の拡張に失敗しました。",
	prompts.OpCompleteCharacter: "キャラクター描写の補完に失敗しました。",
	prompts.OpFinalPrompt:       "プロンプトの生成に失敗しました。APIキーと接続を確認してください。",
}

// newServiceError は err を操作 op に対応する ServiceError へ包み直します。
func newServiceError(op prompts.Op, err error) *ServiceError {
	message, ok := opMessages[op]
	if !ok {
		message = "生成APIの呼び出しに失敗しました。"
	}
	return &ServiceError{Op: op, Message: message, Err: err}
}

// GeminiTextService は go-gemini-client を用いた TextService の実装です。
// 温度はクライアント生成時に固定される仕様のため、要求された温度ごとに
// クライアントを遅延生成してキャッシュします。
type GeminiTextService struct {
	apiKey string
	model  string

	mu      sync.Mutex
	clients map[float32]gemini.GenerativeModel
}

// NewGeminiTextService は API キーと固定のモデル識別子からサービスを生成します。
// キーの検証は行わず、最初の呼び出し時に接続ごと失敗として報告されます。
func NewGeminiTextService(apiKey, model string) *GeminiTextService {
	return &GeminiTextService{
		apiKey:  apiKey,
		model:   model,
		clients: make(map[float32]gemini.GenerativeModel),
	}
}

// GenerateText は1回のAPI呼び出しを実行し、応答本文を返します。
func (s *GeminiTextService) GenerateText(ctx context.Context, req prompts.Request) (string, error) {
	client, err := s.clientFor(ctx, req.Temperature)
	if err != nil {
		return "", newServiceError(req.Op, err)
	}

	resp, err := client.GenerateContent(ctx, BuildPayload(req), s.model)
	if err != nil {
		return "", newServiceError(req.Op, err)
	}
	return strings.TrimSpace(resp.Text), nil
}

// clientFor は温度 temperature に対応するクライアントを取得します。
func (s *GeminiTextService) clientFor(ctx context.Context, temperature float32) (gemini.GenerativeModel, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if client, ok := s.clients[temperature]; ok {
		return client, nil
	}

	client, err := gemini.NewClient(ctx, gemini.Config{
		APIKey:      s.apiKey,
		Temperature: genai.Ptr(temperature),
	})
	if err != nil {
		return nil, err
	}
	s.clients[temperature] = client
	return client, nil
}

// BuildPayload は、システム指示とユーザープロンプトを1つの送信テキストに
// 直列化します。セクション見出しで役割を明示する形式です。
func BuildPayload(req prompts.Request) string {
	var sb strings.Builder
	sb.WriteString("### SYSTEM INSTRUCTION ###\n")
	sb.WriteString(req.Instruction)
	sb.WriteString("\n\n### USER REQUEST ###\n")
	sb.WriteString(req.UserPrompt)
	return sb.String()
}
