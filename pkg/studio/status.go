package studio

import (
	"context"
	"time"
)

// loadingMessages は生成待ちの間に巡回表示するステータス文言です。
var loadingMessages = []string{
	"Consulting with script doctors...",
	"Lighting the set...",
	"Rolling camera...",
	"Crafting the perfect shot...",
	"And... action!",
}

// DefaultStatusInterval はステータス文言を切り替える既定の周期です。
const DefaultStatusInterval = 2500 * time.Millisecond

// StatusRotator はステータス文言を定義順に循環させます。
// UIだけが使う装飾であり、生成処理そのものには関与しません。
type StatusRotator struct {
	messages []string
	index    int
}

// NewStatusRotator は既定の文言セットを持つローテータを生成します。
func NewStatusRotator() *StatusRotator {
	return &StatusRotator{messages: loadingMessages}
}

// Current は現在の文言を返します。
func (r *StatusRotator) Current() string {
	return r.messages[r.index]
}

// Advance は次の文言へ進め、その文言を返します。末尾の次は先頭へ戻ります。
func (r *StatusRotator) Advance() string {
	r.index = (r.index + 1) % len(r.messages)
	return r.messages[r.index]
}

// Run は ctx が生きている間、interval ごとに文言を進めて emit へ渡します。
// 開始直後にも一度 emit します。
func (r *StatusRotator) Run(ctx context.Context, interval time.Duration, emit func(message string)) {
	emit(r.Current())

	ticker := time.NewTicker(interval)
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			emit(r.Advance())
		}
	}
}
