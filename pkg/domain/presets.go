package domain

// スタイルとキャラクターのプリセットカタログです。
// エントリは不変として扱い、利用側へは常に防御的コピーを渡します。

var stylePresets = []StylePreset{
	{Name: "Cinematic 8K", Prompt: "hyper-realistic, cinematic 8K, professional color grading, clean, sharp focus, epic"},
	{Name: "Anime Key Visual", Prompt: "vibrant anime style, key visual, detailed characters, dynamic composition, Makoto Shinkai inspired"},
	{Name: "Cyberpunk Noir", Prompt: "cyberpunk aesthetic, neon-drenched, rainy night, high-tech low-life, Blade Runner influence, noir"},
	{Name: "Fantasy Painting", Prompt: "epic fantasy, digital painting, high detail, matte painting, concept art, Lord of the Rings style"},
	{Name: "80s Retro Film", Prompt: "80s retro film look, grain, analog style, vibrant synthwave colors, nostalgic"},
	{Name: "Minimal Vector", Prompt: "clean vector art, minimalist, flat design, bold colors, graphic illustration"},
	{Name: "Documentary Still", Prompt: "realistic documentary photo, natural lighting, candid shot, National Geographic style, 35mm film"},
	{Name: "Pixel Art", Prompt: "8-bit pixel art, retro game style, limited color palette, chunky pixels"},
}

// CharacterPreset はキャラクター・舞台設定のテンプレートです。
type CharacterPreset struct {
	Name        string `json:"name"`
	Description string `json:"description"`
}

var characterPresets = []CharacterPreset{
	{Name: "Stunning Beauty", Description: "A stunningly beautiful woman of mixed Korean, Japanese and Taiwanese heritage, fair-skinned and irresistibly alluring, in a tight flame-red dress that accentuates her curves, full lips, sharp eyes hiding a mysterious depth"},
	{Name: "Ancient Warrior", Description: "A young warrior of an ancient age, muscular build, battle scars across his face, wearing worn leather armor that has survived countless battlefields, eyes sharp as a hawk's"},
	{Name: "Cyberpunk Detective", Description: "A private detective in a cyberpunk world, wearing a long rain coat, with cybernetic eyes that scan streams of data, standing amid neon lights and drizzling rain in a future megacity"},
	{Name: "Witch of the Deep Forest", Description: "A young witch deep in a mysterious forest, long flowing silver hair, wearing a dark green robe embroidered with vines, casting a spell that makes the air glow around her"},
	{Name: "Lonely Astronaut", Description: "An astronaut drifting in the silence of space, gazing at a colorful nebula through the visor, eyes reflecting both loneliness and the vastness of the universe"},
}

// StylePresets は選択可能なスタイルプリセットのカタログを返します。
func StylePresets() []StylePreset {
	copied := make([]StylePreset, len(stylePresets))
	copy(copied, stylePresets)
	return copied
}

// DefaultStylePreset はカタログの先頭エントリ（既定値）を返します。
func DefaultStylePreset() StylePreset {
	return stylePresets[0]
}

// StylePresetByName は名前でプリセットを引き当てます。
// 見つからない場合は先頭エントリへフォールバックし、ok に false を返します。
func StylePresetByName(name string) (StylePreset, bool) {
	for _, preset := range stylePresets {
		if preset.Name == name {
			return preset, true
		}
	}
	return DefaultStylePreset(), false
}

// CharacterPresets は選択可能なキャラクターテンプレートのカタログを返します。
func CharacterPresets() []CharacterPreset {
	copied := make([]CharacterPreset, len(characterPresets))
	copy(copied, characterPresets)
	return copied
}
