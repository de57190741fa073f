package scenes

import "github.com/decker502/autobattler/pkg/game"

// newSilentAudioManager 没有音频上下文的音效管理器，播放总是静默失败
func newSilentAudioManager() *game.AudioManager {
	return game.NewAudioManager(nil)
}
