package game

import (
	"log"

	"github.com/hajimehoshi/ebiten/v2/audio"

	synth "github.com/decker502/autobattler/internal/audio"
	"github.com/decker502/autobattler/pkg/event"
)

// 音效ID
const (
	// SoundPlace 单位放置成功
	SoundPlace = "place"
	// SoundBuzzer 金币不足，拾取被拒绝
	SoundBuzzer = "buzzer"
)

// SampleRate 音频上下文的采样率
const SampleRate = 48000

// soundTones 每个音效由一段或多段合成音拼接而成
var soundTones = map[string][]synth.Tone{
	SoundPlace: {
		{Frequency: 660, Duration: 0.05, Volume: 0.4, Waveform: synth.WaveSine},
		{Frequency: 880, Duration: 0.07, Volume: 0.4, Waveform: synth.WaveSine, FadeOut: 0.04},
	},
	SoundBuzzer: {
		{Frequency: 110, Duration: 0.18, Volume: 0.25, Waveform: synth.WaveSquare, FadeOut: 0.05},
	},
}

// AudioManager 音频管理器
// 职责：
//   - 合成并缓存放置反馈音效
//   - 作为事件订阅者，把放置系统的事件转换为音效
//
// context 为 nil 时所有播放静默失败（测试和无音频设备的环境）。
type AudioManager struct {
	context      *audio.Context
	soundPlayers map[string]*audio.Player // 音效播放器缓存（音效ID -> 播放器）
	enabled      bool
	volume       float64
}

// NewAudioManager 创建新的音频管理器
//
// 参数：
//   - ctx: ebiten 音频上下文，可为 nil
//
// 返回：
//   - *AudioManager: 音频管理器实例
func NewAudioManager(ctx *audio.Context) *AudioManager {
	return &AudioManager{
		context:      ctx,
		soundPlayers: make(map[string]*audio.Player),
		enabled:      true,
		volume:       1.0,
	}
}

// PlaySound 播放音效
//
// 返回：
//   - bool: 是否成功播放
func (am *AudioManager) PlaySound(soundID string) bool {
	if !am.enabled {
		return false
	}

	player := am.getSoundPlayer(soundID)
	if player == nil {
		return false
	}

	player.SetVolume(am.volume)
	if err := player.Rewind(); err != nil {
		log.Printf("[AudioManager] Warning: Failed to rewind sound %s: %v", soundID, err)
	}
	player.Play()
	return true
}

// SetEnabled 开关音效
func (am *AudioManager) SetEnabled(enabled bool) {
	am.enabled = enabled
}

// SetVolume 设置音效音量（0.0 - 1.0，超出范围会被截断）
func (am *AudioManager) SetVolume(volume float64) {
	if volume < 0 {
		volume = 0
	}
	if volume > 1 {
		volume = 1
	}
	am.volume = volume
}

// Volume 返回当前音量
func (am *AudioManager) Volume() float64 {
	return am.volume
}

// SoundListener 返回一个播放指定音效的事件订阅者
//
// 用法:
//
//	dispatcher.Subscribe(systems.EventPlacementCommitted, audioManager.SoundListener(game.SoundPlace))
func (am *AudioManager) SoundListener(soundID string) event.Listener {
	return event.ListenerFunc(func(event.Event) {
		am.PlaySound(soundID)
	})
}

// PreloadSounds 预先合成音效，避免首次播放时卡顿
func (am *AudioManager) PreloadSounds(soundIDs ...string) {
	for _, soundID := range soundIDs {
		am.getSoundPlayer(soundID)
	}
}

// getSoundPlayer 获取或合成音效播放器
func (am *AudioManager) getSoundPlayer(soundID string) *audio.Player {
	if player, ok := am.soundPlayers[soundID]; ok {
		return player
	}
	if am.context == nil {
		return nil
	}

	pcm := SoundPCM(soundID)
	if len(pcm) == 0 {
		log.Printf("[AudioManager] Warning: Unknown sound %s", soundID)
		return nil
	}

	player := am.context.NewPlayerFromBytes(pcm)
	am.soundPlayers[soundID] = player
	log.Printf("[AudioManager] Synthesized sound %s (%d bytes)", soundID, len(pcm))
	return player
}

// SoundPCM 返回音效的 PCM 数据，未知音效返回 nil
func SoundPCM(soundID string) []byte {
	tones, ok := soundTones[soundID]
	if !ok {
		return nil
	}
	parts := make([][]byte, 0, len(tones))
	for _, tone := range tones {
		parts = append(parts, synth.Synthesize(tone, SampleRate))
	}
	return synth.Concat(parts...)
}
