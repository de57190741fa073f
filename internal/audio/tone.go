// Package audio 合成反馈音效的 PCM 数据
//
// 输出格式与 ebiten/audio 的 Player 一致：16 位有符号小端、双声道交错。
package audio

import (
	"encoding/binary"
	"math"
)

// Waveform 波形
type Waveform int

const (
	// WaveSine 正弦波，声音柔和
	WaveSine Waveform = iota
	// WaveSquare 方波，声音刺耳（用于拒绝提示）
	WaveSquare
)

// Tone 描述一段合成音
type Tone struct {
	Frequency float64 // Hz
	Duration  float64 // 秒
	Volume    float64 // 0.0 - 1.0
	Waveform  Waveform
	// FadeOut 结尾线性淡出的时长（秒），避免截断时的爆音
	FadeOut float64
}

// Synthesize 生成 16 位双声道 PCM 数据
// 参数非法（采样率、时长或频率不为正）时返回空切片
func Synthesize(tone Tone, sampleRate int) []byte {
	if sampleRate <= 0 || tone.Duration <= 0 || tone.Frequency <= 0 {
		return []byte{}
	}

	samples := int(math.Round(tone.Duration * float64(sampleRate)))
	fadeSamples := int(math.Round(tone.FadeOut * float64(sampleRate)))
	if fadeSamples > samples {
		fadeSamples = samples
	}
	volume := math.Max(0, math.Min(1, tone.Volume))

	buf := make([]byte, samples*4)
	for i := 0; i < samples; i++ {
		phase := 2 * math.Pi * tone.Frequency * float64(i) / float64(sampleRate)

		var v float64
		switch tone.Waveform {
		case WaveSquare:
			if math.Sin(phase) >= 0 {
				v = 1
			} else {
				v = -1
			}
		default:
			v = math.Sin(phase)
		}

		gain := volume
		if remaining := samples - i; remaining <= fadeSamples {
			gain *= float64(remaining) / float64(fadeSamples)
		}

		sample := uint16(int16(v * gain * math.MaxInt16))
		binary.LittleEndian.PutUint16(buf[i*4:], sample)   // 左声道
		binary.LittleEndian.PutUint16(buf[i*4+2:], sample) // 右声道
	}
	return buf
}

// Concat 依次拼接多段 PCM 数据
func Concat(parts ...[]byte) []byte {
	total := 0
	for _, p := range parts {
		total += len(p)
	}
	out := make([]byte, 0, total)
	for _, p := range parts {
		out = append(out, p...)
	}
	return out
}
