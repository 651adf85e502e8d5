// Package tone synthesises the waveforms played while the sound timer runs.
package tone

import (
	"math"

	"github.com/faiface/beep"
)

// Volume is the peak sample amplitude.
const Volume = 0.2

// SquareWave returns an endless square wave at freq Hz.
func SquareWave(sr beep.SampleRate, freq float64) beep.Streamer {
	period := float64(sr) / freq
	pos := 0
	return beep.StreamerFunc(func(samples [][2]float64) (n int, ok bool) {
		for i := range samples {
			v := Volume
			if math.Mod(float64(pos), period) >= period/2 {
				v = -Volume
			}
			samples[i][0] = v
			samples[i][1] = v
			pos++
		}
		return len(samples), true
	})
}
