package main

import (
	"github.com/veandco/go-sdl2/sdl"
)

const (
	/// SampleRate of the buzzer in Hz.
	///
	SampleRate = 22050

	/// ToneFrequency of the buzzer in Hz.
	///
	ToneFrequency = 440

	/// ToneVolume is the amplitude of the signed 8-bit square wave.
	///
	ToneVolume = 24
)

var (
	/// Audio device the buzzer is queued to. Zero when audio is off.
	///
	Audio sdl.AudioDeviceID

	/// Tone is one refresh worth of square wave samples.
	///
	Tone []byte
)

/// InitAudio opens an audio device for the CHIP-8 buzzer.
///
func InitAudio() error {
	spec := &sdl.AudioSpec{
		Freq:     SampleRate,
		Format:   sdl.AUDIO_S8,
		Channels: 1,
		Samples:  512,
	}

	dev, err := sdl.OpenAudioDevice("", false, spec, nil, 0)
	if err != nil {
		return err
	}

	Audio = dev
	Tone = squareWave(SampleRate/60, SampleRate/ToneFrequency)

	// start playing; silence until samples are queued
	sdl.PauseAudioDevice(Audio, false)
	return nil
}

/// CloseAudio releases the audio device.
///
func CloseAudio() {
	if Audio != 0 {
		sdl.CloseAudioDevice(Audio)
		Audio = 0
	}
}

/// RefreshAudio keeps the queue fed while the sound timer is running.
///
func RefreshAudio() {
	if Audio == 0 || !VM.Sound() {
		return
	}

	// keep at most two refreshes of audio queued so the tone stops
	// promptly when the sound timer runs out
	if sdl.GetQueuedAudioSize(Audio) < uint32(2*len(Tone)) {
		_ = sdl.QueueAudio(Audio, Tone)
	}
}

func squareWave(n, period int) []byte {
	samples := make([]byte, n)

	for i := range samples {
		if i%period < period/2 {
			samples[i] = ToneVolume
		} else {
			samples[i] = 0x100 - ToneVolume
		}
	}

	return samples
}
