// Package asr is the boundary to the speech recognition collaborator. The
// engine itself never touches audio; this package hands recorded audio to an
// external whisper.cpp-style server and returns the recognized UTF-8 text.
package asr

import (
	"context"
	"errors"
)

// ErrNoSpeech is returned when the recognizer produced no text for the audio.
var ErrNoSpeech = errors.New("no speech detected")

// Result is a recognized utterance. Text is plain UTF-8 with no further
// structure; downstream consumers do not inspect it beyond that.
type Result struct {
	Text string
}

// Transcriber converts recorded audio into text.
type Transcriber interface {
	Transcribe(ctx context.Context, audio []byte, filename string) (Result, error)
}
