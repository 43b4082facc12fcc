package types

import "time"

// ------------------------------
// Core Domain Entities
// ------------------------------

// EntryType discriminates the journal entry union.
type EntryType string

const (
	EntryTypeText         EntryType = "text"
	EntryTypeImage        EntryType = "image"
	EntryTypeAudio        EntryType = "audio"
	EntryTypeStoredImages EntryType = "stored-images"

	// EntryTypeUnknown is assigned by the result mapper when a store record
	// carries no recognizable type. It is never a valid creation type.
	EntryTypeUnknown EntryType = "unknown"
)

// Valid reports whether t is one of the four creatable entry types.
func (t EntryType) Valid() bool {
	switch t {
	case EntryTypeText, EntryTypeImage, EntryTypeAudio, EntryTypeStoredImages:
		return true
	}
	return false
}

// Mood is the fixed set of moods an entry can be tagged with.
type Mood string

const (
	MoodHappy      Mood = "happy"
	MoodExcited    Mood = "excited"
	MoodGrateful   Mood = "grateful"
	MoodPeaceful   Mood = "peaceful"
	MoodNeutral    Mood = "neutral"
	MoodThoughtful Mood = "thoughtful"
	MoodAnxious    Mood = "anxious"
	MoodSad        Mood = "sad"
	MoodFrustrated Mood = "frustrated"
	MoodAngry      Mood = "angry"
)

// Moods lists every valid mood value.
var Moods = []Mood{
	MoodHappy, MoodExcited, MoodGrateful, MoodPeaceful, MoodNeutral,
	MoodThoughtful, MoodAnxious, MoodSad, MoodFrustrated, MoodAngry,
}

// Valid reports whether m is a known mood.
func (m Mood) Valid() bool {
	for _, v := range Moods {
		if m == v {
			return true
		}
	}
	return false
}

// Location is an optional geotag attached to an entry.
type Location struct {
	Latitude  float64 `json:"latitude"`
	Longitude float64 `json:"longitude"`
	City      string  `json:"city,omitempty"`
}

// Entry is the journal entry union, discriminated by Type. Exactly one of the
// per-type field groups is populated; which one is determined by Type.
//
// The store assigns ID; CreatedAt/UpdatedAt are nil when the store record
// carried no parseable timestamp. Score is only present on search results.
type Entry struct {
	ID        string     `json:"id"`
	Type      EntryType  `json:"type"`
	Metadata  Metadata   `json:"metadata,omitempty"`
	CreatedAt *time.Time `json:"createdAt"`
	UpdatedAt *time.Time `json:"updatedAt"`
	Score     *float64   `json:"score,omitempty"`

	// text
	Title   string `json:"title,omitempty"`
	Content string `json:"content,omitempty"`

	// image
	ImageURI string `json:"imageUri,omitempty"`

	// stored-images: positional keys image1..imageN, N = image_count
	Images map[string]string `json:"images,omitempty"`

	// image / stored-images / audio
	Caption string `json:"caption,omitempty"`

	// audio
	AudioURI   string `json:"audioUri,omitempty"`
	Duration   int    `json:"duration,omitempty"`
	Transcript string `json:"transcript,omitempty"`
}

// LowConfidenceScore is the relevance cutoff used by search pagination:
// first-page results above it are shown immediately, results at or below it
// are backfilled on subsequent pages.
const LowConfidenceScore = 0.4

// HighConfidence reports whether the entry carries a score above the cutoff.
// Entries without a score are neither high nor low confidence.
func (e *Entry) HighConfidence() bool {
	return e.Score != nil && *e.Score > LowConfidenceScore
}

// LowConfidence reports whether the entry carries a positive score at or
// below the cutoff.
func (e *Entry) LowConfidence() bool {
	return e.Score != nil && *e.Score > 0 && *e.Score <= LowConfidenceScore
}
