package types

import (
	"encoding/json"
	"time"
)

// Metadata is the open metadata bag attached to every entry. The store round-
// trips it through JSON, so numbers come back as float64 and nested objects
// as map[string]any; the accessors below tolerate both the freshly-built and
// the round-tripped shapes.
type Metadata map[string]any

// Well-known metadata keys.
const (
	MetaType       = "type"
	MetaTimestamp  = "timestamp"
	MetaTags       = "tags"
	MetaMood       = "mood"
	MetaLocation   = "location"
	MetaTitle      = "title"
	MetaCaption    = "caption"
	MetaDuration   = "duration"
	MetaTranscript = "transcript"
	MetaImageCount = "image_count"
	MetaImages     = "images"
	MetaImageURL   = "image_url"
	MetaAudioURL   = "audio_url"
	MetaSongID     = "song_id"
	MetaSongTitle  = "song_title"
	MetaSongArtist = "song_artist"
	MetaSongLink   = "song_link"
)

// Clone returns a shallow copy so callers can fold fields in without
// mutating the caller's map. A nil receiver yields an empty map.
func (m Metadata) Clone() Metadata {
	out := make(Metadata, len(m)+4)
	for k, v := range m {
		out[k] = v
	}
	return out
}

// Str returns the string value under key, or "" when absent or not a string.
func (m Metadata) Str(key string) string {
	if s, ok := m[key].(string); ok {
		return s
	}
	return ""
}

// Int returns the integer value under key, tolerating JSON float64 decoding.
func (m Metadata) Int(key string) int {
	switch v := m[key].(type) {
	case int:
		return v
	case int64:
		return int(v)
	case float64:
		return int(v)
	}
	return 0
}

// Tags returns the tag list, or nil when absent. Order is preserved; tags are
// free text, case-sensitive, and may repeat.
func (m Metadata) Tags() []string {
	switch v := m[MetaTags].(type) {
	case []string:
		return v
	case []any:
		out := make([]string, 0, len(v))
		for _, t := range v {
			if s, ok := t.(string); ok {
				out = append(out, s)
			}
		}
		return out
	}
	return nil
}

// MoodValue returns the mood, or "" when absent.
func (m Metadata) MoodValue() Mood { return Mood(m.Str(MetaMood)) }

// LocationValue returns the geotag, or nil when absent or malformed.
func (m Metadata) LocationValue() *Location {
	switch v := m[MetaLocation].(type) {
	case *Location:
		return v
	case Location:
		return &v
	case map[string]any:
		loc := &Location{}
		if lat, ok := v["latitude"].(float64); ok {
			loc.Latitude = lat
		}
		if lng, ok := v["longitude"].(float64); ok {
			loc.Longitude = lng
		}
		if city, ok := v["city"].(string); ok {
			loc.City = city
		}
		return loc
	}
	return nil
}

// Timestamp returns the creation timestamp recorded at capture time, or the
// zero time when absent or unparseable.
func (m Metadata) Timestamp() time.Time {
	ts, err := time.Parse(time.RFC3339, m.Str(MetaTimestamp))
	if err != nil {
		return time.Time{}
	}
	return ts
}

// ImagesDict returns the image1..imageN url map for stored-images entries.
// The value may be stored either as a JSON string (creation path) or as a
// decoded object (read path); both are handled. Returns nil when absent.
func (m Metadata) ImagesDict() map[string]string {
	switch v := m[MetaImages].(type) {
	case map[string]string:
		return v
	case map[string]any:
		out := make(map[string]string, len(v))
		for k, u := range v {
			if s, ok := u.(string); ok {
				out[k] = s
			}
		}
		return out
	case string:
		var out map[string]string
		if err := json.Unmarshal([]byte(v), &out); err != nil {
			return nil
		}
		return out
	}
	return nil
}
