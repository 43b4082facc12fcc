// Package mapper holds the pure translation logic between the journal's
// entry union and the memory store's wire shapes: normalizing creation
// payloads into store messages, mapping store records back into the union,
// and translating UI search filters into the store's v2 filter grammar.
package mapper

import (
	"encoding/json"
	"time"

	"github.com/akshat1423/memoire/internal/types"
)

// Normalize converts a creation request into the message content sent to the
// store and the metadata bag stored alongside it. For media entries the
// message is the caption (or empty) and the payload URL is folded into a
// type-specific metadata key; for text the message is the literal body.
//
// An unrecognized type degrades to a JSON-serialized {type,data,metadata}
// message. That path signals a caller error rather than a supported mode, but
// it never fails.
func Normalize(t types.EntryType, payload string, meta types.Metadata) (string, types.Metadata) {
	out := meta.Clone()
	out[types.MetaType] = string(t)

	switch t {
	case types.EntryTypeAudio:
		out[types.MetaAudioURL] = payload
		return out.Str(types.MetaCaption), out
	case types.EntryTypeImage:
		out[types.MetaImageURL] = payload
		return out.Str(types.MetaCaption), out
	case types.EntryTypeStoredImages:
		// payload is the JSON-encoded image1..imageN url dictionary.
		out[types.MetaImages] = payload
		return out.Str(types.MetaCaption), out
	case types.EntryTypeText:
		return payload, out
	}

	fallback, err := json.Marshal(map[string]any{
		"type":     t,
		"data":     payload,
		"metadata": meta,
	})
	if err != nil {
		// Metadata values are always JSON-encodable in practice; degrade to
		// the bare payload rather than dropping the write.
		return payload, out
	}
	return string(fallback), out
}

// Synthesize builds the optimistic local union object returned to the caller
// immediately after a successful create, without re-fetching from the store.
// It is derived from the input payload/metadata and stamped with the
// store-assigned id and the current time.
func Synthesize(id string, t types.EntryType, payload string, meta types.Metadata, now time.Time) types.Entry {
	e := types.Entry{
		ID:        id,
		Type:      t,
		Metadata:  meta,
		CreatedAt: &now,
		UpdatedAt: &now,
	}

	switch t {
	case types.EntryTypeText:
		e.Title = meta.Str(types.MetaTitle)
		e.Content = payload
	case types.EntryTypeImage:
		e.ImageURI = payload
		e.Caption = meta.Str(types.MetaCaption)
	case types.EntryTypeStoredImages:
		var images map[string]string
		if err := json.Unmarshal([]byte(payload), &images); err != nil {
			images = map[string]string{}
		}
		e.Images = images
		e.Caption = meta.Str(types.MetaCaption)
	case types.EntryTypeAudio:
		e.AudioURI = payload
		e.Duration = meta.Int(types.MetaDuration)
		e.Transcript = meta.Str(types.MetaTranscript)
	}
	return e
}
