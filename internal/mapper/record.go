package mapper

import (
	"time"

	"github.com/akshat1423/memoire/internal/types"
)

// MapRecord translates a raw store record into the entry union. It never
// fails: a record with no metadata type maps to EntryTypeUnknown, and every
// per-type field is derived independently so malformed metadata degrades
// field-by-field instead of rejecting the record.
//
// The stored-images variant is intentionally not derived here: only the
// creation path produces it, and read-path records of that type keep their
// images dictionary in the metadata bag (retrievable via Metadata.ImagesDict).
func MapRecord(rec types.Record) types.Entry {
	meta := rec.Metadata
	t := types.EntryType(meta.Str(types.MetaType))
	if t == "" {
		t = types.EntryTypeUnknown
	}

	e := types.Entry{
		ID:        rec.ID,
		Type:      t,
		Metadata:  meta,
		CreatedAt: parseStoreTime(rec.CreatedAt),
		UpdatedAt: parseStoreTime(rec.UpdatedAt),
		Score:     rec.Score,
	}

	switch t {
	case types.EntryTypeText:
		e.Title = meta.Str(types.MetaTitle)
		e.Content = rec.Memory
	case types.EntryTypeImage:
		e.ImageURI = rec.Memory
		e.Caption = meta.Str(types.MetaCaption)
	case types.EntryTypeAudio:
		e.AudioURI = rec.Memory
		e.Duration = meta.Int(types.MetaDuration)
		e.Transcript = meta.Str(types.MetaTranscript)
	}
	return e
}

// MapRecords maps a slice of records, preserving arrival order.
func MapRecords(recs []types.Record) []types.Entry {
	out := make([]types.Entry, 0, len(recs))
	for _, rec := range recs {
		out = append(out, MapRecord(rec))
	}
	return out
}

// storeTimeLayouts covers the timestamp shapes the store has been observed to
// emit. First match wins.
var storeTimeLayouts = []string{
	time.RFC3339Nano,
	time.RFC3339,
	"2006-01-02T15:04:05.999999",
	"2006-01-02 15:04:05",
	"2006-01-02",
}

func parseStoreTime(s string) *time.Time {
	if s == "" {
		return nil
	}
	for _, layout := range storeTimeLayouts {
		if ts, err := time.Parse(layout, s); err == nil {
			return &ts
		}
	}
	return nil
}
