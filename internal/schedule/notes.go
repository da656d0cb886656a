package schedule

// NoteIndex answers whether a class note exists for an instance key.
type NoteIndex interface {
	HasNote(instanceKey string) bool
}

// NoteKeys is a set of instance keys that carry a note.
type NoteKeys map[string]struct{}

// NewNoteKeys builds a set from keys.
func NewNoteKeys(keys ...string) NoteKeys {
	set := make(NoteKeys, len(keys))
	for _, k := range keys {
		set[k] = struct{}{}
	}
	return set
}

// HasNote implements NoteIndex. A nil set has no notes.
func (k NoteKeys) HasNote(instanceKey string) bool {
	_, ok := k[instanceKey]
	return ok
}
