package identifier

// SequenceState is the persisted position of one numbering space. Order id
// schemes use LastIssuedID; customer serials use LastSequence. Both are empty
// before the first issue.
type SequenceState struct {
	Key          string
	LastIssuedID string
	LastSequence *int
}

// Issue returns a copy of the state advanced to the given id and sequence.
func (s SequenceState) Issue(id string, sequence *int) SequenceState {
	next := SequenceState{Key: s.Key, LastIssuedID: id}
	if sequence != nil {
		n := *sequence
		next.LastSequence = &n
	}
	return next
}
