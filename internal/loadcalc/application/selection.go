package application

// NoSelection marks an empty panel.
const NoSelection = -1

// Selection is the index of the circuit a caller is focused on.
// It is owned by the caller; the service never stores it.
type Selection int

// Clamp returns a selection valid for a panel of count circuits.
func (s Selection) Clamp(count int) Selection {
	if count <= 0 {
		return NoSelection
	}
	if s < 0 {
		return 0
	}
	if int(s) > count-1 {
		return Selection(count - 1)
	}
	return s
}

// AfterRemove re-derives the selection once the circuit at removedIndex is gone
// and remaining circuits are left. The same circuit stays selected when it was
// after the removed one; otherwise the index is clamped to the new last circuit.
func (s Selection) AfterRemove(removedIndex, remaining int) Selection {
	if remaining <= 0 {
		return NoSelection
	}
	if removedIndex >= 0 && removedIndex < int(s) {
		s--
	}
	return s.Clamp(remaining)
}

// Valid reports whether the selection points at one of count circuits.
func (s Selection) Valid(count int) bool {
	if count <= 0 {
		return s == NoSelection
	}
	return s >= 0 && int(s) < count
}
