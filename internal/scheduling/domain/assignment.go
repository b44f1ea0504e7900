package domain

// Assignment maps each contact to an ordered sequence of slot IDs. A slot
// ID appears in at most one contact's sequence (mutual exclusion).
type Assignment struct {
	byContact map[string][]string
	used      map[string]struct{}
}

// NewAssignment creates an empty assignment.
func NewAssignment() *Assignment {
	return &Assignment{
		byContact: make(map[string][]string),
		used:      make(map[string]struct{}),
	}
}

// Assign appends a slot to a contact's sequence. Already-used slots are
// rejected to preserve mutual exclusion.
func (a *Assignment) Assign(contactID, slotID string) bool {
	if _, taken := a.used[slotID]; taken {
		return false
	}
	a.byContact[contactID] = append(a.byContact[contactID], slotID)
	a.used[slotID] = struct{}{}
	return true
}

// Slots returns the ordered slot IDs assigned to a contact.
func (a *Assignment) Slots(contactID string) []string {
	return a.byContact[contactID]
}

// IsUsed reports whether a slot is already assigned to some contact.
func (a *Assignment) IsUsed(slotID string) bool {
	_, taken := a.used[slotID]
	return taken
}

// UsedCount returns the total number of assigned slots.
func (a *Assignment) UsedCount() int {
	return len(a.used)
}

// Swap exchanges s1 (held by c1) with s2 (held by c2), preserving each
// sequence's positions. Both slots must currently be assigned as stated.
func (a *Assignment) Swap(c1, s1, c2, s2 string) bool {
	i1 := indexOf(a.byContact[c1], s1)
	i2 := indexOf(a.byContact[c2], s2)
	if i1 < 0 || i2 < 0 {
		return false
	}
	a.byContact[c1][i1] = s2
	a.byContact[c2][i2] = s1
	return true
}

// TotalScore sums the matrix scores over all assigned (slot, contact) pairs.
func (a *Assignment) TotalScore(m *QualityMatrix) int {
	total := 0
	for _, contactID := range m.ContactIDs() {
		for _, slotID := range a.byContact[contactID] {
			total += m.Score(slotID, contactID)
		}
	}
	return total
}

func indexOf(slots []string, id string) int {
	for i, s := range slots {
		if s == id {
			return i
		}
	}
	return -1
}
