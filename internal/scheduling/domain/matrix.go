package domain

import "sort"

// QualityMatrix holds a QualityScore for every (slot, contact) pair.
// Slot and contact identifiers are interned to small integer indices so
// the hot phases index a dense table instead of hashing strings. The
// matrix is built once per batch and read-only afterwards, except for the
// extreme-timezone augmentation pass which may add slot rows.
type QualityMatrix struct {
	slotIDs    []string // ascending, therefore chronological
	contactIDs []string
	slotIndex  map[string]int
	contactIdx map[string]int
	scores     [][]QualityScore // [slot][contact]
}

// NewQualityMatrix allocates a matrix for the given identifiers. Slot IDs
// are kept in ascending order; contact IDs keep their given order.
func NewQualityMatrix(slotIDs, contactIDs []string) *QualityMatrix {
	sorted := make([]string, len(slotIDs))
	copy(sorted, slotIDs)
	sort.Strings(sorted)

	m := &QualityMatrix{
		slotIDs:    sorted,
		contactIDs: append([]string(nil), contactIDs...),
		slotIndex:  make(map[string]int, len(sorted)),
		contactIdx: make(map[string]int, len(contactIDs)),
		scores:     make([][]QualityScore, len(sorted)),
	}
	for i, id := range sorted {
		m.slotIndex[id] = i
		m.scores[i] = make([]QualityScore, len(contactIDs))
	}
	for i, id := range contactIDs {
		m.contactIdx[id] = i
	}
	return m
}

// Set stores the score for a (slot, contact) pair.
func (m *QualityMatrix) Set(slotID, contactID string, score QualityScore) {
	si, ok := m.slotIndex[slotID]
	if !ok {
		return
	}
	ci, ok := m.contactIdx[contactID]
	if !ok {
		return
	}
	m.scores[si][ci] = score
}

// Get returns the stored score for a (slot, contact) pair.
func (m *QualityMatrix) Get(slotID, contactID string) (QualityScore, bool) {
	si, ok := m.slotIndex[slotID]
	if !ok {
		return QualityScore{}, false
	}
	ci, ok := m.contactIdx[contactID]
	if !ok {
		return QualityScore{}, false
	}
	return m.scores[si][ci], true
}

// Score returns the numeric score for a pair, zero when absent.
func (m *QualityMatrix) Score(slotID, contactID string) int {
	q, _ := m.Get(slotID, contactID)
	return q.Score
}

// HasSlot reports whether the slot is known to the matrix.
func (m *QualityMatrix) HasSlot(slotID string) bool {
	_, ok := m.slotIndex[slotID]
	return ok
}

// AddSlot inserts a new slot row in sorted position, with all cells zero.
// Used by the extreme-timezone augmentation pass.
func (m *QualityMatrix) AddSlot(slotID string) {
	if m.HasSlot(slotID) {
		return
	}
	pos := sort.SearchStrings(m.slotIDs, slotID)
	m.slotIDs = append(m.slotIDs, "")
	copy(m.slotIDs[pos+1:], m.slotIDs[pos:])
	m.slotIDs[pos] = slotID

	row := make([]QualityScore, len(m.contactIDs))
	m.scores = append(m.scores, nil)
	copy(m.scores[pos+1:], m.scores[pos:])
	m.scores[pos] = row

	for i := pos; i < len(m.slotIDs); i++ {
		m.slotIndex[m.slotIDs[i]] = i
	}
}

// SlotIDs returns the slot identifiers in ascending order.
func (m *QualityMatrix) SlotIDs() []string {
	return m.slotIDs
}

// ContactIDs returns the contact identifiers in insertion order.
func (m *QualityMatrix) ContactIDs() []string {
	return m.contactIDs
}
