package services

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/cordialhq/cordial/internal/scheduling/domain"
)

func TestRankByDifficulty_ScarcestFirst(t *testing.T) {
	slots := []string{"s1", "s2", "s3"}
	contacts := []domain.Contact{
		{ID: "easy", Name: "Easy"},
		{ID: "hard", Name: "Hard"},
	}

	m := domain.NewQualityMatrix(slots, []string{"easy", "hard"})
	m.Set("s1", "easy", domain.QualityScore{Score: 100})
	m.Set("s2", "easy", domain.QualityScore{Score: 90})
	m.Set("s3", "easy", domain.QualityScore{Score: 80})
	m.Set("s1", "hard", domain.QualityScore{Score: 70})
	// s2, s3 stay ineligible for hard.

	ordered := RankByDifficulty(m, contacts, 60)

	assert.Equal(t, "hard", ordered[0].ID)
	assert.Equal(t, "easy", ordered[1].ID)
}

func TestRankByDifficulty_AverageBreaksTies(t *testing.T) {
	slots := []string{"s1", "s2"}
	contacts := []domain.Contact{
		{ID: "strong"},
		{ID: "weak"},
	}

	// Both have two acceptable slots; weak's are lower on average.
	m := domain.NewQualityMatrix(slots, []string{"strong", "weak"})
	m.Set("s1", "strong", domain.QualityScore{Score: 95})
	m.Set("s2", "strong", domain.QualityScore{Score: 90})
	m.Set("s1", "weak", domain.QualityScore{Score: 65})
	m.Set("s2", "weak", domain.QualityScore{Score: 60})

	ordered := RankByDifficulty(m, contacts, 60)

	assert.Equal(t, "weak", ordered[0].ID)
	assert.Equal(t, "strong", ordered[1].ID)
}

func TestRankByDifficulty_IDBreaksFullTies(t *testing.T) {
	m := domain.NewQualityMatrix([]string{"s1"}, []string{"b", "a"})
	m.Set("s1", "a", domain.QualityScore{Score: 80})
	m.Set("s1", "b", domain.QualityScore{Score: 80})

	ordered := RankByDifficulty(m, []domain.Contact{{ID: "b"}, {ID: "a"}}, 60)

	assert.Equal(t, "a", ordered[0].ID)
	assert.Equal(t, "b", ordered[1].ID)
}
