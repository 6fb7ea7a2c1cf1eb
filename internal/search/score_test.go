package search

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/dayhub/dayhub-server/internal/model"
)

var scoreNow = time.Date(2024, 6, 14, 12, 0, 0, 0, time.UTC)

func textDoc(text string) Doc {
	return Doc{Fields: []Field{{Name: "title", Text: text}}}
}

func TestScoreStringTiersAreExclusive(t *testing.T) {
	// Exact match fires the top tier plus the whole-word bonus.
	assert.Equal(t, 13.0, Score("meeting", textDoc("meeting"), scoreNow))

	// Prefix but not exact, and "meetings" is not a whole-word match.
	assert.Equal(t, 7.0, Score("meeting", textDoc("meetings notes"), scoreNow))

	// Substring only, plus whole-word bonus.
	assert.Equal(t, 8.0, Score("meeting", textDoc("team meeting notes"), scoreNow))

	// No match.
	assert.Equal(t, 0.0, Score("meeting", textDoc("standup"), scoreNow))
}

func TestScoreWholeWordBonusOncePerField(t *testing.T) {
	// Two whole-word occurrences in one field still add the bonus once.
	got := Score("travel", textDoc("travel plans and travel budget"), scoreNow)
	assert.Equal(t, 8.0, got) // substring 5 + whole word 3
}

func TestScoreCaseInsensitive(t *testing.T) {
	assert.Equal(t, Score("Meeting", textDoc("MEETING"), scoreNow), Score("meeting", textDoc("meeting"), scoreNow))
}

func TestScoreListElementsAccumulate(t *testing.T) {
	doc := Doc{Fields: []Field{{Name: "tags", List: []string{"travel", "travel-plans", "food"}}}}
	// Exact element 8 + substring element 4.
	assert.Equal(t, 12.0, Score("travel", doc, scoreNow))
}

func TestScoreFieldsAccumulateAcrossFields(t *testing.T) {
	doc := Doc{Fields: []Field{
		{Name: "title", Text: "travel"},
		{Name: "content", Text: "notes on travel insurance"},
	}}
	// Exact 10 + whole word 3, then substring 5 + whole word 3.
	assert.Equal(t, 21.0, Score("travel", doc, scoreNow))
}

func TestScoreRecencyBonus(t *testing.T) {
	recent := scoreNow.Add(-2 * time.Hour)
	thisWeek := scoreNow.Add(-3 * 24 * time.Hour)
	old := scoreNow.Add(-30 * 24 * time.Hour)

	base := Score("x", Doc{}, scoreNow)
	assert.Equal(t, base+2, Score("x", Doc{CreatedAt: &recent}, scoreNow))
	assert.Equal(t, base+1, Score("x", Doc{CreatedAt: &thisWeek}, scoreNow))
	assert.Equal(t, base, Score("x", Doc{CreatedAt: &old}, scoreNow))
}

func TestScoreRecencyUsesFirstPresentTimestamp(t *testing.T) {
	recent := scoreNow.Add(-1 * time.Hour)
	old := scoreNow.Add(-60 * 24 * time.Hour)

	// CreatedAt wins over ReceivedAt even when older.
	doc := Doc{CreatedAt: &old, ReceivedAt: &recent}
	assert.Equal(t, 0.0, Score("x", doc, scoreNow))

	// ReceivedAt is used when CreatedAt is absent.
	assert.Equal(t, 2.0, Score("x", Doc{ReceivedAt: &recent}, scoreNow))

	// StartTime is the last fallback.
	assert.Equal(t, 2.0, Score("x", Doc{StartTime: &recent}, scoreNow))
}

func TestScoreImportanceBonus(t *testing.T) {
	assert.Equal(t, 2.0, Score("x", Doc{Important: true}, scoreNow))
	assert.Equal(t, 2.0, Score("x", Doc{Priority: model.PriorityHigh}, scoreNow))
	assert.Equal(t, 2.0, Score("x", Doc{Priority: model.PriorityUrgent}, scoreNow))
	// Priority comparison is case-sensitive and the bonus does not stack.
	assert.Equal(t, 0.0, Score("x", Doc{Priority: "high"}, scoreNow))
	assert.Equal(t, 2.0, Score("x", Doc{Important: true, Priority: model.PriorityUrgent}, scoreNow))
}

func TestScoreUrgentRecentTask(t *testing.T) {
	created := scoreNow.Add(-1 * time.Hour)
	doc := Doc{
		Fields:    []Field{{Name: "title", Text: "urgent"}},
		CreatedAt: &created,
		Priority:  model.PriorityUrgent,
	}
	// Exact 10 + whole word 3 + recency 2 + importance 2.
	assert.Equal(t, 17.0, Score("urgent", doc, scoreNow))
}
