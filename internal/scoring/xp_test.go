package scoring

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/verte-zerg/komorebi/internal/model"
)

func sleepCard() model.ProtocolCard {
	return model.ProtocolCard{
		ID:          "sleep",
		Title:       "Sleep Hygiene",
		MaxXP:       1000,
		ScoringType: model.ScoringSum,
		Items: []model.ProtocolItem{
			{ID: "s1", XP: 400},
			{ID: "s2", XP: 200},
			{ID: "s3", XP: 200},
			{ID: "s4", XP: 200},
		},
	}
}

func multiplierCard(perItem int) model.ProtocolCard {
	return model.ProtocolCard{
		ID:          "training",
		MaxXP:       1500,
		ScoringType: model.ScoringCountMultiplier,
		PerItemXP:   perItem,
		Items:       []model.ProtocolItem{{ID: "t1"}, {ID: "t2"}, {ID: "t3"}},
	}
}

func checked(ids ...string) map[string]bool {
	out := map[string]bool{}
	for _, id := range ids {
		out[id] = true
	}
	return out
}

func TestCardXPSum(t *testing.T) {
	card := sleepCard()
	assert.Equal(t, 600, CardXP(card, checked("s1", "s2")))
	assert.Equal(t, 1000, CardXP(card, checked("s1", "s2", "s3", "s4")))
	assert.Equal(t, 0, CardXP(card, checked()))
}

func TestCardXPSumClampsToMax(t *testing.T) {
	card := sleepCard()
	card.MaxXP = 700
	assert.Equal(t, 700, CardXP(card, checked("s1", "s2", "s3")))
}

func TestCardXPDefaultsToSum(t *testing.T) {
	card := sleepCard()
	card.ScoringType = ""
	assert.Equal(t, 600, CardXP(card, checked("s1", "s3")))
}

func TestCardXPCountMultiplier(t *testing.T) {
	card := multiplierCard(500)
	assert.Equal(t, 1000, CardXP(card, checked("t1", "t2")))
	assert.Equal(t, 1500, CardXP(card, checked("t1", "t2", "t3")))
}

func TestCardXPCountMultiplierFullCompletionBonus(t *testing.T) {
	card := multiplierCard(400)
	assert.Equal(t, 800, CardXP(card, checked("t1", "t3")))
	// 3 x 400 would be 1200; full completion must still pay maxXP.
	assert.Equal(t, 1500, CardXP(card, checked("t1", "t2", "t3")))
}

func TestCardXPCountMultiplierClamps(t *testing.T) {
	card := multiplierCard(900)
	assert.Equal(t, 1500, CardXP(card, checked("t1", "t2")))
}

func TestCardXPIgnoresStaleIDs(t *testing.T) {
	card := sleepCard()
	assert.Equal(t, 400, CardXP(card, checked("s1", "deleted_item", "custom_old")))
}

func TestCardXPNeverExceedsMaxProperty(t *testing.T) {
	card := sleepCard()
	ids := []string{"s1", "s2", "s3", "s4"}
	for mask := 0; mask < 1<<len(ids); mask++ {
		set := map[string]bool{}
		want := 0
		for i, id := range ids {
			if mask&(1<<i) != 0 {
				set[id] = true
				want += card.Items[i].XP
			}
		}
		if want > card.MaxXP {
			want = card.MaxXP
		}
		got := CardXP(card, set)
		require.Equal(t, want, got, "mask=%b", mask)
		require.LessOrEqual(t, got, card.MaxXP)
	}
}

func TestTotalXPSumsCardsAndIsIdempotent(t *testing.T) {
	cfg := model.AppConfig{
		Protocols: []model.ProtocolSection{
			{Title: "A", Columns: 1, Cards: []model.ProtocolCard{sleepCard()}},
			{Title: "B", Columns: 1, Cards: []model.ProtocolCard{multiplierCard(400)}},
		},
	}
	day := model.DayData{Date: "2024-05-01", CheckedItems: checked("s1", "s2", "t1", "t2", "t3")}
	first := TotalXP(cfg, day)
	assert.Equal(t, 600+1500, first)
	assert.Equal(t, first, TotalXP(cfg, day))
}

func TestBreakdown(t *testing.T) {
	cfg := model.AppConfig{
		Protocols: []model.ProtocolSection{
			{Title: "A", Columns: 1, Cards: []model.ProtocolCard{sleepCard(), multiplierCard(400)}},
		},
	}
	day := model.DayData{CheckedItems: checked("s1", "t2")}
	scores := Breakdown(cfg, day)
	require.Len(t, scores, 2)
	assert.Equal(t, CardScore{SectionIdx: 0, CardIdx: 0, CardID: "sleep", Title: "Sleep Hygiene", XP: 400, MaxXP: 1000, Checked: 1, Items: 4}, scores[0])
	assert.Equal(t, 400, scores[1].XP)
	assert.Equal(t, 2500, PossibleXP(cfg))
}

func TestProgressPercent(t *testing.T) {
	assert.Equal(t, 50, ProgressPercent(4500, 9000))
	assert.Equal(t, 100, ProgressPercent(12000, 9000))
	assert.Equal(t, 0, ProgressPercent(500, 0))
	assert.Equal(t, 0, ProgressPercent(0, 9000))
}
