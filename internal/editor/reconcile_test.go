package editor

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mirelle/gloss/internal/model"
)

func testOriginal() []model.Category {
	return []model.Category{
		{
			Name: "Strzyżenie",
			Services: []model.Service{
				{Name: "Strzyżenie damskie", Price: "80 zł", Description: "Mycie, strzyżenie, stylizacja"},
				{Name: "Strzyżenie męskie", Price: "50 zł"},
			},
		},
		{
			Name: "Koloryzacja",
			Services: []model.Service{
				{Name: "Koloryzacja całościowa", Price: "200 zł"},
				{Name: "Baleyage", Price: "250 zł", Duration: "2h 30min"},
			},
		},
		{
			Name: "Pielęgnacja",
			Services: []model.Service{
				{Name: "Botoks na włosy", Price: "120 zł"},
			},
		},
	}
}

func TestReconcileTrustsFullProposal(t *testing.T) {
	proposed := []model.Category{
		{
			Name: "Hair",
			Services: []model.Service{
				{Name: "Cut", Price: "100 zł"},
			},
		},
		{
			Name:     "Color",
			Services: []model.Service{{Name: "Full color", Price: "200 zł"}},
		},
	}

	session := NewSession(testOriginal(), proposed, nil)

	got := session.Categories()
	require.Len(t, got, 2)
	assert.Equal(t, "Hair", got[0].Name)
	require.Len(t, got[0].Services, 1)
	assert.Equal(t, "Cut", got[0].Services[0].Name)
}

func TestReconcileAssignsUniqueIDsAndExpandsFirstFive(t *testing.T) {
	original := make([]model.Category, 7)
	for i := range original {
		original[i] = model.Category{Name: string(rune('A' + i))}
	}

	session := NewSession(original, nil, nil)
	got := session.Categories()
	require.Len(t, got, 7)

	seen := make(map[string]struct{})
	for i, cat := range got {
		require.NotEmpty(t, cat.ID)
		_, dup := seen[cat.ID]
		require.False(t, dup, "synthetic id reused")
		seen[cat.ID] = struct{}{}

		assert.Equal(t, i < 5, cat.Expanded, "category %d expansion", i)
		assert.False(t, cat.Editing)
	}
}

func TestReconcileAdoptsServicesForNameOnlyProposal(t *testing.T) {
	proposed := []model.Category{
		{Name: "Strzyżenie"},  // exact match
		{Name: "Koloryzacja"}, // exact match
	}

	session := NewSession(testOriginal(), proposed, nil)

	got := session.Categories()
	require.Len(t, got, 2)
	require.Len(t, got[0].Services, 2)
	assert.Equal(t, "Strzyżenie damskie", got[0].Services[0].Name)
	require.Len(t, got[1].Services, 2)
	assert.Equal(t, "Baleyage", got[1].Services[1].Name)
}

func TestReconcileMatchesWhenOriginalNameContainsProposed(t *testing.T) {
	original := []model.Category{
		{
			Name:     "Koloryzacja i dekoloryzacja",
			Services: []model.Service{{Name: "Baleyage", Price: "250 zł"}},
		},
	}
	proposed := []model.Category{{Name: "Koloryzacja"}}

	session := NewSession(original, proposed, nil)

	got := session.Categories()
	require.Len(t, got, 1)
	require.Len(t, got[0].Services, 1)
	assert.Equal(t, "Baleyage", got[0].Services[0].Name)
}

func TestReconcileDropsServicesWithoutPlausibleMatch(t *testing.T) {
	// The proposed name extends the original, the original does not
	// contain it, so the match fails and the service is dropped. The
	// lossy outcome is deliberate.
	original := []model.Category{
		{
			Name:     "Fryzury",
			Services: []model.Service{{Name: "Strzyżenie", Price: "50 zł"}},
		},
	}
	proposed := []model.Category{{Name: "Fryzury Damskie"}}

	session := NewSession(original, proposed, nil)

	got := session.Categories()
	require.Len(t, got, 1)
	assert.Equal(t, "Fryzury Damskie", got[0].Name)
	assert.Empty(t, got[0].Services)
}

func TestReconcileHydratesNamedServicesFromOriginal(t *testing.T) {
	proposed := []model.Category{
		{Name: "Nowa kategoria"}, // no services, no match
		{
			Name: "Koloryzacja premium",
			Services: []model.Service{
				{Name: "Baleyage"},       // known name, hydrated
				{Name: "Sombre premium"}, // unknown, kept as proposed
			},
		},
	}

	session := NewSession(testOriginal(), proposed, nil)

	got := session.Categories()
	require.Len(t, got, 2)
	assert.Empty(t, got[0].Services)

	require.Len(t, got[1].Services, 2)
	assert.Equal(t, "250 zł", got[1].Services[0].Price, "hydrated from original")
	assert.Equal(t, "2h 30min", got[1].Services[0].Duration)
	assert.Empty(t, got[1].Services[1].Price)
}

func TestReconcileFallsBackToOriginalWithoutProposal(t *testing.T) {
	session := NewSession(testOriginal(), nil, nil)

	got := session.Categories()
	require.Len(t, got, 3)
	assert.Equal(t, "Strzyżenie", got[0].Name)
	assert.Equal(t, 5, session.ServiceCount())
}

func TestSessionKeepsAdvisoryChanges(t *testing.T) {
	changes := []model.ChangeRecord{
		{
			Type:         model.ChangeMergeCategories,
			Description:  "Merge treatments into care",
			FromCategory: "Pielęgnacja",
			ToCategory:   "Koloryzacja",
			Reason:       "Small category",
		},
	}

	session := NewSession(testOriginal(), nil, changes)

	require.Len(t, session.Changes(), 1)
	assert.Equal(t, model.ChangeMergeCategories, session.Changes()[0].Type)

	// Advisory records never mutate the structure.
	assert.Len(t, session.Categories(), 3)
}
