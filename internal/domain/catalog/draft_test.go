package catalog

import (
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSplitTags_TrimsAndDropsEmpty(t *testing.T) {
	assert.Equal(t, []string{"Logo", "Branding", "Design"}, SplitTags("Logo, Branding,  Design"))
	assert.Equal(t, []string{"a", "b"}, SplitTags(" a ,, ,b,"))
	assert.Empty(t, SplitTags(""))
	assert.Empty(t, SplitTags(" , "))
}

func TestTags_RoundTripThroughDraft(t *testing.T) {
	d := NewPortfolioDraft()
	d.Title = "Logo refresh"
	d.Description = "desc"
	d.Tags = "Logo, Branding,  Design"

	item := d.PortfolioItem("x1")
	require.Equal(t, []string{"Logo", "Branding", "Design"}, item.Tags)

	back := DraftFromPortfolio(item)
	assert.Equal(t, "Logo, Branding, Design", back.Tags)
	assert.Equal(t, item.Tags, SplitTags(back.Tags))
}

func TestDraftFromPortfolio_UnchangedRoundTrip(t *testing.T) {
	created := time.Date(2024, 5, 1, 10, 0, 0, 0, time.UTC)
	orig := PortfolioItem{
		ID:          "p1",
		Title:       "Poster",
		Description: "Event poster",
		Category:    CategoryPosters,
		ImageURL:    "https://storage.googleapis.com/b/portfolio/1_a.png",
		Client:      "ACME",
		Tags:        []string{"Poster", "Event"},
		CreatedAt:   &created,
	}

	got := DraftFromPortfolio(orig).PortfolioItem(orig.ID)

	assert.Equal(t, orig, got)
}

func TestDraftFromService_UnchangedRoundTrip(t *testing.T) {
	orig := Service{ID: "s1", Title: "UI", Description: "d", Icon: ServiceIcons[5], Color: ServiceColors[1].Value, Order: 4}

	got, err := DraftFromService(orig).Service(orig.ID, 99)

	require.NoError(t, err)
	assert.Equal(t, orig, got)
}

func TestDraft_ServiceOrderDefaultsWhenBlank(t *testing.T) {
	d := NewServiceDraft(3)
	d.Title, d.Description = "t", "d"
	d.Order = ""

	s, err := d.Service("", 3)

	require.NoError(t, err)
	assert.Equal(t, 3, s.Order)
}

func TestDraft_ServiceOrderInvalid(t *testing.T) {
	d := Draft{Title: "t", Description: "d", Order: "first"}
	_, err := d.Service("", 0)
	assert.True(t, errors.Is(err, ErrInvalidOrder))
}

func TestDraft_Validate(t *testing.T) {
	assert.ErrorIs(t, Draft{Description: "d"}.Validate(), ErrRequiredField)
	assert.ErrorIs(t, Draft{Title: "t", Description: "  "}.Validate(), ErrRequiredField)
	assert.NoError(t, Draft{Title: "t", Description: "d"}.Validate())
}

func TestNewServiceDraft_Defaults(t *testing.T) {
	d := NewServiceDraft(6)
	assert.Equal(t, ServiceIcons[0], d.Icon)
	assert.Equal(t, ServiceColors[0].Value, d.Color)
	assert.Equal(t, "6", d.Order)
}
