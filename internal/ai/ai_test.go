package ai

import (
	"context"
	"testing"

	"github.com/01moynul/travelsite/internal/database/dbtest"
	"github.com/01moynul/travelsite/internal/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPrompt(t *testing.T) {
	p := Prompt(Request{Kind: KindProduct, Title: "Umroh Ramadhan", Notes: "  12 days, Makkah first  "})
	assert.Contains(t, p, `"Umroh Ramadhan"`)
	assert.Contains(t, p, "product description")
	assert.Contains(t, p, "12 days, Makkah first")

	p = Prompt(Request{Kind: KindBlog, Title: "Tips Manasik"})
	assert.Contains(t, p, "blog post excerpt")
	assert.NotContains(t, p, "Details to include")
}

func TestSystemInstruction(t *testing.T) {
	s := SystemInstruction("Amanah Tour", []string{"Umroh", "Haji Plus"})
	assert.Contains(t, s, "Amanah Tour")
	assert.Contains(t, s, "Umroh, Haji Plus")

	assert.NotContains(t, SystemInstruction("Amanah Tour", nil), "package types")
}

func TestSiteContext(t *testing.T) {
	db := dbtest.New(t)
	s := &Service{DB: db}

	name, types, err := s.siteContext(context.Background())
	require.NoError(t, err)
	assert.Equal(t, models.DefaultSettings().SiteName, name)
	assert.Empty(t, types)

	settings := models.DefaultSettings()
	settings.SiteName = "Amanah Tour"
	require.NoError(t, db.Create(&settings).Error)
	require.NoError(t, db.Create(&models.ProductType{Name: "Haji Plus", Slug: "haji-plus", IsActive: true, SortOrder: 2}).Error)
	require.NoError(t, db.Create(&models.ProductType{Name: "Umroh", Slug: "umroh", IsActive: true, SortOrder: 1}).Error)
	require.NoError(t, db.Create(&models.ProductType{Name: "Tour", Slug: "tour", IsActive: false}).Error)

	name, types, err = s.siteContext(context.Background())
	require.NoError(t, err)
	assert.Equal(t, "Amanah Tour", name)
	assert.Equal(t, []string{"Umroh", "Haji Plus"}, types)
}

func TestSiteContext_DatabaseError(t *testing.T) {
	db := dbtest.New(t)
	sqlDB, err := db.DB()
	require.NoError(t, err)
	require.NoError(t, sqlDB.Close())

	_, _, err = (&Service{DB: db}).siteContext(context.Background())
	assert.Error(t, err)

	_, _, err = (&Service{DB: db}).Describe(context.Background(), Request{Kind: KindProduct, Title: "Umroh"})
	assert.Error(t, err)
}
