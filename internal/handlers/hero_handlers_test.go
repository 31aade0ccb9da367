package handlers_test

import (
	"fmt"
	"net/http"
	"testing"

	"github.com/01moynul/travelsite/internal/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func heroBody(title string, active bool) map[string]interface{} {
	return map[string]interface{}{
		"title":           title,
		"subtitle":        "Perjalanan ibadah yang nyaman",
		"backgroundImage": "http://api.test/uploads/hero.jpg",
		"isActive":        active,
		"buttons": []map[string]interface{}{
			{"text": "Lihat Paket", "link": "/products", "sortOrder": 2},
			{"text": "Hubungi Kami", "link": "/contact", "variant": "outline", "sortOrder": 1},
		},
		"stats": []map[string]interface{}{
			{"label": "Jamaah", "value": "10K+", "icon": "users"},
		},
	}
}

func createHero(t *testing.T, e *env, title string, active bool) models.HeroSection {
	t.Helper()
	w := e.post("/api/hero", heroBody(title, active))
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())
	var hero models.HeroSection
	decode(t, w, &hero)
	return hero
}

func TestHero_CreateWithChildren(t *testing.T) {
	e := newEnv(t)
	hero := createHero(t, e, "Umroh Bersama Kami", true)

	require.Len(t, hero.Buttons, 2)
	assert.Equal(t, "Hubungi Kami", hero.Buttons[0].Text, "ordered by sortOrder")
	assert.Equal(t, "outline", hero.Buttons[0].Variant)
	assert.Equal(t, "primary", hero.Buttons[1].Variant)
	require.Len(t, hero.Stats, 1)
	assert.Equal(t, hero.ID, hero.Stats[0].HeroSectionID)

	w := e.anon(http.MethodGet, "/api/hero", nil)
	require.Equal(t, http.StatusOK, w.Code)
	var active models.HeroSection
	decode(t, w, &active)
	assert.Equal(t, hero.ID, active.ID)
	assert.Len(t, active.Buttons, 2)
}

func TestHero_NoActiveIs404(t *testing.T) {
	e := newEnv(t)
	createHero(t, e, "Draft Hero", false)
	assert.Equal(t, http.StatusNotFound, e.anon(http.MethodGet, "/api/hero", nil).Code)
}

func TestHero_SingleActive(t *testing.T) {
	e := newEnv(t)
	first := createHero(t, e, "Hero Ramadhan", true)

	// Warm the public cache
	require.Equal(t, http.StatusOK, e.anon(http.MethodGet, "/api/hero", nil).Code)

	second := createHero(t, e, "Hero Haji", true)

	var stored models.HeroSection
	require.NoError(t, e.h.DB.First(&stored, first.ID).Error)
	assert.False(t, stored.IsActive)

	var active models.HeroSection
	decode(t, e.anon(http.MethodGet, "/api/hero", nil), &active)
	assert.Equal(t, second.ID, active.ID, "cache invalidated on create")

	var all []models.HeroSection
	decode(t, e.get("/api/hero/all"), &all)
	assert.Len(t, all, 2)
	assert.Equal(t, http.StatusUnauthorized, e.anon(http.MethodGet, "/api/hero/all", nil).Code)
}

func TestHero_UpdateReplacesChildren(t *testing.T) {
	e := newEnv(t)
	hero := createHero(t, e, "Hero Lama", true)

	body := heroBody("Hero Baru", true)
	body["buttons"] = []map[string]interface{}{{"text": "Daftar", "link": "/register"}}
	body["stats"] = []map[string]interface{}{}

	w := e.put(fmt.Sprintf("/api/hero/%d", hero.ID), body)
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())

	var updated models.HeroSection
	decode(t, w, &updated)
	assert.Equal(t, "Hero Baru", updated.Title)
	require.Len(t, updated.Buttons, 1)
	assert.Equal(t, "Daftar", updated.Buttons[0].Text)
	assert.Empty(t, updated.Stats)

	var buttons int64
	require.NoError(t, e.h.DB.Model(&models.HeroButton{}).Count(&buttons).Error)
	assert.Equal(t, int64(1), buttons)

	assert.Equal(t, http.StatusNotFound, e.put("/api/hero/999", body).Code)
}

func TestHero_NestedRoutes(t *testing.T) {
	e := newEnv(t)
	hero := createHero(t, e, "Hero", true)

	w := e.post(fmt.Sprintf("/api/hero/%d/buttons", hero.ID), map[string]interface{}{"text": "WhatsApp", "link": "https://wa.me/62", "variant": "secondary"})
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())
	var button models.HeroButton
	decode(t, w, &button)
	assert.Equal(t, hero.ID, button.HeroSectionID)

	w = e.put(fmt.Sprintf("/api/hero/buttons/%d", button.ID), map[string]interface{}{"text": "Chat", "variant": "bogus"})
	assert.Equal(t, http.StatusBadRequest, w.Code)

	w = e.put(fmt.Sprintf("/api/hero/buttons/%d", button.ID), map[string]interface{}{"text": "Chat"})
	require.Equal(t, http.StatusOK, w.Code)
	decode(t, w, &button)
	assert.Equal(t, "Chat", button.Text)

	assert.Equal(t, http.StatusOK, e.del(fmt.Sprintf("/api/hero/buttons/%d", button.ID)).Code)
	assert.Equal(t, http.StatusNotFound, e.del(fmt.Sprintf("/api/hero/buttons/%d", button.ID)).Code)

	w = e.post(fmt.Sprintf("/api/hero/%d/stats", hero.ID), map[string]interface{}{"label": "Tahun", "value": "15"})
	require.Equal(t, http.StatusCreated, w.Code)
	var stat models.HeroStat
	decode(t, w, &stat)

	w = e.put(fmt.Sprintf("/api/hero/stats/%d", stat.ID), map[string]interface{}{"label": "Tahun Berdiri", "value": "16"})
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, http.StatusOK, e.del(fmt.Sprintf("/api/hero/stats/%d", stat.ID)).Code)

	assert.Equal(t, http.StatusNotFound, e.post("/api/hero/999/stats", map[string]interface{}{"label": "x", "value": "y"}).Code)
}

func TestHero_DeleteRemovesChildren(t *testing.T) {
	e := newEnv(t)
	hero := createHero(t, e, "Hero Hapus", true)

	require.Equal(t, http.StatusOK, e.del(fmt.Sprintf("/api/hero/%d", hero.ID)).Code)

	var buttons, stats int64
	require.NoError(t, e.h.DB.Model(&models.HeroButton{}).Where("hero_section_id = ?", hero.ID).Count(&buttons).Error)
	require.NoError(t, e.h.DB.Model(&models.HeroStat{}).Where("hero_section_id = ?", hero.ID).Count(&stats).Error)
	assert.Zero(t, buttons)
	assert.Zero(t, stats)

	assert.Equal(t, http.StatusNotFound, e.del(fmt.Sprintf("/api/hero/%d", hero.ID)).Code)
	assert.Equal(t, http.StatusNotFound, e.anon(http.MethodGet, "/api/hero", nil).Code)
}
