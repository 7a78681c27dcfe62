package controllers

import (
	"net/http"
	"net/url"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/vedantlonkar23/loopspacenew/models"
)

func TestGetProfileMarksSelf(t *testing.T) {
	db := newTestDB(t)
	r := newTestRouter(t, db)
	dana := createTestUser(t, db, "Dana", "dana@example.com", models.RoleIndividual)
	sam := createTestUser(t, db, "Sam", "sam@example.com", models.RoleIndividual)

	w := doJSON(r, http.MethodGet, "/api/auth/user-profile", tokenFor(t, dana), nil)
	require.Equal(t, http.StatusOK, w.Code)

	var own struct {
		ID     string `json:"id"`
		IsSelf bool   `json:"is_self"`
	}
	decodeBody(t, w, &own)
	assert.Equal(t, dana.ID, own.ID)
	assert.True(t, own.IsSelf)

	w = doJSON(r, http.MethodGet, "/api/auth/user-profile-other/"+sam.ID, tokenFor(t, dana), nil)
	require.Equal(t, http.StatusOK, w.Code)

	var other struct {
		ID     string `json:"id"`
		IsSelf bool   `json:"is_self"`
	}
	decodeBody(t, w, &other)
	assert.Equal(t, sam.ID, other.ID)
	assert.False(t, other.IsSelf)
}

func TestGetProfileOtherUnknownUser(t *testing.T) {
	db := newTestDB(t)
	r := newTestRouter(t, db)
	dana := createTestUser(t, db, "Dana", "dana@example.com", models.RoleIndividual)

	w := doJSON(r, http.MethodGet, "/api/auth/user-profile-other/missing-id", tokenFor(t, dana), nil)

	assert.Equal(t, http.StatusNotFound, w.Code)
	assert.Contains(t, w.Body.String(), "User not found")
}

func TestProfileNeverLeaksCredentials(t *testing.T) {
	db := newTestDB(t)
	r := newTestRouter(t, db)
	dana := createTestUser(t, db, "Dana", "dana@example.com", models.RoleIndividual)

	googleID := "google-sub-123"
	require.NoError(t, db.Model(&models.User{}).Where("id = ?", dana.ID).
		Update("google_id", googleID).Error)

	w := doJSON(r, http.MethodGet, "/api/auth/user-profile", tokenFor(t, dana), nil)
	require.Equal(t, http.StatusOK, w.Code)

	assert.NotContains(t, w.Body.String(), "password")
	assert.NotContains(t, w.Body.String(), googleID)
}

func TestUpdateUserProfileFlipsCompletionFlag(t *testing.T) {
	db := newTestDB(t)
	r := newTestRouter(t, db)
	dana := createTestUser(t, db, "Dana", "dana@example.com", models.RoleIndividual)

	form := url.Values{
		"bio":       {"Distributed systems tinkerer"},
		"skills":    {"go", "sql"},
		"interests": {"hiking"},
	}
	w := doForm(r, http.MethodPut, "/api/auth/update-user-profile", tokenFor(t, dana), form)
	require.Equal(t, http.StatusOK, w.Code)

	var stored models.User
	require.NoError(t, db.First(&stored, "id = ?", dana.ID).Error)
	assert.True(t, stored.IsProfileComplete)
	assert.Equal(t, "Distributed systems tinkerer", stored.Bio)
	assert.Equal(t, models.StringSlice{"go", "sql"}, stored.Skills)
	assert.Equal(t, models.StringSlice{"hiking"}, stored.Interests)
}

func TestUpdateUserProfileRejectsOrganizer(t *testing.T) {
	db := newTestDB(t)
	r := newTestRouter(t, db)
	org := createTestUser(t, db, "Acme Events", "acme@example.com", models.RoleOrganizer)

	w := doForm(r, http.MethodPut, "/api/auth/update-user-profile", tokenFor(t, org),
		url.Values{"bio": {"should not land"}})

	assert.Equal(t, http.StatusForbidden, w.Code)
}

func TestUpdateOrganizerProfileRejectsIndividual(t *testing.T) {
	db := newTestDB(t)
	r := newTestRouter(t, db)
	dana := createTestUser(t, db, "Dana", "dana@example.com", models.RoleIndividual)

	w := doForm(r, http.MethodPut, "/api/auth/update-organizer-profile", tokenFor(t, dana),
		url.Values{"organization_name": {"Shadow Org"}})

	assert.Equal(t, http.StatusForbidden, w.Code)

	var stored models.User
	require.NoError(t, db.First(&stored, "id = ?", dana.ID).Error)
	assert.Empty(t, stored.OrganizationName)
}

func TestUpdateOrganizerProfileStoresOrganizerFields(t *testing.T) {
	db := newTestDB(t)
	r := newTestRouter(t, db)
	org := createTestUser(t, db, "Acme Events", "acme@example.com", models.RoleOrganizer)

	form := url.Values{
		"organization_name":        {"Acme Events Inc"},
		"organization_description": {"We run conferences"},
		"website":                  {"https://acme.example.com"},
		"phone_number":             {"+1 555 0100"},
		"event_types":              {"conference", "workshop"},
		"location":                 {"Berlin"},
	}
	w := doForm(r, http.MethodPut, "/api/auth/update-organizer-profile", tokenFor(t, org), form)
	require.Equal(t, http.StatusOK, w.Code)

	var stored models.User
	require.NoError(t, db.First(&stored, "id = ?", org.ID).Error)
	assert.True(t, stored.IsProfileComplete)
	assert.Equal(t, "Acme Events Inc", stored.OrganizationName)
	assert.Equal(t, models.StringSlice{"conference", "workshop"}, stored.EventTypes)
	assert.Equal(t, "Berlin", stored.Location)
}

func TestConnectUserCreatesSymmetricEdge(t *testing.T) {
	db := newTestDB(t)
	r := newTestRouter(t, db)
	dana := createTestUser(t, db, "Dana", "dana@example.com", models.RoleIndividual)
	sam := createTestUser(t, db, "Sam", "sam@example.com", models.RoleIndividual)

	w := doJSON(r, http.MethodPost, "/api/auth/connect-user", tokenFor(t, dana),
		map[string]string{"connection_id": sam.ID})
	require.Equal(t, http.StatusOK, w.Code)

	// Both directions exist, so either side sees the other.
	for _, viewer := range []struct {
		user models.User
		want string
	}{
		{dana, sam.ID},
		{sam, dana.ID},
	} {
		w := doJSON(r, http.MethodGet, "/api/auth/connections", tokenFor(t, viewer.user), nil)
		require.Equal(t, http.StatusOK, w.Code)

		var connections []models.User
		decodeBody(t, w, &connections)
		require.Len(t, connections, 1)
		assert.Equal(t, viewer.want, connections[0].ID)
	}
}

func TestConnectUserRejectsDuplicate(t *testing.T) {
	db := newTestDB(t)
	r := newTestRouter(t, db)
	dana := createTestUser(t, db, "Dana", "dana@example.com", models.RoleIndividual)
	sam := createTestUser(t, db, "Sam", "sam@example.com", models.RoleIndividual)

	w := doJSON(r, http.MethodPost, "/api/auth/connect-user", tokenFor(t, dana),
		map[string]string{"connection_id": sam.ID})
	require.Equal(t, http.StatusOK, w.Code)

	// Repeat from the other side; the edge already exists in both directions.
	w = doJSON(r, http.MethodPost, "/api/auth/connect-user", tokenFor(t, sam),
		map[string]string{"connection_id": dana.ID})
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Contains(t, w.Body.String(), "Already connected")

	var count int64
	require.NoError(t, db.Model(&models.Connection{}).Count(&count).Error)
	assert.Equal(t, int64(2), count)
}

func TestConnectUserRejectsSelf(t *testing.T) {
	db := newTestDB(t)
	r := newTestRouter(t, db)
	dana := createTestUser(t, db, "Dana", "dana@example.com", models.RoleIndividual)

	w := doJSON(r, http.MethodPost, "/api/auth/connect-user", tokenFor(t, dana),
		map[string]string{"connection_id": dana.ID})

	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Contains(t, w.Body.String(), "Cannot connect to self")
}

func TestConnectUserUnknownTarget(t *testing.T) {
	db := newTestDB(t)
	r := newTestRouter(t, db)
	dana := createTestUser(t, db, "Dana", "dana@example.com", models.RoleIndividual)

	w := doJSON(r, http.MethodPost, "/api/auth/connect-user", tokenFor(t, dana),
		map[string]string{"connection_id": "missing-id"})

	assert.Equal(t, http.StatusNotFound, w.Code)
	assert.Contains(t, w.Body.String(), "Connection user not found")
}
