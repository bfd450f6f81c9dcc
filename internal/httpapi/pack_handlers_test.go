package httpapi

import (
	"fmt"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mmynk/packs/internal/models"
)

func TestPackCRUD(t *testing.T) {
	ts := newTestServer(t)
	owner := ts.login("owner")

	rec := ts.do(http.MethodPost, "/pack", map[string]string{"name": "Hiking", "description": "Day hike"}, owner.AccessToken)
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())
	created := decode[packResponse](t, rec)
	require.NotZero(t, created.ID)
	require.NotNil(t, created.OwnerID)
	assert.Equal(t, int64(1), *created.OwnerID)
	assert.Empty(t, created.Items)
	path := fmt.Sprintf("/pack/%d", created.ID)

	t.Run("read returns what was created", func(t *testing.T) {
		rec := ts.do(http.MethodGet, path, nil, "")
		require.Equal(t, http.StatusOK, rec.Code)
		assert.Equal(t, created, decode[packResponse](t, rec))
	})

	t.Run("list", func(t *testing.T) {
		rec := ts.do(http.MethodGet, "/pack", nil, "")
		require.Equal(t, http.StatusOK, rec.Code)
		packs := decode[[]packResponse](t, rec)
		require.Len(t, packs, 1)
		assert.Equal(t, "Hiking", packs[0].Name)
	})

	t.Run("create requires token", func(t *testing.T) {
		rec := ts.do(http.MethodPost, "/pack", map[string]string{"name": "Anon"}, "")
		requireError(t, rec, http.StatusUnauthorized, "authorization_required")
	})

	t.Run("duplicate name", func(t *testing.T) {
		rec := ts.do(http.MethodPost, "/pack", map[string]string{"name": "Hiking"}, owner.AccessToken)
		requireError(t, rec, http.StatusConflict, "already_exists")
	})

	t.Run("empty name", func(t *testing.T) {
		rec := ts.do(http.MethodPost, "/pack", map[string]string{"name": "  "}, owner.AccessToken)
		requireError(t, rec, http.StatusBadRequest, "invalid_request")
	})

	t.Run("update", func(t *testing.T) {
		rec := ts.do(http.MethodPut, path, map[string]string{"name": "Hiking", "description": "Overnight"}, owner.AccessToken)
		require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
		updated := decode[packResponse](t, rec)
		assert.Equal(t, "Overnight", updated.Description)
		assert.Equal(t, created.OwnerID, updated.OwnerID)
	})

	t.Run("put creates missing pack", func(t *testing.T) {
		rec := ts.do(http.MethodPut, "/pack/100", map[string]string{"name": "Climbing"}, owner.AccessToken)
		require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())
		assert.Equal(t, int64(100), decode[packResponse](t, rec).ID)
	})

	t.Run("other users cannot modify", func(t *testing.T) {
		other := ts.login("intruder")
		rec := ts.do(http.MethodPut, path, map[string]string{"name": "Mine now"}, other.AccessToken)
		requireError(t, rec, http.StatusForbidden, "forbidden")
		rec = ts.do(http.MethodDelete, path, nil, other.AccessToken)
		requireError(t, rec, http.StatusForbidden, "forbidden")
	})

	t.Run("invalid id", func(t *testing.T) {
		requireError(t, ts.do(http.MethodGet, "/pack/abc", nil, ""), http.StatusBadRequest, "invalid_request")
	})

	t.Run("delete removes pack and items", func(t *testing.T) {
		item := map[string]any{"name": "Map", "price": 9.99, "pack_id": created.ID}
		require.Equal(t, http.StatusCreated, ts.do(http.MethodPost, "/item", item, owner.AccessToken).Code)

		rec := ts.do(http.MethodDelete, path, nil, owner.AccessToken)
		require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())

		requireError(t, ts.do(http.MethodGet, path, nil, ""), http.StatusNotFound, "not_found")
		rec = ts.do(http.MethodGet, fmt.Sprintf("/item?pack_id=%d", created.ID), nil, "")
		require.Equal(t, http.StatusOK, rec.Code)
		assert.Empty(t, decode[[]itemResponse](t, rec))

		requireError(t, ts.do(http.MethodDelete, path, nil, owner.AccessToken), http.StatusNotFound, "not_found")
	})
}

func TestPack_SeededPackIsShared(t *testing.T) {
	ts := newTestServer(t)
	seeded := &models.Pack{Name: "Starter"}
	require.NoError(t, ts.store.CreatePack(t.Context(), seeded))

	user := ts.login("anyone")
	rec := ts.do(http.MethodPut, fmt.Sprintf("/pack/%d", seeded.ID), map[string]string{"name": "Starter", "description": "edited"}, user.AccessToken)
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	assert.Nil(t, decode[packResponse](t, rec).OwnerID)
}

func TestPackSummary(t *testing.T) {
	ts := newTestServer(t)
	tokens := ts.login("summer")

	rec := ts.do(http.MethodPost, "/pack", map[string]string{"name": "Camping"}, tokens.AccessToken)
	require.Equal(t, http.StatusCreated, rec.Code)
	packID := decode[packResponse](t, rec).ID

	for name, price := range map[string]float64{"Tent": 120, "Stove": 45.5, "Lamp": 10} {
		item := map[string]any{"name": name, "price": price, "pack_id": packID}
		require.Equal(t, http.StatusCreated, ts.do(http.MethodPost, "/item", item, tokens.AccessToken).Code)
	}

	rec = ts.do(http.MethodGet, fmt.Sprintf("/pack/%d/summary", packID), nil, "")
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	summary := decode[summaryResponse](t, rec)
	assert.Equal(t, packID, summary.PackID)
	assert.Equal(t, 3, summary.ItemCount)
	assert.InDelta(t, 175.5, summary.TotalPrice, 0.001)
	assert.InDelta(t, 58.5, summary.AveragePrice, 0.001)
	assert.InDelta(t, 10, summary.MinPrice, 0.001)
	assert.InDelta(t, 120, summary.MaxPrice, 0.001)

	requireError(t, ts.do(http.MethodGet, "/pack/999/summary", nil, ""), http.StatusNotFound, "not_found")
}
