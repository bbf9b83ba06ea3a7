//go:build integration
// +build integration

package integration_test

import (
	"bytes"
	"encoding/json"
	"net/http"
	"testing"

	"github.com/google/uuid"
	"github.com/lib/pq"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const (
	baseURL = "http://localhost:8080/api/v1"
)

func doJSON(t *testing.T, client *http.Client, method, path, token string, payload interface{}) *http.Response {
	var body *bytes.Buffer
	if payload != nil {
		raw, err := json.Marshal(payload)
		require.NoError(t, err)
		body = bytes.NewBuffer(raw)
	} else {
		body = bytes.NewBuffer(nil)
	}

	req, err := http.NewRequest(method, baseURL+path, body)
	require.NoError(t, err)
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	resp, err := client.Do(req)
	require.NoError(t, err)
	return resp
}

func decode(t *testing.T, resp *http.Response, out interface{}) {
	defer resp.Body.Close()
	require.NoError(t, json.NewDecoder(resp.Body).Decode(out))
}

func login(t *testing.T, client *http.Client, email, password string) string {
	resp := doJSON(t, client, "POST", "/auth/login", "", map[string]string{
		"email":    email,
		"password": password,
	})
	require.Equal(t, http.StatusOK, resp.StatusCode)

	var result map[string]interface{}
	decode(t, resp, &result)
	return result["access_token"].(string)
}

func TestMarketplaceFlow(t *testing.T) {
	// This test assumes the API server is running on localhost:8080
	// against the same database as DATABASE_URL.

	env := SetupTestEnv(t)
	defer env.Teardown()

	sellerID := env.SeedVerifiedUser(t, "penjual@example.com", "password123", "Budi Santoso")
	env.SeedVerifiedUser(t, "pembeli@example.com", "password123", "Citra Lestari")

	client := &http.Client{}
	sellerToken := login(t, client, "penjual@example.com", "password123")
	buyerToken := login(t, client, "pembeli@example.com", "password123")

	var listingID string

	t.Run("Create Listing", func(t *testing.T) {
		resp := doJSON(t, client, "POST", "/listings", sellerToken, map[string]interface{}{
			"title":       "Meja makan kayu jati",
			"description": "Meja makan bekas, kondisi bagus, muat 6 orang",
			"price":       750000,
			"condition":   "good",
			"category_id": env.CategoryID.String(),
		})
		require.Equal(t, http.StatusCreated, resp.StatusCode)

		var listing map[string]interface{}
		decode(t, resp, &listing)
		listingID = listing["id"].(string)
		assert.Equal(t, "active", listing["status"])
	})

	t.Run("Browse Finds Listing", func(t *testing.T) {
		resp := doJSON(t, client, "GET", "/listings?q=meja", "", nil)
		require.Equal(t, http.StatusOK, resp.StatusCode)

		var listings []map[string]interface{}
		decode(t, resp, &listings)
		require.Len(t, listings, 1)
		assert.Equal(t, listingID, listings[0]["id"])
	})

	t.Run("Buyer Sends Message", func(t *testing.T) {
		resp := doJSON(t, client, "POST", "/messages", buyerToken, map[string]interface{}{
			"listing_id":   listingID,
			"recipient_id": sellerID.String(),
			"content":      "Apakah masih tersedia?",
		})
		require.Equal(t, http.StatusOK, resp.StatusCode)
		resp.Body.Close()
	})

	t.Run("Seller Sees One Thread", func(t *testing.T) {
		resp := doJSON(t, client, "GET", "/messages/threads", sellerToken, nil)
		require.Equal(t, http.StatusOK, resp.StatusCode)

		var threads []map[string]interface{}
		decode(t, resp, &threads)
		require.Len(t, threads, 1)

		other := threads[0]["other_user"].(map[string]interface{})
		assert.Equal(t, "Citra Lestari", other["full_name"])
	})

	t.Run("Mark Sold", func(t *testing.T) {
		// Buyer is not the owner.
		resp := doJSON(t, client, "PATCH", "/listings/"+listingID+"/status", buyerToken, map[string]string{
			"status": "sold",
		})
		require.Equal(t, http.StatusUnauthorized, resp.StatusCode)
		resp.Body.Close()

		resp = doJSON(t, client, "PATCH", "/listings/"+listingID+"/status", sellerToken, map[string]string{
			"status": "sold",
		})
		require.Equal(t, http.StatusOK, resp.StatusCode)

		var listing map[string]interface{}
		decode(t, resp, &listing)
		assert.Equal(t, "sold", listing["status"])
	})

	t.Run("Sold Listing Leaves Browse", func(t *testing.T) {
		resp := doJSON(t, client, "GET", "/listings?q=meja", "", nil)
		require.Equal(t, http.StatusOK, resp.StatusCode)

		var listings []map[string]interface{}
		decode(t, resp, &listings)
		assert.Len(t, listings, 0)
	})

	t.Run("Expired Listing Leaves Browse But Stays In Mine", func(t *testing.T) {
		expiredID := uuid.New()
		_, err := env.DB.Exec(`
			INSERT INTO listings (id, user_id, category_id, title, description, price, condition, images, status, expires_at)
			VALUES ($1, $2, $3, $4, $5, $6, $7, $8, 'active', NOW() - INTERVAL '1 day')`,
			expiredID, sellerID, env.CategoryID, "Kipas angin bekas", "Masih menyala normal",
			50000, "fair", pq.Array([]string{}),
		)
		require.NoError(t, err)

		resp := doJSON(t, client, "GET", "/listings?q=kipas", "", nil)
		require.Equal(t, http.StatusOK, resp.StatusCode)

		var listings []map[string]interface{}
		decode(t, resp, &listings)
		assert.Len(t, listings, 0)

		resp = doJSON(t, client, "GET", "/listings/mine", sellerToken, nil)
		require.Equal(t, http.StatusOK, resp.StatusCode)

		var mine []map[string]interface{}
		decode(t, resp, &mine)

		ids := make([]string, 0, len(mine))
		for _, l := range mine {
			ids = append(ids, l["id"].(string))
		}
		assert.Contains(t, ids, expiredID.String())
	})

	t.Run("Seller Notifications", func(t *testing.T) {
		resp := doJSON(t, client, "GET", "/notifications", sellerToken, nil)
		require.Equal(t, http.StatusOK, resp.StatusCode)

		var notifications []map[string]interface{}
		decode(t, resp, &notifications)

		types := make(map[string]bool)
		for _, n := range notifications {
			types[n["type"].(string)] = true
		}
		assert.True(t, types["message"], "expected a new-message notification")
		assert.True(t, types["listing_sold"], "expected a listing-sold notification")
	})

	t.Run("Buyer Reviews Seller", func(t *testing.T) {
		resp := doJSON(t, client, "POST", "/reviews", buyerToken, map[string]interface{}{
			"listing_id":  listingID,
			"reviewed_id": sellerID.String(),
			"rating":      5,
			"comment":     "Penjual ramah, barang sesuai",
		})
		require.Equal(t, http.StatusOK, resp.StatusCode)
		resp.Body.Close()

		// Same reviewer, same listing.
		resp = doJSON(t, client, "POST", "/reviews", buyerToken, map[string]interface{}{
			"listing_id":  listingID,
			"reviewed_id": sellerID.String(),
			"rating":      4,
		})
		require.Equal(t, http.StatusBadRequest, resp.StatusCode)
		resp.Body.Close()
	})

	t.Run("Seller Review List And Unread Count", func(t *testing.T) {
		resp := doJSON(t, client, "GET", "/reviews?userId="+sellerID.String(), sellerToken, nil)
		require.Equal(t, http.StatusOK, resp.StatusCode)

		var reviews []map[string]interface{}
		decode(t, resp, &reviews)
		require.Len(t, reviews, 1)
		assert.Equal(t, float64(5), reviews[0]["rating"])

		resp = doJSON(t, client, "GET", "/notifications/unread-count", sellerToken, nil)
		require.Equal(t, http.StatusOK, resp.StatusCode)

		var count map[string]interface{}
		decode(t, resp, &count)
		assert.GreaterOrEqual(t, count["count"], float64(3))
	})

	t.Run("Mark Notification Read", func(t *testing.T) {
		resp := doJSON(t, client, "GET", "/notifications", sellerToken, nil)
		require.Equal(t, http.StatusOK, resp.StatusCode)

		var notifications []map[string]interface{}
		decode(t, resp, &notifications)
		require.NotEmpty(t, notifications)
		notifID := notifications[0]["id"].(string)

		resp = doJSON(t, client, "PATCH", "/notifications/"+notifID, sellerToken, map[string]bool{
			"read": true,
		})
		require.Equal(t, http.StatusOK, resp.StatusCode)

		var notif map[string]interface{}
		decode(t, resp, &notif)
		assert.Equal(t, true, notif["is_read"])

		// Buyer cannot touch the seller's notification.
		resp = doJSON(t, client, "PATCH", "/notifications/"+notifID, buyerToken, map[string]bool{
			"read": false,
		})
		require.Equal(t, http.StatusNotFound, resp.StatusCode)
		resp.Body.Close()
	})
}
