package integration

import (
	"encoding/json"
	"net/http"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBookmarkToggle(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping integration test")
	}

	app := setupTestApp(t)
	defer app.Teardown(t)

	userID := createUser(t, app.DB, "reader@example.com")
	authorID := createUser(t, app.DB, "author@example.com")
	postID := createPost(t, app.DB, authorID, "A post")

	token := signToken(t, userID, "reader@example.com", "access", time.Hour)

	toggle := func() bool {
		req, err := http.NewRequest("POST", app.Server.URL+"/api/v1/bookmarks/"+itoa(postID), nil)
		require.NoError(t, err)
		req.Header.Set("Authorization", "Bearer "+token)

		resp, err := app.Client.Do(req)
		require.NoError(t, err)
		defer resp.Body.Close()
		require.Equal(t, http.StatusOK, resp.StatusCode)

		var body struct {
			Bookmarked bool `json:"bookmarked"`
		}
		require.NoError(t, json.NewDecoder(resp.Body).Decode(&body))
		return body.Bookmarked
	}

	assert.True(t, toggle(), "first toggle bookmarks")
	assert.False(t, toggle(), "second toggle removes the bookmark")
	assert.True(t, toggle(), "third toggle bookmarks again")

	// The bookmark shows up in the caller's list.
	req, err := http.NewRequest("GET", app.Server.URL+"/api/v1/bookmarks/", nil)
	require.NoError(t, err)
	req.Header.Set("Authorization", "Bearer "+token)

	resp, err := app.Client.Do(req)
	require.NoError(t, err)
	defer resp.Body.Close()
	require.Equal(t, http.StatusOK, resp.StatusCode)

	var list struct {
		Elements []struct {
			ID    int64  `json:"id"`
			Title string `json:"title"`
		} `json:"elements"`
	}
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&list))
	require.Len(t, list.Elements, 1)
	assert.Equal(t, postID, list.Elements[0].ID)
}

func TestBookmarks_RequireAuth(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping integration test")
	}

	app := setupTestApp(t)
	defer app.Teardown(t)

	resp, err := app.Client.Get(app.Server.URL + "/api/v1/bookmarks/")
	require.NoError(t, err)
	resp.Body.Close()
	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
}

func TestGetPost_OptionalAuth(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping integration test")
	}

	app := setupTestApp(t)
	defer app.Teardown(t)

	userID := createUser(t, app.DB, "reader@example.com")
	authorID := createUser(t, app.DB, "author@example.com")
	postID := createPost(t, app.DB, authorID, "A post")

	_, err := app.DB.Exec("INSERT INTO bookmarks (user_id, post_id) VALUES ($1, $2)", userID, postID)
	require.NoError(t, err)

	getPost := func(token string) (int, bool, int64) {
		req, err := http.NewRequest("GET", app.Server.URL+"/api/v1/member-posts/"+itoa(postID), nil)
		require.NoError(t, err)
		if token != "" {
			req.Header.Set("Authorization", "Bearer "+token)
		}

		resp, err := app.Client.Do(req)
		require.NoError(t, err)
		defer resp.Body.Close()

		var body struct {
			Post struct {
				ViewCount int64 `json:"viewCount"`
			} `json:"post"`
			IsBookmarked bool `json:"isBookmarked"`
		}
		require.NoError(t, json.NewDecoder(resp.Body).Decode(&body))
		return resp.StatusCode, body.IsBookmarked, body.Post.ViewCount
	}

	// Anonymous request proceeds with no identity attached.
	status, bookmarked, views1 := getPost("")
	assert.Equal(t, http.StatusOK, status)
	assert.False(t, bookmarked)

	// Authenticated request sees its own bookmark, and the view counter
	// moved between the two reads.
	token := signToken(t, userID, "reader@example.com", "access", time.Hour)
	status, bookmarked, views2 := getPost(token)
	assert.Equal(t, http.StatusOK, status)
	assert.True(t, bookmarked)
	assert.Greater(t, views2, views1)
}
