package server

import (
	"fmt"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/xanke/disney-sns/internal/models"
)

func TestComments(t *testing.T) {
	e := newTestEnv(t, "")
	u1 := e.user(t, "mickey")
	u2 := e.user(t, "donald")
	post := createPost(t, e, u1.ID, map[string]interface{}{"content": "hello"})
	path := fmt.Sprintf("/api/posts/%d/comments", post.ID)

	for _, text := range []string{"first", "second", "third"} {
		resp := e.do(t, http.MethodPost, path, u2.ID, map[string]string{"content": text})
		require.Equal(t, http.StatusCreated, resp.Status, string(resp.raw))
		assert.Equal(t, "comment added", resp.Message)
	}

	resp := e.do(t, http.MethodPost, path, u2.ID, map[string]string{"content": ""})
	assert.Equal(t, http.StatusBadRequest, resp.Status)
	resp = e.do(t, http.MethodPost, path, 0, map[string]string{"content": "x"})
	assert.Equal(t, http.StatusUnauthorized, resp.Status)

	var comments []models.Comment
	resp = e.do(t, http.MethodGet, path+"?limit=2", 0, nil)
	require.Equal(t, http.StatusOK, resp.Status)
	resp.decode(t, &comments)
	require.Len(t, comments, 2)
	assert.Equal(t, "first", comments[0].Content)
	assert.Equal(t, "donald", comments[0].NickName)

	resp = e.do(t, http.MethodGet, path+"?limit=2&page=1", 0, nil)
	resp.decode(t, &comments)
	require.Len(t, comments, 1)
	assert.Equal(t, "third", comments[0].Content)

	resp = e.do(t, http.MethodGet, "/api/posts/999/comments", 0, nil)
	assert.Equal(t, http.StatusNotFound, resp.Status)

	var detail struct {
		CommentList []models.Comment `json:"commentList"`
	}
	resp = e.do(t, http.MethodGet, fmt.Sprintf("/api/posts/%d", post.ID), 0, nil)
	resp.decode(t, &detail)
	assert.Len(t, detail.CommentList, 3)
}
