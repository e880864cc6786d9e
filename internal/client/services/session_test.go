package services

import (
	"context"
	"testing"

	"github.com/dmitrijs2005/postdesk/internal/client/models"
	"github.com/dmitrijs2005/postdesk/internal/common"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBootstrap_LoadsEverything(t *testing.T) {
	fc := &fakeClient{
		categories: []models.Category{{ID: 1, Name: "News"}},
		previews:   map[int]*models.PreviewPage{1: {Results: previews("1"), Count: 1}},
		post:       &models.Post{ID: "1", Title: "T", Categories: []models.Category{{ID: 1}}},
	}
	list := NewPostList(fc, 20, nil)
	form := newForm(fc)

	require.NoError(t, Bootstrap(context.Background(), list, form, "1", nil))

	assert.Len(t, form.Categories(), 1)
	assert.Equal(t, previews("1"), list.Snapshot().Results)
	assert.Equal(t, "T", form.Draft().Title)
	assert.Equal(t, []models.ID{"1"}, fc.getCalls)
}

func TestBootstrap_NoEditSkipsFetch(t *testing.T) {
	fc := &fakeClient{}
	require.NoError(t, Bootstrap(context.Background(), NewPostList(fc, 20, nil), newForm(fc), "", nil))
	assert.Empty(t, fc.getCalls)
}

func TestBootstrap_FailureKeepsOtherState(t *testing.T) {
	fc := &fakeClient{
		categoriesErr: common.ErrFetch,
		previews:      map[int]*models.PreviewPage{1: {Results: previews("1", "2"), Count: 2}},
	}
	list := NewPostList(fc, 20, nil)

	err := Bootstrap(context.Background(), list, newForm(fc), "", nil)
	require.ErrorIs(t, err, common.ErrFetch)
	assert.Equal(t, previews("1", "2"), list.Snapshot().Results)
}
