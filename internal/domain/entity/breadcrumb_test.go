package entity

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestTrail_WithTitleDoesNotMutateSource(t *testing.T) {
	src := Trail{
		{Title: "首页", Path: "/pages/index/index"},
		{Title: "详情"},
	}

	got := src.WithTitle("环保新闻")

	assert.Equal(t, "环保新闻", got[1].Title)
	assert.Equal(t, "详情", src[1].Title)
}

func TestTrail_WithTitleEmpty(t *testing.T) {
	assert.Empty(t, Trail{}.WithTitle("x"))
	assert.Nil(t, Trail(nil).WithTitle("x"))

	src := Trail{{Title: "a"}}
	assert.Equal(t, src, src.WithTitle(""))
}
