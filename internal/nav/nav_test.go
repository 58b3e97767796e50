package nav

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBuildMarksActive(t *testing.T) {
	items := Build("/vostra-ai")
	require.Len(t, items, 2)
	assert.False(t, items[0].Active)
	assert.True(t, items[1].Active)

	items = Build("")
	assert.True(t, items[0].Active)

	items = Build("/tiers")
	assert.False(t, items[0].Active, "home must only match exactly")
}

func TestBreadcrumbs(t *testing.T) {
	crumbs := Breadcrumbs("/tiers")
	require.Len(t, crumbs, 2)
	assert.Equal(t, Crumb{Href: "/", LabelKey: "nav.home"}, crumbs[0])
	assert.Equal(t, Crumb{Href: "/tiers", LabelKey: "nav.pricing", Label: "Tiers", Active: true}, crumbs[1])

	crumbs = Breadcrumbs("/vostra-ai/sentinel_preview/")
	require.Len(t, crumbs, 3)
	assert.Equal(t, "nav.vostra_ai", crumbs[1].LabelKey)
	assert.Equal(t, "Sentinel preview", crumbs[2].Label)
	assert.Equal(t, "/vostra-ai/sentinel_preview", crumbs[2].Href)
	assert.True(t, crumbs[2].Active)

	assert.Len(t, Breadcrumbs("/"), 1)
}
