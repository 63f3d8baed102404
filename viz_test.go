package main

import (
	"encoding/json"
	"testing"

	"github.com/paulmach/orb"
	"github.com/stretchr/testify/require"
)

func TestRoadmapFeatureCollection(t *testing.T) {
	space := NewPlanarSpace(NewFreeGrid(10, 10), 0)
	rm := NewRoadmap(space, 5, false)
	a, _ := rm.AddNode(Config{1, 1})
	b, _ := rm.AddNode(Config{4, 1})
	c, _ := rm.AddNode(Config{4, 4})
	rm.RemoveEdge(a, b)

	fc := RoadmapFeatureCollection(rm)
	require.Len(t, fc.Features, 3) // a-b, a-c, b-c

	removed := 0
	for _, f := range fc.Features {
		line, ok := f.Geometry.(orb.LineString)
		require.True(t, ok)
		require.Len(t, line, 2)
		if f.Properties["removed"].(bool) {
			removed++
		}
	}
	require.Equal(t, 1, removed)

	// The collection must round-trip as JSON for the HTTP layer.
	data, err := json.Marshal(fc)
	require.NoError(t, err)
	require.Contains(t, string(data), "FeatureCollection")

	path := PathFeature(rm, []int{a, c, b})
	line := path.Geometry.(orb.LineString)
	require.Equal(t, orb.LineString{{1, 1}, {4, 4}, {4, 1}}, line)
	require.Equal(t, "path", path.Properties["kind"])
}
