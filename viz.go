package main

import (
	"github.com/paulmach/orb"
	"github.com/paulmach/orb/geojson"
)

// RoadmapFeatureCollection exports the roadmap edges as GeoJSON LineString
// features for rendering. Invalidated edges are included with a "removed"
// property so a frontend can show what the search pruned.
func RoadmapFeatureCollection(rm *Roadmap) *geojson.FeatureCollection {
	fc := geojson.NewFeatureCollection()
	for _, e := range rm.Edges() {
		u, v := rm.Node(e.U), rm.Node(e.V)
		feature := geojson.NewFeature(orb.LineString{
			{u[0], u[1]},
			{v[0], v[1]},
		})
		feature.Properties["u"] = e.U
		feature.Properties["v"] = e.V
		feature.Properties["weight"] = e.Weight
		feature.Properties["removed"] = e.State == EdgeInvalid
		fc.Append(feature)
	}
	return fc
}

// PathFeature exports a solved node-identifier path as a single GeoJSON
// LineString feature through the node positions.
func PathFeature(rm *Roadmap, path []int) *geojson.Feature {
	line := make(orb.LineString, 0, len(path))
	for _, id := range path {
		c := rm.Node(id)
		line = append(line, orb.Point{c[0], c[1]})
	}
	feature := geojson.NewFeature(line)
	feature.Properties["kind"] = "path"
	return feature
}

// ConfigPathFeature exports an RRT configuration path the same way.
func ConfigPathFeature(path []Config) *geojson.Feature {
	line := make(orb.LineString, 0, len(path))
	for _, c := range path {
		line = append(line, orb.Point{c[0], c[1]})
	}
	feature := geojson.NewFeature(line)
	feature.Properties["kind"] = "path"
	return feature
}
