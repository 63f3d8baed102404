package main

import (
	"errors"
	"fmt"
	"log"
	"os"
	"strings"

	"github.com/paulmach/orb"
	"github.com/paulmach/orb/geojson"
	"github.com/paulmach/orb/planar"
)

// OccupancyGrid is a boolean map of the workspace: true = free/permissible,
// false = blocked. One cell is one world unit; planning coordinates map to
// cell indices by truncation.
type OccupancyGrid struct {
	cells  [][]bool // cells[y][x]
	width  int
	height int
}

// NewOccupancyGrid wraps a rectangular boolean array. The input is deep-copied
// so later mutation by the caller cannot corrupt the grid.
func NewOccupancyGrid(cells [][]bool) (*OccupancyGrid, error) {
	if len(cells) == 0 || len(cells[0]) == 0 {
		return nil, errors.New("occupancy grid is empty")
	}
	w := len(cells[0])
	for _, row := range cells {
		if len(row) != w {
			return nil, errors.New("occupancy grid is not rectangular")
		}
	}
	copied := make([][]bool, len(cells))
	for y := range cells {
		copied[y] = make([]bool, w)
		copy(copied[y], cells[y])
	}
	return &OccupancyGrid{cells: copied, width: w, height: len(cells)}, nil
}

// NewFreeGrid builds a fully permissible grid of the given size.
func NewFreeGrid(width, height int) *OccupancyGrid {
	cells := make([][]bool, height)
	for y := range cells {
		cells[y] = make([]bool, width)
		for x := range cells[y] {
			cells[y][x] = true
		}
	}
	g, _ := NewOccupancyGrid(cells)
	return g
}

// Width returns the grid width in cells.
func (g *OccupancyGrid) Width() int { return g.width }

// Height returns the grid height in cells.
func (g *OccupancyGrid) Height() int { return g.height }

// Free reports whether the world coordinate (x, y) lands on a permissible
// cell. Out-of-bounds coordinates are never free.
func (g *OccupancyGrid) Free(x, y float64) bool {
	cx, cy := int(x), int(y)
	if x < 0 || y < 0 || cx >= g.width || cy >= g.height {
		return false
	}
	return g.cells[cy][cx]
}

// Block marks the cell containing (x, y) as impermissible.
func (g *OccupancyGrid) Block(x, y int) {
	if x >= 0 && y >= 0 && x < g.width && y < g.height {
		g.cells[y][x] = false
	}
}

// LoadGridFromText reads an occupancy grid from a text file where '.' marks a
// free cell and any other non-space character marks a blocked cell. Row 0 of
// the file becomes y = 0.
func LoadGridFromText(filename string) (*OccupancyGrid, error) {
	data, err := os.ReadFile(filename)
	if err != nil {
		return nil, fmt.Errorf("failed to read grid file: %w", err)
	}
	var cells [][]bool
	for _, line := range strings.Split(strings.TrimRight(string(data), "\n"), "\n") {
		line = strings.TrimRight(line, "\r")
		if line == "" {
			continue
		}
		row := make([]bool, len(line))
		for x, ch := range line {
			row[x] = ch == '.'
		}
		cells = append(cells, row)
	}
	grid, err := NewOccupancyGrid(cells)
	if err != nil {
		return nil, err
	}
	log.Printf("📂 Loaded %dx%d occupancy grid from %s\n", grid.width, grid.height, filename)
	return grid, nil
}

// ParseObstaclesGeoJSON extracts obstacle polygons from a GeoJSON
// FeatureCollection. Polygon and MultiPolygon geometries are accepted, other
// geometry types are skipped.
func ParseObstaclesGeoJSON(data []byte) ([]orb.Polygon, error) {
	fc, err := geojson.UnmarshalFeatureCollection(data)
	if err != nil {
		return nil, fmt.Errorf("failed to parse obstacle GeoJSON: %w", err)
	}

	var polygons []orb.Polygon
	for _, feature := range fc.Features {
		switch geom := feature.Geometry.(type) {
		case orb.Polygon:
			polygons = append(polygons, geom)
		case orb.MultiPolygon:
			polygons = append(polygons, geom...)
		}
	}

	log.Printf("   ✅ Parsed %d obstacle polygons from %d features\n", len(polygons), len(fc.Features))
	return polygons, nil
}

// RasterizeObstacles burns obstacle polygons into a fresh width×height grid.
// A cell is blocked when its center lies inside any polygon.
func RasterizeObstacles(width, height int, obstacles []orb.Polygon) *OccupancyGrid {
	grid := NewFreeGrid(width, height)

	blocked := 0
	for y := 0; y < height; y++ {
		for x := 0; x < width; x++ {
			center := orb.Point{float64(x) + 0.5, float64(y) + 0.5}
			for _, polygon := range obstacles {
				if planar.PolygonContains(polygon, center) {
					grid.cells[y][x] = false
					blocked++
					break
				}
			}
		}
	}

	if len(obstacles) > 0 {
		log.Printf("   ✅ Rasterized %d polygons: %d of %d cells blocked\n",
			len(obstacles), blocked, width*height)
	}
	return grid
}
