package main

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestNewOccupancyGridValidation(t *testing.T) {
	_, err := NewOccupancyGrid(nil)
	require.Error(t, err)
	_, err = NewOccupancyGrid([][]bool{{true, true}, {true}})
	require.Error(t, err)

	grid, err := NewOccupancyGrid([][]bool{{true, false}, {true, true}})
	require.NoError(t, err)
	require.Equal(t, 2, grid.Width())
	require.Equal(t, 2, grid.Height())
	require.True(t, grid.Free(0.5, 0.5))
	require.False(t, grid.Free(1.5, 0.5))
}

func TestGridFreeTruncatesCoordinates(t *testing.T) {
	grid := NewFreeGrid(4, 4)
	grid.Block(2, 3)

	require.False(t, grid.Free(2.0, 3.0))
	require.False(t, grid.Free(2.99, 3.99))
	require.True(t, grid.Free(1.99, 3.99))
	require.False(t, grid.Free(4.0, 1.0), "right edge truncates out of bounds")
	require.False(t, grid.Free(-0.01, 1.0))
}

func TestLoadGridFromText(t *testing.T) {
	file := filepath.Join(t.TempDir(), "grid.txt")
	content := "..#\n.#.\n...\n"
	require.NoError(t, os.WriteFile(file, []byte(content), 0644))

	grid, err := LoadGridFromText(file)
	require.NoError(t, err)
	require.Equal(t, 3, grid.Width())
	require.Equal(t, 3, grid.Height())
	require.True(t, grid.Free(0.5, 0.5))
	require.False(t, grid.Free(2.5, 0.5))
	require.False(t, grid.Free(1.5, 1.5))
	require.True(t, grid.Free(2.5, 2.5))
}

func TestParseAndRasterizeObstacles(t *testing.T) {
	data := []byte(`{
		"type": "FeatureCollection",
		"features": [{
			"type": "Feature",
			"properties": {},
			"geometry": {
				"type": "Polygon",
				"coordinates": [[[2, 2], [6, 2], [6, 6], [2, 6], [2, 2]]]
			}
		}]
	}`)

	obstacles, err := ParseObstaclesGeoJSON(data)
	require.NoError(t, err)
	require.Len(t, obstacles, 1)

	grid := RasterizeObstacles(10, 10, obstacles)
	require.False(t, grid.Free(3.5, 3.5), "cell center inside the polygon")
	require.False(t, grid.Free(5.5, 5.5))
	require.True(t, grid.Free(0.5, 0.5))
	require.True(t, grid.Free(8.5, 8.5))
}

func TestParseObstaclesRejectsGarbage(t *testing.T) {
	_, err := ParseObstaclesGeoJSON([]byte("not geojson"))
	require.Error(t, err)
}
