package main

import (
	"encoding/json"
	"errors"
	"log"
	"math"
	"math/rand"
	"net/http"
	"sync"
)

// BuildRoadmapRequest configures the roadmap construction. Zero values get
// sensible defaults.
type BuildRoadmapRequest struct {
	Width            int             `json:"width"`
	Height           int             `json:"height"`
	GridFile         string          `json:"gridFile,omitempty"`  // text grid, '.' = free
	Obstacles        json.RawMessage `json:"obstacles,omitempty"` // GeoJSON FeatureCollection
	Space            string          `json:"space"`               // "planar" (default) or "dubins"
	Curvature        float64         `json:"curvature"`
	Resolution       float64         `json:"resolution"`
	Strategy         string          `json:"strategy"` // sampler strategy name
	NumSamples       int             `json:"numSamples"`
	ConnectionRadius float64         `json:"connectionRadius"`
	Lazy             bool            `json:"lazy"`
	Seed             int64           `json:"seed"`
	SaveToFile       bool            `json:"saveToFile"`
}

// PlanRequest is one planning query against the stored roadmap. Start and
// goal carry 2 components for planar spaces and 3 for rigid-body spaces,
// the third being a heading in degrees.
type PlanRequest struct {
	Start    []float64  `json:"start"`
	Goal     []float64  `json:"goal"`
	Planner  string     `json:"planner"` // "astar" (default) or "rrt"
	Shortcut bool       `json:"shortcut"`
	RRT      RRTOptions `json:"rrt"`
	Seed     int64      `json:"seed"`
}

// PlanResponse reports the outcome of a query. A no-path outcome is a
// successful response with Success=false, never an HTTP error.
type PlanResponse struct {
	Success        bool        `json:"success"`
	Message        string      `json:"message,omitempty"`
	Path           []int       `json:"path,omitempty"` // node ids (A* only)
	Waypoints      [][]float64 `json:"waypoints,omitempty"`
	PathLength     float64     `json:"pathLength,omitempty"`
	EdgesEvaluated int         `json:"edgesEvaluated"`
}

var (
	globalRoadmap *Roadmap
	roadmapMutex  sync.RWMutex
)

// corsMiddleware adds CORS headers to allow frontend requests
func corsMiddleware(next http.HandlerFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Access-Control-Allow-Origin", "*")
		w.Header().Set("Access-Control-Allow-Methods", "POST, GET, OPTIONS")
		w.Header().Set("Access-Control-Allow-Headers", "Content-Type")

		if r.Method == "OPTIONS" {
			w.WriteHeader(http.StatusOK)
			return
		}

		next(w, r)
	}
}

func writeJSON(w http.ResponseWriter, v interface{}) {
	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(v)
}

// toConfig converts a request vector to a configuration, degrees to radians
// on the third component.
func toConfig(v []float64) Config {
	c := make(Config, len(v))
	copy(c, v)
	if len(c) == 3 {
		c[2] = normalizeAngle(c[2] * math.Pi / 180)
	}
	return c
}

// POST /buildRoadmap - sample the space and build the roadmap
func buildRoadmapHandler(w http.ResponseWriter, r *http.Request) {
	log.Println("========================================")
	log.Println("🗺️  Build roadmap request received")

	if r.Method != http.MethodPost {
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}

	var req BuildRoadmapRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		log.Printf("❌ Invalid request body: %v\n", err)
		http.Error(w, "Invalid request body", http.StatusBadRequest)
		return
	}

	if req.Width == 0 {
		req.Width = 100
	}
	if req.Height == 0 {
		req.Height = 100
	}
	if req.NumSamples == 0 {
		req.NumSamples = 500
	}
	if req.ConnectionRadius == 0 {
		req.ConnectionRadius = 5
	}
	if req.Strategy == "" {
		req.Strategy = "halton"
	}

	var grid *OccupancyGrid
	var err error
	switch {
	case req.GridFile != "":
		grid, err = LoadGridFromText(req.GridFile)
		if err != nil {
			log.Printf("❌ %v\n", err)
			http.Error(w, err.Error(), http.StatusBadRequest)
			return
		}
	case len(req.Obstacles) > 0:
		obstacles, perr := ParseObstaclesGeoJSON(req.Obstacles)
		if perr != nil {
			log.Printf("❌ %v\n", perr)
			http.Error(w, perr.Error(), http.StatusBadRequest)
			return
		}
		grid = RasterizeObstacles(req.Width, req.Height, obstacles)
	default:
		grid = NewFreeGrid(req.Width, req.Height)
	}

	var space Space
	if req.Space == "dubins" {
		space = NewDubinsSpace(grid, req.Resolution, req.Curvature)
	} else {
		space = NewPlanarSpace(grid, req.Resolution)
	}

	sampler, err := NewSampler(req.Strategy, space.Extents(), req.NumSamples, req.Seed)
	if err != nil {
		log.Printf("❌ Unknown strategy %q\n", req.Strategy)
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	log.Printf("   Space: %s, samples: %d, radius: %.2f, lazy: %v\n",
		req.Space, req.NumSamples, req.ConnectionRadius, req.Lazy)

	rm := BuildRoadmap(space, sampler, req.ConnectionRadius, req.Lazy)

	roadmapMutex.Lock()
	globalRoadmap = rm
	roadmapMutex.Unlock()

	if req.SaveToFile {
		if err := SaveRoadmap(rm, "roadmap.json"); err != nil {
			log.Printf("⚠️  Failed to save roadmap: %v\n", err)
		}
	}

	log.Println("========================================")
	writeJSON(w, map[string]interface{}{
		"success":        true,
		"numNodes":       rm.NodeCount(),
		"numEdges":       len(rm.Edges()),
		"edgesEvaluated": rm.EdgesEvaluated(),
	})
}

// POST /plan - run a planning query
func planHandler(w http.ResponseWriter, r *http.Request) {
	log.Println("========================================")
	log.Println("📍 Plan request received")

	if r.Method != http.MethodPost {
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}

	var req PlanRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		log.Printf("❌ Invalid request body: %v\n", err)
		http.Error(w, "Invalid request body", http.StatusBadRequest)
		return
	}

	roadmapMutex.RLock()
	shared := globalRoadmap
	roadmapMutex.RUnlock()

	if shared == nil {
		http.Error(w, "Roadmap not built. Call /buildRoadmap first", http.StatusBadRequest)
		return
	}

	start, goal := toConfig(req.Start), toConfig(req.Goal)

	if req.Planner == "rrt" {
		planRRTQuery(w, shared.Space(), start, goal, req)
		return
	}

	// Each query clones the shared roadmap: endpoint injection and lazy
	// edge invalidation are per-query mutations.
	rm := shared.Clone()
	before := rm.EdgesEvaluated()

	startID, err := rm.AddNode(start)
	if err == nil {
		var goalID int
		goalID, err = rm.AddNode(goal)
		if err == nil {
			log.Printf("   ✅ Start connected as node %d, goal as node %d\n", startID, goalID)
			path, _, serr := LazyShortestPath(rm, startID, goalID)
			resp := PlanResponse{EdgesEvaluated: rm.EdgesEvaluated() - before}
			if errors.Is(serr, ErrNoPathFound) {
				log.Println("❌ No path found on roadmap")
				resp.Message = "no path found"
			} else if serr == nil {
				if req.Shortcut {
					path = ShortcutPath(rm, path)
					resp.EdgesEvaluated = rm.EdgesEvaluated() - before
				}
				length, _ := rm.PathLength(path)
				resp.Success = true
				resp.Path = path
				resp.PathLength = length
				for _, id := range path {
					resp.Waypoints = append(resp.Waypoints, rm.Node(id))
				}
				log.Printf("✅ Path found: %d waypoints, length %.2f, %d edges evaluated\n",
					len(path), length, resp.EdgesEvaluated)
			} else {
				resp.Message = serr.Error()
			}
			log.Println("========================================")
			writeJSON(w, resp)
			return
		}
	}

	log.Printf("❌ Rejected endpoints: %v\n", err)
	log.Println("========================================")
	http.Error(w, err.Error(), http.StatusBadRequest)
}

func planRRTQuery(w http.ResponseWriter, space Space, start, goal Config, req PlanRequest) {
	log.Println("🌲 Running RRT...")
	rng := rand.New(rand.NewSource(req.Seed))

	path, evaluated, err := PlanRRT(space, start, goal, req.RRT, rng)
	resp := PlanResponse{EdgesEvaluated: evaluated}
	switch {
	case errors.Is(err, ErrNoPathFound):
		log.Println("❌ RRT exhausted without reaching the goal")
		resp.Message = "no path found"
	case err != nil:
		log.Printf("❌ Rejected endpoints: %v\n", err)
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	default:
		length := 0.0
		for i := 0; i+1 < len(path); i++ {
			length += space.Distance(path[i], path[i+1])
		}
		resp.Success = true
		resp.PathLength = length
		for _, c := range path {
			resp.Waypoints = append(resp.Waypoints, c)
		}
		log.Printf("✅ RRT path found: %d waypoints, length %.2f, %d edges evaluated\n",
			len(path), length, evaluated)
	}
	log.Println("========================================")
	writeJSON(w, resp)
}

// GET /roadmapLines - roadmap edges as GeoJSON for visualization
func roadmapLinesHandler(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}

	roadmapMutex.RLock()
	rm := globalRoadmap
	roadmapMutex.RUnlock()

	if rm == nil {
		http.Error(w, "Roadmap not built. Call /buildRoadmap first", http.StatusBadRequest)
		return
	}

	fc := RoadmapFeatureCollection(rm)
	log.Printf("📊 Returning %d roadmap edges as GeoJSON\n", len(fc.Features))
	writeJSON(w, fc)
}

// GET /health - health check endpoint
func healthHandler(w http.ResponseWriter, r *http.Request) {
	roadmapMutex.RLock()
	rm := globalRoadmap
	roadmapMutex.RUnlock()

	status := "ready"
	numNodes := 0
	if rm == nil {
		status = "waiting for roadmap"
	} else {
		numNodes = rm.NodeCount()
	}

	writeJSON(w, map[string]interface{}{
		"status":     status,
		"hasRoadmap": rm != nil,
		"numNodes":   numNodes,
	})
}

func main() {
	log.Println("========================================")
	log.Println("🚀 Sampling-Based Motion Planner Server")
	log.Println("========================================")

	http.HandleFunc("/buildRoadmap", corsMiddleware(buildRoadmapHandler))
	http.HandleFunc("/plan", corsMiddleware(planHandler))
	http.HandleFunc("/roadmapLines", corsMiddleware(roadmapLinesHandler))
	http.HandleFunc("/health", corsMiddleware(healthHandler))

	log.Println("Server starting on :8080")
	log.Println("")
	log.Println("Endpoints:")
	log.Println("  POST /buildRoadmap  - Sample the space and build the roadmap")
	log.Println("  POST /plan          - Plan between a start and goal configuration")
	log.Println("  GET  /roadmapLines  - Roadmap edges as GeoJSON")
	log.Println("  GET  /health        - Check server status")
	log.Println("========================================")

	if err := http.ListenAndServe(":8080", nil); err != nil {
		log.Fatal(err)
	}
}
