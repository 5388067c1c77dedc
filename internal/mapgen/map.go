// Package mapgen generates random planar map-coloring CSPs of the kind
// described in Russell & Norvig's exercise 6.10: n regions scattered in the
// unit square, linked into a planar graph, with extra non-crossing borders
// planted around a caller-chosen number of regions to grow the cutset. It is
// a Go port of the geometry and graph-growing algorithm
// in Map.py, dropping that file's matplotlib plotting (out of scope for a
// library with no display surface) and its CSP-building convenience method
// (superseded by csp.Variable/csp.CSP directly, see ToCSP).
package mapgen

import (
	"fmt"
	"math"
	"math/rand"
	"sort"

	"github.com/kevinmaggi/gocutset/pkg/csp"
)

// colorNames mirrors Map.py's fixed four-color palette; numColor selects a
// prefix of it.
var colorNames = []string{"red", "blue", "green", "yellow"}

// Point is a location in the unit square.
type Point struct {
	X, Y float64
}

func (p Point) distance(q Point) float64 {
	dx := p.X - q.X
	dy := p.Y - q.Y
	return math.Sqrt(dx*dx + dy*dy)
}

func (p Point) name() string {
	return fmt.Sprintf("region %.3f-%.3f", p.X, p.Y)
}

// Border is an undirected link between two regions.
type Border struct {
	A, B Point
}

// Map is a set of regions and the borders between them, over a fixed
// palette of colors.
type Map struct {
	Regions []Point
	Borders []Border
	Colors  []string
}

// ToCSP builds the map-coloring CSP for m: one Variable per region, ranging
// over m.Colors, with a Different constraint across every Border.
func (m *Map) ToCSP() (*csp.CSP, error) {
	c := csp.New()
	byName := make(map[string]*csp.Variable, len(m.Regions))
	colorValues := make([]any, len(m.Colors))
	for i, col := range m.Colors {
		colorValues[i] = col
	}
	for _, p := range m.Regions {
		v := csp.NewVariable(p.name(), colorValues...)
		c.AddVariable(v)
		byName[p.name()] = v
	}
	for _, b := range m.Borders {
		v1, ok := byName[b.A.name()]
		if !ok {
			return nil, fmt.Errorf("mapgen: border references unknown region %s", b.A.name())
		}
		v2, ok := byName[b.B.name()]
		if !ok {
			return nil, fmt.Errorf("mapgen: border references unknown region %s", b.B.name())
		}
		if err := c.AddBinaryConstraint(v1, csp.Different, v2, false); err != nil {
			return nil, err
		}
	}
	return c, nil
}

const intersectTolerance = 0.00005

// onSegment reports whether p lies strictly between a and b on the segment
// AB, handling the vertical/horizontal degenerate cases the general
// parametric form divides by zero on.
func onSegment(a, b, p Point) bool {
	if math.Abs(b.X-a.X) < intersectTolerance {
		if math.Abs(p.X-a.X) < intersectTolerance {
			lo, hi := math.Min(a.Y, b.Y), math.Max(a.Y, b.Y)
			return lo < p.Y && p.Y < hi
		}
		return false
	}
	if math.Abs(b.Y-a.Y) < intersectTolerance {
		if math.Abs(p.Y-a.Y) < intersectTolerance {
			lo, hi := math.Min(a.X, b.X), math.Max(a.X, b.X)
			return lo < p.X && p.X < hi
		}
		return false
	}
	t1 := (p.X - a.X) / (b.X - a.X)
	t2 := (p.Y - a.Y) / (b.Y - a.Y)
	return math.Abs(t1-t2) < intersectTolerance && t1 > 0 && t1 < 1
}

// checkIntersect reports whether segment AB crosses segment CD, using the
// same parametric-line-intersection test as Map.py's checkIntersect.
func checkIntersect(a, b, c, d Point) bool {
	det := (a.X-b.X)*(d.Y-c.Y) - (d.X-c.X)*(a.Y-b.Y)
	if math.Abs(det) > intersectTolerance {
		dt := (d.X-b.X)*(d.Y-c.Y) - (d.X-c.X)*(d.Y-b.Y)
		ds := (a.X-b.X)*(d.Y-b.Y) - (d.X-b.X)*(a.Y-b.Y)
		t := dt / det
		s := ds / det
		return t > 0 && t < 1 && s > 0 && s < 1
	}
	return onSegment(a, b, c) || onSegment(a, b, d) || onSegment(c, d, a) || onSegment(c, d, b)
}

// linkPossible reports whether a new link A-B can be added to links without
// duplicating an existing link or crossing one.
func linkPossible(links []Border, a, b Point) bool {
	for _, link := range links {
		if (link.A == a && link.B == b) || (link.A == b && link.B == a) {
			return false
		}
		if checkIntersect(link.A, link.B, a, b) {
			return false
		}
	}
	return true
}

// Options configures GenerateMap.
type Options struct {
	// NumColor selects a prefix of {red, blue, green, yellow}. Must be
	// between 1 and 4.
	NumColor int

	// MinimalCutsetSize is how many regions, reached one after another
	// along spanning-tree edges, get linked to every other region they can
	// reach without crossing a border (see plantCutset) - the same
	// deliberately-planted-difficulty knob as Map.py's
	// generateMap(minimalCutsetSize=). It bounds the number of such
	// regions, not the number of extra borders.
	MinimalCutsetSize int
}

// GenerateMap builds a random connected planar map of n regions: n points
// are scattered in the unit square, linked pairwise by nearest-neighbor
// non-crossing candidate links, reduced to a spanning tree by depth-first
// traversal, then grown by the extra non-crossing borders plantCutset adds
// around up to MinimalCutsetSize regions.
func GenerateMap(rng *rand.Rand, n int, opts Options) (*Map, error) {
	if n <= 0 {
		return nil, fmt.Errorf("mapgen: n must be positive, got %d", n)
	}
	if opts.NumColor <= 0 || opts.NumColor > len(colorNames) {
		return nil, fmt.Errorf("mapgen: numColor must be between 1 and %d, got %d", len(colorNames), opts.NumColor)
	}

	points := make([]Point, n)
	for i := range points {
		points[i] = Point{X: rng.Float64(), Y: rng.Float64()}
	}

	links := buildCandidateLinks(points)
	tree := spanningTreeEdges(points, links)
	extra := plantCutset(points, tree, opts.MinimalCutsetSize)

	borders := make([]Border, 0, len(tree)+len(extra))
	borders = append(borders, tree...)
	borders = append(borders, extra...)

	return &Map{
		Regions: points,
		Borders: borders,
		Colors:  append([]string(nil), colorNames[:opts.NumColor]...),
	}, nil
}

// buildCandidateLinks connects every point to its nearest not-yet-crossed
// neighbour, one link per point, exactly like generateMap's inner loop:
// pop a point, try candidates in distance order, keep the first one the
// link set allows.
func buildCandidateLinks(points []Point) []Border {
	remaining := append([]Point(nil), points...)
	var links []Border

	for len(remaining) > 0 {
		point := remaining[len(remaining)-1]
		remaining = remaining[:len(remaining)-1]

		candidates := append([]Point(nil), remaining...)
		sort.Slice(candidates, func(i, j int) bool {
			return candidates[i].distance(point) < candidates[j].distance(point)
		})
		for _, p := range candidates {
			if linkPossible(links, point, p) {
				links = append(links, Border{A: point, B: p})
				break
			}
		}
	}
	return links
}

// spanningTreeEdges runs a depth-first traversal over the candidate link
// graph starting from an arbitrary point, keeping only the edges the
// traversal actually crosses - which is exactly a spanning tree when the
// candidate graph is connected.
func spanningTreeEdges(points []Point, links []Border) []Border {
	if len(points) == 0 {
		return nil
	}
	visited := make(map[Point]bool, len(points))
	var edges []Border

	var dfs func(root Point)
	dfs = func(root Point) {
		visited[root] = true
		for _, link := range links {
			if link.A == root && !visited[link.B] {
				edges = append(edges, link)
				dfs(link.B)
			} else if link.B == root && !visited[link.A] {
				edges = append(edges, link)
				dfs(link.A)
			}
		}
	}
	dfs(points[0])
	return edges
}

// plantCutset walks up to size steps along spanning-tree edges starting
// from points[0], each step moving to a region not yet on the walk and
// stopping early when there is none. Every region a step reaches is linked
// by a new border to each region off the walk that it can reach without
// duplicating or crossing an existing border; those new borders are
// returned - reproducing generateMap's deliberate cutset construction.
func plantCutset(points []Point, tree []Border, size int) []Border {
	if size <= 0 || len(points) == 0 {
		return nil
	}

	edges := append([]Border(nil), tree...)
	var extra []Border
	var chain []Point
	chain = append(chain, points[0])

	for i := 0; i < size; i++ {
		last := chain[len(chain)-1]
		var next Point
		found := false
		for _, e := range tree {
			if e.A == last && !containsPoint(chain, e.B) {
				next = e.B
				found = true
				break
			}
			if e.B == last && !containsPoint(chain, e.A) {
				next = e.A
				found = true
				break
			}
		}
		if !found {
			break
		}
		chain = append(chain, next)

		for _, reg := range points {
			if containsPoint(chain, reg) {
				continue
			}
			if linkPossible(edges, next, reg) {
				b := Border{A: next, B: reg}
				edges = append(edges, b)
				extra = append(extra, b)
			}
		}
	}
	return extra
}

func containsPoint(pts []Point, p Point) bool {
	for _, q := range pts {
		if q == p {
			return true
		}
	}
	return false
}
