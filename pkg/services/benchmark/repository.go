package benchmark

import (
	"errors"
	"fmt"

	"github.com/de-tools/fin-atlas/pkg/models/domain"
)

const DefaultCategoryCode = "T"

var (
	ErrDefaultMissing  = errors.New("default category has no benchmark data")
	ErrUnknownCategory = errors.New("unknown category")
)

// Resolution is the benchmark row chosen for a requested category.
type Resolution struct {
	RequestedID int
	Benchmark   domain.IndustryBenchmarkData
	// Fallback is set when the row belongs to an ancestor or to the default category.
	Fallback bool
	// FromDefault is set when no category on the ancestor chain had data.
	FromDefault bool
}

// Repository is read-only after construction and safe for concurrent use.
type Repository interface {
	// GetBenchmark returns the row stored for exactly this category.
	GetBenchmark(categoryID int) (*domain.IndustryBenchmarkData, bool)
	// Resolve walks up the category tree and finally falls back to the default category.
	Resolve(categoryID int) Resolution
	Category(categoryID int) (domain.Category, bool)
	Children(categoryID int) []domain.Category
	ByLevel(level domain.CategoryLevel, parentID *int) []domain.Category
	Ancestors(categoryID int) []domain.Category
	Categories() []domain.Category
	Default() domain.Category
}

// repository stores the category tree as an arena: nodes are addressed by
// their slice index, parent and child links are indexes into the same slice.
type repository struct {
	nodes      []domain.Category
	index      map[int]int // category id -> node index
	parent     []int       // node index -> parent node index, -1 for roots
	children   [][]int
	benchmarks map[int]domain.IndustryBenchmarkData
	defaultIdx int
}

// New builds a repository. A missing default benchmark is a configuration error.
func New(ds domain.BenchmarkDataset) (Repository, error) {
	defaultCode := ds.DefaultCode
	if defaultCode == "" {
		defaultCode = DefaultCategoryCode
	}

	r := &repository{
		nodes:      make([]domain.Category, 0, len(ds.Categories)),
		index:      make(map[int]int, len(ds.Categories)),
		benchmarks: make(map[int]domain.IndustryBenchmarkData, len(ds.Benchmarks)),
		defaultIdx: -1,
	}

	for _, c := range ds.Categories {
		if _, dup := r.index[c.ID]; dup {
			return nil, fmt.Errorf("duplicate category id %d", c.ID)
		}
		if !c.Level.Valid() {
			return nil, fmt.Errorf("category %d: invalid level %q", c.ID, c.Level)
		}
		r.index[c.ID] = len(r.nodes)
		r.nodes = append(r.nodes, c.Clone())
		if c.Code == defaultCode {
			r.defaultIdx = len(r.nodes) - 1
		}
	}

	r.parent = make([]int, len(r.nodes))
	r.children = make([][]int, len(r.nodes))
	for i, c := range r.nodes {
		r.parent[i] = -1
		if c.ParentID == nil {
			continue
		}
		p, ok := r.index[*c.ParentID]
		if !ok {
			return nil, fmt.Errorf("category %d: parent %d does not exist", c.ID, *c.ParentID)
		}
		r.parent[i] = p
		r.children[p] = append(r.children[p], i)
	}
	for i := range r.nodes {
		if r.hasCycle(i) {
			return nil, fmt.Errorf("category %d: parent chain forms a cycle", r.nodes[i].ID)
		}
	}

	for _, b := range ds.Benchmarks {
		i, ok := r.index[b.Category.ID]
		if !ok {
			return nil, fmt.Errorf("benchmark for %w %d", ErrUnknownCategory, b.Category.ID)
		}
		b = b.Clone()
		b.Category = r.nodes[i].Clone()
		r.benchmarks[b.Category.ID] = b
	}

	if r.defaultIdx < 0 {
		return nil, fmt.Errorf("%w: category %q not found", ErrDefaultMissing, defaultCode)
	}
	if _, ok := r.benchmarks[r.nodes[r.defaultIdx].ID]; !ok {
		return nil, fmt.Errorf("%w: category %q", ErrDefaultMissing, defaultCode)
	}

	return r, nil
}

func (r *repository) hasCycle(start int) bool {
	steps := 0
	for i := r.parent[start]; i >= 0; i = r.parent[i] {
		if i == start || steps > len(r.nodes) {
			return true
		}
		steps++
	}
	return false
}

func (r *repository) GetBenchmark(categoryID int) (*domain.IndustryBenchmarkData, bool) {
	b, ok := r.benchmarks[categoryID]
	if !ok {
		return nil, false
	}
	c := b.Clone()
	return &c, true
}

func (r *repository) Resolve(categoryID int) Resolution {
	if i, ok := r.index[categoryID]; ok {
		for ; i >= 0; i = r.parent[i] {
			if b, ok := r.benchmarks[r.nodes[i].ID]; ok {
				return Resolution{
					RequestedID: categoryID,
					Benchmark:   b.Clone(),
					Fallback:    r.nodes[i].ID != categoryID,
				}
			}
		}
	}

	return Resolution{
		RequestedID: categoryID,
		Benchmark:   r.benchmarks[r.nodes[r.defaultIdx].ID].Clone(),
		Fallback:    true,
		FromDefault: true,
	}
}

func (r *repository) Category(categoryID int) (domain.Category, bool) {
	i, ok := r.index[categoryID]
	if !ok {
		return domain.Category{}, false
	}
	return r.nodes[i].Clone(), true
}

func (r *repository) Children(categoryID int) []domain.Category {
	i, ok := r.index[categoryID]
	if !ok {
		return nil
	}
	out := make([]domain.Category, 0, len(r.children[i]))
	for _, c := range r.children[i] {
		out = append(out, r.nodes[c].Clone())
	}
	return out
}

func (r *repository) ByLevel(level domain.CategoryLevel, parentID *int) []domain.Category {
	var candidates []domain.Category
	if parentID != nil {
		candidates = r.Children(*parentID)
	} else {
		candidates = r.nodes
	}

	var out []domain.Category
	for _, c := range candidates {
		if c.Level == level {
			out = append(out, c.Clone())
		}
	}
	return out
}

// Ancestors lists the parents of a category, nearest first.
func (r *repository) Ancestors(categoryID int) []domain.Category {
	i, ok := r.index[categoryID]
	if !ok {
		return nil
	}
	var out []domain.Category
	for p := r.parent[i]; p >= 0; p = r.parent[p] {
		out = append(out, r.nodes[p].Clone())
	}
	return out
}

func (r *repository) Categories() []domain.Category {
	out := make([]domain.Category, 0, len(r.nodes))
	for _, c := range r.nodes {
		out = append(out, c.Clone())
	}
	return out
}

func (r *repository) Default() domain.Category {
	return r.nodes[r.defaultIdx].Clone()
}
