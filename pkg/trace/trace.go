// Package trace runs seeded random operation traces against
// a container.Map and verifies every result against a reference model.
package trace

import (
	"errors"
	"fmt"
	"math/rand"
	"strings"
	"time"

	"github.com/graph-guard/ggmap/pkg/container"
	"github.com/graph-guard/ggmap/pkg/statistics"
	"github.com/yourbasic/bit"
)

// Order is the iteration order a map is expected to follow.
type Order int8

const (
	// OrderInsertion expects keys in the order they were first inserted.
	OrderInsertion Order = iota

	// OrderAscending expects keys in ascending order.
	OrderAscending

	// OrderUnspecified only expects every key to be visited once.
	OrderUnspecified
)

func (o Order) String() string {
	switch o {
	case OrderInsertion:
		return "insertion"
	case OrderAscending:
		return "ascending"
	case OrderUnspecified:
		return "unspecified"
	}
	return ""
}

// Options configure a trace.
type Options struct {
	Seed       int64
	Operations int

	// KeySpace limits keys to [0, KeySpace).
	KeySpace int

	// CheckOrderEvery defines the number of steps between iteration
	// order checks. The order is always checked after the last step.
	// Zero only checks after the last step.
	CheckOrderEvery int

	Order Order
}

// Report summarizes a successful trace.
type Report struct {
	Operations int
	Inserted   int // Number of insertions of absent keys
	Erased     int
	FinalLen   int
	Duration   time.Duration
	Statistics *statistics.ContainerSync
}

var ErrInvalidOptions = errors.New("invalid options")

// ErrorMismatch is returned when the map disagrees with the reference model.
type ErrorMismatch struct {
	Step    int
	Op      statistics.Op
	Key     int
	Message string
}

func (e ErrorMismatch) Error() string {
	var b strings.Builder
	b.WriteString("mismatch at step ")
	b.WriteString(fmt.Sprint(e.Step))
	b.WriteString(" (")
	b.WriteString(e.Op.String())
	if e.Op != statistics.OpVisit {
		b.WriteString(" key ")
		b.WriteString(fmt.Sprint(e.Key))
	}
	b.WriteString("): ")
	b.WriteString(e.Message)
	return b.String()
}

// model is the reference the map is checked against.
type model struct {
	keys   *bit.Set
	values []int
	order  []int
}

func (m *model) insert(key, value int) (inserted bool) {
	m.values[key] = value
	if m.keys.Contains(key) {
		return false
	}
	m.keys.Add(key)
	m.order = append(m.order, key)
	return true
}

func (m *model) erase(key int) {
	m.keys.Delete(key)
	m.values[key] = 0
	for i := range m.order {
		if m.order[i] == key {
			m.order = append(m.order[:i], m.order[i+1:]...)
			return
		}
	}
}

// Run executes a trace of o.Operations random operations on m.
// m must be empty.
func Run(m container.Map[int, int], o Options) (*Report, error) {
	if o.KeySpace < 1 {
		return nil, fmt.Errorf("%w: key space must be positive", ErrInvalidOptions)
	}
	if o.Operations < 0 {
		return nil, fmt.Errorf("%w: negative number of operations", ErrInvalidOptions)
	}
	if !m.IsEmpty() {
		return nil, fmt.Errorf("%w: map isn't empty", ErrInvalidOptions)
	}

	r := &runner{
		m:     m,
		o:     o,
		rnd:   rand.New(rand.NewSource(o.Seed)),
		stats: statistics.NewContainerSync(),
		ref: model{
			keys:   bit.New(),
			values: make([]int, o.KeySpace),
		},
	}
	start := time.Now()
	for r.step = 0; r.step < o.Operations; r.step++ {
		if err := r.next(); err != nil {
			return nil, err
		}
		if o.CheckOrderEvery > 0 && (r.step+1)%o.CheckOrderEvery == 0 {
			if err := r.checkOrder(); err != nil {
				return nil, err
			}
		}
	}
	if err := r.checkOrder(); err != nil {
		return nil, err
	}
	r.report.Operations = o.Operations
	r.report.FinalLen = m.Len()
	r.report.Duration = time.Since(start)
	r.report.Statistics = r.stats
	return &r.report, nil
}

type runner struct {
	m      container.Map[int, int]
	o      Options
	rnd    *rand.Rand
	stats  *statistics.ContainerSync
	ref    model
	step   int
	report Report
}

func (r *runner) mismatch(op statistics.Op, key int, format string, v ...any) error {
	return &ErrorMismatch{
		Step:    r.step,
		Op:      op,
		Key:     key,
		Message: fmt.Sprintf(format, v...),
	}
}

func (r *runner) next() error {
	key := r.rnd.Intn(r.o.KeySpace)
	exists := r.ref.keys.Contains(key)

	var op statistics.Op
	switch x := r.rnd.Intn(10); {
	case x < 4:
		op = statistics.OpSet
	case x < 5:
		op = statistics.OpInsertOrGet
	case x < 7:
		op = statistics.OpGet
	case x < 8:
		op = statistics.OpContains
	default:
		op = statistics.OpErase
	}

	switch op {
	case statistics.OpSet:
		value := r.rnd.Int()
		start := time.Now()
		r.m.Set(key, value)
		r.stats.Update(op, time.Since(start), false)
		if r.ref.insert(key, value) {
			r.report.Inserted++
		}

	case statistics.OpInsertOrGet:
		start := time.Now()
		p := r.m.InsertOrGet(key)
		r.stats.Update(op, time.Since(start), false)
		if p == nil {
			return r.mismatch(op, key, "nil value pointer")
		}
		if exists && *p != r.ref.values[key] {
			return r.mismatch(op, key,
				"expected value %d, got %d", r.ref.values[key], *p)
		}
		if !exists && *p != 0 {
			return r.mismatch(op, key, "expected zero value, got %d", *p)
		}
		value := r.rnd.Int()
		*p = value
		if r.ref.insert(key, value) {
			r.report.Inserted++
		}

	case statistics.OpGet:
		start := time.Now()
		p, err := r.m.Get(key)
		r.stats.Update(op, time.Since(start), err != nil)
		if exists {
			if err != nil {
				return r.mismatch(op, key, "unexpected error: %v", err)
			}
			if *p != r.ref.values[key] {
				return r.mismatch(op, key,
					"expected value %d, got %d", r.ref.values[key], *p)
			}
		} else if !errors.Is(err, container.ErrKeyNotFound) {
			return r.mismatch(op, key, "expected key not found, got: %v", err)
		} else if r.ref.keys.Size() == 0 &&
			!errors.Is(err, container.ErrEmptyContainer) {
			return r.mismatch(op, key, "expected empty container, got: %v", err)
		}

	case statistics.OpContains:
		start := time.Now()
		c := r.m.Contains(key)
		r.stats.Update(op, time.Since(start), false)
		if c != exists {
			return r.mismatch(op, key, "expected %t, got %t", exists, c)
		}

	case statistics.OpErase:
		start := time.Now()
		err := r.m.Erase(key)
		r.stats.Update(op, time.Since(start), err != nil)
		if exists {
			if err != nil {
				return r.mismatch(op, key, "unexpected error: %v", err)
			}
			r.ref.erase(key)
			r.report.Erased++
		} else if !errors.Is(err, container.ErrKeyNotFound) {
			return r.mismatch(op, key, "expected key not found, got: %v", err)
		}
		if r.m.Contains(key) {
			return r.mismatch(op, key, "key still present after erase")
		}
	}

	if l, e := r.m.Len(), r.ref.keys.Size(); l != e {
		return r.mismatch(op, key, "expected length %d, got %d", e, l)
	}
	if r.m.IsEmpty() != (r.ref.keys.Size() == 0) {
		return r.mismatch(op, key, "IsEmpty disagrees with length")
	}
	return nil
}

// checkOrder visits all entries and compares them with the model.
func (r *runner) checkOrder() error {
	var keys []int
	var err error
	start := time.Now()
	r.m.Visit(func(k, v int) bool {
		keys = append(keys, k)
		if k < 0 || k >= r.o.KeySpace || !r.ref.keys.Contains(k) {
			err = r.mismatch(statistics.OpVisit, k, "unexpected key %d", k)
			return true
		}
		if v != r.ref.values[k] {
			err = r.mismatch(statistics.OpVisit, k,
				"expected value %d for key %d, got %d", r.ref.values[k], k, v)
			return true
		}
		return false
	})
	r.stats.Update(statistics.OpVisit, time.Since(start), err != nil)
	if err != nil {
		return err
	}

	if len(keys) != r.ref.keys.Size() {
		return r.mismatch(statistics.OpVisit, 0,
			"visited %d keys, expected %d", len(keys), r.ref.keys.Size())
	}

	switch r.o.Order {
	case OrderInsertion:
		for i := range keys {
			if keys[i] != r.ref.order[i] {
				return r.mismatch(statistics.OpVisit, keys[i],
					"expected key %d at position %d, got %d",
					r.ref.order[i], i, keys[i])
			}
		}
	case OrderAscending:
		i := 0
		r.ref.keys.Visit(func(k int) bool {
			if keys[i] != k {
				err = r.mismatch(statistics.OpVisit, keys[i],
					"expected key %d at position %d, got %d", k, i, keys[i])
				return true
			}
			i++
			return false
		})
	case OrderUnspecified:
		seen := bit.New()
		for _, k := range keys {
			if seen.Contains(k) {
				return r.mismatch(statistics.OpVisit, k, "key %d visited twice", k)
			}
			seen.Add(k)
		}
	}
	return err
}
