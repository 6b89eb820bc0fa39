package treemap_test

import (
	"math/rand"
	"sort"
	"strings"
	"testing"

	"github.com/graph-guard/ggmap/pkg/container"
	"github.com/graph-guard/ggmap/pkg/container/treemap"
	"github.com/stretchr/testify/require"
)

type P = container.Pair[int, string]

func TestScenario(t *testing.T) {
	m := treemap.New[int, string]()
	for _, p := range []P{{Key: 5, Value: "e"}, {Key: 3, Value: "c"}, {Key: 8, Value: "h"}, {Key: 1, Value: "a"}, {Key: 4, Value: "d"}} {
		m.Set(p.Key, p.Value)
	}
	ExpectOrder(t, m, P{Key: 1, Value: "a"}, P{Key: 3, Value: "c"}, P{Key: 4, Value: "d"}, P{Key: 5, Value: "e"}, P{Key: 8, Value: "h"})

	// 3 has two children
	require.NoError(t, m.Erase(3))
	ExpectOrder(t, m, P{Key: 1, Value: "a"}, P{Key: 4, Value: "d"}, P{Key: 5, Value: "e"}, P{Key: 8, Value: "h"})
}

func TestNewPairs(t *testing.T) {
	m := treemap.New(P{Key: 2, Value: "b"}, P{Key: 1, Value: "a"}, P{Key: 2, Value: "c"})
	ExpectOrder(t, m, P{Key: 1, Value: "a"}, P{Key: 2, Value: "c"})
}

func TestEraseShapes(t *testing.T) {
	//        50
	//      /    \
	//    30      70
	//   /  \    /  \
	//  20  40  60  80
	//        \       \
	//        45      90
	//                  \
	//                  95
	insert := []int{50, 30, 70, 20, 40, 60, 80, 45, 90, 95}
	for _, td := range []struct {
		name  string
		erase []int
	}{
		{"leaf", []int{20}},
		{"leaf_right", []int{45}},
		{"only_right_child", []int{40}},
		{"only_right_chain", []int{80}},
		{"two_children_direct_successor", []int{30}},
		{"two_children_successor_has_right", []int{70}},
		{"two_children_deep_successor", []int{50}},
		{"root_repeatedly", []int{50, 60, 70, 80}},
		{"all_ascending", []int{20, 30, 40, 45, 50, 60, 70, 80, 90, 95}},
		{"all_in_insert_order", []int{50, 30, 70, 20, 40, 60, 80, 45, 90, 95}},
		{"all_descending", []int{95, 90, 80, 70, 60, 50, 45, 40, 30, 20}},
	} {
		t.Run(td.name, func(t *testing.T) {
			m := treemap.New[int, string]()
			for _, k := range insert {
				m.Set(k, "")
			}
			ref := map[int]bool{}
			for _, k := range insert {
				ref[k] = true
			}
			for _, k := range td.erase {
				require.NoError(t, m.Erase(k))
				delete(ref, k)
				require.True(t, m.Find(k).IsEnd())
				ExpectKeys(t, m, sortedKeys(ref)...)
			}
			for k := range ref {
				require.True(t, m.Contains(k))
			}
		})
	}
}

func TestFind(t *testing.T) {
	m := treemap.New[int, string]()
	require.Equal(t, m.End(), m.Find(1))

	m.Set(2, "b")
	m.Set(1, "a")

	it := m.Find(1)
	k, err := it.Key()
	require.NoError(t, err)
	require.Equal(t, 1, k)
	v, err := it.Value()
	require.NoError(t, err)
	*v = "A"

	g, err := m.Get(1)
	require.NoError(t, err)
	require.Equal(t, "A", *g)

	require.Equal(t, m.End(), m.Find(3))
}

func TestEraseAt(t *testing.T) {
	m := treemap.New(P{Key: 1, Value: "a"}, P{Key: 2, Value: "b"}, P{Key: 3, Value: "c"})

	require.NoError(t, m.EraseAt(m.Find(2)))
	ExpectOrder(t, m, P{Key: 1, Value: "a"}, P{Key: 3, Value: "c"})

	require.NoError(t, m.EraseAt(m.Begin()))
	ExpectOrder(t, m, P{Key: 3, Value: "c"})

	require.ErrorIs(t, m.EraseAt(m.End()), container.ErrInvalidPosition)

	other := treemap.New(P{Key: 3, Value: "c"})
	require.ErrorIs(t, m.EraseAt(other.Begin()), container.ErrInvalidPosition)
	require.Equal(t, 1, other.Len())

	require.NoError(t, m.EraseAt(m.Begin()))
	require.True(t, m.IsEmpty())
	require.Equal(t, m.End(), m.Begin())
	require.ErrorIs(t, m.EraseAt(m.Begin()), container.ErrInvalidPosition)

	// Usable after becoming empty
	m.Set(7, "g")
	ExpectOrder(t, m, P{Key: 7, Value: "g"})
}

func TestEraseAtErased(t *testing.T) {
	m := treemap.New(P{Key: 1, Value: "a"}, P{Key: 2, Value: "b"}, P{Key: 3, Value: "c"})
	it := m.Find(2)
	require.NoError(t, m.EraseAt(it))

	var e *container.ErrorInvalidPosition
	require.ErrorAs(t, m.EraseAt(it), &e)
	require.Equal(t, container.ReasonErased, e.Reason)
	ExpectOrder(t, m, P{Key: 1, Value: "a"}, P{Key: 3, Value: "c"})

	// Following insertions must not share a slot.
	m.Set(8, "h")
	m.Set(9, "i")
	ExpectOrder(t, m, P{Key: 1, Value: "a"}, P{Key: 3, Value: "c"}, P{Key: 8, Value: "h"}, P{Key: 9, Value: "i"})

	stale := m.Find(9)
	m.Reset()
	require.ErrorAs(t, m.EraseAt(stale), &e)
	require.Equal(t, container.ReasonErased, e.Reason)
	require.True(t, m.IsEmpty())
}

func TestIterate(t *testing.T) {
	m := treemap.New(P{Key: 5, Value: "e"}, P{Key: 3, Value: "c"}, P{Key: 8, Value: "h"}, P{Key: 1, Value: "a"}, P{Key: 4, Value: "d"})

	var keys []int
	for it := m.Begin(); !it.IsEnd(); {
		k, err := it.Key()
		require.NoError(t, err)
		keys = append(keys, k)
		it, err = it.Next()
		require.NoError(t, err)
	}
	require.Equal(t, []int{1, 3, 4, 5, 8}, keys)

	keys = keys[:0]
	for it := m.End(); it != m.Begin(); {
		var err error
		it, err = it.Prev()
		require.NoError(t, err)
		k, err := it.Key()
		require.NoError(t, err)
		keys = append(keys, k)
	}
	require.Equal(t, []int{8, 5, 4, 3, 1}, keys)
}

func TestIteratorBounds(t *testing.T) {
	for _, td := range []struct {
		name  string
		pairs []P
	}{
		{"empty", nil},
		{"single", []P{{Key: 1, Value: "a"}}},
		{"non_empty", []P{{Key: 2, Value: "b"}, {Key: 1, Value: "a"}, {Key: 3, Value: "c"}}},
	} {
		t.Run(td.name, func(t *testing.T) {
			m := treemap.New(td.pairs...)

			it, err := m.End().Next()
			require.ErrorIs(t, err, container.ErrInvalidPosition)
			require.Equal(t, m.End(), it)

			_, err = m.Begin().Prev()
			require.ErrorIs(t, err, container.ErrInvalidPosition)

			_, err = m.End().Key()
			require.ErrorIs(t, err, container.ErrInvalidPosition)

			v, err := m.End().Value()
			require.ErrorIs(t, err, container.ErrInvalidPosition)
			require.Nil(t, v)
		})
	}
}

func TestEqual(t *testing.T) {
	a := treemap.New(P{Key: 1, Value: "a"}, P{Key: 2, Value: "b"})
	b := treemap.New(P{Key: 2, Value: "b"}, P{Key: 1, Value: "a"})
	require.True(t, a.Equal(a))
	require.True(t, a.Equal(b))
	require.True(t, b.Equal(a))

	b.Set(2, "c")
	require.False(t, a.Equal(b))

	b.Set(2, "b")
	b.Set(3, "c")
	require.False(t, a.Equal(b))

	require.NoError(t, b.Erase(3))
	require.True(t, a.Equal(b))

	require.True(t, treemap.New[int, string]().Equal(treemap.New[int, string]()))
}

func TestEqualUnexportedFields(t *testing.T) {
	type inner struct{ tags []string }
	type value struct {
		n int
		i *inner
	}
	a := treemap.New[int, value]()
	b := treemap.New[int, value]()
	a.Set(1, value{n: 1, i: &inner{tags: []string{"x"}}})
	b.Set(1, value{n: 1, i: &inner{tags: []string{"x"}}})
	require.True(t, a.Equal(b))

	b.Set(1, value{n: 1, i: &inner{tags: []string{"y"}}})
	require.False(t, a.Equal(b))

	b.Set(1, value{n: 2, i: &inner{tags: []string{"x"}}})
	require.False(t, a.Equal(b))
}

func TestNewFunc(t *testing.T) {
	m := treemap.NewFunc[string, int](func(a, b string) int {
		return strings.Compare(strings.ToLower(a), strings.ToLower(b))
	})
	m.Set("b", 1)
	m.Set("A", 2)
	m.Set("B", 3) // same key as "b"
	m.Set("c", 4)

	ExpectKeys(t, m, "A", "b", "c")
	v, err := m.Get("b")
	require.NoError(t, err)
	require.Equal(t, 3, *v)
}

func TestReverseOrder(t *testing.T) {
	m := treemap.NewFunc[int, string](func(a, b int) int { return b - a })
	for _, k := range []int{3, 1, 2, 5, 4} {
		m.Set(k, "")
	}
	ExpectKeys(t, m, 5, 4, 3, 2, 1)
}

func TestClone(t *testing.T) {
	m := treemap.New(P{Key: 2, Value: "b"}, P{Key: 1, Value: "a"}, P{Key: 3, Value: "c"})

	c := m.Clone()
	require.True(t, m.Equal(c))
	require.Equal(t, m.Height(), c.Height())

	c.Set(1, "A")
	c.Set(4, "d")
	require.NoError(t, c.Erase(2))

	ExpectOrder(t, m, P{Key: 1, Value: "a"}, P{Key: 2, Value: "b"}, P{Key: 3, Value: "c"})
	ExpectOrder(t, c, P{Key: 1, Value: "A"}, P{Key: 3, Value: "c"}, P{Key: 4, Value: "d"})
}

func TestMove(t *testing.T) {
	m := treemap.New(P{Key: 2, Value: "b"}, P{Key: 1, Value: "a"})

	moved := m.Move()
	ExpectOrder(t, moved, P{Key: 1, Value: "a"}, P{Key: 2, Value: "b"})
	require.True(t, m.IsEmpty())
	require.Equal(t, m.End(), m.Begin())

	m.Set(3, "c")
	ExpectOrder(t, m, P{Key: 3, Value: "c"})
	ExpectOrder(t, moved, P{Key: 1, Value: "a"}, P{Key: 2, Value: "b"})
}

func TestReset(t *testing.T) {
	m := treemap.New(P{Key: 2, Value: "b"}, P{Key: 1, Value: "a"})
	m.Reset()
	require.True(t, m.IsEmpty())
	require.Zero(t, m.Height())
	m.Set(1, "a")
	ExpectOrder(t, m, P{Key: 1, Value: "a"})
}

func TestHeight(t *testing.T) {
	m := treemap.New[int, string]()
	require.Zero(t, m.Height())

	for _, k := range []int{50, 30, 70, 20, 40, 60, 80} {
		m.Set(k, "")
	}
	require.Equal(t, 3, m.Height())

	m.Set(90, "")
	m.Set(95, "")
	require.Equal(t, 5, m.Height())

	// Sorted insertion degenerates into a list
	s := treemap.New[int, string]()
	for i := 0; i < 100; i++ {
		s.Set(i, "")
	}
	require.Equal(t, 100, s.Height())
}

func TestRandomOrder(t *testing.T) {
	r := rand.New(rand.NewSource(7))
	m := treemap.New[int, int]()
	ref := map[int]int{}
	for step := 0; step < 5000; step++ {
		k := r.Intn(200)
		if r.Intn(3) == 0 {
			err := m.Erase(k)
			if _, ok := ref[k]; ok {
				require.NoError(t, err)
				delete(ref, k)
			} else {
				require.ErrorIs(t, err, container.ErrKeyNotFound)
			}
		} else {
			m.Set(k, step)
			ref[k] = step
		}
		require.Equal(t, len(ref), m.Len())
		if step%250 == 0 {
			ExpectKeys(t, m, sortedKeys(ref)...)
		}
	}

	var expect []container.Pair[int, int]
	for _, k := range sortedKeys(ref) {
		expect = append(expect, container.Pair[int, int]{Key: k, Value: ref[k]})
	}
	ExpectOrder(t, m, expect...)
}

func TestValuePointerStability(t *testing.T) {
	m := treemap.New[int, int]()
	p := m.InsertOrGet(0)
	for i := 1; i < 2000; i++ {
		m.Set(-i, i)
	}
	*p = 42
	v, err := m.Get(0)
	require.NoError(t, err)
	require.Equal(t, 42, *v)
}

func sortedKeys[V any](m map[int]V) []int {
	keys := make([]int, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Ints(keys)
	return keys
}

func ExpectKeys[K, V any](t *testing.T, m *treemap.Map[K, V], expect ...K) {
	t.Helper()
	require.Equal(t, len(expect), m.Len())
	var actual []K
	m.Visit(func(k K, v V) bool {
		actual = append(actual, k)
		return false
	})
	if len(expect) == 0 {
		require.Empty(t, actual)
		return
	}
	require.Equal(t, expect, actual)
}

func ExpectOrder[K, V any](
	t *testing.T,
	m *treemap.Map[K, V],
	expect ...container.Pair[K, V],
) {
	t.Helper()
	require.Equal(t, len(expect), m.Len())
	require.Equal(t, len(expect) == 0, m.IsEmpty())
	var actual []container.Pair[K, V]
	m.Visit(func(k K, v V) bool {
		actual = append(actual, container.Pair[K, V]{Key: k, Value: v})
		return false
	})
	if len(expect) == 0 {
		require.Empty(t, actual)
		return
	}
	require.Equal(t, expect, actual)
}
