package entitystore

import (
	"cmp"
	"errors"
	"fmt"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"pgregory.net/rapid"
)

type record struct {
	ID        int64
	Key       string
	Score     int
	Active    bool
	CreatedAt time.Time
	UpdatedAt time.Time
}

func recordSchema() Schema[record] {
	return Schema[record]{
		ID:         func(r record) int64 { return r.ID },
		SetID:      func(r *record, id int64) { r.ID = id },
		NaturalKey: func(r record) string { return r.Key },
		Created:    func(r *record, at time.Time) { r.CreatedAt = at },
		Updated:    func(r *record, at time.Time) { r.UpdatedAt = at },
	}
}

func fixedClock(at time.Time) func() time.Time {
	return func() time.Time { return at }
}

func TestAdd_AssignsIdentityAndCreationStamp(t *testing.T) {
	now := time.Date(2024, 5, 1, 10, 0, 0, 0, time.UTC)
	s := New(recordSchema(), WithClock(fixedClock(now)))

	first, err := s.Add(record{Key: "a"})
	require.NoError(t, err)
	second, err := s.Add(record{Key: "b"})
	require.NoError(t, err)

	assert.Equal(t, int64(1), first.ID)
	assert.Equal(t, int64(2), second.ID)
	assert.Equal(t, now, first.CreatedAt)
	assert.Equal(t, 2, s.Len())
}

func TestAdd_ExplicitIdentityAdvancesCounter(t *testing.T) {
	s := New(recordSchema())

	_, err := s.Add(record{ID: 10, Key: "ten"})
	require.NoError(t, err)
	next, err := s.Add(record{Key: "eleven"})
	require.NoError(t, err)
	assert.Equal(t, int64(11), next.ID)

	_, err = s.Add(record{ID: 10, Key: "other"})
	require.ErrorIs(t, err, ErrConflict)
}

func TestAdd_DuplicateNaturalKeyConflicts(t *testing.T) {
	s := New(recordSchema())

	_, err := s.Add(record{Key: "978-0123456789"})
	require.NoError(t, err)
	_, err = s.Add(record{Key: "978-0123456789"})
	require.ErrorIs(t, err, ErrConflict)
	assert.Equal(t, 1, s.Len())

	// a rejected add must not burn an identity either
	next, err := s.Add(record{Key: "978-0987654321"})
	require.NoError(t, err)
	assert.Equal(t, int64(2), next.ID)
}

func TestGetByID_ReturnsCopies(t *testing.T) {
	s := New(recordSchema())
	added, err := s.Add(record{Key: "a", Score: 1})
	require.NoError(t, err)

	added.Score = 99
	got, ok := s.GetByID(added.ID)
	require.True(t, ok)
	assert.Equal(t, 1, got.Score)

	_, ok = s.GetByID(404)
	assert.False(t, ok)
}

func TestUpdateFields(t *testing.T) {
	created := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	clock := created
	s := New(recordSchema(), WithClock(func() time.Time { return clock }))
	added, err := s.Add(record{Key: "a", Score: 1, Active: true})
	require.NoError(t, err)

	clock = created.Add(time.Hour)
	updated, found, err := s.UpdateFields(added.ID, func(r *record) error {
		r.Score = 5
		r.ID = 77
		return nil
	})
	require.NoError(t, err)
	require.True(t, found)
	assert.Equal(t, added.ID, updated.ID, "identity is immutable")
	assert.Equal(t, 5, updated.Score)
	assert.Equal(t, created, updated.CreatedAt)
	assert.Equal(t, clock, updated.UpdatedAt)

	t.Run("missing id leaves store untouched", func(t *testing.T) {
		_, found, err := s.UpdateFields(999, func(r *record) error { return nil })
		require.NoError(t, err)
		assert.False(t, found)
		assert.Equal(t, 1, s.Len())
	})

	t.Run("failed mutation is discarded", func(t *testing.T) {
		boom := errors.New("boom")
		_, found, err := s.UpdateFields(added.ID, func(r *record) error {
			r.Score = 1000
			return boom
		})
		require.ErrorIs(t, err, boom)
		assert.True(t, found)
		got, _ := s.GetByID(added.ID)
		assert.Equal(t, 5, got.Score)
	})

	t.Run("nil mutation", func(t *testing.T) {
		_, _, err := s.UpdateFields(added.ID, nil)
		require.ErrorIs(t, err, ErrNilMutation)
	})
}

func TestUpdateFields_NaturalKeyStaysUnique(t *testing.T) {
	s := New(recordSchema())
	a, err := s.Add(record{Key: "a"})
	require.NoError(t, err)
	_, err = s.Add(record{Key: "b"})
	require.NoError(t, err)

	_, _, err = s.UpdateFields(a.ID, func(r *record) error {
		r.Key = "b"
		return nil
	})
	require.ErrorIs(t, err, ErrConflict)

	_, _, err = s.UpdateFields(a.ID, func(r *record) error {
		r.Key = "c"
		return nil
	})
	require.NoError(t, err)

	// "a" was used once and stays reserved
	_, err = s.Add(record{Key: "a"})
	require.ErrorIs(t, err, ErrConflict)
}

func TestListWhere_FiltersAndOrdersWithIdentityTieBreak(t *testing.T) {
	s := New(recordSchema())
	for i, score := range []int{3, 1, 3, 2} {
		_, err := s.Add(record{Key: fmt.Sprintf("k%d", i), Score: score, Active: score != 2})
		require.NoError(t, err)
	}

	byScoreDesc := func(a, b record) int { return cmp.Compare(b.Score, a.Score) }
	list := s.ListWhere(func(r record) bool { return r.Active }, byScoreDesc)

	ids := make([]int64, 0, len(list))
	for _, r := range list {
		ids = append(ids, r.ID)
	}
	assert.Equal(t, []int64{1, 3, 2}, ids)

	all := s.ListWhere(nil, nil)
	assert.Len(t, all, 4)
	assert.Equal(t, int64(1), all[0].ID)
}

func TestFindOne(t *testing.T) {
	s := New(recordSchema())
	_, err := s.Add(record{Key: "x", Score: 7})
	require.NoError(t, err)

	got, ok := s.FindOne(func(r record) bool { return r.Key == "x" })
	require.True(t, ok)
	assert.Equal(t, 7, got.Score)

	_, ok = s.FindOne(func(r record) bool { return r.Key == "missing" })
	assert.False(t, ok)
}

func TestConcurrentAddsKeepIdentitiesUnique(t *testing.T) {
	s := New(recordSchema())
	var wg sync.WaitGroup
	for i := 0; i < 50; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			_, _ = s.Add(record{Key: fmt.Sprintf("k%d", i%25)})
		}(i)
	}
	wg.Wait()

	assert.Equal(t, 25, s.Len())
	seen := map[int64]bool{}
	for _, r := range s.ListWhere(nil, nil) {
		assert.False(t, seen[r.ID])
		seen[r.ID] = true
	}
}

func TestProperty_AddThenGetRoundTrips(t *testing.T) {
	rapid.Check(t, func(t *rapid.T) {
		s := New(recordSchema())
		keys := rapid.SliceOfNDistinct(rapid.StringMatching(`[a-z]{1,8}`), 1, 20, rapid.ID[string]).Draw(t, "keys")
		for _, key := range keys {
			score := rapid.IntRange(-100, 100).Draw(t, "score")
			in := record{Key: key, Score: score, Active: rapid.Bool().Draw(t, "active")}
			added, err := s.Add(in)
			require.NoError(t, err)

			got, ok := s.GetByID(added.ID)
			require.True(t, ok)
			in.ID = got.ID
			in.CreatedAt = got.CreatedAt
			require.Equal(t, in, got)
		}
		require.Equal(t, len(keys), s.Len())
	})
}

func TestProperty_DuplicateKeyNeverGrowsStore(t *testing.T) {
	rapid.Check(t, func(t *rapid.T) {
		s := New(recordSchema())
		key := rapid.StringMatching(`[0-9]{10}`).Draw(t, "key")
		_, err := s.Add(record{Key: key})
		require.NoError(t, err)

		before := s.Len()
		_, err = s.Add(record{Key: key, Score: rapid.Int().Draw(t, "score")})
		require.ErrorIs(t, err, ErrConflict)
		require.Equal(t, before, s.Len())
	})
}

func TestProperty_ListWhereIsSortedAndComplete(t *testing.T) {
	rapid.Check(t, func(t *rapid.T) {
		s := New(recordSchema())
		scores := rapid.SliceOfN(rapid.IntRange(0, 5), 0, 30).Draw(t, "scores")
		for i, score := range scores {
			_, err := s.Add(record{Key: fmt.Sprintf("k%d", i), Score: score})
			require.NoError(t, err)
		}
		list := s.ListWhere(nil, func(a, b record) int { return cmp.Compare(b.Score, a.Score) })
		require.Len(t, list, len(scores))
		for i := 1; i < len(list); i++ {
			prev, cur := list[i-1], list[i]
			require.GreaterOrEqual(t, prev.Score, cur.Score)
			if prev.Score == cur.Score {
				require.Less(t, prev.ID, cur.ID)
			}
		}
	})
}
