package buddy_test

import (
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/nicolagi/buddy"
	"github.com/nicolagi/buddy/kv"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var testNow = time.Date(2026, 10, 19, 12, 0, 0, 0, time.UTC)

func fixedClock() time.Time {
	return testNow
}

func newTestStore(t *testing.T, storage kv.Storage) *buddy.Store {
	t.Helper()
	s, err := buddy.NewStore(storage, buddy.WithClock(fixedClock), buddy.WithSyncWrites())
	require.Nil(t, err)
	t.Cleanup(func() {
		_ = s.Close()
	})
	return s
}

func deadlineIn(d time.Duration) *time.Time {
	t := testNow.Add(d)
	return &t
}

func TestAddThenLoad(t *testing.T) {
	storage := kv.NewMemory()
	s, err := buddy.NewStore(storage, buddy.WithClock(fixedClock))
	require.Nil(t, err)

	first, ok := s.Add("  buy milk ", deadlineIn(2*time.Hour))
	require.True(t, ok)
	second, ok := s.Add("call mom", nil)
	require.True(t, ok)
	assert.NotEqual(t, first.ID, second.ID)
	require.Nil(t, s.Close())

	loaded, err := buddy.NewStore(storage)
	require.Nil(t, err)
	defer loaded.Close()
	loaded.Load()
	tasks := loaded.Tasks()
	require.Len(t, tasks, 2)

	assert.Equal(t, first.ID, tasks[0].ID)
	assert.Equal(t, "buy milk", tasks[0].Title)
	require.NotNil(t, tasks[0].Deadline)
	assert.True(t, testNow.Add(2*time.Hour).Equal(*tasks[0].Deadline))
	assert.False(t, tasks[0].Completed)
	assert.True(t, testNow.Equal(tasks[0].CreatedAt))

	assert.Equal(t, "call mom", tasks[1].Title)
	assert.Nil(t, tasks[1].Deadline)
}

func TestAddBlankTitle(t *testing.T) {
	storage := kv.NewMemory()
	s := newTestStore(t, storage)
	_, ok := s.Add(" \t\n", nil)
	assert.False(t, ok)
	assert.Empty(t, s.Tasks())
	_, err := storage.Get(buddy.DefaultKey)
	assert.True(t, errors.Is(err, kv.ErrNotFound), "nothing should have been persisted")
}

func TestToggleIsInvolution(t *testing.T) {
	s := newTestStore(t, kv.NewMemory())
	task, ok := s.Add("water plants", nil)
	require.True(t, ok)

	require.True(t, s.Toggle(task.ID))
	got, _ := s.Get(task.ID)
	assert.True(t, got.Completed)

	require.True(t, s.Toggle(task.ID))
	got, _ = s.Get(task.ID)
	assert.False(t, got.Completed)
}

func TestMutationsOnMissingTask(t *testing.T) {
	storage := kv.NewMemory()
	s := newTestStore(t, storage)
	task, _ := s.Add("temporary", nil)
	require.True(t, s.Delete(task.ID))
	before, err := storage.Get(buddy.DefaultKey)
	require.Nil(t, err)

	assert.False(t, s.Toggle(task.ID))
	assert.False(t, s.Edit(task.ID, "back from the dead", nil))
	assert.False(t, s.Delete(task.ID))
	assert.Empty(t, s.Tasks())

	after, err := storage.Get(buddy.DefaultKey)
	require.Nil(t, err)
	assert.Equal(t, string(before), string(after))
}

func TestEditKeepsIdentity(t *testing.T) {
	s := newTestStore(t, kv.NewMemory())
	task, _ := s.Add("draft", deadlineIn(time.Hour))
	require.True(t, s.Toggle(task.ID))

	require.True(t, s.Edit(task.ID, "final", nil))
	got, ok := s.Get(task.ID)
	require.True(t, ok)
	assert.Equal(t, task.ID, got.ID)
	assert.Equal(t, "final", got.Title)
	assert.Nil(t, got.Deadline)
	assert.True(t, got.Completed)
	assert.True(t, task.CreatedAt.Equal(got.CreatedAt))

	assert.False(t, s.Edit(task.ID, "   ", nil), "blank titles are refused")
	got, _ = s.Get(task.ID)
	assert.Equal(t, "final", got.Title)
}

func TestDeleteKeepsOrder(t *testing.T) {
	s := newTestStore(t, kv.NewMemory())
	a, _ := s.Add("a", nil)
	b, _ := s.Add("b", nil)
	c, _ := s.Add("c", nil)
	require.True(t, s.Delete(b.ID))
	tasks := s.Tasks()
	require.Len(t, tasks, 2)
	assert.Equal(t, a.ID, tasks[0].ID)
	assert.Equal(t, c.ID, tasks[1].ID)
}

func TestTasksReturnsCopy(t *testing.T) {
	s := newTestStore(t, kv.NewMemory())
	task, _ := s.Add("original", deadlineIn(time.Hour))
	tasks := s.Tasks()
	tasks[0].Title = "changed"
	*tasks[0].Deadline = testNow
	got, _ := s.Get(task.ID)
	assert.Equal(t, "original", got.Title)
	assert.True(t, testNow.Add(time.Hour).Equal(*got.Deadline))
}

func TestLoadFailsSoft(t *testing.T) {
	testCases := []struct {
		name  string
		value string
	}{
		{name: "not json", value: "{{{"},
		{name: "object", value: `{"id":"1"}`},
		{name: "bad element", value: `[{"id":1}]`},
	}
	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			storage := kv.NewMemory()
			require.Nil(t, storage.Set(buddy.DefaultKey, []byte(tc.value)))
			s := newTestStore(t, storage)
			s.Load()
			assert.Empty(t, s.Tasks())
		})
	}
}

func TestLoadMissing(t *testing.T) {
	s := newTestStore(t, kv.NewMemory())
	s.Load()
	assert.NotNil(t, s.Tasks())
	assert.Empty(t, s.Tasks())
}

func TestWriteFailureKeepsMemory(t *testing.T) {
	storage := kv.NewMemory()
	storage.SetErr = errors.New("disk full")
	s := newTestStore(t, storage)
	task, ok := s.Add("still here", nil)
	require.True(t, ok)
	got, ok := s.Get(task.ID)
	require.True(t, ok)
	assert.Equal(t, "still here", got.Title)
	_, err := storage.Get(buddy.DefaultKey)
	assert.True(t, errors.Is(err, kv.ErrNotFound))
}

func TestBackgroundWritesInOrder(t *testing.T) {
	storage := kv.NewMemory()
	s, err := buddy.NewStore(storage)
	require.Nil(t, err)
	var last buddy.Task
	for i := 0; i < 50; i++ {
		last, _ = s.Add(strings.Repeat("x", i+1), nil)
	}
	s.Toggle(last.ID)
	s.Flush()

	other, err := buddy.NewStore(storage)
	require.Nil(t, err)
	other.Load()
	tasks := other.Tasks()
	require.Len(t, tasks, 50)
	assert.True(t, tasks[49].Completed)
	require.Nil(t, s.Close())
	require.Nil(t, other.Close())
}

func TestClosedStoreKeepsMemoryOnly(t *testing.T) {
	storage := kv.NewMemory()
	s, err := buddy.NewStore(storage)
	require.Nil(t, err)
	require.Nil(t, s.Close())
	require.Nil(t, s.Close())

	_, ok := s.Add("after close", nil)
	assert.True(t, ok)
	assert.Len(t, s.Tasks(), 1)
	_, err = storage.Get(buddy.DefaultKey)
	assert.True(t, errors.Is(err, kv.ErrNotFound))
}

func TestWithKey(t *testing.T) {
	storage := kv.NewMemory()
	s, err := buddy.NewStore(storage, buddy.WithKey("work"), buddy.WithSyncWrites())
	require.Nil(t, err)
	defer s.Close()
	s.Add("ship it", nil)
	_, err = storage.Get("work")
	assert.Nil(t, err)
	_, err = storage.Get(buddy.DefaultKey)
	assert.True(t, errors.Is(err, kv.ErrNotFound))

	_, err = buddy.NewStore(storage, buddy.WithKey(""))
	assert.NotNil(t, err)
	_, err = buddy.NewStore(nil)
	assert.NotNil(t, err)
}

func TestResolve(t *testing.T) {
	s := newTestStore(t, kv.NewMemory())
	task, _ := s.Add("only", nil)

	id, err := s.Resolve(task.ID[:8])
	require.Nil(t, err)
	assert.Equal(t, task.ID, id)

	id, err = s.Resolve(task.ID)
	require.Nil(t, err)
	assert.Equal(t, task.ID, id)

	_, err = s.Resolve("zzzz")
	assert.True(t, errors.Is(err, buddy.ErrNotFound))

	s.Add("second", nil)
	_, err = s.Resolve("")
	assert.True(t, errors.Is(err, buddy.ErrNotFound))
}
