package wordle

import (
	"context"
	"fmt"
	"sync"
)

type fakeThreads struct {
	mu       sync.Mutex
	active   []Thread
	archived map[string][]Thread
	nextID   int

	created       []string
	archiveCalls  []string
	deleteCalls   []string
	activeLists   int
	archivedLists int

	listErr error
	// beforeCreate runs with the lock released, between scan and create.
	beforeCreate func()
}

func newFakeThreads(active ...Thread) *fakeThreads {
	return &fakeThreads{active: active, archived: map[string][]Thread{}, nextID: 1000}
}

func (f *fakeThreads) ActiveThreads(_ context.Context, _ string) ([]Thread, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.activeLists++
	if f.listErr != nil {
		return nil, f.listErr
	}
	return append([]Thread(nil), f.active...), nil
}

func (f *fakeThreads) ArchivedThreads(_ context.Context, channelID string) ([]Thread, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.archivedLists++
	return append([]Thread(nil), f.archived[channelID]...), nil
}

func (f *fakeThreads) CreateThread(_ context.Context, parent Channel, name string, _ int) (Thread, error) {
	if f.beforeCreate != nil {
		f.beforeCreate()
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	f.nextID++
	t := Thread{ID: fmt.Sprint(f.nextID), Name: name, ParentID: parent.ID}
	f.active = append(f.active, t)
	f.created = append(f.created, name)
	return t, nil
}

func (f *fakeThreads) ArchiveThread(_ context.Context, threadID string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.archiveCalls = append(f.archiveCalls, threadID)
	return nil
}

func (f *fakeThreads) DeleteThread(_ context.Context, threadID string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.deleteCalls = append(f.deleteCalls, threadID)
	return nil
}
