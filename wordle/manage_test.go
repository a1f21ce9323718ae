package wordle

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseThreadRef(t *testing.T) {
	tests := []struct {
		in      string
		want    string
		wantErr bool
	}{
		{in: "123456789012345678", want: "123456789012345678"},
		{in: "<#123456789012345678>", want: "123456789012345678"},
		{in: " #42 ", want: "42"},
		{in: "general", wantErr: true},
		{in: "<@123>", wantErr: true},
		{in: "", wantErr: true},
	}
	for _, tt := range tests {
		got, err := ParseThreadRef(tt.in)
		if tt.wantErr {
			assert.ErrorIs(t, err, ErrParse, tt.in)
			continue
		}
		require.NoError(t, err, tt.in)
		assert.Equal(t, tt.want, got)
	}
}

func TestArchiveActiveThread(t *testing.T) {
	fake := newFakeThreads(Thread{ID: "5", Name: "Wordle 3", ParentID: general.ID})
	p := NewProtocol(fake)

	res, err := p.ArchiveOrDelete(context.Background(), ManageRequest{
		Action: ActionArchive, ThreadID: "5", GuildID: general.GuildID, ChannelID: general.ID,
	})
	require.NoError(t, err)
	assert.False(t, res.AlreadyArchived)
	assert.True(t, res.Thread.Archived)
	assert.Equal(t, []string{"5"}, fake.archiveCalls)
	assert.Zero(t, fake.archivedLists)
}

func TestArchiveAlreadyArchivedThread(t *testing.T) {
	fake := newFakeThreads()
	fake.archived[general.ID] = []Thread{{ID: "6", Name: "Wordle 2", ParentID: general.ID}}
	p := NewProtocol(fake)

	res, err := p.ArchiveOrDelete(context.Background(), ManageRequest{
		Action: ActionArchive, ThreadID: "6", GuildID: general.GuildID, ChannelID: general.ID,
	})
	require.NoError(t, err)
	assert.True(t, res.AlreadyArchived)
	assert.Empty(t, fake.archiveCalls)
}

func TestDeleteArchivedThreadAsAdmin(t *testing.T) {
	fake := newFakeThreads()
	fake.archived[general.ID] = []Thread{{ID: "6", Name: "Wordle 2", ParentID: general.ID, Archived: true}}
	p := NewProtocol(fake)

	res, err := p.ArchiveOrDelete(context.Background(), ManageRequest{
		Action: ActionDelete, ThreadID: "6", GuildID: general.GuildID, ChannelID: general.ID, IsAdmin: true,
	})
	require.NoError(t, err)
	assert.Equal(t, "6", res.Thread.ID)
	assert.Equal(t, []string{"6"}, fake.deleteCalls)
}

func TestDeleteRequiresAdmin(t *testing.T) {
	fake := newFakeThreads(Thread{ID: "5", Name: "Wordle 3", ParentID: general.ID})
	p := NewProtocol(fake)

	_, err := p.ArchiveOrDelete(context.Background(), ManageRequest{
		Action: ActionDelete, ThreadID: "5", GuildID: general.GuildID, ChannelID: general.ID,
	})
	assert.ErrorIs(t, err, ErrNotAuthorized)
	assert.Empty(t, fake.deleteCalls)
	assert.Zero(t, fake.activeLists)
}

func TestManageThreadNotFound(t *testing.T) {
	fake := newFakeThreads(Thread{ID: "5", Name: "Wordle 3", ParentID: general.ID})
	p := NewProtocol(fake)

	_, err := p.ArchiveOrDelete(context.Background(), ManageRequest{
		Action: ActionArchive, ThreadID: "404", GuildID: general.GuildID, ChannelID: general.ID,
	})
	assert.ErrorIs(t, err, ErrThreadNotFound)
	assert.Equal(t, 1, fake.archivedLists)
	assert.Empty(t, fake.archiveCalls)
}
