package main

import (
	"context"
	"errors"
	"fmt"
	"sync/atomic"
	"time"

	"github.com/bwmarrin/discordgo"
	"github.com/itsvyle/wordle_bot/wordle"
)

// Discord returns at most 100 archived threads per page.
const (
	archivedPageSize = 100
	archivedMaxPages = 10
)

// discordThreads is the wordle.ThreadService backed by the Discord REST API.
type discordThreads struct {
	session *discordgo.Session
}

func (d *discordThreads) ActiveThreads(ctx context.Context, guildID string) ([]wordle.Thread, error) {
	list, err := d.session.GuildThreadsActive(guildID, discordgo.WithContext(ctx))
	if err != nil {
		return nil, err
	}
	return toThreads(list.Threads, false), nil
}

func (d *discordThreads) ArchivedThreads(ctx context.Context, channelID string) ([]wordle.Thread, error) {
	var (
		threads []wordle.Thread
		before  *time.Time
	)
	for page := 0; page < archivedMaxPages; page++ {
		list, err := d.session.ThreadsArchived(channelID, before, archivedPageSize, discordgo.WithContext(ctx))
		if err != nil {
			return nil, err
		}
		threads = append(threads, toThreads(list.Threads, true)...)
		if !list.HasMore || len(list.Threads) == 0 {
			break
		}
		last := list.Threads[len(list.Threads)-1]
		if last.ThreadMetadata == nil {
			break
		}
		ts := last.ThreadMetadata.ArchiveTimestamp
		before = &ts
	}
	return threads, nil
}

func (d *discordThreads) CreateThread(ctx context.Context, parent wordle.Channel, name string, autoArchiveMinutes int) (wordle.Thread, error) {
	ch, err := d.session.ThreadStartComplex(parent.ID, &discordgo.ThreadStart{
		Name:                name,
		AutoArchiveDuration: autoArchiveMinutes,
		Type:                discordgo.ChannelTypeGuildPublicThread,
	}, discordgo.WithContext(ctx))
	if err != nil {
		return wordle.Thread{}, err
	}
	return toThread(ch, false), nil
}

func (d *discordThreads) ArchiveThread(ctx context.Context, threadID string) error {
	archived := true
	_, err := d.session.ChannelEdit(threadID, &discordgo.ChannelEdit{Archived: &archived}, discordgo.WithContext(ctx))
	return err
}

func (d *discordThreads) DeleteThread(ctx context.Context, threadID string) error {
	_, err := d.session.ChannelDelete(threadID, discordgo.WithContext(ctx))
	return err
}

func toThread(ch *discordgo.Channel, archived bool) wordle.Thread {
	if ch.ThreadMetadata != nil {
		archived = archived || ch.ThreadMetadata.Archived
	}
	return wordle.Thread{
		ID:       ch.ID,
		Name:     ch.Name,
		ParentID: ch.ParentID,
		Archived: archived,
	}
}

func toThreads(chs []*discordgo.Channel, archived bool) []wordle.Thread {
	threads := make([]wordle.Thread, 0, len(chs))
	for _, ch := range chs {
		if ch == nil {
			continue
		}
		threads = append(threads, toThread(ch, archived))
	}
	return threads
}

// lookupChannel prefers the state cache and falls back to the REST API.
func lookupChannel(session *discordgo.Session, channelID string) (*discordgo.Channel, error) {
	if session.State != nil {
		if ch, err := session.State.Channel(channelID); err == nil {
			return ch, nil
		}
	}
	ch, err := session.Channel(channelID)
	if err != nil {
		return nil, fmt.Errorf("%w: %s: %v", wordle.ErrChannelNotFound, channelID, err)
	}
	return ch, nil
}

// sessionTransport reports the gateway health from session events so the
// reconnect supervisor never has to look at discordgo internals.
type sessionTransport struct {
	session *discordgo.Session
	started atomic.Bool
	closed  atomic.Bool
}

func newSessionTransport(session *discordgo.Session) *sessionTransport {
	t := &sessionTransport{session: session}
	session.AddHandler(func(_ *discordgo.Session, _ *discordgo.Connect) {
		t.closed.Store(false)
	})
	session.AddHandler(func(_ *discordgo.Session, _ *discordgo.Resumed) {
		t.closed.Store(false)
	})
	session.AddHandler(func(_ *discordgo.Session, _ *discordgo.Ready) {
		t.started.Store(true)
		t.closed.Store(false)
	})
	session.AddHandler(func(_ *discordgo.Session, _ *discordgo.Disconnect) {
		t.closed.Store(true)
	})
	return t
}

// markStarted is called once the first Open succeeded.
func (t *sessionTransport) markStarted() {
	t.started.Store(true)
	t.closed.Store(false)
}

func (t *sessionTransport) Started() bool { return t.started.Load() }

func (t *sessionTransport) Closed() bool { return t.closed.Load() }

func (t *sessionTransport) Restart(_ context.Context) error {
	_ = t.session.Close()
	err := t.session.Open()
	if errors.Is(err, discordgo.ErrWSAlreadyOpen) {
		err = nil
	}
	if err != nil {
		return err
	}
	t.closed.Store(false)
	return nil
}
