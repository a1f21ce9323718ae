// Package wordle creates one spoiler thread per day for a daily game series
// and manages those threads afterwards.
package wordle

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"golang.org/x/sync/singleflight"
)

// Thread is a read-only view of a thread owned by the chat platform.
type Thread struct {
	ID       string
	Name     string
	ParentID string
	Archived bool
}

// Channel is a top-level text channel threads get created in.
type Channel struct {
	GuildID string
	ID      string
}

// ThreadService is what the protocol needs from the chat platform.
type ThreadService interface {
	// ActiveThreads lists every non-archived thread of the guild.
	ActiveThreads(ctx context.Context, guildID string) ([]Thread, error)
	// ArchivedThreads lists the archived public threads of a channel.
	ArchivedThreads(ctx context.Context, channelID string) ([]Thread, error)
	CreateThread(ctx context.Context, parent Channel, name string, autoArchiveMinutes int) (Thread, error)
	ArchiveThread(ctx context.Context, threadID string) error
	DeleteThread(ctx context.Context, threadID string) error
}

// Result is the outcome of EnsureDailyThread. Collision is set when Thread
// already existed and nothing was created.
type Result struct {
	Label     string
	Thread    Thread
	Collision bool
}

type Protocol struct {
	threads ThreadService
	group   *singleflight.Group
}

type Option func(*Protocol)

// WithDedupe collapses overlapping EnsureDailyThread calls for the same
// channel and label into a single scan and create.
func WithDedupe() Option {
	return func(p *Protocol) {
		p.group = &singleflight.Group{}
	}
}

func NewProtocol(threads ThreadService, opts ...Option) *Protocol {
	p := &Protocol{threads: threads}
	for _, opt := range opts {
		opt(p)
	}
	return p
}

// EnsureDailyThread creates the thread for the day of now unless an active
// thread of parent already contains the day's label.
//
// The scan and the create are not atomic: two overlapping calls can both
// create a thread unless the protocol was built WithDedupe.
func (p *Protocol) EnsureDailyThread(ctx context.Context, series Series, parent Channel, now time.Time) (Result, error) {
	if parent.ID == "" {
		return Result{}, ErrChannelNotFound
	}
	label := series.Label(series.SequenceNumber(now))
	if p.group == nil {
		return p.ensure(ctx, series, parent, label, now)
	}

	v, err, _ := p.group.Do(parent.ID+"|"+strings.ToLower(label), func() (interface{}, error) {
		return p.ensure(ctx, series, parent, label, now)
	})
	if err != nil {
		return Result{}, err
	}
	return v.(Result), nil
}

func (p *Protocol) ensure(ctx context.Context, series Series, parent Channel, label string, now time.Time) (Result, error) {
	active, err := p.threads.ActiveThreads(ctx, parent.GuildID)
	if err != nil {
		return Result{}, fmt.Errorf("listing active threads: %w", err)
	}
	if existing, ok := findCollision(active, parent.ID, label); ok {
		slog.Info("Thread already exists", "label", label, "threadID", existing.ID, "channelID", parent.ID)
		return Result{Label: label, Thread: existing, Collision: true}, nil
	}

	created, err := p.threads.CreateThread(ctx, parent, series.ThreadName(now), AutoArchiveMinutes)
	if err != nil {
		return Result{}, fmt.Errorf("creating thread %q: %w", label, err)
	}
	slog.Info("Created thread", "label", label, "threadID", created.ID, "channelID", parent.ID)
	return Result{Label: label, Thread: created}, nil
}

// findCollision matches the label as a case-insensitive substring so
// renamed or annotated threads still count.
func findCollision(threads []Thread, parentID, label string) (Thread, bool) {
	needle := strings.ToLower(label)
	for _, t := range threads {
		if t.Archived || t.ParentID != parentID {
			continue
		}
		if strings.Contains(strings.ToLower(t.Name), needle) {
			return t, true
		}
	}
	return Thread{}, false
}
