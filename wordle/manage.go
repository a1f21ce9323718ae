package wordle

import (
	"context"
	"fmt"
	"log/slog"
	"strconv"
	"strings"
)

type Action int

const (
	ActionArchive Action = iota
	ActionDelete
)

func (a Action) String() string {
	switch a {
	case ActionArchive:
		return "archive"
	case ActionDelete:
		return "delete"
	}
	return "unknown"
}

// ManageRequest targets one thread for archiving or deletion.
type ManageRequest struct {
	Action   Action
	ThreadID string
	// GuildID scopes the active thread lookup.
	GuildID string
	// ChannelID is the top-level channel whose archived threads are searched
	// when the thread is not active.
	ChannelID string
	IsAdmin   bool
}

type ManageResult struct {
	Thread          Thread
	AlreadyArchived bool
}

// ArchiveOrDelete resolves the thread, active listing first, and applies the action.
func (p *Protocol) ArchiveOrDelete(ctx context.Context, req ManageRequest) (ManageResult, error) {
	if req.Action == ActionDelete && !req.IsAdmin {
		return ManageResult{}, ErrNotAuthorized
	}
	if req.ThreadID == "" {
		return ManageResult{}, fmt.Errorf("%w: no thread given", ErrParse)
	}

	thread, err := p.lookupThread(ctx, req)
	if err != nil {
		return ManageResult{}, err
	}

	switch req.Action {
	case ActionArchive:
		if thread.Archived {
			return ManageResult{Thread: thread, AlreadyArchived: true}, nil
		}
		if err := p.threads.ArchiveThread(ctx, thread.ID); err != nil {
			return ManageResult{}, fmt.Errorf("archiving thread %s: %w", thread.ID, err)
		}
		thread.Archived = true
	case ActionDelete:
		if err := p.threads.DeleteThread(ctx, thread.ID); err != nil {
			return ManageResult{}, fmt.Errorf("deleting thread %s: %w", thread.ID, err)
		}
	default:
		return ManageResult{}, fmt.Errorf("%w: unknown action %d", ErrParse, req.Action)
	}

	slog.Info("Thread updated", "action", req.Action.String(), "threadID", thread.ID)
	return ManageResult{Thread: thread}, nil
}

func (p *Protocol) lookupThread(ctx context.Context, req ManageRequest) (Thread, error) {
	active, err := p.threads.ActiveThreads(ctx, req.GuildID)
	if err != nil {
		return Thread{}, fmt.Errorf("listing active threads: %w", err)
	}
	for _, t := range active {
		if t.ID == req.ThreadID {
			return t, nil
		}
	}

	if req.ChannelID != "" {
		archived, err := p.threads.ArchivedThreads(ctx, req.ChannelID)
		if err != nil {
			return Thread{}, fmt.Errorf("listing archived threads: %w", err)
		}
		for _, t := range archived {
			if t.ID == req.ThreadID {
				t.Archived = true
				return t, nil
			}
		}
	}
	return Thread{}, fmt.Errorf("%w: %s", ErrThreadNotFound, req.ThreadID)
}

var mentionStripper = strings.NewReplacer("<", "", ">", "", "#", "")

// ParseThreadRef accepts a raw numeric ID or a channel mention such as <#123>.
func ParseThreadRef(arg string) (string, error) {
	s := mentionStripper.Replace(strings.TrimSpace(arg))
	if _, err := strconv.ParseUint(s, 10, 64); err != nil {
		return "", fmt.Errorf("%w: invalid thread %q", ErrParse, arg)
	}
	return s, nil
}
