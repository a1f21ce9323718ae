package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/bwmarrin/discordgo"
	"github.com/itsvyle/wordle_bot/command"
	"github.com/itsvyle/wordle_bot/config"
	"github.com/itsvyle/wordle_bot/metrics"
	"github.com/itsvyle/wordle_bot/wordle"
)

const commandTimeout = 30 * time.Second

// invocation describes where and by whom a command was issued.
type invocation struct {
	GuildID   string
	ChannelID string
	// ParentID is the parent channel when ChannelID is a thread.
	ParentID    string
	InThread    bool
	AuthorID    string
	AuthorRoles []string
}

// parentChannel is the top-level channel threads are created in.
func (inv invocation) parentChannel() wordle.Channel {
	id := inv.ChannelID
	if inv.InThread {
		id = inv.ParentID
	}
	return wordle.Channel{GuildID: inv.GuildID, ID: id}
}

// response is what the command handler sends back. Reply is false for
// announcements that go to the channel without referencing the command.
type response struct {
	Text  string
	Reply bool
	Error bool
}

func replyf(format string, a ...any) response {
	return response{Text: fmt.Sprintf(format, a...), Reply: true}
}

func errorf(format string, a ...any) response {
	return response{Text: fmt.Sprintf(format, a...), Reply: true, Error: true}
}

type WordleBot struct {
	cfg      *config.Config
	protocol *wordle.Protocol
	metrics  *metrics.Metrics
	now      func() time.Time
}

func CreateNewWordleBot(cfg *config.Config, protocol *wordle.Protocol, m *metrics.Metrics) *WordleBot {
	return &WordleBot{
		cfg:      cfg,
		protocol: protocol,
		metrics:  m,
		now:      time.Now,
	}
}

func (b *WordleBot) readyBot(session *discordgo.Session, _ *discordgo.Ready) {
	slog.Info("Logged in", "user", session.State.User.Username, "timezone", b.cfg.Location.String())
}

// execute runs one parsed command. It never returns an error: every failure
// becomes a response for the user.
func (b *WordleBot) execute(ctx context.Context, inv invocation, cmd command.Command) response {
	switch cmd.Kind {
	case command.KindHelp:
		return replyf("```\n%s```", cmd.Output)
	case command.KindToday, command.KindCustom:
		return b.dailyThread(ctx, inv, cmd)
	case command.KindArchive, command.KindDelete:
		return b.manageThread(ctx, inv, cmd)
	}
	return errorf("Unhandled subcommand")
}

func (b *WordleBot) dailyThread(ctx context.Context, inv invocation, cmd command.Command) response {
	name, epoch := b.cfg.SeriesName, b.cfg.Epoch
	if cmd.Kind == command.KindCustom {
		name = cmd.Name
		if cmd.StartDate != "" {
			var err error
			epoch, err = wordle.ParseStartDate(cmd.StartDate, b.cfg.Location)
			if err != nil {
				return b.failure(err)
			}
		}
	}

	series, err := wordle.NewSeries(name, epoch, b.cfg.Location)
	if err != nil {
		return b.failure(err)
	}

	res, err := b.protocol.EnsureDailyThread(ctx, series, inv.parentChannel(), b.now())
	if err != nil {
		return b.failure(err)
	}
	if res.Collision {
		b.metrics.ThreadCollisions.WithLabelValues(series.Name).Inc()
		return replyf("It looks like there is already a %s thread in this channel: <#%s>", res.Label, res.Thread.ID)
	}
	b.metrics.ThreadsCreated.WithLabelValues(series.Name).Inc()
	return response{Text: fmt.Sprintf("%s Spoiler Thread: <#%s>", res.Label, res.Thread.ID)}
}

func (b *WordleBot) manageThread(ctx context.Context, inv invocation, cmd command.Command) response {
	action := wordle.ActionArchive
	if cmd.Kind == command.KindDelete {
		action = wordle.ActionDelete
	}

	var threadID string
	switch {
	case cmd.Thread != "":
		id, err := wordle.ParseThreadRef(cmd.Thread)
		if err != nil {
			return b.failure(err)
		}
		threadID = id
	case inv.InThread:
		threadID = inv.ChannelID
	default:
		b.metrics.CommandErrors.WithLabelValues("parse").Inc()
		return errorf("Invalid thread")
	}

	res, err := b.protocol.ArchiveOrDelete(ctx, wordle.ManageRequest{
		Action:    action,
		ThreadID:  threadID,
		GuildID:   inv.GuildID,
		ChannelID: inv.parentChannel().ID,
		IsAdmin:   b.cfg.IsAdmin(inv.AuthorID, inv.AuthorRoles...),
	})
	if err != nil {
		if errors.Is(err, wordle.ErrThreadNotFound) {
			b.metrics.CommandErrors.WithLabelValues("not_found").Inc()
			return errorf("Unable to find thread by ID: %s", threadID)
		}
		return b.failure(err)
	}

	// Without an explicit target the command came from inside the thread
	// itself, which is now archived or gone.
	explicit := cmd.Thread != ""
	switch {
	case res.AlreadyArchived:
		return replyf("Thread is already archived: <#%s>", res.Thread.ID)
	case action == wordle.ActionArchive && explicit:
		return replyf("Thread archived: <#%s>", res.Thread.ID)
	case action == wordle.ActionDelete && explicit:
		return replyf("Thread deleted")
	}
	return response{}
}

func (b *WordleBot) failure(err error) response {
	switch {
	case errors.Is(err, wordle.ErrParse):
		b.metrics.CommandErrors.WithLabelValues("parse").Inc()
		return errorf("Error parsing command input: %v", err)
	case errors.Is(err, wordle.ErrNotAuthorized):
		b.metrics.CommandErrors.WithLabelValues("unauthorized").Inc()
		return errorf("You are not authorized to delete threads")
	case errors.Is(err, wordle.ErrChannelNotFound):
		b.metrics.CommandErrors.WithLabelValues("not_found").Inc()
		return errorf("Unable to find the channel to create the thread in")
	}
	b.metrics.CommandErrors.WithLabelValues("internal").Inc()
	slog.With("error", err).Error("Error running wordle command")
	return errorf("Something went wrong, please try again")
}

// invocationFor resolves whether channelID is a thread and, for deletes,
// the author's role IDs and names.
func (b *WordleBot) invocationFor(session *discordgo.Session, guildID, channelID, authorID string, member *discordgo.Member, withRoles bool) (invocation, error) {
	inv := invocation{GuildID: guildID, ChannelID: channelID, AuthorID: authorID}

	ch, err := lookupChannel(session, channelID)
	if err != nil {
		return inv, err
	}
	if ch.IsThread() {
		inv.InThread = true
		inv.ParentID = ch.ParentID
	}
	if inv.GuildID == "" {
		inv.GuildID = ch.GuildID
	}

	if withRoles && member != nil && len(b.cfg.AdminRoles) > 0 {
		inv.AuthorRoles = append(inv.AuthorRoles, member.Roles...)
		roles, err := session.GuildRoles(inv.GuildID)
		if err != nil {
			slog.With("error", err, "guildID", inv.GuildID).Error("Error getting guild roles")
		}
		for _, role := range roles {
			for _, id := range member.Roles {
				if role.ID == id {
					inv.AuthorRoles = append(inv.AuthorRoles, role.Name)
				}
			}
		}
	}
	return inv, nil
}

// InitPrefixCommand answers "!wordle ..." messages.
func (b *WordleBot) InitPrefixCommand(discordSession *discordgo.Session) {
	discordSession.AddHandler(func(session *discordgo.Session, message *discordgo.MessageCreate) {
		if message.Author == nil || message.Author.Bot {
			return
		}
		fields := strings.Fields(message.Content)
		if len(fields) == 0 || fields[0] != b.cfg.CommandPrefix {
			return
		}
		slog.Info("Command received", "channelID", message.ChannelID, "author", message.Author.Username, "content", message.Content)

		var resp response
		cmd, err := command.Parse(b.cfg.CommandPrefix, fields[1:])
		if err != nil {
			b.metrics.CommandErrors.WithLabelValues("parse").Inc()
			resp = errorf("Error parsing command input: %v", err)
		} else {
			inv, err := b.invocationFor(session, message.GuildID, message.ChannelID, message.Author.ID, message.Member, cmd.Kind == command.KindDelete)
			if err != nil {
				resp = b.failure(err)
			} else {
				ctx, cancel := context.WithTimeout(context.Background(), commandTimeout)
				resp = b.execute(ctx, inv, cmd)
				cancel()
			}
		}

		if resp.Text == "" {
			return
		}
		if resp.Reply {
			_, err = session.ChannelMessageSendReply(message.ChannelID, resp.Text, message.Reference())
		} else {
			_, err = session.ChannelMessageSend(message.ChannelID, resp.Text)
		}
		if err != nil {
			slog.With("error", err, "channelID", message.ChannelID).Error("Error sending message to channel")
		}
	})
}
