package main

import (
	"context"
	"log/slog"

	"github.com/bwmarrin/discordgo"
	"github.com/itsvyle/wordle_bot/command"
)

const slashCommandName = "wordle"

func wordleApplicationCommand() *discordgo.ApplicationCommand {
	threadOption := func(verb string) []*discordgo.ApplicationCommandOption {
		return []*discordgo.ApplicationCommandOption{
			{
				Name:        "thread",
				Description: "The thread to " + verb + ", defaults to the current thread",
				Type:        discordgo.ApplicationCommandOptionChannel,
				ChannelTypes: []discordgo.ChannelType{
					discordgo.ChannelTypeGuildPublicThread,
					discordgo.ChannelTypeGuildPrivateThread,
				},
			},
		}
	}

	return &discordgo.ApplicationCommand{
		Name:        slashCommandName,
		Description: "Daily Wordle spoiler threads",
		Type:        discordgo.ChatApplicationCommand,
		Options: []*discordgo.ApplicationCommandOption{
			{
				Name:        "today",
				Description: "Create today's Wordle spoiler thread",
				Type:        discordgo.ApplicationCommandOptionSubCommand,
			},
			{
				Name:        "custom",
				Description: "Create today's spoiler thread for another daily game",
				Type:        discordgo.ApplicationCommandOptionSubCommand,
				Options: []*discordgo.ApplicationCommandOption{
					{
						Name:        "name",
						Description: "Name of the game",
						Type:        discordgo.ApplicationCommandOptionString,
						Required:    true,
					},
					{
						Name:        "start_date",
						Description: "Day number zero of the game, MM/DD/YYYY",
						Type:        discordgo.ApplicationCommandOptionString,
					},
				},
			},
			{
				Name:        "archive",
				Description: "Archive a thread",
				Type:        discordgo.ApplicationCommandOptionSubCommand,
				Options:     threadOption("archive"),
			},
			{
				Name:        "delete",
				Description: "Delete a thread (admins only)",
				Type:        discordgo.ApplicationCommandOptionSubCommand,
				Options:     threadOption("delete"),
			},
			{
				Name:        "help",
				Description: "Display help",
				Type:        discordgo.ApplicationCommandOptionSubCommand,
				Options: []*discordgo.ApplicationCommandOption{
					{
						Name:        "command",
						Description: "Command to show help for",
						Type:        discordgo.ApplicationCommandOptionString,
						Choices: []*discordgo.ApplicationCommandOptionChoice{
							{Name: "custom", Value: "custom"},
							{Name: "archive", Value: "archive"},
							{Name: "delete", Value: "delete"},
						},
					},
				},
			},
		},
	}
}

// commandFromInteraction maps /wordle options onto the same command the
// prefix parser produces.
func (b *WordleBot) commandFromInteraction(data discordgo.ApplicationCommandInteractionData) (command.Command, bool) {
	if data.Name != slashCommandName || len(data.Options) == 0 {
		return command.Command{}, false
	}
	sub := data.Options[0]
	opts := make(map[string]*discordgo.ApplicationCommandInteractionDataOption, len(sub.Options))
	for _, o := range sub.Options {
		opts[o.Name] = o
	}

	switch sub.Name {
	case "today":
		return command.Command{Kind: command.KindToday}, true
	case "custom":
		cmd := command.Command{Kind: command.KindCustom}
		if o, ok := opts["name"]; ok {
			cmd.Name = o.StringValue()
		}
		if o, ok := opts["start_date"]; ok {
			cmd.StartDate = o.StringValue()
		}
		return cmd, true
	case "archive", "delete":
		cmd := command.Command{Kind: command.KindArchive}
		if sub.Name == "delete" {
			cmd.Kind = command.KindDelete
		}
		if o, ok := opts["thread"]; ok {
			cmd.Thread = o.ChannelValue(nil).ID
		}
		return cmd, true
	case "help":
		topic := ""
		if o, ok := opts["command"]; ok {
			topic = o.StringValue()
		}
		return command.Command{Kind: command.KindHelp, Output: command.Usage(b.cfg.CommandPrefix, topic)}, true
	}
	return command.Command{}, false
}

// InitSlashCommands registers /wordle and answers its interactions.
func (b *WordleBot) InitSlashCommands(discordSession *discordgo.Session) {
	discordSession.AddHandler(func(session *discordgo.Session, interaction *discordgo.InteractionCreate) {
		if interaction.Type != discordgo.InteractionApplicationCommand {
			return
		}
		cmd, ok := b.commandFromInteraction(interaction.ApplicationCommandData())
		if !ok {
			return
		}

		var (
			authorID string
			member   = interaction.Member
		)
		if member != nil && member.User != nil {
			authorID = member.User.ID
		} else if interaction.User != nil {
			authorID = interaction.User.ID
		}
		slog.Info("Slash command received", "channelID", interaction.ChannelID, "authorID", authorID, "kind", cmd.Kind)

		var resp response
		inv, err := b.invocationFor(session, interaction.GuildID, interaction.ChannelID, authorID, member, cmd.Kind == command.KindDelete)
		if err != nil {
			resp = b.failure(err)
		} else {
			ctx, cancel := context.WithTimeout(context.Background(), commandTimeout)
			resp = b.execute(ctx, inv, cmd)
			cancel()
		}

		data := &discordgo.InteractionResponseData{Content: resp.Text}
		if resp.Text == "" {
			data.Content = "Done."
			data.Flags = discordgo.MessageFlagsEphemeral
		}
		if resp.Error {
			data.Flags = discordgo.MessageFlagsEphemeral
		}
		err = session.InteractionRespond(interaction.Interaction, &discordgo.InteractionResponse{
			Type: discordgo.InteractionResponseChannelMessageWithSource,
			Data: data,
		})
		if err != nil {
			slog.With("error", err, "channelID", interaction.ChannelID).Error("Error responding to interaction")
		}
	})

	payload := []*discordgo.ApplicationCommand{wordleApplicationCommand()}
	_, err := discordSession.ApplicationCommandBulkOverwrite(discordSession.State.User.ID, b.cfg.GuildID, payload)
	if err != nil {
		slog.With("error", err).Error("Error initializing commands")
		return
	}
	slog.With("commandsCount", len(payload), "guildID", b.cfg.GuildID).Info("Initialized commands")
}
