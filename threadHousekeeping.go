package main

import (
	"log/slog"

	"github.com/bwmarrin/discordgo"
)

// InitThreadHousekeeping removes the "started a thread" notices Discord posts
// for the bot's own threads and logs the threads the bot joins.
func InitThreadHousekeeping(discordSession *discordgo.Session) {
	discordSession.AddHandler(func(session *discordgo.Session, message *discordgo.MessageCreate) {
		if !isOwnThreadNotice(session.State.User.ID, message.Message) {
			return
		}
		err := session.ChannelMessageDelete(message.ChannelID, message.ID)
		if err != nil {
			slog.With("error", err, "channelID", message.ChannelID).Error("Error deleting thread created message")
		}
	})

	discordSession.AddHandler(func(_ *discordgo.Session, thread *discordgo.ThreadCreate) {
		slog.Info("Joined thread", "threadID", thread.ID, "name", thread.Name, "parentID", thread.ParentID, "newlyCreated", thread.NewlyCreated)
	})
}

func isOwnThreadNotice(botID string, message *discordgo.Message) bool {
	if message == nil || message.Author == nil {
		return false
	}
	return message.Author.ID == botID && message.Type == discordgo.MessageTypeThreadCreated
}
