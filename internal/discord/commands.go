package discord

import (
	"fmt"
	"log"

	"waterlink/internal/command"

	"github.com/bwmarrin/discordgo"
)

// registerCommands replaces the application's slash commands with the local
// registry in one bulk overwrite. When GuildID is set in config the commands
// are scoped to that guild, which makes them visible immediately.
func (b *Bot) registerCommands() error {
	defs := buildCommandDefinitions()

	s := b.sessions[0]
	appID := s.State.User.ID

	created, err := s.ApplicationCommandBulkOverwrite(appID, b.cfg.GuildID, defs)
	if err != nil {
		return fmt.Errorf("failed to register slash commands: %w", err)
	}
	log.Printf("[INFO] Registered %d slash command(s)", len(created))
	return nil
}

// buildCommandDefinitions returns ApplicationCommand definitions for every
// registered command that has a slash surface.
func buildCommandDefinitions() []*discordgo.ApplicationCommand {
	var defs []*discordgo.ApplicationCommand
	for _, c := range command.All() {
		if p, ok := c.(command.SlashProvider); ok {
			if def := p.SlashDefinition(); def != nil {
				defs = append(defs, def)
			}
		}
	}
	return defs
}
