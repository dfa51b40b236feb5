package music

import "github.com/bwmarrin/discordgo"

type PauseCommand struct{}

func (c *PauseCommand) Name() string        { return "music-pause" }
func (c *PauseCommand) Description() string { return "Pause playback" }
func (c *PauseCommand) Category() string    { return "🎵 Music" }

func (c *PauseCommand) SlashDefinition() *discordgo.ApplicationCommand {
	return &discordgo.ApplicationCommand{
		Name:        c.Name(),
		Description: c.Description(),
		Type:        discordgo.ChatApplicationCommand,
	}
}

func (c *PauseCommand) Run(ctx interface{}) error {
	slash, err := slashOf(ctx)
	if err != nil {
		return err
	}
	p, err := guildPlayer(slash)
	if err != nil {
		return err
	}
	if p.Paused() {
		return respond(slash, "Already paused.")
	}
	if err := p.SetPause(true); err != nil {
		return err
	}
	return respond(slash, "⏸️ Paused.")
}

type ResumeCommand struct{}

func (c *ResumeCommand) Name() string        { return "music-resume" }
func (c *ResumeCommand) Description() string { return "Resume paused playback" }
func (c *ResumeCommand) Category() string    { return "🎵 Music" }

func (c *ResumeCommand) SlashDefinition() *discordgo.ApplicationCommand {
	return &discordgo.ApplicationCommand{
		Name:        c.Name(),
		Description: c.Description(),
		Type:        discordgo.ChatApplicationCommand,
	}
}

func (c *ResumeCommand) Run(ctx interface{}) error {
	slash, err := slashOf(ctx)
	if err != nil {
		return err
	}
	p, err := guildPlayer(slash)
	if err != nil {
		return err
	}
	if !p.Paused() {
		return respond(slash, "Nothing is paused.")
	}
	if err := p.SetPause(false); err != nil {
		return err
	}
	return respond(slash, "▶️ Resumed.")
}
