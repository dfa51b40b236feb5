package music

import "github.com/bwmarrin/discordgo"

type StopCommand struct{}

func (c *StopCommand) Name() string        { return "music-stop" }
func (c *StopCommand) Description() string { return "Stop playback and leave the voice channel" }
func (c *StopCommand) Category() string    { return "🎵 Music" }

func (c *StopCommand) SlashDefinition() *discordgo.ApplicationCommand {
	return &discordgo.ApplicationCommand{
		Name:        c.Name(),
		Description: c.Description(),
		Type:        discordgo.ChatApplicationCommand,
	}
}

func (c *StopCommand) Run(ctx interface{}) error {
	slash, err := slashOf(ctx)
	if err != nil {
		return err
	}
	p, err := guildPlayer(slash)
	if err != nil {
		return err
	}
	if err := p.Stop(); err != nil {
		return err
	}
	if p.Connected() {
		if err := p.Disconnect(); err != nil {
			return err
		}
	}
	return respond(slash, "⏹️ Stopped and left the channel.")
}
