package music

import (
	"fmt"

	"github.com/bwmarrin/discordgo"
)

type SeekCommand struct{}

func (c *SeekCommand) Name() string        { return "music-seek" }
func (c *SeekCommand) Description() string { return "Jump to a position in the current track" }
func (c *SeekCommand) Category() string    { return "🎵 Music" }

func (c *SeekCommand) SlashDefinition() *discordgo.ApplicationCommand {
	zero := float64(0)
	return &discordgo.ApplicationCommand{
		Name:        c.Name(),
		Description: c.Description(),
		Type:        discordgo.ChatApplicationCommand,
		Options: []*discordgo.ApplicationCommandOption{
			{
				Type:        discordgo.ApplicationCommandOptionInteger,
				Name:        "seconds",
				Description: "Position in seconds from the start of the track",
				Required:    true,
				MinValue:    &zero,
			},
		},
	}
}

func (c *SeekCommand) Run(ctx interface{}) error {
	slash, err := slashOf(ctx)
	if err != nil {
		return err
	}
	p, err := guildPlayer(slash)
	if err != nil {
		return err
	}
	if p.Track() == nil {
		return respond(slash, "Nothing is loaded.")
	}
	seconds := optionInt(slash.Event, "seconds", 0)
	if err := p.Seek(float64(seconds)); err != nil {
		return err
	}
	return respond(slash, fmt.Sprintf("⏩ Jumped to %ds.", seconds))
}
