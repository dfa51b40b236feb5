package music

import (
	"fmt"

	"waterlink/waterlink"

	"github.com/bwmarrin/discordgo"
)

type VolumeCommand struct{}

func (c *VolumeCommand) Name() string        { return "music-volume" }
func (c *VolumeCommand) Description() string { return "Set the player volume (0-150)" }
func (c *VolumeCommand) Category() string    { return "🎵 Music" }

func (c *VolumeCommand) SlashDefinition() *discordgo.ApplicationCommand {
	minVolume := float64(waterlink.MinVolume)
	maxVolume := float64(waterlink.MaxVolume)
	return &discordgo.ApplicationCommand{
		Name:        c.Name(),
		Description: c.Description(),
		Type:        discordgo.ChatApplicationCommand,
		Options: []*discordgo.ApplicationCommandOption{
			{
				Type:        discordgo.ApplicationCommandOptionInteger,
				Name:        "level",
				Description: "Volume level",
				Required:    true,
				MinValue:    &minVolume,
				MaxValue:    maxVolume,
			},
		},
	}
}

func (c *VolumeCommand) Run(ctx interface{}) error {
	slash, err := slashOf(ctx)
	if err != nil {
		return err
	}
	p, err := guildPlayer(slash)
	if err != nil {
		return err
	}
	level := int(optionInt(slash.Event, "level", int64(p.Volume())))
	if err := p.SetVolume(level); err != nil {
		return err
	}
	return respond(slash, fmt.Sprintf("🔊 Volume set to %d.", p.Volume()))
}
