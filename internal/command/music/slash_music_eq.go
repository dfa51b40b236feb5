package music

import (
	"fmt"

	"waterlink/waterlink"

	"github.com/bwmarrin/discordgo"
)

type EqualizerCommand struct{}

func (c *EqualizerCommand) Name() string        { return "music-eq" }
func (c *EqualizerCommand) Description() string { return "Apply a bassboost preset or reset the equalizer" }
func (c *EqualizerCommand) Category() string    { return "🎵 Music" }

func (c *EqualizerCommand) SlashDefinition() *discordgo.ApplicationCommand {
	return &discordgo.ApplicationCommand{
		Name:        c.Name(),
		Description: c.Description(),
		Type:        discordgo.ChatApplicationCommand,
		Options: []*discordgo.ApplicationCommandOption{
			{
				Type:        discordgo.ApplicationCommandOptionString,
				Name:        "preset",
				Description: "Bassboost preset",
				Required:    true,
				Choices: []*discordgo.ApplicationCommandOptionChoice{
					{Name: "off", Value: "off"},
					{Name: "low", Value: "low"},
					{Name: "medium", Value: "medium"},
					{Name: "high", Value: "high"},
					{Name: "insane", Value: "insane"},
					{Name: "ultra", Value: "ultra"},
				},
			},
		},
	}
}

func (c *EqualizerCommand) Run(ctx interface{}) error {
	slash, err := slashOf(ctx)
	if err != nil {
		return err
	}
	p, err := guildPlayer(slash)
	if err != nil {
		return err
	}

	preset := optionString(slash.Event, "preset")
	if preset == "off" {
		if err := p.ResetEqualizer(); err != nil {
			return err
		}
		return respond(slash, "🎚️ Equalizer reset.")
	}

	gains := waterlink.Bassboost(waterlink.BassboostLevel(preset))
	if err := p.SetGains(gains...); err != nil {
		return err
	}
	return respond(slash, fmt.Sprintf("🎚️ Bassboost set to %s.", preset))
}
