package command

import (
	"waterlink/waterlink"

	"github.com/bwmarrin/discordgo"
)

type Command interface {
	Name() string
	Description() string
	Category() string
	Run(ctx interface{}) error
}

type SlashProvider interface {
	SlashDefinition() *discordgo.ApplicationCommand
}

type SlashContext struct {
	Session *discordgo.Session
	Event   *discordgo.InteractionCreate
	Conn    *waterlink.Connection
}
