// Package version holds the bot's identity.
package version

const (
	AppName    = "waterlink"
	AppVersion = "0.1.0"
)
