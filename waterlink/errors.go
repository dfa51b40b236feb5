package waterlink

import "errors"

var (
	// ErrDisconnected is returned when a command is sent or a frame is read
	// without a live control socket, or when the node closes the socket.
	ErrDisconnected = errors.New("waterlink: node connection is down")

	// ErrInvalidGuildID is returned by player lookups for identifiers that
	// are not decimal snowflakes.
	ErrInvalidGuildID = errors.New("waterlink: guild id is not a valid snowflake")
)
