package server

import (
	"github.com/rs/zerolog"
	"github.com/tickdeck/go-tickdeck/internal/session"
	"github.com/tickdeck/go-tickdeck/internal/session/adapters"
)

var adapterBuilders = map[string]func(log zerolog.Logger) session.EventAdapter{
	"log": func(log zerolog.Logger) session.EventAdapter {
		return adapters.NewLogAdapter(log)
	},
}
