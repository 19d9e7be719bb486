// Package server is the operator HTTP API over the persisted reconciliation
// data.
package server

// Server aggregates the entity-specific HTTP servers.
type Server struct {
	MarketServer
}

func NewServer(
	marketServer MarketServer,
) Server {
	return Server{
		MarketServer: marketServer,
	}
}
