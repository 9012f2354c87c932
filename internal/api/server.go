package api

import "github.com/Dominion116/StyleHub/internal/api/handler"

type Server struct {
	MarketHandler *handler.MarketHandler
}

func NewServer(
	marketHandler *handler.MarketHandler,
) *Server {
	return &Server{
		MarketHandler: marketHandler,
	}
}
