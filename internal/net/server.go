package net

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net"

	"go.uber.org/zap"

	"github.com/peterkuimelis/pokecg/internal/game"
	"github.com/peterkuimelis/pokecg/internal/match"
)

// Server hosts a game between a terminal player and the CPU. The match and
// the REPL talk over an in-memory pipe with the same messages a websocket
// client gets.
type Server struct {
	Engine *game.Engine
	CPU    match.Controller
	Config match.Config

	In     io.Reader
	Out    io.Writer
	Logger *zap.Logger
}

// Run plays one game and returns when it is over or the player quits.
func (s *Server) Run(ctx context.Context) error {
	logger := s.Logger
	if logger == nil {
		logger = zap.NewNop()
	}
	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	clientConn, serverConn := net.Pipe()
	defer clientConn.Close()
	defer serverConn.Close()

	human := NewStreamController(serverConn, game.Player)
	m := match.New(s.Engine, s.Config, human, s.CPU)

	errCh := make(chan error, 2)
	go func() {
		client := NewClient(clientConn, s.In, s.Out)
		err := client.RunREPL(ctx)
		// Unblocks the match if the player left early.
		clientConn.Close()
		errCh <- err
	}()

	go func() {
		winner, err := m.Run(ctx)
		if err != nil {
			serverConn.Close()
			errCh <- fmt.Errorf("match: %w", err)
			return
		}
		logger.Info("game finished", zap.Stringer("winner", winner))
		if err := human.SendGameOver(s.Engine.State); err != nil && !errors.Is(err, io.ErrClosedPipe) {
			errCh <- err
			return
		}
		errCh <- nil
	}()

	// Each side closes its end when it stops, so both goroutines finish.
	var result error
	for range 2 {
		err := <-errCh
		if errors.Is(err, ErrQuit) {
			return nil
		}
		if result == nil {
			result = err
		}
	}
	return result
}
