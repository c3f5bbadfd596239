package web

import (
	"context"
	"embed"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"math/rand/v2"
	"net"
	"net/http"
	"time"

	"github.com/coder/websocket"
	"go.uber.org/zap"

	"github.com/peterkuimelis/pokecg/internal/cpu"
	"github.com/peterkuimelis/pokecg/internal/game"
	"github.com/peterkuimelis/pokecg/internal/log"
	"github.com/peterkuimelis/pokecg/internal/match"
	pokenet "github.com/peterkuimelis/pokecg/internal/net"
)

//go:embed static
var staticFiles embed.FS

// Options configures the games the server hosts.
type Options struct {
	Catalog    *game.Catalog // nil uses the embedded catalog
	Difficulty float64
	MaxTurns   int
	ThinkDelay time.Duration
	Logger     *zap.Logger
}

// Server is the pokecg web UI server.
type Server struct {
	opts   Options
	logger *zap.Logger
	mux    *http.ServeMux
}

// NewServer creates a new web server.
func NewServer(opts Options) *Server {
	if opts.Catalog == nil {
		opts.Catalog = game.DefaultCatalog()
	}
	logger := opts.Logger
	if logger == nil {
		logger = zap.NewNop()
	}
	s := &Server{
		opts:   opts,
		logger: logger,
		mux:    http.NewServeMux(),
	}
	s.setupRoutes()
	return s
}

func (s *Server) setupRoutes() {
	staticFS, _ := fs.Sub(staticFiles, "static")

	s.mux.HandleFunc("GET /", func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/" {
			http.NotFound(w, r)
			return
		}
		w.Header().Set("Content-Type", "text/html; charset=utf-8")
		f, err := staticFS.Open("index.html")
		if err != nil {
			http.Error(w, "not found", http.StatusNotFound)
			return
		}
		defer f.Close()
		io.Copy(w, f.(io.Reader))
	})

	s.mux.Handle("GET /static/", http.StripPrefix("/static/", http.FileServer(http.FS(staticFS))))

	s.mux.HandleFunc("GET /api/cards", s.handleCards)
	s.mux.HandleFunc("GET /api/decks", s.handleDecks)

	s.mux.HandleFunc("GET /ws", s.handleWebSocket)
}

// Handler returns the server's routes.
func (s *Server) Handler() http.Handler {
	return s.mux
}

// handleWebSocket plays one game per connection. The browser speaks the
// same JSON messages as the terminal client, one message per frame.
func (s *Server) handleWebSocket(w http.ResponseWriter, r *http.Request) {
	wsConn, err := websocket.Accept(w, r, &websocket.AcceptOptions{
		InsecureSkipVerify: true, // Allow connections from any origin
	})
	if err != nil {
		s.logger.Warn("websocket accept", zap.Error(err))
		return
	}
	defer wsConn.CloseNow()

	ctx := r.Context()
	conn := websocket.NetConn(ctx, wsConn, websocket.MessageText)
	human := pokenet.NewStreamController(conn, game.Player)

	start, err := human.Recv()
	if err != nil {
		s.logger.Warn("websocket read start", zap.Error(err))
		return
	}
	cfg, difficulty, err := s.matchConfig(start)
	if err != nil {
		_ = human.SendError(err)
		wsConn.Close(websocket.StatusPolicyViolation, "expected start message")
		return
	}

	logger := s.logger.With(zap.String("remote", r.RemoteAddr))
	cfg.Logger = logger.Named("match")
	e := game.NewEngine(game.EngineConfig{
		Catalog:  s.opts.Catalog,
		Logger:   logger.Named("engine"),
		EventLog: log.NewZapLogger(logger.Named("events")),
	})
	agent := cpu.New(difficulty, nil, logger.Named("cpu"))
	cpuCtrl := match.NewCPUController(game.CPU, e, agent, match.NewPacer(s.opts.ThinkDelay), logger)

	m := match.New(e, cfg, human, cpuCtrl)
	winner, err := m.Run(ctx)
	if err != nil {
		if !errors.Is(err, context.Canceled) {
			logger.Warn("match aborted", zap.Error(err))
			_ = human.SendError(err)
		}
		return
	}
	logger.Info("game finished", zap.Stringer("winner", winner), zap.String("result", e.State.Result))
	if err := human.SendGameOver(e.State); err != nil {
		logger.Warn("send game over", zap.Error(err))
		return
	}
	wsConn.Close(websocket.StatusNormalClosure, "game ended")
}

// matchConfig validates the start handshake.
func (s *Server) matchConfig(start pokenet.ClientMessage) (match.Config, float64, error) {
	if start.Type != "start" {
		return match.Config{}, 0, fmt.Errorf("expected start message, got %q", start.Type)
	}
	deck, err := s.deck(start.Deck)
	if err != nil {
		return match.Config{}, 0, err
	}
	cpuDeck := game.TypeNone
	if start.CPUDeck != "" {
		if cpuDeck, err = s.deck(start.CPUDeck); err != nil {
			return match.Config{}, 0, err
		}
	} else {
		decks := s.opts.Catalog.Decks()
		cpuDeck = decks[rand.IntN(len(decks))].Type
	}
	difficulty := s.opts.Difficulty
	if start.Difficulty != nil {
		difficulty = *start.Difficulty
		if difficulty < 0 || difficulty > 1 {
			return match.Config{}, 0, fmt.Errorf("difficulty must be between 0 and 1, got %g", difficulty)
		}
	}
	return match.Config{
		PlayerDeck: deck,
		CPUDeck:    cpuDeck,
		MaxTurns:   s.opts.MaxTurns,
	}, difficulty, nil
}

func (s *Server) deck(name string) (game.ElementType, error) {
	t, err := game.ParseElementType(name)
	if err != nil {
		return game.TypeNone, err
	}
	if _, ok := s.opts.Catalog.Deck(t); !ok {
		return game.TypeNone, fmt.Errorf("no deck of type %q", name)
	}
	return t, nil
}

// ListenAndServe serves until ctx is cancelled.
func (s *Server) ListenAndServe(ctx context.Context, addr string) error {
	srv := &http.Server{
		Addr:              addr,
		Handler:           s.mux,
		ReadHeaderTimeout: 10 * time.Second,
		BaseContext:       func(net.Listener) context.Context { return ctx },
	}
	errCh := make(chan error, 1)
	go func() {
		errCh <- srv.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := srv.Shutdown(shutdownCtx); err != nil {
			return fmt.Errorf("shutdown: %w", err)
		}
		return nil
	}
}
