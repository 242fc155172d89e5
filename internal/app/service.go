package app

import (
	"context"
	"database/sql"
	"encoding/hex"
	"encoding/json"
	stderrors "errors"
	"fmt"
	"log"
	"time"

	"github.com/google/uuid"
	"github.com/nats-io/nats-server/v2/server"
	"github.com/nats-io/nats.go"
	"golang.org/x/crypto/blake2b"

	"img2puz/internal/db"
	"img2puz/internal/errors"
)

// SubjectConversions carries one ConversionEvent per stored conversion.
const SubjectConversions = "conversions.created"

type Service struct {
	Queries *db.Queries

	db *sql.DB

	Options Options

	NatsServer *server.Server

	NC *nats.Conn

	StartTime int64
}

type ConversionEvent struct {
	ID        string `json:"id"`
	Title     string `json:"title"`
	Width     int    `json:"width"`
	Height    int    `json:"height"`
	ClueCount int    `json:"clue_count"`
}

func NewService(queries *db.Queries, dbConn *sql.DB, opts Options) *Service {
	s := &Service{
		Queries:   queries,
		db:        dbConn,
		Options:   opts,
		StartTime: time.Now().UnixMilli(),
	}

	s.startNats()

	return s
}

// Uptime is how long the service has been running.
func (s *Service) Uptime() time.Duration {
	return time.Since(time.UnixMilli(s.StartTime))
}

func (s *Service) startNats() {
	opts := &server.Options{
		Port:  -1,
		NoLog: true,
	}

	ns, err := server.NewServer(opts)
	if err != nil {
		log.Printf("Failed to create NATS server: %v", err)
		return
	}

	go ns.Start()

	if ns.ReadyForConnections(2 * time.Second) {
		log.Printf("NATS server ready at %s", ns.ClientURL())
		s.NatsServer = ns

		nc, err := nats.Connect(ns.ClientURL())
		if err == nil {
			log.Printf("NATS client connected")
			s.NC = nc
		} else {
			log.Printf("NATS client failed to connect: %v", err)
		}
	} else {
		log.Printf("NATS server failed to become ready")
	}
}

func (s *Service) Shutdown() {
	if s.NC != nil {
		s.NC.Close()
	}

	if s.NatsServer != nil {
		s.NatsServer.Shutdown()
		s.NatsServer.WaitForShutdown()
	}
}

// Digest is the hex BLAKE2b-256 of a puzzle file, used as its ETag.
func Digest(data []byte) string {
	sum := blake2b.Sum256(data)
	return hex.EncodeToString(sum[:])
}

// Convert generates a puzzle file, stores it in the history and announces it.
func (s *Service) Convert(ctx context.Context, req Request) (*db.Conversion, *Result, error) {
	res, err := Generate(req, s.Options)
	if err != nil {
		return nil, nil, err
	}

	conv, err := s.Queries.CreateConversion(ctx, db.CreateConversionParams{
		ID:        uuid.NewString(),
		Title:     req.Title,
		Author:    req.Author,
		Width:     int64(res.Width),
		Height:    int64(res.Height),
		ClueCount: int64(res.ClueCount),
		Digest:    Digest(res.Puz),
		Puz:       res.Puz,
		CreatedAt: time.Now().UTC(),
	})
	if err != nil {
		return nil, nil, errors.NewInternal(fmt.Errorf("storing conversion: %w", err))
	}

	log.Printf("Converted %dx%d puzzle %s with %d clues", res.Width, res.Height, conv.ID, res.ClueCount)
	s.BroadcastConversion(conv)

	return &conv, res, nil
}

func (s *Service) BroadcastConversion(conv db.Conversion) {
	if s.NC == nil {
		log.Printf("Broadcast skipped: NATS connection is nil")
		return
	}

	msg, err := json.Marshal(ConversionEvent{
		ID:        conv.ID,
		Title:     conv.Title,
		Width:     int(conv.Width),
		Height:    int(conv.Height),
		ClueCount: int(conv.ClueCount),
	})
	if err != nil {
		log.Printf("Broadcast skipped: %v", err)
		return
	}

	log.Printf("Publishing to NATS: %s -> %s", SubjectConversions, conv.ID)
	_ = s.NC.Publish(SubjectConversions, msg)
}

func (s *Service) GetConversion(ctx context.Context, id string) (*db.Conversion, error) {
	conv, err := s.Queries.GetConversion(ctx, id)
	if err != nil {
		if stderrors.Is(err, sql.ErrNoRows) {
			return nil, errors.NewNotFound(id)
		}
		return nil, errors.NewInternal(err)
	}
	return &conv, nil
}

func (s *Service) RecentConversions(ctx context.Context, limit int) ([]db.ListConversionsRow, error) {
	if limit < 1 || limit > 100 {
		limit = 20
	}
	rows, err := s.Queries.ListConversions(ctx, int64(limit))
	if err != nil {
		return nil, errors.NewInternal(err)
	}
	return rows, nil
}

// Ping checks the history database.
func (s *Service) Ping(ctx context.Context) error {
	return s.db.PingContext(ctx)
}
