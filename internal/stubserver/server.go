// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 StoryShare Authors

// Package stubserver implements a self-contained fake of the remote story
// service for local development and offline testing. It speaks the same REST
// contract the client adapter expects: JSON envelopes with an error flag,
// bearer-token authentication, and a multipart story upload endpoint.
// Everything lives in memory and is lost on restart.
package stubserver

import (
	"fmt"
	"net/http"
	"sync"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/golang-jwt/jwt/v5"

	"github.com/storyshare/storyshare/internal/logger"
	"github.com/storyshare/storyshare/models"
)

type account struct {
	id       string
	name     string
	email    string
	password string
}

// Server holds the in-memory state of the fake story service.
type Server struct {
	secret []byte
	logger *logger.Logger

	mu            sync.Mutex
	accounts      map[string]account // keyed by email
	stories       []models.Story
	subscriptions map[string]models.PushSubscription // keyed by endpoint
	nextUserID    int
	nextStoryID   int
}

// New creates a Server with a few seeded stories so a fresh client has
// something to browse.
func New(secret string, log *logger.Logger) *Server {
	s := &Server{
		secret:        []byte(secret),
		logger:        log,
		accounts:      make(map[string]account),
		subscriptions: make(map[string]models.PushSubscription),
		nextUserID:    1,
		nextStoryID:   1,
	}
	s.seed()
	return s
}

func (s *Server) seed() {
	lat, lon := -7.9425, 112.9530
	for _, st := range []models.Story{
		{
			Name:        "Dinda",
			Description: "Matahari terbit di Bromo pagi ini",
			PhotoURL:    "https://placekitten.com/640/480",
			Lat:         &lat,
			Lon:         &lon,
		},
		{
			Name:        "Raka",
			Description: "Kopi sore di tepi sawah",
			PhotoURL:    "https://placekitten.com/641/480",
		},
	} {
		st.ID = fmt.Sprintf("story-%d", s.nextStoryID)
		st.CreatedAt = time.Now().UTC()
		s.nextStoryID++
		s.stories = append(s.stories, st)
	}
}

// Init builds the router, mirroring the real service's /v1 prefix.
func (s *Server) Init() *chi.Mux {
	router := chi.NewRouter()
	router.Use(middleware.Recoverer)
	router.Use(s.logging)

	router.Route("/v1", func(r chi.Router) {
		// routes without authorization
		r.Group(func(r chi.Router) {
			r.Post("/register", s.register)
			r.Post("/login", s.login)
		})

		r.Group(func(r chi.Router) {
			r.Use(s.auth)
			r.Get("/stories", s.listStories)
			r.Post("/stories", s.createStory)
			r.Post("/notifications/subscribe", s.subscribe)
			r.Delete("/notifications/subscribe", s.unsubscribe)
		})
	})

	return router
}

func (s *Server) issueToken(userID string) (string, error) {
	claims := jwt.RegisteredClaims{
		Subject:  userID,
		IssuedAt: jwt.NewNumericDate(time.Now()),
	}
	return jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(s.secret)
}

func (s *Server) parseToken(tokenString string) (string, error) {
	token, err := jwt.ParseWithClaims(tokenString, &jwt.RegisteredClaims{}, func(t *jwt.Token) (any, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method %v", t.Header["alg"])
		}
		return s.secret, nil
	})
	if err != nil {
		return "", err
	}
	return token.Claims.GetSubject()
}

// ListenAndServe runs the stub service on addr until the process exits.
func (s *Server) ListenAndServe(addr string) error {
	srv := &http.Server{
		Addr:              addr,
		Handler:           s.Init(),
		ReadHeaderTimeout: 5 * time.Second,
	}
	s.logger.Info().Str("addr", addr).Msg("stub story service listening")
	return srv.ListenAndServe()
}
