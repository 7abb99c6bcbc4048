package main

import (
	"flag"
	"os"

	"github.com/storyshare/storyshare/internal/logger"
	"github.com/storyshare/storyshare/internal/stubserver"
)

func main() {
	addr := flag.String("addr", ":8080", "listen address")
	secret := flag.String("secret", "stub-secret", "token signing secret")
	flag.Parse()

	log := logger.NewLogger("stub-server")

	srv := stubserver.New(*secret, log)
	if err := srv.ListenAndServe(*addr); err != nil {
		log.Error().Err(err).Msg("stub server stopped")
		os.Exit(1)
	}
}
