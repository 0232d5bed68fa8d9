package main

import (
	"spacy/config"
	"spacy/di"
	"spacy/shared/logger"

	"github.com/rs/zerolog/log"
)

//	@title						Spacy API
//	@version					1.0
//	@description				Space booking marketplace: catalog, reservations and payments.
//	@BasePath					/
//	@securityDefinitions.apikey	BearerAuth
//	@in							header
//	@name						Authorization

func main() {
	cfg := config.Get()

	logger.InitLogger(cfg)

	logger.SetLogLevel(cfg)

	http, err := di.InitializeApplication()
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to initialize application")
	}

	http.Serve()
}
