package handler

import (
	"net/http"
	"sync"

	"spacy/config"
	"spacy/di"
	"spacy/shared/logger"
	transport "spacy/transport/http"
	"spacy/transport/http/response"
)

var (
	app     *transport.HTTP
	appErr  error
	appOnce sync.Once
)

// Handler is the serverless entrypoint. The application graph is built once per instance.
func Handler(w http.ResponseWriter, r *http.Request) {
	r.RequestURI = r.URL.String()

	appOnce.Do(func() {
		cfg := config.Get()

		logger.InitLogger(cfg)

		logger.SetLogLevel(cfg)

		app, appErr = di.InitializeApplication()
	})

	if appErr != nil {
		response.WithError(w, appErr)

		return
	}

	app.ServeHTTP(w, r)
}
