package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/joho/godotenv"

	"varal/internal/adapter/repo"
	"varal/internal/adoption"
	"varal/internal/airtable"
	"varal/internal/auth"
	"varal/internal/chatbot"
	"varal/internal/domain"
	"varal/internal/http/handlers"
	"varal/internal/http/httpapi"
	"varal/internal/infra"
	"varal/internal/mailer"
)

func main() {
	// .env é opcional; em produção as variáveis vêm do ambiente.
	_ = godotenv.Load()

	cfg, err := infra.LoadConfig()
	if err != nil {
		panic(err)
	}
	logger := infra.NewLogger(cfg.AppEnv)

	if !cfg.StoreConfigured() {
		logger.Warn().Msg("credenciais do Airtable ausentes; chamadas ao banco falharão")
	}
	if !cfg.MailerConfigured() {
		logger.Warn().Msg("credenciais do EmailJS ausentes; e-mails serão simulados")
	}

	store := airtable.NewClient(airtable.Options{
		APIKey:         cfg.AirtableAPIKey,
		BaseID:         cfg.AirtableBaseID,
		BaseURL:        cfg.AirtableURL,
		Logger:         &logger,
		RequestTimeout: cfg.StoreTimeout,
	})

	letters := repo.NewLetterRepository(store, cfg.Tables.Cartinhas)
	donations := repo.NewDonationRepository(store, cfg.Tables.Doacoes)
	points := repo.NewCollectionPointRepository(store, cfg.Tables.Pontos)
	events := repo.NewEventRepository(store, cfg.Tables.Eventos)
	users := repo.NewUserRepository(store, cfg.Tables.Usuarios)
	kb := repo.NewKnowledgeBaseRepository(store, cfg.Tables.Cloudinho)

	sender := mailer.NewSender(mailer.Options{
		ServiceID:  cfg.EmailJSServiceID,
		TemplateID: cfg.EmailJSTemplateID,
		UserID:     cfg.EmailJSUserID,
		BaseURL:    cfg.EmailJSURL,
		Logger:     &logger,
	})

	adoptions := adoption.NewService(adoption.Options{
		Letters:      letters,
		Donations:    donations,
		Notifier:     sender,
		Logger:       &logger,
		Status:       domain.DonationStatus(cfg.DonationStatus),
		DeliveryDays: cfg.DeliveryDays,
	})

	authService := auth.NewService(auth.Options{
		Users:  users,
		Secret: cfg.TokenSecret,
		Logger: &logger,
	})

	app := &handlers.App{
		Letters:   letters,
		Events:    events,
		Points:    points,
		Adoptions: adoptions,
		Auth:      authService,
		Bot:       chatbot.New(kb, &logger),
		Cfg:       cfg,
		Logger:    logger,
	}

	server := infra.NewHTTPServer(cfg, httpapi.NewRouter(app))

	go func() {
		logger.Info().Msgf("API ouvindo em :%s", cfg.Port)
		if err := server.Start(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Fatal().Err(err).Msg("servidor http falhou")
		}
	}()

	stop := make(chan os.Signal, 1)
	signal.Notify(stop, syscall.SIGINT, syscall.SIGTERM)
	<-stop

	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.HTTPIdleTimeout)
	defer cancel()
	if err := server.Shutdown(shutdownCtx); err != nil {
		logger.Error().Err(err).Msg("falha ao encerrar o servidor")
	}
	logger.Info().Msg("servidor encerrado")
}
