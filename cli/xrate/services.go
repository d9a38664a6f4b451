package main

import (
	"context"
	"errors"

	"github.com/malusev998/xrate"
	"github.com/malusev998/xrate/cli/cmd"
	"github.com/malusev998/xrate/config"
	"github.com/malusev998/xrate/fetchers"
	"github.com/malusev998/xrate/services"
)

func closeStorages(storages []xrate.Storage) func() error {
	return func() error {
		errs := make([]error, 0, len(storages))

		for _, s := range storages {
			errs = append(errs, s.Close())
		}

		return errors.Join(errs...)
	}
}

func createReader(cfg *config.Config, options cmd.BuildOptions) (*services.RateReader, error) {
	urls, err := fetchers.NewURLBuilder(cfg.Provider, cfg.URL)
	if err != nil {
		return nil, err
	}

	return services.NewRateReader(
		cfg.BaseURL,
		urls,
		fetchers.NewHTTPFetcher(cfg.HTTPTimeout),
		fetchers.JSONParser{},
		options.Logger,
	), nil
}

func build(ctx context.Context, options cmd.BuildOptions) (*cmd.App, error) {
	v, err := config.New(options.ConfigFile)
	if err != nil {
		return nil, err
	}

	cfg, err := config.Load(v)
	if err != nil {
		return nil, err
	}

	reader, err := createReader(cfg, options)
	if err != nil {
		return nil, err
	}

	app := &cmd.App{
		Provider:   cfg.Provider,
		Currencies: cfg.Currencies,
		Reader:     reader,
	}

	if !options.WithStorage {
		return app, nil
	}

	storages, err := cfg.Storages(ctx)
	if err != nil {
		return nil, err
	}

	app.Service = services.Service{
		Reader:   reader,
		Provider: cfg.Provider,
		Storage:  storages,
	}
	app.Conversion = services.ConversionService{Storages: storages}
	app.Close = closeStorages(storages)

	return app, nil
}
