package config

import (
	"context"
	"fmt"
	"path/filepath"
	"strings"
	"time"

	"github.com/spf13/viper"

	"github.com/malusev998/xrate"
	"github.com/malusev998/xrate/fetchers"
	"github.com/malusev998/xrate/storage"
)

const EnvPrefix = "XRATE"

type (
	StorageConfig map[storage.Provider]interface{}
	Config        struct {
		Provider      xrate.Provider
		BaseURL       string
		URL           fetchers.URLConfig
		HTTPTimeout   time.Duration
		Storage       []storage.Provider
		StorageConfig StorageConfig
		Currencies    []string
	}
)

// New returns a viper instance reading file (when not empty) and XRATE_*
// environment variables, with every default set.
func New(file string) (*viper.Viper, error) {
	v := viper.New()

	v.SetDefault("provider", string(xrate.FixerProvider))
	v.SetDefault("base_url", "http://data.fixer.io/api/")
	v.SetDefault("url.access_key_param", fetchers.DefaultAccessKeyParam)
	v.SetDefault("access_key.env", DefaultAccessKeyEnv)
	v.SetDefault("access_key.file", DefaultAccessKeyFile)
	v.SetDefault("access_key.name", DefaultAccessKeyName)
	v.SetDefault("http.timeout", fetchers.DefaultTimeout)
	v.SetDefault("migrate", false)
	v.SetDefault("databases.mysql.table", "rates")
	v.SetDefault("databases.mongodb.db", "xrate")
	v.SetDefault("databases.mongodb.collection", "rates")

	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if file == "" {
		return v, nil
	}

	absolutePath, err := filepath.Abs(file)
	if err != nil {
		return nil, err
	}

	v.SetConfigFile(absolutePath)

	if err := v.ReadInConfig(); err != nil {
		return nil, fmt.Errorf("%w: reading %s: %v", xrate.ErrConfiguration, absolutePath, err)
	}

	return v, nil
}

func urlConfig(v *viper.Viper) (fetchers.URLConfig, error) {
	var (
		c   fetchers.URLConfig
		err error
	)

	if str := v.GetString("url.date_format"); str != "" {
		if c.DateFormat, err = fetchers.ParseDateFormat(str); err != nil {
			return c, err
		}
	}

	if str := v.GetString("url.credential"); str != "" {
		if c.Credential, err = fetchers.ParseCredentialMode(str); err != nil {
			return c, err
		}
	}

	if str := v.GetString("url.path_style"); str != "" {
		if c.PathStyle, err = fetchers.ParsePathStyle(str); err != nil {
			return c, err
		}
	}

	c.SegmentSubstring = v.GetString("url.segment_substring")
	c.AccessKeyParam = v.GetString("url.access_key_param")

	return c, nil
}

// Load resolves the whole configuration. The access key is only looked up
// when the selected URL policy sends one.
func Load(v *viper.Viper) (*Config, error) {
	provider, err := xrate.ConvertToProviderFromString(v.GetString("provider"))
	if err != nil {
		return nil, fmt.Errorf("%w: %v", xrate.ErrConfiguration, err)
	}

	baseURL := v.GetString("base_url")
	if baseURL == "" {
		return nil, fmt.Errorf("%w: base_url is empty", xrate.ErrConfiguration)
	}

	urls, err := urlConfig(v)
	if err != nil {
		return nil, err
	}

	if fetchers.NeedsAccessKey(provider, urls) {
		urls.AccessKey, err = LoadAccessKey(AccessKeySource{
			Env:  v.GetString("access_key.env"),
			File: v.GetString("access_key.file"),
			Name: v.GetString("access_key.name"),
		})

		if err != nil {
			return nil, err
		}
	}

	storages, err := storage.ConvertToProvidersFromStringSlice(v.GetStringSlice("storage"))
	if err != nil {
		return nil, fmt.Errorf("%w: %v", xrate.ErrConfiguration, err)
	}

	base := storage.BaseConfig{Migrate: v.GetBool("migrate")}

	return &Config{
		Provider:    provider,
		BaseURL:     baseURL,
		URL:         urls,
		HTTPTimeout: v.GetDuration("http.timeout"),
		Storage:     storages,
		StorageConfig: StorageConfig{
			storage.MySQL: storage.MySQLConfig{
				BaseConfig:       base,
				ConnectionString: storage.DSN(
					v.GetString("databases.mysql.user"),
					v.GetString("databases.mysql.password"),
					v.GetString("databases.mysql.addr"),
					v.GetString("databases.mysql.db"),
				),
				TableName: v.GetString("databases.mysql.table"),
			},
			storage.MongoDB: storage.MongoDBConfig{
				BaseConfig:       base,
				ConnectionString: v.GetString("databases.mongodb.uri"),
				Database:         v.GetString("databases.mongodb.db"),
				Collection:       v.GetString("databases.mongodb.collection"),
			},
		},
		Currencies: v.GetStringSlice("currencies"),
	}, nil
}

func (c *Config) Storages(ctx context.Context) ([]xrate.Storage, error) {
	storages := make([]xrate.Storage, 0, len(c.Storage))

	for _, s := range c.Storage {
		sc, ok := c.StorageConfig[s]
		if !ok {
			return nil, fmt.Errorf("storage %s does not exist", s)
		}

		st, err := storage.NewStorage(ctx, s, sc)
		if err != nil {
			for _, opened := range storages {
				_ = opened.Close()
			}

			return nil, err
		}

		storages = append(storages, st)
	}

	return storages, nil
}
