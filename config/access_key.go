package config

import (
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/spf13/viper"

	"github.com/malusev998/xrate"
)

const (
	DefaultAccessKeyEnv  = "XRATE_FIXER_ACCESS_KEY"
	DefaultAccessKeyFile = "etc/access_keys.properties"
	DefaultAccessKeyName = "fixer_io"
)

var (
	ErrAccessKeyFile    = fmt.Errorf("%w: cannot read access keys file", xrate.ErrConfiguration)
	ErrAccessKeyMissing = fmt.Errorf("%w: access key is not set", xrate.ErrConfiguration)
)

// AccessKeySource says where the access key lives. The environment
// variable wins over the properties file.
type AccessKeySource struct {
	Env  string
	File string
	Name string
}

func (s AccessKeySource) withDefaults() AccessKeySource {
	if s.Env == "" {
		s.Env = DefaultAccessKeyEnv
	}

	if s.File == "" {
		s.File = DefaultAccessKeyFile
	}

	if s.Name == "" {
		s.Name = DefaultAccessKeyName
	}

	return s
}

func LoadAccessKey(source AccessKeySource) (string, error) {
	source = source.withDefaults()

	if key := strings.TrimSpace(os.Getenv(source.Env)); key != "" {
		return key, nil
	}

	properties := viper.New()
	properties.SetConfigFile(source.File)
	properties.SetConfigType("properties")

	if err := properties.ReadInConfig(); err != nil {
		var pathErr *os.PathError
		if errors.As(err, &pathErr) {
			return "", fmt.Errorf("%w: couldn't open %s; have you renamed the sample file %s.sample?", ErrAccessKeyFile, source.File, source.File)
		}

		return "", fmt.Errorf("%w: %s: %v", ErrAccessKeyFile, source.File, err)
	}

	key := strings.TrimSpace(properties.GetString(source.Name))
	if key == "" {
		return "", fmt.Errorf("%w: key %s is not present in %s and %s is empty", ErrAccessKeyMissing, source.Name, source.File, source.Env)
	}

	return key, nil
}
