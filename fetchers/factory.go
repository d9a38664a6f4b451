package fetchers

import (
	"fmt"

	"github.com/malusev998/xrate"
)

const DefaultSegmentSubstring = "faculty"

// URLConfig overrides the preset of a provider. Zero values keep the preset.
type URLConfig struct {
	DateFormat       DateFormat
	Credential       CredentialMode
	PathStyle        PathStyle
	SegmentSubstring string
	AccessKey        string
	AccessKeyParam   string
}

func preset(provider xrate.Provider) (URLBuilder, error) {
	switch provider {
	case xrate.FixerProvider:
		return URLBuilder{
			DateFormat:     ZeroPadded,
			Credential:     QueryParam,
			PathStyle:      FixedSegment,
			AccessKeyParam: DefaultAccessKeyParam,
		}, nil
	case xrate.MirrorProvider:
		return URLBuilder{
			DateFormat:       Raw,
			Credential:       NoCredential,
			PathStyle:        ConditionalSegment,
			SegmentSubstring: DefaultSegmentSubstring,
		}, nil
	}

	return URLBuilder{}, fmt.Errorf("%w: provider %q has no URL preset", xrate.ErrConfiguration, provider)
}

func NewURLBuilder(provider xrate.Provider, config URLConfig) (URLBuilder, error) {
	b, err := preset(provider)
	if err != nil {
		return URLBuilder{}, err
	}

	if config.DateFormat != "" {
		b.DateFormat = config.DateFormat
	}

	if config.Credential != "" {
		b.Credential = config.Credential
	}

	if config.PathStyle != "" {
		b.PathStyle = config.PathStyle
	}

	if config.SegmentSubstring != "" {
		b.SegmentSubstring = config.SegmentSubstring
	}

	if config.AccessKeyParam != "" {
		b.AccessKeyParam = config.AccessKeyParam
	}

	b.AccessKey = config.AccessKey

	if b.Credential == QueryParam && b.AccessKey == "" {
		return URLBuilder{}, fmt.Errorf("%w: provider %s needs an access key", xrate.ErrConfiguration, provider)
	}

	return b, nil
}

// NeedsAccessKey reports whether the resolved builder for provider would
// send a credential.
func NeedsAccessKey(provider xrate.Provider, config URLConfig) bool {
	if config.Credential != "" {
		return config.Credential == QueryParam
	}

	b, err := preset(provider)

	return err == nil && b.Credential == QueryParam
}
