package fetchers

import (
	"fmt"
	"net/url"
	"strings"

	"github.com/malusev998/xrate"
)

type (
	DateFormat     string
	CredentialMode string
	PathStyle      string

	// URLBuilder appends a date segment and, optionally, the access key
	// to a base endpoint.
	URLBuilder struct {
		DateFormat       DateFormat
		Credential       CredentialMode
		PathStyle        PathStyle
		SegmentSubstring string
		AccessKey        string
		AccessKeyParam   string
	}
)

const (
	ZeroPadded DateFormat = "zero-padded"
	Raw        DateFormat = "raw"

	QueryParam   CredentialMode = "query-param"
	NoCredential CredentialMode = "none"

	FixedSegment       PathStyle = "fixed-segment"
	ConditionalSegment PathStyle = "conditional-on-host-substring"

	DefaultAccessKeyParam = "access_key"
)

func ParseDateFormat(str string) (DateFormat, error) {
	switch DateFormat(strings.ToLower(str)) {
	case ZeroPadded, "padded":
		return ZeroPadded, nil
	case Raw:
		return Raw, nil
	}

	return "", fmt.Errorf("%w: date format %q is not valid", xrate.ErrConfiguration, str)
}

func ParseCredentialMode(str string) (CredentialMode, error) {
	switch CredentialMode(strings.ToLower(str)) {
	case QueryParam:
		return QueryParam, nil
	case NoCredential, "":
		return NoCredential, nil
	}

	return "", fmt.Errorf("%w: credential mode %q is not valid", xrate.ErrConfiguration, str)
}

func ParsePathStyle(str string) (PathStyle, error) {
	switch PathStyle(strings.ToLower(str)) {
	case FixedSegment:
		return FixedSegment, nil
	case ConditionalSegment, "conditional":
		return ConditionalSegment, nil
	}

	return "", fmt.Errorf("%w: path style %q is not valid", xrate.ErrConfiguration, str)
}

func (b URLBuilder) segment(date xrate.Date) string {
	if b.DateFormat == Raw {
		return fmt.Sprintf("%d-%d-%d", date.Year, date.Month, date.Day)
	}

	return fmt.Sprintf("%d-%02d-%02d", date.Year, date.Month, date.Day)
}

func (b URLBuilder) Build(base string, date xrate.Date) (string, error) {
	raw := base

	switch b.PathStyle {
	case ConditionalSegment:
		if b.SegmentSubstring != "" && strings.Contains(base, b.SegmentSubstring) {
			raw += b.segment(date)
		}
	default:
		raw += b.segment(date)
	}

	u, err := url.Parse(raw)
	if err != nil {
		return "", fmt.Errorf("%w: invalid URL %q: %v", xrate.ErrConfiguration, raw, err)
	}

	if b.Credential == QueryParam {
		if b.AccessKey == "" {
			return "", fmt.Errorf("%w: access key is required for query credentials", xrate.ErrConfiguration)
		}

		param := b.AccessKeyParam
		if param == "" {
			param = DefaultAccessKeyParam
		}

		q := u.Query()
		q.Set(param, b.AccessKey)
		u.RawQuery = q.Encode()
	}

	return u.String(), nil
}

// Redact hides every query value so URLs can be logged.
func Redact(rawURL string) string {
	u, err := url.Parse(rawURL)
	if err != nil {
		return "<invalid url>"
	}

	q := u.Query()
	for key := range q {
		q.Set(key, "xxxxx")
	}
	u.RawQuery = q.Encode()

	return u.String()
}
