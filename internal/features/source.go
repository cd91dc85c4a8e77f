package features

import (
	"net/url"
	"strings"

	"github.com/rotisserie/eris"
)

// DefaultSource is the public GBR complete features dataset.
const DefaultSource = "s3://rimrep-data-public/gbrmpa-complete-gbr-features/data.parquet"

// DefaultRegion is the region of the bucket holding DefaultSource.
const DefaultRegion = "ap-southeast-2"

// Source is a resolved dataset location. Exactly one of URL and Path is set.
type Source struct {
	Location string
	URL      string
	Path     string
}

// Remote reports whether the source must be downloaded.
func (s Source) Remote() bool { return s.URL != "" }

// ResolveSource maps a dataset location to something readable without
// credentials. s3:// locations become virtual-hosted HTTPS URLs in region;
// http(s):// URLs pass through; file:// URLs and bare paths are local.
func ResolveSource(location, region string) (Source, error) {
	location = strings.TrimSpace(location)
	if location == "" {
		return Source{}, eris.New("features: empty source location")
	}

	u, err := url.Parse(location)
	if err != nil {
		return Source{}, eris.Wrapf(err, "features: parse source %q", location)
	}

	switch strings.ToLower(u.Scheme) {
	case "s3":
		bucket := u.Host
		key := strings.TrimPrefix(u.Path, "/")
		if bucket == "" || key == "" {
			return Source{}, eris.Errorf("features: s3 source %q needs a bucket and key", location)
		}
		host := bucket + ".s3.amazonaws.com"
		if region != "" {
			host = bucket + ".s3." + region + ".amazonaws.com"
		}
		httpsURL := url.URL{Scheme: "https", Host: host, Path: "/" + key}
		return Source{Location: location, URL: httpsURL.String()}, nil

	case "http", "https":
		return Source{Location: location, URL: location}, nil

	case "file":
		if u.Path == "" {
			return Source{}, eris.Errorf("features: file source %q has no path", location)
		}
		return Source{Location: location, Path: u.Path}, nil

	case "":
		return Source{Location: location, Path: location}, nil

	default:
		return Source{}, eris.Errorf("features: unsupported source scheme %q", u.Scheme)
	}
}
