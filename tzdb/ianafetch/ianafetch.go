// Package ianafetch downloads tzdb releases distributed by IANA and turns
// them into a zone registry via tzload.
//
// Releases are downloaded from the [IANA data server]. Clients are advised to
// store the [ETags] returned by this package and pass them to subsequent
// calls to avoid downloading the same data multiple times.
//
// [ETags]: https://developer.mozilla.org/en-US/docs/Web/HTTP/Headers/ETag
// [IANA data server]: https://www.iana.org/time-zones
package ianafetch

import (
	"archive/tar"
	"bytes"
	"compress/gzip"
	"context"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"

	"github.com/lfriedrich/zoneshift/tzload"
	"github.com/lfriedrich/zoneshift/zonedb"
)

const (
	// baseURL is the base URL for time zones on the IANA data server.
	baseURL = "https://data.iana.org/time-zones/"
	// latestDataPath is the path to the latest tzdata release relative to
	// the baseURL.
	latestDataPath = "tzdata-latest.tar.gz"
	// dataFileMagicHeader identifies data files in the archive.
	dataFileMagicHeader = "# tzdb data for"
	// versionFilename is the name of the version file in the archive.
	versionFilename = "version"
)

// Release is an unpacked IANA time zone database release.
type Release struct {
	// Version of the release, for example "2024a".
	Version string
	// DataFiles maps tzdb data file names ("europe", "africa", ...) to their
	// zic source text.
	DataFiles map[string][]byte
}

// Registry parses the release's data files into a zone registry.
func (r *Release) Registry() (zonedb.ZoneRegistry, error) {
	return tzload.LoadAll(r.DataFiles)
}

// DefaultClient is a ready-to-use Client, used by the top-level Latest
// function.
var DefaultClient = &Client{}

// Client downloads the IANA time zone database. The zero value is ready to
// use.
type Client struct {
	// HTTPClient is the http.Client used for downloads. If nil,
	// http.DefaultClient is used.
	//
	// Tests can set an http.Client with a fake http.RoundTripper to avoid
	// network calls; timeouts are otherwise controlled by the context passed
	// to Latest.
	HTTPClient *http.Client
}

func (c *Client) httpClient() *http.Client {
	if c.HTTPClient == nil {
		return http.DefaultClient
	}
	return c.HTTPClient
}

// Latest downloads the latest release using DefaultClient. See Client.Latest.
func Latest(ctx context.Context, etag string) (*Release, string, error) {
	return DefaultClient.Latest(ctx, etag)
}

// Latest downloads and unpacks the latest tzdata release. Passing the ETag of
// a previous call suppresses the download when the data has not changed; in
// that case the returned release is nil and the same ETag is echoed back.
func (c *Client) Latest(ctx context.Context, etag string) (*Release, string, error) {
	u, err := url.JoinPath(baseURL, latestDataPath)
	if err != nil {
		return nil, "", err
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u, nil)
	if err != nil {
		return nil, "", err
	}
	if etag != "" {
		req.Header.Set("If-None-Match", etag)
	}

	resp, err := c.httpClient().Do(req)
	if err != nil {
		return nil, "", err
	}
	defer resp.Body.Close()

	switch resp.StatusCode {
	case http.StatusNotModified:
		return nil, etag, nil
	case http.StatusOK:
	default:
		return nil, "", fmt.Errorf("unexpected status: %s", resp.Status)
	}

	release, err := ReadArchive(resp.Body)
	if err != nil {
		return nil, "", err
	}
	return release, resp.Header.Get("ETag"), nil
}

// ReadArchive unpacks a tzdata release from a gzip-compressed tar archive as
// found at https://data.iana.org/time-zones/releases/. Files that are not
// zic data files, such as leapseconds and build scripts, are skipped.
func ReadArchive(r io.Reader) (*Release, error) {
	gunzip, err := gzip.NewReader(r)
	if err != nil {
		return nil, fmt.Errorf("read gzip: %w", err)
	}
	tr := tar.NewReader(gunzip)

	result := &Release{DataFiles: make(map[string][]byte)}
	for {
		header, err := tr.Next()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, err
		}
		if header.Typeflag != tar.TypeReg {
			continue
		}

		if header.Name == versionFilename {
			v, err := io.ReadAll(tr)
			if err != nil {
				return nil, fmt.Errorf("read version file: %w", err)
			}
			result.Version = strings.TrimSpace(string(v))
			continue
		}

		// Data files identify themselves with a magic first line.
		content, err := io.ReadAll(tr)
		if err != nil {
			return nil, fmt.Errorf("read %s: %w", header.Name, err)
		}
		if bytes.HasPrefix(content, []byte(dataFileMagicHeader)) {
			result.DataFiles[header.Name] = content
		}
	}

	if len(result.DataFiles) == 0 {
		return nil, fmt.Errorf("no data files found in archive")
	}
	return result, nil
}
