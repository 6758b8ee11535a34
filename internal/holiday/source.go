package holiday

import (
	"bytes"
	"fmt"
	"io"
	"net/http"
	"os"
	"strings"
	"time"

	"go.uber.org/zap"
)

const (
	defaultTimeout = 10 * time.Second
)

// Source yields the raw registry document
type Source interface {
	Open() (io.ReadCloser, error)
	String() string
}

// FileSource reads the registry from a local file
type FileSource struct {
	Path string
}

// Open opens the registry file
func (fs FileSource) Open() (io.ReadCloser, error) {
	file, err := os.Open(fs.Path)
	if err != nil {
		return nil, fmt.Errorf("failed to open holiday registry: %w", err)
	}
	return file, nil
}

func (fs FileSource) String() string {
	return fs.Path
}

// HTTPSource fetches the registry over HTTP(S)
type HTTPSource struct {
	url        string
	httpClient *http.Client
	logger     *zap.Logger
}

// NewHTTPSource creates a new HTTPSource; a zero timeout uses the default
func NewHTTPSource(url string, timeout time.Duration, logger *zap.Logger) *HTTPSource {
	if timeout <= 0 {
		timeout = defaultTimeout
	}

	return &HTTPSource{
		url: url,
		httpClient: &http.Client{
			Timeout: timeout,
		},
		logger: logger,
	}
}

// Open downloads the registry document
func (hs *HTTPSource) Open() (io.ReadCloser, error) {
	hs.logger.Debug("Fetching holiday registry", zap.String("url", hs.url))

	resp, err := hs.httpClient.Get(hs.url)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch holiday registry: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("holiday registry returned status %d", resp.StatusCode)
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("failed to read holiday registry: %w", err)
	}

	return io.NopCloser(bytes.NewReader(body)), nil
}

func (hs *HTTPSource) String() string {
	return hs.url
}

// NewSource picks an HTTP source for http(s) URLs and a file source otherwise
func NewSource(location string, timeout time.Duration, logger *zap.Logger) Source {
	if strings.HasPrefix(location, "http://") || strings.HasPrefix(location, "https://") {
		return NewHTTPSource(location, timeout, logger)
	}
	return FileSource{Path: location}
}
