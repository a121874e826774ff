package catalog

import (
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"os"
	"path/filepath"
	"strings"
	"time"

	"FishSentinel/internal/model"
)

// Catalog file names, relative to a directory or base URL.
const (
	FishFile  = "fish.json"
	SpotsFile = "spots.json"
)

// Loader defines how the fish and spot catalogs are fetched.
type Loader interface {
	LoadFish() ([]model.Fish, error)
	LoadSpots() ([]model.Spot, error)
	Name() string
}

// FileLoader reads the catalog from a local directory.
type FileLoader struct {
	Dir string
}

// NewFileLoader creates a loader over dir.
func NewFileLoader(dir string) *FileLoader {
	return &FileLoader{Dir: dir}
}

func (l *FileLoader) Name() string { return "file:" + l.Dir }

func (l *FileLoader) LoadFish() ([]model.Fish, error) {
	var fish []model.Fish
	if err := l.read(FishFile, &fish); err != nil {
		return nil, err
	}
	return fish, nil
}

func (l *FileLoader) LoadSpots() ([]model.Spot, error) {
	var spots []model.Spot
	if err := l.read(SpotsFile, &spots); err != nil {
		return nil, err
	}
	return spots, nil
}

func (l *FileLoader) read(name string, v any) error {
	data, err := os.ReadFile(filepath.Join(l.Dir, name))
	if err != nil {
		return fmt.Errorf("read %s: %w", name, err)
	}
	if err := json.Unmarshal(data, v); err != nil {
		return fmt.Errorf("decode %s: %w", name, err)
	}
	return nil
}

// HTTPLoader fetches the catalog from a static file server.
type HTTPLoader struct {
	BaseURL string
	Client  *http.Client
}

// NewHTTPLoader creates a loader with optional proxy support.
func NewHTTPLoader(baseURL, proxyURL string) *HTTPLoader {
	transport := &http.Transport{}
	if proxyURL != "" {
		if u, err := url.Parse(proxyURL); err == nil {
			transport.Proxy = http.ProxyURL(u)
		}
	}
	return &HTTPLoader{
		BaseURL: strings.TrimRight(baseURL, "/"),
		Client: &http.Client{
			Timeout:   30 * time.Second,
			Transport: transport,
		},
	}
}

func (l *HTTPLoader) Name() string { return "http:" + l.BaseURL }

func (l *HTTPLoader) LoadFish() ([]model.Fish, error) {
	var fish []model.Fish
	if err := l.get(FishFile, &fish); err != nil {
		return nil, err
	}
	return fish, nil
}

func (l *HTTPLoader) LoadSpots() ([]model.Spot, error) {
	var spots []model.Spot
	if err := l.get(SpotsFile, &spots); err != nil {
		return nil, err
	}
	return spots, nil
}

func (l *HTTPLoader) get(name string, v any) error {
	resp, err := l.Client.Get(l.BaseURL + "/" + name)
	if err != nil {
		return fmt.Errorf("fetch %s: %w", name, err)
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, 512))
		return fmt.Errorf("fetch %s: status %d, body: %s", name, resp.StatusCode, string(body))
	}
	if err := json.NewDecoder(resp.Body).Decode(v); err != nil {
		return fmt.Errorf("decode %s: %w", name, err)
	}
	return nil
}

// MockLoader returns fixed data for development and testing.
type MockLoader struct {
	Fish     []model.Fish
	Spots    []model.Spot
	FishErr  error
	SpotsErr error
}

func (m *MockLoader) Name() string { return "mock" }

func (m *MockLoader) LoadFish() ([]model.Fish, error) {
	return m.Fish, m.FishErr
}

func (m *MockLoader) LoadSpots() ([]model.Spot, error) {
	return m.Spots, m.SpotsErr
}
