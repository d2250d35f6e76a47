package nominatim

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"go.uber.org/zap"

	"github.com/restaurant-discovery/internal/config"
	"github.com/restaurant-discovery/internal/domain"
	"github.com/restaurant-discovery/internal/domain/repository"
	"github.com/restaurant-discovery/internal/pkg/errors"
)

type client struct {
	httpClient *http.Client
	baseURL    string
	userAgent  string
	logger     *zap.Logger
}

// searchResult - элемент ответа Nominatim; координаты приходят строками
type searchResult struct {
	Lat         string `json:"lat"`
	Lon         string `json:"lon"`
	DisplayName string `json:"display_name"`
}

// NewNominatimClient создает новый клиент для Nominatim API
func NewNominatimClient(cfg *config.GeocoderConfig, logger *zap.Logger) repository.GeocodeRepository {
	return &client{
		httpClient: &http.Client{
			Timeout: time.Duration(cfg.RequestTimeout) * time.Second,
		},
		baseURL:   cfg.BaseURL,
		userAgent: cfg.UserAgent,
		logger:    logger,
	}
}

// Forward выполняет один поисковый запрос с limit=1 и берёт первый
// результат. Повторов нет: отказ возвращается вызывающему как есть.
func (c *client) Forward(ctx context.Context, address, locality string) (*domain.Position, error) {
	query := buildQuery(address, locality)
	if query == "" {
		return nil, errors.ErrInvalidRequest
	}

	params := url.Values{}
	params.Set("q", query)
	params.Set("format", "json")
	params.Set("limit", "1")

	reqURL := fmt.Sprintf("%s/search?%s", c.baseURL, params.Encode())

	c.logger.Debug("Calling Nominatim search API", zap.String("query", query))

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, reqURL, nil)
	if err != nil {
		c.logger.Error("Failed to create request", zap.Error(err))
		return nil, fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("User-Agent", c.userAgent)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		c.logger.Error("Failed to execute request", zap.Error(err))
		return nil, errors.ErrGeocodeFailed
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(resp.Body)
		c.logger.Error("Nominatim API returned error",
			zap.Int("status_code", resp.StatusCode),
			zap.String("body", string(body)))
		return nil, errors.ErrGeocodeFailed
	}

	var results []searchResult
	if err := json.NewDecoder(resp.Body).Decode(&results); err != nil {
		c.logger.Error("Failed to decode response", zap.Error(err))
		return nil, errors.ErrGeocodeFailed
	}

	if len(results) == 0 {
		return nil, errors.ErrGeocodeNoResult
	}

	first := results[0]
	lat, err := strconv.ParseFloat(first.Lat, 64)
	if err != nil {
		return nil, fmt.Errorf("invalid latitude %q in response: %w", first.Lat, err)
	}
	lng, err := strconv.ParseFloat(first.Lon, 64)
	if err != nil {
		return nil, fmt.Errorf("invalid longitude %q in response: %w", first.Lon, err)
	}

	c.logger.Debug("Nominatim search successful",
		zap.String("display_name", first.DisplayName),
		zap.Float64("lat", lat),
		zap.Float64("lng", lng))

	return &domain.Position{Lat: lat, Lng: lng}, nil
}

func buildQuery(address, locality string) string {
	parts := make([]string, 0, 2)
	if s := strings.TrimSpace(address); s != "" {
		parts = append(parts, s)
	}
	if s := strings.TrimSpace(locality); s != "" {
		parts = append(parts, s)
	}
	return strings.Join(parts, ", ")
}
