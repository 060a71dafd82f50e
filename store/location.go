package store

import (
	"context"
	"sync"

	"go-tania/api"
	"go-tania/models"
)

// LocationStore 国家和城市，国家列表只拉取一次
type LocationStore struct {
	api *api.API

	mu        sync.Mutex
	countries []models.Country
	cities    map[string][]models.City
}

// FetchCountries 获取国家列表
func (s *LocationStore) FetchCountries(ctx context.Context) ([]models.Country, error) {
	s.mu.Lock()
	cached := s.countries
	s.mu.Unlock()
	if cached != nil {
		return clone(cached), nil
	}
	countries, err := s.api.FetchCountries(ctx)
	if err != nil {
		return nil, err
	}
	if countries == nil {
		countries = []models.Country{}
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	s.countries = countries
	return clone(countries), nil
}

// FetchCities 获取国家下的城市
func (s *LocationStore) FetchCities(ctx context.Context, countryID string) ([]models.City, error) {
	s.mu.Lock()
	cached, ok := s.cities[countryID]
	s.mu.Unlock()
	if ok {
		return clone(cached), nil
	}
	cities, err := s.api.FetchCities(ctx, countryID)
	if err != nil {
		return nil, err
	}
	if cities == nil {
		cities = []models.City{}
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.cities == nil {
		s.cities = make(map[string][]models.City)
	}
	s.cities[countryID] = cities
	return clone(cities), nil
}
