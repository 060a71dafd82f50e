package api

import (
	"context"
	"net/url"

	"go-tania/models"
)

// FetchCountries 获取国家列表，接口直接返回数组
func (a *API) FetchCountries(ctx context.Context) ([]models.Country, error) {
	var countries []models.Country
	err := a.c.Get(ctx, "locations/countries", &countries)
	return countries, err
}

// FetchCities 按国家获取城市
func (a *API) FetchCities(ctx context.Context, countryID string) ([]models.City, error) {
	var cities []models.City
	err := a.c.Get(ctx, withQuery("locations/cities", url.Values{"country_id": {countryID}}), &cities)
	return cities, err
}
