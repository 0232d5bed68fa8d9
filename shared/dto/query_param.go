package dto

import (
	"net/http"
	"net/url"
	"strconv"
	"strings"

	"spacy/shared/constant"
)

const (
	SortDirAsc  = "ASC"
	SortDirDesc = "DESC"

	MaxLimit = 100
)

type QueryParams struct {
	Page    int    `json:"page"`
	Limit   int    `json:"limit"`
	SortBy  string `json:"sort_by"`
	SortDir string `json:"sort_dir"`
}

// ParseQueryParams reads page, limit, sort_by and sort_dir. Missing or
// malformed values fall back to the defaults and limit is capped at MaxLimit.
func ParseQueryParams(r *http.Request) QueryParams {
	values := r.URL.Query()

	params := QueryParams{
		Page:    positive(values, constant.RequestParamPage, constant.DefaultValuePage),
		Limit:   min(positive(values, constant.RequestParamLimit, constant.DefaultValueLimit), MaxLimit),
		SortBy:  constant.DefaultValueSortBy,
		SortDir: constant.DefaultValueSortDir,
	}

	if sortBy := strings.TrimSpace(values.Get(constant.RequestParamSortBy)); sortBy != "" {
		params.SortBy = sortBy
	}

	switch dir := strings.ToUpper(values.Get(constant.RequestParamSortDir)); dir {
	case SortDirAsc, SortDirDesc:
		params.SortDir = dir
	}

	return params
}

// Offset is zero when paging is off.
func (q QueryParams) Offset() int {
	if q.Page <= 1 || q.Limit <= 0 {
		return 0
	}

	return (q.Page - 1) * q.Limit
}

func positive(values url.Values, key string, fallback int) int {
	value, err := strconv.Atoi(values.Get(key))
	if err != nil || value <= 0 {
		return fallback
	}

	return value
}
