package service

import "reelcritic/internal/repository"

// ListOptions son los parámetros de listado tal como llegan del query
// string, antes de normalizar.
type ListOptions struct {
	Page      int
	Limit     int
	SortBy    string
	SortOrder string
}

// normalizeList aplica defaults y la whitelist de campos de orden:
// un sortBy desconocido cae al default en vez de filtrarse a Mongo.
func normalizeList(o ListOptions, allowedSort map[string]bool, defaultSort string, defaultLimit, maxLimit int) repository.ListParams {
	if o.Page <= 0 {
		o.Page = 1
	}
	if o.Limit <= 0 {
		o.Limit = defaultLimit
	}
	if o.Limit > maxLimit {
		o.Limit = maxLimit
	}
	if !allowedSort[o.SortBy] {
		o.SortBy = defaultSort
	}
	if o.SortOrder != "asc" {
		o.SortOrder = "desc"
	}
	return repository.ListParams{
		Page:      o.Page,
		Limit:     o.Limit,
		SortBy:    o.SortBy,
		SortOrder: o.SortOrder,
	}
}
