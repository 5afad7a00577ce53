package repository

import (
	"errors"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// ErrDuplicateKey se devuelve cuando un insert choca contra un índice
// único (dos creates concurrentes para el mismo par user/movie, username
// tomado, etc). Los servicios lo traducen al conflicto de dominio.
var ErrDuplicateKey = errors.New("repository: duplicate key")

// ListParams son los parámetros comunes de listado paginado.
// Los servicios ya validaron page/limit y la whitelist de sort.
type ListParams struct {
	Page      int
	Limit     int
	SortBy    string
	SortOrder string // asc|desc
}

func (p ListParams) findOptions() *options.FindOptions {
	order := -1
	if p.SortOrder == "asc" {
		order = 1
	}
	return options.Find().
		SetSort(bson.D{{Key: p.SortBy, Value: order}}).
		SetSkip(int64((p.Page - 1) * p.Limit)).
		SetLimit(int64(p.Limit))
}
