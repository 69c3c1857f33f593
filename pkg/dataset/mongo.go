package dataset

import (
	"context"
	"fmt"
	"maps"
	"slices"
	"strconv"
	"strings"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	neterrors "github.com/matzehuels/netgraph/pkg/errors"
)

// MongoSource reads every document of a collection as one table row.
// The database comes from the URI path and the collection from the fragment:
//
//	mongodb://localhost:27017/school#nodes
type MongoSource struct{}

// Fetch implements Fetcher.
func (MongoSource) Fetch(ctx context.Context, uri string) (*Table, error) {
	conn, collection, err := splitFragment(uri)
	if err != nil {
		return nil, err
	}
	database, err := databaseOf(conn)
	if err != nil {
		return nil, err
	}

	client, err := mongo.Connect(ctx, options.Client().ApplyURI(conn))
	if err != nil {
		return nil, fmt.Errorf("mongo connect: %w", err)
	}
	defer client.Disconnect(context.WithoutCancel(ctx))

	cur, err := client.Database(database).Collection(collection).Find(ctx, bson.D{})
	if err != nil {
		return nil, fmt.Errorf("mongo find %s.%s: %w", database, collection, err)
	}
	var docs []bson.M
	if err := cur.All(ctx, &docs); err != nil {
		return nil, fmt.Errorf("mongo read %s.%s: %w", database, collection, err)
	}
	return tableFromDocuments(docs), nil
}

func databaseOf(conn string) (string, error) {
	rest := conn[strings.Index(conn, "://")+3:]
	i := strings.Index(rest, "/")
	if i < 0 {
		return "", neterrors.New(neterrors.ErrCodeInvalidSource, "mongodb uri has no database path")
	}
	db := rest[i+1:]
	if q := strings.IndexByte(db, '?'); q >= 0 {
		db = db[:q]
	}
	if db == "" {
		return "", neterrors.New(neterrors.ErrCodeInvalidSource, "mongodb uri has no database path")
	}
	return db, nil
}

// tableFromDocuments flattens documents into a table whose header is the
// sorted union of top-level field names, excluding _id. An empty collection
// has no field names to offer, so it gets the key columns of both tables
// and parses as zero nodes or zero edges.
func tableFromDocuments(docs []bson.M) *Table {
	if len(docs) == 0 {
		return NewTable([]string{ColID, ColSource, ColTarget}, nil)
	}
	cols := map[string]struct{}{}
	for _, d := range docs {
		for k := range d {
			if k != "_id" {
				cols[k] = struct{}{}
			}
		}
	}
	header := slices.Sorted(maps.Keys(cols))

	rows := make([][]string, len(docs))
	for i, d := range docs {
		row := make([]string, len(header))
		for j, col := range header {
			row[j] = cellString(d[col])
		}
		rows[i] = row
	}
	return NewTable(header, rows)
}

func cellString(v any) string {
	switch v := v.(type) {
	case nil:
		return ""
	case string:
		return v
	case float64:
		return strconv.FormatFloat(v, 'f', -1, 64)
	case int32:
		return strconv.FormatInt(int64(v), 10)
	case int64:
		return strconv.FormatInt(v, 10)
	default:
		return fmt.Sprint(v)
	}
}
