package storage

import (
	"context"
	"encoding/json"
	"reflect"

	"go.uber.org/zap"
)

// Store is a key-value blob store. Values are whole JSON-serialized
// collections: Load reads the entire value under key into the given
// destination, Save replaces it. There are no partial updates and no
// transactions; the last writer wins.
//
// Load must tolerate absent and corrupt values by leaving the destination at
// its caller-supplied default and returning nil. Only backend failures
// (I/O, connection) surface as errors.
type Store interface {
	Load(ctx context.Context, key string, into interface{}) error
	Save(ctx context.Context, key string, value interface{}) error
}

// decodeValue unmarshals data into a fresh value of into's type and copies it
// over only on success. json.Unmarshal writes what it can before failing on a
// type mismatch, so decoding straight into the destination would leave the
// caller a half-populated collection instead of its default. into must be a
// non-nil pointer.
func decodeValue(data []byte, into interface{}, logger *zap.Logger, key string) {
	tmp := reflect.New(reflect.TypeOf(into).Elem())
	if err := json.Unmarshal(data, tmp.Interface()); err != nil {
		logger.Warn("corrupt value, falling back to default",
			zap.String("key", key), zap.Error(err))
		return
	}
	reflect.ValueOf(into).Elem().Set(tmp.Elem())
}
