package kv

import "context"

// Store es un key-value de texto. Get devuelve found=false si la key no existe.
type Store interface {
	Get(ctx context.Context, key string) (value string, found bool, err error)
	Set(ctx context.Context, key, value string) error
	Close() error
}
