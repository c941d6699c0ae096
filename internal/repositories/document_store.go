package repository

import (
	"context"
	"errors"
)

var ErrDocumentNotFound = errors.New("document not found")

// DocumentStore reads and writes one whole snapshot document. There is no
// partial access and no coordination between concurrent writers.
type DocumentStore interface {
	Read(ctx context.Context) ([]byte, error)
	Write(ctx context.Context, doc []byte) error
}
