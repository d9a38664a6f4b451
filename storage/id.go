package storage

import (
	"errors"

	"github.com/google/uuid"
)

var ErrNotEnoughBytesInGenerator = errors.New("id generator must return 16 bytes")

type (
	IDGenerator interface {
		Generate() []byte
	}

	uuidGenerator struct{}
)

func (uuidGenerator) Generate() []byte {
	id := uuid.New()

	return id[:]
}

func newID(generator IDGenerator) (uuid.UUID, error) {
	id, err := uuid.FromBytes(generator.Generate())
	if err != nil {
		return uuid.Nil, ErrNotEnoughBytesInGenerator
	}

	return id, nil
}
