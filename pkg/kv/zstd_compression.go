package kv

import (
	"github.com/DataDog/zstd"
	"github.com/kelindar/binary"
	"github.com/lintang-b-s/navtraffic/pkg/datastructure"
)

func encodeSession(s datastructure.Session) ([]byte, error) {
	encoded, err := binary.Marshal(toStoredSession(s))
	if err != nil {
		return nil, err
	}
	return compress(encoded)
}

func decodeSession(bbCompressed []byte) (datastructure.Session, error) {
	bb, err := decompress(bbCompressed)
	if err != nil {
		return datastructure.Session{}, err
	}
	var stored storedSession
	if err := binary.Unmarshal(bb, &stored); err != nil {
		return datastructure.Session{}, err
	}
	return stored.toSession(), nil
}

func compress(bb []byte) ([]byte, error) {
	var bbCompressed []byte
	bbCompressed, err := zstd.Compress(bbCompressed, bb)
	if err != nil {
		return []byte{}, err
	}
	return bbCompressed, nil
}

func decompress(bbCompressed []byte) ([]byte, error) {
	var bb []byte
	bb, err := zstd.Decompress(bb, bbCompressed)
	if err != nil {
		return []byte{}, err
	}

	return bb, nil
}
