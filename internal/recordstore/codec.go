package recordstore

import (
	"encoding/json"

	"github.com/dmitrijs2005/yogatrack/internal/cryptox"
)

// Codec turns a decoded collection into a document and back.
type Codec interface {
	Marshal(v any) ([]byte, error)
	Unmarshal(data []byte, v any) error
}

// JSONCodec stores collections as indented JSON.
type JSONCodec struct{}

func (JSONCodec) Marshal(v any) ([]byte, error) {
	return json.MarshalIndent(v, "", "  ")
}

func (JSONCodec) Unmarshal(data []byte, v any) error {
	return json.Unmarshal(data, v)
}

// SealedCodec encrypts the output of Inner with AES-GCM.
type SealedCodec struct {
	Key   []byte
	Inner Codec
}

func NewSealedCodec(key []byte) SealedCodec {
	return SealedCodec{Key: key, Inner: JSONCodec{}}
}

func (c SealedCodec) Marshal(v any) ([]byte, error) {
	plain, err := c.Inner.Marshal(v)
	if err != nil {
		return nil, err
	}
	return cryptox.Seal(plain, c.Key)
}

func (c SealedCodec) Unmarshal(data []byte, v any) error {
	plain, err := cryptox.Open(data, c.Key)
	if err != nil {
		return err
	}
	return c.Inner.Unmarshal(plain, v)
}
