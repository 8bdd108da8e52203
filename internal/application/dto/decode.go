package dto

import (
	"bytes"
	"encoding/json"
	"errors"
)

// ErrConflictingKeys se devuelve cuando un cuerpo trae la misma propiedad con dos nombres distintos.
var ErrConflictingKeys = errors.New("propiedad duplicada con nombres alternativos")

// decodeStrict deserializa data en v rechazando claves desconocidas y contenido tras el objeto.
func decodeStrict(data []byte, v any) error {
	dec := json.NewDecoder(bytes.NewReader(data))
	dec.DisallowUnknownFields()
	if err := dec.Decode(v); err != nil {
		return err
	}
	if dec.More() {
		return errors.New("contenido adicional tras el objeto JSON")
	}
	return nil
}

// pickString devuelve el único valor presente entre los alias; dos valores presentes es un error.
func pickString(values ...*string) (string, error) {
	var out *string
	for _, v := range values {
		if v == nil {
			continue
		}
		if out != nil {
			return "", ErrConflictingKeys
		}
		out = v
	}
	if out == nil {
		return "", nil
	}
	return *out, nil
}
