// Package models defines the data exchanged with the Alpha inventory API and
// the client-side rules applied to it before sending or after receiving.
package models

import (
	"bytes"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/dmitrijs2005/alphastock/internal/common"
)

// ErrValidation marks input rejected locally, before any request is sent.
var ErrValidation = common.ErrValidation

func invalid(format string, args ...any) error {
	return fmt.Errorf("%w: %s", ErrValidation, fmt.Sprintf(format, args...))
}

// ID is a server identifier. The API is not consistent about ids being
// strings or numbers, so both are accepted; the value is kept as text.
type ID string

func (id *ID) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	if bytes.Equal(data, []byte("null")) {
		*id = ""
		return nil
	}
	if len(data) > 0 && data[0] == '"' {
		var s string
		if err := json.Unmarshal(data, &s); err != nil {
			return err
		}
		*id = ID(strings.TrimSpace(s))
		return nil
	}
	var n json.Number
	if err := json.Unmarshal(data, &n); err != nil {
		return fmt.Errorf("id must be a string or a number: %w", err)
	}
	*id = ID(n.String())
	return nil
}

func (id ID) String() string {
	return string(id)
}

// Number returns the id as a JSON number, for endpoints that expect numeric
// ids in the payload.
func (id ID) Number() (json.Number, error) {
	n := json.Number(strings.TrimSpace(string(id)))
	if _, err := n.Int64(); err != nil {
		return "", invalid("id %q is not numeric", string(id))
	}
	return n, nil
}
