package response

import (
	"encoding/json"
	"errors"
	"io"
	"net/http"

	"github.com/taskvault/auth-service/internal/domain"
)

// DecodeJSON reads exactly one JSON value from the request body into
// dst. Empty bodies, malformed JSON and trailing data all map to the
// domain's invalid_json error so handlers report them uniformly.
func DecodeJSON(r *http.Request, dst any) error {
	dec := json.NewDecoder(r.Body)
	if err := dec.Decode(dst); err != nil {
		return domain.ErrInvalidJSON(err)
	}
	if _, err := dec.Token(); !errors.Is(err, io.EOF) {
		return domain.ErrInvalidJSON(errors.New("trailing data after JSON value"))
	}
	return nil
}
