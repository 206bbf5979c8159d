package httpx

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/gorilla/mux"

	"github.com/tair/pos-engine/pkg/apperror"
)

// ActorHeader carries the id of the user recording an operation
const ActorHeader = "X-User-ID"

var validate = validator.New()

// Bind decodes a JSON body into dst and runs its validate tags
func Bind(r *http.Request, dst interface{}) error {
	dec := json.NewDecoder(r.Body)
	dec.DisallowUnknownFields()
	if err := dec.Decode(dst); err != nil {
		return apperror.Validation("invalid request body: %v", err)
	}
	if err := validate.Struct(dst); err != nil {
		return validationError(err)
	}
	return nil
}

func validationError(err error) error {
	var fieldErrs validator.ValidationErrors
	if !errors.As(err, &fieldErrs) {
		return apperror.Validation("%v", err)
	}
	msgs := make([]string, 0, len(fieldErrs))
	for _, fe := range fieldErrs {
		if fe.Param() != "" {
			msgs = append(msgs, fmt.Sprintf("%s: %s=%s", fe.Field(), fe.Tag(), fe.Param()))
		} else {
			msgs = append(msgs, fmt.Sprintf("%s: %s", fe.Field(), fe.Tag()))
		}
	}
	return apperror.Validation("invalid request: %s", strings.Join(msgs, ", "))
}

// PathID parses a numeric route variable
func PathID(r *http.Request, name string) (uint, error) {
	raw := mux.Vars(r)[name]
	id, err := strconv.ParseUint(raw, 10, 32)
	if err != nil || id == 0 {
		return 0, apperror.Validation("invalid %s %q", name, raw)
	}
	return uint(id), nil
}

// ActorID reads the acting user from the request. A missing header means the
// system user (0).
func ActorID(r *http.Request) (uint, error) {
	raw := r.Header.Get(ActorHeader)
	if raw == "" {
		return 0, nil
	}
	id, err := strconv.ParseUint(raw, 10, 32)
	if err != nil {
		return 0, apperror.Validation("invalid %s header %q", ActorHeader, raw)
	}
	return uint(id), nil
}

// QueryInt reads an optional integer query parameter
func QueryInt(r *http.Request, name string, def int) (int, error) {
	raw := r.URL.Query().Get(name)
	if raw == "" {
		return def, nil
	}
	v, err := strconv.Atoi(raw)
	if err != nil {
		return 0, apperror.Validation("invalid %s %q", name, raw)
	}
	return v, nil
}

// QueryUint reads an optional unsigned id query parameter
func QueryUint(r *http.Request, name string) (uint, error) {
	raw := r.URL.Query().Get(name)
	if raw == "" {
		return 0, nil
	}
	v, err := strconv.ParseUint(raw, 10, 32)
	if err != nil {
		return 0, apperror.Validation("invalid %s %q", name, raw)
	}
	return uint(v), nil
}

// QueryDate reads an optional date (2006-01-02) or RFC 3339 timestamp. A bare
// date used as an upper bound covers the whole day.
func QueryDate(r *http.Request, name string, endOfDay bool) (time.Time, error) {
	raw := r.URL.Query().Get(name)
	if raw == "" {
		return time.Time{}, nil
	}
	if t, err := time.Parse(time.RFC3339, raw); err == nil {
		return t.UTC(), nil
	}
	t, err := time.Parse("2006-01-02", raw)
	if err != nil {
		return time.Time{}, apperror.Validation("invalid %s %q: use YYYY-MM-DD or RFC 3339", name, raw)
	}
	if endOfDay {
		t = t.AddDate(0, 0, 1)
	}
	return t, nil
}
