package http

import (
	"fmt"
	"net/http"
	"strconv"
)

// Helpers translating optional query parameters into the pointer fields the
// filter configurations use; an absent parameter stays nil.

func queryString(r *http.Request, name string) *string {
	if !r.URL.Query().Has(name) {
		return nil
	}
	value := r.URL.Query().Get(name)
	return &value
}

func queryBool(r *http.Request, name string) (*bool, error) {
	if !r.URL.Query().Has(name) {
		return nil, nil
	}

	value, err := strconv.ParseBool(r.URL.Query().Get(name))
	if err != nil {
		return nil, fmt.Errorf("query param %q is not a boolean: %w", name, err)
	}
	return &value, nil
}

func queryInt64(r *http.Request, name string) (*int64, error) {
	if !r.URL.Query().Has(name) {
		return nil, nil
	}

	value, err := strconv.ParseInt(r.URL.Query().Get(name), 10, 64)
	if err != nil {
		return nil, fmt.Errorf("query param %q is not an integer: %w", name, err)
	}
	return &value, nil
}
