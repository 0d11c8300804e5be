package http

import (
	"errors"
	"net/http"

	"github.com/cardify/cardify-server/internal/logger"
	"github.com/cardify/cardify-server/internal/service"
	"github.com/cardify/cardify-server/internal/store"
)

// errorStatusMap translates the service and store sentinel errors into HTTP
// status codes. NotFound keys map to 404; conflict and validation failures
// both map to 400 (the API treats invariant violations as bad requests, not
// 409s); authentication failures map to 401. Anything outside the map is an
// internal error.
var errorStatusMap = map[error]int{
	store.ErrUserNotFound: http.StatusNotFound,
	store.ErrDeckNotFound: http.StatusNotFound,
	store.ErrCardNotFound: http.StatusNotFound,
	store.ErrTagNotFound:  http.StatusNotFound,

	store.ErrUsernameTaken:    http.StatusBadRequest,
	store.ErrDuplicateSlug:    http.StatusBadRequest,
	store.ErrSelfFollow:       http.StatusBadRequest,
	store.ErrAlreadyFollowing: http.StatusBadRequest,
	store.ErrFollowNotFound:   http.StatusBadRequest,
	store.ErrAlreadyFavorited: http.StatusBadRequest,
	store.ErrFavoriteNotFound: http.StatusBadRequest,
	store.ErrTagAlreadyOnDeck: http.StatusBadRequest,
	store.ErrTagNotOnDeck:     http.StatusBadRequest,
	store.ErrEmptyUpdate:      http.StatusBadRequest,
	store.ErrInvalidOrderBy:   http.StatusBadRequest,

	service.ErrInvalidDataProvided: http.StatusBadRequest,

	service.ErrWrongPassword:           http.StatusUnauthorized,
	service.ErrTokenIsExpiredOrInvalid: http.StatusUnauthorized,

	ErrActingForDifferentUser: http.StatusForbidden,

	store.ErrBuildingSQLQuery:   http.StatusInternalServerError,
	store.ErrExecutingQuery:     http.StatusInternalServerError,
	store.ErrExecutingStatement: http.StatusInternalServerError,
	store.ErrScanningRow:        http.StatusInternalServerError,
	store.ErrScanningRows:       http.StatusInternalServerError,
}

func statusFromError(err error) int {
	for target, status := range errorStatusMap {
		if errors.Is(err, target) {
			return status
		}
	}
	return http.StatusInternalServerError
}

// respondError writes err to the response with its mapped status code.
// Internal errors are genericized so storage details never reach the caller;
// the full error is logged either way.
func respondError(w http.ResponseWriter, r *http.Request, err error) {
	log := logger.FromRequest(r)

	status := statusFromError(err)
	message := err.Error()
	if status == http.StatusInternalServerError {
		message = http.StatusText(http.StatusInternalServerError)
	}

	log.Err(err).Int("status", status).Msg("request failed")
	http.Error(w, message, status)
}
