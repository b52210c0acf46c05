package controllers

import (
	"net/http"

	"github.com/google/uuid"
	"github.com/shiftline/shiftline-backend/api/middleware"
	pkgerrors "github.com/shiftline/shiftline-backend/pkg/errors"
)

// actorFromContext resolves the authenticated user id seeded by the auth
// middleware.
func actorFromContext(r *http.Request) (uuid.UUID, error) {
	raw := middleware.UserIDFromContext(r.Context())
	if raw == "" {
		return uuid.Nil, pkgerrors.New(pkgerrors.CodeUnauthorized, "user context missing")
	}
	id, err := uuid.Parse(raw)
	if err != nil {
		return uuid.Nil, pkgerrors.Wrap(pkgerrors.CodeValidation, err, "invalid user id")
	}
	return id, nil
}

// restaurantFromContext resolves the active restaurant id from the token
// claims.
func restaurantFromContext(r *http.Request) (uuid.UUID, error) {
	raw := middleware.RestaurantIDFromContext(r.Context())
	if raw == "" {
		return uuid.Nil, pkgerrors.New(pkgerrors.CodeForbidden, "restaurant context required")
	}
	id, err := uuid.Parse(raw)
	if err != nil {
		return uuid.Nil, pkgerrors.Wrap(pkgerrors.CodeValidation, err, "invalid restaurant id")
	}
	return id, nil
}

func pathUUID(r *http.Request, value, field string) (uuid.UUID, error) {
	id, err := uuid.Parse(value)
	if err != nil {
		return uuid.Nil, pkgerrors.Wrap(pkgerrors.CodeValidation, err, "invalid path parameter").WithDetails(map[string]any{"field": field})
	}
	return id, nil
}
