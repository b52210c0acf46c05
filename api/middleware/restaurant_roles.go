package middleware

import (
	"context"
	"net/http"

	"github.com/google/uuid"
	"github.com/shiftline/shiftline-backend/api/responses"
	"github.com/shiftline/shiftline-backend/pkg/enums"
	pkgerrors "github.com/shiftline/shiftline-backend/pkg/errors"
	"github.com/shiftline/shiftline-backend/pkg/logger"
)

type MembershipChecker interface {
	UserHasRole(ctx context.Context, userID, restaurantID uuid.UUID, roles ...enums.MemberRole) (bool, error)
}

// RequireRestaurantRoles filters requests by restaurant membership roles before executing the handler.
func RequireRestaurantRoles(checker MembershipChecker, logg *logger.Logger, allowed ...enums.MemberRole) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			ctx := r.Context()
			if checker == nil {
				responses.WriteError(ctx, logg, w, pkgerrors.New(pkgerrors.CodeInternal, "membership checker unavailable"))
				return
			}
			if len(allowed) == 0 {
				responses.WriteError(ctx, logg, w, pkgerrors.New(pkgerrors.CodeInternal, "allowed roles missing"))
				return
			}

			userID := UserIDFromContext(ctx)
			if userID == "" {
				responses.WriteError(ctx, logg, w, pkgerrors.New(pkgerrors.CodeUnauthorized, "user context missing"))
				return
			}

			restaurantID := RestaurantIDFromContext(ctx)
			if restaurantID == "" {
				responses.WriteError(ctx, logg, w, pkgerrors.New(pkgerrors.CodeForbidden, "restaurant context required"))
				return
			}

			uid, err := uuid.Parse(userID)
			if err != nil {
				responses.WriteError(ctx, logg, w, pkgerrors.Wrap(pkgerrors.CodeValidation, err, "invalid user id"))
				return
			}

			rid, err := uuid.Parse(restaurantID)
			if err != nil {
				responses.WriteError(ctx, logg, w, pkgerrors.Wrap(pkgerrors.CodeValidation, err, "invalid restaurant id"))
				return
			}

			ok, err := checker.UserHasRole(ctx, uid, rid, allowed...)
			if err != nil {
				responses.WriteError(ctx, logg, w, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "check membership role"))
				return
			}
			if !ok {
				responses.WriteError(ctx, logg, w, pkgerrors.New(pkgerrors.CodeForbidden, "insufficient restaurant role"))
				return
			}

			next.ServeHTTP(w, r)
		})
	}
}
