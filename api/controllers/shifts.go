package controllers

import (
	"net/http"
	"strings"

	"github.com/google/uuid"

	"github.com/shiftline/shiftline-backend/api/responses"
	"github.com/shiftline/shiftline-backend/api/validators"
	"github.com/shiftline/shiftline-backend/internal/shifts"
	pkgerrors "github.com/shiftline/shiftline-backend/pkg/errors"
	"github.com/shiftline/shiftline-backend/pkg/logger"
)

// ListShifts returns the restaurant schedule, optionally narrowed to one
// assignee or a time window.
func ListShifts(repo shifts.Repository, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if repo == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "shifts repository unavailable"))
			return
		}

		restaurantID, err := restaurantFromContext(r)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		params := shifts.ScheduleParams{RestaurantID: restaurantID}

		if raw := strings.TrimSpace(r.URL.Query().Get("assigned_user_id")); raw != "" {
			id, err := uuid.Parse(raw)
			if err != nil {
				responses.WriteError(r.Context(), logg, w, pkgerrors.Wrap(pkgerrors.CodeValidation, err, "invalid assigned_user_id"))
				return
			}
			params.AssignedUserID = &id
		}
		if params.From, err = validators.ParseQueryTime(r, "from"); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		if params.To, err = validators.ParseQueryTime(r, "to"); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		rows, err := repo.ListSchedule(r.Context(), params)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, map[string]any{"shifts": rows})
	}
}
