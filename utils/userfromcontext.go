package utils

import (
	"net/http"

	"github.com/PilotScript/freelancer-platform/globals"
	"github.com/PilotScript/freelancer-platform/models"
)

func GetUserIDFromRequest(r *http.Request) string {
	requestingUserID, ok := r.Context().Value(globals.UserIDKey).(string)
	if !ok || requestingUserID == "" {
		return ""
	}
	return requestingUserID
}

func GetRoleFromRequest(r *http.Request) models.Role {
	role, ok := r.Context().Value(globals.RoleKey).(models.Role)
	if !ok {
		return ""
	}
	return role
}

// IsAdmin reports whether the request carries the admin role.
func IsAdmin(r *http.Request) bool {
	return GetRoleFromRequest(r) == models.RoleAdmin
}
