// Package profile serves user accounts: viewing, editing, avatars and the
// admin listing. Authentication lives in the auth package.
package profile

import (
	"encoding/json"
	"net/http"
	"strings"
	"time"

	"github.com/PilotScript/freelancer-platform/db"
	"github.com/PilotScript/freelancer-platform/models"
	"github.com/PilotScript/freelancer-platform/rdx"
	"github.com/PilotScript/freelancer-platform/utils"

	"github.com/julienschmidt/httprouter"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// GetUser returns a public profile. Any authenticated user may view one.
func GetUser(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
	ctx := r.Context()

	var user models.User
	if err := db.UserCollection.FindOne(ctx, bson.M{"userid": ps.ByName("id")}).Decode(&user); err != nil {
		utils.RespondWithError(w, http.StatusNotFound, "User not found")
		return
	}

	utils.SendResponse(w, http.StatusOK, user)
}

// UpdateUser edits profile fields. Users edit themselves; admins edit anyone.
// Email, password and role do not change through this endpoint.
func UpdateUser(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
	ctx := r.Context()
	targetID := ps.ByName("id")

	if targetID != utils.GetUserIDFromRequest(r) && !utils.IsAdmin(r) {
		utils.RespondWithError(w, http.StatusForbidden, "Not authorized to edit this profile")
		return
	}

	var req struct {
		FirstName  *string  `json:"firstName"`
		LastName   *string  `json:"lastName"`
		Title      *string  `json:"title"`
		Bio        *string  `json:"bio"`
		Skills     []string `json:"skills"`
		HourlyRate *float64 `json:"hourlyRate"`
		Location   *string  `json:"location"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		utils.RespondWithError(w, http.StatusBadRequest, "Invalid input")
		return
	}

	set := bson.M{"updatedAt": time.Now()}
	if req.FirstName != nil {
		if strings.TrimSpace(*req.FirstName) == "" {
			utils.RespondWithError(w, http.StatusBadRequest, "firstName cannot be empty")
			return
		}
		set["firstName"] = strings.TrimSpace(*req.FirstName)
	}
	if req.LastName != nil {
		set["lastName"] = strings.TrimSpace(*req.LastName)
	}
	if req.Title != nil {
		set["title"] = *req.Title
	}
	if req.Bio != nil {
		if len(*req.Bio) > 2000 {
			utils.RespondWithError(w, http.StatusBadRequest, "Bio too long")
			return
		}
		set["bio"] = *req.Bio
	}
	if req.Skills != nil {
		set["skills"] = utils.SplitTags(strings.Join(req.Skills, ","))
	}
	if req.HourlyRate != nil {
		if *req.HourlyRate < 0 {
			utils.RespondWithError(w, http.StatusBadRequest, "hourlyRate cannot be negative")
			return
		}
		set["hourlyRate"] = *req.HourlyRate
	}
	if req.Location != nil {
		set["location"] = *req.Location
	}

	var user models.User
	err := db.UserCollection.FindOneAndUpdate(ctx,
		bson.M{"userid": targetID},
		bson.M{"$set": set},
		options.FindOneAndUpdate().SetReturnDocument(options.After),
	).Decode(&user)
	if err != nil {
		utils.RespondWithError(w, http.StatusNotFound, "User not found")
		return
	}

	utils.SendResponse(w, http.StatusOK, user)
}

// DeleteUser removes an account. Self-service or admin.
func DeleteUser(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
	ctx := r.Context()
	targetID := ps.ByName("id")

	if targetID != utils.GetUserIDFromRequest(r) && !utils.IsAdmin(r) {
		utils.RespondWithError(w, http.StatusForbidden, "Not authorized to delete this account")
		return
	}

	res, err := db.UserCollection.DeleteOne(ctx, bson.M{"userid": targetID})
	if err != nil || res.DeletedCount == 0 {
		utils.RespondWithError(w, http.StatusNotFound, "User not found")
		return
	}
	rdx.RdxHdel("usernames", targetID)
	rdx.RdxHdel("tokens", targetID)

	utils.SendResponse(w, http.StatusOK, utils.M{"deleted": targetID})
}

// ListUsers is the admin directory with optional role and skill filters.
func ListUsers(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	ctx := r.Context()

	filter := bson.M{}
	if role := r.URL.Query().Get("role"); role != "" {
		parsed, err := models.ParseRole(role)
		if err != nil {
			utils.RespondWithError(w, http.StatusBadRequest, "Unknown role filter")
			return
		}
		filter["role"] = parsed
	}
	if skills := utils.SplitTags(r.URL.Query().Get("skills")); len(skills) > 0 {
		filter["skills"] = bson.M{"$all": skills}
	}

	page, limit := utils.ParsePagination(r)
	total, err := db.UserCollection.CountDocuments(ctx, filter)
	if err != nil {
		utils.RespondWithError(w, http.StatusInternalServerError, "Failed to fetch users")
		return
	}

	opts := options.Find().
		SetSort(bson.D{{Key: "createdAt", Value: -1}}).
		SetSkip(int64((page - 1) * limit)).
		SetLimit(int64(limit))
	cursor, err := db.UserCollection.Find(ctx, filter, opts)
	if err != nil {
		utils.RespondWithError(w, http.StatusInternalServerError, "Failed to fetch users")
		return
	}
	defer cursor.Close(ctx)

	users := []models.User{}
	if err := cursor.All(ctx, &users); err != nil {
		utils.RespondWithError(w, http.StatusInternalServerError, "Failed to fetch users")
		return
	}

	utils.SendPage(w, http.StatusOK, users, len(users), page, limit, total)
}
