package profile

import (
	"fmt"
	"net/http"
	"os"
	"path/filepath"
	"time"

	"github.com/PilotScript/freelancer-platform/db"
	"github.com/PilotScript/freelancer-platform/utils"

	"github.com/disintegration/imaging"
	"github.com/julienschmidt/httprouter"
	"go.mongodb.org/mongo-driver/bson"
)

const (
	avatarUploadDir = "./static/avatars"
	maxAvatarBytes  = 5 << 20
	avatarSize      = 400
	avatarThumbSize = 96
)

// UploadAvatar accepts a multipart image, normalizes it to JPEG at a fixed
// size plus a thumbnail, and points the profile at the new file.
func UploadAvatar(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
	ctx := r.Context()
	targetID := ps.ByName("id")

	if targetID != utils.GetUserIDFromRequest(r) && !utils.IsAdmin(r) {
		utils.RespondWithError(w, http.StatusForbidden, "Not authorized to change this avatar")
		return
	}

	if err := r.ParseMultipartForm(maxAvatarBytes); err != nil {
		utils.RespondWithError(w, http.StatusBadRequest, "Failed to parse upload")
		return
	}
	file, _, err := r.FormFile("avatar")
	if err != nil {
		utils.RespondWithError(w, http.StatusBadRequest, "An avatar file is required")
		return
	}
	defer file.Close()

	img, err := imaging.Decode(file, imaging.AutoOrientation(true))
	if err != nil {
		utils.RespondWithError(w, http.StatusBadRequest, "Unsupported image format")
		return
	}

	uniqueID := utils.GenerateRandomString(16)
	fileName := uniqueID + ".jpg"
	thumbDir := filepath.Join(avatarUploadDir, "thumb")
	if err := os.MkdirAll(thumbDir, 0o755); err != nil {
		utils.RespondWithError(w, http.StatusInternalServerError, "Failed to store avatar")
		return
	}

	resized := imaging.Fill(img, avatarSize, avatarSize, imaging.Center, imaging.Lanczos)
	if err := imaging.Save(resized, filepath.Join(avatarUploadDir, fileName)); err != nil {
		utils.RespondWithError(w, http.StatusInternalServerError, "Failed to store avatar")
		return
	}
	thumb := imaging.Resize(resized, avatarThumbSize, 0, imaging.Lanczos)
	if err := imaging.Save(thumb, filepath.Join(thumbDir, fileName)); err != nil {
		utils.RespondWithError(w, http.StatusInternalServerError, "Failed to store avatar")
		return
	}

	imageURL := "/avatars/" + fileName
	if _, err := db.UserCollection.UpdateOne(ctx,
		bson.M{"userid": targetID},
		bson.M{"$set": bson.M{"profileImage": imageURL, "updatedAt": time.Now()}},
	); err != nil {
		utils.RespondWithError(w, http.StatusInternalServerError, "Failed to update profile")
		return
	}

	utils.SendResponse(w, http.StatusOK, utils.M{
		"profileImage": imageURL,
		"thumbnail":    fmt.Sprintf("/avatars/thumb/%s", fileName),
	})
}
