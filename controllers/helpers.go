package controllers

import (
	"context"
	"encoding/json"
	"net/http"
	"strings"
	"time"

	"brelis-api/middleware"
	"brelis-api/models"
	"brelis-api/utils"

	"github.com/go-playground/validator/v10"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
)

const requestTimeout = 10 * time.Second

// requestContext is the per-request database deadline used by every handler.
func requestContext() (context.Context, context.CancelFunc) {
	return context.WithTimeout(context.Background(), requestTimeout)
}

// decodeAndValidate decodes the JSON body into dst and runs struct
// validation. On failure it writes the error response and returns false.
func decodeAndValidate(w http.ResponseWriter, r *http.Request, v *validator.Validate, dst any) bool {
	if err := json.NewDecoder(r.Body).Decode(dst); err != nil {
		utils.RespondError(w, http.StatusBadRequest, "Invalid request body")
		return false
	}
	if err := v.Struct(dst); err != nil {
		if errs, ok := err.(validator.ValidationErrors); ok {
			utils.RespondValidationError(w, errs)
		} else {
			utils.RespondError(w, http.StatusBadRequest, "Invalid request body")
		}
		return false
	}
	return true
}

// currentUser resolves the authenticated user document from the request
// claims. Writes the error response and returns nil when that fails.
func currentUser(ctx context.Context, w http.ResponseWriter, r *http.Request, users *mongo.Collection) *models.User {
	claims, ok := middleware.ClaimsFromContext(r.Context())
	if !ok {
		utils.RespondError(w, http.StatusUnauthorized, "Unauthorized")
		return nil
	}

	userID, err := primitive.ObjectIDFromHex(claims.UserID)
	if err != nil {
		utils.RespondError(w, http.StatusUnauthorized, "Invalid token subject")
		return nil
	}

	var user models.User
	if err := users.FindOne(ctx, bson.M{"_id": userID}).Decode(&user); err != nil {
		utils.RespondError(w, http.StatusNotFound, "User not found")
		return nil
	}
	if !user.IsActive {
		utils.RespondError(w, http.StatusForbidden, "Account is disabled")
		return nil
	}
	return &user
}

// adminRequest reports whether the request carries a valid admin bearer
// token. Public handlers use it to gate admin-only view flags without
// requiring authentication for everyone else.
func adminRequest(r *http.Request) bool {
	parts := strings.Split(r.Header.Get("Authorization"), " ")
	if len(parts) != 2 || parts[0] != "Bearer" {
		return false
	}
	claims, err := utils.ParseJWT(parts[1])
	return err == nil && claims.Role == "admin"
}

// objectIDVar parses a path variable as an ObjectID.
func objectIDVar(w http.ResponseWriter, vars map[string]string, name string) (primitive.ObjectID, bool) {
	id, err := primitive.ObjectIDFromHex(vars[name])
	if err != nil {
		utils.RespondError(w, http.StatusBadRequest, "Invalid "+name)
		return primitive.NilObjectID, false
	}
	return id, true
}
