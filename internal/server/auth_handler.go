package server

import (
	"context"
	"net/http"

	"go.uber.org/zap"

	"github.com/hariombhu/hariombhu-Smart-Resume-Builder/internal/blob"
	"github.com/hariombhu/hariombhu-Smart-Resume-Builder/internal/observability"
	"github.com/hariombhu/hariombhu-Smart-Resume-Builder/internal/server/middleware"
	"github.com/hariombhu/hariombhu-Smart-Resume-Builder/internal/types"
)

// AuthHandler handles authentication and profile HTTP requests.
type AuthHandler struct {
	userService *UserService
	jwtService  *JWTService
	blobs       blob.Store
	blobBackend string
	logger      *zap.Logger
}

// NewAuthHandler creates a new AuthHandler with the given dependencies.
func NewAuthHandler(userService *UserService, jwtService *JWTService, blobs blob.Store, blobBackend string, logger *zap.Logger) *AuthHandler {
	return &AuthHandler{
		userService: userService,
		jwtService:  jwtService,
		blobs:       blobs,
		blobBackend: blobBackend,
		logger:      logger,
	}
}

// Register handles user registration requests.
func (h *AuthHandler) Register(w http.ResponseWriter, r *http.Request) {
	var req types.CreateUserRequest
	if !decodeJSON(w, r, &req) {
		return
	}
	if err := req.Validate(); err != nil {
		validationResponse(w, extractValidationErrors(err))
		return
	}

	user, err := h.userService.Register(r.Context(), &req)
	if err != nil {
		writeError(w, h.logger, r, err)
		return
	}
	h.respondWithToken(w, r, http.StatusCreated, user)
}

// Login handles user login requests.
func (h *AuthHandler) Login(w http.ResponseWriter, r *http.Request) {
	h.login(w, r, h.userService.Login)
}

// AdminLogin handles login requests that must resolve to an admin account.
func (h *AuthHandler) AdminLogin(w http.ResponseWriter, r *http.Request) {
	h.login(w, r, h.userService.AdminLogin)
}

func (h *AuthHandler) login(w http.ResponseWriter, r *http.Request,
	authenticate func(ctx context.Context, req *types.LoginRequest) (*types.User, error)) {
	var req types.LoginRequest
	if !decodeJSON(w, r, &req) {
		return
	}
	if err := req.Validate(); err != nil {
		validationResponse(w, extractValidationErrors(err))
		return
	}

	user, err := authenticate(r.Context(), &req)
	if err != nil {
		writeError(w, h.logger, r, err)
		return
	}
	h.respondWithToken(w, r, http.StatusOK, user)
}

func (h *AuthHandler) respondWithToken(w http.ResponseWriter, r *http.Request, status int, user *types.User) {
	token, err := h.jwtService.GenerateToken(user.ID)
	if err != nil {
		writeError(w, h.logger, r, err)
		return
	}
	jsonResponse(w, status, types.LoginResponse{User: user, Token: token})
}

// Me returns the authenticated user's profile.
func (h *AuthHandler) Me(w http.ResponseWriter, r *http.Request) {
	userID, err := middleware.GetUserID(r)
	if err != nil {
		errorResponse(w, http.StatusUnauthorized, "Unauthorized")
		return
	}
	user, err := h.userService.GetProfile(r.Context(), userID)
	if err != nil {
		writeError(w, h.logger, r, err)
		return
	}
	jsonResponse(w, http.StatusOK, user)
}

// UpdateProfile changes name, email or profile photo URL.
func (h *AuthHandler) UpdateProfile(w http.ResponseWriter, r *http.Request) {
	userID, err := middleware.GetUserID(r)
	if err != nil {
		errorResponse(w, http.StatusUnauthorized, "Unauthorized")
		return
	}
	var req types.UpdateProfileRequest
	if !decodeJSON(w, r, &req) {
		return
	}
	if err := req.Validate(); err != nil {
		validationResponse(w, extractValidationErrors(err))
		return
	}

	user, err := h.userService.UpdateProfile(r.Context(), userID, &req)
	if err != nil {
		writeError(w, h.logger, r, err)
		return
	}
	jsonResponse(w, http.StatusOK, user)
}

// UploadProfilePhoto stores an image in the blob store and links it to the user.
func (h *AuthHandler) UploadProfilePhoto(w http.ResponseWriter, r *http.Request) {
	userID, err := middleware.GetUserID(r)
	if err != nil {
		errorResponse(w, http.StatusUnauthorized, "Unauthorized")
		return
	}

	up, err := readUpload(w, r, profilePhotoPolicy)
	if err != nil {
		writeError(w, h.logger, r, err)
		return
	}

	url, err := h.blobs.Upload(r.Context(), blob.NewKey(blob.FolderProfilePhotos, up.filename), up.contentType, up.data)
	if err != nil {
		observability.BlobUploads.WithLabelValues(h.blobBackend, "failure").Inc()
		writeError(w, h.logger, r, err)
		return
	}
	observability.BlobUploads.WithLabelValues(h.blobBackend, "success").Inc()

	user, err := h.userService.SetProfilePhoto(r.Context(), userID, url)
	if err != nil {
		writeError(w, h.logger, r, err)
		return
	}
	jsonResponse(w, http.StatusOK, user)
}
