package handlers

import (
	"net/http"
	"regexp"
	"strings"

	"go.uber.org/zap"

	"github.com/eystudio/caloriediet-backend/internal/middleware"
	"github.com/eystudio/caloriediet-backend/internal/models"
	"github.com/eystudio/caloriediet-backend/internal/services"
	"github.com/eystudio/caloriediet-backend/pkg/utils"
)

var emailPattern = regexp.MustCompile(`^[^@\s]+@[^@\s]+\.[^@\s]+$`)

const sessionCookieMaxAge = 30 * 24 * 60 * 60

type sessionResponse struct {
	UserID       string `json:"user_id"`
	Email        string `json:"email"`
	Name         string `json:"name"`
	Picture      string `json:"picture,omitempty"`
	SessionToken string `json:"session_token"`
}

// Register creates an email-password account and logs it in.
func (a *API) Register(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Email    string `json:"email"`
		Password string `json:"password"`
		Name     string `json:"name"`
	}
	if !decodeBody(w, r, &req) {
		return
	}
	req.Email = strings.TrimSpace(strings.ToLower(req.Email))
	if !emailPattern.MatchString(req.Email) {
		respondError(w, http.StatusBadRequest, "Geçersiz email adresi")
		return
	}
	if len(req.Password) < 6 {
		respondError(w, http.StatusBadRequest, "Şifre en az 6 karakter olmalı")
		return
	}

	if _, err := a.Store.Users.GetByEmail(r.Context(), req.Email); err == nil {
		respondError(w, http.StatusBadRequest, "Bu email zaten kayıtlı")
		return
	}

	hash, err := utils.HashPassword(req.Password)
	if err != nil {
		a.respondServiceError(w, err)
		return
	}
	user := &models.User{
		UserID:       services.NewUserID(),
		Email:        req.Email,
		Name:         req.Name,
		AuthType:     models.AuthTypeEmail,
		PasswordHash: hash,
		CreatedAt:    models.NowUTC(),
	}
	user.Normalize()
	if err := a.Store.Users.Insert(r.Context(), user); err != nil {
		a.respondServiceError(w, err)
		return
	}
	a.issueSession(w, r, user)
}

// Login authenticates an email account. Guest and Google accounts are
// rejected with a hint toward their own flow.
func (a *API) Login(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Email    string `json:"email"`
		Password string `json:"password"`
	}
	if !decodeBody(w, r, &req) {
		return
	}
	req.Email = strings.TrimSpace(strings.ToLower(req.Email))

	user, err := a.Store.Users.GetByEmail(r.Context(), req.Email)
	if err != nil {
		respondError(w, http.StatusUnauthorized, "Email veya şifre hatalı")
		return
	}
	switch user.AuthType {
	case models.AuthTypeEmail:
		ok, err := utils.VerifyPassword(req.Password, user.PasswordHash)
		if err != nil || !ok {
			respondError(w, http.StatusUnauthorized, "Email veya şifre hatalı")
			return
		}
	case models.AuthTypeGuest:
		respondError(w, http.StatusBadRequest, "Misafir hesapla şifreli giriş olmaz")
		return
	default:
		respondError(w, http.StatusBadRequest, "Bu hesap Google ile oluşturuldu. Google ile giriş yapın.")
		return
	}
	a.issueSession(w, r, user)
}

// GuestLogin creates a throwaway account with a short session.
func (a *API) GuestLogin(w http.ResponseWriter, r *http.Request) {
	userID := services.NewGuestID()
	user := &models.User{
		UserID:    userID,
		Email:     userID + "@guest.local",
		Name:      "Misafir_" + strings.TrimPrefix(userID, "guest_")[:6],
		AuthType:  models.AuthTypeGuest,
		CreatedAt: models.NowUTC(),
	}
	user.Normalize()
	if err := a.Store.Users.Insert(r.Context(), user); err != nil {
		a.respondServiceError(w, err)
		return
	}
	a.issueSession(w, r, user)
}

func (a *API) issueSession(w http.ResponseWriter, r *http.Request, user *models.User) {
	sess, err := a.Lifecycle.CreateSession(r.Context(), user)
	if err != nil {
		a.respondServiceError(w, err)
		return
	}
	setSessionCookie(w, r, sess.Token, sessionCookieMaxAge)
	respondJSON(w, http.StatusOK, sessionResponse{
		UserID:       user.UserID,
		Email:        user.Email,
		Name:         user.Name,
		Picture:      user.Picture,
		SessionToken: sess.Token,
	})
}

// Me returns the authenticated user.
func (a *API) Me(w http.ResponseWriter, r *http.Request) {
	respondJSON(w, http.StatusOK, middleware.UserFrom(r.Context()))
}

// Logout ends the session and schedules data deletion.
func (a *API) Logout(w http.ResponseWriter, r *http.Request) {
	user := middleware.UserFrom(r.Context())
	notice, err := a.Lifecycle.Logout(r.Context(), middleware.TokenFromRequest(r), user)
	if err != nil {
		a.respondServiceError(w, err)
		return
	}
	clearSessionCookie(w, r)
	respondJSON(w, http.StatusOK, map[string]any{
		"message":                 notice.Message,
		"message_en":              notice.MessageEN,
		"data_retention_days":     notice.RetentionDays,
		"scheduled_deletion_date": notice.ScheduledFor,
		"is_premium":              notice.IsPremium,
	})
}

// DeleteAccount removes the account and all its data immediately.
func (a *API) DeleteAccount(w http.ResponseWriter, r *http.Request) {
	user := middleware.UserFrom(r.Context())
	if err := a.Lifecycle.DeleteAccount(r.Context(), user.UserID); err != nil {
		a.Log.Error("account deletion failed", zap.String("user_id", user.UserID), zap.Error(err))
		respondError(w, http.StatusInternalServerError, "Failed to delete account")
		return
	}
	clearSessionCookie(w, r)
	respondJSON(w, http.StatusOK, map[string]string{"message": "Account deleted successfully"})
}
