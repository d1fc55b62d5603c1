package handler

import (
	"github.com/talentbridge/portal-gateway/internal/core/domain"
)

// errorResponse is the standard error envelope returned on all 4xx/5xx responses.
type errorResponse struct {
	Success bool   `json:"success"`
	Message string `json:"message"`
}

func failure(msg string) errorResponse {
	return errorResponse{Success: false, Message: msg}
}

// --- Session ---

type loginRequest struct {
	Email    string `json:"email"    validate:"required,email"`
	Password string `json:"password" validate:"required,min=1,max=256"`
}

type sessionResponse struct {
	Success         bool         `json:"success"`
	User            *domain.User `json:"user"`
	IsAuthenticated bool         `json:"isAuthenticated"`
	IsLoading       bool         `json:"isLoading"`
	Home            string       `json:"home,omitempty"`
}

type loginResponse struct {
	Success bool         `json:"success"`
	User    *domain.User `json:"user"`
	Home    string       `json:"home"`
}

type logoutResponse struct {
	Success bool   `json:"success"`
	Message string `json:"message"`
}

// --- Notifications ---

type notificationIDParam struct {
	ID string `param:"id" validate:"required,max=128"`
}

type notificationListResponse struct {
	Success     bool                  `json:"success"`
	Data        []domain.Notification `json:"data"`
	UnreadCount int                   `json:"unreadCount"`
}

type markReadResponse struct {
	Success     bool `json:"success"`
	Updated     int  `json:"updated"`
	UnreadCount int  `json:"unreadCount"`
}

type toastListResponse struct {
	Success bool           `json:"success"`
	Data    []domain.Toast `json:"data"`
}

// --- Layout shells ---

type navItem struct {
	Label string `json:"label"`
	Href  string `json:"href"`
	Icon  string `json:"icon,omitempty"`
}

type shellHeader struct {
	Title       string `json:"title"`
	DisplayName string `json:"displayName"`
	Role        string `json:"role"`
	UnreadCount int    `json:"unreadCount"`
}

type shellFooter struct {
	Text string `json:"text"`
}

type shellResponse struct {
	Success bool        `json:"success"`
	Section string      `json:"section"`
	Home    string      `json:"home"`
	Header  shellHeader `json:"header"`
	Sidebar []navItem   `json:"sidebar"`
	Footer  shellFooter `json:"footer"`
}

// --- Health ---

type healthResponse struct {
	Status string            `json:"status"`
	Checks map[string]string `json:"checks,omitempty"`
}
