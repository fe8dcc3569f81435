package http

import (
	"net/http"

	"github.com/gorilla/mux"
)

// RouterDeps bundles everything the router needs.
type RouterDeps struct {
	Auth          *AuthHandler
	Users         *UserHandler
	Gear          *GearHandler
	Bookings      *BookingHandler
	Messages      *MessageHandler
	Notifications *NotificationHandler
	WS            *WSHandler
	AuthMW        *AuthMiddleware
}

// NewRouter wires all routes under /api/v1. Auth endpoints are public;
// everything else requires a valid access token.
func NewRouter(deps RouterDeps) http.Handler {
	r := mux.NewRouter()
	r.Use(RequestLogger)

	api := r.PathPrefix("/api/v1").Subrouter()

	api.HandleFunc("/auth/signup", deps.Auth.Signup).Methods(http.MethodPost)
	api.HandleFunc("/auth/login", deps.Auth.Login).Methods(http.MethodPost)
	api.HandleFunc("/auth/refresh", deps.Auth.Refresh).Methods(http.MethodPost)

	authed := api.NewRoute().Subrouter()
	authed.Use(deps.AuthMW.Middleware)

	authed.HandleFunc("/users/me", deps.Users.GetProfile).Methods(http.MethodGet)
	authed.HandleFunc("/users/me", deps.Users.UpdateProfile).Methods(http.MethodPut)

	authed.HandleFunc("/gear", deps.Gear.Create).Methods(http.MethodPost)
	authed.HandleFunc("/gear", deps.Gear.Search).Methods(http.MethodGet)
	authed.HandleFunc("/gear/mine", deps.Gear.ListMine).Methods(http.MethodGet)
	authed.HandleFunc("/gear/saved", deps.Gear.ListSaved).Methods(http.MethodGet)
	authed.HandleFunc("/gear/{id:[0-9]+}", deps.Gear.Get).Methods(http.MethodGet)
	authed.HandleFunc("/gear/{id:[0-9]+}", deps.Gear.Update).Methods(http.MethodPut)
	authed.HandleFunc("/gear/{id:[0-9]+}", deps.Gear.Delete).Methods(http.MethodDelete)
	authed.HandleFunc("/gear/{id:[0-9]+}/save", deps.Gear.Save).Methods(http.MethodPost)
	authed.HandleFunc("/gear/{id:[0-9]+}/save", deps.Gear.Unsave).Methods(http.MethodDelete)

	authed.HandleFunc("/bookings", deps.Bookings.Create).Methods(http.MethodPost)
	authed.HandleFunc("/bookings/owner-requests", deps.Bookings.ListOwnerRequests).Methods(http.MethodGet)
	authed.HandleFunc("/bookings/renter-requests", deps.Bookings.ListRenterRequests).Methods(http.MethodGet)
	authed.HandleFunc("/bookings/{id:[0-9]+}", deps.Bookings.Get).Methods(http.MethodGet)
	authed.HandleFunc("/bookings/{id:[0-9]+}/accept", deps.Bookings.Accept()).Methods(http.MethodPost)
	authed.HandleFunc("/bookings/{id:[0-9]+}/reject", deps.Bookings.Reject()).Methods(http.MethodPost)
	authed.HandleFunc("/bookings/{id:[0-9]+}/cancel", deps.Bookings.Cancel()).Methods(http.MethodPost)
	authed.HandleFunc("/bookings/{id:[0-9]+}/mark-paid", deps.Bookings.MarkPaid()).Methods(http.MethodPost)
	authed.HandleFunc("/bookings/{id:[0-9]+}/activate", deps.Bookings.Activate()).Methods(http.MethodPost)
	authed.HandleFunc("/bookings/{id:[0-9]+}/complete", deps.Bookings.Complete()).Methods(http.MethodPost)
	authed.HandleFunc("/bookings/{id:[0-9]+}/mark-read", deps.Bookings.MarkRead).Methods(http.MethodPost)

	authed.HandleFunc("/messages/conversations", deps.Messages.ListConversations).Methods(http.MethodGet)
	authed.HandleFunc("/messages/conversations", deps.Messages.FindOrCreateConversation).Methods(http.MethodPost)
	authed.HandleFunc("/messages/{conversationId}", deps.Messages.ListMessages).Methods(http.MethodGet)
	authed.HandleFunc("/messages/{conversationId}", deps.Messages.PostMessage).Methods(http.MethodPost)
	authed.HandleFunc("/messages/{conversationId}/read", deps.Messages.MarkRead).Methods(http.MethodPost)

	authed.HandleFunc("/notifications", deps.Notifications.List).Methods(http.MethodGet)
	authed.HandleFunc("/notifications/{id:[0-9]+}/read", deps.Notifications.MarkAsRead).Methods(http.MethodPost)

	authed.HandleFunc("/ws", deps.WS.Connect).Methods(http.MethodGet)

	return r
}
