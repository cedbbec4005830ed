package routes

import (
	"platyo/controllers"
	"platyo/middleware"

	"github.com/gorilla/mux"
)

// Controllers bundles every controller the route table wires up.
type Controllers struct {
	User         *controllers.UserController
	Menu         *controllers.MenuController
	Cart         *controllers.CartController
	Order        *controllers.OrderController
	Catalog      *controllers.CatalogController
	Restaurant   *controllers.RestaurantController
	Customer     *controllers.CustomerController
	Subscription *controllers.SubscriptionController
	Ticket       *controllers.TicketController
}

// RegisterRoutes sets up all the routes for the application
func RegisterRoutes(router *mux.Router, c Controllers) {
	// Public auth routes
	router.HandleFunc("/register", c.User.Register).Methods("POST")
	router.HandleFunc("/login", c.User.Login).Methods("POST")
	router.HandleFunc("/verify", c.User.VerifyEmail).Methods("GET")

	// Public storefront, per restaurant slug
	storefront := router.PathPrefix("/r/{slug}").Subrouter()
	storefront.HandleFunc("/menu", c.Menu.GetMenu).Methods("GET")
	storefront.HandleFunc("/cart", c.Cart.GetCart).Methods("GET")
	storefront.HandleFunc("/cart", c.Cart.ClearCart).Methods("DELETE")
	storefront.HandleFunc("/cart/items", c.Cart.AddToCart).Methods("POST")
	storefront.HandleFunc("/cart/items", c.Cart.UpdateCartItem).Methods("PUT")
	storefront.HandleFunc("/cart/items", c.Cart.RemoveFromCart).Methods("DELETE")
	storefront.HandleFunc("/checkout", c.Order.Checkout).Methods("POST")
	storefront.HandleFunc("/orders/{number}", c.Order.TrackOrder).Methods("GET")

	// Authenticated back office
	admin := router.PathPrefix("/admin").Subrouter()
	admin.Use(middleware.AuthMiddleware)
	admin.HandleFunc("/profile", c.User.GetProfile).Methods("GET")
	admin.HandleFunc("/restaurants", c.Restaurant.CreateRestaurant).Methods("POST")
	admin.HandleFunc("/restaurants/mine", c.Restaurant.ListMyRestaurants).Methods("GET")

	// Per-restaurant management (ownership checked in the controllers)
	manage := admin.PathPrefix("/restaurants/{id}").Subrouter()
	manage.HandleFunc("", c.Restaurant.GetRestaurant).Methods("GET")
	manage.HandleFunc("", c.Restaurant.UpdateRestaurant).Methods("PUT")

	manage.HandleFunc("/categories", c.Catalog.ListCategories).Methods("GET")
	manage.HandleFunc("/categories", c.Catalog.CreateCategory).Methods("POST")
	manage.HandleFunc("/categories/{categoryId}", c.Catalog.UpdateCategory).Methods("PUT")
	manage.HandleFunc("/categories/{categoryId}", c.Catalog.DeleteCategory).Methods("DELETE")

	manage.HandleFunc("/products", c.Catalog.ListProducts).Methods("GET")
	manage.HandleFunc("/products", c.Catalog.CreateProduct).Methods("POST")
	manage.HandleFunc("/products/{productId}", c.Catalog.UpdateProduct).Methods("PUT")
	manage.HandleFunc("/products/{productId}", c.Catalog.DeleteProduct).Methods("DELETE")

	manage.HandleFunc("/orders", c.Order.ListOrders).Methods("GET")
	manage.HandleFunc("/orders", c.Order.CreateManualOrder).Methods("POST")
	manage.HandleFunc("/orders/{orderId}", c.Order.GetOrder).Methods("GET")
	manage.HandleFunc("/orders/{orderId}/advance", c.Order.AdvanceOrder).Methods("POST")
	manage.HandleFunc("/orders/{orderId}/status", c.Order.SetOrderStatus).Methods("PUT")
	manage.HandleFunc("/orders/{orderId}/notification", c.Order.GetNotification).Methods("GET")
	manage.HandleFunc("/orders/{orderId}/receipt", c.Order.GetReceipt).Methods("GET")

	manage.HandleFunc("/customers", c.Customer.ListCustomers).Methods("GET")
	manage.HandleFunc("/customers/vip", c.Customer.SetVIP).Methods("PUT")
	manage.HandleFunc("/customers/contact", c.Customer.UpdateContactInfo).Methods("PUT")
	manage.HandleFunc("/customers/export", c.Customer.ExportCSV).Methods("GET")
	manage.HandleFunc("/customers/import/preview", c.Customer.PreviewImportCSV).Methods("POST")
	manage.HandleFunc("/customers/import", c.Customer.ImportCSV).Methods("POST")

	manage.HandleFunc("/subscription", c.Subscription.GetMySubscription).Methods("GET")
	manage.HandleFunc("/tickets", c.Ticket.CreateTicket).Methods("POST")
	manage.HandleFunc("/tickets", c.Ticket.ListTicketsForRestaurant).Methods("GET")

	admin.HandleFunc("/tickets/{ticketId}/reply", c.Ticket.ReplyTicket).Methods("POST")

	// Superadmin surface
	super := router.PathPrefix("/superadmin").Subrouter()
	super.Use(middleware.AuthMiddleware)
	super.Use(middleware.SuperadminMiddleware)
	super.HandleFunc("/restaurants", c.Restaurant.ListRestaurants).Methods("GET")
	super.HandleFunc("/restaurants/{id}/active", c.Restaurant.SetRestaurantActive).Methods("PUT")
	super.HandleFunc("/users", c.User.ListUsers).Methods("GET")
	super.HandleFunc("/subscriptions", c.Subscription.ListSubscriptions).Methods("GET")
	super.HandleFunc("/subscriptions", c.Subscription.CreateSubscription).Methods("POST")
	super.HandleFunc("/subscriptions/{subscriptionId}", c.Subscription.UpdateSubscription).Methods("PUT")
	super.HandleFunc("/tickets", c.Ticket.ListAllTickets).Methods("GET")
	super.HandleFunc("/tickets/{ticketId}/close", c.Ticket.CloseTicket).Methods("PUT")
}
