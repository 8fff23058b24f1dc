package routes

import (
	"net/http"

	"brelis-api/controllers"
	"brelis-api/middleware"

	"github.com/gorilla/mux"
)

// Controllers bundles every resource controller for route registration.
type Controllers struct {
	User     *controllers.UserController
	Product  *controllers.ProductController
	Cart     *controllers.CartController
	Order    *controllers.OrderController
	Admin    *controllers.AdminController
	Review   *controllers.ReviewController
	Lookbook *controllers.LookbookController
	Settings *controllers.SettingsController
	Upload   *controllers.UploadController
	Contact  *controllers.ContactController
}

// RegisterRoutes sets up all the routes for the application under /api.
func RegisterRoutes(router *mux.Router, c Controllers, uploadDir string) {
	api := router.PathPrefix("/api").Subrouter()

	// Public routes
	api.HandleFunc("/auth/register", c.User.Register).Methods("POST")
	api.HandleFunc("/auth/login", c.User.Login).Methods("POST")
	api.HandleFunc("/auth/verify", c.User.VerifyEmail).Methods("GET")

	api.HandleFunc("/products", c.Product.GetProducts).Methods("GET")
	api.HandleFunc("/products/{id}", c.Product.GetProductByID).Methods("GET")

	api.HandleFunc("/reviews/{productID}", c.Review.ListByProduct).Methods("GET")
	api.HandleFunc("/lookbook", c.Lookbook.List).Methods("GET")
	api.HandleFunc("/settings", c.Settings.Get).Methods("GET")
	api.HandleFunc("/contact", c.Contact.Submit).Methods("POST")

	// Authenticated routes
	protected := api.PathPrefix("/").Subrouter()
	protected.Use(middleware.AuthMiddleware)

	protected.HandleFunc("/cart", c.Cart.GetCart).Methods("GET")
	protected.HandleFunc("/cart", c.Cart.ClearCart).Methods("DELETE")
	protected.HandleFunc("/cart/items", c.Cart.AddItem).Methods("POST")
	protected.HandleFunc("/cart/items", c.Cart.UpdateItem).Methods("PUT")
	protected.HandleFunc("/cart/items/{productID}/{size}", c.Cart.RemoveItem).Methods("DELETE")
	protected.HandleFunc("/cart/coupon", c.Cart.ApplyCoupon).Methods("POST")
	protected.HandleFunc("/cart/coupon", c.Cart.RemoveCoupon).Methods("DELETE")
	protected.HandleFunc("/cart/coins", c.Cart.ApplyCoins).Methods("POST")
	protected.HandleFunc("/cart/coins", c.Cart.RemoveCoins).Methods("DELETE")

	protected.HandleFunc("/orders", c.Order.CreateOrder).Methods("POST")
	protected.HandleFunc("/orders", c.Order.GetOrders).Methods("GET")
	protected.HandleFunc("/orders/{id}", c.Order.GetOrderByID).Methods("GET")
	protected.HandleFunc("/orders/{id}/cancel", c.Order.CancelOrder).Methods("POST")

	protected.HandleFunc("/user/profile", c.User.GetProfile).Methods("GET")
	protected.HandleFunc("/user/profile", c.User.UpdateProfile).Methods("PUT")
	protected.HandleFunc("/user/addresses", c.User.AddAddress).Methods("POST")
	protected.HandleFunc("/user/addresses/{id}", c.User.UpdateAddress).Methods("PUT")
	protected.HandleFunc("/user/addresses/{id}", c.User.DeleteAddress).Methods("DELETE")
	protected.HandleFunc("/user/wishlist", c.User.GetWishlist).Methods("GET")
	protected.HandleFunc("/user/wishlist/{productID}", c.User.AddToWishlist).Methods("POST")
	protected.HandleFunc("/user/wishlist/{productID}", c.User.RemoveFromWishlist).Methods("DELETE")
	protected.HandleFunc("/user/coins", c.User.GetCoins).Methods("GET")

	protected.HandleFunc("/reviews", c.Review.Create).Methods("POST")
	protected.HandleFunc("/reviews/{id}", c.Review.Update).Methods("PUT")
	protected.HandleFunc("/reviews/{id}", c.Review.Delete).Methods("DELETE")

	// Admin routes
	admin := api.PathPrefix("/").Subrouter()
	admin.Use(middleware.AuthMiddleware)
	admin.Use(middleware.AdminMiddleware)

	admin.HandleFunc("/products", c.Product.CreateProduct).Methods("POST")
	admin.HandleFunc("/products/{id}", c.Product.UpdateProduct).Methods("PUT")
	admin.HandleFunc("/products/{id}", c.Product.DeleteProduct).Methods("DELETE")

	admin.HandleFunc("/lookbook", c.Lookbook.Create).Methods("POST")
	admin.HandleFunc("/lookbook/{id}", c.Lookbook.Update).Methods("PUT")
	admin.HandleFunc("/lookbook/{id}", c.Lookbook.Delete).Methods("DELETE")

	admin.HandleFunc("/settings/{section}", c.Settings.UpdateSection).Methods("PUT")
	admin.HandleFunc("/upload", c.Upload.Upload).Methods("POST")

	admin.HandleFunc("/admin/users", c.Admin.ListUsers).Methods("GET")
	admin.HandleFunc("/admin/users/{id}", c.Admin.UpdateUser).Methods("PUT")
	admin.HandleFunc("/admin/orders", c.Admin.ListOrders).Methods("GET")
	admin.HandleFunc("/admin/orders/{id}/status", c.Admin.UpdateOrderStatus).Methods("PUT")
	admin.HandleFunc("/admin/dashboard", c.Admin.Dashboard).Methods("GET")

	// Stored images
	router.PathPrefix("/uploads/").Handler(
		http.StripPrefix("/uploads/", http.FileServer(http.Dir(uploadDir))))
}
