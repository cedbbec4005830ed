package database

import (
	"context"
	"errors"
	"strings"
	"sync"

	"platyo/models"
	"platyo/storage"
)

// Collection keys. Platform entities live under global keys; menu, orders,
// imported customers and the VIP list are keyed per restaurant, mirroring the
// per-tenant layout of the store.
const (
	keyRestaurants   = "restaurants"
	keyUsers         = "users"
	keySubscriptions = "subscriptions"
	keyTickets       = "tickets"
)

func categoriesKey(restaurantID string) string { return "categories:" + restaurantID }
func productsKey(restaurantID string) string   { return "products:" + restaurantID }
func ordersKey(restaurantID string) string     { return "orders:" + restaurantID }
func vipKey(restaurantID string) string        { return "vip:" + restaurantID }
func customersKey(restaurantID string) string  { return "customers:" + restaurantID }

// ErrNotFound is returned when a lookup misses.
var ErrNotFound = errors.New("not found")

// Database exposes typed collections over the blob store. Every accessor
// loads or replaces a whole collection; the mutex keeps concurrent
// read-modify-write sequences from interleaving within this process.
type Database struct {
	mu    sync.Mutex
	store storage.Store
}

// New wraps a blob store.
func New(store storage.Store) *Database {
	return &Database{store: store}
}

// Update runs fn under the database lock, for multi-collection
// read-modify-write sequences that must not interleave.
func (db *Database) Update(fn func() error) error {
	db.mu.Lock()
	defer db.mu.Unlock()
	return fn()
}

// --- restaurants ---

func (db *Database) Restaurants(ctx context.Context) ([]models.Restaurant, error) {
	restaurants := []models.Restaurant{}
	if err := db.store.Load(ctx, keyRestaurants, &restaurants); err != nil {
		return nil, err
	}
	return restaurants, nil
}

func (db *Database) SaveRestaurants(ctx context.Context, restaurants []models.Restaurant) error {
	return db.store.Save(ctx, keyRestaurants, restaurants)
}

func (db *Database) GetRestaurantByID(ctx context.Context, id string) (*models.Restaurant, error) {
	restaurants, err := db.Restaurants(ctx)
	if err != nil {
		return nil, err
	}
	for i := range restaurants {
		if restaurants[i].ID == id {
			return &restaurants[i], nil
		}
	}
	return nil, ErrNotFound
}

func (db *Database) GetRestaurantBySlug(ctx context.Context, slug string) (*models.Restaurant, error) {
	restaurants, err := db.Restaurants(ctx)
	if err != nil {
		return nil, err
	}
	slug = strings.ToLower(slug)
	for i := range restaurants {
		if restaurants[i].Slug == slug {
			return &restaurants[i], nil
		}
	}
	return nil, ErrNotFound
}

// UpsertRestaurant inserts or replaces by id.
func (db *Database) UpsertRestaurant(ctx context.Context, r models.Restaurant) error {
	db.mu.Lock()
	defer db.mu.Unlock()
	restaurants, err := db.Restaurants(ctx)
	if err != nil {
		return err
	}
	for i := range restaurants {
		if restaurants[i].ID == r.ID {
			restaurants[i] = r
			return db.SaveRestaurants(ctx, restaurants)
		}
	}
	restaurants = append(restaurants, r)
	return db.SaveRestaurants(ctx, restaurants)
}

// --- users ---

func (db *Database) Users(ctx context.Context) ([]models.User, error) {
	users := []models.User{}
	if err := db.store.Load(ctx, keyUsers, &users); err != nil {
		return nil, err
	}
	return users, nil
}

func (db *Database) SaveUsers(ctx context.Context, users []models.User) error {
	return db.store.Save(ctx, keyUsers, users)
}

func (db *Database) GetUserByEmail(ctx context.Context, email string) (*models.User, error) {
	users, err := db.Users(ctx)
	if err != nil {
		return nil, err
	}
	email = strings.ToLower(email)
	for i := range users {
		if strings.ToLower(users[i].Email) == email {
			return &users[i], nil
		}
	}
	return nil, ErrNotFound
}

func (db *Database) GetUserByID(ctx context.Context, id string) (*models.User, error) {
	users, err := db.Users(ctx)
	if err != nil {
		return nil, err
	}
	for i := range users {
		if users[i].ID == id {
			return &users[i], nil
		}
	}
	return nil, ErrNotFound
}

// CreateUser appends a user, rejecting duplicate emails.
func (db *Database) CreateUser(ctx context.Context, u models.User) error {
	db.mu.Lock()
	defer db.mu.Unlock()
	users, err := db.Users(ctx)
	if err != nil {
		return err
	}
	for i := range users {
		if strings.EqualFold(users[i].Email, u.Email) {
			return errors.New("email already registered")
		}
	}
	users = append(users, u)
	return db.SaveUsers(ctx, users)
}

// UpdateUser replaces a user by id.
func (db *Database) UpdateUser(ctx context.Context, u models.User) error {
	db.mu.Lock()
	defer db.mu.Unlock()
	users, err := db.Users(ctx)
	if err != nil {
		return err
	}
	for i := range users {
		if users[i].ID == u.ID {
			users[i] = u
			return db.SaveUsers(ctx, users)
		}
	}
	return ErrNotFound
}

// --- menu ---

func (db *Database) Categories(ctx context.Context, restaurantID string) ([]models.Category, error) {
	categories := []models.Category{}
	if err := db.store.Load(ctx, categoriesKey(restaurantID), &categories); err != nil {
		return nil, err
	}
	return categories, nil
}

func (db *Database) SaveCategories(ctx context.Context, restaurantID string, categories []models.Category) error {
	return db.store.Save(ctx, categoriesKey(restaurantID), categories)
}

func (db *Database) Products(ctx context.Context, restaurantID string) ([]models.Product, error) {
	products := []models.Product{}
	if err := db.store.Load(ctx, productsKey(restaurantID), &products); err != nil {
		return nil, err
	}
	return products, nil
}

func (db *Database) SaveProducts(ctx context.Context, restaurantID string, products []models.Product) error {
	return db.store.Save(ctx, productsKey(restaurantID), products)
}

func (db *Database) GetProduct(ctx context.Context, restaurantID, productID string) (*models.Product, error) {
	products, err := db.Products(ctx, restaurantID)
	if err != nil {
		return nil, err
	}
	for i := range products {
		if products[i].ID == productID {
			return &products[i], nil
		}
	}
	return nil, ErrNotFound
}

// --- orders ---

func (db *Database) Orders(ctx context.Context, restaurantID string) ([]models.Order, error) {
	orders := []models.Order{}
	if err := db.store.Load(ctx, ordersKey(restaurantID), &orders); err != nil {
		return nil, err
	}
	return orders, nil
}

func (db *Database) SaveOrders(ctx context.Context, restaurantID string, orders []models.Order) error {
	return db.store.Save(ctx, ordersKey(restaurantID), orders)
}

func (db *Database) GetOrder(ctx context.Context, restaurantID, orderID string) (*models.Order, error) {
	orders, err := db.Orders(ctx, restaurantID)
	if err != nil {
		return nil, err
	}
	for i := range orders {
		if orders[i].ID == orderID {
			return &orders[i], nil
		}
	}
	return nil, ErrNotFound
}

func (db *Database) GetOrderByNumber(ctx context.Context, restaurantID, number string) (*models.Order, error) {
	orders, err := db.Orders(ctx, restaurantID)
	if err != nil {
		return nil, err
	}
	for i := range orders {
		if orders[i].OrderNumber == number {
			return &orders[i], nil
		}
	}
	return nil, ErrNotFound
}

// UpsertOrder inserts or replaces by id.
func (db *Database) UpsertOrder(ctx context.Context, o models.Order) error {
	db.mu.Lock()
	defer db.mu.Unlock()
	orders, err := db.Orders(ctx, o.RestaurantID)
	if err != nil {
		return err
	}
	for i := range orders {
		if orders[i].ID == o.ID {
			orders[i] = o
			return db.SaveOrders(ctx, o.RestaurantID, orders)
		}
	}
	orders = append(orders, o)
	return db.SaveOrders(ctx, o.RestaurantID, orders)
}

// --- customers ---

func (db *Database) VIPPhones(ctx context.Context, restaurantID string) ([]string, error) {
	phones := []string{}
	if err := db.store.Load(ctx, vipKey(restaurantID), &phones); err != nil {
		return nil, err
	}
	return phones, nil
}

func (db *Database) SaveVIPPhones(ctx context.Context, restaurantID string, phones []string) error {
	return db.store.Save(ctx, vipKey(restaurantID), phones)
}

func (db *Database) ImportedCustomers(ctx context.Context, restaurantID string) ([]models.ImportedCustomer, error) {
	customers := []models.ImportedCustomer{}
	if err := db.store.Load(ctx, customersKey(restaurantID), &customers); err != nil {
		return nil, err
	}
	return customers, nil
}

func (db *Database) SaveImportedCustomers(ctx context.Context, restaurantID string, customers []models.ImportedCustomer) error {
	return db.store.Save(ctx, customersKey(restaurantID), customers)
}

// --- subscriptions ---

func (db *Database) Subscriptions(ctx context.Context) ([]models.Subscription, error) {
	subscriptions := []models.Subscription{}
	if err := db.store.Load(ctx, keySubscriptions, &subscriptions); err != nil {
		return nil, err
	}
	return subscriptions, nil
}

func (db *Database) SaveSubscriptions(ctx context.Context, subscriptions []models.Subscription) error {
	return db.store.Save(ctx, keySubscriptions, subscriptions)
}

// --- tickets ---

func (db *Database) Tickets(ctx context.Context) ([]models.SupportTicket, error) {
	tickets := []models.SupportTicket{}
	if err := db.store.Load(ctx, keyTickets, &tickets); err != nil {
		return nil, err
	}
	return tickets, nil
}

func (db *Database) SaveTickets(ctx context.Context, tickets []models.SupportTicket) error {
	return db.store.Save(ctx, keyTickets, tickets)
}

func (db *Database) GetTicket(ctx context.Context, id string) (*models.SupportTicket, error) {
	tickets, err := db.Tickets(ctx)
	if err != nil {
		return nil, err
	}
	for i := range tickets {
		if tickets[i].ID == id {
			return &tickets[i], nil
		}
	}
	return nil, ErrNotFound
}
