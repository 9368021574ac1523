// Package model defines the core domain types for the events backend.
package model

import (
	"time"

	"github.com/shopspring/decimal"
)

// Event statuses. Inactive events are hidden from public listings and
// cannot take bookings.
const (
	EventStatusActive   = "active"
	EventStatusInactive = "inactive"
)

// Booking statuses. A booking moves from confirmed to cancelled exactly
// once; cancellation is not reversible.
const (
	BookingStatusConfirmed = "confirmed"
	BookingStatusCancelled = "cancelled"
)

// Event represents a bookable event listed on the portal.
type Event struct {
	ID               string          `json:"id"`
	Title            string          `json:"title"`
	Description      string          `json:"description"`
	ShortDescription string          `json:"short_description"`
	ImageURL         string          `json:"image_url"`
	Date             time.Time       `json:"date"`
	Time             string          `json:"time"`
	Venue            string          `json:"venue"`
	Location         string          `json:"location"`
	CategoryID       *string         `json:"category_id"`
	CategoryName     string          `json:"category_name,omitempty"`
	CategoryColor    string          `json:"category_color,omitempty"`
	TotalTickets     int             `json:"total_tickets"`
	AvailableTickets int             `json:"available_tickets"`
	Price            decimal.Decimal `json:"price"`
	IsFeatured       bool            `json:"is_featured"`
	IsTrending       bool            `json:"is_trending"`
	IsUpcoming       bool            `json:"is_upcoming"`
	PriorityOrder    int             `json:"priority_order"`
	ShowInHero       bool            `json:"show_in_hero"`
	Status           string          `json:"status"`
	CreatedAt        time.Time       `json:"created_at"`
	UpdatedAt        time.Time       `json:"updated_at"`
}

// Booking represents a confirmed or cancelled ticket purchase for an event.
type Booking struct {
	ID               string          `json:"id"`
	EventID          string          `json:"event_id"`
	UserName         string          `json:"user_name"`
	UserEmail        string          `json:"user_email"`
	UserPhone        string          `json:"user_phone"`
	TicketsBooked    int             `json:"tickets_booked"`
	TotalAmount      decimal.Decimal `json:"total_amount"`
	BookingReference string          `json:"booking_reference"`
	Status           string          `json:"status"`
	CreatedAt        time.Time       `json:"created_at"`
	UpdatedAt        time.Time       `json:"updated_at"`
}

// BookingDetail is a booking joined with the display fields of its event.
type BookingDetail struct {
	Booking
	EventTitle string    `json:"event_title"`
	EventDate  time.Time `json:"event_date"`
	EventTime  string    `json:"event_time"`
	EventVenue string    `json:"event_venue"`
}

// Category groups events for browsing and dashboard aggregation.
type Category struct {
	ID          string    `json:"id"`
	Name        string    `json:"name"`
	Description string    `json:"description"`
	Color       string    `json:"color"`
	EventCount  int       `json:"event_count"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

// Discount is a local-shop discount listing.
type Discount struct {
	ID                 string          `json:"id"`
	ShopName           string          `json:"shop_name"`
	ShopCategory       string          `json:"shop_category"`
	DiscountTitle      string          `json:"discount_title"`
	Description        string          `json:"description"`
	DiscountPercentage int             `json:"discount_percentage"`
	OriginalPrice      decimal.Decimal `json:"original_price"`
	DiscountedPrice    decimal.Decimal `json:"discounted_price"`
	ImageURL           string          `json:"image_url"`
	ShopLocation       string          `json:"shop_location"`
	ShopAddress        string          `json:"shop_address"`
	ContactNumber      string          `json:"contact_number"`
	WebsiteURL         string          `json:"website_url"`
	ValidFrom          *time.Time      `json:"valid_from"`
	ValidUntil         *time.Time      `json:"valid_until"`
	TermsConditions    string          `json:"terms_conditions"`
	IsFeatured         bool            `json:"is_featured"`
	PriorityOrder      int             `json:"priority_order"`
	IsActive           bool            `json:"is_active"`
	CreatedAt          time.Time       `json:"created_at"`
	UpdatedAt          time.Time       `json:"updated_at"`
}

// AdminUser is a back-office account. PasswordHash is never serialized.
type AdminUser struct {
	ID           string     `json:"id"`
	Email        string     `json:"email"`
	PasswordHash string     `json:"-"`
	Name         string     `json:"name"`
	Role         string     `json:"role"`
	IsActive     bool       `json:"is_active"`
	LastLogin    *time.Time `json:"last_login"`
	CreatedAt    time.Time  `json:"created_at"`
}

// AdminProfile is the public projection of an AdminUser returned by the
// login and verify endpoints.
type AdminProfile struct {
	ID    string `json:"id"`
	Email string `json:"email"`
	Name  string `json:"name"`
	Role  string `json:"role"`
}

// Profile returns the public projection of the admin account.
func (a *AdminUser) Profile() AdminProfile {
	return AdminProfile{ID: a.ID, Email: a.Email, Name: a.Name, Role: a.Role}
}

// CreateBookingRequest is the payload for creating a booking. All fields
// are required; missing fields are rejected rather than defaulted.
type CreateBookingRequest struct {
	EventID       string `json:"event_id" validate:"required,uuid4"`
	UserName      string `json:"user_name" validate:"required,max=200"`
	UserEmail     string `json:"user_email" validate:"required,email"`
	UserPhone     string `json:"user_phone" validate:"required,max=20"`
	TicketsBooked int    `json:"tickets_booked" validate:"required,gt=0,lte=100"`
}

// CreateBookingResponse is returned on successful booking creation.
type CreateBookingResponse struct {
	BookingID        string          `json:"booking_id"`
	BookingReference string          `json:"booking_reference"`
	TotalAmount      decimal.Decimal `json:"total_amount"`
	Message          string          `json:"message"`
}

// CreateEventRequest is the admin payload for creating an event.
type CreateEventRequest struct {
	Title            string          `json:"title" validate:"required,max=300"`
	Description      string          `json:"description"`
	ShortDescription string          `json:"short_description" validate:"max=500"`
	ImageURL         string          `json:"image_url" validate:"omitempty,url"`
	Date             string          `json:"date" validate:"required,datetime=2006-01-02"`
	Time             string          `json:"time" validate:"required,max=50"`
	Venue            string          `json:"venue" validate:"required,max=300"`
	Location         string          `json:"location" validate:"max=200"`
	CategoryID       *string         `json:"category_id" validate:"omitempty,uuid4"`
	TotalTickets     int             `json:"total_tickets" validate:"required,gt=0,lte=100000"`
	Price            decimal.Decimal `json:"price"`
	IsFeatured       bool            `json:"is_featured"`
	IsTrending       bool            `json:"is_trending"`
	IsUpcoming       bool            `json:"is_upcoming"`
	PriorityOrder    int             `json:"priority_order" validate:"gte=0"`
	ShowInHero       bool            `json:"show_in_hero"`
}

// UpdateEventRequest is the admin payload for updating an event. Ticket
// counters are deliberately absent: total_tickets is fixed at creation and
// available_tickets is owned by the booking service.
type UpdateEventRequest struct {
	Title            string          `json:"title" validate:"required,max=300"`
	Description      string          `json:"description"`
	ShortDescription string          `json:"short_description" validate:"max=500"`
	ImageURL         string          `json:"image_url" validate:"omitempty,url"`
	Date             string          `json:"date" validate:"required,datetime=2006-01-02"`
	Time             string          `json:"time" validate:"required,max=50"`
	Venue            string          `json:"venue" validate:"required,max=300"`
	Location         string          `json:"location" validate:"max=200"`
	CategoryID       *string         `json:"category_id" validate:"omitempty,uuid4"`
	Price            decimal.Decimal `json:"price"`
	IsFeatured       bool            `json:"is_featured"`
	IsTrending       bool            `json:"is_trending"`
	IsUpcoming       bool            `json:"is_upcoming"`
	PriorityOrder    int             `json:"priority_order" validate:"gte=0"`
	ShowInHero       bool            `json:"show_in_hero"`
	Status           string          `json:"status" validate:"required,oneof=active inactive"`
}

// EventFilter narrows public event listings.
type EventFilter struct {
	CategoryID string
	Featured   bool
	Trending   bool
	Upcoming   bool
	Search     string
}

// CategoryRequest is the admin payload for creating or updating a category.
type CategoryRequest struct {
	Name        string `json:"name" validate:"required,max=100"`
	Description string `json:"description" validate:"max=500"`
	Color       string `json:"color" validate:"omitempty,hexcolor"`
}

// DiscountRequest is the admin payload for creating or updating a discount.
type DiscountRequest struct {
	ShopName           string          `json:"shop_name" validate:"required,max=200"`
	ShopCategory       string          `json:"shop_category" validate:"required,max=100"`
	DiscountTitle      string          `json:"discount_title" validate:"required,max=300"`
	Description        string          `json:"description"`
	DiscountPercentage int             `json:"discount_percentage" validate:"gte=0,lte=100"`
	OriginalPrice      decimal.Decimal `json:"original_price"`
	DiscountedPrice    decimal.Decimal `json:"discounted_price"`
	ImageURL           string          `json:"image_url" validate:"omitempty,url"`
	ShopLocation       string          `json:"shop_location" validate:"max=200"`
	ShopAddress        string          `json:"shop_address" validate:"max=500"`
	ContactNumber      string          `json:"contact_number" validate:"max=20"`
	WebsiteURL         string          `json:"website_url" validate:"omitempty,url"`
	ValidFrom          *string         `json:"valid_from" validate:"omitempty,datetime=2006-01-02"`
	ValidUntil         *string         `json:"valid_until" validate:"omitempty,datetime=2006-01-02"`
	TermsConditions    string          `json:"terms_conditions"`
	IsFeatured         bool            `json:"is_featured"`
	PriorityOrder      int             `json:"priority_order" validate:"gte=0"`
}

// LoginRequest is the admin login payload.
type LoginRequest struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

// LoginResponse carries the session token and the admin's public profile.
type LoginResponse struct {
	Token string       `json:"token"`
	Admin AdminProfile `json:"admin"`
}

// CategoryStat is a per-category aggregate for the admin dashboard.
type CategoryStat struct {
	Name          string `json:"name"`
	Color         string `json:"color"`
	EventCount    int    `json:"event_count"`
	TotalBookings int    `json:"total_bookings"`
}

// DashboardStats summarises portal activity for the admin dashboard.
type DashboardStats struct {
	TotalEvents    int             `json:"totalEvents"`
	TotalBookings  int             `json:"totalBookings"`
	TotalRevenue   decimal.Decimal `json:"totalRevenue"`
	UpcomingEvents int             `json:"upcomingEvents"`
	CategoryStats  []CategoryStat  `json:"categoryStats"`
	RecentBookings []BookingDetail `json:"recentBookings"`
}

// Pagination echoes the clamped paging parameters applied to a listing.
type Pagination struct {
	Limit  int `json:"limit"`
	Offset int `json:"offset"`
}

// ErrorResponse is the standard JSON error envelope. Available is only set
// on insufficient-inventory rejections.
type ErrorResponse struct {
	Error     string `json:"error"`
	Available *int   `json:"available,omitempty"`
}
