package repository

import (
	"errors"
	"time"
)

var ErrObjectNotFound = errors.New("not found")

// Order is identified by the application-assigned "id" field; the Mongo
// ObjectID is never used for cross-collection joins.
type Order struct {
	ID                  string         `bson:"id" json:"id"`
	UserID              string         `bson:"user" json:"user"`
	DeliveryPartnerID   string         `bson:"delivery_partner,omitempty" json:"delivery_partner,omitempty"`
	Items               []OrderItem    `bson:"items" json:"items"`
	TotalAmount         float64        `bson:"total_amount" json:"total_amount"`
	Status              string         `bson:"order_status" json:"order_status"`
	StatusMessage       string         `bson:"status_message,omitempty" json:"status_message,omitempty"`
	StatusChangeHistory []StatusChange `bson:"status_change_history,omitempty" json:"status_change_history,omitempty"`
	DeliveryAddress     *Address       `bson:"delivery_address,omitempty" json:"delivery_address,omitempty"`
	AcceptedPartners    []string       `bson:"accepted_partners,omitempty" json:"accepted_partners,omitempty"`
	AssignedAt          *time.Time     `bson:"assigned_at,omitempty" json:"assigned_at,omitempty"`
	CreatedAt           time.Time      `bson:"created_at" json:"created_at"`
	UpdatedAt           time.Time      `bson:"updated_at" json:"updated_at"`
}

type OrderItem struct {
	ProductID string  `bson:"product" json:"product"`
	Quantity  int     `bson:"quantity" json:"quantity"`
	Price     float64 `bson:"price" json:"price"`
}

type StatusChange struct {
	Status      string    `bson:"status" json:"status"`
	ChangedAt   time.Time `bson:"changed_at" json:"changed_at"`
	ChangedBy   string    `bson:"changed_by,omitempty" json:"changed_by,omitempty"`
	PartnerID   string    `bson:"partner_id,omitempty" json:"partner_id,omitempty"`
	PartnerName string    `bson:"partner_name,omitempty" json:"partner_name,omitempty"`
	Message     string    `bson:"message" json:"message"`
}

type Address struct {
	Line1   string `bson:"line1" json:"line1"`
	Line2   string `bson:"line2,omitempty" json:"line2,omitempty"`
	City    string `bson:"city" json:"city"`
	State   string `bson:"state" json:"state"`
	Pincode string `bson:"pincode" json:"pincode"`
}

// User documents are owned by the user-management subsystem; this service
// only reads them.
type User struct {
	ID         string `bson:"id" json:"id"`
	Name       string `bson:"name" json:"name"`
	Email      string `bson:"email" json:"email"`
	Phone      string `bson:"phone" json:"phone"`
	Role       string `bson:"role" json:"role"`
	IsActive   bool   `bson:"is_active" json:"is_active"`
	IsVerified bool   `bson:"is_verified" json:"is_verified"`
}

type Product struct {
	ID     string   `bson:"id" json:"id"`
	Name   string   `bson:"name" json:"name"`
	Images []string `bson:"images" json:"images"`
}

const (
	AudienceAllUsers     = "all_users"
	AudienceSpecificUser = "specific_user"
)

type Notification struct {
	ID              string     `bson:"id" json:"id"`
	UserID          string     `bson:"user_id,omitempty" json:"user_id,omitempty"`
	Title           string     `bson:"title" json:"title"`
	Message         string     `bson:"message" json:"message"`
	Type            string     `bson:"type" json:"type"`
	OrderID         string     `bson:"order_id,omitempty" json:"order_id,omitempty"`
	For             string     `bson:"for" json:"for"`
	UserFilter      UserFilter `bson:"user_filter,omitempty" json:"user_filter,omitempty"`
	TargetUserCount int64      `bson:"target_user_count,omitempty" json:"target_user_count,omitempty"`
	Read            bool       `bson:"read" json:"read"`
	ReadAt          *time.Time `bson:"read_at" json:"read_at"`
	CreatedAt       time.Time  `bson:"created_at" json:"created_at"`
	// CreatedAtIST is a preformatted display string so consumers never
	// convert timezones at read time. Older documents may lack it.
	CreatedAtIST   string `bson:"created_at_ist,omitempty" json:"created_at_ist,omitempty"`
	Timezone       string `bson:"timezone,omitempty" json:"timezone,omitempty"`
	CreatedBy      string `bson:"created_by" json:"created_by"`
	CreatedByAdmin bool   `bson:"created_by_admin" json:"created_by_admin"`
}

type UserFilter struct {
	ActiveOnly   bool `bson:"active_only" json:"active_only"`
	VerifiedOnly bool `bson:"verified_only" json:"verified_only"`
}

// ShopStatus is a singleton document: the collection holds at most one.
type ShopStatus struct {
	IsOpen     bool       `bson:"is_open" json:"is_open"`
	ReopenTime *time.Time `bson:"reopen_time" json:"reopen_time"`
	Reason     string     `bson:"reason,omitempty" json:"reason,omitempty"`
	UpdatedAt  time.Time  `bson:"updated_at" json:"updated_at"`
	UpdatedBy  string     `bson:"updated_by" json:"updated_by"`
}

// OrderFilter carries raw, user-supplied filter values. Malformed numeric
// and date values are dropped while building the query, not rejected.
type OrderFilter struct {
	Status    string
	FromDate  string
	ToDate    string
	MinAmount string
	MaxAmount string
	Search    string
}

// NotificationFilter narrows the admin-created notification listing.
type NotificationFilter struct {
	Type      string
	For       string
	StartDate string
	EndDate   string
}
