package models

import (
	"time"

	"gorm.io/datatypes"
	"gorm.io/gorm"
)

// ============================================================
// Users (owner/admin)
// ============================================================

// Roles
const (
	RoleOwner = "owner"
	RoleAdmin = "admin"
)

// User represents users table. Role-specific data lives in
// OwnerProfile (owners) and OwnerID (admins).
type User struct {
	ID        uint           `gorm:"primaryKey" json:"id"`
	Name      string         `gorm:"size:100;not null" json:"name"`
	Email     string         `gorm:"uniqueIndex;size:100;not null" json:"email"`
	Password  string         `gorm:"size:255;not null" json:"-"`
	Role      string         `gorm:"size:20;not null" json:"role"`
	Phone     string         `gorm:"size:30" json:"phone"`
	IsActive  bool           `gorm:"default:true" json:"is_active"`
	OwnerID   *uint          `gorm:"index" json:"owner_id,omitempty"`
	CreatedAt time.Time      `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt time.Time      `gorm:"autoUpdateTime" json:"updated_at"`
	DeletedAt gorm.DeletedAt `gorm:"index" json:"-"`

	Owner   *User         `gorm:"foreignKey:OwnerID" json:"-"`
	Profile *OwnerProfile `gorm:"foreignKey:UserID" json:"profile,omitempty"`
}

func (User) TableName() string {
	return "users"
}

// IsOwner reports whether the user has the owner role
func (u *User) IsOwner() bool {
	return u.Role == RoleOwner
}

// UserResponse DTO
type UserResponse struct {
	ID        uint      `json:"id"`
	Name      string    `json:"name"`
	Email     string    `json:"email"`
	Role      string    `json:"role"`
	Phone     string    `json:"phone,omitempty"`
	IsActive  bool      `json:"is_active"`
	OwnerID   *uint     `json:"owner_id,omitempty"`
	CreatedAt time.Time `json:"created_at"`
}

func (u *User) ToResponse() *UserResponse {
	return &UserResponse{
		ID:        u.ID,
		Name:      u.Name,
		Email:     u.Email,
		Role:      u.Role,
		Phone:     u.Phone,
		IsActive:  u.IsActive,
		OwnerID:   u.OwnerID,
		CreatedAt: u.CreatedAt,
	}
}

// OwnerProfile holds the owner-specific payload: rollup counters
// and the payment QR image reference shown to tenants.
type OwnerProfile struct {
	ID           uint      `gorm:"primaryKey" json:"id"`
	UserID       uint      `gorm:"uniqueIndex;not null" json:"user_id"`
	AdminCount   int64     `gorm:"default:0" json:"admin_count"`
	RoomCount    int64     `gorm:"default:0" json:"room_count"`
	TotalRevenue float64   `gorm:"type:decimal(15,2);default:0" json:"total_revenue"`
	QRImage      string    `gorm:"size:255" json:"qr_image,omitempty"`
	UpdatedAt    time.Time `gorm:"autoUpdateTime" json:"updated_at"`
}

func (OwnerProfile) TableName() string {
	return "owner_profiles"
}

// RefreshToken represents refresh_tokens table
type RefreshToken struct {
	ID        uint       `gorm:"primaryKey" json:"id"`
	UserID    uint       `gorm:"index;not null" json:"user_id"`
	TokenHash string     `gorm:"size:255;not null;index" json:"-"`
	ExpiresAt time.Time  `gorm:"not null" json:"expires_at"`
	CreatedAt time.Time  `gorm:"autoCreateTime" json:"created_at"`
	RevokedAt *time.Time `gorm:"index" json:"revoked_at"`
	User      User       `gorm:"foreignKey:UserID" json:"-"`
}

func (RefreshToken) TableName() string {
	return "refresh_tokens"
}

func (rt *RefreshToken) IsRevoked() bool {
	return rt.RevokedAt != nil
}

func (rt *RefreshToken) IsExpired() bool {
	return time.Now().After(rt.ExpiresAt)
}

// ============================================================
// Rooms
// ============================================================

// Room types
const (
	RoomTypeStandard = "standard"
	RoomTypePremium  = "premium"
	RoomTypeVIP      = "vip"
)

// Room statuses
const (
	RoomAvailable   = "available"
	RoomOccupied    = "occupied"
	RoomMaintenance = "maintenance"
)

// Room represents rooms table. Price mirrors PriceMonthly for
// backward compatibility with older report queries.
type Room struct {
	ID              uint           `gorm:"primaryKey" json:"id"`
	RoomNumber      string         `gorm:"uniqueIndex;size:20;not null" json:"room_number"`
	Type            string         `gorm:"size:20;default:'standard'" json:"type"`
	Price           float64        `gorm:"type:decimal(15,2);not null" json:"price"`
	PriceMonthly    float64        `gorm:"type:decimal(15,2);not null" json:"price_monthly"`
	PriceDaily      float64        `gorm:"type:decimal(15,2);default:0" json:"price_daily"`
	Capacity        int            `gorm:"default:1" json:"capacity"`
	Facilities      datatypes.JSON `gorm:"type:json" json:"facilities"`
	Status          string         `gorm:"size:20;default:'available';index" json:"status"`
	OwnerID         *uint          `gorm:"index" json:"owner_id,omitempty"`
	CurrentTenantID *uint          `json:"current_tenant_id"`
	CreatedAt       time.Time      `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt       time.Time      `gorm:"autoUpdateTime" json:"updated_at"`

	CurrentTenant *Tenant `gorm:"foreignKey:CurrentTenantID" json:"current_tenant,omitempty"`
}

func (Room) TableName() string {
	return "rooms"
}

// PriceFor returns the room price for the given rental type
func (r *Room) PriceFor(rentalType string) float64 {
	if rentalType == RentalDaily {
		return r.PriceDaily
	}
	if r.PriceMonthly > 0 {
		return r.PriceMonthly
	}
	return r.Price
}

// ============================================================
// Tenants
// ============================================================

// Rental types
const (
	RentalMonthly = "monthly"
	RentalDaily   = "daily"
)

// Tenant represents tenants table
type Tenant struct {
	ID                     uint       `gorm:"primaryKey" json:"id"`
	Name                   string     `gorm:"size:100;not null" json:"name"`
	Phone                  string     `gorm:"size:30;not null" json:"phone"`
	IDNumber               string     `gorm:"uniqueIndex;size:50;not null" json:"id_number"`
	RentalType             string     `gorm:"size:20;not null;default:'monthly'" json:"rental_type"`
	RoomID                 uint       `gorm:"not null;index" json:"room_id"`
	AdminID                uint       `gorm:"not null" json:"admin_id"`
	IsActive               bool       `gorm:"default:true;index" json:"is_active"`
	PreferredPaymentMethod string     `gorm:"size:20" json:"preferred_payment_method,omitempty"`
	DueDate                string     `gorm:"size:20" json:"due_date,omitempty"`
	CheckoutDate           *time.Time `json:"checkout_date,omitempty"`
	CreatedAt              time.Time  `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt              time.Time  `gorm:"autoUpdateTime" json:"updated_at"`

	Room  *Room `gorm:"foreignKey:RoomID" json:"room,omitempty"`
	Admin *User `gorm:"foreignKey:AdminID" json:"-"`
}

func (Tenant) TableName() string {
	return "tenants"
}

// ============================================================
// Payments
// ============================================================

// Payment methods
const (
	MethodCash     = "cash"
	MethodTransfer = "transfer"
	MethodQR       = "qr"
)

// Payment statuses
const (
	PaymentPending   = "pending"
	PaymentCompleted = "completed"
	PaymentFailed    = "failed"
)

// Payment represents the append-only payments ledger
type Payment struct {
	ID         uint      `gorm:"primaryKey" json:"id"`
	TenantID   uint      `gorm:"not null;index" json:"tenant_id"`
	RoomID     uint      `gorm:"not null;index" json:"room_id"`
	AdminID    *uint     `json:"admin_id,omitempty"`
	RentalType string    `gorm:"size:20;default:'monthly'" json:"rental_type"`
	Method     string    `gorm:"size:20;not null" json:"method"`
	Amount     float64   `gorm:"type:decimal(15,2);not null" json:"amount"`
	Note       string    `gorm:"type:text" json:"note,omitempty"`
	Status     string    `gorm:"size:20;not null;default:'completed';index" json:"status"`
	ProofImage string    `gorm:"size:255" json:"proof_image,omitempty"`
	CreatedAt  time.Time `gorm:"autoCreateTime;index" json:"created_at"`

	Tenant *Tenant `gorm:"foreignKey:TenantID" json:"tenant,omitempty"`
	Room   *Room   `gorm:"foreignKey:RoomID" json:"room,omitempty"`
	Admin  *User   `gorm:"foreignKey:AdminID" json:"-"`
}

func (Payment) TableName() string {
	return "payments"
}

// IsSuccessful reports whether the payment counts toward income.
// "paid" appears in ledgers imported from the legacy schema.
func (p *Payment) IsSuccessful() bool {
	return p.Status == PaymentCompleted || p.Status == "paid"
}

// ============================================================
// Auto Migration
// ============================================================

// AutoMigrate runs auto migration in parent->child order
func AutoMigrate(db *gorm.DB) error {
	return db.AutoMigrate(
		&User{},
		&OwnerProfile{},
		&RefreshToken{},
		&Room{},
		&Tenant{},
		&Payment{},
	)
}
