package domain

import "time"

// Enumerations
const (
	RoleAdmin   UserRole = "admin"
	RoleManager UserRole = "manager"
	RoleStaff   UserRole = "staff"

	OrderDelivery OrderType = "delivery"
	OrderPickup   OrderType = "pickup"

	StatusConfirmed OrderStatus = "confirmed"
	StatusKitchen   OrderStatus = "kitchen"
	StatusDelivery  OrderStatus = "delivery"
	StatusCompleted OrderStatus = "completed"
	StatusCanceled  OrderStatus = "canceled"
	StatusArchived  OrderStatus = "archived"

	PayCash  PaymentMethod = "cash"
	PayCard  PaymentMethod = "card"
	PayPix   PaymentMethod = "pix"
	PayFiado PaymentMethod = "fiado"

	DiscountNone    DiscountKind = ""
	DiscountFixed   DiscountKind = "fixed"
	DiscountPercent DiscountKind = "percent"

	CategoryPizza   ProductCategory = "pizza"
	CategoryDrink   ProductCategory = "drink"
	CategoryDessert ProductCategory = "dessert"
	CategoryExtra   ProductCategory = "extra"
)

type UserRole string
type OrderType string
type OrderStatus string
type PaymentMethod string
type DiscountKind string
type ProductCategory string

// CancelReasons is the closed list a cancellation must pick from.
var CancelReasons = []string{
	"customer gave up",
	"wrong order",
	"out of ingredients",
	"delivery problem",
	"duplicate order",
	"other",
}

// ValidCancelReason reports whether reason is one of CancelReasons.
func ValidCancelReason(reason string) bool {
	for _, r := range CancelReasons {
		if r == reason {
			return true
		}
	}
	return false
}

// Terminal reports whether no forward transition can leave the status.
func (s OrderStatus) Terminal() bool {
	return s == StatusCompleted || s == StatusCanceled || s == StatusArchived
}

// SizeTier maps a pizza size (piece count) to its price.
type SizeTier struct {
	Pieces int
	Price  int64
}

type Product struct {
	Name        string
	Category    ProductCategory
	Ingredients []string
	// Price is set for single-price items; Tiers for pizzas.
	Price int64
	Tiers []SizeTier
}

// TierPrice returns the price of the tier with the given piece count.
func (p Product) TierPrice(pieces int) (int64, bool) {
	for _, t := range p.Tiers {
		if t.Pieces == pieces {
			return t.Price, true
		}
	}
	return 0, false
}

// CartItem is one line of an order. Flavors holds every selected flavor
// for split pizzas; single-price items carry only the primary name.
type CartItem struct {
	ID          string
	Name        string
	Category    ProductCategory
	Flavors     []string
	Pieces      int
	UnitPrice   int64
	Qty         int
	Observation string
}

type Customer struct {
	ID           int64
	Name         string
	Phone        string
	Address      string
	Neighborhood string
	Reference    string
	OrderCount   int
	TotalSpent   int64
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

// CustomerSnapshot is the customer data frozen into an order at creation.
type CustomerSnapshot struct {
	Name         string
	Phone        string
	Address      string
	Neighborhood string
	Reference    string
}

type Order struct {
	Number        int64
	Type          OrderType
	Status        OrderStatus
	Customer      CustomerSnapshot
	Items         []CartItem
	Subtotal      int64
	Discount      int64
	DeliveryFee   int64
	Total         int64
	PaymentMethod PaymentMethod
	ChangeFor     int64
	Operator      string
	Driver        string
	CreatedAt     time.Time
	Deadline      time.Time
	Cancel        *CancelInfo
}

type CancelInfo struct {
	Reason     string
	Actor      string
	CanceledAt time.Time
}

type Employee struct {
	ID        int64
	Name      string
	Role      string
	PayPeriod int64
	IsDriver  bool
	Active    bool
	CreatedAt time.Time
	UpdatedAt time.Time
}

// ActiveShift joins an employee to today's schedule. Kept local only,
// never pushed to the remote backend.
type ActiveShift struct {
	EmployeeID int64
	Name       string
	Period     int
}

// BlockedItem marks a product or ingredient name as unavailable.
// Existence means blocked.
type BlockedItem struct {
	Name      string
	BlockedBy string
	CreatedAt time.Time
}

type User struct {
	ID           int64
	Name         string
	Email        string
	Role         UserRole
	IsGoogle     bool
	PasswordHash *string
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

// Settings drives order intake: the store-open switch, the shift
// enforcement toggle and the promised-time SLAs per order type.
type Settings struct {
	BusinessName    string
	BusinessAddress string
	BusinessPhone   string
	ReceiptFooter   string
	StoreOpen       bool
	EnforceShift    bool
	DeliverySLAMin  int
	PickupSLAMin    int
	CurrencyCode    string
	UpdatedAt       time.Time
}
