package domain

import "time"

type Ticket struct {
	ID          uint64    `gorm:"primaryKey;autoIncrement" json:"id"`
	ScenicID    uint64    `gorm:"column:scenic_id;not null" json:"scenic_id"`
	TicketName  string    `gorm:"column:ticket_name;type:text;not null" json:"ticket_name"`
	TicketType  string    `gorm:"column:ticket_type;type:text" json:"ticket_type"`
	Price       float64   `gorm:"column:price;type:numeric" json:"price"`
	Stock       int       `gorm:"column:stock;default:0" json:"stock"`
	ValidPeriod string    `gorm:"column:valid_period;type:text" json:"valid_period"`
	Description string    `gorm:"column:description;type:text" json:"description"`
	IsHot       bool      `gorm:"column:is_hot;default:false" json:"is_hot"`
	Bookable    bool      `gorm:"column:bookable;default:true" json:"bookable"`
	CreatedAt   time.Time `gorm:"column:created_at" json:"created_at"`
	UpdatedAt   time.Time `gorm:"column:updated_at" json:"updated_at"`
}

func (Ticket) TableName() string {
	return "tickets"
}

// TicketOrder status lifecycle. Paid and completed orders count as a
// purchase signal everywhere sales or behavior are aggregated.
const (
	OrderStatusPending   = 0
	OrderStatusPaid      = 1
	OrderStatusCancelled = 2
	OrderStatusRefunded  = 3
	OrderStatusCompleted = 4
)

type TicketOrder struct {
	ID         uint64    `gorm:"primaryKey;autoIncrement" json:"id"`
	UserID     uint      `gorm:"column:user_id;not null" json:"user_id"`
	TicketID   uint64    `gorm:"column:ticket_id;not null" json:"ticket_id"`
	Quantity   int       `gorm:"column:quantity;default:1" json:"quantity"`
	TotalPrice float64   `gorm:"column:total_price;type:numeric" json:"total_price"`
	Status     int       `gorm:"column:status;default:0" json:"status"`
	VisitDate  time.Time `gorm:"column:visit_date" json:"visit_date"`
	CreatedAt  time.Time `gorm:"column:created_at;autoCreateTime" json:"created_at"`
	UpdatedAt  time.Time `gorm:"column:updated_at;autoUpdateTime" json:"updated_at"`
}

func (TicketOrder) TableName() string {
	return "ticket_orders"
}

// TicketDetail is the ticket presentation shape, extended with the scenic
// spot name and aggregated sales count.
type TicketDetail struct {
	Ticket
	ScenicName string `json:"scenic_name"`
	SalesCount int    `json:"sales_count"`
}
