package models

import (
	"time"
)

// TransactionType - income or expense
type TransactionType string

const (
	TransactionIncome  TransactionType = "income"
	TransactionExpense TransactionType = "expense"
)

// TransactionMode - how the money moved
type TransactionMode string

const (
	ModeCash     TransactionMode = "cash"
	ModeTransfer TransactionMode = "transfer"
)

// SubscriptionType values match the labels the customer form offers
const (
	SubscriptionPPPoE        = "PPPoE"
	SubscriptionStatic       = "Static"
	SubscriptionHotspot      = "Hotspot"
	SubscriptionMitraVoucher = "Mitra Voucher"
)

// RepairStatus - lifecycle of a repair ticket (labels shown to the user)
type RepairStatus string

const (
	RepairNew        RepairStatus = "Baru"
	RepairInProgress RepairStatus = "Dalam Pengerjaan"
	RepairCompleted  RepairStatus = "Selesai"
)

// ChatStatus - lifecycle of a customer conversation
type ChatStatus string

const (
	ChatOpen       ChatStatus = "Buka"
	ChatInProgress ChatStatus = "Dalam Proses"
	ChatClosed     ChatStatus = "Selesai"
)

// VpnProtocol options offered by the VPN account form
const (
	ProtocolOpenVPN   = "OpenVPN"
	ProtocolWireGuard = "WireGuard"
	ProtocolL2TP      = "L2TP"
	ProtocolSSTP      = "SSTP"
)

// User - The person logging into the dashboard
type User struct {
	ID           string    `gorm:"primaryKey;size:32" json:"id"`
	Username     string    `gorm:"uniqueIndex;size:50" json:"username"`
	PasswordHash string    `json:"-"` // Never return this in JSON
	CreatedAt    time.Time `json:"createdAt"`
}

// Customer - A subscriber paying a monthly fee
type Customer struct {
	ID               string          `gorm:"primaryKey;size:32" json:"id"`
	Name             string          `json:"name"`
	Phone            string          `json:"phone,omitempty"`
	Fee              float64         `json:"fee"`
	Paid             bool            `json:"paid"`
	LastPaymentDate  string          `gorm:"size:40" json:"lastPaymentDate,omitempty"`
	LastPaymentMode  TransactionMode `gorm:"size:10" json:"lastPaymentMode,omitempty"`
	SubscriptionType string          `gorm:"size:20" json:"subscriptionType,omitempty"`
}

// Transaction - One bookkeeping entry.
// Dates are stored as the plain "YYYY-MM-DD" strings the forms submit,
// because the chart buckets transactions by the exact date string.
type Transaction struct {
	ID          string          `gorm:"primaryKey;size:32" json:"id"`
	Date        string          `gorm:"size:30;index" json:"date"`
	Description string          `json:"description"`
	Amount      float64         `json:"amount"`
	Type        TransactionType `gorm:"size:10" json:"type"`
	Mode        TransactionMode `gorm:"size:10" json:"mode,omitempty"`
	Category    string          `gorm:"size:50" json:"category,omitempty"`
	Proof       string          `gorm:"type:text" json:"proof,omitempty"` // base64 image of the payment proof
}

// RepairTicket - Intake record for a repair/service job
type RepairTicket struct {
	ID            string       `gorm:"primaryKey;size:32" json:"id"`
	ReceivedDate  string       `gorm:"size:30" json:"receivedDate"`
	CustomerName  string       `json:"customerName"`
	Contact       string       `json:"contact,omitempty"`
	Address       string       `json:"address,omitempty"`
	Description   string       `json:"description"`
	Technician    string       `json:"technician,omitempty"`
	Cost          float64      `json:"cost,omitempty"`
	Status        RepairStatus `gorm:"size:30" json:"status"`
	CompletedDate string       `gorm:"size:30" json:"completedDate,omitempty"`
}

// ChatConversation - One customer thread in the AI-assisted chat helper
type ChatConversation struct {
	ID            string     `gorm:"primaryKey;size:32" json:"id"`
	CustomerName  string     `json:"customerName"`
	CustomerPhone string     `json:"customerPhone"`
	Messages      []Message  `gorm:"foreignKey:ConversationID" json:"messages"`
	Status        ChatStatus `gorm:"size:30" json:"status"`
	LastUpdate    string     `gorm:"size:40" json:"lastUpdate"`
}

// Message - Append-only entry inside a conversation
type Message struct {
	ID             string `gorm:"primaryKey;size:40" json:"id"`
	ConversationID string `gorm:"size:32;index" json:"-"`
	Text           string `gorm:"type:text" json:"text"`
	Sender         string `gorm:"size:10" json:"sender"` // 'customer' or 'assistant'
	Timestamp      string `gorm:"size:40" json:"timestamp"`
}

// VpnAccount - A provisioned VPN login sold to a customer.
// The expired / expiring-soon / active state is derived from ExpiryDate
// at read time, never stored.
type VpnAccount struct {
	ID           string `gorm:"primaryKey;size:32" json:"id"`
	Username     string `json:"username"`
	Password     string `json:"password"` // shown and copied to the customer, so kept readable
	Server       string `json:"server"`
	Protocol     string `gorm:"size:20" json:"protocol"`
	ExpiryDate   string `gorm:"size:30" json:"expiryDate"`
	CreationDate string `gorm:"size:30" json:"creationDate"`
	CustomerID   string `gorm:"size:32" json:"customerId,omitempty"`
	Notes        string `gorm:"type:text" json:"notes,omitempty"`
}

// CompanyProfile - Singleton row (ID is always 1)
type CompanyProfile struct {
	ID           uint   `gorm:"primaryKey" json:"-"`
	Name         string `json:"name"`
	Address      string `json:"address"`
	Phone        string `json:"phone"`
	Email        string `json:"email"`
	Logo         string `gorm:"type:text" json:"logo,omitempty"` // base64 encoded image
	DirectorName string `json:"directorName,omitempty"`
}

// DashboardSettings - Singleton row (ID is always 1)
type DashboardSettings struct {
	ID                          uint   `gorm:"primaryKey" json:"-"`
	ShowSummary                 bool   `json:"showSummary"`
	ShowProfitSharing           bool   `json:"showProfitSharing"`
	ShowMonthlySummary          bool   `json:"showMonthlySummary"`
	ShowChart                   bool   `json:"showChart"`
	ShowCategoryChart           bool   `json:"showCategoryChart"`
	Theme                       string `gorm:"size:10" json:"theme"` // 'light' or 'dark'
	LoginMarqueeText            string `json:"loginMarqueeText"`
	DashboardTitle              string `json:"dashboardTitle"`
	EnableTelegramNotifications bool   `json:"enableTelegramNotifications"`
	TelegramBotToken            string `json:"telegramBotToken,omitempty"`
	TelegramChatID              string `json:"telegramChatId,omitempty"`
	GoogleClientID              string `json:"googleClientId,omitempty"`
	GoogleSheetID               string `json:"googleSheetId,omitempty"`
	LastBackupTimestamp         string `gorm:"size:40" json:"lastBackupTimestamp,omitempty"`
}

// DefaultCompanyProfile is what a fresh install shows before the profile is edited
func DefaultCompanyProfile() CompanyProfile {
	return CompanyProfile{
		ID:           1,
		Name:         "Sirekap DGN",
		Address:      "Jalan Digital No. 1, Kota Internet",
		Phone:        "081234567890",
		Email:        "kontak@dgn.com",
		DirectorName: "Nama Direktur Anda",
	}
}

// DefaultDashboardSettings is used whenever the settings row is missing
func DefaultDashboardSettings() DashboardSettings {
	return DashboardSettings{
		ID:                 1,
		ShowSummary:        true,
		ShowProfitSharing:  true,
		ShowMonthlySummary: true,
		ShowChart:          true,
		ShowCategoryChart:  true,
		Theme:              "light",
		LoginMarqueeText:   "awali dengan bismilah, akhiri dengan alhamdulilah",
		DashboardTitle:     "Dasbor Utama",
	}
}
