package database

import (
	"sirekap-dgn/internal/models"

	"gorm.io/gorm"
)

// StatePayload is the full application state as one JSON document. It is
// what goes to (and comes back from) the Google Drive backup file, with
// the same field names the backup file has always used.
type StatePayload struct {
	Transactions      []models.Transaction      `json:"transactions"`
	Customers         []models.Customer         `json:"customers"`
	RepairTickets     []models.RepairTicket     `json:"repairTickets"`
	ChatConversations []models.ChatConversation `json:"chatConversations"`
	VpnAccounts       []models.VpnAccount       `json:"vpnAccounts"`
	CompanyProfile    models.CompanyProfile     `json:"companyProfile"`
	DashboardSettings models.DashboardSettings  `json:"dashboardSettings"`
}

// ExportState loads every collection plus the singletons into one payload
func ExportState() (StatePayload, error) {
	var state StatePayload

	if err := DB.Find(&state.Transactions).Error; err != nil {
		return state, err
	}
	if err := DB.Find(&state.Customers).Error; err != nil {
		return state, err
	}
	if err := DB.Find(&state.RepairTickets).Error; err != nil {
		return state, err
	}
	// Message order is part of the conversation, so the backup keeps it
	messagesByAppendTime := func(db *gorm.DB) *gorm.DB {
		return db.Order("timestamp asc, id asc")
	}
	if err := DB.Preload("Messages", messagesByAppendTime).Find(&state.ChatConversations).Error; err != nil {
		return state, err
	}
	if err := DB.Find(&state.VpnAccounts).Error; err != nil {
		return state, err
	}

	state.CompanyProfile = GetCompanyProfile()
	state.DashboardSettings = GetDashboardSettings()
	return state, nil
}

// ImportState replaces everything with the restored payload. There is no
// merge: restore has always meant "overwrite local state completely".
func ImportState(state StatePayload) error {
	return DB.Transaction(func(tx *gorm.DB) error {
		for _, model := range []interface{}{
			&models.Message{},
			&models.ChatConversation{},
			&models.Transaction{},
			&models.Customer{},
			&models.RepairTicket{},
			&models.VpnAccount{},
		} {
			if err := tx.Where("1 = 1").Delete(model).Error; err != nil {
				return err
			}
		}

		if len(state.Transactions) > 0 {
			if err := tx.Create(&state.Transactions).Error; err != nil {
				return err
			}
		}
		if len(state.Customers) > 0 {
			if err := tx.Create(&state.Customers).Error; err != nil {
				return err
			}
		}
		if len(state.RepairTickets) > 0 {
			if err := tx.Create(&state.RepairTickets).Error; err != nil {
				return err
			}
		}
		if len(state.ChatConversations) > 0 {
			if err := tx.Create(&state.ChatConversations).Error; err != nil {
				return err
			}
		}
		if len(state.VpnAccounts) > 0 {
			if err := tx.Create(&state.VpnAccounts).Error; err != nil {
				return err
			}
		}

		profile := state.CompanyProfile
		profile.ID = 1
		if err := tx.Save(&profile).Error; err != nil {
			return err
		}

		settings := state.DashboardSettings
		settings.ID = 1
		return tx.Save(&settings).Error
	})
}

// GetCompanyProfile returns the singleton row, falling back to the
// documented defaults when it is missing or unreadable.
func GetCompanyProfile() models.CompanyProfile {
	var profile models.CompanyProfile
	if err := DB.First(&profile, 1).Error; err != nil {
		return models.DefaultCompanyProfile()
	}
	return profile
}

// GetDashboardSettings returns the singleton row or the defaults
func GetDashboardSettings() models.DashboardSettings {
	var settings models.DashboardSettings
	if err := DB.First(&settings, 1).Error; err != nil {
		return models.DefaultDashboardSettings()
	}
	return settings
}
