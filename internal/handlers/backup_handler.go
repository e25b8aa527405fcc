package handlers

import (
	"bytes"
	"encoding/json"
	"log"
	"net/http"
	"os"
	"time"

	"sirekap-dgn/internal/database"
	"sirekap-dgn/internal/documents"
	"sirekap-dgn/internal/models"

	"github.com/gin-gonic/gin"
	"google.golang.org/api/drive/v3"
	"google.golang.org/api/option"
	"google.golang.org/api/sheets/v4"
)

// The Drive backup is always one well-known file; backup overwrites it,
// restore reads it back.
const backupFileName = "sirekap_dgn_backup.json"

func googleCredentials() (option.ClientOption, bool) {
	path := os.Getenv("GOOGLE_CREDENTIALS_FILE")
	if path == "" {
		return nil, false
	}
	return option.WithCredentialsFile(path), true
}

// findBackupFileID looks the backup file up by name, skipping trashed copies
func findBackupFileID(srv *drive.Service) (string, error) {
	list, err := srv.Files.List().
		Q("name = '" + backupFileName + "' and trashed = false").
		Spaces("drive").
		Fields("files(id, name)").
		PageSize(1).
		Do()
	if err != nil {
		return "", err
	}
	if len(list.Files) == 0 {
		return "", nil
	}
	return list.Files[0].Id, nil
}

// --- POST: Back the whole state up to Google Drive ---
func BackupToDrive(c *gin.Context) {
	creds, ok := googleCredentials()
	if !ok {
		c.JSON(http.StatusServiceUnavailable, gin.H{"error": "Backup belum dikonfigurasi (GOOGLE_CREDENTIALS_FILE)."})
		return
	}

	// 1. Collect everything into the backup document
	state, err := database.ExportState()
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to export data"})
		return
	}
	payload, err := json.Marshal(state)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to encode data"})
		return
	}

	// 2. Talk to Drive
	srv, err := drive.NewService(c.Request.Context(), creds, option.WithScopes(drive.DriveFileScope))
	if err != nil {
		c.JSON(http.StatusBadGateway, gin.H{"error": "Gagal terhubung ke Google Drive."})
		return
	}

	fileID, err := findBackupFileID(srv)
	if err != nil {
		c.JSON(http.StatusBadGateway, gin.H{"error": "Gagal mencari file backup."})
		return
	}

	// 3. Overwrite the existing backup, or create it the first time
	if fileID != "" {
		_, err = srv.Files.Update(fileID, &drive.File{}).Media(bytes.NewReader(payload)).Do()
	} else {
		_, err = srv.Files.Create(&drive.File{
			Name:     backupFileName,
			MimeType: "application/json",
		}).Media(bytes.NewReader(payload)).Do()
	}
	if err != nil {
		c.JSON(http.StatusBadGateway, gin.H{"error": "Gagal mengunggah backup."})
		return
	}

	// 4. Remember when the last successful backup happened
	timestamp := time.Now().Format(time.RFC3339)
	settings := database.GetDashboardSettings()
	settings.ID = 1
	settings.LastBackupTimestamp = timestamp
	if err := database.DB.Save(&settings).Error; err != nil {
		log.Println("⚠️ Backup uploaded but timestamp not saved:", err)
	}

	log.Println("✅ Backup uploaded to Google Drive")
	c.JSON(http.StatusOK, gin.H{
		"message":             "Backup berhasil!",
		"lastBackupTimestamp": timestamp,
	})
}

// --- POST: Restore the whole state from Google Drive ---
// Restore is a full overwrite of local data, same as it always was.
func RestoreFromDrive(c *gin.Context) {
	creds, ok := googleCredentials()
	if !ok {
		c.JSON(http.StatusServiceUnavailable, gin.H{"error": "Backup belum dikonfigurasi (GOOGLE_CREDENTIALS_FILE)."})
		return
	}

	srv, err := drive.NewService(c.Request.Context(), creds, option.WithScopes(drive.DriveFileScope))
	if err != nil {
		c.JSON(http.StatusBadGateway, gin.H{"error": "Gagal terhubung ke Google Drive."})
		return
	}

	fileID, err := findBackupFileID(srv)
	if err != nil {
		c.JSON(http.StatusBadGateway, gin.H{"error": "Gagal mencari file backup."})
		return
	}
	if fileID == "" {
		c.JSON(http.StatusNotFound, gin.H{"error": "File backup tidak ditemukan di Google Drive."})
		return
	}

	resp, err := srv.Files.Get(fileID).Download()
	if err != nil {
		c.JSON(http.StatusBadGateway, gin.H{"error": "Gagal mengunduh backup."})
		return
	}
	defer resp.Body.Close()

	var state database.StatePayload
	if err := json.NewDecoder(resp.Body).Decode(&state); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "File backup rusak atau bukan format yang dikenal."})
		return
	}

	if err := database.ImportState(state); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to restore data"})
		return
	}

	log.Println("✅ State restored from Google Drive backup")
	c.JSON(http.StatusOK, gin.H{"message": "Data berhasil dipulihkan!"})
}

// --- POST: Push the customer list to Google Sheets ---
// Clears the Pelanggan tab and rewrites it, so the sheet always mirrors
// the current customer table.
func SyncCustomersToSheet(c *gin.Context) {
	creds, ok := googleCredentials()
	if !ok {
		c.JSON(http.StatusServiceUnavailable, gin.H{"error": "Sinkronisasi belum dikonfigurasi (GOOGLE_CREDENTIALS_FILE)."})
		return
	}

	settings := database.GetDashboardSettings()
	if settings.GoogleSheetID == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "ID Google Sheet belum diatur di pengaturan."})
		return
	}

	var customers []models.Customer
	if err := database.DB.Order("name asc").Find(&customers).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch customers"})
		return
	}

	srv, err := sheets.NewService(c.Request.Context(), creds, option.WithScopes(sheets.SpreadsheetsScope))
	if err != nil {
		c.JSON(http.StatusBadGateway, gin.H{"error": "Gagal terhubung ke Google Sheets."})
		return
	}

	const sheetRange = "Pelanggan!A:G"
	if _, err := srv.Spreadsheets.Values.Clear(settings.GoogleSheetID, sheetRange, &sheets.ClearValuesRequest{}).Do(); err != nil {
		c.JSON(http.StatusBadGateway, gin.H{"error": "Gagal membersihkan sheet. Pastikan tab 'Pelanggan' ada."})
		return
	}

	values := make([][]interface{}, 0, len(customers)+1)
	header := make([]interface{}, len(documents.CustomerSheetHeader))
	for i, label := range documents.CustomerSheetHeader {
		header[i] = label
	}
	values = append(values, header)
	for _, customer := range customers {
		values = append(values, documents.CustomerSheetRow(customer))
	}

	_, err = srv.Spreadsheets.Values.
		Update(settings.GoogleSheetID, "Pelanggan!A1", &sheets.ValueRange{Values: values}).
		ValueInputOption("USER_ENTERED").
		Do()
	if err != nil {
		c.JSON(http.StatusBadGateway, gin.H{"error": "Gagal menulis data ke sheet."})
		return
	}

	log.Printf("✅ Synced %d customers to Google Sheets", len(customers))
	c.JSON(http.StatusOK, gin.H{
		"message": "Data pelanggan berhasil disinkronkan!",
		"rows":    len(customers),
	})
}
