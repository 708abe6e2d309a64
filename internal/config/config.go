// internal/config/config.go
package config

import (
	"log"
	"os"
	"sync"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

type Config struct {
	App    AppConfig
	Source SourceConfig
}

type AppConfig struct {
	ExportDir string
	LogLevel  string
}

// SourceConfig describes where the loader finds the primary PO table and the
// reference/normalization tables. Reference tables come either from CSV files
// under ReferenceDir or, when SheetID is set, from the published spreadsheet
// (one gid per tab).
type SourceConfig struct {
	EntryFile    string
	ReferenceDir string
	SheetID      string
	GIDs         map[string]string
}

// Reference table names used as keys in SourceConfig.GIDs and as local CSV
// file names (<name>.csv) under ReferenceDir.
const (
	RefPICNorm      = "normalisasi_rfm"
	RefOnTimeNorm   = "normalisasi_po"
	RefNotCounted   = "notcounted_po"
	RefLogisticNorm = "normalisasi_logistic"
	RefNonWorkdays  = "nonworkdays"
	RefWilayah      = "wilayah"
	RefPulau        = "pulau"
	RefTimeDate     = "timedate"
	RefCostSaving   = "cost_saving"
	RefJasaService  = "jasa_service"
	RefFreight      = "freight"
	RefRARA         = "rara"
	RefRYI          = "ryi"
)

var (
	once     sync.Once
	instance *Config
)

func Load() *Config {
	once.Do(func() {
		// Load .env file if it exists
		_ = godotenv.Load()

		// Set default values
		viper.SetDefault("APP_EXPORT_DIR", "./export")
		viper.SetDefault("APP_LOG_LEVEL", "info")
		viper.SetDefault("PO_ENTRY_FILE", "./data/po_entry/PO Entry List.xlsx")
		viper.SetDefault("REFERENCE_DIR", "./data/reference")
		viper.SetDefault("SHEET_ID", "")

		// Tab gids of the published normalization spreadsheet
		viper.SetDefault("SHEET_GID_NORMALISASI_RFM", "0")
		viper.SetDefault("SHEET_GID_NORMALISASI_PO", "1138035324")
		viper.SetDefault("SHEET_GID_NOTCOUNTED_PO", "2061221686")
		viper.SetDefault("SHEET_GID_NORMALISASI_LOGISTIC", "822694285")
		viper.SetDefault("SHEET_GID_NONWORKDAYS", "632183983")
		viper.SetDefault("SHEET_GID_WILAYAH", "723767888")
		viper.SetDefault("SHEET_GID_PULAU", "410190247")
		viper.SetDefault("SHEET_GID_TIMEDATE", "1205634597")
		viper.SetDefault("SHEET_GID_COST_SAVING", "1828930868")
		viper.SetDefault("SHEET_GID_JASA_SERVICE", "1312001151")
		viper.SetDefault("SHEET_GID_FREIGHT", "1063908444")
		viper.SetDefault("SHEET_GID_RARA", "394331579")
		viper.SetDefault("SHEET_GID_RYI", "2095297594")

		// Read from environment variables
		viper.AutomaticEnv()

		// Ensure export directory exists
		ensureDir(viper.GetString("APP_EXPORT_DIR"))

		instance = &Config{
			App: AppConfig{
				ExportDir: viper.GetString("APP_EXPORT_DIR"),
				LogLevel:  viper.GetString("APP_LOG_LEVEL"),
			},
			Source: SourceConfig{
				EntryFile:    viper.GetString("PO_ENTRY_FILE"),
				ReferenceDir: viper.GetString("REFERENCE_DIR"),
				SheetID:      viper.GetString("SHEET_ID"),
				GIDs: map[string]string{
					RefPICNorm:      viper.GetString("SHEET_GID_NORMALISASI_RFM"),
					RefOnTimeNorm:   viper.GetString("SHEET_GID_NORMALISASI_PO"),
					RefNotCounted:   viper.GetString("SHEET_GID_NOTCOUNTED_PO"),
					RefLogisticNorm: viper.GetString("SHEET_GID_NORMALISASI_LOGISTIC"),
					RefNonWorkdays:  viper.GetString("SHEET_GID_NONWORKDAYS"),
					RefWilayah:      viper.GetString("SHEET_GID_WILAYAH"),
					RefPulau:        viper.GetString("SHEET_GID_PULAU"),
					RefTimeDate:     viper.GetString("SHEET_GID_TIMEDATE"),
					RefCostSaving:   viper.GetString("SHEET_GID_COST_SAVING"),
					RefJasaService:  viper.GetString("SHEET_GID_JASA_SERVICE"),
					RefFreight:      viper.GetString("SHEET_GID_FREIGHT"),
					RefRARA:         viper.GetString("SHEET_GID_RARA"),
					RefRYI:          viper.GetString("SHEET_GID_RYI"),
				},
			},
		}
	})

	return instance
}

func ensureDir(dir string) {
	if _, err := os.Stat(dir); os.IsNotExist(err) {
		if err := os.MkdirAll(dir, 0755); err != nil {
			log.Fatalf("Failed to create directory %s: %v", dir, err)
		}
	}
}
