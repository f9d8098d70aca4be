package models

import (
	"time"

	"gorm.io/gorm"
)

// EPS model (health insurance provider)
type EPS struct {
	ID                 uint                `gorm:"primaryKey;autoIncrement;column:id" json:"id"`
	Name               string              `gorm:"column:name;unique;not null" json:"name"`
	Active             bool                `gorm:"column:active;not null;default:true" json:"active"`
	CreatedAt          time.Time           `gorm:"column:created_at;autoCreateTime" json:"created_at"`
	UpdatedAt          time.Time           `gorm:"column:updated_at;autoUpdateTime" json:"updated_at"`
	ContractedServices []ContractedService `gorm:"foreignKey:EPSID;references:ID" json:"-"`
}

func (EPS) TableName() string {
	return "eps"
}

// Specialty model. Static reference data; the short code selects the
// population feature used by the projection formula.
type Specialty struct {
	ID   uint   `gorm:"primaryKey;autoIncrement;column:id" json:"id"`
	Name string `gorm:"column:name;not null" json:"name"`
	Code string `gorm:"column:code;size:10;unique;not null" json:"code"`
}

func (Specialty) TableName() string {
	return "specialties"
}

// FiscalYear model. Month 1 = February, month 12 = January of the next
// calendar year. At most one year is active at a time.
type FiscalYear struct {
	ID        uint      `gorm:"primaryKey;autoIncrement;column:id" json:"id"`
	Label     string    `gorm:"column:year_label;unique;not null" json:"year_label"`
	StartDate string    `gorm:"column:start_date;not null" json:"start_date"`
	EndDate   string    `gorm:"column:end_date;not null" json:"end_date"`
	Active    bool      `gorm:"column:active;not null;default:false" json:"active"`
	CreatedAt time.Time `gorm:"column:created_at;autoCreateTime" json:"created_at"`
	UpdatedAt time.Time `gorm:"column:updated_at;autoUpdateTime" json:"updated_at"`
}

func (FiscalYear) TableName() string {
	return "fiscal_years"
}

// Population model, one row per (eps, year, month).
type Population struct {
	ID                 uint      `gorm:"primaryKey;autoIncrement;column:id" json:"id"`
	EPSID              uint      `gorm:"column:eps_id;not null;uniqueIndex:idx_population_key" json:"eps_id"`
	YearID             uint      `gorm:"column:year_id;not null;uniqueIndex:idx_population_key" json:"year_id"`
	Month              int       `gorm:"column:month;not null;uniqueIndex:idx_population_key" json:"month"`
	TotalPopulation    int       `gorm:"column:total_population;not null" json:"total_population"`
	ActivePopulation   int       `gorm:"column:active_population;not null" json:"active_population"`
	FertileWomen       int       `gorm:"column:fertile_women;not null" json:"fertile_women"`
	PregnantWomen      int       `gorm:"column:pregnant_women;not null" json:"pregnant_women"`
	Adults             int       `gorm:"column:adults;not null" json:"adults"`
	PediatricDiagnosed int       `gorm:"column:pediatric_diagnosed;not null" json:"pediatric_diagnosed"`
	MinorsFollowUp     int       `gorm:"column:minors_follow_up;not null" json:"minors_follow_up"`
	CreatedAt          time.Time `gorm:"column:created_at;autoCreateTime" json:"created_at"`
	UpdatedAt          time.Time `gorm:"column:updated_at;autoUpdateTime" json:"updated_at"`
}

func (Population) TableName() string {
	return "population"
}

// ContractedService model: yearly appointment target per (eps, specialty).
type ContractedService struct {
	ID          uint      `gorm:"primaryKey;autoIncrement;column:id" json:"id"`
	EPSID       uint      `gorm:"column:eps_id;not null;uniqueIndex:idx_contracted_key" json:"eps_id"`
	SpecialtyID uint      `gorm:"column:specialty_id;not null;uniqueIndex:idx_contracted_key" json:"specialty_id"`
	YearlyQty   int       `gorm:"column:yearly_qty;not null;default:0" json:"yearly_qty"`
	Specialty   Specialty `gorm:"foreignKey:SpecialtyID;references:ID" json:"-"`
}

func (ContractedService) TableName() string {
	return "contracted_services"
}

// ProjectedAppointment model. Replaced by the projection engine and
// incremented by the redistribution engine.
type ProjectedAppointment struct {
	ID           uint `gorm:"primaryKey;autoIncrement;column:id" json:"id"`
	EPSID        uint `gorm:"column:eps_id;not null;uniqueIndex:idx_projected_key" json:"eps_id"`
	YearID       uint `gorm:"column:year_id;not null;uniqueIndex:idx_projected_key" json:"year_id"`
	Month        int  `gorm:"column:month;not null;uniqueIndex:idx_projected_key" json:"month"`
	SpecialtyID  uint `gorm:"column:specialty_id;not null;uniqueIndex:idx_projected_key" json:"specialty_id"`
	ProjectedQty int  `gorm:"column:projected_qty;not null;default:0" json:"projected_qty"`
}

func (ProjectedAppointment) TableName() string {
	return "projected_appointments"
}

// CompletedAppointment model: append-only log of performed appointments.
type CompletedAppointment struct {
	ID              uint      `gorm:"primaryKey;autoIncrement;column:id" json:"id"`
	EPSID           uint      `gorm:"column:eps_id;not null;index" json:"eps_id"`
	YearID          uint      `gorm:"column:year_id;not null;index" json:"year_id"`
	Month           int       `gorm:"column:month;not null" json:"month"`
	SpecialtyID     uint      `gorm:"column:specialty_id;not null;index" json:"specialty_id"`
	AppointmentDate string    `gorm:"column:appointment_date;not null" json:"appointment_date"`
	Quantity        int       `gorm:"column:quantity;not null" json:"quantity"`
	CreatedAt       time.Time `gorm:"column:created_at;autoCreateTime" json:"created_at"`
}

func (CompletedAppointment) TableName() string {
	return "completed_appointments"
}

// Setting model: key/value application settings.
type Setting struct {
	Key   string `gorm:"primaryKey;column:setting_key;size:100" json:"setting_key"`
	Value string `gorm:"column:setting_value;not null" json:"setting_value"`
}

func (Setting) TableName() string {
	return "settings"
}

// Setting keys.
const (
	SettingWorkDays        = "work_days"
	SettingDistribution    = "distribution_percentage"
	SettingThresholdRed    = "compliance_threshold_red"
	SettingThresholdYellow = "compliance_threshold_yellow"
)

// DefaultYearlyQty is the contracted-services table applied when a new EPS
// is created. Specialty codes absent from this map default to zero.
var DefaultYearlyQty = map[string]int{
	"MIA": 2,
	"MIP": 2,
	"MEX": 10,
	"PSQ": 4,
	"GIN": 4,
	"GIG": 8,
	"ENF": 12,
	"PSI": 4,
	"NUT": 4,
	"TSO": 4,
	"QUI": 12,
	"ODO": 2,
	"LAB": 4,
}

// SeedSpecialties inserts the specialty catalogue into the database.
func SeedSpecialties(db *gorm.DB) error {
	catalogue := []Specialty{
		{Code: "MIA", Name: "Médico infectólogo adultos"},
		{Code: "MIP", Name: "Médico infectólogo pediátrico"},
		{Code: "MEX", Name: "Médico experto"},
		{Code: "PSQ", Name: "Psiquiatría"},
		{Code: "GIN", Name: "Ginecología"},
		{Code: "GIG", Name: "Ginecología gestantes"},
		{Code: "ENF", Name: "Enfermería"},
		{Code: "PSI", Name: "Psicología"},
		{Code: "NUT", Name: "Nutrición"},
		{Code: "TSO", Name: "Trabajo Social"},
		{Code: "QUI", Name: "Químico"},
		{Code: "ODO", Name: "Odontología"},
		{Code: "LAB", Name: "Laboratorios"},
	}
	return db.Transaction(func(tx *gorm.DB) error {
		for _, specialty := range catalogue {
			if err := tx.FirstOrCreate(&specialty, Specialty{Code: specialty.Code}).Error; err != nil {
				return err
			}
		}
		return nil
	})
}

// SeedSettings inserts default settings for keys that do not exist yet.
// The shipped distribution covers only the first six fiscal months and sums
// to 96; it predates the sum-to-100 rule enforced on writes and is kept
// as-is for continuity, so later months fall back to the engine's default
// weight until an operator saves a full vector.
func SeedSettings(db *gorm.DB) error {
	defaults := []Setting{
		{Key: SettingWorkDays, Value: "Monday,Tuesday,Wednesday,Thursday,Friday,Saturday"},
		{Key: SettingDistribution, Value: "19,19,19,19,19,5"},
		{Key: SettingThresholdRed, Value: "70"},
		{Key: SettingThresholdYellow, Value: "90"},
	}
	return db.Transaction(func(tx *gorm.DB) error {
		for _, setting := range defaults {
			if err := tx.FirstOrCreate(&setting, Setting{Key: setting.Key}).Error; err != nil {
				return err
			}
		}
		return nil
	})
}
