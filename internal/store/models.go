package store

import "database/sql"

// City represents a row in ref_city.
type City struct {
	CityID        int64  `json:"city_id" db:"city_id"`
	CityName      string `json:"city_name" db:"city_name"`
	StateProvince string `json:"state_province" db:"state_province"`
	Country       string `json:"country" db:"country"`
}

// Season represents a row in ref_season. SeasonID is derived from the leading
// year of the label ("2015-16" -> 2015) so it is stable across databases.
type Season struct {
	SeasonID   int64  `json:"season_id" db:"season_id"`
	SeasonYear string `json:"season_year" db:"season_year"`
	IsCurrent  bool   `json:"is_current" db:"is_current"`
}

// StatType represents a row in ref_advanced_stat_type or ref_basic_stat_type.
type StatType struct {
	StatID           int64  `json:"stat_id" db:"stat_id"`
	StatName         string `json:"stat_name" db:"stat_name"`
	StatAbbreviation string `json:"stat_abbreviation" db:"stat_abbreviation"`
}

// PlayerBio represents a row in stat_player_bio. PlayerID is the identifier
// carried by the advanced-stats source, reused directly as the surrogate key.
type PlayerBio struct {
	PlayerID  int64          `json:"player_id" db:"player_id"`
	FullName  string         `json:"full_name" db:"full_name"`
	BirthDate sql.NullString `json:"birth_date,omitempty" db:"birth_date"`
	Position  sql.NullString `json:"position,omitempty" db:"position"`
	SalaryUSD int64          `json:"salary_usd" db:"salary_usd"`
}

// AdvancedStatFact represents a row in fact_player_advanced_stats: one
// observed value keyed by the (player, season, stat) triple.
type AdvancedStatFact struct {
	PlayerID      int64   `json:"player_id" db:"player_id"`
	SeasonID      int64   `json:"season_id" db:"season_id"`
	StatID        int64   `json:"stat_id" db:"stat_id"`
	AdvancedValue float64 `json:"advanced_value" db:"advanced_value"`
}

// InjuryReport represents a row in bg_injury_report. ReturnDate is null while
// the injury is open.
type InjuryReport struct {
	ReportID       int64          `json:"report_id" db:"report_id"`
	PlayerID       int64          `json:"player_id" db:"player_id"`
	InjuryDate     string         `json:"injury_date" db:"injury_date"`
	ReturnDate     sql.NullString `json:"return_date,omitempty" db:"return_date"`
	BodyPart       sql.NullString `json:"body_part,omitempty" db:"body_part"`
	Severity       sql.NullString `json:"severity,omitempty" db:"severity"`
	SourceCitation sql.NullString `json:"source_citation,omitempty" db:"source_citation"`
}

// CityDemographics represents a row in bg_city_demographics, one-to-one with
// ref_city.
type CityDemographics struct {
	CityID                int64   `json:"city_id" db:"city_id"`
	Population            int64   `json:"population" db:"population"`
	MedianHouseholdIncome int64   `json:"median_household_income" db:"median_household_income"`
	PovertyRate           float64 `json:"poverty_rate" db:"poverty_rate"`
}

// UserAccount represents a row in core_user_account.
type UserAccount struct {
	UserID       int64  `json:"user_id" db:"user_id"`
	Email        string `json:"email" db:"email"`
	PasswordHash string `json:"-" db:"password_hash"`
	CreatedAt    string `json:"created_at" db:"created_at"`
}

// UserProfile represents a row in core_user_profile, one-to-one with the
// account.
type UserProfile struct {
	UserID      int64  `json:"user_id" db:"user_id"`
	DisplayName string `json:"display_name" db:"display_name"`
}

// UserPrediction represents a row in mart_user_predictions.
type UserPrediction struct {
	PredictionID    int64          `json:"prediction_id" db:"prediction_id"`
	UserID          int64          `json:"user_id" db:"user_id"`
	PlayerID        int64          `json:"player_id" db:"player_id"`
	PredictionType  string         `json:"prediction_type" db:"prediction_type"`
	PredictionValue sql.NullString `json:"prediction_value,omitempty" db:"prediction_value"`
	PredictionDate  string         `json:"prediction_date" db:"prediction_date"`
}
