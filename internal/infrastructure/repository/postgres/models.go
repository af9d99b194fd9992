package postgres

import (
	"database/sql"
	"time"
)

type placeTableModel struct {
	ID     string `db:"public_id"`
	Name   string `db:"name"`
	Region string `db:"region"`
}

type clubTableModel struct {
	ID        string `db:"public_id"`
	PlaceID   string `db:"place_public_id"`
	Name      string `db:"name"`
	ShortName string `db:"short_name"`
}

type groupTableModel struct {
	ID      string `db:"public_id"`
	Name    string `db:"name"`
	AgeType string `db:"age_type"`
}

type playerTableModel struct {
	ID          string `db:"public_id"`
	ClubID      string `db:"club_public_id"`
	FirstName   string `db:"first_name"`
	LastName    string `db:"last_name"`
	DateOfBirth string `db:"date_of_birth"`
	Position    string `db:"position"`
}

type competitionTableModel struct {
	ID                 string       `db:"public_id"`
	Name               string       `db:"name"`
	MaxPlayers         int          `db:"max_players"`
	AgeEligibilityDate string       `db:"age_eligibility_date"`
	FromDate           sql.NullTime `db:"from_date"`
	ToDate             sql.NullTime `db:"to_date"`
}

type competitionGroupTableModel struct {
	CompetitionID      string `db:"competition_public_id"`
	GroupID            string `db:"group_public_id"`
	Name               string `db:"name"`
	AgeType            string `db:"age_type"`
	AgeEligibilityDate string `db:"age_eligibility_date"`
}

type registrationTableModel struct {
	ID            string    `db:"public_id"`
	CompetitionID string    `db:"competition_public_id"`
	GroupID       string    `db:"group_public_id"`
	ClubID        string    `db:"club_public_id"`
	PlayerID      string    `db:"player_public_id"`
	Captain       bool      `db:"captain"`
	Status        string    `db:"status"`
	RegisteredAt  time.Time `db:"registered_at"`
}

func nullTimeToTime(v sql.NullTime) time.Time {
	if !v.Valid {
		return time.Time{}
	}
	return v.Time.UTC()
}

func timeToNullTime(v time.Time) sql.NullTime {
	if v.IsZero() {
		return sql.NullTime{}
	}
	return sql.NullTime{Time: v.UTC(), Valid: true}
}
