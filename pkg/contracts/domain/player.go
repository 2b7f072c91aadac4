package domain

import "time"

// Player represents the biographical record for one contestant appearance.
// The season tables key players by (game, first name); the same person
// appearing across several games has one row per game.
type Player struct {
	Game       int    `json:"game" csv:"game" validate:"required,min=1"`
	FirstName  string `json:"first_name" csv:"first_name" validate:"required"`
	LastName   string `json:"last_name" csv:"last_name"`
	Occupation string `json:"occupation" csv:"occupation"`
	HomeCity   string `json:"home_city" csv:"home_city"`
	HomeState  string `json:"home_state" csv:"home_state"`
}

// FullName returns "First Last", or just the first name when the last
// name is absent from the source table.
func (p Player) FullName() string {
	if p.LastName == "" {
		return p.FirstName
	}
	return p.FirstName + " " + p.LastName
}

// Episode represents broadcast metadata for one game. AirDate is the
// canonical chronological ordering of games within a season.
type Episode struct {
	Game    int       `json:"game" csv:"game" validate:"required,min=1"`
	Show    int       `json:"show" csv:"show" validate:"min=0"`
	AirDate time.Time `json:"air_date" csv:"air_date"`
}
