package model

import (
	"time"
)

// Character is a single catalog entry as served by the backend.
// Fields are populated verbatim from the server response and never
// mutated client-side.
type Character struct {
	ID              string     `json:"id"`
	VariationID     string     `json:"variationId"`
	CreatedAt       time.Time  `json:"createdAt"`
	Avatar          string     `json:"avatar"`
	Name            string     `json:"name"`
	DontShow        bool       `json:"dontShow"`
	FirstMessage    string     `json:"firstMessage"`
	Cost            int        `json:"cost"`
	Costs           []CostTier `json:"costs"`
	State           string     `json:"state"`
	AcceptPhotos    bool       `json:"acceptPhotos"`
	ShouldReturnAds bool       `json:"shouldReturnAds"`
	Description     string     `json:"description"`
	VoiceID         string     `json:"voiceId"`
	ChatsCount      int        `json:"chatsCount"`
	Rating          float64    `json:"rating"`
}

// CostTier is one entry of a character's volume pricing ladder.
type CostTier struct {
	Cost int `json:"cost"`
	From int `json:"from"`
}

// CharactersResponse is the wire envelope of the characters endpoint.
type CharactersResponse struct {
	Data []Character `json:"data"`
}

// Visible reports whether the character should appear in catalog listings.
func (c Character) Visible() bool {
	return !c.DontShow
}
