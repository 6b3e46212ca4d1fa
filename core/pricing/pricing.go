// Package pricing describes the subscription cards shown on /subscribe.
package pricing

import (
	"fmt"

	"github.com/Axelresells/AxelScale-Formacion/core/subscription"
)

// Tiers
const (
	TierSilver = "silver"
	TierGold   = "gold"
)

// Footnotes are printed under every card.
var Footnotes = []string{"Después, 100 €/mes.", "Cancela cuando quieras."}

type (
	Card struct {
		Tier         string
		Plan         string // subscription plan value
		Duration     string // e.g. "3 MESES"
		Price        string // e.g. "200€"
		DurationText string // e.g. "3 meses"
		Badge        string
		CTA          string
		Featured     bool
	}

	// Style is the visual state of a card.
	Style struct {
		Background string
		Border     string
		BoxShadow  string
		Transform  string
	}
)

type tierStyle struct {
	background string
	border     string
	shadow     string
	hover      string
	lift       int // px
}

var tierStyles = map[string]tierStyle{
	TierSilver: {
		background: "rgba(10,10,10,0.92)",
		border:     "1px solid rgba(255,255,255,0.35)",
		shadow:     "0 0 18px rgba(255,255,255,0.18), 0 0 45px rgba(255,255,255,0.08)",
		hover:      "0 0 28px rgba(255,255,255,0.28), 0 0 70px rgba(255,255,255,0.14)",
		lift:       5,
	},
	TierGold: {
		background: "rgba(10,10,10,0.9)",
		border:     "1px solid rgba(212,175,55,0.95)",
		shadow:     "0 0 35px rgba(212,175,55,0.35), 0 0 80px rgba(212,175,55,0.18)",
		hover:      "0 0 45px rgba(212,175,55,0.45), 0 0 110px rgba(212,175,55,0.22)",
		lift:       6,
	},
}

// NewSilverCard builds a silver card for `plan`.
func NewSilverCard(plan, duration, price, durationText string) Card {
	return Card{
		Tier:         TierSilver,
		Plan:         plan,
		Duration:     duration,
		Price:        price,
		DurationText: durationText,
		CTA:          "ELEGIR PLAN",
	}
}

// NewGoldCard builds the featured three months card.
func NewGoldCard() Card {
	return Card{
		Tier:         TierGold,
		Plan:         subscription.PlanQuarterly,
		Duration:     "3 MESES",
		Price:        "200€",
		DurationText: "3 meses",
		Badge:        "MÁS POPULAR",
		CTA:          "ELEGIR ESTE PLAN",
		Featured:     true,
	}
}

// Cards returns the pricing catalog in display order.
func Cards() []Card {
	return []Card{
		NewSilverCard(subscription.PlanMonthly, "1 MES", "100€", "1 mes"),
		NewGoldCard(),
		NewSilverCard(subscription.PlanYearly, "12 MESES", "900€", "12 meses"),
	}
}

// Description is the access sentence of the card.
func (c Card) Description() string {
	return "Acceso completo a AxelScale durante " + c.DurationText
}

// Footnotes are the same for every card.
func (c Card) Footnotes() []string { return Footnotes }

// Style returns the card's look, hovered or at rest. Hovering strengthens the glow and lifts the card.
func (c Card) Style(hovered bool) Style {
	ts, ok := tierStyles[c.Tier]
	if !ok {
		ts = tierStyles[TierSilver]
	}
	st := Style{
		Background: ts.background,
		Border:     ts.border,
		BoxShadow:  ts.shadow,
		Transform:  "translateY(0)",
	}
	if hovered {
		st.BoxShadow = ts.hover
		st.Transform = fmt.Sprintf("translateY(-%dpx)", ts.lift)
	}
	return st
}

// CSS renders the style as declarations.
func (s Style) CSS() string {
	return fmt.Sprintf("background:%s;border:%s;box-shadow:%s;transform:%s;", s.Background, s.Border, s.BoxShadow, s.Transform)
}
