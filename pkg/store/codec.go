// codec.go converts between the pure domain.Schedule/Plan/Tournament
// types and the JSON representation persisted in SQLite. The core
// packages carry no wire format of their own; this conversion lives
// entirely in the store, the one place that needs one.
package store

import (
	"encoding/json"
	"fmt"

	"github.com/chesscollective/tourplan/pkg/domain"
	"github.com/chesscollective/tourplan/pkg/timeval"
)

// scheduleDTO is the on-disk shape of a domain.Schedule. On decode, Speed
// is looked up by name in namedSpeeds and Variant is rebuilt with
// domain.NewVariant from its name and exotic flag.
type scheduleDTO struct {
	Freq          int    `json:"freq"`
	SpeedName     string `json:"speed"`
	VariantName   string `json:"variant"`
	VariantExotic bool   `json:"variant_exotic"`
	MinRating     *int   `json:"min_rating,omitempty"`
	MaxRating     *int   `json:"max_rating,omitempty"`
	MinRatedGames int    `json:"min_rated_games,omitempty"`
	TitledOnly    bool   `json:"titled_only,omitempty"`
	AtInstantMs   int64  `json:"at_instant_ms"`
}

var namedSpeeds = map[string]domain.Speed{
	domain.UltraBullet.String(): domain.UltraBullet,
	domain.Bullet.String():      domain.Bullet,
	domain.Blitz.String():       domain.Blitz,
	domain.Rapid.String():       domain.Rapid,
	domain.Classical.String():   domain.Classical,
}

// EncodeSchedule serializes a domain.Schedule to its on-disk JSON form.
// Exported for cmd/tourplan, which needs it to build fixture rows.
func EncodeSchedule(s domain.Schedule) ([]byte, error) { return encodeSchedule(s) }

// DecodeSchedule parses the on-disk JSON form back into a domain.Schedule.
// Exported for cmd/tourplan's fixture loader.
func DecodeSchedule(raw []byte) (domain.Schedule, error) { return decodeSchedule(raw) }

func encodeSchedule(s domain.Schedule) ([]byte, error) {
	dto := scheduleDTO{
		Freq:          int(s.Freq),
		SpeedName:     s.Speed.String(),
		VariantName:   s.Variant.String(),
		VariantExotic: s.Variant.Exotic(),
		MinRating:     s.Conditions.MinRating,
		MaxRating:     s.Conditions.MaxRating,
		MinRatedGames: s.Conditions.MinRatedGames,
		TitledOnly:    s.Conditions.TitledOnly,
		AtInstantMs:   int64(s.AtInstant),
	}
	return json.Marshal(dto)
}

func decodeSchedule(raw []byte) (domain.Schedule, error) {
	var dto scheduleDTO
	if err := json.Unmarshal(raw, &dto); err != nil {
		return domain.Schedule{}, fmt.Errorf("decode schedule: %w", err)
	}
	speed, ok := namedSpeeds[dto.SpeedName]
	if !ok {
		return domain.Schedule{}, fmt.Errorf("decode schedule: unknown speed %q", dto.SpeedName)
	}
	return domain.Schedule{
		Freq:    domain.Freq(dto.Freq),
		Speed:   speed,
		Variant: domain.NewVariant(dto.VariantName, dto.VariantExotic),
		Conditions: domain.Conditions{
			MinRating:     dto.MinRating,
			MaxRating:     dto.MaxRating,
			MinRatedGames: dto.MinRatedGames,
			TitledOnly:    dto.TitledOnly,
		},
		AtInstant: timeval.Instant(dto.AtInstantMs),
	}, nil
}
