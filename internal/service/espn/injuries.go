package espn

import (
	"context"
	"encoding/json"
	"strings"
	"time"

	"CourtPulse/internal/domain/models"
	xutil "CourtPulse/pkg/util"
)

// Fallback values applied when the upstream omits a field. Explicit policy
// constants rather than ad-hoc defaults scattered through the parsing.
const (
	sourceESPN     = "ESPN"
	fallbackTeam   = "NBA"
	fallbackInjury = "Injury"
	fallbackStatus = "unknown"
	unknownStatus  = "Unknown"
)

type injuriesResponse struct {
	Timestamp string        `json:"timestamp"`
	Injuries  []injuryGroup `json:"injuries"`
}

// injuryGroup is either a per-team bucket with nested entries or a flat
// entry itself; the feed has shipped both shapes.
type injuryGroup struct {
	injuryEntry
	DisplayName string        `json:"displayName"`
	Injuries    []injuryEntry `json:"injuries"`
}

type injuryEntry struct {
	Athlete      athleteRef     `json:"athlete"`
	Team         teamRef        `json:"team"`
	Status       statusField    `json:"status"`
	Date         string         `json:"date"`
	ShortComment string         `json:"shortComment"`
	LongComment  string         `json:"longComment"`
	Details      []injuryDetail `json:"details"`
}

type athleteRef struct {
	DisplayName string `json:"displayName"`
	FullName    string `json:"fullName"`
}

type teamRef struct {
	DisplayName  string `json:"displayName"`
	Abbreviation string `json:"abbreviation"`
}

type injuryDetail struct {
	Type        string `json:"type"`
	Description string `json:"description"`
	Status      string `json:"status"`
	Date        string `json:"date"`
}

// statusField decodes the status slot, which upstream emits either as a
// plain string or as {"type":{"description":...}}.
type statusField struct {
	Value string
}

func (s *statusField) UnmarshalJSON(b []byte) error {
	var plain string
	if err := json.Unmarshal(b, &plain); err == nil {
		s.Value = plain
		return nil
	}
	var obj struct {
		Type struct {
			Description string `json:"description"`
		} `json:"type"`
	}
	if err := json.Unmarshal(b, &obj); err != nil {
		return err
	}
	s.Value = obj.Type.Description
	return nil
}

// Injuries fetches the league injury table, flattens the per-team groups,
// and dedupes by player keeping the last entry seen.
func (c *Client) Injuries(ctx context.Context) ([]models.InjuryReport, error) {
	var payload injuriesResponse
	if err := c.getJSON(ctx, "/injuries", nil, &payload); err != nil {
		return nil, err
	}

	var items []models.InjuryReport
	for _, group := range payload.Injuries {
		if len(group.Injuries) > 0 {
			teamName := group.DisplayName
			if teamName == "" {
				teamName = group.Team.DisplayName
			}
			for _, entry := range group.Injuries {
				if item, ok := c.toReport(entry, teamName, payload.Timestamp); ok {
					items = append(items, item)
				}
			}
			continue
		}
		if item, ok := c.toReport(group.injuryEntry, "", payload.Timestamp); ok {
			items = append(items, item)
		}
	}

	return dedupeByPlayer(items), nil
}

func (c *Client) toReport(entry injuryEntry, fallbackTeamName, feedTimestamp string) (models.InjuryReport, bool) {
	name := entry.Athlete.DisplayName
	if name == "" {
		name = entry.Athlete.FullName
	}
	if name == "" {
		return models.InjuryReport{}, false
	}

	team := fallbackTeamName
	if team == "" {
		team = firstNonEmpty(entry.Team.DisplayName, entry.Team.Abbreviation, fallbackTeam)
	}

	var detail injuryDetail
	if len(entry.Details) > 0 {
		detail = entry.Details[0]
	}

	injury := firstNonEmpty(detail.Type, detail.Description, entry.ShortComment, entry.LongComment, fallbackInjury)
	status := normalizeStatus(firstNonEmpty(detail.Status, entry.Status.Value, fallbackStatus))
	updatedAt := xutil.NormalizeTimestamp(firstNonEmpty(detail.Date, entry.Date, feedTimestamp, c.now().UTC().Format(time.RFC3339)))

	return models.InjuryReport{
		PlayerName: name,
		Team:       team,
		Injury:     injury,
		Status:     status,
		UpdatedAt:  updatedAt,
		Source:     sourceESPN,
	}, true
}

// dedupeByPlayer keeps the last report per player while preserving the
// position of the first occurrence.
func dedupeByPlayer(items []models.InjuryReport) []models.InjuryReport {
	index := make(map[string]int, len(items))
	out := make([]models.InjuryReport, 0, len(items))
	for _, item := range items {
		key := strings.ToLower(item.PlayerName)
		if i, seen := index[key]; seen {
			out[i] = item
			continue
		}
		index[key] = len(out)
		out = append(out, item)
	}
	return out
}

func normalizeStatus(status string) string {
	normalized := strings.ToLower(strings.TrimSpace(status))
	if normalized == "" {
		return unknownStatus
	}
	return normalized
}

func firstNonEmpty(values ...string) string {
	for _, v := range values {
		if v != "" {
			return v
		}
	}
	return ""
}
