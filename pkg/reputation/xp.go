// Package reputation maps reputation events to XP awards and cumulative XP
// to levels. Pure functions over a closed event set; persistence of the
// resulting totals belongs to the surrounding service.
package reputation

// EventType identifies a reputation-earning event.
type EventType int

const (
	LikeGained EventType = iota
	ContributionAccepted
	IdeaTrending
)

// String returns the canonical event name used in API payloads.
func (t EventType) String() string {
	switch t {
	case LikeGained:
		return "LIKE_GAINED"
	case ContributionAccepted:
		return "CONTRIBUTION_ACCEPTED"
	case IdeaTrending:
		return "IDEA_TRENDING"
	default:
		return "UNKNOWN"
	}
}

// XP returns the experience awarded for a single event. Unknown event types
// award nothing.
func XP(t EventType) int64 {
	switch t {
	case LikeGained:
		return 10
	case ContributionAccepted:
		return 50
	case IdeaTrending:
		return 100
	default:
		return 0
	}
}

// Level is a reputation tier with its display title.
type Level struct {
	Level int
	Title string
}

// LevelFor returns the tier reached with the given cumulative XP.
func LevelFor(xp int64) Level {
	switch {
	case xp < 100:
		return Level{1, "Inovador Iniciante"}
	case xp < 300:
		return Level{2, "Criador Promissor"}
	case xp < 600:
		return Level{3, "Arquiteto de Ideias"}
	case xp < 1000:
		return Level{4, "Visionário"}
	case xp < 1600:
		return Level{5, "Mestre da Comunidade"}
	default:
		return Level{6, "Lenda do Hub"}
	}
}
