package lineup

// SubstituteMarker is the literal position value the tactics provider uses
// for bench players. IsStarter is derived from it with no unknown state.
const SubstituteMarker = "Substitute"

// Entry is one player's tactical-sheet row in one match.
type Entry struct {
	MatchID        int64
	Team           string
	PlayerName     string
	Position       string
	IsStarter      bool
	ShotsOnTarget  int
	FoulsCommitted int
	FoulsSuffered  int
	Offsides       int
	Saves          int
	GoalsConceded  int
}
