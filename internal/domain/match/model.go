package match

// Match represents one scheduled fixture between two teams on a date
// within a season. Identity is (Season, Date, HomeTeam, AwayTeam); the
// numeric ID is assigned by storage.
type Match struct {
	ID        int64
	Season    string
	Date      string
	HomeTeam  string
	AwayTeam  string
	HomeScore *int
	AwayScore *int
	HomeXG    float64
	AwayXG    float64
}
