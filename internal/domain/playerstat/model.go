package playerstat

// Stat is one player's statistical performance in one match, as reported
// by the stats provider. Numeric fields default to zero when the source
// value is missing or non-numeric.
type Stat struct {
	MatchID    int64
	Team       string
	PlayerName string
	Minutes    int
	Goals      int
	Assists    int
	Shots      int
	XG         float64
	XA         float64
	XGChain    float64
	XGBuildup  float64
	KeyPasses  int
	YellowCard int
	RedCard    int
}
