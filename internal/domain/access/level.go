package access

// Level is the scope of a permission. Levels are ordered
// read < write < execute < admin, but only equality is enforced.
type Level string

const (
	LevelRead    Level = "read"
	LevelWrite   Level = "write"
	LevelExecute Level = "execute"
	LevelAdmin   Level = "admin"
)

var levelRanks = map[Level]int{
	LevelRead:    1,
	LevelWrite:   2,
	LevelExecute: 3,
	LevelAdmin:   4,
}

func (l Level) IsValid() bool {
	_, ok := levelRanks[l]
	return ok
}

// Rank returns the position of the level in the ordering, or 0 for an
// unknown level.
func (l Level) Rank() int {
	return levelRanks[l]
}

// Covers reports whether l grants at least what other grants.
func (l Level) Covers(other Level) bool {
	return l.IsValid() && l.Rank() >= other.Rank()
}

func (l Level) String() string {
	return string(l)
}
