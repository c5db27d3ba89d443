package query

// Scopes for cache keys. Kept in one place so they don't spread
// through the code as string literals.
const (
	ScopeList   = "lectures"
	ScopeDetail = "lecture"
)

// Key identifies a cached query result. LectureID is empty for
// list-scoped keys.
type Key struct {
	Scope     string
	UserID    string
	LectureID string
}

// ListKey is the cache key for a user's lecture list.
func ListKey(userID string) Key {
	return Key{Scope: ScopeList, UserID: userID}
}

// DetailKey is the cache key for a single lecture.
func DetailKey(userID, lectureID string) Key {
	return Key{Scope: ScopeDetail, UserID: userID, LectureID: lectureID}
}

func (k Key) String() string {
	if k.LectureID == "" {
		return k.Scope + ":" + k.UserID
	}
	return k.Scope + ":" + k.UserID + ":" + k.LectureID
}
