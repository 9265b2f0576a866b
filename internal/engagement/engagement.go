// Package engagement derives like metrics for a property from its raw like
// events.  All functions are pure: they read the event slice and return a
// new view, leaving the source rows untouched.
package engagement

import "github.com/havenlist/estate-api/internal/model"

// View is the derived engagement block attached to a property in API
// responses.
type View struct {
	LikedCount   int    `json:"likedCount"`
	LikedAtMonth string `json:"likedAtMonth,omitempty"`
}

// LikeCount returns how many events carry liked=true.  A nil or empty
// slice yields 0.
func LikeCount(events []model.LikeEvent) int {
	n := 0
	for _, ev := range events {
		if ev.Liked {
			n++
		}
	}
	return n
}

// LikeCountByMonth groups liked events by the calendar month of their
// CreatedAt, keyed by the 3-letter display label ("Jan", "Feb", ...).
// Only liked=true events are counted; a nil slice yields an empty map.
func LikeCountByMonth(events []model.LikeEvent) map[string]int {
	out := map[string]int{}
	for _, ev := range events {
		if !ev.Liked {
			continue
		}
		out[ev.CreatedAt.Format("Jan")]++
	}
	return out
}

// Derive builds the response view for one property's events.  LikedAtMonth
// is the month label of the first liked event in the slice, matching the
// legacy display behavior; it is empty when nothing is liked.
func Derive(events []model.LikeEvent) View {
	v := View{LikedCount: LikeCount(events)}
	for _, ev := range events {
		if ev.Liked {
			v.LikedAtMonth = ev.CreatedAt.Format("Jan")
			break
		}
	}
	return v
}
