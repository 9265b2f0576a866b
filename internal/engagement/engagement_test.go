package engagement

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/havenlist/estate-api/internal/model"
)

func day(month time.Month, d int) time.Time {
	return time.Date(2025, month, d, 12, 0, 0, 0, time.UTC)
}

func TestLikeCount(t *testing.T) {
	events := []model.LikeEvent{
		{Liked: true, CreatedAt: day(time.January, 3)},
		{Liked: false, CreatedAt: day(time.February, 1)},
		{Liked: true, CreatedAt: day(time.January, 20)},
	}

	assert.Equal(t, 2, LikeCount(events))
}

func TestLikeCountEmpty(t *testing.T) {
	assert.Equal(t, 0, LikeCount(nil))
	assert.Equal(t, 0, LikeCount([]model.LikeEvent{}))
}

func TestLikeCountByMonth(t *testing.T) {
	events := []model.LikeEvent{
		{Liked: true, CreatedAt: day(time.January, 3)},
		{Liked: false, CreatedAt: day(time.February, 1)},
		{Liked: true, CreatedAt: day(time.January, 20)},
	}

	assert.Equal(t, map[string]int{"Jan": 2}, LikeCountByMonth(events))
}

func TestLikeCountByMonthIgnoresUnliked(t *testing.T) {
	events := []model.LikeEvent{
		{Liked: false, CreatedAt: day(time.March, 5)},
	}

	assert.Empty(t, LikeCountByMonth(events))
}

func TestDerive(t *testing.T) {
	events := []model.LikeEvent{
		{Liked: false, CreatedAt: day(time.February, 1)},
		{Liked: true, CreatedAt: day(time.March, 9)},
		{Liked: true, CreatedAt: day(time.April, 2)},
	}

	v := Derive(events)
	assert.Equal(t, 2, v.LikedCount)
	// the first liked event wins, per the legacy display rule
	assert.Equal(t, "Mar", v.LikedAtMonth)
}

func TestDeriveEmpty(t *testing.T) {
	v := Derive(nil)
	assert.Equal(t, 0, v.LikedCount)
	assert.Empty(t, v.LikedAtMonth)
}
