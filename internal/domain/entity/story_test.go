package entity

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func intPtr(v int) *int { return &v }

func TestStoryFilter_Matches_Gender(t *testing.T) {
	boyStory := &Story{Gender: AudienceBoy, MinAge: 3, MaxAge: 8}
	neutralStory := &Story{Gender: AudienceNeutral, MinAge: 3, MaxAge: 8}

	assert.True(t, StoryFilter{Gender: "boy"}.Matches(boyStory))
	assert.False(t, StoryFilter{Gender: "girl"}.Matches(boyStory))

	// Neutral stories are eligible for every requested gender.
	assert.True(t, StoryFilter{Gender: "boy"}.Matches(neutralStory))
	assert.True(t, StoryFilter{Gender: "girl"}.Matches(neutralStory))

	// "all" and empty disable the gender check.
	assert.True(t, StoryFilter{Gender: "all"}.Matches(boyStory))
	assert.True(t, StoryFilter{}.Matches(boyStory))
}

func TestStoryFilter_Matches_AgeOverlap(t *testing.T) {
	story := &Story{Gender: AudienceNeutral, MinAge: 4, MaxAge: 8}

	// Both bounds: the requested interval must overlap the story's.
	assert.True(t, StoryFilter{MinAge: intPtr(6), MaxAge: intPtr(10)}.Matches(story))
	assert.True(t, StoryFilter{MinAge: intPtr(8), MaxAge: intPtr(12)}.Matches(story))
	assert.False(t, StoryFilter{MinAge: intPtr(9), MaxAge: intPtr(12)}.Matches(story))
	assert.False(t, StoryFilter{MinAge: intPtr(0), MaxAge: intPtr(3)}.Matches(story))
}

func TestStoryFilter_Matches_SingleBound(t *testing.T) {
	story := &Story{Gender: AudienceNeutral, MinAge: 4, MaxAge: 8}

	// A lone minimum is compared against the story's maximum.
	assert.True(t, StoryFilter{MinAge: intPtr(8)}.Matches(story))
	assert.False(t, StoryFilter{MinAge: intPtr(9)}.Matches(story))

	// A lone maximum is compared against the story's minimum.
	assert.True(t, StoryFilter{MaxAge: intPtr(4)}.Matches(story))
	assert.False(t, StoryFilter{MaxAge: intPtr(3)}.Matches(story))
}

func TestStory_Projection(t *testing.T) {
	story := &Story{Title: "The Lost Star", Description: "A bedtime tale", CoverImage: "/covers/star.jpg"}

	projection := story.Projection()

	assert.Equal(t, "The Lost Star", projection.Title)
	assert.Equal(t, "A bedtime tale", projection.Description)
	assert.Equal(t, "/covers/star.jpg", projection.CoverImage)

	var missing *Story
	assert.Nil(t, missing.Projection())
}
