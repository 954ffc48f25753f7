package course

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func intPtr(v int) *int { return &v }

// buildTest makes a quiz whose i-th question has the given correct index.
func buildTest(passingScore int, correctAnswers ...int) *Test {
	t := &Test{Title: "quiz", PassingScore: passingScore}
	for i, correct := range correctAnswers {
		t.Questions = append(t.Questions, Question{
			Prompt:        "q",
			CorrectAnswer: correct,
			OrderIndex:    i + 1,
		})
	}
	return t
}

func TestScoreEmptyTest(t *testing.T) {
	quiz := buildTest(70)

	score, passed := quiz.Score([]*int{})

	assert.Equal(t, 0, score)
	assert.False(t, passed)
}

func TestScoreAllCorrect(t *testing.T) {
	quiz := buildTest(70, 1, 0, 2)

	score, passed := quiz.Score([]*int{intPtr(1), intPtr(0), intPtr(2)})

	assert.Equal(t, 100, score)
	assert.True(t, passed)
}

func TestScoreTwoOfThreeFailsAtSeventy(t *testing.T) {
	quiz := buildTest(70, 0, 1, 2)

	// Last answer wrong: 2/3 rounds to 67, below the bar
	score, passed := quiz.Score([]*int{intPtr(0), intPtr(1), intPtr(3)})

	assert.Equal(t, 67, score)
	assert.False(t, passed)
}

func TestScoreExactPassingBoundary(t *testing.T) {
	quiz := buildTest(50, 0, 0)

	score, passed := quiz.Score([]*int{intPtr(0), intPtr(1)})

	assert.Equal(t, 50, score)
	assert.True(t, passed)
}

func TestScoreNilAnswerNeverMatches(t *testing.T) {
	quiz := buildTest(70, 0, 1)

	score, passed := quiz.Score([]*int{nil, intPtr(1)})

	assert.Equal(t, 50, score)
	assert.False(t, passed)
}

func TestScoreShortAnswerSlice(t *testing.T) {
	quiz := buildTest(70, 0, 1, 2)

	// Missing answers count as wrong
	score, passed := quiz.Score([]*int{intPtr(0)})

	assert.Equal(t, 33, score)
	assert.False(t, passed)
}

func TestScoreExtraAnswersIgnored(t *testing.T) {
	quiz := buildTest(70, 0)

	score, passed := quiz.Score([]*int{intPtr(0), intPtr(1), intPtr(2)})

	assert.Equal(t, 100, score)
	assert.True(t, passed)
}

func TestScoreOutOfRangeChoiceIsWrong(t *testing.T) {
	quiz := buildTest(70, 1)

	score, passed := quiz.Score([]*int{intPtr(99)})

	assert.Equal(t, 0, score)
	assert.False(t, passed)
}
