package reputation_test

import (
	"testing"

	"github.com/digitodael/registrykit/pkg/reputation"

	"github.com/stretchr/testify/assert"
)

func TestXP(t *testing.T) {
	t.Parallel()

	tests := []struct {
		event reputation.EventType
		want  int64
	}{
		{reputation.LikeGained, 10},
		{reputation.ContributionAccepted, 50},
		{reputation.IdeaTrending, 100},
		{reputation.EventType(99), 0},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.event.String(), func(t *testing.T) {
			t.Parallel()
			assert.Equal(t, tt.want, reputation.XP(tt.event))
		})
	}
}

func TestLevelFor(t *testing.T) {
	t.Parallel()

	tests := []struct {
		xp    int64
		level int
		title string
	}{
		{0, 1, "Inovador Iniciante"},
		{99, 1, "Inovador Iniciante"},
		{100, 2, "Criador Promissor"},
		{299, 2, "Criador Promissor"},
		{300, 3, "Arquiteto de Ideias"},
		{600, 4, "Visionário"},
		{1000, 5, "Mestre da Comunidade"},
		{1600, 6, "Lenda do Hub"},
		{50000, 6, "Lenda do Hub"},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.title, func(t *testing.T) {
			t.Parallel()
			got := reputation.LevelFor(tt.xp)
			assert.Equal(t, tt.level, got.Level)
			assert.Equal(t, tt.title, got.Title)
		})
	}
}

func TestEventTypeString(t *testing.T) {
	t.Parallel()

	assert.Equal(t, "LIKE_GAINED", reputation.LikeGained.String())
	assert.Equal(t, "CONTRIBUTION_ACCEPTED", reputation.ContributionAccepted.String())
	assert.Equal(t, "IDEA_TRENDING", reputation.IdeaTrending.String())
	assert.Equal(t, "UNKNOWN", reputation.EventType(42).String())
}
