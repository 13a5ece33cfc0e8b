package access_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"universal-mapper/access"
)

func TestTargets(t *testing.T) {
	t.Parallel()

	city, err := access.PathTarget[Profile]("Home.City")
	require.NoError(t, err)

	targets := []access.Target[Profile]{
		access.NewField("Age", func(p *Profile) *int { return &p.Age }),
		access.Field[Profile, string]{
			Name: "Name",
			Set:  func(p *Profile, v string) { p.Name = v },
		},
		city,
	}
	values := []any{"33", "Eve", "Turin"}

	var p Profile
	for i, target := range targets {
		require.NoError(t, target.Assign(access.Default(), &p, values[i]), target.Path())
	}

	assert.Equal(t, 33, p.Age)
	assert.Equal(t, "Eve", p.Name)
	require.NotNil(t, p.Home)
	assert.Equal(t, "Turin", p.Home.City)

	got, ok := targets[0].Resolve(&p)
	require.True(t, ok)
	assert.Equal(t, 33, got)

	got, ok = city.Resolve(&p)
	require.True(t, ok)
	assert.Equal(t, "Turin", got)

	_, ok = targets[1].Resolve(&p)
	assert.False(t, ok, "handle without getter")

	assert.Equal(t, []string{"Age", "Name", "Home.City"}, []string{targets[0].Path(), targets[1].Path(), targets[2].Path()})

	require.Error(t, targets[0].Assign(access.Default(), &p, "old"))
	assert.Equal(t, 33, p.Age)

	_, err = access.PathTarget[Profile]("Home.")
	require.ErrorIs(t, err, access.ErrInvalidPath)
}
