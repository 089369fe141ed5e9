package analysis

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/zatekoja/Healthsurveyrecommendationdesign/backend/internal/domain/entities"
)

func product(id string, ingredients ...string) *entities.Product {
	return &entities.Product{ID: id, Name: "제품 " + id, Price: 19900, Ingredients: ingredients}
}

func TestMatchProducts_PrefersSingleCoveringProduct(t *testing.T) {
	catalog := []*entities.Product{
		product("P1", "오메가-3"),
		product("P2", "칼슘", "비타민D"),
		product("P3", "오메가-3", "칼슘"),
	}

	got := MatchProducts([]string{"오메가-3", "칼슘"}, catalog)

	require.Len(t, got, 1)
	assert.Equal(t, "P3", got[0].ProductID)
	assert.Equal(t, []string{"오메가-3", "칼슘"}, got[0].MatchedIngredients)
}

func TestMatchProducts_GreedyCover(t *testing.T) {
	recommended := []string{"오메가-3", "비타민B군", "칼슘", "마그네슘", "비타민D"}
	catalog := []*entities.Product{
		product("bone", "칼슘", "마그네슘", "비타민D", "아연"),
		product("omega", "오메가-3"),
		product("multi", "비타민B군", "칼슘", "비타민C"),
		product("redundant", "마그네슘"),
		product("unrelated", "루테인"),
	}

	got := MatchProducts(recommended, catalog)

	require.Len(t, got, 3)
	assert.Equal(t, "bone", got[0].ProductID)
	assert.Equal(t, []string{"칼슘", "마그네슘", "비타민D"}, got[0].MatchedIngredients)
	assert.Equal(t, "multi", got[1].ProductID)
	assert.Equal(t, []string{"비타민B군", "칼슘"}, got[1].MatchedIngredients)
	assert.Equal(t, "omega", got[2].ProductID)
}

func TestMatchProducts_CoversEveryAchievableIngredient(t *testing.T) {
	recommended := []string{"a", "b", "c", "d", "e", "z"}
	catalog := []*entities.Product{
		product("1", "a", "b"),
		product("2", "b", "c"),
		product("3", "c", "d"),
		product("4", "e"),
		product("5", "a", "x"),
	}

	got := MatchProducts(recommended, catalog)

	covered := map[string]bool{}
	ids := map[string]bool{}
	for _, rec := range got {
		assert.False(t, ids[rec.ProductID], "duplicate product %s", rec.ProductID)
		ids[rec.ProductID] = true
		for _, name := range rec.MatchedIngredients {
			covered[name] = true
		}
	}
	for _, name := range []string{"a", "b", "c", "d", "e"} {
		assert.True(t, covered[name], name)
	}
	assert.False(t, covered["z"])
}

func TestMatchProducts_TiesByProductID(t *testing.T) {
	catalog := []*entities.Product{product("b", "칼슘"), product("a", "칼슘")}
	got := MatchProducts([]string{"칼슘"}, catalog)
	require.Len(t, got, 1)
	assert.Equal(t, "a", got[0].ProductID)
}

func TestMatchProducts_Empty(t *testing.T) {
	assert.Empty(t, MatchProducts([]string{"칼슘"}, nil))
	assert.Empty(t, MatchProducts(nil, []*entities.Product{product("1", "칼슘")}))
	got := MatchProducts([]string{"칼슘"}, []*entities.Product{product("1", "루테인"), nil})
	assert.NotNil(t, got)
	assert.Empty(t, got)
}
