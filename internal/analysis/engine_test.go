package analysis

import (
	"context"
	"encoding/json"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/zatekoja/Healthsurveyrecommendationdesign/backend/internal/domain/entities"
)

func testCatalog() []*entities.Product {
	return []*entities.Product{
		product("p-bone", "칼슘", "마그네슘", "비타민D"),
		product("p-omega", "오메가-3", "비타민E"),
		product("p-bcomplex", "비타민B군", "엽산"),
		product("p-eye", "루테인", "비타민A"),
	}
}

func TestAnalyze_NormalWeightNoSymptoms(t *testing.T) {
	engine, _ := newTestEngine(t)

	analysis, err := engine.Analyze(context.Background(), Input{
		Submission: newSubmission("55", "170", "60"),
		Catalog:    testCatalog(),
	})
	require.NoError(t, err)
	result := analysis.Result

	assert.InDelta(t, 20.76, result.BMI, 0.001)
	assert.Len(t, result.RiskLevels, 9)
	for domain, level := range result.RiskLevels {
		assert.Equal(t, entities.RiskLow, level, domain)
	}

	scores := map[string]int{}
	for _, ing := range result.RecommendedIngredients {
		scores[ing.Name] = ing.RawScore
	}
	for _, name := range []string{"칼슘", "마그네슘", "비타민D"} {
		assert.GreaterOrEqual(t, scores[name], 1, name)
	}
	assert.Equal(t, 1, scores["마그네슘"])

	assert.Contains(t, result.OverallAssessment, "정상 체중")
	assert.Contains(t, result.OverallAssessment, "모든 건강 영역의 위험도가 낮습니다")

	require.NotEmpty(t, result.Recommendations)
	assert.Equal(t, "p-bone", result.Recommendations[0].ProductID)
}

func TestAnalyze_TinglingExtremities(t *testing.T) {
	engine, _ := newTestEngine(t)

	answers := []entities.Answer{choiceAnswer(entities.SubCategoryCirculation, "손발 끝이 자주 저려요")}
	analysis, err := engine.Analyze(context.Background(), Input{
		Submission: newSubmission("25", "170", "60", answers...),
		Catalog:    testCatalog(),
	})
	require.NoError(t, err)

	assert.Equal(t, 5, analysis.Scores["오메가-3"])
	assert.Equal(t, 4, analysis.Scores["비타민B군"])
	assert.Equal(t, 2, engine.RiskScore(entities.DomainCirculation, answers, 25, analysis.Demographics.BMI))

	top := analysis.Result.RecommendedIngredients[0]
	assert.Equal(t, "오메가-3", top.Name)
	assert.Equal(t, 5.0, top.Score)
	assert.Equal(t, 4.0, analysis.Result.RecommendedIngredients[1].Score)
}

func TestAnalyze_MissingDemographics(t *testing.T) {
	engine, _ := newTestEngine(t)

	analysis, err := engine.Analyze(context.Background(), Input{
		Submission: &entities.Submission{Answers: []entities.Answer{textAnswer(entities.SubCategoryAge, "40")}},
	})
	assert.Nil(t, analysis)
	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrMissingDemographics))
	assert.Contains(t, err.Error(), "height, weight")

	_, err = engine.Analyze(context.Background(), Input{})
	assert.True(t, errors.Is(err, ErrMissingDemographics))
}

func TestAnalyze_MemberFallback(t *testing.T) {
	engine, _ := newTestEngine(t)

	answers := []entities.Answer{choiceAnswer(entities.SubCategoryMaleHealth, "소변을 자주 봐요")}
	analysis, err := engine.Analyze(context.Background(), Input{
		Submission: newSubmission("45", "175", "70", answers...),
		Member:     &entities.Member{ID: "member-1", Name: "이둘", Gender: entities.GenderFemale},
	})
	require.NoError(t, err)

	assert.Equal(t, "이둘", analysis.Demographics.Name)
	assert.Equal(t, entities.GenderFemale, analysis.Demographics.Gender)
	assert.NotContains(t, analysis.Scores, "쏘팔메토")
	assert.Contains(t, analysis.Result.OverallAssessment, "이둘님")
}

func TestAnalyze_EmptyCatalog(t *testing.T) {
	engine, _ := newTestEngine(t)

	analysis, err := engine.Analyze(context.Background(), Input{Submission: newSubmission("30", "160", "50")})
	require.NoError(t, err)
	assert.NotNil(t, analysis.Result.Recommendations)
	assert.Empty(t, analysis.Result.Recommendations)
	assert.NotEmpty(t, analysis.Result.RecommendedIngredients)
}

func TestAnalyze_Idempotent(t *testing.T) {
	engine, _ := newTestEngine(t, WithMaxResults(7))

	sub := newSubmission("48", "162", "71",
		choiceAnswer(entities.SubCategoryCirculation, "손발이 자주 차가워요", "다리가 자주 붓고 무거워요"),
		choiceAnswer(entities.SubCategoryDigestion, "변비가 자주 있어요"),
		choiceAnswer(entities.SubCategoryFatigue, "쉬어도 피로가 풀리지 않아요"),
		choiceAnswer(entities.SubCategoryDailyPattern, "스트레스를 많이 받아요", "화면을 오래 봐요"),
	)
	in := Input{Submission: sub, Catalog: testCatalog()}

	first, err := engine.Analyze(context.Background(), in)
	require.NoError(t, err)
	second, err := engine.Analyze(context.Background(), in)
	require.NoError(t, err)

	a, err := json.Marshal(first.Result)
	require.NoError(t, err)
	b, err := json.Marshal(second.Result)
	require.NoError(t, err)
	assert.Equal(t, string(a), string(b))
	assert.LessOrEqual(t, len(first.Result.RecommendedIngredients), 7)
}

func TestAnalyze_CancelledContext(t *testing.T) {
	engine, _ := newTestEngine(t)
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := engine.Analyze(ctx, Input{Submission: newSubmission("30", "170", "60")})
	assert.ErrorIs(t, err, context.Canceled)
}

func TestWriteAssessment_ListsDomains(t *testing.T) {
	risks := map[entities.HealthDomain]entities.RiskLevel{
		entities.DomainImmune:      entities.RiskHigh,
		entities.DomainCirculation: entities.RiskHigh,
		entities.DomainEyes:        entities.RiskMedium,
	}
	text := WriteAssessment(Demographics{BMI: 26.4}, risks, []entities.IngredientScore{
		{Name: "비타민C"}, {Name: "아연"}, {Name: "루테인"}, {Name: "칼슘"},
	})

	assert.Equal(t,
		"BMI는 26.4(비만)입니다. 위험도가 높은 영역: 혈관·혈액순환, 면역. 주의가 필요한 영역: 눈. 우선 추천 영양소는 비타민C, 아연, 루테인입니다.",
		text)
}
