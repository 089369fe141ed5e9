package analysis

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/zatekoja/Healthsurveyrecommendationdesign/backend/internal/domain/entities"
)

func TestClassifyAll_Total(t *testing.T) {
	engine, _ := newTestEngine(t)

	levels := engine.ClassifyAll(nil, 0, 0)
	assert.Len(t, levels, 9)
	for _, domain := range entities.AllHealthDomains() {
		assert.Equal(t, entities.RiskLow, levels[domain], domain)
	}
}

func TestRiskScore_CirculationTingling(t *testing.T) {
	engine, _ := newTestEngine(t)
	answers := []entities.Answer{choiceAnswer(entities.SubCategoryCirculation, "손발 끝이 자주 저려요")}

	assert.Equal(t, 2, engine.RiskScore(entities.DomainCirculation, answers, 25, 20.76))
	assert.Equal(t, entities.RiskLow, engine.Classify(entities.DomainCirculation, answers, 25, 20.76))

	// age bonus tips it into MEDIUM
	assert.Equal(t, 3, engine.RiskScore(entities.DomainCirculation, answers, 55, 20.76))
	assert.Equal(t, entities.RiskMedium, engine.Classify(entities.DomainCirculation, answers, 55, 20.76))
}

func TestClassify_Thresholds(t *testing.T) {
	engine, _ := newTestEngine(t)

	tests := []struct {
		name    string
		domain  entities.HealthDomain
		answers []entities.Answer
		age     int
		bmi     float64
		want    entities.RiskLevel
	}{
		{
			name:    "circulation high",
			domain:  entities.DomainCirculation,
			answers: []entities.Answer{choiceAnswer(entities.SubCategoryCirculation, "손발 끝이 자주 저려요", "얼굴이 창백하다는 말을 들어요", "손발이 자주 차가워요")},
			age:     25, bmi: 21,
			want: entities.RiskHigh,
		},
		{
			name:    "digestion medium",
			domain:  entities.DomainDigestion,
			answers: []entities.Answer{choiceAnswer(entities.SubCategoryDigestion, "변비가 자주 있어요")},
			age:     25, bmi: 21,
			want: entities.RiskMedium,
		},
		{
			name:   "digestion high across sub-categories",
			domain: entities.DomainDigestion,
			answers: []entities.Answer{
				choiceAnswer(entities.SubCategoryDigestion, "변비가 자주 있어요", "속쓰림이 자주 있어요"),
				choiceAnswer(entities.SubCategoryStimulants, "술을 자주 마셔요"),
			},
			age: 25, bmi: 21,
			want: entities.RiskHigh,
		},
		{
			name:    "immune high",
			domain:  entities.DomainImmune,
			answers: []entities.Answer{choiceAnswer(entities.SubCategoryImmune, "감기에 자주 걸려요", "알레르기가 있어요")},
			age:     25, bmi: 21,
			want: entities.RiskHigh,
		},
		{
			name:    "option from another domain does not count",
			domain:  entities.DomainImmune,
			answers: []entities.Answer{choiceAnswer(entities.SubCategorySkin, "상처가 잘 낫지 않아요")},
			age:     25, bmi: 21,
			want: entities.RiskLow,
		},
		{
			name:    "bmi pre-score",
			domain:  entities.DomainCirculation,
			answers: []entities.Answer{choiceAnswer(entities.SubCategoryCirculation, "손발이 자주 차가워요")},
			age:     55, bmi: 31,
			want: entities.RiskMedium,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, engine.Classify(tt.domain, tt.answers, tt.age, tt.bmi))
		})
	}
}

func TestClassify_UnknownDomain(t *testing.T) {
	engine, _ := newTestEngine(t)
	assert.Equal(t, entities.RiskLow, engine.Classify("liver", nil, 70, 35))
	assert.Equal(t, 0, engine.RiskScore("liver", nil, 70, 35))
}
