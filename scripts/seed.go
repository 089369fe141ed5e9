package main

import (
	"context"
	"fmt"
	"os"
	"sort"
	"time"

	"github.com/rs/zerolog/log"

	"github.com/zatekoja/Healthsurveyrecommendationdesign/backend/internal/adapters/database"
	"github.com/zatekoja/Healthsurveyrecommendationdesign/backend/internal/adapters/search"
	"github.com/zatekoja/Healthsurveyrecommendationdesign/backend/internal/analysis"
	"github.com/zatekoja/Healthsurveyrecommendationdesign/backend/internal/application/services"
	"github.com/zatekoja/Healthsurveyrecommendationdesign/backend/internal/domain/entities"
	"github.com/zatekoja/Healthsurveyrecommendationdesign/backend/internal/domain/repositories"
	"github.com/zatekoja/Healthsurveyrecommendationdesign/backend/internal/infrastructure/clients/postgres"
	"github.com/zatekoja/Healthsurveyrecommendationdesign/backend/internal/infrastructure/clients/typesense"
	"github.com/zatekoja/Healthsurveyrecommendationdesign/backend/internal/infrastructure/observability"
	"github.com/zatekoja/Healthsurveyrecommendationdesign/backend/pkg/config"
)

const noneOption = "해당 없음"

type section struct {
	id       string
	sub      entities.SubCategory
	category entities.QuestionCategory
	kind     entities.QuestionType
	text     string
}

var sections = []section{
	{"name", entities.SubCategoryName, entities.QuestionCategoryBasicInfo, entities.QuestionTypeText, "이름을 알려주세요"},
	{"gender", entities.SubCategoryGender, entities.QuestionCategoryBasicInfo, entities.QuestionTypeSingleChoice, "성별을 선택해주세요"},
	{"age", entities.SubCategoryAge, entities.QuestionCategoryBasicInfo, entities.QuestionTypeText, "나이를 알려주세요"},
	{"height", entities.SubCategoryHeight, entities.QuestionCategoryBasicInfo, entities.QuestionTypeText, "키(cm)를 알려주세요"},
	{"weight", entities.SubCategoryWeight, entities.QuestionCategoryBasicInfo, entities.QuestionTypeText, "몸무게(kg)를 알려주세요"},

	{"circulation", entities.SubCategoryCirculation, entities.QuestionCategorySymptom, entities.QuestionTypeMultipleChoice, "혈관·혈액순환 관련 증상을 모두 골라주세요"},
	{"digestion", entities.SubCategoryDigestion, entities.QuestionCategorySymptom, entities.QuestionTypeMultipleChoice, "소화·장 관련 증상을 모두 골라주세요"},
	{"skin", entities.SubCategorySkin, entities.QuestionCategorySymptom, entities.QuestionTypeMultipleChoice, "피부 관련 증상을 모두 골라주세요"},
	{"eyes", entities.SubCategoryEyes, entities.QuestionCategorySymptom, entities.QuestionTypeMultipleChoice, "눈 관련 증상을 모두 골라주세요"},
	{"brain", entities.SubCategoryBrain, entities.QuestionCategorySymptom, entities.QuestionTypeMultipleChoice, "뇌·인지 관련 증상을 모두 골라주세요"},
	{"fatigue", entities.SubCategoryFatigue, entities.QuestionCategorySymptom, entities.QuestionTypeMultipleChoice, "피로 관련 증상을 모두 골라주세요"},
	{"bone-joint", entities.SubCategoryBoneJoint, entities.QuestionCategorySymptom, entities.QuestionTypeMultipleChoice, "뼈·관절 관련 증상을 모두 골라주세요"},
	{"immune", entities.SubCategoryImmune, entities.QuestionCategorySymptom, entities.QuestionTypeMultipleChoice, "면역 관련 증상을 모두 골라주세요"},
	{"hair", entities.SubCategoryHair, entities.QuestionCategorySymptom, entities.QuestionTypeMultipleChoice, "모발·손톱 관련 증상을 모두 골라주세요"},
	{"additional", entities.SubCategoryAdditionalSymptoms, entities.QuestionCategorySymptom, entities.QuestionTypeMultipleChoice, "그 밖에 해당하는 것을 모두 골라주세요"},

	{"exercise", entities.SubCategoryExercise, entities.QuestionCategoryLifestyle, entities.QuestionTypeSingleChoice, "운동은 얼마나 자주 하시나요?"},
	{"sun", entities.SubCategorySunExposure, entities.QuestionCategoryLifestyle, entities.QuestionTypeSingleChoice, "하루에 햇빛을 얼마나 쬐시나요?"},
	{"diet", entities.SubCategoryDiet, entities.QuestionCategoryLifestyle, entities.QuestionTypeMultipleChoice, "식습관에 해당하는 것을 모두 골라주세요"},
	{"stimulants", entities.SubCategoryStimulants, entities.QuestionCategoryLifestyle, entities.QuestionTypeMultipleChoice, "기호식품 중 해당하는 것을 모두 골라주세요"},
	{"daily", entities.SubCategoryDailyPattern, entities.QuestionCategoryLifestyle, entities.QuestionTypeMultipleChoice, "생활 패턴에 해당하는 것을 모두 골라주세요"},
	{"family", entities.SubCategoryFamilyHistory, entities.QuestionCategoryLifestyle, entities.QuestionTypeMultipleChoice, "가족력이 있다면 골라주세요"},

	{"female", entities.SubCategoryFemaleHealth, entities.QuestionCategorySymptom, entities.QuestionTypeMultipleChoice, "여성 건강 관련 해당 사항을 골라주세요"},
	{"male", entities.SubCategoryMaleHealth, entities.QuestionCategorySymptom, entities.QuestionTypeMultipleChoice, "남성 건강 관련 해당 사항을 골라주세요"},
}

var products = []entities.Product{
	{ID: "prod-omega3", Name: "알티지 오메가3", Description: "고함량 rTG 오메가3와 비타민E", Price: 32000, Ingredients: []string{"오메가-3", "비타민E"}},
	{ID: "prod-bcomplex", Name: "활력 비타민B 컴플렉스", Description: "8종 비타민B군과 엽산", Price: 18000, Ingredients: []string{"비타민B군", "엽산"}},
	{ID: "prod-bone", Name: "칼마디 본케어", Description: "칼슘, 마그네슘, 비타민D 복합 포뮬러", Price: 21000, Ingredients: []string{"칼슘", "마그네슘", "비타민D"}},
	{ID: "prod-vitd", Name: "비타민D 4000IU", Description: "햇빛 부족을 위한 고함량 비타민D", Price: 12000, Ingredients: []string{"비타민D"}},
	{ID: "prod-eye", Name: "루테인 아이플러스", Description: "마리골드 루테인과 비타민A", Price: 26000, Ingredients: []string{"루테인", "비타민A"}},
	{ID: "prod-probiotics", Name: "장건강 프로바이오틱스", Description: "19종 유산균과 식이섬유", Price: 29000, Ingredients: []string{"프로바이오틱스", "식이섬유"}},
	{ID: "prod-joint", Name: "조인트 MSM 글루코사민", Description: "관절 연골 건강", Price: 35000, Ingredients: []string{"글루코사민", "MSM"}},
	{ID: "prod-immune", Name: "이뮨 C 아연", Description: "비타민C와 아연", Price: 15000, Ingredients: []string{"비타민C", "아연"}},
	{ID: "prod-hair", Name: "헤어 비오틴", Description: "비오틴, 아연, 단백질", Price: 24000, Ingredients: []string{"비오틴", "아연", "단백질"}},
	{ID: "prod-liver", Name: "밀크씨슬 간케어", Description: "실리마린 함유 밀크씨슬", Price: 19000, Ingredients: []string{"밀크씨슬"}},
	{ID: "prod-energy", Name: "홍삼 코큐텐", Description: "6년근 홍삼과 코엔자임Q10", Price: 45000, Ingredients: []string{"홍삼", "코엔자임Q10"}},
	{ID: "prod-sleep", Name: "마그네슘 테아닌 나이트", Description: "편안한 휴식을 위한 마그네슘과 테아닌", Price: 22000, Ingredients: []string{"마그네슘", "테아닌"}},
	{ID: "prod-mom", Name: "프리맘 엽산 철분", Description: "임신 준비 여성을 위한 엽산과 철분", Price: 27000, Ingredients: []string{"엽산", "철분"}},
	{ID: "prod-skin", Name: "콜라겐 히알루론", Description: "저분자 콜라겐과 히알루론산, 비타민C", Price: 39000, Ingredients: []string{"콜라겐", "히알루론산", "비타민C"}},
}

var members = []entities.Member{
	{ID: "member-1", Name: "김하나", Gender: entities.GenderFemale},
	{ID: "member-2", Name: "이둘", Gender: entities.GenderMale},
	{ID: "member-3", Name: "박셋", Gender: entities.GenderFemale},
}

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to load config")
	}
	observability.InitLogger(cfg.OTEL.ServiceName+"-seed", cfg.Server.Env)

	ctx := context.Background()

	pgClient, err := postgres.NewClient(&cfg.Database)
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to connect to DB")
	}
	defer pgClient.Close()

	if err := pgClient.EnsureSchema(ctx); err != nil {
		log.Fatal().Err(err).Msg("Failed to apply schema")
	}

	if os.Getenv("RESET_DB") == "true" {
		log.Info().Msg("RESET_DB=true detected, truncating tables before seeding")
		_, err := pgClient.DB().ExecContext(ctx, `
			TRUNCATE TABLE
				health_records,
				survey_answers,
				survey_submissions,
				question_options,
				questions,
				products,
				members
			RESTART IDENTITY CASCADE
		`)
		if err != nil {
			log.Fatal().Err(err).Msg("Failed to reset tables")
		}
	}

	rules := analysis.MustDefaultRuleSet()

	// 1. Questions, with option vocabulary taken from the rule tables
	questionRepo := database.NewQuestionAdapter(pgClient).(*database.QuestionAdapter)
	for i, s := range sections {
		q := buildQuestion(s, rules)
		if err := questionRepo.Upsert(ctx, q, i+1); err != nil {
			log.Error().Err(err).Str("question_id", q.ID).Msg("Failed to seed question")
		}
	}
	log.Info().Int("count", len(sections)).Msg("Seeded questions")

	// 2. Products
	productRepo := database.NewProductAdapter(pgClient).(*database.ProductAdapter)
	for i := range products {
		if err := productRepo.Upsert(ctx, &products[i]); err != nil {
			log.Error().Err(err).Str("product_id", products[i].ID).Msg("Failed to seed product")
		}
	}
	log.Info().Int("count", len(products)).Msg("Seeded products")

	// 3. Members
	memberRepo := database.NewMemberAdapter(pgClient).(*database.MemberAdapter)
	now := time.Now().UTC()
	for i := range members {
		members[i].CreatedAt = now
		if err := memberRepo.Upsert(ctx, &members[i]); err != nil {
			log.Error().Err(err).Str("member_id", members[i].ID).Msg("Failed to seed member")
		}
	}
	log.Info().Int("count", len(members)).Msg("Seeded members")

	// 4. Search index, when Typesense is reachable
	var searchRepo repositories.ProductSearchRepository
	if tsClient, err := typesense.NewClient(&cfg.Typesense); err != nil {
		log.Warn().Err(err).Msg("Typesense unavailable, skipping product indexing")
	} else if err := tsClient.InitSchema(ctx); err != nil {
		log.Warn().Err(err).Msg("Failed to init Typesense schema")
	} else {
		searchRepo = search.NewTypesenseAdapter(tsClient)
	}
	if searchRepo != nil {
		indexed, err := services.NewCatalogService(productRepo, searchRepo).IndexAll(ctx)
		if err != nil {
			log.Error().Err(err).Msg("Failed to index products")
		}
		log.Info().Int("count", indexed).Msg("Indexed products")
	}

	log.Info().Msg("Seeding complete")
}

func buildQuestion(s section, rules *analysis.RuleSet) *entities.Question {
	q := &entities.Question{
		ID:          "q-" + s.id,
		Text:        s.text,
		Type:        s.kind,
		SubCategory: s.sub,
		Category:    s.category,
	}

	var texts []string
	switch {
	case s.sub == entities.SubCategoryGender:
		q.Options = genderOptions(q.ID, rules)
		return q
	case s.kind.IsChoice():
		for text := range rules.Nutrients[s.sub] {
			texts = append(texts, text)
		}
		sort.Slice(texts, func(i, j int) bool {
			if (texts[i] == noneOption) != (texts[j] == noneOption) {
				return texts[j] == noneOption
			}
			return texts[i] < texts[j]
		})
	}

	for i, text := range texts {
		q.Options = append(q.Options, entities.Option{
			ID:         fmt.Sprintf("opt-%s-%02d", s.id, i+1),
			QuestionID: q.ID,
			Text:       text,
			Order:      i + 1,
		})
	}
	return q
}

func genderOptions(questionID string, rules *analysis.RuleSet) []entities.Option {
	ids := make([]string, 0, len(rules.GenderOptions))
	for id := range rules.GenderOptions {
		ids = append(ids, id)
	}
	sort.Strings(ids)

	opts := make([]entities.Option, len(ids))
	for i, id := range ids {
		opts[i] = entities.Option{
			ID:         id,
			QuestionID: questionID,
			Text:       string(rules.GenderOptions[id]),
			Order:      i + 1,
		}
	}
	return opts
}
