package entities

// QuestionType is how a survey question is answered
type QuestionType string

const (
	QuestionTypeText           QuestionType = "TEXT"
	QuestionTypeSingleChoice   QuestionType = "SINGLE_CHOICE"
	QuestionTypeMultipleChoice QuestionType = "MULTIPLE_CHOICE"
)

// IsValid checks if the question type is one of the defined constants
func (t QuestionType) IsValid() bool {
	switch t {
	case QuestionTypeText, QuestionTypeSingleChoice, QuestionTypeMultipleChoice:
		return true
	}
	return false
}

// IsChoice reports whether answers of this type carry selected options
func (t QuestionType) IsChoice() bool {
	return t == QuestionTypeSingleChoice || t == QuestionTypeMultipleChoice
}

// QuestionCategory is the coarse grouping shown as survey sections
type QuestionCategory string

const (
	QuestionCategoryBasicInfo QuestionCategory = "기본 정보"
	QuestionCategorySymptom   QuestionCategory = "증상"
	QuestionCategoryLifestyle QuestionCategory = "생활 습관"
)

// SubCategory groups questions under one demographic, symptom or lifestyle domain.
// Scoring rules are keyed on (SubCategory, option text), so these values are
// stable vocabulary shared with the rule tables.
type SubCategory string

const (
	SubCategoryName   SubCategory = "이름"
	SubCategoryGender SubCategory = "성별"
	SubCategoryAge    SubCategory = "나이"
	SubCategoryHeight SubCategory = "키"
	SubCategoryWeight SubCategory = "몸무게"

	SubCategoryCirculation        SubCategory = "혈관·혈액순환"
	SubCategoryDigestion          SubCategory = "소화·장"
	SubCategorySkin               SubCategory = "피부"
	SubCategoryEyes               SubCategory = "눈"
	SubCategoryBrain              SubCategory = "뇌·인지"
	SubCategoryFatigue            SubCategory = "피로"
	SubCategoryBoneJoint          SubCategory = "뼈·관절"
	SubCategoryImmune             SubCategory = "면역"
	SubCategoryHair               SubCategory = "모발"
	SubCategoryAdditionalSymptoms SubCategory = "추가 증상"

	SubCategoryExercise      SubCategory = "운동 빈도"
	SubCategorySunExposure   SubCategory = "햇빛 노출"
	SubCategoryDiet          SubCategory = "식습관"
	SubCategoryStimulants    SubCategory = "기호식품"
	SubCategoryDailyPattern  SubCategory = "생활 패턴"
	SubCategoryFamilyHistory SubCategory = "가족력"

	SubCategoryFemaleHealth SubCategory = "여성 건강"
	SubCategoryMaleHealth   SubCategory = "남성 건강"
)

// IsDemographic reports whether the sub-category holds a basic-info answer
func (s SubCategory) IsDemographic() bool {
	switch s {
	case SubCategoryName, SubCategoryGender, SubCategoryAge, SubCategoryHeight, SubCategoryWeight:
		return true
	}
	return false
}

// Question is a survey question definition
type Question struct {
	ID          string           `json:"id" db:"id"`
	Text        string           `json:"text" db:"text"`
	Type        QuestionType     `json:"type" db:"type"`
	SubCategory SubCategory      `json:"sub_category" db:"sub_category"`
	Category    QuestionCategory `json:"category" db:"category"`
	Options     []Option         `json:"options,omitempty" db:"-"`
}

// Option is a selectable choice. Its Text is the canonical rule key.
type Option struct {
	ID         string `json:"id" db:"id"`
	QuestionID string `json:"question_id" db:"question_id"`
	Text       string `json:"text" db:"text"`
	Order      int    `json:"order" db:"display_order"`
}
