package model

// Skill 顶级技能，目录树的根节点
// swagger:model Skill
type Skill struct {
	BaseModel
	Title       string     `gorm:"size:255;not null" json:"title"`
	Slug        string     `gorm:"size:255;uniqueIndex;not null" json:"slug"`
	Description string     `gorm:"type:text" json:"description"`
	Order       int        `gorm:"default:0" json:"order"`
	Subskills   []Subskill `gorm:"constraint:OnDelete:CASCADE" json:"subskills,omitempty"`
}

func (Skill) TableName() string {
	return "skills"
}

// Subskill 技能下的子技能，课程挂在子技能下面
// swagger:model Subskill
type Subskill struct {
	BaseModel
	Title       string   `gorm:"size:255;not null" json:"title"`
	Slug        string   `gorm:"size:255;index:idx_skill_slug,unique" json:"slug"`
	Description string   `gorm:"type:text" json:"description"`
	SkillID     uint     `gorm:"index:idx_skill_slug,unique;index" json:"skillId"`
	Order       int      `gorm:"default:0" json:"order"`
	Lessons     []Lesson `gorm:"constraint:OnDelete:CASCADE" json:"lessons,omitempty"`
}

func (Subskill) TableName() string {
	return "subskills"
}
