package repository

import (
	"gorm.io/gorm"

	"malaka_backend/internal/model"
)

type SkillRepository struct {
	DB *gorm.DB
}

func NewSkillRepository(db *gorm.DB) *SkillRepository {
	return &SkillRepository{DB: db}
}

func (r *SkillRepository) ListSkills() ([]model.Skill, error) {
	var skills []model.Skill
	err := r.DB.Order("`order` ASC").Find(&skills).Error
	return skills, err
}

// ListSkillTree 预加载子技能和课程，按 order 排序
func (r *SkillRepository) ListSkillTree() ([]model.Skill, error) {
	var skills []model.Skill
	err := r.DB.
		Preload("Subskills", func(db *gorm.DB) *gorm.DB {
			return db.Order("subskills.`order` ASC")
		}).
		Preload("Subskills.Lessons", func(db *gorm.DB) *gorm.DB {
			return db.Order("lessons.`order` ASC")
		}).
		Order("`order` ASC").
		Find(&skills).Error
	return skills, err
}

func (r *SkillRepository) FindBySlug(slug string) (*model.Skill, error) {
	var skill model.Skill
	err := r.DB.Where("slug = ?", slug).First(&skill).Error
	return &skill, err
}

func (r *SkillRepository) FindSubskills(skillID uint) ([]model.Subskill, error) {
	var subskills []model.Subskill
	err := r.DB.Where("skill_id = ?", skillID).Order("`order` ASC").Find(&subskills).Error
	return subskills, err
}

func (r *SkillRepository) FindSubskillBySlug(skillID uint, slug string) (*model.Subskill, error) {
	var subskill model.Subskill
	err := r.DB.Where("skill_id = ? AND slug = ?", skillID, slug).First(&subskill).Error
	return &subskill, err
}

func (r *SkillRepository) CreateSkill(skill *model.Skill) error {
	return r.DB.Create(skill).Error
}

func (r *SkillRepository) UpdateSkill(skill *model.Skill) error {
	return r.DB.Save(skill).Error
}

func (r *SkillRepository) DeleteSkill(id uint) error {
	return r.DB.Delete(&model.Skill{}, id).Error
}

func (r *SkillRepository) CreateSubskill(subskill *model.Subskill) error {
	return r.DB.Create(subskill).Error
}

func (r *SkillRepository) UpdateSubskill(subskill *model.Subskill) error {
	return r.DB.Save(subskill).Error
}

func (r *SkillRepository) DeleteSubskill(id uint) error {
	return r.DB.Delete(&model.Subskill{}, id).Error
}
